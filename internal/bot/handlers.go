package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hallconsole/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// keepDefault in a time step keeps the draft's current value.
const keepDefault = "-"

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	s, err := b.session(ctx, chatID)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to open session")
		return
	}

	defer b.persist(ctx, s)

	if message.IsCommand() {
		b.metrics.command(message.Command())
		b.handleCommand(ctx, s, message.Command())
		return
	}

	if s.wizard() != stepIdle {
		b.handleWizardInput(ctx, s, strings.TrimSpace(message.Text))
		return
	}

	b.sendText(chatID, b.catalog.Messages.BotHelp)
}

func (b *Bot) handleCommand(ctx context.Context, s *session, command string) {
	msgs := b.catalog.Messages
	switch command {
	case "start":
		s.setWizard(stepIdle)
		s.presenter.detachDay()
		b.dispatch(ctx, s, actionTimeout, s.console.Start)
	case "today":
		b.dispatch(ctx, s, actionTimeout, s.console.Today)
	case "book":
		s.setWizard(stepTitle)
		b.sendText(s.chatID, msgs.NewBooking+"\n"+msgs.AskTitle)
	case "cancel":
		s.setWizard(stepIdle)
		b.sendText(s.chatID, msgs.Cancelled)
	default:
		b.sendText(s.chatID, msgs.BotHelp)
	}
}

// handleWizardInput walks title, name, start and end, then submits.
func (b *Bot) handleWizardInput(ctx context.Context, s *session, text string) {
	msgs := b.catalog.Messages
	draft := s.console.Draft()

	switch s.wizard() {
	case stepTitle:
		if text == "" {
			b.sendText(s.chatID, msgs.AskTitle)
			return
		}
		s.console.UpdateDraft(func(d *models.BookingDraft) { d.Title = text })
		s.setWizard(stepName)
		b.sendText(s.chatID, msgs.AskName)

	case stepName:
		if text == "" {
			b.sendText(s.chatID, msgs.AskName)
			return
		}
		s.console.UpdateDraft(func(d *models.BookingDraft) { d.Name = text })
		s.setWizard(stepStart)
		b.sendText(s.chatID, fmt.Sprintf(msgs.AskStart, draft.StartAt.Format(models.TimestampLayout)))

	case stepStart:
		if text != keepDefault {
			t, err := b.parseLocalTime(text)
			if err != nil {
				b.sendText(s.chatID, msgs.InvalidTime)
				return
			}
			s.console.UpdateDraft(func(d *models.BookingDraft) { d.StartAt = t })
		}
		s.setWizard(stepEnd)
		b.sendText(s.chatID, fmt.Sprintf(msgs.AskEnd, s.console.Draft().EndAt.Format(models.TimestampLayout)))

	case stepEnd:
		if text != keepDefault {
			t, err := b.parseLocalTime(text)
			if err != nil {
				b.sendText(s.chatID, msgs.InvalidTime)
				return
			}
			s.console.UpdateDraft(func(d *models.BookingDraft) { d.EndAt = t })
		}
		s.setWizard(stepIdle)
		b.dispatch(ctx, s, actionTimeout, func(ctx context.Context) { s.console.Submit(ctx) })
	}
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Answer right away so the client stops showing the spinner.
	if _, err := b.tg.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Debug().Err(err).Msg("answer callback failed")
	}
	if callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	s, err := b.session(ctx, chatID)
	if err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to open session")
		return
	}

	data := callback.Data
	switch {
	case data == cbPrev:
		b.metrics.command("prev")
		b.dispatch(ctx, s, actionTimeout, s.console.Previous)
	case data == cbNext:
		b.metrics.command("next")
		b.dispatch(ctx, s, actionTimeout, s.console.Next)
	case data == cbToday:
		b.metrics.command("today")
		b.dispatch(ctx, s, actionTimeout, s.console.Today)
	case strings.HasPrefix(data, cbDelete):
		b.metrics.command("delete")
		id := models.BookingID(strings.TrimPrefix(data, cbDelete))
		b.dispatch(ctx, s, confirmTimeout, func(ctx context.Context) { s.console.Delete(ctx, id) })
	case data == cbConfirmYes, data == cbConfirmNo:
		if !s.confirmer.answer(data == cbConfirmYes) {
			b.logger.Debug().Int64("chat_id", chatID).Msg("confirmation without a pending prompt")
		}
	default:
		b.logger.Warn().Str("data", data).Msg("unknown callback")
	}
}

// parseLocalTime reads a wall-clock timestamp in the bot's zone.
func (b *Bot) parseLocalTime(text string) (time.Time, error) {
	ts, err := models.ParseTimestamp(text)
	if err != nil {
		return time.Time{}, err
	}
	t := ts.Time
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, b.loc), nil
}
