package bot

import (
	"fmt"
	"strings"
	"sync"

	"hallconsole/internal/console"
	"hallconsole/internal/domain"
	"hallconsole/internal/i18n"
	"hallconsole/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

const (
	cbPrev       = "nav:prev"
	cbNext       = "nav:next"
	cbToday      = "nav:today"
	cbDelete     = "del:"
	cbConfirmYes = "confirm:yes"
	cbConfirmNo  = "confirm:no"
)

// chatPresenter keeps one day message per chat and edits it in place.
// Notices are separate messages deleted when they expire.
type chatPresenter struct {
	tg      domain.TelegramSender
	chatID  int64
	catalog *i18n.Catalog
	logger  *zerolog.Logger

	mu           sync.Mutex
	dayMessageID int
	notices      map[string]int
}

func (p *chatPresenter) RenderDay(view console.DayView) {
	text := formatDay(view, p.catalog)
	keyboard := dayKeyboard(view, p.catalog)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.dayMessageID != 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(p.chatID, p.dayMessageID, text, keyboard)
		_, err := p.tg.Send(edit)
		if err == nil || strings.Contains(err.Error(), "message is not modified") {
			return
		}
		p.logger.Warn().Err(err).Int("message_id", p.dayMessageID).Msg("edit day message failed, sending a new one")
	}

	msg := tgbotapi.NewMessage(p.chatID, text)
	msg.ReplyMarkup = keyboard
	sent, err := p.tg.Send(msg)
	if err != nil {
		p.logger.Error().Err(err).Msg("send day message failed")
		return
	}
	p.dayMessageID = sent.MessageID
}

// RenderDraft is a no-op: the booking wizard prompts carry the draft.
func (p *chatPresenter) RenderDraft(models.BookingDraft) {}

func (p *chatPresenter) ShowNotice(notice console.Notice) {
	sent, err := p.tg.Send(tgbotapi.NewMessage(p.chatID, notice.Text))
	if err != nil {
		p.logger.Error().Err(err).Str("kind", notice.Kind).Msg("send notice failed")
		return
	}
	p.mu.Lock()
	p.notices[notice.ID] = sent.MessageID
	p.mu.Unlock()
}

func (p *chatPresenter) ClearNotice(notice console.Notice) {
	p.mu.Lock()
	messageID, ok := p.notices[notice.ID]
	delete(p.notices, notice.ID)
	p.mu.Unlock()
	if !ok {
		return
	}
	if _, err := p.tg.Request(tgbotapi.NewDeleteMessage(p.chatID, messageID)); err != nil {
		p.logger.Debug().Err(err).Int("message_id", messageID).Msg("delete notice failed")
	}
}

// detachDay makes the next render post a fresh day message below the chat.
func (p *chatPresenter) detachDay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dayMessageID = 0
}

func formatDay(view console.DayView, catalog *i18n.Catalog) string {
	msgs := catalog.Messages
	var sb strings.Builder
	fmt.Fprintf(&sb, "📅 %s\n", view.Heading)

	if view.State == console.StateLoaded || view.State == console.StateEmpty {
		fmt.Fprintf(&sb, "%s: %s | %s: %s\n", msgs.CountLabel, view.Count, msgs.HoursLabel, view.Hours)
	}
	sb.WriteString("\n")

	if !view.HasTable() {
		sb.WriteString(view.Placeholder)
		return sb.String()
	}
	for i, row := range view.Rows {
		fmt.Fprintf(&sb, "%d. %s | %s | %s\n", i+1, row.Title, row.Name, row.TimeRange)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func dayKeyboard(view console.DayView, catalog *i18n.Catalog) tgbotapi.InlineKeyboardMarkup {
	msgs := catalog.Messages
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, row := range view.Rows {
		label := fmt.Sprintf("🗑 %d. %s %s", i+1, msgs.Delete, row.TimeRange)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, cbDelete+row.ID.String()),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(msgs.Previous, cbPrev),
		tgbotapi.NewInlineKeyboardButtonData(msgs.Today, cbToday),
		tgbotapi.NewInlineKeyboardButtonData(msgs.Next, cbNext),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard(catalog *i18n.Catalog) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(catalog.Messages.Yes, cbConfirmYes),
			tgbotapi.NewInlineKeyboardButtonData(catalog.Messages.No, cbConfirmNo),
		),
	)
}
