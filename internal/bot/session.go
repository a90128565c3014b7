package bot

import (
	"context"
	"sync"
	"time"

	"hallconsole/internal/console"
	"hallconsole/internal/domain"
	"hallconsole/internal/i18n"
	"hallconsole/internal/logging"
	"hallconsole/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// wizardStep is stored as-is in models.ChatState.Step.
type wizardStep string

const (
	stepIdle  wizardStep = ""
	stepTitle wizardStep = "title"
	stepName  wizardStep = "name"
	stepStart wizardStep = "start"
	stepEnd   wizardStep = "end"
)

func parseStep(s string) wizardStep {
	switch step := wizardStep(s); step {
	case stepTitle, stepName, stepStart, stepEnd:
		return step
	}
	return stepIdle
}

// session is one chat's console plus the state the chat UI needs around it.
type session struct {
	chatID    int64
	console   *console.Console
	presenter *chatPresenter
	confirmer *chatConfirmer

	mu   sync.Mutex
	step wizardStep

	// saveMu keeps state writes for one chat in order.
	saveMu sync.Mutex
}

// newSession builds the chat's console and resumes from state when one was
// saved for it.
func newSession(b *Bot, chatID int64, state *models.ChatState) (*session, error) {
	logger := logging.Component(b.logger, "chat")
	l := logger.With().Int64("chat_id", chatID).Logger()

	initial, ok := state.Day()
	if !ok {
		initial = b.today()
	}

	p := &chatPresenter{tg: b.tg, chatID: chatID, catalog: b.catalog, logger: &l, notices: make(map[string]int)}
	c := &chatConfirmer{tg: b.tg, chatID: chatID, catalog: b.catalog, logger: &l}

	con, err := console.New(console.Options{
		API:         b.api,
		Presenter:   p,
		Confirmer:   c,
		Catalog:     b.catalog,
		Events:      b.events,
		Logger:      &l,
		Location:    b.loc,
		NoticeTTL:   b.noticeTTL,
		DraftLength: b.draftLen,
		InitialDay:  initial,
		Now:         b.now,
	})
	if err != nil {
		return nil, err
	}
	sess := &session{chatID: chatID, console: con, presenter: p, confirmer: c}
	if state != nil {
		sess.step = parseStep(state.Step)
		restoreDraft(con, state.Draft)
	}
	return sess, nil
}

// restoreDraft copies a saved draft over the console's default one. Saved
// times only replace the defaults when both are set.
func restoreDraft(con *console.Console, saved models.BookingDraft) {
	con.UpdateDraft(func(d *models.BookingDraft) {
		d.Title = saved.Title
		d.Name = saved.Name
		d.Email = saved.Email
		if !saved.StartAt.IsZero() && !saved.EndAt.IsZero() {
			d.StartAt = saved.StartAt
			d.EndAt = saved.EndAt
		}
	})
}

// snapshot captures what is saved for the chat.
func (s *session) snapshot() *models.ChatState {
	state := &models.ChatState{
		ChatID:    s.chatID,
		Step:      string(s.wizard()),
		Draft:     s.console.Draft(),
		UpdatedAt: time.Now(),
	}
	if day := s.console.Day(); !day.IsZero() {
		state.ViewedDate = day.String()
	}
	return state
}

func (s *session) wizard() wizardStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *session) setWizard(step wizardStep) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}

// chatConfirmer asks with an inline yes/no keyboard and waits for the
// matching callback.
type chatConfirmer struct {
	tg      domain.TelegramSender
	chatID  int64
	catalog *i18n.Catalog
	logger  *zerolog.Logger

	mu      sync.Mutex
	pending chan bool
}

func (c *chatConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer := make(chan bool, 1)

	c.mu.Lock()
	if c.pending != nil {
		// A newer question supersedes an unanswered one.
		c.pending <- false
	}
	c.pending = answer
	c.mu.Unlock()

	msg := tgbotapi.NewMessage(c.chatID, prompt)
	msg.ReplyMarkup = confirmKeyboard(c.catalog)
	sent, err := c.tg.Send(msg)
	if err != nil {
		c.release(answer)
		return false, err
	}

	select {
	case yes := <-answer:
		c.removePrompt(sent.MessageID)
		return yes, nil
	case <-ctx.Done():
		c.release(answer)
		c.removePrompt(sent.MessageID)
		return false, ctx.Err()
	}
}

// answer delivers a keyboard press. It reports false when nothing was asked.
func (c *chatConfirmer) answer(yes bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return false
	}
	c.pending <- yes
	c.pending = nil
	return true
}

func (c *chatConfirmer) release(ch chan bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == ch {
		c.pending = nil
	}
}

func (c *chatConfirmer) removePrompt(messageID int) {
	if messageID == 0 {
		return
	}
	if _, err := c.tg.Request(tgbotapi.NewDeleteMessage(c.chatID, messageID)); err != nil {
		c.logger.Debug().Err(err).Msg("delete prompt failed")
	}
}

var _ console.Confirmer = (*chatConfirmer)(nil)
var _ console.Presenter = (*chatPresenter)(nil)
