package bot

import (
	"context"
	"errors"
	"sync"
	"time"

	"hallconsole/internal/domain"
	"hallconsole/internal/i18n"
	"hallconsole/internal/metrics"
	"hallconsole/internal/models"
	"hallconsole/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// confirmTimeout bounds how long a delete waits for the yes/no answer.
	confirmTimeout = 2 * time.Minute
	actionTimeout  = 30 * time.Second
	saveTimeout    = 5 * time.Second
)

type Options struct {
	Telegram  domain.TelegramSender
	API       domain.BookingAPI
	Catalog   *i18n.Catalog
	Events    domain.EventPublisher
	States    domain.StateRepository
	Metrics   *Metrics
	Logger    *zerolog.Logger
	Location  *time.Location
	NoticeTTL time.Duration
	DraftLen  time.Duration
	Now       func() time.Time
}

// Bot serves one booking console per Telegram chat.
type Bot struct {
	tg      domain.TelegramSender
	api     domain.BookingAPI
	catalog *i18n.Catalog
	events  domain.EventPublisher
	states  domain.StateRepository
	metrics *Metrics
	logger  *zerolog.Logger

	loc       *time.Location
	noticeTTL time.Duration
	draftLen  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session

	actions sync.WaitGroup
}

func NewBot(opts Options) (*Bot, error) {
	if opts.Telegram == nil {
		return nil, errors.New("bot: telegram sender is required")
	}
	if opts.API == nil {
		return nil, errors.New("bot: booking api is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("bot: catalog is required")
	}

	logger := opts.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	states := opts.States
	if states == nil {
		states = repository.NewMemoryStateRepository(0)
	}

	return &Bot{
		tg:        opts.Telegram,
		api:       opts.API,
		catalog:   opts.Catalog,
		events:    opts.Events,
		states:    states,
		metrics:   opts.Metrics,
		logger:    logger,
		loc:       loc,
		noticeTTL: opts.NoticeTTL,
		draftLen:  opts.DraftLen,
		now:       now,
		sessions:  make(map[int64]*session),
	}, nil
}

// Start consumes updates until ctx is cancelled, then waits for in-flight actions.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.GetSelf().UserName).Msg("Authorized on account")

	defer b.shutdown()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	l := b.logger.With().Str("request_id", uuid.New().String()).Logger()
	ctx = l.WithContext(ctx)

	b.withRecovery(func() {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(ctx, update.CallbackQuery)
		case update.Message != nil:
			b.handleMessage(ctx, update.Message)
		}
	})
}

// dispatch runs a console action off the update loop so that a pending
// confirmation can still be answered by a later update. The chat's state is
// saved once the action is done.
func (b *Bot) dispatch(ctx context.Context, s *session, timeout time.Duration, action func(context.Context)) {
	b.actions.Add(1)
	go func() {
		defer b.actions.Done()
		actx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		b.withRecovery(func() { action(actx) })
		b.persist(ctx, s)
	}()
}

// session returns the chat's session, creating it on first contact from
// whatever state was saved for the chat.
func (b *Bot) session(ctx context.Context, chatID int64) (*session, error) {
	b.mu.Lock()
	s, ok := b.sessions[chatID]
	b.mu.Unlock()
	if ok {
		return s, nil
	}

	state := b.loadState(ctx, chatID)

	b.mu.Lock()
	defer b.mu.Unlock()
	if s, ok := b.sessions[chatID]; ok {
		return s, nil
	}
	s, err := newSession(b, chatID, state)
	if err != nil {
		return nil, err
	}
	b.sessions[chatID] = s
	if b.metrics != nil {
		b.metrics.ActiveChats.Set(float64(len(b.sessions)))
	}
	return s, nil
}

// loadState returns nil when nothing is saved or the store fails; the chat
// then starts fresh on today.
func (b *Bot) loadState(ctx context.Context, chatID int64) *models.ChatState {
	state, err := b.states.GetState(ctx, chatID)
	switch {
	case err != nil:
		metrics.IncStateLoad("error")
		b.logger.Warn().Err(err).Int64("chat_id", chatID).Msg("load chat state failed")
		return nil
	case state == nil:
		metrics.IncStateLoad("miss")
		return nil
	}
	metrics.IncStateLoad("hit")
	return state
}

// persist saves the chat's state. It outlives ctx so that actions finishing
// during shutdown are still recorded.
func (b *Bot) persist(ctx context.Context, s *session) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if err := b.states.SetState(ctx, s.snapshot()); err != nil {
		b.logger.Warn().Err(err).Int64("chat_id", s.chatID).Msg("save chat state failed")
	}
}

func (b *Bot) shutdown() {
	b.actions.Wait()
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.sessions {
		s.console.Close()
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if _, err := b.tg.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("Failed to send message")
	}
}

func (b *Bot) today() models.Day {
	return models.Today(b.now(), b.loc)
}

// Stop stops receiving Telegram updates.
func (b *Bot) Stop() {
	b.tg.StopReceivingUpdates()
}
