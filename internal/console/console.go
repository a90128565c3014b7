package console

import (
	"context"
	"errors"
	"sync"
	"time"

	"hallconsole/internal/api"
	"hallconsole/internal/domain"
	"hallconsole/internal/events"
	"hallconsole/internal/i18n"
	"hallconsole/internal/metrics"
	"hallconsole/internal/models"

	"github.com/rs/zerolog"
)

// Presenter draws console state. RenderDay and RenderDraft are called with
// the console locked; ShowNotice and ClearNotice may arrive from a timer
// goroutine. Implementations must be safe for concurrent use and must not
// call back into the Console.
type Presenter interface {
	RenderDay(view DayView)
	RenderDraft(draft models.BookingDraft)
	ShowNotice(notice Notice)
	ClearNotice(notice Notice)
}

// Confirmer asks the user a yes/no question and blocks until answered.
// An error counts as "no".
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type Options struct {
	API       domain.BookingAPI
	Presenter Presenter
	Confirmer Confirmer
	Catalog   *i18n.Catalog
	Events    domain.EventPublisher
	Logger    *zerolog.Logger

	Location    *time.Location
	NoticeTTL   time.Duration
	DraftLength time.Duration

	// InitialDay overrides "today" for Start.
	InitialDay models.Day
	Now        func() time.Time
}

// Console owns the viewed day, the draft and the notice surface.
type Console struct {
	mu sync.Mutex

	api       domain.BookingAPI
	presenter Presenter
	confirmer Confirmer
	catalog   *i18n.Catalog
	events    domain.EventPublisher
	logger    *zerolog.Logger
	notifier  *Notifier

	loc         *time.Location
	draftLength time.Duration
	now         func() time.Time

	day   models.Day
	view  DayView
	draft models.BookingDraft
	seq   uint64
}

func New(opts Options) (*Console, error) {
	if opts.API == nil {
		return nil, errors.New("console: booking api is required")
	}
	if opts.Presenter == nil {
		return nil, errors.New("console: presenter is required")
	}
	if opts.Confirmer == nil {
		return nil, errors.New("console: confirmer is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("console: catalog is required")
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
	draftLength := opts.DraftLength
	if draftLength <= 0 {
		draftLength = models.DefaultDraftMinutes * time.Minute
	}

	c := &Console{
		api:         opts.API,
		presenter:   opts.Presenter,
		confirmer:   opts.Confirmer,
		catalog:     opts.Catalog,
		events:      opts.Events,
		logger:      logger,
		loc:         loc,
		draftLength: draftLength,
		now:         now,
		day:         opts.InitialDay,
	}
	c.notifier = NewNotifier(opts.NoticeTTL, opts.Presenter.ShowNotice, opts.Presenter.ClearNotice)
	c.draft = models.DefaultDraft(c.localNow(), draftLength)
	return c, nil
}

// Start renders the draft and loads the initial day.
func (c *Console) Start(ctx context.Context) {
	c.navigate(ctx, func(d models.Day) models.Day {
		if d.IsZero() {
			return models.Today(c.now(), c.loc)
		}
		return d
	})
}

func (c *Console) Previous(ctx context.Context) {
	c.navigate(ctx, func(d models.Day) models.Day { return d.AddDays(-1) })
}

func (c *Console) Next(ctx context.Context) {
	c.navigate(ctx, func(d models.Day) models.Day { return d.AddDays(1) })
}

func (c *Console) Today(ctx context.Context) {
	c.navigate(ctx, func(models.Day) models.Day { return models.Today(c.now(), c.loc) })
}

// GoTo jumps straight to day.
func (c *Console) GoTo(ctx context.Context, day models.Day) {
	c.navigate(ctx, func(models.Day) models.Day { return day })
}

// Refresh reloads the viewed day without touching the draft.
func (c *Console) Refresh(ctx context.Context) {
	c.refresh(ctx)
}

func (c *Console) Day() models.Day {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.day
}

func (c *Console) View() DayView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Console) Draft() models.BookingDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Notice returns the notice currently on screen.
func (c *Console) Notice() (Notice, bool) {
	return c.notifier.Current()
}

// UpdateDraft applies edit to the draft and re-renders the form.
func (c *Console) UpdateDraft(edit func(*models.BookingDraft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	edit(&c.draft)
	c.presenter.RenderDraft(c.draft)
}

// Submit sends the draft as a new booking. It reports whether the booking
// was created; failures are shown as notices, never returned.
func (c *Console) Submit(ctx context.Context) bool {
	c.mu.Lock()
	draft := c.draft
	day := c.day
	c.mu.Unlock()
	if missing := draft.Missing(); len(missing) > 0 {
		c.logger.Debug().Strs("missing", missing).Msg("draft incomplete")
		c.notifier.Show(models.NoticeError, c.catalog.Messages.RequiredFields)
		return false
	}

	msg, err := c.api.CreateBooking(ctx, draft)
	if err != nil {
		text := c.catalog.Failure(api.MessageOf(err))
		c.logger.Warn().Err(err).Str("title", draft.Title).Msg("create booking failed")
		c.notifier.Show(models.NoticeError, text)
		c.publish(events.EventBookingFailed, events.ConsoleEventPayload{
			Date:    day.String(),
			Title:   draft.Title,
			Name:    draft.Name,
			Action:  "create",
			Message: text,
		})
		return false
	}

	c.logger.Info().Str("title", draft.Title).Str("name", draft.Name).Msg("booking created")
	c.mu.Lock()
	c.draft = models.DefaultDraft(c.localNow(), c.draftLength)
	c.presenter.RenderDraft(c.draft)
	c.mu.Unlock()
	c.notifier.Show(models.NoticeOK, c.success(msg, c.catalog.Messages.Created))

	c.publish(events.EventBookingCreated, events.ConsoleEventPayload{
		Date:    day.String(),
		Title:   draft.Title,
		Name:    draft.Name,
		Action:  "create",
		Message: msg,
	})
	c.refresh(ctx)
	return true
}

// Delete asks for confirmation and then removes the booking. Declining
// sends nothing and changes nothing on screen.
func (c *Console) Delete(ctx context.Context, id models.BookingID) bool {
	ok, err := c.confirmer.Confirm(ctx, c.catalog.Messages.ConfirmDelete)
	if err != nil {
		c.logger.Debug().Err(err).Str("booking_id", id.String()).Msg("delete confirmation aborted")
		return false
	}
	if !ok {
		return false
	}

	day := c.Day()
	msg, err := c.api.DeleteBooking(ctx, id)
	if err != nil {
		text := c.catalog.Failure(api.MessageOf(err))
		c.logger.Warn().Err(err).Str("booking_id", id.String()).Msg("delete booking failed")
		c.notifier.Show(models.NoticeError, text)
		c.publish(events.EventBookingFailed, events.ConsoleEventPayload{
			Date:      day.String(),
			BookingID: id.String(),
			Action:    "delete",
			Message:   text,
		})
		return false
	}

	c.logger.Info().Str("booking_id", id.String()).Msg("booking deleted")
	c.notifier.Show(models.NoticeOK, c.success(msg, c.catalog.Messages.Deleted))
	c.publish(events.EventBookingDeleted, events.ConsoleEventPayload{
		Date:      day.String(),
		BookingID: id.String(),
		Action:    "delete",
		Message:   msg,
	})
	c.refresh(ctx)
	return true
}

// Close stops the notice timer.
func (c *Console) Close() {
	c.notifier.Close()
}

func (c *Console) navigate(ctx context.Context, move func(models.Day) models.Day) {
	c.mu.Lock()
	c.day = move(c.day)
	c.draft.ResetTimes(c.localNow(), c.draftLength)
	c.presenter.RenderDraft(c.draft)
	c.mu.Unlock()

	c.refresh(ctx)
}

// refresh fetches the viewed day. Only the most recently issued fetch may
// change the view; anything older is dropped when it lands.
func (c *Console) refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	day := c.day
	c.view = LoadingView(day, c.catalog)
	c.presenter.RenderDay(c.view)
	c.mu.Unlock()

	bookings, err := c.api.ListBookings(ctx, day)

	c.mu.Lock()
	if token != c.seq {
		c.mu.Unlock()
		metrics.IncStaleFetch()
		c.logger.Debug().Str("date", day.String()).Uint64("token", token).Msg("stale fetch discarded")
		return
	}

	if err != nil {
		c.view = FailedView(day, c.catalog)
		c.presenter.RenderDay(c.view)
		c.mu.Unlock()
		c.notifier.Show(models.NoticeError, c.catalog.Failure(api.MessageOf(err)))
		c.logger.Warn().Err(err).Str("date", day.String()).Msg("load bookings failed")
		return
	}

	c.view = BuildDayView(day, bookings, c.catalog)
	c.presenter.RenderDay(c.view)
	state := c.view.State
	c.mu.Unlock()

	summary := bookings.Summary()
	c.publish(events.EventDayLoaded, events.ConsoleEventPayload{
		Date:   day.String(),
		Action: string(state),
		Count:  summary.Count,
		Hours:  summary.HoursBooked,
	})
}

func (c *Console) success(apiMessage, fallback string) string {
	if apiMessage != "" {
		return apiMessage
	}
	return fallback
}

func (c *Console) localNow() time.Time {
	return c.now().In(c.loc)
}

func (c *Console) publish(eventType string, payload events.ConsoleEventPayload) {
	if c.events == nil {
		return
	}
	if err := c.events.PublishJSON(eventType, payload); err != nil {
		c.logger.Warn().Err(err).Str("event", eventType).Msg("publish event failed")
	}
}
