package app

import (
	"context"
	"io"
	"os"
	"time"

	"hallconsole/internal/api"
	"hallconsole/internal/config"
	"hallconsole/internal/domain"
	"hallconsole/internal/events"
	"hallconsole/internal/health"
	"hallconsole/internal/i18n"
	"hallconsole/internal/logging"
	"hallconsole/internal/metrics"
	"hallconsole/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Runtime is everything a front-end binary needs besides its own UI.
type Runtime struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Catalog  *i18n.Catalog
	Location *time.Location
	API      *api.Client
	Events   *events.EventBus
	States   domain.StateRepository

	redis     *redis.Client
	logCloser io.Closer
}

// ConfigPath honours CONFIG_PATH and falls back to configs/config.yaml.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "configs/config.yaml"
}

// Bootstrap loads config, builds the logger, the chat state repository, the
// API client and the event bus.
func Bootstrap(ctx context.Context, configPath, component string) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	base, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, err
	}
	logger := logging.Component(base, component)

	rt := &Runtime{Config: cfg, Logger: logger, logCloser: closer}

	rt.Catalog, err = i18n.Load(cfg.Console.Locale, cfg.Console.LocaleFile)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Location, err = cfg.Console.Location()
	if err != nil {
		rt.Close()
		return nil, err
	}

	metrics.Register()

	rt.States, rt.redis = buildStateRepository(ctx, cfg, logging.Component(base, "state"))
	rt.API = api.NewClient(cfg.API, logging.Component(base, "booking-api"))

	rt.Events = events.NewEventBus()
	subscribeConsoleEvents(rt.Events, logging.Component(base, "events"))

	logger.Info().
		Str("api", cfg.API.BaseURL).
		Str("locale", rt.Catalog.Locale).
		Str("timezone", rt.Location.String()).
		Msg("runtime ready")
	return rt, nil
}

// buildStateRepository keeps chat state in Redis, backed by process memory,
// when an address is configured, and in memory alone otherwise.
func buildStateRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (domain.StateRepository, *redis.Client) {
	ttl := cfg.Redis.StateTTL()
	memory := repository.NewMemoryStateRepository(ttl)
	if cfg.Redis.Address == "" {
		return memory, nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, client); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable")
	}
	primary := repository.NewRedisStateRepository(client, ttl)
	return repository.NewFailoverStateRepository(primary, memory, logger), client
}

func subscribeConsoleEvents(bus *events.EventBus, logger *zerolog.Logger) {
	handler := func(ev *events.Event) error {
		var payload events.ConsoleEventPayload
		if err := ev.Decode(&payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		entry := logger.Info()
		if ev.Type == events.EventBookingFailed {
			entry = logger.Warn()
		}
		entry.Str("event", ev.Type).
			Str("date", payload.Date).
			Str("booking_id", payload.BookingID).
			Str("action", payload.Action).
			Str("message", payload.Message).
			Msg("console event")
		return nil
	}

	bus.SubscribeAll(handler,
		events.EventDayLoaded,
		events.EventBookingCreated,
		events.EventBookingDeleted,
		events.EventBookingFailed,
	)
}

// HealthChecks lists the readiness checks for the configured dependencies.
func (r *Runtime) HealthChecks() map[string]health.Check {
	checks := map[string]health.Check{}
	if r.redis != nil {
		client := r.redis
		checks["redis"] = func(ctx context.Context) error { return repository.Ping(ctx, client) }
	}
	return checks
}

// ServeHealth starts the health and metrics listener when a port is configured.
func (r *Runtime) ServeHealth(ctx context.Context) {
	port := r.Config.Monitoring.HealthCheckPort
	if port <= 0 {
		return
	}
	handler := health.NewHandler(r.HealthChecks(), r.Config.Monitoring.PrometheusEnabled)
	go func() {
		if err := health.Serve(ctx, port, handler, r.Logger); err != nil {
			r.Logger.Error().Err(err).Msg("health server error")
		}
	}()
}

func (r *Runtime) Close() {
	if err := repository.Close(r.redis); err != nil {
		r.Logger.Warn().Err(err).Msg("close redis")
	}
	if r.logCloser != nil {
		_ = r.logCloser.Close()
	}
}
