package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hallconsole/internal/config"
	"hallconsole/internal/events"
	"hallconsole/internal/models"
	"hallconsole/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestBootstrapWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	path := writeConfig(t, `
api:
  base_url: http://127.0.0.1:5000
redis:
  address: `+mr.Addr()+`
console:
  locale: en
  timezone: UTC
logging:
  output: stderr
`)

	rt, err := Bootstrap(context.Background(), path, "test")
	require.NoError(t, err)
	t.Cleanup(rt.Close)

	assert.Equal(t, "en", rt.Catalog.Locale)
	assert.Equal(t, "UTC", rt.Location.String())
	require.NotNil(t, rt.API)
	assert.IsType(t, &repository.FailoverStateRepository{}, rt.States)

	checks := rt.HealthChecks()
	require.Contains(t, checks, "redis")
	assert.NoError(t, checks["redis"](context.Background()))

	mr.Close()
	assert.Error(t, checks["redis"](context.Background()))
}

func TestBootstrapWithoutRedis(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://127.0.0.1:5000
console:
  timezone: UTC
`)

	rt, err := Bootstrap(context.Background(), path, "test")
	require.NoError(t, err)
	t.Cleanup(rt.Close)

	assert.Equal(t, "ar", rt.Catalog.Locale)
	assert.Empty(t, rt.HealthChecks())
	assert.IsType(t, &repository.MemoryStateRepository{}, rt.States)
}

func TestBootstrapRejectsBadConfig(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: ftp://example.com\n")
	_, err := Bootstrap(context.Background(), path, "test")
	assert.Error(t, err)

	_, err = Bootstrap(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"), "test")
	assert.Error(t, err)
}

func TestBuildStateRepository(t *testing.T) {
	logger := zerolog.Nop()
	ctx := context.Background()

	cfg := &config.Config{}
	repo, client := buildStateRepository(ctx, cfg, &logger)
	assert.IsType(t, &repository.MemoryStateRepository{}, repo)
	assert.Nil(t, client)

	mr := miniredis.RunT(t)
	cfg.Redis.Address = mr.Addr()
	cfg.Redis.StateTTLSeconds = 60
	repo, client = buildStateRepository(ctx, cfg, &logger)
	require.NotNil(t, client)
	t.Cleanup(func() { _ = client.Close() })
	assert.IsType(t, &repository.FailoverStateRepository{}, repo)

	require.NoError(t, repo.SetState(ctx, &models.ChatState{ChatID: 9, ViewedDate: "2024-03-01"}))
	assert.True(t, mr.Exists("chat_state:9"))
	assert.Equal(t, time.Minute, mr.TTL("chat_state:9"))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "configs/config.yaml", ConfigPath())

	t.Setenv("CONFIG_PATH", "/etc/hall.yaml")
	assert.Equal(t, "/etc/hall.yaml", ConfigPath())
}

func TestConsoleEventsAreHandled(t *testing.T) {
	logger := zerolog.Nop()
	bus := events.NewEventBus()
	subscribeConsoleEvents(bus, &logger)

	assert.NotPanics(t, func() {
		require.NoError(t, bus.PublishJSON(events.EventBookingFailed, events.ConsoleEventPayload{Date: "2024-03-01", Action: "delete"}))
		assert.NoError(t, bus.Publish(&events.Event{Type: events.EventDayLoaded, Payload: []byte("not json")}))
	})
}
