package repository

import (
	"context"
	"testing"
	"time"

	"hallconsole/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStateRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	defer client.Close()

	repo := NewRedisStateRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		require.NoError(t, repo.SetState(ctx, sampleState(42)))

		got, err := repo.GetState(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "2024-03-05", got.ViewedDate)
		assert.Equal(t, "name", got.Step)
		assert.Equal(t, "Board Review", got.Draft.Title)
		assert.True(t, sampleState(42).Draft.StartAt.Equal(got.Draft.StartAt))
		assert.True(t, s.Exists("chat_state:42"))
		assert.Equal(t, time.Hour, s.TTL("chat_state:42"))
	})

	t.Run("Miss", func(t *testing.T) {
		got, err := repo.GetState(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Expiry", func(t *testing.T) {
		require.NoError(t, repo.SetState(ctx, sampleState(43)))
		s.FastForward(time.Hour + time.Second)

		got, err := repo.GetState(ctx, 43)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("CorruptEntry", func(t *testing.T) {
		require.NoError(t, s.Set("chat_state:44", "{not json"))
		_, err := repo.GetState(ctx, 44)
		assert.Error(t, err)
	})

	t.Run("ServerDown", func(t *testing.T) {
		down, err := miniredis.Run()
		require.NoError(t, err)
		downClient := NewRedisClient(config.RedisConfig{Address: down.Addr()})
		defer downClient.Close()
		down.Close()

		downRepo := NewRedisStateRepository(downClient, time.Hour)
		_, err = downRepo.GetState(ctx, 42)
		assert.Error(t, err)
		assert.Error(t, downRepo.SetState(ctx, sampleState(42)))
	})

	t.Run("NilClient", func(t *testing.T) {
		nilRepo := NewRedisStateRepository(nil, time.Hour)
		_, err := nilRepo.GetState(ctx, 42)
		assert.ErrorContains(t, err, "redis client is nil")
		assert.Error(t, nilRepo.SetState(ctx, sampleState(42)))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})

	t.Run("Close", func(t *testing.T) {
		other := redis.NewClient(&redis.Options{Addr: s.Addr()})
		assert.NoError(t, Close(other))
		assert.NoError(t, Close(nil))
	})
}
