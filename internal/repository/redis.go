package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hallconsole/internal/config"
	"hallconsole/internal/models"

	"github.com/redis/go-redis/v9"
)

type RedisStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisStateRepository(client *redis.Client, ttl time.Duration) *RedisStateRepository {
	if ttl <= 0 {
		ttl = models.DefaultStateTTL * time.Second
	}
	return &RedisStateRepository{client: client, ttl: ttl}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("chat_state:%d", chatID)
}

func (r *RedisStateRepository) GetState(ctx context.Context, chatID int64) (*models.ChatState, error) {
	if r.client == nil {
		return nil, errors.New("redis client is nil")
	}
	val, err := r.client.Get(ctx, stateKey(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get chat state: %w", err)
	}

	var state models.ChatState
	if err := json.Unmarshal(val, &state); err != nil {
		return nil, fmt.Errorf("decode chat state %d: %w", chatID, err)
	}
	return &state, nil
}

// SetState overwrites the chat's state and restarts its TTL.
func (r *RedisStateRepository) SetState(ctx context.Context, state *models.ChatState) error {
	if r.client == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode chat state: %w", err)
	}
	if err := r.client.Set(ctx, stateKey(state.ChatID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("set chat state: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection. A nil client is fine.
func Close(client *redis.Client) error {
	if client == nil {
		return nil
	}
	return client.Close()
}
