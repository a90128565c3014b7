package repository

import (
	"context"
	"sync"
	"time"

	"hallconsole/internal/models"
)

type memoryEntry struct {
	state     models.ChatState
	expiresAt time.Time
}

// MemoryStateRepository keeps chat state in process. It is the fallback when Redis is down.
type MemoryStateRepository struct {
	states sync.Map
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryStateRepository(ttl time.Duration) *MemoryStateRepository {
	if ttl <= 0 {
		ttl = models.DefaultStateTTL * time.Second
	}
	return &MemoryStateRepository{
		ttl: ttl,
		now: time.Now,
	}
}

func (r *MemoryStateRepository) GetState(ctx context.Context, chatID int64) (*models.ChatState, error) {
	val, ok := r.states.Load(chatID)
	if !ok {
		return nil, nil
	}
	entry := val.(*memoryEntry)
	if r.now().After(entry.expiresAt) {
		r.states.CompareAndDelete(chatID, val)
		return nil, nil
	}
	state := entry.state
	return &state, nil
}

func (r *MemoryStateRepository) SetState(ctx context.Context, state *models.ChatState) error {
	r.states.Store(state.ChatID, &memoryEntry{
		state:     *state,
		expiresAt: r.now().Add(r.ttl),
	})
	return nil
}
