package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hallconsole/internal/domain"
	"hallconsole/internal/models"

	"github.com/rs/zerolog"
)

const failoverRecheck = time.Minute

// FailoverStateRepository prefers the primary and switches to the fallback
// after the first primary error. The primary is retried once per minute.
// Writes always land in the fallback too, and reads return the newer of the
// two copies, so state saved during an outage survives the recovery.
type FailoverStateRepository struct {
	primary   domain.StateRepository
	fallback  domain.StateRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverStateRepository(primary, fallback domain.StateRepository, logger *zerolog.Logger) *FailoverStateRepository {
	return &FailoverStateRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverStateRepository) markDown(err error) {
	if !r.isDown.Swap(true) {
		r.logger.Error().Err(err).Msg("Primary state repository failed, falling back to memory")
	}
	r.lastCheck.Store(r.now().UnixNano())
}

func (r *FailoverStateRepository) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	return r.now().Sub(time.Unix(0, r.lastCheck.Load())) > failoverRecheck
}

func (r *FailoverStateRepository) recovered() {
	if r.isDown.Swap(false) {
		r.logger.Info().Msg("Primary state repository recovered")
	}
}

func (r *FailoverStateRepository) GetState(ctx context.Context, chatID int64) (*models.ChatState, error) {
	local, localErr := r.fallback.GetState(ctx, chatID)
	if r.usePrimary() {
		state, err := r.primary.GetState(ctx, chatID)
		if err == nil {
			r.recovered()
			return newer(state, local), nil
		}
		r.markDown(err)
	}
	return local, localErr
}

func (r *FailoverStateRepository) SetState(ctx context.Context, state *models.ChatState) error {
	fallbackErr := r.fallback.SetState(ctx, state)
	if r.usePrimary() {
		if err := r.primary.SetState(ctx, state); err != nil {
			r.markDown(err)
			return fallbackErr
		}
		r.recovered()
		return nil
	}
	return fallbackErr
}

// newer picks the more recently saved state; the primary wins ties.
func newer(primary, local *models.ChatState) *models.ChatState {
	switch {
	case local == nil:
		return primary
	case primary == nil:
		return local
	case local.UpdatedAt.After(primary.UpdatedAt):
		return local
	default:
		return primary
	}
}
