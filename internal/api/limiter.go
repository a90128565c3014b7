package api

import (
	"hallconsole/internal/config"
	"hallconsole/internal/models"

	"golang.org/x/time/rate"
)

// newLimiter throttles outgoing calls. A non-positive RPS disables throttling.
func newLimiter(cfg config.APIRateLimitConfig) *rate.Limiter {
	if cfg.RPS <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = models.DefaultRateLimitBurst
	}
	return rate.NewLimiter(rate.Limit(cfg.RPS), burst)
}
