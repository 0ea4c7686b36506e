package resilience

import (
	"context"
	"errors"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// NewCircuitBreaker creates a breaker that opens after cfg.ConsecutiveFailures failed calls in a row
// and allows a single trial call after cfg.OpenTimeout.
// Calls that fail because the caller gave up are not counted as failures of the dependency.
func NewCircuitBreaker[T any](name string, cfg config.CircuitBreakerConfig) *gobreaker.CircuitBreaker[T] {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return errors.Is(err, context.Canceled)
		},
	}
	return gobreaker.NewCircuitBreaker[T](st)
}

// IsOpen reports whether err was returned because the breaker rejected the call.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
