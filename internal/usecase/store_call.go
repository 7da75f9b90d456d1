package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopping-list-bot/internal/domain"
	"shopping-list-bot/internal/infra/metrics"
)

// DefaultQueryTimeout bounds a store call when the caller configured none.
const DefaultQueryTimeout = 5 * time.Second

// callStore runs one store operation under its own deadline. Every failure
// other than domain.ErrNotFound comes back wrapped in domain.ErrStoreUnavailable
// so callers classify on a single sentinel. There are no retries.
func callStore[T any](ctx context.Context, timeout time.Duration, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	v, err := fn(ctx)
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		// A miss is an answer from a healthy store.
		metrics.ObserveStoreCall(op, time.Since(start), nil)
		return v, err
	}
	metrics.ObserveStoreCall(op, time.Since(start), err)
	return v, fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
