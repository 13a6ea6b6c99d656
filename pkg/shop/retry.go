package shop

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

type Retry struct {
	client     Client
	baseDelay  time.Duration
	maxRetries int
}

// Shops implements Client.
func (r *Retry) Shops(ctx context.Context, location string) ([]Shop, error) {
	return withRetry(ctx, r, "shops", func() ([]Shop, error) {
		return r.client.Shops(ctx, location)
	})
}

// Reviews implements Client.
func (r *Retry) Reviews(ctx context.Context, shopID string) ([]Review, error) {
	return withRetry(ctx, r, "reviews", func() ([]Review, error) {
		return r.client.Reviews(ctx, shopID)
	})
}

func withRetry[T any](ctx context.Context, r *Retry, operation string, fn func() (T, error)) (T, error) {
	backoff := r.baseDelay
	retries := 0
	for {
		result, err := fn()
		if err != nil {
			if retries < r.maxRetries && ctx.Err() == nil {
				slog.WarnContext(ctx, "request failed, will retry", slog.String("operation", operation), slog.Duration("backoff", backoff), slog.Int("retries", retries), slog.Any("error", errors.WithStack(err)))

				timer := time.NewTimer(backoff + time.Duration(rand.Float64()*float64(r.baseDelay)))
				select {
				case <-ctx.Done():
					timer.Stop()
					var zero T
					return zero, errors.WithStack(ctx.Err())
				case <-timer.C:
				}

				backoff *= 2
				retries++
				continue
			}

			var zero T
			return zero, errors.WithStack(err)
		}

		return result, nil
	}
}

var _ Client = &Retry{}

// WithRetry wraps the given client so that failed requests are retried
// up to maxRetries times with an exponential backoff.
func WithRetry(client Client, maxRetries int, baseDelay time.Duration) *Retry {
	return &Retry{client: client, maxRetries: maxRetries, baseDelay: baseDelay}
}
