package resilience

import (
	"context"
	"time"

	apperrors "github.com/kbukum/servicebox/errors"
)

// Race runs fn and waits at most d for it to return. When the timer wins it
// returns a TIMEOUT error naming operation; fn keeps running in the
// background with a cancelled context. A non-positive d runs fn inline.
func Race(ctx context.Context, operation string, d time.Duration, fn func(context.Context) error) error {
	_, err := race(ctx, operation, d, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

type outcome[T any] struct {
	value T
	err   error
}

func race[T any](ctx context.Context, operation string, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn(ctx)
		done <- outcome[T]{value: v, err: err}
	}()

	var zero T
	select {
	case out := <-done:
		// fn may have returned because the deadline cancelled its context.
		if out.err != nil && context.Cause(ctx) == context.DeadlineExceeded {
			return zero, apperrors.Timeout(operation)
		}
		return out.value, out.err
	case <-ctx.Done():
		if cause := context.Cause(ctx); cause != context.DeadlineExceeded {
			return zero, cause
		}
		return zero, apperrors.Timeout(operation)
	}
}
