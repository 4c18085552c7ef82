package resilience

import (
	"context"
	"time"

	"github.com/kbukum/servicebox/di"
)

// RetryFactory wraps a service factory so transient construction failures
// are retried. Only the final error reaches the container, which caches
// nothing for it.
//
//	di.Declare(c, keys.DB, resilience.RetryFactory(cfg, openDB))
func RetryFactory[T any](cfg RetryConfig, factory func(context.Context, *di.Container) (T, error)) func(context.Context, *di.Container) (T, error) {
	return func(ctx context.Context, c *di.Container) (T, error) {
		return Retry(ctx, cfg, func(ctx context.Context) (T, error) {
			return factory(ctx, c)
		})
	}
}

// TimeoutFactory wraps a service factory so construction fails with a
// TIMEOUT error once d elapses.
func TimeoutFactory[T any](d time.Duration, factory func(context.Context, *di.Container) (T, error)) func(context.Context, *di.Container) (T, error) {
	return func(ctx context.Context, c *di.Container) (T, error) {
		return race(ctx, "resolve", d, func(ctx context.Context) (T, error) {
			return factory(ctx, c)
		})
	}
}
