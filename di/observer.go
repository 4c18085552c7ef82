package di

import (
	"context"
	"time"
)

// Observer is notified around every factory and disposer invocation.
// Cache hits are not reported.
type Observer interface {
	// ResolveStarted is called before a factory runs. The returned context is
	// the one handed to the factory, so observers can attach spans that
	// nested resolutions inherit.
	ResolveStarted(ctx context.Context, name string) context.Context
	// ResolveFinished is called once the factory returned.
	ResolveFinished(ctx context.Context, name string, elapsed time.Duration, err error)
	// DisposeFinished is called once the disposer of a cached service returned.
	DisposeFinished(ctx context.Context, name string, elapsed time.Duration, err error)
}

// Observers fans notifications out to several observers in order.
type Observers []Observer

func (o Observers) ResolveStarted(ctx context.Context, name string) context.Context {
	for _, obs := range o {
		ctx = obs.ResolveStarted(ctx, name)
	}
	return ctx
}

func (o Observers) ResolveFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	for _, obs := range o {
		obs.ResolveFinished(ctx, name, elapsed, err)
	}
}

func (o Observers) DisposeFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	for _, obs := range o {
		obs.DisposeFinished(ctx, name, elapsed, err)
	}
}
