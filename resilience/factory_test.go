package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kbukum/servicebox/di"
	apperrors "github.com/kbukum/servicebox/errors"
)

var connKey = di.NewKey[string]("conn")

func TestRetryFactory_RetriesThenCaches(t *testing.T) {
	ctx := context.Background()
	c := di.NewContainer()

	calls := 0
	di.Declare(c, connKey, RetryFactory(fastRetry(3), func(context.Context, *di.Container) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection refused")
		}
		return "connected", nil
	}))

	v, err := di.Resolve(ctx, c, connKey)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if v != "connected" {
		t.Errorf("expected 'connected', got %q", v)
	}

	if _, err := di.Resolve(ctx, c, connKey); err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 factory calls, got %d", calls)
	}
}

func TestRetryFactory_GivesUp(t *testing.T) {
	ctx := context.Background()
	c := di.NewContainer()
	boom := errors.New("connection refused")

	calls := 0
	di.Declare(c, connKey, RetryFactory(fastRetry(2), func(context.Context, *di.Container) (string, error) {
		calls++
		return "", boom
	}))

	if _, err := di.Resolve(ctx, c, connKey); err != boom {
		t.Errorf("expected the last factory error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}

	// Nothing was cached, so the next resolution starts over.
	_, _ = di.Resolve(ctx, c, connKey)
	if calls != 4 {
		t.Errorf("expected 4 calls after a second resolution, got %d", calls)
	}
}

func TestTimeoutFactory(t *testing.T) {
	ctx := context.Background()

	t.Run("slow factory times out", func(t *testing.T) {
		c := di.NewContainer()
		di.Declare(c, connKey, TimeoutFactory(10*time.Millisecond, func(ctx context.Context, _ *di.Container) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}))

		_, err := di.Resolve(ctx, c, connKey)
		if !apperrors.HasCode(err, apperrors.ErrCodeTimeout) {
			t.Errorf("expected TIMEOUT, got %v", err)
		}
	})

	t.Run("fast factory passes through", func(t *testing.T) {
		c := di.NewContainer()
		di.Declare(c, connKey, TimeoutFactory(time.Second, func(context.Context, *di.Container) (string, error) {
			return "quick", nil
		}))

		v, err := di.Resolve(ctx, c, connKey)
		if err != nil || v != "quick" {
			t.Errorf("expected 'quick', got %q (err %v)", v, err)
		}
	})
}

func TestRace(t *testing.T) {
	ctx := context.Background()

	t.Run("work finishes first", func(t *testing.T) {
		boom := errors.New("boom")
		if err := Race(ctx, "dispose", time.Second, func(context.Context) error { return boom }); err != boom {
			t.Errorf("expected the work's error, got %v", err)
		}
	})

	t.Run("timer fires first", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		err := Race(ctx, "dispose", 10*time.Millisecond, func(context.Context) error {
			<-release
			return nil
		})
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			t.Fatalf("expected AppError, got %v", err)
		}
		if appErr.Code != apperrors.ErrCodeTimeout {
			t.Errorf("expected TIMEOUT, got %s", appErr.Code)
		}
		if appErr.Details["operation"] != "dispose" {
			t.Errorf("expected operation=dispose, got %v", appErr.Details["operation"])
		}
	})

	t.Run("parent cancellation is not a timeout", func(t *testing.T) {
		parent, cancel := context.WithCancel(ctx)
		cancel()
		err := Race(parent, "dispose", time.Second, func(ctx context.Context) error {
			<-ctx.Done()
			time.Sleep(20 * time.Millisecond)
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("non-positive duration runs inline", func(t *testing.T) {
		ran := false
		err := Race(ctx, "dispose", 0, func(context.Context) error {
			ran = true
			return nil
		})
		if err != nil || !ran {
			t.Errorf("expected inline run, got ran=%v err=%v", ran, err)
		}
	})
}

func TestRace_DisposesContainer(t *testing.T) {
	ctx := context.Background()
	c := di.NewContainer()

	disposed := false
	di.Declare(c, connKey, di.Constant("conn"), func(context.Context, string) error {
		disposed = true
		return nil
	})
	_ = di.MustResolve(ctx, c, connKey)

	if err := Race(ctx, "dispose", time.Second, c.Dispose); err != nil {
		t.Fatalf("Race failed: %v", err)
	}
	if !disposed {
		t.Error("expected the container to be disposed")
	}
}
