package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/servicebox/di"
	"github.com/kbukum/servicebox/logger"
	"github.com/kbukum/servicebox/observability"
	"github.com/kbukum/servicebox/resilience"
)

// App owns the lifecycle of a service built around a di.Container.
// The type parameter C is the config type; any struct embedding
// config.ServiceConfig satisfies Config.
//
// Example:
//
//	app, err := bootstrap.NewApp(&cfg, builder)
//	app.Configure(func(ctx context.Context, c *di.Container) (*di.Container, error) {
//	    di.Declare(c, keys.Store, newStore)
//	    return c, nil
//	})
//	app.Run(ctx)
type App[C Config] struct {
	Name      string
	Version   string
	Cfg       C
	Container *di.Container
	Logger    *logger.Logger
	Telemetry *observability.Providers
	Summary   *Summary

	builder         *di.Builder
	setup           di.SetupFunc
	observers       []di.Observer
	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config and the builder that
// will produce its container. It applies defaults, validates the config and
// initializes the logger.
func NewApp[C Config](cfg C, builder *di.Builder, opts ...Option) (*App[C], error) {
	if builder == nil {
		return nil, errors.New("bootstrap: nil container builder")
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	base := cfg.GetServiceConfig()

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		builder:         builder,
		gracefulTimeout: base.Container.DisposeTimeout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	app.observers = o.observers

	if o.logger != nil {
		app.Logger = o.logger
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.New(&base.Logging, base.Name)
		logger.SetGlobalLogger(app.Logger)
	}

	app.Summary = NewSummary(base.Name, base.Version)
	return app, nil
}

// Configure sets the function that declares services on the container.
// It runs during the configure phase, after the OnStart hooks.
func (a *App[C]) Configure(setup di.SetupFunc) {
	a.setup = setup
}

// OnConfigure registers a callback that runs once the container is built.
// Use it to resolve entry points such as the HTTP router.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// Run executes the lifecycle of a long-running service:
// OnStart hooks, configure, OnReady hooks, wait for a signal, shutdown.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		a.abort()
		return err
	}

	a.Logger.Info("Application ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)

	return a.stop()
}

// RunTask executes a finite task with the same lifecycle as Run. The task
// context is canceled on SIGINT/SIGTERM, and shutdown follows the task.
//
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    return importItems(ctx, app.Container)
//	})
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		a.abort()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()

	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}

	if err := a.Build(ctx); err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}

	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.Collect(a.Container)
	a.Summary.Log(a.Logger)
	return nil
}

// Build starts telemetry and builds the container through the builder,
// attaching the logging observer and, when tracing or metrics are enabled,
// the OpenTelemetry observer. Run and RunTask call it; call it directly
// when managing the lifecycle by hand.
func (a *App[C]) Build(ctx context.Context) error {
	if a.setup == nil {
		return errors.New("no container setup configured")
	}

	base := a.Cfg.GetServiceConfig()
	observers := append([]di.Observer{logger.NewContainerObserver(a.Logger)}, a.observers...)

	if base.Observability.Enabled() {
		providers, err := observability.Setup(ctx, base.ServiceInfo(), base.Observability)
		if err != nil {
			return fmt.Errorf("observability setup: %w", err)
		}
		a.Telemetry = providers

		obs, err := observability.NewGlobalContainerObserver()
		if err != nil {
			return fmt.Errorf("container instrumentation: %w", err)
		}
		observers = append(observers, obs)
	}

	a.Logger.Info("Building service container", map[string]interface{}{
		"observers": len(observers),
	})

	c, err := a.builder.With(di.WithObserver(di.Observers(observers))).BuildContainer(ctx, a.setup)
	if err != nil {
		return err
	}
	a.Container = c
	return nil
}

// WaitForSignal blocks until SIGINT/SIGTERM or context cancellation.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Received shutdown signal, graceful shutdown starting", map[string]interface{}{
			"signal": sig.String(),
		})
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context canceled, shutting down")
		return nil
	}
}

// Shutdown performs graceful shutdown. Use when managing your own lifecycle.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

// abort releases whatever a failed startup already acquired.
func (a *App[C]) abort() {
	if err := a.stop(); err != nil {
		a.Logger.Warn("Cleanup after failed startup reported errors", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// stop runs the OnStop hooks, then disposes the container. Disposal races
// the graceful timeout; a timeout is reported but does not block exit.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	if a.Container != nil {
		if err := resilience.Race(ctx, "dispose", a.gracefulTimeout, a.Container.Dispose); err != nil {
			a.Logger.Error("Container dispose error", map[string]interface{}{
				"error": err.Error(),
			})
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	if a.Telemetry != nil {
		if err := a.Telemetry.Shutdown(ctx); err != nil {
			a.Logger.Warn("Telemetry shutdown error", map[string]interface{}{
				"error": err.Error(),
			})
		}
		a.Telemetry = nil
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
