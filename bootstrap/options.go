package bootstrap

import (
	"time"

	"github.com/kbukum/servicebox/di"
	"github.com/kbukum/servicebox/logger"
)

// Option configures the App during creation.
// Options are non-generic so they can be used with any config type.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	gracefulTimeout *time.Duration
	observers       []di.Observer
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's Logging field.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithGracefulTimeout overrides container.dispose_timeout as the upper
// bound for shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}

// WithObserver attaches an extra observer to the container, next to the
// logging and telemetry observers the app installs itself.
func WithObserver(obs di.Observer) Option {
	return func(o *appOptions) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}
