package observability

import (
	"context"
	"errors"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Providers holds whichever SDK providers Setup started.
type Providers struct {
	Tracer *sdktrace.TracerProvider
	Meter  *sdkmetric.MeterProvider
}

// Setup starts the providers enabled in cfg. Disabled signals leave the
// corresponding field nil.
func Setup(ctx context.Context, info ServiceInfo, cfg Config) (*Providers, error) {
	p := &Providers{}
	if cfg.Tracing.Enabled {
		tp, err := InitTracer(ctx, info, cfg.Tracing)
		if err != nil {
			return nil, err
		}
		p.Tracer = tp
	}
	if cfg.Metrics.Enabled {
		mp, err := InitMeter(ctx, info, cfg.Metrics)
		if err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		p.Meter = mp
	}
	return p, nil
}

// Shutdown flushes and stops every started provider.
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
