package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/servicebox/di"
)

// ContainerObserver traces factory runs and records resolve and dispose
// metrics. The span started for a factory is carried in the context handed
// to that factory, so resolving a dependency chain yields nested spans.
type ContainerObserver struct {
	tracer  trace.Tracer
	metrics *ContainerMetrics
}

var _ di.Observer = (*ContainerObserver)(nil)

// NewContainerObserver creates an observer on the given tracer and meter.
func NewContainerObserver(tracer trace.Tracer, meter metric.Meter) (*ContainerObserver, error) {
	m, err := NewContainerMetrics(meter)
	if err != nil {
		return nil, err
	}
	return &ContainerObserver{tracer: tracer, metrics: m}, nil
}

// NewGlobalContainerObserver uses the globally installed providers.
func NewGlobalContainerObserver() (*ContainerObserver, error) {
	return NewContainerObserver(Tracer(), Meter())
}

func (o *ContainerObserver) ResolveStarted(ctx context.Context, name string) context.Context {
	ctx, _ = o.tracer.Start(ctx, SpanResolve+" "+name,
		trace.WithAttributes(attribute.String(AttrService, name)),
	)
	return ctx
}

func (o *ContainerObserver) ResolveFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	if err != nil {
		SetSpanError(ctx, err)
	}
	trace.SpanFromContext(ctx).End()
	o.metrics.RecordResolve(ctx, name, elapsed, err)
}

// DisposeFinished records a disposer run. Disposers are not wrapped by
// ResolveStarted, so the span is emitted after the fact with the measured
// start time.
func (o *ContainerObserver) DisposeFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	end := time.Now()
	ctx, span := o.tracer.Start(ctx, SpanDispose+" "+name,
		trace.WithTimestamp(end.Add(-elapsed)),
		trace.WithAttributes(attribute.String(AttrService, name)),
	)
	if err != nil {
		SetSpanError(ctx, err)
	}
	span.End(trace.WithTimestamp(end))
	o.metrics.RecordDispose(ctx, name, elapsed, err)
}
