package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/servicebox/logger"
)

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider should be shut down on application exit.
func InitMeter(ctx context.Context, info ServiceInfo, cfg MetricsConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(info)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", info.Name,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns the package meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Metric names.
const (
	MetricResolveTotal    = "di.resolve.total"
	MetricResolveDuration = "di.resolve.duration"
	MetricDisposeTotal    = "di.dispose.total"
	MetricDisposeDuration = "di.dispose.duration"
)

// ContainerMetrics holds the instruments recording factory and disposer runs.
type ContainerMetrics struct {
	resolveTotal    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	disposeTotal    metric.Int64Counter
	disposeDuration metric.Float64Histogram
}

// NewContainerMetrics creates the container instruments on meter.
func NewContainerMetrics(meter metric.Meter) (*ContainerMetrics, error) {
	resolveTotal, err := meter.Int64Counter(MetricResolveTotal,
		metric.WithDescription("Total number of factory runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricResolveTotal, err)
	}

	resolveDuration, err := meter.Float64Histogram(MetricResolveDuration,
		metric.WithDescription("Duration of factory runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricResolveDuration, err)
	}

	disposeTotal, err := meter.Int64Counter(MetricDisposeTotal,
		metric.WithDescription("Total number of disposer runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricDisposeTotal, err)
	}

	disposeDuration, err := meter.Float64Histogram(MetricDisposeDuration,
		metric.WithDescription("Duration of disposer runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDisposeDuration, err)
	}

	return &ContainerMetrics{
		resolveTotal:    resolveTotal,
		resolveDuration: resolveDuration,
		disposeTotal:    disposeTotal,
		disposeDuration: disposeDuration,
	}, nil
}

// RecordResolve records one factory run for service.
func (m *ContainerMetrics) RecordResolve(ctx context.Context, service string, d time.Duration, err error) {
	m.resolveTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrService, service),
		attribute.String(AttrStatus, status(err)),
	))
	m.resolveDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrService, service),
	))
}

// RecordDispose records one disposer run for service.
func (m *ContainerMetrics) RecordDispose(ctx context.Context, service string, d time.Duration, err error) {
	m.disposeTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrService, service),
		attribute.String(AttrStatus, status(err)),
	))
	m.disposeDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String(AttrService, service),
	))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
