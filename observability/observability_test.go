package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/servicebox/di"
)

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Tracing.Endpoint != "localhost:4318" {
		t.Errorf("expected tracing endpoint 'localhost:4318', got %s", cfg.Tracing.Endpoint)
	}
	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.Tracing.SampleRate)
	}
	if cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Metrics.Interval)
	}
	if cfg.Enabled() {
		t.Error("expected signals to be disabled by default")
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Tracing: TracingConfig{SampleRate: 1.5}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sample rate above 1")
	}
	cfg = Config{Metrics: MetricsConfig{Interval: -time.Second}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative interval")
	}
	cfg = Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSampler(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}
	for _, tc := range tests {
		if got := sampler(tc.rate).Description(); got != tc.want {
			t.Errorf("sampler(%v) = %s, want %s", tc.rate, got, tc.want)
		}
	}
}

func TestNewContainerMetrics_Noop(t *testing.T) {
	m, err := NewContainerMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	m.RecordResolve(ctx, "svc", time.Millisecond, nil)
	m.RecordDispose(ctx, "svc", time.Millisecond, errors.New("x"))
}

func TestSetSpanError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	SetSpanError(ctx, errors.New("test error"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status.Code)
	}

	// No recording span: must not panic.
	SetSpanError(context.Background(), errors.New("no span"))
}

type testProviders struct {
	spans  *tracetest.InMemoryExporter
	reader *sdkmetric.ManualReader
	tp     *sdktrace.TracerProvider
	mp     *sdkmetric.MeterProvider
}

func newTestProviders(t *testing.T) *testProviders {
	t.Helper()
	p := &testProviders{
		spans:  tracetest.NewInMemoryExporter(),
		reader: sdkmetric.NewManualReader(),
	}
	p.tp = sdktrace.NewTracerProvider(sdktrace.WithSyncer(p.spans))
	p.mp = sdkmetric.NewMeterProvider(sdkmetric.WithReader(p.reader))
	t.Cleanup(func() {
		_ = p.tp.Shutdown(context.Background())
		_ = p.mp.Shutdown(context.Background())
	})
	return p
}

func (p *testProviders) observer(t *testing.T) *ContainerObserver {
	t.Helper()
	obs, err := NewContainerObserver(p.tp.Tracer("test"), p.mp.Meter("test"))
	if err != nil {
		t.Fatalf("creating observer: %v", err)
	}
	return obs
}

func (p *testProviders) sums(t *testing.T, name string) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := p.reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}
	out := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s is not an int64 sum", name)
			}
			for _, dp := range sum.DataPoints {
				svc, _ := dp.Attributes.Value(attribute.Key(AttrService))
				st, _ := dp.Attributes.Value(attribute.Key(AttrStatus))
				out[svc.AsString()+"/"+st.AsString()] += dp.Value
			}
		}
	}
	return out
}

func TestContainerObserver_NestedResolveSpans(t *testing.T) {
	ctx := context.Background()
	p := newTestProviders(t)

	c := di.NewContainer(di.WithObserver(p.observer(t)))
	c.Set("db", func(context.Context, *di.Container) (any, error) { return "conn", nil })
	c.Set("repo", func(ctx context.Context, c *di.Container) (any, error) {
		return c.Get(ctx, "db")
	})

	if _, err := c.Get(ctx, "repo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Cache hit: no new span.
	if _, err := c.Get(ctx, "repo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := p.spans.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	byName := map[string]tracetest.SpanStub{}
	for _, s := range spans {
		byName[s.Name] = s
	}
	db, repo := byName["di.resolve db"], byName["di.resolve repo"]
	if db.Parent.SpanID() != repo.SpanContext.SpanID() {
		t.Error("expected db span to be a child of repo span")
	}

	got := p.sums(t, MetricResolveTotal)
	want := map[string]int64{"db/ok": 1, "repo/ok": 1}
	if len(got) != len(want) || got["db/ok"] != 1 || got["repo/ok"] != 1 {
		t.Errorf("resolve totals = %v, want %v", got, want)
	}
}

func TestContainerObserver_Failures(t *testing.T) {
	ctx := context.Background()
	p := newTestProviders(t)

	c := di.NewContainer(di.WithObserver(p.observer(t)))
	c.Set("broken", func(context.Context, *di.Container) (any, error) {
		return nil, errors.New("dial failed")
	})
	c.Set("leaky", func(context.Context, *di.Container) (any, error) { return 1, nil },
		func(context.Context, any) error { return errors.New("close failed") })

	if _, err := c.Get(ctx, "broken"); err == nil {
		t.Fatal("expected factory error")
	}
	if _, err := c.Get(ctx, "leaky"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Dispose(ctx); err == nil {
		t.Fatal("expected disposer error")
	}

	statuses := map[string]codes.Code{}
	for _, s := range p.spans.GetSpans() {
		statuses[s.Name] = s.Status.Code
		if s.Status.Code == codes.Error && (len(s.Events) == 0 || s.Events[0].Name != "exception") {
			t.Errorf("expected %s to carry the recorded error, got events %v", s.Name, s.Events)
		}
	}
	if statuses["di.resolve broken"] != codes.Error {
		t.Errorf("expected failed resolve span, got %v", statuses)
	}
	if statuses["di.dispose leaky"] != codes.Error {
		t.Errorf("expected failed dispose span, got %v", statuses)
	}

	if got := p.sums(t, MetricResolveTotal); got["broken/error"] != 1 || got["leaky/ok"] != 1 {
		t.Errorf("unexpected resolve totals: %v", got)
	}
	if got := p.sums(t, MetricDisposeTotal); got["leaky/error"] != 1 {
		t.Errorf("unexpected dispose totals: %v", got)
	}
}

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), ServiceInfo{Name: "svc"}, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Tracer != nil || p.Meter != nil {
		t.Error("expected no providers when signals are disabled")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}

func TestInitTracer(t *testing.T) {
	tp, err := InitTracer(context.Background(),
		ServiceInfo{Name: "test", Version: "1.0.0", Environment: "test"},
		TracingConfig{Endpoint: "localhost:4318", Insecure: true, SampleRate: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestInitMeter(t *testing.T) {
	mp, err := InitMeter(context.Background(),
		ServiceInfo{Name: "test", Version: "1.0.0", Environment: "test"},
		MetricsConfig{Endpoint: "localhost:4318", Insecure: true, Interval: time.Minute})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = mp.Shutdown(ctx)
}
