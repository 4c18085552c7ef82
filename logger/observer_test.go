package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/kbukum/servicebox/di"
)

func TestContainerObserver(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	c := di.NewContainer(di.WithObserver(NewContainerObserver(jsonLogger(&buf, "svc"))))
	c.Set("ok", func(context.Context, *di.Container) (any, error) { return 1, nil },
		func(context.Context, any) error { return errors.New("close failed") })
	c.Set("broken", func(context.Context, *di.Container) (any, error) {
		return nil, errors.New("dial failed")
	})

	if _, err := c.Get(ctx, "ok"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Get(ctx, "broken"); err == nil {
		t.Fatal("expected factory error")
	}
	if err := c.Dispose(ctx); err == nil {
		t.Fatal("expected disposer error")
	}

	lines := decodeLines(t, &buf)
	if len(lines) != 3 {
		t.Fatalf("expected 3 log lines, got %d: %s", len(lines), buf.String())
	}

	want := []struct {
		level, dependency, operation string
	}{
		{"debug", "ok", "resolve"},
		{"error", "broken", "resolve"},
		{"error", "ok", "dispose"},
	}
	for i, w := range want {
		line := lines[i]
		if line["level"] != w.level || line[FieldDependency] != w.dependency || line[FieldOperation] != w.operation {
			t.Errorf("line %d: expected %+v, got %v", i, w, line)
		}
		if line[FieldComponent] != "container" {
			t.Errorf("line %d: expected component=container, got %v", i, line[FieldComponent])
		}
	}
	if lines[1][FieldError] != "dial failed" {
		t.Errorf("expected factory error in log, got %v", lines[1][FieldError])
	}
}
