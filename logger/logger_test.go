package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, service string) *Logger {
	return NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, service, buf)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.Service() != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.Service())
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l := New(&Config{Level: "invalid-level", Format: FormatJSON, Output: "stdout"}, "test")
	if l == nil {
		t.Fatal("expected logger to be created even with invalid level")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewWithWriter_JSONCarriesService(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "catalog")
	l.Info("hello", Fields("id", "42"))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0][FieldService] != "catalog" {
		t.Errorf("expected service=catalog, got %v", lines[0][FieldService])
	}
	if lines[0]["id"] != "42" || lines[0]["message"] != "hello" {
		t.Errorf("unexpected line: %v", lines[0])
	}
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatConsole, NoColor: true}, "catalog", &buf)
	l.Warn("careful")

	out := buf.String()
	if !strings.Contains(out, "[CAT][WRN]") {
		t.Errorf("expected service and level tags, got %q", out)
	}
	if !strings.Contains(out, "careful") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestWithComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "svc").
		WithComponent("handler").
		WithFields(map[string]interface{}{"key": "value"}).
		WithError(errors.New("bad"))
	l.Error("failed")

	line := decodeLines(t, &buf)[0]
	if line[FieldComponent] != "handler" {
		t.Errorf("expected component=handler, got %v", line[FieldComponent])
	}
	if line["key"] != "value" {
		t.Errorf("expected key=value, got %v", line["key"])
	}
	if line[FieldError] != "bad" {
		t.Errorf("expected error=bad, got %v", line[FieldError])
	}
	if l.Service() != "svc" {
		t.Errorf("service should be preserved, got %q", l.Service())
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	ctx := ContextWithTraceID(context.Background(), "abc123")
	ctx = ContextWithRequestID(ctx, "req-1")

	jsonLogger(&buf, "svc").WithContext(ctx).Info("traced")

	line := decodeLines(t, &buf)[0]
	if line[FieldTraceID] != "abc123" {
		t.Errorf("expected trace_id, got %v", line[FieldTraceID])
	}
	if line[FieldRequestID] != "req-1" {
		t.Errorf("expected request_id, got %v", line[FieldRequestID])
	}
	if _, ok := line[FieldSpanID]; ok {
		t.Error("span_id should be absent")
	}
}

func TestInit(t *testing.T) {
	Init(&Config{Level: "info", Format: FormatConsole, Output: "stdout"})
	if GetGlobalLogger() == nil {
		t.Fatal("expected global logger to be set after Init")
	}
}

func TestGetGlobalLoggerDefault(t *testing.T) {
	globalLogger = nil
	if GetGlobalLogger() == nil {
		t.Fatal("expected default global logger to be created")
	}
}

func TestSetGlobalLogger(t *testing.T) {
	l := NewDefault("custom")
	SetGlobalLogger(l)
	if GetGlobalLogger() != l {
		t.Error("expected SetGlobalLogger to set the global logger")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetGlobalLogger(jsonLogger(&buf, "global"))
	defer SetGlobalLogger(nil)

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")
	WithComponent("c").Info("component msg")
	WithContext(context.Background()).Info("context msg")

	if got := len(decodeLines(t, &buf)); got != 6 {
		t.Errorf("expected 6 lines, got %d", got)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != FormatConsole {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamp to be enabled")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json", Output: "stdout"}, false},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, true},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, true},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterAndGet(t *testing.T) {
	l := NewDefault("registered")
	Register("test-logger", l)
	if Get("test-logger") != l {
		t.Error("expected to get the registered logger")
	}
	if Get("never-registered") == nil {
		t.Error("expected a fallback logger for unknown names")
	}
}

func TestRegisterDefaults(t *testing.T) {
	RegisterDefaults(NewDefault("base"), "alpha", "beta")
	for _, name := range []string{"alpha", "beta"} {
		if Get(name).Service() != "base" {
			t.Errorf("expected %s to derive from base", name)
		}
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(m) != 2 {
		t.Fatalf("expected 2 fields, got %d: %v", len(m), m)
	}
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("save", errors.New("disk full"))
	if ef[FieldOperation] != "save" || ef[FieldError] != "disk full" {
		t.Errorf("unexpected error fields: %v", ef)
	}

	df := DurationFields("load", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}

	merged := MergeWithError(nil, errors.New("x"))
	if merged[FieldError] != "x" {
		t.Errorf("expected error=x, got %v", merged[FieldError])
	}
}
