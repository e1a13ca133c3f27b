package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/restkit/client"
)

var _ client.Logger = (*Logger)(nil)

// capture decodes the single JSON line written by fn.
func capture(t *testing.T, cfg *Config, fn func(l *Logger)) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	fn(NewWithWriter(cfg, &buf))

	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestNew(t *testing.T) {
	l := New(&Config{Level: "debug", Format: "json", Output: "stdout"})
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewDefault(t *testing.T) {
	l := NewDefault()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &Config{Level: "invalid-level", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) { l.Debug("hidden") })
	if entry != nil {
		t.Errorf("debug should be suppressed at info level, got %v", entry)
	}

	entry = capture(t, cfg, func(l *Logger) { l.Info("visible") })
	if entry["message"] != "visible" {
		t.Errorf("message = %v, want visible", entry["message"])
	}
}

func TestLevelFiltering(t *testing.T) {
	cfg := &Config{Level: "warn", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) { l.Info("hidden") })
	if entry != nil {
		t.Errorf("info should be suppressed at warn level, got %v", entry)
	}

	entry = capture(t, cfg, func(l *Logger) { l.Warn("visible") })
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
}

func TestKeyValuePairs(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) {
		l.Info("kv", "op", "save", "count", 3)
	})
	if entry["op"] != "save" {
		t.Errorf("op = %v, want save", entry["op"])
	}
	if entry["count"] != float64(3) {
		t.Errorf("count = %v, want 3", entry["count"])
	}
}

func TestKeyValuePairsMalformed(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) {
		l.Info("kv", 123, "skipped", "kept", "v", "trailing")
	})
	if entry["kept"] != "v" {
		t.Errorf("kept = %v, want v", entry["kept"])
	}
	if _, ok := entry["trailing"]; ok {
		t.Error("a trailing key without a value must be dropped")
	}
	if _, ok := entry["123"]; ok {
		t.Error("non-string keys must be dropped")
	}
}

func TestWith(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) {
		l.With("resource", "users").Info("attached")
	})
	if entry["resource"] != "users" {
		t.Errorf("resource = %v, want users", entry["resource"])
	}
}

func TestWithError(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json"}

	entry := capture(t, cfg, func(l *Logger) {
		l.WithError(errors.New("boom")).Error("failed")
	})
	if entry["error"] != "boom" {
		t.Errorf("error = %v, want boom", entry["error"])
	}
}

func TestWithContext(t *testing.T) {
	cfg := &Config{Level: "debug", Format: "json"}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{0x01},
		SpanID:  trace.SpanID{0x02},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	entry := capture(t, cfg, func(l *Logger) {
		l.WithContext(ctx).Info("traced")
	})
	if entry[FieldTraceID] != sc.TraceID().String() {
		t.Errorf("trace_id = %v, want %s", entry[FieldTraceID], sc.TraceID())
	}
	if entry[FieldSpanID] != sc.SpanID().String() {
		t.Errorf("span_id = %v, want %s", entry[FieldSpanID], sc.SpanID())
	}
}

func TestWithContextNoSpan(t *testing.T) {
	l := NewDefault()
	if got := l.WithContext(context.Background()); got != l {
		t.Error("WithContext without a span should return the receiver")
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, &buf)
	l.Info("console line")

	out := buf.String()
	if !strings.Contains(out, "[INF]") {
		t.Errorf("expected [INF] tag, got %q", out)
	}
	if !strings.Contains(out, "console line") {
		t.Errorf("expected message, got %q", out)
	}
}

func TestPrettyFormatAlias(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatPretty, NoColor: true}, &buf)
	l.Info("pretty line")

	if !strings.Contains(buf.String(), "[INF]") {
		t.Errorf("pretty should use the console writer, got %q", buf.String())
	}
}

func TestNewFromEnv(t *testing.T) {
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	defer os.Unsetenv("LOG_LEVEL")
	defer os.Unsetenv("LOG_FORMAT")

	l := NewFromEnv()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNewFromEnvDefaults(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_FORMAT")
	os.Unsetenv("LOG_OUTPUT")
	os.Unsetenv("LOG_NO_COLOR")
	os.Unsetenv("LOG_TIMESTAMP")

	l := NewFromEnv()
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestDefaultAndSetDefault(t *testing.T) {
	custom := NewDefault()
	SetDefault(custom)
	if got := Default(); got != custom {
		t.Error("expected SetDefault to set the default logger")
	}

	SetDefault(nil)
	if got := Default(); got == nil {
		t.Fatal("expected Default to create a logger on first use")
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	SetDefault(NewWithWriter(&Config{Level: "debug", Format: "json"}, &buf))
	defer SetDefault(nil)

	Debug("debug msg")
	Info("info msg")
	Warn("warn msg")
	Error("error msg")

	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 4 {
		t.Errorf("lines = %d, want 4", lines)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Format)
	}
	if cfg.Output != "stdout" {
		t.Errorf("expected output 'stdout', got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected Timestamp to be true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"valid pretty", Config{Level: "trace", Format: "pretty"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestGetLogger(t *testing.T) {
	l := NewDefault()
	zl := l.GetLogger()
	_ = zl
}
