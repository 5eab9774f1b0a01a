package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output as JSON: %v\noutput: %s", err, buf.String())
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		write     func(Logger, context.Context)
		wantLevel string
	}{
		{
			name:      "debug",
			write:     func(l Logger, ctx context.Context) { l.Debug(ctx, "derivation cached") },
			wantLevel: "debug",
		},
		{
			name:      "info",
			write:     func(l Logger, ctx context.Context) { l.Info(ctx, "raw groups loaded") },
			wantLevel: "info",
		},
		{
			name:      "warn",
			write:     func(l Logger, ctx context.Context) { l.Warn(ctx, "cache write failed") },
			wantLevel: "warn",
		},
		{
			name:      "error",
			write:     func(l Logger, ctx context.Context) { l.Error(ctx, "group store unreachable") },
			wantLevel: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("debug", &buf)

			tt.write(logger, context.Background())

			entry := decodeEntry(t, &buf)
			if v, _ := entry["level"].(string); v != tt.wantLevel {
				t.Errorf("expected level=%q, got %v", tt.wantLevel, entry["level"])
			}
			if entry["timestamp"] == nil {
				t.Error("expected timestamp in entry")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", &buf)
	ctx := context.Background()

	logger.Debug(ctx, "suppressed debug")
	logger.Info(ctx, "suppressed info")
	if buf.Len() != 0 {
		t.Errorf("expected debug/info suppressed at warn level, got: %s", buf.String())
	}

	logger.Warn(ctx, "negative cache ttl expired")
	if !strings.Contains(buf.String(), "negative cache ttl expired") {
		t.Error("warn entry should pass through at warn level")
	}
}

func TestLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithComponent("resolver").Info(context.Background(), "lookup complete",
		Field{Key: "consumer_id", Value: "c-42"},
		Field{Key: "groups", Value: 3},
	)

	entry := decodeEntry(t, &buf)
	if v, _ := entry["component"].(string); v != "resolver" {
		t.Errorf("expected component='resolver', got %v", entry["component"])
	}
	if v, _ := entry["consumer_id"].(string); v != "c-42" {
		t.Errorf("expected consumer_id='c-42', got %v", entry["consumer_id"])
	}
	if v, _ := entry["groups"].(float64); v != 3 {
		t.Errorf("expected groups=3, got %v", entry["groups"])
	}
}

func TestLogger_NoComponentByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "startup")

	entry := decodeEntry(t, &buf)
	if _, present := entry["component"]; present {
		t.Errorf("unscoped logger should omit component, got %v", entry["component"])
	}
}

func TestLogger_NestedComponents(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithComponent("resolver").WithComponent("checker").Info(context.Background(), "rebound")

	entry := decodeEntry(t, &buf)
	if v, _ := entry["component"].(string); v != "checker" {
		t.Errorf("expected rebinding to keep the last component, got %v", entry["component"])
	}
}

func TestLogger_RedactsCredentialFields(t *testing.T) {
	for _, key := range RedactedFields {
		t.Run(key, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter("info", &buf)

			logger.WithComponent("resolver").Info(context.Background(), "principal resolved",
				Field{Key: key, Value: "kong-consumer-key-9f2"},
			)

			out := buf.String()
			if strings.Contains(out, "kong-consumer-key-9f2") {
				t.Errorf("raw %s value must not reach log output: %s", key, out)
			}
			if !strings.Contains(out, "[REDACTED]") {
				t.Errorf("expected [REDACTED] marker for %s: %s", key, out)
			}
		})
	}
}

func TestLogger_PlainFieldsNotRedacted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "decision cached",
		Field{Key: "group", Value: "admins"},
	)

	entry := decodeEntry(t, &buf)
	if v, _ := entry["group"].(string); v != "admins" {
		t.Errorf("expected group='admins', got %v", entry["group"])
	}
}

func TestLogger_DerivedLoggersShareWriterSafely(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)
	components := []string{"resolver", "checker", "loadcache", "store"}

	var wg sync.WaitGroup
	for _, name := range components {
		scoped := logger.WithComponent(name)
		for i := 0; i < 25; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				scoped.Info(context.Background(), "concurrent entry")
			}()
		}
	}
	wg.Wait()

	// Every line must still be a standalone JSON object.
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Fatalf("expected 100 entries, got %d", len(lines))
	}
	for _, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("interleaved write produced invalid JSON: %v\nline: %s", err, line)
		}
	}
}

func TestLogger_DropsUnserializableEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "bad field", Field{Key: "ch", Value: make(chan int)})

	if buf.Len() != 0 {
		t.Errorf("entry with unserializable field should be dropped, got: %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got := ParseLogLevel(tt.in); got.String() == "" {
			t.Errorf("ParseLogLevel(%q).String() is empty", tt.in)
		}
	}
}
