package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestWithAttrsOverridesByKey(t *testing.T) {
	ctx := WithAttrs(context.Background(), slog.String("component", "a"), slog.String("command", "x"))
	ctx = WithAttrs(ctx, slog.String("component", "b"))

	attrs := Attrs(ctx)
	if len(attrs) != 2 {
		t.Fatalf("Attrs() len = %d, want 2", len(attrs))
	}
	if attrs[0].Value.String() != "b" {
		t.Fatalf("component = %q, want b", attrs[0].Value.String())
	}
}

func TestWithBusinessAndRunReachTheHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := WithLogger(context.Background(), logger)
	ctx = WithBusiness(ctx, 12)
	ctx = WithRun(ctx, "teardown_id", "run-1")
	ctx = WithBusiness(ctx, 0)
	Info(ctx, "hello")

	out := buf.String()
	for _, want := range []string{"business_id=12", "teardown_id=run-1", "msg=hello"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log line %q missing %q", out, want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}

	ctx := WithLogger(context.Background(), logger)
	Info(ctx, "dropped")
	Warn(WithBusiness(ctx, 3), "kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line leaked through warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"business_id":3`) {
		t.Fatalf("json line = %q", out)
	}

	if _, err := NewLogger(&buf, "loud", "text"); err == nil {
		t.Fatalf("NewLogger(bad level) error = nil")
	}
	if _, err := NewLogger(&buf, "info", "xml"); err == nil {
		t.Fatalf("NewLogger(bad format) error = nil")
	}
}
