package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"scribe/internal/services"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(FieldComponent, "processor").Info("audio downloaded", "path", "/tmp/out.flac", "duration_sec", 60.0)

	line := buf.String()
	if !strings.Contains(line, "INFO") {
		t.Fatalf("missing level in %q", line)
	}
	if !strings.Contains(line, "processor: audio downloaded") {
		t.Fatalf("component prefix missing in %q", line)
	}
	if !strings.Contains(line, "path=/tmp/out.flac") {
		t.Fatalf("attribute missing in %q", line)
	}
}

func TestConsoleHandlerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info record leaked through warn level: %q", buf.String())
	}
	logger.Warn("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatal("warn record missing")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hello")
	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"level":"info"`) {
		t.Fatalf("unexpected json output: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := services.WithStage(services.WithRunID(context.Background(), "run-42"), "transcribe")
	WithContext(ctx, logger).Info("working")

	line := buf.String()
	if !strings.Contains(line, "stage=transcribe") || !strings.Contains(line, "run_id=run-42") {
		t.Fatalf("context fields missing in %q", line)
	}
}
