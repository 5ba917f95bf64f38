package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, format string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(&buf, levelVar)
	default:
		handler = newConsoleHandler(&buf, levelVar)
	}
	return slog.New(handler), &buf
}

func TestConsoleHandlerInlinesComponent(t *testing.T) {
	logger, buf := newTestLogger(t, "console")
	WithComponent(logger, "pipeline").Info("download complete", slog.String("video_id", "abc123"))

	line := buf.String()
	if !strings.Contains(line, "INFO pipeline: download complete") {
		t.Errorf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "video_id=abc123") {
		t.Errorf("missing attribute in line: %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should be inlined, not a key=value pair: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	logger, buf := newTestLogger(t, "console")
	logger.Info("msg", slog.String("title", "two words"))
	if !strings.Contains(buf.String(), `title="two words"`) {
		t.Errorf("value with spaces not quoted: %q", buf.String())
	}
}

func TestJSONHandler(t *testing.T) {
	logger, buf := newTestLogger(t, "json")
	logger.Info("hello", slog.Int("count", 3))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json output %q: %v", buf.String(), err)
	}
	if payload["msg"] != "hello" {
		t.Errorf("msg = %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Errorf("level = %v, want lowercase", payload["level"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("missing ts field")
	}
}

func TestErrorAttr(t *testing.T) {
	attr := Error(errors.New("boom"))
	if attr.Key != "error" {
		t.Errorf("key = %q", attr.Key)
	}
	if Error(nil).Value.String() != "<nil>" {
		t.Errorf("nil error value = %q", Error(nil).Value.String())
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Handler().Enabled(context.Background(), slog.LevelError) {
		t.Error("noop handler should never be enabled")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
