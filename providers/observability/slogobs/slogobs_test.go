package slogobs

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/llmc-dev/llmc/providers/observability"
)

func newCapturedLogger(level slog.Leveler) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level}))
	return New(WithLogger(base)), &buf
}

func TestLoggerEmitsAttributes(t *testing.T) {
	logger, buf := newCapturedLogger(slog.LevelDebug)

	logger.Info("chat request",
		observability.String(observability.AttrLLMModel, "glm-4"),
		observability.Int(observability.AttrRequestMessagesCount, 3),
	)

	line := buf.String()
	if !strings.Contains(line, "chat request") {
		t.Errorf("message missing from output: %q", line)
	}
	if !strings.Contains(line, "llm.model=glm-4") {
		t.Errorf("model attribute missing from output: %q", line)
	}
	if !strings.Contains(line, "request.messages_count=3") {
		t.Errorf("count attribute missing from output: %q", line)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	logger, buf := newCapturedLogger(slog.LevelWarn)

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level lines leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestErrorAttribute(t *testing.T) {
	logger, buf := newCapturedLogger(slog.LevelDebug)

	logger.Error("request failed", observability.Error(nil))
	if !strings.Contains(buf.String(), "error=") {
		t.Errorf("nil error attribute not rendered: %q", buf.String())
	}
}
