package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureOutput(showSourceFor []slog.Level, emit func(*slog.Logger)) string {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:     slog.LevelDebug,
		AddSource: false,
	})
	emit(slog.New(NewConditionalSourceHandler(base, showSourceFor...)))
	return buf.String()
}

func TestConditionalSourceHandler(t *testing.T) {
	warnAndError := []slog.Level{slog.LevelWarn, slog.LevelError}

	tests := []struct {
		name       string
		emit       func(*slog.Logger)
		wantSource bool
	}{
		{"debug stays clean", func(l *slog.Logger) { l.Debug("token issued") }, false},
		{"info stays clean", func(l *slog.Logger) { l.Info("token issued") }, false},
		{"warn gets source", func(l *slog.Logger) { l.Warn("refresh conflict") }, true},
		{"error gets source", func(l *slog.Logger) { l.Error("store unavailable") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(warnAndError, tt.emit)
			if got := strings.Contains(output, "source="); got != tt.wantSource {
				t.Errorf("source presence = %v, want %v, output: %s", got, tt.wantSource, output)
			}
		})
	}
}

func TestConditionalSourceHandlerAllLevels(t *testing.T) {
	all := []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}
	output := captureOutput(all, func(l *slog.Logger) { l.Info("token issued") })
	if !strings.Contains(output, "source=") {
		t.Errorf("expected source for INFO when all levels configured, output: %s", output)
	}
}

func TestConditionalSourceHandlerPreservesAttrs(t *testing.T) {
	output := captureOutput([]slog.Level{slog.LevelError}, func(l *slog.Logger) {
		l.With("client_id", "client-a").Info("token issued")
	})
	if strings.Contains(output, "source=") {
		t.Errorf("unexpected source for INFO, output: %s", output)
	}
	if !strings.Contains(output, "client_id=client-a") {
		t.Errorf("expected client_id attribute, output: %s", output)
	}
}

func TestConditionalSourceHandlerPreservesGroups(t *testing.T) {
	output := captureOutput([]slog.Level{slog.LevelError}, func(l *slog.Logger) {
		l.WithGroup("request").Info("token issued", "path", "/api/access/request")
	})
	if !strings.Contains(output, "path") {
		t.Errorf("expected grouped path attribute, output: %s", output)
	}
}

func TestConditionalSourceHandlerEnabled(t *testing.T) {
	var buf bytes.Buffer
	base := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler := NewConditionalSourceHandler(base, slog.LevelError)

	ctx := context.Background()
	if !handler.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected INFO to be enabled")
	}
	if handler.Enabled(ctx, slog.LevelDebug) {
		t.Error("expected DEBUG to be disabled")
	}
}
