package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"Debug", slog.LevelDebug},
		{"trace", LevelTrace},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"off", LevelOff},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, false)

	Trace(logger, "hidden trace")
	logger.Debug("visible debug")

	out := buf.String()
	if strings.Contains(out, "hidden trace") {
		t.Fatalf("trace message should be filtered at debug level:\n%s", out)
	}
	if !strings.Contains(out, "visible debug") {
		t.Fatalf("expected debug message in output:\n%s", out)
	}
}

func TestNew_TraceEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelTrace, false)
	Trace(logger, "per-window detail", "owner", "Terminal")
	if !strings.Contains(buf.String(), "per-window detail") {
		t.Fatalf("expected trace message in output:\n%s", buf.String())
	}
}

func TestNew_OffDropsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelOff, false)
	logger.Error("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
