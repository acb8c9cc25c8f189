package logger_test

import (
	"log/slog"
	"testing"

	"github.com/oskarw/mellovote/internal/logger"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := logger.ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_DefaultLevel(t *testing.T) {
	log := logger.New()
	if got := log.GetLevel(); got != slog.LevelInfo {
		t.Errorf("expected info level by default, got %v", got)
	}
}

func TestSetLevel(t *testing.T) {
	log := logger.NewWithLevel(slog.LevelWarn)
	if got := log.GetLevel(); got != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v", got)
	}

	log.SetLevel(slog.LevelDebug)
	if got := log.GetLevel(); got != slog.LevelDebug {
		t.Errorf("expected debug level after SetLevel, got %v", got)
	}
}

func TestHTTPLoggingToggle(t *testing.T) {
	log := logger.New()

	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled by default")
	}

	log.EnableHTTPLogging()
	if !log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging enabled")
	}

	log.DisableHTTPLogging()
	if log.IsHTTPLoggingEnabled() {
		t.Error("expected HTTP logging disabled again")
	}
}
