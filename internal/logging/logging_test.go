package logging

import (
	"testing"

	"github.com/monocle-engine/monocle/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Level(tt.in); got != tt.want {
				t.Fatalf("Level(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewHonorsLevel(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			log, err := New(config.LoggingConfig{Level: "warn", Format: format})
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if log.Core().Enabled(zapcore.InfoLevel) {
				t.Fatalf("info enabled at warn level")
			}
			if !log.Core().Enabled(zapcore.WarnLevel) {
				t.Fatalf("warn disabled at warn level")
			}
		})
	}
}
