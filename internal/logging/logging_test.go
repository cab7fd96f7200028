package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/tomz197/brainrots/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		cfg     config.LoggingConfig
		debugOn bool
		infoOn  bool
	}{
		{config.LoggingConfig{Level: "debug", Format: "console"}, true, true},
		{config.LoggingConfig{Level: "warn", Format: "json"}, false, false},
		{config.LoggingConfig{Level: "nonsense"}, false, true},
	}
	for _, tc := range tests {
		log, err := New(tc.cfg)
		if err != nil {
			t.Fatalf("New(%+v): %v", tc.cfg, err)
		}
		if got := log.Core().Enabled(zapcore.DebugLevel); got != tc.debugOn {
			t.Errorf("%+v: debug enabled = %v", tc.cfg, got)
		}
		if got := log.Core().Enabled(zapcore.InfoLevel); got != tc.infoOn {
			t.Errorf("%+v: info enabled = %v", tc.cfg, got)
		}
	}
}
