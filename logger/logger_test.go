package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer func() {
		_ = Setup("info", "text")
	}()

	tests := []struct {
		name    string
		level   string
		format  string
		want    logrus.Level
		wantErr bool
	}{
		{"debug text", "debug", "text", logrus.DebugLevel, false},
		{"warn json", "warn", "json", logrus.WarnLevel, false},
		{"empty format", "error", "", logrus.ErrorLevel, false},
		{"bad level", "loud", "text", 0, true},
		{"bad format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Setup(tt.level, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for level=%q format=%q", tt.level, tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if Log.GetLevel() != tt.want {
				t.Errorf("expected level %v, got %v", tt.want, Log.GetLevel())
			}
		})
	}
}

func TestComponent(t *testing.T) {
	e := Component("raycaster")
	if got := e.Data["component"]; got != "raycaster" {
		t.Errorf("expected component field raycaster, got %v", got)
	}
}
