package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"", zapcore.InfoLevel},
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		if err := Init(tt.level, false); err != nil {
			t.Fatalf("Init(%q) = %v", tt.level, err)
		}
		core := Log.Core()
		if !core.Enabled(tt.want) || (tt.want > zapcore.DebugLevel && core.Enabled(tt.want-1)) {
			t.Errorf("Init(%q) did not set level %s", tt.level, tt.want)
		}
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init("warn", false); err != nil {
		t.Fatal(err)
	}
	before := Log
	if err := Init("loud", true); err == nil {
		t.Error("Init(loud) = nil error")
	}
	if Log != before {
		t.Error("a failed Init replaced Log")
	}
}
