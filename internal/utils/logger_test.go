package utils

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T, level LogLevel) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevLevel, prevColor := CurrentLevel, Color
	SetOutput(&buf)
	CurrentLevel, Color = level, false
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		CurrentLevel, Color = prevLevel, prevColor
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   LevelDebug,
		" Info ":  LevelInfo,
		"WARN":    LevelWarn,
		"error":   LevelError,
		"verbose": LevelWarn,
		"":        LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if LogLevel(9).String() != "UNKNOWN" {
		t.Errorf("String of out-of-range level = %q", LogLevel(9).String())
	}
}

func TestLogFiltersBelowCurrentLevel(t *testing.T) {
	buf := captureLog(t, LevelWarn)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("filtered messages leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Errorf("output = %q", out)
	}
}

func TestRaylibLogCallback(t *testing.T) {
	buf := captureLog(t, LevelWarn)

	RaylibLogCallback(3, "INFO: texture loaded")
	if buf.Len() != 0 {
		t.Fatalf("raylib info shown at warn level: %q", buf.String())
	}

	RaylibLogCallback(4, "WARNING: shader fallback")
	if !strings.Contains(buf.String(), "[WARN] [RAYLIB] WARNING: shader fallback") {
		t.Errorf("output = %q", buf.String())
	}

	buf.Reset()
	ShowRaylibInfo = true
	defer func() { ShowRaylibInfo = false }()
	RaylibLogCallback(3, "INFO: window ready")
	if !strings.Contains(buf.String(), "[INFO] [RAYLIB] INFO: window ready") {
		t.Errorf("output = %q", buf.String())
	}
}
