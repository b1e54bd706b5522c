package memowall

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerSilentByDefault(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Fatal("default logger should discard everything")
	}
}

func TestSetLoggerReceivesFallbackWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	if _, err := LoadFonts(FontConfig{RegularPath: filepath.Join(t.TempDir(), "gone.ttf")}); err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	if !strings.Contains(buf.String(), "regular font unavailable") {
		t.Errorf("log output = %q", buf.String())
	}
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
