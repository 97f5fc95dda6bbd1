package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// useGlobal swaps the package logger for the duration of a test.
func useGlobal(t *testing.T, l *zap.Logger) {
	t.Helper()
	prevLog, prevSugar := Log, Sugar
	Log, Sugar = l, l.Sugar()
	t.Cleanup(func() { Log, Sugar = prevLog, prevSugar })
}

func TestNewFiltersConsoleByLevel(t *testing.T) {
	tests := []struct {
		level string
		want  []string
		skip  []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run("level="+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Options{Level: tt.level, Console: &buf})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			l.Debug("mesh requested")
			l.Info("chunk ready")
			l.Warn("slot failed")
			l.Error("mesher error")
			_ = l.Sync()

			out := buf.String()
			for _, lvl := range tt.want {
				if !strings.Contains(out, lvl) {
					t.Errorf("expected %s entry in %q", lvl, out)
				}
			}
			for _, lvl := range tt.skip {
				if strings.Contains(out, lvl) {
					t.Errorf("unexpected %s entry at level %q", lvl, tt.level)
				}
			}
		})
	}
}

func TestNewRotatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "terrain.log")

	l, err := New(Options{
		Level: "info",
		File:  FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// About 3MB of entries against a 1MB limit.
	payload := strings.Repeat("h", 180)
	for i := 0; i < 12000; i++ {
		l.Info("chunk generated", zap.Int("index", i), zap.String("heights", payload))
	}
	_ = l.Sync()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected active log file: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name != "terrain.log" && strings.HasPrefix(name, "terrain-") && strings.HasSuffix(name, ".log") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("expected at least one rotated backup, got entries %v", entries)
	}
}

func TestInitWithFileConfigSetsGlobal(t *testing.T) {
	useGlobal(t, zap.NewNop())

	path := filepath.Join(t.TempDir(), "driver.log")
	if err := InitWithFileConfig("warn", DefaultFileConfig(path), false); err != nil {
		t.Fatalf("InitWithFileConfig: %v", err)
	}

	Debug("walk step")
	Info("stats")
	Warn("terrain run interrupted")
	Error("failed to create terrain")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "terrain run interrupted") {
		t.Errorf("expected warning in %q", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("expected error in %q", out)
	}
	if strings.Contains(out, "walk step") || strings.Contains(out, "stats") {
		t.Errorf("entries below warn leaked into %q", out)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	want := FileConfig{Path: "terrain.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if got := DefaultFileConfig("terrain.log"); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestForNamesComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Console: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	useGlobal(t, l)

	For("streaming").Info("chunk ready", zap.Int("lods", 4))
	_ = l.Sync()

	out := buf.String()
	if !strings.Contains(out, "streaming") {
		t.Errorf("expected component name in %q", out)
	}
	if !strings.Contains(out, "chunk ready") || !strings.Contains(out, "lods") {
		t.Errorf("expected message and field in %q", out)
	}
}

func TestNewWithoutOutputs(t *testing.T) {
	l, err := New(Options{Level: "info"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Must not panic.
	l.Info("discarded")
}
