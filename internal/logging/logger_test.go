package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHelpersRespectLevel(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	var buf bytes.Buffer
	InitWriter(&buf, "warn")

	Debug("hidden debug")
	Info("hidden info")
	Warn("shown warn", "query", "inc")
	Error("shown error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below warn were written: %s", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "query=inc") {
		t.Errorf("warn line missing: %s", out)
	}
	if !strings.Contains(out, "shown error") {
		t.Errorf("error line missing: %s", out)
	}
}

func TestHelpersBeforeInitAreNoops(t *testing.T) {
	Logger = nil
	Info("nothing")
	Error("nothing")
	if WithPrefix("x") != nil {
		t.Error("WithPrefix should be nil before Init")
	}
}

func TestInitCreatesLogFile(t *testing.T) {
	t.Cleanup(func() {
		Close()
		Logger = nil
	})

	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Options{Dir: dir, Level: "info", MaxSizeMB: 1, MaxBackups: 1}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("hello from test")
	Close()

	data, err := os.ReadFile(filepath.Join(dir, "movierec.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message: %s", data)
	}
}
