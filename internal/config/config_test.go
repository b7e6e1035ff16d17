package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]string{})
	if err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	e := cfg.Engine()
	if e.Windows.Anticipation != 500*time.Millisecond ||
		e.Windows.CriticalTail != 200*time.Millisecond ||
		e.Windows.Grace != 500*time.Millisecond ||
		e.Flight != 3*time.Second ||
		e.BaseInterval != 3*time.Second ||
		e.MinInterval != 300*time.Millisecond {
		t.Fatalf("unexpected engine config %+v", e)
	}
	if cfg.Voice || cfg.Mute || cfg.Listen != "" {
		t.Fatalf("optional features on by default: %+v", cfg)
	}
	if cfg.Trigger.Cooldown != 800*time.Millisecond {
		t.Fatalf("unexpected voice cooldown %v", cfg.Trigger.Cooldown)
	}
}

func TestFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anticipate.yaml")
	data := []byte(`
window: 400ms
flight: 2500ms
voice: true
capture:
  device: hw:1,0
trigger:
  threshold: 0.3
log_level: debug
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse([]string{"--config", path, "--window", "450ms", "--mute"})
	if err != nil {
		t.Fatalf("unable to parse: %v", err)
	}
	if cfg.Window != 450*time.Millisecond {
		t.Fatalf("flag should win over file, got %v", cfg.Window)
	}
	if cfg.Flight != 2500*time.Millisecond || !cfg.Voice || cfg.Capture.Device != "hw:1,0" || cfg.Trigger.Threshold != 0.3 {
		t.Fatalf("file values lost: %+v", cfg)
	}
	if cfg.Trigger.Cooldown != 800*time.Millisecond || cfg.Capture.SampleRate != 16000 {
		t.Fatalf("defaults missing under file: %+v", cfg)
	}
	if !cfg.Mute {
		t.Fatal("--mute not applied")
	}
	if l, _ := ParseLevel(cfg.LogLevel); l != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.LogLevel)
	}
}

var invalid = map[string][]string{
	"zero window":        {"--window", "0s"},
	"grace inside tail":  {"--grace", "100ms"},
	"window over flight": {"--window", "4s"},
	"negative floor":     {"--min-interval", "-1ms"},
	"threshold":          {"--voice-threshold", "1.5"},
	"log level":          {"--log-level", "loud"},
	"unknown flag":       {"--tempo", "3"},
}

func TestInvalid(t *testing.T) {
	for name, args := range invalid {
		if _, err := Parse(args); err == nil {
			t.Log("accepted", name, args)
			t.Fail()
		}
	}
}

func TestMissingFile(t *testing.T) {
	cfg := Default()
	if err := cfg.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
