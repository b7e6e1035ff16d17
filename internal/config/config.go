package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/voice"
)

const Version = "0.3.0"

type Config struct {
	Window       time.Duration `yaml:"window"`
	CriticalTail time.Duration `yaml:"critical_tail"`
	Grace        time.Duration `yaml:"grace"`
	Flight       time.Duration `yaml:"flight"`
	BaseInterval time.Duration `yaml:"base_interval"`
	MinInterval  time.Duration `yaml:"min_interval"`
	FramePeriod  time.Duration `yaml:"frame_period"`

	Voice   bool                `yaml:"voice"`
	Capture voice.CaptureConfig `yaml:"capture"`
	Trigger voice.Config        `yaml:"trigger"`

	Listen   string `yaml:"listen"`
	Mute     bool   `yaml:"mute"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	e := engine.DefaultConfig()
	return Config{
		Window:       e.Windows.Anticipation,
		CriticalTail: e.Windows.CriticalTail,
		Grace:        e.Windows.Grace,
		Flight:       e.Flight,
		BaseInterval: e.BaseInterval,
		MinInterval:  e.MinInterval,
		FramePeriod:  time.Second / 60,
		Capture:      voice.DefaultCaptureConfig(),
		Trigger:      voice.DefaultConfig(),
		LogFile:      "anticipate.log",
		LogLevel:     "info",
	}
}

func (c *Config) Validate() error {
	positive := map[string]time.Duration{
		"window":         c.Window,
		"critical tail":  c.CriticalTail,
		"grace":          c.Grace,
		"flight":         c.Flight,
		"base interval":  c.BaseInterval,
		"min interval":   c.MinInterval,
		"frame period":   c.FramePeriod,
		"voice cooldown": c.Trigger.Cooldown,
	}
	for name, d := range positive {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, d)
		}
	}
	if c.Grace <= c.CriticalTail {
		return fmt.Errorf("grace %v must exceed the critical tail %v", c.Grace, c.CriticalTail)
	}
	if c.Window >= c.Flight {
		return fmt.Errorf("window %v must be shorter than the flight %v", c.Window, c.Flight)
	}
	if c.Trigger.Threshold <= 0 || c.Trigger.Threshold >= 1 {
		return fmt.Errorf("voice threshold must be in (0,1), got %v", c.Trigger.Threshold)
	}
	if err := c.Capture.Validate(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Engine is the game tuning carried by this config.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Windows: game.Windows{
			Anticipation: c.Window,
			CriticalTail: c.CriticalTail,
			Grace:        c.Grace,
		},
		Flight:       c.Flight,
		BaseInterval: c.BaseInterval,
		MinInterval:  c.MinInterval,
	}
}

// Load overlays a YAML file onto c. Keys absent from the file keep their value.
func (c *Config) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return l, errors.New("unknown log level " + s)
	}
	return l, nil
}
