package config

import (
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

// Parse builds the config from defaults, then the --config file, then any
// flag given on the command line.
func Parse(args []string) (*Config, error) {
	app := kingpin.New("anticipate", "Don't react. Anticipate.")
	app.Version(Version)

	cfg := Default()
	var f Config
	set := map[string]bool{}
	mark := func(name string) kingpin.Action {
		return func(*kingpin.ParseContext) error {
			set[name] = true
			return nil
		}
	}
	duration := func(name, help string, def time.Duration, short rune, to *time.Duration) {
		fc := app.Flag(name, help).Default(def.String()).Action(mark(name))
		if short != 0 {
			fc = fc.Short(short)
		}
		fc.DurationVar(to)
	}

	file := app.Flag("config", "YAML config file").Short('c').ExistingFile()
	duration("window", "Anticipation window before arrival", cfg.Window, 'w', &f.Window)
	duration("critical-tail", "Time after arrival a pulse stays critical", cfg.CriticalTail, 0, &f.CriticalTail)
	duration("grace", "Time after arrival a pulse is dropped", cfg.Grace, 0, &f.Grace)
	duration("flight", "Pulse travel time to the centre", cfg.Flight, 'f', &f.Flight)
	duration("base-interval", "Spawn interval before the rhythm is known", cfg.BaseInterval, 'i', &f.BaseInterval)
	duration("min-interval", "Shortest adaptive spawn interval", cfg.MinInterval, 0, &f.MinInterval)
	duration("frame-period", "Render frame period", cfg.FramePeriod, 'p', &f.FramePeriod)
	duration("voice-cooldown", "Minimum time between voice triggers", cfg.Trigger.Cooldown, 0, &f.Trigger.Cooldown)
	app.Flag("voice", "Anticipate with your voice").Short('v').Action(mark("voice")).BoolVar(&f.Voice)
	app.Flag("voice-device", "ALSA capture device").Default(cfg.Capture.Device).Action(mark("voice-device")).StringVar(&f.Capture.Device)
	app.Flag("voice-threshold", "RMS level that counts as voice").Default("0.12").Action(mark("voice-threshold")).Float64Var(&f.Trigger.Threshold)
	app.Flag("listen", "Address for the remote tap server, empty disables it").Short('l').Action(mark("listen")).StringVar(&f.Listen)
	app.Flag("mute", "Disable sound").Short('m').Action(mark("mute")).BoolVar(&f.Mute)
	app.Flag("log-file", "Log destination").Default(cfg.LogFile).Action(mark("log-file")).StringVar(&f.LogFile)
	app.Flag("log-level", "debug, info, warn or error").Default(cfg.LogLevel).Action(mark("log-level")).StringVar(&f.LogLevel)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}

	if *file != "" {
		if err := cfg.Load(*file); err != nil {
			return nil, err
		}
	}

	overrides := map[string]func(){
		"window":          func() { cfg.Window = f.Window },
		"critical-tail":   func() { cfg.CriticalTail = f.CriticalTail },
		"grace":           func() { cfg.Grace = f.Grace },
		"flight":          func() { cfg.Flight = f.Flight },
		"base-interval":   func() { cfg.BaseInterval = f.BaseInterval },
		"min-interval":    func() { cfg.MinInterval = f.MinInterval },
		"frame-period":    func() { cfg.FramePeriod = f.FramePeriod },
		"voice-cooldown":  func() { cfg.Trigger.Cooldown = f.Trigger.Cooldown },
		"voice":           func() { cfg.Voice = f.Voice },
		"voice-device":    func() { cfg.Capture.Device = f.Capture.Device },
		"voice-threshold": func() { cfg.Trigger.Threshold = f.Trigger.Threshold },
		"listen":          func() { cfg.Listen = f.Listen },
		"mute":            func() { cfg.Mute = f.Mute },
		"log-file":        func() { cfg.LogFile = f.LogFile },
		"log-level":       func() { cfg.LogLevel = f.LogLevel },
	}
	for name := range set {
		overrides[name]()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
