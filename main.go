package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"

	"git.lost.host/meutraa/anticipate/internal/config"
	"git.lost.host/meutraa/anticipate/internal/render"
	"git.lost.host/meutraa/anticipate/internal/theme"
)

func main() {
	if err := run(os.Args[1:]); nil != err {
		log.Fatalln(err)
	}
}

func openLog(cfg *config.Config) (*slog.Logger, func(), error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = io.Discard
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}

func run(args []string) error {
	cfg, err := config.Parse(args)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return fmt.Errorf("unable to open keyboard: %w", err)
	}
	defer func() {
		if err := keyboard.Close(); nil != err {
			logger.Warn("unable to close keyboard", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dr := render.NewDefaultRenderer(&theme.DefaultTheme{})
	dr.Logger = logger
	var r render.Renderer = dr
	p := &Program{
		Config:   cfg,
		Logger:   logger,
		Renderer: r,
	}
	if err := p.Init(ctx); err != nil {
		return err
	}

	r.RenderLoop(ctx, cfg.FramePeriod, func(now time.Time) bool {
		if !p.Update(now, keyChannel) {
			return false
		}
		p.Render(now)
		return true
	})

	summary := p.Deinit()
	if summary != "" {
		fmt.Println(summary)
	}
	return nil
}
