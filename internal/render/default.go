package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"git.lost.host/meutraa/anticipate/internal/engine"
	"git.lost.host/meutraa/anticipate/internal/game"
	"git.lost.host/meutraa/anticipate/internal/theme"
)

type DefaultRenderer struct {
	Out    io.Writer
	Theme  theme.Theme
	Logger *slog.Logger

	buffer        strings.Builder
	width, height int
	feedback      []game.Feedback
	writeFailed   bool
}

func NewDefaultRenderer(th theme.Theme) *DefaultRenderer {
	return &DefaultRenderer{Out: os.Stdout, Theme: th, width: 80, height: 24}
}

func (r *DefaultRenderer) Init() error {
	r.Resize()
	fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	_, err := fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	return err
}

// Resize picks up the terminal size, keeping the last known one if stdout
// is not a terminal.
func (r *DefaultRenderer) Resize() {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return
	}
	if w, h, err := term.GetSize(fd); err == nil {
		r.width, r.height = w, h
	}
}

func (r *DefaultRenderer) SetSize(width, height int) {
	r.width, r.height = width, height
}

func (r *DefaultRenderer) Emit(f game.Feedback) {
	r.feedback = append(r.feedback, f)
}

func (r *DefaultRenderer) tickFeedback(now time.Time) {
	kept := r.feedback[:0]
	for _, f := range r.feedback {
		if !f.Expired(now) {
			kept = append(kept, f)
		}
	}
	r.feedback = kept
}

// RenderLoop calls render once per period until it returns false or ctx ends.
func (r *DefaultRenderer) RenderLoop(ctx context.Context, period time.Duration, render func(now time.Time) bool) {
	for cont := true; cont; {
		now := time.Now()
		deadline := now.Add(period)

		cont = render(now)
		r.flush()

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(deadline)):
		}
	}
}

func (r *DefaultRenderer) radius() float64 {
	return float64(min(r.width/2, r.height)) * 0.9
}

// Draw paints a whole frame for s into the buffer.
func (r *DefaultRenderer) Draw(now time.Time, s engine.State) {
	r.tickFeedback(now)
	r.buffer.WriteString("\033[H\033[2J")

	cr, cc := r.height/2, r.width/2
	reach := r.radius()

	r.drawPattern(now, cr, cc, reach, s.Stats)

	for _, f := range r.feedback {
		age := f.Age(now)
		grow := 2.0
		if f.Kind == game.Echo {
			grow = 4
		}
		// feedback radii are in canvas pixels, scale them to the field
		rr := f.Radius / 200 * reach * 0.25 * (1 + age*grow)
		glyph := r.Theme.RenderFeedback(f.Kind, age)
		for _, p := range ring(cr, cc, rr) {
			r.Fill(p[0], p[1], glyph)
		}
	}

	for _, p := range s.Pulses {
		if p.Progress < 0 || p.Progress > 1 {
			continue
		}
		x, y := spiral(p.Progress, reach)
		row, col := cell(cr, cc, x, y)
		if p.Phase == game.Critical.String() {
			tether := r.Theme.RenderTether()
			for _, c := range line(row, col, cr, cc) {
				r.Fill(c[0], c[1], tether)
			}
		}
		r.Fill(row, col, r.Theme.RenderPulse(phaseOf(p.Phase)))
	}

	core := 0.5 + s.Stats.PredictiveField/25
	glyph := r.Theme.RenderCore(s.Stats.Flow)
	for rr := 0.0; rr <= core; rr++ {
		for _, p := range ring(cr, cc, rr) {
			r.Fill(p[0], p[1], glyph)
		}
	}

	r.drawHUD(s)
}

// drawPattern paints the cymatic background. It speeds up and gains nodes
// with sync rate; the rotating nodes only show above patternNodeSync.
func (r *DefaultRenderer) drawPattern(now time.Time, cr, cc int, reach float64, s game.Snapshot) {
	t := float64(now.UnixMilli()%1_000_000) / 1000 * (0.6 + s.SyncRate*1.2)
	rings, nodes := patternShape(s.SyncRate, s.Flow)
	for ring := 1; ring < rings; ring++ {
		glyph := r.Theme.RenderPattern(s.Flow, ring, rings)
		for _, p := range patternRing(cr, cc, reach, s.SyncRate, ring, rings, nodes, t) {
			r.Fill(p[0], p[1], glyph)
		}
	}
	if s.SyncRate > patternNodeSync {
		glyph := r.Theme.RenderNode(s.Flow)
		for _, p := range patternNodesAt(cr, cc, reach, nodes, t) {
			r.Fill(p[0], p[1], glyph)
		}
	}
}

const patternNodeSync = 0.3

func (r *DefaultRenderer) drawHUD(s engine.State) {
	r.Fill(2, 3, r.Theme.Label("PREDICTIVE FIELD"))
	r.Fill(3, 3, fmt.Sprintf("%3.0f%%", s.Stats.PredictiveField))
	r.Fill(5, 3, r.Theme.Label("SYNC RATE"))
	r.Fill(6, 3, fmt.Sprintf("%3.0f%%", s.Stats.SyncRate*100))
	r.Fill(8, 3, r.Theme.Label("RESONANCE"))
	r.Fill(9, 3, strconv.Itoa(s.Stats.Score))
	if s.Stats.Flow {
		r.Fill(11, 3, r.Theme.Label("FLOW"))
	}
	if !s.Stats.Playing {
		msg := "Anticipate the pulse before it arrives. Press space to begin."
		r.Fill(r.height-2, max(1, (r.width-len(msg))/2), msg)
	}
}

func phaseOf(name string) game.Phase {
	for _, p := range []game.Phase{game.Approaching, game.Critical, game.Passed} {
		if p.String() == name {
			return p
		}
	}
	return game.Passed
}

// Fill writes message at a 0-based cell. Cells off screen are skipped.
func (r *DefaultRenderer) Fill(row, column int, message string) {
	if row < 0 || column < 0 || row >= r.height || column >= r.width {
		return
	}
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row + 1))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column + 1))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

// flush writes the frame, logging only the first failed write.
func (r *DefaultRenderer) flush() {
	_, err := io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
	if err == nil {
		r.writeFailed = false
		return
	}
	if !r.writeFailed {
		r.writeFailed = true
		logger := r.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("unable to write frame", "error", err)
	}
}
