package sound

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const SampleRate = beep.SampleRate(44100)

// BeepBank synthesises every cue and plays it on the default speaker.
type BeepBank struct {
	sr     beep.SampleRate
	master float64
	drone  *drone
	logger *slog.Logger
}

func NewBeepBank(logger *slog.Logger) (*BeepBank, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sr := SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("unable to open speaker: %w", err)
	}
	b := &BeepBank{
		sr:     sr,
		master: 0.3,
		drone:  &drone{rate: float64(sr)},
		logger: logger,
	}
	b.drone.set(0)
	speaker.Play(b.gain(b.drone))
	logger.Info("sound bank ready", "sample_rate", int(sr))
	return b, nil
}

// gain applies the master volume.
func (b *BeepBank) gain(s beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			samples[i][0] *= b.master
			samples[i][1] *= b.master
		}
		return n, ok
	})
}

func (b *BeepBank) play(s ...beep.Streamer) {
	speaker.Play(b.gain(beep.Mix(s...)))
}

func (b *BeepBank) OnAmbient(syncRate float64) {
	speaker.Lock()
	b.drone.set(syncRate)
	speaker.Unlock()
}

func (b *BeepBank) OnHit(accuracy float64) {
	b.play(hitVoice(b.sr, accuracy))
}

func (b *BeepBank) OnMiss() {
	b.play(missVoices(b.sr)...)
}

func (b *BeepBank) OnFlowEnter() {
	b.play(flowVoices(b.sr)...)
}

func (b *BeepBank) OnAnticipationRipple() {
	b.play(rippleVoice(b.sr))
}

func hitVoice(sr beep.SampleRate, accuracy float64) beep.Streamer {
	n := sr.N(300 * time.Millisecond)
	return newVoice(sr, n, sine, steady(440+accuracy*440), decay(0.3*accuracy, sr.N(10*time.Millisecond)))
}

func rippleVoice(sr beep.SampleRate) beep.Streamer {
	n := sr.N(500 * time.Millisecond)
	return newVoice(sr, n, triangle, sweep(880, 220), decay(0.2, 1))
}

// missVoices is a slightly dissonant cluster, each voice 100ms after the last.
func missVoices(sr beep.SampleRate) []beep.Streamer {
	freqs := []float64{200, 233, 300}
	out := make([]beep.Streamer, len(freqs))
	for i, f := range freqs {
		n := sr.N(time.Second)
		out[i] = beep.Seq(
			beep.Silence(sr.N(time.Duration(i)*100*time.Millisecond)),
			newVoice(sr, n, sawtooth, steady(f), decay(0.1, 1)),
		)
	}
	return out
}

var flowHarmonics = []float64{1, 2, 3, 4, 5, 6, 8}

func flowVoices(sr beep.SampleRate) []beep.Streamer {
	out := make([]beep.Streamer, len(flowHarmonics))
	for i, h := range flowHarmonics {
		n := sr.N(3 * time.Second)
		out[i] = newVoice(sr, n, sine, steady(220*h),
			sustain(0.1/h, sr.N(500*time.Millisecond), sr.N(2*time.Second)))
	}
	return out
}
