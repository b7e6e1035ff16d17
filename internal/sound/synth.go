package sound

import (
	"math"

	"github.com/faiface/beep"
)

type wave func(phase float64) float64

func sine(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

func triangle(phase float64) float64 {
	return 4*math.Abs(phase-math.Floor(phase+0.5)) - 1
}

func sawtooth(phase float64) float64 {
	return 2 * (phase - math.Floor(phase+0.5))
}

// envelope gives the gain at sample i of a voice n samples long.
type envelope func(i, n int) float64

// decay ramps up over attack samples then falls exponentially to 1% of peak.
func decay(peak float64, attack int) envelope {
	return func(i, n int) float64 {
		if i < attack {
			return peak * float64(i) / float64(attack)
		}
		return fall(peak, float64(i-attack)/float64(n-attack))
	}
}

// fall is the exponential tail at fraction t of the way to 1% gain.
func fall(peak, t float64) float64 {
	if peak <= 0.01 {
		return peak * (1 - t)
	}
	return peak * math.Pow(0.01/peak, t)
}

// sustain ramps up over attack, holds until release, then decays to 1% of peak.
func sustain(peak float64, attack, release int) envelope {
	return func(i, n int) float64 {
		switch {
		case i < attack:
			return peak * float64(i) / float64(attack)
		case i < release:
			return peak
		}
		return fall(peak, float64(i-release)/float64(n-release))
	}
}

// sweep is an exponential glide between two frequencies.
func sweep(from, to float64) func(i, n int) float64 {
	return func(i, n int) float64 {
		return from * math.Pow(to/from, float64(i)/float64(n))
	}
}

func steady(freq float64) func(i, n int) float64 {
	return func(int, int) float64 { return freq }
}

// voice is a finite oscillator streamer.
type voice struct {
	rate  float64
	n     int
	pos   int
	phase float64
	wave  wave
	freq  func(i, n int) float64
	gain  envelope
}

func newVoice(sr beep.SampleRate, n int, w wave, freq func(i, n int) float64, gain envelope) *voice {
	return &voice{rate: float64(sr), n: n, wave: w, freq: freq, gain: gain}
}

func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.pos >= v.n {
		return 0, false
	}
	i := 0
	for ; i < len(samples) && v.pos < v.n; i++ {
		s := v.wave(v.phase) * v.gain(v.pos, v.n)
		samples[i][0], samples[i][1] = s, s
		v.phase += v.freq(v.pos, v.n) / v.rate
		v.phase -= math.Floor(v.phase)
		v.pos++
	}
	return i, true
}

func (v *voice) Err() error {
	return nil
}

// drone is the endless ambient bed. Its fields are only changed under
// speaker.Lock.
type drone struct {
	rate   float64
	base   float64
	level  float64
	phases [4]float64
}

var droneHarmonics = [4]float64{1, 1.5, 2, 3}

func droneFrequency(syncRate float64) float64 {
	return 110 + syncRate*55
}

func droneLevel(syncRate float64) float64 {
	return 0.5 + syncRate*0.5
}

func (d *drone) set(syncRate float64) {
	d.base = droneFrequency(syncRate)
	d.level = droneLevel(syncRate)
}

func (d *drone) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		var s float64
		for h, mul := range droneHarmonics {
			w := triangle
			if h == 0 {
				w = sine
			}
			s += w(d.phases[h]) * (0.15 / float64(h+1)) * d.level
			d.phases[h] += d.base * mul / d.rate
			d.phases[h] -= math.Floor(d.phases[h])
		}
		samples[i][0], samples[i][1] = s, s
	}
	return len(samples), true
}

func (d *drone) Err() error {
	return nil
}
