package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/younwookim/squish/internal/application/system"
)

// toneDef describes a short generated sound
type toneDef struct {
	freq     float64 // start frequency in Hz
	sweep    float64 // Hz per second
	duration time.Duration
	volume   float64
	square   bool
	repeat   bool // restart the sweep every duration instead of ending
}

var cueTones = map[system.Cue]toneDef{
	system.CueJump:   {freq: 440, sweep: 1200, duration: 120 * time.Millisecond, volume: 0.2, square: true},
	system.CueLand:   {freq: 160, sweep: -400, duration: 60 * time.Millisecond, volume: 0.2},
	system.CueSquish: {freq: 220, sweep: 220, duration: 250 * time.Millisecond, volume: 0.1},
	system.CueCrush:  {freq: 90, sweep: -120, duration: 400 * time.Millisecond, volume: 0.3, square: true},
	system.CueLaunch: {freq: 300, sweep: 2400, duration: 200 * time.Millisecond, volume: 0.25},
	system.CueButton: {freq: 660, duration: 80 * time.Millisecond, volume: 0.2, square: true},
	system.CueKey:    {freq: 880, sweep: 880, duration: 150 * time.Millisecond, volume: 0.2},
	system.CueGate:   {freq: 120, sweep: 60, duration: 300 * time.Millisecond, volume: 0.2, square: true},
	system.CueExit:   {freq: 523, sweep: 523, duration: 500 * time.Millisecond, volume: 0.25},
}

// tone generates a swept sine or square wave with a linear fade out
type tone struct {
	sr      beep.SampleRate
	def     toneDef
	pos     int
	samples int
	phase   float64
}

func newTone(sr beep.SampleRate, def toneDef) *tone {
	n := sr.N(def.duration)
	if n < 1 {
		n = 1
	}
	return &tone{sr: sr, def: def, samples: n}
}

func (g *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if g.pos >= g.samples {
			if !g.def.repeat {
				return i, i > 0
			}
			g.pos = 0
		}
		t := float64(g.pos) / float64(g.sr)
		freq := math.Max(20, g.def.freq+g.def.sweep*t)

		val := math.Sin(2 * math.Pi * g.phase)
		if g.def.square {
			val = 1
			if g.phase >= 0.5 {
				val = -1
			}
		}
		fade := 1 - float64(g.pos)/float64(g.samples)
		sample := val * g.def.volume * fade

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		g.phase -= math.Floor(g.phase)
		g.pos++
	}
	return len(samples), true
}

func (g *tone) Err() error {
	return nil
}
