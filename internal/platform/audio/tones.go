// Package audio plays short synthesized tones for simulation sound cues.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// Note is one pitch held for a duration.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Tone describes the sound played for a cue.
type Tone struct {
	Wave   WaveType
	Notes  []Note
	Volume float64 // linear, 0..1
}

// Duration returns the total length of the tone.
func (t Tone) Duration() time.Duration {
	var d time.Duration
	for _, n := range t.Notes {
		d += n.Duration
	}
	return d
}

// Tones maps every cue to its tone.
var Tones = map[core.Sound]Tone{
	core.SoundBallWallHit: {
		Wave:   WaveSquare,
		Notes:  []Note{{Freq: 440, Duration: 30 * time.Millisecond}},
		Volume: 0.15,
	},
	core.SoundBallPaddleHit: {
		Wave:   WaveSquare,
		Notes:  []Note{{Freq: 330, Duration: 50 * time.Millisecond}},
		Volume: 0.2,
	},
	core.SoundBlockBreak: {
		Wave:   WaveTriangle,
		Notes:  []Note{{Freq: 880, Duration: 40 * time.Millisecond}, {Freq: 1175, Duration: 40 * time.Millisecond}},
		Volume: 0.25,
	},
	core.SoundBallLost: {
		Wave:   WaveTriangle,
		Notes:  []Note{{Freq: 392, Duration: 120 * time.Millisecond}, {Freq: 262, Duration: 200 * time.Millisecond}},
		Volume: 0.3,
	},
	core.SoundGameOver: {
		Wave: WaveSine,
		Notes: []Note{
			{Freq: 392, Duration: 180 * time.Millisecond},
			{Freq: 330, Duration: 180 * time.Millisecond},
			{Freq: 262, Duration: 400 * time.Millisecond},
		},
		Volume: 0.35,
	},
	core.SoundLevelComplete: {
		Wave: WaveSquare,
		Notes: []Note{
			{Freq: 523, Duration: 100 * time.Millisecond},
			{Freq: 659, Duration: 100 * time.Millisecond},
			{Freq: 784, Duration: 100 * time.Millisecond},
			{Freq: 1047, Duration: 250 * time.Millisecond},
		},
		Volume: 0.25,
	},
	core.SoundPowerUpCollected: {
		Wave:   WaveSine,
		Notes:  []Note{{Freq: 988, Duration: 60 * time.Millisecond}, {Freq: 1319, Duration: 120 * time.Millisecond}},
		Volume: 0.3,
	},
}

// oscillator generates a raw wave for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a finite wave streamer.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1.0
			if o.phase >= 0.5 {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a finite stream in and out to avoid clicks.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := range n {
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			vol = min(vol, max(float64(remaining)/float64(e.release), 0))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream by a linear factor; zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Streamer builds a fresh streamer for the tone at the given master volume.
func (t Tone) Streamer(rate beep.SampleRate, master float64) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(t.Notes))
	for _, n := range t.Notes {
		osc := NewOscillator(n.Freq, n.Duration, t.Wave, rate)
		edge := min(5*time.Millisecond, n.Duration/4)
		parts = append(parts, newEnvelope(osc, n.Duration, edge, edge, rate))
	}
	return newVolume(beep.Seq(parts...), t.Volume*master)
}
