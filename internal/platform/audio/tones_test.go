package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// drain streams s to the end and returns the sample count and peak amplitude.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = max(peak, abs(buf[i][0]), abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("streamer never finished")
	return 0, 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEveryCueHasATone(t *testing.T) {
	for _, s := range core.Sounds {
		tone, ok := Tones[s]
		if !ok {
			t.Errorf("no tone for %s", s)
			continue
		}
		if len(tone.Notes) == 0 || tone.Duration() <= 0 {
			t.Errorf("%s: empty tone", s)
		}
		if tone.Duration() > time.Second {
			t.Errorf("%s: %v is too long for an effect", s, tone.Duration())
		}
		if tone.Volume <= 0 || tone.Volume > 1 {
			t.Errorf("%s: volume %v out of range", s, tone.Volume)
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 50*time.Millisecond, wave, rate)
		n, peak := drain(t, osc)
		if n != rate.N(50*time.Millisecond) {
			t.Errorf("wave %d: %d samples, want %d", wave, n, rate.N(50*time.Millisecond))
		}
		if peak > 1.0 || peak < 0.5 {
			t.Errorf("wave %d: peak %v out of range", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d: unexpected error %v", wave, osc.Err())
		}
	}
}

func TestSquareWaveValues(t *testing.T) {
	osc := NewOscillator(220, 10*time.Millisecond, WaveSquare, beep.SampleRate(44100))
	buf := make([][2]float64, 100)
	n, _ := osc.Stream(buf)
	for i := range n {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("sample %d = %v, want ±1", i, v)
		}
	}
}

func TestToneStreamerLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	for s, tone := range Tones {
		want := 0
		for _, note := range tone.Notes {
			want += rate.N(note.Duration)
		}
		n, peak := drain(t, tone.Streamer(rate, 1))
		if n != want {
			t.Errorf("%s: %d samples, want %d", s, n, want)
		}
		if peak > tone.Volume+1e-9 {
			t.Errorf("%s: peak %v above volume %v", s, peak, tone.Volume)
		}
	}
}

func TestMutedToneIsSilent(t *testing.T) {
	_, peak := drain(t, Tones[core.SoundBlockBreak].Streamer(beep.SampleRate(44100), 0))
	if peak != 0 {
		t.Errorf("muted tone peaked at %v", peak)
	}
}

func TestEnvelopeStartsSilent(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := newEnvelope(NewOscillator(440, 20*time.Millisecond, WaveSquare, rate), 20*time.Millisecond, 5*time.Millisecond, 5*time.Millisecond, rate)
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("first sample = %v, want 0", buf[0][0])
	}
}

func TestPlayNeverBlocks(t *testing.T) {
	p := NewPlayer(0.5)
	// not started: nothing drains the queue
	for range queueSize + 10 {
		p.Play(core.SoundBallWallHit)
	}
	played, dropped := p.Stats()
	if played != 0 || dropped != 10 {
		t.Errorf("played %d dropped %d, want 0 and 10", played, dropped)
	}
	p.Close()
}

func TestNewSinkMuted(t *testing.T) {
	sink, closeFn := NewSink(true, 1, nil)
	if _, ok := sink.(core.NopAudio); !ok {
		t.Errorf("muted sink is %T, want NopAudio", sink)
	}
	closeFn()
}
