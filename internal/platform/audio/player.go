package audio

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

const (
	sampleRate = beep.SampleRate(44100)
	queueSize  = 32
)

// Player plays cues through the default audio device.
// Play never blocks: cues are queued and dropped when the queue is full.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	queue   chan core.Sound
	done    chan struct{}
	volume  float64
	running bool

	played  atomic.Uint64
	dropped atomic.Uint64
}

// NewPlayer creates a player at the given master volume (0..1).
// It makes no sound until Start succeeds.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		queue:  make(chan core.Sound, queueSize),
		done:   make(chan struct{}),
		volume: min(max(volume, 0), 1),
	}
}

// Start opens the audio device and begins playing queued cues.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open device: %w", err)
	}
	speaker.Play(p.mixer)

	p.running = true
	go p.loop()
	return nil
}

func (p *Player) loop() {
	for {
		select {
		case s := <-p.queue:
			tone, ok := Tones[s]
			if !ok {
				continue
			}
			speaker.Lock()
			p.mixer.Add(tone.Streamer(sampleRate, p.volume))
			speaker.Unlock()
			p.played.Add(1)
		case <-p.done:
			return
		}
	}
}

// Play queues a cue.
func (p *Player) Play(s core.Sound) {
	select {
	case p.queue <- s:
	default:
		p.dropped.Add(1)
	}
}

// Stats returns how many cues were played and dropped.
func (p *Player) Stats() (played, dropped uint64) {
	return p.played.Load(), p.dropped.Load()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}
	close(p.done)
	speaker.Clear()
	speaker.Close()
	p.running = false
}

// NewSink returns a started player, or a silent sink when muted or when
// no audio device is available. The returned close function is never nil.
func NewSink(muted bool, volume float64, logger *log.Logger) (core.AudioSink, func()) {
	if muted {
		return core.NopAudio{}, func() {}
	}
	p := NewPlayer(volume)
	if err := p.Start(); err != nil {
		if logger != nil {
			logger.Warn("audio disabled", "err", err)
		}
		return core.NopAudio{}, func() {}
	}
	return p, p.Close
}

var _ core.AudioSink = (*Player)(nil)
