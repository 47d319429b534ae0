package breakout

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Snapshot is a read-only copy of a run for renderers and spectators.
// It shares no memory with the run.
type Snapshot struct {
	Frame  uint64  `msgpack:"frame"`
	Width  float64 `msgpack:"w"`
	Height float64 `msgpack:"h"`

	Paddle  PaddleState   `msgpack:"paddle"`
	Balls   []BallState   `msgpack:"balls"`
	Blocks  []BlockState  `msgpack:"blocks"`
	Pickups []PickupState `msgpack:"pickups"`

	Score        int     `msgpack:"score"`
	Lives        int     `msgpack:"lives"`
	MaxLives     int     `msgpack:"max_lives"`
	Level        int     `msgpack:"level"` // 1-based
	LevelCount   int     `msgpack:"level_count"`
	LevelName    string  `msgpack:"level_name"`
	LifeProgress float64 `msgpack:"life_progress"`
	Multiplier   float64 `msgpack:"multiplier"`

	GameOver bool `msgpack:"game_over"`
	GameWon  bool `msgpack:"game_won"`
	Paused   bool `msgpack:"paused"`
	Flash    bool `msgpack:"flash"`

	PowerUps  []ActivePowerUp `msgpack:"powerups"`
	Particles []ParticleState `msgpack:"particles"`
	Elapsed   float64         `msgpack:"elapsed"` // seconds of game time
}

// PaddleState is the paddle as seen by a renderer.
type PaddleState struct {
	X, Y, W, H float64
}

// BallState is one ball. Speed is the effective travel per frame before the ramp.
type BallState struct {
	X, Y   float64
	DX, DY float64
	R      float64
	Speed  float64
	Stuck  bool
}

// BlockState is one block of the grid, visible or not.
type BlockState struct {
	X, Y, W, H float64
	Color      core.Color
	Health     int
	MaxHealth  int
	Visible    bool
}

// PickupState is one falling power-up.
type PickupState struct {
	X, Y float64
	Size float64
	Kind PowerUpKind
}

// ActivePowerUp is a registry entry with its remaining time.
type ActivePowerUp struct {
	Kind        PowerUpKind `msgpack:"kind"`
	Name        string      `msgpack:"name"`
	RemainingMS int64       `msgpack:"remaining_ms"`
}

// ParticleState is one decorative particle.
type ParticleState struct {
	X, Y  float64
	Alpha float64
	Color core.Color
}

// Snapshot returns the current state of the run.
func (r *Run) Snapshot() Snapshot {
	s := Snapshot{
		Frame:  r.frame,
		Width:  r.cfg.Surface.Width,
		Height: r.cfg.Surface.Height,
		Paddle: PaddleState{X: r.paddle.X, Y: r.paddle.Y, W: r.paddle.Width, H: r.paddle.Height},

		Score:        r.score,
		Lives:        r.lives,
		MaxLives:     r.cfg.Lives.Max,
		Level:        r.level + 1,
		LevelCount:   len(r.cfg.Levels),
		LevelName:    r.cfg.Levels[r.level].Name,
		LifeProgress: r.lifeProgress,
		Multiplier:   r.multiplier,

		GameOver: r.gameOver,
		GameWon:  r.gameWon,
		Paused:   r.clock.Paused(),
		Flash:    r.now.Before(r.flashUntil),
		Elapsed:  r.Elapsed().Seconds(),
	}

	s.Balls = make([]BallState, len(r.balls))
	for i, b := range r.balls {
		s.Balls[i] = BallState{
			X: b.Pos.X, Y: b.Pos.Y,
			DX: b.Dir.X, DY: b.Dir.Y,
			R:     b.Radius,
			Speed: b.Speed * r.speedFactor,
			Stuck: b.Stuck,
		}
	}

	s.Blocks = make([]BlockState, len(r.blocks))
	for i, b := range r.blocks {
		s.Blocks[i] = BlockState{
			X: b.X, Y: b.Y, W: b.W, H: b.H,
			Color:     b.Color,
			Health:    b.Health,
			MaxHealth: b.MaxHealth,
			Visible:   b.Visible(),
		}
	}

	s.Pickups = make([]PickupState, len(r.pickups))
	for i, p := range r.pickups {
		s.Pickups[i] = PickupState{X: p.Pos.X, Y: p.Pos.Y, Size: p.Size, Kind: p.Kind}
	}

	for _, kind := range r.active.Kinds() {
		exp, _ := r.active.Expiry(kind)
		s.PowerUps = append(s.PowerUps, ActivePowerUp{
			Kind:        kind,
			Name:        kind.String(),
			RemainingMS: max(exp.Sub(r.now).Milliseconds(), 0),
		})
	}

	for p := range r.fx.Particles() {
		s.Particles = append(s.Particles, ParticleState{X: p.Pos.X, Y: p.Pos.Y, Alpha: p.Alpha(), Color: p.Color})
	}
	return s
}

// VisibleBlocks counts the blocks still in play.
func (s Snapshot) VisibleBlocks() int {
	n := 0
	for _, b := range s.Blocks {
		if b.Visible {
			n++
		}
	}
	return n
}

// Hash returns an FNV-1a digest of the gameplay fields for determinism
// tests. Decorative particles and wall-clock derived fields are excluded.
func (s Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf []byte
	f := func(v float64) { buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v)) }
	n := func(v int) { buf = binary.LittleEndian.AppendUint64(buf, uint64(v)) } //#nosec G115 -- hash input
	b := func(v bool) {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	buf = binary.LittleEndian.AppendUint64(buf, s.Frame)
	f(s.Paddle.X)
	f(s.Paddle.W)
	n(s.Score)
	n(s.Lives)
	n(s.Level)
	f(s.LifeProgress)
	f(s.Multiplier)
	b(s.GameOver)
	b(s.GameWon)

	for _, ball := range s.Balls {
		f(ball.X)
		f(ball.Y)
		f(ball.DX)
		f(ball.DY)
		f(ball.Speed)
		b(ball.Stuck)
	}
	for _, blk := range s.Blocks {
		n(blk.Health)
		b(blk.Visible)
	}
	for _, p := range s.Pickups {
		f(p.X)
		f(p.Y)
		n(int(p.Kind))
	}
	for _, pu := range s.PowerUps {
		n(int(pu.Kind))
		buf = binary.LittleEndian.AppendUint64(buf, uint64(pu.RemainingMS)) //#nosec G115 -- hash input
	}

	_, _ = h.Write(buf)
	return h.Sum64()
}
