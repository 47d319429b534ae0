// Package config provides YAML-based configuration loading, validation
// and difficulty presets for the brick breaker simulation.
package config

import (
	"fmt"
	"time"
)

// BreakoutConfig contains every tunable of a run. It is treated as
// immutable once a run has been created from it.
type BreakoutConfig struct {
	Surface  SurfaceConfig `yaml:"surface"`
	Paddle   PaddleConfig  `yaml:"paddle"`
	Ball     BallConfig    `yaml:"ball"`
	Ramp     RampConfig    `yaml:"ramp"`
	Lives    LivesConfig   `yaml:"lives"`
	Scoring  ScoringConfig `yaml:"scoring"`
	PowerUps PowerUpConfig `yaml:"powerups"`
	Grid     GridConfig    `yaml:"grid"`
	Levels   []LevelConfig `yaml:"levels"`
	Effects  EffectsConfig `yaml:"effects"`
}

// SurfaceConfig is the size of the playing field in surface pixels.
type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PaddleConfig defines the paddle geometry and speed.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`         // px per frame before the ramp multiplier
	BottomOffset float64 `yaml:"bottom_offset"` // distance from paddle top to surface bottom
}

// BallConfig defines the ball geometry and speed limits.
type BallConfig struct {
	Radius      float64 `yaml:"radius"`
	Speed       float64 `yaml:"speed"`        // base px per frame
	SpeedStep   float64 `yaml:"speed_step"`   // added on every paddle hit
	MaxSpeed    float64 `yaml:"max_speed"`    // cap for speed including the step bonus
	LaunchAngle float64 `yaml:"launch_angle"` // degrees above the horizontal, to the right
	StuckOffset float64 `yaml:"stuck_offset"` // gap between a stuck ball and the paddle top
}

// RampConfig defines the compounding global speed multiplier.
type RampConfig struct {
	Enabled       bool          `yaml:"enabled"`
	Interval      time.Duration `yaml:"interval"`
	Factor        float64       `yaml:"factor"`
	LevelUpFactor float64       `yaml:"level_up_factor"`
}

// LivesConfig defines starting lives, the cap and score-driven life gain.
type LivesConfig struct {
	Initial          int     `yaml:"initial"`
	Max              int     `yaml:"max"`
	ProgressPerBlock float64 `yaml:"progress_per_block"`
}

// ScoringConfig defines points awarded per destroyed block.
type ScoringConfig struct {
	BlockPoints int `yaml:"block_points"`
}

// PowerUpConfig defines pickup spawning and effect magnitudes.
type PowerUpConfig struct {
	Chance          float64          `yaml:"chance"`
	BonusBelow      int              `yaml:"bonus_below"`      // spawned count below which chance is multiplied
	BonusMultiplier float64          `yaml:"bonus_multiplier"` // applied to chance while below BonusBelow
	MaxPerLevel     int              `yaml:"max_per_level"`
	FallSpeed       float64          `yaml:"fall_speed"`
	Size            float64          `yaml:"size"`
	ExpandFactor    float64          `yaml:"expand_factor"`
	ShrinkFactor    float64          `yaml:"shrink_factor"`
	SpeedUpFactor   float64          `yaml:"speed_up_factor"`
	SlowDownFactor  float64          `yaml:"slow_down_factor"`
	MinPaddleWidth  float64          `yaml:"min_paddle_width"`
	MaxPaddleWidth  float64          `yaml:"max_paddle_width"`
	Durations       PowerUpDurations `yaml:"durations"`
}

// PowerUpDurations are the lifetimes of the timed power-ups.
type PowerUpDurations struct {
	Expand   time.Duration `yaml:"expand"`
	Shrink   time.Duration `yaml:"shrink"`
	SpeedUp  time.Duration `yaml:"speed_up"`
	SlowDown time.Duration `yaml:"slow_down"`
}

// GridConfig defines where the block grid sits on the surface.
type GridConfig struct {
	Top         float64 `yaml:"top"`
	Margin      float64 `yaml:"margin"`
	Padding     float64 `yaml:"padding"`
	BlockHeight float64 `yaml:"block_height"`
}

// LevelConfig describes one level. Pattern, when present, wins over Rows/Cols:
//
//	'.' = empty
//	'#' = one-hit block
//	'H' = two-hit block
//	'2'-'9' = block with that many hits
type LevelConfig struct {
	Name    string   `yaml:"name"`
	Rows    int      `yaml:"rows"`
	Cols    int      `yaml:"cols"`
	Pattern []string `yaml:"pattern,omitempty"`
}

// Dimensions returns the grid size of the level.
func (l LevelConfig) Dimensions() (rows, cols int) {
	if len(l.Pattern) == 0 {
		return l.Rows, l.Cols
	}
	for _, line := range l.Pattern {
		cols = max(cols, len(line))
	}
	return len(l.Pattern), cols
}

// EffectsConfig defines the purely decorative timings.
type EffectsConfig struct {
	Fireworks        int           `yaml:"fireworks"`
	FireworkInterval time.Duration `yaml:"firework_interval"`
	FlashDuration    time.Duration `yaml:"flash_duration"`
}

// LevelAt returns the level definition for a zero-based index.
func (c BreakoutConfig) LevelAt(i int) (LevelConfig, error) {
	if i < 0 || i >= len(c.Levels) {
		return LevelConfig{}, &ConfigurationError{
			Field:  fmt.Sprintf("levels[%d]", i),
			Reason: fmt.Sprintf("no level definition (have %d)", len(c.Levels)),
		}
	}
	return c.Levels[i], nil
}

// Validate checks the config for values the simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	checks := []struct {
		ok     bool
		field  string
		reason string
	}{
		{c.Surface.Width > 0 && c.Surface.Height > 0, "surface", "width and height must be positive"},
		{c.Paddle.Width > 0 && c.Paddle.Width <= c.Surface.Width, "paddle.width", "must be positive and fit the surface"},
		{c.Paddle.Height > 0, "paddle.height", "must be positive"},
		{c.Paddle.Speed >= 0, "paddle.speed", "must not be negative"},
		{c.Paddle.BottomOffset > 0 && c.Paddle.BottomOffset < c.Surface.Height, "paddle.bottom_offset", "must lie inside the surface"},
		{c.Ball.Radius > 0, "ball.radius", "must be positive"},
		{c.Ball.Speed > 0, "ball.speed", "must be positive"},
		{c.Ball.MaxSpeed >= c.Ball.Speed, "ball.max_speed", "must be at least ball.speed"},
		{c.Ball.SpeedStep >= 0, "ball.speed_step", "must not be negative"},
		{!c.Ramp.Enabled || c.Ramp.Interval > 0, "ramp.interval", "must be positive when the ramp is enabled"},
		{c.Ramp.Factor >= 1, "ramp.factor", "must be at least 1"},
		{c.Ramp.LevelUpFactor >= 1, "ramp.level_up_factor", "must be at least 1"},
		{c.Lives.Initial > 0, "lives.initial", "must be positive"},
		{c.Lives.Max >= c.Lives.Initial, "lives.max", "must be at least lives.initial"},
		{c.Lives.ProgressPerBlock >= 0, "lives.progress_per_block", "must not be negative"},
		{c.Scoring.BlockPoints >= 0, "scoring.block_points", "must not be negative"},
		{c.PowerUps.Chance >= 0 && c.PowerUps.Chance <= 1, "powerups.chance", "must be within [0,1]"},
		{c.PowerUps.MaxPerLevel >= 0, "powerups.max_per_level", "must not be negative"},
		{c.PowerUps.Size > 0, "powerups.size", "must be positive"},
		{c.PowerUps.MinPaddleWidth > 0 && c.PowerUps.MinPaddleWidth <= c.PowerUps.MaxPaddleWidth, "powerups.min_paddle_width", "must be positive and not above max_paddle_width"},
		{c.PowerUps.ExpandFactor > 0 && c.PowerUps.ShrinkFactor > 0, "powerups.expand_factor", "width factors must be positive"},
		{c.PowerUps.SpeedUpFactor > 0 && c.PowerUps.SlowDownFactor > 0, "powerups.speed_up_factor", "speed factors must be positive"},
		{c.Grid.BlockHeight > 0, "grid.block_height", "must be positive"},
		{len(c.Levels) > 0, "levels", "at least one level is required"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return &ConfigurationError{Field: chk.field, Reason: chk.reason}
		}
	}

	for i, l := range c.Levels {
		rows, cols := l.Dimensions()
		if rows <= 0 || cols <= 0 {
			return &ConfigurationError{
				Field:  fmt.Sprintf("levels[%d]", i),
				Reason: "needs rows and cols or a pattern",
			}
		}
	}
	return nil
}
