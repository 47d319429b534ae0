package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}

// DefaultBreakoutConfig returns the hard-coded configuration used when the
// embedded YAML cannot be parsed.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Surface: SurfaceConfig{Width: 600, Height: 600},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       10,
			Speed:        6,
			BottomOffset: 30,
		},
		Ball: BallConfig{
			Radius:      5,
			Speed:       3.0,
			SpeedStep:   0.04,
			MaxSpeed:    6.0,
			LaunchAngle: 45,
			StuckOffset: 2,
		},
		Ramp: RampConfig{
			Enabled:       true,
			Interval:      10 * time.Second,
			Factor:        1.05,
			LevelUpFactor: 1.1,
		},
		Lives: LivesConfig{
			Initial:          3,
			Max:              3,
			ProgressPerBlock: 0.05,
		},
		Scoring: ScoringConfig{BlockPoints: 10},
		PowerUps: PowerUpConfig{
			Chance:          0.2,
			BonusBelow:      3,
			BonusMultiplier: 2,
			MaxPerLevel:     7,
			FallSpeed:       2,
			Size:            30,
			ExpandFactor:    1.5,
			ShrinkFactor:    0.6,
			SpeedUpFactor:   1.3,
			SlowDownFactor:  0.7,
			MinPaddleWidth:  40,
			MaxPaddleWidth:  250,
			Durations: PowerUpDurations{
				Expand:   10 * time.Second,
				Shrink:   10 * time.Second,
				SpeedUp:  8 * time.Second,
				SlowDown: 8 * time.Second,
			},
		},
		Grid: GridConfig{
			Top:         50,
			Margin:      10,
			Padding:     5,
			BlockHeight: 20,
		},
		Levels: []LevelConfig{
			{Name: "Warm Up", Rows: 5, Cols: 8},
			{Name: "Stepping Stones", Rows: 6, Cols: 9},
			{Name: "Wall", Rows: 7, Cols: 10},
			{Name: "Fortress", Rows: 8, Cols: 11},
			{Name: "Finale", Rows: 9, Cols: 12},
		},
		Effects: EffectsConfig{
			Fireworks:        5,
			FireworkInterval: 300 * time.Millisecond,
			FlashDuration:    300 * time.Millisecond,
		},
	}
}
