package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset converts a flag value into a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	p := DifficultyPreset(strings.ToLower(s))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", &ConfigurationError{
		Field:  "difficulty",
		Reason: fmt.Sprintf("unknown preset %q", s),
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Lives.Initial = 5
		cfg.Lives.Max = max(cfg.Lives.Max, 5)
		cfg.Paddle.Width *= 1.3
		cfg.Ball.Speed *= 0.8
		cfg.Ramp.Factor = 1 + (cfg.Ramp.Factor-1)/2
	case DifficultyHard:
		cfg.Lives.Initial = 2
		cfg.Lives.Max = max(cfg.Lives.Initial, min(cfg.Lives.Max, 2))
		cfg.Paddle.Width *= 0.8
		cfg.Ball.Speed *= 1.25
		cfg.Ramp.Factor = 1 + (cfg.Ramp.Factor-1)*2
	case DifficultyFixed:
		cfg.Ramp.Enabled = false
	}

	cfg.Paddle.Width = min(cfg.Paddle.Width, cfg.Surface.Width)
	cfg.Ball.MaxSpeed = max(cfg.Ball.MaxSpeed, cfg.Ball.Speed)
}
