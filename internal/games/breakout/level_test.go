package breakout

import (
	"errors"
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestBuildGridLayout(t *testing.T) {
	grid := config.GridConfig{Top: 50, Margin: 10, Padding: 5, BlockHeight: 20}
	blocks, err := BuildGrid(config.LevelConfig{Name: "t", Rows: 2, Cols: 4}, grid, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 8 {
		t.Fatalf("expected 8 blocks, got %d", len(blocks))
	}

	wantW := (600.0 - 20 - 15) / 4
	first, last := blocks[0], blocks[7]
	if first.X != 10 || first.Y != 50 || !near(first.W, wantW) {
		t.Errorf("first block at (%v,%v) w=%v", first.X, first.Y, first.W)
	}
	if !near(last.X+last.W, 590) || last.Y != 75 {
		t.Errorf("last block should end at the right margin: x=%v w=%v y=%v", last.X, last.W, last.Y)
	}
	if first.Color != core.ColorRed || last.Color != core.ColorOrange {
		t.Errorf("row colours = %v, %v", first.Color, last.Color)
	}
}

func TestBuildGridPattern(t *testing.T) {
	level := config.LevelConfig{
		Name:    "p",
		Pattern: []string{"#.H", "3 1", "#"},
	}
	grid := config.GridConfig{Top: 0, Margin: 0, Padding: 0, BlockHeight: 10}
	blocks, err := BuildGrid(level, grid, 300)
	if err != nil {
		t.Fatal(err)
	}

	var health []int
	for _, b := range blocks {
		health = append(health, b.Health)
	}
	want := []int{1, 2, 3, 1, 1}
	if len(health) != len(want) {
		t.Fatalf("health = %v, want %v", health, want)
	}
	for i := range want {
		if health[i] != want[i] {
			t.Errorf("health = %v, want %v", health, want)
			break
		}
	}
	if blocks[1].MaxHealth != 2 {
		t.Errorf("max health = %d, want 2", blocks[1].MaxHealth)
	}
}

func TestBuildGridErrors(t *testing.T) {
	grid := config.GridConfig{Margin: 10, Padding: 5, BlockHeight: 20}
	tests := []struct {
		name  string
		level config.LevelConfig
		width float64
	}{
		{"bad glyph", config.LevelConfig{Name: "x", Pattern: []string{"#x"}}, 600},
		{"empty", config.LevelConfig{Name: "e"}, 600},
		{"too many columns", config.LevelConfig{Name: "w", Rows: 1, Cols: 200}, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGrid(tt.level, grid, tt.width)
			var cerr *config.ConfigurationError
			if !errors.As(err, &cerr) {
				t.Errorf("expected ConfigurationError, got %v", err)
			}
		})
	}
}

func TestDefaultLevelsBuild(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	for i, l := range cfg.Levels {
		blocks, err := BuildGrid(l, cfg.Grid, cfg.Surface.Width)
		if err != nil {
			t.Fatalf("level %d: %v", i, err)
		}
		rows, cols := l.Dimensions()
		if len(blocks) != rows*cols || countVisible(blocks) != rows*cols {
			t.Errorf("level %d: %d blocks, want %d", i, len(blocks), rows*cols)
		}
	}
}
