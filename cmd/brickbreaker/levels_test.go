package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/config"
)

func TestTotalHits(t *testing.T) {
	tests := []struct {
		name       string
		pattern    []string
		rows, cols int
		want       int
	}{
		{"plain grid", nil, 5, 8, 40},
		{"one hit blocks", []string{"#.#", ".#."}, 2, 3, 3},
		{"two hit blocks", []string{"HH", "#."}, 2, 2, 5},
		{"digits", []string{"29", "..."}, 2, 3, 11},
		{"trailing spaces", []string{"#  "}, 1, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := totalHits(tt.pattern, tt.rows, tt.cols); got != tt.want {
				t.Errorf("totalHits() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLevelsCommandListsEveryLevel(t *testing.T) {
	flagConfig, flagDifficulty = "", ""
	var out bytes.Buffer
	levelsCmd.SetOut(&out)
	defer levelsCmd.SetOut(nil)

	if err := runLevels(levelsCmd, nil); err != nil {
		t.Fatalf("runLevels: %v", err)
	}

	cfg, err := loadGameConfig()
	if err != nil {
		t.Fatal(err)
	}
	for _, lvl := range cfg.Levels {
		if lvl.Name != "" && !strings.Contains(out.String(), lvl.Name) {
			t.Errorf("output misses level %q:\n%s", lvl.Name, out.String())
		}
	}
}

func TestLoadGameConfigRejectsUnknownPreset(t *testing.T) {
	flagConfig, flagDifficulty = "", "nightmare"
	defer func() { flagDifficulty = "" }()

	_, err := loadGameConfig()
	var cfgErr *config.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *config.ConfigurationError", err)
	}
	if cfgErr.Field != "difficulty" {
		t.Errorf("field = %q", cfgErr.Field)
	}
}

func TestFormatDuration(t *testing.T) {
	for secs, want := range map[float64]string{0: "0:00", 59.9: "0:59", 75: "1:15", 3600: "60:00"} {
		if got := formatDuration(secs); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", secs, got, want)
		}
	}
}
