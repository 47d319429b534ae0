package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode directly",
	Long: `Start a run without the menu. The mode defaults to "breakout".

Controls (single player):
  A/D or Left/Right  - Move paddle
  Space/W/Up         - Launch ball
  P                  - Pause
  R                  - Restart (paused or after the run ends)
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Controls (breakout_versus):
  Player 1: A/D move, S/W launch
  Player 2: Left/Right move, Up/Space launch

Difficulty options:
  easy   - More lives, wider paddle, slower ball
  normal - The configured values
  hard   - Fewer lives, narrower paddle, faster ball
  fixed  - No periodic speed ramp

Examples:
  brickbreaker play
  brickbreaker play --level 4 --difficulty hard
  brickbreaker play breakout_versus
  brickbreaker play --seed 42 --mute
  brickbreaker play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start on (1-based)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume 0..1")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Stream the run to websocket spectators on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	mode := "breakout"
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'brickbreaker list' to see available modes)", mode)
	}
	if flagLevel < 1 {
		return fmt.Errorf("--level must be 1 or more, got %d", flagLevel)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if flagLevel > len(a.game.Levels) {
		return fmt.Errorf("--level %d: only %d levels are configured", flagLevel, len(a.game.Levels))
	}

	env := a.env()
	env.StartLevel = flagLevel - 1

	game, err := registry.Create(mode, env)
	if err != nil {
		return err
	}

	if err := tui.Run(game, a.runtime, a.hooks()); err != nil {
		return fmt.Errorf("running %s: %w", mode, err)
	}
	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	deps := tui.SessionDeps{
		Env:   a.env(),
		Store: a.store,
		Hooks: a.hooks(),
	}
	return tui.RunSession(deps, a.runtime, a.player)
}
