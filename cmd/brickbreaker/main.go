// brickbreaker is a terminal brick breaker with power-ups, a versus mode,
// a local score table, SSH play and a websocket spectator stream.
//
// Usage:
//
//	brickbreaker                  - Menu: pick a mode, a level, see scores
//	brickbreaker play [mode]      - Play a mode directly (default: breakout)
//	brickbreaker list             - List available modes
//	brickbreaker levels           - Show the configured levels
//	brickbreaker scores           - Print the score table
//	brickbreaker serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.brickbreaker/scores.db)
//	--config <path>      - Use a custom breakout.yaml
//	--difficulty <name>  - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/brickbreaker/internal/games/breakout"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagName       string
	flagLevel      int
	flagMute       bool
	flagVolume     float64
	flagSpectate   string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brickbreaker",
	Short: "Brick Breaker - break bricks in your terminal",
	Long: `Brick Breaker is a terminal brick breaker with power-ups, five levels,
a two-player versus mode and a persistent score table.

Running it without a command opens the menu.

Examples:
  brickbreaker
  brickbreaker play --level 3
  brickbreaker play breakout_versus
  brickbreaker play --spectate :8080
  brickbreaker serve --ssh :2222
  brickbreaker scores`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.brickbreaker/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom breakout.yaml")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagName, "name", "", "Player name for the score table (default: $USER)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (default: ~/.brickbreaker/brickbreaker.log while playing)")

	rootCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	rootCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume 0..1")
	rootCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Stream games to websocket spectators on this address (e.g. :8080)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
