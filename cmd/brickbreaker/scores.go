package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/brickbreaker/internal/platform/tui"
	"github.com/vovakirdan/brickbreaker/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the score table",
	Long: fmt.Sprintf(`Display the top %d runs.

Examples:
  brickbreaker scores
  brickbreaker scores -i        # interactive table
  brickbreaker scores --clear   # wipe the table`, storage.TableSize),
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the table interactively")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded score")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Score table cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.LoadScores()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "High Scores - Brick Breaker")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'brickbreaker play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-5s  %-7s  %-6s  %s\n", "Rank", "Name", "Score", "Level", "Time", "Result", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-5s  %-7s  %-6s  %s\n", "----", "----", "-----", "-----", "----", "------", "----")
	for i, e := range scores {
		result := "lost"
		if e.Won {
			result = "won"
		}
		fmt.Fprintf(out, "  %-4d  %-12s  %-8d  %-5d  %-7s  %-6s  %s\n",
			i+1, e.Name, e.Score, e.Level, formatDuration(e.Elapsed().Seconds()), result,
			e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d  Average: %.0f  Wins: %d/%d  Furthest level: %d\n",
		stats.HighScore, stats.AvgScore, stats.Wins, stats.Entries, stats.BestLevel)
	return nil
}

// formatDuration renders seconds as m:ss.
func formatDuration(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
