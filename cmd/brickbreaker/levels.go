package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var flagShowPatterns bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the configured levels",
	Long: `Print the levels of the active configuration (after --config and
--difficulty are applied) with their grid sizes and block counts.

Examples:
  brickbreaker levels
  brickbreaker levels --patterns
  brickbreaker levels --config ./my-levels.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVar(&flagShowPatterns, "patterns", false, "Also print each level's block pattern")
}

func runLevels(cmd *cobra.Command, _ []string) error {
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d levels, %d lives (max %d), ball speed %.2f\n\n",
		len(cfg.Levels), cfg.Lives.Initial, cfg.Lives.Max, cfg.Ball.Speed)
	fmt.Fprintf(out, "  %-3s  %-20s  %-7s  %s\n", "#", "Name", "Grid", "Hits")
	fmt.Fprintf(out, "  %-3s  %-20s  %-7s  %s\n", "-", "----", "----", "----")

	for i, lvl := range cfg.Levels {
		rows, cols := lvl.Dimensions()
		name := lvl.Name
		if name == "" {
			name = fmt.Sprintf("Level %d", i+1)
		}
		fmt.Fprintf(out, "  %-3d  %-20s  %-7s  %d\n", i+1, name, fmt.Sprintf("%dx%d", rows, cols), totalHits(lvl.Pattern, rows, cols))

		if flagShowPatterns && len(lvl.Pattern) > 0 {
			for _, line := range lvl.Pattern {
				fmt.Fprintf(out, "       %s\n", line)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}

// totalHits counts the hits needed to clear a level.
func totalHits(pattern []string, rows, cols int) int {
	if len(pattern) == 0 {
		return rows * cols
	}
	hits := 0
	for _, line := range pattern {
		for _, ch := range strings.TrimRight(line, " ") {
			switch {
			case ch == '#':
				hits++
			case ch == 'H':
				hits += 2
			case ch >= '2' && ch <= '9':
				hits += int(ch - '0')
			}
		}
	}
	return hits
}
