package breakout

import (
	"fmt"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// RowColors is the colour cycle of block rows, top to bottom.
var RowColors = []core.Color{
	core.ColorRed,
	core.ColorOrange,
	core.ColorYellow,
	core.ColorGreen,
	core.ColorBlue,
}

// BuildGrid lays out the blocks of a level across a surface surfaceW wide.
// Blocks share the width left after the side margins and the padding
// between columns. Without a pattern every cell holds a one-hit block.
//
// Pattern characters:
//
//	'.' or ' ' = empty
//	'#' or '1' = one hit
//	'H' = two hits
//	'2'-'9' = that many hits
func BuildGrid(level config.LevelConfig, grid config.GridConfig, surfaceW float64) ([]*Block, error) {
	rows, cols := level.Dimensions()
	if rows <= 0 || cols <= 0 {
		return nil, &config.ConfigurationError{
			Field:  fmt.Sprintf("level %q", level.Name),
			Reason: "empty grid",
		}
	}

	blockW := (surfaceW - 2*grid.Margin - float64(cols-1)*grid.Padding) / float64(cols)
	if blockW <= 0 {
		return nil, &config.ConfigurationError{
			Field:  fmt.Sprintf("level %q", level.Name),
			Reason: fmt.Sprintf("%d columns do not fit a surface %g wide", cols, surfaceW),
		}
	}

	blocks := make([]*Block, 0, rows*cols)
	for row := range rows {
		y := grid.Top + float64(row)*(grid.BlockHeight+grid.Padding)
		color := RowColors[row%len(RowColors)]
		for col := range cols {
			health, err := cellHealth(level, row, col)
			if err != nil {
				return nil, err
			}
			if health == 0 {
				continue
			}
			x := grid.Margin + float64(col)*(blockW+grid.Padding)
			blocks = append(blocks, NewBlock(x, y, blockW, grid.BlockHeight, color, health))
		}
	}
	return blocks, nil
}

// cellHealth returns the hits needed by one grid cell, 0 for empty.
func cellHealth(level config.LevelConfig, row, col int) (int, error) {
	if len(level.Pattern) == 0 {
		return 1, nil
	}
	line := level.Pattern[row]
	if col >= len(line) {
		return 0, nil
	}
	switch ch := line[col]; {
	case ch == '.' || ch == ' ':
		return 0, nil
	case ch == '#' || ch == '1':
		return 1, nil
	case ch == 'H' || ch == 'h':
		return 2, nil
	case ch >= '2' && ch <= '9':
		return int(ch - '0'), nil
	default:
		return 0, &config.ConfigurationError{
			Field:  fmt.Sprintf("level %q pattern row %d", level.Name, row),
			Reason: fmt.Sprintf("unknown block %q at column %d", ch, col),
		}
	}
}

// countVisible returns the blocks still in play.
func countVisible(blocks []*Block) int {
	n := 0
	for _, b := range blocks {
		if b.Visible() {
			n++
		}
	}
	return n
}
