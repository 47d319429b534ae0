package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Dim returns the colour one step darker: bright colours drop to their
// base colour, base colours fade to gray.
func (c Color) Dim() Color {
	switch {
	case c >= ColorBrightRed && c <= ColorBrightCyan:
		return c - (ColorBrightRed - ColorRed)
	case c == ColorBrightWhite:
		return ColorWhite
	case c == ColorDefault || c == ColorGray:
		return c
	default:
		return ColorGray
	}
}
