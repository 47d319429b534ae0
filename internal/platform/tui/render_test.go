package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestScreenRendererKeepsEveryCell(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorRed)
	s.DrawTextColor(2, 0, "c", core.ColorBlue)
	s.DrawTextColor(1, 1, "o", core.ColorBrightWhite)

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	got := NewScreenRenderer(r).Render(s)

	if got != s.String() {
		t.Errorf("Render() = %q, want %q", got, s.String())
	}
}

func TestScreenRendererColors(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.DrawTextColor(0, 0, "x", core.ColorOrange)

	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)
	got := NewScreenRenderer(r).Render(s)

	if got == s.String() {
		t.Error("a coloured cell should be styled")
	}
}
