package breakout

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

// Visual characters for rendering
const (
	PaddleChar   = '▀'
	BallChar     = '●'
	ParticleChar = '·'
)

// blockGlyph picks a shade by remaining hits.
func blockGlyph(health int) rune {
	switch {
	case health >= 3:
		return '▓'
	case health == 2:
		return '▒'
	default:
		return '█'
	}
}

// Minimum cells needed to draw a run.
const (
	MinRenderW = 24
	MinRenderH = 12
)

// RenderSnapshot draws a run into area of dst: a HUD line, then the
// playing field inside a border, scaled from surface pixels to cells.
func RenderSnapshot(dst *core.Screen, area core.Rect, s Snapshot) {
	if area.W < MinRenderW || area.H < MinRenderH {
		dst.DrawTextCenteredIn(area, area.Y+area.H/2-1, "Window too small", core.ColorYellow)
		dst.DrawTextCenteredIn(area, area.Y+area.H/2+1, fmt.Sprintf("Need %dx%d", MinRenderW, MinRenderH), core.ColorGray)
		return
	}

	renderHUD(dst, area, s)

	frame := core.NewRect(area.X, area.Y+1, area.W, area.H-1)
	border := core.ColorGray
	if s.Flash {
		border = core.ColorBrightRed
	}
	dst.DrawBox(frame, border)

	field := frame.Inset(1)
	sx := float64(field.W) / s.Width
	sy := float64(field.H) / s.Height
	cell := func(x, y float64) (int, int) {
		return field.X + int(math.Floor(x*sx)), field.Y + int(math.Floor(y*sy))
	}
	put := func(cx, cy int, r rune, c core.Color) {
		if field.Contains(cx, cy) {
			dst.SetColor(cx, cy, r, c)
		}
	}

	for _, b := range s.Blocks {
		if !b.Visible {
			continue
		}
		x0, y0 := cell(b.X, b.Y)
		x1, _ := cell(b.X+b.W, b.Y)
		// leave a one-cell gap between neighbours when there is room
		if x1-x0 > 1 {
			x1--
		}
		for x := x0; x < max(x1, x0+1); x++ {
			put(x, y0, blockGlyph(b.Health), b.Color)
		}
	}

	for _, p := range s.Particles {
		cx, cy := cell(p.X, p.Y)
		switch {
		case p.Alpha > 0.5:
			put(cx, cy, ParticleChar, p.Color)
		case p.Alpha > 0.2:
			put(cx, cy, ParticleChar, p.Color.Dim())
		}
	}

	for _, p := range s.Pickups {
		cx, cy := cell(p.X, p.Y)
		put(cx, cy, p.Kind.Glyph(), p.Kind.Color())
	}

	px0, py := cell(s.Paddle.X, s.Paddle.Y)
	px1, _ := cell(s.Paddle.X+s.Paddle.W, s.Paddle.Y)
	for x := px0; x < max(px1, px0+1); x++ {
		put(x, py, PaddleChar, core.ColorBrightWhite)
	}

	stuck := false
	for _, b := range s.Balls {
		cx, cy := cell(b.X, b.Y)
		if cy >= py { // keep a stuck or low ball visible above the paddle row
			cy = py - 1
		}
		put(cx, cy, BallChar, core.ColorBrightWhite)
		stuck = stuck || b.Stuck
	}

	renderOverlay(dst, field, s, stuck)
}

func renderHUD(dst *core.Screen, area core.Rect, s Snapshot) {
	left := fmt.Sprintf("Score %d", s.Score)
	dst.DrawTextColor(area.X+1, area.Y, left, core.ColorBrightWhite)

	hearts := strings.Repeat("♥", s.Lives) + strings.Repeat("♡", max(s.MaxLives-s.Lives, 0))
	x := area.X + 2 + len(left)
	dst.DrawTextColor(x, area.Y, hearts, core.ColorBrightRed)
	x += s.MaxLives + 1

	for _, p := range s.PowerUps {
		tag := fmt.Sprintf("%c%d", p.Kind.Glyph(), (p.RemainingMS+999)/1000)
		dst.DrawTextColor(x, area.Y, tag, p.Kind.Color())
		x += len([]rune(tag)) + 1
	}

	right := fmt.Sprintf("L%d/%d x%.2f", s.Level, s.LevelCount, s.Multiplier)
	dst.DrawTextColor(area.Right()-len(right)-1, area.Y, right, core.ColorCyan)
}

func renderOverlay(dst *core.Screen, field core.Rect, s Snapshot, stuck bool) {
	switch {
	case s.GameWon:
		drawCenteredBox(dst, field, "YOU WIN!", fmt.Sprintf("Score %d  |  R restart", s.Score), core.ColorBrightGreen)
	case s.GameOver:
		drawCenteredBox(dst, field, "GAME OVER", fmt.Sprintf("Score %d  |  R restart", s.Score), core.ColorBrightRed)
	case s.Paused:
		drawCenteredBox(dst, field, "PAUSED", "P resume  |  R restart", core.ColorYellow)
	case stuck:
		dst.DrawTextCenteredIn(field, field.Bottom()-1, "SPACE to launch", core.ColorGray)
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, area core.Rect, title, subtitle string, c core.Color) {
	boxW := min(max(len(title), len([]rune(subtitle)))+4, area.W)
	boxH := 5
	box := core.NewRect(area.X+(area.W-boxW)/2, area.Y+(area.H-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCenteredIn(box, box.Y+1, title, c)
	dst.DrawTextCenteredIn(box, box.Y+3, subtitle, core.ColorWhite)
}
