package breakout

import (
	"strings"
	"testing"

	"github.com/vovakirdan/brickbreaker/internal/core"
)

func TestRenderSnapshot(t *testing.T) {
	r, _, _ := newTestRun(t, testConfig())
	screen := core.NewScreen(60, 30)

	RenderSnapshot(screen, screen.Bounds(), r.Snapshot())
	out := screen.String()

	for _, want := range []string{string(PaddleChar), string(BallChar), "Score 0", "L1/5", "SPACE to launch"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, string(blockGlyph(1))) {
		t.Error("render missing blocks")
	}
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Snapshot)
		want  string
	}{
		{"paused", func(s *Snapshot) { s.Paused = true }, "PAUSED"},
		{"game over", func(s *Snapshot) { s.GameOver = true }, "GAME OVER"},
		{"won", func(s *Snapshot) { s.GameOver, s.GameWon = true, true }, "YOU WIN!"},
	}

	r, _, _ := newTestRun(t, testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := r.Snapshot()
			tt.setup(&s)
			screen := core.NewScreen(60, 30)
			RenderSnapshot(screen, screen.Bounds(), s)
			if !strings.Contains(screen.String(), tt.want) {
				t.Errorf("expected %q overlay", tt.want)
			}
		})
	}
}

func TestRenderTooSmall(t *testing.T) {
	r, _, _ := newTestRun(t, testConfig())
	screen := core.NewScreen(20, 8)
	RenderSnapshot(screen, screen.Bounds(), r.Snapshot())
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too-small message")
	}
}

func TestRenderFlashBorder(t *testing.T) {
	r, _, _ := newTestRun(t, testConfig())
	s := r.Snapshot()
	s.Flash = true
	screen := core.NewScreen(60, 30)
	RenderSnapshot(screen, screen.Bounds(), s)
	if c := screen.GetCell(0, 1); c.Color != core.ColorBrightRed {
		t.Errorf("border colour = %v, want bright red", c.Color)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r, _, _ := newTestRun(t, testConfig())
	s := r.Snapshot()
	s.Blocks[0].Visible = false
	s.Balls[0].X = -1

	if !r.blocks[0].Visible() || r.balls[0].Pos.X == -1 {
		t.Error("changing a snapshot changed the run")
	}
	if got := r.Snapshot().VisibleBlocks(); got != 40 {
		t.Errorf("visible blocks = %d, want 40", got)
	}
}

func TestSnapshotPowerUps(t *testing.T) {
	r, _, _ := newTestRun(t, testConfig())
	r.activate(PowerUpSlowDown, t0)
	r.activate(PowerUpExpandPaddle, t0)

	s := r.Snapshot()
	if len(s.PowerUps) != 2 {
		t.Fatalf("expected 2 active power-ups, got %d", len(s.PowerUps))
	}
	if s.PowerUps[0].Kind != PowerUpExpandPaddle || s.PowerUps[0].RemainingMS != 10000 {
		t.Errorf("first power-up = %+v", s.PowerUps[0])
	}
	if s.PowerUps[1].Name != "slowDown" {
		t.Errorf("second power-up = %+v", s.PowerUps[1])
	}
	if !near(s.Balls[0].Speed, 3*0.7) {
		t.Errorf("effective ball speed = %v", s.Balls[0].Speed)
	}
}
