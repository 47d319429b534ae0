package breakout

import (
	"io"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brickbreaker/internal/config"
	"github.com/vovakirdan/brickbreaker/internal/core"
)

// lifeEpsilon absorbs float error when progress steps sum to 1.
const lifeEpsilon = 1e-9

// InputEvent is a discrete command from the input collaborator.
type InputEvent int

const (
	MoveLeftStart InputEvent = iota
	MoveLeftStop
	MoveRightStart
	MoveRightStop
	Launch
	Pause
	Restart
)

// String returns the event name.
func (e InputEvent) String() string {
	switch e {
	case MoveLeftStart:
		return "moveLeftStart"
	case MoveLeftStop:
		return "moveLeftStop"
	case MoveRightStart:
		return "moveRightStart"
	case MoveRightStop:
		return "moveRightStop"
	case Launch:
		return "launch"
	case Pause:
		return "pause"
	case Restart:
		return "restart"
	default:
		return "unknown"
	}
}

// Options configure one run.
type Options struct {
	Config     config.BreakoutConfig
	Seed       int64
	StartLevel int // zero-based level index
	PlayerName string
}

// Collaborators are the services a run talks to. Every field is optional.
type Collaborators struct {
	Audio   core.AudioSink
	Scores  core.ScoreSaver
	Logger  *log.Logger
	OnFault func(error) // called once when a fault or configuration error ends the run
}

// Run is one playthrough. It owns every entity and is their only mutator;
// restarting means building a new Run.
type Run struct {
	cfg  config.BreakoutConfig
	opts Options
	deps Collaborators
	log  *log.Logger

	paddle  *Paddle
	balls   []*Ball
	blocks  []*Block
	pickups []*Pickup
	fx      Effects
	sched   Scheduler
	active  Registry
	rng     *rand.Rand

	score        int
	lives        int
	level        int
	lifeProgress float64
	lifeGranted  bool // a life was awarded this frame
	spawned      int  // pickups spawned this level
	speedFactor  float64
	multiplier   float64
	lastRamp     time.Time
	flashUntil   time.Time
	gameOver     bool
	gameWon      bool
	err          error

	clock   core.PauseClock
	started time.Time
	now     time.Time
	ended   time.Time
	frame   uint64

	left, right  bool
	launch       bool
	pauseToggles int
	restart      bool

	sounds    []core.Sound
	saveWon   bool
	saveDue   bool
	saveTaken bool
}

// NewRun validates the configuration and builds a run at the configured
// start level. now is the wall time of the first frame.
func NewRun(opts Options, deps Collaborators, now time.Time) (*Run, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.LevelAt(opts.StartLevel); err != nil {
		return nil, err
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := uint64(opts.Seed) //#nosec G115 -- seed bits are reused as-is
	r := &Run{
		cfg:         cfg,
		opts:        opts,
		deps:        deps,
		log:         logger,
		fx:          newEffects(seed),
		active:      newRegistry(),
		rng:         rand.New(rand.NewPCG(seed, 0x5ca1ab1e)),
		lives:       cfg.Lives.Initial,
		level:       opts.StartLevel,
		speedFactor: 1,
		multiplier:  1,
		lastRamp:    now,
		started:     now,
		now:         now,
	}
	r.paddle = &Paddle{
		X:         (cfg.Surface.Width - cfg.Paddle.Width) / 2,
		Y:         cfg.Surface.Height - cfg.Paddle.BottomOffset,
		Width:     cfg.Paddle.Width,
		Height:    cfg.Paddle.Height,
		BaseWidth: cfg.Paddle.Width,
		Speed:     cfg.Paddle.Speed,
	}
	if err := r.loadLevel(opts.StartLevel); err != nil {
		return nil, err
	}
	return r, nil
}

// loadLevel builds the block grid of a level and resets per-level state:
// falling pickups, the spawn count and the balls. Active power-ups persist.
func (r *Run) loadLevel(index int) error {
	lc, err := r.cfg.LevelAt(index)
	if err != nil {
		return err
	}
	blocks, err := BuildGrid(lc, r.cfg.Grid, r.cfg.Surface.Width)
	if err != nil {
		return err
	}
	r.level = index
	r.blocks = blocks
	r.pickups = nil
	r.spawned = 0
	r.balls = []*Ball{r.newStuckBall()}
	return nil
}

func (r *Run) newStuckBall() *Ball {
	bc := r.cfg.Ball
	angle := bc.LaunchAngle * math.Pi / 180
	b := &Ball{
		Dir:       core.Vec{X: math.Cos(angle), Y: -math.Sin(angle)},
		Radius:    bc.Radius,
		BaseSpeed: bc.Speed,
		Speed:     bc.Speed,
		Stuck:     true,
	}
	b.StickTo(r.paddle, bc.StuckOffset)
	return b
}

// Handle records an input event for the next frame.
// Direction flags are level-triggered; launch is consumed by the next frame;
// pause toggles at the start of the next frame. Restart is only recorded
// when the run is terminal or paused; the owner checks RestartRequested.
func (r *Run) Handle(ev InputEvent) {
	switch ev {
	case MoveLeftStart:
		r.left = true
	case MoveLeftStop:
		r.left = false
	case MoveRightStart:
		r.right = true
	case MoveRightStop:
		r.right = false
	case Launch:
		r.launch = true
	case Pause:
		if !r.Terminal() {
			r.pauseToggles++
		}
	case Restart:
		if r.Terminal() || r.clock.Paused() {
			r.restart = true
		}
	}
}

// RestartRequested reports whether the player asked to replace this run.
func (r *Run) RestartRequested() bool {
	return r.restart
}

// Terminal reports whether the run has ended, won or lost.
func (r *Run) Terminal() bool {
	return r.gameOver || r.gameWon
}

// Paused reports whether the game clock is stopped.
func (r *Run) Paused() bool {
	return r.clock.Paused()
}

// Err returns the fault or configuration error that ended the run, if any.
func (r *Run) Err() error {
	return r.err
}

// Step advances the run by one frame at wall time wall.
//
// Panics inside the frame are recovered into a *SimulationFault and a
// configuration error while advancing levels is returned as is; either way
// the run is moved to game over before Step returns. Audio cues and the
// score save are delivered after every mutation of the frame.
func (r *Run) Step(wall time.Time) (err error) {
	if r.pauseToggles%2 == 1 {
		if r.clock.Paused() {
			r.clock.Resume(wall)
		} else {
			r.clock.Pause(wall)
		}
	}
	r.pauseToggles = 0
	if r.clock.Paused() {
		r.launch = false
		return nil
	}

	now := r.clock.GameTime(wall)
	defer r.flush()
	defer func() {
		if rec := recover(); rec != nil {
			fault := faultFrom(r.frame, rec)
			r.fail(fault)
			err = fault
		}
	}()

	r.frame++
	r.now = now

	if r.Terminal() {
		r.sched.RunDue(now)
		r.fx.Advance()
		return nil
	}
	if err := r.advance(now); err != nil {
		r.fail(err)
		return err
	}
	return nil
}

// advance runs the fixed frame order on a live run.
func (r *Run) advance(now time.Time) error {
	// 1. ramp
	if r.cfg.Ramp.Enabled && now.Sub(r.lastRamp) >= r.cfg.Ramp.Interval {
		r.multiplier *= r.cfg.Ramp.Factor
		r.lastRamp = now
	}
	k := r.multiplier
	r.lifeGranted = false

	// 1b. deferred tasks, 2. transient effects
	r.sched.RunDue(now)
	r.fx.Advance()

	// 3. paddle
	W, H := r.cfg.Surface.Width, r.cfg.Surface.Height
	if r.left {
		r.paddle.Move(-r.paddle.Speed*k, W)
	}
	if r.right {
		r.paddle.Move(r.paddle.Speed*k, W)
	}
	if r.launch {
		for _, b := range r.balls {
			b.Stuck = false
		}
		r.launch = false
	}

	// 4. balls, removal deferred until every ball has moved
	lost := make([]bool, len(r.balls))
	for i, b := range r.balls {
		if b.Stuck {
			b.StickTo(r.paddle, r.cfg.Ball.StuckOffset)
			continue
		}
		b.Advance(r.speedFactor * k)
		if ReflectWalls(b, W) {
			r.emit(core.SoundBallWallHit)
		}
		lost[i] = FellOut(b, H)
	}
	kept := make([]*Ball, 0, len(r.balls))
	for i, b := range r.balls {
		if !lost[i] {
			kept = append(kept, b)
		}
	}
	r.balls = kept

	// 5. ball loss
	if len(r.balls) == 0 {
		if r.loseLife(now) {
			return nil
		}
	}

	// 6. paddle collision
	for _, b := range r.balls {
		if PaddleBounce(b, r.paddle, r.cfg.Ball.SpeedStep, r.cfg.Ball.MaxSpeed) {
			r.emit(core.SoundBallPaddleHit)
		}
	}

	// 7. falling power-ups
	for _, pk := range r.pickups {
		pk.Fall(r.cfg.PowerUps.FallSpeed * k)
		switch {
		case PickupMissed(pk, H):
			pk.Active = false
		case PickupCaught(pk, r.paddle):
			pk.Active = false
			r.activate(pk.Kind, now)
		}
	}
	r.pickups = slices.DeleteFunc(r.pickups, func(pk *Pickup) bool { return !pk.Active })

	// 8. blocks
	for _, blk := range r.blocks {
		for _, b := range r.balls {
			if b.Stuck || !BlockHit(b, blk) {
				continue
			}
			r.fx.Spawn(EffectHit, b.Pos)
			if blk.Hit() {
				r.blockDestroyed(blk)
			}
			ReflectOffBlock(b)
		}
	}

	// 9. level completion
	if countVisible(r.blocks) == 0 {
		return r.completeLevel(now)
	}
	return nil
}

// loseLife handles an empty ball set and reports whether the run ended.
func (r *Run) loseLife(now time.Time) bool {
	r.lives--
	r.flashUntil = now.Add(r.cfg.Effects.FlashDuration)
	r.emit(core.SoundBallLost)
	if r.lives <= 0 {
		r.lives = 0
		r.endLost(now)
		return true
	}
	r.balls = []*Ball{r.newStuckBall()}
	return false
}

// blockDestroyed awards score and life progress and rolls for a pickup.
func (r *Run) blockDestroyed(blk *Block) {
	r.score += r.cfg.Scoring.BlockPoints
	r.emit(core.SoundBlockBreak)

	r.lifeProgress += r.cfg.Lives.ProgressPerBlock
	if r.lives < r.cfg.Lives.Max {
		if r.lifeProgress >= 1-lifeEpsilon {
			r.lives++
			r.lifeProgress = 0
			r.lifeGranted = true
		}
	} else {
		r.lifeProgress = math.Min(r.lifeProgress, 1)
	}

	r.maybeSpawn(blk.Box().Center())
}

// completeLevel advances to the next level or wins on the last one.
func (r *Run) completeLevel(now time.Time) error {
	r.emit(core.SoundLevelComplete)
	next := r.level + 1
	if next >= len(r.cfg.Levels) {
		r.endWon(now)
		return nil
	}
	if err := r.loadLevel(next); err != nil {
		return err
	}
	r.multiplier *= r.cfg.Ramp.LevelUpFactor
	// at most one life per level-up, counting one earned by the last block
	if r.lives < r.cfg.Lives.Max && !r.lifeGranted {
		r.lives++
	}
	r.lifeProgress = 0
	r.log.Debug("level advanced", "level", next+1, "multiplier", r.multiplier, "frame", r.frame)
	return nil
}

func (r *Run) endLost(now time.Time) {
	r.gameOver = true
	r.gameWon = false
	r.ended = now
	r.sched.Clear()
	clear(r.active.entries)
	r.emit(core.SoundGameOver)
	r.requestSave(false)
	r.log.Info("game over", "player", r.opts.PlayerName, "score", r.score, "level", r.level+1)
}

func (r *Run) endWon(now time.Time) {
	r.gameWon = true
	r.ended = now
	r.sched.Clear()
	clear(r.active.entries)
	r.requestSave(true)
	W, H := r.cfg.Surface.Width, r.cfg.Surface.Height
	for i := range r.cfg.Effects.Fireworks {
		r.sched.After(now.Add(time.Duration(i)*r.cfg.Effects.FireworkInterval), func() {
			r.fx.SpawnFirework(W, H)
		})
	}
	r.log.Info("game won", "player", r.opts.PlayerName, "score", r.score)
}

// fail forces game over after a fault or configuration error.
func (r *Run) fail(err error) {
	r.err = err
	r.log.Error("run aborted", "frame", r.frame, "err", err)
	if !r.gameOver {
		r.endLost(r.now)
	}
	if r.deps.OnFault != nil {
		r.deps.OnFault(err)
	}
}

func (r *Run) emit(s core.Sound) {
	r.sounds = append(r.sounds, s)
}

func (r *Run) requestSave(won bool) {
	if r.saveTaken {
		return
	}
	r.saveDue, r.saveWon, r.saveTaken = true, won, true
}

// flush delivers the frame's buffered audio cues and score save.
func (r *Run) flush() {
	if r.deps.Audio != nil {
		for _, s := range r.sounds {
			r.deps.Audio.Play(s)
		}
	}
	r.sounds = r.sounds[:0]

	if !r.saveDue {
		return
	}
	r.saveDue = false
	if r.deps.Scores == nil {
		return
	}
	if _, err := r.deps.Scores.SaveScore(r.opts.PlayerName, r.score, r.Elapsed().Seconds(), r.level+1, r.saveWon); err != nil {
		r.log.Error("save score", "err", err)
	}
}

// Elapsed returns game time since the run started, frozen once it ends.
func (r *Run) Elapsed() time.Duration {
	if r.Terminal() {
		return r.ended.Sub(r.started)
	}
	return r.now.Sub(r.started)
}

// Score returns the current score.
func (r *Run) Score() int { return r.score }

// Lives returns the remaining lives.
func (r *Run) Lives() int { return r.lives }

// Level returns the 1-based level number.
func (r *Run) Level() int { return r.level + 1 }

// Multiplier returns the global speed multiplier.
func (r *Run) Multiplier() float64 { return r.multiplier }

// State summarises the run for the platform.
func (r *Run) State() core.GameState {
	return core.GameState{
		Score:    r.score,
		Lives:    r.lives,
		Level:    r.level + 1,
		GameOver: r.Terminal(),
		GameWon:  r.gameWon,
		Paused:   r.clock.Paused(),
	}
}
