package core

// Sound names a fire-and-forget audio cue emitted by the simulation.
type Sound string

const (
	SoundBallWallHit      Sound = "ballWallHit"
	SoundBallPaddleHit    Sound = "ballPaddleHit"
	SoundBlockBreak       Sound = "blockBreak"
	SoundBallLost         Sound = "ballLost"
	SoundGameOver         Sound = "gameOver"
	SoundLevelComplete    Sound = "levelComplete"
	SoundPowerUpCollected Sound = "powerUpCollected"
)

// Sounds lists every cue, in a stable order.
var Sounds = []Sound{
	SoundBallWallHit,
	SoundBallPaddleHit,
	SoundBlockBreak,
	SoundBallLost,
	SoundGameOver,
	SoundLevelComplete,
	SoundPowerUpCollected,
}

// AudioSink receives sound cues. Play must not block the caller.
type AudioSink interface {
	Play(Sound)
}

// ScoreSaver persists a finished run.
type ScoreSaver interface {
	SaveScore(name string, score int, elapsedSeconds float64, level int, won bool) (int64, error)
}

// NopAudio discards every cue.
type NopAudio struct{}

// Play does nothing.
func (NopAudio) Play(Sound) {}
