package event

// Cause records why an asteroid left play.
type Cause int

const (
	CauseEscaped Cause = iota // crossed the right boundary
	CauseClicked              // hit by the pointer
	CauseShot                 // hit by a projectile
)

func (c Cause) String() string {
	switch c {
	case CauseEscaped:
		return "escaped"
	case CauseClicked:
		return "clicked"
	case CauseShot:
		return "shot"
	}
	return "unknown"
}

// AsteroidDestroyed is emitted when an asteroid returns to its pool. The
// position and speed parametrize the explosion spawned in its place.
type AsteroidDestroyed struct {
	Slot  uint32
	X, Y  float64
	Speed float64
	Cause Cause
}

// ExplosionFinished is emitted when an explosion plays its last frame.
type ExplosionFinished struct {
	Slot uint32
	X, Y float64
}

// ProjectileFired is emitted when the ship launches a projectile.
type ProjectileFired struct {
	Slot uint32
	X, Y float64
}

// ScoreChanged is emitted after every score update.
type ScoreChanged struct {
	Score int
	Max   int
	Won   bool
}
