// Package agent drives the ship on the player's behalf. An Agent decides how
// often to think; a Brain decides what to do.
package agent

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Difficulty sets how often the agent re-evaluates the field.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

var difficultyNames = [...]string{"easy", "medium", "hard"}

func (d Difficulty) String() string {
	if d < Easy || d > Hard {
		return "unknown"
	}
	return difficultyNames[d]
}

// Interval is the time between two decisions.
func (d Difficulty) Interval() time.Duration {
	switch d {
	case Easy:
		return 100 * time.Millisecond
	case Hard:
		return 25 * time.Millisecond
	default:
		return 50 * time.Millisecond
	}
}

// Next returns the following difficulty, wrapping from hard to easy.
func (d Difficulty) Next() Difficulty {
	return (d + 1) % (Hard + 1)
}

func ParseDifficulty(s string) (Difficulty, error) {
	for i, name := range difficultyNames {
		if name == s {
			return Difficulty(i), nil
		}
	}
	return Medium, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Target is an asteroid as the agent sees it.
type Target struct {
	X, Y   float64
	Radius float64
	Speed  float64
}

// State is the read-only view a Brain decides on. ShipX is the ship's left
// edge.
type State struct {
	FieldWidth      float64
	FieldHeight     float64
	ShipX           float64
	ShipY           float64
	ShipWidth       float64
	ProjectileSpeed float64
	CanFire         bool
	Targets         []Target
}

// ShipCenter returns the horizontal centre of the ship.
func (s State) ShipCenter() float64 { return s.ShipX + s.ShipWidth*0.5 }

// Decision is one agent command: Move is -1, 0 or 1.
type Decision struct {
	Move  int
	Shoot bool
}

// Brain picks a decision for a state.
type Brain interface {
	Decide(State) Decision
}

// BrainFunc adapts a function to Brain.
type BrainFunc func(State) Decision

func (f BrainFunc) Decide(s State) Decision { return f(s) }

// Agent gates a Brain behind its difficulty's decision interval.
type Agent struct {
	brain      Brain
	difficulty Difficulty
	elapsed    time.Duration
	active     bool
	decisions  uint64
}

func New(brain Brain, difficulty Difficulty) *Agent {
	return &Agent{brain: brain, difficulty: difficulty}
}

func (a *Agent) Active() bool           { return a.active }
func (a *Agent) Difficulty() Difficulty { return a.difficulty }
func (a *Agent) Decisions() uint64      { return a.decisions }

func (a *Agent) Activate() {
	a.active = true
	a.elapsed = 0
}

func (a *Agent) Deactivate() {
	a.active = false
}

// Toggle flips the agent on or off and returns the new state.
func (a *Agent) Toggle() bool {
	if a.active {
		a.Deactivate()
	} else {
		a.Activate()
	}
	return a.active
}

func (a *Agent) SetDifficulty(d Difficulty) {
	a.difficulty = d
}

// Cycle advances to the next difficulty and returns it.
func (a *Agent) Cycle() Difficulty {
	a.difficulty = a.difficulty.Next()
	return a.difficulty
}

// Tick accumulates dt and, once the decision interval has passed, asks the
// brain for a decision. state is only evaluated when a decision is due.
func (a *Agent) Tick(dt time.Duration, state func() State) (Decision, bool) {
	if !a.active {
		return Decision{}, false
	}
	a.elapsed += dt
	if a.elapsed < a.difficulty.Interval() {
		return Decision{}, false
	}
	a.elapsed = 0
	a.decisions++
	return a.brain.Decide(state()), true
}
