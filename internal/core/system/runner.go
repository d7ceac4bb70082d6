package system

import (
	"fmt"
	"time"
)

// Runner executes systems bucketed by phase each frame. Systems sharing a
// phase run in registration order.
type Runner struct {
	phases [phaseCount][]System
	n      int
}

func NewRunner() *Runner {
	return &Runner{}
}

// Register adds s to its phase. Registering a system with an unknown phase is
// a programming error and panics.
func (r *Runner) Register(s System) {
	p := s.Phase()
	if p < 0 || int(p) >= phaseCount {
		panic(fmt.Sprintf("system: register %T with unknown phase %d", s, p))
	}
	r.phases[p] = append(r.phases[p], s)
	r.n++
}

// Tick runs one frame: every phase in order.
func (r *Runner) Tick(dt time.Duration) {
	for _, systems := range r.phases {
		for _, s := range systems {
			s.Update(dt)
		}
	}
}

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	if phase < 0 || int(phase) >= phaseCount {
		return
	}
	for _, s := range r.phases[phase] {
		s.Update(dt)
	}
}

// Len returns the number of registered systems.
func (r *Runner) Len() int { return r.n }
