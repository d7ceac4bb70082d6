package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseInput      Phase = iota // 0: agent / queued player commands
	PhasePreUpdate               // 1: deliver last frame's events
	PhaseUpdate                  // 2: spawning + entity integration
	PhasePostUpdate              // 3: collision resolution
	PhaseOutput                  // 4: publish stats

	phaseCount = int(PhaseOutput) + 1
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	}
	return "unknown"
}

// System is one step of the frame. Phase must not change after Register.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
