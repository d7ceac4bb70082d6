// Package entity holds the pooled game objects (asteroids, explosions,
// projectiles) and the player ship. Entities never reference each other or
// another pool: lifecycle transitions are published on the event bus.
package entity

import (
	"math/rand"

	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/data"
)

// Env is the shared context handed to every entity at construction. It is
// owned by the game that builds the pools.
type Env struct {
	Width     float64
	Height    float64
	Templates *data.Templates
	Rand      *rand.Rand
	Bus       *event.Bus
}

// between returns a uniform value in [lo, hi).
func (e *Env) between(lo, hi float64) float64 {
	return lo + e.Rand.Float64()*(hi-lo)
}
