package entity

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/geom"
	"github.com/l1jgo/arcade/internal/render"
)

// DebrisSpeedFactor scales an asteroid's speed into the drift of the
// explosion that replaces it when it is hit.
const DebrisSpeedFactor = 0.4

// Asteroid drifts left to right across the field, spinning. It explodes when
// it reaches the right boundary.
type Asteroid struct {
	env  *Env
	slot uint32
	free bool

	X, Y   float64
	Radius float64
	Speed  float64 // units per second along +x
	Angle  float64
	Spin   float64 // radians per second
}

func NewAsteroid(env *Env, slot int) *Asteroid {
	return &Asteroid{
		env:    env,
		slot:   uint32(slot),
		free:   true,
		Radius: env.Templates.Asteroid.Radius,
		X:      -env.Templates.Asteroid.Radius,
	}
}

func (a *Asteroid) Free() bool        { return a.free }
func (a *Asteroid) SetFree(free bool) { a.free = free }

// Start places the asteroid just off the left edge at a random height with a
// random speed and spin.
func (a *Asteroid) Start() {
	tpl := a.env.Templates.Asteroid
	a.Radius = tpl.Radius
	a.X = -a.Radius
	a.Y = a.env.between(0, a.env.Height)
	a.Speed = a.env.between(tpl.SpeedMin, tpl.SpeedMax)
	a.Spin = a.env.between(-tpl.Spin, tpl.Spin)
	a.Angle = 0
}

// Boundary is the x coordinate past which the asteroid leaves play.
func (a *Asteroid) Boundary() float64 {
	return a.env.Width - a.Radius
}

func (a *Asteroid) Update(dt time.Duration) {
	s := dt.Seconds()
	a.Angle += a.Spin * s
	a.X += a.Speed * s
	if a.X > a.Boundary() {
		a.Destroy(event.CauseEscaped)
	}
}

// Destroy releases the asteroid and publishes where it went. Escaped
// asteroids leave a stationary explosion; hit ones leave drifting debris.
func (a *Asteroid) Destroy(cause event.Cause) {
	if a.free {
		return
	}
	a.free = true
	speed := 0.0
	if cause != event.CauseEscaped {
		speed = a.Speed * DebrisSpeedFactor
	}
	event.Emit(a.env.Bus, event.AsteroidDestroyed{
		Slot:  a.slot,
		X:     a.X,
		Y:     a.Y,
		Speed: speed,
		Cause: cause,
	})
}

func (a *Asteroid) Body() geom.Circle {
	return geom.Circle{X: a.X, Y: a.Y, Radius: a.Radius}
}

func (a *Asteroid) Bounds() geom.Rect {
	return a.Body().Bounds()
}

func (a *Asteroid) Draw(s render.Surface) {
	tpl := a.env.Templates.Asteroid
	s.Sprite(render.KindAsteroid, render.Frame{}, a.X, a.Y, tpl.SpriteWidth, tpl.SpriteHeight, a.Angle)
}
