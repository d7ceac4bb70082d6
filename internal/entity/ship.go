package entity

import (
	"time"

	"github.com/l1jgo/arcade/internal/geom"
	"github.com/l1jgo/arcade/internal/render"
)

// Ship is the player's launcher, pinned to the bottom edge. It is not pooled.
type Ship struct {
	env *Env

	X, Y          float64
	Width, Height float64
	Speed         float64
	dir           int
	cooldown      time.Duration
}

func NewShip(env *Env) *Ship {
	s := &Ship{env: env}
	s.Reset()
	return s
}

// Reset centres the ship on the bottom edge and clears movement and cooldown.
func (s *Ship) Reset() {
	tpl := s.env.Templates.Ship
	s.Width = tpl.Width
	s.Height = tpl.Height
	s.Speed = tpl.Speed
	s.X = s.env.Width*0.5 - s.Width*0.5
	s.Y = s.env.Height - s.Height
	s.dir = 0
	s.cooldown = 0
}

// SetDirection sets horizontal movement: -1 left, 0 stop, 1 right.
func (s *Ship) SetDirection(dir int) {
	switch {
	case dir < 0:
		s.dir = -1
	case dir > 0:
		s.dir = 1
	default:
		s.dir = 0
	}
}

func (s *Ship) Direction() int { return s.dir }

func (s *Ship) Update(dt time.Duration) {
	s.X += float64(s.dir) * s.Speed * dt.Seconds()
	s.X = geom.Clamp(s.X, 0, s.env.Width-s.Width)
	if s.cooldown > 0 {
		s.cooldown -= dt
		if s.cooldown < 0 {
			s.cooldown = 0
		}
	}
}

// CanFire reports whether the fire cooldown has elapsed.
func (s *Ship) CanFire() bool { return s.cooldown == 0 }

// Fire starts the cooldown and returns the muzzle position. ok is false while
// the ship is still cooling down.
func (s *Ship) Fire() (x, y float64, ok bool) {
	if !s.CanFire() {
		return 0, 0, false
	}
	s.cooldown = s.env.Templates.Ship.FireCooldown
	x, y = s.Muzzle()
	return x, y, true
}

// Muzzle is the top centre of the ship.
func (s *Ship) Muzzle() (float64, float64) {
	return s.X + s.Width*0.5, s.Y
}

func (s *Ship) CenterX() float64 { return s.X + s.Width*0.5 }

func (s *Ship) Bounds() geom.Rect {
	return geom.Rect{X: s.X, Y: s.Y, W: s.Width, H: s.Height}
}

func (s *Ship) Draw(surf render.Surface) {
	surf.Rect(render.KindShip, s.X, s.Y, s.Width, s.Height)
}
