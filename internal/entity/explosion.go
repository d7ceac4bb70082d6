package entity

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/render"
)

// Explosion plays one row of the explosion sprite sheet, one column per
// frame interval, then returns to its pool.
type Explosion struct {
	env  *Env
	slot uint32
	free bool

	X, Y   float64
	Speed  float64 // drift along +x, units per second
	FrameX int
	FrameY int
	timer  time.Duration
}

func NewExplosion(env *Env, slot int) *Explosion {
	return &Explosion{env: env, slot: uint32(slot), free: true}
}

func (e *Explosion) Free() bool        { return e.free }
func (e *Explosion) SetFree(free bool) { e.free = free }

// Start rewinds the animation at (x, y) and picks a random sprite row.
func (e *Explosion) Start(x, y, speed float64) {
	e.X = x
	e.Y = y
	e.Speed = speed
	e.FrameX = 0
	e.FrameY = e.env.Rand.Intn(e.env.Templates.Explosion.Rows)
	e.timer = 0
}

func (e *Explosion) Update(dt time.Duration) {
	tpl := e.env.Templates.Explosion
	e.X += e.Speed * dt.Seconds()
	if e.timer > tpl.FrameInterval() {
		e.FrameX++
		e.timer = 0
		if e.FrameX > tpl.MaxFrame {
			e.free = true
			event.Emit(e.env.Bus, event.ExplosionFinished{Slot: e.slot, X: e.X, Y: e.Y})
		}
		return
	}
	e.timer += dt
}

func (e *Explosion) Draw(s render.Surface) {
	tpl := e.env.Templates.Explosion
	s.Sprite(render.KindExplosion, render.Frame{FrameX: e.FrameX, FrameY: e.FrameY},
		e.X, e.Y, tpl.SpriteWidth, tpl.SpriteHeight, 0)
}
