package entity

import (
	"time"

	"github.com/l1jgo/arcade/internal/geom"
	"github.com/l1jgo/arcade/internal/render"
)

// Projectile flies straight up from the ship's muzzle until it leaves the top
// of the field.
type Projectile struct {
	env  *Env
	free bool

	X, Y          float64
	Width, Height float64
	Speed         float64
}

func NewProjectile(env *Env, _ int) *Projectile {
	tpl := env.Templates.Projectile
	return &Projectile{
		env:    env,
		free:   true,
		Width:  tpl.Width,
		Height: tpl.Height,
		Speed:  tpl.Speed,
	}
}

func (p *Projectile) Free() bool        { return p.free }
func (p *Projectile) SetFree(free bool) { p.free = free }

// Start centres the projectile horizontally on x with its top edge at y.
func (p *Projectile) Start(x, y float64) {
	p.X = x - p.Width*0.5
	p.Y = y
}

func (p *Projectile) Update(dt time.Duration) {
	p.Y -= p.Speed * dt.Seconds()
	if p.Y < -p.Height {
		p.free = true
	}
}

func (p *Projectile) Bounds() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

func (p *Projectile) Draw(s render.Surface) {
	s.Rect(render.KindProjectile, p.X, p.Y, p.Width, p.Height)
}
