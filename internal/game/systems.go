package game

import (
	"time"

	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/core/pool"
	"github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/entity"
	"github.com/l1jgo/arcade/internal/geom"
)

// agentSystem turns agent decisions into ship commands. Phase 0 (Input).
type agentSystem struct {
	g *Game
}

func (s *agentSystem) Phase() system.Phase { return system.PhaseInput }

func (s *agentSystem) Update(dt time.Duration) {
	d, ok := s.g.agent.Tick(dt, s.g.Snapshot)
	if !ok {
		return
	}
	s.g.ship.SetDirection(d.Move)
	if d.Shoot {
		s.g.Fire()
	}
}

// dispatchSystem delivers last frame's events. Phase 1 (PreUpdate).
type dispatchSystem struct {
	bus *event.Bus
}

func (s *dispatchSystem) Phase() system.Phase { return system.PhasePreUpdate }

func (s *dispatchSystem) Update(time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}

// spawnSystem acquires one asteroid each time the spawn interval elapses.
// Phase 2 (Update).
type spawnSystem struct {
	g     *Game
	timer time.Duration
}

func (s *spawnSystem) Phase() system.Phase { return system.PhaseUpdate }

func (s *spawnSystem) Update(dt time.Duration) {
	if s.timer <= s.g.cfg.Asteroids.SpawnInterval {
		s.timer += dt
		return
	}
	s.timer = 0
	if _, ok := s.g.asteroids.Spawn(func(a *entity.Asteroid) { a.Start() }); ok {
		s.g.stats.Spawned++
	}
}

// motionSystem moves the ship and every active pooled entity. Phase 2
// (Update), after spawning.
type motionSystem struct {
	g *Game
}

func (s *motionSystem) Phase() system.Phase { return system.PhaseUpdate }

func (s *motionSystem) Update(dt time.Duration) {
	s.g.ship.Update(dt)
	s.g.asteroids.Update(dt)
	s.g.projectiles.Update(dt)
	s.g.explosions.Update(dt)
}

// collisionSystem resolves projectile hits on asteroids. A projectile is spent
// on the first asteroid it overlaps. Phase 3 (PostUpdate).
type collisionSystem struct {
	g *Game
}

func (s *collisionSystem) Phase() system.Phase { return system.PhasePostUpdate }

func (s *collisionSystem) Update(time.Duration) {
	s.g.projectiles.Each(func(_ pool.Handle, p *entity.Projectile) {
		shot := p.Bounds()
		s.g.asteroids.Each(func(_ pool.Handle, a *entity.Asteroid) {
			if p.Free() || !geom.RectsCollide(shot, a.Bounds()) {
				return
			}
			p.SetFree(true)
			a.Destroy(event.CauseShot)
		})
	})
}

// observerSystem reports pool occupancy and score. Phase 4 (Output).
type observerSystem struct {
	g   *Game
	obs Observer
}

func (s *observerSystem) Phase() system.Phase { return system.PhaseOutput }

func (s *observerSystem) Update(time.Duration) {
	for _, ps := range s.g.PoolStats() {
		s.obs.ObservePool(ps.Name, ps.Stats)
	}
	s.obs.ObserveFrame(s.g.score)
}
