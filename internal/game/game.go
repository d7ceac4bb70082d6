// Package game wires the entity pools, the ship, the event bus and the agent
// into one frame-stepped simulation. Every front end (terminal, headless sim,
// tests) drives it through Update and Draw on a single goroutine.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/l1jgo/arcade/internal/agent"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/core/event"
	"github.com/l1jgo/arcade/internal/core/pool"
	"github.com/l1jgo/arcade/internal/core/system"
	"github.com/l1jgo/arcade/internal/data"
	"github.com/l1jgo/arcade/internal/entity"
	"github.com/l1jgo/arcade/internal/geom"
	"github.com/l1jgo/arcade/internal/render"
)

// Pool names, as reported to observers and on the status bar.
const (
	PoolAsteroids   = "asteroids"
	PoolProjectiles = "projectiles"
	PoolExplosions  = "explosions"
)

// Observer receives per-frame occupancy and score. metrics.Collector
// implements it.
type Observer interface {
	ObservePool(name string, st pool.Stats)
	ObserveFrame(score int)
}

// Deps bundles what New needs. Templates, Brain and Log default when nil.
type Deps struct {
	Config    *config.Config
	Templates *data.Templates
	Brain     agent.Brain
	Observer  Observer
	Log       *zap.Logger
}

// RunStats counts what happened during one run.
type RunStats struct {
	Spawned    uint64
	Destroyed  uint64 // clicked or shot
	Escaped    uint64
	Shots      uint64
	Explosions uint64
}

// Game is the whole simulation. Not safe for concurrent use.
type Game struct {
	cfg  *config.Config
	tpl  *data.Templates
	log  *zap.Logger
	seed int64

	env         *entity.Env
	bus         *event.Bus
	runner      *system.Runner
	asteroids   *pool.Pool[*entity.Asteroid]
	explosions  *pool.Pool[*entity.Explosion]
	projectiles *pool.Pool[*entity.Projectile]
	ship        *entity.Ship
	agent       *agent.Agent
	hud         *render.HUD
	spawner     *spawnSystem

	frame   uint64
	elapsed time.Duration
	score   int
	won     bool
	stats   RunStats
}

// New builds every pool at full capacity and registers the frame systems.
func New(deps Deps) (*Game, error) {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tpl := deps.Templates
	if tpl == nil {
		tpl = data.DefaultTemplates()
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	difficulty, err := agent.ParseDifficulty(cfg.Agent.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	brain := deps.Brain
	if brain == nil {
		brain = agent.Heuristic{}
	}

	seed := cfg.Frame.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		cfg:    cfg,
		tpl:    tpl,
		log:    log,
		seed:   seed,
		bus:    event.NewBus(),
		runner: system.NewRunner(),
		agent:  agent.New(brain, difficulty),
		hud:    render.NewHUD(language.English),
	}
	g.env = &entity.Env{
		Width:     cfg.Field.Width,
		Height:    cfg.Field.Height,
		Templates: tpl,
		Rand:      rand.New(rand.NewSource(seed)),
		Bus:       g.bus,
	}
	g.asteroids = pool.New(PoolAsteroids, cfg.Asteroids.Capacity, func(i int) *entity.Asteroid {
		return entity.NewAsteroid(g.env, i)
	})
	g.explosions = pool.New(PoolExplosions, cfg.Explosions.Capacity, func(i int) *entity.Explosion {
		return entity.NewExplosion(g.env, i)
	})
	g.projectiles = pool.New(PoolProjectiles, cfg.Projectiles.Capacity, func(i int) *entity.Projectile {
		return entity.NewProjectile(g.env, i)
	})
	g.ship = entity.NewShip(g.env)
	if cfg.Agent.Enabled {
		g.agent.Activate()
	}

	event.Subscribe(g.bus, g.onAsteroidDestroyed)
	event.Subscribe(g.bus, g.onExplosionFinished)
	event.Subscribe(g.bus, g.onScoreChanged)
	event.Subscribe(g.bus, g.onProjectileFired)

	g.spawner = &spawnSystem{g: g}
	g.runner.Register(&agentSystem{g: g})
	g.runner.Register(&dispatchSystem{bus: g.bus})
	g.runner.Register(g.spawner)
	g.runner.Register(&motionSystem{g: g})
	g.runner.Register(&collisionSystem{g: g})
	if deps.Observer != nil {
		g.runner.Register(&observerSystem{g: g, obs: deps.Observer})
	}

	log.Debug("game created",
		zap.Int64("seed", seed),
		zap.Int("asteroids", cfg.Asteroids.Capacity),
		zap.Int("explosions", cfg.Explosions.Capacity),
		zap.Int("projectiles", cfg.Projectiles.Capacity),
		zap.String("difficulty", difficulty.String()),
	)
	return g, nil
}

// Update advances the simulation by dt, phase by phase.
func (g *Game) Update(dt time.Duration) {
	g.frame++
	g.elapsed += dt
	g.runner.Tick(dt)
}

// Draw renders every active entity and the status bar.
func (g *Game) Draw(s render.Surface) {
	g.asteroids.Draw(s)
	g.projectiles.Draw(s)
	g.explosions.Draw(s)
	g.ship.Draw(s)
	g.hud.Draw(s, g.Status())
}

// Frame is one Update followed by one Draw.
func (g *Game) Frame(dt time.Duration, s render.Surface) {
	g.Update(dt)
	g.Draw(s)
}

// Click destroys every active asteroid the pointer circle at (x, y) overlaps
// and returns how many were hit.
func (g *Game) Click(x, y float64) int {
	pointer := geom.Circle{X: x, Y: y, Radius: g.cfg.Asteroids.PointerRadius}
	hits := 0
	g.asteroids.Each(func(_ pool.Handle, a *entity.Asteroid) {
		if geom.CirclesCollide(pointer, a.Body()) {
			a.Destroy(event.CauseClicked)
			hits++
		}
	})
	return hits
}

// MoveShip sets the ship's direction: negative left, zero stop, positive right.
func (g *Game) MoveShip(dir int) {
	g.ship.SetDirection(dir)
}

// Fire launches a projectile from the ship's muzzle. It returns false while
// the ship is cooling down or every projectile is in flight.
func (g *Game) Fire() bool {
	if !g.ship.CanFire() {
		return false
	}
	x, y := g.ship.Muzzle()
	h, ok := g.projectiles.Spawn(func(p *entity.Projectile) { p.Start(x, y) })
	if !ok {
		return false
	}
	g.ship.Fire()
	g.stats.Shots++
	event.Emit(g.bus, event.ProjectileFired{Slot: h.Index(), X: x, Y: y})
	return true
}

// ToggleAgent switches the agent on or off. Turning it off stops the ship.
func (g *Game) ToggleAgent() bool {
	on := g.agent.Toggle()
	if !on {
		g.ship.SetDirection(0)
	}
	g.log.Info("agent toggled", zap.Bool("active", on), zap.String("difficulty", g.agent.Difficulty().String()))
	return on
}

// CycleDifficulty moves the agent to the next difficulty.
func (g *Game) CycleDifficulty() agent.Difficulty {
	d := g.agent.Cycle()
	g.log.Info("agent difficulty", zap.String("difficulty", d.String()))
	return d
}

// Restart frees every pooled entity and clears score, timers and queued
// events. The RNG keeps its sequence.
func (g *Game) Restart() {
	g.asteroids.Reset()
	g.explosions.Reset()
	g.projectiles.Reset()
	g.bus.Clear()
	g.ship.Reset()
	g.spawner.timer = 0
	g.frame = 0
	g.elapsed = 0
	g.score = 0
	g.won = false
	g.stats = RunStats{}
	g.log.Info("game restarted")
}

func (g *Game) Seed() int64            { return g.seed }
func (g *Game) Score() int             { return g.score }
func (g *Game) MaxScore() int          { return g.cfg.Score.Max }
func (g *Game) Won() bool              { return g.won }
func (g *Game) Stats() RunStats        { return g.stats }
func (g *Game) Elapsed() time.Duration { return g.elapsed }
func (g *Game) FrameCount() uint64     { return g.frame }
func (g *Game) Agent() *agent.Agent    { return g.agent }
func (g *Game) Ship() *entity.Ship     { return g.ship }

func (g *Game) Asteroids() *pool.Pool[*entity.Asteroid]     { return g.asteroids }
func (g *Game) Explosions() *pool.Pool[*entity.Explosion]   { return g.explosions }
func (g *Game) Projectiles() *pool.Pool[*entity.Projectile] { return g.projectiles }

// PoolStats returns occupancy for every pool in draw order.
func (g *Game) PoolStats() []NamedStats {
	return []NamedStats{
		{PoolAsteroids, g.asteroids.Stats()},
		{PoolProjectiles, g.projectiles.Stats()},
		{PoolExplosions, g.explosions.Stats()},
	}
}

// NamedStats pairs a pool name with its occupancy.
type NamedStats struct {
	Name string
	pool.Stats
}

// Status is the status bar view of the game.
func (g *Game) Status() render.Status {
	st := render.Status{
		Score:       g.score,
		MaxScore:    g.cfg.Score.Max,
		Won:         g.won,
		Frame:       g.frame,
		AgentActive: g.agent.Active(),
		Difficulty:  g.agent.Difficulty().String(),
	}
	for _, ps := range g.PoolStats() {
		st.Pools = append(st.Pools, render.PoolLine{
			Name:      ps.Name,
			Active:    ps.Active,
			Capacity:  ps.Capacity,
			Exhausted: ps.Exhausted,
		})
	}
	return st
}

// Snapshot is the state the agent decides on.
func (g *Game) Snapshot() agent.State {
	st := agent.State{
		FieldWidth:      g.cfg.Field.Width,
		FieldHeight:     g.cfg.Field.Height,
		ShipX:           g.ship.X,
		ShipY:           g.ship.Y,
		ShipWidth:       g.ship.Width,
		ProjectileSpeed: g.tpl.Projectile.Speed,
		CanFire:         g.ship.CanFire() && g.projectiles.Active() < g.projectiles.Size(),
	}
	g.asteroids.Each(func(_ pool.Handle, a *entity.Asteroid) {
		st.Targets = append(st.Targets, agent.Target{X: a.X, Y: a.Y, Radius: a.Radius, Speed: a.Speed})
	})
	return st
}

func (g *Game) onAsteroidDestroyed(ev event.AsteroidDestroyed) {
	if ev.Cause == event.CauseEscaped {
		g.stats.Escaped++
	} else {
		g.stats.Destroyed++
		g.addScore(1)
	}
	// A full explosion pool only means this one is not shown.
	if _, ok := g.explosions.Spawn(func(e *entity.Explosion) { e.Start(ev.X, ev.Y, ev.Speed) }); ok {
		g.stats.Explosions++
	}
}

func (g *Game) onExplosionFinished(ev event.ExplosionFinished) {
	g.log.Debug("explosion finished", zap.Uint32("slot", ev.Slot), zap.Float64("x", ev.X), zap.Float64("y", ev.Y))
}

func (g *Game) onProjectileFired(ev event.ProjectileFired) {
	g.log.Debug("projectile fired", zap.Uint32("slot", ev.Slot), zap.Float64("x", ev.X))
}

func (g *Game) onScoreChanged(ev event.ScoreChanged) {
	if ev.Won {
		g.log.Info("max score reached", zap.Int("score", ev.Score), zap.Uint64("frame", g.frame))
	}
}

// addScore raises the score, never past the configured maximum.
func (g *Game) addScore(n int) {
	if g.won {
		return
	}
	g.score += n
	if limit := g.cfg.Score.Max; limit > 0 && g.score >= limit {
		g.score = limit
		g.won = true
	}
	event.Emit(g.bus, event.ScoreChanged{Score: g.score, Max: g.cfg.Score.Max, Won: g.won})
}
