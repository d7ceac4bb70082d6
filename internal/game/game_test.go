package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/arcade/internal/agent"
	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/core/pool"
	"github.com/l1jgo/arcade/internal/data"
	"github.com/l1jgo/arcade/internal/entity"
	"github.com/l1jgo/arcade/internal/render"
)

const step = 16 * time.Millisecond

// quietConfig never spawns asteroids on its own so tests place them by hand.
func quietConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Frame.Seed = 7
	cfg.Asteroids.SpawnInterval = time.Hour
	return cfg
}

func newGame(t *testing.T, cfg *config.Config) *Game {
	t.Helper()
	g, err := New(Deps{Config: cfg})
	require.NoError(t, err)
	return g
}

// place activates an asteroid at (x, y) that neither moves nor spins.
func place(t *testing.T, g *Game, x, y float64) *entity.Asteroid {
	t.Helper()
	var got *entity.Asteroid
	_, ok := g.Asteroids().Spawn(func(a *entity.Asteroid) {
		a.Start()
		a.X, a.Y = x, y
		a.Speed, a.Spin = 0, 0
		got = a
	})
	require.True(t, ok)
	return got
}

func TestNew(t *testing.T) {
	g := newGame(t, quietConfig())
	assert.Equal(t, 3, g.Asteroids().Size())
	assert.Equal(t, 5, g.Explosions().Size())
	assert.Equal(t, 15, g.Projectiles().Size())
	for _, ps := range g.PoolStats() {
		assert.Zero(t, ps.Active, ps.Name)
	}
	assert.Equal(t, int64(7), g.Seed())
	assert.False(t, g.Agent().Active())

	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Defaults()
		cfg.Asteroids.Capacity = 0
		_, err := New(Deps{Config: cfg})
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("invalid templates", func(t *testing.T) {
		tpl := data.DefaultTemplates()
		tpl.Explosion.Rows = 0
		_, err := New(Deps{Config: quietConfig(), Templates: tpl})
		assert.ErrorIs(t, err, data.ErrInvalid)
		assert.ErrorContains(t, err, "explosion.rows")
	})
}

func TestSpawn_TimerGated(t *testing.T) {
	cfg := config.Defaults()
	cfg.Frame.Seed = 1
	cfg.Asteroids.SpawnInterval = 40 * time.Millisecond
	g := newGame(t, cfg)

	// 16, 32, 48 accumulate; the fourth frame sees 48 > 40 and spawns.
	for i := 0; i < 3; i++ {
		g.Update(step)
	}
	assert.Equal(t, 0, g.Asteroids().Active())
	g.Update(step)
	assert.Equal(t, 1, g.Asteroids().Active())

	for i := 0; i < 8; i++ {
		g.Update(step)
	}
	assert.Equal(t, 3, g.Asteroids().Active())

	for i := 0; i < 4; i++ {
		g.Update(step)
	}
	st := g.Asteroids().Stats()
	assert.Equal(t, 3, st.Active)
	assert.Equal(t, uint64(1), st.Exhausted)
	assert.Equal(t, uint64(3), g.Stats().Spawned)
}

func TestClick(t *testing.T) {
	g := newGame(t, quietConfig())
	a := place(t, g, 100, 100)
	a.Speed = 50

	assert.Equal(t, 0, g.Click(400, 400), "miss")
	assert.Equal(t, 1, g.Click(110, 100))
	assert.True(t, a.Free())
	assert.Equal(t, 0, g.Click(110, 100), "already destroyed")

	// the explosion appears once the event is dispatched next frame
	assert.Equal(t, 0, g.Explosions().Active())
	g.Update(step)
	require.Equal(t, 1, g.Explosions().Active())
	assert.InDelta(t, 50*entity.DebrisSpeedFactor, g.Explosions().At(0).Speed, 1e-9)
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, uint64(1), g.Stats().Destroyed)
}

func TestEscape_LeavesStationaryExplosion(t *testing.T) {
	g := newGame(t, quietConfig())
	a := place(t, g, 0, 300)
	a.X = a.Boundary() - 1
	a.Speed = 100

	g.Update(100 * time.Millisecond)
	require.True(t, a.Free())
	escapedAt := a.X

	g.Update(step)
	require.Equal(t, 1, g.Explosions().Active())
	e := g.Explosions().At(0)
	assert.Equal(t, 0.0, e.Speed)
	assert.Equal(t, escapedAt, e.X)
	assert.Equal(t, 0, g.Score())
	assert.Equal(t, uint64(1), g.Stats().Escaped)
}

func TestFire_HitsAsteroid(t *testing.T) {
	g := newGame(t, quietConfig())
	mx, _ := g.Ship().Muzzle()
	place(t, g, mx, 650)

	require.True(t, g.Fire())
	assert.False(t, g.Fire(), "cooling down")
	assert.Equal(t, 1, g.Projectiles().Active())

	g.Update(step)
	assert.Equal(t, 0, g.Projectiles().Active())
	assert.Equal(t, 0, g.Asteroids().Active())

	g.Update(step)
	assert.Equal(t, 1, g.Explosions().Active())
	assert.Equal(t, 1, g.Score())
	assert.Equal(t, RunStats{Destroyed: 1, Shots: 1, Explosions: 1}, g.Stats())
}

func TestFire_ProjectilePoolExhausted(t *testing.T) {
	tpl := data.DefaultTemplates()
	tpl.Ship.FireCooldown = 0
	g, err := New(Deps{Config: quietConfig(), Templates: tpl})
	require.NoError(t, err)

	for i := 0; i < 15; i++ {
		require.True(t, g.Fire(), "shot %d", i)
	}
	assert.False(t, g.Fire())
	assert.False(t, g.Snapshot().CanFire)
	assert.Equal(t, uint64(1), g.Projectiles().Stats().Exhausted)
	assert.Equal(t, uint64(15), g.Stats().Shots)
}

func TestScore_CappedAtMax(t *testing.T) {
	cfg := quietConfig()
	cfg.Score.Max = 2
	g := newGame(t, cfg)
	place(t, g, 100, 100)
	place(t, g, 300, 300)
	place(t, g, 500, 500)

	assert.Equal(t, 1, g.Click(100, 100))
	assert.Equal(t, 1, g.Click(300, 300))
	assert.Equal(t, 1, g.Click(500, 500))
	g.Update(step)

	assert.Equal(t, 2, g.Score())
	assert.True(t, g.Won())
	assert.Equal(t, uint64(3), g.Stats().Destroyed)
}

func TestExplosionPoolExhausted(t *testing.T) {
	cfg := quietConfig()
	cfg.Explosions.Capacity = 1
	g := newGame(t, cfg)
	place(t, g, 100, 100)
	place(t, g, 300, 300)
	g.Click(100, 100)
	g.Click(300, 300)

	g.Update(step)
	st := g.Explosions().Stats()
	assert.Equal(t, 1, st.Active)
	assert.Equal(t, uint64(1), st.Exhausted)
	assert.Equal(t, uint64(1), g.Stats().Explosions)
	assert.Equal(t, 2, g.Score(), "score does not depend on the explosion")
}

func TestAgent_DrivesShip(t *testing.T) {
	cfg := quietConfig()
	cfg.Agent.Enabled = true
	var seen []agent.State
	brain := agent.BrainFunc(func(s agent.State) agent.Decision {
		seen = append(seen, s)
		return agent.Decision{Move: 1, Shoot: true}
	})
	g, err := New(Deps{Config: cfg, Brain: brain})
	require.NoError(t, err)
	startX := g.Ship().X

	g.Update(20 * time.Millisecond)
	assert.Empty(t, seen, "medium waits 50ms between decisions")

	g.Update(30 * time.Millisecond)
	require.Len(t, seen, 1)
	assert.Equal(t, 1, g.Ship().Direction())
	assert.Equal(t, uint64(1), g.Stats().Shots)
	assert.Greater(t, g.Ship().X, startX)

	assert.False(t, g.ToggleAgent())
	assert.Equal(t, 0, g.Ship().Direction())
	assert.Equal(t, agent.Hard, g.CycleDifficulty())
}

func TestRestart(t *testing.T) {
	g := newGame(t, quietConfig())
	place(t, g, 100, 100)
	place(t, g, 300, 300)
	place(t, g, 500, 500)
	_, ok := g.Asteroids().Acquire()
	require.False(t, ok)
	g.Fire()
	g.MoveShip(-1)
	g.Update(step)
	g.Click(300, 300)

	g.Restart()
	for _, ps := range g.PoolStats() {
		assert.Zero(t, ps.Active, ps.Name)
		assert.Zero(t, ps.Acquired, ps.Name)
		assert.Zero(t, ps.Exhausted, ps.Name)
	}
	assert.Equal(t, "asteroids 0/3  projectiles 0/15  explosions 0/5", g.hud.Lines(g.Status())[1])
	assert.Zero(t, g.Score())
	assert.Zero(t, g.FrameCount())
	assert.Equal(t, RunStats{}, g.Stats())
	assert.Equal(t, 0, g.Ship().Direction())

	g.Update(step)
	assert.Equal(t, 0, g.Explosions().Active(), "queued events were dropped")
}

type fakeObserver struct {
	pools  map[string]pool.Stats
	order  []string
	scores []int
}

func (f *fakeObserver) ObservePool(name string, st pool.Stats) {
	f.pools[name] = st
	f.order = append(f.order, name)
}

func (f *fakeObserver) ObserveFrame(score int) { f.scores = append(f.scores, score) }

func TestObserver(t *testing.T) {
	obs := &fakeObserver{pools: make(map[string]pool.Stats)}
	g, err := New(Deps{Config: quietConfig(), Observer: obs})
	require.NoError(t, err)
	place(t, g, 100, 100)

	g.Update(step)
	assert.Equal(t, []string{PoolAsteroids, PoolProjectiles, PoolExplosions}, obs.order)
	assert.Equal(t, 1, obs.pools[PoolAsteroids].Active)
	assert.Equal(t, 3, obs.pools[PoolAsteroids].Capacity)
	assert.Equal(t, []int{0}, obs.scores)
}

func TestDraw(t *testing.T) {
	g := newGame(t, quietConfig())
	place(t, g, 100, 100)
	g.Fire()

	rec := render.NewRecorder()
	g.Frame(step, rec)
	assert.Equal(t, 1, rec.Count(render.KindAsteroid))
	assert.Equal(t, 1, rec.Count(render.KindProjectile))
	assert.Equal(t, 1, rec.Count(render.KindShip))
	assert.Equal(t, 0, rec.Count(render.KindExplosion))

	lines := rec.Texts()
	require.Len(t, lines, render.HUDRows)
	assert.Equal(t, "Score: 0 / 20", lines[0])
	assert.Equal(t, "asteroids 1/3  projectiles 1/15  explosions 0/5", lines[1])
}

func TestDeterministicReplay(t *testing.T) {
	run := func() (*Game, agent.State) {
		cfg := config.Defaults()
		cfg.Frame.Seed = 42
		cfg.Agent.Enabled = true
		g := newGame(t, cfg)
		for i := 0; i < 600; i++ {
			g.Update(step)
		}
		return g, g.Snapshot()
	}
	g1, s1 := run()
	g2, s2 := run()
	assert.Equal(t, s1, s2)
	assert.Equal(t, g1.Score(), g2.Score())
	assert.Equal(t, g1.Stats(), g2.Stats())
	assert.NotZero(t, g1.Stats().Spawned)
}
