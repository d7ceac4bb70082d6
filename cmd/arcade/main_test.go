package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l1jgo/arcade/internal/config"
	"github.com/l1jgo/arcade/internal/entity"
	"github.com/l1jgo/arcade/internal/game"
	"github.com/l1jgo/arcade/internal/persist"
	"github.com/l1jgo/arcade/internal/render"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", "testdata/missing.toml", "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSimCommand(t *testing.T) {
	out, err := execute(t, "sim", "--frames", "300", "--seed", "5", "--agent", "--brain", "heuristic", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "simulation")
	assert.Contains(t, out, "medium (heuristic)")
	assert.Contains(t, out, "asteroids")
	assert.Contains(t, out, `arcade_pool_capacity{pool="asteroids"} 3`)

	t.Run("same seed same summary", func(t *testing.T) {
		again, err := execute(t, "sim", "--frames", "300", "--seed", "5", "--agent", "--brain", "heuristic", "--metrics")
		require.NoError(t, err)
		assert.Equal(t, out, again)
	})
}

func TestSimCommand_Errors(t *testing.T) {
	_, err := execute(t, "sim", "--frames", "0")
	assert.ErrorContains(t, err, "--frames must be positive")

	_, err = execute(t, "sim", "--frames", "10", "--brain", "oracle")
	assert.ErrorContains(t, err, `unknown brain "oracle"`)

	_, err = execute(t, "sim", "--frames", "10", "--difficulty", "nightmare")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "arcade v"+version+"\n", out)
}

func newTestGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Defaults()
	cfg.Frame.Seed = 3
	cfg.Asteroids.SpawnInterval = time.Hour
	g, err := game.New(game.Deps{Config: cfg})
	require.NoError(t, err)
	return g
}

func TestControls(t *testing.T) {
	g := newTestGame(t)
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(60, 43)
	term := render.NewTerminal(screen, 600, 800, render.HUDRows)
	c := &controls{g: g, screen: screen, term: term}
	now := time.Unix(0, 0)

	t.Run("arrow keys move until released", func(t *testing.T) {
		require.True(t, c.handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), now))
		assert.Equal(t, -1, g.Ship().Direction())
		c.release(now.Add(holdFor / 2))
		assert.Equal(t, -1, g.Ship().Direction())
		c.release(now.Add(holdFor))
		assert.Equal(t, 0, g.Ship().Direction())
	})

	t.Run("space fires", func(t *testing.T) {
		require.True(t, c.handle(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), now))
		assert.Equal(t, 1, g.Projectiles().Active())
	})

	t.Run("click destroys asteroid", func(t *testing.T) {
		_, ok := g.Asteroids().Spawn(func(a *entity.Asteroid) {
			a.Start()
			a.X, a.Y, a.Speed = 305, 410, 0
		})
		require.True(t, ok)
		// column 30, row 20 of the field is the cell centred on (305, 410)
		require.True(t, c.handle(tcell.NewEventMouse(30, 20+render.HUDRows, tcell.Button1, tcell.ModNone), now))
		assert.Equal(t, 0, g.Asteroids().Active())
		c.handle(tcell.NewEventMouse(30, 20+render.HUDRows, tcell.ButtonNone, tcell.ModNone), now)
	})

	t.Run("dragging does not click again", func(t *testing.T) {
		spawn := func() {
			_, ok := g.Asteroids().Spawn(func(a *entity.Asteroid) {
				a.Start()
				a.X, a.Y, a.Speed = 105, 410, 0
			})
			require.True(t, ok)
		}
		col, row := 10, 20+render.HUDRows // cell centred on (105, 410)

		c.handle(tcell.NewEventMouse(40, row, tcell.Button1, tcell.ModNone), now)
		spawn()
		c.handle(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone), now)
		assert.Equal(t, 1, g.Asteroids().Active(), "button was already held")

		c.handle(tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone), now)
		assert.Equal(t, 1, g.Asteroids().Active(), "release does not click")

		c.handle(tcell.NewEventMouse(col, row, tcell.Button1, tcell.ModNone), now)
		assert.Equal(t, 0, g.Asteroids().Active())
		c.handle(tcell.NewEventMouse(col, row, tcell.ButtonNone, tcell.ModNone), now)
	})

	t.Run("agent and difficulty", func(t *testing.T) {
		c.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), now)
		assert.True(t, g.Agent().Active())
		c.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), now)
		assert.Equal(t, 0, g.Ship().Direction(), "arrows are ignored while the agent plays")
		c.handle(tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), now)
		assert.Equal(t, "hard", g.Agent().Difficulty().String())
	})

	t.Run("restart and quit", func(t *testing.T) {
		c.handle(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), now)
		assert.Equal(t, 0, g.Projectiles().Active())
		assert.False(t, c.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), now))
		assert.False(t, c.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now))
	})
}

func TestRunRow(t *testing.T) {
	g := newTestGame(t)
	g.Fire()
	for i := 0; i < 10; i++ {
		g.Update(16 * time.Millisecond)
	}
	row := runRow(g, true)
	assert.Equal(t, int64(3), row.Seed)
	assert.Equal(t, int32(20), row.MaxScore)
	assert.Equal(t, int64(10), row.Frames)
	assert.Equal(t, 160*time.Millisecond, row.Duration)
	assert.Equal(t, "medium", row.Difficulty)
	assert.True(t, row.AgentUsed)
	assert.Equal(t, int64(1), row.Shots)
	require.Len(t, row.Pools, 3)
	assert.Equal(t, persist.PoolRow{Name: "projectiles", Capacity: 15, Acquired: 1}, row.Pools[1])
}

func TestPrintScores(t *testing.T) {
	var buf bytes.Buffer
	printScores(&buf, nil)
	assert.Contains(t, buf.String(), "no runs saved yet")

	buf.Reset()
	printScores(&buf, []persist.RunRow{
		{Score: 20, Won: true, Duration: 12 * time.Second, Difficulty: "hard", AgentUsed: true},
		{Score: 4, Duration: 3 * time.Second, Difficulty: "easy"},
	})
	out := buf.String()
	assert.Contains(t, out, "leaderboard")
	assert.Contains(t, out, "hard")
	assert.Contains(t, out, "12s")
}
