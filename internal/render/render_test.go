package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Circle(KindAsteroid, 1, 2, 3)
	r.Rect(KindProjectile, 0, 0, 3, 40)
	r.Sprite(KindExplosion, Frame{FrameX: 4, FrameY: 1}, 10, 10, 300, 300, 0)
	r.Text(0, "hello")

	require.Len(t, r.Ops, 4)
	assert.Equal(t, 1, r.Count(KindAsteroid))
	assert.Equal(t, 1, r.Count(KindText))
	assert.Equal(t, []string{"hello"}, r.Texts())
	assert.Equal(t, Frame{FrameX: 4, FrameY: 1}, r.Ops[2].Frame)

	r.Reset()
	assert.Empty(t, r.Ops)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "asteroid", KindAsteroid.String())
	assert.Equal(t, "ship", KindShip.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestHUD_Lines(t *testing.T) {
	h := NewHUD(language.English)
	lines := h.Lines(Status{
		Score:    12345,
		MaxScore: 20000,
		Pools: []PoolLine{
			{Name: "asteroids", Active: 2, Capacity: 3},
			{Name: "explosions", Active: 5, Capacity: 5, Exhausted: 1500},
		},
	})
	require.Len(t, lines, HUDRows)
	assert.Equal(t, "Score: 12,345 / 20,000", lines[0])
	assert.Equal(t, "asteroids 2/3  explosions 5/5 (full x1,500)", lines[1])
	assert.Equal(t, "AI: OFF - press A to activate", lines[2])

	lines = h.Lines(Status{Score: 2, MaxScore: 2, Won: true, AgentActive: true, Difficulty: "hard"})
	assert.Equal(t, "Score: 2 / 2  You win, final score: 2", lines[0])
	assert.Equal(t, "AI: ON (hard) - A toggles, D changes difficulty", lines[2])

	rec := NewRecorder()
	h.Draw(rec, Status{Score: 1})
	assert.Equal(t, []string{"Score: 1", "", "AI: OFF - press A to activate"}, rec.Texts())
}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func cellAt(s tcell.Screen, col, row int) rune {
	r, _, _, _ := s.GetContent(col, row)
	return r
}

func TestTerminal_Mapping(t *testing.T) {
	s := newSimScreen(t, 60, 42)
	term := NewTerminal(s, 600, 800, 2)

	x, y, ok := term.ToField(0, 2)
	require.True(t, ok)
	assert.InDelta(t, 5.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)

	_, _, ok = term.ToField(5, 1)
	assert.False(t, ok, "status rows are not part of the field")
	_, _, ok = term.ToField(60, 10)
	assert.False(t, ok)
}

func TestTerminal_Draw(t *testing.T) {
	s := newSimScreen(t, 60, 42)
	term := NewTerminal(s, 600, 800, 2)

	term.Begin()
	term.Rect(KindShip, 250, 700, 100, 100)
	term.Rect(KindProjectile, 0, 0, 3, 40)
	term.Sprite(KindAsteroid, Frame{}, 300, 400, 150, 150, 0.5)
	term.Text(0, "Score: 1")
	term.Text(5, "ignored")
	term.End()

	assert.Equal(t, '^', cellAt(s, 25, 37))
	assert.Equal(t, '|', cellAt(s, 0, 2))
	assert.Equal(t, '@', cellAt(s, 30, 22))
	assert.Equal(t, 'S', cellAt(s, 0, 0))
	assert.NotEqual(t, 'i', cellAt(s, 0, 5))
}
