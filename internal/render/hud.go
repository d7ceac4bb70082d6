package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PoolLine is one pool's occupancy as shown on the status bar.
type PoolLine struct {
	Name      string
	Active    int
	Capacity  int
	Exhausted uint64
}

// Status is everything the status bar shows.
type Status struct {
	Score       int
	MaxScore    int
	Won         bool
	Frame       uint64
	Pools       []PoolLine
	AgentActive bool
	Difficulty  string
}

// HUD formats the status bar. Numbers are grouped per the configured locale.
type HUD struct {
	p *message.Printer
}

func NewHUD(tag language.Tag) *HUD {
	return &HUD{p: message.NewPrinter(tag)}
}

// HUDRows is the number of lines Lines returns.
const HUDRows = 3

// Lines renders the status bar, one string per row.
func (h *HUD) Lines(st Status) []string {
	score := h.p.Sprintf("Score: %d", st.Score)
	if st.MaxScore > 0 {
		score = h.p.Sprintf("Score: %d / %d", st.Score, st.MaxScore)
	}
	if st.Won {
		score += h.p.Sprintf("  You win, final score: %d", st.Score)
	}

	pools := ""
	for i, pl := range st.Pools {
		if i > 0 {
			pools += "  "
		}
		pools += h.p.Sprintf("%s %d/%d", pl.Name, pl.Active, pl.Capacity)
		if pl.Exhausted > 0 {
			pools += h.p.Sprintf(" (full x%d)", pl.Exhausted)
		}
	}

	agent := "AI: OFF - press A to activate"
	if st.AgentActive {
		agent = h.p.Sprintf("AI: ON (%s) - A toggles, D changes difficulty", st.Difficulty)
	}
	return []string{score, pools, agent}
}

// Draw writes the status bar onto s.
func (h *HUD) Draw(s Surface, st Status) {
	for row, line := range h.Lines(st) {
		s.Text(row, line)
	}
}
