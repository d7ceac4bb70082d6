package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// glyphs per kind; explosions cycle through their frames.
var (
	explosionGlyphs = []rune{'*', '✶', '+', '·'}

	styleAsteroid   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleExplosion  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleShip       = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleText       = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Terminal draws onto a tcell screen, scaling the play field to the screen.
// Rows reserved for status text sit above the field.
type Terminal struct {
	screen     tcell.Screen
	fieldW     float64
	fieldH     float64
	statusRows int
}

func NewTerminal(screen tcell.Screen, fieldW, fieldH float64, statusRows int) *Terminal {
	return &Terminal{screen: screen, fieldW: fieldW, fieldH: fieldH, statusRows: statusRows}
}

// Begin clears the screen for a new frame.
func (t *Terminal) Begin() { t.screen.Clear() }

// End presents the frame.
func (t *Terminal) End() { t.screen.Show() }

func (t *Terminal) area() (cols, rows int) {
	cols, rows = t.screen.Size()
	rows -= t.statusRows
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// toCell maps field coordinates to a screen cell.
func (t *Terminal) toCell(x, y float64) (int, int) {
	cols, rows := t.area()
	cx := int(math.Floor(x / t.fieldW * float64(cols)))
	cy := int(math.Floor(y/t.fieldH*float64(rows))) + t.statusRows
	return cx, cy
}

// ToField maps a screen cell (e.g. a mouse position) to the field coordinate
// of the cell's centre. ok is false for cells in the status area.
func (t *Terminal) ToField(col, row int) (x, y float64, ok bool) {
	cols, rows := t.area()
	row -= t.statusRows
	if row < 0 || col < 0 || col >= cols || row >= rows {
		return 0, 0, false
	}
	x = (float64(col) + 0.5) / float64(cols) * t.fieldW
	y = (float64(row) + 0.5) / float64(rows) * t.fieldH
	return x, y, true
}

func (t *Terminal) put(col, row int, r rune, style tcell.Style) {
	cols, rows := t.screen.Size()
	if col < 0 || row < t.statusRows || col >= cols || row >= rows {
		return
	}
	t.screen.SetContent(col, row, r, nil, style)
}

func (t *Terminal) fill(x, y, w, h float64, r rune, style tcell.Style) {
	c0, r0 := t.toCell(x, y)
	c1, r1 := t.toCell(x+w, y+h)
	if c1 == c0 {
		c1++
	}
	if r1 == r0 {
		r1++
	}
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			t.put(col, row, r, style)
		}
	}
}

func (t *Terminal) Circle(kind Kind, x, y, radius float64) {
	t.disc(x, y, radius, radius, glyph(kind, Frame{}), style(kind))
}

// disc fills every cell whose centre lies inside the ellipse (rx, ry).
func (t *Terminal) disc(x, y, rx, ry float64, r rune, st tcell.Style) {
	c0, r0 := t.toCell(x-rx, y-ry)
	c1, r1 := t.toCell(x+rx, y+ry)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			fx, fy, ok := t.ToField(col, row)
			if !ok {
				continue
			}
			dx, dy := (fx-x)/rx, (fy-y)/ry
			if dx*dx+dy*dy <= 1 {
				t.put(col, row, r, st)
			}
		}
	}
	// Always mark the centre so small bodies stay visible.
	cx, cy := t.toCell(x, y)
	t.put(cx, cy, r, st)
}

func (t *Terminal) Rect(kind Kind, x, y, w, h float64) {
	t.fill(x, y, w, h, glyph(kind, Frame{}), style(kind))
}

// Sprite approximates a sprite as a disc of the sprite's half extents.
func (t *Terminal) Sprite(kind Kind, f Frame, x, y, w, h, _ float64) {
	t.disc(x, y, w*0.5, h*0.5, glyph(kind, f), style(kind))
}

func (t *Terminal) Text(row int, s string) {
	if row < 0 || row >= t.statusRows {
		return
	}
	cols, _ := t.screen.Size()
	col := 0
	for _, r := range s {
		if col >= cols {
			break
		}
		t.screen.SetContent(col, row, r, nil, styleText)
		col++
	}
}

func glyph(kind Kind, f Frame) rune {
	switch kind {
	case KindAsteroid:
		return '@'
	case KindExplosion:
		return explosionGlyphs[(f.FrameX/6)%len(explosionGlyphs)]
	case KindProjectile:
		return '|'
	case KindShip:
		return '^'
	}
	return '?'
}

func style(kind Kind) tcell.Style {
	switch kind {
	case KindAsteroid:
		return styleAsteroid
	case KindExplosion:
		return styleExplosion
	case KindProjectile:
		return styleProjectile
	case KindShip:
		return styleShip
	}
	return styleText
}
