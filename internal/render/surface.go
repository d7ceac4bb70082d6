package render

// Kind selects how a surface depicts a shape. Terminal surfaces map it to a
// glyph and color; the recorder keeps it for assertions.
type Kind int

const (
	KindAsteroid Kind = iota
	KindExplosion
	KindProjectile
	KindShip
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindAsteroid:
		return "asteroid"
	case KindExplosion:
		return "explosion"
	case KindProjectile:
		return "projectile"
	case KindShip:
		return "ship"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Frame identifies one cell of a sprite sheet: column FrameX, row FrameY.
type Frame struct {
	FrameX int
	FrameY int
}

// Surface is the drawing boundary between the simulation and whatever
// displays it. All coordinates are in play-field units.
type Surface interface {
	// Circle draws a body centred on (x, y).
	Circle(kind Kind, x, y, radius float64)
	// Rect draws an axis-aligned body with its top-left corner at (x, y).
	Rect(kind Kind, x, y, w, h float64)
	// Sprite draws one sprite-sheet cell centred on (x, y), rotated by angle radians.
	Sprite(kind Kind, f Frame, x, y, w, h, angle float64)
	// Text draws a status line. Row 0 is the top line.
	Text(row int, s string)
}
