package render

// Shape names the Surface call that produced an Op.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeRect
	ShapeSprite
	ShapeText
)

// Op is one recorded draw call.
type Op struct {
	Shape Shape
	Kind  Kind
	Frame Frame
	X, Y  float64
	W, H  float64
	R     float64
	Angle float64
	Row   int
	Text  string
}

// Recorder is a Surface that keeps every draw call in memory. The headless
// simulator draws into it and tests assert against it.
type Recorder struct {
	Ops []Op
}

func NewRecorder() *Recorder {
	return &Recorder{Ops: make([]Op, 0, 64)}
}

func (r *Recorder) Circle(kind Kind, x, y, radius float64) {
	r.Ops = append(r.Ops, Op{Shape: ShapeCircle, Kind: kind, X: x, Y: y, R: radius})
}

func (r *Recorder) Rect(kind Kind, x, y, w, h float64) {
	r.Ops = append(r.Ops, Op{Shape: ShapeRect, Kind: kind, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) Sprite(kind Kind, f Frame, x, y, w, h, angle float64) {
	r.Ops = append(r.Ops, Op{Shape: ShapeSprite, Kind: kind, Frame: f, X: x, Y: y, W: w, H: h, Angle: angle})
}

func (r *Recorder) Text(row int, s string) {
	r.Ops = append(r.Ops, Op{Shape: ShapeText, Kind: KindText, Row: row, Text: s})
}

// Reset drops recorded calls, keeping the backing array.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many calls drew kind.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns the recorded status lines in draw order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Shape == ShapeText {
			out = append(out, op.Text)
		}
	}
	return out
}
