package state

// Point is a position on the drawing surface.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// within reports whether q lies inside the square of half-width t around p.
func (p Point) within(q Point, t float64) bool {
	dx := p.X - q.X
	if dx < 0 {
		dx = -dx
	}
	dy := p.Y - q.Y
	if dy < 0 {
		dy = -dy
	}
	return dx <= t && dy <= t
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: min(r.Min.X, o.Min.X), Y: min(r.Min.Y, o.Min.Y)},
		Max: Point{X: max(r.Max.X, o.Max.X), Y: max(r.Max.Y, o.Max.Y)},
	}
}

type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpDeleteStroke OpType = "delete_stroke"
	OpClear        OpType = "clear"
)

// Op is one replicated board mutation. Stroke names the stroke in the
// originating site's id space; for deletes Target is the site that
// created the stroke.
type Op struct {
	Type    OpType   `json:"type"`
	Site    string   `json:"site"`
	Lamport uint64   `json:"lamport"`
	Stroke  StrokeID `json:"stroke,omitempty"`
	Target  string   `json:"target,omitempty"`
	Points  []Point  `json:"points,omitempty"`
}
