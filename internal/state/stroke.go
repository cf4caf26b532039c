package state

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

// ErrIndexOutOfRange is the panic value wrapped by Stroke.Vertex on a bad index.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// StrokeID identifies a stroke within one session.
type StrokeID uint64

// Origin names a stroke across replicas: the site that drew it and the id
// it had there.
type Origin struct {
	Site string   `json:"site"`
	ID   StrokeID `json:"id"`
}

// Weights are the quadratic-Bezier blend factors used by Smooth for the
// previous, current and next point.
type Weights struct {
	Prev, Cur, Next float64
}

// DefaultWeights is the quadratic curve midpoint.
var DefaultWeights = Weights{Prev: 0.25, Cur: 0.5, Next: 0.25}

// Stroke is one pen-down to pen-up path.
type Stroke struct {
	id     StrokeID
	origin Origin
	start  Point
	path   []Point

	committed bool
	stamp     Stamp // insert time, set on commit
}

func newStroke(id StrokeID, site string) *Stroke {
	return &Stroke{id: id, origin: Origin{Site: site, ID: id}}
}

func (s *Stroke) ID() StrokeID   { return s.id }
func (s *Stroke) Origin() Origin { return s.origin }

// Start is the first captured point. It is the zero Point until a point is appended.
func (s *Stroke) Start() Point { return s.start }

// MaxCoord bounds coordinates on both axes. Append clamps to it.
const MaxCoord = 1e15

// Append adds a point to the end of the path. Coordinates are clamped to
// [-MaxCoord, MaxCoord] and NaN is taken as 0. Once the stroke has been
// committed Append does nothing.
func (s *Stroke) Append(x, y float64) {
	if s.committed {
		return
	}
	p := Point{X: clampCoord(x), Y: clampCoord(y)}
	if len(s.path) == 0 {
		s.start = p
	}
	s.path = append(s.path, p)
}

// Smooth runs one pass of midpoint smoothing over the interior points.
// Points are updated in place from left to right, so point i blends the
// already smoothed point i-1 with the original points i and i+1.
func (s *Stroke) Smooth(w Weights) {
	for i := 1; i < len(s.path)-1; i++ {
		p0, p1, p2 := s.path[i-1], s.path[i], s.path[i+1]
		s.path[i] = Point{
			X: w.Prev*p0.X + w.Cur*p1.X + w.Next*p2.X,
			Y: w.Prev*p0.Y + w.Cur*p1.Y + w.Next*p2.Y,
		}
	}
}

// Committed reports whether the stroke has been stored in a tile. A
// committed stroke no longer changes.
func (s *Stroke) Committed() bool { return s.committed }

func clampCoord(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(-MaxCoord, min(v, MaxCoord))
}

func (s *Stroke) IsEmpty() bool { return len(s.path) == 0 }
func (s *Stroke) Len() int      { return len(s.path) }

// Vertex returns the i-th point. It panics if i is out of range.
func (s *Stroke) Vertex(i int) Point {
	if i < 0 || i >= len(s.path) {
		panic(fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.path)))
	}
	return s.path[i]
}

// Points yields the path in capture order. The sequence can be ranged over
// any number of times.
func (s *Stroke) Points() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, p := range s.path {
			if !yield(p) {
				return
			}
		}
	}
}

// PathCopy returns a copy of the path, for callers that need a slice.
func (s *Stroke) PathCopy() []Point {
	out := make([]Point, len(s.path))
	copy(out, s.path)
	return out
}

// Bounds returns the bounding box of the path. ok is false for an empty stroke.
func (s *Stroke) Bounds() (r Rect, ok bool) {
	if len(s.path) == 0 {
		return Rect{}, false
	}
	r = Rect{Min: s.path[0], Max: s.path[0]}
	for _, p := range s.path[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r, true
}

// hits reports whether any point of the path lies within radius of p.
func (s *Stroke) hits(p Point, radius float64) bool {
	for q := range s.Points() {
		if q.within(p, radius) {
			return true
		}
	}
	return false
}
