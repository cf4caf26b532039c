package state

import (
	"iter"
	"slices"
)

// Tile is a square region of the board holding the strokes indexed into it.
// Bounds are half-open: [X0, X0+Size) x [Y0, Y0+Size).
type Tile struct {
	X0, Y0 float64
	Size   float64

	strokes map[StrokeID]*Stroke
	order   []StrokeID // insertion order, oldest first
}

func NewTile(x0, y0, size float64) *Tile {
	return &Tile{
		X0:      x0,
		Y0:      y0,
		Size:    size,
		strokes: make(map[StrokeID]*Stroke),
	}
}

// ContainsPoint reports whether (x, y) falls inside the tile. A point on the
// right or bottom edge belongs to the neighbouring tile.
func (t *Tile) ContainsPoint(x, y float64) bool {
	return x >= t.X0 && x < t.X0+t.Size &&
		y >= t.Y0 && y < t.Y0+t.Size
}

// AddStroke inserts s. It returns false and leaves the tile unchanged if a
// stroke with the same id is already present.
func (t *Tile) AddStroke(s *Stroke) bool {
	if _, exists := t.strokes[s.id]; exists {
		return false
	}
	t.strokes[s.id] = s
	t.order = append(t.order, s.id)
	return true
}

// RemoveStroke drops the stroke with the given id. Absent ids are ignored.
func (t *Tile) RemoveStroke(id StrokeID) bool {
	if _, exists := t.strokes[id]; !exists {
		return false
	}
	delete(t.strokes, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

func (t *Tile) Has(id StrokeID) bool {
	_, ok := t.strokes[id]
	return ok
}

func (t *Tile) IsEmpty() bool { return len(t.order) == 0 }
func (t *Tile) Count() int    { return len(t.order) }

// Strokes returns the tile's strokes oldest first. The slice is a snapshot.
func (t *Tile) Strokes() []*Stroke {
	out := make([]*Stroke, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.strokes[id])
	}
	return out
}

// StrokeAt returns the i-th stroke in insertion order.
func (t *Tile) StrokeAt(i int) *Stroke {
	return t.strokes[t.order[i]]
}

// Newest yields the strokes most recently inserted first. The tile must not
// be modified while the sequence is being consumed.
func (t *Tile) Newest() iter.Seq[*Stroke] {
	return func(yield func(*Stroke) bool) {
		for _, id := range slices.Backward(t.order) {
			if !yield(t.strokes[id]) {
				return
			}
		}
	}
}

// Clear empties the tile. The tile itself stays in its index.
func (t *Tile) Clear() {
	clear(t.strokes)
	t.order = t.order[:0]
}
