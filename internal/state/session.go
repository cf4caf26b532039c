package state

import (
	"log"

	"github.com/google/uuid"
)

// Params are the tunable constants of a drawing session.
type Params struct {
	TileSize      float64
	MoveThreshold float64
	EraseRadius   float64
	Smoothing     Weights
}

func DefaultParams() Params {
	return Params{
		TileSize:      2000,
		MoveThreshold: 5,
		EraseRadius:   5,
		Smoothing:     DefaultWeights,
	}
}

// Session is the drawing-session context: it allocates stroke ids, commits
// finished strokes to the spatial index and resolves erase gestures.
//
// A Session is not safe for concurrent use. Callers deliver pointer events
// and remote ops from a single goroutine.
type Session struct {
	params Params
	ids    IDAllocator
	index  *SpatialIndex
	eraser *EraseResolver

	site     string
	clock    Clock
	seen     map[opKey]struct{}
	where    map[StrokeID]*Tile
	byOrigin map[Origin]StrokeID
	cleared  Stamp // latest clear applied

	// OnLocalOp, if set, receives every op produced by a local change.
	OnLocalOp func(Op)
}

func NewSession(p Params) *Session {
	idx := NewSpatialIndex(p.TileSize)
	return &Session{
		params:   p,
		index:    idx,
		eraser:   NewEraseResolver(idx, p.MoveThreshold, p.EraseRadius),
		site:     uuid.NewString(),
		seen:     make(map[opKey]struct{}),
		where:    make(map[StrokeID]*Tile),
		byOrigin: make(map[Origin]StrokeID),
	}
}

func (s *Session) Params() Params       { return s.params }
func (s *Session) Site() string         { return s.site }
func (s *Session) Index() *SpatialIndex { return s.index }

// NewStroke returns an empty in-progress stroke.
func (s *Session) NewStroke() *Stroke {
	return newStroke(s.ids.Next(), s.site)
}

// BeginStroke starts a stroke at (x, y).
func (s *Session) BeginStroke(x, y float64) *Stroke {
	st := s.NewStroke()
	st.Append(x, y)
	return st
}

func (s *Session) ExtendStroke(st *Stroke, x, y float64) {
	st.Append(x, y)
}

// FinalizeStroke smooths st and stores it in the tile holding its first
// point. Empty strokes are dropped and reported with ok == false, as is a
// stroke that was already committed.
func (s *Session) FinalizeStroke(st *Stroke) (id StrokeID, ok bool) {
	if st == nil || st.IsEmpty() || st.committed {
		return 0, false
	}
	st.Smooth(s.params.Smoothing)
	st.stamp = s.stamp()
	t := s.store(st)
	log.Printf("[BOARD] Stroke %d committed to tile (%g,%g) with %d points", st.id, t.X0, t.Y0, st.Len())

	s.send(Op{Type: OpInsertStroke, Lamport: st.stamp.Lamport, Stroke: st.id, Points: st.PathCopy()})
	return st.id, true
}

func (s *Session) BeginErase()   { s.eraser.Begin() }
func (s *Session) EndErase()     { s.eraser.End() }
func (s *Session) Erasing() bool { return s.eraser.Erasing() }

// EraseAt handles one erase pointer event. When a stroke is removed the
// result carries the affected tile and its remaining strokes for redraw.
func (s *Session) EraseAt(x, y float64) (EraseResult, bool) {
	res, outcome := s.eraser.Resolve(x, y)
	if outcome != EraseRemoved {
		return EraseResult{}, false
	}
	s.forget(res.Removed)
	log.Printf("[BOARD] Stroke %d erased, %d left in tile (%g,%g)", res.Removed.id, len(res.Remaining), res.Tile.X0, res.Tile.Y0)

	o := res.Removed.origin
	s.emit(Op{Type: OpDeleteStroke, Stroke: o.ID, Target: o.Site})
	return res, true
}

// ClearAll drops every stroke from every tile. Peers drop the strokes that
// were inserted before the clear; strokes they commit concurrently with a
// later stamp survive on every site.
func (s *Session) ClearAll() {
	at := s.stamp()
	s.clearBefore(at)
	s.send(Op{Type: OpClear, Lamport: at.Lamport})
}

// Strokes returns all committed strokes, tile by tile, oldest first within
// each tile.
func (s *Session) Strokes() []*Stroke {
	var out []*Stroke
	for _, t := range s.index.Tiles() {
		out = append(out, t.Strokes()...)
	}
	return out
}

func (s *Session) Count() int { return s.index.Count() }

// TileOf returns the tile a committed stroke lives in.
func (s *Session) TileOf(id StrokeID) (*Tile, bool) {
	t, ok := s.where[id]
	return t, ok
}

func (s *Session) store(st *Stroke) *Tile {
	st.committed = true
	t := s.index.EnsureTileFor(st.start.X, st.start.Y)
	t.AddStroke(st)
	s.where[st.id] = t
	s.byOrigin[st.origin] = st.id
	return t
}

func (s *Session) forget(st *Stroke) {
	delete(s.where, st.id)
	delete(s.byOrigin, st.origin)
}

// clearBefore removes every stroke inserted before at and remembers at so
// that late inserts older than it are dropped too.
func (s *Session) clearBefore(at Stamp) int {
	if s.cleared.Less(at) {
		s.cleared = at
	}
	n := 0
	for _, st := range s.Strokes() {
		if !st.stamp.Less(at) {
			continue
		}
		s.where[st.id].RemoveStroke(st.id)
		s.forget(st)
		n++
	}
	return n
}

// stamp ticks the clock for a new local op.
func (s *Session) stamp() Stamp {
	return Stamp{Lamport: s.clock.Tick(), Site: s.site}
}

func (s *Session) emit(op Op) {
	op.Lamport = s.clock.Tick()
	s.send(op)
}

func (s *Session) send(op Op) {
	op.Site = s.site
	if s.OnLocalOp != nil {
		s.OnLocalOp(op)
	}
}
