package state

// EraseOutcome says how far an erase event got.
type EraseOutcome int

const (
	// EraseIdle means no erase gesture is in progress.
	EraseIdle EraseOutcome = iota
	// EraseSuppressed means the pointer had not moved past the move threshold.
	EraseSuppressed
	// EraseNoTile means no tile, or only an empty one, lies under the pointer.
	EraseNoTile
	// EraseMiss means the tile was scanned and no stroke was close enough.
	EraseMiss
	// EraseRemoved means one stroke was removed.
	EraseRemoved
)

func (o EraseOutcome) String() string {
	switch o {
	case EraseIdle:
		return "idle"
	case EraseSuppressed:
		return "suppressed"
	case EraseNoTile:
		return "no-tile"
	case EraseMiss:
		return "miss"
	case EraseRemoved:
		return "removed"
	}
	return "unknown"
}

// EraseResult is what a successful erase hands back to the renderer.
type EraseResult struct {
	Removed   *Stroke
	Tile      *Tile
	Remaining []*Stroke // the tile's strokes after removal, oldest first
}

// EraseResolver turns erase pointer events into at most one stroke removal
// per event.
type EraseResolver struct {
	index         *SpatialIndex
	moveThreshold float64
	radius        float64

	erasing bool
	hasLast bool
	last    Point
}

func NewEraseResolver(idx *SpatialIndex, moveThreshold, radius float64) *EraseResolver {
	return &EraseResolver{index: idx, moveThreshold: moveThreshold, radius: radius}
}

// Begin starts an erase gesture. The first event of a gesture is never
// suppressed.
func (r *EraseResolver) Begin() {
	r.erasing = true
	r.hasLast = false
}

func (r *EraseResolver) End()                { r.erasing = false }
func (r *EraseResolver) Erasing() bool       { return r.erasing }
func (r *EraseResolver) Last() (Point, bool) { return r.last, r.hasLast }

// Resolve handles one erase event at (x, y). The last position is recorded
// whenever the event is not suppressed, whether or not anything is hit.
func (r *EraseResolver) Resolve(x, y float64) (EraseResult, EraseOutcome) {
	if !r.erasing {
		return EraseResult{}, EraseIdle
	}
	p := Point{X: x, Y: y}
	if r.hasLast && r.last.within(p, r.moveThreshold) {
		return EraseResult{}, EraseSuppressed
	}
	r.last, r.hasLast = p, true

	t, ok := r.index.TileForPoint(x, y)
	if !ok || t.IsEmpty() {
		return EraseResult{}, EraseNoTile
	}

	var hit *Stroke
	for s := range t.Newest() {
		if s.hits(p, r.radius) {
			hit = s
			break
		}
	}
	if hit == nil {
		return EraseResult{}, EraseMiss
	}
	t.RemoveStroke(hit.id)
	return EraseResult{Removed: hit, Tile: t, Remaining: t.Strokes()}, EraseRemoved
}
