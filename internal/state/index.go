package state

import "math"

// Cell is a tile's position in the grid, in units of the tile size.
type Cell struct {
	I, J int64
}

// SpatialIndex owns the tiles covering the parts of the board that have been
// drawn on. Tiles sit on a grid aligned at multiples of the tile size.
type SpatialIndex struct {
	size  float64
	tiles map[Cell]*Tile
	order []*Tile
}

// NewSpatialIndex returns an index with the tile at the origin already created.
func NewSpatialIndex(tileSize float64) *SpatialIndex {
	idx := &SpatialIndex{
		size:  tileSize,
		tiles: make(map[Cell]*Tile),
	}
	idx.EnsureTileFor(0, 0)
	return idx
}

func (idx *SpatialIndex) TileSize() float64 { return idx.size }

// CellFor returns the grid cell whose tile contains (x, y).
func (idx *SpatialIndex) CellFor(x, y float64) Cell {
	return Cell{I: idx.axisCell(x), J: idx.axisCell(y)}
}

// maxCell keeps cell arithmetic clear of int64 overflow.
const maxCell = 1 << 62

// axisCell is floor(v/size), corrected so that the resulting half-open
// interval always contains v despite rounding in the division.
func (idx *SpatialIndex) axisCell(v float64) int64 {
	q := math.Floor(v / idx.size)
	if math.IsNaN(q) {
		q = 0
	}
	c := int64(max(-maxCell, min(q, maxCell)))
	switch {
	case v < float64(c)*idx.size:
		c--
	case v >= float64(c+1)*idx.size:
		c++
	}
	return c
}

// TileForPoint returns the tile covering (x, y), if one exists. It never
// creates tiles.
func (idx *SpatialIndex) TileForPoint(x, y float64) (*Tile, bool) {
	t, ok := idx.tiles[idx.CellFor(x, y)]
	return t, ok
}

// EnsureTileFor returns the tile covering (x, y), creating it if needed.
func (idx *SpatialIndex) EnsureTileFor(x, y float64) *Tile {
	c := idx.CellFor(x, y)
	if t, ok := idx.tiles[c]; ok {
		return t
	}
	t := NewTile(float64(c.I)*idx.size, float64(c.J)*idx.size, idx.size)
	idx.tiles[c] = t
	idx.order = append(idx.order, t)
	return t
}

// Tiles returns every tile in creation order.
func (idx *SpatialIndex) Tiles() []*Tile {
	out := make([]*Tile, len(idx.order))
	copy(out, idx.order)
	return out
}

// Count is the number of strokes across all tiles.
func (idx *SpatialIndex) Count() int {
	n := 0
	for _, t := range idx.order {
		n += t.Count()
	}
	return n
}

// Clear empties every tile.
func (idx *SpatialIndex) Clear() {
	for _, t := range idx.order {
		t.Clear()
	}
}
