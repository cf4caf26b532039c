package ui

import (
	"image/color"
	"math"

	"TileBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

var (
	inkColor     = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	previewColor = color.NRGBA{R: 0, G: 0, B: 0, A: 128}
	gridColor    = color.NRGBA{R: 200, G: 200, B: 220, A: 160}
)

const inkWidth = 2

// strokeToLines turns a stroke into line segments in board coordinates.
func strokeToLines(st *state.Stroke, c color.Color) []fyne.CanvasObject {
	if st.Len() < 2 {
		return nil
	}
	lines := make([]fyne.CanvasObject, 0, st.Len()-1)
	prev := st.Start()
	for i := 1; i < st.Len(); i++ {
		cur := st.Vertex(i)
		lines = append(lines, newSegment(prev, cur, c))
		prev = cur
	}
	return lines
}

func newSegment(a, b state.Point, c color.Color) *canvas.Line {
	line := canvas.NewLine(c)
	line.Position1 = fyne.NewPos(float32(a.X), float32(a.Y))
	line.Position2 = fyne.NewPos(float32(b.X), float32(b.Y))
	line.StrokeWidth = inkWidth
	return line
}

// layerFor returns the canvas layer holding a tile's strokes.
func (b *BoardWidget) layerFor(t *state.Tile) *fyne.Container {
	l, ok := b.layers[t]
	if !ok {
		l = container.NewWithoutLayout()
		b.layers[t] = l
	}
	return l
}

// appendToLayer draws one newly committed stroke on top of its tile.
func (b *BoardWidget) appendToLayer(t *state.Tile, st *state.Stroke) {
	l := b.layerFor(t)
	for _, line := range strokeToLines(st, inkColor) {
		l.Add(line)
	}
}

// redrawTile rebuilds one tile's layer from its remaining strokes.
func (b *BoardWidget) redrawTile(t *state.Tile, strokes []*state.Stroke) {
	var objects []fyne.CanvasObject
	for _, st := range strokes {
		objects = append(objects, strokeToLines(st, inkColor)...)
	}
	l := b.layerFor(t)
	l.Objects = objects
	l.Refresh()
}

// redrawAll rebuilds every tile layer.
func (b *BoardWidget) redrawAll() {
	for _, t := range b.session.Index().Tiles() {
		b.redrawTile(t, t.Strokes())
	}
}

// tileGrid draws the tile boundaries visible in a viewport of the given size.
func (b *BoardWidget) tileGrid(size fyne.Size) []fyne.CanvasObject {
	s := b.session.Params().TileSize
	left, top := float64(-b.panX), float64(-b.panY)
	right, bottom := left+float64(size.Width), top+float64(size.Height)

	var lines []fyne.CanvasObject
	for x := math.Ceil(left/s) * s; x <= right; x += s {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(float32(x)+b.panX, 0)
		line.Position2 = fyne.NewPos(float32(x)+b.panX, size.Height)
		line.StrokeWidth = 1
		lines = append(lines, line)
	}
	for y := math.Ceil(top/s) * s; y <= bottom; y += s {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, float32(y)+b.panY)
		line.Position2 = fyne.NewPos(size.Width, float32(y)+b.panY)
		line.StrokeWidth = 1
		lines = append(lines, line)
	}
	return lines
}

func (b *BoardWidget) ToggleGrid() {
	b.showGrid = !b.showGrid
	b.Refresh()
}

func (b *BoardWidget) ResetView() {
	b.panX, b.panY = 0, 0
	b.Refresh()
}
