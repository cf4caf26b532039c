package ui

import (
	"image/color"
	"log"

	"TileBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

// BoardWidget feeds pointer events into a drawing session and renders its
// tiles. All methods run on the fyne UI goroutine.
type BoardWidget struct {
	widget.BaseWidget
	session *state.Session
	tool    Tool

	current    *state.Stroke
	drawing    bool
	panX, panY float32
	showGrid   bool

	layers  map[*state.Tile]*fyne.Container
	preview *fyne.Container

	statusBar *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *state.Session) *BoardWidget {
	b := &BoardWidget{
		session:   s,
		layers:    make(map[*state.Tile]*fyne.Container),
		preview:   container.NewWithoutLayout(),
		statusBar: widget.NewLabel("Ready"),
	}
	b.ExtendBaseWidget(b)
	b.redrawAll()
	return b
}

func (b *BoardWidget) Session() *state.Session { return b.session }

func (b *BoardWidget) SetTool(t Tool) {
	b.finishStroke()
	b.session.EndErase()
	b.tool = t
}

// SetLocalOpHandler routes ops produced by local edits to fn. It can be
// called from any goroutine.
func (b *BoardWidget) SetLocalOpHandler(fn func(state.Op)) {
	fyne.Do(func() {
		b.session.OnLocalOp = fn
	})
}

// SetStatus can be called from any goroutine.
func (b *BoardWidget) SetStatus(text string) {
	fyne.Do(func() {
		b.statusBar.SetText(text)
	})
}

// ApplyRemote merges an op received from a peer. It can be called from any
// goroutine; the session is only touched on the UI goroutine.
func (b *BoardWidget) ApplyRemote(op state.Op) {
	fyne.Do(func() {
		b.applyRemote(op)
	})
}

func (b *BoardWidget) applyRemote(op state.Op) {
	if b.session.Apply(op) {
		b.redrawAll()
		b.Refresh()
	}
}

// ClearAll wipes the board, locally and for peers.
func (b *BoardWidget) ClearAll() {
	b.finishStroke()
	b.session.ClearAll()
	b.redrawAll()
	b.Refresh()
	b.SetStatus("Board cleared")
}

func (b *BoardWidget) toBoard(pos fyne.Position) (float64, float64) {
	return float64(pos.X - b.panX), float64(pos.Y - b.panY)
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	x, y := b.toBoard(e.Position)
	switch {
	case e.Button == desktop.MouseButtonSecondary,
		e.Button == desktop.MouseButtonPrimary && b.tool == ToolEraser:
		b.session.BeginErase()
		b.eraseAt(x, y)
	case e.Button == desktop.MouseButtonPrimary:
		b.current = b.session.BeginStroke(x, y)
		b.drawing = true
		b.preview.Objects = nil
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	switch {
	case e.Button == desktop.MouseButtonPrimary && b.drawing:
		b.finishStroke()
	case b.session.Erasing():
		b.session.EndErase()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	x, y := b.toBoard(e.Position)
	switch {
	case b.drawing:
		prev := b.current.Vertex(b.current.Len() - 1)
		b.session.ExtendStroke(b.current, x, y)
		b.preview.Add(newSegment(prev, state.Pt(x, y), previewColor))
		b.preview.Refresh()
	case b.session.Erasing():
		b.eraseAt(x, y)
	default:
		b.panX += e.Dragged.DX
		b.panY += e.Dragged.DY
		b.Refresh()
	}
}

func (b *BoardWidget) DragEnd() {
	b.finishStroke()
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if b.session.Erasing() {
		b.eraseAt(b.toBoard(e.Position))
	}
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

// MouseOut ends any gesture; a stroke cut off by leaving the board is kept.
func (b *BoardWidget) MouseOut() {
	b.finishStroke()
	b.session.EndErase()
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.panX += e.Scrolled.DX
	b.panY += e.Scrolled.DY
	b.Refresh()
}

func (b *BoardWidget) finishStroke() {
	if !b.drawing {
		return
	}
	st := b.current
	b.drawing = false
	b.current = nil
	b.preview.Objects = nil

	if id, ok := b.session.FinalizeStroke(st); ok {
		t, _ := b.session.TileOf(id)
		b.appendToLayer(t, st)
	}
	b.Refresh()
}

func (b *BoardWidget) eraseAt(x, y float64) {
	res, ok := b.session.EraseAt(x, y)
	if !ok {
		return
	}
	if b.session.Count() == 0 {
		log.Println("[BOARD] Last stroke erased, clearing surface")
		b.redrawAll()
	} else {
		b.redrawTile(res.Tile, res.Remaining)
	}
	b.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	size       fyne.Size
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	b := r.board
	objects := []fyne.CanvasObject{r.background}
	if b.showGrid {
		objects = append(objects, b.tileGrid(r.size)...)
	}

	pan := fyne.NewPos(b.panX, b.panY)
	for _, t := range b.session.Index().Tiles() {
		if l, ok := b.layers[t]; ok {
			l.Move(pan)
			objects = append(objects, l)
		}
	}
	b.preview.Move(pan)
	return append(objects, b.preview)
}

func (r *boardWidgetRenderer) Refresh() {
	canvas.Refresh(r.board)
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func (r *boardWidgetRenderer) Destroy() {}
