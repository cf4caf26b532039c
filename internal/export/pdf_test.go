package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TileBoard/internal/state"
)

func sampleStrokes() []*state.Stroke {
	s := state.NewSession(state.DefaultParams())
	for _, pts := range [][]state.Point{
		{{X: 0, Y: 0}, {X: 100, Y: 40}, {X: 200, Y: 0}},
		{{X: 2500, Y: 300}, {X: 2600, Y: 900}},
	} {
		st := s.BeginStroke(pts[0].X, pts[0].Y)
		for _, p := range pts[1:] {
			s.ExtendStroke(st, p.X, p.Y)
		}
		s.FinalizeStroke(st)
	}
	return s.Strokes()
}

func TestPDFHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sampleStrokes()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFEmptyBoard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, PDFFile(path, sampleStrokes()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFitScalesDown(t *testing.T) {
	area := state.Rect{Min: state.Pt(0, 0), Max: state.Pt(1900, 100)}
	scale, ox, oy := fit(area)
	assert.InDelta(t, 190.0/1900, scale, 1e-12)
	assert.Equal(t, margin, ox)
	assert.Equal(t, margin, oy)

	small := state.Rect{Min: state.Pt(5, 5), Max: state.Pt(15, 25)}
	scale, _, _ = fit(small)
	assert.Equal(t, 1.0, scale)
}

func TestExtentSkipsEmpty(t *testing.T) {
	_, ok := extent(nil)
	assert.False(t, ok)

	area, ok := extent(sampleStrokes())
	require.True(t, ok)
	assert.Equal(t, 0.0, area.Min.X)
	assert.Equal(t, 2600.0, area.Max.X)
	assert.Equal(t, 900.0, area.Max.Y)
}
