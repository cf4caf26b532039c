package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TileBoard/internal/state"
)

func TestDefaultMatchesSessionDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, state.DefaultParams(), cfg.Params())
	assert.Equal(t, 8888, cfg.Net.Port)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.toml")
	doc := `
[board]
tile_size = 500
erase_radius = 8

[net]
port = 9000
discover_timeout = "1500ms"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, cfg.Board.TileSize)
	assert.Equal(t, 8.0, cfg.Board.EraseRadius)
	assert.Equal(t, 5.0, cfg.Board.MoveThreshold)
	assert.Equal(t, 9000, cfg.Net.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Net.DiscoverTimeout)
	assert.True(t, cfg.Net.Advertise)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero tile", "[board]\ntile_size = 0"},
		{"tiny tile", "[board]\ntile_size = 1e-300"},
		{"huge tile", "[board]\ntile_size = 1e300"},
		{"negative threshold", "[board]\nmove_threshold = -1"},
		{"negative radius", "[board]\nerase_radius = -0.5"},
		{"weights", "[board]\nsmoothing = [0.5, 0.5, 0.5]"},
		{"port", "[net]\nport = 70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestParseSmoothing(t *testing.T) {
	cfg, err := Parse("[board]\nsmoothing = [0.0, 1.0, 0.0]")
	require.NoError(t, err)
	assert.Equal(t, state.Weights{Prev: 0, Cur: 1, Next: 0}, cfg.Params().Smoothing)
}
