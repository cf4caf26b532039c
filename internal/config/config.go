// Package config loads board and network settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/BurntSushi/toml"

	"TileBoard/internal/state"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Board struct {
	TileSize      float64    `toml:"tile_size"`
	MoveThreshold float64    `toml:"move_threshold"`
	EraseRadius   float64    `toml:"erase_radius"`
	Smoothing     [3]float64 `toml:"smoothing"`
}

type Net struct {
	Port            int           `toml:"port"`
	Advertise       bool          `toml:"advertise"`
	DiscoverTimeout time.Duration `toml:"discover_timeout"`
}

type Config struct {
	Board Board `toml:"board"`
	Net   Net   `toml:"net"`
}

func Default() Config {
	p := state.DefaultParams()
	return Config{
		Board: Board{
			TileSize:      p.TileSize,
			MoveThreshold: p.MoveThreshold,
			EraseRadius:   p.EraseRadius,
			Smoothing:     [3]float64{p.Smoothing.Prev, p.Smoothing.Cur, p.Smoothing.Next},
		},
		Net: Net{
			Port:            8888,
			Advertise:       true,
			DiscoverTimeout: 3 * time.Second,
		},
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Config, error) {
	cfg := Default()
	if _, err := toml.Decode(doc, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MinTileSize is the smallest tile edge accepted from a config file.
const MinTileSize = 1.0

func (c Config) Validate() error {
	b := c.Board
	switch {
	case !(b.TileSize >= MinTileSize):
		return fmt.Errorf("%w: tile_size must be at least %g, got %g", ErrInvalid, MinTileSize, b.TileSize)
	case b.TileSize > state.MaxCoord:
		return fmt.Errorf("%w: tile_size must not exceed %g, got %g", ErrInvalid, state.MaxCoord, b.TileSize)
	case b.MoveThreshold < 0:
		return fmt.Errorf("%w: move_threshold must not be negative, got %g", ErrInvalid, b.MoveThreshold)
	case b.EraseRadius < 0:
		return fmt.Errorf("%w: erase_radius must not be negative, got %g", ErrInvalid, b.EraseRadius)
	}
	if sum := b.Smoothing[0] + b.Smoothing[1] + b.Smoothing[2]; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("%w: smoothing weights must sum to 1, got %g", ErrInvalid, sum)
	}
	if c.Net.Port < 0 || c.Net.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalid, c.Net.Port)
	}
	return nil
}

// Params converts the board section into session parameters.
func (c Config) Params() state.Params {
	return state.Params{
		TileSize:      c.Board.TileSize,
		MoveThreshold: c.Board.MoveThreshold,
		EraseRadius:   c.Board.EraseRadius,
		Smoothing: state.Weights{
			Prev: c.Board.Smoothing[0],
			Cur:  c.Board.Smoothing[1],
			Next: c.Board.Smoothing[2],
		},
	}
}
