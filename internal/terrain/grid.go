// Package terrain provides the battlefield height map and the map query
// interface consumed by the battle core and the renderer.
package terrain

import (
	"errors"
	"fmt"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// MaxHeight is the highest elevation level a tile can have.
const MaxHeight = 9

// ErrOutOfBounds is returned by TileHeight for coordinates off the map.
var ErrOutOfBounds = errors.New("terrain: position out of bounds")

// Grid is a rectangular height map.
// Heights are stored in row-major order: index = y*W + x.
type Grid struct {
	W       int
	H       int
	heights []float64
}

// NewGrid creates a flat grid with every tile at height 0.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:       w,
		H:       h,
		heights: make([]float64, w*h),
	}
}

// FromRows builds a w x h grid from digit rows ('0'..'9'), one string per row.
// Missing rows and columns stay at height 0; '.' and ' ' also mean 0.
func FromRows(w, h int, rows []string) (*Grid, error) {
	g := NewGrid(w, h)
	if len(rows) > h {
		return nil, fmt.Errorf("terrain: %d height rows for a map %d high", len(rows), h)
	}

	for y, row := range rows {
		if len(row) > w {
			return nil, fmt.Errorf("terrain: row %d has %d columns, map is %d wide", y, len(row), w)
		}
		for x, ch := range row {
			switch {
			case ch >= '0' && ch <= '9':
				g.heights[g.index(x, y)] = float64(ch - '0')
			case ch == '.' || ch == ' ':
				// flat
			default:
				return nil, fmt.Errorf("terrain: invalid height %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return g, nil
}

// Generate creates a w x h grid of rolling hills from OpenSimplex noise.
// The same seed always yields the same grid.
func Generate(w, h int, seed int64) *Grid {
	g := NewGrid(w, h)
	noise := opensimplex.NewNormalized(seed)

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			v := octaveNoise(noise, float64(x), float64(y), 3, 0.08, 0.5)
			level := int(v * (MaxHeight + 1))
			if level > MaxHeight {
				level = MaxHeight
			}
			if level < 0 {
				level = 0
			}
			g.heights[g.index(x, y)] = float64(level)
		}
	}
	return g
}

// octaveNoise layers several noise frequencies into fractal noise in [0, 1].
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

func (g *Grid) index(x, y int) int {
	return y*g.W + x
}

// Size returns the map dimensions in tiles.
func (g *Grid) Size() (w, h int) {
	return g.W, g.H
}

// IsValidPosition reports whether (x, y) lies on the map.
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// TileHeight returns the height of a tile.
// Callers must bounds-check first; invalid coordinates return ErrOutOfBounds.
func (g *Grid) TileHeight(x, y int) (float64, error) {
	if !g.IsValidPosition(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) on %dx%d map", ErrOutOfBounds, x, y, g.W, g.H)
	}
	return g.heights[g.index(x, y)], nil
}

// SetHeight changes the height of a tile.
func (g *Grid) SetHeight(x, y int, height float64) error {
	if !g.IsValidPosition(x, y) {
		return fmt.Errorf("%w: (%d,%d) on %dx%d map", ErrOutOfBounds, x, y, g.W, g.H)
	}
	g.heights[g.index(x, y)] = height
	return nil
}

// Rows renders the grid back into digit rows, the inverse of FromRows
// for integral heights.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	buf := make([]byte, g.W)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			h := int(g.heights[g.index(x, y)])
			if h < 0 {
				h = 0
			}
			if h > MaxHeight {
				h = MaxHeight
			}
			buf[x] = byte('0' + h)
		}
		rows[y] = string(buf)
	}
	return rows
}
