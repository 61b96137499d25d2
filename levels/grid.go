package levels

import (
	"fmt"
	"math"
)

// Cell is one grid square, authored as a single character.
type Cell byte

const (
	CellFloor  Cell = '.'
	CellWall   Cell = '#'
	CellLintel Cell = '='
	CellTomb   Cell = 'T'
)

const (
	// CellSize is the edge length of a cell in meters.
	CellSize = 1.0

	LintelHeight = 1.4
	TombHeight   = 0.6
)

func (c Cell) valid() bool {
	switch c {
	case CellFloor, CellWall, CellLintel, CellTomb:
		return true
	}
	return false
}

// Grid is the level layout. Column maps to X and row to Z.
type Grid struct {
	Width      int
	Depth      int
	WallHeight float64
	cells      []Cell
}

func NewGrid(rows []string, wallHeight float64) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidLevel)
	}
	if wallHeight <= LintelHeight {
		return nil, fmt.Errorf("%w: wall height %.2f must exceed lintel height %.2f", ErrInvalidLevel, wallHeight, LintelHeight)
	}
	width := len(rows[0])
	g := &Grid{Width: width, Depth: len(rows), WallHeight: wallHeight, cells: make([]Cell, 0, width*len(rows))}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidLevel, r, len(row), width)
		}
		for c := 0; c < len(row); c++ {
			cell := Cell(row[c])
			if !cell.valid() {
				return nil, fmt.Errorf("%w: row %d col %d: unknown cell %q", ErrInvalidLevel, r, c, row[c])
			}
			g.cells = append(g.cells, cell)
		}
	}
	return g, nil
}

// At returns the cell at col,row. Cells outside the grid are walls.
func (g *Grid) At(col, row int) Cell {
	if g == nil || col < 0 || row < 0 || col >= g.Width || row >= g.Depth {
		return CellWall
	}
	return g.cells[row*g.Width+col]
}

// CellAt returns the cell containing world position x,z.
func (g *Grid) CellAt(x, z float64) Cell {
	return g.At(int(math.Floor(x/CellSize)), int(math.Floor(z/CellSize)))
}

// Span returns the solid vertical extent of c, if it has one.
func (g *Grid) Span(c Cell) (lo, hi float64, ok bool) {
	switch c {
	case CellWall:
		return 0, g.WallHeight, true
	case CellLintel:
		return LintelHeight, g.WallHeight, true
	case CellTomb:
		return 0, TombHeight, true
	}
	return 0, 0, false
}

// Walkable reports whether a standing body can occupy x,z.
func (g *Grid) Walkable(x, z float64) bool {
	c := g.CellAt(x, z)
	return c == CellFloor || c == CellLintel
}
