// Package squares implements the Quantum Squares territory engine.
//
// Players drop particles on a square grid. A cell that reaches Threshold
// particles collapses: its owner scores a point and the particles spill over
// to the orthogonal neighbours, which may collapse in turn. The package holds
// pure game logic only; timers, AI scheduling and rendering live elsewhere.
package squares

import "strings"

// Fixed rule constants.
const (
	Threshold   = 4  // particles that make a cell collapse
	TargetScore = 10 // points needed to win
	MinSize     = 5
	MaxSize     = 10
)

// PlayerID identifies a participant. The zero value means "no owner".
type PlayerID string

// NoPlayer is the owner of a neutral cell.
const NoPlayer PlayerID = ""

// Cell is a single square on the board.
type Cell struct {
	Count int
	Owner PlayerID
}

// Neutral reports whether the cell is empty and unowned.
func (c Cell) Neutral() bool {
	return c.Owner == NoPlayer
}

// Pos is a row/column coordinate.
type Pos struct {
	Row, Col int
}

// Grid is a size x size matrix of cells stored row-major.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid creates a grid of neutral cells.
func NewGrid(size int) *Grid {
	if size < 1 {
		size = 1
	}
	return &Grid{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

// Size returns the board dimension.
func (g *Grid) Size() int {
	return g.size
}

// InBounds reports whether (row, col) is on the board.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// At returns the cell at (row, col).
// Out-of-bounds coordinates return a neutral cell.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Cell{}
	}
	return g.cells[row*g.size+col]
}

func (g *Grid) set(p Pos, c Cell) {
	g.cells[p.Row*g.size+p.Col] = c
}

// Neighbors returns the in-bounds orthogonal neighbours of p in the fixed
// order up, down, left, right.
func (g *Grid) Neighbors(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	if p.Row > 0 {
		out = append(out, Pos{p.Row - 1, p.Col})
	}
	if p.Row < g.size-1 {
		out = append(out, Pos{p.Row + 1, p.Col})
	}
	if p.Col > 0 {
		out = append(out, Pos{p.Row, p.Col - 1})
	}
	if p.Col < g.size-1 {
		out = append(out, Pos{p.Row, p.Col + 1})
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{size: g.size, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Particles returns the total particle count on the board.
func (g *Grid) Particles() int {
	total := 0
	for _, c := range g.cells {
		total += c.Count
	}
	return total
}

// Rows returns a copy of the board as a slice of rows.
func (g *Grid) Rows() [][]Cell {
	rows := make([][]Cell, g.size)
	for r := 0; r < g.size; r++ {
		rows[r] = make([]Cell, g.size)
		copy(rows[r], g.cells[r*g.size:(r+1)*g.size])
	}
	return rows
}

// String renders the grid as count/owner-initial pairs, one row per line.
// Neutral cells print as "0.". Intended for tests and debug logs.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.size; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := g.At(r, c)
			sb.WriteByte(byte('0' + cell.Count))
			if cell.Neutral() {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(string(cell.Owner)[0])
			}
		}
	}
	return sb.String()
}
