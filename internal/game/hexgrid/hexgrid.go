package hexgrid

import "fmt"

// None is the sentinel returned for a neighbor that falls off the grid.
const None = -1

// Dirs is the number of hex directions.
const Dirs = 6

// Direction indexes the six neighbors of a hex cell, clockwise from the
// upper right.
type Direction int

const (
	UpperRight Direction = iota
	Right
	LowerRight
	LowerLeft
	Left
	UpperLeft
)

func (d Direction) String() string {
	switch d {
	case UpperRight:
		return "upper-right"
	case Right:
		return "right"
	case LowerRight:
		return "lower-right"
	case LowerLeft:
		return "lower-left"
	case Left:
		return "left"
	case UpperLeft:
		return "upper-left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Grid is a rectangular lattice of hex cells in "brick" offset layout:
// odd rows are shifted half a cell to the right, so the x component of
// a diagonal step depends on row parity. Cells are indexed row-major.
type Grid struct {
	W, H int

	// neighbors[idx*Dirs+dir] is precomputed at construction so lookups
	// during growth and battle never redo the offset math.
	neighbors []int
}

// NewGrid builds a grid and its neighbor table for the given dimensions.
func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, neighbors: make([]int, w*h*Dirs)}
	for idx := 0; idx < w*h; idx++ {
		for dir := 0; dir < Dirs; dir++ {
			g.neighbors[idx*Dirs+dir] = g.computeNeighbor(idx, Direction(dir))
		}
	}
	return g
}

// Cells returns the total cell count.
func (g *Grid) Cells() int { return g.W * g.H }

// Idx converts x,y to a cell index.
func (g *Grid) Idx(x, y int) int { return y*g.W + x }

// XY converts a cell index back to coordinates.
func (g *Grid) XY(idx int) (int, int) { return idx % g.W, idx / g.W }

// InBounds checks whether coordinates lie on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Neighbor returns the cell adjacent to idx in the given direction, or
// None when the step leaves the grid.
func (g *Grid) Neighbor(idx int, dir Direction) int {
	return g.neighbors[idx*Dirs+int(dir)]
}

// computeNeighbor does the raw offset geometry; only NewGrid calls it.
func (g *Grid) computeNeighbor(idx int, dir Direction) int {
	x, y := g.XY(idx)
	// Odd rows sit half a cell to the right, so diagonal steps on an
	// odd row lean right and on an even row lean left.
	odd := y % 2

	var dx, dy int
	switch dir {
	case UpperRight:
		dx, dy = odd, -1
	case Right:
		dx, dy = 1, 0
	case LowerRight:
		dx, dy = odd, 1
	case LowerLeft:
		dx, dy = odd-1, 1
	case Left:
		dx, dy = -1, 0
	case UpperLeft:
		dx, dy = odd-1, -1
	default:
		return None
	}

	nx, ny := x+dx, y+dy
	if !g.InBounds(nx, ny) {
		return None
	}
	return g.Idx(nx, ny)
}
