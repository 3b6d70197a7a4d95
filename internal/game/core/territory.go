package core

import (
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/hexgrid"
)

const (
	// Sea marks a cell that belongs to no territory.
	Sea = 0

	// MaxTerritories bounds valid territory ids to [1, MaxTerritories).
	MaxTerritories = 32

	// MaxPlayers is the fixed player slot capacity.
	MaxPlayers = 8
)

// BorderEdge is one step of a territory's boundary trace: the cell and
// the edge direction facing out of the territory. The trace exists for
// the renderer; the engine never reads it after generation.
type BorderEdge struct {
	Cell int
	Dir  hexgrid.Direction
}

// Territory is a contiguous group of hex cells. A CellCount of 0 means
// the id slot is unused and every algorithm must skip it.
type Territory struct {
	ID        int
	CellCount int
	Owner     int
	Dice      int

	// Bounding box and interior anchor cell, used for dice display.
	MinX, MinY, MaxX, MaxY int
	Anchor                 int

	Border []BorderEdge
}

// Exists reports whether the territory slot is in use.
func (t *Territory) Exists() bool { return t.CellCount > 0 }

// Map is the generated board: the cell grid, the territory table and
// the territory adjacency relation. Geometry and adjacency are fixed
// after generation; only Owner and Dice on territories mutate.
type Map struct {
	Grid *hexgrid.Grid

	// CellOwner holds the territory id per cell, Sea for none.
	CellOwner []int

	// Territories is indexed by id; index 0 stays unused so that id 0
	// can mean Sea everywhere.
	Territories []Territory

	// Adjacency is the canonical representation: territory id to the
	// set of bordering territory ids. Symmetric by construction.
	Adjacency map[int]map[int]struct{}
}

// NewMap allocates an empty map over the given grid.
func NewMap(grid *hexgrid.Grid) *Map {
	m := &Map{
		Grid:        grid,
		CellOwner:   make([]int, grid.Cells()),
		Territories: make([]Territory, MaxTerritories),
		Adjacency:   make(map[int]map[int]struct{}),
	}
	for i := range m.Territories {
		m.Territories[i].ID = i
	}
	return m
}

// Territory returns the territory for an id, or nil when the id is out
// of range or the slot is unused.
func (m *Map) Territory(id int) *Territory {
	if id <= 0 || id >= len(m.Territories) {
		return nil
	}
	t := &m.Territories[id]
	if !t.Exists() {
		return nil
	}
	return t
}

// ActiveIDs returns the ids of all existing territories in ascending order.
func (m *Map) ActiveIDs() []int {
	ids := make([]int, 0, len(m.Territories))
	for i := 1; i < len(m.Territories); i++ {
		if m.Territories[i].Exists() {
			ids = append(ids, i)
		}
	}
	return ids
}

// AddAdjacency records that territories a and b share a border. The
// relation is stored symmetrically.
func (m *Map) AddAdjacency(a, b int) {
	if a == b || a <= 0 || b <= 0 {
		return
	}
	if m.Adjacency[a] == nil {
		m.Adjacency[a] = make(map[int]struct{})
	}
	if m.Adjacency[b] == nil {
		m.Adjacency[b] = make(map[int]struct{})
	}
	m.Adjacency[a][b] = struct{}{}
	m.Adjacency[b][a] = struct{}{}
}

// Adjacent reports whether two territories share a border.
func (m *Map) Adjacent(a, b int) bool {
	_, ok := m.Adjacency[a][b]
	return ok
}

// Neighbors returns the territory ids bordering id, skipping slots that
// no longer exist.
func (m *Map) Neighbors(id int) []int {
	set := m.Adjacency[id]
	out := make([]int, 0, len(set))
	for n := range set {
		if m.Territory(n) != nil {
			out = append(out, n)
		}
	}
	return out
}
