package mapgen

import (
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivanlay/dicewarsjs-sub001/internal/common"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/hexgrid"
)

// MapConfig holds configuration for map generation.
type MapConfig struct {
	Width               int
	Height              int
	MaxTerritories      int // territory ids stay in [1, MaxTerritories)
	PlayerCount         int
	TargetTerritorySize int // percolation growth target, minimum 3
	CullThreshold       int // territories with <= this many cells are discarded
	AvgDicePerTerritory int
	MaxTerritoryDice    int
}

// DefaultMapConfig returns the classic board parameters.
func DefaultMapConfig(w, h, players int) MapConfig {
	return MapConfig{
		Width:               w,
		Height:              h,
		MaxTerritories:      core.MaxTerritories,
		PlayerCount:         players,
		TargetTerritorySize: 8,
		CullThreshold:       5,
		AvgDicePerTerritory: 3,
		MaxTerritoryDice:    8,
	}
}

// Generator grows territories over a hex grid with deterministic RNG.
type Generator struct {
	config MapConfig
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewGenerator creates a new map generator.
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	if config.MaxTerritories <= 0 || config.MaxTerritories > core.MaxTerritories {
		config.MaxTerritories = core.MaxTerritories
	}
	return &Generator{
		config: config,
		rng:    rng,
		logger: log.With().Str("component", "mapgen").Logger(),
	}
}

// GenerateMap carves territories out of the lattice and derives the
// adjacency relation plus per-territory render metadata. Running out of
// room before MaxTerritories is reached is tolerated; the map simply
// holds fewer territories.
func (g *Generator) GenerateMap() *core.Map {
	grid := hexgrid.NewGrid(g.config.Width, g.config.Height)
	m := core.NewMap(grid)

	g.growTerritories(m)
	g.fillHoles(m)
	g.cullSmallTerritories(m)
	g.finalizeTerritories(m)
	g.buildAdjacency(m)

	g.logger.Debug().
		Int("width", g.config.Width).
		Int("height", g.config.Height).
		Int("territories", len(m.ActiveIDs())).
		Msg("Map generated")

	return m
}

// growTerritories runs the outer percolation loop: seed a territory on
// the growth-eligible cell with the lowest random priority, grow it,
// repeat until the lattice or the id space is exhausted.
func (g *Generator) growTerritories(m *core.Map) {
	cells := m.Grid.Cells()

	// The shuffled priority array is the only randomness in growth;
	// every "pick among candidates" below resolves to the candidate
	// with the lowest priority value.
	priority := g.rng.Perm(cells)

	eligible := make([]bool, cells)
	eligible[g.rng.Intn(cells)] = true

	for id := 1; id < g.config.MaxTerritories; id++ {
		seed := lowestPriority(priority, func(i int) bool {
			return eligible[i] && m.CellOwner[i] == core.Sea
		})
		if seed < 0 {
			break
		}
		if g.percolate(m, eligible, priority, seed, id) == 0 {
			break
		}
	}
}

// percolate grows one territory from seed: greedy frontier expansion to
// the target size, then a smoothing pass that claims every remaining
// frontier cell so no single-cell slivers survive along the boundary.
// Returns the number of cells claimed.
func (g *Generator) percolate(m *core.Map, eligible []bool, priority []int, seed, id int) int {
	target := common.Max(g.config.TargetTerritorySize, 3)
	frontier := make([]bool, m.Grid.Cells())

	claimed := 0
	cur := seed
	for {
		m.CellOwner[cur] = id
		claimed++
		for dir := 0; dir < hexgrid.Dirs; dir++ {
			if n := m.Grid.Neighbor(cur, hexgrid.Direction(dir)); n != hexgrid.None {
				frontier[n] = true
			}
		}
		if claimed >= target {
			break
		}
		next := lowestPriority(priority, func(i int) bool {
			return frontier[i] && m.CellOwner[i] == core.Sea
		})
		if next < 0 {
			break
		}
		cur = next
	}

	// Smoothing: absorb all remaining unclaimed frontier cells and mark
	// the cells just beyond them as seeds for later territories.
	for i, f := range frontier {
		if !f || m.CellOwner[i] != core.Sea {
			continue
		}
		m.CellOwner[i] = id
		claimed++
		for dir := 0; dir < hexgrid.Dirs; dir++ {
			n := m.Grid.Neighbor(i, hexgrid.Direction(dir))
			if n != hexgrid.None && m.CellOwner[n] == core.Sea {
				eligible[n] = true
			}
		}
	}

	return claimed
}

// fillHoles absorbs sea cells that are fully surrounded by claimed
// cells into the majority neighboring territory.
func (g *Generator) fillHoles(m *core.Map) {
	for i := range m.CellOwner {
		if m.CellOwner[i] != core.Sea {
			continue
		}
		votes := make(map[int]int)
		surrounded := true
		neighbors := 0
		for dir := 0; dir < hexgrid.Dirs; dir++ {
			n := m.Grid.Neighbor(i, hexgrid.Direction(dir))
			if n == hexgrid.None {
				continue
			}
			neighbors++
			if m.CellOwner[n] == core.Sea {
				surrounded = false
				break
			}
			votes[m.CellOwner[n]]++
		}
		if !surrounded || neighbors == 0 {
			continue
		}
		best, bestVotes := core.Sea, 0
		for id, v := range votes {
			if v > bestVotes || (v == bestVotes && id < best) {
				best, bestVotes = id, v
			}
		}
		m.CellOwner[i] = best
	}
}

// cullSmallTerritories discards territories at or below the cull
// threshold. Their cells revert to sea and stay sea for the lifetime of
// the map; they are deliberately not re-absorbed by neighbors, keeping
// the quality floor from quietly inflating adjacent territories.
func (g *Generator) cullSmallTerritories(m *core.Map) {
	counts := make([]int, len(m.Territories))
	for _, id := range m.CellOwner {
		if id != core.Sea {
			counts[id]++
		}
	}
	culled := 0
	for id := 1; id < len(counts); id++ {
		if counts[id] == 0 || counts[id] > g.config.CullThreshold {
			continue
		}
		for i := range m.CellOwner {
			if m.CellOwner[i] == id {
				m.CellOwner[i] = core.Sea
			}
		}
		counts[id] = 0
		culled++
	}
	if culled > 0 {
		g.logger.Debug().Int("culled", culled).Msg("Discarded undersized territories")
	}
}

// finalizeTerritories fills in cell counts, bounding boxes, anchor
// cells and boundary traces for every surviving territory.
func (g *Generator) finalizeTerritories(m *core.Map) {
	for i := range m.Territories {
		t := &m.Territories[i]
		t.CellCount = 0
		t.Owner = 0
		t.Dice = 0
		t.Border = nil
		t.MinX, t.MinY = m.Grid.W, m.Grid.H
		t.MaxX, t.MaxY = 0, 0
	}

	for idx, id := range m.CellOwner {
		if id == core.Sea {
			continue
		}
		t := &m.Territories[id]
		t.CellCount++
		x, y := m.Grid.XY(idx)
		t.MinX = common.Min(t.MinX, x)
		t.MinY = common.Min(t.MinY, y)
		t.MaxX = common.Max(t.MaxX, x)
		t.MaxY = common.Max(t.MaxY, y)
	}

	for i := range m.Territories {
		t := &m.Territories[i]
		if !t.Exists() {
			continue
		}
		t.Anchor = g.findAnchor(m, t)
		t.Border = g.traceBorder(m, t.ID)
	}
}

// findAnchor picks the territory cell closest to the bounding box
// center, where the dice count is drawn.
func (g *Generator) findAnchor(m *core.Map, t *core.Territory) int {
	cx := (t.MinX + t.MaxX) / 2
	cy := (t.MinY + t.MaxY) / 2

	best, bestDist := -1, 1<<31
	for idx, id := range m.CellOwner {
		if id != t.ID {
			continue
		}
		x, y := m.Grid.XY(idx)
		d := common.Abs(x-cx) + common.Abs(y-cy)
		if d < bestDist {
			best, bestDist = idx, d
		}
	}
	return best
}

// traceBorder walks the territory's outer boundary clockwise, recording
// (cell, outward edge) pairs. Renderer-only data, computed once here.
func (g *Generator) traceBorder(m *core.Map, id int) []core.BorderEdge {
	inside := func(idx int) bool {
		return idx != hexgrid.None && m.CellOwner[idx] == id
	}

	// Start on the first cell in scan order that has an outside edge.
	startCell, startDir := -1, hexgrid.Direction(0)
	for idx, owner := range m.CellOwner {
		if owner != id {
			continue
		}
		for dir := 0; dir < hexgrid.Dirs; dir++ {
			if !inside(m.Grid.Neighbor(idx, hexgrid.Direction(dir))) {
				startCell, startDir = idx, hexgrid.Direction(dir)
				break
			}
		}
		if startCell >= 0 {
			break
		}
	}
	if startCell < 0 {
		return nil
	}

	var trace []core.BorderEdge
	c, d := startCell, startDir
	limit := m.Grid.Cells() * hexgrid.Dirs
	for i := 0; i < limit; i++ {
		trace = append(trace, core.BorderEdge{Cell: c, Dir: d})

		// Advance along the boundary: the edge after (c,d) is either
		// the next edge of the same cell, or continues on the neighbor
		// reached through that edge. On a hex lattice stepping d+1 then
		// d-1 lands on the cell d points at, which is what makes the
		// neighbor's d-1 edge face the same outside cell.
		next := (d + 1) % hexgrid.Dirs
		n := m.Grid.Neighbor(c, next)
		if inside(n) {
			c, d = n, (next+4)%hexgrid.Dirs
		} else {
			d = next
		}
		if c == startCell && d == startDir {
			break
		}
	}
	return trace
}

// buildAdjacency derives the symmetric territory adjacency relation
// from shared cell borders. Computed once; territories never move.
func (g *Generator) buildAdjacency(m *core.Map) {
	m.Adjacency = make(map[int]map[int]struct{})
	for idx, id := range m.CellOwner {
		if id == core.Sea {
			continue
		}
		for dir := 0; dir < hexgrid.Dirs; dir++ {
			n := m.Grid.Neighbor(idx, hexgrid.Direction(dir))
			if n == hexgrid.None {
				continue
			}
			other := m.CellOwner[n]
			if other != core.Sea && other != id {
				m.AddAdjacency(id, other)
			}
		}
	}
}

// ReconstructMap rebuilds a map from a persisted cell-owner grid,
// rederiving territory metadata and adjacency. The grid pins every
// territory's exact cell set, so a replayed game runs on the identical
// board it was recorded on.
func ReconstructMap(w, h int, cellOwner []int) *core.Map {
	grid := hexgrid.NewGrid(w, h)
	m := core.NewMap(grid)
	copy(m.CellOwner, cellOwner)

	g := &Generator{
		config: DefaultMapConfig(w, h, 0),
		logger: log.With().Str("component", "mapgen").Logger(),
	}
	g.finalizeTerritories(m)
	g.buildAdjacency(m)
	return m
}

// AssignPlayers hands territories out round-robin in random order and
// seeds the starting dice: one die everywhere, then a shared pool of
// territoryCount*(avgDice-1) extra dice dealt one at a time, round-robin
// by player, onto a random owned territory below the cap.
func (g *Generator) AssignPlayers(m *core.Map) {
	ids := m.ActiveIDs()
	if len(ids) == 0 || g.config.PlayerCount <= 0 {
		return
	}

	g.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	for i, id := range ids {
		t := m.Territory(id)
		t.Owner = i % g.config.PlayerCount
		t.Dice = 1
	}

	pool := len(ids) * (g.config.AvgDicePerTerritory - 1)
	player := 0
	skipped := 0
	for pool > 0 {
		var eligible []int
		for _, id := range ids {
			t := m.Territory(id)
			if t.Owner == player && t.Dice < g.config.MaxTerritoryDice {
				eligible = append(eligible, id)
			}
		}
		if len(eligible) == 0 {
			skipped++
			if skipped >= g.config.PlayerCount {
				// Nobody can take another die.
				break
			}
			player = (player + 1) % g.config.PlayerCount
			continue
		}
		skipped = 0
		m.Territory(eligible[g.rng.Intn(len(eligible))]).Dice++
		pool--
		player = (player + 1) % g.config.PlayerCount
	}
}

// lowestPriority returns the index with the smallest priority value
// among those accepted by ok, or -1 when none qualifies.
func lowestPriority(priority []int, ok func(int) bool) int {
	best, bestPri := -1, len(priority)
	for i, p := range priority {
		if p < bestPri && ok(i) {
			best, bestPri = i, p
		}
	}
	return best
}
