package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/hexgrid"
)

// newTestRNG provides a random number generator with a fixed seed for
// deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultMapConfig(t *testing.T) {
	config := DefaultMapConfig(28, 32, 4)

	assert.Equal(t, 28, config.Width)
	assert.Equal(t, 32, config.Height)
	assert.Equal(t, 4, config.PlayerCount)
	assert.Equal(t, core.MaxTerritories, config.MaxTerritories)
	assert.Equal(t, 8, config.TargetTerritorySize)
	assert.Equal(t, 5, config.CullThreshold)
	assert.Equal(t, 3, config.AvgDicePerTerritory)
	assert.Equal(t, 8, config.MaxTerritoryDice)
}

func TestGenerateMap_ClassicBoard(t *testing.T) {
	config := DefaultMapConfig(28, 32, 4)
	g := NewGenerator(config, newTestRNG())
	m := g.GenerateMap()

	ids := m.ActiveIDs()
	require.NotEmpty(t, ids, "generation should produce at least one territory")
	assert.LessOrEqual(t, len(ids), config.MaxTerritories)

	// Coverage: every non-sea cell belongs to exactly one existing
	// territory with more than CullThreshold cells.
	counted := make(map[int]int)
	for _, id := range m.CellOwner {
		if id == core.Sea {
			continue
		}
		require.NotNil(t, m.Territory(id), "cell owned by nonexistent territory %d", id)
		counted[id]++
	}
	for _, id := range ids {
		assert.Equal(t, counted[id], m.Territory(id).CellCount, "cell count mismatch for %d", id)
		assert.Greater(t, m.Territory(id).CellCount, config.CullThreshold,
			"territory %d survived below the cull threshold", id)
	}
}

func TestGenerateMap_TerritoriesAreConnected(t *testing.T) {
	config := DefaultMapConfig(28, 32, 4)
	g := NewGenerator(config, newTestRNG())
	m := g.GenerateMap()

	for _, id := range m.ActiveIDs() {
		var cells []int
		for idx, owner := range m.CellOwner {
			if owner == id {
				cells = append(cells, idx)
			}
		}
		require.NotEmpty(t, cells)

		// Flood fill from the first cell must reach all of them.
		seen := map[int]bool{cells[0]: true}
		queue := []int{cells[0]}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for dir := 0; dir < hexgrid.Dirs; dir++ {
				n := m.Grid.Neighbor(cur, hexgrid.Direction(dir))
				if n == hexgrid.None || seen[n] || m.CellOwner[n] != id {
					continue
				}
				seen[n] = true
				queue = append(queue, n)
			}
		}
		assert.Len(t, seen, len(cells), "territory %d is not connected", id)
	}
}

func TestGenerateMap_AdjacencySymmetry(t *testing.T) {
	g := NewGenerator(DefaultMapConfig(20, 20, 2), newTestRNG())
	m := g.GenerateMap()

	ids := m.ActiveIDs()
	for _, a := range ids {
		for _, b := range ids {
			assert.Equal(t, m.Adjacent(a, b), m.Adjacent(b, a),
				"adjacency not symmetric for (%d,%d)", a, b)
		}
		assert.False(t, m.Adjacent(a, a), "territory %d adjacent to itself", a)
	}

	// Adjacency must reflect an actual shared cell border.
	for _, a := range ids {
		for _, b := range m.Neighbors(a) {
			found := false
			for idx, owner := range m.CellOwner {
				if owner != a {
					continue
				}
				for dir := 0; dir < hexgrid.Dirs; dir++ {
					n := m.Grid.Neighbor(idx, hexgrid.Direction(dir))
					if n != hexgrid.None && m.CellOwner[n] == b {
						found = true
					}
				}
			}
			assert.True(t, found, "territories %d and %d marked adjacent without shared border", a, b)
		}
	}
}

func TestGenerateMap_Metadata(t *testing.T) {
	g := NewGenerator(DefaultMapConfig(20, 20, 2), newTestRNG())
	m := g.GenerateMap()

	for _, id := range m.ActiveIDs() {
		terr := m.Territory(id)

		// Anchor lies inside the territory and inside the bounding box.
		require.GreaterOrEqual(t, terr.Anchor, 0, "territory %d has no anchor", id)
		assert.Equal(t, id, m.CellOwner[terr.Anchor])
		x, y := m.Grid.XY(terr.Anchor)
		assert.GreaterOrEqual(t, x, terr.MinX)
		assert.LessOrEqual(t, x, terr.MaxX)
		assert.GreaterOrEqual(t, y, terr.MinY)
		assert.LessOrEqual(t, y, terr.MaxY)

		// Border trace: every recorded edge faces out of the territory.
		require.NotEmpty(t, terr.Border, "territory %d has no border trace", id)
		for _, e := range terr.Border {
			assert.Equal(t, id, m.CellOwner[e.Cell])
			n := m.Grid.Neighbor(e.Cell, e.Dir)
			if n != hexgrid.None {
				assert.NotEqual(t, id, m.CellOwner[n],
					"border edge of %d does not face outward", id)
			}
		}
	}
}

func TestAssignPlayers(t *testing.T) {
	config := DefaultMapConfig(28, 32, 4)
	g := NewGenerator(config, newTestRNG())
	m := g.GenerateMap()
	g.AssignPlayers(m)

	ids := m.ActiveIDs()
	perPlayer := make(map[int]int)
	total := 0
	for _, id := range ids {
		terr := m.Territory(id)
		assert.GreaterOrEqual(t, terr.Owner, 0)
		assert.Less(t, terr.Owner, config.PlayerCount)
		assert.GreaterOrEqual(t, terr.Dice, 1, "territory %d has no dice", id)
		assert.LessOrEqual(t, terr.Dice, config.MaxTerritoryDice)
		perPlayer[terr.Owner]++
		total += terr.Dice
	}

	// Round-robin assignment keeps territory counts within one.
	minOwned, maxOwned := len(ids), 0
	for p := 0; p < config.PlayerCount; p++ {
		if perPlayer[p] < minOwned {
			minOwned = perPlayer[p]
		}
		if perPlayer[p] > maxOwned {
			maxOwned = perPlayer[p]
		}
	}
	assert.LessOrEqual(t, maxOwned-minOwned, 1, "round-robin assignment is uneven")

	// All dice in play: one per territory plus the distributed pool.
	assert.Equal(t, len(ids)*config.AvgDicePerTerritory, total)
}

func TestAssignPlayers_PoolHaltsAtCap(t *testing.T) {
	config := DefaultMapConfig(20, 20, 2)
	config.AvgDicePerTerritory = 100 // far more than the caps can hold
	g := NewGenerator(config, newTestRNG())
	m := g.GenerateMap()
	g.AssignPlayers(m)

	for _, id := range m.ActiveIDs() {
		assert.Equal(t, config.MaxTerritoryDice, m.Territory(id).Dice,
			"territory %d should be saturated", id)
	}
}

func TestGenerateMap_SmallLatticeDegradesGracefully(t *testing.T) {
	// A lattice too small for MaxTerritories territories just yields fewer.
	g := NewGenerator(DefaultMapConfig(6, 6, 2), newTestRNG())
	m := g.GenerateMap()
	assert.Less(t, len(m.ActiveIDs()), core.MaxTerritories)
}

func TestGenerateMap_Deterministic(t *testing.T) {
	config := DefaultMapConfig(20, 20, 3)
	m1 := NewGenerator(config, rand.New(rand.NewSource(777))).GenerateMap()
	m2 := NewGenerator(config, rand.New(rand.NewSource(777))).GenerateMap()

	assert.Equal(t, m1.CellOwner, m2.CellOwner, "same seed must produce the same map")
}

func TestReconstructMap_RederivesGeometry(t *testing.T) {
	config := DefaultMapConfig(20, 20, 3)
	g := NewGenerator(config, newTestRNG())
	original := g.GenerateMap()

	rebuilt := ReconstructMap(config.Width, config.Height, original.CellOwner)

	assert.Equal(t, original.CellOwner, rebuilt.CellOwner)
	assert.Equal(t, original.ActiveIDs(), rebuilt.ActiveIDs())
	assert.Equal(t, original.Adjacency, rebuilt.Adjacency)
	for _, id := range original.ActiveIDs() {
		want, got := original.Territory(id), rebuilt.Territory(id)
		assert.Equal(t, want.CellCount, got.CellCount, "territory %d", id)
		assert.Equal(t, want.Anchor, got.Anchor, "territory %d", id)
		assert.Equal(t, want.Border, got.Border, "territory %d", id)
	}
}
