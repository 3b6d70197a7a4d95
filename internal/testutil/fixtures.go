package testutil

import (
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/hexgrid"
)

// BuildMap constructs a map with a hand-authored territory graph,
// bypassing generation. Territory ids are the keys of owners; every
// listed territory gets a nominal cell count so it exists. Dice default
// to 1 unless overridden.
func BuildMap(edges [][2]int, owners map[int]int, dice map[int]int) *core.Map {
	m := core.NewMap(hexgrid.NewGrid(4, 4))
	for id, owner := range owners {
		t := &m.Territories[id]
		t.CellCount = 6
		t.Owner = owner
		t.Dice = 1
		if d, ok := dice[id]; ok {
			t.Dice = d
		}
	}
	for _, e := range edges {
		m.AddAdjacency(e[0], e[1])
	}
	return m
}

// TwoTerritoryMap is the smallest battle fixture: territories 1 and 2,
// adjacent, owned by players 0 and 1.
func TwoTerritoryMap(attackerDice, defenderDice int) *core.Map {
	return BuildMap(
		[][2]int{{1, 2}},
		map[int]int{1: 0, 2: 1},
		map[int]int{1: attackerDice, 2: defenderDice},
	)
}
