package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/hexgrid"
)

func buildMap(edges [][2]int, owners map[int]int, dice map[int]int) *Map {
	m := NewMap(hexgrid.NewGrid(4, 4))
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

func TestAttackAction_Validate(t *testing.T) {
	m := buildMap(
		[][2]int{{1, 2}, {2, 3}},
		map[int]int{1: 0, 2: 1, 3: 0, 4: 0},
		map[int]int{1: 4, 2: 2, 3: 1},
	)

	tests := []struct {
		name    string
		action  AttackAction
		wantErr error
	}{
		{"valid", AttackAction{PlayerID: 0, From: 1, To: 2}, nil},
		{"missing source", AttackAction{PlayerID: 0, From: 9, To: 2}, ErrNoSuchTerritory},
		{"missing target", AttackAction{PlayerID: 0, From: 1, To: 9}, ErrNoSuchTerritory},
		{"self attack", AttackAction{PlayerID: 0, From: 1, To: 1}, ErrSelfAttack},
		{"not owner", AttackAction{PlayerID: 1, From: 1, To: 2}, ErrNotOwned},
		{"own target", AttackAction{PlayerID: 0, From: 1, To: 3}, ErrOwnTarget},
		{"not adjacent", AttackAction{PlayerID: 1, From: 2, To: 4}, ErrNotAdjacent},
		{"lone die", AttackAction{PlayerID: 0, From: 3, To: 2}, ErrInsufficientDice},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.action.Validate(m)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestMap_AdjacencyIsSymmetric(t *testing.T) {
	m := buildMap([][2]int{{1, 2}}, map[int]int{1: 0, 2: 1}, nil)

	assert.True(t, m.Adjacent(1, 2))
	assert.True(t, m.Adjacent(2, 1))
	assert.False(t, m.Adjacent(1, 1))
}

func TestMap_TerritorySkipsUnusedSlots(t *testing.T) {
	m := buildMap(nil, map[int]int{1: 0, 3: 1}, nil)

	assert.Nil(t, m.Territory(0), "id 0 is the sea")
	assert.Nil(t, m.Territory(2), "empty slot")
	assert.Nil(t, m.Territory(MaxTerritories), "out of range")
	require.NotNil(t, m.Territory(3))

	assert.Equal(t, []int{1, 3}, m.ActiveIDs())
}

func TestHistory_SnapshotRestoreSkipsMissing(t *testing.T) {
	m := buildMap(nil, map[int]int{1: 0, 2: 1}, map[int]int{1: 5, 2: 3})
	snap := TakeSnapshot(m)

	m.Territories[1].Owner = 1
	m.Territories[1].Dice = 1
	snap.Restore(m)

	assert.Equal(t, 0, m.Territories[1].Owner)
	assert.Equal(t, 5, m.Territories[1].Dice)
	// Slot 3 never existed; restore must leave it untouched.
	assert.False(t, m.Territories[3].Exists())
}
