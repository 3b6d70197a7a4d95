package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/analysis"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/testutil"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

// newState builds a strategy view with player stats derived from the map.
func newState(m *core.Map, playerCount, current int) *State {
	players := make([]core.Player, playerCount)
	for i := range players {
		players[i].ID = i
	}
	for _, id := range m.ActiveIDs() {
		t := m.Territory(id)
		players[t.Owner].TerritoryCount++
		players[t.Owner].DiceTotal += t.Dice
	}
	// Rank 0 = most dice.
	for i := range players {
		rank := 0
		for j := range players {
			if players[j].DiceTotal > players[i].DiceTotal {
				rank++
			}
		}
		players[i].DiceRank = rank
	}
	return &State{
		Map:           m,
		Players:       players,
		Analyzer:      analysis.NewAnalyzer(m),
		Rng:           newTestRNG(),
		CurrentPlayer: current,
	}
}

func TestLegalAttacks(t *testing.T) {
	m := testutil.BuildMap(
		[][2]int{{1, 2}, {1, 3}, {2, 3}},
		map[int]int{1: 0, 2: 1, 3: 0},
		map[int]int{1: 4, 2: 2, 3: 1},
	)

	moves := LegalAttacks(m, 0)
	// Territory 1 (4 dice) can hit 2; territory 3 has a lone die and
	// cannot attack; territory 2 is not player 0's.
	assert.Equal(t, []Move{{From: 1, To: 2}}, moves)
}

func TestRegistry_FallbackOnUnknownName(t *testing.T) {
	r := NewRegistry()

	s := r.Get("no-such-strategy")
	require.NotNil(t, s, "lookup must never fail")
	assert.Equal(t, DefaultStrategyName, s.Name())

	assert.Contains(t, r.Names(), DefaultStrategyName)
}

func TestDefaultStrategy_NoCandidatesEndsTurn(t *testing.T) {
	// Player 0's only armed territory is outnumbered everywhere.
	m := testutil.BuildMap(
		[][2]int{{1, 2}},
		map[int]int{1: 0, 2: 1},
		map[int]int{1: 3, 2: 8},
	)
	st := newState(m, 2, 0)

	_, ok := NewDefaultStrategy().Decide(st)
	assert.False(t, ok)
}

func TestDefaultStrategy_PicksLegalAttack(t *testing.T) {
	m := testutil.BuildMap(
		[][2]int{{1, 2}, {2, 3}},
		map[int]int{1: 0, 2: 1, 3: 0},
		map[int]int{1: 6, 2: 2, 3: 1},
	)
	st := newState(m, 2, 0)

	move, ok := NewDefaultStrategy().Decide(st)
	require.True(t, ok)
	assert.Equal(t, Move{From: 1, To: 2}, move)
}

func TestDefaultStrategy_RequiresAtLeastEqualDice(t *testing.T) {
	m := testutil.BuildMap(
		[][2]int{{1, 2}, {1, 3}},
		map[int]int{1: 0, 2: 1, 3: 1},
		map[int]int{1: 3, 2: 5, 3: 2},
	)
	st := newState(m, 2, 0)

	move, ok := NewDefaultStrategy().Decide(st)
	require.True(t, ok)
	assert.Equal(t, Move{From: 1, To: 3}, move, "outnumbered attacks are never proposed")
}

func TestDefaultStrategy_DominantPlayerFilter(t *testing.T) {
	// Player 2 holds well over 40% of all dice. Player 0 can hit the
	// weak player 1 or the dominant player 2; only the latter survives
	// the filter.
	m := testutil.BuildMap(
		[][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}},
		map[int]int{1: 0, 2: 1, 3: 2, 4: 2},
		map[int]int{1: 6, 2: 2, 3: 6, 4: 8},
	)
	st := newState(m, 3, 0)

	for i := 0; i < 20; i++ {
		move, ok := NewDefaultStrategy().Decide(st)
		require.True(t, ok)
		assert.Equal(t, 2, m.Territory(move.To).Owner,
			"with a dominant player in play, only their battles matter")
	}
}

func TestDefaultStrategy_DoesNotMutateState(t *testing.T) {
	m := testutil.BuildMap(
		[][2]int{{1, 2}},
		map[int]int{1: 0, 2: 1},
		map[int]int{1: 6, 2: 2},
	)
	st := newState(m, 2, 0)

	before := map[int][2]int{}
	for _, id := range m.ActiveIDs() {
		tr := m.Territory(id)
		before[id] = [2]int{tr.Owner, tr.Dice}
	}

	_, _ = NewDefaultStrategy().Decide(st)

	for id, want := range before {
		tr := m.Territory(id)
		assert.Equal(t, want[0], tr.Owner)
		assert.Equal(t, want[1], tr.Dice)
	}
}
