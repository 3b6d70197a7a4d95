package game

import (
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// GameState is the single aggregate every component operates on. It is
// owned by the Engine and handed to collaborators by reference;
// components never retain hidden copies, so every mutation is
// auditable through the engine's entry points.
type GameState struct {
	GameID string

	Map     *core.Map
	Players []core.Player // fixed MaxPlayers slots; unused slots stay inert

	PlayerCount int
	Turn        int

	// TurnOrder is a shuffled permutation of the active player ids;
	// OrderIdx points at the player whose turn it is.
	TurnOrder []int
	OrderIdx  int

	History  *core.History
	Snapshot *core.Snapshot
}

// CurrentPlayer returns the id of the player whose turn it is, or -1
// before StartGame.
func (gs *GameState) CurrentPlayer() int {
	if len(gs.TurnOrder) == 0 {
		return -1
	}
	return gs.TurnOrder[gs.OrderIdx]
}

// AlivePlayers returns the ids of players still owning territory.
func (gs *GameState) AlivePlayers() []int {
	var alive []int
	for i := 0; i < gs.PlayerCount; i++ {
		if gs.Players[i].Alive() {
			alive = append(alive, i)
		}
	}
	return alive
}
