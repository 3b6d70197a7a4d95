package core

// Player stats are recomputed from the map after every mutation; only
// Stock carries state of its own. A player whose TerritoryCount is 0 is
// eliminated but keeps their slot.
type Player struct {
	ID             int
	TerritoryCount int
	LargestGroup   int // size of the biggest connected territory group
	DiceTotal      int
	DiceRank       int // 0 = most dice in play
	Stock          int // reinforcement dice pending distribution
}

// Alive reports whether the player still owns territory.
func (p *Player) Alive() bool { return p.TerritoryCount > 0 }
