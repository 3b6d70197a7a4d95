package ai

// DefaultStrategy is the reference attacker. It only considers attacks
// where the attacker brings at least as many dice as the defender,
// narrows to the dominant player's battles when someone controls over
// 40% of the dice in play, hesitates on even-dice attacks, and picks
// uniformly among what survives.
type DefaultStrategy struct{}

// NewDefaultStrategy creates the reference strategy.
func NewDefaultStrategy() *DefaultStrategy { return &DefaultStrategy{} }

// Name implements Strategy.
func (s *DefaultStrategy) Name() string { return DefaultStrategyName }

// Decide implements Strategy.
func (s *DefaultStrategy) Decide(st *State) (Move, bool) {
	me := st.CurrentPlayer

	totalDice := 0
	for _, p := range st.Players {
		totalDice += p.DiceTotal
	}

	// Dominant-player filter: when a single player holds over 40% of
	// all dice, everyone piles onto (or defends against) them.
	dominant := -1
	for _, p := range st.Players {
		if p.DiceTotal*5 > totalDice*2 {
			dominant = p.ID
			break
		}
	}

	var candidates []Move
	for _, mv := range LegalAttacks(st.Map, me) {
		src := st.Map.Territory(mv.From)
		dst := st.Map.Territory(mv.To)

		if src.Dice < dst.Dice {
			continue
		}
		if dominant >= 0 && me != dominant && dst.Owner != dominant {
			continue
		}
		if src.Dice == dst.Dice {
			// Even battles favor the defender, so usually think twice.
			// The dice leader on either side attacks regardless.
			leaderInvolved := st.Players[me].DiceRank == 0 ||
				st.Players[dst.Owner].DiceRank == 0
			if !leaderInvolved && st.Rng.Intn(10) == 0 {
				continue
			}
		}
		candidates = append(candidates, mv)
	}

	if len(candidates) == 0 {
		return Move{}, false
	}
	return candidates[st.Rng.Intn(len(candidates))], true
}
