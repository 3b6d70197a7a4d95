package core

// AttackAction is a request to resolve a dice battle between two
// adjacent territories.
type AttackAction struct {
	PlayerID int
	From     int
	To       int
}

// Validate checks the attack preconditions against the map. A non-nil
// error is a normal outcome that the resolver reports as a structured
// failure, never a reason to abort the turn loop.
func (a *AttackAction) Validate(m *Map) error {
	from := m.Territory(a.From)
	if from == nil {
		return ErrNoSuchTerritory
	}
	to := m.Territory(a.To)
	if to == nil {
		return ErrNoSuchTerritory
	}
	if a.From == a.To {
		return ErrSelfAttack
	}
	if from.Owner != a.PlayerID {
		return ErrNotOwned
	}
	if to.Owner == a.PlayerID {
		return ErrOwnTarget
	}
	if !m.Adjacent(a.From, a.To) {
		return ErrNotAdjacent
	}
	if from.Dice <= 1 {
		return ErrInsufficientDice
	}
	return nil
}
