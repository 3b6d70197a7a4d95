package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoSuchTerritory  = errors.New("territory does not exist")
	ErrSelfAttack       = errors.New("source and target are the same territory")
	ErrNotAdjacent      = errors.New("territories are not adjacent")
	ErrNotOwned         = errors.New("territory not owned by player")
	ErrOwnTarget        = errors.New("target territory already owned by attacker")
	ErrInsufficientDice = errors.New("attacking territory needs more than one die")
	ErrGameOver         = errors.New("game is over")
	ErrInvalidPlayer    = errors.New("invalid player ID")
)

// WrapTurnError annotates an error with the turn and operation it occurred in.
func WrapTurnError(turn int, op string, err error) error {
	return fmt.Errorf("turn %d: %s: %w", turn, op, err)
}
