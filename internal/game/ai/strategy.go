// Package ai holds the non-human decision strategies. Strategies get a
// read-only view of engine state and propose attacks; all mutation goes
// through the engine's battle resolver so history and connectivity stay
// consistent.
package ai

import (
	"math/rand"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/analysis"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// DefaultStrategyName is the registry fallback for unknown names.
const DefaultStrategyName = "default"

// State is the view a strategy reads. Strategies must not mutate the
// map or players through it.
type State struct {
	Map           *core.Map
	Players       []core.Player
	Analyzer      *analysis.Analyzer
	Rng           *rand.Rand
	CurrentPlayer int
}

// Move is a proposed attack from one territory to an adjacent one.
type Move struct {
	From int
	To   int
}

// Strategy proposes the next attack for the current player. ok=false
// means no further attacks; the turn ends.
type Strategy interface {
	Name() string
	Decide(st *State) (move Move, ok bool)
}

// Registry maps strategy names to implementations. Lookup never fails:
// unknown names fall back to the default strategy with a warning, so a
// bad config can degrade a player but never crash the game.
type Registry struct {
	strategies map[string]Strategy
	logger     zerolog.Logger
}

// NewRegistry creates a registry pre-populated with the built-in
// strategies.
func NewRegistry() *Registry {
	r := &Registry{
		strategies: make(map[string]Strategy),
		logger:     log.With().Str("component", "ai_registry").Logger(),
	}
	r.Register(NewDefaultStrategy())
	return r
}

// Register adds a strategy under its own name, replacing any previous
// registration.
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get resolves a strategy name, falling back to the default strategy
// on a miss.
func (r *Registry) Get(name string) Strategy {
	if s, ok := r.strategies[name]; ok {
		return s
	}
	r.logger.Warn().
		Str("strategy", name).
		Str("fallback", DefaultStrategyName).
		Msg("Unknown AI strategy, using fallback")
	return r.strategies[DefaultStrategyName]
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LegalAttacks enumerates every attack the player could make right
// now: owned source with more than one die, adjacent target with a
// different owner. Ordered by source then target id so downstream RNG
// consumption is stable across runs.
func LegalAttacks(m *core.Map, playerID int) []Move {
	var moves []Move
	for _, from := range m.ActiveIDs() {
		src := m.Territory(from)
		if src.Owner != playerID || src.Dice <= 1 {
			continue
		}
		targets := m.Neighbors(from)
		sort.Ints(targets)
		for _, to := range targets {
			if m.Territory(to).Owner != playerID {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}
	return moves
}
