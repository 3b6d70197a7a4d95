package game

import (
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// ReplayGame reconstructs a game's final ownership and dice state by
// restoring the snapshot and re-applying the history. Outcomes are
// taken from the stored success flags, so no dice are rolled and no
// RNG is needed: a log plus snapshot deterministically reproduces the
// whole progression.
func ReplayGame(m *core.Map, snap *core.Snapshot, records []core.TurnRecord) {
	snap.Restore(m)
	for _, r := range records {
		ApplyRecord(m, r)
	}
}

// ApplyRecord applies a single history record to the map. Records were
// validated when they were appended, so application is unconditional.
func ApplyRecord(m *core.Map, r core.TurnRecord) {
	from := m.Territory(r.From)
	if from == nil {
		return
	}
	if r.IsReinforcement() {
		from.Dice++
		return
	}
	if r.Success {
		to := m.Territory(r.To)
		to.Owner = from.Owner
		to.Dice = from.Dice - 1
	}
	from.Dice = 1
}
