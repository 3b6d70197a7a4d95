package game

import (
	"sort"

	"github.com/ivanlay/dicewarsjs-sub001/internal/common"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events"
)

// DistributeReinforcements grows the player's stock by one die per
// three territories in their largest connected group (minimum one while
// they own anything), then spends the stock onto owned territories by
// priority: enemy-facing territories first, emptier territories first.
// Returns the number of dice placed.
func (e *Engine) DistributeReinforcements(playerID int) int {
	if playerID < 0 || playerID >= e.gs.PlayerCount {
		err := core.WrapTurnError(e.gs.Turn, "reinforce", core.ErrInvalidPlayer)
		e.logger.Warn().Int("player", playerID).Err(err).Msg("Reinforcement request dropped")
		return 0
	}
	p := &e.gs.Players[playerID]
	if !p.Alive() {
		return 0
	}

	income := e.analyzer.LargestGroupSize(playerID) / 3
	if income < 1 {
		income = 1
	}
	p.Stock = common.Min(p.Stock+income, e.cfg.MaxStock)

	placed := 0
	for p.Stock > 0 {
		id := e.bestReinforcementTarget(playerID)
		if id == 0 {
			// Every territory is at the dice cap; keep the stock.
			break
		}
		e.gs.Map.Territory(id).Dice++
		p.Stock--
		placed++

		e.gs.History.Append(core.TurnRecord{From: id, To: core.Sea, Success: true})
		e.eventBus.Publish(events.NewReinforcementPlacedEvent(e.gs.GameID, playerID, id, p.Stock))
	}

	e.updatePlayerStats()
	e.logger.Debug().
		Int("player", playerID).
		Int("income", income).
		Int("placed", placed).
		Int("stock", p.Stock).
		Msg("Reinforcements distributed")
	return placed
}

// bestReinforcementTarget scores the player's territories below the
// dice cap and returns the highest-scoring one, or 0 when none is
// eligible. Scores are recomputed per die since each placement lowers
// the receiving territory's need.
func (e *Engine) bestReinforcementTarget(playerID int) int {
	type scored struct {
		id    int
		score int
	}
	var candidates []scored
	for _, id := range e.gs.Map.ActiveIDs() {
		t := e.gs.Map.Territory(id)
		if t.Owner != playerID || t.Dice >= e.cfg.MaxTerritoryDice {
			continue
		}
		score := (e.cfg.MaxTerritoryDice - t.Dice) * 10
		if e.bordersEnemy(id, playerID) {
			score += 100
		}
		candidates = append(candidates, scored{id: id, score: score})
	}
	if len(candidates) == 0 {
		return 0
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	return candidates[0].id
}

// bordersEnemy reports whether any neighbor has a different owner.
func (e *Engine) bordersEnemy(id, playerID int) bool {
	for _, n := range e.gs.Map.Neighbors(id) {
		if e.gs.Map.Territory(n).Owner != playerID {
			return true
		}
	}
	return false
}
