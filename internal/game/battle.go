package game

import (
	"math/rand"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events"
)

// AttackResult reports the outcome of an attack request. Reason is
// non-nil for precondition failures; those are expected outcomes, not
// errors, and leave state and history untouched.
type AttackResult struct {
	Success      bool
	AttackerRoll int
	DefenderRoll int
	Reason       error
}

// rollDice sums n six-sided dice.
func rollDice(rng *rand.Rand, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += rng.Intn(6) + 1
	}
	return sum
}

// Attack resolves a dice battle between two adjacent territories. The
// attacker is the owner of from. Both sides roll all their dice; the
// attacker wins strictly on a higher sum (ties favor the defender). On
// a win the defender's territory flips to the attacker with
// attackerDice-1 dice; either way the attacking territory drops to one
// die. Every resolved attack is appended to the history.
func (e *Engine) Attack(from, to int) AttackResult {
	if e.gameOver {
		return e.rejectAttack(from, to, core.ErrGameOver)
	}

	src := e.gs.Map.Territory(from)
	attacker := -1
	if src != nil {
		attacker = src.Owner
	}
	action := core.AttackAction{PlayerID: attacker, From: from, To: to}
	if err := action.Validate(e.gs.Map); err != nil {
		return e.rejectAttack(from, to, err)
	}

	dst := e.gs.Map.Territory(to)
	defender := dst.Owner

	attackerRoll := e.roll(src.Dice)
	defenderRoll := e.roll(dst.Dice)
	success := attackerRoll > defenderRoll

	if success {
		dst.Owner = attacker
		dst.Dice = src.Dice - 1
		src.Dice = 1
	} else {
		src.Dice = 1
	}

	e.gs.History.Append(core.TurnRecord{
		From:         from,
		To:           to,
		Success:      success,
		AttackerRoll: attackerRoll,
		DefenderRoll: defenderRoll,
	})
	e.turnAttacks++

	e.eventBus.Publish(events.NewAttackResolvedEvent(
		e.gs.GameID, from, to, attacker, defender, success, attackerRoll, defenderRoll))

	if success {
		// Ownership changed: the loser may have split, the winner may
		// have merged. Invalidate both before anyone reads group sizes.
		e.analyzer.Invalidate(defender)
		e.analyzer.Invalidate(attacker)
		e.eventBus.Publish(events.NewTerritoryCapturedEvent(e.gs.GameID, to, defender, attacker))
	}

	e.updatePlayerStats()

	if success && !e.gs.Players[defender].Alive() {
		e.eventBus.Publish(events.NewPlayerEliminatedEvent(e.gs.GameID, defender, attacker, e.gs.Turn))
		e.logger.Info().Int("player", defender).Int("by", attacker).Msg("Player eliminated")
	}
	e.checkGameOver()

	return AttackResult{
		Success:      success,
		AttackerRoll: attackerRoll,
		DefenderRoll: defenderRoll,
	}
}

// rejectAttack reports a precondition failure without touching state.
func (e *Engine) rejectAttack(from, to int, reason error) AttackResult {
	e.eventBus.Publish(events.NewAttackRejectedEvent(e.gs.GameID, from, to, reason.Error()))
	e.logger.Debug().Int("from", from).Int("to", to).Err(reason).Msg("Attack rejected")
	return AttackResult{Reason: reason}
}
