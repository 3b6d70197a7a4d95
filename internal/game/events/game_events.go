package events

import "time"

// Event type constants.
const (
	TypeGameStarted         = "game.started"
	TypeGameEnded           = "game.ended"
	TypeTurnStarted         = "turn.started"
	TypeTurnEnded           = "turn.ended"
	TypeAttackResolved      = "attack.resolved"
	TypeAttackRejected      = "attack.rejected"
	TypeTerritoryCaptured   = "territory.captured"
	TypeReinforcementPlaced = "reinforcement.placed"
	TypePlayerEliminated    = "player.eliminated"
)

// GameStartedEvent is published when a new game begins.
type GameStartedEvent struct {
	BaseEvent
	NumPlayers  int
	Territories int
	TurnOrder   []int
}

// NewGameStartedEvent creates a new GameStartedEvent.
func NewGameStartedEvent(gameID string, numPlayers, territories int, turnOrder []int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   BaseEvent{EventType: TypeGameStarted, Time: time.Now(), Game: gameID},
		NumPlayers:  numPlayers,
		Territories: territories,
		TurnOrder:   turnOrder,
	}
}

// GameEndedEvent is published when a game ends.
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	FinalTurn int
}

// NewGameEndedEvent creates a new GameEndedEvent.
func NewGameEndedEvent(gameID string, winner, finalTurn int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: BaseEvent{EventType: TypeGameEnded, Time: time.Now(), Game: gameID},
		Winner:    winner,
		FinalTurn: finalTurn,
	}
}

// TurnStartedEvent is published when a player's turn begins.
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	PlayerID   int
}

// NewTurnStartedEvent creates a new TurnStartedEvent.
func NewTurnStartedEvent(gameID string, turn, playerID int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  BaseEvent{EventType: TypeTurnStarted, Time: time.Now(), Game: gameID},
		TurnNumber: turn,
		PlayerID:   playerID,
	}
}

// TurnEndedEvent is published when a player's turn ends.
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber int
	PlayerID   int
	Attacks    int
}

// NewTurnEndedEvent creates a new TurnEndedEvent.
func NewTurnEndedEvent(gameID string, turn, playerID, attacks int) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:  BaseEvent{EventType: TypeTurnEnded, Time: time.Now(), Game: gameID},
		TurnNumber: turn,
		PlayerID:   playerID,
		Attacks:    attacks,
	}
}

// AttackResolvedEvent is published for every resolved dice battle,
// wins and losses alike. Roll sums are included so display layers can
// show the battle without re-simulation.
type AttackResolvedEvent struct {
	BaseEvent
	From         int
	To           int
	Attacker     int
	Defender     int
	Success      bool
	AttackerRoll int
	DefenderRoll int
}

// NewAttackResolvedEvent creates a new AttackResolvedEvent.
func NewAttackResolvedEvent(gameID string, from, to, attacker, defender int, success bool, attackerRoll, defenderRoll int) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:    BaseEvent{EventType: TypeAttackResolved, Time: time.Now(), Game: gameID},
		From:         from,
		To:           to,
		Attacker:     attacker,
		Defender:     defender,
		Success:      success,
		AttackerRoll: attackerRoll,
		DefenderRoll: defenderRoll,
	}
}

// AttackRejectedEvent is published when an attack request fails its
// preconditions. Rejections are normal flow, not errors.
type AttackRejectedEvent struct {
	BaseEvent
	From   int
	To     int
	Reason string
}

// NewAttackRejectedEvent creates a new AttackRejectedEvent.
func NewAttackRejectedEvent(gameID string, from, to int, reason string) *AttackRejectedEvent {
	return &AttackRejectedEvent{
		BaseEvent: BaseEvent{EventType: TypeAttackRejected, Time: time.Now(), Game: gameID},
		From:      from,
		To:        to,
		Reason:    reason,
	}
}

// TerritoryCapturedEvent is published when an attack changes ownership.
type TerritoryCapturedEvent struct {
	BaseEvent
	Territory int
	OldOwner  int
	NewOwner  int
}

// NewTerritoryCapturedEvent creates a new TerritoryCapturedEvent.
func NewTerritoryCapturedEvent(gameID string, territory, oldOwner, newOwner int) *TerritoryCapturedEvent {
	return &TerritoryCapturedEvent{
		BaseEvent: BaseEvent{EventType: TypeTerritoryCaptured, Time: time.Now(), Game: gameID},
		Territory: territory,
		OldOwner:  oldOwner,
		NewOwner:  newOwner,
	}
}

// ReinforcementPlacedEvent is published for each die placed during
// reinforcement distribution.
type ReinforcementPlacedEvent struct {
	BaseEvent
	PlayerID  int
	Territory int
	Remaining int // stock left after this placement
}

// NewReinforcementPlacedEvent creates a new ReinforcementPlacedEvent.
func NewReinforcementPlacedEvent(gameID string, playerID, territory, remaining int) *ReinforcementPlacedEvent {
	return &ReinforcementPlacedEvent{
		BaseEvent: BaseEvent{EventType: TypeReinforcementPlaced, Time: time.Now(), Game: gameID},
		PlayerID:  playerID,
		Territory: territory,
		Remaining: remaining,
	}
}

// PlayerEliminatedEvent is published when a player loses their last
// territory.
type PlayerEliminatedEvent struct {
	BaseEvent
	PlayerID int
	ByPlayer int
	Turn     int
}

// NewPlayerEliminatedEvent creates a new PlayerEliminatedEvent.
func NewPlayerEliminatedEvent(gameID string, playerID, byPlayer, turn int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent: BaseEvent{EventType: TypePlayerEliminated, Time: time.Now(), Game: gameID},
		PlayerID:  playerID,
		ByPlayer:  byPlayer,
		Turn:      turn,
	}
}
