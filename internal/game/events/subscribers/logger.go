package subscribers

import (
	"github.com/rs/zerolog"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events"
)

// LoggerSubscriber writes game events to structured logs.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // if non-nil, only log these event types
}

// NewLoggerSubscriber creates a new logger subscriber.
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier.
func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter sets which event types to log (empty means log all).
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}
	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// InterestedIn returns true if the subscriber wants this event type.
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs the event with its domain fields.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.logLevel).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent = logEvent.
			Int("players", e.NumPlayers).
			Int("territories", e.Territories).
			Ints("turn_order", e.TurnOrder)
	case *events.GameEndedEvent:
		logEvent = logEvent.
			Int("winner", e.Winner).
			Int("final_turn", e.FinalTurn)
	case *events.TurnStartedEvent:
		logEvent = logEvent.
			Int("turn", e.TurnNumber).
			Int("player", e.PlayerID)
	case *events.TurnEndedEvent:
		logEvent = logEvent.
			Int("turn", e.TurnNumber).
			Int("player", e.PlayerID).
			Int("attacks", e.Attacks)
	case *events.AttackResolvedEvent:
		logEvent = logEvent.
			Int("from", e.From).
			Int("to", e.To).
			Int("attacker", e.Attacker).
			Int("defender", e.Defender).
			Bool("success", e.Success).
			Int("attacker_roll", e.AttackerRoll).
			Int("defender_roll", e.DefenderRoll)
	case *events.AttackRejectedEvent:
		logEvent = logEvent.
			Int("from", e.From).
			Int("to", e.To).
			Str("reason", e.Reason)
	case *events.TerritoryCapturedEvent:
		logEvent = logEvent.
			Int("territory", e.Territory).
			Int("old_owner", e.OldOwner).
			Int("new_owner", e.NewOwner)
	case *events.ReinforcementPlacedEvent:
		logEvent = logEvent.
			Int("player", e.PlayerID).
			Int("territory", e.Territory).
			Int("stock_remaining", e.Remaining)
	case *events.PlayerEliminatedEvent:
		logEvent = logEvent.
			Int("player", e.PlayerID).
			Int("by_player", e.ByPlayer).
			Int("turn", e.Turn)
	}

	logEvent.Msg("Game event")
}
