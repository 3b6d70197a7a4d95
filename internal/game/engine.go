package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivanlay/dicewarsjs-sub001/internal/common"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/ai"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/analysis"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/mapgen"
)

// Maximum attacks a single AI turn may issue before the engine cuts it
// off; a correct strategy ends long before this.
const maxAttacksPerTurn = 10000

// Config configures a game instance.
type Config struct {
	Width               int
	Height              int
	MaxTerritories      int
	TargetTerritorySize int
	CullThreshold       int
	Players             int
	HumanSlot           int // -1 for full-spectator mode
	AvgDicePerTerritory int
	MaxTerritoryDice    int
	MaxStock            int
	Strategies          []string // AI strategy name per player slot

	GameID   string
	Rng      *rand.Rand
	Logger   *zerolog.Logger
	EventBus *events.EventBus
}

// DefaultConfig returns the classic spectator game setup.
func DefaultConfig() Config {
	return Config{
		Width:               28,
		Height:              32,
		MaxTerritories:      core.MaxTerritories,
		TargetTerritorySize: 8,
		CullThreshold:       5,
		Players:             7,
		HumanSlot:           -1,
		AvgDicePerTerritory: 3,
		MaxTerritoryDice:    8,
		MaxStock:            64,
	}
}

// Engine drives one game instance. It is single-threaded: exactly one
// attack or distribution runs at a time and every operation completes
// before control returns.
type Engine struct {
	gs  *GameState
	cfg Config

	rng        *rand.Rand
	analyzer   *analysis.Analyzer
	registry   *ai.Registry
	strategies []ai.Strategy // resolved per player slot

	eventBus *events.EventBus
	logger   zerolog.Logger

	// roll sums n six-sided dice; swappable for scripted battles in tests.
	roll func(n int) int

	gameOver    bool
	turnAttacks int
}

// NewEngine generates a map and builds an engine around it.
func NewEngine(cfg Config) *Engine {
	if cfg.Rng == nil {
		cfg.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.NewString()
	}
	if cfg.EventBus == nil {
		cfg.EventBus = events.NewEventBus()
	}
	cfg.Players = common.Clamp(cfg.Players, 2, core.MaxPlayers)
	if cfg.HumanSlot >= cfg.Players {
		// Out-of-range human index: treat the slot as AI.
		cfg.HumanSlot = -1
	}
	if cfg.MaxTerritoryDice <= 0 {
		cfg.MaxTerritoryDice = DefaultConfig().MaxTerritoryDice
	}
	if cfg.MaxStock <= 0 {
		cfg.MaxStock = DefaultConfig().MaxStock
	}

	var logger zerolog.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	} else {
		logger = log.Logger
	}
	logger = logger.With().Str("component", "engine").Str("game_id", cfg.GameID).Logger()

	generator := mapgen.NewGenerator(mapConfigFor(cfg), cfg.Rng)
	m := generator.GenerateMap()
	generator.AssignPlayers(m)

	registry := ai.NewRegistry()
	strategies := make([]ai.Strategy, cfg.Players)
	for i := range strategies {
		name := ai.DefaultStrategyName
		if i < len(cfg.Strategies) && cfg.Strategies[i] != "" {
			name = cfg.Strategies[i]
		}
		strategies[i] = registry.Get(name)
	}

	e := &Engine{
		gs: &GameState{
			GameID:      cfg.GameID,
			Map:         m,
			Players:     make([]core.Player, core.MaxPlayers),
			PlayerCount: cfg.Players,
			History:     &core.History{},
		},
		cfg:        cfg,
		rng:        cfg.Rng,
		analyzer:   analysis.NewAnalyzer(m),
		registry:   registry,
		strategies: strategies,
		eventBus:   cfg.EventBus,
		logger:     logger,
	}
	e.roll = func(n int) int { return rollDice(e.rng, n) }
	for i := range e.gs.Players {
		e.gs.Players[i].ID = i
	}
	e.updatePlayerStats()

	logger.Info().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("players", cfg.Players).
		Int("territories", len(m.ActiveIDs())).
		Msg("Engine created")

	return e
}

// mapConfigFor maps engine configuration onto generation parameters,
// keeping mapgen defaults for anything left unset.
func mapConfigFor(cfg Config) mapgen.MapConfig {
	mapCfg := mapgen.DefaultMapConfig(cfg.Width, cfg.Height, cfg.Players)
	if cfg.MaxTerritories > 0 {
		mapCfg.MaxTerritories = cfg.MaxTerritories
	}
	if cfg.TargetTerritorySize > 0 {
		mapCfg.TargetTerritorySize = cfg.TargetTerritorySize
	}
	if cfg.CullThreshold > 0 {
		mapCfg.CullThreshold = cfg.CullThreshold
	}
	if cfg.AvgDicePerTerritory > 0 {
		mapCfg.AvgDicePerTerritory = cfg.AvgDicePerTerritory
	}
	if cfg.MaxTerritoryDice > 0 {
		mapCfg.MaxTerritoryDice = cfg.MaxTerritoryDice
	}
	return mapCfg
}

// StartGame shuffles the turn order, resets player stats and history,
// and snapshots initial ownership for replay. Returns the turn order.
func (e *Engine) StartGame() []int {
	order := make([]int, e.gs.PlayerCount)
	for i := range order {
		order[i] = i
	}
	e.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	e.gs.TurnOrder = order
	e.gs.OrderIdx = 0
	e.gs.Turn = 1
	e.gs.History.Reset()
	e.gs.Snapshot = core.TakeSnapshot(e.gs.Map)
	e.gameOver = false
	e.turnAttacks = 0

	for i := range e.gs.Players {
		e.gs.Players[i].Stock = 0
	}
	e.analyzer.InvalidateAll()
	e.updatePlayerStats()

	e.eventBus.Publish(events.NewGameStartedEvent(
		e.gs.GameID, e.gs.PlayerCount, len(e.gs.Map.ActiveIDs()), order))
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gs.GameID, e.gs.Turn, e.gs.CurrentPlayer()))

	e.logger.Info().Ints("turn_order", order).Msg("Game started")
	return order
}

// RunAIStrategy lets the player's strategy pick one attack and executes
// it. Returns false when the strategy ends the turn (or proposed an
// invalid move, which forfeits the rest of the turn rather than loop).
func (e *Engine) RunAIStrategy(playerID int) bool {
	if e.gameOver {
		return false
	}
	if playerID < 0 || playerID >= e.gs.PlayerCount {
		err := core.WrapTurnError(e.gs.Turn, "run strategy", core.ErrInvalidPlayer)
		e.logger.Warn().Int("player", playerID).Err(err).Msg("Strategy request dropped")
		return false
	}

	st := &ai.State{
		Map:           e.gs.Map,
		Players:       e.gs.Players[:e.gs.PlayerCount],
		Analyzer:      e.analyzer,
		Rng:           e.rng,
		CurrentPlayer: playerID,
	}
	move, ok := e.strategies[playerID].Decide(st)
	if !ok {
		return false
	}

	result := e.Attack(move.From, move.To)
	if result.Reason != nil {
		e.logger.Warn().
			Int("player", playerID).
			Int("from", move.From).
			Int("to", move.To).
			Str("strategy", e.strategies[playerID].Name()).
			Err(result.Reason).
			Msg("Strategy proposed invalid attack, ending turn")
		return false
	}
	return true
}

// PlayAITurn runs the current player's full turn: attacks until their
// strategy stops, then reinforcements, then advances the turn pointer.
func (e *Engine) PlayAITurn() {
	if e.gameOver {
		return
	}
	player := e.gs.CurrentPlayer()
	for i := 0; i < maxAttacksPerTurn; i++ {
		if e.gameOver || !e.RunAIStrategy(player) {
			break
		}
	}
	e.EndTurn()
}

// EndTurn distributes the current player's reinforcements and advances
// the turn pointer, skipping eliminated players.
func (e *Engine) EndTurn() {
	if e.gameOver || len(e.gs.TurnOrder) == 0 {
		return
	}
	player := e.gs.CurrentPlayer()
	e.DistributeReinforcements(player)

	e.eventBus.Publish(events.NewTurnEndedEvent(e.gs.GameID, e.gs.Turn, player, e.turnAttacks))
	e.turnAttacks = 0

	// Advance past eliminated players. Someone is always alive here;
	// otherwise checkGameOver would have ended the game.
	for i := 0; i < len(e.gs.TurnOrder); i++ {
		e.gs.OrderIdx = (e.gs.OrderIdx + 1) % len(e.gs.TurnOrder)
		if e.gs.Players[e.gs.CurrentPlayer()].Alive() {
			break
		}
	}
	e.gs.Turn++
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gs.GameID, e.gs.Turn, e.gs.CurrentPlayer()))
}

// updatePlayerStats recalculates every player's derived stats from the
// map: territory count, dice total, largest connected group, and the
// dice rank across players.
func (e *Engine) updatePlayerStats() {
	for pid := range e.gs.Players {
		e.gs.Players[pid].TerritoryCount = 0
		e.gs.Players[pid].DiceTotal = 0
	}
	for _, id := range e.gs.Map.ActiveIDs() {
		t := e.gs.Map.Territory(id)
		if t.Owner < 0 || t.Owner >= len(e.gs.Players) {
			continue
		}
		p := &e.gs.Players[t.Owner]
		p.TerritoryCount++
		p.DiceTotal += t.Dice
	}
	for pid := 0; pid < e.gs.PlayerCount; pid++ {
		e.gs.Players[pid].LargestGroup = e.analyzer.LargestGroupSize(pid)
	}

	// Rank 0 = most dice; ties share the better rank.
	totals := make([]int, e.gs.PlayerCount)
	for pid := 0; pid < e.gs.PlayerCount; pid++ {
		totals[pid] = e.gs.Players[pid].DiceTotal
	}
	sorted := append([]int(nil), totals...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for pid := 0; pid < e.gs.PlayerCount; pid++ {
		for rank, total := range sorted {
			if totals[pid] == total {
				e.gs.Players[pid].DiceRank = rank
				break
			}
		}
	}
}

// checkGameOver ends the game when at most one player remains.
func (e *Engine) checkGameOver() {
	if e.gameOver || len(e.gs.TurnOrder) == 0 {
		return
	}
	alive := e.gs.AlivePlayers()
	if len(alive) > 1 {
		return
	}
	e.gameOver = true
	winner := -1
	if len(alive) == 1 {
		winner = alive[0]
	}
	e.eventBus.Publish(events.NewGameEndedEvent(e.gs.GameID, winner, e.gs.Turn))
	e.logger.Info().Int("winner", winner).Int("turns", e.gs.Turn).Msg("Game over")
}

// GameState returns the engine's state aggregate. Read-only by
// convention: hosts mutate only through engine entry points.
func (e *Engine) GameState() *GameState { return e.gs }

// Analyzer exposes connectivity queries for hosts and strategies.
func (e *Engine) Analyzer() *analysis.Analyzer { return e.analyzer }

// Registry exposes the AI strategy registry.
func (e *Engine) Registry() *ai.Registry { return e.registry }

// IsGameOver reports whether the game has ended.
func (e *Engine) IsGameOver() bool { return e.gameOver }

// Winner returns the winning player id, or -1 while the game runs.
func (e *Engine) Winner() int {
	if !e.gameOver {
		return -1
	}
	if alive := e.gs.AlivePlayers(); len(alive) == 1 {
		return alive[0]
	}
	return -1
}
