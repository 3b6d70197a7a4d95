package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ivanlay/dicewarsjs-sub001/internal/config"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/events/subscribers"
	"github.com/ivanlay/dicewarsjs-sub001/internal/game/mapgen"
	"github.com/ivanlay/dicewarsjs-sub001/internal/replaystore"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	seed := flag.Int64("seed", 0, "RNG seed (0 for time-based)")
	games := flag.Int("games", -1, "Number of games to simulate (-1 to use config default)")
	players := flag.Int("players", -1, "Number of players (-1 to use config default)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	replayID := flag.String("replay", "", "Replay a stored game id instead of simulating")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}

	cfg := config.Get()

	if *games == -1 {
		*games = cfg.Simulation.Games
	}
	if *players == -1 {
		*players = cfg.Game.Players.Count
	}
	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}

	setupLogging(*logLevel, cfg.Logging.Format)

	if *replayID != "" {
		if err := replayStoredGame(cfg, *replayID); err != nil {
			log.Fatal().Err(err).Str("game_id", *replayID).Msg("Replay failed")
		}
		return
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	log.Info().
		Int64("seed", *seed).
		Int("games", *games).
		Int("players", *players).
		Msg("Starting simulation")

	var store *replaystore.Store
	if cfg.Replay.Enabled {
		var err error
		store, err = replaystore.Open(cfg.Replay.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Replay.DBPath).Msg("Failed to open replay store")
		}
		defer store.Close()
	}

	wins := make(map[int]int)
	for i := 0; i < *games; i++ {
		winner := runGame(cfg, rng, *players, store)
		wins[winner]++
	}

	if *games > 1 {
		for p := 0; p < *players; p++ {
			log.Info().Int("player", p).Int("wins", wins[p]).Msg("Standings")
		}
		log.Info().Int("unfinished", wins[-1]).Msg("Simulation complete")
	}
}

func runGame(cfg *config.Config, rng *rand.Rand, players int, store *replaystore.Store) int {
	ec := game.DefaultConfig()
	ec.Width = cfg.Game.Map.Width
	ec.Height = cfg.Game.Map.Height
	ec.MaxTerritories = cfg.Game.Map.MaxTerritories
	ec.TargetTerritorySize = cfg.Game.Map.TargetTerritorySize
	ec.CullThreshold = cfg.Game.Map.CullThreshold
	ec.Players = players
	ec.HumanSlot = -1 // spectator runs only
	ec.AvgDicePerTerritory = cfg.Game.Rules.AvgDicePerTerritory
	ec.MaxTerritoryDice = cfg.Game.Rules.MaxTerritoryDice
	ec.MaxStock = cfg.Game.Rules.MaxStock
	ec.Strategies = cfg.Game.Players.Strategies
	ec.Rng = rng

	bus := events.NewEventBus()
	bus.Subscribe(subscribers.NewLoggerSubscriber("game-events", log.Logger, zerolog.DebugLevel))
	ec.EventBus = bus

	e := game.NewEngine(ec)
	gs := e.GameState()
	e.StartGame()

	if cfg.Simulation.PrintBoard {
		fmt.Printf("Game %s, initial board:\n%s\n", gs.GameID, e.Board())
	}

	for turn := 0; turn < cfg.Simulation.MaxTurns && !e.IsGameOver(); turn++ {
		e.PlayAITurn()
	}

	if cfg.Simulation.PrintBoard {
		fmt.Printf("Final board:\n%s\n", e.Board())
	}

	winner := e.Winner()
	if e.IsGameOver() {
		log.Info().
			Str("game_id", gs.GameID).
			Int("winner", winner).
			Int("turns", gs.Turn).
			Msg("Game over")
	} else {
		log.Warn().
			Str("game_id", gs.GameID).
			Int("max_turns", cfg.Simulation.MaxTurns).
			Msg("Game reached turn limit")
	}

	if store != nil {
		r := &replaystore.Replay{
			GameID:    gs.GameID,
			Width:     cfg.Game.Map.Width,
			Height:    cfg.Game.Map.Height,
			Players:   players,
			Winner:    winner,
			CellOwner: gs.Map.CellOwner,
			Snapshot:  *gs.Snapshot,
			Records:   gs.History.Records(),
		}
		if err := store.Save(r); err != nil {
			log.Error().Err(err).Str("game_id", gs.GameID).Msg("Failed to save replay")
		}
	}

	return winner
}

// replayStoredGame reloads a persisted game and replays its history
// onto a freshly generated board with the same dimensions.
func replayStoredGame(cfg *config.Config, gameID string) error {
	store, err := replaystore.Open(cfg.Replay.DBPath)
	if err != nil {
		return fmt.Errorf("open replay store: %w", err)
	}
	defer store.Close()

	r, err := store.Load(gameID)
	if err != nil {
		return err
	}

	log.Info().
		Str("game_id", r.GameID).
		Int("turns", len(r.Records)).
		Int("winner", r.Winner).
		Msg("Replaying stored game")

	// Rebuild the exact recorded board from the stored cell grid, then
	// apply snapshot and history on top of it.
	m := mapgen.ReconstructMap(r.Width, r.Height, r.CellOwner)
	game.ReplayGame(m, &r.Snapshot, r.Records)

	if cfg.Simulation.PrintBoard {
		fmt.Printf("Replayed final state:\n%s\n", game.RenderMap(m))
	}
	return nil
}

func setupLogging(level, format string) {
	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}
}
