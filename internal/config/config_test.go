package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
game:
  map:
    width: 20
    height: 24
  rules:
    max_territory_dice: 6
  players:
    count: 4
    strategies: ["default", "default", "default", "default"]
logging:
  level: debug
replay:
  enabled: true
  db_path: games.db
`

	err := os.WriteFile(configFile, []byte(configContent), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	err = Init(configFile)
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 20, c.Game.Map.Width)
	assert.Equal(t, 24, c.Game.Map.Height)
	assert.Equal(t, 6, c.Game.Rules.MaxTerritoryDice)
	assert.Equal(t, 4, c.Game.Players.Count)
	assert.Len(t, c.Game.Players.Strategies, 4)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.True(t, c.Replay.Enabled)
	assert.Equal(t, "games.db", c.Replay.DBPath)

	// Untouched keys keep their defaults
	assert.Equal(t, 32, c.Game.Map.MaxTerritories)
	assert.Equal(t, 8, c.Game.Map.TargetTerritorySize)
	assert.Equal(t, 5, c.Game.Map.CullThreshold)
	assert.Equal(t, 3, c.Game.Rules.AvgDicePerTerritory)
}

func TestInit_MalformedFileIsFatal(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configFile, []byte("game:\n  map: [not a mapping\n"), 0644)
	require.NoError(t, err)

	// Reset global state
	cfg = nil
	v = nil

	err = Init(configFile)
	assert.Error(t, err, "a broken file at an explicit path must not silently fall back to defaults")
}

func TestInitWithDefaults(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	// Non-existent explicit config should fall back to defaults
	err := Init("/non/existent/path/config.yaml")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 28, c.Game.Map.Width)
	assert.Equal(t, 32, c.Game.Map.Height)
	assert.Equal(t, 7, c.Game.Players.Count)
	assert.Equal(t, -1, c.Game.Players.HumanSlot)
	assert.Equal(t, "console", c.Logging.Format)
	assert.False(t, c.Replay.Enabled)
}

func TestEnvironmentVariables(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	os.Setenv("DICEWARS_GAME_MAP_WIDTH", "16")
	os.Setenv("DICEWARS_GAME_PLAYERS_COUNT", "3")
	defer os.Unsetenv("DICEWARS_GAME_MAP_WIDTH")
	defer os.Unsetenv("DICEWARS_GAME_PLAYERS_COUNT")

	err := Init("")
	require.NoError(t, err)

	c := Get()
	assert.Equal(t, 16, c.Game.Map.Width)
	assert.Equal(t, 3, c.Game.Players.Count)
}

func TestSet(t *testing.T) {
	// Reset global state
	cfg = nil
	v = nil

	err := Init("")
	require.NoError(t, err)

	Set("game.rules.max_stock", 128)
	Set("simulation.games", 10)

	c := Get()
	assert.Equal(t, 128, c.Game.Rules.MaxStock)
	assert.Equal(t, 10, c.Simulation.Games)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg = nil
		v = nil
		require.NoError(t, Init("/non/existent/config.yaml"))
		return Get()
	}

	c := base()
	assert.NoError(t, Validate(c))

	c = base()
	c.Game.Players.Count = 1
	assert.Error(t, Validate(c))

	c = base()
	c.Game.Players.HumanSlot = 7
	assert.Error(t, Validate(c))

	c = base()
	c.Logging.Format = "xml"
	assert.Error(t, Validate(c))

	c = base()
	c.Replay.Enabled = true
	c.Replay.DBPath = ""
	assert.Error(t, Validate(c))
}
