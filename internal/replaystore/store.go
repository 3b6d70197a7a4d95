// Package replaystore persists game snapshots and turn histories to
// SQLite so finished games can be replayed later.
package replaystore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ivanlay/dicewarsjs-sub001/internal/game/core"
)

// ErrNotFound is returned when a game id has no stored replay.
var ErrNotFound = errors.New("replay not found")

// Store wraps a SQLite connection for replay persistence.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		players INTEGER NOT NULL,
		winner INTEGER NOT NULL,
		cells_json TEXT NOT NULL,
		snapshot_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS turns (
		game_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		from_t INTEGER NOT NULL,
		to_t INTEGER NOT NULL,
		success INTEGER NOT NULL,
		attacker_roll INTEGER NOT NULL,
		defender_roll INTEGER NOT NULL,
		PRIMARY KEY (game_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_turns_game ON turns(game_id);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Replay is a stored game: the board's cell-owner grid, the opening
// snapshot, and every turn that followed. The cell grid lets the exact
// map be rebuilt, so snapshot plus records reconstruct the recorded
// progression rather than approximating it on a fresh board.
type Replay struct {
	GameID    string
	Width     int
	Height    int
	Players   int
	Winner    int
	CellOwner []int
	Snapshot  core.Snapshot
	Records   []core.TurnRecord
}

// Save writes a finished game, replacing any previous replay with the
// same id.
func (s *Store) Save(r *Replay) error {
	cellsJSON, err := json.Marshal(r.CellOwner)
	if err != nil {
		return fmt.Errorf("marshal cells: %w", err)
	}
	snapJSON, err := json.Marshal(r.Snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM turns WHERE game_id = ?", r.GameID); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO games
		(id, width, height, players, winner, cells_json, snapshot_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Width, r.Height, r.Players, r.Winner, string(cellsJSON), string(snapJSON),
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", r.GameID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO turns
		(game_id, seq, from_t, to_t, success, attacker_roll, defender_roll)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq, rec := range r.Records {
		success := 0
		if rec.Success {
			success = 1
		}
		_, err := stmt.Exec(
			r.GameID, seq, rec.From, rec.To,
			success, rec.AttackerRoll, rec.DefenderRoll,
		)
		if err != nil {
			return fmt.Errorf("insert turn %d: %w", seq, err)
		}
	}

	return tx.Commit()
}

// Load reads a stored replay by game id.
func (s *Store) Load(gameID string) (*Replay, error) {
	var row struct {
		ID           string `db:"id"`
		Width        int    `db:"width"`
		Height       int    `db:"height"`
		Players      int    `db:"players"`
		Winner       int    `db:"winner"`
		CellsJSON    string `db:"cells_json"`
		SnapshotJSON string `db:"snapshot_json"`
	}
	err := s.conn.Get(&row,
		"SELECT id, width, height, players, winner, cells_json, snapshot_json FROM games WHERE id = ?",
		gameID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	r := &Replay{
		GameID:  row.ID,
		Width:   row.Width,
		Height:  row.Height,
		Players: row.Players,
		Winner:  row.Winner,
	}
	if err := json.Unmarshal([]byte(row.CellsJSON), &r.CellOwner); err != nil {
		return nil, fmt.Errorf("unmarshal cells: %w", err)
	}
	if err := json.Unmarshal([]byte(row.SnapshotJSON), &r.Snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	var turns []struct {
		From         int `db:"from_t"`
		To           int `db:"to_t"`
		Success      int `db:"success"`
		AttackerRoll int `db:"attacker_roll"`
		DefenderRoll int `db:"defender_roll"`
	}
	err = s.conn.Select(&turns,
		"SELECT from_t, to_t, success, attacker_roll, defender_roll FROM turns WHERE game_id = ? ORDER BY seq",
		gameID,
	)
	if err != nil {
		return nil, err
	}

	r.Records = make([]core.TurnRecord, len(turns))
	for i, t := range turns {
		r.Records[i] = core.TurnRecord{
			From:         t.From,
			To:           t.To,
			Success:      t.Success != 0,
			AttackerRoll: t.AttackerRoll,
			DefenderRoll: t.DefenderRoll,
		}
	}

	return r, nil
}

// GameIDs lists every stored game id.
func (s *Store) GameIDs() ([]string, error) {
	var ids []string
	err := s.conn.Select(&ids, "SELECT id FROM games ORDER BY id")
	return ids, err
}
