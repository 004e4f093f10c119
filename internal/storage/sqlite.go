// Package storage provides SQLite-based persistence for battle history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies,
// accessed through sqlx for struct scanning.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-wego/internal/battle"
)

// Store manages the SQLite database connection for battle persistence.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// BattleRecord is one stored battle.
type BattleRecord struct {
	ID           string
	ScenarioID   string
	TicksPerTurn int
	Source       string // "local", "ssh" or "headless"
	CreatedAt    time.Time
}

// BattleSummary is a battle with its turn count, for history listings.
type BattleSummary struct {
	BattleRecord
	Turns      int
	LastPlayed time.Time
}

// TurnRecord is the state of a battle after one resolved turn.
type TurnRecord struct {
	ID        int64
	BattleID  string
	Turn      int
	Ticks     int
	Snapshot  battle.Snapshot
	CreatedAt time.Time
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	ScenarioID string
	Battles    int
	Turns      int
	LastPlayed time.Time
}

// Row shapes as stored; timestamps are unix nanoseconds.
type battleRow struct {
	ID           string `db:"id"`
	ScenarioID   string `db:"scenario_id"`
	TicksPerTurn int    `db:"ticks_per_turn"`
	Source       string `db:"source"`
	CreatedAt    int64  `db:"created_at"`
}

type summaryRow struct {
	battleRow
	Turns      int   `db:"turns"`
	LastPlayed int64 `db:"last_played"`
}

type turnRow struct {
	ID           int64  `db:"id"`
	BattleID     string `db:"battle_id"`
	Turn         int    `db:"turn"`
	Ticks        int    `db:"ticks"`
	SnapshotJSON string `db:"snapshot_json"`
	CreatedAt    int64  `db:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id TEXT PRIMARY KEY,
			scenario_id TEXT NOT NULL,
			ticks_per_turn INTEGER NOT NULL,
			source TEXT NOT NULL DEFAULT 'local',
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_battles_scenario ON battles(scenario_id);
		CREATE INDEX IF NOT EXISTS idx_battles_created ON battles(created_at DESC);

		CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL REFERENCES battles(id) ON DELETE CASCADE,
			turn INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			snapshot_json TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			UNIQUE (battle_id, turn)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateBattle records a new battle and returns its generated ID.
func (s *Store) CreateBattle(scenarioID string, ticksPerTurn int, source string) (string, error) {
	if source == "" {
		source = "local"
	}
	id := uuid.NewString()

	_, err := s.db.Exec(
		"INSERT INTO battles (id, scenario_id, ticks_per_turn, source, created_at) VALUES (?, ?, ?, ?, ?)",
		id, scenarioID, ticksPerTurn, source, s.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create battle: %w", err)
	}
	return id, nil
}

// Battle retrieves a battle by ID. Returns nil if it does not exist.
func (s *Store) Battle(id string) (*BattleRecord, error) {
	var row battleRow
	err := s.db.Get(&row,
		"SELECT id, scenario_id, ticks_per_turn, source, created_at FROM battles WHERE id = ?",
		id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}

	rec := row.record()
	return &rec, nil
}

// SaveTurn stores the snapshot taken after a turn resolved.
// Saving the same turn twice replaces the earlier snapshot.
func (s *Store) SaveTurn(battleID string, turn, ticks int, snap battle.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("storage: cannot encode snapshot: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO turns (battle_id, turn, ticks, snapshot_json, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (battle_id, turn) DO UPDATE SET
		   ticks = excluded.ticks,
		   snapshot_json = excluded.snapshot_json,
		   created_at = excluded.created_at`,
		battleID, turn, ticks, string(data), s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save turn %d of %s: %w", turn, battleID, err)
	}
	return nil
}

// Turns retrieves every recorded turn of a battle, in turn order.
func (s *Store) Turns(battleID string) ([]TurnRecord, error) {
	var rows []turnRow
	err := s.db.Select(&rows,
		`SELECT id, battle_id, turn, ticks, snapshot_json, created_at
		 FROM turns
		 WHERE battle_id = ?
		 ORDER BY turn`,
		battleID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query turns: %w", err)
	}

	records := make([]TurnRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// LatestTurn returns the most recent turn of a battle, or nil if none was recorded.
func (s *Store) LatestTurn(battleID string) (*TurnRecord, error) {
	var row turnRow
	err := s.db.Get(&row,
		`SELECT id, battle_id, turn, ticks, snapshot_json, created_at
		 FROM turns
		 WHERE battle_id = ?
		 ORDER BY turn DESC
		 LIMIT 1`,
		battleID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query latest turn: %w", err)
	}

	rec, err := row.record()
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecentBattles retrieves the most recently created battles.
func (s *Store) RecentBattles(limit int) ([]BattleSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows []summaryRow
	err := s.db.Select(&rows,
		`SELECT b.id, b.scenario_id, b.ticks_per_turn, b.source, b.created_at,
		        COUNT(t.id) AS turns,
		        COALESCE(MAX(t.created_at), b.created_at) AS last_played
		 FROM battles b
		 LEFT JOIN turns t ON t.battle_id = b.id
		 GROUP BY b.id
		 ORDER BY b.created_at DESC, b.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}

	out := make([]BattleSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, BattleSummary{
			BattleRecord: row.record(),
			Turns:        row.Turns,
			LastPlayed:   fromUnixNano(row.LastPlayed),
		})
	}
	return out, nil
}

// BattleStats retrieves aggregated statistics for a scenario.
func (s *Store) BattleStats(scenarioID string) (*ScenarioStats, error) {
	var row struct {
		Battles    int   `db:"battles"`
		Turns      int   `db:"turns"`
		LastPlayed int64 `db:"last_played"`
	}
	err := s.db.Get(&row,
		`SELECT COUNT(DISTINCT b.id) AS battles,
		        COUNT(t.id) AS turns,
		        COALESCE(MAX(COALESCE(t.created_at, b.created_at)), 0) AS last_played
		 FROM battles b
		 LEFT JOIN turns t ON t.battle_id = b.id
		 WHERE b.scenario_id = ?`,
		scenarioID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	stats := &ScenarioStats{
		ScenarioID: scenarioID,
		Battles:    row.Battles,
		Turns:      row.Turns,
	}
	if row.LastPlayed != 0 {
		stats.LastPlayed = fromUnixNano(row.LastPlayed)
	}
	return stats, nil
}

// DeleteBattle removes a battle and its turns.
func (s *Store) DeleteBattle(id string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM turns WHERE battle_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete turns: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM battles WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete battle: %w", err)
	}
	return tx.Commit()
}

func (r battleRow) record() BattleRecord {
	return BattleRecord{
		ID:           r.ID,
		ScenarioID:   r.ScenarioID,
		TicksPerTurn: r.TicksPerTurn,
		Source:       r.Source,
		CreatedAt:    fromUnixNano(r.CreatedAt),
	}
}

func (r turnRow) record() (TurnRecord, error) {
	rec := TurnRecord{
		ID:        r.ID,
		BattleID:  r.BattleID,
		Turn:      r.Turn,
		Ticks:     r.Ticks,
		CreatedAt: fromUnixNano(r.CreatedAt),
	}
	if err := json.Unmarshal([]byte(r.SnapshotJSON), &rec.Snapshot); err != nil {
		return TurnRecord{}, fmt.Errorf("storage: corrupt snapshot for turn %d of %s: %w", r.Turn, r.BattleID, err)
	}
	return rec, nil
}

func fromUnixNano(ns int64) time.Time {
	return time.Unix(0, ns)
}
