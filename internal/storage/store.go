// Package storage persists finished battle results in SQLite.
package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterkuimelis/parley/internal/game"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// BattleRecord is one finished battle.
type BattleRecord struct {
	ID             string
	PlayerName     string
	OpponentName   string
	Victory        bool
	Decided        bool
	Winner         game.Side
	Turns          int
	FinalResolve   int
	FinalComposure int
	FinalHostility int
	Reason         string
	StartedAt      time.Time
	EndedAt        time.Time
}

// NewBattleRecord summarizes a finished battle. Battles that have not ended
// produce an undecided record.
func NewBattleRecord(b *game.Battle, started time.Time) BattleRecord {
	rec := BattleRecord{
		ID:           b.ID,
		PlayerName:   b.Combatant(game.SidePlayer).Name,
		OpponentName: b.Combatant(game.SideOpponent).Name,
		Turns:        b.Turn,
		StartedAt:    started.UTC(),
		EndedAt:      time.Now().UTC(),
	}
	if r := b.Result; r != nil {
		rec.Victory = r.Victory
		rec.Decided = r.Decided
		rec.Winner = r.Winner
		rec.Turns = r.Turns
		rec.FinalResolve = r.FinalResolve
		rec.FinalComposure = r.FinalComposure
		rec.FinalHostility = r.FinalHostility
		rec.Reason = r.Reason
	}
	return rec
}

// Store provides SQLite-backed battle result persistence.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a result store at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordResult persists one finished battle. Recording the same battle ID
// twice replaces the earlier row.
func (s *Store) RecordResult(ctx context.Context, rec BattleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	rec.ID = strings.TrimSpace(rec.ID)
	if rec.ID == "" {
		return fmt.Errorf("battle id is required")
	}
	if rec.EndedAt.IsZero() {
		rec.EndedAt = time.Now().UTC()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.EndedAt
	}

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO battle_results (
	id,
	player_name,
	opponent_name,
	victory,
	decided,
	winner,
	turns,
	final_resolve,
	final_composure,
	final_hostility,
	reason,
	started_at,
	ended_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		rec.ID,
		rec.PlayerName,
		rec.OpponentName,
		rec.Victory,
		rec.Decided,
		int(rec.Winner),
		rec.Turns,
		rec.FinalResolve,
		rec.FinalComposure,
		rec.FinalHostility,
		rec.Reason,
		rec.StartedAt.UTC().UnixMilli(),
		rec.EndedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	return nil
}

// RecentResults lists newest-first battle records.
func (s *Store) RecentResults(ctx context.Context, limit int) ([]BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT
	id,
	player_name,
	opponent_name,
	victory,
	decided,
	winner,
	turns,
	final_resolve,
	final_composure,
	final_hostility,
	reason,
	started_at,
	ended_at
FROM battle_results
ORDER BY ended_at DESC, id DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	records := make([]BattleRecord, 0, limit)
	for rows.Next() {
		var rec BattleRecord
		var winner int
		var startedAt, endedAt int64
		if err := rows.Scan(
			&rec.ID,
			&rec.PlayerName,
			&rec.OpponentName,
			&rec.Victory,
			&rec.Decided,
			&winner,
			&rec.Turns,
			&rec.FinalResolve,
			&rec.FinalComposure,
			&rec.FinalHostility,
			&rec.Reason,
			&startedAt,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Winner = game.Side(winner)
		rec.StartedAt = time.UnixMilli(startedAt).UTC()
		rec.EndedAt = time.UnixMilli(endedAt).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return records, nil
}
