package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
)

// SQLiteStore is the embedded store behind the CLI. Pass ":memory:" for an
// ephemeral database in tests.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens (and if needed creates) a SQLite database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// The driver is single-writer; a second connection just queues errors.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS matches (
			match_id     TEXT PRIMARY KEY,
			category     TEXT NOT NULL DEFAULT '',
			match_date   TEXT NOT NULL DEFAULT '',
			home_team    TEXT NOT NULL,
			away_team    TEXT NOT NULL,
			home_points  INTEGER NOT NULL,
			away_points  INTEGER NOT NULL,
			verified     BOOLEAN,
			bundle       TEXT NOT NULL,
			report       TEXT,
			processed_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_date ON matches (match_date);
	`)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveResult upserts a match bundle and optional verification report.
func (s *SQLiteStore) SaveResult(ctx context.Context, bundle *pbp.Bundle, report *reconciliation.Report) error {
	bundleJSON, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	var reportJSON []byte
	var verified sql.NullBool
	if report != nil {
		if reportJSON, err = json.Marshal(report); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		verified = sql.NullBool{Bool: report.Clean, Valid: true}
	}

	sum := summaryFromBundle(bundle, report)
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO matches (match_id, category, match_date, home_team, away_team,
				home_points, away_points, verified, bundle, report, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (match_id) DO UPDATE SET
			category = excluded.category,
			match_date = excluded.match_date,
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			home_points = excluded.home_points,
			away_points = excluded.away_points,
			verified = excluded.verified,
			bundle = excluded.bundle,
			report = excluded.report,
			processed_at = excluded.processed_at
	`, bundle.MatchID, bundle.Category, bundle.MatchDate, sum.HomeTeam, sum.AwayTeam,
		sum.HomePoints, sum.AwayPoints, verified, string(bundleJSON), nullableString(reportJSON), bundle.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", bundle.MatchID, err)
	}
	return nil
}

func nullableString(b []byte) sql.NullString {
	if len(b) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(b), Valid: true}
}

// GetResult loads a stored bundle and its report, if any.
func (s *SQLiteStore) GetResult(ctx context.Context, matchID string) (*pbp.Bundle, *reconciliation.Report, error) {
	var bundleJSON string
	var reportJSON sql.NullString
	err := s.conn.QueryRowContext(ctx,
		`SELECT bundle, report FROM matches WHERE match_id = ?`, matchID,
	).Scan(&bundleJSON, &reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	return decodeResult(matchID, []byte(bundleJSON), []byte(reportJSON.String))
}

// HasMatch reports whether a result is already stored.
func (s *SQLiteStore) HasMatch(ctx context.Context, matchID string) (bool, error) {
	var one int
	err := s.conn.QueryRowContext(ctx,
		`SELECT 1 FROM matches WHERE match_id = ?`, matchID,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check match %s: %w", matchID, err)
	}
	return true, nil
}

// ListMatches returns the newest stored matches, most recent first.
func (s *SQLiteStore) ListMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT match_id, category, match_date, home_team, away_team,
			home_points, away_points, verified, processed_at
		FROM matches
		ORDER BY processed_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// DeleteMatch removes a stored result.
func (s *SQLiteStore) DeleteMatch(ctx context.Context, matchID string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM matches WHERE match_id = ?`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return nil
}
