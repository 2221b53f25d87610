package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
)

// PostgresStore is the service-side store.
type PostgresStore struct {
	conn *sql.DB
}

// NewPostgresStore connects, configures the pool, and ensures the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{conn: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) createSchema() error {
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
			bundle       JSONB NOT NULL,
			report       JSONB,
			processed_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_matches_date ON matches (match_date);
		CREATE INDEX IF NOT EXISTS idx_matches_category ON matches (category);
	`)
	return err
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// SaveResult upserts a match bundle and optional verification report.
func (s *PostgresStore) SaveResult(ctx context.Context, bundle *pbp.Bundle, report *reconciliation.Report) error {
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (match_id) DO UPDATE SET
			category = EXCLUDED.category,
			match_date = EXCLUDED.match_date,
			home_team = EXCLUDED.home_team,
			away_team = EXCLUDED.away_team,
			home_points = EXCLUDED.home_points,
			away_points = EXCLUDED.away_points,
			verified = EXCLUDED.verified,
			bundle = EXCLUDED.bundle,
			report = EXCLUDED.report,
			processed_at = EXCLUDED.processed_at
	`, bundle.MatchID, bundle.Category, bundle.MatchDate, sum.HomeTeam, sum.AwayTeam,
		sum.HomePoints, sum.AwayPoints, verified, bundleJSON, reportJSON, bundle.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to save match %s: %w", bundle.MatchID, err)
	}
	return nil
}

// GetResult loads a stored bundle and its report, if any.
func (s *PostgresStore) GetResult(ctx context.Context, matchID string) (*pbp.Bundle, *reconciliation.Report, error) {
	var bundleJSON []byte
	var reportJSON []byte
	err := s.conn.QueryRowContext(ctx,
		`SELECT bundle, report FROM matches WHERE match_id = $1`, matchID,
	).Scan(&bundleJSON, &reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	return decodeResult(matchID, bundleJSON, reportJSON)
}

// HasMatch reports whether a result is already stored.
func (s *PostgresStore) HasMatch(ctx context.Context, matchID string) (bool, error) {
	var exists bool
	err := s.conn.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM matches WHERE match_id = $1)`, matchID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check match %s: %w", matchID, err)
	}
	return exists, nil
}

// ListMatches returns the newest stored matches, most recent first.
func (s *PostgresStore) ListMatches(ctx context.Context, limit int) ([]MatchSummary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.conn.QueryContext(ctx, `
		SELECT match_id, category, match_date, home_team, away_team,
			home_points, away_points, verified, processed_at
		FROM matches
		ORDER BY processed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// DeleteMatch removes a stored result.
func (s *PostgresStore) DeleteMatch(ctx context.Context, matchID string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM matches WHERE match_id = $1`, matchID)
	if err != nil {
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return nil
}

func decodeResult(matchID string, bundleJSON, reportJSON []byte) (*pbp.Bundle, *reconciliation.Report, error) {
	var bundle pbp.Bundle
	if err := json.Unmarshal(bundleJSON, &bundle); err != nil {
		return nil, nil, fmt.Errorf("failed to decode bundle for match %s: %w", matchID, err)
	}
	var report *reconciliation.Report
	if len(reportJSON) > 0 {
		report = &reconciliation.Report{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, nil, fmt.Errorf("failed to decode report for match %s: %w", matchID, err)
		}
	}
	return &bundle, report, nil
}

func scanSummaries(rows *sql.Rows) ([]MatchSummary, error) {
	var out []MatchSummary
	for rows.Next() {
		var m MatchSummary
		var verified sql.NullBool
		if err := rows.Scan(&m.MatchID, &m.Category, &m.MatchDate, &m.HomeTeam, &m.AwayTeam,
			&m.HomePoints, &m.AwayPoints, &verified, &m.ProcessedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		if verified.Valid {
			v := verified.Bool
			m.Verified = &v
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
