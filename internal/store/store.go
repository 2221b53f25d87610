package store

import (
	"context"
	"errors"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
)

// ErrNotFound is returned when a match has no stored result.
var ErrNotFound = errors.New("match not found")

// MatchSummary is the listing row for a stored match.
type MatchSummary struct {
	MatchID     string    `json:"match_id"`
	Category    string    `json:"category,omitempty"`
	MatchDate   string    `json:"match_date,omitempty"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomePoints  int       `json:"home_points"`
	AwayPoints  int       `json:"away_points"`
	Verified    *bool     `json:"verified,omitempty"` // nil when never verified
	ProcessedAt time.Time `json:"processed_at"`
}

// Store persists replayed matches and their verification reports. The
// service runs on Postgres; the CLI carries an embedded SQLite store.
type Store interface {
	// SaveResult upserts a match bundle; report may be nil.
	SaveResult(ctx context.Context, bundle *pbp.Bundle, report *reconciliation.Report) error
	// GetResult loads a stored bundle; the report is nil if none was saved.
	GetResult(ctx context.Context, matchID string) (*pbp.Bundle, *reconciliation.Report, error)
	// HasMatch reports whether a result is already stored.
	HasMatch(ctx context.Context, matchID string) (bool, error)
	ListMatches(ctx context.Context, limit int) ([]MatchSummary, error)
	DeleteMatch(ctx context.Context, matchID string) error
	Close() error
}

func summaryFromBundle(b *pbp.Bundle, report *reconciliation.Report) MatchSummary {
	s := MatchSummary{
		MatchID:     b.MatchID,
		Category:    b.Category,
		MatchDate:   b.MatchDate,
		HomeTeam:    b.Teams[pbp.SideHome],
		AwayTeam:    b.Teams[pbp.SideAway],
		HomePoints:  int(pbp.StatValue(b.TeamTotals[pbp.SideHome].Stats, "PTS")),
		AwayPoints:  int(pbp.StatValue(b.TeamTotals[pbp.SideAway].Stats, "PTS")),
		ProcessedAt: b.GeneratedAt,
	}
	if report != nil {
		clean := report.Clean
		s.Verified = &clean
	}
	return s
}
