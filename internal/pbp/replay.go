package pbp

import (
	"errors"
	"fmt"
)

// ErrIncompleteInput marks a match bundle missing the pieces a replay needs.
var ErrIncompleteInput = errors.New("incomplete match input")

// OfficialLine is one row of the published box score, used for
// reconciliation against the replayed totals.
type OfficialLine struct {
	Side     Side   `json:"side"`
	Jersey   string `json:"jersey"`
	Name     string `json:"name"`
	Minutes  string `json:"minutes,omitempty"`
	Points   int    `json:"points"`
	Rebounds int    `json:"rebounds"`
	Assists  int    `json:"assists"`
	Steals   int    `json:"steals"`
	Blocks   int    `json:"blocks"`
	Turnovers int   `json:"turnovers"`
}

// SummaryPair is one row of the published team comparison block.
type SummaryPair struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// MatchInput is everything scraped for one match, ready to replay.
type MatchInput struct {
	MatchID   string          `json:"match_id"`
	Category  string          `json:"category,omitempty"`
	MatchDate string          `json:"match_date,omitempty"`
	Teams     map[Side]string `json:"teams"`
	Roster    []RosterEntry   `json:"roster"`
	Events    []RawEvent      `json:"events"`

	OfficialBox     []OfficialLine         `json:"official_box,omitempty"`
	OfficialSummary map[string]SummaryPair `json:"official_summary,omitempty"`
}

// Result is a fully replayed match.
type Result struct {
	MatchID   string
	Category  string
	MatchDate string
	Teams     map[Side]string
	Players   map[string]*PlayerStats
	TeamStats map[Side]*TeamStats
	// Periods[label][player] holds the per-period lines, labels Q1..Q4, OT1...
	Periods     map[string]map[string]*StatLine
	Diagnostics Diagnostics
}

// Replay derives the full statistical record of a match from its
// play-by-play stream using the default configuration.
func Replay(in *MatchInput) (*Result, error) {
	return ReplayWithConfig(in, DefaultConfig(), nil)
}

// ReplayWithConfig is Replay with explicit clock conventions and an optional
// text classifier (nil means the default keyword rules).
func ReplayWithConfig(in *MatchInput, cfg Config, classify TextClassifier) (*Result, error) {
	if in == nil || in.MatchID == "" {
		return nil, fmt.Errorf("%w: missing match id", ErrIncompleteInput)
	}
	if len(in.Roster) == 0 {
		return nil, fmt.Errorf("%w: match %s has no roster", ErrIncompleteInput, in.MatchID)
	}
	if len(in.Events) == 0 {
		return nil, fmt.Errorf("%w: match %s has no play-by-play", ErrIncompleteInput, in.MatchID)
	}

	teams := map[Side]string{SideHome: "Home", SideAway: "Away"}
	for side, name := range in.Teams {
		if name != "" {
			teams[side] = name
		}
	}

	ids := BuildIdentityMap(in.Roster)
	acc := newAccumulator(cfg, ids, in.Roster, teams)

	norm := NewNormalizer(cfg, classify)
	events := norm.NormalizeAll(in.Events, &acc.diag)

	acc.runCountingPass(events)
	acc.runAttributionPass(events)
	acc.runLineupPass(events)
	acc.finalize()

	return &Result{
		MatchID:     in.MatchID,
		Category:    in.Category,
		MatchDate:   in.MatchDate,
		Teams:       teams,
		Players:     acc.players,
		TeamStats:   acc.teams,
		Periods:     acc.periods,
		Diagnostics: acc.diag,
	}, nil
}

// finalize aggregates team totals from player lines and derives the
// advanced metrics for every player and both teams.
func (a *Accumulator) finalize() {
	for _, p := range a.players {
		if t, ok := a.teams[p.Side]; ok {
			t.Totals.Add(&p.Line)
		}
	}

	for _, p := range a.players {
		p.Derived = ComputeMetrics(&p.Line)
	}

	home, away := a.teams[SideHome], a.teams[SideAway]
	home.Derived = ComputeTeamMetrics(home, away)
	away.Derived = ComputeTeamMetrics(away, home)
}
