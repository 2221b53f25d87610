package reconciliation

import (
	"fmt"
	"sort"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
)

// Engine compares a replayed match against the official box score.
// The play-by-play feed is noisy; the published box is the reference.
type Engine struct {
	tolerance int
	metrics   *Metrics
}

// Metrics tracks verification statistics across an engine's lifetime.
type Metrics struct {
	TotalVerifications int
	CleanMatches       int
	MatchesWithDiffs   int
	LastVerification   time.Time
}

// NewEngine creates a verification engine. tolerance is the absolute
// per-stat difference still considered a match; zero demands exactness.
func NewEngine(tolerance int) *Engine {
	if tolerance < 0 {
		tolerance = 0
	}
	return &Engine{
		tolerance: tolerance,
		metrics:   &Metrics{},
	}
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics { return *e.metrics }

// Diff is one stat that disagrees between the replay and the box score.
type Diff struct {
	Player   string   `json:"player"`
	Side     pbp.Side `json:"side"`
	Stat     string   `json:"stat"`
	Derived  int      `json:"derived"`
	Official int      `json:"official"`
}

// Delta is the signed derived-minus-official difference.
func (d Diff) Delta() int { return d.Derived - d.Official }

func (d Diff) String() string {
	return fmt.Sprintf("%s %s: derived %d, official %d", d.Player, d.Stat, d.Derived, d.Official)
}

// Report is the outcome of verifying one match.
type Report struct {
	MatchID        string    `json:"match_id"`
	Clean          bool      `json:"clean"`
	PlayerDiffs    []Diff    `json:"player_diffs,omitempty"`
	TeamDiffs      []Diff    `json:"team_diffs,omitempty"`
	MissingPlayers []string  `json:"missing_players,omitempty"`
	CheckedPlayers int       `json:"checked_players"`
	CheckedStats   int       `json:"checked_stats"`
	VerifiedAt     time.Time `json:"verified_at"`
}

// Summary renders a one-line verdict.
func (r *Report) Summary() string {
	if r.Clean {
		return fmt.Sprintf("match %s: %d players, %d stats checked, no differences", r.MatchID, r.CheckedPlayers, r.CheckedStats)
	}
	return fmt.Sprintf("match %s: %d player diffs, %d team diffs, %d unmatched box rows",
		r.MatchID, len(r.PlayerDiffs), len(r.TeamDiffs), len(r.MissingPlayers))
}

// The player stats the published box carries and their replay counterparts.
var playerChecks = []struct {
	stat     string
	derived  func(*pbp.StatLine) int
	official func(*pbp.OfficialLine) int
}{
	{"PTS", func(s *pbp.StatLine) int { return s.Points }, func(o *pbp.OfficialLine) int { return o.Points }},
	{"REB", func(s *pbp.StatLine) int { return s.Rebounds() }, func(o *pbp.OfficialLine) int { return o.Rebounds }},
	{"AST", func(s *pbp.StatLine) int { return s.Assists }, func(o *pbp.OfficialLine) int { return o.Assists }},
	{"STL", func(s *pbp.StatLine) int { return s.Steals }, func(o *pbp.OfficialLine) int { return o.Steals }},
	{"BLK", func(s *pbp.StatLine) int { return s.Blocks }, func(o *pbp.OfficialLine) int { return o.Blocks }},
	{"TOV", func(s *pbp.StatLine) int { return s.Turnovers }, func(o *pbp.OfficialLine) int { return o.Turnovers }},
}

// Verify compares a replayed result against the official lines scraped with
// it. An empty official box verifies trivially clean: there is nothing to
// disagree with.
func (e *Engine) Verify(res *pbp.Result, official []pbp.OfficialLine, summary map[string]pbp.SummaryPair) *Report {
	e.metrics.TotalVerifications++
	e.metrics.LastVerification = time.Now()

	report := &Report{
		MatchID:    res.MatchID,
		VerifiedAt: time.Now().UTC(),
	}

	for i := range official {
		line := &official[i]
		player := MatchPlayer(res, line)
		if player == nil {
			report.MissingPlayers = append(report.MissingPlayers, line.Name)
			continue
		}
		report.CheckedPlayers++
		for _, check := range playerChecks {
			report.CheckedStats++
			derived := check.derived(&player.Line)
			want := check.official(line)
			if abs(derived-want) > e.tolerance {
				report.PlayerDiffs = append(report.PlayerDiffs, Diff{
					Player:   player.Name,
					Side:     player.Side,
					Stat:     check.stat,
					Derived:  derived,
					Official: want,
				})
			}
		}
	}

	report.TeamDiffs = e.verifyTeams(res, summary)

	sort.Slice(report.PlayerDiffs, func(i, j int) bool {
		a, b := report.PlayerDiffs[i], report.PlayerDiffs[j]
		if a.Player != b.Player {
			return a.Player < b.Player
		}
		return a.Stat < b.Stat
	})

	report.Clean = len(report.PlayerDiffs) == 0 && len(report.TeamDiffs) == 0 && len(report.MissingPlayers) == 0
	if report.Clean {
		e.metrics.CleanMatches++
	} else {
		e.metrics.MatchesWithDiffs++
	}
	return report
}

// verifyTeams checks the published team comparison rows the replay also
// derives. Unknown summary labels are skipped rather than reported; the
// widget adds and removes rows between seasons.
func (e *Engine) verifyTeams(res *pbp.Result, summary map[string]pbp.SummaryPair) []Diff {
	derived := map[string]func(*pbp.TeamStats) int{
		"PTS":     func(t *pbp.TeamStats) int { return t.Points },
		"PITP":    func(t *pbp.TeamStats) int { return t.PaintPoints },
		"2ND PTS": func(t *pbp.TeamStats) int { return t.SecondChancePoints },
		"OFF TO":  func(t *pbp.TeamStats) int { return t.PointsOffTurnovers },
		"FBPS":    func(t *pbp.TeamStats) int { return t.FastBreakPoints },
	}

	labels := make([]string, 0, len(summary))
	for label := range summary {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var diffs []Diff
	for _, label := range labels {
		get, ok := derived[label]
		if !ok {
			continue
		}
		pair := summary[label]
		for _, side := range pbp.Sides {
			team := res.TeamStats[side]
			if team == nil {
				continue
			}
			want := pair.Home
			if side == pbp.SideAway {
				want = pair.Away
			}
			if got := get(team); abs(got-want) > e.tolerance {
				diffs = append(diffs, Diff{
					Player:   team.Name,
					Side:     side,
					Stat:     label,
					Derived:  got,
					Official: want,
				})
			}
		}
	}
	return diffs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
