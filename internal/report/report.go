// Package report renders processed matches as console tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/store"
)

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, b *pbp.Bundle) {
	home := b.TeamTotals[pbp.SideHome]
	away := b.TeamTotals[pbp.SideAway]
	fmt.Fprintf(w, "\n%s %d – %d %s  |  Date: %s  |  Match: %s\n\n",
		b.Teams[pbp.SideHome], int(pbp.StatValue(home.Stats, "PTS")),
		int(pbp.StatValue(away.Stats, "PTS")), b.Teams[pbp.SideAway],
		b.MatchDate, b.MatchID)
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintPlayerTable prints the per-player box score for one side.
func PrintPlayerTable(w io.Writer, b *pbp.Bundle, side pbp.Side) {
	fmt.Fprintf(w, "%s\n", b.Teams[side])

	table := newTable(w)
	table.Header(
		"NO", "NAME", "MIN", "PTS", "FG", "3P", "FT",
		"REB", "AST", "STL", "BLK", "TOV", "PF", "+/-", "TS%", "PIE",
	)

	for _, p := range b.Players {
		if p.Side != side {
			continue
		}
		table.Append(
			p.Jersey,
			p.Name,
			p.Minutes,
			statInt(p.Stats, "PTS"),
			shotLine(p.Stats, "FGM", "FGA"),
			shotLine(p.Stats, "3PM", "3PA"),
			shotLine(p.Stats, "FTM", "FTA"),
			statInt(p.Stats, "REB"),
			statInt(p.Stats, "AST"),
			statInt(p.Stats, "STL"),
			statInt(p.Stats, "BLK"),
			statInt(p.Stats, "TOV"),
			statInt(p.Stats, "PF"),
			statInt(p.Stats, "+/-"),
			statPct(p.Stats, "TS%"),
			statPct(p.Stats, "PIE"),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintTeamTable prints the head-to-head team totals.
func PrintTeamTable(w io.Writer, b *pbp.Bundle) {
	table := newTable(w)
	table.Header("TEAM", "PTS", "FG", "3P", "FT", "REB", "AST", "TOV",
		"PITP", "2ND PTS", "OFF TO", "FBPS", "OFFRTG", "PACE")

	for _, side := range pbp.Sides {
		t, ok := b.TeamTotals[side]
		if !ok {
			continue
		}
		table.Append(
			t.Name,
			statInt(t.Stats, "PTS"),
			shotLine(t.Stats, "FGM", "FGA"),
			shotLine(t.Stats, "3PM", "3PA"),
			shotLine(t.Stats, "FTM", "FTA"),
			statInt(t.Stats, "REB"),
			statInt(t.Stats, "AST"),
			statInt(t.Stats, "TOV"),
			statInt(t.Stats, "PITP"),
			statInt(t.Stats, "2ND PTS"),
			statInt(t.Stats, "OFF TO"),
			statInt(t.Stats, "FBPS"),
			statPct(t.Stats, "OFFRTG"),
			statPct(t.Stats, "PACE"),
		)
	}
	table.Render()
	fmt.Fprintln(w)
}

// PrintMatchList prints stored match summaries, newest first.
func PrintMatchList(w io.Writer, matches []store.MatchSummary) {
	table := newTable(w)
	table.Header("MATCH", "DATE", "HOME", "AWAY", "SCORE", "VERIFIED", "PROCESSED")

	for _, m := range matches {
		verified := "—"
		if m.Verified != nil {
			if *m.Verified {
				verified = "clean"
			} else {
				verified = "diffs"
			}
		}
		table.Append(
			m.MatchID,
			m.MatchDate,
			m.HomeTeam,
			m.AwayTeam,
			fmt.Sprintf("%d-%d", m.HomePoints, m.AwayPoints),
			verified,
			m.ProcessedAt.Format("2006-01-02 15:04"),
		)
	}
	table.Render()
}

// PrintVerificationReport prints the reconciliation outcome, diff by diff.
func PrintVerificationReport(w io.Writer, r *reconciliation.Report) {
	fmt.Fprintf(w, "\n%s\n\n", r.Summary())
	if r.Clean {
		return
	}

	if len(r.PlayerDiffs) > 0 || len(r.TeamDiffs) > 0 {
		table := newTable(w)
		table.Header("SCOPE", "NAME", "STAT", "DERIVED", "OFFICIAL", "DELTA")
		for _, d := range r.TeamDiffs {
			table.Append("team", d.Player, d.Stat,
				strconv.Itoa(d.Derived), strconv.Itoa(d.Official), strconv.Itoa(d.Delta()))
		}
		for _, d := range r.PlayerDiffs {
			table.Append("player", d.Player, d.Stat,
				strconv.Itoa(d.Derived), strconv.Itoa(d.Official), strconv.Itoa(d.Delta()))
		}
		table.Render()
	}

	for _, name := range r.MissingPlayers {
		fmt.Fprintf(w, "unmatched box score row: %s\n", name)
	}
	fmt.Fprintln(w)
}

func statInt(stats map[string]float64, key string) string {
	return strconv.Itoa(int(pbp.StatValue(stats, key)))
}

func statPct(stats map[string]float64, key string) string {
	return fmt.Sprintf("%.1f", pbp.StatValue(stats, key))
}

func shotLine(stats map[string]float64, made, attempted string) string {
	return fmt.Sprintf("%d-%d",
		int(pbp.StatValue(stats, made)), int(pbp.StatValue(stats, attempted)))
}
