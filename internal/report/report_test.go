package report

import (
	"strings"
	"testing"
	"time"

	"github.com/fortuna/courtside/internal/pbp"
	"github.com/fortuna/courtside/internal/reconciliation"
	"github.com/fortuna/courtside/internal/store"
)

func renderBundle() *pbp.Bundle {
	return &pbp.Bundle{
		MatchID:   "2594034",
		MatchDate: "2026-02-14",
		Teams:     map[pbp.Side]string{pbp.SideHome: "Hornets", pbp.SideAway: "Falcons"},
		Players: []pbp.PlayerLine{
			{Name: "Alder", Jersey: "1", Team: "Hornets", Side: pbp.SideHome, Minutes: "32:10",
				Stats: map[string]float64{"PTS": 21, "FGM": 8, "FGA": 14, "REB": 5, "TS%": 64.2}},
			{Name: "Quinn", Jersey: "7", Team: "Falcons", Side: pbp.SideAway, Minutes: "28:45",
				Stats: map[string]float64{"PTS": 12}},
		},
		TeamTotals: map[pbp.Side]pbp.TeamLine{
			pbp.SideHome: {Name: "Hornets", Side: pbp.SideHome, Stats: map[string]float64{"PTS": 63, "PITP": 30}},
			pbp.SideAway: {Name: "Falcons", Side: pbp.SideAway, Stats: map[string]float64{"PTS": 58}},
		},
		GeneratedAt: time.Now().UTC(),
	}
}

func TestPrintPlayerTableFiltersBySide(t *testing.T) {
	var buf strings.Builder
	PrintPlayerTable(&buf, renderBundle(), pbp.SideHome)

	out := buf.String()
	if !strings.Contains(out, "Alder") || !strings.Contains(out, "8-14") {
		t.Errorf("output missing home player line:\n%s", out)
	}
	if strings.Contains(out, "Quinn") {
		t.Errorf("away player leaked into home table:\n%s", out)
	}
}

func TestPrintMatchSummaryScore(t *testing.T) {
	var buf strings.Builder
	PrintMatchSummary(&buf, renderBundle())
	if !strings.Contains(buf.String(), "Hornets 63 – 58 Falcons") {
		t.Errorf("summary = %s", buf.String())
	}
}

func TestPrintMatchList(t *testing.T) {
	clean := true
	var buf strings.Builder
	PrintMatchList(&buf, []store.MatchSummary{
		{MatchID: "m1", HomeTeam: "Hornets", AwayTeam: "Falcons",
			HomePoints: 63, AwayPoints: 58, Verified: &clean, ProcessedAt: time.Now()},
	})
	out := buf.String()
	if !strings.Contains(out, "63-58") || !strings.Contains(out, "clean") {
		t.Errorf("output = %s", out)
	}
}

func TestPrintVerificationReport(t *testing.T) {
	rep := &reconciliation.Report{
		MatchID: "m1",
		PlayerDiffs: []reconciliation.Diff{
			{Player: "Alder", Side: pbp.SideHome, Stat: "PTS", Derived: 21, Official: 23},
		},
		CheckedPlayers: 2,
		CheckedStats:   12,
	}
	var buf strings.Builder
	PrintVerificationReport(&buf, rep)

	out := buf.String()
	if !strings.Contains(out, "Alder") || !strings.Contains(out, "-2") {
		t.Errorf("output = %s", out)
	}

	buf.Reset()
	PrintVerificationReport(&buf, &reconciliation.Report{MatchID: "m1", Clean: true})
	if strings.Contains(buf.String(), "DELTA") {
		t.Errorf("clean report should not print a diff table:\n%s", buf.String())
	}
}
