package reconciliation

import (
	"testing"

	"github.com/fortuna/courtside/internal/pbp"
)

func replayFixture(t *testing.T) *pbp.Result {
	t.Helper()
	in := &pbp.MatchInput{
		MatchID: "2594034",
		Teams:   map[pbp.Side]string{pbp.SideHome: "Hornets", pbp.SideAway: "Falcons"},
		Roster: []pbp.RosterEntry{
			{Side: pbp.SideHome, Jersey: "1", Name: "Alder"},
			{Side: pbp.SideAway, Jersey: "1", Name: "Quinn"},
		},
		Events: []pbp.RawEvent{
			{Side: pbp.SideHome, Period: 1, Clock: "09:00", Description: "1 Alder made layup", Tags: []string{pbp.TagTwoPoint, pbp.TagMade}},
			{Side: pbp.SideHome, Period: 1, Clock: "08:00", Description: "1 Alder defensive rebound", Tags: []string{pbp.TagRebound}},
			{Side: pbp.SideAway, Period: 1, Clock: "07:00", Description: "1 Quinn made 3-pt shot", Tags: []string{pbp.TagThreePoint, pbp.TagMade}},
		},
	}
	res, err := pbp.Replay(in)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestVerifyClean(t *testing.T) {
	res := replayFixture(t)
	official := []pbp.OfficialLine{
		{Side: pbp.SideHome, Jersey: "1", Name: "Alder", Points: 2, Rebounds: 1},
		{Side: pbp.SideAway, Jersey: "1", Name: "Quinn", Points: 3},
	}
	summary := map[string]pbp.SummaryPair{
		"PTS": {Home: 2, Away: 3},
	}

	e := NewEngine(0)
	report := e.Verify(res, official, summary)
	if !report.Clean {
		t.Fatalf("expected clean report, got %s", report.Summary())
	}
	if report.CheckedPlayers != 2 {
		t.Errorf("checked players = %d, want 2", report.CheckedPlayers)
	}
	if m := e.Metrics(); m.CleanMatches != 1 || m.TotalVerifications != 1 {
		t.Errorf("metrics = %+v", m)
	}
}

func TestVerifyReportsDiffs(t *testing.T) {
	res := replayFixture(t)
	official := []pbp.OfficialLine{
		{Side: pbp.SideHome, Jersey: "1", Name: "Alder", Points: 4, Rebounds: 1},
	}
	summary := map[string]pbp.SummaryPair{
		"PTS":    {Home: 4, Away: 3},
		"IGNORED": {Home: 1, Away: 1},
	}

	e := NewEngine(0)
	report := e.Verify(res, official, summary)
	if report.Clean {
		t.Fatal("expected diffs")
	}
	if len(report.PlayerDiffs) != 1 {
		t.Fatalf("player diffs = %v", report.PlayerDiffs)
	}
	d := report.PlayerDiffs[0]
	if d.Stat != "PTS" || d.Derived != 2 || d.Official != 4 || d.Delta() != -2 {
		t.Errorf("diff = %+v", d)
	}
	// Only the home PTS row disagrees; unknown labels are skipped.
	if len(report.TeamDiffs) != 1 || report.TeamDiffs[0].Side != pbp.SideHome {
		t.Errorf("team diffs = %v", report.TeamDiffs)
	}
}

func TestVerifyTolerance(t *testing.T) {
	res := replayFixture(t)
	official := []pbp.OfficialLine{
		{Side: pbp.SideHome, Jersey: "1", Name: "Alder", Points: 3, Rebounds: 1},
	}
	if report := NewEngine(1).Verify(res, official, nil); !report.Clean {
		t.Errorf("one-point slack should pass with tolerance 1: %s", report.Summary())
	}
	if report := NewEngine(0).Verify(res, official, nil); report.Clean {
		t.Error("exact engine should flag the one-point slack")
	}
}

func TestVerifyUnmatchedBoxRow(t *testing.T) {
	res := replayFixture(t)
	official := []pbp.OfficialLine{
		{Side: pbp.SideHome, Jersey: "99", Name: "Nobody", Points: 10},
	}
	report := NewEngine(0).Verify(res, official, nil)
	if report.Clean {
		t.Fatal("unmatched box row should not verify clean")
	}
	if len(report.MissingPlayers) != 1 || report.MissingPlayers[0] != "Nobody" {
		t.Errorf("missing = %v", report.MissingPlayers)
	}
}

func TestMatchPlayerByName(t *testing.T) {
	res := replayFixture(t)

	// No jersey, box-style inverted name.
	line := &pbp.OfficialLine{Side: pbp.SideHome, Name: "ALDER"}
	if p := MatchPlayer(res, line); p == nil || p.Name != "Alder" {
		t.Errorf("name fallback failed: %+v", p)
	}
	// Same jersey on the other side must not cross-match.
	quinn := &pbp.OfficialLine{Side: pbp.SideAway, Jersey: "1"}
	if p := MatchPlayer(res, quinn); p == nil || p.Name != "Quinn" {
		t.Errorf("side-scoped jersey match failed: %+v", p)
	}
}

func TestMatchNames(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"John Smith", "SMITH, John", true},
		{"John Smith", "John P. Smith", false},
		{"J-R Smith", "Smith J R", true},
		{"John Smith", "Jane Smith", false},
		{"", "John", false},
	}
	for _, tt := range tests {
		if got := matchNames(tt.a, tt.b); got != tt.want {
			t.Errorf("matchNames(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
