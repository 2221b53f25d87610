package pbp

import "testing"

func TestAbsoluteSecond(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)

	tests := []struct {
		name   string
		period int
		clock  string
		want   int
		wantP  int
		wantOK bool
	}{
		{"q1 start", 1, "10:00", 0, 1, true},
		{"mid q1", 1, "09:45", 15, 1, true},
		{"q2", 2, "07:30", 750, 2, true},
		{"q4 end", 4, "00:00", 2400, 4, true},
		{"period prefix overrides row", 1, "P3 02:15", 1665, 3, true},
		{"period prefix compact", 1, "P302:15", 1665, 3, true},
		{"overlong remaining clamps to period start", 2, "12:00", 600, 2, true},
		{"empty clock", 1, "", 0, 1, false},
		{"garbage clock", 1, "end of period", 0, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotP, ok := n.AbsoluteSecond(tt.period, tt.clock)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got != tt.want || gotP != tt.wantP {
				t.Errorf("got (%d, %d), want (%d, %d)", got, gotP, tt.want, tt.wantP)
			}
		})
	}
}

func TestAbsoluteSecondOvertime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OvertimeSeconds = 300
	n := NewNormalizer(cfg, nil)

	got, p, ok := n.AbsoluteSecond(1, "P5 04:30")
	if !ok {
		t.Fatal("expected overtime clock to parse")
	}
	if p != 5 {
		t.Errorf("period = %d, want 5", p)
	}
	if want := 2400 + 300 - 270; got != want {
		t.Errorf("second = %d, want %d", got, want)
	}
	if label := cfg.PeriodLabel(5); label != "OT1" {
		t.Errorf("label = %q, want OT1", label)
	}
	if p := cfg.PeriodOfSecond(2650); p != 5 {
		t.Errorf("PeriodOfSecond(2650) = %d, want 5", p)
	}
	if p := cfg.PeriodOfSecond(2400); p != 4 {
		t.Errorf("boundary second should close Q4, got period %d", p)
	}
}

func TestNormalizeTags(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)

	ev, ok := n.Normalize(RawEvent{
		Side:        SideHome,
		Period:      1,
		Clock:       "09:45",
		Description: "23, Smith made 3-pt jump shot",
		Tags:        []string{TagThreePoint, TagMade},
	}, nil)
	if !ok {
		t.Fatal("expected row to normalize")
	}
	if ev.Kind != KindShot3 || !ev.Made {
		t.Errorf("got kind=%v made=%v, want 3pt make", ev.Kind, ev.Made)
	}
	if ev.Jersey != "23" {
		t.Errorf("jersey = %q, want 23", ev.Jersey)
	}
	if ev.Second != 15 {
		t.Errorf("second = %d, want 15", ev.Second)
	}
}

func TestNormalizeTextFallback(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)

	ev, ok := n.Normalize(RawEvent{
		Side:        SideAway,
		Period:      2,
		Clock:       "05:00",
		Description: "7 Jones made driving layup",
	}, nil)
	if !ok {
		t.Fatal("expected tag-less shot row to normalize from text")
	}
	if ev.Kind != KindShot2 || !ev.Made || !ev.Paint {
		t.Errorf("got kind=%v made=%v paint=%v, want made paint 2pt", ev.Kind, ev.Made, ev.Paint)
	}
}

func TestNormalizeSubstitution(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)

	in, ok := n.Normalize(RawEvent{
		Side: SideHome, Period: 2, Clock: "05:00",
		Description: "07 Foster Substitution in",
		Tags:        []string{TagSubstitution},
	}, nil)
	if !ok || in.Kind != KindSubstitution || !in.SubIn {
		t.Fatalf("sub in: got %+v ok=%v", in, ok)
	}
	if in.Jersey != "7" {
		t.Errorf("jersey = %q, want leading zero stripped", in.Jersey)
	}

	out, ok := n.Normalize(RawEvent{
		Side: SideHome, Period: 2, Clock: "05:00",
		Description: "4 Baker Substitution out",
		Tags:        []string{TagSubstitution},
	}, nil)
	if !ok || out.SubIn {
		t.Fatalf("sub out: got %+v ok=%v", out, ok)
	}
}

func TestNormalizeSkipsUnusableRows(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)
	var diag Diagnostics

	events := n.NormalizeAll([]RawEvent{
		{Side: SideUnknown, Period: 1, Clock: "09:00", Description: "timeout"},
		{Side: SideHome, Period: 1, Clock: "09:00", Description: "end of period", Tags: []string{TagSubstitution}},
		{Side: SideHome, Period: 1, Clock: "08:59", Description: "1 Alder made layup", Tags: []string{TagTwoPoint, TagMade}},
	}, &diag)

	if len(events) != 1 {
		t.Fatalf("kept %d events, want 1", len(events))
	}
	if diag.SkippedRows != 2 {
		t.Errorf("skipped = %d, want 2", diag.SkippedRows)
	}
}

func TestNormalizeKeepsMalformedClockRows(t *testing.T) {
	// Scrape noise in the clock column must not cost the stat: the row is
	// pinned to second 0 and flagged, never dropped.
	n := NewNormalizer(DefaultConfig(), nil)
	var diag Diagnostics

	events := n.NormalizeAll([]RawEvent{
		{Side: SideHome, Period: 2, Clock: "", Description: "1 Alder made layup", Tags: []string{TagTwoPoint, TagMade}},
		{Side: SideAway, Period: 1, Clock: "0-0", Description: "5 Brook made layup", Tags: []string{TagTwoPoint, TagMade}},
	}, &diag)

	if len(events) != 2 {
		t.Fatalf("kept %d events, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Second != 0 {
			t.Errorf("second = %d, want 0 for an unreadable clock", ev.Second)
		}
		if !ev.Made || ev.Kind != KindShot2 {
			t.Errorf("got kind=%v made=%v, want made 2pt", ev.Kind, ev.Made)
		}
	}
	if diag.MalformedClocks != 2 {
		t.Errorf("malformed clocks = %d, want 2", diag.MalformedClocks)
	}
	if diag.SkippedRows != 0 {
		t.Errorf("skipped = %d, want 0", diag.SkippedRows)
	}
}

func TestNormalizeKeepsUnknownJersey(t *testing.T) {
	n := NewNormalizer(DefaultConfig(), nil)

	ev, ok := n.Normalize(RawEvent{
		Side: SideHome, Period: 1, Clock: "08:00",
		Description: "Team turnover",
		Tags:        []string{TagTurnover},
	}, nil)
	if !ok {
		t.Fatal("team-level row should normalize; it still drives the windows")
	}
	if ev.Jersey != "" || ev.Kind != KindTurnover {
		t.Errorf("got jersey=%q kind=%v", ev.Jersey, ev.Kind)
	}
}
