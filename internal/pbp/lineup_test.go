package pbp

import "testing"

// The minutes script: two inferred starters, one substitution, and open
// stints closed at the final horn.
func lineupEvents() []RawEvent {
	return []RawEvent{
		raw(SideHome, 1, "09:00", "1 Alder made layup", TagTwoPoint, TagMade),
		raw(SideHome, 1, "08:00", "2 Baker made 3-pt shot", TagThreePoint, TagMade),
		raw(SideAway, 1, "07:00", "1 Quinn made layup", TagTwoPoint, TagMade),
		raw(SideHome, 1, "05:00", "2 Baker Substitution out", TagSubstitution),
		raw(SideHome, 1, "05:00", "7 Foster Substitution in", TagSubstitution),
		raw(SideHome, 1, "04:00", "1 Alder personal foul on 1", TagFoul),
	}
}

func TestLineupMinutes(t *testing.T) {
	res, err := Replay(testInput(lineupEvents()))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{
		"Alder":  2400, // full game
		"Baker":  300,  // tip to the 5:00 sub
		"Foster": 2100, // sub to the horn
		"Quinn":  2400,
		"Vega":   0,
	}
	for name, secs := range want {
		if got := res.Players[name].Line.Seconds; got != secs {
			t.Errorf("%s seconds = %d, want %d", name, got, secs)
		}
	}

	// Person-seconds conservation: exactly as many seconds credited as there
	// were players on the floor for the duration.
	total := 0
	for _, p := range res.Players {
		if p.Side == SideHome {
			total += p.Line.Seconds
		}
	}
	if total != 2*2400 {
		t.Errorf("home person-seconds = %d, want %d", total, 2*2400)
	}
}

func TestLineupPlusMinus(t *testing.T) {
	res, err := Replay(testInput(lineupEvents()))
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{
		"Alder":  3, // on court for 5 scored, 2 conceded
		"Baker":  3,
		"Foster": 0, // entered after all scoring
		"Quinn":  -3,
	}
	for name, pm := range want {
		if got := res.Players[name].Line.PlusMinus(); got != pm {
			t.Errorf("%s +/- = %d, want %d", name, got, pm)
		}
	}
}

func TestLineupOnCourtContext(t *testing.T) {
	res, err := Replay(testInput(lineupEvents()))
	if err != nil {
		t.Fatal(err)
	}

	alder := res.Players["Alder"].Line
	if alder.TeamFGA != 2 || alder.TeamFGM != 2 || alder.Team3PM != 1 {
		t.Errorf("Alder team context = %d/%d fg, %d 3pm; want 2/2, 1",
			alder.TeamFGM, alder.TeamFGA, alder.Team3PM)
	}
	if alder.OppFGA != 1 || alder.OppFGM != 1 {
		t.Errorf("Alder opp context = %d/%d, want 1/1", alder.OppFGM, alder.OppFGA)
	}
	quinn := res.Players["Quinn"].Line
	if quinn.OppFGA != 2 || quinn.OppFGM != 2 {
		t.Errorf("Quinn opp context = %d/%d, want 2/2", quinn.OppFGM, quinn.OppFGA)
	}
	if quinn.OppPF != 1 {
		t.Errorf("Quinn OppPF = %d, want 1", quinn.OppPF)
	}
}

func TestFoulDrawnFromDescription(t *testing.T) {
	res, err := Replay(testInput(lineupEvents()))
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Players["Quinn"].Line.FoulsDrawn; got != 1 {
		t.Errorf("Quinn FD = %d, want 1 from 'foul on 1'", got)
	}
	if got := res.Players["Alder"].Line.PersonalFouls; got != 1 {
		t.Errorf("Alder PF = %d, want 1", got)
	}
}

func TestStarterInferenceRespectsTeamSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TeamSize = 1

	in := testInput([]RawEvent{
		raw(SideHome, 1, "09:00", "1 Alder made layup", TagTwoPoint, TagMade),
		raw(SideHome, 1, "08:00", "2 Baker made layup", TagTwoPoint, TagMade),
	})
	res, err := ReplayWithConfig(in, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Players["Alder"].Line.Seconds == 0 {
		t.Error("first actor should be inferred on court")
	}
	if res.Players["Baker"].Line.Seconds != 0 {
		t.Error("team size cap ignored during starter inference")
	}
}

func TestImplausibleStintRejected(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStintSeconds = 100

	in := testInput([]RawEvent{
		raw(SideHome, 1, "09:00", "1 Alder made layup", TagTwoPoint, TagMade),
	})
	res, err := ReplayWithConfig(in, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Players["Alder"].Line.Seconds != 0 {
		t.Errorf("seconds = %d, want 0 for rejected stint", res.Players["Alder"].Line.Seconds)
	}
	if res.Diagnostics.RejectedStints != 1 {
		t.Errorf("rejected = %d, want 1", res.Diagnostics.RejectedStints)
	}
}

func TestReenteringPlayerAccumulatesStints(t *testing.T) {
	in := testInput([]RawEvent{
		raw(SideHome, 1, "09:00", "2 Baker made layup", TagTwoPoint, TagMade),
		raw(SideHome, 1, "08:00", "2 Baker Substitution out", TagSubstitution),
		raw(SideHome, 2, "10:00", "2 Baker Substitution in", TagSubstitution),
		raw(SideHome, 2, "08:00", "2 Baker Substitution out", TagSubstitution),
	})
	res, err := Replay(in)
	if err != nil {
		t.Fatal(err)
	}
	// 120s in Q1 plus 120s in Q2.
	if got := res.Players["Baker"].Line.Seconds; got != 240 {
		t.Errorf("Baker seconds = %d, want 240 across two stints", got)
	}
}
