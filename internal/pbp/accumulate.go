package pbp

// farPast is a window cursor value safely before the opening tip.
const farPast = -99

// windowState tracks the most recent trigger for each team bonus category.
type windowState struct {
	lastOwnOffRebound int // opens the second-chance window
	lastOppTurnover   int // opens the points-off-turnover window
	lastTransition    int // own steal or defensive rebound
}

func newWindowState() *windowState {
	return &windowState{
		lastOwnOffRebound: farPast,
		lastOppTurnover:   farPast,
		lastTransition:    farPast,
	}
}

// Diagnostics counts the rows a replay could not fully use. None of these
// abort processing; a live feed is never pristine.
type Diagnostics struct {
	SkippedRows     int `json:"skipped_rows"`     // no side, or a substitution row with no jersey
	MalformedClocks int `json:"malformed_clocks"` // unreadable clock, event pinned to second 0
	UnmappedEvents  int `json:"unmapped_events"`  // jersey absent from the roster
	RejectedStints  int `json:"rejected_stints"`  // non-positive or implausibly long
}

// Accumulator holds all mutable replay state. It is built once per match
// and driven through the counting, attribution, and lineup passes in order.
type Accumulator struct {
	cfg     Config
	ids     *IdentityMap
	players map[string]*PlayerStats
	teams   map[Side]*TeamStats
	// periods[label][player] buckets per-period player lines.
	periods map[string]map[string]*StatLine
	windows map[Side]*windowState
	diag    Diagnostics
}

func newAccumulator(cfg Config, ids *IdentityMap, roster []RosterEntry, teamNames map[Side]string) *Accumulator {
	a := &Accumulator{
		cfg:     cfg,
		ids:     ids,
		players: make(map[string]*PlayerStats, len(roster)),
		teams:   make(map[Side]*TeamStats, 2),
		periods: make(map[string]map[string]*StatLine),
		windows: map[Side]*windowState{SideHome: newWindowState(), SideAway: newWindowState()},
	}
	for _, side := range Sides {
		a.teams[side] = &TeamStats{Name: teamNames[side], Side: side}
	}
	// Every rostered player gets a line, even with zero events.
	for _, entry := range roster {
		if entry.Name == "" {
			continue
		}
		if _, dup := a.players[entry.Name]; dup {
			continue
		}
		a.players[entry.Name] = &PlayerStats{
			Name:            entry.Name,
			Jersey:          NormalizeJersey(entry.Jersey),
			Side:            entry.Side,
			Team:            teamNames[entry.Side],
			OfficialMinutes: entry.Minutes,
		}
	}
	return a
}

func (a *Accumulator) periodLine(label, player string) *StatLine {
	bucket, ok := a.periods[label]
	if !ok {
		bucket = make(map[string]*StatLine)
		a.periods[label] = bucket
	}
	line, ok := bucket[player]
	if !ok {
		line = &StatLine{}
		bucket[player] = line
	}
	return line
}

// resolve maps an event to its rostered player. Misses are tallied only in
// the counting pass; later passes revisit the same rows.
func (a *Accumulator) resolve(ev Event, tally bool) (*PlayerStats, string, bool) {
	if ev.Jersey == "" {
		return nil, "", false
	}
	name, ok := a.ids.Resolve(ev.Side, ev.Jersey)
	if !ok {
		if tally {
			a.diag.UnmappedEvents++
		}
		return nil, "", false
	}
	return a.players[name], name, true
}

// runCountingPass walks the stream once, maintaining the heuristic windows
// and crediting counting stats. Team points and the bonus categories accrue
// from every typed row; player credit additionally requires an identity.
func (a *Accumulator) runCountingPass(events []Event) {
	for _, ev := range events {
		side := ev.Side
		w := a.windows[side]

		// Window triggers fire regardless of player resolution.
		switch ev.Kind {
		case KindTurnover:
			a.windows[side.Opponent()].lastOppTurnover = ev.Second
		case KindSteal:
			w.lastTransition = ev.Second
		case KindRebound:
			if ev.Offensive {
				w.lastOwnOffRebound = ev.Second
			} else {
				w.lastTransition = ev.Second
			}
		}

		if ev.Made {
			pts := ev.PointValue()
			team := a.teams[side]
			team.Points += pts
			if ev.IsShot() {
				if ev.Paint {
					team.PaintPoints += pts
				}
				// Each consuming window credits once per trigger.
				if ev.Second-w.lastOwnOffRebound <= a.cfg.SecondChanceWindow {
					team.SecondChancePoints += pts
					w.lastOwnOffRebound = farPast
				}
				if ev.Second-w.lastOppTurnover <= a.cfg.TurnoverWindow {
					team.PointsOffTurnovers += pts
					w.lastOppTurnover = farPast
				}
				if ev.FastBreak || ev.Second-w.lastTransition <= a.cfg.TransitionWindow {
					team.FastBreakPoints += pts
					w.lastTransition = farPast
				}
			}
		}

		if ev.Kind == KindSubstitution || ev.Kind == KindUnknown {
			continue
		}
		player, name, ok := a.resolve(ev, true)
		if !ok {
			continue
		}
		label := a.cfg.PeriodLabel(ev.Period)
		lines := [2]*StatLine{&player.Line, a.periodLine(label, name)}
		for _, s := range lines {
			creditEvent(s, ev)
		}
	}
}

func creditEvent(s *StatLine, ev Event) {
	switch ev.Kind {
	case KindShot3:
		s.FieldGoalsAttempted++
		s.ThreePointsAttempted++
		if ev.Made {
			s.FieldGoalsMade++
			s.ThreePointsMade++
			s.Points += 3
		}
	case KindShot2:
		s.FieldGoalsAttempted++
		s.TwoPointsAttempted++
		if ev.Made {
			s.FieldGoalsMade++
			s.TwoPointsMade++
			s.Points += 2
		}
	case KindFreeThrow:
		s.FreeThrowsAttempted++
		if ev.Made {
			s.FreeThrowsMade++
			s.Points++
		}
	case KindRebound:
		if ev.Offensive {
			s.OffensiveRebounds++
		} else {
			s.DefensiveRebounds++
		}
	case KindAssist:
		s.Assists++
	case KindSteal:
		s.Steals++
	case KindBlock:
		s.Blocks++
	case KindTurnover:
		s.Turnovers++
	case KindFoul:
		s.PersonalFouls++
	case KindFoulDrawn:
		s.FoulsDrawn++
	}
}
