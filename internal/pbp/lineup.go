package pbp

import "regexp"

// "Personal foul on 23" names the fouled opponent by jersey.
var foulOnPattern = regexp.MustCompile(`(?i)\son\s+(\d+)`)

// runLineupPass is the final walk over the stream: substitutions, stints and
// minutes, plus/minus, the on-court team and opponent context behind the
// rating formulas, and fouls drawn parsed from foul descriptions.
func (a *Accumulator) runLineupPass(events []Event) {
	// Starters are inferred, not announced: anyone who acts before their
	// side's first substitution was on the floor at the tip.
	firstSub := map[Side]int{SideHome: int(^uint(0) >> 1), SideAway: int(^uint(0) >> 1)}
	for _, ev := range events {
		if ev.Kind == KindSubstitution && ev.Second < firstSub[ev.Side] {
			firstSub[ev.Side] = ev.Second
		}
	}

	onCourt := map[Side]map[string]bool{SideHome: {}, SideAway: {}}
	stintStart := map[string]int{}

	for _, ev := range events {
		if ev.Kind == KindSubstitution {
			continue
		}
		_, name, ok := a.resolve(ev, false)
		if !ok {
			continue
		}
		side := ev.Side
		if ev.Second < firstSub[side] && !onCourt[side][name] && len(onCourt[side]) < a.cfg.TeamSize {
			onCourt[side][name] = true
			stintStart[name] = 0
		}
	}

	for _, ev := range events {
		side := ev.Side
		opp := side.Opponent()

		if ev.Kind == KindSubstitution {
			_, name, ok := a.resolve(ev, false)
			if !ok {
				continue
			}
			if ev.SubIn {
				if !onCourt[side][name] {
					onCourt[side][name] = true
					stintStart[name] = ev.Second
				}
			} else if onCourt[side][name] {
				a.closeStint(name, stintStart[name], ev.Second)
				delete(onCourt[side], name)
			}
			continue
		}

		pts := 0
		if ev.Made {
			pts = ev.PointValue()
		}
		if pts > 0 {
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.PointsFor += pts })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.PointsAgainst += pts })
		}

		switch ev.Kind {
		case KindShot2, KindShot3:
			made := ev.Made
			three := ev.Kind == KindShot3
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) {
				s.TeamFGA++
				if made {
					s.TeamFGM++
					if three {
						s.Team3PM++
					}
				}
			})
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) {
				s.OppFGA++
				if made {
					s.OppFGM++
					if three {
						s.Opp3PM++
					}
				}
			})
		case KindFreeThrow:
			made := ev.Made
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) {
				s.TeamFTA++
				if made {
					s.TeamFTM++
				}
			})
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) {
				s.OppFTA++
				if made {
					s.OppFTM++
				}
			})
		case KindRebound:
			off := ev.Offensive
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) {
				if off {
					s.TeamOREB++
				} else {
					s.TeamDREB++
				}
			})
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) {
				if off {
					s.OppOREB++
				} else {
					s.OppDREB++
				}
			})
		case KindAssist:
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.TeamAST++ })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.OppAST++ })
		case KindSteal:
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.TeamSTL++ })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.OppSTL++ })
		case KindBlock:
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.TeamBLK++ })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.OppBLK++ })
		case KindTurnover:
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.TeamTOV++ })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.OppTOV++ })
		case KindFoul:
			a.creditOnCourt(onCourt[side], ev.Second, func(s *StatLine) { s.TeamPF++ })
			a.creditOnCourt(onCourt[opp], ev.Second, func(s *StatLine) { s.OppPF++ })
			if m := foulOnPattern.FindStringSubmatch(ev.Description); m != nil {
				if victim, ok := a.ids.Resolve(opp, m[1]); ok {
					a.players[victim].Line.FoulsDrawn++
					a.periodLine(a.cfg.PeriodLabel(ev.Period), victim).FoulsDrawn++
				}
			}
		}
	}

	// Whoever is still on the floor gets credited through the final horn.
	end := a.gameEnd(events)
	for _, side := range Sides {
		for name := range onCourt[side] {
			a.closeStint(name, stintStart[name], end)
		}
	}
}

// gameEnd picks the clock to close open stints at: the end of whichever
// period the last event fell in, regulation at minimum.
func (a *Accumulator) gameEnd(events []Event) int {
	end := a.cfg.RegulationEnd()
	for _, ev := range events {
		if p := a.cfg.PeriodOfSecond(ev.Second); a.cfg.PeriodStart(p)+a.cfg.PeriodLength(p) > end {
			end = a.cfg.PeriodStart(p) + a.cfg.PeriodLength(p)
		}
	}
	return end
}

// closeStint credits one continuous floor appearance, discarding spans the
// stream cannot plausibly support.
func (a *Accumulator) closeStint(name string, start, end int) {
	dur := end - start
	if dur <= 0 || dur >= a.cfg.MaxStintSeconds {
		a.diag.RejectedStints++
		return
	}
	player, ok := a.players[name]
	if !ok {
		return
	}
	player.Line.Seconds += dur
	// Bucketed under the period the stint ends in.
	a.periodLine(a.cfg.PeriodLabel(a.cfg.PeriodOfSecond(end)), name).Seconds += dur
}

func (a *Accumulator) creditOnCourt(onCourt map[string]bool, second int, apply func(*StatLine)) {
	label := a.cfg.PeriodLabel(a.cfg.PeriodOfSecond(second))
	for name := range onCourt {
		player, ok := a.players[name]
		if !ok {
			continue
		}
		apply(&player.Line)
		apply(a.periodLine(label, name))
	}
}
