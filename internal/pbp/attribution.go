package pbp

// missedShot remembers the most recent missed field goal for block linkage.
type missedShot struct {
	player string
	side   Side
	second int
}

// runAttributionPass is the second walk over the stream. It pins "blocked"
// credit on the shooter whose miss immediately preceded an opposing block,
// and credits per-player second-chance points after a teammate's offensive
// rebound. The second-chance window here deliberately does not consume:
// one offensive board can feed several scrambled putback attempts.
func (a *Accumulator) runAttributionPass(events []Event) {
	var lastMiss *missedShot
	lastOffReb := map[Side]int{SideHome: farPast, SideAway: farPast}

	for _, ev := range events {
		player, _, resolved := a.resolve(ev, false)

		if ev.Kind == KindBlock && lastMiss != nil &&
			lastMiss.side != ev.Side &&
			ev.Second-lastMiss.second <= a.cfg.BlockWindow {
			if shooter, ok := a.players[lastMiss.player]; ok {
				shooter.Line.TimesBlocked++
			}
			lastMiss = nil
		}

		if resolved && ev.Made {
			if pts := ev.PointValue(); pts > 0 &&
				ev.Second-lastOffReb[ev.Side] <= a.cfg.PlayerSecondChanceWindow {
				player.Line.SecondChancePoints += pts
			}
		}

		if ev.IsShot() && !ev.Made && resolved {
			lastMiss = &missedShot{player: player.Name, side: ev.Side, second: ev.Second}
		}
		if ev.Kind == KindRebound && ev.Offensive {
			lastOffReb[ev.Side] = ev.Second
		}
	}
}
