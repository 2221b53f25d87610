package pbp

import "math"

// Metrics holds a player's derived stats. Values are pre-rounded for
// presentation: one decimal everywhere except AssistTurnoverRatio (two).
type Metrics struct {
	FieldGoalPct   float64
	TwoPointPct    float64
	ThreePointPct  float64
	FreeThrowPct   float64
	EffectiveFGPct float64
	TrueShooting   float64

	OffensiveRating float64
	DefensiveRating float64
	NetRating       float64

	UsagePct            float64
	AssistPct           float64
	OffensiveReboundPct float64
	DefensiveReboundPct float64
	ReboundPct          float64

	AssistTurnoverRatio float64
	AssistRatio         float64
	TurnoverRatio       float64

	ImpactEstimate float64 // PIE
	GameScore      float64
	FloorImpact    float64 // FIC
	Efficiency     float64
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// pct is a guarded percentage: zero denominator yields zero, never NaN.
func pct(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return round1(num / den * 100)
}

// sharePct is pct clamped to [0,100] for share-of-activity metrics where a
// sparse on-court sample can push the raw ratio out of range.
func sharePct(num, den float64) float64 {
	v := pct(num, den)
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func possessions(fga, fta, oreb, tov int) float64 {
	return float64(fga) + 0.44*float64(fta) - float64(oreb) + float64(tov)
}

func pieContribution(s *StatLine) float64 {
	return float64(s.Points+s.FieldGoalsMade+s.FreeThrowsMade-s.FieldGoalsAttempted-s.FreeThrowsAttempted+s.DefensiveRebounds+s.Assists+s.Steals) +
		0.5*float64(s.OffensiveRebounds) + 0.5*float64(s.Blocks) -
		float64(s.PersonalFouls+s.Turnovers)
}

// pieDenominator is the PIE formula applied to everything that happened
// while this player was on court, both sides combined. A player who never
// sits sees the whole game; a bench player sees only their stints.
func pieDenominator(s *StatLine) float64 {
	return float64(s.PointsFor+s.PointsAgainst+
		s.TeamFGM+s.OppFGM+s.TeamFTM+s.OppFTM-
		s.TeamFGA-s.OppFGA-s.TeamFTA-s.OppFTA+
		s.TeamDREB+s.OppDREB+s.TeamAST+s.OppAST+s.TeamSTL+s.OppSTL) +
		0.5*float64(s.TeamOREB+s.OppOREB) + 0.5*float64(s.TeamBLK+s.OppBLK) -
		float64(s.TeamPF+s.OppPF+s.TeamTOV+s.OppTOV)
}

// ComputeMetrics derives a player's advanced line.
func ComputeMetrics(s *StatLine) Metrics {
	m := Metrics{
		FieldGoalPct:   pct(float64(s.FieldGoalsMade), float64(s.FieldGoalsAttempted)),
		TwoPointPct:    pct(float64(s.TwoPointsMade), float64(s.TwoPointsAttempted)),
		ThreePointPct:  pct(float64(s.ThreePointsMade), float64(s.ThreePointsAttempted)),
		FreeThrowPct:   pct(float64(s.FreeThrowsMade), float64(s.FreeThrowsAttempted)),
		EffectiveFGPct: pct(float64(s.FieldGoalsMade)+0.5*float64(s.ThreePointsMade), float64(s.FieldGoalsAttempted)),
	}

	if tsa := float64(s.FieldGoalsAttempted) + 0.44*float64(s.FreeThrowsAttempted); tsa > 0 {
		m.TrueShooting = round1(float64(s.Points) / (2 * tsa) * 100)
	}

	teamPoss := possessions(s.TeamFGA, s.TeamFTA, s.TeamOREB, s.TeamTOV)
	oppPoss := possessions(s.OppFGA, s.OppFTA, s.OppOREB, s.OppTOV)
	if teamPoss > 0 {
		m.OffensiveRating = round1(float64(s.PointsFor) / teamPoss * 100)
	}
	if oppPoss > 0 {
		m.DefensiveRating = round1(float64(s.PointsAgainst) / oppPoss * 100)
	}
	m.NetRating = round1(m.OffensiveRating - m.DefensiveRating)

	usagePlays := float64(s.FieldGoalsAttempted) + 0.44*float64(s.FreeThrowsAttempted) + float64(s.Turnovers)
	teamPlays := float64(s.TeamFGA) + 0.44*float64(s.TeamFTA) + float64(s.TeamTOV)
	m.UsagePct = sharePct(usagePlays, teamPlays)
	m.AssistPct = sharePct(float64(s.Assists), float64(s.TeamFGM-s.FieldGoalsMade))
	m.OffensiveReboundPct = sharePct(float64(s.OffensiveRebounds), float64(s.TeamOREB+s.OppDREB))
	m.DefensiveReboundPct = sharePct(float64(s.DefensiveRebounds), float64(s.TeamDREB+s.OppOREB))
	m.ReboundPct = sharePct(float64(s.Rebounds()), float64(s.TeamOREB+s.TeamDREB+s.OppOREB+s.OppDREB))

	// Turnover-free games keep the raw assist count rather than dividing by zero.
	if s.Turnovers > 0 {
		m.AssistTurnoverRatio = round2(float64(s.Assists) / float64(s.Turnovers))
	} else {
		m.AssistTurnoverRatio = round2(float64(s.Assists))
	}
	if usagePlays > 0 {
		m.AssistRatio = round1(float64(s.Assists) / usagePlays * 100)
		m.TurnoverRatio = round1(float64(s.Turnovers) / usagePlays * 100)
	}

	if den := pieDenominator(s); den > 0 {
		m.ImpactEstimate = round1(pieContribution(s) / den * 100)
	}

	m.GameScore = round1(float64(s.Points) +
		0.4*float64(s.FieldGoalsMade) - 0.7*float64(s.FieldGoalsAttempted) -
		0.4*float64(s.FreeThrowsAttempted-s.FreeThrowsMade) +
		0.7*float64(s.OffensiveRebounds) + 0.3*float64(s.DefensiveRebounds) +
		float64(s.Steals) + 0.7*float64(s.Assists) + 0.7*float64(s.Blocks) -
		0.4*float64(s.PersonalFouls) - float64(s.Turnovers))

	m.FloorImpact = round1(float64(s.Points+s.Assists+s.Steals+s.Blocks) +
		0.8*float64(s.OffensiveRebounds) + 1.4*float64(s.DefensiveRebounds) -
		0.7*float64(s.FieldGoalsAttempted) - 0.8*float64(s.FreeThrowsAttempted) -
		1.4*float64(s.Turnovers) - float64(s.PersonalFouls))

	m.Efficiency = round1(float64(s.Points + s.Rebounds() + s.Assists + s.Steals + s.Blocks -
		(s.FieldGoalsAttempted - s.FieldGoalsMade) -
		(s.FreeThrowsAttempted - s.FreeThrowsMade) - s.Turnovers))

	return m
}

// Flat exposes the derived line in the wire schema.
func (m Metrics) Flat() map[string]float64 {
	return map[string]float64{
		"FG%":       m.FieldGoalPct,
		"2P%":       m.TwoPointPct,
		"3P%":       m.ThreePointPct,
		"FT%":       m.FreeThrowPct,
		"eFG%":      m.EffectiveFGPct,
		"TS%":       m.TrueShooting,
		"OFFRTG":    m.OffensiveRating,
		"DEFRTG":    m.DefensiveRating,
		"NETRTG":    m.NetRating,
		"USG%":      m.UsagePct,
		"AST%":      m.AssistPct,
		"OREB%":     m.OffensiveReboundPct,
		"DREB%":     m.DefensiveReboundPct,
		"REB%":      m.ReboundPct,
		"AST/TO":    m.AssistTurnoverRatio,
		"AST RATIO": m.AssistRatio,
		"TO RATIO":  m.TurnoverRatio,
		"PIE":       m.ImpactEstimate,
		"GmScr":     m.GameScore,
		"FIC":       m.FloorImpact,
		"Eff":       m.Efficiency,
	}
}

// TeamMetrics holds a side's derived stats, including the four factors.
type TeamMetrics struct {
	OffensiveRating     float64
	DefensiveRating     float64
	NetRating           float64
	Pace                float64
	EffectiveFGPct      float64
	TrueShooting        float64
	AssistPct           float64
	AssistRatio         float64
	TurnoverRatio       float64
	OffensiveReboundPct float64
	DefensiveReboundPct float64
	ReboundPct          float64
	FreeThrowRate       float64
}

// ComputeTeamMetrics derives a side's advanced line from both finished totals.
func ComputeTeamMetrics(team, opp *TeamStats) TeamMetrics {
	t, o := &team.Totals, &opp.Totals
	poss := possessions(t.FieldGoalsAttempted, t.FreeThrowsAttempted, t.OffensiveRebounds, t.Turnovers)
	oppPoss := possessions(o.FieldGoalsAttempted, o.FreeThrowsAttempted, o.OffensiveRebounds, o.Turnovers)

	m := TeamMetrics{
		EffectiveFGPct: pct(float64(t.FieldGoalsMade)+0.5*float64(t.ThreePointsMade), float64(t.FieldGoalsAttempted)),
		AssistPct:      sharePct(float64(t.Assists), float64(t.FieldGoalsMade)),
	}
	if poss > 0 {
		m.OffensiveRating = round1(float64(team.Points) / poss * 100)
	}
	if oppPoss > 0 {
		m.DefensiveRating = round1(float64(opp.Points) / oppPoss * 100)
	}
	m.NetRating = round1(m.OffensiveRating - m.DefensiveRating)
	m.Pace = round1((poss + oppPoss) / 2)

	if tsa := float64(t.FieldGoalsAttempted) + 0.44*float64(t.FreeThrowsAttempted); tsa > 0 {
		m.TrueShooting = round1(float64(team.Points) / (2 * tsa) * 100)
	}
	if poss > 0 {
		m.AssistRatio = round1(float64(t.Assists) / poss * 100)
		m.TurnoverRatio = round1(float64(t.Turnovers) / poss * 100)
	}
	m.OffensiveReboundPct = sharePct(float64(t.OffensiveRebounds), float64(t.OffensiveRebounds+o.DefensiveRebounds))
	m.DefensiveReboundPct = sharePct(float64(t.DefensiveRebounds), float64(t.DefensiveRebounds+o.OffensiveRebounds))
	m.ReboundPct = sharePct(float64(t.Rebounds()), float64(t.Rebounds()+o.Rebounds()))
	m.FreeThrowRate = pct(float64(t.FreeThrowsMade), float64(t.FieldGoalsAttempted))
	return m
}

// Flat exposes the team derived line in the wire schema.
func (m TeamMetrics) Flat() map[string]float64 {
	return map[string]float64{
		"OFFRTG":    m.OffensiveRating,
		"DEFRTG":    m.DefensiveRating,
		"NETRTG":    m.NetRating,
		"PACE":      m.Pace,
		"eFG%":      m.EffectiveFGPct,
		"TS%":       m.TrueShooting,
		"AST%":      m.AssistPct,
		"AST RATIO": m.AssistRatio,
		"TO RATIO":  m.TurnoverRatio,
		"OREB%":     m.OffensiveReboundPct,
		"DREB%":     m.DefensiveReboundPct,
		"REB%":      m.ReboundPct,
		"FT RATE":   m.FreeThrowRate,
	}
}
