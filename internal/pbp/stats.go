package pbp

// StatLine is one accumulation bucket: a player's full game, one player's
// period, or a team total. Counting fields come straight from the replay;
// the Team/Opp context fields accrue while the player is on court and feed
// the rating formulas.
type StatLine struct {
	Points               int
	FieldGoalsMade       int
	FieldGoalsAttempted  int
	TwoPointsMade        int
	TwoPointsAttempted   int
	ThreePointsMade      int
	ThreePointsAttempted int
	FreeThrowsMade       int
	FreeThrowsAttempted  int
	OffensiveRebounds    int
	DefensiveRebounds    int
	Assists              int
	Steals               int
	Blocks               int
	Turnovers            int
	PersonalFouls        int
	FoulsDrawn           int
	TimesBlocked         int
	SecondChancePoints   int
	Seconds              int // time on court

	// On-court plus/minus inputs.
	PointsFor     int
	PointsAgainst int

	// Team and opponent activity while on court.
	TeamFGM, TeamFGA, Team3PM, TeamFTM, TeamFTA int
	TeamOREB, TeamDREB                          int
	TeamAST, TeamSTL, TeamBLK, TeamTOV, TeamPF  int
	OppFGM, OppFGA, Opp3PM, OppFTM, OppFTA      int
	OppOREB, OppDREB                            int
	OppAST, OppSTL, OppBLK, OppTOV, OppPF       int
}

// Rebounds is the combined board count.
func (s *StatLine) Rebounds() int {
	return s.OffensiveRebounds + s.DefensiveRebounds
}

// PlusMinus is the score swing while on court.
func (s *StatLine) PlusMinus() int {
	return s.PointsFor - s.PointsAgainst
}

// Minutes converts on-court seconds to decimal minutes.
func (s *StatLine) Minutes() float64 {
	return float64(s.Seconds) / 60.0
}

// Add folds another line into this one.
func (s *StatLine) Add(o *StatLine) {
	s.Points += o.Points
	s.FieldGoalsMade += o.FieldGoalsMade
	s.FieldGoalsAttempted += o.FieldGoalsAttempted
	s.TwoPointsMade += o.TwoPointsMade
	s.TwoPointsAttempted += o.TwoPointsAttempted
	s.ThreePointsMade += o.ThreePointsMade
	s.ThreePointsAttempted += o.ThreePointsAttempted
	s.FreeThrowsMade += o.FreeThrowsMade
	s.FreeThrowsAttempted += o.FreeThrowsAttempted
	s.OffensiveRebounds += o.OffensiveRebounds
	s.DefensiveRebounds += o.DefensiveRebounds
	s.Assists += o.Assists
	s.Steals += o.Steals
	s.Blocks += o.Blocks
	s.Turnovers += o.Turnovers
	s.PersonalFouls += o.PersonalFouls
	s.FoulsDrawn += o.FoulsDrawn
	s.TimesBlocked += o.TimesBlocked
	s.SecondChancePoints += o.SecondChancePoints
	s.Seconds += o.Seconds
	s.PointsFor += o.PointsFor
	s.PointsAgainst += o.PointsAgainst
}

// Flat exposes the line as the wire schema: stat code to numeric value.
// Consumers read with StatValue so a missing key is an implicit zero.
func (s *StatLine) Flat() map[string]float64 {
	return map[string]float64{
		"PTS":  float64(s.Points),
		"FGM":  float64(s.FieldGoalsMade),
		"FGA":  float64(s.FieldGoalsAttempted),
		"2PM":  float64(s.TwoPointsMade),
		"2PA":  float64(s.TwoPointsAttempted),
		"3PM":  float64(s.ThreePointsMade),
		"3PA":  float64(s.ThreePointsAttempted),
		"FTM":  float64(s.FreeThrowsMade),
		"FTA":  float64(s.FreeThrowsAttempted),
		"OREB": float64(s.OffensiveRebounds),
		"DREB": float64(s.DefensiveRebounds),
		"REB":  float64(s.Rebounds()),
		"AST":  float64(s.Assists),
		"STL":  float64(s.Steals),
		"BLK":  float64(s.Blocks),
		"TOV":  float64(s.Turnovers),
		"PF":   float64(s.PersonalFouls),
		"FD":   float64(s.FoulsDrawn),
		"BLKR": float64(s.TimesBlocked),
		"2CP":  float64(s.SecondChancePoints),
		"MIN":  round1(s.Minutes()),
		"+/-":  float64(s.PlusMinus()),
	}
}

// StatValue reads a flat stat map with the zero-default contract.
func StatValue(stats map[string]float64, key string) float64 {
	return stats[key]
}

// PlayerStats is one player's finished game.
type PlayerStats struct {
	Name            string
	Jersey          string
	Side            Side
	Team            string
	OfficialMinutes string // box-score MM:SS, verbatim
	Line            StatLine
	Derived         Metrics
}

// TeamStats is one side's finished game. Points and the bonus categories are
// accumulated directly from the stream so they survive unresolved jerseys;
// Totals aggregates the resolved player lines.
type TeamStats struct {
	Name               string
	Side               Side
	Points             int
	PaintPoints        int
	SecondChancePoints int
	PointsOffTurnovers int
	FastBreakPoints    int
	Totals             StatLine
	Derived            TeamMetrics
}

// Flat exposes the team's game in the wire schema.
func (t *TeamStats) Flat() map[string]float64 {
	flat := t.Totals.Flat()
	flat["PTS"] = float64(t.Points)
	flat["PITP"] = float64(t.PaintPoints)
	flat["2ND PTS"] = float64(t.SecondChancePoints)
	flat["OFF TO"] = float64(t.PointsOffTurnovers)
	flat["FBPS"] = float64(t.FastBreakPoints)
	delete(flat, "MIN")
	delete(flat, "+/-")
	delete(flat, "BLKR")
	delete(flat, "2CP")
	delete(flat, "FD")
	return flat
}
