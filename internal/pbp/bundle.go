package pbp

import (
	"fmt"
	"sort"
	"time"
)

// PlayerLine is one player's exported row: identity plus the flat stat map.
type PlayerLine struct {
	Name    string             `json:"name"`
	Jersey  string             `json:"jersey"`
	Team    string             `json:"team"`
	Side    Side               `json:"side"`
	Minutes string             `json:"minutes"`
	Stats   map[string]float64 `json:"stats"`
}

// TeamLine is one side's exported totals and derived metrics.
type TeamLine struct {
	Name  string             `json:"name"`
	Side  Side               `json:"side"`
	Stats map[string]float64 `json:"stats"`
}

// Bundle is the serializable form of a replayed match, shaped for storage
// and the API. Player stat maps follow the zero-default contract: read them
// with StatValue; absent keys mean zero.
type Bundle struct {
	MatchID     string                  `json:"match_id"`
	Category    string                  `json:"category,omitempty"`
	MatchDate   string                  `json:"match_date,omitempty"`
	Teams       map[Side]string         `json:"teams"`
	Players     []PlayerLine            `json:"players"`
	TeamTotals  map[Side]TeamLine       `json:"team_totals"`
	Periods     map[string][]PlayerLine `json:"periods,omitempty"`
	Diagnostics Diagnostics             `json:"diagnostics"`
	GeneratedAt time.Time               `json:"generated_at"`
}

// FormatMinutes renders on-court seconds as the box score's MM:SS.
func FormatMinutes(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func mergeFlat(dst, src map[string]float64) map[string]float64 {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func sortLines(lines []PlayerLine) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Side != lines[j].Side {
			return lines[i].Side == SideHome
		}
		if lines[i].Jersey != lines[j].Jersey {
			return lines[i].Jersey < lines[j].Jersey
		}
		return lines[i].Name < lines[j].Name
	})
}

// Bundle flattens the result for storage and transport. Per-period lines get
// their metrics derived on export; the context fields they carry are only as
// good as that slice of the game.
func (r *Result) Bundle() *Bundle {
	b := &Bundle{
		MatchID:     r.MatchID,
		Category:    r.Category,
		MatchDate:   r.MatchDate,
		Teams:       r.Teams,
		TeamTotals:  make(map[Side]TeamLine, 2),
		Diagnostics: r.Diagnostics,
		GeneratedAt: time.Now().UTC(),
	}

	for name, p := range r.Players {
		b.Players = append(b.Players, PlayerLine{
			Name:    name,
			Jersey:  p.Jersey,
			Team:    p.Team,
			Side:    p.Side,
			Minutes: FormatMinutes(p.Line.Seconds),
			Stats:   mergeFlat(p.Line.Flat(), p.Derived.Flat()),
		})
	}
	sortLines(b.Players)

	for side, t := range r.TeamStats {
		b.TeamTotals[side] = TeamLine{
			Name:  t.Name,
			Side:  side,
			Stats: mergeFlat(t.Flat(), t.Derived.Flat()),
		}
	}

	if len(r.Periods) > 0 {
		b.Periods = make(map[string][]PlayerLine, len(r.Periods))
		for label, bucket := range r.Periods {
			lines := make([]PlayerLine, 0, len(bucket))
			for name, s := range bucket {
				p := r.Players[name]
				if p == nil {
					continue
				}
				lines = append(lines, PlayerLine{
					Name:    name,
					Jersey:  p.Jersey,
					Team:    p.Team,
					Side:    p.Side,
					Minutes: FormatMinutes(s.Seconds),
					Stats:   mergeFlat(s.Flat(), ComputeMetrics(s).Flat()),
				})
			}
			sortLines(lines)
			b.Periods[label] = lines
		}
	}
	return b
}
