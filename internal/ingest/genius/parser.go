package genius

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/courtside/internal/pbp"
)

// BoxScore is everything the box score page yields: team names, the match
// category, the roster that anchors identity resolution, and the official
// lines for verification.
type BoxScore struct {
	Teams    map[pbp.Side]string
	Category string
	Roster   []pbp.RosterEntry
	Official []pbp.OfficialLine
}

// Parser extracts match data from hosted widget pages.
type Parser struct{}

func NewParser() *Parser { return &Parser{} }

// ParseBoxScore reads team names and both player tables. The first footable
// is the home side, the second away; that ordering is a widget invariant.
func (p *Parser) ParseBoxScore(doc *goquery.Document) (*BoxScore, error) {
	box := &BoxScore{
		Teams: map[pbp.Side]string{
			pbp.SideHome: "Home",
			pbp.SideAway: "Away",
		},
	}
	if name := strings.TrimSpace(doc.Find(".home-wrapper .name a").First().Text()); name != "" {
		box.Teams[pbp.SideHome] = name
	}
	if name := strings.TrimSpace(doc.Find(".away-wrapper .name a").First().Text()); name != "" {
		box.Teams[pbp.SideAway] = name
	}
	box.Category = parseCategory(doc)

	doc.Find("table.footable").EachWithBreak(func(i int, table *goquery.Selection) bool {
		side := pbp.SideHome
		if i == 1 {
			side = pbp.SideAway
		}
		if i > 1 {
			return false
		}
		p.parsePlayerTable(table, side, box)
		return true
	})
	return box, nil
}

func (p *Parser) parsePlayerTable(table *goquery.Selection, side pbp.Side, box *BoxScore) {
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 2 {
			return
		}
		row := make(map[string]string, cells.Length())
		cells.Each(func(j int, td *goquery.Selection) {
			key := "col_" + strconv.Itoa(j)
			if j < len(headers) && headers[j] != "" {
				key = headers[j]
			}
			row[key] = strings.TrimSpace(td.Text())
		})

		name := row["Player"]
		if name == "" {
			return
		}
		jersey := row["No"]
		minutes := row["Min"]

		box.Roster = append(box.Roster, pbp.RosterEntry{
			Side:    side,
			Jersey:  jersey,
			Name:    name,
			Minutes: minutes,
		})
		box.Official = append(box.Official, pbp.OfficialLine{
			Side:      side,
			Jersey:    jersey,
			Name:      name,
			Minutes:   minutes,
			Points:    cellInt(row, "PTS"),
			Rebounds:  cellInt(row, "REB"),
			Assists:   cellInt(row, "AST"),
			Steals:    cellInt(row, "STL"),
			Blocks:    cellInt(row, "BLK"),
			Turnovers: cellIntAny(row, "TO", "TOV"),
		})
	})
}

// parseCategory reads the league header, which ends in the competition
// category: "75th Senior National Championship - Women". "Women" contains
// "Men", so it is checked first.
func parseCategory(doc *goquery.Document) string {
	header := strings.TrimSpace(doc.Find(".leagueHeader h3").First().Text())
	switch {
	case strings.Contains(header, "Women"):
		return "Women"
	case strings.Contains(header, "Men"):
		return "Men"
	default:
		return "Unknown"
	}
}

func cellInt(row map[string]string, key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(row[key]))
	return n
}

func cellIntAny(row map[string]string, keys ...string) int {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			n, _ := strconv.Atoi(strings.TrimSpace(v))
			return n
		}
	}
	return 0
}

// ParsePlayByPlay reads every pbpa row into raw events, preserving document
// order. The widget emits rows chronologically, and the replay consumes
// them in that order.
func (p *Parser) ParsePlayByPlay(doc *goquery.Document) []pbp.RawEvent {
	var rows []pbp.RawEvent
	doc.Find("div.pbpa").Each(func(_ int, ev *goquery.Selection) {
		classAttr, _ := ev.Attr("class")
		classes := strings.Fields(classAttr)

		side := pbp.SideUnknown
		for _, c := range classes {
			switch c {
			case "pbp-t1", "pbpt1":
				side = pbp.SideHome
			case "pbp-t2", "pbpt2":
				side = pbp.SideAway
			}
		}

		clock := firstText(ev, ".pbp-time", ".pbp_time", ".pbp-clock", ".pbpclock")
		desc := firstText(ev, ".pbp-action", ".pbp_action")
		if clock == "" || desc == "" {
			return
		}

		period := 1
		for _, c := range classes {
			if rest, ok := strings.CutPrefix(c, "per_"); ok {
				if n, err := strconv.Atoi(rest); err == nil {
					period = n
					break
				}
				if rest == "reg" {
					// Legacy pages tag every regulation row per_reg only.
					period = 4
				}
			}
		}

		rows = append(rows, pbp.RawEvent{
			Side:        side,
			Tags:        classes,
			Description: desc,
			Clock:       clock,
			Period:      period,
		})
	})
	return rows
}

func firstText(sel *goquery.Selection, selectors ...string) string {
	for _, s := range selectors {
		if found := sel.Find(s).First(); found.Length() > 0 {
			return strings.TrimSpace(found.Text())
		}
	}
	return ""
}

// Published comparison labels and the stat codes.
var summaryLabels = map[string]string{
	"points in the paint":    "PITP",
	"fast break points":      "FBPS",
	"points from turnovers":  "OFF TO",
	"second chance points":   "2ND PTS",
	"bench points":           "BENCH PTS",
	"biggest lead":           "BIGGEST LEAD",
	"points":                 "PTS",
}

// ParseSummary reads the team comparison block and the match date.
func (p *Parser) ParseSummary(doc *goquery.Document) (map[string]pbp.SummaryPair, string) {
	summary := make(map[string]pbp.SummaryPair)
	doc.Find("#BLOCK_SUMMARY_COMPARE .summary-compare-detail").Each(func(_ int, row *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(row.Find(".fieldName").First().Text()))
		code, ok := summaryLabels[label]
		if !ok {
			return
		}
		home, err1 := strconv.Atoi(strings.TrimSpace(row.Find(".fieldHomeStatNumber").First().Text()))
		away, err2 := strconv.Atoi(strings.TrimSpace(row.Find(".fieldAwayStatNumber").First().Text()))
		if err1 != nil || err2 != nil {
			return
		}
		summary[code] = pbp.SummaryPair{Home: home, Away: away}
	})

	date := strings.TrimSpace(doc.Find(".details .match-time span").First().Text())
	return summary, date
}
