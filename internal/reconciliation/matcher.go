package reconciliation

import (
	"strings"

	"github.com/fortuna/courtside/internal/pbp"
)

// MatchPlayer pairs an official box row with its replayed player. Jersey
// number within the side is the primary key; name matching is the fallback
// for rows where the widget omits the number.
func MatchPlayer(res *pbp.Result, line *pbp.OfficialLine) *pbp.PlayerStats {
	if line.Jersey != "" {
		jersey := pbp.NormalizeJersey(line.Jersey)
		for _, p := range res.Players {
			if p.Side == line.Side && p.Jersey == jersey {
				return p
			}
		}
	}
	if line.Name == "" {
		return nil
	}
	if p, ok := res.Players[line.Name]; ok && p.Side == line.Side {
		return p
	}
	for name, p := range res.Players {
		if p.Side == line.Side && matchNames(name, line.Name) {
			return p
		}
	}
	return nil
}

// matchNames compares player names loosely. The box prints "SMITH, John"
// where the feed roster may carry "John Smith"; comparing the multiset of
// name tokens absorbs ordering and punctuation differences.
func matchNames(a, b string) bool {
	ta, tb := nameTokens(a), nameTokens(b)
	if len(ta) == 0 || len(ta) != len(tb) {
		return false
	}
	used := make([]bool, len(tb))
	for _, tok := range ta {
		found := false
		for i, other := range tb {
			if !used[i] && tok == other {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func nameTokens(name string) []string {
	name = strings.ToLower(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case ',', '.', '\'', '-':
			return ' '
		}
		return r
	}, name)
	return strings.Fields(name)
}
