package pbp

import (
	"strconv"
	"strings"
)

// RosterEntry is one player from the official box score, the sole source of
// jersey-to-name identity for a match.
type RosterEntry struct {
	Side    Side   `json:"side"`
	Jersey  string `json:"jersey"`
	Name    string `json:"name"`
	Minutes string `json:"minutes,omitempty"` // official MM:SS, kept verbatim
}

// NormalizeJersey strips leading zeros so feed numbers like "07" match the
// box score's "7". Non-numeric jerseys pass through trimmed.
func NormalizeJersey(jersey string) string {
	jersey = strings.TrimSpace(jersey)
	if n, err := strconv.Atoi(jersey); err == nil {
		return strconv.Itoa(n)
	}
	return jersey
}

type identityKey struct {
	side   Side
	jersey string
}

// IdentityMap resolves (side, jersey) pairs to player names. Jerseys are
// only unique within a side; both teams routinely carry the same number.
type IdentityMap struct {
	names map[identityKey]string
}

// BuildIdentityMap indexes a roster. Later duplicates of the same (side,
// jersey) pair are ignored; the first listing wins.
func BuildIdentityMap(roster []RosterEntry) *IdentityMap {
	m := &IdentityMap{names: make(map[identityKey]string, len(roster))}
	for _, entry := range roster {
		key := identityKey{side: entry.Side, jersey: NormalizeJersey(entry.Jersey)}
		if key.jersey == "" || entry.Name == "" {
			continue
		}
		if _, exists := m.names[key]; !exists {
			m.names[key] = entry.Name
		}
	}
	return m
}

// Resolve returns the player name for a jersey on the given side.
func (m *IdentityMap) Resolve(side Side, jersey string) (string, bool) {
	name, ok := m.names[identityKey{side: side, jersey: NormalizeJersey(jersey)}]
	return name, ok
}

// Len reports how many identities are indexed.
func (m *IdentityMap) Len() int { return len(m.names) }
