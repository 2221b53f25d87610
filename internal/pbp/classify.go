package pbp

import "strings"

// TextClassifier answers keyword questions about a row's free-text
// description. The feed's CSS tags are authoritative for event kind; text
// is the fallback when tags are missing, and the only source for paint and
// fast-break hints.
type TextClassifier interface {
	ShotKind(desc string) Kind
	Made(desc string) bool
	OffensiveRebound(desc string) bool
	PaintShot(desc string) bool
	FastBreak(desc string) bool
}

// RuleTable is the keyword vocabulary behind KeywordClassifier. All matching
// is case-insensitive substring containment.
type RuleTable struct {
	ThreePoint []string
	TwoPoint   []string
	FreeThrow  []string
	Made       []string
	Missed     []string
	Offensive  []string
	Paint      []string
	FastBreak  []string
}

// DefaultRules returns the vocabulary the hosted feed's descriptions use.
func DefaultRules() RuleTable {
	return RuleTable{
		ThreePoint: []string{"3pt", "3-pt", "3 pointer", "3-pointer", "three point"},
		TwoPoint:   []string{"2pt", "2-pt", "layup", "lay-up", "lay up", "dunk", "jump shot", "jumper", "tip-in", "hook"},
		FreeThrow:  []string{"free throw"},
		Made:       []string{"made"},
		Missed:     []string{"miss"},
		Offensive:  []string{"offensive"},
		Paint:      []string{"layup", "lay-up", "lay up", "dunk", "tip-in", "hook", "driving", "putback", "floating"},
		FastBreak:  []string{"fast break", "fastbreak"},
	}
}

// KeywordClassifier classifies descriptions against a RuleTable.
type KeywordClassifier struct {
	rules RuleTable
}

func NewKeywordClassifier(rules RuleTable) *KeywordClassifier {
	return &KeywordClassifier{rules: rules}
}

func containsAny(desc string, words []string) bool {
	for _, w := range words {
		if strings.Contains(desc, w) {
			return true
		}
	}
	return false
}

// ShotKind infers the attempt type from text alone. Three-point keywords win
// over two-point ones since "3-pt jump shot" carries both.
func (c *KeywordClassifier) ShotKind(desc string) Kind {
	d := strings.ToLower(desc)
	switch {
	case containsAny(d, c.rules.ThreePoint):
		return KindShot3
	case containsAny(d, c.rules.FreeThrow):
		return KindFreeThrow
	case containsAny(d, c.rules.TwoPoint):
		return KindShot2
	}
	return KindUnknown
}

// Made reports whether the text marks a converted attempt. A row carrying
// both vocabularies ("missed, made follow") counts as a miss.
func (c *KeywordClassifier) Made(desc string) bool {
	d := strings.ToLower(desc)
	return containsAny(d, c.rules.Made) && !containsAny(d, c.rules.Missed)
}

func (c *KeywordClassifier) OffensiveRebound(desc string) bool {
	return containsAny(strings.ToLower(desc), c.rules.Offensive)
}

func (c *KeywordClassifier) PaintShot(desc string) bool {
	return containsAny(strings.ToLower(desc), c.rules.Paint)
}

func (c *KeywordClassifier) FastBreak(desc string) bool {
	return containsAny(strings.ToLower(desc), c.rules.FastBreak)
}
