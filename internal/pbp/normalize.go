package pbp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "23  Smith, J. made layup" -> jersey 23
	jerseyPattern = regexp.MustCompile(`^(\d+)[\s,]+`)
	// "7 Jones Substitution in"
	subPattern = regexp.MustCompile(`(?i)^(\d+).*?substitution\s+(in|out)`)
	// "P2 07:41" or "P207:41" style clocks carry their own period
	clockPeriodPattern = regexp.MustCompile(`^P(\d+)\s*(\d{1,2}):(\d{2})$`)
	clockPattern       = regexp.MustCompile(`^(\d{1,2}):(\d{2})`)
)

// Normalizer turns scraped rows into typed events on an absolute clock.
type Normalizer struct {
	cfg      Config
	classify TextClassifier
}

func NewNormalizer(cfg Config, classify TextClassifier) *Normalizer {
	if classify == nil {
		classify = NewKeywordClassifier(DefaultRules())
	}
	return &Normalizer{cfg: cfg, classify: classify}
}

// AbsoluteSecond converts a widget clock (counting down within the period)
// into seconds elapsed since tip-off. A P-prefixed clock overrides the row's
// own period.
func (n *Normalizer) AbsoluteSecond(period int, clock string) (second, resolvedPeriod int, ok bool) {
	clock = strings.TrimSpace(clock)
	if m := clockPeriodPattern.FindStringSubmatch(clock); m != nil {
		p, _ := strconv.Atoi(m[1])
		if p > 0 {
			period = p
		}
		mins, _ := strconv.Atoi(m[2])
		secs, _ := strconv.Atoi(m[3])
		return n.elapsed(period, mins, secs), period, true
	}
	if m := clockPattern.FindStringSubmatch(clock); m != nil {
		if period < 1 {
			period = 1
		}
		mins, _ := strconv.Atoi(m[1])
		secs, _ := strconv.Atoi(m[2])
		return n.elapsed(period, mins, secs), period, true
	}
	return 0, period, false
}

func (n *Normalizer) elapsed(period, mins, secs int) int {
	remaining := mins*60 + secs
	length := n.cfg.PeriodLength(period)
	if remaining > length {
		remaining = length
	}
	return n.cfg.PeriodStart(period) + length - remaining
}

// Normalize converts one scraped row. ok is false for rows that carry no
// usable side; those are informational and skipped upstream. A row whose
// clock cannot be read is kept at second 0 and counted in diag, which may
// be nil.
func (n *Normalizer) Normalize(raw RawEvent, diag *Diagnostics) (Event, bool) {
	if raw.Side != SideHome && raw.Side != SideAway {
		return Event{}, false
	}
	second, period, clockOK := n.AbsoluteSecond(raw.Period, raw.Clock)
	if !clockOK {
		// Scrape noise: pin the event to tip-off instead of losing it.
		second = 0
		if period < 1 {
			period = 1
		}
		if diag != nil {
			diag.MalformedClocks++
		}
	}

	desc := strings.TrimSpace(raw.Description)
	ev := Event{
		Side:        raw.Side,
		Period:      period,
		Second:      second,
		Description: desc,
	}

	tags := make(map[string]bool, len(raw.Tags))
	for _, t := range raw.Tags {
		tags[t] = true
	}

	switch {
	case tags[TagSubstitution]:
		ev.Kind = KindSubstitution
	case tags[TagThreePoint]:
		ev.Kind = KindShot3
	case tags[TagTwoPoint]:
		ev.Kind = KindShot2
	case tags[TagFreeThrow]:
		ev.Kind = KindFreeThrow
	case tags[TagRebound]:
		ev.Kind = KindRebound
	case tags[TagAssist]:
		ev.Kind = KindAssist
	case tags[TagSteal]:
		ev.Kind = KindSteal
	case tags[TagBlock]:
		ev.Kind = KindBlock
	case tags[TagTurnover]:
		ev.Kind = KindTurnover
	case tags[TagFoulDrawn]:
		ev.Kind = KindFoulDrawn
	case tags[TagFoul]:
		ev.Kind = KindFoul
	default:
		// Tag-less rows fall back to text classification for shots.
		ev.Kind = n.classify.ShotKind(desc)
	}

	switch ev.Kind {
	case KindShot2, KindShot3, KindFreeThrow:
		ev.Made = tags[TagMade] || n.classify.Made(desc)
		ev.Paint = ev.Kind == KindShot2 && n.classify.PaintShot(desc)
		ev.FastBreak = n.classify.FastBreak(desc)
	case KindRebound:
		ev.Offensive = n.classify.OffensiveRebound(desc)
	case KindSubstitution:
		if m := subPattern.FindStringSubmatch(desc); m != nil {
			ev.Jersey = NormalizeJersey(m[1])
			ev.SubIn = strings.EqualFold(m[2], "in")
			return ev, true
		}
		// A substitution row we cannot parse is unusable.
		return Event{}, false
	}

	if m := jerseyPattern.FindStringSubmatch(desc); m != nil {
		ev.Jersey = NormalizeJersey(m[1])
	}
	return ev, true
}

// NormalizeAll runs every raw row through the normalizer, counting skips.
func (n *Normalizer) NormalizeAll(raws []RawEvent, diag *Diagnostics) []Event {
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		ev, ok := n.Normalize(raw, diag)
		if !ok {
			if diag != nil {
				diag.SkippedRows++
			}
			continue
		}
		events = append(events, ev)
	}
	return events
}
