package pbp

import "fmt"

// Side identifies which team a play-by-play row belongs to.
type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = ""
)

// Opponent returns the other side. Unknown stays unknown.
func (s Side) Opponent() Side {
	switch s {
	case SideHome:
		return SideAway
	case SideAway:
		return SideHome
	}
	return SideUnknown
}

// Sides lists the two playing sides in a stable order.
var Sides = []Side{SideHome, SideAway}

// Feed tags as they appear in the widget's CSS classes. The scraper copies
// them verbatim into RawEvent.Tags; the normalizer interprets them.
const (
	TagMade         = "pbpmade"
	TagTwoPoint     = "pbpty2pt"
	TagThreePoint   = "pbpty3pt"
	TagFreeThrow    = "pbptyfreethrow"
	TagRebound      = "pbptyrebound"
	TagAssist       = "pbptyassist"
	TagSteal        = "pbptysteal"
	TagBlock        = "pbptyblock"
	TagTurnover     = "pbptyturnover"
	TagFoul         = "pbptyfoul"
	TagFoulDrawn    = "pbptyfoulon"
	TagSubstitution = "pbptysubstitution"
)

// RawEvent is one scraped play-by-play row, immutable once built.
type RawEvent struct {
	Side        Side     `json:"side"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Clock       string   `json:"clock"`
	Period      int      `json:"period"`
}

// Kind classifies a normalized event.
type Kind int

const (
	KindUnknown Kind = iota
	KindShot2
	KindShot3
	KindFreeThrow
	KindRebound
	KindAssist
	KindSteal
	KindBlock
	KindTurnover
	KindFoul
	KindFoulDrawn
	KindSubstitution
)

func (k Kind) String() string {
	switch k {
	case KindShot2:
		return "2pt"
	case KindShot3:
		return "3pt"
	case KindFreeThrow:
		return "free_throw"
	case KindRebound:
		return "rebound"
	case KindAssist:
		return "assist"
	case KindSteal:
		return "steal"
	case KindBlock:
		return "block"
	case KindTurnover:
		return "turnover"
	case KindFoul:
		return "foul"
	case KindFoulDrawn:
		return "foul_drawn"
	case KindSubstitution:
		return "substitution"
	}
	return "unknown"
}

// Event is a normalized play-by-play record. Jersey may be empty for
// team-level rows; those still drive the heuristic time windows but are
// never attributed to a player.
type Event struct {
	Side        Side
	Kind        Kind
	Made        bool
	Offensive   bool // rebound split
	SubIn       bool // substitution direction
	Paint       bool // paint-shot keyword present
	FastBreak   bool // explicit fast-break keyword present
	Jersey      string
	Period      int
	Second      int // absolute game-second
	Description string
}

// IsShot reports whether the event is a 2- or 3-point field goal attempt.
func (e Event) IsShot() bool {
	return e.Kind == KindShot2 || e.Kind == KindShot3
}

// PointValue returns the scoring value of a made event of this kind.
func (e Event) PointValue() int {
	switch e.Kind {
	case KindShot3:
		return 3
	case KindShot2:
		return 2
	case KindFreeThrow:
		return 1
	}
	return 0
}

// Config carries the clock conventions and heuristic windows for a replay.
// The feed's widget clock counts every period, overtime included, from 600
// seconds; real overtime is five minutes. Both conventions are expressible
// here so neither gets silently baked in.
type Config struct {
	PeriodSeconds     int // regulation period length
	RegulationPeriods int
	OvertimeSeconds   int // widget convention defaults to PeriodSeconds
	TeamSize          int

	// Attribution windows, in game-seconds, inclusive.
	SecondChanceWindow       int // team second-chance points after own OREB
	TurnoverWindow           int // points off the opponent's turnover
	TransitionWindow         int // fast-break after own steal/defensive rebound
	BlockWindow              int // block attributed to the preceding miss
	PlayerSecondChanceWindow int // per-player 2CP, non-consuming

	MaxStintSeconds int // stints at or beyond this are treated as parse errors
}

// DefaultConfig returns the conventions the hosted feed uses.
func DefaultConfig() Config {
	return Config{
		PeriodSeconds:            600,
		RegulationPeriods:        4,
		OvertimeSeconds:          600,
		TeamSize:                 5,
		SecondChanceWindow:       4,
		TurnoverWindow:           8,
		TransitionWindow:         5,
		BlockWindow:              3,
		PlayerSecondChanceWindow: 24,
		MaxStintSeconds:          3600,
	}
}

// PeriodLength returns the length in seconds of the given 1-based period.
func (c Config) PeriodLength(period int) int {
	if period > c.RegulationPeriods {
		return c.OvertimeSeconds
	}
	return c.PeriodSeconds
}

// PeriodStart returns the absolute second at which the given period begins.
func (c Config) PeriodStart(period int) int {
	if period <= 1 {
		return 0
	}
	if period <= c.RegulationPeriods {
		return (period - 1) * c.PeriodSeconds
	}
	return c.RegulationPeriods*c.PeriodSeconds + (period-c.RegulationPeriods-1)*c.OvertimeSeconds
}

// RegulationEnd returns the absolute second marking the end of regulation.
func (c Config) RegulationEnd() int {
	return c.RegulationPeriods * c.PeriodSeconds
}

// PeriodOfSecond maps an absolute game-second back to its 1-based period.
func (c Config) PeriodOfSecond(second int) int {
	if second <= 0 {
		return 1
	}
	// A second sitting exactly on a boundary belongs to the period it closes.
	second--
	if second < c.RegulationEnd() {
		return second/c.PeriodSeconds + 1
	}
	over := second - c.RegulationEnd()
	return c.RegulationPeriods + over/c.OvertimeSeconds + 1
}

// PeriodLabel names a period for the per-period stat buckets: Q1..Q4, then OT1, OT2...
func (c Config) PeriodLabel(period int) string {
	if period > c.RegulationPeriods {
		return fmt.Sprintf("OT%d", period-c.RegulationPeriods)
	}
	return fmt.Sprintf("Q%d", period)
}
