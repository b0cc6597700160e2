package stats

import "time"

// GameMode is the speed category of a game.
type GameMode string

const (
	ModeBullet GameMode = "bullet"
	ModeBlitz  GameMode = "blitz"
	ModeRapid  GameMode = "rapid"
	ModeDaily  GameMode = "daily"
)

// ValidGameModes lists every accepted game mode.
var ValidGameModes = []GameMode{ModeBullet, ModeBlitz, ModeRapid, ModeDaily}

// ValidGameMode reports whether m is a known game mode.
func ValidGameMode(m GameMode) bool {
	for _, v := range ValidGameModes {
		if m == v {
			return true
		}
	}
	return false
}

// TimeInterval is a named window restricting which games count toward
// statistics, anchored to the current moment.
type TimeInterval string

const (
	IntervalLastHour    TimeInterval = "last hour"
	IntervalLast6Hours  TimeInterval = "last 6 hours"
	IntervalLast12Hours TimeInterval = "last 12 hours"
	IntervalLastDay     TimeInterval = "last day"
	IntervalLast3Days   TimeInterval = "last 3 days"
	IntervalLastWeek    TimeInterval = "last week"

	// IntervalThisMonth disables time filtering. The upstream archive only
	// ever holds the current month, so the filter would be a no-op anyway.
	IntervalThisMonth TimeInterval = "this month"
)

// Windows maps each named interval to its duration.
var Windows = map[TimeInterval]time.Duration{
	IntervalLastHour:    time.Hour,
	IntervalLast6Hours:  6 * time.Hour,
	IntervalLast12Hours: 12 * time.Hour,
	IntervalLastDay:     24 * time.Hour,
	IntervalLast3Days:   3 * 24 * time.Hour,
	IntervalLastWeek:    7 * 24 * time.Hour,
}

// ValidTimeInterval reports whether t is a known interval, including the
// "this month" sentinel.
func ValidTimeInterval(t TimeInterval) bool {
	if t == IntervalThisMonth {
		return true
	}
	_, ok := Windows[t]
	return ok
}

// Wld bundles win/loss/draw counters with a total game count. Games with an
// unknown result code count toward Games but not toward any of the three
// tallies, so Wins+Loses+Draws <= Games.
type Wld struct {
	Wins  int `json:"wins"`
	Loses int `json:"loses"`
	Draws int `json:"draws"`
	Games int `json:"games"`
}

// Accuracy is the average analysis score over the subset of games that carry
// one, with its own Wld restricted to that subset. Avg is 0 when no game in
// the filtered set was analyzed.
type Accuracy struct {
	Avg float64 `json:"avg"`
	Wld Wld     `json:"wld"`
}

// Stats is the computed summary for one player. Immutable once produced;
// recomputed on every request.
type Stats struct {
	Wld      Wld      `json:"wld"`
	Accuracy Accuracy `json:"accuracy"`
}
