package stats

import (
	"math"
	"strings"
	"time"

	"github.com/owenk/chessinsights/internal/chesscom"
	"github.com/owenk/chessinsights/internal/logger"
)

type outcome int

const (
	outcomeUnknown outcome = iota
	outcomeWin
	outcomeLose
	outcomeDraw
)

// classifyResult maps a raw chess.com result code onto a win/lose/draw
// outcome. Codes outside the known partition come back as unknown.
func classifyResult(result string) outcome {
	switch result {
	case "win":
		return outcomeWin
	case "lose", "checkmated", "resigned", "timeout", "abandoned", "bughousepartnerlose":
		return outcomeLose
	case "agreed", "timevsinsufficient", "repetition", "stalemate", "insufficient", "50move":
		return outcomeDraw
	default:
		return outcomeUnknown
	}
}

// Calculator reduces raw game lists into Stats. It is stateless apart from
// the rounding precision for the accuracy average, so all methods are pure.
type Calculator struct {
	precision int
	log       *logger.Logger
}

// NewCalculator creates a Calculator. precision is the number of decimal
// places kept in the accuracy average, clamped to [0, 2].
func NewCalculator(precision int) *Calculator {
	if precision < 0 {
		precision = 0
	}
	if precision > 2 {
		precision = 2
	}
	return &Calculator{
		precision: precision,
		log:       logger.Default().WithPrefix("stats"),
	}
}

// FilterGames keeps the games whose time class is in modes and whose end time
// satisfies the interval window relative to now. Order-preserving, no
// deduplication.
func (c *Calculator) FilterGames(games []chesscom.Game, modes []GameMode, interval TimeInterval, now time.Time) []chesscom.Game {
	modeSet := make(map[GameMode]struct{}, len(modes))
	for _, m := range modes {
		modeSet[m] = struct{}{}
	}

	kept := make([]chesscom.Game, 0, len(games))
	for _, g := range games {
		if _, ok := modeSet[GameMode(g.TimeClass)]; !ok {
			continue
		}
		if !inWindow(g.EndTime, interval, now) {
			continue
		}
		kept = append(kept, g)
	}
	return kept
}

// inWindow applies the time-window predicate. End times in the future are
// always excluded, clock skew happens. The window edge itself is excluded:
// a game must have ended strictly after now-window.
func inWindow(endTime int64, interval TimeInterval, now time.Time) bool {
	nowSec := now.Unix()
	if endTime > nowSec {
		return false
	}
	if interval == IntervalThisMonth {
		return true
	}
	window, ok := Windows[interval]
	if !ok {
		return false
	}
	return endTime > nowSec-int64(window.Seconds())
}

// CalculateStats reduces an already-filtered game list into Stats for the
// given player. The player's side is found by case-insensitive comparison
// against the white username; otherwise black is assumed. Unknown result
// codes are logged and skipped but still count toward the game totals.
func (c *Calculator) CalculateStats(games []chesscom.Game, username string) Stats {
	st := Stats{
		Wld:      Wld{Games: len(games)},
		Accuracy: Accuracy{Wld: Wld{Games: len(games)}},
	}

	var accuracySum float64
	for _, g := range games {
		white := strings.EqualFold(g.White.Username, username)
		side := g.Black
		if white {
			side = g.White
		}

		result := classifyResult(side.Result)
		switch result {
		case outcomeWin:
			st.Wld.Wins++
		case outcomeLose:
			st.Wld.Loses++
		case outcomeDraw:
			st.Wld.Draws++
		default:
			c.log.Warn("unknown result code %q for %s in %s", side.Result, username, g.URL)
		}

		if acc := g.Accuracies.ForColor(white); acc != nil {
			accuracySum += *acc
			switch result {
			case outcomeWin:
				st.Accuracy.Wld.Wins++
			case outcomeLose:
				st.Accuracy.Wld.Loses++
			case outcomeDraw:
				st.Accuracy.Wld.Draws++
			}
		} else {
			st.Accuracy.Wld.Games--
		}
	}

	if st.Accuracy.Wld.Games > 0 {
		st.Accuracy.Avg = roundTo(accuracySum/float64(st.Accuracy.Wld.Games), c.precision)
	}

	return st
}

func roundTo(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
