package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/owenk/chessinsights/internal/chesscom"
	"github.com/owenk/chessinsights/internal/stats"
)

var now = time.Unix(1_700_000_000, 0)

func f64(v float64) *float64 {
	return &v
}

func game(timeClass string, endTime int64, whiteResult, blackResult string) chesscom.Game {
	return chesscom.Game{
		TimeClass: timeClass,
		EndTime:   endTime,
		White:     chesscom.Player{Username: "alice", Result: whiteResult},
		Black:     chesscom.Player{Username: "bob", Result: blackResult},
	}
}

func TestFilterGames_ByGameMode(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix()-100, "win", "resigned"),
		game("bullet", now.Unix()-100, "win", "resigned"),
		game("rapid", now.Unix()-100, "checkmated", "win"),
		game("daily", now.Unix()-100, "agreed", "agreed"),
	}

	filtered := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz, stats.ModeRapid}, stats.IntervalThisMonth, now)

	require.Len(t, filtered, 2)
	assert.Equal(t, "blitz", filtered[0].TimeClass)
	assert.Equal(t, "rapid", filtered[1].TimeClass)
}

func TestFilterGames_TimeWindowBoundary(t *testing.T) {
	calc := stats.NewCalculator(0)
	window := int64(3600) // "last hour"

	tests := []struct {
		name    string
		endTime int64
		kept    bool
	}{
		{name: "exactly at window edge is excluded", endTime: now.Unix() - window, kept: false},
		{name: "one second inside is included", endTime: now.Unix() - window + 1, kept: true},
		{name: "right now is included", endTime: now.Unix(), kept: true},
		{name: "future end time is excluded", endTime: now.Unix() + 10, kept: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := []chesscom.Game{game("blitz", tt.endTime, "win", "resigned")}
			filtered := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalLastHour, now)
			if tt.kept {
				assert.Len(t, filtered, 1)
			} else {
				assert.Empty(t, filtered)
			}
		})
	}
}

func TestFilterGames_ThisMonthDisablesWindow(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		// Three weeks old, far outside every named window.
		game("blitz", now.Unix()-21*24*3600, "win", "resigned"),
	}

	filtered := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalThisMonth, now)

	assert.Len(t, filtered, 1)
}

func TestFilterGames_ThisMonthStillExcludesFuture(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix()+3600, "win", "resigned"),
	}

	filtered := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalThisMonth, now)

	assert.Empty(t, filtered, "clock-skewed future games must never count")
}

func TestFilterGames_AllWindows(t *testing.T) {
	calc := stats.NewCalculator(0)

	tests := []struct {
		interval stats.TimeInterval
		seconds  int64
	}{
		{stats.IntervalLastHour, 3600},
		{stats.IntervalLast6Hours, 21600},
		{stats.IntervalLast12Hours, 43200},
		{stats.IntervalLastDay, 86400},
		{stats.IntervalLast3Days, 259200},
		{stats.IntervalLastWeek, 604800},
	}

	for _, tt := range tests {
		t.Run(string(tt.interval), func(t *testing.T) {
			inside := game("blitz", now.Unix()-tt.seconds+1, "win", "resigned")
			outside := game("blitz", now.Unix()-tt.seconds, "win", "resigned")

			filtered := calc.FilterGames([]chesscom.Game{inside, outside}, []stats.GameMode{stats.ModeBlitz}, tt.interval, now)

			require.Len(t, filtered, 1)
			assert.Equal(t, inside.EndTime, filtered[0].EndTime)
		})
	}
}

func TestFilterGames_Idempotent(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix()-100, "win", "resigned"),
		game("bullet", now.Unix()-100, "win", "resigned"),
		game("blitz", now.Unix()-200, "agreed", "agreed"),
	}

	first := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalLastHour, now)
	second := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalLastHour, now)

	assert.Equal(t, first, second)
	assert.Len(t, games, 3, "input must not be mutated")
}

func TestCalculateStats_ConcreteScenario(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		{
			TimeClass:  "blitz",
			EndTime:    now.Unix() - 100,
			White:      chesscom.Player{Username: "alice", Result: "win"},
			Black:      chesscom.Player{Username: "bob", Result: "resigned"},
			Accuracies: &chesscom.Accuracies{White: f64(92.5), Black: f64(81.0)},
		},
	}

	filtered := calc.FilterGames(games, []stats.GameMode{stats.ModeBlitz}, stats.IntervalThisMonth, now)
	require.Len(t, filtered, 1)

	result := calc.CalculateStats(filtered, "alice")

	assert.Equal(t, stats.Wld{Wins: 1, Loses: 0, Draws: 0, Games: 1}, result.Wld)
	assert.Equal(t, stats.Wld{Wins: 1, Loses: 0, Draws: 0, Games: 1}, result.Accuracy.Wld)
	assert.Equal(t, 93.0, result.Accuracy.Avg)
}

func TestCalculateStats_ResultClassification(t *testing.T) {
	calc := stats.NewCalculator(0)

	tests := []struct {
		result string
		want   stats.Wld
	}{
		{"win", stats.Wld{Wins: 1, Games: 1}},
		{"lose", stats.Wld{Loses: 1, Games: 1}},
		{"checkmated", stats.Wld{Loses: 1, Games: 1}},
		{"resigned", stats.Wld{Loses: 1, Games: 1}},
		{"timeout", stats.Wld{Loses: 1, Games: 1}},
		{"abandoned", stats.Wld{Loses: 1, Games: 1}},
		{"bughousepartnerlose", stats.Wld{Loses: 1, Games: 1}},
		{"agreed", stats.Wld{Draws: 1, Games: 1}},
		{"timevsinsufficient", stats.Wld{Draws: 1, Games: 1}},
		{"repetition", stats.Wld{Draws: 1, Games: 1}},
		{"stalemate", stats.Wld{Draws: 1, Games: 1}},
		{"insufficient", stats.Wld{Draws: 1, Games: 1}},
		{"50move", stats.Wld{Draws: 1, Games: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			result := calc.CalculateStats([]chesscom.Game{game("blitz", now.Unix(), tt.result, "win")}, "alice")
			assert.Equal(t, tt.want, result.Wld)
		})
	}
}

func TestCalculateStats_UnknownResultCountsTowardGames(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix(), "win", "resigned"),
		game("blitz", now.Unix(), "kingofthehill", "win"),
	}

	result := calc.CalculateStats(games, "alice")

	assert.Equal(t, 2, result.Wld.Games, "unknown results still count toward the total")
	assert.Equal(t, 1, result.Wld.Wins)
	assert.Equal(t, 0, result.Wld.Loses)
	assert.Equal(t, 0, result.Wld.Draws)
	assert.Less(t, result.Wld.Wins+result.Wld.Loses+result.Wld.Draws, result.Wld.Games)
}

func TestCalculateStats_CaseInsensitiveAttribution(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		{
			TimeClass: "blitz",
			EndTime:   now.Unix(),
			White:     chesscom.Player{Username: "AlIcE", Result: "win"},
			Black:     chesscom.Player{Username: "bob", Result: "resigned"},
		},
	}

	result := calc.CalculateStats(games, "alice")

	assert.Equal(t, 1, result.Wld.Wins, "case must not break white attribution")
}

func TestCalculateStats_FallsBackToBlack(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix(), "win", "resigned"),
	}

	result := calc.CalculateStats(games, "bob")

	assert.Equal(t, stats.Wld{Loses: 1, Games: 1}, result.Wld)
}

func TestCalculateStats_NoAnalyzedGames(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := []chesscom.Game{
		game("blitz", now.Unix(), "win", "resigned"),
		game("blitz", now.Unix(), "agreed", "agreed"),
	}

	result := calc.CalculateStats(games, "alice")

	assert.Zero(t, result.Accuracy.Avg, "average must be exactly 0 with no analyzed games, not NaN")
	assert.Equal(t, 0, result.Accuracy.Wld.Games)
	assert.Equal(t, 2, result.Wld.Games)
}

func TestCalculateStats_PartiallyAnalyzed(t *testing.T) {
	calc := stats.NewCalculator(0)
	analyzed := game("blitz", now.Unix(), "win", "resigned")
	analyzed.Accuracies = &chesscom.Accuracies{White: f64(90.0), Black: f64(70.0)}
	games := []chesscom.Game{
		analyzed,
		game("blitz", now.Unix(), "checkmated", "win"),
	}

	result := calc.CalculateStats(games, "alice")

	assert.Equal(t, stats.Wld{Wins: 1, Loses: 1, Games: 2}, result.Wld)
	assert.Equal(t, stats.Wld{Wins: 1, Games: 1}, result.Accuracy.Wld)
	assert.Equal(t, 90.0, result.Accuracy.Avg)
	assert.LessOrEqual(t, result.Accuracy.Wld.Games, result.Wld.Games)
}

func TestCalculateStats_AccuracyMissingForActingSide(t *testing.T) {
	calc := stats.NewCalculator(0)
	g := game("blitz", now.Unix(), "win", "resigned")
	// Engine report only covered black; for white this game is unanalyzed.
	g.Accuracies = &chesscom.Accuracies{Black: f64(70.0)}

	result := calc.CalculateStats([]chesscom.Game{g}, "alice")

	assert.Equal(t, 0, result.Accuracy.Wld.Games)
	assert.Zero(t, result.Accuracy.Avg)
}

func TestCalculateStats_RoundingPrecision(t *testing.T) {
	first := game("blitz", now.Unix(), "win", "resigned")
	first.Accuracies = &chesscom.Accuracies{White: f64(92.5)}
	second := game("blitz", now.Unix(), "checkmated", "win")
	second.Accuracies = &chesscom.Accuracies{White: f64(81.0)}
	games := []chesscom.Game{first, second}

	tests := []struct {
		name      string
		precision int
		want      float64
	}{
		{name: "zero decimals", precision: 0, want: 87},
		{name: "two decimals", precision: 2, want: 86.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stats.NewCalculator(tt.precision).CalculateStats(games, "alice")
			assert.Equal(t, tt.want, result.Accuracy.Avg)
		})
	}
}

func TestCalculateStats_AverageStaysInRange(t *testing.T) {
	calc := stats.NewCalculator(0)
	games := make([]chesscom.Game, 0, 10)
	for i := 0; i < 10; i++ {
		g := game("blitz", now.Unix(), "win", "resigned")
		g.Accuracies = &chesscom.Accuracies{White: f64(float64(i * 10)), Black: f64(50)}
		games = append(games, g)
	}

	result := calc.CalculateStats(games, "alice")

	assert.GreaterOrEqual(t, result.Accuracy.Avg, 0.0)
	assert.LessOrEqual(t, result.Accuracy.Avg, 100.0)
}

func TestCalculateStats_EmptyList(t *testing.T) {
	calc := stats.NewCalculator(0)

	result := calc.CalculateStats(nil, "alice")

	assert.Equal(t, stats.Stats{}, result)
}

func TestValidGameMode(t *testing.T) {
	assert.True(t, stats.ValidGameMode(stats.ModeBullet))
	assert.True(t, stats.ValidGameMode(stats.ModeDaily))
	assert.False(t, stats.ValidGameMode(stats.GameMode("chess960")))
}

func TestValidTimeInterval(t *testing.T) {
	assert.True(t, stats.ValidTimeInterval(stats.IntervalThisMonth))
	assert.True(t, stats.ValidTimeInterval(stats.IntervalLastWeek))
	assert.False(t, stats.ValidTimeInterval(stats.TimeInterval("last year")))
}
