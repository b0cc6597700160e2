package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/owenk/chessinsights/internal/chesscom"
	apperrors "github.com/owenk/chessinsights/internal/errors"
	"github.com/owenk/chessinsights/internal/logger"
	"github.com/owenk/chessinsights/internal/stats"
)

// PlayerStats is the per-player outcome of a combined stats request. Exactly
// one of Stats and Err is set.
type PlayerStats struct {
	Username string       `json:"username"`
	Stats    *stats.Stats `json:"stats,omitempty"`
	Err      error        `json:"-"`
}

// StatsService composes fetch, filter and aggregation behind a single call.
type StatsService interface {
	// GetStats computes the stats summary for one player. Fetch failures are
	// reported as a single error per player; a missing user keeps its
	// distinct error code.
	GetStats(ctx context.Context, username string, modes []stats.GameMode, interval stats.TimeInterval) (*stats.Stats, error)

	// GetStatsForPlayers computes stats for several players concurrently.
	// Requests are independent: one player's failure never cancels another's
	// in-flight fetch.
	GetStatsForPlayers(ctx context.Context, usernames []string, modes []stats.GameMode, interval stats.TimeInterval) []PlayerStats
}

type statsService struct {
	client chesscom.GamesClient
	calc   *stats.Calculator
	now    func() time.Time
}

// NewStatsService creates a new StatsService. Retry policy lives entirely in
// the games client; this layer adds none.
func NewStatsService(client chesscom.GamesClient, calc *stats.Calculator) StatsService {
	return &statsService{
		client: client,
		calc:   calc,
		now:    time.Now,
	}
}

func (s *statsService) GetStats(ctx context.Context, username string, modes []stats.GameMode, interval stats.TimeInterval) (*stats.Stats, error) {
	log := logger.FromContext(ctx).WithField("username", username)
	log.Debug("computing stats: modes=%v, interval=%q", modes, interval)

	games, err := s.client.FetchGames(ctx, username)
	if err != nil {
		if errors.Is(err, chesscom.ErrUserNotFound) {
			log.Warn("player does not exist upstream")
			return nil, apperrors.NewUserNotFoundError(username, err)
		}
		log.Error("failed to fetch games: %v", err)
		return nil, apperrors.NewStatsUnavailableError(username, err)
	}

	filtered := s.calc.FilterGames(games, modes, interval, s.now())
	result := s.calc.CalculateStats(filtered, username)

	log.Debug("stats computed: %d of %d games in filter, %d analyzed",
		result.Wld.Games, len(games), result.Accuracy.Wld.Games)
	return &result, nil
}

func (s *statsService) GetStatsForPlayers(ctx context.Context, usernames []string, modes []stats.GameMode, interval stats.TimeInterval) []PlayerStats {
	results := make([]PlayerStats, len(usernames))

	var wg sync.WaitGroup
	for i, username := range usernames {
		wg.Add(1)
		go func(i int, username string) {
			defer wg.Done()
			st, err := s.GetStats(ctx, username, modes, interval)
			results[i] = PlayerStats{Username: username, Stats: st, Err: err}
		}(i, username)
	}
	wg.Wait()

	return results
}
