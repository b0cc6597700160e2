package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/owenk/chessinsights/internal/chesscom"
)

// MockGamesClient is a mock implementation of chesscom.GamesClient
type MockGamesClient struct {
	mock.Mock
}

func (m *MockGamesClient) FetchGames(ctx context.Context, username string) ([]chesscom.Game, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]chesscom.Game), args.Error(1)
}
