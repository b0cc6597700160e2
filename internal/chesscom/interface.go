package chesscom

import "context"

// GamesClient defines the interface for fetching a player's monthly games.
// This interface enables testability by allowing mock implementations.
type GamesClient interface {
	FetchGames(ctx context.Context, username string) ([]Game, error)
}

// Ensure Client implements the interface
var _ GamesClient = (*Client)(nil)
