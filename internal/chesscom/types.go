package chesscom

// Game is a single entry of a player's monthly archive as returned by the
// public chess.com API. Only the fields the service reads are decoded.
type Game struct {
	URL         string      `json:"url"`
	TimeControl string      `json:"time_control"`
	TimeClass   string      `json:"time_class"`
	Rules       string      `json:"rules"`
	Rated       bool        `json:"rated"`
	EndTime     int64       `json:"end_time"`
	Accuracies  *Accuracies `json:"accuracies,omitempty"`
	White       Player      `json:"white"`
	Black       Player      `json:"black"`
}

// Accuracies holds the post-game analysis scores. Either side may be missing
// when the engine report did not cover it.
type Accuracies struct {
	White *float64 `json:"white,omitempty"`
	Black *float64 `json:"black,omitempty"`
}

// Player is one side of a game.
type Player struct {
	Username string `json:"username"`
	Rating   int    `json:"rating"`
	Result   string `json:"result"`
}

// ForColor returns the accuracy for the given color, or nil when the game was
// not analyzed for that side.
func (a *Accuracies) ForColor(white bool) *float64 {
	if a == nil {
		return nil
	}
	if white {
		return a.White
	}
	return a.Black
}

// valid reports whether an archive entry carries enough data to be usable
// downstream. Malformed entries are dropped at the fetch boundary.
func (g Game) valid() bool {
	return g.EndTime > 0 && (g.White.Username != "" || g.Black.Username != "")
}
