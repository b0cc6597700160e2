package models

import (
	"time"

	"github.com/owenk/chessinsights/internal/stats"
)

// Settings holds the user-facing overlay preferences. The stats core never
// reads these directly; it receives the already-validated game modes and
// time interval as arguments.
type Settings struct {
	ShowStats         bool               `json:"show_stats"`
	ShowAccuracy      bool               `json:"show_accuracy"`
	HideOwnStats      bool               `json:"hide_own_stats"`
	GameModes         []stats.GameMode   `json:"game_modes"`
	TimeInterval      stats.TimeInterval `json:"time_interval"`
	ColorHighlighting bool               `json:"color_highlighting"`
	PopupDarkMode     bool               `json:"popup_darkmode"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// DefaultSettings returns the settings applied when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		ShowStats:         true,
		ShowAccuracy:      true,
		HideOwnStats:      false,
		GameModes:         []stats.GameMode{stats.ModeBullet, stats.ModeBlitz, stats.ModeRapid},
		TimeInterval:      stats.IntervalThisMonth,
		ColorHighlighting: true,
		PopupDarkMode:     true,
	}
}

// Valid reports whether the settings reference only known game modes and a
// known time interval, with at least one mode selected.
func (s Settings) Valid() bool {
	if len(s.GameModes) == 0 {
		return false
	}
	for _, m := range s.GameModes {
		if !stats.ValidGameMode(m) {
			return false
		}
	}
	return stats.ValidTimeInterval(s.TimeInterval)
}
