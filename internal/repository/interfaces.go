package repository

import (
	"context"

	"github.com/owenk/chessinsights/internal/models"
)

// SettingsRepository persists the single set of overlay settings.
type SettingsRepository interface {
	// Get returns the stored settings, or nil when none have been saved yet.
	Get(ctx context.Context) (*models.Settings, error)
	// Save stores the settings, replacing any previous value.
	Save(ctx context.Context, settings models.Settings) error
}
