package services

import (
	"context"

	apperrors "github.com/owenk/chessinsights/internal/errors"
	"github.com/owenk/chessinsights/internal/logger"
	"github.com/owenk/chessinsights/internal/models"
	"github.com/owenk/chessinsights/internal/repository"
)

// SettingsService manages overlay settings: retrieval with defaulting,
// validation, and storage.
type SettingsService interface {
	// Get returns the stored settings. Missing or invalid stored settings
	// are replaced by the defaults, which are persisted and returned.
	Get(ctx context.Context) (models.Settings, error)

	// Update validates and stores new settings.
	Update(ctx context.Context, settings models.Settings) (models.Settings, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx)

	stored, err := s.repo.Get(ctx)
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return models.Settings{}, apperrors.NewInternalError(err)
	}

	if stored != nil && stored.Valid() {
		return *stored, nil
	}

	if stored != nil {
		log.Warn("stored settings are invalid, resetting to defaults")
	}
	defaults := models.DefaultSettings()
	if err := s.repo.Save(ctx, defaults); err != nil {
		log.Error("failed to persist default settings: %v", err)
		return models.Settings{}, apperrors.NewInternalError(err)
	}
	return defaults, nil
}

func (s *settingsService) Update(ctx context.Context, settings models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx)

	if !settings.Valid() {
		log.Warn("rejecting invalid settings update")
		return models.Settings{}, apperrors.NewValidationError("settings", "unknown game mode or time interval")
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		log.Error("failed to save settings: %v", err)
		return models.Settings{}, apperrors.NewInternalError(err)
	}
	return settings, nil
}
