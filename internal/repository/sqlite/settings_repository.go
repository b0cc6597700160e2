package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/owenk/chessinsights/internal/logger"
	"github.com/owenk/chessinsights/internal/models"
	"github.com/owenk/chessinsights/internal/repository"
	"github.com/owenk/chessinsights/internal/stats"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// The settings table holds a single row, pinned to id=1 by a check constraint.
const settingsRowID = 1

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("loading settings")

	query, args, err := sqlBuilder.
		Select("show_stats", "show_accuracy", "hide_own_stats", "game_modes",
			"time_interval", "color_highlighting", "popup_darkmode", "updated_at").
		From("settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		s         models.Settings
		modes     string
		interval  string
		updatedAt time.Time
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ShowStats, &s.ShowAccuracy, &s.HideOwnStats, &modes,
		&interval, &s.ColorHighlighting, &s.PopupDarkMode, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no settings stored yet")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return nil, err
	}

	s.GameModes = splitModes(modes)
	s.TimeInterval = stats.TimeInterval(interval)
	s.UpdatedAt = updatedAt
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("saving settings: modes=%s, interval=%s", joinModes(s.GameModes), s.TimeInterval)

	query, args, err := sqlBuilder.
		Insert("settings").
		Columns("id", "show_stats", "show_accuracy", "hide_own_stats", "game_modes",
			"time_interval", "color_highlighting", "popup_darkmode", "updated_at").
		Values(settingsRowID, s.ShowStats, s.ShowAccuracy, s.HideOwnStats, joinModes(s.GameModes),
			string(s.TimeInterval), s.ColorHighlighting, s.PopupDarkMode, time.Now().UTC()).
		Suffix(`ON CONFLICT(id) DO UPDATE SET
			show_stats = excluded.show_stats,
			show_accuracy = excluded.show_accuracy,
			hide_own_stats = excluded.hide_own_stats,
			game_modes = excluded.game_modes,
			time_interval = excluded.time_interval,
			color_highlighting = excluded.color_highlighting,
			popup_darkmode = excluded.popup_darkmode,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save settings: %v", err)
		return err
	}
	return nil
}

func joinModes(modes []stats.GameMode) string {
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

func splitModes(s string) []stats.GameMode {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	modes := make([]stats.GameMode, len(parts))
	for i, p := range parts {
		modes[i] = stats.GameMode(strings.TrimSpace(p))
	}
	return modes
}
