package repository

import (
	"database/sql"
	"fmt"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// SettingsRepository handles the process-wide settings singleton
type SettingsRepository struct {
	db *database.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetSettings retrieves the settings singleton, nil if not yet seeded
func (r *SettingsRepository) GetSettings() (*models.AppSettings, error) {
	query := `
		SELECT parent_pin_hash, break_reminder_minutes, sound_enabled, read_aloud_enabled
		FROM settings
		WHERE id = 1
	`
	s := &models.AppSettings{}
	err := r.db.QueryRow(query).Scan(
		&s.ParentPinHash,
		&s.BreakReminderMinutes,
		&s.SoundEnabled,
		&s.ReadAloudEnabled,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// SaveSettings creates or replaces the settings singleton
func (r *SettingsRepository) SaveSettings(s *models.AppSettings) error {
	query := r.db.Dialect.UpsertQuery("settings",
		[]string{"id"},
		[]string{"parent_pin_hash", "break_reminder_minutes", "sound_enabled", "read_aloud_enabled"},
	)
	_, err := r.db.Exec(query, 1, s.ParentPinHash, s.BreakReminderMinutes, s.SoundEnabled, s.ReadAloudEnabled)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// EnsureDefaults seeds the settings singleton on first run. Calling it when
// settings already exist is a no-op.
func (r *SettingsRepository) EnsureDefaults(defaults *models.AppSettings) error {
	existing, err := r.GetSettings()
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return r.SaveSettings(defaults)
}
