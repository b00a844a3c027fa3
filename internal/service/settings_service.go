package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
	"numbergalaxy/internal/validation"
)

// ErrSettingsNotFound is returned when the settings singleton is missing
var ErrSettingsNotFound = errors.New("settings not initialized")

// defaultPin is the parental PIN seeded on first run
const defaultPin = "1234"

// defaultBreakReminderMinutes is the seeded break-reminder interval
const defaultBreakReminderMinutes = 20

// SettingsService manages the app-wide settings singleton and the parental
// PIN. The PIN is stored as a bcrypt hash, never in clear text.
type SettingsService struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// EnsureDefaults seeds the settings singleton on first run; it is a no-op
// when settings already exist.
func (s *SettingsService) EnsureDefaults() error {
	hash, err := hashPin(defaultPin)
	if err != nil {
		return err
	}

	return s.settingsRepo.EnsureDefaults(&models.AppSettings{
		ParentPinHash:        hash,
		BreakReminderMinutes: defaultBreakReminderMinutes,
		SoundEnabled:         true,
		ReadAloudEnabled:     true,
	})
}

// GetSettings returns the settings singleton
func (s *SettingsService) GetSettings() (*models.AppSettings, error) {
	settings, err := s.settingsRepo.GetSettings()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, ErrSettingsNotFound
	}
	return settings, nil
}

// VerifyPin checks a candidate PIN against the stored hash
func (s *SettingsService) VerifyPin(pin string) (bool, error) {
	if err := validation.ValidatePin(pin); err != nil {
		return false, nil
	}

	settings, err := s.GetSettings()
	if err != nil {
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(settings.ParentPinHash), []byte(pin))
	return err == nil, nil
}

// UpdatePin replaces the parental PIN. The caller must have passed the
// parental gate with the current PIN.
func (s *SettingsService) UpdatePin(newPin string, pinVerified bool) error {
	if !pinVerified {
		return ErrParentalGate
	}
	if err := validation.ValidatePin(newPin); err != nil {
		return err
	}

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	hash, err := hashPin(newPin)
	if err != nil {
		return err
	}

	settings.ParentPinHash = hash
	return s.settingsRepo.SaveSettings(settings)
}

// UpdateBreakReminder sets the break-reminder interval in minutes
func (s *SettingsService) UpdateBreakReminder(minutes int, pinVerified bool) error {
	if !pinVerified {
		return ErrParentalGate
	}
	if minutes < 1 {
		return validation.ValidationError{Field: "breakReminderMinutes", Message: "must be at least 1 minute"}
	}

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	settings.BreakReminderMinutes = minutes
	return s.settingsRepo.SaveSettings(settings)
}

// SetSoundEnabled toggles sound effects
func (s *SettingsService) SetSoundEnabled(enabled bool, pinVerified bool) error {
	if !pinVerified {
		return ErrParentalGate
	}

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	settings.SoundEnabled = enabled
	return s.settingsRepo.SaveSettings(settings)
}

// SetReadAloudEnabled toggles problem read-aloud
func (s *SettingsService) SetReadAloudEnabled(enabled bool, pinVerified bool) error {
	if !pinVerified {
		return ErrParentalGate
	}

	settings, err := s.GetSettings()
	if err != nil {
		return err
	}

	settings.ReadAloudEnabled = enabled
	return s.settingsRepo.SaveSettings(settings)
}

func hashPin(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}
