package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
	"numbergalaxy/internal/validation"
)

var (
	// ErrProfileNotFound is returned for operations on an unknown profile
	ErrProfileNotFound = errors.New("profile not found")
	// ErrLastOperation is returned when an update would leave a profile with
	// no enabled arithmetic operations
	ErrLastOperation = errors.New("at least one operation must stay enabled")
	// ErrParentalGate is returned when an administrative operation is
	// attempted without PIN verification
	ErrParentalGate = errors.New("parental PIN verification required")
)

// ProfileService manages learner profiles and their seeded progress records
type ProfileService struct {
	profileRepo     *repository.ProfileRepository
	progressService *ProgressService
	streakRepo      *repository.StreakRepository
	rewardRepo      *repository.RewardRepository
}

// NewProfileService creates a new profile service
func NewProfileService(
	profileRepo *repository.ProfileRepository,
	progressService *ProgressService,
	streakRepo *repository.StreakRepository,
	rewardRepo *repository.RewardRepository,
) *ProfileService {
	return &ProfileService{
		profileRepo:     profileRepo,
		progressService: progressService,
		streakRepo:      streakRepo,
		rewardRepo:      rewardRepo,
	}
}

// CreateProfile creates a learner profile and seeds its progress records:
// ten table rows (first unlock-order table at learning), a zeroed streak,
// and a zeroed star balance.
func (s *ProfileService) CreateProfile(name string, theme models.Theme, avatarID string, inputMethod models.InputMethod) (*models.Profile, error) {
	if err := validation.ValidateProfileName(name); err != nil {
		return nil, err
	}

	now := time.Now()
	profile := &models.Profile{
		ID:                uuid.New().String(),
		Name:              name,
		Theme:             theme,
		AvatarID:          avatarID,
		InputMethod:       inputMethod,
		EnabledOperations: []models.Operation{models.OpMultiplication},
		Difficulty:        models.DifficultyEasy,
		CreatedAt:         now,
		LastActiveAt:      now,
	}

	if err := s.profileRepo.CreateProfile(profile); err != nil {
		return nil, err
	}

	if err := s.progressService.SeedProfileProgress(profile.ID); err != nil {
		return nil, err
	}

	if err := s.streakRepo.UpsertStreak(&models.Streak{ProfileID: profile.ID}); err != nil {
		return nil, fmt.Errorf("failed to seed streak: %w", err)
	}

	if err := s.rewardRepo.UpsertStarBalance(&models.StarBalance{ProfileID: profile.ID}); err != nil {
		return nil, fmt.Errorf("failed to seed star balance: %w", err)
	}

	return profile, nil
}

// GetProfile returns a profile by ID
func (s *ProfileService) GetProfile(profileID string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// ListProfiles returns all profiles, most recently active first
func (s *ProfileService) ListProfiles() ([]models.Profile, error) {
	return s.profileRepo.GetAllProfiles()
}

// SelectProfile stamps a profile's last-active time and returns it
func (s *ProfileService) SelectProfile(profileID string) (*models.Profile, error) {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.profileRepo.TouchLastActive(profileID, now); err != nil {
		return nil, err
	}
	profile.LastActiveAt = now
	return profile, nil
}

// UpdateProfile updates a profile's display and input settings
func (s *ProfileService) UpdateProfile(profile *models.Profile) error {
	if err := validation.ValidateProfileName(profile.Name); err != nil {
		return err
	}
	profile.LastActiveAt = time.Now()
	return s.profileRepo.UpdateProfile(profile)
}

// SetEnabledOperations replaces a profile's enabled operation set. The set
// must stay non-empty: the guard rejects the update before anything is
// persisted, so a half-updated set can never be stored.
func (s *ProfileService) SetEnabledOperations(profileID string, ops []models.Operation) error {
	if len(ops) == 0 {
		return ErrLastOperation
	}
	if err := validation.ValidateOperations(ops); err != nil {
		return err
	}

	profile, err := s.GetProfile(profileID)
	if err != nil {
		return err
	}

	profile.EnabledOperations = ops
	return s.profileRepo.UpdateProfile(profile)
}

// SetDifficulty updates a profile's difficulty level
func (s *ProfileService) SetDifficulty(profileID string, difficulty models.Difficulty) error {
	profile, err := s.GetProfile(profileID)
	if err != nil {
		return err
	}

	profile.Difficulty = difficulty
	return s.profileRepo.UpdateProfile(profile)
}

// DeleteProfile removes a profile and all dependent records in one
// transaction. The caller must have passed the parental gate.
func (s *ProfileService) DeleteProfile(profileID string, pinVerified bool) error {
	if !pinVerified {
		return ErrParentalGate
	}
	return s.profileRepo.DeleteProfileCascade(profileID)
}
