package repository

import (
	"database/sql"
	"fmt"
	"time"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// RewardRepository handles database operations for star balances and
// unlocked collectible characters
type RewardRepository struct {
	db *database.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *database.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// GetStarBalance retrieves a profile's star balance, nil if never seeded
func (r *RewardRepository) GetStarBalance(profileID string) (*models.StarBalance, error) {
	query := `
		SELECT profile_id, total_stars, lifetime_stars
		FROM star_balances
		WHERE profile_id = ?
	`
	balance := &models.StarBalance{}
	err := r.db.QueryRow(query, profileID).Scan(
		&balance.ProfileID,
		&balance.TotalStars,
		&balance.LifetimeStars,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get star balance: %w", err)
	}
	return balance, nil
}

// UpsertStarBalance creates or replaces a profile's star balance row
func (r *RewardRepository) UpsertStarBalance(balance *models.StarBalance) error {
	query := r.db.Dialect.UpsertQuery("star_balances",
		[]string{"profile_id"},
		[]string{"total_stars", "lifetime_stars"},
	)
	_, err := r.db.Exec(query, balance.ProfileID, balance.TotalStars, balance.LifetimeStars)
	if err != nil {
		return fmt.Errorf("failed to upsert star balance: %w", err)
	}
	return nil
}

// GetUnlockedCharacters retrieves all characters a profile has unlocked
func (r *RewardRepository) GetUnlockedCharacters(profileID string) ([]models.UnlockedCharacter, error) {
	query := `
		SELECT profile_id, character_id, unlocked_at
		FROM unlocked_characters
		WHERE profile_id = ?
		ORDER BY unlocked_at ASC
	`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocked characters: %w", err)
	}
	defer rows.Close()

	var unlocked []models.UnlockedCharacter
	for rows.Next() {
		var uc models.UnlockedCharacter
		if err := rows.Scan(&uc.ProfileID, &uc.CharacterID, &uc.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked character: %w", err)
		}
		unlocked = append(unlocked, uc)
	}

	return unlocked, rows.Err()
}

// UnlockCharacter records a character as unlocked. The upsert keeps exactly
// one row per (profile, character) even if callers race on the same unlock.
func (r *RewardRepository) UnlockCharacter(profileID, characterID string, at time.Time) error {
	query := r.db.Dialect.UpsertQuery("unlocked_characters",
		[]string{"profile_id", "character_id"},
		[]string{"unlocked_at"},
	)
	_, err := r.db.Exec(query, profileID, characterID, at)
	if err != nil {
		return fmt.Errorf("failed to unlock character: %w", err)
	}
	return nil
}
