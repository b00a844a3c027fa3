package repository

import (
	"database/sql"
	"fmt"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// StreakRepository handles database operations for daily-practice streaks
type StreakRepository struct {
	db *database.DB
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *database.DB) *StreakRepository {
	return &StreakRepository{db: db}
}

// GetStreak retrieves a profile's streak, nil if the profile was never seeded
func (r *StreakRepository) GetStreak(profileID string) (*models.Streak, error) {
	query := `
		SELECT profile_id, current_streak, longest_streak, last_practice_date
		FROM streaks
		WHERE profile_id = ?
	`
	streak := &models.Streak{}
	err := r.db.QueryRow(query, profileID).Scan(
		&streak.ProfileID,
		&streak.CurrentStreak,
		&streak.LongestStreak,
		&streak.LastPracticeDate,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return streak, nil
}

// UpsertStreak creates or replaces a profile's streak row
func (r *StreakRepository) UpsertStreak(streak *models.Streak) error {
	query := r.db.Dialect.UpsertQuery("streaks",
		[]string{"profile_id"},
		[]string{"current_streak", "longest_streak", "last_practice_date"},
	)
	_, err := r.db.Exec(query,
		streak.ProfileID, streak.CurrentStreak, streak.LongestStreak, streak.LastPracticeDate,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert streak: %w", err)
	}
	return nil
}
