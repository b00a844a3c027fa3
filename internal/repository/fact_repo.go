package repository

import (
	"database/sql"
	"fmt"
	"time"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// FactRepository handles database operations for spaced-repetition fact stats
type FactRepository struct {
	db *database.DB
}

// NewFactRepository creates a new fact repository
func NewFactRepository(db *database.DB) *FactRepository {
	return &FactRepository{db: db}
}

// GetFactStats retrieves all fact stats for a profile
func (r *FactRepository) GetFactStats(profileID string) ([]models.FactStat, error) {
	query := `
		SELECT profile_id, fact, correct_count, incorrect_count, last_attempt, next_review_date, ease_factor, interval_days
		FROM fact_stats
		WHERE profile_id = ?
		ORDER BY fact ASC
	`
	return r.queryFactStats(query, profileID)
}

// GetFactStat retrieves one (profile, fact) row, nil if the fact was never attempted
func (r *FactRepository) GetFactStat(profileID, fact string) (*models.FactStat, error) {
	query := `
		SELECT profile_id, fact, correct_count, incorrect_count, last_attempt, next_review_date, ease_factor, interval_days
		FROM fact_stats
		WHERE profile_id = ? AND fact = ?
	`
	stat, err := scanFactStat(r.db.QueryRow(query, profileID, fact))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fact stat: %w", err)
	}
	return stat, nil
}

// GetDueFacts retrieves facts whose next review date has passed, most overdue first
func (r *FactRepository) GetDueFacts(profileID string, asOf time.Time) ([]models.FactStat, error) {
	query := `
		SELECT profile_id, fact, correct_count, incorrect_count, last_attempt, next_review_date, ease_factor, interval_days
		FROM fact_stats
		WHERE profile_id = ? AND next_review_date <= ?
		ORDER BY next_review_date ASC
	`
	return r.queryFactStats(query, profileID, asOf)
}

// UpsertFactStat creates or replaces a (profile, fact) row
func (r *FactRepository) UpsertFactStat(stat *models.FactStat) error {
	query := r.db.Dialect.UpsertQuery("fact_stats",
		[]string{"profile_id", "fact"},
		[]string{"correct_count", "incorrect_count", "last_attempt", "next_review_date", "ease_factor", "interval_days"},
	)
	_, err := r.db.Exec(query,
		stat.ProfileID, stat.Fact,
		stat.CorrectCount, stat.IncorrectCount, stat.LastAttempt, stat.NextReviewDate, stat.EaseFactor, stat.IntervalDays,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert fact stat: %w", err)
	}
	return nil
}

func (r *FactRepository) queryFactStats(query string, args ...interface{}) ([]models.FactStat, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query fact stats: %w", err)
	}
	defer rows.Close()

	var stats []models.FactStat
	for rows.Next() {
		stat, err := scanFactStat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fact stat: %w", err)
		}
		stats = append(stats, *stat)
	}

	return stats, rows.Err()
}

func scanFactStat(row rowScanner) (*models.FactStat, error) {
	stat := &models.FactStat{}
	var lastAttempt sql.NullTime

	err := row.Scan(
		&stat.ProfileID,
		&stat.Fact,
		&stat.CorrectCount,
		&stat.IncorrectCount,
		&lastAttempt,
		&stat.NextReviewDate,
		&stat.EaseFactor,
		&stat.IntervalDays,
	)
	if err != nil {
		return nil, err
	}

	if lastAttempt.Valid {
		stat.LastAttempt = &lastAttempt.Time
	}
	return stat, nil
}
