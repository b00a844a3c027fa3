package repository

import (
	"database/sql"
	"fmt"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// ProgressRepository handles database operations for per-table progress
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetTableProgress retrieves all table progress rows for a profile
func (r *ProgressRepository) GetTableProgress(profileID string) ([]models.TableProgress, error) {
	query := `
		SELECT profile_id, table_number, status, teaching_completed, guided_practice_completed, mastery_score, last_practiced_at
		FROM table_progress
		WHERE profile_id = ?
		ORDER BY table_number ASC
	`
	rows, err := r.db.Query(query, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query table progress: %w", err)
	}
	defer rows.Close()

	var progress []models.TableProgress
	for rows.Next() {
		p, err := scanTableProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table progress: %w", err)
		}
		progress = append(progress, *p)
	}

	return progress, rows.Err()
}

// GetTableProgressForTable retrieves one (profile, table) row, nil if absent
func (r *ProgressRepository) GetTableProgressForTable(profileID string, tableNumber int) (*models.TableProgress, error) {
	query := `
		SELECT profile_id, table_number, status, teaching_completed, guided_practice_completed, mastery_score, last_practiced_at
		FROM table_progress
		WHERE profile_id = ? AND table_number = ?
	`
	p, err := scanTableProgress(r.db.QueryRow(query, profileID, tableNumber))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table progress: %w", err)
	}
	return p, nil
}

// UpsertTableProgress creates or replaces a (profile, table) row
func (r *ProgressRepository) UpsertTableProgress(p *models.TableProgress) error {
	query := r.db.Dialect.UpsertQuery("table_progress",
		[]string{"profile_id", "table_number"},
		[]string{"status", "teaching_completed", "guided_practice_completed", "mastery_score", "last_practiced_at"},
	)
	_, err := r.db.Exec(query,
		p.ProfileID, p.TableNumber,
		string(p.Status), p.TeachingCompleted, p.GuidedPracticeCompleted, p.MasteryScore, p.LastPracticedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert table progress: %w", err)
	}
	return nil
}

func scanTableProgress(row rowScanner) (*models.TableProgress, error) {
	p := &models.TableProgress{}
	var status string
	var lastPracticed sql.NullTime

	err := row.Scan(
		&p.ProfileID,
		&p.TableNumber,
		&status,
		&p.TeachingCompleted,
		&p.GuidedPracticeCompleted,
		&p.MasteryScore,
		&lastPracticed,
	)
	if err != nil {
		return nil, err
	}

	p.Status = models.TableStatus(status)
	if lastPracticed.Valid {
		p.LastPracticedAt = &lastPracticed.Time
	}
	return p, nil
}
