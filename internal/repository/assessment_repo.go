package repository

import (
	"database/sql"
	"fmt"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// AssessmentRepository handles database operations for onboarding assessments
type AssessmentRepository struct {
	db *database.DB
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// GetAssessment retrieves a profile's assessment result, nil if never assessed
func (r *AssessmentRepository) GetAssessment(profileID string) (*models.AssessmentResult, error) {
	query := `
		SELECT profile_id, known_tables, suggested_start_table, completed_at
		FROM assessments
		WHERE profile_id = ?
	`
	result := &models.AssessmentResult{}
	var knownTables string
	err := r.db.QueryRow(query, profileID).Scan(
		&result.ProfileID,
		&knownTables,
		&result.SuggestedStartTable,
		&result.CompletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	result.KnownTables = tablesFromString(knownTables)
	return result, nil
}

// UpsertAssessment stores an assessment result, overwriting any previous one
func (r *AssessmentRepository) UpsertAssessment(result *models.AssessmentResult) error {
	query := r.db.Dialect.UpsertQuery("assessments",
		[]string{"profile_id"},
		[]string{"known_tables", "suggested_start_table", "completed_at"},
	)
	_, err := r.db.Exec(query,
		result.ProfileID, tablesToString(result.KnownTables),
		result.SuggestedStartTable, result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert assessment: %w", err)
	}
	return nil
}
