package repository

import (
	"database/sql"
	"fmt"
	"time"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// ProfileRepository handles database operations for learner profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateProfile inserts a new learner profile
func (r *ProfileRepository) CreateProfile(p *models.Profile) error {
	query := `
		INSERT INTO profiles (id, name, theme, avatar_id, input_method, enabled_operations, difficulty, created_at, last_active_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		p.ID, p.Name, string(p.Theme), p.AvatarID, string(p.InputMethod),
		models.OperationsToString(p.EnabledOperations), string(p.Difficulty),
		p.CreatedAt, p.LastActiveAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfileByID retrieves a profile by ID, returning nil if it does not exist
func (r *ProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	query := `
		SELECT id, name, theme, avatar_id, input_method, enabled_operations, difficulty, created_at, last_active_at
		FROM profiles
		WHERE id = ?
	`
	p, err := scanProfile(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetAllProfiles retrieves all profiles, most recently active first
func (r *ProfileRepository) GetAllProfiles() ([]models.Profile, error) {
	query := `
		SELECT id, name, theme, avatar_id, input_method, enabled_operations, difficulty, created_at, last_active_at
		FROM profiles
		ORDER BY last_active_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}

	return profiles, rows.Err()
}

// UpdateProfile updates the mutable fields of a profile
func (r *ProfileRepository) UpdateProfile(p *models.Profile) error {
	query := `
		UPDATE profiles
		SET name = ?, theme = ?, avatar_id = ?, input_method = ?, enabled_operations = ?, difficulty = ?, last_active_at = ?
		WHERE id = ?
	`
	_, err := r.db.Exec(query,
		p.Name, string(p.Theme), p.AvatarID, string(p.InputMethod),
		models.OperationsToString(p.EnabledOperations), string(p.Difficulty),
		p.LastActiveAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// TouchLastActive stamps the profile's last-active time
func (r *ProfileRepository) TouchLastActive(id string, at time.Time) error {
	query := "UPDATE profiles SET last_active_at = ? WHERE id = ?"
	_, err := r.db.Exec(query, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch profile: %w", err)
	}
	return nil
}

// DeleteProfileCascade removes a profile and every dependent row in one
// transaction. Either all tables are cleaned up or none are; a failure
// partway through rolls back entirely.
func (r *ProfileRepository) DeleteProfileCascade(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteProfileData(tx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile deletion: %w", err)
	}
	return nil
}

// deleteProfileData removes every row keyed to a profile. The caller owns the
// transaction boundary.
func deleteProfileData(dbtx database.DBTX, id string) error {
	// Children of quiz_attempts go first, then every profile-keyed table,
	// then the profile row itself (foreign keys require this order).
	statements := []string{
		"DELETE FROM quiz_problems WHERE quiz_attempt_id IN (SELECT id FROM quiz_attempts WHERE profile_id = ?)",
		"DELETE FROM quiz_attempts WHERE profile_id = ?",
		"DELETE FROM sessions WHERE profile_id = ?",
		"DELETE FROM fact_stats WHERE profile_id = ?",
		"DELETE FROM table_progress WHERE profile_id = ?",
		"DELETE FROM streaks WHERE profile_id = ?",
		"DELETE FROM star_balances WHERE profile_id = ?",
		"DELETE FROM unlocked_characters WHERE profile_id = ?",
		"DELETE FROM assessments WHERE profile_id = ?",
		"DELETE FROM profiles WHERE id = ?",
	}

	for _, stmt := range statements {
		if _, err := dbtx.Exec(stmt, id); err != nil {
			return fmt.Errorf("failed to delete profile data: %w", err)
		}
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	p := &models.Profile{}
	var theme, inputMethod, operations, difficulty string

	err := row.Scan(
		&p.ID,
		&p.Name,
		&theme,
		&p.AvatarID,
		&inputMethod,
		&operations,
		&difficulty,
		&p.CreatedAt,
		&p.LastActiveAt,
	)
	if err != nil {
		return nil, err
	}

	p.Theme = models.Theme(theme)
	p.InputMethod = models.InputMethod(inputMethod)
	p.EnabledOperations = models.OperationsFromString(operations)
	p.Difficulty = models.Difficulty(difficulty)
	return p, nil
}
