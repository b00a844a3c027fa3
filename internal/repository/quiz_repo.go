package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
)

// QuizRepository handles database operations for quiz history and app sessions
type QuizRepository struct {
	db *database.DB
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *database.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// SaveQuizAttempt stores a completed quiz with its per-problem results.
// The attempt and its problems are written in one transaction.
func (r *QuizRepository) SaveQuizAttempt(attempt *models.QuizAttempt) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin quiz transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO quiz_attempts (id, profile_id, table_number, date, total_problems, correct_answers, time_spent_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		attempt.ID, attempt.ProfileID, attempt.TableNumber, attempt.Date,
		attempt.TotalProblems, attempt.CorrectAnswers, attempt.TimeSpentSeconds,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz attempt: %w", err)
	}

	problemQuery := `
		INSERT INTO quiz_problems (quiz_attempt_id, problem_index, multiplicand, multiplier, correct_answer, user_answer, is_correct, time_to_answer_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, p := range attempt.Problems {
		_, err = tx.Exec(problemQuery,
			attempt.ID, i, p.Multiplicand, p.Multiplier, p.CorrectAnswer,
			p.UserAnswer, p.IsCorrect, p.TimeToAnswerMs,
		)
		if err != nil {
			return fmt.Errorf("failed to insert quiz problem: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz attempt: %w", err)
	}
	return nil
}

// GetQuizAttempts retrieves a profile's quiz history, newest first.
// Problems are not loaded; use GetQuizAttempt for a full record.
func (r *QuizRepository) GetQuizAttempts(profileID string, limit int) ([]models.QuizAttempt, error) {
	query := `
		SELECT id, profile_id, table_number, date, total_problems, correct_answers, time_spent_seconds
		FROM quiz_attempts
		WHERE profile_id = ?
		ORDER BY date DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		err := rows.Scan(
			&a.ID, &a.ProfileID, &a.TableNumber, &a.Date,
			&a.TotalProblems, &a.CorrectAnswers, &a.TimeSpentSeconds,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz attempt: %w", err)
		}
		attempts = append(attempts, a)
	}

	return attempts, rows.Err()
}

// GetQuizAttempt retrieves one quiz attempt with its problems, nil if absent
func (r *QuizRepository) GetQuizAttempt(id string) (*models.QuizAttempt, error) {
	query := `
		SELECT id, profile_id, table_number, date, total_problems, correct_answers, time_spent_seconds
		FROM quiz_attempts
		WHERE id = ?
	`
	a := &models.QuizAttempt{}
	err := r.db.QueryRow(query, id).Scan(
		&a.ID, &a.ProfileID, &a.TableNumber, &a.Date,
		&a.TotalProblems, &a.CorrectAnswers, &a.TimeSpentSeconds,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz attempt: %w", err)
	}

	problemQuery := `
		SELECT multiplicand, multiplier, correct_answer, user_answer, is_correct, time_to_answer_ms
		FROM quiz_problems
		WHERE quiz_attempt_id = ?
		ORDER BY problem_index ASC
	`
	rows, err := r.db.Query(problemQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz problems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.QuizProblem
		var userAnswer sql.NullInt64
		err := rows.Scan(&p.Multiplicand, &p.Multiplier, &p.CorrectAnswer, &userAnswer, &p.IsCorrect, &p.TimeToAnswerMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz problem: %w", err)
		}
		if userAnswer.Valid {
			answer := int(userAnswer.Int64)
			p.UserAnswer = &answer
		}
		a.Problems = append(a.Problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return a, nil
}

// SaveSession creates or replaces an app-usage session record
func (r *QuizRepository) SaveSession(s *models.Session) error {
	query := r.db.Dialect.UpsertQuery("sessions",
		[]string{"id"},
		[]string{"profile_id", "start_time", "end_time", "tables_worked", "problems_attempted", "problems_correct"},
	)
	_, err := r.db.Exec(query,
		s.ID, s.ProfileID, s.StartTime, s.EndTime,
		tablesToString(s.TablesWorked), s.ProblemsAttempted, s.ProblemsCorrect,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSessions retrieves a profile's app-usage sessions, newest first
func (r *QuizRepository) GetSessions(profileID string, limit int) ([]models.Session, error) {
	query := `
		SELECT id, profile_id, start_time, end_time, tables_worked, problems_attempted, problems_correct
		FROM sessions
		WHERE profile_id = ?
		ORDER BY start_time DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, profileID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		var endTime sql.NullTime
		var tablesWorked string
		err := rows.Scan(&s.ID, &s.ProfileID, &s.StartTime, &endTime, &tablesWorked, &s.ProblemsAttempted, &s.ProblemsCorrect)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if endTime.Valid {
			s.EndTime = &endTime.Time
		}
		s.TablesWorked = tablesFromString(tablesWorked)
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// tablesToString serializes table numbers as a comma-separated list
func tablesToString(tables []int) string {
	parts := make([]string, len(tables))
	for i, t := range tables {
		parts[i] = strconv.Itoa(t)
	}
	return strings.Join(parts, ",")
}

// tablesFromString parses a stored comma-separated table number list
func tablesFromString(s string) []int {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var tables []int
	for _, part := range strings.Split(s, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
			tables = append(tables, n)
		}
	}
	return tables
}
