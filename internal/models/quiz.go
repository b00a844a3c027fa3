package models

import "time"

// QuizAttempt is an immutable record of one completed quiz or review session
type QuizAttempt struct {
	ID               string
	ProfileID        string
	TableNumber      int
	Date             time.Time
	TotalProblems    int
	CorrectAnswers   int
	TimeSpentSeconds int
	Problems         []QuizProblem
}

// QuizProblem is one problem within a quiz attempt
type QuizProblem struct {
	Multiplicand   int
	Multiplier     int
	CorrectAnswer  int
	UserAnswer     *int
	IsCorrect      bool
	TimeToAnswerMs int
}

// Score returns the percentage of correct answers, 0-100
func (a *QuizAttempt) Score() int {
	if a.TotalProblems == 0 {
		return 0
	}
	return a.CorrectAnswers * 100 / a.TotalProblems
}

// Session records one sitting of app usage for the parent dashboard
type Session struct {
	ID                string
	ProfileID         string
	StartTime         time.Time
	EndTime           *time.Time
	TablesWorked      []int
	ProblemsAttempted int
	ProblemsCorrect   int
}

// UnlockedCharacter records that a learner has unlocked a collectible character.
// Rows are append-only; they are removed only when the whole profile is deleted.
type UnlockedCharacter struct {
	ProfileID   string
	CharacterID string
	UnlockedAt  time.Time
}

// AssessmentResult stores the outcome of the onboarding assessment.
// One row per profile, overwritten if the assessment is retaken.
type AssessmentResult struct {
	ProfileID           string
	KnownTables         []int
	SuggestedStartTable int
	CompletedAt         time.Time
}
