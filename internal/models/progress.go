package models

import "time"

// TableStatus is the progression state of one multiplication table for one learner.
// The states are strictly ordered: locked < learning < practiced < mastered.
type TableStatus string

const (
	StatusLocked    TableStatus = "locked"
	StatusLearning  TableStatus = "learning"
	StatusPracticed TableStatus = "practiced"
	StatusMastered  TableStatus = "mastered"
)

// TableNumbers is the fixed catalog of tables learners work through
const (
	MinTableNumber = 1
	MaxTableNumber = 10
)

// TableProgress tracks one (profile, table) pair
type TableProgress struct {
	ProfileID               string
	TableNumber             int
	Status                  TableStatus
	TeachingCompleted       bool
	GuidedPracticeCompleted bool
	MasteryScore            int // 0-100, best quiz score, never decreases
	LastPracticedAt         *time.Time
}

// FactStat tracks spaced-repetition state for one arithmetic fact (e.g. "7x8")
type FactStat struct {
	ProfileID      string
	Fact           string
	CorrectCount   int
	IncorrectCount int
	LastAttempt    *time.Time
	NextReviewDate time.Time
	EaseFactor     float64 // bounded [1.3, 2.8]
	IntervalDays   int     // >= 1
}

// NewFactStat returns the initial stat for a fact never attempted before
func NewFactStat(profileID, fact string) *FactStat {
	return &FactStat{
		ProfileID:      profileID,
		Fact:           fact,
		CorrectCount:   0,
		IncorrectCount: 0,
		NextReviewDate: time.Now(),
		EaseFactor:     2.5,
		IntervalDays:   1,
	}
}
