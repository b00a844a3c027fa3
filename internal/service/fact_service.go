package service

import (
	"fmt"
	"math"
	"time"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
)

// Spaced-repetition tuning. The ease factor is clamped to [minEaseFactor,
// maxEaseFactor] and the review interval never drops below one day.
const (
	minEaseFactor = 1.3
	maxEaseFactor = 2.8
	easeGain      = 0.1
	easePenalty   = 0.2
)

// FactService updates per-fact spaced-repetition stats
type FactService struct {
	factRepo *repository.FactRepository
}

// NewFactService creates a new fact service
func NewFactService(factRepo *repository.FactRepository) *FactService {
	return &FactService{factRepo: factRepo}
}

// RecordFactAttempt applies one practice attempt to a fact's stats. A fact
// never seen before starts at ease 2.5 with a one-day interval. Correct
// answers stretch the interval by the ease factor and nudge ease up;
// incorrect answers reset the interval to one day and push ease down.
func (s *FactService) RecordFactAttempt(profileID, fact string, correct bool) (*models.FactStat, error) {
	stat, err := s.factRepo.GetFactStat(profileID, fact)
	if err != nil {
		return nil, err
	}
	if stat == nil {
		stat = models.NewFactStat(profileID, fact)
	}

	now := time.Now()

	if correct {
		stat.CorrectCount++
		stat.IntervalDays = int(math.Ceil(float64(stat.IntervalDays) * stat.EaseFactor))
		stat.EaseFactor = math.Min(maxEaseFactor, stat.EaseFactor+easeGain)
	} else {
		stat.IncorrectCount++
		stat.IntervalDays = 1
		stat.EaseFactor = math.Max(minEaseFactor, stat.EaseFactor-easePenalty)
	}
	if stat.IntervalDays < 1 {
		stat.IntervalDays = 1
	}

	stat.LastAttempt = &now
	stat.NextReviewDate = now.AddDate(0, 0, stat.IntervalDays)

	if err := s.factRepo.UpsertFactStat(stat); err != nil {
		return nil, fmt.Errorf("failed to record fact attempt: %w", err)
	}
	return stat, nil
}

// DueFacts returns the facts whose review date has arrived, most overdue first
func (s *FactService) DueFacts(profileID string) ([]models.FactStat, error) {
	return s.factRepo.GetDueFacts(profileID, time.Now())
}
