package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
	"numbergalaxy/internal/validation"
)

// UnlockOrder is the fixed sequence tables become available in. Easy tables
// (1s, 10s, 2s, 5s) come first to build confidence before the harder ones.
var UnlockOrder = []int{1, 10, 2, 5, 3, 4, 9, 6, 7, 8}

// masteryThreshold is the quiz score (percent) at which a table is mastered
const masteryThreshold = 90

// recentQuizLimit caps how much quiz history a progress load returns
const recentQuizLimit = 10

// ProgressSummary is the full progress picture for one learner, loaded in one
// call so the UI can render from a consistent snapshot.
type ProgressSummary struct {
	TableProgress []models.TableProgress
	FactStats     []models.FactStat
	Streak        *models.Streak
	StarBalance   *models.StarBalance
	RecentQuizzes []models.QuizAttempt
}

// ProgressService drives the per-table progression state machine
type ProgressService struct {
	progressRepo   *repository.ProgressRepository
	factRepo       *repository.FactRepository
	streakRepo     *repository.StreakRepository
	rewardRepo     *repository.RewardRepository
	quizRepo       *repository.QuizRepository
	assessmentRepo *repository.AssessmentRepository
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo *repository.ProgressRepository,
	factRepo *repository.FactRepository,
	streakRepo *repository.StreakRepository,
	rewardRepo *repository.RewardRepository,
	quizRepo *repository.QuizRepository,
	assessmentRepo *repository.AssessmentRepository,
) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		factRepo:       factRepo,
		streakRepo:     streakRepo,
		rewardRepo:     rewardRepo,
		quizRepo:       quizRepo,
		assessmentRepo: assessmentRepo,
	}
}

// LoadProgress reads a learner's complete progress state from the store.
// Callers re-invoke this after mutations rather than patching cached copies.
func (s *ProgressService) LoadProgress(profileID string) (*ProgressSummary, error) {
	tableProgress, err := s.progressRepo.GetTableProgress(profileID)
	if err != nil {
		return nil, err
	}

	factStats, err := s.factRepo.GetFactStats(profileID)
	if err != nil {
		return nil, err
	}

	streak, err := s.streakRepo.GetStreak(profileID)
	if err != nil {
		return nil, err
	}

	balance, err := s.rewardRepo.GetStarBalance(profileID)
	if err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.GetQuizAttempts(profileID, recentQuizLimit)
	if err != nil {
		return nil, err
	}

	return &ProgressSummary{
		TableProgress: tableProgress,
		FactStats:     factStats,
		Streak:        streak,
		StarBalance:   balance,
		RecentQuizzes: quizzes,
	}, nil
}

// CompleteTeaching marks the teaching step for a table as finished. The flag
// gates progression but does not change the table's status. Unknown
// (profile, table) pairs are silently skipped since profiles are fully
// seeded at creation.
func (s *ProgressService) CompleteTeaching(profileID string, tableNumber int) error {
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		return err
	}

	progress, err := s.progressRepo.GetTableProgressForTable(profileID, tableNumber)
	if err != nil {
		return err
	}
	if progress == nil {
		return nil
	}

	progress.TeachingCompleted = true
	return s.progressRepo.UpsertTableProgress(progress)
}

// CompleteGuidedPractice marks guided practice finished and moves a learning
// table to practiced. Tables already past learning keep their status.
func (s *ProgressService) CompleteGuidedPractice(profileID string, tableNumber int) error {
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		return err
	}

	progress, err := s.progressRepo.GetTableProgressForTable(profileID, tableNumber)
	if err != nil {
		return err
	}
	if progress == nil {
		return nil
	}

	now := time.Now()
	progress.GuidedPracticeCompleted = true
	progress.LastPracticedAt = &now
	if progress.Status == models.StatusLearning {
		progress.Status = models.StatusPracticed
	}

	return s.progressRepo.UpsertTableProgress(progress)
}

// UpdateMastery records a quiz score for a table and reports whether the
// score mastered it. The stored mastery score only moves up; a score at or
// above the mastery threshold promotes the table to mastered and unlocks
// the next table in the unlock order.
func (s *ProgressService) UpdateMastery(profileID string, tableNumber, score int) (bool, error) {
	if err := validation.ValidateTableNumber(tableNumber); err != nil {
		return false, err
	}
	if err := validation.ValidateScore(score); err != nil {
		return false, err
	}

	progress, err := s.progressRepo.GetTableProgressForTable(profileID, tableNumber)
	if err != nil {
		return false, err
	}
	if progress == nil {
		return false, nil
	}

	now := time.Now()
	if score > progress.MasteryScore {
		progress.MasteryScore = score
	}
	progress.LastPracticedAt = &now

	mastered := score >= masteryThreshold
	if mastered {
		progress.Status = models.StatusMastered
	}

	if err := s.progressRepo.UpsertTableProgress(progress); err != nil {
		return false, err
	}

	if mastered {
		return true, s.unlockNextTable(profileID)
	}
	return false, nil
}

// unlockNextTable moves the first still-locked table in the unlock order to
// learning. At most one table transitions per call, so a learner always has
// at most one table actively in progress.
func (s *ProgressService) unlockNextTable(profileID string) error {
	for _, tableNumber := range UnlockOrder {
		progress, err := s.progressRepo.GetTableProgressForTable(profileID, tableNumber)
		if err != nil {
			return err
		}
		if progress == nil || progress.Status != models.StatusLocked {
			continue
		}

		progress.Status = models.StatusLearning
		return s.progressRepo.UpsertTableProgress(progress)
	}
	return nil
}

// SeedProfileProgress initializes the ten table rows for a new profile: the
// first table in the unlock order starts at learning, the rest locked.
func (s *ProgressService) SeedProfileProgress(profileID string) error {
	for i, tableNumber := range UnlockOrder {
		status := models.StatusLocked
		if i == 0 {
			status = models.StatusLearning
		}

		progress := &models.TableProgress{
			ProfileID:   profileID,
			TableNumber: tableNumber,
			Status:      status,
		}
		if err := s.progressRepo.UpsertTableProgress(progress); err != nil {
			return fmt.Errorf("failed to seed table %d: %w", tableNumber, err)
		}
	}
	return nil
}

// ApplyAssessment records an onboarding assessment and bulk-adjusts table
// progress: known tables become mastered outright, the 1s and 10s tables are
// always available, and the suggested starting table is unlocked.
func (s *ProgressService) ApplyAssessment(result *models.AssessmentResult) error {
	if err := s.assessmentRepo.UpsertAssessment(result); err != nil {
		return err
	}

	known := make(map[int]bool, len(result.KnownTables))
	for _, t := range result.KnownTables {
		known[t] = true
	}

	tableProgress, err := s.progressRepo.GetTableProgress(result.ProfileID)
	if err != nil {
		return err
	}

	for i := range tableProgress {
		progress := &tableProgress[i]
		updated := false

		// 1s and 10s are always available
		if (progress.TableNumber == 1 || progress.TableNumber == 10) && progress.Status == models.StatusLocked {
			progress.Status = models.StatusLearning
			updated = true
		}

		if known[progress.TableNumber] {
			progress.Status = models.StatusMastered
			progress.MasteryScore = 100
			progress.TeachingCompleted = true
			progress.GuidedPracticeCompleted = true
			updated = true
		}

		if progress.TableNumber == result.SuggestedStartTable && progress.Status == models.StatusLocked {
			progress.Status = models.StatusLearning
			updated = true
		}

		if updated {
			if err := s.progressRepo.UpsertTableProgress(progress); err != nil {
				return err
			}
		}
	}

	return nil
}

// GetAssessment returns a profile's assessment result, nil if never assessed
func (s *ProgressService) GetAssessment(profileID string) (*models.AssessmentResult, error) {
	return s.assessmentRepo.GetAssessment(profileID)
}

// SaveQuizAttempt stores a completed quiz in the history. An attempt without
// an ID is assigned one.
func (s *ProgressService) SaveQuizAttempt(attempt *models.QuizAttempt) error {
	if err := validation.ValidateTableNumber(attempt.TableNumber); err != nil {
		return err
	}
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	if attempt.Date.IsZero() {
		attempt.Date = time.Now()
	}
	return s.quizRepo.SaveQuizAttempt(attempt)
}

// SaveSession stores an app-usage session for the parent dashboard
func (s *ProgressService) SaveSession(session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	return s.quizRepo.SaveSession(session)
}
