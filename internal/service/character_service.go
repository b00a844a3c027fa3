package service

import (
	"time"

	"numbergalaxy/internal/characters"
	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
)

// CharacterService evaluates the collectible catalog against a learner's
// progress and records new unlocks.
type CharacterService struct {
	progressRepo *repository.ProgressRepository
	streakRepo   *repository.StreakRepository
	rewardRepo   *repository.RewardRepository
}

// NewCharacterService creates a new character service
func NewCharacterService(
	progressRepo *repository.ProgressRepository,
	streakRepo *repository.StreakRepository,
	rewardRepo *repository.RewardRepository,
) *CharacterService {
	return &CharacterService{
		progressRepo: progressRepo,
		streakRepo:   streakRepo,
		rewardRepo:   rewardRepo,
	}
}

// CheckAndUnlockCharacters evaluates every catalog character for the
// learner's theme against fresh store reads, persists any new unlocks, and
// returns them for the UI celebration. Already-unlocked characters are
// skipped, so repeated calls with unchanged progress return nothing.
func (s *CharacterService) CheckAndUnlockCharacters(profileID string, theme models.Theme) ([]characters.Character, error) {
	unlocked, err := s.rewardRepo.GetUnlockedCharacters(profileID)
	if err != nil {
		return nil, err
	}

	unlockedIDs := make(map[string]bool, len(unlocked))
	for _, uc := range unlocked {
		unlockedIDs[uc.CharacterID] = true
	}

	progress, err := s.snapshotProgress(profileID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []characters.Character
	now := time.Now()

	for _, character := range characters.ForTheme(theme) {
		if unlockedIDs[character.ID] {
			continue
		}
		if !character.Condition.Satisfied(progress) {
			continue
		}

		if err := s.rewardRepo.UnlockCharacter(profileID, character.ID, now); err != nil {
			return nil, err
		}
		newlyUnlocked = append(newlyUnlocked, character)
	}

	return newlyUnlocked, nil
}

// UnlockedCharacters returns the catalog entries a learner has unlocked
func (s *CharacterService) UnlockedCharacters(profileID string) ([]characters.Character, error) {
	records, err := s.rewardRepo.GetUnlockedCharacters(profileID)
	if err != nil {
		return nil, err
	}

	var unlocked []characters.Character
	for _, record := range records {
		if character, ok := characters.ByID(record.CharacterID); ok {
			unlocked = append(unlocked, *character)
		}
	}
	return unlocked, nil
}

// snapshotProgress reads the unlock-relevant progress directly from the
// store, so checks always see post-mutation values rather than a stale cache.
func (s *CharacterService) snapshotProgress(profileID string) (characters.Progress, error) {
	tableProgress, err := s.progressRepo.GetTableProgress(profileID)
	if err != nil {
		return characters.Progress{}, err
	}

	mastered := make(map[int]bool)
	for _, p := range tableProgress {
		if p.Status == models.StatusMastered {
			mastered[p.TableNumber] = true
		}
	}

	snapshot := characters.Progress{MasteredTables: mastered}

	balance, err := s.rewardRepo.GetStarBalance(profileID)
	if err != nil {
		return characters.Progress{}, err
	}
	if balance != nil {
		snapshot.LifetimeStars = balance.LifetimeStars
	}

	streak, err := s.streakRepo.GetStreak(profileID)
	if err != nil {
		return characters.Progress{}, err
	}
	if streak != nil {
		snapshot.CurrentStreak = streak.CurrentStreak
	}

	return snapshot, nil
}
