package service

import (
	"errors"
	"testing"
	"time"

	"numbergalaxy/internal/models"
)

func TestCreateProfileDefaults(t *testing.T) {
	env := newTestEnv(t)

	profile, err := env.profileService.CreateProfile("Zara", models.ThemeLego, "avatar-3", models.InputNumberPad)
	if err != nil {
		t.Fatalf("CreateProfile() error = %v", err)
	}

	if profile.ID == "" {
		t.Error("profile ID not assigned")
	}
	if len(profile.EnabledOperations) != 1 || profile.EnabledOperations[0] != models.OpMultiplication {
		t.Errorf("EnabledOperations = %v, want [multiplication]", profile.EnabledOperations)
	}
	if profile.Difficulty != models.DifficultyEasy {
		t.Errorf("Difficulty = %s, want easy", profile.Difficulty)
	}

	stored, err := env.profileService.GetProfile(profile.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if stored.Name != "Zara" || stored.Theme != models.ThemeLego || stored.InputMethod != models.InputNumberPad {
		t.Errorf("stored profile = %+v, want fields round-tripped", stored)
	}
}

func TestCreateProfileRejectsBadName(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.profileService.CreateProfile("", models.ThemeSparkle, "a", models.InputMultipleChoice); err == nil {
		t.Error("CreateProfile() with empty name did not fail")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profileService.GetProfile("no-such-id")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("GetProfile() error = %v, want ErrProfileNotFound", err)
	}
}

func TestListProfilesMostRecentFirst(t *testing.T) {
	env := newTestEnv(t)

	first := createTestProfile(t, env, "First")
	createTestProfile(t, env, "Second")

	// Selecting the first profile makes it the most recent
	time.Sleep(10 * time.Millisecond)
	if _, err := env.profileService.SelectProfile(first.ID); err != nil {
		t.Fatalf("SelectProfile() error = %v", err)
	}

	profiles, err := env.profileService.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("len(profiles) = %d, want 2", len(profiles))
	}
	if profiles[0].ID != first.ID {
		t.Errorf("profiles[0] = %s, want recently selected profile first", profiles[0].Name)
	}
}

func TestSetEnabledOperations(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Abe")

	ops := []models.Operation{models.OpMultiplication, models.OpAddition}
	if err := env.profileService.SetEnabledOperations(profile.ID, ops); err != nil {
		t.Fatalf("SetEnabledOperations() error = %v", err)
	}

	stored, err := env.profileService.GetProfile(profile.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if len(stored.EnabledOperations) != 2 {
		t.Errorf("EnabledOperations = %v, want 2 operations", stored.EnabledOperations)
	}
}

func TestSetEnabledOperationsRejectsEmptySet(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Bea")

	err := env.profileService.SetEnabledOperations(profile.ID, nil)
	if !errors.Is(err, ErrLastOperation) {
		t.Fatalf("SetEnabledOperations(nil) error = %v, want ErrLastOperation", err)
	}

	stored, err := env.profileService.GetProfile(profile.ID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if len(stored.EnabledOperations) != 1 || stored.EnabledOperations[0] != models.OpMultiplication {
		t.Errorf("EnabledOperations = %v, want defaults untouched after rejected update", stored.EnabledOperations)
	}
}

func TestDeleteProfileRequiresParentalGate(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Cal")

	err := env.profileService.DeleteProfile(profile.ID, false)
	if !errors.Is(err, ErrParentalGate) {
		t.Fatalf("DeleteProfile() error = %v, want ErrParentalGate", err)
	}

	if _, err := env.profileService.GetProfile(profile.ID); err != nil {
		t.Errorf("profile should survive an ungated delete attempt: %v", err)
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Dot")

	// Populate every dependent table
	if _, err := env.factService.RecordFactAttempt(profile.ID, "7x8", true); err != nil {
		t.Fatalf("RecordFactAttempt() error = %v", err)
	}
	if _, err := env.streakService.UpdateDailyStreak(profile.ID); err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	if err := env.streakService.AddStars(profile.ID, 60); err != nil {
		t.Fatalf("AddStars() error = %v", err)
	}
	if _, err := env.characterService.CheckAndUnlockCharacters(profile.ID, models.ThemeSparkle); err != nil {
		t.Fatalf("CheckAndUnlockCharacters() error = %v", err)
	}
	attempt := &models.QuizAttempt{
		ProfileID:      profile.ID,
		TableNumber:    1,
		TotalProblems:  1,
		CorrectAnswers: 1,
		Problems: []models.QuizProblem{
			{Multiplicand: 7, Multiplier: 8, CorrectAnswer: 56, IsCorrect: true},
		},
	}
	if err := env.progressService.SaveQuizAttempt(attempt); err != nil {
		t.Fatalf("SaveQuizAttempt() error = %v", err)
	}
	result := &models.AssessmentResult{
		ProfileID:           profile.ID,
		KnownTables:         []int{2},
		SuggestedStartTable: 3,
		CompletedAt:         time.Now(),
	}
	if err := env.progressService.ApplyAssessment(result); err != nil {
		t.Fatalf("ApplyAssessment() error = %v", err)
	}

	if err := env.profileService.DeleteProfile(profile.ID, true); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	if _, err := env.profileService.GetProfile(profile.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("GetProfile() after delete error = %v, want ErrProfileNotFound", err)
	}

	progress, err := env.progressRepo.GetTableProgress(profile.ID)
	if err != nil {
		t.Fatalf("GetTableProgress() error = %v", err)
	}
	if len(progress) != 0 {
		t.Errorf("table progress rows after delete = %d, want 0", len(progress))
	}

	stats, err := env.factRepo.GetFactStats(profile.ID)
	if err != nil {
		t.Fatalf("GetFactStats() error = %v", err)
	}
	if len(stats) != 0 {
		t.Errorf("fact stat rows after delete = %d, want 0", len(stats))
	}

	streak, err := env.streakRepo.GetStreak(profile.ID)
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if streak != nil {
		t.Errorf("streak after delete = %+v, want gone", streak)
	}

	balance, err := env.rewardRepo.GetStarBalance(profile.ID)
	if err != nil {
		t.Fatalf("GetStarBalance() error = %v", err)
	}
	if balance != nil {
		t.Errorf("star balance after delete = %+v, want gone", balance)
	}

	unlocked, err := env.rewardRepo.GetUnlockedCharacters(profile.ID)
	if err != nil {
		t.Fatalf("GetUnlockedCharacters() error = %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("unlocked character rows after delete = %d, want 0", len(unlocked))
	}

	quizzes, err := env.quizRepo.GetQuizAttempts(profile.ID, 10)
	if err != nil {
		t.Fatalf("GetQuizAttempts() error = %v", err)
	}
	if len(quizzes) != 0 {
		t.Errorf("quiz attempt rows after delete = %d, want 0", len(quizzes))
	}

	assessment, err := env.assessmentRepo.GetAssessment(profile.ID)
	if err != nil {
		t.Fatalf("GetAssessment() error = %v", err)
	}
	if assessment != nil {
		t.Errorf("assessment after delete = %+v, want gone", assessment)
	}
}
