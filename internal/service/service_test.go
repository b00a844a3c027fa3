package service

import (
	"math"
	"path/filepath"
	"testing"

	"numbergalaxy/internal/database"
	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
)

// testEnv wires the full service stack against a throwaway SQLite database
type testEnv struct {
	db *database.DB

	profileRepo    *repository.ProfileRepository
	progressRepo   *repository.ProgressRepository
	factRepo       *repository.FactRepository
	streakRepo     *repository.StreakRepository
	rewardRepo     *repository.RewardRepository
	quizRepo       *repository.QuizRepository
	assessmentRepo *repository.AssessmentRepository
	settingsRepo   *repository.SettingsRepository

	factService      *FactService
	progressService  *ProgressService
	streakService    *StreakService
	characterService *CharacterService
	profileService   *ProfileService
	settingsService  *SettingsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	env := &testEnv{
		db:             db,
		profileRepo:    repository.NewProfileRepository(db),
		progressRepo:   repository.NewProgressRepository(db),
		factRepo:       repository.NewFactRepository(db),
		streakRepo:     repository.NewStreakRepository(db),
		rewardRepo:     repository.NewRewardRepository(db),
		quizRepo:       repository.NewQuizRepository(db),
		assessmentRepo: repository.NewAssessmentRepository(db),
		settingsRepo:   repository.NewSettingsRepository(db),
	}

	env.factService = NewFactService(env.factRepo)
	env.progressService = NewProgressService(env.progressRepo, env.factRepo, env.streakRepo, env.rewardRepo, env.quizRepo, env.assessmentRepo)
	env.streakService = NewStreakService(env.streakRepo, env.rewardRepo)
	env.characterService = NewCharacterService(env.progressRepo, env.streakRepo, env.rewardRepo)
	env.profileService = NewProfileService(env.profileRepo, env.progressService, env.streakRepo, env.rewardRepo)
	env.settingsService = NewSettingsService(env.settingsRepo)

	return env
}

func createTestProfile(t *testing.T, env *testEnv, name string) *models.Profile {
	t.Helper()

	profile, err := env.profileService.CreateProfile(name, models.ThemeSparkle, "avatar-1", models.InputMultipleChoice)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
	return profile
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
