package service

import (
	"errors"
	"testing"
	"time"

	"numbergalaxy/internal/models"
)

func seedStreak(t *testing.T, env *testEnv, profileID string, current, longest int, lastPractice time.Time) {
	t.Helper()

	streak := &models.Streak{
		ProfileID:        profileID,
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastPracticeDate: lastPractice.Format(dateLayout),
	}
	if err := env.streakRepo.UpsertStreak(streak); err != nil {
		t.Fatalf("UpsertStreak() error = %v", err)
	}
}

func TestUpdateDailyStreakFirstPractice(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Ola")

	milestone, err := env.streakService.UpdateDailyStreak(profile.ID)
	if err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	if milestone != nil {
		t.Errorf("milestone = %+v, want nil on first practice day", milestone)
	}

	streak, err := env.streakService.GetStreak(profile.ID)
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if streak.CurrentStreak != 1 || streak.LongestStreak != 1 {
		t.Errorf("streak = %d/%d, want 1/1", streak.CurrentStreak, streak.LongestStreak)
	}
}

func TestUpdateDailyStreakSameDayIdempotent(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Pia")

	if _, err := env.streakService.UpdateDailyStreak(profile.ID); err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	milestone, err := env.streakService.UpdateDailyStreak(profile.ID)
	if err != nil {
		t.Fatalf("UpdateDailyStreak() second call error = %v", err)
	}
	if milestone != nil {
		t.Errorf("milestone = %+v, want nil on repeat same-day call", milestone)
	}

	streak, err := env.streakService.GetStreak(profile.ID)
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after repeated same-day practice", streak.CurrentStreak)
	}
}

func TestUpdateDailyStreakConsecutiveDayExtends(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Quinn")

	seedStreak(t, env, profile.ID, 1, 1, time.Now().AddDate(0, 0, -1))

	milestone, err := env.streakService.UpdateDailyStreak(profile.ID)
	if err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	if milestone != nil {
		t.Errorf("milestone = %+v, want nil at streak 2", milestone)
	}

	streak, err := env.streakService.GetStreak(profile.ID)
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if streak.CurrentStreak != 2 || streak.LongestStreak != 2 {
		t.Errorf("streak = %d/%d, want 2/2", streak.CurrentStreak, streak.LongestStreak)
	}
}

func TestUpdateDailyStreakGapResets(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Remy")

	seedStreak(t, env, profile.ID, 5, 5, time.Now().AddDate(0, 0, -3))

	if _, err := env.streakService.UpdateDailyStreak(profile.ID); err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}

	streak, err := env.streakService.GetStreak(profile.ID)
	if err != nil {
		t.Fatalf("GetStreak() error = %v", err)
	}
	if streak.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after gap", streak.CurrentStreak)
	}
	if streak.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5 preserved", streak.LongestStreak)
	}
}

func TestStreakMilestoneFiresOnceOnCrossing(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Sol")

	// Crossing 2 -> 3 pays the three-day bonus
	seedStreak(t, env, profile.ID, 2, 2, time.Now().AddDate(0, 0, -1))

	milestone, err := env.streakService.UpdateDailyStreak(profile.ID)
	if err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	if milestone == nil {
		t.Fatal("milestone = nil, want three-day milestone")
	}
	if milestone.Days != 3 || milestone.Bonus != 10 {
		t.Errorf("milestone = %+v, want Days 3 Bonus 10", milestone)
	}

	balance, err := env.streakService.GetStarBalance(profile.ID)
	if err != nil {
		t.Fatalf("GetStarBalance() error = %v", err)
	}
	if balance.TotalStars != 10 || balance.LifetimeStars != 10 {
		t.Errorf("balance = %d/%d, want 10/10 after bonus", balance.TotalStars, balance.LifetimeStars)
	}

	// Moving 3 -> 4 crosses nothing and pays nothing
	seedStreak(t, env, profile.ID, 3, 3, time.Now().AddDate(0, 0, -1))

	milestone, err = env.streakService.UpdateDailyStreak(profile.ID)
	if err != nil {
		t.Fatalf("UpdateDailyStreak() error = %v", err)
	}
	if milestone != nil {
		t.Errorf("milestone = %+v, want nil going from 3 to 4", milestone)
	}

	balance, err = env.streakService.GetStarBalance(profile.ID)
	if err != nil {
		t.Fatalf("GetStarBalance() error = %v", err)
	}
	if balance.TotalStars != 10 {
		t.Errorf("TotalStars = %d, want bonus paid exactly once", balance.TotalStars)
	}
}

func TestAddStarsMovesBothTotals(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Tess")

	if err := env.streakService.AddStars(profile.ID, 25); err != nil {
		t.Fatalf("AddStars() error = %v", err)
	}

	balance, err := env.streakService.GetStarBalance(profile.ID)
	if err != nil {
		t.Fatalf("GetStarBalance() error = %v", err)
	}
	if balance.TotalStars != 25 || balance.LifetimeStars != 25 {
		t.Errorf("balance = %d/%d, want 25/25", balance.TotalStars, balance.LifetimeStars)
	}
}

func TestSpendStars(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Uma")

	if err := env.streakService.AddStars(profile.ID, 30); err != nil {
		t.Fatalf("AddStars() error = %v", err)
	}

	if err := env.streakService.SpendStars(profile.ID, 20); err != nil {
		t.Fatalf("SpendStars() error = %v", err)
	}

	balance, err := env.streakService.GetStarBalance(profile.ID)
	if err != nil {
		t.Fatalf("GetStarBalance() error = %v", err)
	}
	if balance.TotalStars != 10 {
		t.Errorf("TotalStars = %d, want 10", balance.TotalStars)
	}
	if balance.LifetimeStars != 30 {
		t.Errorf("LifetimeStars = %d, want 30 untouched by spending", balance.LifetimeStars)
	}

	err = env.streakService.SpendStars(profile.ID, 20)
	if !errors.Is(err, ErrInsufficientStars) {
		t.Errorf("SpendStars() error = %v, want ErrInsufficientStars", err)
	}
}
