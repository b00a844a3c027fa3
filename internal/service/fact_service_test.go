package service

import (
	"testing"
	"time"

	"numbergalaxy/internal/models"
)

func TestRecordFactAttemptFirstCorrect(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Ada")

	stat, err := env.factService.RecordFactAttempt(profile.ID, "7x8", true)
	if err != nil {
		t.Fatalf("RecordFactAttempt() error = %v", err)
	}

	if stat.CorrectCount != 1 || stat.IncorrectCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", stat.CorrectCount, stat.IncorrectCount)
	}
	// ceil(1 * 2.5) = 3 days
	if stat.IntervalDays != 3 {
		t.Errorf("IntervalDays = %d, want 3", stat.IntervalDays)
	}
	if !floatEq(stat.EaseFactor, 2.6) {
		t.Errorf("EaseFactor = %v, want 2.6", stat.EaseFactor)
	}
	if stat.LastAttempt == nil {
		t.Error("LastAttempt not set")
	}

	// Stats must survive a round trip through the store
	stored, err := env.factRepo.GetFactStat(profile.ID, "7x8")
	if err != nil {
		t.Fatalf("GetFactStat() error = %v", err)
	}
	if stored == nil {
		t.Fatal("fact stat not persisted")
	}
	if stored.IntervalDays != 3 || !floatEq(stored.EaseFactor, 2.6) {
		t.Errorf("stored stat = interval %d ease %v, want 3/2.6", stored.IntervalDays, stored.EaseFactor)
	}
}

func TestRecordFactAttemptFirstIncorrect(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Ben")

	stat, err := env.factService.RecordFactAttempt(profile.ID, "6x7", false)
	if err != nil {
		t.Fatalf("RecordFactAttempt() error = %v", err)
	}

	if stat.CorrectCount != 0 || stat.IncorrectCount != 1 {
		t.Errorf("counts = %d/%d, want 0/1", stat.CorrectCount, stat.IncorrectCount)
	}
	if stat.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", stat.IntervalDays)
	}
	if !floatEq(stat.EaseFactor, 2.3) {
		t.Errorf("EaseFactor = %v, want 2.3", stat.EaseFactor)
	}
}

func TestRecordFactAttemptIncorrectResetsInterval(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Cleo")

	// A fact with an established review streak
	seeded := &models.FactStat{
		ProfileID:      profile.ID,
		Fact:           "7x8",
		CorrectCount:   4,
		IncorrectCount: 0,
		NextReviewDate: time.Now().AddDate(0, 0, 6),
		EaseFactor:     2.6,
		IntervalDays:   6,
	}
	if err := env.factRepo.UpsertFactStat(seeded); err != nil {
		t.Fatalf("UpsertFactStat() error = %v", err)
	}

	before := time.Now()
	stat, err := env.factService.RecordFactAttempt(profile.ID, "7x8", false)
	if err != nil {
		t.Fatalf("RecordFactAttempt() error = %v", err)
	}

	if stat.IntervalDays != 1 {
		t.Errorf("IntervalDays = %d, want 1", stat.IntervalDays)
	}
	if !floatEq(stat.EaseFactor, 2.4) {
		t.Errorf("EaseFactor = %v, want 2.4", stat.EaseFactor)
	}
	if stat.CorrectCount != 4 || stat.IncorrectCount != 1 {
		t.Errorf("counts = %d/%d, want 4/1", stat.CorrectCount, stat.IncorrectCount)
	}

	// Review comes back around tomorrow
	if stat.NextReviewDate.Before(before.AddDate(0, 0, 1).Add(-time.Minute)) ||
		stat.NextReviewDate.After(before.AddDate(0, 0, 1).Add(time.Minute)) {
		t.Errorf("NextReviewDate = %v, want about one day after %v", stat.NextReviewDate, before)
	}
}

func TestEaseFactorStaysWithinBounds(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Dev")

	var stat *models.FactStat
	var err error

	for i := 0; i < 20; i++ {
		stat, err = env.factService.RecordFactAttempt(profile.ID, "9x9", true)
		if err != nil {
			t.Fatalf("RecordFactAttempt() error = %v", err)
		}
		if stat.EaseFactor > 2.8 {
			t.Fatalf("EaseFactor %v exceeded 2.8 after %d correct answers", stat.EaseFactor, i+1)
		}
	}
	if !floatEq(stat.EaseFactor, 2.8) {
		t.Errorf("EaseFactor = %v after many correct answers, want 2.8", stat.EaseFactor)
	}

	for i := 0; i < 20; i++ {
		stat, err = env.factService.RecordFactAttempt(profile.ID, "9x9", false)
		if err != nil {
			t.Fatalf("RecordFactAttempt() error = %v", err)
		}
		if stat.EaseFactor < 1.3 {
			t.Fatalf("EaseFactor %v dropped below 1.3 after %d incorrect answers", stat.EaseFactor, i+1)
		}
		if stat.IntervalDays < 1 {
			t.Fatalf("IntervalDays = %d, want >= 1", stat.IntervalDays)
		}
	}
	if !floatEq(stat.EaseFactor, 1.3) {
		t.Errorf("EaseFactor = %v after many incorrect answers, want 1.3", stat.EaseFactor)
	}
}

func TestDueFacts(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env, "Eli")

	overdue := &models.FactStat{
		ProfileID:      profile.ID,
		Fact:           "3x4",
		NextReviewDate: time.Now().AddDate(0, 0, -2),
		EaseFactor:     2.5,
		IntervalDays:   1,
	}
	future := &models.FactStat{
		ProfileID:      profile.ID,
		Fact:           "5x6",
		NextReviewDate: time.Now().AddDate(0, 0, 5),
		EaseFactor:     2.5,
		IntervalDays:   5,
	}
	for _, stat := range []*models.FactStat{overdue, future} {
		if err := env.factRepo.UpsertFactStat(stat); err != nil {
			t.Fatalf("UpsertFactStat() error = %v", err)
		}
	}

	due, err := env.factService.DueFacts(profile.ID)
	if err != nil {
		t.Fatalf("DueFacts() error = %v", err)
	}

	if len(due) != 1 {
		t.Fatalf("len(due) = %d, want 1", len(due))
	}
	if due[0].Fact != "3x4" {
		t.Errorf("due fact = %q, want %q", due[0].Fact, "3x4")
	}
}
