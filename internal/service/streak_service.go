package service

import (
	"errors"
	"fmt"
	"time"

	"numbergalaxy/internal/models"
	"numbergalaxy/internal/repository"
)

// ErrInsufficientStars is returned when a spend exceeds the spendable balance
var ErrInsufficientStars = errors.New("insufficient stars")

// dateLayout is the calendar-date format streaks are tracked in
const dateLayout = "2006-01-02"

// StreakMilestone is a streak length that pays a one-time star bonus
type StreakMilestone struct {
	Days    int
	Bonus   int
	Message string
}

// streakMilestones is ordered by ascending day count; only the first
// milestone crossed in a single update fires.
var streakMilestones = []StreakMilestone{
	{Days: 3, Bonus: 10, Message: "3 Day Streak!"},
	{Days: 7, Bonus: 25, Message: "Week Warrior!"},
	{Days: 14, Bonus: 50, Message: "2 Week Champion!"},
	{Days: 30, Bonus: 100, Message: "Monthly Master!"},
}

// StreakService maintains daily-practice streaks and the star currency
type StreakService struct {
	streakRepo *repository.StreakRepository
	rewardRepo *repository.RewardRepository
}

// NewStreakService creates a new streak service
func NewStreakService(streakRepo *repository.StreakRepository, rewardRepo *repository.RewardRepository) *StreakService {
	return &StreakService{streakRepo: streakRepo, rewardRepo: rewardRepo}
}

// UpdateDailyStreak credits today's practice toward the streak. Calling it
// again on the same calendar day is a no-op. A practice day directly after
// the previous one extends the streak; any gap restarts it at one. Returns
// the milestone crossed by this update, if any, after crediting its star
// bonus exactly once.
func (s *StreakService) UpdateDailyStreak(profileID string) (*StreakMilestone, error) {
	streak, err := s.streakRepo.GetStreak(profileID)
	if err != nil {
		return nil, err
	}
	if streak == nil {
		return nil, nil
	}

	now := time.Now()
	today := now.Format(dateLayout)
	if streak.LastPracticeDate == today {
		// Already credited today
		return nil, nil
	}

	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)
	previousStreak := streak.CurrentStreak

	if streak.LastPracticeDate == yesterday {
		streak.CurrentStreak++
		if streak.CurrentStreak > streak.LongestStreak {
			streak.LongestStreak = streak.CurrentStreak
		}
	} else {
		streak.CurrentStreak = 1
		if streak.LongestStreak < 1 {
			streak.LongestStreak = 1
		}
	}
	streak.LastPracticeDate = today

	if err := s.streakRepo.UpsertStreak(streak); err != nil {
		return nil, fmt.Errorf("failed to update streak: %w", err)
	}

	for _, milestone := range streakMilestones {
		if previousStreak < milestone.Days && streak.CurrentStreak >= milestone.Days {
			if err := s.AddStars(profileID, milestone.Bonus); err != nil {
				return nil, err
			}
			reached := milestone
			return &reached, nil
		}
	}

	return nil, nil
}

// AddStars credits stars to a profile. Spendable and lifetime totals always
// move together; lifetime never decreases.
func (s *StreakService) AddStars(profileID string, amount int) error {
	if amount <= 0 {
		return nil
	}

	balance, err := s.rewardRepo.GetStarBalance(profileID)
	if err != nil {
		return err
	}
	if balance == nil {
		balance = &models.StarBalance{ProfileID: profileID}
	}

	balance.TotalStars += amount
	balance.LifetimeStars += amount
	return s.rewardRepo.UpsertStarBalance(balance)
}

// SpendStars deducts from the spendable total. The lifetime total is
// untouched, so unlock checks keyed on lifetime stars are unaffected.
func (s *StreakService) SpendStars(profileID string, amount int) error {
	if amount <= 0 {
		return nil
	}

	balance, err := s.rewardRepo.GetStarBalance(profileID)
	if err != nil {
		return err
	}
	if balance == nil || balance.TotalStars < amount {
		return ErrInsufficientStars
	}

	balance.TotalStars -= amount
	return s.rewardRepo.UpsertStarBalance(balance)
}

// GetStarBalance returns a profile's current star balance
func (s *StreakService) GetStarBalance(profileID string) (*models.StarBalance, error) {
	return s.rewardRepo.GetStarBalance(profileID)
}

// GetStreak returns a profile's current streak
func (s *StreakService) GetStreak(profileID string) (*models.Streak, error) {
	return s.streakRepo.GetStreak(profileID)
}
