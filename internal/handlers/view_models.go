package handlers

import (
	"time"

	"numbergalaxy/internal/characters"
	"numbergalaxy/internal/models"
	"numbergalaxy/internal/service"
)

// ProfileView is the JSON shape for a learner profile
type ProfileView struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Theme             string   `json:"theme"`
	AvatarID          string   `json:"avatarId"`
	InputMethod       string   `json:"inputMethod"`
	EnabledOperations []string `json:"enabledOperations"`
	Difficulty        string   `json:"difficulty"`
	CreatedAt         string   `json:"createdAt"`
	LastActiveAt      string   `json:"lastActiveAt"`
}

func toProfileView(p *models.Profile) ProfileView {
	ops := make([]string, len(p.EnabledOperations))
	for i, op := range p.EnabledOperations {
		ops[i] = string(op)
	}
	return ProfileView{
		ID:                p.ID,
		Name:              p.Name,
		Theme:             string(p.Theme),
		AvatarID:          p.AvatarID,
		InputMethod:       string(p.InputMethod),
		EnabledOperations: ops,
		Difficulty:        string(p.Difficulty),
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		LastActiveAt:      p.LastActiveAt.Format(time.RFC3339),
	}
}

// TableProgressView is the JSON shape for one table's progression state
type TableProgressView struct {
	TableNumber             int    `json:"tableNumber"`
	Status                  string `json:"status"`
	TeachingCompleted       bool   `json:"teachingCompleted"`
	GuidedPracticeCompleted bool   `json:"guidedPracticeCompleted"`
	MasteryScore            int    `json:"masteryScore"`
	LastPracticedAt         string `json:"lastPracticedAt,omitempty"`
}

func toTableProgressView(p models.TableProgress) TableProgressView {
	view := TableProgressView{
		TableNumber:             p.TableNumber,
		Status:                  string(p.Status),
		TeachingCompleted:       p.TeachingCompleted,
		GuidedPracticeCompleted: p.GuidedPracticeCompleted,
		MasteryScore:            p.MasteryScore,
	}
	if p.LastPracticedAt != nil {
		view.LastPracticedAt = p.LastPracticedAt.Format(time.RFC3339)
	}
	return view
}

// FactStatView is the JSON shape for one fact's spaced-repetition state
type FactStatView struct {
	Fact           string  `json:"fact"`
	CorrectCount   int     `json:"correctCount"`
	IncorrectCount int     `json:"incorrectCount"`
	LastAttempt    string  `json:"lastAttempt,omitempty"`
	NextReviewDate string  `json:"nextReviewDate"`
	EaseFactor     float64 `json:"easeFactor"`
	IntervalDays   int     `json:"intervalDays"`
}

func toFactStatView(s models.FactStat) FactStatView {
	view := FactStatView{
		Fact:           s.Fact,
		CorrectCount:   s.CorrectCount,
		IncorrectCount: s.IncorrectCount,
		NextReviewDate: s.NextReviewDate.Format(time.RFC3339),
		EaseFactor:     s.EaseFactor,
		IntervalDays:   s.IntervalDays,
	}
	if s.LastAttempt != nil {
		view.LastAttempt = s.LastAttempt.Format(time.RFC3339)
	}
	return view
}

// StreakView is the JSON shape for a practice streak
type StreakView struct {
	CurrentStreak    int    `json:"currentStreak"`
	LongestStreak    int    `json:"longestStreak"`
	LastPracticeDate string `json:"lastPracticeDate,omitempty"`
}

// StarBalanceView is the JSON shape for a star balance
type StarBalanceView struct {
	TotalStars    int `json:"totalStars"`
	LifetimeStars int `json:"lifetimeStars"`
}

// QuizAttemptView is the JSON shape for a stored quiz attempt
type QuizAttemptView struct {
	ID               string `json:"id"`
	TableNumber      int    `json:"tableNumber"`
	Date             string `json:"date"`
	TotalProblems    int    `json:"totalProblems"`
	CorrectAnswers   int    `json:"correctAnswers"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Score            int    `json:"score"`
}

func toQuizAttemptView(a models.QuizAttempt) QuizAttemptView {
	return QuizAttemptView{
		ID:               a.ID,
		TableNumber:      a.TableNumber,
		Date:             a.Date.Format(time.RFC3339),
		TotalProblems:    a.TotalProblems,
		CorrectAnswers:   a.CorrectAnswers,
		TimeSpentSeconds: a.TimeSpentSeconds,
		Score:            a.Score(),
	}
}

// ProgressView is the JSON shape for a full progress load
type ProgressView struct {
	Tables        []TableProgressView `json:"tables"`
	FactStats     []FactStatView      `json:"factStats"`
	Streak        *StreakView         `json:"streak,omitempty"`
	StarBalance   *StarBalanceView    `json:"starBalance,omitempty"`
	RecentQuizzes []QuizAttemptView   `json:"recentQuizzes"`
}

func toProgressView(summary *service.ProgressSummary) ProgressView {
	view := ProgressView{
		Tables:        make([]TableProgressView, 0, len(summary.TableProgress)),
		FactStats:     make([]FactStatView, 0, len(summary.FactStats)),
		RecentQuizzes: make([]QuizAttemptView, 0, len(summary.RecentQuizzes)),
	}
	for _, p := range summary.TableProgress {
		view.Tables = append(view.Tables, toTableProgressView(p))
	}
	for _, s := range summary.FactStats {
		view.FactStats = append(view.FactStats, toFactStatView(s))
	}
	for _, q := range summary.RecentQuizzes {
		view.RecentQuizzes = append(view.RecentQuizzes, toQuizAttemptView(q))
	}
	if summary.Streak != nil {
		view.Streak = &StreakView{
			CurrentStreak:    summary.Streak.CurrentStreak,
			LongestStreak:    summary.Streak.LongestStreak,
			LastPracticeDate: summary.Streak.LastPracticeDate,
		}
	}
	if summary.StarBalance != nil {
		view.StarBalance = &StarBalanceView{
			TotalStars:    summary.StarBalance.TotalStars,
			LifetimeStars: summary.StarBalance.LifetimeStars,
		}
	}
	return view
}

// CharacterView is the JSON shape for a collectible character
type CharacterView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	Theme           string `json:"theme"`
	UnlockCondition string `json:"unlockCondition"`
}

func toCharacterView(c characters.Character) CharacterView {
	return CharacterView{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		Theme:           string(c.Theme),
		UnlockCondition: c.Condition.Description(),
	}
}

func toCharacterViews(list []characters.Character) []CharacterView {
	views := make([]CharacterView, 0, len(list))
	for _, c := range list {
		views = append(views, toCharacterView(c))
	}
	return views
}

// SettingsView is the JSON shape for app settings. The PIN hash never
// leaves the server.
type SettingsView struct {
	BreakReminderMinutes int  `json:"breakReminderMinutes"`
	SoundEnabled         bool `json:"soundEnabled"`
	ReadAloudEnabled     bool `json:"readAloudEnabled"`
}

// MilestoneView is the JSON shape for a crossed streak milestone
type MilestoneView struct {
	Days    int    `json:"days"`
	Bonus   int    `json:"bonus"`
	Message string `json:"message"`
}
