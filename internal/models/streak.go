package models

// Streak tracks consecutive calendar days of practice for one learner
type Streak struct {
	ProfileID        string
	CurrentStreak    int
	LongestStreak    int    // running maximum of CurrentStreak
	LastPracticeDate string // YYYY-MM-DD, empty if never practiced
}

// StarBalance tracks the star currency for one learner.
// LifetimeStars never decreases and is the basis for unlock checks;
// TotalStars is the spendable amount.
type StarBalance struct {
	ProfileID     string
	TotalStars    int
	LifetimeStars int
}
