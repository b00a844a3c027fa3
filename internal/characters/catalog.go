// Package characters holds the static collectible catalog and the rules for
// unlocking each character from a learner's progress.
package characters

import (
	"fmt"

	"numbergalaxy/internal/models"
)

// UnlockKind enumerates the unlock-condition variants
type UnlockKind int

const (
	// UnlockTableMastery unlocks when a specific table reaches mastered
	UnlockTableMastery UnlockKind = iota
	// UnlockStarThreshold unlocks at a lifetime star total
	UnlockStarThreshold
	// UnlockStreak unlocks at a daily-streak length
	UnlockStreak
	// UnlockTotalProblems is defined in the catalog but no counter tracks it,
	// so it never fires
	UnlockTotalProblems
)

// UnlockCondition is a tagged variant; only the field matching Kind is set
type UnlockCondition struct {
	Kind        UnlockKind
	TableNumber int
	Stars       int
	Days        int
	Count       int
}

// Progress is the snapshot an unlock check runs against
type Progress struct {
	MasteredTables map[int]bool
	LifetimeStars  int
	CurrentStreak  int
}

// Satisfied reports whether the condition holds for the given progress
func (c UnlockCondition) Satisfied(p Progress) bool {
	switch c.Kind {
	case UnlockTableMastery:
		return p.MasteredTables[c.TableNumber]
	case UnlockStarThreshold:
		return p.LifetimeStars >= c.Stars
	case UnlockStreak:
		return p.CurrentStreak >= c.Days
	case UnlockTotalProblems:
		// No total-problems counter is tracked
		return false
	}
	return false
}

// Description returns the kid-facing unlock requirement text
func (c UnlockCondition) Description() string {
	switch c.Kind {
	case UnlockTableMastery:
		return fmt.Sprintf("Master the %ds table", c.TableNumber)
	case UnlockStarThreshold:
		return fmt.Sprintf("Collect %d stars", c.Stars)
	case UnlockStreak:
		return fmt.Sprintf("%d day streak", c.Days)
	case UnlockTotalProblems:
		return fmt.Sprintf("Solve %d problems", c.Count)
	}
	return "Unknown"
}

// Character is one collectible in the catalog
type Character struct {
	ID          string
	Name        string
	Description string
	Theme       models.Theme
	Condition   UnlockCondition
}

func tableMastery(table int) UnlockCondition {
	return UnlockCondition{Kind: UnlockTableMastery, TableNumber: table}
}

func starThreshold(stars int) UnlockCondition {
	return UnlockCondition{Kind: UnlockStarThreshold, Stars: stars}
}

func streak(days int) UnlockCondition {
	return UnlockCondition{Kind: UnlockStreak, Days: days}
}

// sparkleCharacters are the space princesses and magical creatures of the sparkle world
var sparkleCharacters = []Character{
	{ID: "sparkle-star-princess", Name: "Star Princess Luna", Description: "The princess of the first star system", Theme: models.ThemeSparkle, Condition: tableMastery(1)},
	{ID: "sparkle-cosmic-cat", Name: "Cosmic Kitty", Description: "A magical space cat who loves to nap on stars", Theme: models.ThemeSparkle, Condition: tableMastery(10)},
	{ID: "sparkle-rainbow-unicorn", Name: "Rainbow Stardust", Description: "A unicorn made of pure rainbow light", Theme: models.ThemeSparkle, Condition: tableMastery(2)},
	{ID: "sparkle-moon-fairy", Name: "Moonbeam Fairy", Description: "She sprinkles stardust wherever she flies", Theme: models.ThemeSparkle, Condition: tableMastery(5)},
	{ID: "sparkle-crystal-dragon", Name: "Crystal Dragon", Description: "A gentle dragon with crystal scales", Theme: models.ThemeSparkle, Condition: tableMastery(3)},
	{ID: "sparkle-glitter-bunny", Name: "Glitter Bunny", Description: "Hops between planets leaving sparkles", Theme: models.ThemeSparkle, Condition: tableMastery(4)},
	{ID: "sparkle-nebula-fox", Name: "Nebula Fox", Description: "Her tail is made of colorful nebula clouds", Theme: models.ThemeSparkle, Condition: tableMastery(9)},
	{ID: "sparkle-aurora-owl", Name: "Aurora Owl", Description: "Wise owl who paints the northern lights", Theme: models.ThemeSparkle, Condition: tableMastery(6)},
	{ID: "sparkle-comet-dolphin", Name: "Comet Dolphin", Description: "Swims through space leaving comet trails", Theme: models.ThemeSparkle, Condition: tableMastery(7)},
	{ID: "sparkle-galaxy-queen", Name: "Galaxy Queen", Description: "The ruler of all sparkle galaxies", Theme: models.ThemeSparkle, Condition: tableMastery(8)},
	{ID: "sparkle-star-collector", Name: "Twinkle the Star Sprite", Description: "Collects fallen stars and makes wishes", Theme: models.ThemeSparkle, Condition: starThreshold(50)},
	{ID: "sparkle-shimmer-butterfly", Name: "Shimmer Butterfly", Description: "Wings made of pure starlight", Theme: models.ThemeSparkle, Condition: starThreshold(100)},
	{ID: "sparkle-dream-pegasus", Name: "Dream Pegasus", Description: "Flies through dreams spreading magic", Theme: models.ThemeSparkle, Condition: starThreshold(200)},
	{ID: "sparkle-streak-sprite", Name: "Spark the Fire Sprite", Description: "Burns bright with dedication", Theme: models.ThemeSparkle, Condition: streak(3)},
	{ID: "sparkle-streak-phoenix", Name: "Stellar Phoenix", Description: "Rises from stardust each day", Theme: models.ThemeSparkle, Condition: streak(7)},
}

// legoCharacters are the space explorers and robots of the lego world
var legoCharacters = []Character{
	{ID: "lego-space-cadet", Name: "Space Cadet Max", Description: "First-time space explorer ready for adventure", Theme: models.ThemeLego, Condition: tableMastery(1)},
	{ID: "lego-rocket-bot", Name: "Rocket Bot RX-10", Description: "A helpful robot that counts super fast", Theme: models.ThemeLego, Condition: tableMastery(10)},
	{ID: "lego-twin-pilots", Name: "The Twin Pilots", Description: "Best duo in the galaxy", Theme: models.ThemeLego, Condition: tableMastery(2)},
	{ID: "lego-captain-five", Name: "Captain High-Five", Description: "Always ready with a high five!", Theme: models.ThemeLego, Condition: tableMastery(5)},
	{ID: "lego-trio-squad", Name: "Triple Threat Squad", Description: "Three heroes working as one", Theme: models.ThemeLego, Condition: tableMastery(3)},
	{ID: "lego-quad-racer", Name: "Quad Racer Team", Description: "Four-wheeled speed demons", Theme: models.ThemeLego, Condition: tableMastery(4)},
	{ID: "lego-power-nine", Name: "Power Nine Commander", Description: "Leader of the elite nine squad", Theme: models.ThemeLego, Condition: tableMastery(9)},
	{ID: "lego-hex-engineer", Name: "Hex the Engineer", Description: "Builds amazing things with six arms", Theme: models.ThemeLego, Condition: tableMastery(6)},
	{ID: "lego-lucky-seven", Name: "Lucky Seven", Description: "The luckiest explorer in space", Theme: models.ThemeLego, Condition: tableMastery(7)},
	{ID: "lego-octo-mechanic", Name: "Octo Mechanic", Description: "Eight tools for eight tough jobs", Theme: models.ThemeLego, Condition: tableMastery(8)},
	{ID: "lego-brick-collector", Name: "Brick Collector Bot", Description: "Collects special bricks from everywhere", Theme: models.ThemeLego, Condition: starThreshold(50)},
	{ID: "lego-mega-builder", Name: "Mega Builder", Description: "Can build anything from space bricks", Theme: models.ThemeLego, Condition: starThreshold(100)},
	{ID: "lego-master-architect", Name: "Master Architect", Description: "Designs the greatest space stations", Theme: models.ThemeLego, Condition: starThreshold(200)},
	{ID: "lego-streak-runner", Name: "Streak Runner", Description: "Never misses a day of building", Theme: models.ThemeLego, Condition: streak(3)},
	{ID: "lego-streak-champion", Name: "Week Champion", Description: "A whole week of awesome!", Theme: models.ThemeLego, Condition: streak(7)},
}

// ForTheme returns the catalog for a theme
func ForTheme(theme models.Theme) []Character {
	if theme == models.ThemeLego {
		return legoCharacters
	}
	return sparkleCharacters
}

// ByID looks up a character across both themes
func ByID(id string) (*Character, bool) {
	for _, set := range [][]Character{sparkleCharacters, legoCharacters} {
		for i := range set {
			if set[i].ID == id {
				return &set[i], true
			}
		}
	}
	return nil, false
}
