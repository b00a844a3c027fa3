package characters

import (
	"testing"

	"numbergalaxy/internal/models"
)

func TestForThemeReturnsFullSets(t *testing.T) {
	sparkle := ForTheme(models.ThemeSparkle)
	if len(sparkle) != 15 {
		t.Errorf("len(sparkle catalog) = %d, want 15", len(sparkle))
	}

	lego := ForTheme(models.ThemeLego)
	if len(lego) != 15 {
		t.Errorf("len(lego catalog) = %d, want 15", len(lego))
	}

	for _, c := range sparkle {
		if c.Theme != models.ThemeSparkle {
			t.Errorf("character %s has theme %s in sparkle catalog", c.ID, c.Theme)
		}
	}
	for _, c := range lego {
		if c.Theme != models.ThemeLego {
			t.Errorf("character %s has theme %s in lego catalog", c.ID, c.Theme)
		}
	}
}

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, set := range [][]Character{sparkleCharacters, legoCharacters} {
		for _, c := range set {
			if seen[c.ID] {
				t.Errorf("duplicate character ID %s", c.ID)
			}
			seen[c.ID] = true
		}
	}
}

func TestByID(t *testing.T) {
	c, ok := ByID("sparkle-star-princess")
	if !ok {
		t.Fatal("ByID() did not find sparkle-star-princess")
	}
	if c.Name != "Star Princess Luna" {
		t.Errorf("Name = %s, want Star Princess Luna", c.Name)
	}

	if _, ok := ByID("no-such-character"); ok {
		t.Error("ByID() found a character that does not exist")
	}
}

func TestUnlockConditionSatisfied(t *testing.T) {
	progress := Progress{
		MasteredTables: map[int]bool{2: true},
		LifetimeStars:  75,
		CurrentStreak:  5,
	}

	tests := []struct {
		name      string
		condition UnlockCondition
		want      bool
	}{
		{name: "mastered table", condition: tableMastery(2), want: true},
		{name: "unmastered table", condition: tableMastery(7), want: false},
		{name: "stars reached", condition: starThreshold(50), want: true},
		{name: "stars not reached", condition: starThreshold(100), want: false},
		{name: "streak reached", condition: streak(3), want: true},
		{name: "streak not reached", condition: streak(7), want: false},
		{name: "total problems never satisfiable", condition: UnlockCondition{Kind: UnlockTotalProblems, Count: 1}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.condition.Satisfied(progress); got != tt.want {
				t.Errorf("Satisfied() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnlockConditionDescription(t *testing.T) {
	tests := []struct {
		name      string
		condition UnlockCondition
		want      string
	}{
		{name: "table mastery", condition: tableMastery(5), want: "Master the 5s table"},
		{name: "star threshold", condition: starThreshold(100), want: "Collect 100 stars"},
		{name: "streak", condition: streak(7), want: "7 day streak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.condition.Description(); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}
