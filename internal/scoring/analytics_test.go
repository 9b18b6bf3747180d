package scoring

import (
	"fmt"
	"testing"
	"time"

	"github.com/jafarov01/cockpit/internal/models"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

func entriesFor(skillID string, days map[string]string) []models.PracticeEntry {
	var out []models.PracticeEntry
	for day, label := range days {
		out = append(out, models.PracticeEntry{Day: day, Skills: map[string]string{skillID: label}})
	}
	return out
}

// consecutiveDays logs the same label on n consecutive days ending at last.
func consecutiveDays(t *testing.T, skillID, label, last string, n int) []models.PracticeEntry {
	t.Helper()
	end := mustTime(t, last)
	days := make(map[string]string, n)
	for i := 0; i < n; i++ {
		days[end.AddDate(0, 0, -i).Format("2006-01-02")] = label
	}
	return entriesFor(skillID, days)
}

func TestCalculateSkillAnalytics_PerfectTenDayRun(t *testing.T) {
	// Setup: 30 minutes every day for the 10 days ending today.
	skill := models.SkillDefinition{ID: "guitar", Name: "Guitar", IsTracked: true}
	entries := consecutiveDays(t, "guitar", "30 mins", "2026-03-05", 10)

	// Execute
	a := CalculateSkillAnalytics(skill, entries, mustTime(t, "2026-03-05"))

	// Assert: 5.0h -> 50 base, 100% consistency (x1.5), practiced today
	// (x1.0), one 7-day streak milestone (+5).
	if a.TotalHours != 5.0 {
		t.Errorf("expected 5.0 total hours, got %v", a.TotalHours)
	}
	if a.BasePoints != 50 {
		t.Errorf("expected 50 base points, got %d", a.BasePoints)
	}
	if a.ConsistencyPercent != 100 {
		t.Errorf("expected 100%% consistency, got %v", a.ConsistencyPercent)
	}
	if a.ConsistencyMultiplier != 1.5 {
		t.Errorf("expected consistency multiplier 1.5, got %v", a.ConsistencyMultiplier)
	}
	if a.RecencyMultiplier != 1.0 {
		t.Errorf("expected recency multiplier 1.0, got %v", a.RecencyMultiplier)
	}
	if a.StreakBonus != 5 {
		t.Errorf("expected streak bonus 5, got %d", a.StreakBonus)
	}
	if a.TotalPoints != 80 {
		t.Errorf("expected 80 total points, got %d", a.TotalPoints)
	}
	if a.Level != 2 || a.LevelName != "Apprentice" {
		t.Errorf("expected level 2 Apprentice, got %d %s", a.Level, a.LevelName)
	}
	if a.CurrentStreak != 10 || a.LongestStreak != 10 {
		t.Errorf("expected streaks 10/10, got %d/%d", a.CurrentStreak, a.LongestStreak)
	}
}

func TestCalculateSkillAnalytics_LapsedPractice(t *testing.T) {
	// Setup: four 1-hour sessions a month ago, nothing since.
	skill := models.SkillDefinition{ID: "piano", Name: "Piano", IsTracked: true}
	entries := consecutiveDays(t, "piano", "1 hour", "2026-02-04", 4)

	a := CalculateSkillAnalytics(skill, entries, mustTime(t, "2026-03-05"))

	// 4 practiced days over a 33-day span is 12.1% -> x0.8; last practice
	// 29 days ago -> x0.7. round(40 * 0.8 * 0.7) = 22.
	if a.BasePoints != 40 {
		t.Errorf("expected 40 base points, got %d", a.BasePoints)
	}
	if a.ConsistencyMultiplier != 0.8 {
		t.Errorf("expected consistency multiplier 0.8, got %v", a.ConsistencyMultiplier)
	}
	if a.RecencyMultiplier != 0.7 {
		t.Errorf("expected recency multiplier 0.7, got %v", a.RecencyMultiplier)
	}
	if a.TotalPoints != 22 {
		t.Errorf("expected 22 total points, got %d", a.TotalPoints)
	}
	if a.CurrentStreak != 0 {
		t.Errorf("expected current streak 0, got %d", a.CurrentStreak)
	}
	if a.LongestStreak != 4 {
		t.Errorf("expected longest streak 4, got %d", a.LongestStreak)
	}
	if a.Level != 1 || a.LevelName != "Novice" {
		t.Errorf("expected level 1 Novice, got %d %s", a.Level, a.LevelName)
	}
}

func TestCalculateSkillAnalytics_ExperienceBonus(t *testing.T) {
	skill := models.SkillDefinition{ID: "go", Name: "Go", IsTracked: true, YearsExperience: 3}

	a := CalculateSkillAnalytics(skill, nil, mustTime(t, "2026-03-05"))

	if a.ExperienceBonus != 150 {
		t.Errorf("expected experience bonus 150, got %d", a.ExperienceBonus)
	}
	// Three prior years alone reach the Skilled tier.
	if a.TotalPoints != 150 || a.Level != 3 {
		t.Errorf("expected 150 points at level 3, got %d at %d", a.TotalPoints, a.Level)
	}
}

func TestCalculateSkillAnalytics_StreakSurvivesMissingToday(t *testing.T) {
	// Practice ended yesterday; the streak anchors there instead of dying.
	skill := models.SkillDefinition{ID: "s", Name: "S", IsTracked: true}
	entries := consecutiveDays(t, "s", "30 mins", "2026-03-04", 3)

	a := CalculateSkillAnalytics(skill, entries, mustTime(t, "2026-03-05"))

	if a.CurrentStreak != 3 {
		t.Errorf("expected current streak 3 anchored at yesterday, got %d", a.CurrentStreak)
	}
}

func TestCalculateSkillAnalytics_DuplicateDayKeepsLargerValue(t *testing.T) {
	skill := models.SkillDefinition{ID: "s", Name: "S", IsTracked: true}
	entries := []models.PracticeEntry{
		{Day: "2026-03-05", Skills: map[string]string{"s": "15 mins"}},
		{Day: "2026-03-05", Skills: map[string]string{"s": "1 hour"}},
	}

	a := CalculateSkillAnalytics(skill, entries, mustTime(t, "2026-03-05"))

	if a.TotalHours != 1.0 {
		t.Errorf("expected duplicate day to keep the larger value (1.0h), got %v", a.TotalHours)
	}
	if a.DaysPracticed != 1 {
		t.Errorf("expected 1 day practiced, got %d", a.DaysPracticed)
	}
}

func TestCalculateSkillAnalytics_ZeroOptionIsNotPractice(t *testing.T) {
	skill := models.SkillDefinition{ID: "s", Name: "S", IsTracked: true}
	entries := []models.PracticeEntry{
		{Day: "2026-03-05", Skills: map[string]string{"s": "0 mins"}},
	}

	a := CalculateSkillAnalytics(skill, entries, mustTime(t, "2026-03-05"))

	if a.DaysPracticed != 0 || a.CurrentStreak != 0 {
		t.Errorf("zero option must not count as practice, got %d days, streak %d",
			a.DaysPracticed, a.CurrentStreak)
	}
}

func TestCalculateSkillAnalytics_MorePracticeNeverScoresLower(t *testing.T) {
	// Adding a practiced day on top of an existing history must never
	// reduce the total. Spot-checked across history lengths.
	skill := models.SkillDefinition{ID: "s", Name: "S", IsTracked: true}
	now := mustTime(t, "2026-03-05")

	prev := -1
	for n := 1; n <= 30; n++ {
		entries := consecutiveDays(t, "s", "30 mins", "2026-03-05", n)
		a := CalculateSkillAnalytics(skill, entries, now)
		if a.TotalPoints < prev {
			t.Fatalf("points dropped from %d to %d when adding day %d", prev, a.TotalPoints, n)
		}
		prev = a.TotalPoints
	}
}

func TestCalculateAllSkillAnalytics_SkipsUntracked(t *testing.T) {
	skills := []models.SkillDefinition{
		{ID: "a", Name: "A", IsTracked: true},
		{ID: "b", Name: "B", IsTracked: false},
	}

	out := CalculateAllSkillAnalytics(skills, nil, mustTime(t, "2026-03-05"))

	if len(out) != 1 || out[0].SkillID != "a" {
		t.Errorf("expected only the tracked skill, got %+v", out)
	}
}

func TestLevelFor_Boundaries(t *testing.T) {
	cases := []struct {
		points int
		level  int
		name   string
	}{
		{0, 1, "Novice"},
		{49, 1, "Novice"},
		{50, 2, "Apprentice"},
		{149, 2, "Apprentice"},
		{150, 3, "Skilled"},
		{399, 3, "Skilled"},
		{400, 4, "Advanced"},
		{999, 4, "Advanced"},
		{1000, 5, "Master"},
		{5000, 5, "Master"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%d_points", c.points), func(t *testing.T) {
			level, name, toNext, progress := LevelFor(c.points)
			if level != c.level || name != c.name {
				t.Errorf("LevelFor(%d) = %d %s, want %d %s", c.points, level, name, c.level, c.name)
			}
			if c.level == 5 {
				if toNext != 0 || progress != 100 {
					t.Errorf("top tier must report toNext=0 progress=100, got %d %v", toNext, progress)
				}
			} else if toNext <= 0 {
				t.Errorf("expected positive toNext below the top tier, got %d", toNext)
			}
		})
	}
}
