// Package scoring converts a sparse daily practice log into proficiency
// analytics: points with consistency/recency multipliers, streaks, a
// five-tier level and a trailing heatmap. Everything here is a pure
// function of (skill definition, practice history, clock).
package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/utils"
)

// SkillAnalytics is the derived proficiency report for one skill.
type SkillAnalytics struct {
	SkillID               string        `json:"skill_id"`
	Name                  string        `json:"name"`
	TotalHours            float64       `json:"total_hours"`
	DaysPracticed         int           `json:"days_practiced"`
	CurrentStreak         int           `json:"current_streak"`
	LongestStreak         int           `json:"longest_streak"`
	ConsistencyPercent    float64       `json:"consistency_percent"`
	BasePoints            int           `json:"base_points"`
	ConsistencyMultiplier float64       `json:"consistency_multiplier"`
	RecencyMultiplier     float64       `json:"recency_multiplier"`
	StreakBonus           int           `json:"streak_bonus"`
	ExperienceBonus       int           `json:"experience_bonus"`
	TotalPoints           int           `json:"total_points"`
	Level                 int           `json:"level"`
	LevelName             string        `json:"level_name"`
	PointsToNextLevel     int           `json:"points_to_next_level"`
	ProgressPercent       float64       `json:"progress_percent"`
	Heatmap               []HeatmapCell `json:"heatmap"`
}

// CalculateSkillAnalytics computes the full analytics for one skill from
// the complete practice history. Entries that do not mention the skill, or
// select its zero option, contribute nothing and do not count as a day
// practiced.
func CalculateSkillAnalytics(skill models.SkillDefinition, entries []models.PracticeEntry, now time.Time) SkillAnalytics {
	today := utils.DayOf(now)
	minutesByDay := practiceSeries(skill.ID, entries)

	totalMinutes := 0
	var practiced []time.Time
	for day, m := range minutesByDay {
		totalMinutes += m
		if d, err := utils.ParseDay(day); err == nil {
			practiced = append(practiced, d)
		}
	}
	sort.Slice(practiced, func(i, j int) bool { return practiced[i].Before(practiced[j]) })

	totalHours := math.Round(float64(totalMinutes)/60*10) / 10
	daysPracticed := len(practiced)

	currentStreak := currentStreak(minutesByDay, today)
	longestStreak := longestStreak(practiced)

	consistency := 0.0
	if daysPracticed > 0 {
		span := utils.DaysBetween(practiced[0], today) + 1
		if span < 1 {
			span = 1
		}
		consistency = float64(daysPracticed) / float64(span) * 100
		if consistency > 100 {
			consistency = 100
		}
	}

	recency := 0.7
	if daysPracticed > 0 {
		recency = recencyMultiplier(utils.DaysBetween(practiced[len(practiced)-1], today))
	}

	basePoints := int(math.Round(totalHours * 10))
	consistencyMult := consistencyMultiplier(consistency)
	streakBonus := (longestStreak / 7) * 5
	experienceBonus := int(skill.YearsExperience * 50)
	totalPoints := int(math.Round(float64(basePoints)*consistencyMult*recency)) + streakBonus + experienceBonus

	level, levelName, toNext, progress := LevelFor(totalPoints)

	return SkillAnalytics{
		SkillID:               skill.ID,
		Name:                  skill.Name,
		TotalHours:            totalHours,
		DaysPracticed:         daysPracticed,
		CurrentStreak:         currentStreak,
		LongestStreak:         longestStreak,
		ConsistencyPercent:    math.Round(consistency*10) / 10,
		BasePoints:            basePoints,
		ConsistencyMultiplier: consistencyMult,
		RecencyMultiplier:     recency,
		StreakBonus:           streakBonus,
		ExperienceBonus:       experienceBonus,
		TotalPoints:           totalPoints,
		Level:                 level,
		LevelName:             levelName,
		PointsToNextLevel:     toNext,
		ProgressPercent:       math.Round(progress*10) / 10,
		Heatmap:               BuildHeatmap(skill, entries, now),
	}
}

// CalculateAllSkillAnalytics maps the per-skill calculation over every
// tracked definition. There is no cross-skill interaction.
func CalculateAllSkillAnalytics(skills []models.SkillDefinition, entries []models.PracticeEntry, now time.Time) []SkillAnalytics {
	var out []SkillAnalytics
	for _, s := range skills {
		if !s.IsTracked {
			continue
		}
		out = append(out, CalculateSkillAnalytics(s, entries, now))
	}
	return out
}

// practiceSeries extracts day -> minutes for one skill, keeping only days
// with non-zero practice. Duplicate entries for the same day keep the
// larger value.
func practiceSeries(skillID string, entries []models.PracticeEntry) map[string]int {
	series := make(map[string]int)
	for _, e := range entries {
		label, ok := e.Skills[skillID]
		if !ok {
			continue
		}
		m := ParseDurationLabel(label)
		if m <= 0 {
			continue
		}
		if m > series[e.Day] {
			series[e.Day] = m
		}
	}
	return series
}

// currentStreak walks backward one calendar day at a time. The anchor is
// today, or yesterday when today has no practice logged yet.
func currentStreak(minutesByDay map[string]int, today time.Time) int {
	day := today
	if minutesByDay[utils.FormatDay(day)] == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for minutesByDay[utils.FormatDay(day)] > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak finds the longest run of consecutive practiced days in the
// sorted history.
func longestStreak(practiced []time.Time) int {
	longest, run := 0, 0
	for i, d := range practiced {
		if i > 0 && utils.DaysBetween(practiced[i-1], d) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// consistencyMultiplier is a step function of the share of days practiced
// since the first entry. It is monotonically non-decreasing.
func consistencyMultiplier(percent float64) float64 {
	switch {
	case percent >= 80:
		return 1.5
	case percent >= 50:
		return 1.2
	case percent >= 25:
		return 1.0
	default:
		return 0.8
	}
}

// recencyMultiplier decays with days since the last practice. It is
// monotonically non-increasing.
func recencyMultiplier(daysSince int) float64 {
	switch {
	case daysSince <= 1:
		return 1.0
	case daysSince <= 3:
		return 0.95
	case daysSince <= 7:
		return 0.85
	default:
		return 0.7
	}
}
