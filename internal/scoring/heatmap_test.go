package scoring

import (
	"testing"

	"github.com/jafarov01/cockpit/internal/models"
)

func TestBuildHeatmap_WindowShape(t *testing.T) {
	skill := models.SkillDefinition{ID: "s", Name: "S"}

	cells := BuildHeatmap(skill, nil, mustTime(t, "2026-03-05"))

	if len(cells) != 90 {
		t.Fatalf("expected 90 cells, got %d", len(cells))
	}
	if cells[len(cells)-1].Date != "2026-03-05" {
		t.Errorf("expected today last, got %s", cells[len(cells)-1].Date)
	}
	if cells[0].Date != "2025-12-06" {
		t.Errorf("expected window to start 89 days back, got %s", cells[0].Date)
	}
	for _, c := range cells {
		if c.Minutes != 0 || c.Intensity != 0 {
			t.Fatalf("empty history must render zero cells, got %+v", c)
		}
	}
}

func TestBuildHeatmap_IntensityBuckets(t *testing.T) {
	// Default 30-minute target: 1 below half, 2 below target, 3 at target.
	skill := models.SkillDefinition{ID: "s", Name: "S"}
	entries := []models.PracticeEntry{
		{Day: "2026-03-02", Skills: map[string]string{"s": "10 mins"}},
		{Day: "2026-03-03", Skills: map[string]string{"s": "15 mins"}},
		{Day: "2026-03-04", Skills: map[string]string{"s": "20 mins"}},
		{Day: "2026-03-05", Skills: map[string]string{"s": "30 mins"}},
	}

	cells := BuildHeatmap(skill, entries, mustTime(t, "2026-03-05"))

	byDate := make(map[string]HeatmapCell, len(cells))
	for _, c := range cells {
		byDate[c.Date] = c
	}
	for date, want := range map[string]int{
		"2026-03-01": 0,
		"2026-03-02": 1,
		"2026-03-03": 2,
		"2026-03-04": 2,
		"2026-03-05": 3,
	} {
		if got := byDate[date].Intensity; got != want {
			t.Errorf("intensity on %s = %d, want %d", date, got, want)
		}
	}
}

func TestBuildHeatmap_CustomTarget(t *testing.T) {
	skill := models.SkillDefinition{ID: "s", Name: "S", TargetPerDay: "1 hour"}
	entries := []models.PracticeEntry{
		{Day: "2026-03-05", Skills: map[string]string{"s": "30 mins"}},
	}

	cells := BuildHeatmap(skill, entries, mustTime(t, "2026-03-05"))

	// 30 minutes is exactly half of a 60-minute target: below target but
	// not below half of it.
	if got := cells[len(cells)-1].Intensity; got != 2 {
		t.Errorf("expected intensity 2 against a 1-hour target, got %d", got)
	}
}
