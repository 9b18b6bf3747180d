package scoring

import (
	"time"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/utils"
)

// HeatmapCell is one day of the trailing practice heatmap. Intensity
// buckets: 0 none, 1 below half the daily target, 2 below target, 3 at or
// above target.
type HeatmapCell struct {
	Date      string `json:"date"`
	Minutes   int    `json:"minutes"`
	Intensity int    `json:"intensity"`
}

// BuildHeatmap projects the practice history onto the trailing window of
// calendar days, oldest first. Days without an entry render as zero.
func BuildHeatmap(skill models.SkillDefinition, entries []models.PracticeEntry, now time.Time) []HeatmapCell {
	target := ParseDurationLabel(skill.TargetPerDay)
	if target <= 0 {
		target = constants.DefaultDailyTargetMin
	}

	series := practiceSeries(skill.ID, entries)
	today := utils.DayOf(now)

	cells := make([]HeatmapCell, 0, constants.DefaultHeatmapDays)
	for i := constants.DefaultHeatmapDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		m := series[utils.FormatDay(day)]
		cells = append(cells, HeatmapCell{
			Date:      utils.FormatDay(day),
			Minutes:   m,
			Intensity: intensity(m, target),
		})
	}
	return cells
}

func intensity(minutes, target int) int {
	switch {
	case minutes <= 0:
		return 0
	case minutes*2 < target:
		return 1
	case minutes < target:
		return 2
	default:
		return 3
	}
}
