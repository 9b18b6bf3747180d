package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/scoring"
)

type SkillCmd struct {
	Add     SkillAddCmd     `cmd:"" help:"Define a new tracked skill."`
	List    SkillListCmd    `cmd:"" help:"List skills with their current level."`
	Stats   SkillStatsCmd   `cmd:"" help:"Show full analytics for a skill."`
	Heatmap SkillHeatmapCmd `cmd:"" help:"Render the 90-day practice heatmap."`
}

type SkillAddCmd struct {
	Name       string  `arg:"" help:"Skill name."`
	Category   string  `help:"Category (e.g. music, engineering)."`
	Options    string  `help:"Comma-separated duration options." default:"0 mins,15 mins,30 mins,1 hour,2 hours"`
	Target     string  `help:"Daily practice target (duration label)." default:"30 mins"`
	Experience float64 `help:"Prior untracked experience in years."`
	CV         bool    `help:"Show this skill on the CV."`
}

func (c *SkillAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if _, err := ctx.Store.GetSkillByName(c.Name); err == nil {
		return fmt.Errorf("skill with name %q already exists", c.Name)
	}

	skill := models.SkillDefinition{
		ID:              uuid.New().String(),
		Name:            c.Name,
		Category:        c.Category,
		TrackingOptions: ParseCSV(c.Options),
		TargetPerDay:    c.Target,
		YearsExperience: c.Experience,
		IsTracked:       true,
		ShowOnCV:        c.CV,
		CreatedAt:       ctx.Now(),
	}
	if err := ctx.Store.AddSkill(skill); err != nil {
		return err
	}
	fmt.Printf("Added skill: %s (%s)\n", skill.Name, skill.ID)
	return nil
}

type SkillListCmd struct{}

func (c *SkillListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		fmt.Println("No skills.")
		return nil
	}
	entries, err := ctx.Store.GetAllPracticeEntries()
	if err != nil {
		return err
	}

	for _, a := range scoring.CalculateAllSkillAnalytics(skills, entries, ctx.Now()) {
		fmt.Printf("%-20s  L%d %-10s  %5d pts  %5.1fh  streak %d\n",
			a.Name, a.Level, a.LevelName, a.TotalPoints, a.TotalHours, a.CurrentStreak)
	}
	return nil
}

type SkillStatsCmd struct {
	Skill string `arg:"" help:"Skill id or name."`
}

func (c *SkillStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	skill, err := findSkill(ctx, c.Skill)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllPracticeEntries()
	if err != nil {
		return err
	}

	a := scoring.CalculateSkillAnalytics(skill, entries, ctx.Now())
	fmt.Printf("%s — Level %d (%s)\n", a.Name, a.Level, a.LevelName)
	fmt.Printf("  total:       %.1f hours across %d day(s)\n", a.TotalHours, a.DaysPracticed)
	fmt.Printf("  streak:      %d current / %d longest\n", a.CurrentStreak, a.LongestStreak)
	fmt.Printf("  consistency: %.1f%% (x%.2f)\n", a.ConsistencyPercent, a.ConsistencyMultiplier)
	fmt.Printf("  recency:     x%.2f\n", a.RecencyMultiplier)
	fmt.Printf("  points:      %d base, +%d streak, +%d experience = %d total\n",
		a.BasePoints, a.StreakBonus, a.ExperienceBonus, a.TotalPoints)
	if a.PointsToNextLevel > 0 {
		fmt.Printf("  next level:  %d points away (%.1f%% through %s)\n",
			a.PointsToNextLevel, a.ProgressPercent, a.LevelName)
	}
	return nil
}

type SkillHeatmapCmd struct {
	Skill string `arg:"" help:"Skill id or name."`
}

var heatStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
}

func (c *SkillHeatmapCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	skill, err := findSkill(ctx, c.Skill)
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetAllPracticeEntries()
	if err != nil {
		return err
	}

	cells := scoring.BuildHeatmap(skill, entries, ctx.Now())
	fmt.Printf("%s — last %d days (oldest first)\n", skill.Name, len(cells))
	fmt.Println(RenderHeatmapStrip(cells))
	return nil
}

// RenderHeatmapStrip renders heatmap cells as one shaded block per day.
func RenderHeatmapStrip(cells []scoring.HeatmapCell) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 && i%30 == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(heatStyles[cell.Intensity].Render("■"))
	}
	return b.String()
}

func findSkill(ctx *Context, ref string) (models.SkillDefinition, error) {
	if s, err := ctx.Store.GetSkill(ref); err == nil {
		return s, nil
	}
	return ctx.Store.GetSkillByName(ref)
}
