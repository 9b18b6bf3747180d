package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jafarov01/cockpit/internal/scoring"
	"github.com/jafarov01/cockpit/internal/utils"
)

type PracticeCmd struct {
	Log  PracticeLogCmd  `cmd:"" help:"Log practice time for a skill."`
	Show PracticeShowCmd `cmd:"" help:"Show logged practice for a day."`
}

type PracticeLogCmd struct {
	Skill    string `arg:"" help:"Skill id or name."`
	Duration string `arg:"" help:"Duration label, one of the skill's tracking options."`
	Day      string `help:"Day to log for (YYYY-MM-DD). Defaults to today."`
}

func (c *PracticeLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	skill, err := findSkill(ctx, c.Skill)
	if err != nil {
		return err
	}
	if !skill.IsTracked {
		return fmt.Errorf("skill %q is not tracked", skill.Name)
	}

	label, err := matchOption(skill.TrackingOptions, c.Duration)
	if err != nil {
		return err
	}

	day := c.Day
	if day == "" {
		day = ctx.Today()
	} else if _, err := utils.ParseDay(day); err != nil {
		return fmt.Errorf("invalid day %q: expected YYYY-MM-DD", day)
	}

	if err := ctx.Store.LogPractice(day, skill.ID, label); err != nil {
		return err
	}
	fmt.Printf("Logged %s of %s on %s\n", label, skill.Name, day)
	return nil
}

// matchOption resolves a user-typed duration against the skill's tracking
// options, case-insensitively, so "1 Hour" logs as the canonical "1 hour".
func matchOption(options []string, input string) (string, error) {
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid duration %q: options are %v", input, options)
}

type PracticeShowCmd struct {
	Day string `arg:"" optional:"" help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *PracticeShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	day := c.Day
	if day == "" {
		day = ctx.Today()
	} else if _, err := utils.ParseDay(day); err != nil {
		return fmt.Errorf("invalid day %q: expected YYYY-MM-DD", day)
	}

	entry, err := ctx.Store.GetPracticeEntry(day)
	if err != nil {
		return err
	}
	if len(entry.Skills) == 0 {
		fmt.Printf("No practice logged on %s.\n", day)
		return nil
	}

	skills, err := ctx.Store.GetAllSkills()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(skills))
	for _, s := range skills {
		names[s.ID] = s.Name
	}

	type row struct {
		name    string
		label   string
		minutes int
	}
	rows := make([]row, 0, len(entry.Skills))
	total := 0
	for skillID, label := range entry.Skills {
		name := names[skillID]
		if name == "" {
			name = skillID
		}
		mins := scoring.ParseDurationLabel(label)
		total += mins
		rows = append(rows, row{name: name, label: label, minutes: mins})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	fmt.Printf("Practice on %s:\n", day)
	for _, r := range rows {
		fmt.Printf("  %-20s %s\n", r.name, r.label)
	}
	fmt.Printf("Total: %dm\n", total)
	return nil
}
