package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jafarov01/cockpit/internal/rules"
	"github.com/jafarov01/cockpit/internal/storage"
)

var (
	greenBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("42")).
			Padding(0, 1).
			Bold(true)

	yellowBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("214")).
			Padding(0, 1).
			Bold(true)

	redBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("196")).
			Padding(0, 1).
			Bold(true)

	dimText = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type StatusCmd struct{}

// Run prints the global status light plus an overdue-rule summary.
func (c *StatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}

	now := ctx.Now()
	status := rules.ComputeGlobalStatus(snap.Documents, snap.Campaigns, now)
	fmt.Println(RenderStatusBadge(status))

	if active := rules.ActiveCampaign(snap.Campaigns, now); active != nil {
		fmt.Printf("Active campaign: %s (%s – %s)\n", active.Name, active.StartDate, active.EndDate)
	} else {
		fmt.Println(dimText.Render("No active campaign."))
	}

	triggered := rules.Evaluate(snap.Campaigns, snap.Exams, now)
	if len(triggered) == 0 {
		fmt.Println("No overdue rules.")
		return nil
	}

	fmt.Printf("\n%d overdue rule(s):\n", len(triggered))
	for _, tr := range triggered {
		fmt.Printf("  [%s] IF %s THEN %s — %d day(s) overdue\n",
			tr.CampaignName, tr.Rule.Condition, tr.Rule.Action, tr.DaysOverdue)
	}
	fmt.Println(dimText.Render("Run 'cockpit decide' to resolve them."))
	return nil
}

// RenderStatusBadge renders the traffic light as a colored badge.
func RenderStatusBadge(status rules.Status) string {
	switch status {
	case rules.StatusRed:
		return redBadge.Render("RED — critical document needs attention")
	case rules.StatusYellow:
		return yellowBadge.Render("YELLOW — triggered rules on the active campaign")
	default:
		return greenBadge.Render("GREEN — all clear")
	}
}
