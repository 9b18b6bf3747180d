package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/rules"
	"github.com/jafarov01/cockpit/internal/scoring"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.tab {
	case TabOverview:
		content = m.viewOverview()
	case TabSkills:
		content = m.viewSkills()
	case TabDocuments:
		content = m.viewDocuments()
	}

	footer := m.help.View(m)
	if m.decideHint {
		footer = dimStyle.Render("Run `cockpit decide` to work through the queue.") + "\n" + footer
	}
	if m.loadErr != nil {
		footer = overdueStyle.Render("load error: "+m.loadErr.Error()) + "\n" + footer
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		docStyle.Render(content),
		footer,
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewOverview() string {
	var b strings.Builder

	b.WriteString(statusBanner(m.status))
	b.WriteString("\n\n")

	if active := rules.ActiveCampaign(m.snap.Campaigns, m.now()); active != nil {
		b.WriteString(titleStyle.Render(active.Name))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s → %s", active.StartDate, active.EndDate)))
		if len(active.FocusAreas) > 0 {
			b.WriteString("\n" + dimStyle.Render("focus: "+strings.Join(active.FocusAreas, ", ")))
		}
		b.WriteString("\n\n")
	} else {
		b.WriteString(dimStyle.Render("No active campaign.") + "\n\n")
	}

	if len(m.triggered) == 0 {
		b.WriteString("No overdue rules.\n")
	} else {
		b.WriteString(overdueStyle.Render(fmt.Sprintf("%d overdue rule(s)", len(m.triggered))) + "\n")
		for _, t := range m.triggered {
			b.WriteString(fmt.Sprintf("  IF %s THEN %s\n", t.Rule.Condition, t.Rule.Action))
			b.WriteString(dimStyle.Render(fmt.Sprintf("    %s · due %s · %d day(s) overdue\n",
				t.CampaignName, t.Rule.Deadline, t.DaysOverdue)))
		}
	}

	return b.String()
}

func (m Model) viewSkills() string {
	if len(m.analytics) == 0 {
		return dimStyle.Render("No tracked skills.")
	}

	var b strings.Builder
	for i, a := range m.analytics {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(a.Name))
		b.WriteString(fmt.Sprintf("  L%d %s · %d pts · %.1fh · streak %d\n",
			a.Level, a.LevelName, a.TotalPoints, a.TotalHours, a.CurrentStreak))
		b.WriteString(renderHeatmapRow(a.Heatmap) + "\n")
	}
	return b.String()
}

func (m Model) viewDocuments() string {
	if len(m.snap.Documents) == 0 {
		return dimStyle.Render("No documents.")
	}

	var b strings.Builder
	for _, d := range m.snap.Documents {
		marker := "  "
		if d.IsCritical && (d.Status == models.DocumentExpired || d.Status == models.DocumentUnknown) {
			marker = overdueStyle.Render("! ")
		}
		line := fmt.Sprintf("%s%-30s %-8s", marker, d.Name, d.Status)
		if d.Expiry != "" {
			line += dimStyle.Render("  expires " + d.Expiry)
		}
		if d.IsCritical {
			line += dimStyle.Render("  [critical]")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func statusBanner(s rules.Status) string {
	switch s {
	case rules.StatusRed:
		return redBannerStyle.Render("STATUS: RED — a critical document needs attention")
	case rules.StatusYellow:
		return yellowBannerStyle.Render("STATUS: YELLOW — decisions pending")
	default:
		return greenBannerStyle.Render("STATUS: GREEN — all clear")
	}
}

func renderHeatmapRow(cells []scoring.HeatmapCell) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 && i%30 == 0 {
			b.WriteByte('\n')
		}
		b.WriteString(heatStyles[cell.Intensity].Render("■"))
	}
	return b.String()
}
