package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/errors"
	"github.com/jafarov01/cockpit/internal/rules"
	"github.com/jafarov01/cockpit/internal/storage"
)

// Sentinel choices below suggestion indexes in the decision select.
const (
	choiceMarkSafe    = -1
	choiceSnooze      = -2
	choiceDecideLater = -3
)

type DecideCmd struct {
	Auto bool `help:"Only open when rules are overdue and the prompt was not already dismissed today."`
}

// Run drives the decision workflow: one overdue rule at a time, suggestions
// derived from the rule's action text, committed strictly sequentially.
func (c *DecideCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	snap, err := storage.LoadSnapshot(ctx.Store)
	if err != nil {
		return err
	}

	wf := rules.NewWorkflow(ctx.Store, ctx.Now)
	wf.RestoreDismissal(snap.Settings.LastDecisionPrompt)

	queue := rules.Evaluate(snap.Campaigns, snap.Exams, ctx.Now())
	if c.Auto && !wf.ShouldAutoOpen(queue) {
		return nil
	}
	if len(queue) == 0 {
		fmt.Println("Nothing to decide: no overdue rules.")
		return nil
	}

	wf.Open(queue)
	resolved := 0
	for wf.State() == rules.StateReviewing {
		tr, _ := wf.Current()
		printRuleCard(tr, wf.Remaining())

		choice, err := promptChoice(tr)
		if err != nil {
			// Aborted form (ctrl+c) behaves like Decide Later.
			choice = choiceDecideLater
		}

		switch {
		case choice >= 0:
			suggestions := rules.SuggestActions(tr)
			if err := wf.Execute(suggestions[choice]); err != nil {
				fmt.Println(errors.Format(err))
				continue // rule stays selected, user may retry
			}
			resolved++
		case choice == choiceMarkSafe:
			if err := wf.MarkSafe(); err != nil {
				fmt.Println(errors.Format(err))
				continue
			}
			resolved++
		case choice == choiceSnooze:
			days, err := promptSnoozeDays()
			if err != nil {
				continue
			}
			if err := wf.Snooze(days); err != nil {
				fmt.Println(errors.Format(err))
				continue
			}
			resolved++
		default:
			day := wf.DecideLater()
			if err := persistDismissal(ctx, day); err != nil {
				fmt.Println(errors.Format(err))
			}
			fmt.Println("Deferred. The prompt will not auto-open again today.")
		}
	}

	if resolved > 0 {
		fmt.Printf("Resolved %d rule(s).\n", resolved)
	}
	return nil
}

func printRuleCard(tr rules.TriggeredRule, remaining int) {
	fmt.Printf("\n[%s] %d rule(s) remaining\n", tr.CampaignName, remaining)
	fmt.Printf("  IF   %s\n", tr.Rule.Condition)
	fmt.Printf("  THEN %s\n", tr.Rule.Action)
	fmt.Printf("  BY   %s (%d day(s) overdue)\n", tr.Rule.Deadline, tr.DaysOverdue)
}

func promptChoice(tr rules.TriggeredRule) (int, error) {
	suggestions := rules.SuggestActions(tr)

	options := make([]huh.Option[int], 0, len(suggestions)+3)
	for i, s := range suggestions {
		options = append(options, huh.NewOption(s.Label, i))
	}
	options = append(options,
		huh.NewOption("Mark safe (condition no longer applies)", choiceMarkSafe),
		huh.NewOption("Snooze (extend the deadline)", choiceSnooze),
		huh.NewOption("Decide later", choiceDecideLater),
	)

	choice := 0
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("How do you want to resolve this rule?").
			Options(options...).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return 0, err
	}
	return choice, nil
}

func promptSnoozeDays() (int, error) {
	options := make([]huh.Option[int], 0, len(constants.SnoozeOptions))
	for _, d := range constants.SnoozeOptions {
		label := fmt.Sprintf("%d days", d)
		if d == 1 {
			label = "1 day"
		}
		options = append(options, huh.NewOption(label, d))
	}

	days := constants.DefaultSnoozeDays
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Snooze for how long?").
			Options(options...).
			Value(&days),
	))
	if err := form.Run(); err != nil {
		return 0, err
	}
	return days, nil
}

func persistDismissal(ctx *Context, day string) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	settings.LastDecisionPrompt = day
	return ctx.Store.SaveSettings(settings)
}
