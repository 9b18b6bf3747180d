package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/rules"
)

type CampaignCmd struct {
	Add  CampaignAddCmd  `cmd:"" help:"Add a new campaign."`
	List CampaignListCmd `cmd:"" help:"List campaigns."`
	Show CampaignShowCmd `cmd:"" help:"Show a campaign with its rules."`
	Rule struct {
		Add  RuleAddCmd  `cmd:"" help:"Attach an IF/THEN/BY rule to a campaign."`
		List RuleListCmd `cmd:"" help:"List a campaign's rules."`
	} `cmd:"" help:"Manage campaign rules."`
	SetStatus CampaignSetStatusCmd `cmd:"" name:"set-status" help:"Change a campaign's status."`
	Link      CampaignLinkCmd      `cmd:"" help:"Link exams or documents to a campaign."`
}

type CampaignAddCmd struct {
	Name  string `arg:"" help:"Campaign name."`
	Start string `help:"Start date (YYYY-MM-DD)."`
	End   string `help:"End date (YYYY-MM-DD)."`
	Focus string `help:"Comma-separated focus areas."`
}

func (c *CampaignAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if _, err := FindCampaign(ctx, c.Name); err == nil {
		return fmt.Errorf("campaign with name %q already exists", c.Name)
	}

	campaign := models.Campaign{
		ID:         uuid.New().String(),
		Name:       c.Name,
		Status:     models.CampaignActive,
		StartDate:  c.Start,
		EndDate:    c.End,
		FocusAreas: ParseCSV(c.Focus),
	}
	if err := ctx.Store.AddCampaign(campaign); err != nil {
		return err
	}
	fmt.Printf("Added campaign: %s (%s)\n", campaign.Name, campaign.ID)
	return nil
}

type CampaignListCmd struct{}

func (c *CampaignListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	campaigns, err := ctx.Store.GetAllCampaigns()
	if err != nil {
		return err
	}
	if len(campaigns) == 0 {
		fmt.Println("No campaigns.")
		return nil
	}
	for _, campaign := range campaigns {
		pending := 0
		for _, r := range campaign.Rules {
			if r.Status == models.RulePending {
				pending++
			}
		}
		fmt.Printf("%-36s  %-10s  %-20s  %d rule(s), %d pending\n",
			campaign.ID, campaign.Status, campaign.Name, len(campaign.Rules), pending)
	}
	return nil
}

type CampaignShowCmd struct {
	Campaign string `arg:"" help:"Campaign id or name."`
}

func (c *CampaignShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	campaign, err := FindCampaign(ctx, c.Campaign)
	if err != nil {
		return err
	}

	fmt.Printf("%s [%s]\n", campaign.Name, campaign.Status)
	if campaign.StartDate != "" || campaign.EndDate != "" {
		fmt.Printf("  window: %s – %s\n", campaign.StartDate, campaign.EndDate)
	}
	if len(campaign.FocusAreas) > 0 {
		fmt.Printf("  focus:  %s\n", strings.Join(campaign.FocusAreas, ", "))
	}
	if len(campaign.LinkedExams) > 0 {
		fmt.Printf("  exams:  %s\n", strings.Join(campaign.LinkedExams, ", "))
	}
	if len(campaign.LinkedDocs) > 0 {
		fmt.Printf("  docs:   %s\n", strings.Join(campaign.LinkedDocs, ", "))
	}
	if len(campaign.Rules) == 0 {
		fmt.Println("  no rules")
		return nil
	}
	for i, r := range campaign.Rules {
		fmt.Printf("  rule %d [%s]: IF %s THEN %s BY %s\n", i+1, r.Status, r.Condition, r.Action, r.Deadline)
	}
	return nil
}

type RuleAddCmd struct {
	Campaign  string `arg:"" help:"Campaign id or name."`
	Condition string `required:"" help:"IF: the condition being watched."`
	Action    string `required:"" help:"THEN: what to do when the deadline passes."`
	Deadline  string `required:"" help:"BY: deadline date (YYYY-MM-DD)."`
}

func (c *RuleAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	campaign, err := FindCampaign(ctx, c.Campaign)
	if err != nil {
		return err
	}

	rule := models.CampaignRule{
		ID:        uuid.New().String(),
		Condition: c.Condition,
		Action:    c.Action,
		Deadline:  c.Deadline,
		Status:    models.RulePending,
	}
	if err := ctx.Store.UpdateCampaignRules(campaign.ID, append(campaign.Rules, rule)); err != nil {
		return err
	}
	fmt.Printf("Added rule to %s: IF %s THEN %s BY %s\n", campaign.Name, rule.Condition, rule.Action, rule.Deadline)
	return nil
}

type RuleListCmd struct {
	Campaign string `arg:"" optional:"" help:"Campaign id or name; omit for all campaigns."`
}

func (c *RuleListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var campaigns []models.Campaign
	if c.Campaign != "" {
		campaign, err := FindCampaign(ctx, c.Campaign)
		if err != nil {
			return err
		}
		campaigns = []models.Campaign{campaign}
	} else {
		all, err := ctx.Store.GetAllCampaigns()
		if err != nil {
			return err
		}
		campaigns = all
	}

	exams, err := ctx.Store.GetAllExams()
	if err != nil {
		return err
	}
	overdue := make(map[string]int)
	for _, tr := range rules.Evaluate(campaigns, exams, ctx.Now()) {
		overdue[tr.Rule.ID] = tr.DaysOverdue
	}

	for _, campaign := range campaigns {
		for _, r := range campaign.Rules {
			marker := ""
			if d, ok := overdue[r.ID]; ok {
				marker = fmt.Sprintf("  << %d day(s) overdue", d)
			}
			fmt.Printf("[%s] %-9s IF %s THEN %s BY %s%s\n",
				campaign.Name, r.Status, r.Condition, r.Action, r.Deadline, marker)
		}
	}
	return nil
}

type CampaignSetStatusCmd struct {
	Campaign string `arg:"" help:"Campaign id or name."`
	Status   string `arg:"" help:"New status: planned, active, completed, failed."`
}

func (c *CampaignSetStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	campaign, err := FindCampaign(ctx, c.Campaign)
	if err != nil {
		return err
	}

	status := models.CampaignStatus(c.Status)
	switch status {
	case models.CampaignPlanned, models.CampaignActive, models.CampaignCompleted, models.CampaignFailed:
	default:
		return fmt.Errorf("invalid campaign status: %s", c.Status)
	}

	campaign.Status = status
	if err := ctx.Store.UpdateCampaign(campaign); err != nil {
		return err
	}
	fmt.Printf("Campaign %s is now %s\n", campaign.Name, status)
	return nil
}

type CampaignLinkCmd struct {
	Campaign string `arg:"" help:"Campaign id or name."`
	Exam     string `help:"Exam id or name to link."`
	Doc      string `help:"Document id to link."`
}

func (c *CampaignLinkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	campaign, err := FindCampaign(ctx, c.Campaign)
	if err != nil {
		return err
	}
	if c.Exam == "" && c.Doc == "" {
		return fmt.Errorf("nothing to link: pass --exam and/or --doc")
	}

	if c.Exam != "" {
		exam, err := FindExam(ctx, c.Exam)
		if err != nil {
			return err
		}
		if !containsString(campaign.LinkedExams, exam.ID) {
			campaign.LinkedExams = append(campaign.LinkedExams, exam.ID)
		}
	}
	if c.Doc != "" {
		doc, err := ctx.Store.GetDocument(c.Doc)
		if err != nil {
			return err
		}
		if !containsString(campaign.LinkedDocs, doc.ID) {
			campaign.LinkedDocs = append(campaign.LinkedDocs, doc.ID)
		}
	}

	if err := ctx.Store.UpdateCampaign(campaign); err != nil {
		return err
	}
	fmt.Printf("Updated links for %s\n", campaign.Name)
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
