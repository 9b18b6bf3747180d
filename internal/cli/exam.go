package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/rules"
)

type ExamCmd struct {
	Add       ExamAddCmd       `cmd:"" help:"Add a new exam."`
	List      ExamListCmd      `cmd:"" help:"List exams."`
	SetStatus ExamSetStatusCmd `cmd:"" name:"set-status" help:"Change an exam's status."`
}

type ExamAddCmd struct {
	Name     string `arg:"" help:"Exam name."`
	CFU      int    `help:"Credit units." default:"6"`
	Status   string `help:"Initial status." default:"study_plan"`
	Date     string `help:"Exam date (YYYY-MM-DD)."`
	Critical bool   `help:"Counts toward the scholarship threshold."`
	Notes    string `help:"Strategy notes."`
}

func (c *ExamAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	status := models.ExamStatus(c.Status)
	if !models.ValidExamStatus(status) {
		return fmt.Errorf("invalid exam status: %s", c.Status)
	}

	exam := models.Exam{
		ID:                    uuid.New().String(),
		Name:                  c.Name,
		CFU:                   c.CFU,
		Status:                status,
		ExamDate:              c.Date,
		IsScholarshipCritical: c.Critical,
		StrategyNotes:         c.Notes,
	}
	if err := ctx.Store.AddExam(exam); err != nil {
		return err
	}
	fmt.Printf("Added exam: %s (%s)\n", exam.Name, exam.ID)
	return nil
}

type ExamListCmd struct{}

func (c *ExamListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	exams, err := ctx.Store.GetAllExams()
	if err != nil {
		return err
	}
	if len(exams) == 0 {
		fmt.Println("No exams.")
		return nil
	}

	campaigns, err := ctx.Store.GetAllCampaigns()
	if err != nil {
		return err
	}
	watched := make(map[string]bool)
	for _, e := range rules.ExamsWithActiveRules(campaigns, exams) {
		watched[e.ID] = true
	}

	for _, e := range exams {
		marker := " "
		if watched[e.ID] {
			marker = "!" // pending rules reference this exam
		}
		critical := ""
		if e.IsScholarshipCritical {
			critical = " [scholarship]"
		}
		fmt.Printf("%s %-36s  %-10s  %2d CFU  %s%s\n", marker, e.ID, e.Status, e.CFU, e.Name, critical)
	}
	return nil
}

type ExamSetStatusCmd struct {
	Exam   string `arg:"" help:"Exam id or name."`
	Status string `arg:"" help:"New status: study_plan, enrolled, planned, booked, passed, dropped."`
}

func (c *ExamSetStatusCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	exam, err := FindExam(ctx, c.Exam)
	if err != nil {
		return err
	}

	status := models.ExamStatus(c.Status)
	if !models.ValidExamStatus(status) {
		return fmt.Errorf("invalid exam status: %s", c.Status)
	}
	if err := ctx.Store.UpdateExamStatus(exam.ID, status); err != nil {
		return err
	}
	fmt.Printf("Exam %s is now %s\n", exam.Name, status)
	return nil
}
