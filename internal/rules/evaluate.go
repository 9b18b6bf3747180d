// Package rules implements the strategic rule engine: evaluating which
// campaign rules have passed their deadline without resolution, deriving
// the global status light, and driving the guided decision workflow that
// resolves overdue rules one at a time.
package rules

import (
	"sort"
	"time"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/utils"
)

// Status is the dashboard's top-level traffic light.
type Status string

const (
	StatusGreen  Status = "green"
	StatusYellow Status = "yellow"
	StatusRed    Status = "red"
)

// TriggeredRule is one overdue rule awaiting a decision. It is derived on
// every evaluation and never persisted.
type TriggeredRule struct {
	CampaignID   string
	CampaignName string
	RuleIndex    int
	Rule         models.CampaignRule
	LinkedExams  []models.Exam
	DaysOverdue  int
}

// Evaluate scans every rule of every campaign and returns the overdue ones:
// pending rules whose deadline date is strictly before now's calendar date.
// A rule due exactly today is not yet overdue. Rules with an unparseable
// deadline are never overdue. Linked exams are resolved to full records,
// skipping dangling ids and exams already passed.
//
// The result is ordered most urgent first: days overdue descending, then
// campaign name, then rule position.
func Evaluate(campaigns []models.Campaign, exams []models.Exam, now time.Time) []TriggeredRule {
	byID := examIndex(exams)
	today := utils.DayOf(now)

	var out []TriggeredRule
	for _, c := range campaigns {
		for i, r := range c.Rules {
			if r.Status != models.RulePending {
				continue
			}
			deadline, err := utils.ParseDay(r.Deadline)
			if err != nil {
				// Malformed deadline: treat as far future rather than fail.
				continue
			}
			if !deadline.Before(today) {
				continue
			}
			out = append(out, TriggeredRule{
				CampaignID:   c.ID,
				CampaignName: c.Name,
				RuleIndex:    i,
				Rule:         r,
				LinkedExams:  resolveExams(c.LinkedExams, byID),
				DaysOverdue:  utils.DaysBetween(deadline, today),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DaysOverdue != out[j].DaysOverdue {
			return out[i].DaysOverdue > out[j].DaysOverdue
		}
		if out[i].CampaignName != out[j].CampaignName {
			return out[i].CampaignName < out[j].CampaignName
		}
		return out[i].RuleIndex < out[j].RuleIndex
	})
	return out
}

// ExamsWithActiveRules returns the exams referenced by any pending rule of
// the active campaign(s), deduplicated. Pending includes rules that are not
// yet overdue; this feeds the "has pending rules" indicator, not the
// decision queue.
func ExamsWithActiveRules(campaigns []models.Campaign, exams []models.Exam) []models.Exam {
	byID := examIndex(exams)
	seen := make(map[string]bool)

	var out []models.Exam
	for _, c := range campaigns {
		if c.Status != models.CampaignActive {
			continue
		}
		pending := false
		for _, r := range c.Rules {
			if r.Status == models.RulePending {
				pending = true
				break
			}
		}
		if !pending {
			continue
		}
		for _, id := range c.LinkedExams {
			e, ok := byID[id]
			if !ok || seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, e)
		}
	}
	return out
}

// ActiveCampaign returns the campaign the dashboard treats as current: the
// first active campaign whose date window contains today, else the first
// active one. Returns nil when no campaign is active.
func ActiveCampaign(campaigns []models.Campaign, now time.Time) *models.Campaign {
	today := utils.DayOf(now)

	for i := range campaigns {
		c := &campaigns[i]
		if c.Status != models.CampaignActive {
			continue
		}
		start, errS := utils.ParseDay(c.StartDate)
		end, errE := utils.ParseDay(c.EndDate)
		if errS == nil && errE == nil && !today.Before(start) && !today.After(end) {
			return c
		}
	}
	for i := range campaigns {
		if campaigns[i].Status == models.CampaignActive {
			return &campaigns[i]
		}
	}
	return nil
}

// ComputeGlobalStatus derives the traffic light as a fixed priority
// cascade, first match wins: red when any critical document is expired or
// of unknown status, yellow when the active campaign carries a triggered
// rule, green otherwise.
func ComputeGlobalStatus(documents []models.Document, campaigns []models.Campaign, now time.Time) Status {
	today := utils.DayOf(now)

	for _, d := range documents {
		if !d.IsCritical {
			continue
		}
		if d.Status == models.DocumentExpired || d.Status == models.DocumentUnknown {
			return StatusRed
		}
		if expiry, err := utils.ParseDay(d.Expiry); err == nil && expiry.Before(today) {
			return StatusRed
		}
	}

	if active := ActiveCampaign(campaigns, now); active != nil {
		for _, r := range active.Rules {
			if r.Status == models.RuleTriggered {
				return StatusYellow
			}
		}
	}
	return StatusGreen
}

func examIndex(exams []models.Exam) map[string]models.Exam {
	byID := make(map[string]models.Exam, len(exams))
	for _, e := range exams {
		byID[e.ID] = e
	}
	return byID
}

// resolveExams maps linked exam ids to records, dropping dangling ids and
// passed exams. A passed exam cannot need a decision.
func resolveExams(ids []string, byID map[string]models.Exam) []models.Exam {
	var out []models.Exam
	for _, id := range ids {
		e, ok := byID[id]
		if !ok || e.Status == models.ExamPassed {
			continue
		}
		out = append(out, e)
	}
	return out
}
