// Package validation performs cross-record integrity checks over a full
// storage snapshot: dangling references, unparseable dates, duplicate
// names. Conflicts are advisory; nothing here blocks a write.
package validation

import (
	"fmt"
	"strings"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/scoring"
	"github.com/jafarov01/cockpit/internal/storage"
	"github.com/jafarov01/cockpit/internal/utils"
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Conflict is one detected integrity problem.
type Conflict struct {
	Severity Severity
	Entity   string // e.g. `campaign "Graduate"`
	Message  string
}

func (c Conflict) String() string {
	return fmt.Sprintf("[%s] %s: %s", c.Severity, c.Entity, c.Message)
}

// CheckSnapshot runs every check over the snapshot and returns the
// conflicts found, grouped by entity kind in a stable order.
func CheckSnapshot(snap storage.Snapshot) []Conflict {
	var out []Conflict
	out = append(out, checkCampaigns(snap)...)
	out = append(out, checkDocuments(snap.Documents)...)
	out = append(out, checkSkills(snap.Skills)...)
	out = append(out, checkPractice(snap)...)
	return out
}

func checkCampaigns(snap storage.Snapshot) []Conflict {
	examIDs := make(map[string]bool, len(snap.Exams))
	for _, e := range snap.Exams {
		examIDs[e.ID] = true
	}
	docIDs := make(map[string]bool, len(snap.Documents))
	for _, d := range snap.Documents {
		docIDs[d.ID] = true
	}

	var out []Conflict
	for _, c := range snap.Campaigns {
		entity := fmt.Sprintf("campaign %q", c.Name)

		// Dates are optional on campaigns; only flag values that are
		// present but unparseable.
		start, errS := utils.ParseDay(c.StartDate)
		end, errE := utils.ParseDay(c.EndDate)
		if c.StartDate != "" && errS != nil {
			out = append(out, Conflict{SeverityError, entity, fmt.Sprintf("unparseable start date %q", c.StartDate)})
		}
		if c.EndDate != "" && errE != nil {
			out = append(out, Conflict{SeverityError, entity, fmt.Sprintf("unparseable end date %q", c.EndDate)})
		}
		if errS == nil && errE == nil && end.Before(start) {
			out = append(out, Conflict{SeverityError, entity, fmt.Sprintf("end date %s precedes start date %s", c.EndDate, c.StartDate)})
		}

		for _, id := range c.LinkedExams {
			if !examIDs[id] {
				out = append(out, Conflict{SeverityWarning, entity, fmt.Sprintf("linked exam %s does not exist", id)})
			}
		}
		for _, id := range c.LinkedDocs {
			if !docIDs[id] {
				out = append(out, Conflict{SeverityWarning, entity, fmt.Sprintf("linked document %s does not exist", id)})
			}
		}

		for i, r := range c.Rules {
			if _, err := utils.ParseDay(r.Deadline); err != nil {
				out = append(out, Conflict{SeverityWarning, entity,
					fmt.Sprintf("rule %d has unparseable deadline %q and will never trigger", i+1, r.Deadline)})
			}
		}
	}
	return out
}

func checkDocuments(docs []models.Document) []Conflict {
	var out []Conflict
	for _, d := range docs {
		if d.Expiry == "" {
			continue
		}
		if _, err := utils.ParseDay(d.Expiry); err != nil {
			out = append(out, Conflict{SeverityWarning, fmt.Sprintf("document %q", d.Name),
				fmt.Sprintf("unparseable expiry %q", d.Expiry)})
		}
	}
	return out
}

func checkSkills(skills []models.SkillDefinition) []Conflict {
	var out []Conflict
	seen := make(map[string]string, len(skills))
	for _, s := range skills {
		entity := fmt.Sprintf("skill %q", s.Name)

		lower := strings.ToLower(s.Name)
		if other, dup := seen[lower]; dup {
			out = append(out, Conflict{SeverityWarning, entity, fmt.Sprintf("duplicate name also used by skill %s", other)})
		} else {
			seen[lower] = s.ID
		}

		if len(s.TrackingOptions) == 0 {
			out = append(out, Conflict{SeverityWarning, entity, "no tracking options; practice cannot be logged"})
		}
		if s.TargetPerDay != "" && scoring.ParseDurationLabel(s.TargetPerDay) <= 0 {
			out = append(out, Conflict{SeverityWarning, entity,
				fmt.Sprintf("daily target %q parses to zero minutes", s.TargetPerDay)})
		}
	}
	return out
}

func checkPractice(snap storage.Snapshot) []Conflict {
	skillIDs := make(map[string]bool, len(snap.Skills))
	for _, s := range snap.Skills {
		skillIDs[s.ID] = true
	}

	var out []Conflict
	for _, e := range snap.Practice {
		if _, err := utils.ParseDay(e.Day); err != nil {
			out = append(out, Conflict{SeverityWarning, fmt.Sprintf("practice entry %q", e.Day), "unparseable day"})
			continue
		}
		for skillID := range e.Skills {
			if !skillIDs[skillID] {
				out = append(out, Conflict{SeverityWarning, fmt.Sprintf("practice entry %q", e.Day),
					fmt.Sprintf("references unknown skill %s", skillID)})
			}
		}
	}
	return out
}
