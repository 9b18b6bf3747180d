package rules

import (
	"fmt"
	"strings"

	"github.com/jafarov01/cockpit/internal/models"
)

// ActionKind identifies what executing a suggestion does.
type ActionKind string

const (
	// ActionDropExam sets the target exam's status to dropped.
	ActionDropExam ActionKind = "drop_exam"
	// ActionChangeStatus moves the target exam to a new status.
	ActionChangeStatus ActionKind = "change_status"
	// ActionManual resolves the rule without touching any exam.
	ActionManual ActionKind = "manual"
)

// Suggestion is one machine-executable candidate resolution for an overdue
// rule. Executing any suggestion also marks the rule triggered.
type Suggestion struct {
	Kind      ActionKind
	Label     string
	ExamID    string
	ExamName  string
	NewStatus models.ExamStatus
}

// suggester pairs a keyword predicate with a suggestion generator. The
// matchers run in declaration order; keyword matching against free text is
// a heuristic, never a classifier, so the manual fallback is always
// appended regardless of what matched.
type suggester struct {
	match    func(action string) bool
	generate func(tr TriggeredRule) []Suggestion
}

func contains(substr string) func(string) bool {
	return func(action string) bool { return strings.Contains(action, substr) }
}

func statusChange(target models.ExamStatus, verb string) func(tr TriggeredRule) []Suggestion {
	return func(tr TriggeredRule) []Suggestion {
		var out []Suggestion
		for _, e := range tr.LinkedExams {
			if e.Status == target {
				continue // already in the target state, nothing to do
			}
			kind := ActionChangeStatus
			if target == models.ExamDropped {
				kind = ActionDropExam
			}
			out = append(out, Suggestion{
				Kind:      kind,
				Label:     fmt.Sprintf("%s %q (change status to %s)", verb, e.Name, target),
				ExamID:    e.ID,
				ExamName:  e.Name,
				NewStatus: target,
			})
		}
		return out
	}
}

var defaultSuggesters = []suggester{
	{contains("drop"), statusChange(models.ExamDropped, "Drop")},
	// "book" is checked before "enroll" and wins when both appear.
	{contains("book"), statusChange(models.ExamBooked, "Book")},
	{func(a string) bool { return strings.Contains(a, "enroll") && !strings.Contains(a, "book") },
		statusChange(models.ExamEnrolled, "Enroll")},
}

// SuggestActions derives candidate resolutions from the rule's free-text
// action field, case-insensitively. Unparseable action text yields only the
// manual fallback.
func SuggestActions(tr TriggeredRule) []Suggestion {
	action := strings.ToLower(tr.Rule.Action)

	var out []Suggestion
	for _, s := range defaultSuggesters {
		if s.match(action) {
			out = append(out, s.generate(tr)...)
		}
	}
	out = append(out, Suggestion{
		Kind:  ActionManual,
		Label: "Handle manually (mark rule as triggered)",
	})
	return out
}
