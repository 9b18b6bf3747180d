package rules

import (
	"fmt"
	"time"

	"github.com/jafarov01/cockpit/internal/logger"
	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/utils"
)

// Committer is the slice of the storage provider the decision workflow
// writes through. Each method is a single awaited commit; the workflow
// never batches or overlaps them.
type Committer interface {
	GetCampaign(id string) (models.Campaign, error)
	UpdateCampaignRules(campaignID string, rules []models.CampaignRule) error
	UpdateExamStatus(id string, status models.ExamStatus) error
}

// SessionState is the workflow's position in its linear lifecycle.
type SessionState int

const (
	StateIdle SessionState = iota
	StateReviewing
	StateClosed
)

// Workflow steps the user through a frozen queue of overdue rules, one at a
// time. The queue is snapshotted at Open and never grows mid-session; a
// failed commit leaves the current rule selected so the user can retry.
type Workflow struct {
	store Committer
	now   func() time.Time

	queue []TriggeredRule
	index int
	state SessionState

	// lastDismissed suppresses the automatic prompt: at most one auto-open
	// per calendar day.
	lastDismissed string
}

// NewWorkflow creates an idle workflow. now is injectable for tests.
func NewWorkflow(store Committer, now func() time.Time) *Workflow {
	if now == nil {
		now = time.Now
	}
	return &Workflow{store: store, now: now}
}

// RestoreDismissal seeds the per-day dismissal flag from persisted state.
func (w *Workflow) RestoreDismissal(day string) {
	w.lastDismissed = day
}

// LastDismissed returns the day the automatic prompt was last dismissed.
func (w *Workflow) LastDismissed() string {
	return w.lastDismissed
}

// ShouldAutoOpen reports whether the workflow should open without being
// asked: there is something to decide and the prompt was not already
// dismissed today.
func (w *Workflow) ShouldAutoOpen(queue []TriggeredRule) bool {
	return len(queue) > 0 && w.lastDismissed != utils.Today(w.now())
}

// Open freezes the queue and enters review. Opening an empty queue closes
// immediately.
func (w *Workflow) Open(queue []TriggeredRule) {
	w.queue = queue
	w.index = 0
	if len(queue) == 0 {
		w.state = StateClosed
		return
	}
	w.state = StateReviewing
}

// State returns the current session state.
func (w *Workflow) State() SessionState {
	return w.state
}

// Current returns the rule under review.
func (w *Workflow) Current() (TriggeredRule, bool) {
	if w.state != StateReviewing {
		return TriggeredRule{}, false
	}
	return w.queue[w.index], true
}

// Remaining returns how many rules are left in the session, including the
// current one.
func (w *Workflow) Remaining() int {
	if w.state != StateReviewing {
		return 0
	}
	return len(w.queue) - w.index
}

// Execute commits the selected suggestion for the current rule: the exam
// mutation first (if any), then the rule itself is marked triggered. Both
// writes are awaited in order. On any error the workflow does not advance.
func (w *Workflow) Execute(s Suggestion) error {
	tr, ok := w.Current()
	if !ok {
		return fmt.Errorf("no rule under review")
	}

	if s.Kind == ActionDropExam || s.Kind == ActionChangeStatus {
		if err := w.store.UpdateExamStatus(s.ExamID, s.NewStatus); err != nil {
			logger.Error("Failed to update exam status", "exam", s.ExamID, "error", err)
			return fmt.Errorf("failed to update exam status: %w", err)
		}
	}

	if err := w.patchRule(tr, func(r *models.CampaignRule) error {
		r.Status = models.RuleTriggered
		return nil
	}); err != nil {
		return err
	}

	logger.Info("Rule resolved", "campaign", tr.CampaignID, "rule", tr.Rule.ID, "action", string(s.Kind))
	w.advance()
	return nil
}

// MarkSafe resolves the current rule as safe without touching any exam.
func (w *Workflow) MarkSafe() error {
	tr, ok := w.Current()
	if !ok {
		return fmt.Errorf("no rule under review")
	}
	if err := w.patchRule(tr, func(r *models.CampaignRule) error {
		r.Status = models.RuleSafe
		return nil
	}); err != nil {
		return err
	}
	w.advance()
	return nil
}

// Snooze pushes the current rule's deadline forward by the given number of
// days. The rule stays pending, so it re-triggers later if still
// unresolved.
func (w *Workflow) Snooze(days int) error {
	if days <= 0 {
		return fmt.Errorf("snooze days must be positive")
	}
	tr, ok := w.Current()
	if !ok {
		return fmt.Errorf("no rule under review")
	}
	if err := w.patchRule(tr, func(r *models.CampaignRule) error {
		extended, err := utils.AddDays(r.Deadline, days)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: %w", r.Deadline, err)
		}
		r.Deadline = extended
		return nil
	}); err != nil {
		return err
	}
	w.advance()
	return nil
}

// DecideLater closes the session without committing anything and records
// today's dismissal so the prompt does not auto-open again until tomorrow.
// Already-committed steps stay committed. Returns the dismissal day so the
// caller can persist it.
func (w *Workflow) DecideLater() string {
	w.lastDismissed = utils.Today(w.now())
	w.state = StateClosed
	return w.lastDismissed
}

// patchRule re-reads the campaign, applies fn to the rule addressed by its
// stable ID, and writes the whole rules array back. Re-reading keeps edits
// made since the queue was frozen from being clobbered, short of the
// array-level last-write-wins the store itself imposes.
func (w *Workflow) patchRule(tr TriggeredRule, fn func(*models.CampaignRule) error) error {
	campaign, err := w.store.GetCampaign(tr.CampaignID)
	if err != nil {
		return fmt.Errorf("failed to load campaign: %w", err)
	}
	_, rule := campaign.RuleByID(tr.Rule.ID)
	if rule == nil {
		return fmt.Errorf("rule %s no longer exists in campaign %s", tr.Rule.ID, tr.CampaignID)
	}
	if err := fn(rule); err != nil {
		return err
	}
	if err := w.store.UpdateCampaignRules(campaign.ID, campaign.Rules); err != nil {
		logger.Error("Failed to update campaign rules", "campaign", campaign.ID, "error", err)
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return nil
}

func (w *Workflow) advance() {
	w.index++
	if w.index >= len(w.queue) {
		w.state = StateClosed
	}
}
