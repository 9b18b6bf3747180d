package validation

import (
	"strings"
	"testing"

	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/storage"
)

func conflictsMentioning(conflicts []Conflict, substr string) []Conflict {
	var out []Conflict
	for _, c := range conflicts {
		if strings.Contains(c.String(), substr) {
			out = append(out, c)
		}
	}
	return out
}

func TestCheckSnapshot_CleanDataHasNoConflicts(t *testing.T) {
	snap := storage.Snapshot{
		Campaigns: []models.Campaign{{
			ID: "c1", Name: "Graduate",
			StartDate: "2026-01-01", EndDate: "2026-12-31",
			LinkedExams: []string{"e1"},
			Rules:       []models.CampaignRule{{ID: "r1", Deadline: "2026-03-01"}},
		}},
		Exams:  []models.Exam{{ID: "e1", Name: "Databases"}},
		Skills: []models.SkillDefinition{{ID: "s1", Name: "Guitar", TrackingOptions: []string{"30 mins"}}},
		Practice: []models.PracticeEntry{
			{Day: "2026-03-05", Skills: map[string]string{"s1": "30 mins"}},
		},
		Documents: []models.Document{{ID: "d1", Name: "Permit", Expiry: "2027-01-01"}},
	}

	if conflicts := CheckSnapshot(snap); len(conflicts) != 0 {
		t.Errorf("expected no conflicts, got %+v", conflicts)
	}
}

func TestCheckSnapshot_UndatedCampaignIsValid(t *testing.T) {
	// Campaigns may omit both dates entirely; doctor must not flag them.
	snap := storage.Snapshot{
		Campaigns: []models.Campaign{
			{ID: "c1", Name: "Open Ended"},
			{ID: "c2", Name: "Start Only", StartDate: "2026-01-01"},
			{ID: "c3", Name: "End Only", EndDate: "2026-12-31"},
		},
	}

	if conflicts := CheckSnapshot(snap); len(conflicts) != 0 {
		t.Errorf("expected no conflicts for undated campaigns, got %+v", conflicts)
	}
}

func TestCheckSnapshot_CampaignDateProblems(t *testing.T) {
	snap := storage.Snapshot{
		Campaigns: []models.Campaign{
			{ID: "c1", Name: "BadDates", StartDate: "soon", EndDate: "2026-12-31"},
			{ID: "c2", Name: "Inverted", StartDate: "2026-12-31", EndDate: "2026-01-01"},
		},
	}

	conflicts := CheckSnapshot(snap)

	if len(conflictsMentioning(conflicts, "unparseable start date")) != 1 {
		t.Errorf("expected one unparseable start date conflict, got %+v", conflicts)
	}
	if len(conflictsMentioning(conflicts, "precedes start date")) != 1 {
		t.Errorf("expected one inverted range conflict, got %+v", conflicts)
	}
}

func TestCheckSnapshot_DanglingReferences(t *testing.T) {
	snap := storage.Snapshot{
		Campaigns: []models.Campaign{{
			ID: "c1", Name: "Graduate",
			StartDate: "2026-01-01", EndDate: "2026-12-31",
			LinkedExams: []string{"ghost-exam"},
			LinkedDocs:  []string{"ghost-doc"},
		}},
	}

	conflicts := CheckSnapshot(snap)

	if len(conflictsMentioning(conflicts, "linked exam ghost-exam")) != 1 {
		t.Errorf("expected dangling exam conflict, got %+v", conflicts)
	}
	if len(conflictsMentioning(conflicts, "linked document ghost-doc")) != 1 {
		t.Errorf("expected dangling document conflict, got %+v", conflicts)
	}
}

func TestCheckSnapshot_SilentRuleDeadline(t *testing.T) {
	snap := storage.Snapshot{
		Campaigns: []models.Campaign{{
			ID: "c1", Name: "Graduate",
			StartDate: "2026-01-01", EndDate: "2026-12-31",
			Rules: []models.CampaignRule{{ID: "r1", Deadline: "next week"}},
		}},
	}

	conflicts := CheckSnapshot(snap)

	found := conflictsMentioning(conflicts, "will never trigger")
	if len(found) != 1 {
		t.Fatalf("expected the silent-rule warning, got %+v", conflicts)
	}
	if found[0].Severity != SeverityWarning {
		t.Errorf("expected a warning, got %s", found[0].Severity)
	}
}

func TestCheckSnapshot_SkillProblems(t *testing.T) {
	snap := storage.Snapshot{
		Skills: []models.SkillDefinition{
			{ID: "s1", Name: "Guitar", TrackingOptions: []string{"30 mins"}},
			{ID: "s2", Name: "guitar", TrackingOptions: []string{"30 mins"}},
			{ID: "s3", Name: "Piano"},
			{ID: "s4", Name: "Bass", TrackingOptions: []string{"30 mins"}, TargetPerDay: "whenever"},
		},
	}

	conflicts := CheckSnapshot(snap)

	if len(conflictsMentioning(conflicts, "duplicate name")) != 1 {
		t.Errorf("expected duplicate-name conflict, got %+v", conflicts)
	}
	if len(conflictsMentioning(conflicts, "no tracking options")) != 1 {
		t.Errorf("expected missing-options conflict, got %+v", conflicts)
	}
	if len(conflictsMentioning(conflicts, "parses to zero")) != 1 {
		t.Errorf("expected zero-target conflict, got %+v", conflicts)
	}
}

func TestCheckSnapshot_OrphanPractice(t *testing.T) {
	snap := storage.Snapshot{
		Skills: []models.SkillDefinition{{ID: "s1", Name: "Guitar", TrackingOptions: []string{"30 mins"}}},
		Practice: []models.PracticeEntry{
			{Day: "2026-03-05", Skills: map[string]string{"deleted-skill": "30 mins"}},
			{Day: "not-a-day", Skills: map[string]string{"s1": "30 mins"}},
		},
	}

	conflicts := CheckSnapshot(snap)

	if len(conflictsMentioning(conflicts, "unknown skill deleted-skill")) != 1 {
		t.Errorf("expected orphan practice conflict, got %+v", conflicts)
	}
	if len(conflictsMentioning(conflicts, "unparseable day")) != 1 {
		t.Errorf("expected unparseable day conflict, got %+v", conflicts)
	}
}
