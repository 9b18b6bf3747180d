package storage

import (
	"path/filepath"
	"testing"

	"github.com/jafarov01/cockpit/internal/models"
)

func newTestStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "cockpit.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestJSONStore_InitTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cockpit.json")
	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := store.Init(); err == nil {
		t.Error("expected second Init to fail on existing storage")
	}
}

func TestJSONStore_LoadWithoutInitFails(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for uninitialized storage")
	}
}

func TestJSONStore_CampaignRulesSurviveReload(t *testing.T) {
	store := newTestStore(t)
	campaign := models.Campaign{
		ID:     "c1",
		Name:   "Graduate",
		Status: models.CampaignActive,
		Rules: []models.CampaignRule{
			{ID: "r1", Condition: "not passed", Action: "drop it", Deadline: "2026-03-01", Status: models.RulePending},
		},
	}
	if err := store.AddCampaign(campaign); err != nil {
		t.Fatalf("AddCampaign failed: %v", err)
	}

	// Mutate the rules array through the dedicated path.
	campaign.Rules[0].Status = models.RuleTriggered
	if err := store.UpdateCampaignRules("c1", campaign.Rules); err != nil {
		t.Fatalf("UpdateCampaignRules failed: %v", err)
	}

	// Reload from disk into a fresh store.
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got, err := reloaded.GetCampaign("c1")
	if err != nil {
		t.Fatalf("GetCampaign failed: %v", err)
	}
	if len(got.Rules) != 1 || got.Rules[0].Status != models.RuleTriggered {
		t.Errorf("rule mutation did not survive reload: %+v", got.Rules)
	}
}

func TestJSONStore_UpdateExamStatus(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddExam(models.Exam{ID: "e1", Name: "Databases", Status: models.ExamStudyPlan}); err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}

	if err := store.UpdateExamStatus("e1", models.ExamBooked); err != nil {
		t.Fatalf("UpdateExamStatus failed: %v", err)
	}

	e, err := store.GetExam("e1")
	if err != nil {
		t.Fatalf("GetExam failed: %v", err)
	}
	if e.Status != models.ExamBooked {
		t.Errorf("expected booked, got %s", e.Status)
	}

	if err := store.UpdateExamStatus("ghost", models.ExamBooked); err == nil {
		t.Error("expected error for unknown exam")
	}
}

func TestJSONStore_PracticeUpsert(t *testing.T) {
	store := newTestStore(t)

	if err := store.LogPractice("2026-03-05", "s1", "15 mins"); err != nil {
		t.Fatalf("LogPractice failed: %v", err)
	}
	// Logging the same cell again overwrites.
	if err := store.LogPractice("2026-03-05", "s1", "1 hour"); err != nil {
		t.Fatalf("second LogPractice failed: %v", err)
	}
	if err := store.LogPractice("2026-03-05", "s2", "30 mins"); err != nil {
		t.Fatalf("LogPractice for second skill failed: %v", err)
	}

	entry, err := store.GetPracticeEntry("2026-03-05")
	if err != nil {
		t.Fatalf("GetPracticeEntry failed: %v", err)
	}
	if entry.Skills["s1"] != "1 hour" || entry.Skills["s2"] != "30 mins" {
		t.Errorf("unexpected entry: %+v", entry.Skills)
	}

	// A day with no entries reads as empty, not an error.
	empty, err := store.GetPracticeEntry("2026-03-06")
	if err != nil {
		t.Fatalf("GetPracticeEntry for empty day failed: %v", err)
	}
	if len(empty.Skills) != 0 {
		t.Errorf("expected empty entry, got %+v", empty.Skills)
	}
}

func TestJSONStore_ListOutputsAreSorted(t *testing.T) {
	store := newTestStore(t)
	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if err := store.AddExam(models.Exam{ID: name, Name: name}); err != nil {
			t.Fatalf("AddExam failed: %v", err)
		}
	}

	exams, err := store.GetAllExams()
	if err != nil {
		t.Fatalf("GetAllExams failed: %v", err)
	}
	for i := 1; i < len(exams); i++ {
		if exams[i-1].Name > exams[i].Name {
			t.Fatalf("exams not sorted by name: %+v", exams)
		}
	}
}

func TestJSONStore_DefaultSettingsSeeded(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DefaultSnoozeDays <= 0 || settings.HeatmapDays <= 0 {
		t.Errorf("expected seeded defaults, got %+v", settings)
	}
}
