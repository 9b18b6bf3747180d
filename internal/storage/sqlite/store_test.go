package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jafarov01/cockpit/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "cockpit.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_InitSeedsDefaultsAndSchemaVersion(t *testing.T) {
	store := newTestStore(t)

	v, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if v != 1 {
		t.Errorf("expected schema version 1, got %d", v)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.DefaultSnoozeDays <= 0 || settings.HeatmapDays <= 0 {
		t.Errorf("expected seeded defaults, got %+v", settings)
	}
}

func TestStore_LoadWithoutInitFails(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected Load to fail for uninitialized storage")
	}
}

func TestStore_CampaignRoundTrip(t *testing.T) {
	store := newTestStore(t)
	campaign := models.Campaign{
		ID:          "c1",
		Name:        "Graduate",
		Status:      models.CampaignActive,
		StartDate:   "2026-01-01",
		EndDate:     "2026-12-31",
		FocusAreas:  []string{"thesis", "exams"},
		LinkedExams: []string{"e1", "e2"},
		Rules: []models.CampaignRule{
			{ID: "r1", Condition: "not passed", Action: "drop it", Deadline: "2026-03-01", Status: models.RulePending},
		},
	}

	if err := store.AddCampaign(campaign); err != nil {
		t.Fatalf("AddCampaign failed: %v", err)
	}
	got, err := store.GetCampaign("c1")
	if err != nil {
		t.Fatalf("GetCampaign failed: %v", err)
	}

	if got.Name != "Graduate" || got.Status != models.CampaignActive {
		t.Errorf("unexpected campaign: %+v", got)
	}
	if len(got.FocusAreas) != 2 || got.FocusAreas[0] != "thesis" {
		t.Errorf("focus areas did not round-trip: %+v", got.FocusAreas)
	}
	if len(got.LinkedExams) != 2 || got.LinkedExams[1] != "e2" {
		t.Errorf("linked exams did not round-trip: %+v", got.LinkedExams)
	}
	if len(got.Rules) != 1 || got.Rules[0].Deadline != "2026-03-01" {
		t.Errorf("rules did not round-trip: %+v", got.Rules)
	}
}

func TestStore_UpdateCampaignRules(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddCampaign(models.Campaign{ID: "c1", Name: "Graduate", Status: models.CampaignActive}); err != nil {
		t.Fatalf("AddCampaign failed: %v", err)
	}

	rules := []models.CampaignRule{
		{ID: "r1", Deadline: "2026-03-01", Status: models.RuleTriggered},
	}
	if err := store.UpdateCampaignRules("c1", rules); err != nil {
		t.Fatalf("UpdateCampaignRules failed: %v", err)
	}

	got, err := store.GetCampaign("c1")
	if err != nil {
		t.Fatalf("GetCampaign failed: %v", err)
	}
	if len(got.Rules) != 1 || got.Rules[0].Status != models.RuleTriggered {
		t.Errorf("rules were not replaced: %+v", got.Rules)
	}

	if err := store.UpdateCampaignRules("ghost", rules); err == nil {
		t.Error("expected error for unknown campaign")
	}
}

func TestStore_ExamStatusUpdate(t *testing.T) {
	store := newTestStore(t)
	exam := models.Exam{
		ID: "e1", Name: "Databases", CFU: 9,
		Status: models.ExamStudyPlan, IsScholarshipCritical: true,
	}
	if err := store.AddExam(exam); err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}

	if err := store.UpdateExamStatus("e1", models.ExamBooked); err != nil {
		t.Fatalf("UpdateExamStatus failed: %v", err)
	}

	got, err := store.GetExam("e1")
	if err != nil {
		t.Fatalf("GetExam failed: %v", err)
	}
	if got.Status != models.ExamBooked {
		t.Errorf("expected booked, got %s", got.Status)
	}
	if !got.IsScholarshipCritical || got.CFU != 9 {
		t.Errorf("other fields must be untouched: %+v", got)
	}
}

func TestStore_PracticeUpsertAndGrouping(t *testing.T) {
	store := newTestStore(t)

	if err := store.LogPractice("2026-03-05", "s1", "15 mins"); err != nil {
		t.Fatalf("LogPractice failed: %v", err)
	}
	// Same cell again: upsert, not a second row.
	if err := store.LogPractice("2026-03-05", "s1", "1 hour"); err != nil {
		t.Fatalf("upsert LogPractice failed: %v", err)
	}
	if err := store.LogPractice("2026-03-05", "s2", "30 mins"); err != nil {
		t.Fatalf("LogPractice failed: %v", err)
	}
	if err := store.LogPractice("2026-03-04", "s1", "30 mins"); err != nil {
		t.Fatalf("LogPractice failed: %v", err)
	}

	entries, err := store.GetAllPracticeEntries()
	if err != nil {
		t.Fatalf("GetAllPracticeEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 day entries, got %d", len(entries))
	}

	byDay := make(map[string]models.PracticeEntry)
	for _, e := range entries {
		byDay[e.Day] = e
	}
	if byDay["2026-03-05"].Skills["s1"] != "1 hour" {
		t.Errorf("upsert did not overwrite: %+v", byDay["2026-03-05"].Skills)
	}
	if len(byDay["2026-03-05"].Skills) != 2 {
		t.Errorf("expected 2 skills on 2026-03-05, got %+v", byDay["2026-03-05"].Skills)
	}
}

func TestStore_SkillRoundTrip(t *testing.T) {
	store := newTestStore(t)
	skill := models.SkillDefinition{
		ID:              "s1",
		Name:            "Guitar",
		Category:        "music",
		TrackingOptions: []string{"0 mins", "30 mins", "1 hour"},
		TargetPerDay:    "30 mins",
		YearsExperience: 1.5,
		IsTracked:       true,
		ShowOnCV:        true,
		CreatedAt:       time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := store.AddSkill(skill); err != nil {
		t.Fatalf("AddSkill failed: %v", err)
	}

	got, err := store.GetSkillByName("Guitar")
	if err != nil {
		t.Fatalf("GetSkillByName failed: %v", err)
	}
	if got.ID != "s1" || len(got.TrackingOptions) != 3 || got.YearsExperience != 1.5 {
		t.Errorf("skill did not round-trip: %+v", got)
	}
	if !got.CreatedAt.Equal(skill.CreatedAt) {
		t.Errorf("created_at did not round-trip: %v != %v", got.CreatedAt, skill.CreatedAt)
	}
}

func TestStore_SettingsSingleRow(t *testing.T) {
	store := newTestStore(t)

	s := models.Settings{LastDecisionPrompt: "2026-03-05", DefaultSnoozeDays: 7, HeatmapDays: 90}
	if err := store.SaveSettings(s); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}
	// Save again: the single row is replaced, not duplicated.
	s.DefaultSnoozeDays = 1
	if err := store.SaveSettings(s); err != nil {
		t.Fatalf("second SaveSettings failed: %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if got.DefaultSnoozeDays != 1 || got.LastDecisionPrompt != "2026-03-05" {
		t.Errorf("unexpected settings: %+v", got)
	}
}

func TestStore_ReopenExistingDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cockpit.db")

	store := NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := store.AddDocument(models.Document{ID: "d1", Name: "Permit", Status: models.DocumentValid, IsCritical: true}); err != nil {
		t.Fatalf("AddDocument failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetDocument("d1")
	if err != nil {
		t.Fatalf("GetDocument failed: %v", err)
	}
	if got.Name != "Permit" || !got.IsCritical {
		t.Errorf("document did not survive reopen: %+v", got)
	}
}
