package rules

import (
	"testing"

	"github.com/jafarov01/cockpit/internal/models"
)

func TestSuggestActions_DropKeyword(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "Drop Analysis II and focus on thesis"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Analysis II", Status: models.ExamEnrolled},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 2 {
		t.Fatalf("expected drop suggestion + manual fallback, got %d: %+v", len(out), out)
	}
	if out[0].Kind != ActionDropExam || out[0].NewStatus != models.ExamDropped || out[0].ExamID != "e1" {
		t.Errorf("unexpected drop suggestion: %+v", out[0])
	}
	if out[1].Kind != ActionManual {
		t.Errorf("expected manual fallback last, got %+v", out[1])
	}
}

func TestSuggestActions_BookWinsOverEnroll(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "Enroll and book the Databases exam"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Databases", Status: models.ExamStudyPlan},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 2 {
		t.Fatalf("expected one booking suggestion + manual fallback, got %d: %+v", len(out), out)
	}
	if out[0].Kind != ActionChangeStatus || out[0].NewStatus != models.ExamBooked {
		t.Errorf("expected a booked status change, got %+v", out[0])
	}
}

func TestSuggestActions_EnrollWithoutBook(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "Enroll in Databases"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Databases", Status: models.ExamStudyPlan},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 2 || out[0].NewStatus != models.ExamEnrolled {
		t.Fatalf("expected an enrolled status change, got %+v", out)
	}
}

func TestSuggestActions_SkipsExamsAlreadyInTargetState(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "Drop everything"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Already Gone", Status: models.ExamDropped},
			{ID: "e2", Name: "Still Here", Status: models.ExamEnrolled},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 2 {
		t.Fatalf("expected one drop suggestion + fallback, got %d: %+v", len(out), out)
	}
	if out[0].ExamID != "e2" {
		t.Errorf("expected suggestion for e2 only, got %+v", out[0])
	}
}

func TestSuggestActions_UnrecognizedActionYieldsOnlyManual(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "Talk to the thesis advisor"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Databases", Status: models.ExamEnrolled},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 1 || out[0].Kind != ActionManual {
		t.Fatalf("expected only the manual fallback, got %+v", out)
	}
}

func TestSuggestActions_CaseInsensitive(t *testing.T) {
	tr := TriggeredRule{
		Rule: models.CampaignRule{Action: "DROP Analysis II"},
		LinkedExams: []models.Exam{
			{ID: "e1", Name: "Analysis II", Status: models.ExamEnrolled},
		},
	}

	out := SuggestActions(tr)

	if len(out) != 2 || out[0].Kind != ActionDropExam {
		t.Fatalf("keyword match must be case-insensitive, got %+v", out)
	}
}
