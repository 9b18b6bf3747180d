package models

type ExamStatus string

const (
	ExamStudyPlan ExamStatus = "study_plan"
	ExamEnrolled  ExamStatus = "enrolled"
	ExamPlanned   ExamStatus = "planned"
	ExamBooked    ExamStatus = "booked"
	ExamPassed    ExamStatus = "passed"
	ExamDropped   ExamStatus = "dropped"
)

// ValidExamStatus reports whether s is a known exam status.
func ValidExamStatus(s ExamStatus) bool {
	switch s {
	case ExamStudyPlan, ExamEnrolled, ExamPlanned, ExamBooked, ExamPassed, ExamDropped:
		return true
	}
	return false
}

// Exam is an academic unit counted toward degree and scholarship progress.
type Exam struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	CFU                   int        `json:"cfu"`
	Status                ExamStatus `json:"status"`
	ExamDate              string     `json:"exam_date,omitempty"` // YYYY-MM-DD format
	IsScholarshipCritical bool       `json:"is_scholarship_critical"`
	StrategyNotes         string     `json:"strategy_notes,omitempty"`
}
