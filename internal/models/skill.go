package models

import "time"

// SkillDefinition describes a tracked skill and the discrete duration
// options offered when logging practice for it.
type SkillDefinition struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category,omitempty"`
	TrackingOptions []string  `json:"tracking_options"` // e.g. "0 mins", "30 mins", "1 hour"
	TargetPerDay    string    `json:"target_per_day,omitempty"`
	YearsExperience float64   `json:"years_experience"`
	IsTracked       bool      `json:"is_tracked"`
	ShowOnCV        bool      `json:"show_on_cv"`
	CreatedAt       time.Time `json:"created_at"`
}

// PracticeEntry is one calendar day's practice log. Entries are sparse: a
// missing day means zero practice that day.
type PracticeEntry struct {
	Day    string            `json:"day"`    // YYYY-MM-DD format
	Skills map[string]string `json:"skills"` // skill ID -> selected tracking option label
}
