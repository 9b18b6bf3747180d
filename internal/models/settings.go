package models

// Settings represents application-wide settings
type Settings struct {
	// LastDecisionPrompt records the day (YYYY-MM-DD) the user last
	// dismissed the automatic decision prompt. The prompt auto-opens at
	// most once per calendar day.
	LastDecisionPrompt string `json:"last_decision_prompt,omitempty"`
	DefaultSnoozeDays  int    `json:"default_snooze_days"`
	HeatmapDays        int    `json:"heatmap_days"`
}
