package models

type CampaignStatus string

const (
	CampaignPlanned   CampaignStatus = "planned"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignFailed    CampaignStatus = "failed"
)

type RuleStatus string

const (
	RulePending   RuleStatus = "pending"
	RuleTriggered RuleStatus = "triggered"
	RuleSafe      RuleStatus = "safe"
)

// CampaignRule is an IF/THEN/BY-deadline directive embedded in a campaign.
// Rules carry a stable generated ID so they can be addressed across edits;
// their position in the rules array is display order only.
type CampaignRule struct {
	ID        string     `json:"id"`
	Condition string     `json:"condition"`
	Action    string     `json:"action"`
	Deadline  string     `json:"deadline"` // YYYY-MM-DD format
	Status    RuleStatus `json:"status"`
}

// Campaign is a time-boxed strategic initiative grouping exams, documents
// and automation rules.
type Campaign struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Status      CampaignStatus `json:"status"`
	StartDate   string         `json:"start_date,omitempty"` // YYYY-MM-DD format
	EndDate     string         `json:"end_date,omitempty"`   // YYYY-MM-DD format
	FocusAreas  []string       `json:"focus_areas,omitempty"`
	LinkedExams []string       `json:"linked_exams,omitempty"`
	LinkedDocs  []string       `json:"linked_docs,omitempty"`
	Rules       []CampaignRule `json:"rules,omitempty"`
}

// RuleByID returns the index and rule with the given ID, or (-1, nil).
func (c *Campaign) RuleByID(id string) (int, *CampaignRule) {
	for i := range c.Rules {
		if c.Rules[i].ID == id {
			return i, &c.Rules[i]
		}
	}
	return -1, nil
}
