package storage

import "github.com/jafarov01/cockpit/internal/models"

// Provider is the persistence boundary. Implementations must keep each
// write atomic at the document level: one campaign row (rules included),
// one exam, one practice cell. Nothing above this interface holds locks.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Campaigns. Rules live inside the campaign and are written as a whole
	// array; UpdateCampaignRules is the only rule mutation path.
	AddCampaign(models.Campaign) error
	GetCampaign(id string) (models.Campaign, error)
	GetAllCampaigns() ([]models.Campaign, error)
	UpdateCampaign(models.Campaign) error
	UpdateCampaignRules(campaignID string, rules []models.CampaignRule) error
	DeleteCampaign(id string) error

	// Exams
	AddExam(models.Exam) error
	GetExam(id string) (models.Exam, error)
	GetAllExams() ([]models.Exam, error)
	UpdateExam(models.Exam) error
	UpdateExamStatus(id string, status models.ExamStatus) error
	DeleteExam(id string) error

	// Skill definitions
	AddSkill(models.SkillDefinition) error
	GetSkill(id string) (models.SkillDefinition, error)
	GetSkillByName(name string) (models.SkillDefinition, error)
	GetAllSkills() ([]models.SkillDefinition, error)
	UpdateSkill(models.SkillDefinition) error
	DeleteSkill(id string) error

	// Practice log. Entries are sparse per (day, skill); logging the zero
	// option is allowed and recorded as-is.
	LogPractice(day, skillID, label string) error
	GetPracticeEntry(day string) (models.PracticeEntry, error)
	GetAllPracticeEntries() ([]models.PracticeEntry, error)

	// Documents
	AddDocument(models.Document) error
	GetDocument(id string) (models.Document, error)
	GetAllDocuments() ([]models.Document, error)
	UpdateDocument(models.Document) error
	DeleteDocument(id string) error

	// Utils
	GetConfigPath() string
}
