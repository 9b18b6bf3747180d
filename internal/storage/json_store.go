package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/models"
)

// document is the on-disk shape of the JSON store: one file, one document.
type document struct {
	Version   int                               `json:"version"`
	Settings  models.Settings                   `json:"settings"`
	Campaigns map[string]models.Campaign        `json:"campaigns"`
	Exams     map[string]models.Exam            `json:"exams"`
	Skills    map[string]models.SkillDefinition `json:"skills"`
	Practice  map[string]map[string]string      `json:"practice"` // day -> skill ID -> label
	Documents map[string]models.Document        `json:"documents"`
}

// JSONStore is a single-file Provider, useful for inspection and tests.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = emptyDocument()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	ensureMaps(s.doc)
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func emptyDocument() *document {
	d := &document{Version: 1, Settings: models.Settings{
		DefaultSnoozeDays: constants.DefaultSnoozeDays,
		HeatmapDays:       constants.DefaultHeatmapDays,
	}}
	ensureMaps(d)
	return d
}

func ensureMaps(d *document) {
	if d.Campaigns == nil {
		d.Campaigns = make(map[string]models.Campaign)
	}
	if d.Exams == nil {
		d.Exams = make(map[string]models.Exam)
	}
	if d.Skills == nil {
		d.Skills = make(map[string]models.SkillDefinition)
	}
	if d.Practice == nil {
		d.Practice = make(map[string]map[string]string)
	}
	if d.Documents == nil {
		d.Documents = make(map[string]models.Document)
	}
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Settings

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

// Campaigns

func (s *JSONStore) AddCampaign(c models.Campaign) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Campaigns[c.ID] = c
	return s.save()
}

func (s *JSONStore) GetCampaign(id string) (models.Campaign, error) {
	if err := s.loaded(); err != nil {
		return models.Campaign{}, err
	}
	c, ok := s.doc.Campaigns[id]
	if !ok {
		return models.Campaign{}, fmt.Errorf("campaign not found: %s", id)
	}
	return c, nil
}

func (s *JSONStore) GetAllCampaigns() ([]models.Campaign, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Campaign, 0, len(s.doc.Campaigns))
	for _, c := range s.doc.Campaigns {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *JSONStore) UpdateCampaign(c models.Campaign) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Campaigns[c.ID]; !ok {
		return fmt.Errorf("campaign not found: %s", c.ID)
	}
	s.doc.Campaigns[c.ID] = c
	return s.save()
}

func (s *JSONStore) UpdateCampaignRules(campaignID string, rules []models.CampaignRule) error {
	if err := s.loaded(); err != nil {
		return err
	}
	c, ok := s.doc.Campaigns[campaignID]
	if !ok {
		return fmt.Errorf("campaign not found: %s", campaignID)
	}
	c.Rules = rules
	s.doc.Campaigns[campaignID] = c
	return s.save()
}

func (s *JSONStore) DeleteCampaign(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Campaigns[id]; !ok {
		return fmt.Errorf("campaign not found: %s", id)
	}
	delete(s.doc.Campaigns, id)
	return s.save()
}

// Exams

func (s *JSONStore) AddExam(e models.Exam) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Exams[e.ID] = e
	return s.save()
}

func (s *JSONStore) GetExam(id string) (models.Exam, error) {
	if err := s.loaded(); err != nil {
		return models.Exam{}, err
	}
	e, ok := s.doc.Exams[id]
	if !ok {
		return models.Exam{}, fmt.Errorf("exam not found: %s", id)
	}
	return e, nil
}

func (s *JSONStore) GetAllExams() ([]models.Exam, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Exam, 0, len(s.doc.Exams))
	for _, e := range s.doc.Exams {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *JSONStore) UpdateExam(e models.Exam) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Exams[e.ID]; !ok {
		return fmt.Errorf("exam not found: %s", e.ID)
	}
	s.doc.Exams[e.ID] = e
	return s.save()
}

func (s *JSONStore) UpdateExamStatus(id string, status models.ExamStatus) error {
	if err := s.loaded(); err != nil {
		return err
	}
	e, ok := s.doc.Exams[id]
	if !ok {
		return fmt.Errorf("exam not found: %s", id)
	}
	e.Status = status
	s.doc.Exams[id] = e
	return s.save()
}

func (s *JSONStore) DeleteExam(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Exams[id]; !ok {
		return fmt.Errorf("exam not found: %s", id)
	}
	delete(s.doc.Exams, id)
	return s.save()
}

// Skills

func (s *JSONStore) AddSkill(sk models.SkillDefinition) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Skills[sk.ID] = sk
	return s.save()
}

func (s *JSONStore) GetSkill(id string) (models.SkillDefinition, error) {
	if err := s.loaded(); err != nil {
		return models.SkillDefinition{}, err
	}
	sk, ok := s.doc.Skills[id]
	if !ok {
		return models.SkillDefinition{}, fmt.Errorf("skill not found: %s", id)
	}
	return sk, nil
}

func (s *JSONStore) GetSkillByName(name string) (models.SkillDefinition, error) {
	if err := s.loaded(); err != nil {
		return models.SkillDefinition{}, err
	}
	for _, sk := range s.doc.Skills {
		if sk.Name == name {
			return sk, nil
		}
	}
	return models.SkillDefinition{}, fmt.Errorf("skill not found: %s", name)
}

func (s *JSONStore) GetAllSkills() ([]models.SkillDefinition, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.SkillDefinition, 0, len(s.doc.Skills))
	for _, sk := range s.doc.Skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *JSONStore) UpdateSkill(sk models.SkillDefinition) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Skills[sk.ID]; !ok {
		return fmt.Errorf("skill not found: %s", sk.ID)
	}
	s.doc.Skills[sk.ID] = sk
	return s.save()
}

func (s *JSONStore) DeleteSkill(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Skills[id]; !ok {
		return fmt.Errorf("skill not found: %s", id)
	}
	delete(s.doc.Skills, id)
	return s.save()
}

// Practice log

func (s *JSONStore) LogPractice(day, skillID, label string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if s.doc.Practice[day] == nil {
		s.doc.Practice[day] = make(map[string]string)
	}
	s.doc.Practice[day][skillID] = label
	return s.save()
}

func (s *JSONStore) GetPracticeEntry(day string) (models.PracticeEntry, error) {
	if err := s.loaded(); err != nil {
		return models.PracticeEntry{}, err
	}
	entry := models.PracticeEntry{Day: day, Skills: make(map[string]string)}
	for skillID, label := range s.doc.Practice[day] {
		entry.Skills[skillID] = label
	}
	return entry, nil
}

func (s *JSONStore) GetAllPracticeEntries() ([]models.PracticeEntry, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.PracticeEntry, 0, len(s.doc.Practice))
	for day, skills := range s.doc.Practice {
		out = append(out, models.PracticeEntry{Day: day, Skills: skills})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

// Documents

func (s *JSONStore) AddDocument(d models.Document) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Documents[d.ID] = d
	return s.save()
}

func (s *JSONStore) GetDocument(id string) (models.Document, error) {
	if err := s.loaded(); err != nil {
		return models.Document{}, err
	}
	d, ok := s.doc.Documents[id]
	if !ok {
		return models.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return d, nil
}

func (s *JSONStore) GetAllDocuments() ([]models.Document, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.Document, 0, len(s.doc.Documents))
	for _, d := range s.doc.Documents {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *JSONStore) UpdateDocument(d models.Document) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Documents[d.ID]; !ok {
		return fmt.Errorf("document not found: %s", d.ID)
	}
	s.doc.Documents[d.ID] = d
	return s.save()
}

func (s *JSONStore) DeleteDocument(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if _, ok := s.doc.Documents[id]; !ok {
		return fmt.Errorf("document not found: %s", id)
	}
	delete(s.doc.Documents, id)
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}
