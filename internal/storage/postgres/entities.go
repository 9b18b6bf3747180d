package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jafarov01/cockpit/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func requireRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

// Campaigns

func (s *Store) AddCampaign(c models.Campaign) error {
	rules, focus, exams, docs, err := encodeCampaignFields(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO campaigns (id, name, status, start_date, end_date, focus_areas, linked_exams, linked_docs, rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.Name, string(c.Status), c.StartDate, c.EndDate, focus, exams, docs, rules)
	return err
}

func (s *Store) GetCampaign(id string) (models.Campaign, error) {
	row := s.db.QueryRow(`
		SELECT id, name, status, start_date, end_date, focus_areas, linked_exams, linked_docs, rules
		FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return models.Campaign{}, fmt.Errorf("campaign not found: %s", id)
	}
	return c, err
}

func (s *Store) GetAllCampaigns() ([]models.Campaign, error) {
	rows, err := s.db.Query(`
		SELECT id, name, status, start_date, end_date, focus_areas, linked_exams, linked_docs, rules
		FROM campaigns ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCampaign(c models.Campaign) error {
	rules, focus, exams, docs, err := encodeCampaignFields(c)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`
		UPDATE campaigns
		SET name = $1, status = $2, start_date = $3, end_date = $4, focus_areas = $5, linked_exams = $6, linked_docs = $7, rules = $8
		WHERE id = $9`,
		c.Name, string(c.Status), c.StartDate, c.EndDate, focus, exams, docs, rules, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "campaign", c.ID)
}

func (s *Store) UpdateCampaignRules(campaignID string, rules []models.CampaignRule) error {
	encoded, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	res, err := s.db.Exec("UPDATE campaigns SET rules = $1 WHERE id = $2", string(encoded), campaignID)
	if err != nil {
		return err
	}
	return requireRow(res, "campaign", campaignID)
}

func (s *Store) DeleteCampaign(id string) error {
	res, err := s.db.Exec("DELETE FROM campaigns WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "campaign", id)
}

func scanCampaign(row rowScanner) (models.Campaign, error) {
	var c models.Campaign
	var status string
	var startDate, endDate sql.NullString
	var focus, exams, docs, rules []byte

	if err := row.Scan(&c.ID, &c.Name, &status, &startDate, &endDate, &focus, &exams, &docs, &rules); err != nil {
		return models.Campaign{}, err
	}
	c.Status = models.CampaignStatus(status)
	c.StartDate = startDate.String
	c.EndDate = endDate.String

	for _, f := range []struct {
		raw  []byte
		dest any
	}{
		{focus, &c.FocusAreas},
		{exams, &c.LinkedExams},
		{docs, &c.LinkedDocs},
		{rules, &c.Rules},
	} {
		if err := json.Unmarshal(f.raw, f.dest); err != nil {
			return models.Campaign{}, fmt.Errorf("failed to decode campaign %s: %w", c.ID, err)
		}
	}
	return c, nil
}

func encodeCampaignFields(c models.Campaign) (rules, focus, exams, docs []byte, err error) {
	if c.Rules == nil {
		c.Rules = []models.CampaignRule{}
	}
	if rules, err = json.Marshal(c.Rules); err != nil {
		return
	}
	if focus, err = json.Marshal(emptyIfNil(c.FocusAreas)); err != nil {
		return
	}
	if exams, err = json.Marshal(emptyIfNil(c.LinkedExams)); err != nil {
		return
	}
	docs, err = json.Marshal(emptyIfNil(c.LinkedDocs))
	return
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Exams

func (s *Store) AddExam(e models.Exam) error {
	_, err := s.db.Exec(`
		INSERT INTO exams (id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Name, e.CFU, string(e.Status), e.ExamDate, e.IsScholarshipCritical, e.StrategyNotes)
	return err
}

func (s *Store) GetExam(id string) (models.Exam, error) {
	row := s.db.QueryRow(`
		SELECT id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes
		FROM exams WHERE id = $1`, id)
	e, err := scanExam(row)
	if err == sql.ErrNoRows {
		return models.Exam{}, fmt.Errorf("exam not found: %s", id)
	}
	return e, err
}

func (s *Store) GetAllExams() ([]models.Exam, error) {
	rows, err := s.db.Query(`
		SELECT id, name, cfu, status, exam_date, is_scholarship_critical, strategy_notes
		FROM exams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Exam
	for rows.Next() {
		e, err := scanExam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateExam(e models.Exam) error {
	res, err := s.db.Exec(`
		UPDATE exams
		SET name = $1, cfu = $2, status = $3, exam_date = $4, is_scholarship_critical = $5, strategy_notes = $6
		WHERE id = $7`,
		e.Name, e.CFU, string(e.Status), e.ExamDate, e.IsScholarshipCritical, e.StrategyNotes, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", e.ID)
}

func (s *Store) UpdateExamStatus(id string, status models.ExamStatus) error {
	res, err := s.db.Exec("UPDATE exams SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", id)
}

func (s *Store) DeleteExam(id string) error {
	res, err := s.db.Exec("DELETE FROM exams WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "exam", id)
}

func scanExam(row rowScanner) (models.Exam, error) {
	var e models.Exam
	var status string
	var examDate, notes sql.NullString

	if err := row.Scan(&e.ID, &e.Name, &e.CFU, &status, &examDate, &e.IsScholarshipCritical, &notes); err != nil {
		return models.Exam{}, err
	}
	e.Status = models.ExamStatus(status)
	e.ExamDate = examDate.String
	e.StrategyNotes = notes.String
	return e, nil
}

// Skills

func (s *Store) AddSkill(sk models.SkillDefinition) error {
	options, err := json.Marshal(sk.TrackingOptions)
	if err != nil {
		return fmt.Errorf("failed to encode tracking options: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO skills (id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		sk.ID, sk.Name, sk.Category, options, sk.TargetPerDay,
		sk.YearsExperience, sk.IsTracked, sk.ShowOnCV, sk.CreatedAt)
	return err
}

func (s *Store) GetSkill(id string) (models.SkillDefinition, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at
		FROM skills WHERE id = $1`, id)
	sk, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return models.SkillDefinition{}, fmt.Errorf("skill not found: %s", id)
	}
	return sk, err
}

func (s *Store) GetSkillByName(name string) (models.SkillDefinition, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at
		FROM skills WHERE name = $1`, name)
	sk, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return models.SkillDefinition{}, fmt.Errorf("skill not found: %s", name)
	}
	return sk, err
}

func (s *Store) GetAllSkills() ([]models.SkillDefinition, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at
		FROM skills ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.SkillDefinition
	for rows.Next() {
		sk, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sk)
	}
	return out, rows.Err()
}

func (s *Store) UpdateSkill(sk models.SkillDefinition) error {
	options, err := json.Marshal(sk.TrackingOptions)
	if err != nil {
		return fmt.Errorf("failed to encode tracking options: %w", err)
	}
	res, err := s.db.Exec(`
		UPDATE skills
		SET name = $1, category = $2, tracking_options = $3, target_per_day = $4, years_experience = $5, is_tracked = $6, show_on_cv = $7
		WHERE id = $8`,
		sk.Name, sk.Category, options, sk.TargetPerDay,
		sk.YearsExperience, sk.IsTracked, sk.ShowOnCV, sk.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "skill", sk.ID)
}

func (s *Store) DeleteSkill(id string) error {
	res, err := s.db.Exec("DELETE FROM skills WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "skill", id)
}

func scanSkill(row rowScanner) (models.SkillDefinition, error) {
	var sk models.SkillDefinition
	var category, target sql.NullString
	var options []byte

	if err := row.Scan(&sk.ID, &sk.Name, &category, &options, &target, &sk.YearsExperience, &sk.IsTracked, &sk.ShowOnCV, &sk.CreatedAt); err != nil {
		return models.SkillDefinition{}, err
	}
	sk.Category = category.String
	sk.TargetPerDay = target.String
	if err := json.Unmarshal(options, &sk.TrackingOptions); err != nil {
		return models.SkillDefinition{}, fmt.Errorf("failed to decode skill %s: %w", sk.ID, err)
	}
	return sk, nil
}

// Practice log

func (s *Store) LogPractice(day, skillID, label string) error {
	_, err := s.db.Exec(`
		INSERT INTO practice_entries (day, skill_id, value) VALUES ($1, $2, $3)
		ON CONFLICT (day, skill_id) DO UPDATE SET value = EXCLUDED.value`,
		day, skillID, label)
	return err
}

func (s *Store) GetPracticeEntry(day string) (models.PracticeEntry, error) {
	rows, err := s.db.Query("SELECT skill_id, value FROM practice_entries WHERE day = $1", day)
	if err != nil {
		return models.PracticeEntry{}, err
	}
	defer rows.Close()

	entry := models.PracticeEntry{Day: day, Skills: make(map[string]string)}
	for rows.Next() {
		var skillID, value string
		if err := rows.Scan(&skillID, &value); err != nil {
			return models.PracticeEntry{}, err
		}
		entry.Skills[skillID] = value
	}
	if err := rows.Err(); err != nil {
		return models.PracticeEntry{}, err
	}
	if len(entry.Skills) == 0 {
		return models.PracticeEntry{}, fmt.Errorf("no practice logged for %s", day)
	}
	return entry, nil
}

func (s *Store) GetAllPracticeEntries() ([]models.PracticeEntry, error) {
	rows, err := s.db.Query("SELECT day, skill_id, value FROM practice_entries ORDER BY day")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byDay := make(map[string]map[string]string)
	var days []string
	for rows.Next() {
		var day, skillID, value string
		if err := rows.Scan(&day, &skillID, &value); err != nil {
			return nil, err
		}
		if byDay[day] == nil {
			byDay[day] = make(map[string]string)
			days = append(days, day)
		}
		byDay[day][skillID] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.PracticeEntry, 0, len(days))
	for _, day := range days {
		out = append(out, models.PracticeEntry{Day: day, Skills: byDay[day]})
	}
	return out, nil
}

// Documents

func (s *Store) AddDocument(d models.Document) error {
	_, err := s.db.Exec(`
		INSERT INTO documents (id, name, status, expiry, is_critical)
		VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, string(d.Status), d.Expiry, d.IsCritical)
	return err
}

func (s *Store) GetDocument(id string) (models.Document, error) {
	row := s.db.QueryRow("SELECT id, name, status, expiry, is_critical FROM documents WHERE id = $1", id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return models.Document{}, fmt.Errorf("document not found: %s", id)
	}
	return d, err
}

func (s *Store) GetAllDocuments() ([]models.Document, error) {
	rows, err := s.db.Query("SELECT id, name, status, expiry, is_critical FROM documents ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) UpdateDocument(d models.Document) error {
	res, err := s.db.Exec(`
		UPDATE documents SET name = $1, status = $2, expiry = $3, is_critical = $4 WHERE id = $5`,
		d.Name, string(d.Status), d.Expiry, d.IsCritical, d.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "document", d.ID)
}

func (s *Store) DeleteDocument(id string) error {
	res, err := s.db.Exec("DELETE FROM documents WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(res, "document", id)
}

func scanDocument(row rowScanner) (models.Document, error) {
	var d models.Document
	var status string
	var expiry sql.NullString

	if err := row.Scan(&d.ID, &d.Name, &status, &expiry, &d.IsCritical); err != nil {
		return models.Document{}, err
	}
	d.Status = models.DocumentStatus(status)
	d.Expiry = expiry.String
	return d, nil
}
