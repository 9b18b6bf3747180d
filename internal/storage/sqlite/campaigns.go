package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jafarov01/cockpit/internal/models"
)

// Campaign rows embed their rules, focus areas and link sets as JSON text.
// A rule mutation therefore rewrites the whole rules array, which is the
// store's atomicity unit for rules.

func (s *Store) AddCampaign(c models.Campaign) error {
	rules, focus, exams, docs, err := encodeCampaignFields(c)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO campaigns (id, name, status, start_date, end_date, focus_areas, linked_exams, linked_docs, rules)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, string(c.Status), c.StartDate, c.EndDate, focus, exams, docs, rules)
	return err
}

func (s *Store) GetCampaign(id string) (models.Campaign, error) {
	row := s.db.QueryRow(`
		SELECT id, name, status, start_date, end_date, focus_areas, linked_exams, linked_docs, rules
		FROM campaigns WHERE id = ?`, id)
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
		SET name = ?, status = ?, start_date = ?, end_date = ?, focus_areas = ?, linked_exams = ?, linked_docs = ?, rules = ?
		WHERE id = ?`,
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
	res, err := s.db.Exec("UPDATE campaigns SET rules = ? WHERE id = ?", string(encoded), campaignID)
	if err != nil {
		return err
	}
	return requireRow(res, "campaign", campaignID)
}

func (s *Store) DeleteCampaign(id string) error {
	res, err := s.db.Exec("DELETE FROM campaigns WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "campaign", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (models.Campaign, error) {
	var c models.Campaign
	var status string
	var startDate, endDate sql.NullString
	var focus, exams, docs, rules string

	if err := row.Scan(&c.ID, &c.Name, &status, &startDate, &endDate, &focus, &exams, &docs, &rules); err != nil {
		return models.Campaign{}, err
	}
	c.Status = models.CampaignStatus(status)
	c.StartDate = startDate.String
	c.EndDate = endDate.String

	for _, f := range []struct {
		raw  string
		dest any
	}{
		{focus, &c.FocusAreas},
		{exams, &c.LinkedExams},
		{docs, &c.LinkedDocs},
		{rules, &c.Rules},
	} {
		if err := json.Unmarshal([]byte(f.raw), f.dest); err != nil {
			return models.Campaign{}, fmt.Errorf("failed to decode campaign %s: %w", c.ID, err)
		}
	}
	return c, nil
}

func encodeCampaignFields(c models.Campaign) (rules, focus, exams, docs string, err error) {
	encode := func(v any) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	}
	if c.Rules == nil {
		c.Rules = []models.CampaignRule{}
	}
	if rules, err = encode(c.Rules); err != nil {
		return
	}
	if focus, err = encode(emptyIfNil(c.FocusAreas)); err != nil {
		return
	}
	if exams, err = encode(emptyIfNil(c.LinkedExams)); err != nil {
		return
	}
	docs, err = encode(emptyIfNil(c.LinkedDocs))
	return
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
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
