package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jafarov01/cockpit/internal/models"
)

func (s *Store) AddSkill(sk models.SkillDefinition) error {
	options, err := json.Marshal(sk.TrackingOptions)
	if err != nil {
		return fmt.Errorf("failed to encode tracking options: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO skills (id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sk.ID, sk.Name, sk.Category, string(options), sk.TargetPerDay,
		sk.YearsExperience, boolToInt(sk.IsTracked), boolToInt(sk.ShowOnCV),
		sk.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetSkill(id string) (models.SkillDefinition, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at
		FROM skills WHERE id = ?`, id)
	sk, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return models.SkillDefinition{}, fmt.Errorf("skill not found: %s", id)
	}
	return sk, err
}

func (s *Store) GetSkillByName(name string) (models.SkillDefinition, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, tracking_options, target_per_day, years_experience, is_tracked, show_on_cv, created_at
		FROM skills WHERE name = ?`, name)
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
		SET name = ?, category = ?, tracking_options = ?, target_per_day = ?, years_experience = ?, is_tracked = ?, show_on_cv = ?
		WHERE id = ?`,
		sk.Name, sk.Category, string(options), sk.TargetPerDay,
		sk.YearsExperience, boolToInt(sk.IsTracked), boolToInt(sk.ShowOnCV), sk.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "skill", sk.ID)
}

func (s *Store) DeleteSkill(id string) error {
	res, err := s.db.Exec("DELETE FROM skills WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, "skill", id)
}

// LogPractice records one skill's practice for one day, overwriting any
// earlier log for the same (day, skill) pair.
func (s *Store) LogPractice(day, skillID, label string) error {
	_, err := s.db.Exec(`
		INSERT INTO practice_entries (day, skill_id, value) VALUES (?, ?, ?)
		ON CONFLICT (day, skill_id) DO UPDATE SET value = excluded.value`,
		day, skillID, label)
	return err
}

func (s *Store) GetPracticeEntry(day string) (models.PracticeEntry, error) {
	rows, err := s.db.Query("SELECT skill_id, value FROM practice_entries WHERE day = ?", day)
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

func scanSkill(row rowScanner) (models.SkillDefinition, error) {
	var sk models.SkillDefinition
	var category, target, createdAt sql.NullString
	var options string
	var tracked, showOnCV int

	if err := row.Scan(&sk.ID, &sk.Name, &category, &options, &target, &sk.YearsExperience, &tracked, &showOnCV, &createdAt); err != nil {
		return models.SkillDefinition{}, err
	}
	sk.Category = category.String
	sk.TargetPerDay = target.String
	sk.IsTracked = tracked != 0
	sk.ShowOnCV = showOnCV != 0

	if err := json.Unmarshal([]byte(options), &sk.TrackingOptions); err != nil {
		return models.SkillDefinition{}, fmt.Errorf("failed to decode skill %s: %w", sk.ID, err)
	}
	if createdAt.Valid {
		t, err := time.Parse(time.RFC3339, createdAt.String)
		if err != nil {
			return models.SkillDefinition{}, fmt.Errorf("failed to parse created_at: %w", err)
		}
		sk.CreatedAt = t
	}
	return sk, nil
}
