package sqlite

import (
	"database/sql"

	"github.com/jafarov01/cockpit/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	row := s.db.QueryRow("SELECT last_decision_prompt, default_snooze_days, heatmap_days FROM settings WHERE id = 1")

	var settings models.Settings
	var lastPrompt sql.NullString
	err := row.Scan(&lastPrompt, &settings.DefaultSnoozeDays, &settings.HeatmapDays)
	if err == sql.ErrNoRows {
		return models.Settings{}, nil
	}
	if err != nil {
		return models.Settings{}, err
	}
	settings.LastDecisionPrompt = lastPrompt.String
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (id, last_decision_prompt, default_snooze_days, heatmap_days)
		VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			last_decision_prompt = excluded.last_decision_prompt,
			default_snooze_days = excluded.default_snooze_days,
			heatmap_days = excluded.heatmap_days`,
		settings.LastDecisionPrompt, settings.DefaultSnoozeDays, settings.HeatmapDays)
	return err
}
