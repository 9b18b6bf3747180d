// Package postgres implements the storage Provider on PostgreSQL, for
// users who keep their cockpit database on a shared host. Credentials are
// never embedded in the DSN; they come from the environment, .pgpass or
// the OS keyring.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/lib/pq"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/models"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	start_date TEXT,
	end_date TEXT,
	focus_areas JSONB NOT NULL DEFAULT '[]',
	linked_exams JSONB NOT NULL DEFAULT '[]',
	linked_docs JSONB NOT NULL DEFAULT '[]',
	rules JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS exams (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	cfu INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	exam_date TEXT,
	is_scholarship_critical BOOLEAN NOT NULL DEFAULT FALSE,
	strategy_notes TEXT
);

CREATE TABLE IF NOT EXISTS skills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	tracking_options JSONB NOT NULL DEFAULT '[]',
	target_per_day TEXT,
	years_experience DOUBLE PRECISION NOT NULL DEFAULT 0,
	is_tracked BOOLEAN NOT NULL DEFAULT TRUE,
	show_on_cv BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS practice_entries (
	day TEXT NOT NULL,
	skill_id TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (day, skill_id)
);

CREATE TABLE IF NOT EXISTS documents (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	expiry TEXT,
	is_critical BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	last_decision_prompt TEXT,
	default_snooze_days INTEGER NOT NULL DEFAULT 3,
	heatmap_days INTEGER NOT NULL DEFAULT 90
);
`

// Store is the PostgreSQL-backed Provider.
type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{connStr: connStr}
}

// ValidateConnStr rejects DSNs that embed a password. Key/value DSNs are
// checked for a password token, URL DSNs for userinfo with a secret.
func ValidateConnStr(connStr string) error {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return ErrEmbeddedCredentials
			}
		}
		return nil
	}
	if strings.Contains(connStr, "password=") {
		return ErrEmbeddedCredentials
	}
	if !strings.Contains(connStr, "host=") {
		return ErrInvalidConnectionString
	}
	return nil
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	settings, err := s.GetSettings()
	if err != nil || settings.HeatmapDays == 0 {
		defaults := models.Settings{
			DefaultSnoozeDays: constants.DefaultSnoozeDays,
			HeatmapDays:       constants.DefaultHeatmapDays,
		}
		if err := s.SaveSettings(defaults); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'settings')`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}
	return nil
}

func (s *Store) open() error {
	if err := ValidateConnStr(s.connStr); err != nil {
		return err
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetConfigPath returns the connection string identifying this store.
func (s *Store) GetConfigPath() string {
	return s.connStr
}

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
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			last_decision_prompt = EXCLUDED.last_decision_prompt,
			default_snooze_days = EXCLUDED.default_snooze_days,
			heatmap_days = EXCLUDED.heatmap_days`,
		settings.LastDecisionPrompt, settings.DefaultSnoozeDays, settings.HeatmapDays)
	return err
}
