package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/jafarov01/cockpit/internal/constants"
	"github.com/jafarov01/cockpit/internal/models"
)

// schemaVersion is stored in PRAGMA user_version and bumped on any schema
// change.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	start_date TEXT,
	end_date TEXT,
	focus_areas TEXT NOT NULL DEFAULT '[]',
	linked_exams TEXT NOT NULL DEFAULT '[]',
	linked_docs TEXT NOT NULL DEFAULT '[]',
	rules TEXT NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS exams (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	cfu INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	exam_date TEXT,
	is_scholarship_critical INTEGER NOT NULL DEFAULT 0,
	strategy_notes TEXT
);

CREATE TABLE IF NOT EXISTS skills (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT,
	tracking_options TEXT NOT NULL DEFAULT '[]',
	target_per_day TEXT,
	years_experience REAL NOT NULL DEFAULT 0,
	is_tracked INTEGER NOT NULL DEFAULT 1,
	show_on_cv INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
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
	is_critical INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS settings (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	last_decision_prompt TEXT,
	default_snooze_days INTEGER NOT NULL DEFAULT 3,
	heatmap_days INTEGER NOT NULL DEFAULT 90
);
`

// Store is the SQLite-backed Provider, the default backend.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.migrate(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Seed defaults so first load never sees an empty settings row.
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

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) migrate() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return err
	}
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	return err
}

func (s *Store) validateSchemaVersion() error {
	var v int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&v); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if v > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than this build supports (%d)", v, schemaVersion)
	}
	if v < schemaVersion {
		// Older database: bring it forward. The schema is additive so a
		// re-run of the DDL is sufficient.
		return s.migrate()
	}
	return nil
}

// SchemaVersion reports the database's stored schema version, for doctor.
func (s *Store) SchemaVersion() (int, error) {
	var v int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&v)
	return v, err
}

// GetConfigPath returns the path to the underlying database file.
func (s *Store) GetConfigPath() string {
	return s.path
}
