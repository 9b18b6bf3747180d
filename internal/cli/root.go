package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jafarov01/cockpit/internal/backup"
	"github.com/jafarov01/cockpit/internal/keyring"
	"github.com/jafarov01/cockpit/internal/logger"
	"github.com/jafarov01/cockpit/internal/models"
	"github.com/jafarov01/cockpit/internal/storage"
	"github.com/jafarov01/cockpit/internal/storage/postgres"
	"github.com/jafarov01/cockpit/internal/storage/sqlite"
)

// Context is passed to every command's Run method.
type Context struct {
	Store storage.Provider
	Now   func() time.Time
}

// Today returns today's date string using the injected clock.
func (c *Context) Today() string {
	return c.Now().Format("2006-01-02")
}

// PerformAutomaticBackup best-effort backs up file-based storage. Failures
// are logged, never fatal; a missing backup should not block the session.
func (c *Context) PerformAutomaticBackup() {
	path := c.Store.GetConfigPath()
	if storage.IsPostgresDSN(path) {
		return
	}
	if _, err := backup.NewManager(path).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenProvider picks the storage backend from the shape of the config
// value: a PostgreSQL DSN, a .json path, or (default) a SQLite file path.
// The special value "keyring" resolves the DSN from the OS keyring.
func OpenProvider(config string) (storage.Provider, error) {
	if config == "keyring" {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			return nil, fmt.Errorf("failed to read connection string from keyring: %w", err)
		}
		config = connStr
	}

	if storage.IsPostgresDSN(config) {
		return postgres.New(config), nil
	}

	path, err := expandPath(config)
	if err != nil {
		return nil, err
	}
	if storage.IsJSONPath(path) {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// ParseCSV splits a comma-separated flag value into trimmed, non-empty
// parts.
func ParseCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FindExam resolves an exam by id or (unique) name.
func FindExam(ctx *Context, ref string) (models.Exam, error) {
	if e, err := ctx.Store.GetExam(ref); err == nil {
		return e, nil
	}
	exams, err := ctx.Store.GetAllExams()
	if err != nil {
		return models.Exam{}, err
	}
	var match *models.Exam
	for i, e := range exams {
		if strings.EqualFold(e.Name, ref) {
			if match != nil {
				return models.Exam{}, fmt.Errorf("exam name %q is ambiguous, use the id", ref)
			}
			match = &exams[i]
		}
	}
	if match == nil {
		return models.Exam{}, fmt.Errorf("exam not found: %s", ref)
	}
	return *match, nil
}

// FindCampaign resolves a campaign by id or (unique) name.
func FindCampaign(ctx *Context, ref string) (models.Campaign, error) {
	if c, err := ctx.Store.GetCampaign(ref); err == nil {
		return c, nil
	}
	campaigns, err := ctx.Store.GetAllCampaigns()
	if err != nil {
		return models.Campaign{}, err
	}
	var match *models.Campaign
	for i, c := range campaigns {
		if strings.EqualFold(c.Name, ref) {
			if match != nil {
				return models.Campaign{}, fmt.Errorf("campaign name %q is ambiguous, use the id", ref)
			}
			match = &campaigns[i]
		}
	}
	if match == nil {
		return models.Campaign{}, fmt.Errorf("campaign not found: %s", ref)
	}
	return *match, nil
}
