package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/jafarov01/cockpit/internal/cli"
	"github.com/jafarov01/cockpit/internal/constants"
	apperrors "github.com/jafarov01/cockpit/internal/errors"
	"github.com/jafarov01/cockpit/internal/logger"
	"github.com/jafarov01/cockpit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage location: SQLite path, .json path, PostgreSQL DSN, or 'keyring'." default:"~/.config/cockpit/cockpit.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize cockpit storage."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Check storage, keyring and process health."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the dashboard." default:"1"`
	Status   cli.StatusCmd   `cmd:"" help:"Print the global status light and overdue rules."`
	Decide   cli.DecideCmd   `cmd:"" help:"Work through overdue rules one decision at a time."`
	Campaign cli.CampaignCmd `cmd:"" help:"Manage campaigns and their rules."`
	Exam     cli.ExamCmd     `cmd:"" help:"Manage exams."`
	Doc      cli.DocCmd      `cmd:"" help:"Manage documents."`
	Skill    cli.SkillCmd    `cmd:"" help:"Manage tracked skills."`
	Practice cli.PracticeCmd `cmd:"" help:"Log and inspect practice time."`
	Keyring  cli.KeyringCmd  `cmd:"" help:"Manage the stored database connection string."`
	Backup   cli.BackupCmd   `cmd:"" help:"Create, list and restore storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal command center: campaigns, decisions and skill tracking"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	store, err := cli.OpenProvider(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Now:   time.Now,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// configDir derives the log directory parent from the config value. DSNs
// and the keyring sentinel have no directory, so logs fall back to the
// default config location.
func configDir(config string) string {
	if config != "" && config != "keyring" && !storage.IsPostgresDSN(config) {
		if strings.HasPrefix(config, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				return filepath.Dir(filepath.Join(home, config[2:]))
			}
		} else {
			return filepath.Dir(config)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", constants.AppName)
}
