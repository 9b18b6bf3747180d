package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jafarov01/cockpit/internal/storage"
	"github.com/jafarov01/cockpit/internal/tui"
)

const watchInterval = 2 * time.Second

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	watcher := storage.NewWatcher(ctx.Store, watchInterval)
	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start storage watcher: %w", err)
	}
	defer watcher.Stop()

	p := tea.NewProgram(tui.NewModel(ctx.Store, watcher, ctx.Now), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard crashed: %w", err)
	}
	return nil
}
