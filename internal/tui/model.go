package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jafarov01/cockpit/internal/rules"
	"github.com/jafarov01/cockpit/internal/scoring"
	"github.com/jafarov01/cockpit/internal/storage"
)

type Tab int

const (
	TabOverview Tab = iota
	TabSkills
	TabDocuments
)

var tabTitles = []string{"Overview", "Skills", "Documents"}

// Model is the read-only dashboard. It renders derived state only; all
// mutations go through the CLI commands, and the watcher brings changed
// data back in.
type Model struct {
	store   storage.Provider
	watcher *storage.Watcher
	now     func() time.Time

	tab        Tab
	keys       KeyMap
	help       help.Model
	quitting   bool
	decideHint bool
	width      int
	height     int

	snap      storage.Snapshot
	status    rules.Status
	triggered []rules.TriggeredRule
	analytics []scoring.SkillAnalytics
	loadErr   error
}

func NewModel(store storage.Provider, watcher *storage.Watcher, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		store:   store,
		watcher: watcher,
		now:     now,
		tab:     TabOverview,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

type snapshotMsg storage.Snapshot

// waitForUpdate blocks on the watcher stream; each received snapshot is
// turned into a message and the command re-armed from Update.
func (m Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.watcher.Updates()
		if !ok {
			return nil
		}
		return snapshotMsg(snap)
	}
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		snap, err := storage.LoadSnapshot(m.store)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(snap)
	}
}

type errMsg struct{ err error }

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

// apply recomputes all derived state from a fresh snapshot.
func (m *Model) apply(snap storage.Snapshot) {
	m.snap = snap
	m.loadErr = nil
	now := m.now()
	m.triggered = rules.Evaluate(snap.Campaigns, snap.Exams, now)
	m.status = rules.ComputeGlobalStatus(snap.Documents, snap.Campaigns, now)
	m.analytics = scoring.CalculateAllSkillAnalytics(snap.Skills, snap.Practice, now)
}

func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}
