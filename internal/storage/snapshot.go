package storage

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/jafarov01/cockpit/internal/logger"
	"github.com/jafarov01/cockpit/internal/models"
)

// Snapshot is a consistent read of every collection the dashboard derives
// state from. LoadSnapshot is the join barrier: either all collections
// arrived or the caller gets an error, never a partial view.
type Snapshot struct {
	Campaigns []models.Campaign
	Exams     []models.Exam
	Skills    []models.SkillDefinition
	Practice  []models.PracticeEntry
	Documents []models.Document
	Settings  models.Settings
}

// LoadSnapshot reads all collections from the provider.
func LoadSnapshot(p Provider) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Campaigns, err = p.GetAllCampaigns(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load campaigns: %w", err)
	}
	if snap.Exams, err = p.GetAllExams(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load exams: %w", err)
	}
	if snap.Skills, err = p.GetAllSkills(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load skills: %w", err)
	}
	if snap.Practice, err = p.GetAllPracticeEntries(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load practice entries: %w", err)
	}
	if snap.Documents, err = p.GetAllDocuments(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load documents: %w", err)
	}
	if snap.Settings, err = p.GetSettings(); err != nil {
		return Snapshot{}, fmt.Errorf("failed to load settings: %w", err)
	}
	return snap, nil
}

// Hash returns a content hash of the snapshot, used for cheap change
// detection between polls.
func (s Snapshot) Hash() (uint64, error) {
	// Hash a method-less alias: passing Snapshot itself would match the
	// library's Hashable interface and recurse back into this method.
	type snapshot Snapshot
	return hashstructure.Hash(snapshot(s), hashstructure.FormatV2, nil)
}

// Watcher polls the provider and pushes a fresh Snapshot whenever its
// content hash changes. It is the reactive change source for the TUI; CLI
// commands read once and exit, so they never need one.
type Watcher struct {
	provider Provider
	interval time.Duration
	updates  chan Snapshot
	stop     chan struct{}
}

// NewWatcher creates a watcher; Start must be called to begin polling.
func NewWatcher(p Provider, interval time.Duration) *Watcher {
	return &Watcher{
		provider: p,
		interval: interval,
		updates:  make(chan Snapshot, 1),
		stop:     make(chan struct{}),
	}
}

// Updates is the stream of changed snapshots.
func (w *Watcher) Updates() <-chan Snapshot {
	return w.updates
}

// Start loads an initial snapshot (emitted immediately) and then polls.
// Poll errors are logged and skipped; the previous snapshot stands.
func (w *Watcher) Start() error {
	snap, err := LoadSnapshot(w.provider)
	if err != nil {
		return err
	}
	last, err := snap.Hash()
	if err != nil {
		return fmt.Errorf("failed to hash snapshot: %w", err)
	}
	w.updates <- snap

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				snap, err := LoadSnapshot(w.provider)
				if err != nil {
					logger.Warn("Snapshot poll failed", "error", err)
					continue
				}
				h, err := snap.Hash()
				if err != nil || h == last {
					continue
				}
				last = h
				// Replace any unread update so the consumer always gets
				// the newest snapshot.
				select {
				case <-w.updates:
				default:
				}
				w.updates <- snap
			}
		}
	}()
	return nil
}

// Stop terminates polling. Safe to call once.
func (w *Watcher) Stop() {
	close(w.stop)
}
