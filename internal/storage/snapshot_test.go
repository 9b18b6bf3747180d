package storage

import (
	"path/filepath"
	"testing"

	"github.com/jafarov01/cockpit/internal/models"
)

func TestLoadSnapshot_AllCollections(t *testing.T) {
	store := newTestStore(t)
	if err := store.AddCampaign(models.Campaign{ID: "c1", Name: "Graduate"}); err != nil {
		t.Fatalf("AddCampaign failed: %v", err)
	}
	if err := store.AddExam(models.Exam{ID: "e1", Name: "Databases"}); err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}
	if err := store.LogPractice("2026-03-05", "s1", "30 mins"); err != nil {
		t.Fatalf("LogPractice failed: %v", err)
	}

	snap, err := LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}

	if len(snap.Campaigns) != 1 || len(snap.Exams) != 1 || len(snap.Practice) != 1 {
		t.Errorf("unexpected snapshot shape: %d campaigns, %d exams, %d practice days",
			len(snap.Campaigns), len(snap.Exams), len(snap.Practice))
	}
	if snap.Settings.HeatmapDays <= 0 {
		t.Errorf("settings missing from snapshot: %+v", snap.Settings)
	}
}

func TestLoadSnapshot_FailsWhenNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "cockpit.json"))

	if _, err := LoadSnapshot(store); err == nil {
		t.Error("expected LoadSnapshot to fail on an unloaded store")
	}
}

func TestSnapshotHash_ChangesWithContent(t *testing.T) {
	store := newTestStore(t)

	before, err := LoadSnapshot(store)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	h1, err := before.Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// Identical content hashes identically.
	again, _ := LoadSnapshot(store)
	h2, err := again.Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 != h2 {
		t.Error("identical snapshots must hash equal")
	}

	if err := store.AddExam(models.Exam{ID: "e1", Name: "Databases"}); err != nil {
		t.Fatalf("AddExam failed: %v", err)
	}
	after, _ := LoadSnapshot(store)
	h3, err := after.Hash()
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if h1 == h3 {
		t.Error("changed content must change the hash")
	}
}
