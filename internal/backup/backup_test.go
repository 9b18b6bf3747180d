package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, content string) (string, *Manager) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cockpit.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path, NewManager(path)
}

func TestCreate_CopiesSourceFile(t *testing.T) {
	_, mgr := writeSource(t, `{"version":1}`)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("failed to read backup: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content mismatch: %s", data)
	}
	if filepath.Dir(backupPath) != mgr.BackupDir() {
		t.Errorf("backup landed outside the backup dir: %s", backupPath)
	}
}

func TestCreate_MissingSourceFails(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.json"))

	if _, err := mgr.Create(); err == nil {
		t.Error("expected Create to fail for a missing source file")
	}
}

func TestCreate_CollidingTimestampsGetUniqueNames(t *testing.T) {
	_, mgr := writeSource(t, `{}`)

	first, err := mgr.Create()
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	second, err := mgr.Create()
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}

	if first == second {
		t.Errorf("two backups in the same second must not share a path: %s", first)
	}
}

func TestList_ReportsBackupsNewestFirst(t *testing.T) {
	_, mgr := writeSource(t, `{}`)

	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Fatalf("expected empty list before any backup, got %v %v", backups, err)
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Size == 0 {
		t.Errorf("expected non-zero backup size, got %+v", backups[0])
	}
}

func TestRestore_SwapsFileAndKeepsSafetyCopy(t *testing.T) {
	srcPath, mgr := writeSource(t, `{"state":"old"}`)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The live file moves on.
	if err := os.WriteFile(srcPath, []byte(`{"state":"new"}`), 0600); err != nil {
		t.Fatalf("failed to overwrite source: %v", err)
	}

	if err := mgr.Restore(backupPath); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		t.Fatalf("failed to read restored file: %v", err)
	}
	if string(data) != `{"state":"old"}` {
		t.Errorf("expected restored content, got %s", data)
	}

	// The pre-restore state was backed up before the swap.
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected a safety copy of the pre-restore state, got %d backup(s)", len(backups))
	}
}

func TestRestore_MissingBackupFails(t *testing.T) {
	_, mgr := writeSource(t, `{}`)

	if err := mgr.Restore(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected Restore to fail for a missing backup file")
	}
}
