package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kvit-s/v4apply/internal/patch"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

func TestApplierApply(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "update.txt", "old")
	writeFile(t, root, "delete.txt", "bye")
	writeFile(t, root, "src/moved.txt", "payload")

	commit := patch.Commit{
		"added/new.txt": {Type: patch.ChangeAdd, NewContent: "fresh\n"},
		"update.txt":    {Type: patch.ChangeUpdate, OldContent: "old", NewContent: "new"},
		"delete.txt":    {Type: patch.ChangeDelete, OldContent: "bye"},
		"src/moved.txt": {
			Type:       patch.ChangeUpdate,
			OldContent: "payload",
			NewContent: "payload v2",
			MovePath:   "dst/moved.txt",
		},
	}

	res, err := NewApplier(root).Apply(commit)
	if err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	if got := readFile(t, root, "added/new.txt"); got != "fresh\n" {
		t.Errorf("added content = %q", got)
	}
	if got := readFile(t, root, "update.txt"); got != "new" {
		t.Errorf("updated content = %q", got)
	}
	if got := readFile(t, root, "dst/moved.txt"); got != "payload v2" {
		t.Errorf("moved content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(root, "delete.txt")); !os.IsNotExist(err) {
		t.Error("delete.txt still present")
	}
	if _, err := os.Stat(filepath.Join(root, "src/moved.txt")); !os.IsNotExist(err) {
		t.Error("move source still present")
	}

	if len(res.Added) != 2 || len(res.Updated) != 1 || len(res.Deleted) != 2 {
		t.Errorf("result = %+v", res)
	}
}

func TestApplierPreservesPermissions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "run.sh", "#!/bin/sh\n")
	if err := os.Chmod(filepath.Join(root, "run.sh"), 0o755); err != nil {
		t.Fatal(err)
	}

	commit := patch.Commit{
		"run.sh": {Type: patch.ChangeUpdate, NewContent: "#!/bin/sh\necho hi\n"},
	}
	if _, err := NewApplier(root).Apply(commit); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(root, "run.sh"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Errorf("mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestApplierRejectsEscape(t *testing.T) {
	root := t.TempDir()
	commit := patch.Commit{
		"../outside.txt": {Type: patch.ChangeAdd, NewContent: "nope"},
	}
	res, err := NewApplier(root).Apply(commit)
	if err == nil {
		t.Fatal("expected escape error")
	}
	if len(res.Added) != 0 {
		t.Errorf("result = %+v", res)
	}
}

func TestApplierBestEffort(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.txt", "old")

	commit := patch.Commit{
		"good.txt":       {Type: patch.ChangeUpdate, NewContent: "new"},
		"../outside.txt": {Type: patch.ChangeAdd, NewContent: "nope"},
	}
	res, err := NewApplier(root).Apply(commit)
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	if got := readFile(t, root, "good.txt"); got != "new" {
		t.Errorf("good.txt = %q; valid changes should still land", got)
	}
	if len(res.Updated) != 1 {
		t.Errorf("result = %+v", res)
	}
}

func TestLock(t *testing.T) {
	root := t.TempDir()

	lock, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("AcquireLock() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, lockFileName))
	if err != nil {
		t.Fatalf("lock file missing: %v", err)
	}
	if len(data) == 0 {
		t.Error("lock file should record the holder pid")
	}

	if _, err := AcquireLock(root); err == nil {
		t.Error("second acquire should fail while the lock is held")
	}

	lock.Release()
	lock.Release() // idempotent

	if _, err := os.Stat(filepath.Join(root, lockFileName)); !os.IsNotExist(err) {
		t.Error("lock file not removed on release")
	}

	second, err := AcquireLock(root)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	second.Release()
}
