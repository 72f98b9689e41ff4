package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemStore(t *testing.T) {
	store := NewMemStore(map[string]string{
		"main.go":  "package main",
		"notes.md": "# notes",
	})

	doc, err := store.Load("main.go")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Text != "package main" || doc.LanguageID != "go" {
		t.Errorf("doc = %+v", doc)
	}

	if _, err := store.Load("missing.go"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if store.Exists("missing.go") {
		t.Error("Exists(missing) = true")
	}
	if !store.Exists("notes.md") {
		t.Error("Exists(notes.md) = false")
	}
}

func TestFSStore(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "pkg", "a.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFSStore(root)

	doc, err := store.Load("pkg/a.py")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Text != "x = 1\n" || doc.LanguageID != "python" {
		t.Errorf("doc = %+v", doc)
	}

	if _, err := store.Load("pkg/missing.py"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
	if store.Exists("pkg") {
		t.Error("Exists must be false for directories")
	}
	if !store.Exists("pkg/a.py") {
		t.Error("Exists(pkg/a.py) = false")
	}
}

func TestFSStoreResolve(t *testing.T) {
	root := t.TempDir()
	store := NewFSStore(root)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative inside", "sub/file.txt", false},
		{"dot segments collapse inside", "sub/../file.txt", false},
		{"escape via dotdot", "../outside.txt", true},
		{"deep escape", "sub/../../outside.txt", true},
		{"absolute outside root", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := store.Resolve(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Resolve(%q) = %q, want error", tt.path, abs)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.path, err)
			}
			rel, err := filepath.Rel(root, abs)
			if err != nil || rel == ".." || filepath.IsAbs(rel) {
				t.Errorf("Resolve(%q) = %q, not under root", tt.path, abs)
			}
		})
	}
}

func TestLanguageID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"a.go", "go"},
		{"a.TS", "typescript"},
		{"deep/dir/a.yaml", "yaml"},
		{"Makefile", "plaintext"},
	}
	for _, tt := range tests {
		if got := languageID(tt.path); got != tt.want {
			t.Errorf("languageID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
