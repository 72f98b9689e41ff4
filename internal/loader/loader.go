// Package loader supplies document stores for the patch engine: an
// in-memory store for library use and tests, and a workspace-rooted
// filesystem store for the CLI.
package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kvit-s/v4apply/internal/patch"
)

// ErrNotFound distinguishes a missing document from an I/O failure.
var ErrNotFound = errors.New("document not found")

// MemStore is a map-backed document store.
type MemStore struct {
	docs map[string]patch.Document
}

// NewMemStore builds a store from path-to-content pairs; language ids are
// derived from the file extensions.
func NewMemStore(files map[string]string) *MemStore {
	m := &MemStore{docs: make(map[string]patch.Document, len(files))}
	for path, text := range files {
		m.docs[path] = patch.Document{Text: text, LanguageID: languageID(path)}
	}
	return m
}

func (m *MemStore) Load(path string) (patch.Document, error) {
	doc, ok := m.docs[path]
	if !ok {
		return patch.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return doc, nil
}

func (m *MemStore) Exists(path string) bool {
	_, ok := m.docs[path]
	return ok
}

// FSStore loads documents from disk, rooted at a workspace directory.
// Paths that escape the workspace are rejected before any read.
type FSStore struct {
	Root string
}

func NewFSStore(root string) *FSStore {
	return &FSStore{Root: filepath.Clean(root)}
}

// Resolve normalizes a patch path against the workspace root and
// rejects escapes.
func (s *FSStore) Resolve(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.Root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(s.Root, abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes workspace %s", path, s.Root)
	}
	return abs, nil
}

func (s *FSStore) Load(path string) (patch.Document, error) {
	abs, err := s.Resolve(path)
	if err != nil {
		return patch.Document{}, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return patch.Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return patch.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return patch.Document{Text: string(data), LanguageID: languageID(path)}, nil
}

func (s *FSStore) Exists(path string) bool {
	abs, err := s.Resolve(path)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

var languageIDs = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "typescriptreact",
	".jsx":  "javascriptreact",
	".java": "java",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".rs":   "rust",
	".rb":   "ruby",
	".sh":   "shellscript",
	".md":   "markdown",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".html": "html",
	".css":  "css",
	".sql":  "sql",
}

func languageID(path string) string {
	if id, ok := languageIDs[strings.ToLower(filepath.Ext(path))]; ok {
		return id
	}
	return "plaintext"
}
