// Package workspace writes resolved commits to disk. The patch core is
// pure; everything that actually touches the filesystem lives here.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/multierr"

	"github.com/kvit-s/v4apply/internal/loader"
	"github.com/kvit-s/v4apply/internal/patch"
)

// Result summarizes what an Apply call changed.
type Result struct {
	Added   []string
	Updated []string
	Deleted []string
}

// Applier writes commits under a workspace root.
type Applier struct {
	store *loader.FSStore
}

func NewApplier(root string) *Applier {
	return &Applier{store: loader.NewFSStore(root)}
}

// Apply writes every change in the commit. Changes are applied per
// file, best effort; errors are aggregated and returned together with
// the partial result. Crossfile atomicity is the caller's concern.
func (a *Applier) Apply(commit patch.Commit) (Result, error) {
	var res Result
	var errs error
	for _, path := range sortedPaths(commit) {
		change := commit[path]
		switch change.Type {
		case patch.ChangeAdd:
			if err := a.write(path, change.NewContent); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("add %s: %w", path, err))
				continue
			}
			res.Added = append(res.Added, path)
		case patch.ChangeDelete:
			if err := a.remove(path); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("delete %s: %w", path, err))
				continue
			}
			res.Deleted = append(res.Deleted, path)
		case patch.ChangeUpdate:
			target := path
			if change.MovePath != "" {
				target = change.MovePath
			}
			if err := a.write(target, change.NewContent); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("update %s: %w", target, err))
				continue
			}
			if target != path {
				if err := a.remove(path); err != nil {
					errs = multierr.Append(errs, fmt.Errorf("move %s: %w", path, err))
				}
				res.Deleted = append(res.Deleted, path)
				res.Added = append(res.Added, target)
			} else {
				res.Updated = append(res.Updated, path)
			}
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s: unknown change type %q", path, change.Type))
		}
	}
	return res, errs
}

// write stores content atomically: temp file in the target directory,
// then rename.
func (a *Applier) write(path, content string) error {
	fullPath, err := a.store.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".apply-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Preserve permissions of an existing target.
	if info, statErr := os.Stat(fullPath); statErr == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (a *Applier) remove(path string) error {
	fullPath, err := a.store.Resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sortedPaths(commit patch.Commit) []string {
	paths := make([]string, 0, len(commit))
	for p := range commit {
		paths = append(paths, p)
	}
	// Deterministic apply order keeps logs and partial failures stable.
	sort.Strings(paths)
	return paths
}
