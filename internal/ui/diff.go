package ui

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kvit-s/v4apply/internal/patch"
)

// RenderDiff returns a unified diff for one file change.
func RenderDiff(path string, change patch.FileChange, contextLines int) (string, error) {
	toFile := path
	if change.MovePath != "" {
		toFile = change.MovePath
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(change.OldContent),
		B:        difflib.SplitLines(change.NewContent),
		FromFile: path,
		ToFile:   toFile,
		Context:  contextLines,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func sortedPaths(commit patch.Commit) []string {
	paths := make([]string, 0, len(commit))
	for p := range commit {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
