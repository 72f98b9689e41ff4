// Package ui renders commit previews and status messages for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/kvit-s/v4apply/internal/patch"
)

// Color definitions for consistent output
var (
	addColor    = color.New(color.FgGreen)
	delColor    = color.New(color.FgRed)
	hunkColor   = color.New(color.FgCyan)
	headerColor = color.New(color.FgWhite, color.Bold)
	grayColor   = color.New(color.FgWhite, color.Faint)
	errorColor  = color.New(color.FgRed)
	warnColor   = color.New(color.FgYellow)
)

// Writer provides formatted output with optional colors.
type Writer struct {
	stdout io.Writer
	stderr io.Writer
	quiet  bool
}

func NewWriter() *Writer {
	return &Writer{stdout: os.Stdout, stderr: os.Stderr}
}

// SetQuiet suppresses everything except errors and the final summary.
func (w *Writer) SetQuiet(quiet bool) { w.quiet = quiet }

// SetOutput redirects both streams; used by tests.
func (w *Writer) SetOutput(stdout, stderr io.Writer) {
	w.stdout = stdout
	w.stderr = stderr
}

func (w *Writer) Error(format string, args ...any) {
	fmt.Fprintln(w.stderr, errorColor.Sprintf("[error] "+format, args...))
}

func (w *Writer) Warn(format string, args ...any) {
	if w.quiet {
		return
	}
	fmt.Fprintln(w.stderr, warnColor.Sprintf("[warn] "+format, args...))
}

func (w *Writer) Info(format string, args ...any) {
	if w.quiet {
		return
	}
	fmt.Fprintf(w.stdout, format+"\n", args...)
}

// FuzzNote reports which relaxations were needed to resolve the patch.
func (w *Writer) FuzzNote(fuzz patch.Fuzz) {
	if w.quiet || fuzz == 0 {
		return
	}
	fmt.Fprintln(w.stderr, grayColor.Sprintf("matched with fuzz: %s", fuzz))
}

// Preview prints a colored diff of every change in the commit, in
// stable path order.
func (w *Writer) Preview(commit patch.Commit, contextLines int) {
	if w.quiet {
		return
	}
	for _, path := range sortedPaths(commit) {
		change := commit[path]
		headerColor.Fprintln(w.stdout, changeHeading(path, change))
		diff, err := RenderDiff(path, change, contextLines)
		if err != nil {
			w.Warn("diff for %s: %v", path, err)
			continue
		}
		w.printColoredDiff(diff)
	}
}

func (w *Writer) printColoredDiff(diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			grayColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "@@"):
			hunkColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "+"):
			addColor.Fprintln(w.stdout, line)
		case strings.HasPrefix(line, "-"):
			delColor.Fprintln(w.stdout, line)
		default:
			fmt.Fprintln(w.stdout, line)
		}
	}
}

// Summary prints the one-line apply result.
func (w *Writer) Summary(added, updated, deleted int) {
	fmt.Fprintf(w.stdout, "%d added, %d updated, %d deleted\n", added, updated, deleted)
}

func changeHeading(path string, change patch.FileChange) string {
	switch change.Type {
	case patch.ChangeAdd:
		return fmt.Sprintf("A %s", path)
	case patch.ChangeDelete:
		return fmt.Sprintf("D %s", path)
	case patch.ChangeUpdate:
		if change.MovePath != "" {
			return fmt.Sprintf("M %s -> %s", path, change.MovePath)
		}
		return fmt.Sprintf("M %s", path)
	}
	return path
}
