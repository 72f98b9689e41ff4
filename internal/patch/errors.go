package patch

import (
	"errors"
	"fmt"
	"strings"
)

// Two error classes leave this package. Format errors mean the patch
// text itself is malformed and parsing aborts with nothing applied.
// Context errors mean the text parsed fine but a hunk's context could
// not be located in the target file; they carry the unmatched text and
// a hint so an external healing step can decide how to regenerate.

// Hint classifies why a context probably failed to match.
type Hint string

const (
	// HintEOF - the hunk claimed end-of-file but the tail did not match.
	HintEOF Hint = "eof"
	// HintInvalidTab - the context contains real tab characters that the file may not.
	HintInvalidTab Hint = "maybe-invalid-tab"
	// HintEscapedTab - the context contains literal "\t" escape text.
	HintEscapedTab Hint = "maybe-escaped-tab"
	// HintNone - no particular shape detected.
	HintNone Hint = "generic"
)

// FormatError reports malformed patch text: a bad directive, a
// duplicate or conflicting path, an unrecognized line, or a malformed
// terminal. It is fatal to the whole patch.
type FormatError struct {
	Line int // 1-based line in the patch text, 0 if unknown
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func formatErrorf(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// ContextError reports a hunk whose context could not be located in the
// target file by any matching pass.
type ContextError struct {
	Path string
	Text string // the unmatched context text, verbatim
	Hint Hint
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("%s: could not locate patch context (%s):\n%s", e.Path, e.Hint, e.Text)
}

// IsFormatError reports whether err is (or wraps) a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsContextError reports whether err is (or wraps) a ContextError.
func IsContextError(err error) bool {
	var ce *ContextError
	return errors.As(err, &ce)
}

// contextError builds a ContextError, inferring the hint from the shape
// of the unmatched text when the eof signal is not the cause.
func contextError(path string, lines []string, eof bool) *ContextError {
	text := strings.Join(lines, "\n")
	hint := HintNone
	switch {
	case eof:
		hint = HintEOF
	case strings.Contains(text, `\t`):
		hint = HintEscapedTab
	case strings.Contains(text, "\t"):
		hint = HintInvalidTab
	}
	return &ContextError{Path: path, Text: text, Hint: hint}
}
