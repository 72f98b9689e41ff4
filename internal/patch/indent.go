package patch

import "strings"

// DefaultTabSize is assumed when a file gives no evidence either way.
const DefaultTabSize = 4

// IndentStyle describes how a block of lines indents: with tabs or with
// runs of TabSize spaces.
type IndentStyle struct {
	TabSize      int
	InsertSpaces bool
}

// GuessIndentation inspects the leading whitespace of lines and guesses
// the indentation style in use, falling back to the provided defaults
// when the evidence is thin. Pure function; shared by the dispatcher
// (per-file styles) and the reconciler (per-chunk insert styles).
func GuessIndentation(lines []string, tabSize int, insertSpaces bool) IndentStyle {
	tabLines := 0
	spaceLines := 0
	sizeVotes := make(map[int]int)
	prevWidth := 0

	for _, line := range lines {
		ws := leadingWhitespace(line)
		if ws == line || ws == "" {
			continue // blank or unindented, no signal
		}
		if ws[0] == '\t' {
			tabLines++
			continue
		}
		spaceLines++
		width := len(ws)
		if delta := width - prevWidth; delta >= 2 && delta <= 8 {
			sizeVotes[delta]++
		}
		prevWidth = width
	}

	style := IndentStyle{TabSize: tabSize, InsertSpaces: insertSpaces}
	if tabLines > spaceLines {
		style.InsertSpaces = false
	} else if spaceLines > tabLines {
		style.InsertSpaces = true
	}
	best := 0
	for size, votes := range sizeVotes {
		if votes > best || (votes == best && best > 0 && size < style.TabSize) {
			best = votes
			style.TabSize = size
		}
	}
	return style
}

// reconcileInsertions rewrites the leading whitespace of inserted lines
// from the style the model emitted to the target file's style, then
// prepends the indentation delta captured by whitespace-ignoring
// matches. Blank and whitespace-only lines are never transformed.
func reconcileInsertions(ins []string, target IndentStyle, delta string) []string {
	if len(ins) == 0 {
		return ins
	}
	source := GuessIndentation(ins, target.TabSize, target.InsertSpaces)
	out := make([]string, len(ins))
	for i, line := range ins {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		if source != target {
			line = restyleIndent(line, source, target)
		}
		out[i] = delta + line
	}
	return out
}

// restyleIndent converts a line's leading whitespace from one style to
// another, preserving its column width.
func restyleIndent(line string, from, to IndentStyle) string {
	ws := leadingWhitespace(line)
	rest := line[len(ws):]
	width := indentWidth(ws, from.TabSize)
	return buildIndent(width, to) + rest
}

// indentWidth measures leading whitespace in columns, with tabs
// advancing to the next tab stop.
func indentWidth(ws string, tabSize int) int {
	width := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			width = (width/tabSize + 1) * tabSize
		} else {
			width++
		}
	}
	return width
}

func buildIndent(width int, style IndentStyle) string {
	if style.InsertSpaces {
		return strings.Repeat(" ", width)
	}
	tabs := width / style.TabSize
	spaces := width % style.TabSize
	return strings.Repeat("\t", tabs) + strings.Repeat(" ", spaces)
}
