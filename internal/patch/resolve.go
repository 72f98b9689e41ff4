package patch

import "strings"

// editDistanceRatio bounds the total per-line Levenshtein distance the
// last-resort pass will accept: floor(contextLineCount * ratio).
const editDistanceRatio = 0.34

// match is a resolved context location inside the target file.
type match struct {
	index  int  // first matching line in the file
	length int  // matched window length (may differ from the context after \n expansion)
	fuzz   Fuzz // relaxations that were required
	// indentDelta is the extra leading whitespace the file carries
	// relative to the hunk, captured by the whitespace-ignoring pass.
	indentDelta string
}

// resolver locates context text inside one file's lines. The
// canonicalized variants are computed once per file since every hunk in
// an update section searches the same lines.
type resolver struct {
	lines  []string
	canon  []string // canonicalized
	canonR []string // canonicalized, trailing whitespace trimmed
	canonT []string // canonicalized, fully trimmed
}

func newResolver(lines []string) *resolver {
	r := &resolver{
		lines:  lines,
		canon:  canonicalizeLines(lines),
		canonR: make([]string, len(lines)),
		canonT: make([]string, len(lines)),
	}
	for i, c := range r.canon {
		r.canonR[i] = strings.TrimRight(c, " \t")
		r.canonT[i] = strings.TrimSpace(c)
	}
	return r
}

// find locates context starting at start. When eof is set the context
// is first anchored at the file tail; if that fails the whole ladder is
// retried from start and FuzzIgnoredEofSignal recorded on success.
func (r *resolver) find(context []string, start int, eof bool) (match, bool) {
	if len(context) == 0 {
		// Pure insertion: anchor at the cursor, or at the file end
		// when the section claimed end-of-file.
		if eof {
			return match{index: len(r.lines)}, true
		}
		return match{index: start}, true
	}
	if eof {
		if anchor := len(r.lines) - len(context); anchor >= 0 {
			if m, ok := r.ladder(context, anchor); ok {
				return m, true
			}
		}
		m, ok := r.ladder(context, start)
		if ok {
			m.fuzz |= FuzzIgnoredEofSignal
		}
		return m, ok
	}
	return r.ladder(context, start)
}

// ladder runs the matching passes strictly in ascending permissiveness,
// each only after the previous failed, recording only the bits of the
// pass that succeeded.
func (r *resolver) ladder(context []string, start int) (match, bool) {
	want := canonicalizeLines(context)

	// 1. Exact match after unicode canonicalization.
	if i, ok := scan(r.canon, want, start); ok {
		return match{index: i, length: len(want)}, true
	}

	// 2. Trailing whitespace ignored.
	wantR := trimRightLines(want)
	if i, ok := scan(r.canonR, wantR, start); ok {
		return match{index: i, length: len(want), fuzz: FuzzIgnoredTrailingWhitespace}, true
	}

	// 3. Literal \t escape text converted to real tabs, when that
	// actually changes the canonical form.
	tabbed, changed := unescapeTabLines(context)
	if changed {
		wantTab := trimRightLines(canonicalizeLines(tabbed))
		if i, ok := scan(r.canonR, wantTab, start); ok {
			return match{index: i, length: len(wantTab), fuzz: FuzzNormalizedExplicitTab}, true
		}
	}

	// 4. Single-line contexts only: additionally convert literal \n
	// escape text to real newlines and recompute the window length.
	if len(context) == 1 && strings.Contains(context[0], `\n`) {
		expanded := strings.Split(unescapeNewlines(unescapeTabs(context[0])), "\n")
		wantNL := trimRightLines(canonicalizeLines(expanded))
		if i, ok := scan(r.canonR, wantNL, start); ok {
			return match{
				index:  i,
				length: len(wantNL),
				fuzz:   FuzzNormalizedExplicitNL | FuzzNormalizedExplicitTab,
			}, true
		}
	}

	// 5. Leading and trailing whitespace ignored. The indentation delta
	// between the matched file line and the hunk's own context is
	// captured for the reconciler.
	wantT := make([]string, len(want))
	for i, w := range want {
		wantT[i] = strings.TrimSpace(w)
	}
	if i, ok := scan(r.canonT, wantT, start); ok {
		return match{
			index:       i,
			length:      len(want),
			fuzz:        FuzzIgnoredWhitespace,
			indentDelta: indentDelta(context[0], r.lines[i]),
		}, true
	}

	// 6. Bounded per-line edit distance; first window within budget
	// wins, scanning forward.
	budget := int(float64(len(context)) * editDistanceRatio)
	n := len(want)
	for i := start; i+n <= len(r.canon); i++ {
		total := 0
		for j := 0; j < n && total <= budget; j++ {
			total += levenshtein(r.canon[i+j], want[j])
		}
		if total <= budget {
			return match{index: i, length: n, fuzz: FuzzEditDistanceMatch}, true
		}
	}

	return match{}, false
}

// scan returns the first window in file equal to want at or after start.
func scan(file, want []string, start int) (int, bool) {
	if start < 0 {
		start = 0
	}
	n := len(want)
	for i := start; i+n <= len(file); i++ {
		ok := true
		for j := 0; j < n; j++ {
			if file[i+j] != want[j] {
				ok = false
				break
			}
		}
		if ok {
			return i, true
		}
	}
	return 0, false
}

func trimRightLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimRight(l, " \t")
	}
	return out
}

// unescapeTabLines converts literal \t escapes in every line, reporting
// whether any line changed.
func unescapeTabLines(lines []string) ([]string, bool) {
	out := make([]string, len(lines))
	changed := false
	for i, l := range lines {
		out[i] = unescapeTabs(l)
		if out[i] != l {
			changed = true
		}
	}
	return out, changed
}

// indentDelta returns the leading whitespace the file line carries in
// excess of the context line, or "" when the file is not nested deeper.
func indentDelta(contextLine, fileLine string) string {
	ctxIndent := leadingWhitespace(contextLine)
	fileIndent := leadingWhitespace(fileLine)
	if ctxIndent == fileIndent {
		return ""
	}
	if strings.HasSuffix(fileIndent, ctxIndent) {
		return fileIndent[:len(fileIndent)-len(ctxIndent)]
	}
	return ""
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}
