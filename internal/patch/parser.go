package patch

import "strings"

// Document is the loaded text of one referenced file.
type Document struct {
	Text       string
	LanguageID string
}

// DocumentStore resolves paths to current file contents. Loading is the
// caller's concern; the parser performs no I/O of its own.
type DocumentStore interface {
	Load(path string) (Document, error)
	Exists(path string) bool
}

// Build parses patch text against the documents in docs and returns an
// immutable Patch with every hunk resolved to a concrete file offset.
// Format errors and context errors abort the whole patch; nothing is
// partially resolved.
func Build(text string, docs DocumentStore) (*Patch, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != BeginPatchMarker {
		return nil, formatErrorf(1, "patch must start with %q", BeginPatchMarker)
	}
	// A dropped terminal sentinel is tolerated once; only an explicit
	// malformed terminal token fails, as an unknown directive below.
	if lines[len(lines)-1] != EndPatchMarker {
		lines = append(lines, EndPatchMarker)
	}

	p := &parser{
		lines: lines,
		index: 1,
		docs:  docs,
		patch: newPatch(),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.patch, nil
}

type parser struct {
	lines []string
	index int
	docs  DocumentStore
	patch *Patch
}

func (p *parser) current() string { return p.lines[p.index] }

// lineNo is the 1-based patch line for error reporting.
func (p *parser) lineNo() int { return p.index + 1 }

func (p *parser) run() error {
	for p.index < len(p.lines) {
		line := p.current()
		switch {
		case line == EndPatchMarker:
			p.index++
			for p.index < len(p.lines) {
				if strings.TrimSpace(p.current()) != "" {
					return formatErrorf(p.lineNo(), "unexpected content after %q", EndPatchMarker)
				}
				p.index++
			}
			return nil
		case strings.HasPrefix(line, UpdateFileMarker):
			if err := p.parseUpdate(strings.TrimSpace(strings.TrimPrefix(line, UpdateFileMarker))); err != nil {
				return err
			}
		case strings.HasPrefix(line, DeleteFileMarker):
			if err := p.parseDelete(strings.TrimSpace(strings.TrimPrefix(line, DeleteFileMarker))); err != nil {
				return err
			}
		case strings.HasPrefix(line, AddFileMarker):
			if err := p.parseAdd(strings.TrimSpace(strings.TrimPrefix(line, AddFileMarker))); err != nil {
				return err
			}
		default:
			return formatErrorf(p.lineNo(), "unknown directive: %q", line)
		}
	}
	return formatErrorf(0, "missing %q", EndPatchMarker)
}

func (p *parser) checkFresh(path string) error {
	if path == "" {
		return formatErrorf(p.lineNo(), "empty file path in directive")
	}
	if p.patch.Action(path) != nil {
		return formatErrorf(p.lineNo(), "duplicate path in patch: %s", path)
	}
	return nil
}

func (p *parser) parseDelete(path string) error {
	if err := p.checkFresh(path); err != nil {
		return err
	}
	if !p.docs.Exists(path) {
		return formatErrorf(p.lineNo(), "cannot delete missing file: %s", path)
	}
	p.index++
	p.patch.add(path, &FileAction{Type: ActionDelete})
	return nil
}

func (p *parser) parseAdd(path string) error {
	if err := p.checkFresh(path); err != nil {
		return err
	}
	if p.docs.Exists(path) {
		return formatErrorf(p.lineNo(), "cannot add existing file: %s", path)
	}
	p.index++
	var body []string
	for p.index < len(p.lines) {
		line := p.current()
		if strings.HasPrefix(line, "***") {
			break
		}
		if !strings.HasPrefix(line, "+") {
			return formatErrorf(p.lineNo(), "add section for %s: expected '+' line, got %q", path, line)
		}
		body = append(body, line[1:])
		p.index++
	}
	content := ""
	if len(body) > 0 {
		content = strings.Join(body, "\n") + "\n"
	}
	p.patch.add(path, &FileAction{Type: ActionAdd, Content: content})
	return nil
}

func (p *parser) parseUpdate(path string) error {
	if err := p.checkFresh(path); err != nil {
		return err
	}
	if !p.docs.Exists(path) {
		return formatErrorf(p.lineNo(), "cannot update missing file: %s", path)
	}
	doc, err := p.docs.Load(path)
	if err != nil {
		return formatErrorf(p.lineNo(), "load %s: %v", path, err)
	}
	p.index++

	movePath := ""
	if p.index < len(p.lines) && strings.HasPrefix(p.current(), MoveToMarker) {
		movePath = strings.TrimSpace(strings.TrimPrefix(p.current(), MoveToMarker))
		if movePath == "" {
			return formatErrorf(p.lineNo(), "empty destination for %q", strings.TrimSpace(MoveToMarker))
		}
		if p.patch.Action(movePath) != nil {
			return formatErrorf(p.lineNo(), "move destination collides with patched path: %s", movePath)
		}
		p.index++
	}

	fileLines := strings.Split(doc.Text, "\n")
	fileStyle := GuessIndentation(fileLines, DefaultTabSize, true)

	res := newResolver(fileLines)
	cursor := 0
	var chunks []Chunk
	for p.index < len(p.lines) {
		line := p.current()
		if strings.HasPrefix(line, "***") && line != EndOfFileMarker {
			break
		}
		if line == HunkMarker || strings.HasPrefix(line, HunkMarker+" ") {
			// Hunk label; purely a separator.
			p.index++
			continue
		}
		resolved, next, err := p.resolveSection(path, res, fileStyle, cursor)
		if err != nil {
			return err
		}
		chunks = append(chunks, resolved...)
		cursor = next
	}

	p.patch.add(path, &FileAction{Type: ActionUpdate, Chunks: chunks, MovePath: movePath})
	return nil
}

// resolveSection segments the next hunk and locates it in the file.
// When plain segmentation fails to resolve, fuzz-merge recovery retries
// with 1..ambiguities unmarked lines reinterpreted as their surrounding
// operator.
func (p *parser) resolveSection(path string, res *resolver, style IndentStyle, cursor int) ([]Chunk, int, error) {
	base := segmentSection(p.lines, p.index, 0)
	for merge := 0; ; merge++ {
		sec := base
		if merge > 0 {
			sec = segmentSection(p.lines, p.index, merge)
		}
		m, ok := res.find(sec.old, cursor, sec.eof)
		if !ok && cursor > 0 {
			// Hunk order may not follow file order; retry from the top.
			m, ok = res.find(sec.old, 0, sec.eof)
		}
		if !ok {
			if merge < base.ambiguities {
				continue
			}
			return nil, 0, contextError(path, sec.old, sec.eof)
		}

		fuzz := m.fuzz
		if merge > 0 {
			fuzz |= FuzzMergedOperatorSection
		}
		p.patch.fuzz |= fuzz

		chunks := make([]Chunk, len(sec.chunks))
		copy(chunks, sec.chunks)
		if fuzz.Has(FuzzNormalizedExplicitNL) {
			// Newline expansion changes how many file lines each old
			// line covers, so relative chunk offsets are remapped
			// through the expanded counts before anchoring.
			offsets := make([]int, len(sec.old)+1)
			for i, l := range sec.old {
				offsets[i+1] = offsets[i] + strings.Count(unescapeNewlines(unescapeTabs(l)), "\n") + 1
			}
			for i := range chunks {
				chunks[i].OrigIndex = offsets[chunks[i].OrigIndex]
			}
		}
		for i := range chunks {
			chunks[i].OrigIndex += m.index
			if fuzz.Has(FuzzNormalizedExplicitTab) {
				chunks[i].DelLines, _ = unescapeTabLines(chunks[i].DelLines)
				chunks[i].InsLines, _ = unescapeTabLines(chunks[i].InsLines)
			}
			if fuzz.Has(FuzzNormalizedExplicitNL) {
				chunks[i].DelLines = expandNewlines(chunks[i].DelLines)
				chunks[i].InsLines = expandNewlines(chunks[i].InsLines)
			}
			chunks[i].InsLines = reconcileInsertions(chunks[i].InsLines, style, m.indentDelta)
		}

		p.index = sec.next
		return chunks, m.index + m.length, nil
	}
}

// expandNewlines splits any line carrying literal \n escape text into
// the real lines it encodes.
func expandNewlines(lines []string) []string {
	var out []string
	for _, l := range lines {
		out = append(out, strings.Split(unescapeNewlines(l), "\n")...)
	}
	return out
}
