package patch

import "strings"

// section is the raw segmentation of one update hunk: the context text
// to locate in the file (context plus deleted lines, in file order) and
// the chunks to replay once located. Chunk indices are relative to the
// section start until the resolver anchors them.
type section struct {
	old    []string
	chunks []Chunk
	next   int // index of the first patch line after the section
	eof    bool
	// ambiguities counts unmarked lines sitting between two lines that
	// share the same add/delete operator; fuzz-merge recovery may
	// reinterpret up to that many of them.
	ambiguities int
}

type opLine struct {
	op   byte // ' ', '-', '+'
	text string
}

// segmentSection classifies patch lines from start until the next
// boundary. merge is the number of recoverable ambiguities to
// reinterpret as their surrounding operator instead of context; 0 is
// the plain reading.
func segmentSection(lines []string, start, merge int) section {
	end := start
	eof := false
	for end < len(lines) {
		line := lines[end]
		if strings.HasPrefix(line, "***") || strings.HasPrefix(line, HunkMarker) {
			if line == EndOfFileMarker {
				eof = true
				end++
			}
			break
		}
		end++
	}
	next := end
	if eof {
		end-- // the sentinel itself is not part of the body
	}

	body := lines[start:end]
	// A spurious blank separator before the next directive is dropped.
	if len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
		body = body[:len(body)-1]
	}

	ops, ambiguities := classify(body, merge)

	sec := section{next: next, eof: eof, ambiguities: ambiguities}
	var cur *Chunk
	flush := func() {
		if cur != nil && (len(cur.DelLines) > 0 || len(cur.InsLines) > 0) {
			sec.chunks = append(sec.chunks, *cur)
		}
		cur = nil
	}
	for _, ol := range ops {
		switch ol.op {
		case ' ':
			flush()
			sec.old = append(sec.old, ol.text)
		case '-':
			if cur == nil {
				cur = &Chunk{OrigIndex: len(sec.old)}
			}
			cur.DelLines = append(cur.DelLines, ol.text)
			sec.old = append(sec.old, ol.text)
		case '+':
			if cur == nil {
				cur = &Chunk{OrigIndex: len(sec.old)}
			}
			cur.InsLines = append(cur.InsLines, ol.text)
		}
	}
	flush()
	return sec
}

// classify assigns an operator to every body line. A line with no
// recognized marker is read as context with a synthesized leading
// space, unless it sits between two lines sharing the same add/delete
// operator, in which case the first merge such lines adopt that
// operator instead.
func classify(body []string, merge int) ([]opLine, int) {
	plain := make([]opLine, len(body))
	marked := make([]bool, len(body))
	for i, line := range body {
		switch {
		case strings.HasPrefix(line, "+"):
			plain[i] = opLine{'+', line[1:]}
			marked[i] = true
		case strings.HasPrefix(line, "-"):
			plain[i] = opLine{'-', line[1:]}
			marked[i] = true
		case strings.HasPrefix(line, " "):
			plain[i] = opLine{' ', line[1:]}
			marked[i] = true
		default:
			// Missing marker; tolerated as context.
			plain[i] = opLine{' ', line}
		}
	}

	ambiguities := 0
	mergedSoFar := 0
	for i := range plain {
		if marked[i] || plain[i].op != ' ' {
			continue
		}
		if i == 0 || i == len(plain)-1 {
			continue
		}
		prev, next := plain[i-1].op, plain[i+1].op
		if prev == next && (prev == '+' || prev == '-') {
			ambiguities++
			if mergedSoFar < merge {
				plain[i].op = prev
				mergedSoFar++
			}
		}
	}
	return plain, ambiguities
}
