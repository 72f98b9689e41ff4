package patch

import (
	"fmt"
	"sort"
	"strings"
)

// ApplyChunks replays resolved chunks against the original content and
// returns the updated content. Chunks may arrive in patch order; they
// are replayed in file order and must not overlap or run past the end
// of the file.
func ApplyChunks(content string, chunks []Chunk) (string, error) {
	lines := strings.Split(content, "\n")

	ordered := make([]Chunk, len(chunks))
	copy(ordered, chunks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrigIndex < ordered[j].OrigIndex
	})

	out := make([]string, 0, len(lines))
	cursor := 0
	for i, c := range ordered {
		if c.OrigIndex > len(lines) {
			return "", fmt.Errorf("chunk %d: start %d exceeds file length %d", i+1, c.OrigIndex, len(lines))
		}
		if c.OrigIndex < cursor {
			return "", fmt.Errorf("chunk %d: start %d overlaps previous chunk ending at %d", i+1, c.OrigIndex, cursor)
		}
		if c.OrigIndex+len(c.DelLines) > len(lines) {
			return "", fmt.Errorf("chunk %d: deletes past end of file", i+1)
		}
		out = append(out, lines[cursor:c.OrigIndex]...)
		out = append(out, c.InsLines...)
		cursor = c.OrigIndex + len(c.DelLines)
	}
	out = append(out, lines[cursor:]...)
	return strings.Join(out, "\n"), nil
}
