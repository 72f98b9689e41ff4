// Package patch implements the V4A patch dialect: a line-oriented diff
// format emitted by language models, parsed and reconciled against the
// current contents of the files it references. The package is pure; it
// never touches the filesystem. Callers feed documents in through a
// DocumentStore and receive a Commit describing the resolved changes.
package patch

import "strings"

// Patch text markers.
const (
	BeginPatchMarker = "*** Begin Patch"
	EndPatchMarker   = "*** End Patch"
	AddFileMarker    = "*** Add File: "
	DeleteFileMarker = "*** Delete File: "
	UpdateFileMarker = "*** Update File: "
	MoveToMarker     = "*** Move to: "
	EndOfFileMarker  = "*** End of File"
	HunkMarker       = "@@"
)

// Fuzz is a bitset recording which permissive matching strategies were
// required to locate a hunk. Zero means every hunk matched exactly.
type Fuzz uint32

const (
	// FuzzIgnoredTrailingWhitespace - matched after trimming trailing whitespace per line.
	FuzzIgnoredTrailingWhitespace Fuzz = 1 << iota
	// FuzzNormalizedExplicitTab - matched after converting literal "\t" escape text to real tabs.
	FuzzNormalizedExplicitTab
	// FuzzIgnoredWhitespace - matched after trimming leading and trailing whitespace per line.
	FuzzIgnoredWhitespace
	// FuzzEditDistanceMatch - matched within the bounded Levenshtein budget.
	FuzzEditDistanceMatch
	// FuzzIgnoredEofSignal - an end-of-file sentinel was present but the hunk matched elsewhere.
	FuzzIgnoredEofSignal
	// FuzzMergedOperatorSection - an unmarked line between two same-operator lines was merged into that operator.
	FuzzMergedOperatorSection
	// FuzzNormalizedExplicitNL - a single-line context was expanded from literal "\n" escape text.
	FuzzNormalizedExplicitNL
)

// Has reports whether all bits in flag are set.
func (f Fuzz) Has(flag Fuzz) bool { return f&flag == flag }

// String renders the set bits for logs and error messages.
func (f Fuzz) String() string {
	if f == 0 {
		return "exact"
	}
	names := []struct {
		bit  Fuzz
		name string
	}{
		{FuzzIgnoredTrailingWhitespace, "trailing-whitespace"},
		{FuzzNormalizedExplicitTab, "explicit-tab"},
		{FuzzIgnoredWhitespace, "whitespace"},
		{FuzzEditDistanceMatch, "edit-distance"},
		{FuzzIgnoredEofSignal, "ignored-eof"},
		{FuzzMergedOperatorSection, "merged-operator"},
		{FuzzNormalizedExplicitNL, "explicit-newline"},
	}
	var parts []string
	for _, n := range names {
		if f.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ActionType identifies the kind of per-file operation in a patch.
type ActionType string

const (
	ActionAdd    ActionType = "add"
	ActionDelete ActionType = "delete"
	ActionUpdate ActionType = "update"
)

// Chunk is one contiguous edit anchored into the original file.
// OrigIndex is the zero-based line offset into the original file where
// the chunk begins; DelLines are removed starting there and InsLines
// inserted in their place.
type Chunk struct {
	OrigIndex int
	DelLines  []string
	InsLines  []string
}

// FileAction is the resolved operation for a single path.
// Content is set for adds; Chunks and optionally MovePath for updates.
type FileAction struct {
	Type     ActionType
	Content  string
	Chunks   []Chunk
	MovePath string
}

// Patch maps each referenced path to its resolved action. A path may
// appear at most once. Iteration over Paths() follows patch order, which
// keeps downstream output deterministic.
type Patch struct {
	actions map[string]*FileAction
	order   []string
	fuzz    Fuzz
}

func newPatch() *Patch {
	return &Patch{actions: make(map[string]*FileAction)}
}

func (p *Patch) add(path string, action *FileAction) {
	if _, ok := p.actions[path]; !ok {
		p.order = append(p.order, path)
	}
	p.actions[path] = action
}

// Action returns the action recorded for path, or nil.
func (p *Patch) Action(path string) *FileAction { return p.actions[path] }

// Paths returns the referenced paths in patch order.
func (p *Patch) Paths() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of file actions in the patch.
func (p *Patch) Len() int { return len(p.order) }

// Fuzz returns the union of relaxation flags needed across all hunks.
func (p *Patch) Fuzz() Fuzz { return p.fuzz }

// ChangeType identifies the kind of change in a Commit entry.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeUpdate ChangeType = "update"
	ChangeDelete ChangeType = "delete"
)

// FileChange is one fully materialized per-file change, ready for an
// external layer to write, delete, or rename.
type FileChange struct {
	Type       ChangeType
	OldContent string
	NewContent string
	MovePath   string
}

// Commit maps each path to its materialized change.
type Commit map[string]FileChange
