package patch

import "fmt"

// AssembleChanges diffs two path-to-content maps by value equality. It is
// the generic before/after entry point, independent of the patch text
// format.
func AssembleChanges(before, after map[string]string) Commit {
	commit := make(Commit)
	for path, old := range before {
		now, ok := after[path]
		switch {
		case !ok:
			commit[path] = FileChange{Type: ChangeDelete, OldContent: old}
		case now != old:
			commit[path] = FileChange{Type: ChangeUpdate, OldContent: old, NewContent: now}
		}
	}
	for path, now := range after {
		if _, ok := before[path]; !ok {
			commit[path] = FileChange{Type: ChangeAdd, NewContent: now}
		}
	}
	return commit
}

// ToCommit consumes a Patch and produces the final change-set. Updates
// re-derive their content through the materializer; adds and deletes
// pass their literal content through. A move path on an update becomes
// a combined rename plus content replace.
func ToCommit(p *Patch, docs DocumentStore) (Commit, error) {
	commit := make(Commit)
	for _, path := range p.Paths() {
		action := p.Action(path)
		switch action.Type {
		case ActionAdd:
			commit[path] = FileChange{Type: ChangeAdd, NewContent: action.Content}
		case ActionDelete:
			doc, err := docs.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			commit[path] = FileChange{Type: ChangeDelete, OldContent: doc.Text}
		case ActionUpdate:
			doc, err := docs.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
			updated, err := ApplyChunks(doc.Text, action.Chunks)
			if err != nil {
				return nil, fmt.Errorf("materialize %s: %w", path, err)
			}
			commit[path] = FileChange{
				Type:       ChangeUpdate,
				OldContent: doc.Text,
				NewContent: updated,
				MovePath:   action.MovePath,
			}
		default:
			return nil, fmt.Errorf("%s: unknown action type %q", path, action.Type)
		}
	}
	return commit, nil
}

// Process is the one-call path from patch text to change-set.
func Process(text string, docs DocumentStore) (Commit, error) {
	p, err := Build(text, docs)
	if err != nil {
		return nil, err
	}
	return ToCommit(p, docs)
}
