package patch

import "testing"

func TestAssembleChanges(t *testing.T) {
	before := map[string]string{
		"same.txt":    "unchanged",
		"changed.txt": "old body",
		"gone.txt":    "removed body",
	}
	after := map[string]string{
		"same.txt":    "unchanged",
		"changed.txt": "new body",
		"fresh.txt":   "created body",
	}

	commit := AssembleChanges(before, after)

	if _, ok := commit["same.txt"]; ok {
		t.Error("unchanged file must not appear in the commit")
	}
	if c := commit["changed.txt"]; c.Type != ChangeUpdate || c.OldContent != "old body" || c.NewContent != "new body" {
		t.Errorf("changed.txt = %+v", c)
	}
	if c := commit["gone.txt"]; c.Type != ChangeDelete || c.OldContent != "removed body" {
		t.Errorf("gone.txt = %+v", c)
	}
	if c := commit["fresh.txt"]; c.Type != ChangeAdd || c.NewContent != "created body" {
		t.Errorf("fresh.txt = %+v", c)
	}
}

func TestProcess(t *testing.T) {
	docs := memDocs{
		"keep.go":   "package keep\n\nvar x = 1",
		"remove.go": "package remove",
	}
	patchText := `*** Begin Patch
*** Update File: keep.go
*** Move to: kept.go
-var x = 1
+var x = 2
*** Delete File: remove.go
*** Add File: added.go
+package added
*** End Patch`

	commit, err := Process(patchText, docs)
	if err != nil {
		t.Fatalf("Process() error: %v", err)
	}
	if len(commit) != 3 {
		t.Fatalf("commit has %d entries, want 3", len(commit))
	}

	up := commit["keep.go"]
	if up.Type != ChangeUpdate || up.MovePath != "kept.go" {
		t.Errorf("keep.go = %+v", up)
	}
	if up.NewContent != "package keep\n\nvar x = 2" {
		t.Errorf("keep.go new content = %q", up.NewContent)
	}
	if del := commit["remove.go"]; del.Type != ChangeDelete || del.OldContent != "package remove" {
		t.Errorf("remove.go = %+v", del)
	}
	if add := commit["added.go"]; add.Type != ChangeAdd || add.NewContent != "package added\n" {
		t.Errorf("added.go = %+v", add)
	}
}

func TestToCommit_MaterializeFailure(t *testing.T) {
	docs := memDocs{"f.txt": "a\nb"}
	p := newPatch()
	p.add("f.txt", &FileAction{
		Type: ActionUpdate,
		Chunks: []Chunk{
			{OrigIndex: 0, DelLines: []string{"a", "b", "c"}},
		},
	})
	if _, err := ToCommit(p, docs); err == nil {
		t.Fatal("expected materialize error")
	}
}
