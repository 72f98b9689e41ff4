package ui

import (
	"strings"
	"testing"

	"github.com/kvit-s/v4apply/internal/patch"
)

func TestRenderDiff(t *testing.T) {
	change := patch.FileChange{
		Type:       patch.ChangeUpdate,
		OldContent: "a\nb\nc\n",
		NewContent: "a\nB\nc\n",
	}
	out, err := RenderDiff("f.txt", change, 3)
	if err != nil {
		t.Fatalf("RenderDiff() error: %v", err)
	}
	for _, want := range []string{"--- f.txt", "+++ f.txt", "-b", "+B"} {
		if !strings.Contains(out, want) {
			t.Errorf("diff missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDiffMove(t *testing.T) {
	change := patch.FileChange{
		Type:       patch.ChangeUpdate,
		OldContent: "x\n",
		NewContent: "y\n",
		MovePath:   "renamed.txt",
	}
	out, err := RenderDiff("orig.txt", change, 3)
	if err != nil {
		t.Fatalf("RenderDiff() error: %v", err)
	}
	if !strings.Contains(out, "--- orig.txt") || !strings.Contains(out, "+++ renamed.txt") {
		t.Errorf("move headers wrong:\n%s", out)
	}
}

func TestRenderDiffAdd(t *testing.T) {
	change := patch.FileChange{Type: patch.ChangeAdd, NewContent: "hello\n"}
	out, err := RenderDiff("new.txt", change, 3)
	if err != nil {
		t.Fatalf("RenderDiff() error: %v", err)
	}
	if !strings.Contains(out, "+hello") {
		t.Errorf("add diff wrong:\n%s", out)
	}
}
