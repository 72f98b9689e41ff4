package patch

import (
	"strings"
	"testing"
)

func TestApplyChunks(t *testing.T) {
	content := "a\nb\nc\nd\ne"

	tests := []struct {
		name    string
		chunks  []Chunk
		want    string
		wantErr string
	}{
		{
			name:   "no chunks",
			chunks: nil,
			want:   content,
		},
		{
			name: "replace middle",
			chunks: []Chunk{
				{OrigIndex: 2, DelLines: []string{"c"}, InsLines: []string{"C"}},
			},
			want: "a\nb\nC\nd\ne",
		},
		{
			name: "pure insert at front",
			chunks: []Chunk{
				{OrigIndex: 0, InsLines: []string{"zero"}},
			},
			want: "zero\na\nb\nc\nd\ne",
		},
		{
			name: "append at end",
			chunks: []Chunk{
				{OrigIndex: 5, InsLines: []string{"f"}},
			},
			want: "a\nb\nc\nd\ne\nf",
		},
		{
			name: "delete only",
			chunks: []Chunk{
				{OrigIndex: 1, DelLines: []string{"b", "c"}},
			},
			want: "a\nd\ne",
		},
		{
			name: "chunks arrive out of file order",
			chunks: []Chunk{
				{OrigIndex: 3, DelLines: []string{"d"}, InsLines: []string{"D"}},
				{OrigIndex: 0, DelLines: []string{"a"}, InsLines: []string{"A"}},
			},
			want: "A\nb\nc\nD\ne",
		},
		{
			name: "start past end",
			chunks: []Chunk{
				{OrigIndex: 9, InsLines: []string{"x"}},
			},
			wantErr: "exceeds",
		},
		{
			name: "overlapping chunks",
			chunks: []Chunk{
				{OrigIndex: 0, DelLines: []string{"a", "b"}},
				{OrigIndex: 1, DelLines: []string{"b"}},
			},
			wantErr: "overlaps",
		},
		{
			name: "delete runs past end",
			chunks: []Chunk{
				{OrigIndex: 4, DelLines: []string{"e", "f"}},
			},
			wantErr: "past end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyChunks(content, tt.chunks)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyChunks() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
