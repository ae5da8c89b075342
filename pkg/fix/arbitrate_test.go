package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

func edit(start, end int, text string) TextEdit {
	return TextEdit{Range: jsast.Range{Start: start, End: end}, NewText: text}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		edits   []TextEdit
		length  int
		wantErr bool
	}{
		{name: "empty", edits: nil, length: 10},
		{name: "in range", edits: []TextEdit{edit(0, 5, "x")}, length: 10},
		{name: "at boundary", edits: []TextEdit{edit(10, 10, "x")}, length: 10},
		{name: "negative start", edits: []TextEdit{edit(-1, 3, "")}, length: 10, wantErr: true},
		{name: "inverted", edits: []TextEdit{edit(5, 3, "")}, length: 10, wantErr: true},
		{name: "past end", edits: []TextEdit{edit(0, 11, "")}, length: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.edits, tt.length)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestArbitrate(t *testing.T) {
	tests := []struct {
		name        string
		edits       []TextEdit
		wantKept    int
		wantSkipped int
	}{
		{name: "disjoint", edits: []TextEdit{edit(0, 3, "a"), edit(5, 8, "b")}, wantKept: 2},
		{name: "touching endpoints do not conflict",
			edits: []TextEdit{edit(0, 3, "a"), edit(3, 6, "b")}, wantKept: 2},
		{name: "overlap drops later",
			edits: []TextEdit{edit(0, 5, "a"), edit(3, 8, "b")}, wantKept: 1, wantSkipped: 1},
		{name: "identical ranges keep first",
			edits: []TextEdit{edit(0, 5, "a"), edit(0, 5, "b")}, wantKept: 1, wantSkipped: 1},
		{name: "insertions at same point both apply",
			edits: []TextEdit{edit(4, 4, "a"), edit(4, 4, "b")}, wantKept: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Sort(tt.edits)
			kept, skipped := Arbitrate(tt.edits)
			assert.Len(t, kept, tt.wantKept)
			assert.Len(t, skipped, tt.wantSkipped)

			// Accepted edits are pairwise disjoint.
			for i := 1; i < len(kept); i++ {
				assert.GreaterOrEqual(t, kept[i].Range.Start, kept[i-1].Range.End)
			}
		})
	}
}

func TestApply(t *testing.T) {
	content := []byte("var x = 1;")

	edits := []TextEdit{edit(0, 3, "let"), edit(8, 9, "42")}
	Sort(edits)
	kept, skipped := Arbitrate(edits)
	require.Empty(t, skipped)

	assert.Equal(t, "let x = 42;", string(Apply(content, kept)))
	assert.Equal(t, "var x = 1;", string(content), "input must not change")
}

// Applying disjoint fixes is order-independent: left-to-right equals
// right-to-left applied one at a time.
func TestApplyOrderIndependence(t *testing.T) {
	content := "abcdefghij"
	edits := []TextEdit{edit(1, 3, "XY"), edit(5, 6, ""), edit(8, 8, "zz")}

	Sort(edits)
	kept, _ := Arbitrate(edits)
	allAtOnce := string(Apply([]byte(content), kept))

	// Right-to-left single application never shifts earlier offsets.
	oneAtATime := content
	for i := len(kept) - 1; i >= 0; i-- {
		e := kept[i]
		oneAtATime = oneAtATime[:e.Range.Start] + e.NewText + oneAtATime[e.Range.End:]
	}
	assert.Equal(t, oneAtATime, allAtOnce)
}

func TestBuilderMerged(t *testing.T) {
	src := []byte("var x = 1;")

	b := NewBuilder()
	_, ok := b.Merged(src)
	assert.False(t, ok, "empty builder yields no edit")

	b.Replace(0, 3, "let")
	b.Replace(8, 9, "2")
	merged, ok := b.Merged(src)
	require.True(t, ok)
	assert.Equal(t, jsast.Range{Start: 0, End: 9}, merged.Range)
	assert.Equal(t, "let x = 2", merged.NewText)
}

func TestBuilderHelpers(t *testing.T) {
	b := NewBuilder()
	b.InsertBefore(jsast.Range{Start: 5, End: 8}, "pre")
	b.InsertAfter(jsast.Range{Start: 5, End: 8}, "post")
	b.Remove(jsast.Range{Start: 1, End: 2})

	edits := b.Edits()
	require.Len(t, edits, 3)
	assert.True(t, edits[0].IsInsert())
	assert.Equal(t, 5, edits[0].Range.Start)
	assert.Equal(t, 8, edits[1].Range.Start)
	assert.True(t, edits[2].IsDelete())
}

func FuzzArbitrateDisjoint(f *testing.F) {
	f.Add(0, 3, 2, 6, 5, 9)
	f.Add(1, 1, 1, 1, 0, 0)

	f.Fuzz(func(t *testing.T, s1, e1, s2, e2, s3, e3 int) {
		clamp := func(v int) int {
			if v < 0 {
				v = -v
			}
			return v % 32
		}
		mk := func(s, e int) TextEdit {
			s, e = clamp(s), clamp(e)
			if e < s {
				s, e = e, s
			}
			return edit(s, e, "x")
		}
		edits := []TextEdit{mk(s1, e1), mk(s2, e2), mk(s3, e3)}
		Sort(edits)
		kept, _ := Arbitrate(edits)
		for i := 1; i < len(kept); i++ {
			if kept[i].Range.Start < kept[i-1].Range.End {
				t.Fatalf("accepted edits overlap: %+v", kept)
			}
		}
	})
}
