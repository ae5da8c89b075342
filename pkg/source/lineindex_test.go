package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

func TestBuildLineIndex(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantLines int
	}{
		{name: "empty", input: "", wantLines: 1},
		{name: "single line no newline", input: "abc", wantLines: 1},
		{name: "single line with newline", input: "abc\n", wantLines: 2},
		{name: "lf lines", input: "a\nb\nc", wantLines: 3},
		{name: "crlf lines", input: "a\r\nb\r\n", wantLines: 3},
		{name: "bare cr", input: "a\rb", wantLines: 2},
		{name: "line separator", input: "a b", wantLines: 2},
		{name: "paragraph separator", input: "a b", wantLines: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := BuildLineIndex([]byte(tt.input))
			assert.Equal(t, tt.wantLines, idx.LineCount())
		})
	}
}

func TestLocFromIndex(t *testing.T) {
	idx := BuildLineIndex([]byte("var x;\nlet y;\r\nz\n"))

	tests := []struct {
		offset   int
		wantLine int
		wantCol  int
	}{
		{0, 1, 0},
		{5, 1, 5},
		{6, 1, 6},  // the newline itself
		{7, 2, 0},  // start of line 2
		{12, 2, 5},
		{15, 3, 0},
		{17, 4, 0}, // one past the final newline
	}

	for _, tt := range tests {
		pos, err := idx.LocFromIndex(tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.wantLine, pos.Line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, pos.Column, "offset %d", tt.offset)
	}

	_, err := idx.LocFromIndex(-1)
	assert.Error(t, err)
	_, err = idx.LocFromIndex(100)
	assert.Error(t, err)
}

func TestIndexFromLoc(t *testing.T) {
	idx := BuildLineIndex([]byte("ab\ncde\n"))

	offset, err := idx.IndexFromLoc(jsast.Position{Line: 2, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, 4, offset)

	_, err = idx.IndexFromLoc(jsast.Position{Line: 0, Column: 0})
	assert.Error(t, err)
	_, err = idx.IndexFromLoc(jsast.Position{Line: 5, Column: 0})
	assert.Error(t, err)
	_, err = idx.IndexFromLoc(jsast.Position{Line: 1, Column: 99})
	assert.Error(t, err)
}

// Offset/position conversions must round-trip for every valid offset.
func TestOffsetPositionRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"var x = 1;\nvar y = 2;\n",
		"crlf\r\nlines\r\nhere",
		"uni code seps\n",
		"trailing\n\n\n",
	}

	for _, input := range inputs {
		idx := BuildLineIndex([]byte(input))
		for offset := 0; offset <= len(input); offset++ {
			pos, err := idx.LocFromIndex(offset)
			require.NoError(t, err, "input %q offset %d", input, offset)
			back, err := idx.IndexFromLoc(pos)
			require.NoError(t, err, "input %q offset %d", input, offset)
			assert.Equal(t, offset, back, "input %q", input)
		}
	}
}

func FuzzLineIndexRoundTrip(f *testing.F) {
	f.Add("var x = 1;\n")
	f.Add("a\r\nb\rc\nd")
	f.Add("line sep par")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		idx := BuildLineIndex([]byte(input))
		for offset := 0; offset <= len(input); offset++ {
			pos, err := idx.LocFromIndex(offset)
			if err != nil {
				t.Fatalf("offset %d rejected: %v", offset, err)
			}
			back, err := idx.IndexFromLoc(pos)
			if err != nil {
				t.Fatalf("position %+v rejected: %v", pos, err)
			}
			if back != offset {
				t.Fatalf("round trip %d -> %+v -> %d", offset, pos, back)
			}
		}
	})
}
