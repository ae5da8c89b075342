package source

import (
	"fmt"
	"sort"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// lineTerminator describes the terminator ending a line.
type lineTerminator int

const (
	termNone lineTerminator = iota // last line, no terminator
	termLF
	termCR
	termCRLF
	termLS // U+2028 line separator
	termPS // U+2029 paragraph separator
)

// LineInfo holds the byte layout of a single line.
type LineInfo struct {
	// Start is the byte offset of the first byte of the line.
	Start int

	// TextEnd is the byte offset where the terminator begins.
	// Equals End for the final line.
	TextEnd int

	// End is the byte offset just past the terminator.
	End int
}

// LineIndex is a bidirectional map between byte offsets and (line, column)
// positions. Lines are 1-based; columns are 0-based byte columns. Lookups
// run in O(log L).
type LineIndex struct {
	lines []LineInfo
	size  int
}

// BuildLineIndex scans content for line terminators (LF, CR, CRLF, U+2028,
// U+2029) and builds the line table. Content must already be BOM-stripped.
func BuildLineIndex(content []byte) *LineIndex {
	idx := &LineIndex{size: len(content)}

	lineStart := 0
	i := 0
	for i < len(content) {
		term, width := terminatorAt(content, i)
		if term == termNone {
			i++
			continue
		}
		idx.lines = append(idx.lines, LineInfo{
			Start:   lineStart,
			TextEnd: i,
			End:     i + width,
		})
		i += width
		lineStart = i
	}

	// Final line, possibly empty, with no terminator.
	idx.lines = append(idx.lines, LineInfo{
		Start:   lineStart,
		TextEnd: len(content),
		End:     len(content),
	})

	return idx
}

// terminatorAt reports the terminator starting at offset i, if any.
func terminatorAt(content []byte, i int) (lineTerminator, int) {
	switch content[i] {
	case '\n':
		return termLF, 1
	case '\r':
		if i+1 < len(content) && content[i+1] == '\n' {
			return termCRLF, 2
		}
		return termCR, 1
	case 0xE2:
		// U+2028 is E2 80 A8; U+2029 is E2 80 A9.
		if i+2 < len(content) && content[i+1] == 0x80 {
			switch content[i+2] {
			case 0xA8:
				return termLS, 3
			case 0xA9:
				return termPS, 3
			}
		}
	}
	return termNone, 0
}

// LineCount returns the number of lines.
func (idx *LineIndex) LineCount() int {
	return len(idx.lines)
}

// Line returns the layout of the 1-based line number.
// Returns a zero LineInfo and false if out of range.
func (idx *LineIndex) Line(line int) (LineInfo, bool) {
	if line < 1 || line > len(idx.lines) {
		return LineInfo{}, false
	}
	return idx.lines[line-1], true
}

// LocFromIndex converts a byte offset to a position.
// Offsets in [0, size] are valid; size maps to the position just past the
// final character.
func (idx *LineIndex) LocFromIndex(offset int) (jsast.Position, error) {
	if offset < 0 || offset > idx.size {
		return jsast.Position{}, fmt.Errorf("offset %d out of range [0, %d]", offset, idx.size)
	}

	lineIdx := sort.Search(len(idx.lines), func(i int) bool {
		return idx.lines[i].End > offset
	})
	if lineIdx >= len(idx.lines) {
		lineIdx = len(idx.lines) - 1
	}

	line := idx.lines[lineIdx]
	return jsast.Position{Line: lineIdx + 1, Column: offset - line.Start}, nil
}

// IndexFromLoc converts a position back to a byte offset.
// The column may point at any byte of the line, including the terminator
// span and, on the final line, one past the end of content.
func (idx *LineIndex) IndexFromLoc(pos jsast.Position) (int, error) {
	if pos.Line < 1 || pos.Line > len(idx.lines) {
		return 0, fmt.Errorf("line %d out of range [1, %d]", pos.Line, len(idx.lines))
	}
	if pos.Column < 0 {
		return 0, fmt.Errorf("column %d is negative", pos.Column)
	}

	line := idx.lines[pos.Line-1]
	offset := line.Start + pos.Column

	if offset < line.End {
		return offset, nil
	}
	// The final line has no terminator; allow pointing one past the end.
	if pos.Line == len(idx.lines) && offset == idx.size {
		return offset, nil
	}
	return 0, fmt.Errorf("column %d out of range on line %d", pos.Column, pos.Line)
}
