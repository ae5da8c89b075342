// Package fix provides text edits, the conflict arbitrator, and edit
// application for auto-fixing.
package fix

import "github.com/yaklabco/gojslint/pkg/jsast"

// TextEdit is a single text replacement: source[Range.Start:Range.End] is
// replaced by NewText. An empty range inserts; empty NewText deletes.
type TextEdit struct {
	// Range is the half-open byte span being replaced.
	Range jsast.Range

	// NewText is the replacement text.
	NewText string
}

// IsInsert returns true for pure insertions.
func (e TextEdit) IsInsert() bool {
	return e.Range.IsEmpty()
}

// IsDelete returns true for pure deletions.
func (e TextEdit) IsDelete() bool {
	return e.NewText == "" && !e.Range.IsEmpty()
}

// Builder accumulates the edits of a single fix. Rules receive a Builder
// when their fix function is invoked (lazily, only when fixing is enabled).
type Builder struct {
	edits []TextEdit
}

// NewBuilder creates an empty edit builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Edits returns the accumulated edits.
func (b *Builder) Edits() []TextEdit {
	return b.edits
}

// ReplaceRange replaces the bytes in r with text.
func (b *Builder) ReplaceRange(r jsast.Range, text string) *Builder {
	b.edits = append(b.edits, TextEdit{Range: r, NewText: text})
	return b
}

// Replace replaces the bytes [start, end) with text.
func (b *Builder) Replace(start, end int, text string) *Builder {
	return b.ReplaceRange(jsast.Range{Start: start, End: end}, text)
}

// InsertBefore inserts text immediately before r.
func (b *Builder) InsertBefore(r jsast.Range, text string) *Builder {
	return b.Replace(r.Start, r.Start, text)
}

// InsertAfter inserts text immediately after r.
func (b *Builder) InsertAfter(r jsast.Range, text string) *Builder {
	return b.Replace(r.End, r.End, text)
}

// Remove deletes the bytes in r.
func (b *Builder) Remove(r jsast.Range) *Builder {
	return b.ReplaceRange(r, "")
}

// RemoveRange deletes the bytes [start, end).
func (b *Builder) RemoveRange(start, end int) *Builder {
	return b.Replace(start, end, "")
}

// Merged collapses the accumulated edits into one edit covering their
// joint span, with intermediate source text preserved. A rule's fix is a
// single logical edit for arbitration purposes, however many builder
// calls produced it. Returns the zero edit and false when empty.
func (b *Builder) Merged(src []byte) (TextEdit, bool) {
	if len(b.edits) == 0 {
		return TextEdit{}, false
	}

	sorted := make([]TextEdit, len(b.edits))
	copy(sorted, b.edits)
	Sort(sorted)

	start := sorted[0].Range.Start
	end := sorted[0].Range.End
	for _, e := range sorted[1:] {
		if e.Range.End > end {
			end = e.Range.End
		}
	}

	var text []byte
	cursor := start
	for _, e := range sorted {
		if e.Range.Start < cursor {
			// Overlapping edits inside one fix; keep the first.
			continue
		}
		text = append(text, src[cursor:e.Range.Start]...)
		text = append(text, e.NewText...)
		cursor = e.Range.End
	}
	text = append(text, src[cursor:end]...)

	return TextEdit{Range: jsast.Range{Start: start, End: end}, NewText: string(text)}, true
}
