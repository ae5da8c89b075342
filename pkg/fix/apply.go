package fix

import "bytes"

// Apply splices a sorted, non-conflicting slice of edits into content and
// returns the new text. Edits must come from Arbitrate (sorted, pairwise
// disjoint); the splice runs left to right in a single pass.
func Apply(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	delta := 0
	for _, e := range edits {
		delta += len(e.NewText) - e.Range.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.Range.Start])
		out.WriteString(e.NewText)
		cursor = e.Range.End
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
