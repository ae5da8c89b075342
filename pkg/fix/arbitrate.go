package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit with an invalid range.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.Range.Start, e.Edit.Range.End, e.Message)
}

// Validate checks that every edit's range lies within [0, contentLen].
// Returns the first invalid edit found, or nil.
func Validate(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.Range.Start < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.Range.End < edit.Range.Start:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.Range.End > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.Range.End, contentLen),
			}
		}
	}
	return nil
}

// Sort orders edits by (range start ascending, range end ascending),
// producing the deterministic arbitration order.
func Sort(edits []TextEdit) {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Range.Start != edits[j].Range.Start {
			return edits[i].Range.Start < edits[j].Range.Start
		}
		return edits[i].Range.End < edits[j].Range.End
	})
}

// Arbitrate selects a maximal non-conflicting subset of the sorted edits.
// Two edits conflict when their ranges overlap; touching endpoints do not
// conflict. The greedy scan accepts an edit whose start is at or past the
// last accepted end and skips the rest. Edits must be sorted with Sort.
//
// Returns the accepted edits and the indices of the skipped ones.
func Arbitrate(edits []TextEdit) (accepted []TextEdit, skipped []int) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted = make([]TextEdit, 0, len(edits))
	lastEnd := -1
	for i, edit := range edits {
		if edit.Range.Start < lastEnd {
			skipped = append(skipped, i)
			continue
		}
		accepted = append(accepted, edit)
		lastEnd = edit.Range.End
	}
	return accepted, skipped
}
