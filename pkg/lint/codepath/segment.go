// Package codepath builds intra-procedural control-flow graphs alongside
// the AST walk and emits synthetic code-path events interleaved with node
// events. A code path is a graph of segments (basic blocks); branch
// constructs fork segments, join points merge them, and segments that no
// execution can reach are marked unreachable.
package codepath

// Segment is a basic block of a code path.
type Segment struct {
	// ID identifies the segment within its path (e.g. "s1_2").
	ID string

	// Reachable is false when no execution path can enter this segment.
	Reachable bool

	// NextSegments and PrevSegments are the control-flow edges between
	// reachable segments.
	NextSegments []*Segment
	PrevSegments []*Segment

	// AllNextSegments and AllPrevSegments include edges from and to
	// unreachable segments.
	AllNextSegments []*Segment
	AllPrevSegments []*Segment

	// Dominated lists the segments this segment dominates, computed
	// when the path ends.
	Dominated []*Segment
}

// newSegment creates a segment with the given predecessors. The segment is
// reachable if any predecessor is reachable; an explicitly detached
// segment (no predecessors) is unreachable unless it is a path's initial
// segment, which the caller marks directly.
func newSegment(id string, preds []*Segment) *Segment {
	seg := &Segment{ID: id}
	for _, pred := range preds {
		if pred.Reachable {
			seg.Reachable = true
		}
	}
	for _, pred := range preds {
		link(pred, seg)
	}
	return seg
}

// newUnreachableSegment creates a segment that only unreachable edges
// lead into, regardless of predecessor reachability.
func newUnreachableSegment(id string, preds []*Segment) *Segment {
	seg := &Segment{ID: id}
	for _, pred := range preds {
		linkAll(pred, seg)
	}
	return seg
}

// link records an edge in both the reachable and the complete edge sets.
func link(from, to *Segment) {
	if from.Reachable && to.Reachable {
		from.NextSegments = append(from.NextSegments, to)
		to.PrevSegments = append(to.PrevSegments, from)
	}
	linkAll(from, to)
}

// linkAll records an edge in the complete edge sets only.
func linkAll(from, to *Segment) {
	from.AllNextSegments = append(from.AllNextSegments, to)
	to.AllPrevSegments = append(to.AllPrevSegments, from)
}
