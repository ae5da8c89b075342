package codepath

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// Origin classifies what opened a code path.
type Origin string

// Path origins.
const (
	OriginProgram  Origin = "program"
	OriginFunction Origin = "function"
)

// Path is the control-flow graph of one program or function body.
type Path struct {
	// ID identifies the path within the file (e.g. "s1").
	ID string

	// Origin reports what opened the path.
	Origin Origin

	// RootNode is the Program or function node that opened the path.
	RootNode *jsast.Node

	// UpperPath is the enclosing path, nil for the program path.
	UpperPath *Path

	// ChildPaths lists paths of nested functions in source order.
	ChildPaths []*Path

	// InitialSegment is the entry segment.
	InitialSegment *Segment

	// FinalSegments lists segments execution can end on, including
	// returned segments.
	FinalSegments []*Segment

	// ReturnedSegments lists segments ended by an explicit return.
	ReturnedSegments []*Segment

	// ThrownSegments lists segments ended by a throw.
	ThrownSegments []*Segment

	segments   []*Segment
	segCounter int
}

func (p *Path) nextSegmentID() string {
	p.segCounter++
	return fmt.Sprintf("%s_%d", p.ID, p.segCounter)
}

func (p *Path) addSegment(seg *Segment) *Segment {
	p.segments = append(p.segments, seg)
	return seg
}

// Segments returns every segment of the path in creation order.
func (p *Path) Segments() []*Segment {
	return p.segments
}

// finalize records the final segments and computes segment dominance.
func (p *Path) finalize(current []*Segment) {
	for _, seg := range current {
		if seg.Reachable {
			p.FinalSegments = append(p.FinalSegments, seg)
		}
	}
	p.FinalSegments = append(p.FinalSegments, p.ReturnedSegments...)
	p.computeDominance()
}

// computeDominance fills each segment's Dominated list using the standard
// iterative data-flow over reachable predecessor edges. Paths are small,
// so the quadratic fixpoint is fine.
func (p *Path) computeDominance() {
	index := make(map[*Segment]int, len(p.segments))
	for i, seg := range p.segments {
		index[seg] = i
	}

	// dom[i] is the set of segments dominating segment i.
	n := len(p.segments)
	dom := make([]map[int]bool, n)
	for i := range dom {
		if p.segments[i] == p.InitialSegment {
			dom[i] = map[int]bool{i: true}
			continue
		}
		all := make(map[int]bool, n)
		for j := range p.segments {
			all[j] = true
		}
		dom[i] = all
	}

	changed := true
	for changed {
		changed = false
		for i, seg := range p.segments {
			if seg == p.InitialSegment || len(seg.PrevSegments) == 0 {
				continue
			}
			meet := make(map[int]bool)
			for k := range dom[index[seg.PrevSegments[0]]] {
				meet[k] = true
			}
			for _, pred := range seg.PrevSegments[1:] {
				for k := range meet {
					if !dom[index[pred]][k] {
						delete(meet, k)
					}
				}
			}
			meet[i] = true
			if len(meet) != len(dom[i]) {
				dom[i] = meet
				changed = true
			}
		}
	}

	for i, seg := range p.segments {
		for j, other := range p.segments {
			if i != j && dom[j][i] {
				seg.Dominated = append(seg.Dominated, other)
			}
		}
	}
}
