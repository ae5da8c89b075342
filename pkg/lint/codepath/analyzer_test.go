package codepath_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/jstest"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint/codepath"
	"github.com/yaklabco/gojslint/pkg/parser"
)

// analyze walks the parsed program through the analyzer and records
// events and completed paths.
func analyze(t *testing.T, src string) ([]string, []*codepath.Path) {
	t.Helper()

	parsed, err := jstest.New().Parse([]byte(src), parser.Options{SourceType: "script"})
	require.NoError(t, err)

	var events []string
	var paths []*codepath.Path
	analyzer := codepath.NewAnalyzer(codepath.Notifier{
		OnCodePathStart: func(p *codepath.Path, _ *jsast.Node) error {
			events = append(events, "pathStart:"+string(p.Origin))
			return nil
		},
		OnCodePathEnd: func(p *codepath.Path, _ *jsast.Node) error {
			events = append(events, "pathEnd:"+string(p.Origin))
			paths = append(paths, p)
			return nil
		},
		OnSegmentStart: func(seg *codepath.Segment, _ *jsast.Node) error {
			events = append(events, fmt.Sprintf("segStart:%s:%v", seg.ID, seg.Reachable))
			return nil
		},
		OnSegmentEnd: func(seg *codepath.Segment, _ *jsast.Node) error {
			events = append(events, "segEnd:"+seg.ID)
			return nil
		},
		OnSegmentLoop: func(from, to *codepath.Segment, _ *jsast.Node) error {
			events = append(events, fmt.Sprintf("loop:%s->%s", from.ID, to.ID))
			return nil
		},
	})

	err = jsast.Traverse(parsed.AST, jsast.TraverseOptions{
		SetParents: true,
		Enter: func(n, _ *jsast.Node) error {
			return analyzer.EnterNode(n)
		},
		Leave: func(n, _ *jsast.Node) error {
			return analyzer.LeaveNode(n)
		},
	})
	require.NoError(t, err)
	return events, paths
}

func TestStraightLineProgram(t *testing.T) {
	events, paths := analyze(t, "var x = 1;\nuse(x);\n")

	require.Len(t, paths, 1)
	program := paths[0]
	assert.Equal(t, codepath.OriginProgram, program.Origin)
	require.NotNil(t, program.InitialSegment)
	assert.True(t, program.InitialSegment.Reachable)
	require.Len(t, program.FinalSegments, 1)
	assert.Same(t, program.InitialSegment, program.FinalSegments[0])

	// One path, one segment: start events then end events.
	assert.Equal(t, "pathStart:program", events[0])
	assert.Equal(t, "pathEnd:program", events[len(events)-1])
}

func TestFunctionOpensChildPath(t *testing.T) {
	_, paths := analyze(t, "function f() { return 1; }\nf();\n")

	require.Len(t, paths, 2)
	// Inner paths end first.
	fn, program := paths[0], paths[1]
	assert.Equal(t, codepath.OriginFunction, fn.Origin)
	assert.Equal(t, codepath.OriginProgram, program.Origin)
	assert.Same(t, program, fn.UpperPath)
	require.Len(t, program.ChildPaths, 1)
	assert.Same(t, fn, program.ChildPaths[0])

	require.Len(t, fn.ReturnedSegments, 1)
	assert.Contains(t, fn.FinalSegments, fn.ReturnedSegments[0])
}

func TestIfElseForksAndJoins(t *testing.T) {
	_, paths := analyze(t, "if (cond) { a(); } else { b(); }\nafter();\n")

	require.Len(t, paths, 1)
	program := paths[0]

	// test segment, two branches, one join.
	segments := program.Segments()
	require.GreaterOrEqual(t, len(segments), 4)

	join := segments[len(segments)-1]
	assert.True(t, join.Reachable)
	assert.Len(t, join.PrevSegments, 2, "both branches flow into the join")
}

func TestIfWithoutElseKeepsFallthrough(t *testing.T) {
	_, paths := analyze(t, "if (cond) { a(); }\nafter();\n")

	program := paths[0]
	segments := program.Segments()
	join := segments[len(segments)-1]
	assert.Len(t, join.PrevSegments, 2, "branch end and test end both reach the join")
}

func TestUnreachableAfterReturn(t *testing.T) {
	_, paths := analyze(t, "function f() { return 1; var dead = 2; }\n")

	fn := paths[0]
	segments := fn.Segments()
	require.Len(t, segments, 2)
	assert.True(t, segments[0].Reachable)
	assert.False(t, segments[1].Reachable, "code after return is unreachable")

	// The dead segment never reaches the final set.
	for _, final := range fn.FinalSegments {
		assert.True(t, final.Reachable)
	}
}

func TestWhileLoopEmitsBackEdge(t *testing.T) {
	events, paths := analyze(t, "while (cond) { body(); }\ndone();\n")

	var loops []string
	for _, e := range events {
		if len(e) > 4 && e[:5] == "loop:" {
			loops = append(loops, e)
		}
	}
	require.Len(t, loops, 1, "one back edge from body end to loop head")

	program := paths[0]
	// Initial, head, body, exit at minimum.
	assert.GreaterOrEqual(t, len(program.Segments()), 4)
}

func TestThrowRecordsThrownSegment(t *testing.T) {
	_, paths := analyze(t, "function f() { throw bad; }\n")

	fn := paths[0]
	require.Len(t, fn.ThrownSegments, 1)
	assert.Empty(t, fn.ReturnedSegments)
}

func TestDominance(t *testing.T) {
	_, paths := analyze(t, "if (cond) { a(); } else { b(); }\nafter();\n")

	program := paths[0]
	initial := program.InitialSegment

	// The entry segment dominates every other reachable segment.
	dominated := map[*codepath.Segment]bool{}
	for _, seg := range initial.Dominated {
		dominated[seg] = true
	}
	for _, seg := range program.Segments() {
		if seg == initial || !seg.Reachable {
			continue
		}
		assert.True(t, dominated[seg], "segment %s should be dominated by the entry", seg.ID)
	}

	// Branch segments do not dominate the join.
	join := program.Segments()[len(program.Segments())-1]
	for _, seg := range program.Segments() {
		if seg == initial || seg == join {
			continue
		}
		for _, d := range seg.Dominated {
			assert.NotSame(t, join, d, "branch %s must not dominate the join", seg.ID)
		}
	}
}

func TestSegmentEventBalance(t *testing.T) {
	events, _ := analyze(t, "if (c) { a(); }\nwhile (c) { b(); }\nfunction g() { return; }\n")

	starts, ends := 0, 0
	for _, e := range events {
		switch {
		case len(e) >= 8 && e[:8] == "segStart":
			starts++
		case len(e) >= 6 && e[:6] == "segEnd":
			ends++
		}
	}
	assert.Equal(t, starts, ends, "every opened segment closes")
}
