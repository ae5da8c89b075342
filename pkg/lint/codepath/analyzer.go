package codepath

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// Notifier receives the synthetic code-path events. Within one node event
// the ordering is: code-path start, segment starts, the node's own enter
// event, children, the node's leave event, segment ends, code-path end.
type Notifier struct {
	OnCodePathStart func(path *Path, node *jsast.Node) error
	OnCodePathEnd   func(path *Path, node *jsast.Node) error
	OnSegmentStart  func(seg *Segment, node *jsast.Node) error
	OnSegmentEnd    func(seg *Segment, node *jsast.Node) error
	OnSegmentLoop   func(from, to *Segment, node *jsast.Node) error
}

// Analyzer drives the control-flow model alongside the AST walk.
// The walker calls EnterNode before a node's enter event is emitted and
// LeaveNode after its leave event.
type Analyzer struct {
	notifier    Notifier
	stack       []*pathState
	pathCounter int
}

// pathState tracks the analysis of one open code path.
type pathState struct {
	path    *Path
	current []*Segment

	choices  []*choiceFrame
	loops    []*loopFrame
	switches []*switchFrame
	tries    []*tryFrame
}

type choiceFrame struct {
	node       *jsast.Node
	testEnd    []*Segment
	branchEnds []*Segment
}

type loopFrame struct {
	node      *jsast.Node
	label     string
	head      []*Segment
	broken    []*Segment
	continued []*Segment
}

type switchFrame struct {
	node        *jsast.Node
	label       string
	nextTest    []*Segment
	testEnd     []*Segment
	prevBodyEnd []*Segment
	broken      []*Segment
	bodyStarted bool
	hasDefault  bool
}

type tryFrame struct {
	node       *jsast.Node
	blockStart []*Segment
	blockEnd   []*Segment
	handlerEnd []*Segment
}

// NewAnalyzer creates an analyzer reporting through the notifier.
func NewAnalyzer(notifier Notifier) *Analyzer {
	return &Analyzer{notifier: notifier}
}

// CurrentPath returns the innermost open path, or nil.
func (a *Analyzer) CurrentPath() *Path {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1].path
}

// CurrentSegments returns the innermost path's current segments.
func (a *Analyzer) CurrentSegments() []*Segment {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1].current
}

func (a *Analyzer) state() *pathState {
	return a.stack[len(a.stack)-1]
}

// EnterNode updates the flow model for a node about to be entered.
func (a *Analyzer) EnterNode(n *jsast.Node) error {
	if n.Type == "Program" || jsast.IsFunction(n) {
		return a.startPath(n)
	}
	if len(a.stack) == 0 {
		return nil
	}

	if err := a.enterChildPosition(n); err != nil {
		return err
	}

	st := a.state()
	switch n.Type {
	case "IfStatement", "ConditionalExpression", "LogicalExpression":
		st.choices = append(st.choices, &choiceFrame{node: n})
	case "WhileStatement", "DoWhileStatement", "ForStatement",
		"ForInStatement", "ForOfStatement":
		st.loops = append(st.loops, &loopFrame{node: n, label: labelOf(n)})
	case "SwitchStatement":
		frame := &switchFrame{node: n, label: labelOf(n)}
		for _, c := range n.ChildList("cases") {
			if c.Child("test") == nil {
				frame.hasDefault = true
			}
		}
		st.switches = append(st.switches, frame)
	case "TryStatement":
		st.tries = append(st.tries, &tryFrame{node: n})
	}
	return nil
}

// enterChildPosition forks segments when a node occupies a branching slot
// of its parent construct.
func (a *Analyzer) enterChildPosition(n *jsast.Node) error {
	parent := n.Parent
	if parent == nil {
		return nil
	}
	st := a.state()

	switch parent.Type {
	case "IfStatement", "ConditionalExpression":
		frame := top(st.choices)
		if frame == nil || frame.node != parent {
			return nil
		}
		if parent.Child("consequent") == n || parent.Child("alternate") == n {
			if frame.testEnd == nil {
				frame.testEnd = st.current
			}
			return a.transition(st, a.fork(st, frame.testEnd), n)
		}

	case "LogicalExpression":
		frame := top(st.choices)
		if frame == nil || frame.node != parent {
			return nil
		}
		if parent.Child("right") == n {
			frame.testEnd = st.current
			return a.transition(st, a.fork(st, frame.testEnd), n)
		}

	case "WhileStatement":
		frame := top(st.loops)
		if frame == nil || frame.node != parent {
			return nil
		}
		switch n {
		case parent.Child("test"):
			frame.head = a.fork(st, st.current)
			return a.transition(st, frame.head, n)
		case parent.Child("body"):
			return a.transition(st, a.fork(st, st.current), n)
		}

	case "DoWhileStatement":
		frame := top(st.loops)
		if frame == nil || frame.node != parent {
			return nil
		}
		if parent.Child("body") == n {
			frame.head = a.fork(st, st.current)
			return a.transition(st, frame.head, n)
		}

	case "ForStatement":
		frame := top(st.loops)
		if frame == nil || frame.node != parent {
			return nil
		}
		switch n {
		case parent.Child("test"):
			frame.head = a.fork(st, st.current)
			return a.transition(st, frame.head, n)
		case parent.Child("body"):
			if frame.head == nil {
				frame.head = a.fork(st, st.current)
				return a.transition(st, frame.head, n)
			}
			return a.transition(st, a.fork(st, frame.head), n)
		}

	case "ForInStatement", "ForOfStatement":
		frame := top(st.loops)
		if frame == nil || frame.node != parent {
			return nil
		}
		if parent.Child("body") == n {
			frame.head = a.fork(st, st.current)
			return a.transition(st, frame.head, n)
		}

	case "SwitchCase":
		grand := parent.Parent
		if grand == nil || grand.Type != "SwitchStatement" {
			return nil
		}
		frame := top(st.switches)
		if frame == nil || frame.node != grand {
			return nil
		}
		if !frame.bodyStarted && containsNode(parent.ChildList("consequent"), n) {
			frame.bodyStarted = true
			preds := append(append([]*Segment(nil), frame.testEnd...), frame.prevBodyEnd...)
			return a.transition(st, a.fork(st, preds), n)
		}

	case "SwitchStatement":
		frame := top(st.switches)
		if frame == nil || frame.node != parent {
			return nil
		}
		if n.Type == "SwitchCase" {
			frame.bodyStarted = false
			chain := frame.nextTest
			if chain == nil {
				chain = st.current
			}
			frame.testEnd = chain
			if err := a.transition(st, chain, n); err != nil {
				return err
			}
			frame.nextTest = a.fork(st, chain)
			return nil
		}

	case "TryStatement":
		frame := top(st.tries)
		if frame == nil || frame.node != parent {
			return nil
		}
		switch n {
		case parent.Child("block"):
			frame.blockStart = st.current
		case parent.Child("handler"):
			frame.blockEnd = st.current
			preds := append(append([]*Segment(nil), frame.blockStart...), frame.blockEnd...)
			return a.transition(st, a.fork(st, preds), n)
		case parent.Child("finalizer"):
			var preds []*Segment
			if parent.Child("handler") != nil {
				frame.handlerEnd = st.current
				preds = append(preds, frame.blockEnd...)
				preds = append(preds, frame.handlerEnd...)
			} else {
				frame.blockEnd = st.current
				preds = append(preds, frame.blockStart...)
				preds = append(preds, frame.blockEnd...)
			}
			return a.transition(st, a.fork(st, preds), n)
		}
	}
	return nil
}

// LeaveNode updates the flow model after a node's leave event.
func (a *Analyzer) LeaveNode(n *jsast.Node) error {
	if len(a.stack) == 0 {
		return nil
	}
	if n.Type == "Program" || jsast.IsFunction(n) {
		return a.endPath(n)
	}

	st := a.state()
	var err error
	switch n.Type {
	case "IfStatement", "ConditionalExpression":
		err = a.leaveChoice(st, n, n.Child("alternate") == nil)
	case "LogicalExpression":
		err = a.leaveChoice(st, n, true)
	case "WhileStatement", "DoWhileStatement", "ForStatement",
		"ForInStatement", "ForOfStatement":
		err = a.leaveLoop(st, n)
	case "SwitchStatement":
		err = a.leaveSwitch(st, n)
	case "TryStatement":
		err = a.leaveTry(st, n)
	case "ReturnStatement":
		st.path.ReturnedSegments = append(st.path.ReturnedSegments, reachableOf(st.current)...)
		err = a.die(st, n)
	case "ThrowStatement":
		st.path.ThrownSegments = append(st.path.ThrownSegments, reachableOf(st.current)...)
		err = a.die(st, n)
	case "BreakStatement":
		a.registerBreak(st, n.Child("label"))
		err = a.die(st, n)
	case "ContinueStatement":
		a.registerContinue(st, n.Child("label"))
		err = a.die(st, n)
	}
	if err != nil {
		return err
	}

	// Branch-end bookkeeping runs for every node, including nested
	// constructs that just joined their own branches above.
	a.leaveChildPosition(st, n)
	return nil
}

// leaveChildPosition records branch ends as branching children finish.
func (a *Analyzer) leaveChildPosition(st *pathState, n *jsast.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	switch parent.Type {
	case "IfStatement", "ConditionalExpression":
		frame := top(st.choices)
		if frame != nil && frame.node == parent &&
			(parent.Child("consequent") == n || parent.Child("alternate") == n) {
			frame.branchEnds = append(frame.branchEnds, st.current...)
		}
	case "SwitchStatement":
		frame := top(st.switches)
		if frame != nil && frame.node == parent && n.Type == "SwitchCase" {
			if frame.bodyStarted {
				frame.prevBodyEnd = st.current
			} else {
				frame.prevBodyEnd = append(frame.prevBodyEnd, frame.testEnd...)
			}
		}
	}
}

func (a *Analyzer) leaveChoice(st *pathState, n *jsast.Node, includeTest bool) error {
	frame := pop(&st.choices)
	if frame == nil {
		return nil
	}
	if n.Type == "LogicalExpression" {
		// The right operand just left; its end is the branch end.
		frame.branchEnds = append(frame.branchEnds, st.current...)
	}
	preds := append([]*Segment(nil), frame.branchEnds...)
	if includeTest && frame.testEnd != nil {
		preds = append(preds, frame.testEnd...)
	}
	if frame.testEnd == nil {
		// The construct never branched (e.g. if with an empty body slot);
		// keep the current segments.
		return nil
	}
	return a.transition(st, a.fork(st, preds), n)
}

func (a *Analyzer) leaveLoop(st *pathState, n *jsast.Node) error {
	frame := pop(&st.loops)
	if frame == nil {
		return nil
	}

	if len(frame.head) > 0 {
		backEdges := append(reachableOf(st.current), frame.continued...)
		for _, from := range backEdges {
			link(from, frame.head[0])
			if a.notifier.OnSegmentLoop != nil {
				if err := a.notifier.OnSegmentLoop(from, frame.head[0], n); err != nil {
					return err
				}
			}
		}
	}

	var exits []*Segment
	if len(frame.head) > 0 {
		exits = append(exits, frame.head...)
	} else {
		exits = append(exits, st.current...)
	}
	exits = append(exits, frame.broken...)
	return a.transition(st, a.fork(st, exits), n)
}

func (a *Analyzer) leaveSwitch(st *pathState, n *jsast.Node) error {
	frame := pop(&st.switches)
	if frame == nil {
		return nil
	}
	var exits []*Segment
	if !frame.hasDefault && frame.nextTest != nil {
		exits = append(exits, frame.nextTest...)
	}
	exits = append(exits, frame.prevBodyEnd...)
	exits = append(exits, frame.broken...)
	if len(exits) == 0 {
		exits = st.current
	}
	return a.transition(st, a.fork(st, exits), n)
}

func (a *Analyzer) leaveTry(st *pathState, n *jsast.Node) error {
	frame := pop(&st.tries)
	if frame == nil {
		return nil
	}
	if n.Child("finalizer") != nil {
		// The finalizer's end is already the current segment.
		return nil
	}
	if n.Child("handler") != nil {
		frame.handlerEnd = st.current
		preds := append(append([]*Segment(nil), frame.blockEnd...), frame.handlerEnd...)
		return a.transition(st, a.fork(st, preds), n)
	}
	return nil
}

// registerBreak attaches the dying segments to the innermost matching
// breakable construct.
func (a *Analyzer) registerBreak(st *pathState, label *jsast.Node) {
	name := ""
	if label != nil {
		name = label.Attr("name")
	}
	// Switches and loops are both breakable; the innermost wins. Frames
	// are stacked per kind, so compare construct depth via frame order.
	if sw := top(st.switches); sw != nil && (name == "" || sw.label == name) {
		if lp := top(st.loops); lp == nil || !encloses(sw.node, lp.node) {
			sw.broken = append(sw.broken, reachableOf(st.current)...)
			return
		}
	}
	for i := len(st.loops) - 1; i >= 0; i-- {
		if name == "" || st.loops[i].label == name {
			st.loops[i].broken = append(st.loops[i].broken, reachableOf(st.current)...)
			return
		}
	}
}

func (a *Analyzer) registerContinue(st *pathState, label *jsast.Node) {
	name := ""
	if label != nil {
		name = label.Attr("name")
	}
	for i := len(st.loops) - 1; i >= 0; i-- {
		if name == "" || st.loops[i].label == name {
			st.loops[i].continued = append(st.loops[i].continued, reachableOf(st.current)...)
			return
		}
	}
}

// startPath opens a new code path for a program or function node.
func (a *Analyzer) startPath(n *jsast.Node) error {
	a.pathCounter++
	origin := OriginFunction
	if n.Type == "Program" {
		origin = OriginProgram
	}
	path := &Path{
		ID:       fmt.Sprintf("s%d", a.pathCounter),
		Origin:   origin,
		RootNode: n,
	}
	if upper := a.CurrentPath(); upper != nil {
		path.UpperPath = upper
		upper.ChildPaths = append(upper.ChildPaths, path)
	}

	initial := &Segment{ID: path.nextSegmentID(), Reachable: true}
	path.addSegment(initial)
	path.InitialSegment = initial

	a.stack = append(a.stack, &pathState{path: path, current: []*Segment{initial}})

	if a.notifier.OnCodePathStart != nil {
		if err := a.notifier.OnCodePathStart(path, n); err != nil {
			return err
		}
	}
	return a.emitStarts([]*Segment{initial}, n)
}

// endPath closes the innermost code path.
func (a *Analyzer) endPath(n *jsast.Node) error {
	st := a.state()
	if err := a.emitEnds(st.current, n); err != nil {
		return err
	}
	st.path.finalize(st.current)
	a.stack = a.stack[:len(a.stack)-1]

	if a.notifier.OnCodePathEnd != nil {
		return a.notifier.OnCodePathEnd(st.path, n)
	}
	return nil
}

// fork creates one new segment from the given predecessors.
func (a *Analyzer) fork(st *pathState, preds []*Segment) []*Segment {
	seg := newSegment(st.path.nextSegmentID(), dedupe(preds))
	st.path.addSegment(seg)
	return []*Segment{seg}
}

// die replaces the current segments with a fresh unreachable segment;
// statements after a return, throw, break, or continue land in it.
func (a *Analyzer) die(st *pathState, n *jsast.Node) error {
	seg := newUnreachableSegment(st.path.nextSegmentID(), st.current)
	st.path.addSegment(seg)
	return a.transition(st, []*Segment{seg}, n)
}

// transition closes the current segments and opens the new ones.
func (a *Analyzer) transition(st *pathState, next []*Segment, n *jsast.Node) error {
	if sameSegments(st.current, next) {
		return nil
	}
	if err := a.emitEnds(st.current, n); err != nil {
		return err
	}
	st.current = next
	return a.emitStarts(next, n)
}

func (a *Analyzer) emitStarts(segs []*Segment, n *jsast.Node) error {
	if a.notifier.OnSegmentStart == nil {
		return nil
	}
	for _, seg := range segs {
		if err := a.notifier.OnSegmentStart(seg, n); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) emitEnds(segs []*Segment, n *jsast.Node) error {
	if a.notifier.OnSegmentEnd == nil {
		return nil
	}
	for _, seg := range segs {
		if err := a.notifier.OnSegmentEnd(seg, n); err != nil {
			return err
		}
	}
	return nil
}

func top[T any](stack []*T) *T {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func pop[T any](stack *[]*T) *T {
	s := *stack
	if len(s) == 0 {
		return nil
	}
	frame := s[len(s)-1]
	*stack = s[:len(s)-1]
	return frame
}

func reachableOf(segs []*Segment) []*Segment {
	var out []*Segment
	for _, seg := range segs {
		if seg.Reachable {
			out = append(out, seg)
		}
	}
	return out
}

func dedupe(segs []*Segment) []*Segment {
	seen := make(map[*Segment]bool, len(segs))
	var out []*Segment
	for _, seg := range segs {
		if !seen[seg] {
			seen[seg] = true
			out = append(out, seg)
		}
	}
	return out
}

func sameSegments(a, b []*Segment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsNode(list []*jsast.Node, n *jsast.Node) bool {
	for _, item := range list {
		if item == n {
			return true
		}
	}
	return false
}

// labelOf returns the label name when the node is the body of a labeled
// statement.
func labelOf(n *jsast.Node) string {
	if p := n.Parent; p.Is("LabeledStatement") {
		if label := p.Child("label"); label != nil {
			return label.Attr("name")
		}
	}
	return ""
}

// encloses reports whether outer is an ancestor of inner.
func encloses(outer, inner *jsast.Node) bool {
	for cur := inner.Parent; cur != nil; cur = cur.Parent {
		if cur == outer {
			return true
		}
	}
	return false
}
