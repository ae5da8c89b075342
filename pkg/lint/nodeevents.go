package lint

import (
	"sort"
	"strings"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// Code-path event names live on the same emitter as selectors; the node
// event generator must not try to compile them.
var codePathEventNames = map[string]bool{
	"onCodePathStart":        true,
	"onCodePathEnd":          true,
	"onCodePathSegmentStart": true,
	"onCodePathSegmentEnd":   true,
	"onCodePathSegmentLoop":  true,
}

// NodeEventGenerator translates raw AST events into selector events.
// Selectors are compiled once at construction, grouped by enter/exit
// intent, and bucketed by target node type so each event only consults
// candidates that can match.
type NodeEventGenerator struct {
	emitter *Emitter

	enterByType map[string][]*compiledSelector
	enterAny    []*compiledSelector
	exitByType  map[string][]*compiledSelector
	exitAny     []*compiledSelector
}

// NewNodeEventGenerator compiles every selector the emitter has listeners
// for. A malformed selector is a hard error carrying the selector text.
func NewNodeEventGenerator(emitter *Emitter) (*NodeEventGenerator, error) {
	g := &NodeEventGenerator{
		emitter:     emitter,
		enterByType: make(map[string][]*compiledSelector),
		exitByType:  make(map[string][]*compiledSelector),
	}

	names := emitter.EventNames()
	sort.Strings(names) // deterministic compile order

	order := 0
	for _, name := range names {
		if codePathEventNames[name] {
			continue
		}
		for _, part := range splitSelectors(name) {
			if strings.TrimSpace(part) == "" {
				continue
			}
			sel, err := parseSelector(part, order)
			if err != nil {
				return nil, err
			}
			sel.raw = name // emit under the full subscription key
			order++
			g.add(sel)
		}
	}

	for _, bucket := range g.enterByType {
		sortSelectors(bucket)
	}
	for _, bucket := range g.exitByType {
		sortSelectors(bucket)
	}
	sortSelectors(g.enterAny)
	sortSelectors(g.exitAny)
	return g, nil
}

func (g *NodeEventGenerator) add(sel *compiledSelector) {
	target := sel.chain[len(sel.chain)-1].typ
	switch {
	case sel.isExit && target != "":
		g.exitByType[target] = append(g.exitByType[target], sel)
	case sel.isExit:
		g.exitAny = append(g.exitAny, sel)
	case target != "":
		g.enterByType[target] = append(g.enterByType[target], sel)
	default:
		g.enterAny = append(g.enterAny, sel)
	}
}

func sortSelectors(sels []*compiledSelector) {
	sort.SliceStable(sels, func(i, j int) bool {
		return lessSpecific(sels[i], sels[j])
	})
}

// EnterNode fires matching enter selectors for a node.
func (g *NodeEventGenerator) EnterNode(n *jsast.Node) error {
	return g.applySelectors(n, g.enterByType[n.Type], g.enterAny)
}

// LeaveNode fires matching ":exit" selectors for a node.
func (g *NodeEventGenerator) LeaveNode(n *jsast.Node) error {
	return g.applySelectors(n, g.exitByType[n.Type], g.exitAny)
}

// applySelectors merges the type bucket and the universal bucket in
// specificity order and emits each match once, even when several comma
// parts of one subscription match the same node.
func (g *NodeEventGenerator) applySelectors(n *jsast.Node, byType, any []*compiledSelector) error {
	emitted := map[string]bool{}

	i, j := 0, 0
	for i < len(byType) || j < len(any) {
		var sel *compiledSelector
		switch {
		case i >= len(byType):
			sel = any[j]
			j++
		case j >= len(any):
			sel = byType[i]
			i++
		case lessSpecific(byType[i], any[j]):
			sel = byType[i]
			i++
		default:
			sel = any[j]
			j++
		}

		if emitted[sel.raw] || !sel.Matches(n) {
			continue
		}
		emitted[sel.raw] = true
		if err := g.emitter.EmitNode(sel.raw, n); err != nil {
			return err
		}
	}
	return nil
}
