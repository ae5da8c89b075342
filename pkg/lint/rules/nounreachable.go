package rules

import (
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/codepath"
)

// reportableStatements lists the statement selectors no-unreachable
// watches. Function declarations are hoisted and stay reachable.
const reportableStatements = "ExpressionStatement, VariableDeclaration, ReturnStatement, " +
	"ThrowStatement, IfStatement, WhileStatement, DoWhileStatement, ForStatement, " +
	"ForInStatement, ForOfStatement, SwitchStatement, TryStatement, BreakStatement, " +
	"ContinueStatement, DebuggerStatement, LabeledStatement, EmptyStatement, BlockStatement"

// NoUnreachableRule disallows code after return, throw, break, and
// continue, consulting the code-path analyzer's reachability model.
type NoUnreachableRule struct {
	lint.BaseRule
}

// NewNoUnreachableRule creates the no-unreachable rule.
func NewNoUnreachableRule() *NoUnreachableRule {
	return &NoUnreachableRule{
		BaseRule: lint.NewBaseRule("no-unreachable", &lint.Meta{
			Type: lint.TypeProblem,
			Docs: lint.DocsMeta{
				Description: "Disallow unreachable code after control-flow statements",
				Recommended: true,
			},
			Messages: map[string]string{
				"unreachableCode": "Unreachable code.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoUnreachableRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	// One segment set per open code path; the innermost set reflects the
	// traversal position inside the current function or program.
	var segmentStack []map[*codepath.Segment]bool
	var lastReported *jsast.Node

	top := func() map[*codepath.Segment]bool {
		if len(segmentStack) == 0 {
			return nil
		}
		return segmentStack[len(segmentStack)-1]
	}
	allUnreachable := func() bool {
		current := top()
		if len(current) == 0 {
			return false
		}
		for seg := range current {
			if seg.Reachable {
				return false
			}
		}
		return true
	}

	return lint.ListenerMap{
		"onCodePathStart": func(_ *codepath.Path, _ *jsast.Node) error {
			segmentStack = append(segmentStack, map[*codepath.Segment]bool{})
			return nil
		},
		"onCodePathEnd": func(_ *codepath.Path, _ *jsast.Node) error {
			segmentStack = segmentStack[:len(segmentStack)-1]
			return nil
		},
		"onCodePathSegmentStart": func(seg *codepath.Segment, _ *jsast.Node) error {
			if current := top(); current != nil {
				current[seg] = true
			}
			return nil
		},
		"onCodePathSegmentEnd": func(seg *codepath.Segment, _ *jsast.Node) error {
			if current := top(); current != nil {
				delete(current, seg)
			}
			return nil
		},
		reportableStatements: func(n *jsast.Node) error {
			if !allUnreachable() {
				return nil
			}
			// Report the outermost unreachable statement only.
			if lastReported != nil && lastReported.Range.Covers(n.Range) {
				return nil
			}
			lastReported = n
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unreachableCode",
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-unreachable", func() lint.Rule { return NewNoUnreachableRule() })
}
