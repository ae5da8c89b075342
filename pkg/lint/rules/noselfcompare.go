package rules

import (
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// comparisonOperators are the operators no-self-compare inspects.
//
//nolint:gochecknoglobals // Shared immutable set
var comparisonOperators = map[string]bool{
	"==": true, "===": true, "!=": true, "!==": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

// NoSelfCompareRule disallows comparing an expression to itself.
type NoSelfCompareRule struct {
	lint.BaseRule
}

// NewNoSelfCompareRule creates the no-self-compare rule.
func NewNoSelfCompareRule() *NoSelfCompareRule {
	return &NoSelfCompareRule{
		BaseRule: lint.NewBaseRule("no-self-compare", &lint.Meta{
			Type: lint.TypeProblem,
			Docs: lint.DocsMeta{
				Description: "Disallow comparisons where both sides are exactly the same",
			},
			Messages: map[string]string{
				"comparingToSelf": "Comparing to itself is potentially pointless.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoSelfCompareRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	src := ctx.SourceCode()

	return lint.ListenerMap{
		"BinaryExpression": func(n *jsast.Node) error {
			if !comparisonOperators[n.Attr("operator")] {
				return nil
			}
			left, right := n.Child("left"), n.Child("right")
			if left == nil || right == nil {
				return nil
			}
			if src.TextOf(left) != src.TextOf(right) {
				return nil
			}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "comparingToSelf",
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-self-compare", func() lint.Rule { return NewNoSelfCompareRule() })
}
