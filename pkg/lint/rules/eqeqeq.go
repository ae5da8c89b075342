package rules

import (
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/source/tokenstore"
)

// EqeqeqRule requires the type-safe equality operators === and !==.
type EqeqeqRule struct {
	lint.BaseRule
}

// NewEqeqeqRule creates the eqeqeq rule.
func NewEqeqeqRule() *EqeqeqRule {
	return &EqeqeqRule{
		BaseRule: lint.NewBaseRule("eqeqeq", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.DocsMeta{
				Description: "Require the use of === and !==",
			},
			HasSuggestions: true,
			Messages: map[string]string{
				"unexpected":  "Expected '{{expected}}' and instead saw '{{actual}}'.",
				"replaceWith": "Use '{{expected}}' instead.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *EqeqeqRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	store := ctx.SourceCode().TokenStore()

	return lint.ListenerMap{
		"BinaryExpression": func(n *jsast.Node) error {
			actual := n.Attr("operator")
			if actual != "==" && actual != "!=" {
				return nil
			}
			expected := actual + "="

			left, right := n.Child("left"), n.Child("right")
			if left == nil || right == nil {
				return nil
			}
			opToken := store.FirstTokenBetween(left.Range, right.Range,
				tokenstore.WithFilter(func(t *jsast.Token) bool {
					return t.Type == jsast.TokPunctuator && t.Value == actual
				}))
			if opToken == nil {
				return nil
			}

			data := map[string]string{"expected": expected, "actual": actual}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				Loc:       &opToken.Loc,
				MessageID: "unexpected",
				Data:      data,
				Suggest: []lint.SuggestDescriptor{{
					MessageID: "replaceWith",
					Data:      data,
					Fix: func(b *fix.Builder) error {
						b.ReplaceRange(opToken.Range, expected)
						return nil
					},
				}},
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("eqeqeq", func() lint.Rule { return NewEqeqeqRule() })
}
