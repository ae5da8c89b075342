package rules

import (
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/source/tokenstore"
)

// NoVarRule requires let or const instead of var.
type NoVarRule struct {
	lint.BaseRule
}

// NewNoVarRule creates the no-var rule.
func NewNoVarRule() *NoVarRule {
	return &NoVarRule{
		BaseRule: lint.NewBaseRule("no-var", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.DocsMeta{
				Description: "Require let or const instead of var",
				Recommended: true,
			},
			Fixable: "code",
			Messages: map[string]string{
				"unexpectedVar": "Unexpected var, use let or const instead.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoVarRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	store := ctx.SourceCode().TokenStore()

	return lint.ListenerMap{
		"VariableDeclaration[kind=var]": func(n *jsast.Node) error {
			varToken := store.FirstToken(n.Range, tokenstore.WithFilter(func(t *jsast.Token) bool {
				return t.Type == jsast.TokKeyword && t.Value == "var"
			}))

			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unexpectedVar",
				Fix: func(b *fix.Builder) error {
					if varToken != nil {
						b.ReplaceRange(varToken.Range, "let")
					}
					return nil
				},
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-var", func() lint.Rule { return NewNoVarRule() })
}
