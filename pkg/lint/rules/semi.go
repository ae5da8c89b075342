package rules

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// SemiRule enforces consistent semicolon usage at statement ends.
type SemiRule struct {
	lint.BaseRule
}

// NewSemiRule creates the semi rule.
func NewSemiRule() *SemiRule {
	return &SemiRule{
		BaseRule: lint.NewBaseRule("semi", &lint.Meta{
			Type: lint.TypeLayout,
			Docs: lint.DocsMeta{
				Description: "Require or disallow semicolons at the end of statements",
			},
			Fixable: "code",
			Messages: map[string]string{
				"missingSemi": "Missing semicolon.",
				"extraSemi":   "Extra semicolon.",
			},
			Schema: func(options []any) error {
				if len(options) == 0 {
					return nil
				}
				mode, ok := options[0].(string)
				if !ok || (mode != "always" && mode != "never") {
					return fmt.Errorf("option must be \"always\" or \"never\", got %v", options[0])
				}
				return nil
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *SemiRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	always := true
	if opts := ctx.Options(); len(opts) > 0 {
		always = opts[0] != "never"
	}
	store := ctx.SourceCode().TokenStore()

	check := func(n *jsast.Node) error {
		last := store.LastToken(n.Range)
		if last == nil {
			return nil
		}
		hasSemi := last.Type == jsast.TokPunctuator && last.Value == ";"

		switch {
		case always && !hasSemi:
			loc := jsast.SourceLocation{Start: last.Loc.End, End: last.Loc.End}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				Loc:       &loc,
				MessageID: "missingSemi",
				Fix: func(b *fix.Builder) error {
					b.InsertAfter(last.Range, ";")
					return nil
				},
			})
		case !always && hasSemi:
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				Loc:       &last.Loc,
				MessageID: "extraSemi",
				Fix: func(b *fix.Builder) error {
					b.Remove(last.Range)
					return nil
				},
			})
		}
		return nil
	}

	return lint.ListenerMap{
		"ExpressionStatement": check,
		"VariableDeclaration": func(n *jsast.Node) error {
			// Declarations heading for/for-in/for-of clauses carry no
			// terminator of their own.
			if p := n.Parent; p != nil && jsast.IsLoop(p) {
				return nil
			}
			return check(n)
		},
		"ReturnStatement":   check,
		"ThrowStatement":    check,
		"DebuggerStatement": check,
		"BreakStatement":    check,
		"ContinueStatement": check,
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("semi", func() lint.Rule { return NewSemiRule() })
}
