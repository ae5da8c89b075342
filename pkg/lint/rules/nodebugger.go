package rules

import (
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// NoDebuggerRule disallows debugger statements.
type NoDebuggerRule struct {
	lint.BaseRule
}

// NewNoDebuggerRule creates the no-debugger rule.
func NewNoDebuggerRule() *NoDebuggerRule {
	return &NoDebuggerRule{
		BaseRule: lint.NewBaseRule("no-debugger", &lint.Meta{
			Type: lint.TypeProblem,
			Docs: lint.DocsMeta{
				Description: "Disallow the use of debugger",
				Recommended: true,
			},
			Fixable: "code",
			Messages: map[string]string{
				"unexpected": "Unexpected 'debugger' statement.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoDebuggerRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"DebuggerStatement": func(n *jsast.Node) error {
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unexpected",
				Fix: func(b *fix.Builder) error {
					b.Remove(n.Range)
					return nil
				},
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-debugger", func() lint.Rule { return NewNoDebuggerRule() })
}
