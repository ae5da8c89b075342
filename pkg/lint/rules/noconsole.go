package rules

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// NoConsoleRule disallows calls to console methods.
type NoConsoleRule struct {
	lint.BaseRule
}

// NewNoConsoleRule creates the no-console rule.
func NewNoConsoleRule() *NoConsoleRule {
	return &NoConsoleRule{
		BaseRule: lint.NewBaseRule("no-console", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.DocsMeta{
				Description: "Disallow the use of console",
			},
			Messages: map[string]string{
				"unexpected": "Unexpected console statement.",
			},
			Schema: func(options []any) error {
				if len(options) == 0 {
					return nil
				}
				obj, ok := options[0].(map[string]any)
				if !ok {
					return fmt.Errorf("option must be an object with an \"allow\" list")
				}
				if _, has := obj["allow"]; !has {
					return fmt.Errorf("option object requires an \"allow\" list")
				}
				return nil
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoConsoleRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	allowed := map[string]bool{}
	if opts := ctx.Options(); len(opts) > 0 {
		if obj, ok := opts[0].(map[string]any); ok {
			if list, ok := obj["allow"].([]any); ok {
				for _, item := range list {
					if name, ok := item.(string); ok {
						allowed[name] = true
					}
				}
			}
		}
	}

	return lint.ListenerMap{
		"MemberExpression[object.name=console]": func(n *jsast.Node) error {
			// Skip a console binding the program shadows locally.
			if s := ctx.Scope(); s != nil {
				if v := s.Lookup("console"); v != nil && len(v.Defs) > 0 {
					return nil
				}
			}
			if prop := n.Child("property"); prop != nil && allowed[prop.Attr("name")] {
				return nil
			}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unexpected",
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-console", func() lint.Rule { return NewNoConsoleRule() })
}
