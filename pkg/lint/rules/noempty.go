package rules

import (
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/source/tokenstore"
)

// NoEmptyRule disallows empty block statements. A block containing only
// comments is not empty.
type NoEmptyRule struct {
	lint.BaseRule
}

// NewNoEmptyRule creates the no-empty rule.
func NewNoEmptyRule() *NoEmptyRule {
	return &NoEmptyRule{
		BaseRule: lint.NewBaseRule("no-empty", &lint.Meta{
			Type: lint.TypeSuggestion,
			Docs: lint.DocsMeta{
				Description: "Disallow empty block statements",
				Recommended: true,
			},
			Messages: map[string]string{
				"unexpected": "Empty {{type}} statement.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoEmptyRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	allowEmptyCatch := false
	if opts := ctx.Options(); len(opts) > 0 {
		if obj, ok := opts[0].(map[string]any); ok {
			if v, ok := obj["allowEmptyCatch"].(bool); ok {
				allowEmptyCatch = v
			}
		}
	}
	store := ctx.SourceCode().TokenStore()

	// hasCommentsInside checks the span between the braces.
	hasCommentsInside := func(n *jsast.Node) bool {
		inside := store.Tokens(n.Range, tokenstore.IncludeComments(),
			tokenstore.WithFilter(func(t *jsast.Token) bool { return t.IsComment() }))
		return len(inside) > 0
	}

	return lint.ListenerMap{
		"BlockStatement": func(n *jsast.Node) error {
			if len(n.ChildList("body")) > 0 {
				return nil
			}
			// Function bodies are allowed to be empty.
			if jsast.IsFunction(n.Parent) {
				return nil
			}
			if allowEmptyCatch && n.Parent.Is("CatchClause") {
				return nil
			}
			if hasCommentsInside(n) {
				return nil
			}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unexpected",
				Data:      map[string]string{"type": "block"},
			})
		},
		"SwitchStatement": func(n *jsast.Node) error {
			if len(n.ChildList("cases")) > 0 {
				return nil
			}
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "unexpected",
				Data:      map[string]string{"type": "switch"},
			})
		},
	}, nil
}

func init() {
	lint.DefaultRegistry.Register("no-empty", func() lint.Rule { return NewNoEmptyRule() })
}
