package rules

import (
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/scope"
)

// NoUnusedVarsRule reports variables that are declared but never
// referenced; any reference, read or write, counts as a use.
// Rules and directives can exempt variables: markVariableAsUsed from
// other rules and the exported directive both clear the flag.
type NoUnusedVarsRule struct {
	lint.BaseRule
}

// NewNoUnusedVarsRule creates the no-unused-vars rule.
func NewNoUnusedVarsRule() *NoUnusedVarsRule {
	return &NoUnusedVarsRule{
		BaseRule: lint.NewBaseRule("no-unused-vars", &lint.Meta{
			Type: lint.TypeProblem,
			Docs: lint.DocsMeta{
				Description: "Disallow unused variables",
				Recommended: true,
			},
			Messages: map[string]string{
				"unusedVar": "'{{name}}' is defined but never used.",
			},
		}),
	}
}

// Create installs the rule's listeners.
func (r *NoUnusedVarsRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"Program:exit": func(_ *jsast.Node) error {
			mgr := ctx.SourceCode().Scopes
			if mgr == nil {
				return nil
			}
			for _, s := range mgr.Scopes() {
				for _, v := range s.Variables {
					if !unused(v) {
						continue
					}
					def := v.Defs[0]
					if err := ctx.Report(lint.ReportDescriptor{
						Node:      def,
						MessageID: "unusedVar",
						Data:      map[string]string{"name": v.Name},
					}); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}, nil
}

// unused decides whether a variable warrants a report: declared in source,
// never referenced, never marked used, and not a parameter or function name.
func unused(v *scope.Variable) bool {
	if v.Used || len(v.Defs) == 0 {
		return false
	}
	for _, ref := range v.References {
		if ref.Identifier != v.Defs[0] {
			return false
		}
	}
	def := v.Defs[0]
	if parent := def.Parent; parent != nil {
		if jsast.IsFunction(parent) {
			// Function names and parameters are exempt.
			return false
		}
		for _, param := range parent.ChildList("params") {
			if param == def {
				return false
			}
		}
	}
	return true
}

func init() {
	lint.DefaultRegistry.Register("no-unused-vars", func() lint.Rule { return NewNoUnusedVarsRule() })
}
