package rules

import "github.com/yaklabco/gojslint/pkg/lint"

// Replacement entries for rule ids that were removed. Lookups of these
// ids produce a diagnostic naming the successors instead of a bare
// "not found".
func init() {
	lint.DefaultRegistry.RegisterReplacement("no-arrow-condition",
		"no-confusing-arrow", "no-constant-condition")
	lint.DefaultRegistry.RegisterReplacement("no-comma-dangle", "comma-dangle")
	lint.DefaultRegistry.RegisterReplacement("no-empty-class", "no-empty-character-class")
	lint.DefaultRegistry.RegisterReplacement("no-reserved-keys", "quote-props")
	lint.DefaultRegistry.RegisterReplacement("space-unary-word-ops", "space-unary-ops")
}

// IDs returns the ids of every built-in rule.
func IDs() []string {
	return lint.DefaultRegistry.IDs()
}
