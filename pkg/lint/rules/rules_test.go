package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/jstest"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	_ "github.com/yaklabco/gojslint/pkg/lint/rules" // Register built-in rules
)

// runRule lints src with a single rule enabled at error severity.
func runRule(t *testing.T, ruleID, src string, options ...any) []lint.Problem {
	t.Helper()

	linter := lint.New(nil)
	linter.SetDefaultParser(jstest.New())

	cfg := config.New()
	cfg.Rules[ruleID] = config.RuleEntry{Severity: config.SeverityError, Options: options}

	problems, err := linter.Verify([]byte(src), cfg, lint.VerifyOptions{})
	require.NoError(t, err)
	return problems
}

// runRuleFix lints src with one rule and returns the fixed output.
func runRuleFix(t *testing.T, ruleID, src string, options ...any) string {
	t.Helper()

	linter := lint.New(nil)
	linter.SetDefaultParser(jstest.New())

	cfg := config.New()
	cfg.Rules[ruleID] = config.RuleEntry{Severity: config.SeverityError, Options: options}

	report, err := linter.VerifyAndFix([]byte(src), cfg, lint.VerifyOptions{})
	require.NoError(t, err)
	return string(report.Output)
}
