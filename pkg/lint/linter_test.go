package lint_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/jstest"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/lint/rules"
)

func newLinter(t *testing.T) *lint.Linter {
	t.Helper()
	linter := lint.New(nil)
	linter.SetDefaultParser(jstest.New())
	return linter
}

func ruleConfig(entries map[string]config.RuleEntry) *config.Config {
	cfg := config.New()
	for id, entry := range entries {
		cfg.Rules[id] = entry
	}
	return cfg
}

func errorOn(id string) map[string]config.RuleEntry {
	return map[string]config.RuleEntry{id: {Severity: config.SeverityError}}
}

func TestPlainLint(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify([]byte("var x = 1;\n"), ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	p := problems[0]
	assert.Equal(t, "no-var", p.RuleID)
	assert.Equal(t, config.SeverityError, p.Severity)
	assert.Equal(t, 1, p.Line)
	assert.Equal(t, 1, p.Column)
	assert.Equal(t, 1, p.EndLine)
	assert.Equal(t, 11, p.EndColumn)
	assert.Equal(t, "VariableDeclaration", p.NodeType)
	assert.Equal(t, "Unexpected var, use let or const instead.", p.Message)
	assert.False(t, p.Fatal)
}

func TestVerifyAndFixRewritesVar(t *testing.T) {
	linter := newLinter(t)

	report, err := linter.VerifyAndFix([]byte("var x=1;\nvar y=2;\n"),
		ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)

	assert.True(t, report.Fixed)
	assert.Equal(t, "let x=1;\nlet y=2;\n", string(report.Output))
	assert.Empty(t, report.Messages)
}

func TestDisableNextLineSuppresses(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify(
		[]byte("// eslint-disable-next-line no-var\nvar x=1;\n"),
		ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)

	assert.Empty(t, problems)
	suppressed := linter.SuppressedProblems()
	require.Len(t, suppressed, 1)
	assert.Equal(t, "no-var", suppressed[0].RuleID)
	assert.Equal(t, "directive", suppressed[0].Suppressions[0].Kind)
}

func TestUnusedDirectiveReportedWithRemovalFix(t *testing.T) {
	linter := newLinter(t)
	text := []byte("// eslint-disable-next-line no-var\nlet x=1;\n")
	opts := lint.VerifyOptions{ReportUnusedDisableDirectives: config.SeverityError}

	problems, err := linter.Verify(text, ruleConfig(errorOn("no-var")), opts)
	require.NoError(t, err)

	require.Len(t, problems, 1)
	p := problems[0]
	assert.Contains(t, p.Message, "Unused eslint-disable directive")
	assert.Equal(t, config.SeverityError, p.Severity)
	assert.Equal(t, 1, p.Line)
	require.NotNil(t, p.Fix, "unused directive carries a removal fix")

	// Applying the synthesized fix removes the whole comment line, and a
	// re-lint reports nothing further.
	fixed := fix.Apply(text, []fix.TextEdit{*p.Fix})
	assert.Equal(t, "let x=1;\n", string(fixed))

	again, err := linter.Verify(fixed, ruleConfig(errorOn("no-var")), opts)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestDisableFixesSuppressesRemovalFix(t *testing.T) {
	linter := newLinter(t)
	problems, err := linter.Verify(
		[]byte("// eslint-disable-next-line no-var\nlet x=1;\n"),
		ruleConfig(errorOn("no-var")),
		lint.VerifyOptions{
			ReportUnusedDisableDirectives: config.SeverityError,
			DisableFixes:                  true,
		})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Nil(t, problems[0].Fix)
}

// headRewriteRule conflicts with no-var by rewriting the same span.
type headRewriteRule struct {
	lint.BaseRule
}

func newHeadRewriteRule() *headRewriteRule {
	return &headRewriteRule{
		BaseRule: lint.NewBaseRule("head-rewrite", &lint.Meta{
			Type:    lint.TypeLayout,
			Fixable: "code",
			Messages: map[string]string{
				"rewrite": "Rewrite the declaration head.",
			},
		}),
	}
}

func (r *headRewriteRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"VariableDeclaration[kind=var]": func(n *jsast.Node) error {
			return ctx.Report(lint.ReportDescriptor{
				Node:      n,
				MessageID: "rewrite",
				Fix: func(b *fix.Builder) error {
					b.Replace(0, 5, "const")
					return nil
				},
			})
		},
	}, nil
}

func TestConflictingFixesResolveAcrossPasses(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register("no-var", func() lint.Rule { return rules.NewNoVarRule() })
	registry.Register("head-rewrite", func() lint.Rule { return newHeadRewriteRule() })

	linter := lint.New(registry)
	linter.SetDefaultParser(jstest.New())

	cfg := ruleConfig(map[string]config.RuleEntry{
		"no-var":       {Severity: config.SeverityError},
		"head-rewrite": {Severity: config.SeverityError},
	})

	report, err := linter.VerifyAndFix([]byte("var x=1;\n"), cfg, lint.VerifyOptions{})
	require.NoError(t, err)

	// Only one of the two overlapping fixes applies per pass; the loop
	// converges once the surviving rule stops matching.
	assert.True(t, report.Fixed)
	assert.Equal(t, "let x=1;\n", string(report.Output))
	assert.Empty(t, report.Messages)
}

func TestParseFailureIsFatal(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify([]byte("var x ="), ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	p := problems[0]
	assert.True(t, p.Fatal)
	assert.Equal(t, config.SeverityError, p.Severity)
	assert.Contains(t, p.Message, "Parsing error")
	assert.Empty(t, p.RuleID)
}

func TestVerifyAndFixStopsOnFatal(t *testing.T) {
	linter := newLinter(t)

	report, err := linter.VerifyAndFix([]byte("var x ="), ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)

	assert.False(t, report.Fixed)
	assert.Equal(t, "var x =", string(report.Output))
	require.Len(t, report.Messages, 1)
	assert.True(t, report.Messages[0].Fatal)
}

func TestUnknownRuleProducesSyntheticProblem(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify([]byte("let x = 1;\n"),
		ruleConfig(errorOn("does-not-exist")), lint.VerifyOptions{})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	assert.Equal(t, 1, problems[0].Line)
	assert.Equal(t, 0, problems[0].Column)
	assert.Contains(t, problems[0].Message, "does-not-exist")
	assert.False(t, problems[0].Fatal)
}

func TestRemovedRuleNamesReplacements(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify([]byte("let x = 1;\n"),
		ruleConfig(errorOn("no-comma-dangle")), lint.VerifyOptions{})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Message, "was removed")
	assert.Contains(t, problems[0].Message, "comma-dangle")
}

func TestInlineConfigOverlayEnablesRule(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify(
		[]byte("/* eslint no-var: 2 */\nvar x = 1;\n"),
		config.New(), lint.VerifyOptions{})
	require.NoError(t, err)

	require.Len(t, problems, 1)
	assert.Equal(t, "no-var", problems[0].RuleID)
	assert.Equal(t, config.SeverityError, problems[0].Severity)
}

func TestNoInlineConfigIgnoresDirectives(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify(
		[]byte("/* eslint no-var: 2 */\nvar x = 1;\n"),
		config.New(), lint.VerifyOptions{NoInlineConfig: true})
	require.NoError(t, err)
	assert.Empty(t, problems)

	// Disable directives are ignored too: the configured rule fires.
	problems, err = linter.Verify(
		[]byte("// eslint-disable-next-line no-var\nvar x=1;\n"),
		ruleConfig(errorOn("no-var")), lint.VerifyOptions{NoInlineConfig: true})
	require.NoError(t, err)
	assert.Len(t, problems, 1)
}

// crashingRule fails at listener time.
type crashingRule struct {
	lint.BaseRule
}

func newCrashingRule() *crashingRule {
	return &crashingRule{
		BaseRule: lint.NewBaseRule("crashing", &lint.Meta{Type: lint.TypeProblem}),
	}
}

func (r *crashingRule) Create(_ *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"VariableDeclaration": func(_ *jsast.Node) error {
			return errors.New("kaboom")
		},
	}, nil
}

func TestRuleRuntimeErrorPropagatesWithRuleID(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register("crashing", func() lint.Rule { return newCrashingRule() })

	linter := lint.New(registry)
	linter.SetDefaultParser(jstest.New())

	_, err := linter.Verify([]byte("var x = 1;\n"), ruleConfig(errorOn("crashing")), lint.VerifyOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "crashing")
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "kaboom")
}

func TestFixFilterLimitsFixes(t *testing.T) {
	linter := newLinter(t)

	report, err := linter.VerifyAndFix([]byte("var x=1;\ndebugger;\n"),
		ruleConfig(map[string]config.RuleEntry{
			"no-var":      {Severity: config.SeverityError},
			"no-debugger": {Severity: config.SeverityError},
		}),
		lint.VerifyOptions{
			FixFilter: func(p lint.Problem) bool { return p.RuleID == "no-var" },
		})
	require.NoError(t, err)

	assert.True(t, report.Fixed)
	assert.Contains(t, string(report.Output), "let x=1;")
	assert.Contains(t, string(report.Output), "debugger;")
	require.Len(t, report.Messages, 1)
	assert.Equal(t, "no-debugger", report.Messages[0].RuleID)
}

func TestProcessorBlocks(t *testing.T) {
	linter := newLinter(t)

	text := []byte("# doc\n```js\nvar x=1;\n```\n")
	opts := lint.VerifyOptions{
		Filename: "readme.md",
		Preprocess: func(_ []byte, filename string) []lint.ProcessorBlock {
			return []lint.ProcessorBlock{
				{Text: []byte("var x=1;\n"), Filename: filename + "/0_block.js"},
				{Text: []byte("not js"), Filename: filename + "/1_block.txt"},
			}
		},
		Postprocess: func(lists [][]lint.Problem, _ string) []lint.Problem {
			var merged []lint.Problem
			for _, list := range lists {
				for _, p := range list {
					p.Line += 2 // remap into the host document
					merged = append(merged, p)
				}
			}
			return merged
		},
	}

	problems, err := linter.Verify(text, ruleConfig(errorOn("no-var")), opts)
	require.NoError(t, err)

	require.Len(t, problems, 1, "the .txt block is filtered out")
	assert.Equal(t, 3, problems[0].Line)
}

func TestExportedDirectiveMarksUsed(t *testing.T) {
	linter := newLinter(t)

	problems, err := linter.Verify(
		[]byte("/* exported helper */\nvar helper = 1;\n"),
		ruleConfig(errorOn("no-unused-vars")), lint.VerifyOptions{})
	require.NoError(t, err)
	assert.Empty(t, problems, "exported names count as used")

	problems, err = linter.Verify([]byte("var helper = 1;\n"),
		ruleConfig(errorOn("no-unused-vars")), lint.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Message, "helper")
}

func TestVerifyAndFixConvergesWithinCap(t *testing.T) {
	linter := newLinter(t)

	// A chain of fixable problems resolves in bounded passes, and fixed
	// is true exactly when the output changed.
	report, err := linter.VerifyAndFix([]byte("var a=1;\nvar b=2;\nvar c=3;\n"),
		ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)
	assert.True(t, report.Fixed)
	assert.NotEqual(t, "var a=1;\nvar b=2;\nvar c=3;\n", string(report.Output))

	clean, err := linter.VerifyAndFix([]byte("let a=1;\n"),
		ruleConfig(errorOn("no-var")), lint.VerifyOptions{})
	require.NoError(t, err)
	assert.False(t, clean.Fixed)
	assert.Equal(t, "let a=1;\n", string(clean.Output))
}

func TestSettingsReachRules(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register("settings-probe", func() lint.Rule { return newSettingsProbeRule() })

	linter := lint.New(registry)
	linter.SetDefaultParser(jstest.New())

	cfg := ruleConfig(errorOn("settings-probe"))
	cfg.Settings = map[string]any{"flag": "on"}

	problems, err := linter.Verify([]byte("let x = 1;\n"), cfg, lint.VerifyOptions{})
	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, "settings flag is on", problems[0].Message)
}

// markerRule marks a variable as used from another rule's listener.
type markerRule struct {
	lint.BaseRule
	name string
}

func (r *markerRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"Program": func(_ *jsast.Node) error {
			ctx.MarkVariableAsUsed(r.name)
			return nil
		},
	}, nil
}

func TestMarkVariableAsUsedSuppressesUnusedVar(t *testing.T) {
	registry := lint.NewRegistry()
	registry.Register("no-unused-vars", func() lint.Rule { return rules.NewNoUnusedVarsRule() })
	registry.Register("marker", func() lint.Rule {
		return &markerRule{
			BaseRule: lint.NewBaseRule("marker", &lint.Meta{Type: lint.TypeProblem}),
			name:     "helper",
		}
	})

	linter := lint.New(registry)
	linter.SetDefaultParser(jstest.New())

	cfg := ruleConfig(map[string]config.RuleEntry{
		"no-unused-vars": {Severity: config.SeverityError},
		"marker":         {Severity: config.SeverityError},
	})

	problems, err := linter.Verify([]byte("var helper = 1;\n"), cfg, lint.VerifyOptions{})
	require.NoError(t, err)
	assert.Empty(t, problems, "marked variables do not report as unused")
}

type settingsProbeRule struct {
	lint.BaseRule
}

func newSettingsProbeRule() *settingsProbeRule {
	return &settingsProbeRule{
		BaseRule: lint.NewBaseRule("settings-probe", &lint.Meta{Type: lint.TypeProblem}),
	}
}

func (r *settingsProbeRule) Create(ctx *lint.RuleContext) (lint.ListenerMap, error) {
	return lint.ListenerMap{
		"Program": func(n *jsast.Node) error {
			return ctx.Report(lint.ReportDescriptor{
				Node:    n,
				Message: fmt.Sprintf("settings flag is %v", ctx.Settings()["flag"]),
			})
		},
	}, nil
}
