// Package lint provides the linting core: rule execution over a parsed
// source file, inline directive handling, disable filtering, and the
// fix-applying multi-pass driver.
package lint

import (
	"sort"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
)

// Suppression records why a problem was silenced rather than reported.
type Suppression struct {
	// Kind is the suppression mechanism, currently always "directive".
	Kind string `json:"kind"`

	// Justification is the text after the "--" separator in the
	// directive comment, if any.
	Justification string `json:"justification"`
}

// Suggestion is a named fix a rule offers for explicit user selection.
// Suggestions are never auto-applied.
type Suggestion struct {
	// MessageID resolves the description against the rule's messages.
	MessageID string `json:"messageId,omitempty"`

	// Desc describes what applying the suggestion does.
	Desc string `json:"desc"`

	// Fix is the suggested edit.
	Fix fix.TextEdit `json:"fix"`
}

// Problem is a single reported finding. This shape is the stable output
// of the linting core.
type Problem struct {
	// RuleID names the reporting rule; empty for core problems such as
	// parse errors and directive diagnostics.
	RuleID string `json:"ruleId"`

	// Severity is the problem's reporting level.
	Severity config.Severity `json:"severity"`

	// Message is the fully interpolated problem text.
	Message string `json:"message"`

	// MessageID is the rule message key, when the rule reported by id.
	MessageID string `json:"messageId,omitempty"`

	// Line and Column are the 1-based start of the problem.
	Line   int `json:"line"`
	Column int `json:"column"`

	// EndLine and EndColumn are the 1-based end, 0 when absent.
	EndLine   int `json:"endLine,omitempty"`
	EndColumn int `json:"endColumn,omitempty"`

	// NodeType is the reported node's type, empty for position reports.
	NodeType string `json:"nodeType,omitempty"`

	// Fatal marks a parse error; linting of the file produced only
	// this problem.
	Fatal bool `json:"fatal,omitempty"`

	// Fix is the auto-fix edit, nil when the rule offered none or
	// fixing was disabled.
	Fix *fix.TextEdit `json:"fix,omitempty"`

	// Suggestions lists alternative manual fixes.
	Suggestions []Suggestion `json:"suggestions,omitempty"`

	// Suppressions is non-empty when directives silenced this problem.
	Suppressions []Suppression `json:"suppressions,omitempty"`
}

// Suppressed returns true when the problem carries suppressions.
func (p *Problem) Suppressed() bool {
	return len(p.Suppressions) > 0
}

// sortProblems orders problems by (line, column), preserving the relative
// order of problems at the same position.
func sortProblems(problems []Problem) {
	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Line != problems[j].Line {
			return problems[i].Line < problems[j].Line
		}
		return problems[i].Column < problems[j].Column
	})
}
