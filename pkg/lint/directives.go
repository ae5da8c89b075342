package lint

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/jsast"
)

// DirectiveType is the kind of a disable-family directive.
type DirectiveType string

// Disable-family directive types.
const (
	DirDisable         DirectiveType = "disable"
	DirEnable          DirectiveType = "enable"
	DirDisableLine     DirectiveType = "disable-line"
	DirDisableNextLine DirectiveType = "disable-next-line"
)

// DisableDirective is one rule entry of a parsed disable-family comment.
// A comment listing several rules yields one directive per rule, all
// sharing the same comment.
type DisableDirective struct {
	// Type is the directive kind.
	Type DirectiveType

	// Line and Column anchor the directive for ordering against
	// problems. Disable-next-line anchors at the comment's end line;
	// the others anchor at the comment's start.
	Line   int
	Column int

	// RuleID is the targeted rule; empty means all rules.
	RuleID string

	// Justification is the text after the "--" separator, if any.
	Justification string

	// Comment is the directive's source comment.
	Comment *jsast.Comment

	// GroupSize is how many directives the comment produced; the unused
	// fix removes the whole comment only when the group is one rule (or
	// every rule in the group is unused).
	GroupSize int
}

// directiveResults aggregates everything extracted from a file's comments.
type directiveResults struct {
	disables      []DisableDirective
	ruleOverrides map[string]config.RuleEntry
	globals       map[string]config.GlobalValue
	exported      []string
	envs          []string
	problems      []Problem
}

// directiveKeyword matches the directive keyword at the start of a comment
// body, per the byte-level directive syntax.
var directiveKeyword = regexp.MustCompile(
	`^\s*(eslint(?:-disable(?:-next-line|-line)?|-enable|-env)?|globals?|exported)(?:\s|$)`)

// justificationSplitter separates the directive value from its
// justification.
var justificationSplitter = regexp.MustCompile(`\s--\s`)

// parseDirectives extracts every directive from the file's comments.
// allowInlineConfig false limits extraction to nothing: callers skip the
// call entirely in that case.
func parseDirectives(comments []*jsast.Comment) *directiveResults {
	res := &directiveResults{
		ruleOverrides: make(map[string]config.RuleEntry),
		globals:       make(map[string]config.GlobalValue),
	}

	for _, comment := range comments {
		if comment.Type == jsast.TokShebang {
			continue
		}
		match := directiveKeyword.FindStringSubmatch(comment.Value)
		if match == nil {
			continue
		}
		keyword := match[1]
		rest := strings.TrimSpace(comment.Value[len(match[0]):])

		value, justification := rest, ""
		if loc := justificationSplitter.FindStringIndex(rest); loc != nil {
			value = strings.TrimSpace(rest[:loc[0]])
			justification = strings.TrimSpace(rest[loc[1]:])
		}

		// Line comments only support the single-line disable forms.
		if comment.Type == jsast.TokLineComment &&
			keyword != "eslint-disable-line" && keyword != "eslint-disable-next-line" {
			continue
		}

		switch keyword {
		case "eslint-disable":
			res.addDisables(DirDisable, comment, value, justification)
		case "eslint-enable":
			res.addDisables(DirEnable, comment, value, justification)
		case "eslint-disable-line":
			if comment.Loc.Start.Line != comment.Loc.End.Line {
				res.problems = append(res.problems, directiveProblem(comment,
					"eslint-disable-line comment should not span multiple lines."))
				continue
			}
			res.addDisables(DirDisableLine, comment, value, justification)
		case "eslint-disable-next-line":
			if comment.Loc.Start.Line != comment.Loc.End.Line {
				res.problems = append(res.problems, directiveProblem(comment,
					"eslint-disable-next-line comment should not span multiple lines."))
				continue
			}
			res.addDisables(DirDisableNextLine, comment, value, justification)
		case "eslint":
			res.parseConfigOverlay(comment, value)
		case "global", "globals":
			res.parseGlobals(comment, value)
		case "exported":
			res.exported = append(res.exported, splitNames(value)...)
		case "eslint-env":
			for _, name := range splitNames(value) {
				if _, ok := config.Environment(name); !ok {
					res.problems = append(res.problems, directiveProblem(comment,
						fmt.Sprintf("Environment %q is not known.", name)))
					continue
				}
				res.envs = append(res.envs, name)
			}
		}
	}
	return res
}

// addDisables expands a disable-family comment into one directive per
// listed rule; an empty list yields a single wildcard directive.
func (res *directiveResults) addDisables(t DirectiveType, comment *jsast.Comment, value, justification string) {
	line := comment.Loc.Start.Line
	column := comment.Loc.Start.Column + 1
	if t == DirDisableNextLine {
		line = comment.Loc.End.Line
	}

	rules := splitNames(value)
	if len(rules) == 0 {
		rules = []string{""}
	}
	for _, ruleID := range rules {
		res.disables = append(res.disables, DisableDirective{
			Type:          t,
			Line:          line,
			Column:        column,
			RuleID:        ruleID,
			Justification: justification,
			Comment:       comment,
			GroupSize:     len(rules),
		})
	}
}

// parseConfigOverlay parses an inline "eslint" rule configuration. The
// value is a JSON-ish mapping; wrapping it in a flow mapping lets the
// YAML decoder accept both quoted and bare keys.
func (res *directiveResults) parseConfigOverlay(comment *jsast.Comment, value string) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte("{"+value+"}"), &raw); err != nil {
		res.problems = append(res.problems, directiveProblem(comment,
			fmt.Sprintf("Failed to parse inline configuration: %s", firstLine(err.Error()))))
		return
	}
	for id, v := range raw {
		entry, err := config.ParseRuleEntry(normalizeYAML(v))
		if err != nil {
			res.problems = append(res.problems, directiveProblem(comment,
				fmt.Sprintf("Inline configuration for rule %q is invalid: %s", id, err)))
			continue
		}
		res.ruleOverrides[id] = entry
	}
}

// parseGlobals parses a "global"/"globals" name list with optional
// ":value" annotations.
func (res *directiveResults) parseGlobals(comment *jsast.Comment, value string) {
	for _, item := range splitNames(value) {
		name, annotation, annotated := strings.Cut(item, ":")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		gv := config.GlobalReadonly
		if annotated {
			parsed, err := config.ParseGlobalValue(strings.TrimSpace(annotation))
			if err != nil {
				res.problems = append(res.problems, directiveProblem(comment, err.Error()))
				continue
			}
			gv = parsed
		}
		res.globals[name] = gv
	}
}

// splitNames splits a comma-separated directive value into trimmed,
// non-empty entries.
func splitNames(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var names []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// directiveProblem builds a non-fatal problem located at a comment.
func directiveProblem(comment *jsast.Comment, message string) Problem {
	return Problem{
		Severity:  config.SeverityError,
		Message:   message,
		Line:      comment.Loc.Start.Line,
		Column:    comment.Loc.Start.Column + 1,
		EndLine:   comment.Loc.End.Line,
		EndColumn: comment.Loc.End.Column + 1,
	}
}

// normalizeYAML converts yaml.v3's map[string]any / []any values into the
// shapes config parsing expects. Scalars pass through.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = normalizeYAML(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
