package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/source"
)

// applyOptions carries the inputs of the disable-directive post-filter.
type applyOptions struct {
	problems     []Problem
	directives   []DisableDirective
	reportUnused config.Severity // SeverityOff disables unused reporting
	disableFixes bool
	src          *source.SourceCode

	// enabledRules lists rules with severity above off; a directive for
	// a rule that is off anyway is not reported as unused.
	enabledRules map[string]bool
}

// disableState tracks which rules are currently disabled while walking
// problems and positional directives in source order.
type disableState struct {
	wildcard    *DisableDirective
	rules       map[string]*DisableDirective
	ruleEnabled map[string]bool
}

func newDisableState() *disableState {
	return &disableState{
		rules:       make(map[string]*DisableDirective),
		ruleEnabled: make(map[string]bool),
	}
}

func (s *disableState) process(d *DisableDirective) {
	switch d.Type {
	case DirDisable:
		if d.RuleID == "" {
			s.wildcard = d
			s.rules = make(map[string]*DisableDirective)
			s.ruleEnabled = make(map[string]bool)
		} else {
			s.rules[d.RuleID] = d
			delete(s.ruleEnabled, d.RuleID)
		}
	case DirEnable:
		if d.RuleID == "" {
			s.wildcard = nil
			s.rules = make(map[string]*DisableDirective)
			s.ruleEnabled = make(map[string]bool)
		} else {
			delete(s.rules, d.RuleID)
			s.ruleEnabled[d.RuleID] = true
		}
	}
}

// covering returns the directive suppressing the given rule at the current
// state, or nil.
func (s *disableState) covering(ruleID string) *DisableDirective {
	if d, ok := s.rules[ruleID]; ok {
		return d
	}
	if s.wildcard != nil && !s.ruleEnabled[ruleID] {
		return s.wildcard
	}
	return nil
}

// applyDisableDirectives filters the sorted problem list through the
// parsed directives: suppressed problems are annotated and removed from
// the primary list, and unused disable directives are reported per the
// configured mode. The filter is stable.
func applyDisableDirectives(o applyOptions) (kept, suppressed []Problem) {
	positional := make([]*DisableDirective, 0, len(o.directives))
	lineSuppressions := make(map[int][]*DisableDirective)
	used := make(map[*DisableDirective]bool)

	for i := range o.directives {
		d := &o.directives[i]
		switch d.Type {
		case DirDisable, DirEnable:
			positional = append(positional, d)
		case DirDisableLine:
			lineSuppressions[d.Line] = append(lineSuppressions[d.Line], d)
		case DirDisableNextLine:
			lineSuppressions[d.Line+1] = append(lineSuppressions[d.Line+1], d)
		}
	}
	sort.SliceStable(positional, func(i, j int) bool {
		if positional[i].Line != positional[j].Line {
			return positional[i].Line < positional[j].Line
		}
		return positional[i].Column < positional[j].Column
	})

	state := newDisableState()
	next := 0

	for _, problem := range o.problems {
		for next < len(positional) && !afterProblem(positional[next], &problem) {
			state.process(positional[next])
			next++
		}

		// Core problems (parse errors, directive diagnostics) carry no
		// rule id and are never suppressed.
		var covering *DisableDirective
		if problem.RuleID != "" {
			covering = coveringOnLine(lineSuppressions[problem.Line], problem.RuleID)
			if covering == nil {
				covering = state.covering(problem.RuleID)
			}
		}

		if covering == nil || problem.Fatal {
			kept = append(kept, problem)
			continue
		}

		used[covering] = true
		problem.Fatal = false
		problem.Suppressions = append(problem.Suppressions, Suppression{
			Kind:          "directive",
			Justification: covering.Justification,
		})
		suppressed = append(suppressed, problem)
	}

	// Drain remaining directives so trailing disables count as processed.
	for ; next < len(positional); next++ {
		state.process(positional[next])
	}

	if o.reportUnused != config.SeverityOff {
		kept = append(kept, unusedDirectiveProblems(o, used)...)
		sortProblems(kept)
	}
	return kept, suppressed
}

// afterProblem reports whether the directive is positioned after the
// problem in source order.
func afterProblem(d *DisableDirective, p *Problem) bool {
	if d.Line != p.Line {
		return d.Line > p.Line
	}
	return d.Column > p.Column
}

func coveringOnLine(directives []*DisableDirective, ruleID string) *DisableDirective {
	if ruleID == "" {
		return nil
	}
	for _, d := range directives {
		if d.RuleID == "" || d.RuleID == ruleID {
			return d
		}
	}
	return nil
}

// unusedDirectiveProblems reports disable-family directives that covered
// no problem. When every rule of a directive comment is unused, the
// problem carries a fix removing the whole comment (and nothing else on
// its line).
func unusedDirectiveProblems(o applyOptions, used map[*DisableDirective]bool) []Problem {
	type group struct {
		directives []*DisableDirective
		unused     []*DisableDirective
	}
	var order []*jsast.Comment
	groups := make(map[*jsast.Comment]*group)

	for i := range o.directives {
		d := &o.directives[i]
		if d.Type == DirEnable {
			continue
		}
		g, ok := groups[d.Comment]
		if !ok {
			g = &group{}
			groups[d.Comment] = g
			order = append(order, d.Comment)
		}
		g.directives = append(g.directives, d)
		if used[d] {
			continue
		}
		if d.RuleID != "" && !o.enabledRules[d.RuleID] {
			continue
		}
		g.unused = append(g.unused, d)
	}

	var problems []Problem
	for _, comment := range order {
		g := groups[comment]
		if len(g.unused) == 0 {
			continue
		}

		allUnused := len(g.unused) == len(g.directives)
		// One removal fix per comment is enough; the remaining unused
		// entries of the same comment report without a fix.
		fixAttached := false
		for _, d := range g.unused {
			problem := Problem{
				Severity:  o.reportUnused,
				Message:   unusedMessage(d),
				Line:      d.Comment.Loc.Start.Line,
				Column:    d.Comment.Loc.Start.Column + 1,
				EndLine:   d.Comment.Loc.End.Line,
				EndColumn: d.Comment.Loc.End.Column + 1,
			}
			if allUnused && !o.disableFixes && !fixAttached {
				edit := removalEdit(o.src, d.Comment)
				problem.Fix = &edit
				fixAttached = true
			}
			problems = append(problems, problem)
		}
	}
	return problems
}

func unusedMessage(d *DisableDirective) string {
	if d.RuleID == "" {
		return "Unused eslint-disable directive (no problems were reported)."
	}
	return fmt.Sprintf("Unused eslint-disable directive (no problems were reported from %q).", d.RuleID)
}

// removalEdit deletes a directive comment; when the comment sits alone on
// its line the whole line goes, newline included.
func removalEdit(src *source.SourceCode, comment *jsast.Comment) fix.TextEdit {
	if src != nil {
		if info, ok := src.Lines().Line(comment.Loc.Start.Line); ok &&
			comment.Loc.Start.Line == comment.Loc.End.Line {
			before := src.TextRange(jsast.Range{Start: info.Start, End: comment.Range.Start})
			after := src.TextRange(jsast.Range{Start: comment.Range.End, End: info.TextEnd})
			if strings.TrimSpace(before) == "" && strings.TrimSpace(after) == "" {
				return fix.TextEdit{Range: jsast.Range{Start: info.Start, End: info.End}}
			}
		}
	}
	return fix.TextEdit{Range: comment.Range}
}
