package lint

import (
	"fmt"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/scope"
	"github.com/yaklabco/gojslint/pkg/source"
)

// ReportDescriptor is the argument to RuleContext.Report. Either Node or
// Loc locates the problem; either Message or MessageID supplies the text.
type ReportDescriptor struct {
	// Node locates the problem at a node's span.
	Node *jsast.Node

	// Loc overrides the location when set.
	Loc *jsast.SourceLocation

	// Message is a literal message template.
	Message string

	// MessageID resolves the template from the rule's meta messages.
	MessageID string

	// Data fills {{name}} placeholders in the template.
	Data map[string]string

	// Fix builds the auto-fix edits. It is invoked lazily, and only
	// when the rule's meta declares it fixable.
	Fix func(b *fix.Builder) error

	// Suggest lists alternative manual fixes. Requires
	// meta.HasSuggestions.
	Suggest []SuggestDescriptor
}

// SuggestDescriptor describes one suggestion attached to a report.
type SuggestDescriptor struct {
	MessageID string
	Desc      string
	Data      map[string]string
	Fix       func(b *fix.Builder) error
}

// runView is the slice of per-file lint state a rule context needs: the
// traversal position and the problem sink.
type runView interface {
	currentNode() *jsast.Node
	collect(p Problem)
	fixesDisabled() bool
}

// RuleContext is the per-rule view of one lint pass. It vends source,
// scope, and configuration accessors and collects the rule's reports.
type RuleContext struct {
	id       string
	severity config.Severity
	meta     *Meta
	options  []any
	settings map[string]any
	langOpts config.LanguageOptions
	filename string
	src      *source.SourceCode
	run      runView
}

// ID returns the id of the rule this context was built for.
func (rc *RuleContext) ID() string {
	return rc.id
}

// Options returns the rule's configured options.
func (rc *RuleContext) Options() []any {
	return rc.options
}

// Settings returns the run's shared settings.
func (rc *RuleContext) Settings() map[string]any {
	return rc.settings
}

// LanguageOptions returns the run's language options.
func (rc *RuleContext) LanguageOptions() config.LanguageOptions {
	return rc.langOpts
}

// ParserServices returns opaque parser extensions, nil when absent.
func (rc *RuleContext) ParserServices() map[string]any {
	return rc.src.ParserServices
}

// SourceCode returns the file's source representation.
func (rc *RuleContext) SourceCode() *source.SourceCode {
	return rc.src
}

// Filename returns the name of the file being linted.
func (rc *RuleContext) Filename() string {
	return rc.filename
}

// Ancestors returns the current node's ancestor stack, outermost first.
func (rc *RuleContext) Ancestors() []*jsast.Node {
	var chain []*jsast.Node
	for cur := rc.run.currentNode(); cur != nil && cur.Parent != nil; cur = cur.Parent {
		chain = append(chain, cur.Parent)
	}
	// Reverse to outermost-first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// Scope returns the innermost scope enclosing the current node.
func (rc *RuleContext) Scope() *scope.Scope {
	if rc.src.Scopes == nil {
		return nil
	}
	return rc.src.Scopes.InnermostScopeFor(rc.run.currentNode())
}

// DeclaredVariables returns the variables declared by the given node.
func (rc *RuleContext) DeclaredVariables(n *jsast.Node) []*scope.Variable {
	if rc.src.Scopes == nil || n == nil {
		return nil
	}
	var declared []*scope.Variable
	for _, s := range rc.src.Scopes.Scopes() {
		for _, v := range s.Variables {
			for _, def := range v.Defs {
				if n.Range.Covers(def.Range) {
					declared = append(declared, v)
					break
				}
			}
		}
	}
	return declared
}

// MarkVariableAsUsed flags the named variable as used, walking the scope
// chain upward from the innermost scope at the current node. Returns true
// when a variable was found.
func (rc *RuleContext) MarkVariableAsUsed(name string) bool {
	s := rc.Scope()
	if s == nil {
		return false
	}
	return s.MarkUsed(name)
}

// Report records a problem. Descriptor validation failures (unknown
// message id, fix without fixable meta, suggestions without suggestion
// meta) are fatal and abort the run.
func (rc *RuleContext) Report(d ReportDescriptor) error {
	problem := Problem{
		RuleID:   rc.id,
		Severity: rc.severity,
	}

	message, err := rc.resolveMessage(d.Message, d.MessageID, d.Data)
	if err != nil {
		return err
	}
	problem.Message = message
	problem.MessageID = d.MessageID

	loc, nodeType, err := rc.resolveLocation(d)
	if err != nil {
		return err
	}
	problem.Line = loc.Start.Line
	problem.Column = loc.Start.Column + 1
	if loc.End.Line > 0 {
		problem.EndLine = loc.End.Line
		problem.EndColumn = loc.End.Column + 1
	}
	problem.NodeType = nodeType

	if d.Fix != nil {
		if rc.meta == nil || rc.meta.Fixable == "" {
			return fmt.Errorf("rule %q: fixable rules must set meta.fixable to \"code\" or \"whitespace\"", rc.id)
		}
		if !rc.run.fixesDisabled() {
			edit, err := rc.buildFix(d.Fix)
			if err != nil {
				return err
			}
			if edit != nil && d.Node != nil && !d.Node.Range.Covers(edit.Range) {
				// Permitted, but worth a trace when hunting bad rewrites.
				logging.Default().Debug("fix range escapes reported node",
					logging.FieldRule, rc.id,
					"fixRange", edit.Range,
					"nodeRange", d.Node.Range)
			}
			problem.Fix = edit
		}
	}

	if len(d.Suggest) > 0 {
		if rc.meta == nil || !rc.meta.HasSuggestions {
			return fmt.Errorf("rule %q: suggestions require meta.hasSuggestions", rc.id)
		}
		for _, sd := range d.Suggest {
			suggestion, err := rc.buildSuggestion(sd)
			if err != nil {
				return err
			}
			problem.Suggestions = append(problem.Suggestions, suggestion)
		}
	}

	rc.run.collect(problem)
	return nil
}

func (rc *RuleContext) resolveMessage(message, messageID string, data map[string]string) (string, error) {
	switch {
	case messageID != "" && message != "":
		return "", fmt.Errorf("rule %q: report() accepts message or messageId, not both", rc.id)
	case messageID != "":
		if rc.meta == nil || rc.meta.Messages == nil {
			return "", fmt.Errorf("rule %q: messageId %q used but meta.messages is empty", rc.id, messageID)
		}
		template, ok := rc.meta.Messages[messageID]
		if !ok {
			return "", fmt.Errorf("rule %q: unknown messageId %q", rc.id, messageID)
		}
		return interpolate(template, data), nil
	case message != "":
		return interpolate(message, data), nil
	default:
		return "", fmt.Errorf("rule %q: report() requires a message or messageId", rc.id)
	}
}

func (rc *RuleContext) resolveLocation(d ReportDescriptor) (jsast.SourceLocation, string, error) {
	if d.Loc != nil {
		nodeType := ""
		if d.Node != nil {
			nodeType = d.Node.Type
		}
		return *d.Loc, nodeType, nil
	}
	if d.Node != nil {
		return d.Node.Loc, d.Node.Type, nil
	}
	return jsast.SourceLocation{}, "", fmt.Errorf("rule %q: report() requires a node or loc", rc.id)
}

func (rc *RuleContext) buildFix(build func(b *fix.Builder) error) (*fix.TextEdit, error) {
	builder := fix.NewBuilder()
	if err := build(builder); err != nil {
		return nil, fmt.Errorf("rule %q: fix failed: %w", rc.id, err)
	}
	edit, ok := builder.Merged(rc.src.Text())
	if !ok {
		return nil, nil
	}
	return &edit, nil
}

func (rc *RuleContext) buildSuggestion(sd SuggestDescriptor) (Suggestion, error) {
	desc := sd.Desc
	if sd.MessageID != "" {
		template, ok := rc.meta.Messages[sd.MessageID]
		if !ok {
			return Suggestion{}, fmt.Errorf("rule %q: unknown suggestion messageId %q", rc.id, sd.MessageID)
		}
		desc = interpolate(template, sd.Data)
	}
	if sd.Fix == nil {
		return Suggestion{}, fmt.Errorf("rule %q: suggestions require a fix", rc.id)
	}
	builder := fix.NewBuilder()
	if err := sd.Fix(builder); err != nil {
		return Suggestion{}, fmt.Errorf("rule %q: suggestion fix failed: %w", rc.id, err)
	}
	edit, ok := builder.Merged(rc.src.Text())
	if !ok {
		return Suggestion{}, fmt.Errorf("rule %q: suggestion produced no edits", rc.id)
	}
	return Suggestion{MessageID: sd.MessageID, Desc: desc, Fix: edit}, nil
}
