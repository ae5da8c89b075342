package lint

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fix"
	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/lint/codepath"
	"github.com/yaklabco/gojslint/pkg/parser"
	"github.com/yaklabco/gojslint/pkg/source"
)

// MaxAutofixPasses bounds the verify-and-fix loop. Rules that keep
// producing fixes for each other stop making progress here.
const MaxAutofixPasses = 10

// Linter is the top-level entry point of the linting core. Across files it
// keeps the registered parsers and registry, plus the problems suppressed
// by the most recent run (see SuppressedProblems); everything else per-file
// lives for exactly one pass.
type Linter struct {
	registry      *Registry
	parsers       map[string]parser.Parser
	defaultParser parser.Parser

	suppressed []Problem
}

// New creates a Linter over the given registry; nil selects the default
// registry.
func New(registry *Registry) *Linter {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Linter{
		registry: registry,
		parsers:  make(map[string]parser.Parser),
	}
}

// Registry returns the linter's rule registry.
func (l *Linter) Registry() *Registry {
	return l.registry
}

// DefineParser registers a named parser selectable through
// languageOptions.parser.
func (l *Linter) DefineParser(name string, p parser.Parser) {
	l.parsers[name] = p
}

// SetDefaultParser sets the parser used when no name is configured.
func (l *Linter) SetDefaultParser(p parser.Parser) {
	l.defaultParser = p
}

// SuppressedProblems returns the problems the last verify run silenced
// via directives, annotated with their suppressions.
func (l *Linter) SuppressedProblems() []Problem {
	return l.suppressed
}

// Verify lints raw text and returns the problems in source order.
// A fatal parse error yields exactly one problem with Fatal set. Rule
// runtime errors propagate as errors, annotated with the rule id.
func (l *Linter) Verify(text []byte, cfg *config.Config, opts VerifyOptions) ([]Problem, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if opts.Preprocess == nil {
		return l.verifyText(text, cfg, opts, opts.filename())
	}

	blocks := opts.Preprocess(text, opts.filename())
	problemLists := make([][]Problem, 0, len(blocks))
	for _, block := range blocks {
		if !l.lintableBlock(opts, block) {
			problemLists = append(problemLists, nil)
			continue
		}
		problems, err := l.verifyText(block.Text, cfg, opts, block.Filename)
		if err != nil {
			return nil, err
		}
		problemLists = append(problemLists, problems)
	}

	if opts.Postprocess != nil {
		return opts.Postprocess(problemLists, opts.filename()), nil
	}
	var merged []Problem
	for _, list := range problemLists {
		merged = append(merged, list...)
	}
	return merged, nil
}

func (l *Linter) lintableBlock(opts VerifyOptions, block ProcessorBlock) bool {
	if opts.FilterCodeBlock != nil {
		return opts.FilterCodeBlock(block.Filename, block.Text)
	}
	for _, ext := range []string{".js", ".mjs", ".cjs", ".jsx"} {
		if strings.HasSuffix(block.Filename, ext) {
			return true
		}
	}
	return false
}

func (l *Linter) verifyText(text []byte, cfg *config.Config, opts VerifyOptions, filename string) ([]Problem, error) {
	p := l.defaultParser
	if name := cfg.LanguageOptions.Parser; name != "" {
		registered, ok := l.parsers[name]
		if !ok {
			return []Problem{configProblem(fmt.Sprintf("Parser %q was not found.", name))}, nil
		}
		p = registered
	}
	if p == nil {
		return []Problem{configProblem("No parser is registered; raw text cannot be linted.")}, nil
	}

	src, err := p.Parse(text, parser.Options{
		Filename:    filename,
		EcmaVersion: cfg.LanguageOptions.EcmaVersion,
		SourceType:  cfg.LanguageOptions.SourceType,
	})
	if err != nil {
		var perr *parser.ParseError
		if errors.As(err, &perr) {
			return []Problem{fatalProblem(perr)}, nil
		}
		return nil, fmt.Errorf("parser failed: %w", err)
	}
	return l.VerifyCode(src, cfg, opts)
}

// VerifyCode lints an already parsed source-code object.
func (l *Linter) VerifyCode(src *source.SourceCode, cfg *config.Config, opts VerifyOptions) ([]Problem, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := src.Validate(); err != nil {
		return []Problem{configProblem(fmt.Sprintf("Invalid source: %s.", err))}, nil
	}

	var problems []Problem

	// Inline directives: suppression state, config overlays, globals.
	directives := &directiveResults{
		ruleOverrides: map[string]config.RuleEntry{},
		globals:       map[string]config.GlobalValue{},
	}
	if !opts.NoInlineConfig {
		directives = parseDirectives(src.Comments)
		problems = append(problems, directives.problems...)
	}

	overlay := l.buildOverlay(cfg, directives, &problems)
	l.injectGlobals(src, overlay, directives)

	run := &runState{src: src, opts: opts}
	emitter := NewEmitter()

	if err := l.installRules(run, emitter, overlay, opts); err != nil {
		return nil, err
	}
	problems = append(problems, run.configProblems...)

	if err := l.traverse(run, emitter, src); err != nil {
		return nil, err
	}
	jsast.ClearParents(src.AST)

	problems = append(problems, run.problems...)
	sortProblems(problems)

	enabled := make(map[string]bool, len(overlay.Rules))
	for id, entry := range overlay.Rules {
		if entry.Severity != config.SeverityOff {
			enabled[id] = true
		}
	}
	kept, suppressed := applyDisableDirectives(applyOptions{
		problems:     problems,
		directives:   directives.disables,
		reportUnused: opts.ReportUnusedDisableDirectives,
		disableFixes: opts.DisableFixes,
		src:          src,
		enabledRules: enabled,
	})
	l.suppressed = suppressed
	return kept, nil
}

// buildOverlay merges inline rule overrides over the sealed base config.
func (l *Linter) buildOverlay(cfg *config.Config, directives *directiveResults, problems *[]Problem) *config.Config {
	overlay := cfg.Clone()
	for id, entry := range directives.ruleOverrides {
		rule, ok := l.registry.Get(id)
		if !ok {
			*problems = append(*problems, configProblem(l.registry.MissingRuleMessage(id)))
			continue
		}
		if meta := rule.Meta(); meta != nil && meta.Schema != nil {
			if err := meta.Schema(entry.Options); err != nil {
				*problems = append(*problems, configProblem(
					fmt.Sprintf("Inline configuration for rule %q is invalid: %s.", id, err)))
				continue
			}
		}
		overlay.Rules[id] = entry
	}
	return overlay
}

// injectGlobals declares configured and directive globals in the global
// scope and marks exported names as used.
func (l *Linter) injectGlobals(src *source.SourceCode, overlay *config.Config, directives *directiveResults) {
	if src.Scopes == nil {
		return
	}

	apply := func(globals map[string]config.GlobalValue) {
		names := make([]string, 0, len(globals))
		for name := range globals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if globals[name] == config.GlobalOff {
				continue
			}
			src.Scopes.DeclareGlobal(name, globals[name] == config.GlobalWritable)
		}
	}

	for _, env := range append(append([]string(nil), overlay.Envs...), directives.envs...) {
		if globals, ok := config.Environment(env); ok {
			apply(globals)
		}
	}
	apply(overlay.Globals)
	apply(directives.globals)

	for _, name := range directives.exported {
		if v := src.Scopes.InnermostScopeFor(src.AST).Lookup(name); v != nil {
			v.Used = true
		}
	}
}

// runState is the shared per-file lint state rule contexts observe.
type runState struct {
	src  *source.SourceCode
	opts VerifyOptions

	current        *jsast.Node
	problems       []Problem
	configProblems []Problem
}

func (r *runState) currentNode() *jsast.Node { return r.current }
func (r *runState) collect(p Problem)        { r.problems = append(r.problems, p) }
func (r *runState) fixesDisabled() bool      { return r.opts.DisableFixes }

// installRules creates each configured rule once and subscribes its
// listeners, wrapped so failures identify the faulting rule.
func (l *Linter) installRules(run *runState, emitter *Emitter, overlay *config.Config, opts VerifyOptions) error {
	ids := make([]string, 0, len(overlay.Rules))
	for id := range overlay.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := overlay.Rules[id]
		if entry.Severity == config.SeverityOff {
			continue
		}

		rule, ok := l.registry.Get(id)
		if !ok {
			run.configProblems = append(run.configProblems, configProblem(l.registry.MissingRuleMessage(id)))
			continue
		}
		meta := rule.Meta()
		if meta != nil && meta.Schema != nil {
			if err := meta.Schema(entry.Options); err != nil {
				run.configProblems = append(run.configProblems, configProblem(
					fmt.Sprintf("Configuration for rule %q is invalid: %s.", id, err)))
				continue
			}
		}

		ctx := &RuleContext{
			id:       id,
			severity: entry.Severity,
			meta:     meta,
			options:  entry.Options,
			settings: overlay.Settings,
			langOpts: overlay.LanguageOptions,
			filename: opts.filename(),
			src:      run.src,
			run:      run,
		}

		listeners, err := rule.Create(ctx)
		if err != nil {
			return annotateRuleError(err, id, run)
		}
		if listeners == nil {
			return fmt.Errorf("rule %q: create() returned no listeners", id)
		}

		for selector, raw := range listeners {
			wrapped, err := wrapListener(raw, id, run)
			if err != nil {
				return fmt.Errorf("rule %q: listener for %q: %w", id, selector, err)
			}
			emitter.On(selector, wrapped)
		}
	}
	return nil
}

// wrapListener normalizes a rule listener and annotates its errors with
// the rule id and the line being processed.
func wrapListener(raw any, ruleID string, run *runState) (any, error) {
	switch fn := raw.(type) {
	case func(*jsast.Node) error:
		return NodeListener(func(n *jsast.Node) error {
			return annotateRuleError(fn(n), ruleID, run)
		}), nil
	case NodeListener:
		return NodeListener(func(n *jsast.Node) error {
			return annotateRuleError(fn(n), ruleID, run)
		}), nil
	case func(*codepath.Path, *jsast.Node) error:
		return func(p *codepath.Path, n *jsast.Node) error {
			return annotateRuleError(fn(p, n), ruleID, run)
		}, nil
	case func(*codepath.Segment, *jsast.Node) error:
		return func(seg *codepath.Segment, n *jsast.Node) error {
			return annotateRuleError(fn(seg, n), ruleID, run)
		}, nil
	case func(*codepath.Segment, *codepath.Segment, *jsast.Node) error:
		return func(from, to *codepath.Segment, n *jsast.Node) error {
			return annotateRuleError(fn(from, to, n), ruleID, run)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported listener type %T", raw)
	}
}

func annotateRuleError(err error, ruleID string, run *runState) error {
	if err == nil || errors.Is(err, jsast.SkipChildren) || errors.Is(err, jsast.BreakWalk) {
		return err
	}
	line := 0
	if run.current != nil {
		line = run.current.Loc.Start.Line
	}
	return fmt.Errorf("rule %q errored at line %d: %w", ruleID, line, err)
}

// traverse walks the AST once, interleaving code-path events with
// selector events in the contract order: path start and segment starts
// before a node's enter event, segment ends and path end after its leave.
func (l *Linter) traverse(run *runState, emitter *Emitter, src *source.SourceCode) error {
	gen, err := NewNodeEventGenerator(emitter)
	if err != nil {
		return err
	}
	analyzer := codepath.NewAnalyzer(codePathNotifier(emitter))

	return jsast.Traverse(src.AST, jsast.TraverseOptions{
		Keys:       src.ResolveKeys(),
		SetParents: true,
		Enter: func(n, _ *jsast.Node) error {
			run.current = n
			if err := analyzer.EnterNode(n); err != nil {
				return err
			}
			return gen.EnterNode(n)
		},
		Leave: func(n, _ *jsast.Node) error {
			run.current = n
			if err := gen.LeaveNode(n); err != nil {
				return err
			}
			return analyzer.LeaveNode(n)
		},
	})
}

// codePathNotifier bridges analyzer callbacks onto emitter listeners.
func codePathNotifier(emitter *Emitter) codepath.Notifier {
	return codepath.Notifier{
		OnCodePathStart: func(p *codepath.Path, n *jsast.Node) error {
			return emitPathEvent(emitter, "onCodePathStart", p, n)
		},
		OnCodePathEnd: func(p *codepath.Path, n *jsast.Node) error {
			return emitPathEvent(emitter, "onCodePathEnd", p, n)
		},
		OnSegmentStart: func(seg *codepath.Segment, n *jsast.Node) error {
			return emitSegmentEvent(emitter, "onCodePathSegmentStart", seg, n)
		},
		OnSegmentEnd: func(seg *codepath.Segment, n *jsast.Node) error {
			return emitSegmentEvent(emitter, "onCodePathSegmentEnd", seg, n)
		},
		OnSegmentLoop: func(from, to *codepath.Segment, n *jsast.Node) error {
			for _, raw := range emitter.Listeners("onCodePathSegmentLoop") {
				fn, ok := raw.(func(*codepath.Segment, *codepath.Segment, *jsast.Node) error)
				if !ok {
					return fmt.Errorf("listener for onCodePathSegmentLoop has wrong type %T", raw)
				}
				if err := fn(from, to, n); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func emitPathEvent(emitter *Emitter, event string, p *codepath.Path, n *jsast.Node) error {
	for _, raw := range emitter.Listeners(event) {
		fn, ok := raw.(func(*codepath.Path, *jsast.Node) error)
		if !ok {
			return fmt.Errorf("listener for %s has wrong type %T", event, raw)
		}
		if err := fn(p, n); err != nil {
			return err
		}
	}
	return nil
}

func emitSegmentEvent(emitter *Emitter, event string, seg *codepath.Segment, n *jsast.Node) error {
	for _, raw := range emitter.Listeners(event) {
		fn, ok := raw.(func(*codepath.Segment, *jsast.Node) error)
		if !ok {
			return fmt.Errorf("listener for %s has wrong type %T", event, raw)
		}
		if err := fn(seg, n); err != nil {
			return err
		}
	}
	return nil
}

// fatalProblem converts a parse error into the single fatal problem a
// failed lint returns.
func fatalProblem(perr *parser.ParseError) Problem {
	line, column := perr.Line, perr.Column+1
	if perr.Line == 0 {
		line, column = 1, 1
	}
	return Problem{
		Severity: config.SeverityError,
		Message:  "Parsing error: " + perr.Message,
		Line:     line,
		Column:   column,
		Fatal:    true,
	}
}

// configProblem builds a configuration-level problem at (1, 0).
func configProblem(message string) Problem {
	return Problem{
		Severity: config.SeverityError,
		Message:  message,
		Line:     1,
		Column:   0,
	}
}

// VerifyAndFix iterates parse, lint, and fix application until no fix
// applies or the pass cap is reached, then reports against the final
// text. A fatal parse error in any pass stops the loop immediately.
func (l *Linter) VerifyAndFix(text []byte, cfg *config.Config, opts VerifyOptions) (FixReport, error) {
	currentText := text
	fixedOverall := false
	lastPassFixed := false

	var messages []Problem
	passCount := 0
	for {
		passCount++
		var err error
		messages, err = l.Verify(currentText, cfg, opts)
		if err != nil {
			return FixReport{Output: currentText}, err
		}
		if hasFatal(messages) {
			lastPassFixed = false
			break
		}

		result := applyFixes(currentText, messages, opts.FixFilter)
		lastPassFixed = result.Fixed
		if result.Fixed {
			fixedOverall = true
			currentText = result.Output
			messages = result.Messages
		}
		if !result.Fixed || passCount >= MaxAutofixPasses {
			break
		}
	}

	if lastPassFixed {
		// The pass cap stopped the loop after an applied fix; verify
		// once more so messages reflect the final text.
		var err error
		messages, err = l.Verify(currentText, cfg, opts)
		if err != nil {
			return FixReport{Output: currentText}, err
		}
	}

	return FixReport{Fixed: fixedOverall, Output: currentText, Messages: messages}, nil
}

func hasFatal(problems []Problem) bool {
	for _, p := range problems {
		if p.Fatal {
			return true
		}
	}
	return false
}

// fixResult is one arbitration pass over a problem list.
type fixResult struct {
	Fixed    bool
	Output   []byte
	Messages []Problem
}

// applyFixes selects a maximal non-conflicting subset of the problems'
// fixes, applies it, and returns the problems whose fixes were not
// applied. Problems without fixes always survive.
func applyFixes(text []byte, problems []Problem, filter func(Problem) bool) fixResult {
	type candidate struct {
		problemIdx int
		edit       fix.TextEdit
	}
	var candidates []candidate
	for i, p := range problems {
		if p.Fix == nil {
			continue
		}
		if filter != nil && !filter(p) {
			continue
		}
		if fix.Validate([]fix.TextEdit{*p.Fix}, len(text)) != nil {
			continue
		}
		candidates = append(candidates, candidate{problemIdx: i, edit: *p.Fix})
	}
	if len(candidates) == 0 {
		return fixResult{Output: text, Messages: problems}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].edit.Range.Start != candidates[j].edit.Range.Start {
			return candidates[i].edit.Range.Start < candidates[j].edit.Range.Start
		}
		return candidates[i].edit.Range.End < candidates[j].edit.Range.End
	})

	applied := make(map[int]bool, len(candidates))
	var edits []fix.TextEdit
	lastEnd := -1
	for _, c := range candidates {
		if c.edit.Range.Start < lastEnd {
			continue
		}
		applied[c.problemIdx] = true
		edits = append(edits, c.edit)
		lastEnd = c.edit.Range.End
	}

	var remaining []Problem
	for i, p := range problems {
		if !applied[i] {
			remaining = append(remaining, p)
		}
	}
	return fixResult{
		Fixed:    len(edits) > 0,
		Output:   fix.Apply(text, edits),
		Messages: remaining,
	}
}
