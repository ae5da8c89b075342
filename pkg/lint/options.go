package lint

import "github.com/yaklabco/gojslint/pkg/config"

// DefaultFilename names in-memory input.
const DefaultFilename = "<input>"

// ProcessorBlock is one extracted code block from a processor-driven lint.
type ProcessorBlock struct {
	// Text is the block's source text.
	Text []byte

	// Filename names the block (e.g. "readme.md/0_example.js").
	Filename string
}

// VerifyOptions controls a single verify run.
type VerifyOptions struct {
	// Filename names the linted file; DefaultFilename when empty.
	Filename string

	// NoInlineConfig ignores every in-source directive comment.
	NoInlineConfig bool

	// ReportUnusedDisableDirectives reports disable directives that
	// suppressed nothing, at the given severity. Off by default.
	ReportUnusedDisableDirectives config.Severity

	// DisableFixes skips invoking rule fix functions; reported problems
	// carry no fixes.
	DisableFixes bool

	// FixFilter limits which problems VerifyAndFix applies fixes for.
	// Nil fixes everything fixable.
	FixFilter func(p Problem) bool

	// Preprocess splits the input into code blocks for processor-driven
	// linting. Nil lints the input as a single block.
	Preprocess func(text []byte, filename string) []ProcessorBlock

	// Postprocess merges the per-block problem lists back into one,
	// remapping locations. Nil concatenates.
	Postprocess func(problemLists [][]Problem, filename string) []Problem

	// FilterCodeBlock selects which blocks to lint. Nil lints blocks
	// whose filename ends in a JavaScript extension.
	FilterCodeBlock func(filename string, text []byte) bool
}

func (o VerifyOptions) filename() string {
	if o.Filename == "" {
		return DefaultFilename
	}
	return o.Filename
}

// FixReport is the result of VerifyAndFix.
type FixReport struct {
	// Fixed is true when at least one fix was applied.
	Fixed bool

	// Output is the final text after all applied fixes.
	Output []byte

	// Messages lists the problems remaining in the final text.
	Messages []Problem
}
