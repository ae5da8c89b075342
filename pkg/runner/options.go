package runner

import "github.com/yaklabco/gojslint/pkg/config"

// Options controls a runner invocation.
type Options struct {
	// Fix applies auto-fixes and writes modified files back.
	Fix bool

	// DryRun computes fixes without writing files.
	DryRun bool

	// NoInlineConfig ignores in-source directive comments.
	NoInlineConfig bool

	// ReportUnusedDisableDirectives reports directives that suppressed
	// nothing, at the given severity.
	ReportUnusedDisableDirectives config.Severity

	// FixRules limits fixing to the listed rule ids; empty fixes all.
	FixRules []string
}

// DefaultOptions returns the runner defaults.
func DefaultOptions() Options {
	return Options{}
}
