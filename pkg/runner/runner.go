// Package runner drives the linting core over explicit file paths: read,
// detect language, verify or verify-and-fix, write fixed output back.
// Directory walking and glob matching live outside this module.
package runner

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/fsutil"
	"github.com/yaklabco/gojslint/pkg/langdetect"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// Runner lints a list of files with one linter and configuration.
type Runner struct {
	// Linter is the configured linting core.
	Linter *lint.Linter

	// Config is the sealed rule configuration for the run.
	Config *config.Config
}

// New creates a Runner.
func New(linter *lint.Linter, cfg *config.Config) *Runner {
	return &Runner{Linter: linter, Config: cfg}
}

// Run lints every path in order. Per-file failures land in the file's
// result; only context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context, paths []string, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	result := &Result{Files: make([]FileResult, 0, len(paths))}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("run cancelled: %w", ctx.Err())
		default:
		}
		result.Files = append(result.Files, r.runFile(logger, path, opts))
	}
	return result, nil
}

func (r *Runner) runFile(logger *log.Logger, path string, opts Options) FileResult {
	fr := FileResult{Path: path}

	content, err := os.ReadFile(path)
	if err != nil {
		fr.Err = fmt.Errorf("read %s: %w", path, err)
		return fr
	}

	lang := langdetect.Detect(path, content)
	if !langdetect.Lintable(lang) {
		fr.Skipped = true
		fr.SkipReason = fmt.Sprintf("not JavaScript (detected %s)", lang)
		logger.Debug("skipping file", logging.FieldPath, path, logging.FieldLanguage, lang)
		return fr
	}

	verifyOpts := lint.VerifyOptions{
		Filename:                      path,
		NoInlineConfig:                opts.NoInlineConfig,
		ReportUnusedDisableDirectives: opts.ReportUnusedDisableDirectives,
	}
	if len(opts.FixRules) > 0 {
		allowed := make(map[string]bool, len(opts.FixRules))
		for _, id := range opts.FixRules {
			allowed[id] = true
		}
		verifyOpts.FixFilter = func(p lint.Problem) bool { return allowed[p.RuleID] }
	}

	if !opts.Fix && !opts.DryRun {
		fr.Problems, fr.Err = r.Linter.Verify(content, r.Config, verifyOpts)
		return fr
	}

	report, err := r.Linter.VerifyAndFix(content, r.Config, verifyOpts)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Problems = report.Messages
	fr.Fixed = report.Fixed
	if report.Fixed {
		fr.Output = report.Output
		if !opts.DryRun {
			if err := fsutil.WriteAtomic(path, report.Output); err != nil {
				fr.Err = fmt.Errorf("write %s: %w", path, err)
				return fr
			}
			fr.Written = true
			logger.Debug("wrote fixed file", logging.FieldPath, path)
		}
	}
	return fr
}
