package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gojslint/internal/configloader"
	"github.com/yaklabco/gojslint/internal/logging"
	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	_ "github.com/yaklabco/gojslint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gojslint/pkg/parser/treesitter"
	"github.com/yaklabco/gojslint/pkg/reporter"
	"github.com/yaklabco/gojslint/pkg/runner"
)

type lintFlags struct {
	format     string
	fix        bool
	dryRun     bool
	fixRules   []string
	rules      []string
	noInline   bool
	unusedMode string
}

func newLintCommand() *cobra.Command {
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [files...]",
		Short: "Lint JavaScript files",
		Long: `Lint JavaScript files for problems.

Examples:
  gojslint lint app.js                 # Lint a single file
  gojslint lint src/a.js src/b.js      # Lint several files
  gojslint lint --fix app.js           # Lint and auto-fix issues
  gojslint lint --fix --dry-run app.js # Compute fixes without writing
  gojslint lint --format json app.js   # JSON output for CI
  gojslint lint --rule "no-var: 2" app.js`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "automatically fix problems")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compute fixes without writing files")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rule", nil, "limit fixing to these rule ids")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil,
		"additional rule config (e.g. \"no-var: 2\"), repeatable")
	cmd.Flags().BoolVar(&flags.noInline, "no-inline-config", false,
		"ignore eslint directive comments in source")
	cmd.Flags().StringVar(&flags.unusedMode, "report-unused-disable-directives", "off",
		"report unused disable directives: off, warn, error")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, flags *lintFlags) error {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	cfg, err := configloader.Load(configPath)
	if err != nil {
		return err
	}
	if err := applyRuleFlags(cfg, flags.rules); err != nil {
		return err
	}

	unusedMode, err := parseUnusedMode(flags.unusedMode)
	if err != nil {
		return err
	}

	linter := lint.New(nil)
	linter.SetDefaultParser(treesitter.New())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	r := runner.New(linter, cfg)
	result, err := r.Run(ctx, args, runner.Options{
		Fix:                           flags.fix,
		DryRun:                        flags.dryRun,
		NoInlineConfig:                flags.noInline,
		ReportUnusedDisableDirectives: unusedMode,
		FixRules:                      flags.fixRules,
	})
	if err != nil {
		return err
	}

	colorMode, _ := cmd.Flags().GetString("color")
	rep, err := reporter.New(flags.format, reporter.Options{
		Writer: os.Stdout,
		Color:  flags.format != "json" && pretty.ColorEnabled(colorMode),
	})
	if err != nil {
		return err
	}
	if _, err := rep.Report(result); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	switch {
	case result.HasErrors():
		return &ExitCodeError{Code: ExitProblems}
	case result.HasProblems():
		return &ExitCodeError{Code: ExitProblems}
	default:
		return nil
	}
}

// applyRuleFlags merges --rule entries over the loaded configuration.
func applyRuleFlags(cfg *config.Config, entries []string) error {
	for _, entry := range entries {
		parsed, err := config.FromYAML([]byte("rules: {" + entry + "}"))
		if err != nil {
			return fmt.Errorf("invalid --rule %q: %w", entry, err)
		}
		for id, rc := range parsed.Rules {
			cfg.Rules[id] = rc
		}
	}
	return nil
}

func parseUnusedMode(mode string) (config.Severity, error) {
	switch mode {
	case "", "off":
		return config.SeverityOff, nil
	case "warn":
		return config.SeverityWarn, nil
	case "error":
		return config.SeverityError, nil
	default:
		return 0, fmt.Errorf("invalid --report-unused-disable-directives %q", mode)
	}
}
