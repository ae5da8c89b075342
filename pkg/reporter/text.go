package reporter

import (
	"bufio"
	"fmt"

	"github.com/yaklabco/gojslint/internal/ui/pretty"
	"github.com/yaklabco/gojslint/pkg/runner"
)

const bufWriterSize = 32 * 1024

// TextReporter renders the compact per-line format:
//
//	path:line:col  severity  message  rule-id
type TextReporter struct {
	opts   Options
	styles pretty.Styles
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{opts: opts, styles: pretty.NewStyles(opts.Color)}
}

// Report implements Reporter.
func (r *TextReporter) Report(result *runner.Result) (int, error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	count := 0

	for i := range result.Files {
		fr := &result.Files[i]
		if fr.Err != nil {
			fmt.Fprintf(bw, "%s: %v\n", fr.Path, fr.Err)
			continue
		}
		for _, p := range fr.Problems {
			fmt.Fprintln(bw, pretty.Diagnostic(r.styles, fr.Path, p))
			count++
		}
	}

	if count > 0 || resultHasErrors(result) {
		fmt.Fprintf(bw, "\n%s\n", r.styles.Summary(result.ErrorCount(), result.WarningCount()))
	}
	return count, bw.Flush()
}

func resultHasErrors(result *runner.Result) bool {
	for i := range result.Files {
		if result.Files[i].Err != nil {
			return true
		}
	}
	return false
}
