// Package reporter renders lint results. The problem shape it consumes is
// the stable output of the linting core; rendering never reaches back into
// the engine.
package reporter

import (
	"fmt"
	"io"

	"github.com/yaklabco/gojslint/pkg/runner"
)

// Reporter renders one run's results to a writer. It returns the number
// of problems rendered.
type Reporter interface {
	Report(result *runner.Result) (int, error)
}

// Options configures reporter construction.
type Options struct {
	// Writer receives the rendered output.
	Writer io.Writer

	// Color enables ANSI styling where the format supports it.
	Color bool
}

// New creates a reporter for the named format ("text" or "json").
func New(format string, opts Options) (Reporter, error) {
	switch format {
	case "", "text":
		return NewTextReporter(opts), nil
	case "json":
		return NewJSONReporter(opts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
