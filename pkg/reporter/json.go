package reporter

import (
	"bufio"
	"encoding/json"

	"github.com/yaklabco/gojslint/pkg/lint"
	"github.com/yaklabco/gojslint/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's results.
type JSONFileResult struct {
	Path     string         `json:"path"`
	Problems []lint.Problem `json:"problems"`
	Fixed    bool           `json:"fixed,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// JSONSummary holds aggregate statistics.
type JSONSummary struct {
	FilesChecked  int `json:"filesChecked"`
	TotalProblems int `json:"totalProblems"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
}

// JSONReporter renders results as a single JSON document.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(result *runner.Result) (int, error) {
	out := JSONOutput{
		Files: make([]JSONFileResult, 0, len(result.Files)),
		Summary: JSONSummary{
			FilesChecked:  len(result.Files),
			TotalProblems: result.TotalProblems(),
			Errors:        result.ErrorCount(),
			Warnings:      result.WarningCount(),
		},
	}
	for i := range result.Files {
		fr := &result.Files[i]
		jf := JSONFileResult{
			Path:     fr.Path,
			Problems: fr.Problems,
			Fixed:    fr.Fixed,
		}
		if jf.Problems == nil {
			jf.Problems = []lint.Problem{}
		}
		if fr.Err != nil {
			jf.Error = fr.Err.Error()
		}
		out.Files = append(out.Files, jf)
	}

	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	enc := json.NewEncoder(bw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return 0, err
	}
	return result.TotalProblems(), bw.Flush()
}
