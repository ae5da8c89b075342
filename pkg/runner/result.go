package runner

import (
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// FileResult is the outcome of linting one file.
type FileResult struct {
	// Path is the file path that was linted.
	Path string

	// Problems lists the reported problems in source order.
	Problems []lint.Problem

	// Fixed is true when fix mode changed the file's content.
	Fixed bool

	// Output is the fixed content, nil when nothing changed.
	Output []byte

	// Written is true when the fixed content was written back.
	Written bool

	// Skipped is set with a reason when the file was not linted.
	Skipped    bool
	SkipReason string

	// Err is a per-file failure (unreadable file, rule crash).
	Err error
}

// ErrorCount returns the number of error-severity problems.
func (fr *FileResult) ErrorCount() int {
	count := 0
	for _, p := range fr.Problems {
		if p.Severity == config.SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-severity problems.
func (fr *FileResult) WarningCount() int {
	count := 0
	for _, p := range fr.Problems {
		if p.Severity == config.SeverityWarn {
			count++
		}
	}
	return count
}

// Result aggregates all file results of one run.
type Result struct {
	// Files lists per-file results in input order.
	Files []FileResult
}

// TotalProblems returns the number of problems across all files.
func (r *Result) TotalProblems() int {
	total := 0
	for i := range r.Files {
		total += len(r.Files[i].Problems)
	}
	return total
}

// ErrorCount returns the number of error-severity problems across files.
func (r *Result) ErrorCount() int {
	total := 0
	for i := range r.Files {
		total += r.Files[i].ErrorCount()
	}
	return total
}

// WarningCount returns the number of warnings across files.
func (r *Result) WarningCount() int {
	total := 0
	for i := range r.Files {
		total += r.Files[i].WarningCount()
	}
	return total
}

// HasProblems returns true when any file reported problems.
func (r *Result) HasProblems() bool {
	return r.TotalProblems() > 0
}

// HasErrors returns true when any file reported error-severity problems
// or failed outright.
func (r *Result) HasErrors() bool {
	for i := range r.Files {
		if r.Files[i].Err != nil || r.Files[i].ErrorCount() > 0 {
			return true
		}
	}
	return false
}
