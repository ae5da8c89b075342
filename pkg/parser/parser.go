// Package parser defines the contract between the linting core and
// JavaScript parsers. Implementations live in subpackages; the core only
// depends on this interface.
package parser

import (
	"fmt"

	"github.com/yaklabco/gojslint/pkg/source"
)

// Options is the parse configuration handed to a parser.
type Options struct {
	// Filename names the input for diagnostics.
	Filename string

	// EcmaVersion is a year, an edition number, or "latest" meaning the
	// newest version the parser supports.
	EcmaVersion any

	// SourceType is "script", "module", or "commonjs".
	SourceType string
}

// Parser turns raw text into the per-file source representation: AST,
// token and comment streams, and scope information.
type Parser interface {
	// Parse parses text. Syntax errors return a *ParseError.
	Parse(text []byte, opts Options) (*source.SourceCode, error)
}

// ParseError is a fatal syntax error with the parser's best position.
type ParseError struct {
	// Message describes the error, without position information.
	Message string

	// Line and Column are 1-based and 0-based respectively, matching
	// AST location conventions. Zero line means unknown.
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (%d:%d)", e.Message, e.Line, e.Column)
	}
	return e.Message
}
