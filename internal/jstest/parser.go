// Package jstest provides a deliberately small pure-Go JavaScript parser
// implementing the parser contract. It exists for tests: the tree-sitter
// parser needs cgo, and unit tests of the linting core should stay
// hermetic. The subset covers the statements and expressions the test
// suites exercise.
package jstest

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/parser"
	"github.com/yaklabco/gojslint/pkg/scope"
	"github.com/yaklabco/gojslint/pkg/source"
)

// Parser is the test parser. The zero value is usable.
type Parser struct{}

// New creates a test parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser contract over the supported subset.
func (p *Parser) Parse(text []byte, opts parser.Options) (*source.SourceCode, error) {
	lines := source.BuildLineIndex(text)

	tokens, comments, err := tokenize(text, lines)
	if err != nil {
		return nil, err
	}

	ps := &parseState{src: text, tokens: tokens, lines: lines}
	program := jsast.New("Program", 0, len(text))
	fillLoc(program, lines)

	var body []*jsast.Node
	for !ps.atEOF() {
		stmt, err := ps.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	program.Set("body", body)
	program.Set("sourceType", opts.SourceType)

	src := source.New(text, program, tokens, comments)
	src.VisitorKeys = jsast.DefaultVisitorKeys()
	sourceType := opts.SourceType
	if sourceType == "" {
		sourceType = "module"
	}
	src.Scopes = scope.Analyze(program, scope.AnalyzeOptions{SourceType: sourceType})
	return src, nil
}

// keywords recognized by the tokenizer.
//
//nolint:gochecknoglobals // immutable set
var keywords = map[string]bool{
	"var": true, "let": true, "const": true, "function": true, "return": true,
	"if": true, "else": true, "while": true, "do": true, "for": true, "in": true,
	"break": true, "continue": true, "debugger": true, "throw": true,
	"true": true, "false": true, "null": true, "new": true, "typeof": true,
}

// multi-byte punctuators, longest first.
//
//nolint:gochecknoglobals // immutable list
var punctuators = []string{
	"===", "!==", "==", "!=", "<=", ">=", "&&", "||", "=>",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "=", "<", ">",
	"+", "-", "*", "/", "!", ":",
}

func tokenize(src []byte, lines *source.LineIndex) ([]*jsast.Token, []*jsast.Comment, error) {
	tokens := []*jsast.Token{}
	comments := []*jsast.Comment{}

	emit := func(typ jsast.TokenType, value string, start, end int) *jsast.Token {
		tok := &jsast.Token{
			Type:  typ,
			Value: value,
			Range: jsast.Range{Start: start, End: end},
		}
		tok.Loc.Start, _ = lines.LocFromIndex(start)
		tok.Loc.End, _ = lines.LocFromIndex(end)
		return tok
	}

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '#' && i == 0 && i+1 < len(src) && src[i+1] == '!':
			end := i
			for end < len(src) && src[end] != '\n' {
				end++
			}
			comments = append(comments, emit(jsast.TokShebang, string(src[i+2:end]), i, end))
			i = end

		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			end := i
			for end < len(src) && src[end] != '\n' {
				end++
			}
			comments = append(comments, emit(jsast.TokLineComment, string(src[i+2:end]), i, end))
			i = end

		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := i + 2
			for end+1 < len(src) && !(src[end] == '*' && src[end+1] == '/') {
				end++
			}
			if end+1 >= len(src) {
				return nil, nil, tokenizeError(lines, i, "unterminated block comment")
			}
			comments = append(comments, emit(jsast.TokBlockComment, string(src[i+2:end]), i, end+2))
			i = end + 2

		case c == '"' || c == '\'':
			quote := c
			end := i + 1
			for end < len(src) && src[end] != quote {
				end++
			}
			if end >= len(src) {
				return nil, nil, tokenizeError(lines, i, "unterminated string")
			}
			tokens = append(tokens, emit(jsast.TokString, string(src[i:end+1]), i, end+1))
			i = end + 1

		case c >= '0' && c <= '9':
			end := i
			for end < len(src) && (src[end] >= '0' && src[end] <= '9' || src[end] == '.') {
				end++
			}
			tokens = append(tokens, emit(jsast.TokNumeric, string(src[i:end]), i, end))
			i = end

		case isIdentStart(c):
			end := i
			for end < len(src) && isIdentPart(src[end]) {
				end++
			}
			word := string(src[i:end])
			typ := jsast.TokIdentifier
			switch {
			case word == "true" || word == "false":
				typ = jsast.TokBoolean
			case word == "null":
				typ = jsast.TokNull
			case keywords[word]:
				typ = jsast.TokKeyword
			}
			tokens = append(tokens, emit(typ, word, i, end))
			i = end

		default:
			matched := false
			for _, punct := range punctuators {
				if strings.HasPrefix(string(src[i:]), punct) {
					tokens = append(tokens, emit(jsast.TokPunctuator, punct, i, i+len(punct)))
					i += len(punct)
					matched = true
					break
				}
			}
			if !matched {
				return nil, nil, tokenizeError(lines, i, fmt.Sprintf("unexpected character %q", c))
			}
		}
	}
	return tokens, comments, nil
}

func tokenizeError(lines *source.LineIndex, offset int, message string) error {
	pos, _ := lines.LocFromIndex(offset)
	return &parser.ParseError{Message: message, Line: pos.Line, Column: pos.Column}
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

// fillLoc derives a node's Loc from its Range.
func fillLoc(n *jsast.Node, lines *source.LineIndex) *jsast.Node {
	n.Loc.Start, _ = lines.LocFromIndex(n.Range.Start)
	n.Loc.End, _ = lines.LocFromIndex(n.Range.End)
	return n
}
