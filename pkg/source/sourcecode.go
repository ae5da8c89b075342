// Package source provides the per-file source representation shared by the
// linting core: the raw text, the line index, the parsed AST with its token
// and comment streams, scope information, and the token store. All of it
// lives for exactly one lint pass of one file.
package source

import (
	"bytes"
	"errors"

	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/scope"
	"github.com/yaklabco/gojslint/pkg/source/tokenstore"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SourceCode is the parsed view of one file. Offsets everywhere are
// relative to the BOM-stripped text.
type SourceCode struct {
	// AST is the program root produced by the parser.
	AST *jsast.Node

	// Tokens is the token stream, sorted by range start.
	Tokens []*jsast.Token

	// Comments is the comment stream, sorted by range start.
	Comments []*jsast.Comment

	// VisitorKeys is the child-key table for traversal; nil selects the
	// default ESTree table.
	VisitorKeys jsast.VisitorKeys

	// Scopes is the scope tree from the scope analyzer.
	Scopes *scope.Manager

	// ParserServices carries opaque parser extensions through to rules.
	ParserServices map[string]any

	text   []byte
	hasBOM bool
	lines  *LineIndex
	store  *tokenstore.Store
}

// New builds a SourceCode. A leading UTF-8 byte order mark is stripped and
// remembered; the line index is built immediately, the token store on
// first use.
func New(text []byte, ast *jsast.Node, tokens []*jsast.Token, comments []*jsast.Comment) *SourceCode {
	hasBOM := bytes.HasPrefix(text, utf8BOM)
	if hasBOM {
		text = text[len(utf8BOM):]
	}
	return &SourceCode{
		AST:      ast,
		Tokens:   tokens,
		Comments: comments,
		text:     text,
		hasBOM:   hasBOM,
		lines:    BuildLineIndex(text),
	}
}

// Validate checks the parser contract: a Program root carrying ranges,
// plus token and comment arrays.
func (sc *SourceCode) Validate() error {
	if sc.AST == nil {
		return errors.New("source has no AST")
	}
	if sc.AST.Type != "Program" {
		return errors.New("AST root is not a Program node")
	}
	if sc.Tokens == nil {
		return errors.New("AST is missing the token array")
	}
	if sc.Comments == nil {
		return errors.New("AST is missing the comment array")
	}
	return nil
}

// Text returns the BOM-stripped source text.
func (sc *SourceCode) Text() []byte {
	return sc.text
}

// HasBOM reports whether the original text began with a byte order mark.
func (sc *SourceCode) HasBOM() bool {
	return sc.hasBOM
}

// TextRange returns the source text in r.
func (sc *SourceCode) TextRange(r jsast.Range) string {
	if r.Start < 0 || r.End > len(sc.text) || r.Start > r.End {
		return ""
	}
	return string(sc.text[r.Start:r.End])
}

// TextOf returns the source text of a node.
func (sc *SourceCode) TextOf(n *jsast.Node) string {
	if n == nil {
		return ""
	}
	return sc.TextRange(n.Range)
}

// Lines returns the line index.
func (sc *SourceCode) Lines() *LineIndex {
	return sc.lines
}

// LocFromIndex converts a byte offset to a position.
func (sc *SourceCode) LocFromIndex(offset int) (jsast.Position, error) {
	return sc.lines.LocFromIndex(offset)
}

// IndexFromLoc converts a position to a byte offset.
func (sc *SourceCode) IndexFromLoc(pos jsast.Position) (int, error) {
	return sc.lines.IndexFromLoc(pos)
}

// TokenStore returns the token store, materializing the merged stream on
// first use.
func (sc *SourceCode) TokenStore() *tokenstore.Store {
	if sc.store == nil {
		sc.store = tokenstore.New(sc.Tokens, sc.Comments)
	}
	return sc.store
}

// ResolveKeys returns the effective visitor-key table.
func (sc *SourceCode) ResolveKeys() jsast.VisitorKeys {
	if sc.VisitorKeys == nil {
		return jsast.DefaultVisitorKeys()
	}
	return sc.VisitorKeys
}
