// Package treesitter implements the parser contract over tree-sitter's
// JavaScript grammar. The concrete syntax tree is mapped into the
// ESTree-shaped node set, tokens and comments are materialized from the
// leaves, and scope analysis runs over the mapped AST.
package treesitter

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/parser"
	"github.com/yaklabco/gojslint/pkg/scope"
	"github.com/yaklabco/gojslint/pkg/source"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parser parses JavaScript with tree-sitter. The zero value is not
// usable; call New. A Parser is safe for concurrent use: every Parse
// call creates its own tree-sitter parser instance.
type Parser struct{}

// New creates a tree-sitter backed JavaScript parser.
func New() *Parser {
	return &Parser{}
}

// Parse implements the parser contract. Syntax errors surface as
// *parser.ParseError positioned at the first error node.
func (p *Parser) Parse(text []byte, opts parser.Options) (*source.SourceCode, error) {
	stripped := bytes.TrimPrefix(text, utf8BOM)

	tsParser := sitter.NewParser()
	tsParser.SetLanguage(javascript.GetLanguage())
	tree, err := tsParser.ParseCtx(context.Background(), nil, stripped)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if perr := firstSyntaxError(root); perr != nil {
			return nil, perr
		}
	}

	m := &mapper{src: stripped}
	ast := m.mapNode(root)
	if ast == nil || ast.Type != "Program" {
		return nil, &parser.ParseError{Message: "could not map parse tree", Line: 1}
	}
	ast.Set("sourceType", sourceTypeOf(opts))

	tokens, comments := extractTokens(root, stripped)

	src := source.New(text, ast, tokens, comments)
	src.VisitorKeys = jsast.DefaultVisitorKeys()
	src.Scopes = scope.Analyze(ast, scope.AnalyzeOptions{SourceType: sourceTypeOf(opts)})
	return src, nil
}

func sourceTypeOf(opts parser.Options) string {
	if opts.SourceType == "" {
		return "module"
	}
	return opts.SourceType
}

// firstSyntaxError locates the first ERROR or MISSING node.
func firstSyntaxError(n *sitter.Node) *parser.ParseError {
	if n.Type() == "ERROR" {
		return &parser.ParseError{
			Message: "Unexpected token",
			Line:    int(n.StartPoint().Row) + 1,
			Column:  int(n.StartPoint().Column),
		}
	}
	if n.IsMissing() {
		return &parser.ParseError{
			Message: fmt.Sprintf("Missing %s", n.Type()),
			Line:    int(n.StartPoint().Row) + 1,
			Column:  int(n.StartPoint().Column),
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.HasError() || child.IsMissing() {
			if perr := firstSyntaxError(child); perr != nil {
				return perr
			}
		}
	}
	// HasError set but no concrete error child found; report the node.
	return &parser.ParseError{
		Message: "Unexpected token",
		Line:    int(n.StartPoint().Row) + 1,
		Column:  int(n.StartPoint().Column),
	}
}
