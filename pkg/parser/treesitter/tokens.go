package treesitter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// jsKeywords is the reserved-word set used to classify anonymous leaves.
//
//nolint:gochecknoglobals // Shared immutable set
var jsKeywords = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "else": true, "export": true, "extends": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "let": true, "new": true, "of": true,
	"return": true, "static": true, "super": true, "switch": true, "this": true,
	"throw": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "async": true, "get": true,
	"set": true,
}

// atomicTypes are named CST nodes emitted as a single token without
// descending into their internal structure.
//
//nolint:gochecknoglobals // Shared immutable set
var atomicTypes = map[string]bool{
	"string":          true,
	"template_string": true,
	"number":          true,
	"regex":           true,
	"identifier":      true,
	"true":            true,
	"false":           true,
	"null":            true,
	"undefined":       true,
	"this":            true,
	"super":           true,
	"comment":         true,
	"hash_bang_line":  true,
}

// extractTokens walks the CST leaves and produces the sorted token and
// comment streams.
func extractTokens(root *sitter.Node, src []byte) ([]*jsast.Token, []*jsast.Comment) {
	tokens := []*jsast.Token{}
	comments := []*jsast.Comment{}

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		typ := n.Type()
		if atomicTypes[typ] || n.ChildCount() == 0 {
			tok := makeToken(n, src)
			if tok == nil {
				return
			}
			if tok.IsComment() {
				comments = append(comments, tok)
			} else {
				tokens = append(tokens, tok)
			}
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return tokens, comments
}

// makeToken classifies one leaf into a token or comment.
func makeToken(n *sitter.Node, src []byte) *jsast.Token {
	start, end := int(n.StartByte()), int(n.EndByte())
	if start == end {
		return nil
	}
	text := string(src[start:end])

	var typ jsast.TokenType
	value := text
	switch n.Type() {
	case "comment":
		if strings.HasPrefix(text, "//") {
			typ = jsast.TokLineComment
			value = text[2:]
		} else {
			typ = jsast.TokBlockComment
			value = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
		}
	case "hash_bang_line":
		typ = jsast.TokShebang
		value = strings.TrimPrefix(text, "#!")
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier":
		typ = jsast.TokIdentifier
	case "private_property_identifier":
		typ = jsast.TokPrivateIdentifier
	case "number":
		typ = jsast.TokNumeric
	case "string", "template_string":
		typ = jsast.TokString
		if n.Type() == "template_string" {
			typ = jsast.TokTemplate
		}
	case "regex":
		typ = jsast.TokRegExp
	case "true", "false":
		typ = jsast.TokBoolean
	case "null":
		typ = jsast.TokNull
	default:
		if jsKeywords[text] {
			typ = jsast.TokKeyword
		} else if n.Type() == "this" || n.Type() == "super" {
			typ = jsast.TokKeyword
		} else {
			typ = jsast.TokPunctuator
		}
	}

	return &jsast.Token{
		Type:  typ,
		Value: value,
		Range: jsast.Range{Start: start, End: end},
		Loc: jsast.SourceLocation{
			Start: jsast.Position{Line: int(n.StartPoint().Row) + 1, Column: int(n.StartPoint().Column)},
			End:   jsast.Position{Line: int(n.EndPoint().Row) + 1, Column: int(n.EndPoint().Column)},
		},
	}
}
