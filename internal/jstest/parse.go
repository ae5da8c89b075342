package jstest

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/gojslint/pkg/jsast"
	"github.com/yaklabco/gojslint/pkg/parser"
	"github.com/yaklabco/gojslint/pkg/source"
)

// parseState is a minimal recursive-descent parser over the token stream.
type parseState struct {
	src    []byte
	tokens []*jsast.Token
	lines  *source.LineIndex
	pos    int
}

func (ps *parseState) atEOF() bool {
	return ps.pos >= len(ps.tokens)
}

func (ps *parseState) peek() *jsast.Token {
	if ps.atEOF() {
		return nil
	}
	return ps.tokens[ps.pos]
}

func (ps *parseState) next() *jsast.Token {
	tok := ps.peek()
	if tok != nil {
		ps.pos++
	}
	return tok
}

func (ps *parseState) at(typ jsast.TokenType, value string) bool {
	tok := ps.peek()
	return tok != nil && tok.Type == typ && tok.Value == value
}

func (ps *parseState) eat(typ jsast.TokenType, value string) bool {
	if ps.at(typ, value) {
		ps.pos++
		return true
	}
	return false
}

func (ps *parseState) expect(typ jsast.TokenType, value string) (*jsast.Token, error) {
	if ps.at(typ, value) {
		return ps.next(), nil
	}
	return nil, ps.errorHere("expected %q", value)
}

func (ps *parseState) errorHere(format string, args ...any) error {
	line, column := 1, 0
	if tok := ps.peek(); tok != nil {
		line, column = tok.Loc.Start.Line, tok.Loc.Start.Column
	} else if len(ps.tokens) > 0 {
		last := ps.tokens[len(ps.tokens)-1]
		line, column = last.Loc.End.Line, last.Loc.End.Column
	}
	return &parser.ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    line,
		Column:  column,
	}
}

// node creates a mapped node spanning [start, end) with Loc filled.
func (ps *parseState) node(typ string, start, end int) *jsast.Node {
	return fillLoc(jsast.New(typ, start, end), ps.lines)
}

// endOfPrev returns the end offset of the last consumed token.
func (ps *parseState) endOfPrev() int {
	if ps.pos == 0 {
		return 0
	}
	return ps.tokens[ps.pos-1].Range.End
}

func (ps *parseState) statement() (*jsast.Node, error) {
	tok := ps.peek()
	if tok == nil {
		return nil, ps.errorHere("unexpected end of input")
	}

	if tok.Type == jsast.TokKeyword {
		switch tok.Value {
		case "var", "let", "const":
			return ps.variableDeclaration()
		case "debugger":
			start := ps.next().Range.Start
			ps.eat(jsast.TokPunctuator, ";")
			return ps.node("DebuggerStatement", start, ps.endOfPrev()), nil
		case "return":
			return ps.returnStatement()
		case "throw":
			start := ps.next().Range.Start
			arg, err := ps.expression()
			if err != nil {
				return nil, err
			}
			ps.eat(jsast.TokPunctuator, ";")
			n := ps.node("ThrowStatement", start, ps.endOfPrev())
			n.Set("argument", arg)
			return n, nil
		case "break", "continue":
			typ := "BreakStatement"
			if tok.Value == "continue" {
				typ = "ContinueStatement"
			}
			start := ps.next().Range.Start
			ps.eat(jsast.TokPunctuator, ";")
			return ps.node(typ, start, ps.endOfPrev()), nil
		case "if":
			return ps.ifStatement()
		case "while":
			return ps.whileStatement()
		case "function":
			return ps.functionDeclaration()
		}
	}

	if tok.Type == jsast.TokPunctuator {
		switch tok.Value {
		case "{":
			return ps.blockStatement()
		case ";":
			start := ps.next().Range.Start
			return ps.node("EmptyStatement", start, ps.endOfPrev()), nil
		}
	}

	// Expression statement.
	start := tok.Range.Start
	expr, err := ps.expression()
	if err != nil {
		return nil, err
	}
	ps.eat(jsast.TokPunctuator, ";")
	n := ps.node("ExpressionStatement", start, ps.endOfPrev())
	n.Set("expression", expr)
	return n, nil
}

func (ps *parseState) variableDeclaration() (*jsast.Node, error) {
	kindTok := ps.next()
	start := kindTok.Range.Start

	var decls []*jsast.Node
	for {
		idTok := ps.peek()
		if idTok == nil || idTok.Type != jsast.TokIdentifier {
			return nil, ps.errorHere("expected identifier")
		}
		ps.next()
		id := ps.node("Identifier", idTok.Range.Start, idTok.Range.End)
		id.Set("name", idTok.Value)

		decl := ps.node("VariableDeclarator", idTok.Range.Start, idTok.Range.End)
		decl.Set("id", id)

		if ps.eat(jsast.TokPunctuator, "=") {
			init, err := ps.expression()
			if err != nil {
				return nil, err
			}
			decl.Set("init", init)
			decl.Range.End = init.Range.End
			fillLoc(decl, ps.lines)
		}
		decls = append(decls, decl)

		if !ps.eat(jsast.TokPunctuator, ",") {
			break
		}
	}
	ps.eat(jsast.TokPunctuator, ";")

	n := ps.node("VariableDeclaration", start, ps.endOfPrev())
	n.Set("kind", kindTok.Value)
	n.Set("declarations", decls)
	return n, nil
}

func (ps *parseState) returnStatement() (*jsast.Node, error) {
	start := ps.next().Range.Start
	var arg *jsast.Node
	if !ps.at(jsast.TokPunctuator, ";") && !ps.at(jsast.TokPunctuator, "}") && !ps.atEOF() {
		var err error
		arg, err = ps.expression()
		if err != nil {
			return nil, err
		}
	}
	ps.eat(jsast.TokPunctuator, ";")
	n := ps.node("ReturnStatement", start, ps.endOfPrev())
	n.Set("argument", arg)
	return n, nil
}

func (ps *parseState) ifStatement() (*jsast.Node, error) {
	start := ps.next().Range.Start
	if _, err := ps.expect(jsast.TokPunctuator, "("); err != nil {
		return nil, err
	}
	test, err := ps.expression()
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(jsast.TokPunctuator, ")"); err != nil {
		return nil, err
	}
	consequent, err := ps.statement()
	if err != nil {
		return nil, err
	}

	n := ps.node("IfStatement", start, consequent.Range.End)
	n.Set("test", test)
	n.Set("consequent", consequent)

	if ps.at(jsast.TokKeyword, "else") {
		ps.next()
		alternate, err := ps.statement()
		if err != nil {
			return nil, err
		}
		n.Set("alternate", alternate)
		n.Range.End = alternate.Range.End
	}
	fillLoc(n, ps.lines)
	return n, nil
}

func (ps *parseState) whileStatement() (*jsast.Node, error) {
	start := ps.next().Range.Start
	if _, err := ps.expect(jsast.TokPunctuator, "("); err != nil {
		return nil, err
	}
	test, err := ps.expression()
	if err != nil {
		return nil, err
	}
	if _, err := ps.expect(jsast.TokPunctuator, ")"); err != nil {
		return nil, err
	}
	body, err := ps.statement()
	if err != nil {
		return nil, err
	}
	n := ps.node("WhileStatement", start, body.Range.End)
	n.Set("test", test)
	n.Set("body", body)
	return n, nil
}

func (ps *parseState) blockStatement() (*jsast.Node, error) {
	open, err := ps.expect(jsast.TokPunctuator, "{")
	if err != nil {
		return nil, err
	}
	var body []*jsast.Node
	for !ps.at(jsast.TokPunctuator, "}") {
		if ps.atEOF() {
			return nil, ps.errorHere("expected \"}\"")
		}
		stmt, err := ps.statement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	closeTok := ps.next()
	n := ps.node("BlockStatement", open.Range.Start, closeTok.Range.End)
	n.Set("body", body)
	return n, nil
}

func (ps *parseState) functionDeclaration() (*jsast.Node, error) {
	start := ps.next().Range.Start
	nameTok := ps.peek()
	if nameTok == nil || nameTok.Type != jsast.TokIdentifier {
		return nil, ps.errorHere("expected function name")
	}
	ps.next()
	id := ps.node("Identifier", nameTok.Range.Start, nameTok.Range.End)
	id.Set("name", nameTok.Value)

	if _, err := ps.expect(jsast.TokPunctuator, "("); err != nil {
		return nil, err
	}
	var params []*jsast.Node
	for !ps.at(jsast.TokPunctuator, ")") {
		paramTok := ps.peek()
		if paramTok == nil || paramTok.Type != jsast.TokIdentifier {
			return nil, ps.errorHere("expected parameter")
		}
		ps.next()
		param := ps.node("Identifier", paramTok.Range.Start, paramTok.Range.End)
		param.Set("name", paramTok.Value)
		params = append(params, param)
		if !ps.eat(jsast.TokPunctuator, ",") {
			break
		}
	}
	if _, err := ps.expect(jsast.TokPunctuator, ")"); err != nil {
		return nil, err
	}
	body, err := ps.blockStatement()
	if err != nil {
		return nil, err
	}

	n := ps.node("FunctionDeclaration", start, body.Range.End)
	n.Set("id", id)
	n.Set("params", params)
	n.Set("body", body)
	return n, nil
}

// expression parses assignment and below.
func (ps *parseState) expression() (*jsast.Node, error) {
	left, err := ps.binary(0)
	if err != nil {
		return nil, err
	}
	if ps.at(jsast.TokPunctuator, "=") {
		ps.next()
		right, err := ps.expression()
		if err != nil {
			return nil, err
		}
		n := ps.node("AssignmentExpression", left.Range.Start, right.Range.End)
		n.Set("operator", "=")
		n.Set("left", left)
		n.Set("right", right)
		return n, nil
	}
	return left, nil
}

// binaryOperators in precedence tiers, lowest first.
//
//nolint:gochecknoglobals // immutable table
var binaryTiers = [][]string{
	{"||", "&&"},
	{"==", "!=", "===", "!=="},
	{"<", ">", "<=", ">="},
	{"+", "-"},
	{"*", "/"},
}

func (ps *parseState) binary(tier int) (*jsast.Node, error) {
	if tier >= len(binaryTiers) {
		return ps.unary()
	}
	left, err := ps.binary(tier + 1)
	if err != nil {
		return nil, err
	}
	for {
		matched := ""
		for _, op := range binaryTiers[tier] {
			if ps.at(jsast.TokPunctuator, op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return left, nil
		}
		ps.next()
		right, err := ps.binary(tier + 1)
		if err != nil {
			return nil, err
		}
		typ := "BinaryExpression"
		if matched == "&&" || matched == "||" {
			typ = "LogicalExpression"
		}
		n := ps.node(typ, left.Range.Start, right.Range.End)
		n.Set("operator", matched)
		n.Set("left", left)
		n.Set("right", right)
		left = n
	}
}

func (ps *parseState) unary() (*jsast.Node, error) {
	if ps.at(jsast.TokPunctuator, "!") || ps.at(jsast.TokPunctuator, "-") ||
		ps.at(jsast.TokKeyword, "typeof") {
		opTok := ps.next()
		arg, err := ps.unary()
		if err != nil {
			return nil, err
		}
		n := ps.node("UnaryExpression", opTok.Range.Start, arg.Range.End)
		n.Set("operator", opTok.Value)
		n.Set("prefix", true)
		n.Set("argument", arg)
		return n, nil
	}
	return ps.postfix()
}

// postfix handles call and member chains.
func (ps *parseState) postfix() (*jsast.Node, error) {
	expr, err := ps.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case ps.at(jsast.TokPunctuator, "."):
			ps.next()
			propTok := ps.peek()
			if propTok == nil || propTok.Type != jsast.TokIdentifier {
				return nil, ps.errorHere("expected property name")
			}
			ps.next()
			prop := ps.node("Identifier", propTok.Range.Start, propTok.Range.End)
			prop.Set("name", propTok.Value)
			n := ps.node("MemberExpression", expr.Range.Start, propTok.Range.End)
			n.Set("object", expr)
			n.Set("property", prop)
			n.Set("computed", false)
			expr = n

		case ps.at(jsast.TokPunctuator, "("):
			ps.next()
			var args []*jsast.Node
			for !ps.at(jsast.TokPunctuator, ")") {
				arg, err := ps.expression()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if !ps.eat(jsast.TokPunctuator, ",") {
					break
				}
			}
			closeTok, err := ps.expect(jsast.TokPunctuator, ")")
			if err != nil {
				return nil, err
			}
			n := ps.node("CallExpression", expr.Range.Start, closeTok.Range.End)
			n.Set("callee", expr)
			n.Set("arguments", args)
			expr = n

		default:
			return expr, nil
		}
	}
}

func (ps *parseState) primary() (*jsast.Node, error) {
	tok := ps.peek()
	if tok == nil {
		return nil, ps.errorHere("unexpected end of input")
	}

	switch tok.Type {
	case jsast.TokNumeric:
		ps.next()
		n := ps.node("Literal", tok.Range.Start, tok.Range.End)
		n.Set("raw", tok.Value)
		if value, err := strconv.ParseFloat(tok.Value, 64); err == nil {
			n.Set("value", value)
		}
		return n, nil

	case jsast.TokString:
		ps.next()
		n := ps.node("Literal", tok.Range.Start, tok.Range.End)
		n.Set("raw", tok.Value)
		n.Set("value", tok.Value[1:len(tok.Value)-1])
		return n, nil

	case jsast.TokBoolean:
		ps.next()
		n := ps.node("Literal", tok.Range.Start, tok.Range.End)
		n.Set("raw", tok.Value)
		n.Set("value", tok.Value == "true")
		return n, nil

	case jsast.TokNull:
		ps.next()
		n := ps.node("Literal", tok.Range.Start, tok.Range.End)
		n.Set("raw", "null")
		return n, nil

	case jsast.TokIdentifier:
		ps.next()
		n := ps.node("Identifier", tok.Range.Start, tok.Range.End)
		n.Set("name", tok.Value)
		return n, nil

	case jsast.TokPunctuator:
		if tok.Value == "(" {
			ps.next()
			inner, err := ps.expression()
			if err != nil {
				return nil, err
			}
			if _, err := ps.expect(jsast.TokPunctuator, ")"); err != nil {
				return nil, err
			}
			return inner, nil
		}
	}
	return nil, ps.errorHere("unexpected token %q", tok.Value)
}
