package treesitter

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// mapper converts the tree-sitter concrete syntax tree into the
// ESTree-shaped AST the linting core consumes. Grammar node types map
// onto ESTree types; parenthesized expressions and wrapper clauses are
// unwrapped because ESTree has no nodes for them.
type mapper struct {
	src []byte
}

func (m *mapper) text(n *sitter.Node) string {
	return n.Content(m.src)
}

// node creates the mapped node with range and location filled in.
func (m *mapper) node(typ string, ts *sitter.Node) *jsast.Node {
	mapped := jsast.New(typ, int(ts.StartByte()), int(ts.EndByte()))
	mapped.Loc = jsast.SourceLocation{
		Start: jsast.Position{Line: int(ts.StartPoint().Row) + 1, Column: int(ts.StartPoint().Column)},
		End:   jsast.Position{Line: int(ts.EndPoint().Row) + 1, Column: int(ts.EndPoint().Column)},
	}
	return mapped
}

// mapNode maps one CST node, returning nil for nodes with no ESTree
// counterpart (punctuation, comments).
func (m *mapper) mapNode(ts *sitter.Node) *jsast.Node {
	if ts == nil {
		return nil
	}

	switch ts.Type() {
	case "comment", "hash_bang_line":
		return nil

	case "program":
		n := m.node("Program", ts)
		n.Set("body", m.mapChildren(ts))
		return n

	case "expression_statement":
		n := m.node("ExpressionStatement", ts)
		n.Set("expression", m.firstMappedChild(ts))
		return n

	case "variable_declaration", "lexical_declaration":
		n := m.node("VariableDeclaration", ts)
		kind := "var"
		if ts.ChildCount() > 0 {
			kind = ts.Child(0).Type() // "var" | "let" | "const"
		}
		n.Set("kind", kind)
		var decls []*jsast.Node
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			if child := ts.NamedChild(i); child.Type() == "variable_declarator" {
				decls = append(decls, m.mapNode(child))
			}
		}
		n.Set("declarations", decls)
		return n

	case "variable_declarator":
		n := m.node("VariableDeclarator", ts)
		n.Set("id", m.mapNode(ts.ChildByFieldName("name")))
		n.Set("init", m.mapNode(ts.ChildByFieldName("value")))
		return n

	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier":
		n := m.node("Identifier", ts)
		n.Set("name", m.text(ts))
		return n

	case "private_property_identifier":
		n := m.node("PrivateIdentifier", ts)
		n.Set("name", strings.TrimPrefix(m.text(ts), "#"))
		return n

	case "this":
		return m.node("ThisExpression", ts)
	case "super":
		return m.node("Super", ts)

	case "number":
		n := m.node("Literal", ts)
		raw := m.text(ts)
		n.Set("raw", raw)
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			n.Set("value", value)
		}
		return n

	case "string", "template_string":
		if ts.Type() == "template_string" {
			n := m.node("TemplateLiteral", ts)
			var exprs []*jsast.Node
			for i := 0; i < int(ts.NamedChildCount()); i++ {
				if child := ts.NamedChild(i); child.Type() == "template_substitution" {
					exprs = append(exprs, m.firstMappedChild(child))
				}
			}
			n.Set("expressions", exprs)
			n.Set("quasis", []*jsast.Node{})
			return n
		}
		n := m.node("Literal", ts)
		raw := m.text(ts)
		n.Set("raw", raw)
		if len(raw) >= 2 {
			n.Set("value", raw[1:len(raw)-1])
		}
		return n

	case "true", "false":
		n := m.node("Literal", ts)
		n.Set("raw", m.text(ts))
		n.Set("value", ts.Type() == "true")
		return n

	case "null":
		n := m.node("Literal", ts)
		n.Set("raw", "null")
		return n

	case "undefined":
		n := m.node("Identifier", ts)
		n.Set("name", "undefined")
		return n

	case "regex":
		n := m.node("Literal", ts)
		n.Set("raw", m.text(ts))
		n.Set("regex", m.text(ts))
		return n

	case "binary_expression":
		operator := m.fieldText(ts, "operator")
		typ := "BinaryExpression"
		if operator == "&&" || operator == "||" || operator == "??" {
			typ = "LogicalExpression"
		}
		n := m.node(typ, ts)
		n.Set("operator", operator)
		n.Set("left", m.mapNode(ts.ChildByFieldName("left")))
		n.Set("right", m.mapNode(ts.ChildByFieldName("right")))
		return n

	case "unary_expression":
		n := m.node("UnaryExpression", ts)
		n.Set("operator", m.fieldText(ts, "operator"))
		n.Set("prefix", true)
		n.Set("argument", m.mapNode(ts.ChildByFieldName("argument")))
		return n

	case "update_expression":
		n := m.node("UpdateExpression", ts)
		n.Set("operator", m.fieldText(ts, "operator"))
		n.Set("argument", m.mapNode(ts.ChildByFieldName("argument")))
		n.Set("prefix", ts.ChildByFieldName("argument").StartByte() != ts.StartByte())
		return n

	case "assignment_expression", "augmented_assignment_expression":
		n := m.node("AssignmentExpression", ts)
		operator := "="
		if ts.Type() == "augmented_assignment_expression" {
			operator = m.fieldText(ts, "operator")
		}
		n.Set("operator", operator)
		n.Set("left", m.mapNode(ts.ChildByFieldName("left")))
		n.Set("right", m.mapNode(ts.ChildByFieldName("right")))
		return n

	case "ternary_expression":
		n := m.node("ConditionalExpression", ts)
		n.Set("test", m.mapNode(ts.ChildByFieldName("condition")))
		n.Set("consequent", m.mapNode(ts.ChildByFieldName("consequence")))
		n.Set("alternate", m.mapNode(ts.ChildByFieldName("alternative")))
		return n

	case "sequence_expression":
		n := m.node("SequenceExpression", ts)
		n.Set("expressions", m.mapChildren(ts))
		return n

	case "call_expression":
		n := m.node("CallExpression", ts)
		n.Set("callee", m.mapNode(ts.ChildByFieldName("function")))
		n.Set("arguments", m.mapArguments(ts.ChildByFieldName("arguments")))
		return n

	case "new_expression":
		n := m.node("NewExpression", ts)
		n.Set("callee", m.mapNode(ts.ChildByFieldName("constructor")))
		n.Set("arguments", m.mapArguments(ts.ChildByFieldName("arguments")))
		return n

	case "member_expression":
		n := m.node("MemberExpression", ts)
		n.Set("object", m.mapNode(ts.ChildByFieldName("object")))
		n.Set("property", m.mapNode(ts.ChildByFieldName("property")))
		n.Set("computed", false)
		n.Set("optional", m.fieldText(ts, "operator") == "?.")
		return n

	case "subscript_expression":
		n := m.node("MemberExpression", ts)
		n.Set("object", m.mapNode(ts.ChildByFieldName("object")))
		n.Set("property", m.mapNode(ts.ChildByFieldName("index")))
		n.Set("computed", true)
		return n

	case "parenthesized_expression":
		// ESTree has no parenthesis node.
		return m.firstMappedChild(ts)

	case "statement_block":
		n := m.node("BlockStatement", ts)
		n.Set("body", m.mapChildren(ts))
		return n

	case "empty_statement":
		return m.node("EmptyStatement", ts)

	case "debugger_statement":
		return m.node("DebuggerStatement", ts)

	case "if_statement":
		n := m.node("IfStatement", ts)
		n.Set("test", m.mapNode(ts.ChildByFieldName("condition")))
		n.Set("consequent", m.mapNode(ts.ChildByFieldName("consequence")))
		if alt := ts.ChildByFieldName("alternative"); alt != nil {
			// else_clause wraps the actual statement.
			n.Set("alternate", m.firstMappedChild(alt))
		}
		return n

	case "while_statement":
		n := m.node("WhileStatement", ts)
		n.Set("test", m.mapNode(ts.ChildByFieldName("condition")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "do_statement":
		n := m.node("DoWhileStatement", ts)
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		n.Set("test", m.mapNode(ts.ChildByFieldName("condition")))
		return n

	case "for_statement":
		n := m.node("ForStatement", ts)
		n.Set("init", m.mapNode(ts.ChildByFieldName("initializer")))
		n.Set("test", m.mapNode(ts.ChildByFieldName("condition")))
		n.Set("update", m.mapNode(ts.ChildByFieldName("increment")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "for_in_statement":
		typ := "ForInStatement"
		if m.fieldText(ts, "operator") == "of" {
			typ = "ForOfStatement"
		}
		n := m.node(typ, ts)
		n.Set("left", m.mapNode(ts.ChildByFieldName("left")))
		n.Set("right", m.mapNode(ts.ChildByFieldName("right")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "return_statement":
		n := m.node("ReturnStatement", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "throw_statement":
		n := m.node("ThrowStatement", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "break_statement":
		n := m.node("BreakStatement", ts)
		n.Set("label", m.mapNode(ts.ChildByFieldName("label")))
		return n

	case "continue_statement":
		n := m.node("ContinueStatement", ts)
		n.Set("label", m.mapNode(ts.ChildByFieldName("label")))
		return n

	case "labeled_statement":
		n := m.node("LabeledStatement", ts)
		n.Set("label", m.mapNode(ts.ChildByFieldName("label")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "try_statement":
		n := m.node("TryStatement", ts)
		n.Set("block", m.mapNode(ts.ChildByFieldName("body")))
		n.Set("handler", m.mapNode(ts.ChildByFieldName("handler")))
		if fin := ts.ChildByFieldName("finalizer"); fin != nil {
			// finally_clause wraps the block.
			n.Set("finalizer", m.firstMappedChild(fin))
		}
		return n

	case "catch_clause":
		n := m.node("CatchClause", ts)
		n.Set("param", m.mapNode(ts.ChildByFieldName("parameter")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "switch_statement":
		n := m.node("SwitchStatement", ts)
		n.Set("discriminant", m.mapNode(ts.ChildByFieldName("value")))
		var cases []*jsast.Node
		if body := ts.ChildByFieldName("body"); body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				cases = append(cases, m.mapNode(body.NamedChild(i)))
			}
		}
		n.Set("cases", cases)
		return n

	case "switch_case", "switch_default":
		n := m.node("SwitchCase", ts)
		n.Set("test", m.mapNode(ts.ChildByFieldName("value")))
		var body []*jsast.Node
		for i := 0; i < int(ts.NamedChildCount()); i++ {
			child := ts.NamedChild(i)
			if child == ts.ChildByFieldName("value") {
				continue
			}
			if mapped := m.mapNode(child); mapped != nil {
				body = append(body, mapped)
			}
		}
		n.Set("consequent", body)
		return n

	case "function_declaration":
		n := m.node("FunctionDeclaration", ts)
		n.Set("id", m.mapNode(ts.ChildByFieldName("name")))
		n.Set("params", m.mapParams(ts.ChildByFieldName("parameters")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		n.Set("async", strings.HasPrefix(m.text(ts), "async"))
		n.Set("generator", strings.Contains(m.text(ts), "function*"))
		return n

	case "function", "function_expression", "generator_function":
		n := m.node("FunctionExpression", ts)
		n.Set("id", m.mapNode(ts.ChildByFieldName("name")))
		n.Set("params", m.mapParams(ts.ChildByFieldName("parameters")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "arrow_function":
		n := m.node("ArrowFunctionExpression", ts)
		if params := ts.ChildByFieldName("parameters"); params != nil {
			n.Set("params", m.mapParams(params))
		} else if param := ts.ChildByFieldName("parameter"); param != nil {
			n.Set("params", []*jsast.Node{m.mapNode(param)})
		} else {
			n.Set("params", []*jsast.Node{})
		}
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "object", "object_pattern":
		typ := "ObjectExpression"
		if ts.Type() == "object_pattern" {
			typ = "ObjectPattern"
		}
		n := m.node(typ, ts)
		n.Set("properties", m.mapChildren(ts))
		return n

	case "pair", "pair_pattern":
		n := m.node("Property", ts)
		n.Set("key", m.mapNode(ts.ChildByFieldName("key")))
		n.Set("value", m.mapNode(ts.ChildByFieldName("value")))
		n.Set("computed", false)
		n.Set("kind", "init")
		return n

	case "array", "array_pattern":
		typ := "ArrayExpression"
		if ts.Type() == "array_pattern" {
			typ = "ArrayPattern"
		}
		n := m.node(typ, ts)
		n.Set("elements", m.mapChildren(ts))
		return n

	case "spread_element":
		n := m.node("SpreadElement", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "rest_pattern":
		n := m.node("RestElement", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "assignment_pattern":
		n := m.node("AssignmentPattern", ts)
		n.Set("left", m.mapNode(ts.ChildByFieldName("left")))
		n.Set("right", m.mapNode(ts.ChildByFieldName("right")))
		return n

	case "await_expression":
		n := m.node("AwaitExpression", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "yield_expression":
		n := m.node("YieldExpression", ts)
		n.Set("argument", m.firstMappedChild(ts))
		return n

	case "class_declaration", "class":
		typ := "ClassDeclaration"
		if ts.Type() == "class" {
			typ = "ClassExpression"
		}
		n := m.node(typ, ts)
		n.Set("id", m.mapNode(ts.ChildByFieldName("name")))
		n.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		return n

	case "class_body":
		n := m.node("ClassBody", ts)
		n.Set("body", m.mapChildren(ts))
		return n

	case "method_definition":
		n := m.node("MethodDefinition", ts)
		n.Set("key", m.mapNode(ts.ChildByFieldName("name")))
		value := m.node("FunctionExpression", ts)
		value.Set("params", m.mapParams(ts.ChildByFieldName("parameters")))
		value.Set("body", m.mapNode(ts.ChildByFieldName("body")))
		n.Set("value", value)
		return n

	default:
		return m.mapGeneric(ts)
	}
}

// mapGeneric converts unrecognized named nodes with a PascalCase type and
// the named children under a generic key, reachable through the visitor
// fallback.
func (m *mapper) mapGeneric(ts *sitter.Node) *jsast.Node {
	if !ts.IsNamed() {
		return nil
	}
	n := m.node(pascalCase(ts.Type()), ts)
	if children := m.mapChildren(ts); len(children) > 0 {
		n.Set("children", children)
	}
	return n
}

// mapChildren maps every named child that has an ESTree counterpart.
func (m *mapper) mapChildren(ts *sitter.Node) []*jsast.Node {
	children := make([]*jsast.Node, 0, ts.NamedChildCount())
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if mapped := m.mapNode(ts.NamedChild(i)); mapped != nil {
			children = append(children, mapped)
		}
	}
	return children
}

// firstMappedChild returns the first named child that maps to a node.
func (m *mapper) firstMappedChild(ts *sitter.Node) *jsast.Node {
	for i := 0; i < int(ts.NamedChildCount()); i++ {
		if mapped := m.mapNode(ts.NamedChild(i)); mapped != nil {
			return mapped
		}
	}
	return nil
}

// mapParams flattens a formal_parameters node into the params list.
func (m *mapper) mapParams(ts *sitter.Node) []*jsast.Node {
	if ts == nil {
		return []*jsast.Node{}
	}
	return m.mapChildren(ts)
}

// mapArguments flattens an arguments node.
func (m *mapper) mapArguments(ts *sitter.Node) []*jsast.Node {
	if ts == nil {
		return []*jsast.Node{}
	}
	return m.mapChildren(ts)
}

func (m *mapper) fieldText(ts *sitter.Node, field string) string {
	child := ts.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return m.text(child)
}

// pascalCase converts a snake_case grammar type to PascalCase.
func pascalCase(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}
