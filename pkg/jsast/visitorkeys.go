package jsast

// VisitorKeys maps a node type to the ordered list of property names that
// hold child nodes. Parsers may supply their own table; DefaultVisitorKeys
// covers the standard ESTree node set.
type VisitorKeys map[string][]string

// defaultVisitorKeys is the shared read-only table for standard ESTree types.
//
//nolint:gochecknoglobals // Shared immutable table, exposed via DefaultVisitorKeys
var defaultVisitorKeys = VisitorKeys{
	"Program":             {"body"},
	"ExpressionStatement": {"expression"},
	"BlockStatement":      {"body"},
	"StaticBlock":         {"body"},
	"EmptyStatement":      {},
	"DebuggerStatement":   {},
	"ReturnStatement":     {"argument"},
	"ThrowStatement":      {"argument"},
	"IfStatement":         {"test", "consequent", "alternate"},
	"SwitchStatement":     {"discriminant", "cases"},
	"SwitchCase":          {"test", "consequent"},
	"TryStatement":        {"block", "handler", "finalizer"},
	"CatchClause":         {"param", "body"},
	"WhileStatement":      {"test", "body"},
	"DoWhileStatement":    {"body", "test"},
	"ForStatement":        {"init", "test", "update", "body"},
	"ForInStatement":      {"left", "right", "body"},
	"ForOfStatement":      {"left", "right", "body"},
	"LabeledStatement":    {"label", "body"},
	"BreakStatement":      {"label"},
	"ContinueStatement":   {"label"},

	"FunctionDeclaration":     {"id", "params", "body"},
	"FunctionExpression":      {"id", "params", "body"},
	"ArrowFunctionExpression": {"params", "body"},
	"VariableDeclaration":     {"declarations"},
	"VariableDeclarator":      {"id", "init"},
	"ClassDeclaration":        {"id", "superClass", "body"},
	"ClassExpression":         {"id", "superClass", "body"},
	"ClassBody":               {"body"},
	"MethodDefinition":        {"key", "value"},
	"PropertyDefinition":      {"key", "value"},

	"Identifier":        {},
	"PrivateIdentifier": {},
	"Literal":           {},
	"ThisExpression":    {},
	"Super":             {},
	"TemplateElement":   {},

	"ArrayExpression":          {"elements"},
	"ObjectExpression":         {"properties"},
	"Property":                 {"key", "value"},
	"UnaryExpression":          {"argument"},
	"UpdateExpression":         {"argument"},
	"BinaryExpression":         {"left", "right"},
	"AssignmentExpression":     {"left", "right"},
	"LogicalExpression":        {"left", "right"},
	"MemberExpression":         {"object", "property"},
	"ConditionalExpression":    {"test", "consequent", "alternate"},
	"CallExpression":           {"callee", "arguments"},
	"NewExpression":            {"callee", "arguments"},
	"SequenceExpression":       {"expressions"},
	"TemplateLiteral":          {"quasis", "expressions"},
	"TaggedTemplateExpression": {"tag", "quasi"},
	"SpreadElement":            {"argument"},
	"RestElement":              {"argument"},
	"AssignmentPattern":        {"left", "right"},
	"ArrayPattern":             {"elements"},
	"ObjectPattern":            {"properties"},
	"AwaitExpression":          {"argument"},
	"YieldExpression":          {"argument"},
	"ChainExpression":          {"expression"},
	"MetaProperty":             {"meta", "property"},

	"ImportDeclaration":        {"specifiers", "source"},
	"ImportSpecifier":          {"imported", "local"},
	"ImportDefaultSpecifier":   {"local"},
	"ImportNamespaceSpecifier": {"local"},
	"ExportNamedDeclaration":   {"declaration", "specifiers", "source"},
	"ExportDefaultDeclaration": {"declaration"},
	"ExportAllDeclaration":     {"exported", "source"},
	"ExportSpecifier":          {"local", "exported"},
}

// DefaultVisitorKeys returns the built-in visitor key table.
// Callers must not mutate the returned map.
func DefaultVisitorKeys() VisitorKeys {
	return defaultVisitorKeys
}

// Merge overlays other on top of keys, returning a new table.
// Entries in other win on conflict.
func (keys VisitorKeys) Merge(other VisitorKeys) VisitorKeys {
	if len(other) == 0 {
		return keys
	}
	merged := make(VisitorKeys, len(keys)+len(other))
	for k, v := range keys {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// ChildKeys returns the traversal keys for a node. Known types use the
// table; unknown types fall back to scanning the node's own properties
// for values that are nodes or node lists, in sorted key order.
func (keys VisitorKeys) ChildKeys(n *Node) []string {
	if n == nil {
		return nil
	}
	if declared, ok := keys[n.Type]; ok {
		return declared
	}

	var found []string
	for _, key := range n.propKeys() {
		switch n.Props[key].(type) {
		case *Node, []*Node:
			found = append(found, key)
		}
	}
	return found
}
