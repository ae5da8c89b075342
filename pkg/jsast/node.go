// Package jsast provides the ESTree-shaped AST representation for gojslint.
// It defines nodes, tokens, visitor keys, and a depth-first traverser over
// parser output. Nodes are produced by an external parser adapter; the
// linting core treats them as read-only apart from parent back-links.
package jsast

import "sort"

// Node represents a single AST node.
//
// Child nodes and scalar attributes both live in Props, keyed the way the
// parser emitted them (e.g. "declarations", "kind", "operator"). Values are
// *Node, []*Node, or plain scalars. Visitor keys determine which Props
// entries are traversed as children.
type Node struct {
	// Type is the node type name (e.g. "VariableDeclaration").
	Type string

	// Range is the byte span of this node in the source text.
	Range Range

	// Loc is the line/column span of this node.
	Loc SourceLocation

	// Parent is the enclosing node. It is populated lazily by the
	// Traverser during a walk and cleared when the lint pass ends.
	Parent *Node

	// Props holds named children and scalar attributes.
	Props map[string]any
}

// New creates a node of the given type spanning [start, end).
func New(typ string, start, end int) *Node {
	return &Node{
		Type:  typ,
		Range: Range{Start: start, End: end},
		Props: make(map[string]any),
	}
}

// Set stores a child node, child list, or scalar attribute under key.
// It returns the node to allow chained construction.
func (n *Node) Set(key string, value any) *Node {
	if n.Props == nil {
		n.Props = make(map[string]any)
	}
	n.Props[key] = value
	return n
}

// Get returns the raw property value for key, or nil.
func (n *Node) Get(key string) any {
	if n == nil || n.Props == nil {
		return nil
	}
	return n.Props[key]
}

// Child returns the single child node stored under key, or nil.
func (n *Node) Child(key string) *Node {
	child, _ := n.Get(key).(*Node)
	return child
}

// ChildList returns the child list stored under key, or nil.
func (n *Node) ChildList(key string) []*Node {
	list, _ := n.Get(key).([]*Node)
	return list
}

// Attr returns the string attribute stored under key, or "".
func (n *Node) Attr(key string) string {
	s, _ := n.Get(key).(string)
	return s
}

// AttrBool returns the boolean attribute stored under key, or false.
func (n *Node) AttrBool(key string) bool {
	b, _ := n.Get(key).(bool)
	return b
}

// Is reports whether the node is non-nil and has the given type.
func (n *Node) Is(typ string) bool {
	return n != nil && n.Type == typ
}

// propKeys returns the node's property names in sorted order.
// Used by the own-property fallback when no visitor keys are declared.
func (n *Node) propKeys() []string {
	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsFunction returns true for function-like nodes that start a new code path.
func IsFunction(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case "FunctionDeclaration", "FunctionExpression", "ArrowFunctionExpression":
		return true
	default:
		return false
	}
}

// IsLoop returns true for looping statement nodes.
func IsLoop(n *Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case "WhileStatement", "DoWhileStatement", "ForStatement",
		"ForInStatement", "ForOfStatement":
		return true
	default:
		return false
	}
}
