package scope

import "github.com/yaklabco/gojslint/pkg/jsast"

// AnalyzeOptions configures scope analysis.
type AnalyzeOptions struct {
	// SourceType is "script", "module", or "commonjs".
	SourceType string
}

// Analyze builds the scope tree for a parsed program.
//
// The analysis is intentionally coarse compared to a full ECMAScript scope
// analyzer: var and function declarations hoist to the nearest function or
// global scope, let/const/class bind in the nearest block scope, function
// params and catch params bind in their own scope, and every identifier in
// a value position becomes a reference resolved through the scope chain.
func Analyze(root *jsast.Node, opts AnalyzeOptions) *Manager {
	m := &Manager{blockIndex: make(map[*jsast.Node]*Scope)}

	global := &Scope{Type: TypeGlobal, Block: root}
	m.GlobalScope = global
	m.scopes = append(m.scopes, global)
	m.blockIndex[root] = global

	current := global
	if opts.SourceType == "module" {
		current = m.open(TypeModule, root, global)
		// The module scope shadows the global index entry for Program.
		m.blockIndex[root] = current
	}

	a := &analyzer{m: m}
	a.walk(root, nil, current)
	a.resolve()
	return m
}

type pendingRef struct {
	ident *jsast.Node
	from  *Scope
}

type analyzer struct {
	m    *Manager
	refs []pendingRef
}

func (m *Manager) open(t Type, block *jsast.Node, upper *Scope) *Scope {
	s := &Scope{Type: t, Block: block, Upper: upper}
	upper.ChildScopes = append(upper.ChildScopes, s)
	m.scopes = append(m.scopes, s)
	if _, taken := m.blockIndex[block]; !taken {
		m.blockIndex[block] = s
	}
	return s
}

// nearestFunctionScope returns the hoisting target for var declarations.
func nearestFunctionScope(s *Scope) *Scope {
	for cur := s; cur != nil; cur = cur.Upper {
		switch cur.Type {
		case TypeFunction, TypeModule, TypeGlobal:
			return cur
		}
	}
	return s
}

func (a *analyzer) walk(n, parent *jsast.Node, current *Scope) {
	if n == nil {
		return
	}
	// The traverser normally wires parent links during the lint walk;
	// scope analysis runs before that, so wire them here too.
	n.Parent = parent

	switch n.Type {
	case "FunctionDeclaration", "FunctionExpression", "ArrowFunctionExpression":
		if id := n.Child("id"); id != nil {
			// The name binds in the enclosing scope for declarations
			// and in the function's own scope for expressions.
			if n.Type == "FunctionDeclaration" {
				nearestFunctionScope(current).declare(id.Attr("name"), id)
			}
		}
		inner := a.m.open(TypeFunction, n, current)
		if id := n.Child("id"); id != nil && n.Type == "FunctionExpression" {
			inner.declare(id.Attr("name"), id)
		}
		for _, param := range n.ChildList("params") {
			a.declarePattern(param, inner)
		}
		a.walk(n.Child("body"), n, inner)
		return

	case "CatchClause":
		inner := a.m.open(TypeCatch, n, current)
		if param := n.Child("param"); param != nil {
			a.declarePattern(param, inner)
		}
		a.walk(n.Child("body"), n, inner)
		return

	case "BlockStatement", "StaticBlock":
		// A block opens a scope unless it is a function body, which
		// shares the function scope.
		if !jsast.IsFunction(n.Parent) {
			current = a.m.open(TypeBlock, n, current)
		}

	case "VariableDeclaration":
		target := current
		if n.Attr("kind") == "var" {
			target = nearestFunctionScope(current)
		}
		for _, decl := range n.ChildList("declarations") {
			if id := decl.Child("id"); id != nil {
				a.declarePattern(id, target)
			}
			decl.Parent = n
			a.walk(decl.Child("init"), decl, current)
		}
		return

	case "ClassDeclaration":
		if id := n.Child("id"); id != nil {
			current.declare(id.Attr("name"), id)
		}

	case "Identifier":
		if isReferencePosition(n) {
			a.refs = append(a.refs, pendingRef{ident: n, from: current})
		}
		return
	}

	for _, key := range jsast.DefaultVisitorKeys().ChildKeys(n) {
		switch child := n.Props[key].(type) {
		case *jsast.Node:
			a.walk(child, n, current)
		case []*jsast.Node:
			for _, item := range child {
				a.walk(item, n, current)
			}
		}
	}
}

// declarePattern declares every identifier bound by a binding pattern.
func (a *analyzer) declarePattern(pattern *jsast.Node, target *Scope) {
	if pattern == nil {
		return
	}
	switch pattern.Type {
	case "Identifier":
		target.declare(pattern.Attr("name"), pattern)
	case "AssignmentPattern":
		a.declarePattern(pattern.Child("left"), target)
	case "RestElement":
		a.declarePattern(pattern.Child("argument"), target)
	case "ArrayPattern":
		for _, elem := range pattern.ChildList("elements") {
			a.declarePattern(elem, target)
		}
	case "ObjectPattern":
		for _, prop := range pattern.ChildList("properties") {
			if prop.Is("Property") {
				a.declarePattern(prop.Child("value"), target)
			} else {
				a.declarePattern(prop, target)
			}
		}
	}
}

// isReferencePosition reports whether an identifier occurrence reads or
// writes a variable, as opposed to naming a property, key, or label.
func isReferencePosition(n *jsast.Node) bool {
	parent := n.Parent
	if parent == nil {
		return true
	}
	switch parent.Type {
	case "MemberExpression":
		return parent.Child("object") == n || parent.AttrBool("computed")
	case "Property":
		return parent.Child("value") == n || parent.AttrBool("computed")
	case "MethodDefinition", "PropertyDefinition":
		return parent.AttrBool("computed") && parent.Child("key") == n
	case "LabeledStatement", "BreakStatement", "ContinueStatement":
		return false
	case "ImportSpecifier", "ExportSpecifier":
		return false
	}
	return true
}

// resolve binds the collected references through the scope chain. The walk
// over the whole tree has completed, so hoisted declarations are visible.
func (a *analyzer) resolve() {
	for _, pending := range a.refs {
		ref := &Reference{Identifier: pending.ident, From: pending.from}
		pending.from.References = append(pending.from.References, ref)

		if v := pending.from.Lookup(pending.ident.Attr("name")); v != nil {
			ref.Resolved = v
			v.References = append(v.References, ref)
			continue
		}
		a.m.GlobalScope.Through = append(a.m.GlobalScope.Through, ref)
	}
}
