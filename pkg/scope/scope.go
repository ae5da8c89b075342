// Package scope models variable scoping information for a parsed program.
// The linting core consumes scopes read-only; the parser adapter (or an
// external scope analyzer) builds them once per file.
package scope

import "github.com/yaklabco/gojslint/pkg/jsast"

// Type classifies a scope.
type Type string

// Scope types, outermost first.
const (
	TypeGlobal   Type = "global"
	TypeModule   Type = "module"
	TypeFunction Type = "function"
	TypeBlock    Type = "block"
	TypeCatch    Type = "catch"
)

// Scope is a single lexical scope. Scopes form a tree rooted at the
// global scope.
type Scope struct {
	// Type classifies the scope.
	Type Type

	// Block is the AST node that opens the scope.
	Block *jsast.Node

	// Upper is the enclosing scope, nil for the global scope.
	Upper *Scope

	// ChildScopes lists nested scopes in source order.
	ChildScopes []*Scope

	// Variables lists variables declared in this scope, in declaration
	// order.
	Variables []*Variable

	// References lists identifier references made from this scope.
	References []*Reference

	// Through lists references that could not be resolved in this scope
	// or any inner scope.
	Through []*Reference

	variableMap map[string]*Variable
}

// Variable is a declared (or implicitly known) variable.
type Variable struct {
	// Name is the variable name.
	Name string

	// Scope is the scope the variable belongs to.
	Scope *Scope

	// Defs lists the identifier nodes that declare the variable.
	// Empty for implicit globals injected by configuration.
	Defs []*jsast.Node

	// References lists resolved references to this variable.
	References []*Reference

	// Used is set when a rule marks the variable as used, or when the
	// exported directive names it.
	Used bool

	// Writable reports whether configured globals permit assignment.
	// Meaningful only for injected globals.
	Writable bool
}

// Reference is a single identifier occurrence referring to a variable.
type Reference struct {
	// Identifier is the referencing Identifier node.
	Identifier *jsast.Node

	// From is the scope the reference was made from.
	From *Scope

	// Resolved is the variable the reference binds to, nil if unresolved.
	Resolved *Variable
}

// Variable returns the variable declared under name in this scope, or nil.
func (s *Scope) Variable(name string) *Variable {
	if s == nil || s.variableMap == nil {
		return nil
	}
	return s.variableMap[name]
}

// Lookup resolves name through this scope and its uppers, or returns nil.
func (s *Scope) Lookup(name string) *Variable {
	for cur := s; cur != nil; cur = cur.Upper {
		if v := cur.Variable(name); v != nil {
			return v
		}
	}
	return nil
}

// MarkUsed walks the scope chain upward and flags the first variable with
// the given name as used. Returns true if a variable was found.
func (s *Scope) MarkUsed(name string) bool {
	if v := s.Lookup(name); v != nil {
		v.Used = true
		return true
	}
	return false
}

// declare adds a variable to the scope, reusing an existing entry for
// repeated declarations of the same name (as var permits).
func (s *Scope) declare(name string, def *jsast.Node) *Variable {
	if s.variableMap == nil {
		s.variableMap = make(map[string]*Variable)
	}
	v, ok := s.variableMap[name]
	if !ok {
		v = &Variable{Name: name, Scope: s, Writable: true}
		s.variableMap[name] = v
		s.Variables = append(s.Variables, v)
	}
	if def != nil {
		v.Defs = append(v.Defs, def)
	}
	return v
}

// Manager owns all scopes of one file.
type Manager struct {
	// GlobalScope is the outermost scope.
	GlobalScope *Scope

	scopes     []*Scope
	blockIndex map[*jsast.Node]*Scope
}

// Scopes returns every scope in creation order.
func (m *Manager) Scopes() []*Scope {
	return m.scopes
}

// Acquire returns the scope opened by the given node, or nil.
func (m *Manager) Acquire(n *jsast.Node) *Scope {
	if m == nil || m.blockIndex == nil {
		return nil
	}
	return m.blockIndex[n]
}

// InnermostScopeFor returns the nearest scope enclosing the node, walking
// parent links upward. Falls back to the global scope.
func (m *Manager) InnermostScopeFor(n *jsast.Node) *Scope {
	for cur := n; cur != nil; cur = cur.Parent {
		if s := m.Acquire(cur); s != nil {
			return s
		}
	}
	return m.GlobalScope
}

// DeclareGlobal injects a configured global variable into the global scope
// and re-resolves any unresolved references to it.
func (m *Manager) DeclareGlobal(name string, writable bool) *Variable {
	v := m.GlobalScope.declare(name, nil)
	v.Writable = writable

	remaining := m.GlobalScope.Through[:0]
	for _, ref := range m.GlobalScope.Through {
		if ref.Identifier.Attr("name") == name {
			ref.Resolved = v
			v.References = append(v.References, ref)
			continue
		}
		remaining = append(remaining, ref)
	}
	m.GlobalScope.Through = remaining
	return v
}
