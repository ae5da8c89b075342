package jsast

import "errors"

// Control sentinels returned from traversal callbacks.
var (
	// SkipChildren, returned from Enter, suppresses descent into the
	// current node. Leave is still called for it.
	SkipChildren = errors.New("skip children")

	// BreakWalk aborts the entire walk immediately.
	BreakWalk = errors.New("break walk")
)

// TraverseOptions configures a depth-first walk.
type TraverseOptions struct {
	// Enter is called before a node's children are visited.
	// Returning SkipChildren suppresses descent; BreakWalk aborts the
	// walk; any other non-nil error propagates out of Traverse.
	Enter func(n, parent *Node) error

	// Leave is called after a node's children are visited.
	Leave func(n, parent *Node) error

	// Keys resolves child properties per node type.
	// DefaultVisitorKeys() is used when nil.
	Keys VisitorKeys

	// SetParents populates each node's Parent back-link during enter.
	// The links are the traverser's only mutation of the AST; callers
	// drop the AST (or call ClearParents) when the lint pass ends.
	SetParents bool
}

// Traverse performs a depth-first walk from root, invoking Enter before and
// Leave after each node's children. Child lists are visited in declaration
// order; nil children are silently skipped.
func Traverse(root *Node, opts TraverseOptions) error {
	if root == nil {
		return nil
	}
	if opts.Keys == nil {
		opts.Keys = DefaultVisitorKeys()
	}

	err := traverse(root, nil, &opts)
	if errors.Is(err, BreakWalk) {
		return nil
	}
	return err
}

func traverse(n, parent *Node, opts *TraverseOptions) error {
	if opts.SetParents {
		n.Parent = parent
	}

	descend := true
	if opts.Enter != nil {
		switch err := opts.Enter(n, parent); {
		case err == nil:
		case errors.Is(err, SkipChildren):
			descend = false
		default:
			return err
		}
	}

	if descend {
		for _, key := range opts.Keys.ChildKeys(n) {
			switch child := n.Props[key].(type) {
			case *Node:
				if child == nil {
					continue
				}
				if err := traverse(child, n, opts); err != nil {
					return err
				}
			case []*Node:
				for _, item := range child {
					if item == nil {
						continue
					}
					if err := traverse(item, n, opts); err != nil {
						return err
					}
				}
			}
		}
	}

	if opts.Leave != nil {
		if err := opts.Leave(n, parent); err != nil {
			return err
		}
	}
	return nil
}

// ClearParents removes all parent back-links under root, breaking the
// retention cycle once a lint pass is finished with the AST.
func ClearParents(root *Node) {
	//nolint:errcheck // the callback never fails
	Traverse(root, TraverseOptions{
		Leave: func(n, _ *Node) error {
			n.Parent = nil
			return nil
		},
	})
}

// FindAll returns all nodes under root matching the predicate, in
// depth-first enter order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	//nolint:errcheck // the callback never fails
	Traverse(root, TraverseOptions{
		Enter: func(n, _ *Node) error {
			if predicate(n) {
				result = append(result, n)
			}
			return nil
		},
	})
	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node
	//nolint:errcheck // BreakWalk is expected and intentionally swallowed
	Traverse(root, TraverseOptions{
		Enter: func(n, _ *Node) error {
			if predicate(n) {
				found = n
				return BreakWalk
			}
			return nil
		},
	})
	return found
}

// FindByType returns all nodes of the given type under root.
func FindByType(root *Node, typ string) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Type == typ })
}
