package lint

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// compiledSelector is a parsed AST-query expression bound to an event
// name. Selectors are compiled once at subscription time.
type compiledSelector struct {
	// raw is the original selector string, used as the emit key.
	raw string

	// isExit is true for ":exit" selectors, fired on node leave.
	isExit bool

	// chain is the compound sequence, leftmost ancestor first; the last
	// compound matches the event node itself.
	chain []compound

	// combinators[i] relates chain[i] and chain[i+1]: '>' for child,
	// ' ' for descendant.
	combinators []byte

	// attrCount and identCount feed specificity ordering.
	attrCount  int
	identCount int

	// order is the compile index, the last specificity tie-breaker. Event
	// names are compiled in sorted order, not in subscription order.
	order int
}

type compound struct {
	// typ is the required node type; empty matches any type.
	typ string

	attrs []attrCheck
}

type attrCheck struct {
	// path is the attribute path, possibly dotted (e.g. "callee.name").
	path string

	// op is 0 for existence, '=' for equality, '!' for inequality.
	op byte

	// value is the literal to compare against.
	value string
}

// splitSelectors splits a selector on top-level commas; each part is
// compiled and registered separately against the same listener.
func splitSelectors(raw string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(raw); i++ {
		switch raw[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, raw[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, raw[start:])
	return parts
}

// parseSelector compiles one comma-free selector.
func parseSelector(raw string, order int) (*compiledSelector, error) {
	sel := &compiledSelector{raw: raw, order: order}

	s := strings.TrimSpace(raw)
	if trimmed, found := strings.CutSuffix(s, ":exit"); found {
		sel.isExit = true
		s = trimmed
	}
	if s == "" {
		return nil, fmt.Errorf("could not parse selector %q: empty selector", raw)
	}

	i := 0
	pendingComb := byte(0)
	for i < len(s) {
		sawSpace := false
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
			sawSpace = true
		}
		if i < len(s) && s[i] == '>' {
			if pendingComb != 0 {
				return nil, fmt.Errorf("could not parse selector %q: doubled combinator", raw)
			}
			pendingComb = '>'
			i++
			continue
		}
		if i >= len(s) {
			break
		}

		comp, next, err := parseCompound(s, i, raw)
		if err != nil {
			return nil, err
		}
		if len(sel.chain) > 0 {
			if pendingComb == 0 {
				if !sawSpace {
					return nil, fmt.Errorf("could not parse selector %q near offset %d", raw, i)
				}
				pendingComb = ' '
			}
			sel.combinators = append(sel.combinators, pendingComb)
		} else if pendingComb != 0 {
			return nil, fmt.Errorf("could not parse selector %q: leading combinator", raw)
		}
		sel.chain = append(sel.chain, comp)
		pendingComb = 0
		i = next
	}

	if len(sel.chain) == 0 {
		return nil, fmt.Errorf("could not parse selector %q: no node pattern", raw)
	}
	if pendingComb != 0 {
		return nil, fmt.Errorf("could not parse selector %q: trailing combinator", raw)
	}

	for _, comp := range sel.chain {
		sel.attrCount += len(comp.attrs)
		if comp.typ != "" {
			sel.identCount++
		}
	}
	return sel, nil
}

func parseCompound(s string, i int, raw string) (compound, int, error) {
	var comp compound

	switch {
	case s[i] == '*':
		i++
	case isIdentByte(s[i]):
		start := i
		for i < len(s) && isIdentByte(s[i]) {
			i++
		}
		comp.typ = s[start:i]
	case s[i] == '[':
		// Attribute-only compound matches any type.
	default:
		return comp, i, fmt.Errorf("could not parse selector %q near offset %d", raw, i)
	}

	for i < len(s) && s[i] == '[' {
		close := strings.IndexByte(s[i:], ']')
		if close < 0 {
			return comp, i, fmt.Errorf("could not parse selector %q: unterminated attribute", raw)
		}
		attr, err := parseAttr(s[i+1 : i+close])
		if err != nil {
			return comp, i, fmt.Errorf("could not parse selector %q: %w", raw, err)
		}
		comp.attrs = append(comp.attrs, attr)
		i += close + 1
	}
	return comp, i, nil
}

func parseAttr(body string) (attrCheck, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return attrCheck{}, fmt.Errorf("empty attribute")
	}

	// Scan for the first comparison operator; '=' inside a quoted value
	// cannot come first because the path precedes the operator.
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '!' && i+1 < len(body) && body[i+1] == '=':
			return attrCheck{
				path:  strings.TrimSpace(body[:i]),
				op:    '!',
				value: parseAttrValue(body[i+2:]),
			}, nil
		case body[i] == '=':
			return attrCheck{
				path:  strings.TrimSpace(body[:i]),
				op:    '=',
				value: parseAttrValue(body[i+1:]),
			}, nil
		}
	}
	return attrCheck{path: body}, nil
}

func parseAttrValue(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func isIdentByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' ||
		b >= '0' && b <= '9' || b == '_' || b == '$'
}

// Matches reports whether the event node satisfies the selector. Ancestors
// are consulted through the parent links the traverser installs.
func (sel *compiledSelector) Matches(n *jsast.Node) bool {
	return matchChain(sel.chain, sel.combinators, len(sel.chain)-1, n)
}

func matchChain(chain []compound, combs []byte, idx int, n *jsast.Node) bool {
	if n == nil || !matchCompound(chain[idx], n) {
		return false
	}
	if idx == 0 {
		return true
	}
	switch combs[idx-1] {
	case '>':
		return matchChain(chain, combs, idx-1, n.Parent)
	default:
		for p := n.Parent; p != nil; p = p.Parent {
			if matchChain(chain, combs, idx-1, p) {
				return true
			}
		}
		return false
	}
}

func matchCompound(comp compound, n *jsast.Node) bool {
	if comp.typ != "" && n.Type != comp.typ {
		return false
	}
	for _, attr := range comp.attrs {
		value, present := resolveAttrPath(n, attr.path)
		switch attr.op {
		case 0:
			if !present {
				return false
			}
		case '=':
			if !present || attrString(value) != attr.value {
				return false
			}
		case '!':
			if present && attrString(value) == attr.value {
				return false
			}
		}
	}
	return true
}

// resolveAttrPath walks a dotted attribute path through child nodes.
func resolveAttrPath(n *jsast.Node, path string) (any, bool) {
	cur := n
	segments := strings.Split(path, ".")
	for _, seg := range segments[:len(segments)-1] {
		cur = cur.Child(seg)
		if cur == nil {
			return nil, false
		}
	}
	last := segments[len(segments)-1]
	value, ok := cur.Props[last]
	if !ok {
		return nil, false
	}
	if value == nil {
		return nil, false
	}
	return value, true
}

// attrString renders an attribute value for selector comparison.
func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case *jsast.Node:
		return val.Type
	default:
		return fmt.Sprintf("%v", val)
	}
}

// lessSpecific orders selectors for dispatch: more specific first
// (attribute count, then identifier count), ties broken by the raw string
// and finally by compile index. Subscription order is not consulted.
func lessSpecific(a, b *compiledSelector) bool {
	if a.attrCount != b.attrCount {
		return a.attrCount > b.attrCount
	}
	if a.identCount != b.identCount {
		return a.identCount > b.identCount
	}
	if a.raw != b.raw {
		return a.raw < b.raw
	}
	return a.order < b.order
}
