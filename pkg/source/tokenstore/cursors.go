// Package tokenstore provides positional queries over the union of tokens
// and comments. Queries are built from composable cursors: a base cursor
// iterating a span of the token stream, wrapped by filter, skip, and limit
// decorators in that fixed order.
package tokenstore

import "github.com/yaklabco/gojslint/pkg/jsast"

// Cursor iterates tokens. MoveNext advances and reports whether a current
// item exists; Current returns it. Cursors never mutate the underlying
// token arrays.
type Cursor interface {
	MoveNext() bool
	Current() *jsast.Token
}

// forwardCursor yields items[first..last] in source order.
type forwardCursor struct {
	items   []*jsast.Token
	next    int
	last    int
	current *jsast.Token
}

func newForwardCursor(items []*jsast.Token, first, last int) *forwardCursor {
	return &forwardCursor{items: items, next: first, last: last}
}

func (c *forwardCursor) MoveNext() bool {
	if c.next < 0 || c.next > c.last || c.next >= len(c.items) {
		c.current = nil
		return false
	}
	c.current = c.items[c.next]
	c.next++
	return true
}

func (c *forwardCursor) Current() *jsast.Token {
	return c.current
}

// backwardCursor yields items[first..last] in reverse source order.
type backwardCursor struct {
	items   []*jsast.Token
	next    int
	first   int
	current *jsast.Token
}

func newBackwardCursor(items []*jsast.Token, first, last int) *backwardCursor {
	if last >= len(items) {
		last = len(items) - 1
	}
	return &backwardCursor{items: items, next: last, first: first}
}

func (c *backwardCursor) MoveNext() bool {
	if c.next < 0 || c.next < c.first {
		c.current = nil
		return false
	}
	c.current = c.items[c.next]
	c.next--
	return true
}

func (c *backwardCursor) Current() *jsast.Token {
	return c.current
}

// filterCursor drops items failing the predicate.
type filterCursor struct {
	inner Cursor
	pred  func(*jsast.Token) bool
}

func (c *filterCursor) MoveNext() bool {
	for c.inner.MoveNext() {
		if c.pred(c.inner.Current()) {
			return true
		}
	}
	return false
}

func (c *filterCursor) Current() *jsast.Token {
	return c.inner.Current()
}

// skipCursor discards the first n yielded items.
type skipCursor struct {
	inner Cursor
	n     int
}

func (c *skipCursor) MoveNext() bool {
	for c.n > 0 {
		c.n--
		if !c.inner.MoveNext() {
			return false
		}
	}
	return c.inner.MoveNext()
}

func (c *skipCursor) Current() *jsast.Token {
	return c.inner.Current()
}

// limitCursor yields at most n items.
type limitCursor struct {
	inner Cursor
	n     int
}

func (c *limitCursor) MoveNext() bool {
	if c.n <= 0 {
		return false
	}
	c.n--
	return c.inner.MoveNext()
}

func (c *limitCursor) Current() *jsast.Token {
	return c.inner.Current()
}

// decorate wraps a base cursor with the query's filter, skip, and limit.
// Composition order is fixed (base → filter → skip → limit) so output is
// deterministic regardless of predicate side effects. A negative count
// means "all matching".
func decorate(base Cursor, q *query) Cursor {
	cursor := base
	if q.filter != nil {
		cursor = &filterCursor{inner: cursor, pred: q.filter}
	}
	if q.skip > 0 {
		cursor = &skipCursor{inner: cursor, n: q.skip}
	}
	if q.count >= 0 {
		cursor = &limitCursor{inner: cursor, n: q.count}
	}
	return cursor
}

// collect drains a cursor into a slice.
func collect(cursor Cursor) []*jsast.Token {
	var result []*jsast.Token
	for cursor.MoveNext() {
		result = append(result, cursor.Current())
	}
	return result
}

// first returns the cursor's first item, or nil.
func first(cursor Cursor) *jsast.Token {
	if cursor.MoveNext() {
		return cursor.Current()
	}
	return nil
}
