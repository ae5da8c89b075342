package tokenstore

import (
	"sort"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// Store answers positional queries over a file's tokens and comments.
// Both input streams must be sorted by Range.Start and free of overlaps;
// the merged stream is materialized once at construction. The store never
// mutates the underlying arrays.
type Store struct {
	tokens []*jsast.Token
	merged []*jsast.Token

	// O(1) boundary lookups over the merged stream; misses fall back to
	// binary search. Comment entries point at the comment itself, so the
	// fast path re-checks the bound before trusting a hit.
	startMap map[int]int
	endMap   map[int]int
}

// New builds a Store from the parser's token and comment arrays.
func New(tokens []*jsast.Token, comments []*jsast.Comment) *Store {
	merged := make([]*jsast.Token, 0, len(tokens)+len(comments))
	ti, ci := 0, 0
	for ti < len(tokens) || ci < len(comments) {
		switch {
		case ci >= len(comments):
			merged = append(merged, tokens[ti])
			ti++
		case ti >= len(tokens):
			merged = append(merged, comments[ci])
			ci++
		case tokens[ti].Range.Start < comments[ci].Range.Start:
			merged = append(merged, tokens[ti])
			ti++
		default:
			merged = append(merged, comments[ci])
			ci++
		}
	}

	startMap := make(map[int]int, len(merged))
	endMap := make(map[int]int, len(merged))
	for i, tok := range merged {
		startMap[tok.Range.Start] = i
		endMap[tok.Range.End] = i + 1
	}

	return &Store{
		tokens:   tokens,
		merged:   merged,
		startMap: startMap,
		endMap:   endMap,
	}
}

// query holds the resolved options of a single store query.
type query struct {
	skip            int
	count           int
	filter          func(*jsast.Token) bool
	includeComments bool
}

// Option configures a store query.
type Option func(*query)

// WithSkip discards the first n matching items.
func WithSkip(n int) Option {
	return func(q *query) { q.skip = n }
}

// WithCount caps the number of returned items. Negative means all.
func WithCount(n int) Option {
	return func(q *query) { q.count = n }
}

// WithFilter keeps only items passing the predicate.
func WithFilter(f func(*jsast.Token) bool) Option {
	return func(q *query) { q.filter = f }
}

// IncludeComments merges comments into the iterated stream.
func IncludeComments() Option {
	return func(q *query) { q.includeComments = true }
}

func resolve(listQuery bool, opts []Option) *query {
	q := &query{count: -1}
	if !listQuery {
		q.count = 1
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.skip < 0 {
		q.skip = 0
	}
	return q
}

func (s *Store) stream(q *query) []*jsast.Token {
	if q.includeComments {
		return s.merged
	}
	return s.tokens
}

// isMerged reports whether arr is the merged token∪comment stream.
func (s *Store) isMerged(arr []*jsast.Token) bool {
	return len(arr) == len(s.merged) && (len(arr) == 0 || arr[0] == s.merged[0])
}

// firstIndexAfter returns the least index i with arr[i].Range.Start >= offset.
func (s *Store) firstIndexAfter(arr []*jsast.Token, offset int) int {
	if s.isMerged(arr) {
		if i, ok := s.startMap[offset]; ok && s.merged[i].Range.Start >= offset {
			return i
		}
		if i, ok := s.endMap[offset]; ok && i < len(s.merged) && s.merged[i].Range.Start >= offset {
			return i
		}
	}
	return sort.Search(len(arr), func(i int) bool {
		return arr[i].Range.Start >= offset
	})
}

// lastIndexBefore returns the greatest index i with arr[i].Range.End <= offset,
// or -1 when no such token exists.
func (s *Store) lastIndexBefore(arr []*jsast.Token, offset int) int {
	if s.isMerged(arr) {
		if i, ok := s.endMap[offset]; ok && i-1 >= 0 && s.merged[i-1].Range.End <= offset {
			return i - 1
		}
	}
	// Least i with End > offset; the answer is the index before it.
	i := sort.Search(len(arr), func(i int) bool {
		return arr[i].Range.End > offset
	})
	return i - 1
}

// FirstToken returns the first token inside r, or nil.
func (s *Store) FirstToken(r jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, r.Start)
	lastIdx := s.lastIndexBefore(arr, r.End)
	return first(decorate(newForwardCursor(arr, firstIdx, lastIdx), q))
}

// LastToken returns the last token inside r, or nil.
func (s *Store) LastToken(r jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, r.Start)
	lastIdx := s.lastIndexBefore(arr, r.End)
	return first(decorate(newBackwardCursor(arr, firstIdx, lastIdx), q))
}

// TokenBefore returns the token preceding r, or nil.
func (s *Store) TokenBefore(r jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	lastIdx := s.lastIndexBefore(arr, r.Start)
	return first(decorate(newBackwardCursor(arr, 0, lastIdx), q))
}

// TokenAfter returns the token following r, or nil.
func (s *Store) TokenAfter(r jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, r.End)
	return first(decorate(newForwardCursor(arr, firstIdx, len(arr)-1), q))
}

// Tokens returns all tokens inside r.
func (s *Store) Tokens(r jsast.Range, opts ...Option) []*jsast.Token {
	q := resolve(true, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, r.Start)
	lastIdx := s.lastIndexBefore(arr, r.End)
	return collect(decorate(newForwardCursor(arr, firstIdx, lastIdx), q))
}

// TokensBefore returns the tokens preceding r, closest first.
func (s *Store) TokensBefore(r jsast.Range, opts ...Option) []*jsast.Token {
	q := resolve(true, opts)
	arr := s.stream(q)
	lastIdx := s.lastIndexBefore(arr, r.Start)
	return collect(decorate(newBackwardCursor(arr, 0, lastIdx), q))
}

// TokensAfter returns the tokens following r, closest first.
func (s *Store) TokensAfter(r jsast.Range, opts ...Option) []*jsast.Token {
	q := resolve(true, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, r.End)
	return collect(decorate(newForwardCursor(arr, firstIdx, len(arr)-1), q))
}

// TokensBetween returns the tokens strictly between left and right.
func (s *Store) TokensBetween(left, right jsast.Range, opts ...Option) []*jsast.Token {
	q := resolve(true, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, left.End)
	lastIdx := s.lastIndexBefore(arr, right.Start)
	return collect(decorate(newForwardCursor(arr, firstIdx, lastIdx), q))
}

// FirstTokenBetween returns the first token strictly between left and right,
// or nil.
func (s *Store) FirstTokenBetween(left, right jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, left.End)
	lastIdx := s.lastIndexBefore(arr, right.Start)
	return first(decorate(newForwardCursor(arr, firstIdx, lastIdx), q))
}

// LastTokenBetween returns the last token strictly between left and right,
// or nil.
func (s *Store) LastTokenBetween(left, right jsast.Range, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	firstIdx := s.firstIndexAfter(arr, left.End)
	lastIdx := s.lastIndexBefore(arr, right.Start)
	return first(decorate(newBackwardCursor(arr, firstIdx, lastIdx), q))
}

// TokenByRangeStart returns the token whose range starts exactly at offset,
// or nil.
func (s *Store) TokenByRangeStart(offset int, opts ...Option) *jsast.Token {
	q := resolve(false, opts)
	arr := s.stream(q)
	i := sort.Search(len(arr), func(i int) bool {
		return arr[i].Range.Start >= offset
	})
	if i < len(arr) && arr[i].Range.Start == offset {
		return arr[i]
	}
	return nil
}

// CommentsBefore returns the comments directly preceding r in source order:
// the run of comments between r and the previous non-comment token.
func (s *Store) CommentsBefore(r jsast.Range) []*jsast.Comment {
	lastIdx := s.lastIndexBefore(s.merged, r.Start)

	var run []*jsast.Comment
	for i := lastIdx; i >= 0; i-- {
		if !s.merged[i].IsComment() {
			break
		}
		run = append(run, s.merged[i])
	}
	// Restore source order.
	for i, j := 0, len(run)-1; i < j; i, j = i+1, j-1 {
		run[i], run[j] = run[j], run[i]
	}
	return run
}

// TokenCount returns the number of tokens (comments excluded).
func (s *Store) TokenCount() int {
	return len(s.tokens)
}
