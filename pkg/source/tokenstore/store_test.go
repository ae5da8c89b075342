package tokenstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/jsast"
)

// tok builds a test token.
func tok(typ jsast.TokenType, value string, start, end int) *jsast.Token {
	return &jsast.Token{Type: typ, Value: value, Range: jsast.Range{Start: start, End: end}}
}

// testStore models "var x = 1; /* note */ use(x);" with a comment between
// the two statements.
func testStore() (*Store, []*jsast.Token, []*jsast.Comment) {
	tokens := []*jsast.Token{
		tok(jsast.TokKeyword, "var", 0, 3),
		tok(jsast.TokIdentifier, "x", 4, 5),
		tok(jsast.TokPunctuator, "=", 6, 7),
		tok(jsast.TokNumeric, "1", 8, 9),
		tok(jsast.TokPunctuator, ";", 9, 10),
		tok(jsast.TokIdentifier, "use", 23, 26),
		tok(jsast.TokPunctuator, "(", 26, 27),
		tok(jsast.TokIdentifier, "x", 27, 28),
		tok(jsast.TokPunctuator, ")", 28, 29),
		tok(jsast.TokPunctuator, ";", 29, 30),
	}
	comments := []*jsast.Comment{
		tok(jsast.TokBlockComment, " note ", 11, 22),
	}
	return New(tokens, comments), tokens, comments
}

func TestFirstAndLastToken(t *testing.T) {
	store, tokens, comments := testStore()
	whole := jsast.Range{Start: 0, End: 30}

	assert.Same(t, tokens[0], store.FirstToken(whole))
	assert.Same(t, tokens[9], store.LastToken(whole))

	// Skip steps over matches after filtering.
	second := store.FirstToken(whole, WithSkip(1))
	assert.Same(t, tokens[1], second)

	// Comments only appear when asked for.
	inGap := store.FirstToken(jsast.Range{Start: 10, End: 23})
	assert.Nil(t, inGap)
	withComments := store.FirstToken(jsast.Range{Start: 10, End: 23}, IncludeComments())
	assert.Same(t, comments[0], withComments)
}

func TestTokenBeforeAfter(t *testing.T) {
	store, tokens, _ := testStore()

	assert.Same(t, tokens[1], store.TokenAfter(tokens[0].Range))
	assert.Same(t, tokens[0], store.TokenBefore(tokens[1].Range))
	assert.Nil(t, store.TokenBefore(tokens[0].Range))
	assert.Nil(t, store.TokenAfter(tokens[9].Range))
}

// tokenAfter(tokenBefore(x)) must return x for every interior token.
func TestTokenStoreMonotonicity(t *testing.T) {
	store, tokens, _ := testStore()

	for i := 1; i < len(tokens); i++ {
		before := store.TokenBefore(tokens[i].Range)
		require.NotNil(t, before, "token %d", i)
		back := store.TokenAfter(before.Range)
		assert.Same(t, tokens[i], back, "token %d", i)
	}
}

func TestTokensBetween(t *testing.T) {
	store, tokens, _ := testStore()

	between := store.TokensBetween(tokens[0].Range, tokens[4].Range)
	require.Len(t, between, 3)
	assert.Same(t, tokens[1], between[0])
	assert.Same(t, tokens[3], between[2])

	// Exactly the tokens fully between the bounds, per the contract.
	for _, got := range between {
		assert.GreaterOrEqual(t, got.Range.Start, tokens[0].Range.End)
		assert.LessOrEqual(t, got.Range.End, tokens[4].Range.Start)
	}

	assert.Empty(t, store.TokensBetween(tokens[3].Range, tokens[4].Range))
}

func TestTokensWithOptions(t *testing.T) {
	store, tokens, _ := testStore()
	whole := jsast.Range{Start: 0, End: 30}

	identifiers := store.Tokens(whole, WithFilter(func(t *jsast.Token) bool {
		return t.Type == jsast.TokIdentifier
	}))
	require.Len(t, identifiers, 3)

	// Filter applies before skip and count, in that fixed order.
	limited := store.Tokens(whole,
		WithFilter(func(t *jsast.Token) bool { return t.Type == jsast.TokIdentifier }),
		WithSkip(1),
		WithCount(1))
	require.Len(t, limited, 1)
	assert.Same(t, tokens[5], limited[0])

	// Negative count means no limit.
	all := store.Tokens(whole, WithCount(-1))
	assert.Len(t, all, 10)
}

func TestTokensBeforeAfterLists(t *testing.T) {
	store, tokens, _ := testStore()

	before := store.TokensBefore(tokens[3].Range, WithCount(2))
	require.Len(t, before, 2)
	// Closest first.
	assert.Same(t, tokens[2], before[0])
	assert.Same(t, tokens[1], before[1])

	after := store.TokensAfter(tokens[3].Range, WithCount(2))
	require.Len(t, after, 2)
	assert.Same(t, tokens[4], after[0])
	assert.Same(t, tokens[5], after[1])
}

func TestFirstTokenBetween(t *testing.T) {
	store, tokens, comments := testStore()

	got := store.FirstTokenBetween(tokens[4].Range, tokens[6].Range)
	assert.Same(t, tokens[5], got)

	withComments := store.FirstTokenBetween(tokens[4].Range, tokens[6].Range, IncludeComments())
	assert.Same(t, comments[0], withComments)

	last := store.LastTokenBetween(tokens[0].Range, tokens[4].Range)
	assert.Same(t, tokens[3], last)
}

func TestTokenByRangeStart(t *testing.T) {
	store, tokens, comments := testStore()

	assert.Same(t, tokens[3], store.TokenByRangeStart(8))
	assert.Nil(t, store.TokenByRangeStart(5))

	// Comments are only found on the merged stream.
	assert.Nil(t, store.TokenByRangeStart(11))
	assert.Same(t, comments[0], store.TokenByRangeStart(11, IncludeComments()))
}

func TestCommentsBefore(t *testing.T) {
	store, tokens, comments := testStore()

	got := store.CommentsBefore(tokens[5].Range)
	require.Len(t, got, 1)
	assert.Same(t, comments[0], got[0])

	assert.Empty(t, store.CommentsBefore(tokens[1].Range))
}

func TestEmptyStore(t *testing.T) {
	store := New(nil, nil)
	whole := jsast.Range{Start: 0, End: 100}

	assert.Nil(t, store.FirstToken(whole))
	assert.Nil(t, store.LastToken(whole))
	assert.Empty(t, store.Tokens(whole))
	assert.Equal(t, 0, store.TokenCount())
}
