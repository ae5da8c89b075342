package jsast

// TokenType classifies a token or comment in the source text.
type TokenType string

// Token types follow the parser contract. The comment types (Line, Block,
// Shebang) share the Token shape so the token store can merge both streams.
const (
	TokIdentifier        TokenType = "Identifier"
	TokPrivateIdentifier TokenType = "PrivateIdentifier"
	TokKeyword           TokenType = "Keyword"
	TokPunctuator        TokenType = "Punctuator"
	TokNumeric           TokenType = "Numeric"
	TokString            TokenType = "String"
	TokBoolean           TokenType = "Boolean"
	TokNull              TokenType = "Null"
	TokRegExp            TokenType = "RegularExpression"
	TokTemplate          TokenType = "Template"

	TokLineComment  TokenType = "Line"
	TokBlockComment TokenType = "Block"
	TokShebang      TokenType = "Shebang"
)

// Token represents a single token or comment.
// Tokens within each stream are sorted by Range.Start and never overlap.
type Token struct {
	// Type classifies the token.
	Type TokenType

	// Value is the token text. For comments this is the comment body
	// without the delimiters.
	Value string

	// Range is the byte span of the token, delimiters included.
	Range Range

	// Loc is the line/column span of the token.
	Loc SourceLocation
}

// Comment is a comment in the source text. Comments share the Token shape;
// Type is one of Line, Block, or Shebang.
type Comment = Token

// IsComment returns true if the token is a comment.
func (t *Token) IsComment() bool {
	if t == nil {
		return false
	}
	switch t.Type {
	case TokLineComment, TokBlockComment, TokShebang:
		return true
	default:
		return false
	}
}
