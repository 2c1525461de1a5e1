package lexer

import "fmt"

type TokenKind string

const (
	TokenKindLParen    = TokenKind("(")
	TokenKindRParen    = TokenKind(")")
	TokenKindComma     = TokenKind(",")
	TokenKindLBracket  = TokenKind("[")
	TokenKindRBracket  = TokenKind("]")
	TokenKindEquals    = TokenKind("=")
	TokenKindNotEquals = TokenKind("!=")
	TokenKindLike      = TokenKind("~")
	TokenKindNotLike   = TokenKind("!~")
	TokenKindLT        = TokenKind("<")
	TokenKindLTEquals  = TokenKind("<=")
	TokenKindGT        = TokenKind(">")
	TokenKindGTEquals  = TokenKind(">=")
	TokenKindBang      = TokenKind("!")
	TokenKindAmper     = TokenKind("&")
	TokenKindAmperAmp  = TokenKind("&&")
	TokenKindPipe      = TokenKind("|")
	TokenKindPipePipe  = TokenKind("||")
	TokenKindString    = TokenKind("string")
	TokenKindWord      = TokenKind("word")
	TokenKindEOF       = TokenKind("eof")
)

// Token is a lexeme of a query. Text holds the decoded value of strings and words. Line is 1-based and Col
// is 0-based.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text,omitempty"`
	Line int       `json:"line"`
	Col  int       `json:"column"`
}

func newSymbolToken(kind TokenKind, line, col int) *Token {
	return &Token{
		Kind: kind,
		Line: line,
		Col:  col,
	}
}

func newStringToken(text string, line, col int) *Token {
	return &Token{
		Kind: TokenKindString,
		Text: text,
		Line: line,
		Col:  col,
	}
}

func newWordToken(text string, line, col int) *Token {
	return &Token{
		Kind: TokenKindWord,
		Text: text,
		Line: line,
		Col:  col,
	}
}

func newEOFToken(line, col int) *Token {
	return &Token{
		Kind: TokenKindEOF,
		Line: line,
		Col:  col,
	}
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenKindString, TokenKindWord:
		return fmt.Sprintf("%v:%v %v %q", t.Line, t.Col+1, t.Kind, t.Text)
	default:
		return fmt.Sprintf("%v:%v %v", t.Line, t.Col+1, t.Kind)
	}
}
