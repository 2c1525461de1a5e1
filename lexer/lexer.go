package lexer

import (
	"strings"

	"github.com/nihei9/jqlex/cursor"
)

// Lexer splits a query into tokens. When it runs into a lexical error, it returns a *diag.Error and the
// lexer must not be used any more.
type Lexer struct {
	c *cursor.Cursor
}

func New(src string) *Lexer {
	return &Lexer{
		c: cursor.New(src),
	}
}

// Tokenize returns all tokens of a query. The last token is always the EOF token.
func Tokenize(src string) ([]*Token, error) {
	l := New(src)
	var toks []*Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == TokenKindEOF {
			return toks, nil
		}
	}
}

// Next returns a next token.
func (l *Lexer) Next() (*Token, error) {
	l.skipWhitespaces()

	c := l.c.LA(1)
	line := l.c.Line()
	col := l.c.Col()
	switch {
	case c == cursor.EOF:
		return newEOFToken(line, col), nil
	case c == cursor.Invalid:
		return nil, l.fail(nil, newRecognitionError(c))
	case isQuote(c):
		// A quote that cannot even begin a string is diagnosed as a stray character.
		next := l.c.LA(2)
		if next == cursor.EOF || next == '\n' || isIllegalInString(next) {
			snap := NewSnapshot(SnapshotErrorChar, l.c)
			l.c.Consume()
			return nil, l.fail(&snap, newRecognitionError(next))
		}
		return l.lexString()
	case isOperator(c):
		return l.lexOperator(), nil
	case isReserved(c):
		snap := NewSnapshot(SnapshotReservedChar, l.c)
		return nil, l.fail(&snap, ErrReservedCharacter)
	case isIllegal(c):
		snap := NewSnapshot(SnapshotErrorChar, l.c)
		return nil, l.fail(&snap, newRecognitionError(c))
	case c == '\\' && !isEscapeIntroducer(l.c.LA(2)):
		snap := NewSnapshot(SnapshotErrorChar, l.c)
		l.c.Consume()
		return nil, l.fail(&snap, newRecognitionError(l.c.LA(1)))
	}
	return l.lexWord()
}

func (l *Lexer) skipWhitespaces() {
	for isWhitespace(l.c.LA(1)) {
		l.c.Consume()
	}
}

func (l *Lexer) lexOperator() *Token {
	line := l.c.Line()
	col := l.c.Col()
	c := l.c.LA(1)
	l.c.Consume()

	// Two-character operators
	next := l.c.LA(1)
	var kind TokenKind
	switch {
	case c == '!' && next == '=':
		kind = TokenKindNotEquals
	case c == '!' && next == '~':
		kind = TokenKindNotLike
	case c == '<' && next == '=':
		kind = TokenKindLTEquals
	case c == '>' && next == '=':
		kind = TokenKindGTEquals
	case c == '&' && next == '&':
		kind = TokenKindAmperAmp
	case c == '|' && next == '|':
		kind = TokenKindPipePipe
	}
	if kind != "" {
		l.c.Consume()
		return newSymbolToken(kind, line, col)
	}

	switch c {
	case '(':
		kind = TokenKindLParen
	case ')':
		kind = TokenKindRParen
	case '[':
		kind = TokenKindLBracket
	case ']':
		kind = TokenKindRBracket
	case ',':
		kind = TokenKindComma
	case '=':
		kind = TokenKindEquals
	case '~':
		kind = TokenKindLike
	case '<':
		kind = TokenKindLT
	case '>':
		kind = TokenKindGT
	case '!':
		kind = TokenKindBang
	case '&':
		kind = TokenKindAmper
	case '|':
		kind = TokenKindPipe
	}
	return newSymbolToken(kind, line, col)
}

func (l *Lexer) lexString() (*Token, error) {
	snap := NewSnapshot(SnapshotString, l.c)
	quote := l.c.LA(1)
	l.c.Consume()

	var b strings.Builder
	for {
		c := l.c.LA(1)
		switch {
		case c == quote:
			l.c.Consume()
			return newStringToken(b.String(), snap.Line(), snap.Col()), nil
		case c == cursor.EOF || c == '\n':
			return nil, l.fail(&snap, newRecognitionError(c))
		case c == cursor.Invalid:
			return nil, l.fail(nil, newRecognitionError(c))
		case isIllegalInString(c):
			return nil, l.fail(&snap, newRecognitionError(c))
		case c == '\\':
			r, err := l.lexEscape()
			if err != nil {
				return nil, err
			}
			b.WriteRune(r)
		default:
			b.WriteRune(c)
			l.c.Consume()
		}
	}
}

func (l *Lexer) lexWord() (*Token, error) {
	line := l.c.Line()
	col := l.c.Col()

	var b strings.Builder
	for {
		c := l.c.LA(1)
		if isWordTerminator(c) {
			break
		}
		if c == '\\' {
			r, err := l.lexEscape()
			if err != nil {
				return nil, err
			}
			b.WriteRune(r)
			continue
		}
		b.WriteRune(c)
		l.c.Consume()
	}
	return newWordToken(b.String(), line, col), nil
}

// lexEscape reads an escape sequence beginning with the backslash the cursor points to, and returns the
// character it denotes.
func (l *Lexer) lexEscape() (rune, error) {
	snap := NewSnapshot(SnapshotEscape, l.c)
	l.c.Consume()

	c := l.c.LA(1)
	if r, ok := escapeChars[c]; ok {
		l.c.Consume()
		return r, nil
	}
	if c != 'u' {
		return 0, l.fail(&snap, newRecognitionError(c))
	}
	l.c.Consume()

	// \uXXXX takes exactly four hex digits.
	var cp rune
	for i := 0; i < 4; i++ {
		c := l.c.LA(1)
		v, ok := hexValue(c)
		if !ok {
			return 0, l.fail(&snap, newRecognitionError(c))
		}
		cp = cp<<4 | v
		l.c.Consume()
	}
	return cp, nil
}

func (l *Lexer) fail(snap *Snapshot, cause error) error {
	h, err := NewErrorHelper(l.c, snap)
	if err != nil {
		return err
	}
	return h.HandleError(cause)
}
