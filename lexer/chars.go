package lexer

import (
	"strings"

	"github.com/nihei9/jqlex/cursor"
	"github.com/nihei9/jqlex/diag"
)

// Characters that are reserved but not used by the query language. They are accepted only in quotes.
const reservedChars = "{}*/%+^$#@?;"

// Characters that start an operator or a punctuation token.
const operatorChars = "()[],=~<>!&|"

func isQuote(c rune) bool {
	return c == '"' || c == '\''
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isReserved(c rune) bool {
	return c >= 0 && strings.ContainsRune(reservedChars, c)
}

func isOperator(c rune) bool {
	return c >= 0 && strings.ContainsRune(operatorChars, c)
}

// isIllegal reports whether a code point may not appear outside quotes. C0 controls other than the whitespace
// characters and the Unicode noncharacters are illegal.
func isIllegal(c rune) bool {
	if c < 0 {
		return false
	}
	if c < 0x20 {
		return !isWhitespace(c)
	}
	return diag.IsNonCharacter(c)
}

// isIllegalInString reports whether a code point may not appear in a quoted string. In addition to the
// characters illegal outside quotes, a tab is illegal. CR and LF are not illegal; LF terminates the string
// instead.
func isIllegalInString(c rune) bool {
	if c == '\t' {
		return true
	}
	return isIllegal(c)
}

// isWordTerminator reports whether a code point ends an unquoted word.
func isWordTerminator(c rune) bool {
	return c == cursor.EOF || c == cursor.Invalid || isWhitespace(c) || isQuote(c) || isOperator(c) || isReserved(c) || isIllegal(c)
}

// escapeChars maps the character following a backslash to the character the escape sequence denotes.
// The code point escape \uXXXX is handled separately.
var escapeChars = map[rune]rune{
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	' ':  ' ',
}

func isEscapeIntroducer(c rune) bool {
	if c == 'u' {
		return true
	}
	_, ok := escapeChars[c]
	return ok
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
