package diag

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The blank variants are used when a diagnostic has no offending text.
const (
	msgGenericParseError     = "lex.generic"
	msgIllegalEscape         = "lex.illegal.escape"
	msgIllegalEscapeBlank    = "lex.illegal.escape.blank"
	msgUnfinishedString      = "lex.unfinished.string"
	msgUnfinishedStringBlank = "lex.unfinished.string.blank"
	msgIllegalCharacter      = "lex.illegal.character"
	msgReservedCharacter     = "lex.reserved.character"
)

// All messages take the line and the column as the first two arguments.
var messages = map[language.Tag]map[string]string{
	language.English: {
		msgGenericParseError:     "Error in the query at line %[1]s, character %[2]s.",
		msgIllegalEscape:         "The escape sequence '%[3]s' at line %[1]s, character %[2]s is not valid.",
		msgIllegalEscapeBlank:    "An incomplete escape sequence at line %[1]s, character %[2]s is not valid.",
		msgUnfinishedString:      "The quoted string '%[3]s' starting at line %[1]s, character %[2]s is not closed.",
		msgUnfinishedStringBlank: "The quoted string starting at line %[1]s, character %[2]s is not closed.",
		msgIllegalCharacter:      "The character '%[3]s' (%[4]s) at line %[1]s, character %[2]s is not allowed in a query.",
		msgReservedCharacter:     "The character '%[3]s' (%[4]s) at line %[1]s, character %[2]s is reserved. Put it in quotes to use it as a value.",
	},
	language.German: {
		msgGenericParseError:     "Fehler in der Abfrage in Zeile %[1]s, Zeichen %[2]s.",
		msgIllegalEscape:         "Die Escape-Sequenz '%[3]s' in Zeile %[1]s, Zeichen %[2]s ist ungültig.",
		msgIllegalEscapeBlank:    "Eine unvollständige Escape-Sequenz in Zeile %[1]s, Zeichen %[2]s ist ungültig.",
		msgUnfinishedString:      "Die Zeichenkette '%[3]s' ab Zeile %[1]s, Zeichen %[2]s ist nicht abgeschlossen.",
		msgUnfinishedStringBlank: "Die Zeichenkette ab Zeile %[1]s, Zeichen %[2]s ist nicht abgeschlossen.",
		msgIllegalCharacter:      "Das Zeichen '%[3]s' (%[4]s) in Zeile %[1]s, Zeichen %[2]s ist in einer Abfrage nicht erlaubt.",
		msgReservedCharacter:     "Das Zeichen '%[3]s' (%[4]s) in Zeile %[1]s, Zeichen %[2]s ist reserviert. Setzen Sie es in Anführungszeichen, um es als Wert zu verwenden.",
	},
}

var (
	msgCatalog   *catalog.Builder
	supported    []language.Tag
	localMatcher language.Matcher
)

func init() {
	msgCatalog = catalog.NewBuilder(catalog.Fallback(language.English))
	supported = []language.Tag{language.English, language.German}
	for _, tag := range supported {
		for key, msg := range messages[tag] {
			err := msgCatalog.SetString(tag, key, msg)
			if err != nil {
				panic(fmt.Errorf("invalid message %v (%v): %w", key, tag, err))
			}
		}
	}
	localMatcher = language.NewMatcher(supported)
}

// Renderer turns diagnostics into localized, user-facing messages.
type Renderer struct {
	tag language.Tag
	p   *message.Printer
}

// NewRenderer returns a renderer for the best supported match of a BCP 47 locale. Unknown or malformed
// locales fall back to English.
func NewRenderer(locale string) *Renderer {
	tag := language.English
	if t, err := language.Parse(locale); err == nil {
		_, i, conf := localMatcher.Match(t)
		if conf != language.No {
			tag = supported[i]
		}
	}
	return &Renderer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(msgCatalog)),
	}
}

// Language returns the language the renderer actually uses.
func (r *Renderer) Language() language.Tag {
	return r.tag
}

func (r *Renderer) Render(d Diagnostic) string {
	line := displayLine(d.Line)
	col := displayColumn(d.Column)
	switch d.Kind {
	case KindIllegalEscape:
		if !d.HasText() {
			return r.p.Sprintf(msgIllegalEscapeBlank, line, col)
		}
		return r.p.Sprintf(msgIllegalEscape, line, col, flattenText(d.Text))
	case KindUnfinishedString:
		if !d.HasText() {
			return r.p.Sprintf(msgUnfinishedStringBlank, line, col)
		}
		return r.p.Sprintf(msgUnfinishedString, line, col, flattenText(d.Text))
	case KindIllegalCharacter, KindReservedCharacter:
		key := msgIllegalCharacter
		if d.Kind == KindReservedCharacter {
			key = msgReservedCharacter
		}
		c, ok := d.Char()
		if !ok {
			return r.p.Sprintf(msgGenericParseError, line, col)
		}
		return r.p.Sprintf(key, line, col, DisplayChar(c), EscapeChar(c))
	default:
		return r.p.Sprintf(msgGenericParseError, line, col)
	}
}

func displayLine(line int) string {
	if line < 1 {
		return "?"
	}
	return fmt.Sprint(line)
}

// displayColumn converts a 0-based column into the 1-based one users see.
func displayColumn(col int) string {
	if col < 0 {
		return "?"
	}
	return fmt.Sprint(col + 1)
}

// flattenText replaces line breaks with spaces so that a message stays on one line.
func flattenText(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

// DisplayChar returns a readable form of a character: the character itself when it is visible, SPACE or TAB,
// or its code point.
func DisplayChar(c rune) string {
	switch {
	case c == ' ':
		return "SPACE"
	case c == '\t':
		return "TAB"
	case unicode.IsPrint(c) && !IsNonCharacter(c):
		return string(c)
	default:
		return fmt.Sprintf("U+%04X", c)
	}
}

// EscapeChar returns the escape sequence that denotes a character in a query.
func EscapeChar(c rune) string {
	switch c {
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\f':
		return `\f`
	case '\b':
		return `\b`
	}
	if c > 0xffff {
		return fmt.Sprintf(`\U%08x`, c)
	}
	return fmt.Sprintf(`\u%04x`, c)
}

// IsNonCharacter reports whether a code point is one of the Unicode noncharacters: U+FDD0..U+FDEF and the
// last two code points of every plane.
func IsNonCharacter(c rune) bool {
	if c >= 0xfdd0 && c <= 0xfdef {
		return true
	}
	return c >= 0 && c <= unicode.MaxRune && c&0xfffe == 0xfffe
}
