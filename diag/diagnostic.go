package diag

import "strings"

type Kind string

const (
	KindGenericParseError = Kind("generic-parse-error")
	KindIllegalEscape     = Kind("illegal-escape")
	KindUnfinishedString  = Kind("unfinished-string")
	KindIllegalCharacter  = Kind("illegal-character")
	KindReservedCharacter = Kind("reserved-character")
)

// Unknown is stored in Line or Column when the position is not known.
const Unknown = -1

// Diagnostic is a structured description of one lexical failure. Line is 1-based and Column is 0-based.
// An empty Text means no offending text was captured. Diagnostics are comparable with ==.
type Diagnostic struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

func GenericParseError(line, col int) Diagnostic {
	return newDiagnostic(KindGenericParseError, "", line, col)
}

// IllegalEscape reports an escape sequence that the lexer cannot interpret. A blank text means the input
// ended right after the backslash.
func IllegalEscape(text string, line, col int) Diagnostic {
	return newDiagnostic(KindIllegalEscape, blankToEmpty(text), line, col)
}

// UnfinishedString reports a quoted string that was never closed. The text is what was collected between
// the opening quote and the point of failure, and the position is the one of the opening quote.
func UnfinishedString(text string, line, col int) Diagnostic {
	return newDiagnostic(KindUnfinishedString, blankToEmpty(text), line, col)
}

func IllegalCharacter(c rune, line, col int) Diagnostic {
	return newDiagnostic(KindIllegalCharacter, string(c), line, col)
}

func ReservedCharacter(c rune, line, col int) Diagnostic {
	return newDiagnostic(KindReservedCharacter, string(c), line, col)
}

func newDiagnostic(kind Kind, text string, line, col int) Diagnostic {
	if line < 1 {
		line = Unknown
	}
	if col < 0 {
		col = Unknown
	}
	return Diagnostic{
		Kind:   kind,
		Line:   line,
		Column: col,
		Text:   text,
	}
}

func blankToEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func (d Diagnostic) HasText() bool {
	return d.Text != ""
}

// Char returns the offending character of an illegal-character or a reserved-character diagnostic.
func (d Diagnostic) Char() (rune, bool) {
	if d.Kind != KindIllegalCharacter && d.Kind != KindReservedCharacter {
		return 0, false
	}
	for _, c := range d.Text {
		return c, true
	}
	return 0, false
}

func (d Diagnostic) HasPosition() bool {
	return d.Line != Unknown && d.Column != Unknown
}
