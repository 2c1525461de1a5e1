package lexer

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/cursor"
)

var (
	// programming errors
	ErrNilCursor       = errors.New("a cursor must not be nil")
	ErrForeignSnapshot = errors.New("a snapshot must be taken on the cursor it is handed with")

	// ErrReservedCharacter is the cause of a reserved-character diagnostic. A reserved character is rejected
	// deliberately, so no scan failure stands behind it.
	ErrReservedCharacter = errors.New("reserved character")
)

type recognitionReason string

const (
	reasonUnexpectedEOF     = recognitionReason("unexpected EOF")
	reasonUnexpectedNewline = recognitionReason("unexpected newline")
	reasonUnexpectedChar    = recognitionReason("unexpected character")
	reasonMalformedEncoding = recognitionReason("malformed UTF-8 sequence")
)

// RecognitionError is the low-level failure the lexer runs into. It doesn't carry a position; the error helper
// works it out from the cursor and the snapshot.
type RecognitionError struct {
	Reason string
	Char   rune
}

func newRecognitionError(c rune) *RecognitionError {
	var reason recognitionReason
	switch {
	case c == cursor.EOF:
		reason = reasonUnexpectedEOF
	case c == cursor.Invalid:
		reason = reasonMalformedEncoding
	case c == '\n':
		reason = reasonUnexpectedNewline
	default:
		reason = reasonUnexpectedChar
	}
	return &RecognitionError{
		Reason: string(reason),
		Char:   c,
	}
}

func (e *RecognitionError) Error() string {
	if e.Char < 0 {
		return e.Reason
	}
	return fmt.Sprintf("%v %U", e.Reason, e.Char)
}
