package diag

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrNoCause stands in for the cause of a diagnostic that wasn't triggered by a low-level failure.
var ErrNoCause = errors.New("no low-level cause")

// Error aborts a scan. It carries a diagnostic and the low-level failure that triggered it. Neither of them
// changes after construction.
type Error struct {
	Diagnostic Diagnostic
	Cause      error
}

func NewError(d Diagnostic, cause error) *Error {
	if cause == nil {
		cause = ErrNoCause
	}
	return &Error{
		Diagnostic: d,
		Cause:      cause,
	}
}

// Error implements error. The message is meant for logs; use a Renderer for user-facing text.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", formatPosition(e.Diagnostic), formatKind(e.Diagnostic))
}

// Unwrap implements [errors.Unwrap] interface.
func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatError implements [errors.Formatter].
func (e *Error) FormatError(p errors.Printer) error {
	p.Printf("%v: %v", formatPosition(e.Diagnostic), formatKind(e.Diagnostic))
	return e.Cause
}

func formatPosition(d Diagnostic) string {
	return fmt.Sprintf("%v:%v", displayLine(d.Line), displayColumn(d.Column))
}

func formatKind(d Diagnostic) string {
	if !d.HasText() {
		return string(d.Kind)
	}
	return fmt.Sprintf("%v %q", d.Kind, d.Text)
}
