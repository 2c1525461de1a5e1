package lexer

import (
	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/cursor"
	"github.com/nihei9/jqlex/diag"
)

// ErrorHelper turns a scan failure into a diagnostic. The kind of the snapshot decides how the helper recovers
// the position and the offending text of the failure.
//
// The helper expects the cursor to point to the code point the lexer failed on, without consuming it, or to
// be at the end of the input.
type ErrorHelper struct {
	c    *cursor.Cursor
	snap *Snapshot
}

// NewErrorHelper returns a helper for a cursor and an optional snapshot. A nil snapshot means the lexer
// failed outside any construct that has its own recovery rule.
func NewErrorHelper(c *cursor.Cursor, snap *Snapshot) (*ErrorHelper, error) {
	if c == nil {
		return nil, ErrNilCursor
	}
	h := &ErrorHelper{
		c: c,
	}
	if snap != nil {
		if snap.cursorID != c.ID() {
			return nil, errors.Wrapf(ErrForeignSnapshot, "%v", snap)
		}
		s := *snap
		h.snap = &s
	}
	return h, nil
}

// HandleError returns a *diag.Error wrapping cause. The returned error is never nil. When the cursor fails
// while the helper consults it, the cursor's error is returned as it is.
func (h *ErrorHelper) HandleError(cause error) error {
	d, err := h.diagnose()
	if err != nil {
		return err
	}
	if cause == nil && h.snap != nil && h.snap.kind == SnapshotReservedChar {
		cause = ErrReservedCharacter
	}
	return diag.NewError(d, cause)
}

func (h *ErrorHelper) diagnose() (diag.Diagnostic, error) {
	if h.snap == nil {
		return diag.GenericParseError(h.c.Line(), h.c.Col()), nil
	}

	switch h.snap.kind {
	case SnapshotEscape:
		return h.diagnoseEscape(), nil
	case SnapshotString:
		return h.diagnoseString(), nil
	case SnapshotErrorChar:
		return h.diagnoseErrorChar()
	case SnapshotReservedChar:
		return h.diagnoseReservedChar(), nil
	}
	return diag.Diagnostic{}, errors.Errorf("unknown snapshot kind: %v", h.snap.kind)
}

// diagnoseEscape reports the escape sequence from the backslash up to and including the code point the lexer
// failed on. The position is the one of the backslash.
func (h *ErrorHelper) diagnoseEscape() diag.Diagnostic {
	s := h.snap
	end := h.c.Index()
	if !h.c.AtEOF() {
		end++
	}
	// Only the backslash was read before EOF.
	if end-s.index <= 1 {
		return diag.IllegalEscape("", s.line, s.col)
	}
	return diag.IllegalEscape(h.c.Substring(s.index, end), s.line, s.col)
}

// diagnoseString reports an unclosed string at its opening quote, or an illegal code point inside the string
// at the code point itself.
func (h *ErrorHelper) diagnoseString() diag.Diagnostic {
	s := h.snap
	c := h.c.LA(1)
	switch c {
	case cursor.EOF, '\n':
		// The opening quote is not a part of the text.
		return diag.UnfinishedString(h.c.Substring(s.index+1, h.c.Index()), s.line, s.col)
	case cursor.Invalid:
		return diag.GenericParseError(h.c.Line(), h.c.Col())
	}
	return diag.IllegalCharacter(c, h.c.Line(), h.c.Col())
}

// diagnoseErrorChar classifies a code point that cannot begin any token by looking at it and the one
// following it.
func (h *ErrorHelper) diagnoseErrorChar() (diag.Diagnostic, error) {
	s := h.snap
	c0 := h.c.RuneAt(s.index)
	c1 := h.c.RuneAt(s.index + 1)
	switch {
	case isQuote(c0):
		switch {
		case c1 == cursor.EOF || c1 == '\n':
			return diag.UnfinishedString("", s.line, s.col), nil
		case isIllegalInString(c1):
			line, col, err := h.c.PositionAt(s.index + 1)
			if err != nil {
				return diag.Diagnostic{}, err
			}
			return diag.IllegalCharacter(c1, line, col), nil
		}
	case c0 == '\\':
		if c1 == cursor.EOF {
			return diag.IllegalEscape("", s.line, s.col), nil
		}
		return diag.IllegalEscape(h.c.Substring(s.index, s.index+2), s.line, s.col), nil
	case c0 == cursor.EOF || c0 == cursor.Invalid:
		return diag.GenericParseError(s.line, s.col), nil
	}
	return diag.IllegalCharacter(c0, s.line, s.col), nil
}

func (h *ErrorHelper) diagnoseReservedChar() diag.Diagnostic {
	s := h.snap
	c := h.c.RuneAt(s.index)
	if c < 0 {
		return diag.GenericParseError(s.line, s.col)
	}
	return diag.ReservedCharacter(c, s.line, s.col)
}
