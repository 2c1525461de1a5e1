package lexer

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/nihei9/jqlex/cursor"
	"github.com/nihei9/jqlex/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scenario describes the state of a lexer at the moment it fails: a snapshot taken at snapIndex (no snapshot
// when snapKind is 0) and a cursor moved to failIndex afterwards.
type scenario struct {
	caption   string
	src       string
	snapKind  SnapshotKind
	snapIndex int
	failIndex int
	expected  diag.Diagnostic
}

func (s scenario) run(t *testing.T) (*diag.Error, error) {
	t.Helper()

	c := cursor.New(s.src)
	var snap *Snapshot
	if s.snapKind != 0 {
		require.NoError(t, c.Seek(s.snapIndex))
		sn := NewSnapshot(s.snapKind, c)
		snap = &sn
	}
	require.NoError(t, c.Seek(s.failIndex))

	h, err := NewErrorHelper(c, snap)
	require.NoError(t, err)

	cause := errors.New("low-level failure")
	err = h.HandleError(cause)
	require.Error(t, err)

	var dErr *diag.Error
	require.True(t, errors.As(err, &dErr), "unexpected error: %v", err)
	assert.Same(t, cause, dErr.Cause)
	return dErr, cause
}

func TestErrorHelper_HandleError(t *testing.T) {
	tests := []scenario{
		{
			caption:   "without a snapshot, the error is generic and reported at the cursor",
			src:       "abc\ndef",
			failIndex: 6,
			expected:  diag.GenericParseError(2, 2),
		},
		{
			caption:   "an escape truncated by EOF has no text and is reported at the backslash",
			src:       `this\`,
			snapKind:  SnapshotEscape,
			snapIndex: 4,
			failIndex: 5,
			expected:  diag.IllegalEscape("", 1, 4),
		},
		{
			caption:   "an illegal escape carries the backslash and the offending character",
			src:       `this\n`,
			snapKind:  SnapshotEscape,
			snapIndex: 4,
			failIndex: 5,
			expected:  diag.IllegalEscape(`\n`, 1, 4),
		},
		{
			caption:   "an illegal code point escape carries the digits read so far",
			src:       `test = case\u278qzzzz`,
			snapKind:  SnapshotEscape,
			snapIndex: 11,
			failIndex: 16,
			expected:  diag.IllegalEscape(`\u278q`, 1, 11),
		},
		{
			caption:   "a code point escape truncated by EOF carries the digits read so far",
			src:       `test = case\u27`,
			snapKind:  SnapshotEscape,
			snapIndex: 11,
			failIndex: 15,
			expected:  diag.IllegalEscape(`\u27`, 1, 11),
		},
		{
			caption:   "an escape on a later line is reported at the backslash",
			src:       "a = b\nc = d\\k",
			snapKind:  SnapshotEscape,
			snapIndex: 11,
			failIndex: 12,
			expected:  diag.IllegalEscape(`\k`, 2, 5),
		},
		{
			caption:   "a string closed by EOF carries its content and is reported at the quote",
			src:       "what = hrejw'ewjrhejkw",
			snapKind:  SnapshotString,
			snapIndex: 12,
			failIndex: 22,
			expected:  diag.UnfinishedString("ewjrhejkw", 1, 12),
		},
		{
			caption:   "a string closed by a newline is reported at the quote",
			src:       "a = b and\nc = \"some text\nmore",
			snapKind:  SnapshotString,
			snapIndex: 14,
			failIndex: 24,
			expected:  diag.UnfinishedString("some text", 2, 4),
		},
		{
			caption:   "an empty string closed by EOF has no text",
			src:       `comment="`,
			snapKind:  SnapshotString,
			snapIndex: 8,
			failIndex: 9,
			expected:  diag.UnfinishedString("", 1, 8),
		},
		{
			caption:   "an illegal character in a string is reported at the character",
			src:       "control\n = 'char\u0002'",
			snapKind:  SnapshotString,
			snapIndex: 11,
			failIndex: 16,
			expected:  diag.IllegalCharacter('\u0002', 2, 8),
		},
		{
			caption:   "a quote followed by EOF is an unfinished string without text",
			src:       `comment="`,
			snapKind:  SnapshotErrorChar,
			snapIndex: 8,
			failIndex: 9,
			expected:  diag.UnfinishedString("", 1, 8),
		},
		{
			caption:   "a quote followed by a newline is an unfinished string without text",
			src:       "a = '\nb",
			snapKind:  SnapshotErrorChar,
			snapIndex: 4,
			failIndex: 5,
			expected:  diag.UnfinishedString("", 1, 4),
		},
		{
			caption:   "a quote followed by an illegal character is reported at the character",
			src:       "\"\u001f\"",
			snapKind:  SnapshotErrorChar,
			snapIndex: 0,
			failIndex: 1,
			expected:  diag.IllegalCharacter('\u001f', 1, 1),
		},
		{
			caption:   "a backslash followed by EOF is an illegal escape without text",
			src:       `\`,
			snapKind:  SnapshotErrorChar,
			snapIndex: 0,
			failIndex: 1,
			expected:  diag.IllegalEscape("", 1, 0),
		},
		{
			caption:   "a backslash followed by a character is an illegal escape of two characters",
			src:       `a = \k`,
			snapKind:  SnapshotErrorChar,
			snapIndex: 4,
			failIndex: 5,
			expected:  diag.IllegalEscape(`\k`, 1, 4),
		},
		{
			caption:   "any other character is illegal at its own position",
			src:       "aa = bb order by \u0001",
			snapKind:  SnapshotErrorChar,
			snapIndex: 17,
			failIndex: 17,
			expected:  diag.IllegalCharacter('\u0001', 1, 17),
		},
		{
			caption:   "a bare noncharacter is illegal at its own position",
			src:       "c = q\uffff",
			snapKind:  SnapshotErrorChar,
			snapIndex: 5,
			failIndex: 5,
			expected:  diag.IllegalCharacter('\uffff', 1, 5),
		},
		{
			caption:   "a reserved character is reported at its own position",
			src:       "f\n = \n \n abc *",
			snapKind:  SnapshotReservedChar,
			snapIndex: 13,
			failIndex: 13,
			expected:  diag.ReservedCharacter('*', 4, 5),
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			dErr, _ := tt.run(t)
			assert.Equal(t, tt.expected, dErr.Diagnostic)
		})
	}
}

func TestErrorHelper_ReservedCharacterWithoutCause(t *testing.T) {
	c := cursor.New("bbain = #")
	require.NoError(t, c.Seek(8))
	snap := NewSnapshot(SnapshotReservedChar, c)
	h, err := NewErrorHelper(c, &snap)
	require.NoError(t, err)

	err = h.HandleError(nil)
	var dErr *diag.Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, diag.ReservedCharacter('#', 1, 8), dErr.Diagnostic)
	assert.Same(t, ErrReservedCharacter, dErr.Cause)
}

func TestErrorHelper_GenericWithoutCause(t *testing.T) {
	h, err := NewErrorHelper(cursor.New("abc"), nil)
	require.NoError(t, err)

	err = h.HandleError(nil)
	var dErr *diag.Error
	require.True(t, errors.As(err, &dErr))
	assert.Equal(t, diag.GenericParseError(1, 0), dErr.Diagnostic)
	assert.NotNil(t, dErr.Cause)
}

func TestNewErrorHelper(t *testing.T) {
	c1 := cursor.New("abc")
	c2 := cursor.New("abc")
	snap := NewSnapshot(SnapshotString, c1)

	_, err := NewErrorHelper(nil, nil)
	assert.True(t, errors.Is(err, ErrNilCursor))

	_, err = NewErrorHelper(nil, &snap)
	assert.True(t, errors.Is(err, ErrNilCursor))

	_, err = NewErrorHelper(c2, &snap)
	assert.True(t, errors.Is(err, ErrForeignSnapshot))

	_, err = NewErrorHelper(c1, &snap)
	assert.NoError(t, err)
}

func TestErrorHelper_UnknownSnapshotKind(t *testing.T) {
	c := cursor.New("abc")
	snap := NewSnapshot(SnapshotKind(99), c)
	h, err := NewErrorHelper(c, &snap)
	require.NoError(t, err)

	err = h.HandleError(errors.New("failure"))
	var dErr *diag.Error
	assert.False(t, errors.As(err, &dErr))
	assert.Error(t, err)
}

func TestErrorHelper_KeepsItsOwnSnapshot(t *testing.T) {
	c := cursor.New(`this\`)
	require.NoError(t, c.Seek(4))
	snap := NewSnapshot(SnapshotEscape, c)
	c.Consume()

	h, err := NewErrorHelper(c, &snap)
	require.NoError(t, err)

	// Overwriting the caller's variable must not affect the helper.
	snap = NewSnapshot(SnapshotReservedChar, c)

	var dErr *diag.Error
	require.True(t, errors.As(h.HandleError(errors.New("eof")), &dErr))
	assert.Equal(t, diag.IllegalEscape("", 1, 4), dErr.Diagnostic)
}
