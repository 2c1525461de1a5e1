package cursor

import (
	"sort"
	"sync/atomic"
	"unicode/utf8"

	"github.com/go-faster/errors"
)

const (
	// EOF is returned by LA when the lookahead points outside the input.
	EOF rune = -1

	// Invalid is returned by LA for a byte that doesn't form a well-formed UTF-8 sequence.
	Invalid rune = -2
)

var ErrOutOfRange = errors.New("index out of range")

var lastID uint64

type state struct {
	index int
	line  int
	col   int
}

// Cursor is a seekable code point stream over an in-memory query string.
// Line numbers are 1-based and columns are 0-based. Columns are counted in code points, not bytes.
type Cursor struct {
	id    uint64
	src   []rune
	state state

	// lineStarts[n] is the index of the first code point of the line n+1.
	lineStarts []int
}

func New(src string) *Cursor {
	rs := make([]rune, 0, len(src))
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		if r == utf8.RuneError && size <= 1 {
			r = Invalid
		}
		rs = append(rs, r)
		i += size
	}

	lineStarts := []int{0}
	for i, r := range rs {
		// The cursor treats LF as the end of lines, the same as the lexer driver does.
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &Cursor{
		id:  atomic.AddUint64(&lastID, 1),
		src: rs,
		state: state{
			index: 0,
			line:  1,
			col:   0,
		},
		lineStarts: lineStarts,
	}
}

// ID returns an identity unique among all cursors created in the process.
func (c *Cursor) ID() uint64 {
	return c.id
}

func (c *Cursor) Index() int {
	return c.state.index
}

func (c *Cursor) Line() int {
	return c.state.line
}

func (c *Cursor) Col() int {
	return c.state.col
}

// Size returns the number of code points in the input.
func (c *Cursor) Size() int {
	return len(c.src)
}

func (c *Cursor) AtEOF() bool {
	return c.state.index >= len(c.src)
}

// LA returns a code point relative to the current position. LA(1) is the code point the cursor points to
// and LA(-1) is the one consumed last. LA(0) is undefined and returns EOF.
func (c *Cursor) LA(i int) rune {
	var p int
	switch {
	case i > 0:
		p = c.state.index + i - 1
	case i < 0:
		p = c.state.index + i
	default:
		return EOF
	}
	if p < 0 || p >= len(c.src) {
		return EOF
	}
	return c.src[p]
}

// RuneAt returns the code point at an absolute index, or EOF when the index is outside the input.
func (c *Cursor) RuneAt(index int) rune {
	if index < 0 || index >= len(c.src) {
		return EOF
	}
	return c.src[index]
}

// Consume advances the cursor by one code point. At the end of the input it does nothing.
func (c *Cursor) Consume() {
	if c.AtEOF() {
		return
	}
	if c.src[c.state.index] == '\n' {
		c.state.line++
		c.state.col = 0
	} else {
		c.state.col++
	}
	c.state.index++
}

// Seek moves the cursor to an absolute index. The index may equal Size, which means the end of the input.
func (c *Cursor) Seek(index int) error {
	line, col, err := c.PositionAt(index)
	if err != nil {
		return err
	}
	c.state = state{
		index: index,
		line:  line,
		col:   col,
	}
	return nil
}

// PositionAt returns the line and the column of an absolute index without moving the cursor.
func (c *Cursor) PositionAt(index int) (int, int, error) {
	if index < 0 || index > len(c.src) {
		return 0, 0, errors.Wrapf(ErrOutOfRange, "seek to %v (size %v)", index, len(c.src))
	}
	// The first line whose start is greater than the index is the next line of the one containing the index.
	n := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > index
	})
	return n, index - c.lineStarts[n-1], nil
}

// Substring returns the code points in [start, stop). The range is clamped to the input.
func (c *Cursor) Substring(start, stop int) string {
	if start < 0 {
		start = 0
	}
	if stop > len(c.src) {
		stop = len(c.src)
	}
	if start >= stop {
		return ""
	}
	rs := c.src[start:stop]
	b := make([]rune, len(rs))
	for i, r := range rs {
		if r == Invalid {
			r = utf8.RuneError
		}
		b[i] = r
	}
	return string(b)
}
