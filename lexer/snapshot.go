package lexer

import (
	"fmt"

	"github.com/nihei9/jqlex/cursor"
)

// SnapshotKind identifies the construct the lexer was scanning when it took a snapshot.
type SnapshotKind int

const (
	SnapshotString SnapshotKind = iota + 1
	SnapshotEscape
	SnapshotErrorChar
	SnapshotReservedChar
)

func (k SnapshotKind) String() string {
	switch k {
	case SnapshotString:
		return "string"
	case SnapshotEscape:
		return "escape"
	case SnapshotErrorChar:
		return "error char"
	case SnapshotReservedChar:
		return "reserved char"
	}
	return fmt.Sprintf("SnapshotKind(%d)", int(k))
}

// Snapshot records where a cursor was when the lexer began scanning a construct. It copies the position out of
// the cursor, so it keeps reporting the same position however the cursor moves afterwards.
type Snapshot struct {
	kind     SnapshotKind
	index    int
	line     int
	col      int
	cursorID uint64
}

func NewSnapshot(kind SnapshotKind, c *cursor.Cursor) Snapshot {
	return Snapshot{
		kind:     kind,
		index:    c.Index(),
		line:     c.Line(),
		col:      c.Col(),
		cursorID: c.ID(),
	}
}

func (s Snapshot) Kind() SnapshotKind {
	return s.kind
}

func (s Snapshot) Index() int {
	return s.index
}

func (s Snapshot) Line() int {
	return s.line
}

func (s Snapshot) Col() int {
	return s.col
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%v@%v:%v", s.kind, s.line, s.col+1)
}
