package diag

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Excerpt returns the source line a diagnostic points to, followed by a line with a caret under the column.
// It returns an empty string when the position is unknown or outside the source.
func Excerpt(src string, d Diagnostic) string {
	if !d.HasPosition() {
		return ""
	}

	line, ok := readLine(src, d.Line)
	if !ok {
		return ""
	}
	if d.Column > utf8.RuneCountInString(line) {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "    %v\n", expandControls(line))
	fmt.Fprintf(&b, "    %v^", strings.Repeat(" ", d.Column))
	return b.String()
}

func readLine(src string, row int) (string, bool) {
	i := 1
	s := bufio.NewScanner(strings.NewReader(src))
	s.Split(scanLFLines)
	for s.Scan() {
		if i == row {
			return s.Text(), true
		}
		i++
	}
	// A source ending with LF has an empty last line, and an unclosed string may be reported there.
	if i == row && (src == "" || strings.HasSuffix(src, "\n")) {
		return "", true
	}
	return "", false
}

// scanLFLines splits lines on LF only so that line numbers agree with the cursor. CR is kept in the line.
func scanLFLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// expandControls replaces every non-printable character with a single space so that the caret stays aligned
// with code point columns.
func expandControls(line string) string {
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || r < 0x20 || r == 0x7f || IsNonCharacter(r) {
			return ' '
		}
		return r
	}, line)
}
