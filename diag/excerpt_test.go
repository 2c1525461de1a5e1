package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		d        Diagnostic
		expected string
	}{
		{
			caption:  "the caret points to the column",
			src:      "bbain = #",
			d:        ReservedCharacter('#', 1, 8),
			expected: "    bbain = #\n            ^",
		},
		{
			caption:  "only the line of the diagnostic is shown",
			src:      "f\n = \n \n abc *",
			d:        ReservedCharacter('*', 4, 5),
			expected: "     abc *\n         ^",
		},
		{
			caption:  "control characters are blanked",
			src:      "c = q\uffff",
			d:        IllegalCharacter('\uffff', 1, 5),
			expected: "    c = q \n         ^",
		},
		{
			caption:  "a position at the end of the input is shown",
			src:      "priority = \"",
			d:        UnfinishedString("", 1, 11),
			expected: "    priority = \"\n               ^",
		},
		{
			caption:  "an unknown position has no excerpt",
			src:      "abc",
			d:        GenericParseError(-1, -1),
			expected: "",
		},
		{
			caption:  "a line outside the source has no excerpt",
			src:      "abc",
			d:        GenericParseError(3, 0),
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.expected, Excerpt(tt.src, tt.d))
		})
	}
}
