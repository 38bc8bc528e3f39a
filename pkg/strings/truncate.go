package strings

import (
	"strings"
)

// DefaultMessageMaxLen is the width failure messages are cut to in tables.
const DefaultMessageMaxLen = 60

// MinTruncateLen leaves room for one character plus "...".
const MinTruncateLen = 4

// Truncate flattens s to a single line and cuts it to maxLen runes, marking
// the cut with "...". Runs of whitespace, line breaks included, collapse to
// one space. maxLen is clamped to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// TruncateMessage cuts a failure message to DefaultMessageMaxLen.
func TruncateMessage(s string) string {
	return Truncate(s, DefaultMessageMaxLen)
}
