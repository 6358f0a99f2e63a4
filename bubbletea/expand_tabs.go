package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// tabWidth is the distance between tab stops.
const tabWidth = 8

// ExpandTabs replaces tabs in s with spaces up to the next tab stop. col is
// the screen column s starts at, so a line split into several tokens keeps
// its alignment.
func ExpandTabs(s string, col int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}

	var sb strings.Builder
	for _, r := range s {
		if r != '\t' {
			sb.WriteRune(r)
			col += ansi.StringWidth(string(r))
			continue
		}
		n := tabWidth - col%tabWidth
		sb.WriteString(strings.Repeat(" ", n))
		col += n
	}
	return sb.String()
}
