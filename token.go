package diffreview

import (
	"strings"
	"unicode"
)

// Side selects the old or the new rendering of a diff.
type Side int

// Diff sides.
const (
	SideOld Side = iota
	SideNew
)

// TokenKind tags a token with the annotation that produced it.
type TokenKind int

// Token kinds. Values outside this set are rendered as plain text.
const (
	TokenText       TokenKind = iota // Plain line content
	TokenEdit                        // Edited sub-range of a changed line
	TokenWhitespace                  // Leading or trailing whitespace run
)

// String returns the kind name.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenEdit:
		return "edit"
	case TokenWhitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// Token is a span of a rendered line. Leaves carry Text; annotation nodes
// carry Children covering the annotated span.
type Token struct {
	Kind     TokenKind
	Text     string  // Leaf text, empty for annotation nodes
	Style    Style   // Syntax style for leaves (zero when highlighting is off)
	Children []Token // Nested tokens for annotation nodes
}

// Content returns the text covered by the token.
func (t Token) Content() string {
	if len(t.Children) == 0 {
		return t.Text
	}
	var sb strings.Builder
	for _, c := range t.Children {
		sb.WriteString(c.Content())
	}
	return sb.String()
}

// Range describes a span of characters within one line of one side of a diff.
// Start and Length are byte offsets into the line content.
type Range struct {
	Kind       TokenKind
	LineNumber int
	Start      int
	Length     int
	Value      string
}

// End returns the offset just past the range.
func (r Range) End() int {
	return r.Start + r.Length
}

// IsSpace reports whether r is line whitespace: the Unicode space
// separators, tab, line and page breaks, and the byte order mark. U+0085 is
// not whitespace.
func IsSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}

// Enhancer contributes annotation ranges to the old and new sides of a
// tokenized diff. Enhancers are applied in order.
type Enhancer interface {
	Ranges() (oldRanges, newRanges []Range)
}

// ViewStyle selects how changes are laid out.
type ViewStyle int

// View styles.
const (
	ViewUnified ViewStyle = iota
	ViewSplit
)

// String returns the view style name.
func (v ViewStyle) String() string {
	if v == ViewSplit {
		return "split"
	}
	return "unified"
}

// ParseViewStyle parses "unified" or "split".
func ParseViewStyle(s string) (ViewStyle, bool) {
	switch s {
	case "unified":
		return ViewUnified, true
	case "split":
		return ViewSplit, true
	}
	return ViewUnified, false
}
