package jsonl

import (
	"strings"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.WidgetProvider = (*Comments)(nil)

// Comments serves loaded comments as widgets.
type Comments struct {
	byPath map[string][]Comment
}

// NewComments indexes comments by file path.
func NewComments(comments []Comment) *Comments {
	byPath := make(map[string][]Comment)
	for _, c := range comments {
		byPath[c.Path] = append(byPath[c.Path], c)
	}
	return &Comments{byPath: byPath}
}

// Widgets returns the comments on the file at newPath that apply to the
// given versions, keyed by change key. Several comments on one change are
// joined with newlines in file order.
func (c *Comments) Widgets(newPath, fromVersion, toVersion string) map[string]string {
	widgets := make(map[string]string)
	for _, comment := range c.byPath[strings.TrimPrefix(newPath, "b/")] {
		if !matchesVersion(comment.From, fromVersion) || !matchesVersion(comment.To, toVersion) {
			continue
		}
		if prev, ok := widgets[comment.Change]; ok {
			widgets[comment.Change] = prev + "\n" + comment.Text
			continue
		}
		widgets[comment.Change] = comment.Text
	}
	return widgets
}

// Len returns the number of loaded comments.
func (c *Comments) Len() int {
	n := 0
	for _, comments := range c.byPath {
		n += len(comments)
	}
	return n
}

func matchesVersion(want, got string) bool {
	return want == "" || want == got
}
