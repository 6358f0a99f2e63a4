package tokenize

import "github.com/fwojciec/diffreview"

// node is an annotation applied to a contiguous run of leaves.
// The id is unique within a line.
type node struct {
	kind diffreview.TokenKind
	id   int
}

// leaf is a span of line content with the annotations enclosing it,
// outermost first.
type leaf struct {
	start, end int
	style      diffreview.Style
	path       []node
}

// lineState accumulates annotations for a single line.
type lineState struct {
	content string
	leaves  []leaf
	nextID  int
}

func newLineState(content string, initial []diffreview.Token) *lineState {
	s := &lineState{content: content}
	if content == "" {
		return s
	}
	if len(initial) == 0 {
		s.leaves = []leaf{{start: 0, end: len(content)}}
		return s
	}
	offset := 0
	for _, tok := range initial {
		if tok.Text == "" {
			continue
		}
		s.leaves = append(s.leaves, leaf{
			start: offset,
			end:   offset + len(tok.Text),
			style: tok.Style,
		})
		offset += len(tok.Text)
	}
	return s
}

// wrap encloses [start, end) in a new node of the given kind.
// The range is clamped to the line content; empty ranges are ignored.
func (s *lineState) wrap(kind diffreview.TokenKind, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(s.content) {
		end = len(s.content)
	}
	if start >= end {
		return
	}

	s.splitAt(start)
	s.splitAt(end)

	n := node{kind: kind, id: s.nextID}
	s.nextID++
	for i := range s.leaves {
		lf := &s.leaves[i]
		if lf.start >= start && lf.end <= end {
			path := make([]node, 0, len(lf.path)+1)
			path = append(path, n)
			lf.path = append(path, lf.path...)
		}
	}
}

// splitAt splits the leaf strictly containing offset into two leaves.
func (s *lineState) splitAt(offset int) {
	for i, lf := range s.leaves {
		if offset <= lf.start || offset >= lf.end {
			continue
		}
		left := lf
		left.end = offset
		right := lf
		right.start = offset
		right.path = append([]node(nil), lf.path...)

		s.leaves = append(s.leaves, leaf{})
		copy(s.leaves[i+2:], s.leaves[i+1:])
		s.leaves[i] = left
		s.leaves[i+1] = right
		return
	}
}

func (s *lineState) tokens() []diffreview.Token {
	return buildTree(s.content, s.leaves, 0)
}

// buildTree groups consecutive leaves sharing the node at depth into a
// single token and recurses into the group.
func buildTree(content string, leaves []leaf, depth int) []diffreview.Token {
	var out []diffreview.Token
	for i := 0; i < len(leaves); {
		lf := leaves[i]
		if len(lf.path) <= depth {
			out = append(out, diffreview.Token{
				Kind:  diffreview.TokenText,
				Text:  content[lf.start:lf.end],
				Style: lf.style,
			})
			i++
			continue
		}

		n := lf.path[depth]
		j := i + 1
		for j < len(leaves) && len(leaves[j].path) > depth && leaves[j].path[depth] == n {
			j++
		}
		out = append(out, diffreview.Token{
			Kind:     n.kind,
			Children: buildTree(content, leaves[i:j], depth+1),
		})
		i = j
	}
	return out
}
