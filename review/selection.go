package review

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fwojciec/diffreview"
)

// ChangeID identifies a single change: the index of its file within the diff
// and the key of its line within the file.
type ChangeID struct {
	File int
	Key  string
}

// Selection is a set of selected changes.
type Selection struct {
	ids map[ChangeID]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[ChangeID]struct{})}
}

// Toggle adds id to the selection or removes it if already present.
func (s *Selection) Toggle(id ChangeID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// Has reports whether id is selected.
func (s *Selection) Has(id ChangeID) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected changes.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected changes ordered by file and key.
func (s *Selection) IDs() []ChangeID {
	ids := make([]ChangeID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ChangeID) int {
		if c := cmp.Compare(a.File, b.File); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})
	return ids
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.ids)
}

// Completion is the set of files marked completed, by file index.
type Completion struct {
	files map[int]bool
}

// NewCompletion returns a completion set with no completed files.
func NewCompletion() *Completion {
	return &Completion{files: make(map[int]bool)}
}

// Toggle flips the completion of file i and returns the new value.
func (c *Completion) Toggle(i int) bool {
	done := !c.files[i]
	if done {
		c.files[i] = true
	} else {
		delete(c.files, i)
	}
	return done
}

// Has reports whether file i is completed.
func (c *Completion) Has(i int) bool {
	return c.files[i]
}

// Len returns the number of completed files.
func (c *Completion) Len() int {
	return len(c.files)
}

// CopySelection returns the selected changes of diff in diff order, one per
// line, prefixed the way unified diffs prefix them.
func CopySelection(diff *diffreview.Diff, sel *Selection) string {
	if diff == nil || sel == nil || sel.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	for i, file := range diff.Files {
		for _, hunk := range file.Hunks {
			for _, line := range hunk.Lines {
				if !sel.Has(ChangeID{File: i, Key: line.Key()}) {
					continue
				}
				sb.WriteString(linePrefix(line.Type))
				sb.WriteString(line.Content)
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}

func linePrefix(t diffreview.LineType) string {
	switch t {
	case diffreview.LineAdded:
		return "+"
	case diffreview.LineDeleted:
		return "-"
	default:
		return " "
	}
}
