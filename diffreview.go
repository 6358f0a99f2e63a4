// Package diffreview provides domain types for reviewing diffs: parsed files,
// hunks and changes, annotated tokens, and the interfaces implemented by the
// adapter packages.
package diffreview

import (
	"context"
	"io"
	"strconv"
)

// Diff represents a complete diff containing one or more file changes.
type Diff struct {
	Files []FileDiff
}

// FileDiff represents changes to a single file.
type FileDiff struct {
	OldPath   string // "a/file.go" or empty for new files
	NewPath   string // "b/file.go" or empty for deleted files
	Operation FileOp // Added, Deleted, Modified, Renamed
	IsBinary  bool   // Binary files have no hunks
	Hunks     []Hunk
}

// Stats returns the number of added and deleted lines in the file.
func (f FileDiff) Stats() (added, deleted int) {
	for _, hunk := range f.Hunks {
		for _, line := range hunk.Lines {
			switch line.Type {
			case LineAdded:
				added++
			case LineDeleted:
				deleted++
			}
		}
	}
	return added, deleted
}

// FileOp represents the type of operation performed on a file.
type FileOp int

// File operation types.
const (
	FileModified FileOp = iota
	FileAdded
	FileDeleted
	FileRenamed
)

// String returns the lower-case operation name.
func (op FileOp) String() string {
	switch op {
	case FileAdded:
		return "add"
	case FileDeleted:
		return "delete"
	case FileRenamed:
		return "rename"
	default:
		return "modify"
	}
}

// Hunk represents a contiguous block of changes within a file.
// A hunk is identified by its index within FileDiff.Hunks.
type Hunk struct {
	OldStart int    // From @@ -X,...
	OldCount int    // From @@ -X,Y ...
	NewStart int    // From @@ ...,+X
	NewCount int    // From @@ ...,+X,Y
	Section  string // Optional function name after @@ ... @@
	Lines    []Line
}

// Line represents a single change within a hunk.
type Line struct {
	Type       LineType
	Content    string
	OldLineNum int  // 0 if line is Added
	NewLineNum int  // 0 if line is Deleted
	NoNewline  bool // "\ No newline at end of file" marker
}

// IsInsert reports whether the line exists only on the new side.
func (l Line) IsInsert() bool { return l.Type == LineAdded }

// IsDelete reports whether the line exists only on the old side.
func (l Line) IsDelete() bool { return l.Type == LineDeleted }

// LineNumber returns the line number on the change's own side: the old side
// for deletions, the new side for insertions and context lines.
func (l Line) LineNumber() int {
	if l.Type == LineDeleted {
		return l.OldLineNum
	}
	return l.NewLineNum
}

// Key returns an identifier for the line that is unique within its file.
func (l Line) Key() string {
	switch l.Type {
	case LineAdded:
		return "I" + strconv.Itoa(l.NewLineNum)
	case LineDeleted:
		return "D" + strconv.Itoa(l.OldLineNum)
	default:
		return "N" + strconv.Itoa(l.OldLineNum)
	}
}

// LineType represents the type of a diff line.
type LineType int

// Line types.
const (
	LineContext LineType = iota
	LineAdded
	LineDeleted
)

// Segment represents a portion of text within a line for word-level diffing.
// Used to highlight specific changed words/characters within modified lines.
type Segment struct {
	Text    string // The text content of this segment
	Changed bool   // True if this segment differs between old/new versions
}

// WordDiffer computes word-level differences between two strings.
type WordDiffer interface {
	// Diff returns segments for both the old and new strings,
	// marking which portions changed between them.
	Diff(old, new string) (oldSegs, newSegs []Segment)
}

// Parser parses unified diff text.
type Parser interface {
	Parse(r io.Reader) (*Diff, error)
}

// Viewer displays a diff for review and blocks until the user exits.
type Viewer interface {
	View(ctx context.Context, diff *Diff) error
}

// GitRunner provides access to git operations for producing diffs.
type GitRunner interface {
	// Diff returns the unified diff between two revisions of the repository at repoPath.
	Diff(ctx context.Context, repoPath, from, to string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// WidgetProvider supplies decorations (such as review comments) rendered
// below individual changes of a file.
type WidgetProvider interface {
	// Widgets returns decorations for the file at newPath between two
	// versions, keyed by Line.Key.
	Widgets(newPath, fromVersion, toVersion string) map[string]string
}
