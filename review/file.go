package review

import (
	"strings"

	"github.com/fwojciec/diffreview"
)

// FileName returns the name shown in a file's header. Deleted files show
// their old path. Files whose path changed show both paths.
func FileName(file diffreview.FileDiff) string {
	oldPath := stripPrefix(file.OldPath)
	newPath := stripPrefix(file.NewPath)

	if file.Operation == diffreview.FileDeleted {
		return oldPath
	}
	if oldPath != newPath && oldPath != "" && file.Operation != diffreview.FileAdded {
		return oldPath + " → " + newPath
	}
	return newPath
}

// StatusLabel returns the badge text for a file operation.
func StatusLabel(op diffreview.FileOp) string {
	switch op {
	case diffreview.FileAdded:
		return "ADDED"
	case diffreview.FileDeleted:
		return "DELETED"
	case diffreview.FileRenamed:
		return "RENAMED"
	default:
		return "MODIFIED"
	}
}

// HasDiff reports whether the file has textual changes to show.
// Files without hunks are shown with a binary badge.
func HasDiff(file diffreview.FileDiff) bool {
	return len(file.Hunks) > 0
}

func stripPrefix(path string) string {
	path = strings.TrimPrefix(path, "a/")
	return strings.TrimPrefix(path, "b/")
}
