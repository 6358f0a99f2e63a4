package review_test

import (
	"testing"

	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/review"
	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file diffreview.FileDiff
		want string
	}{
		{
			name: "modified file",
			file: diffreview.FileDiff{OldPath: "a/main.go", NewPath: "b/main.go", Operation: diffreview.FileModified},
			want: "main.go",
		},
		{
			name: "added file",
			file: diffreview.FileDiff{NewPath: "b/new.go", Operation: diffreview.FileAdded},
			want: "new.go",
		},
		{
			name: "deleted file",
			file: diffreview.FileDiff{OldPath: "a/gone.go", Operation: diffreview.FileDeleted},
			want: "gone.go",
		},
		{
			name: "renamed file",
			file: diffreview.FileDiff{OldPath: "a/old.go", NewPath: "b/new.go", Operation: diffreview.FileRenamed},
			want: "old.go → new.go",
		},
		{
			name: "paths without prefixes",
			file: diffreview.FileDiff{OldPath: "src/x.js", NewPath: "src/x.js"},
			want: "src/x.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, review.FileName(tt.file))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ADDED", review.StatusLabel(diffreview.FileAdded))
	assert.Equal(t, "MODIFIED", review.StatusLabel(diffreview.FileModified))
	assert.Equal(t, "DELETED", review.StatusLabel(diffreview.FileDeleted))
	assert.Equal(t, "RENAMED", review.StatusLabel(diffreview.FileRenamed))
}

func TestHasDiff(t *testing.T) {
	t.Parallel()

	assert.False(t, review.HasDiff(diffreview.FileDiff{IsBinary: true}))
	assert.True(t, review.HasDiff(diffreview.FileDiff{Hunks: []diffreview.Hunk{{}}}))
}
