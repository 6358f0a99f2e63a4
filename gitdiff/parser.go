// Package gitdiff implements diff parsing using bluekeyes/go-gitdiff.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Parser = (*Parser)(nil)

// Parser parses unified diff content using go-gitdiff.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads diff content and returns the parsed result.
func (p *Parser) Parse(r io.Reader) (*diffreview.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	result := &diffreview.Diff{
		Files: make([]diffreview.FileDiff, 0, len(files)),
	}
	for _, f := range files {
		result.Files = append(result.Files, convertFile(f))
	}
	return result, nil
}

func convertFile(f *gitdiff.File) diffreview.FileDiff {
	fd := diffreview.FileDiff{
		OldPath:   f.OldName,
		NewPath:   f.NewName,
		IsBinary:  f.IsBinary,
		Operation: fileOp(f),
		Hunks:     make([]diffreview.Hunk, 0, len(f.TextFragments)),
	}
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

// fileOp maps git's file operations onto the four review operations.
// A copy introduces a new file and is reviewed as an addition.
func fileOp(f *gitdiff.File) diffreview.FileOp {
	switch {
	case f.IsNew, f.IsCopy:
		return diffreview.FileAdded
	case f.IsDelete:
		return diffreview.FileDeleted
	case f.IsRename:
		return diffreview.FileRenamed
	default:
		return diffreview.FileModified
	}
}

func convertFragment(frag *gitdiff.TextFragment) diffreview.Hunk {
	hunk := diffreview.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
		Lines:    make([]diffreview.Line, 0, len(frag.Lines)),
	}

	oldLineNum := int(frag.OldPosition)
	newLineNum := int(frag.NewPosition)

	for _, l := range frag.Lines {
		// go-gitdiff keeps the line terminator; content is the line text only.
		line := diffreview.Line{
			Content:   strings.TrimSuffix(l.Line, "\n"),
			NoNewline: l.NoEOL(),
		}

		switch l.Op {
		case gitdiff.OpContext:
			line.Type = diffreview.LineContext
			line.OldLineNum = oldLineNum
			line.NewLineNum = newLineNum
			oldLineNum++
			newLineNum++
		case gitdiff.OpAdd:
			line.Type = diffreview.LineAdded
			line.NewLineNum = newLineNum
			newLineNum++
		case gitdiff.OpDelete:
			line.Type = diffreview.LineDeleted
			line.OldLineNum = oldLineNum
			oldLineNum++
		}

		hunk.Lines = append(hunk.Lines, line)
	}

	return hunk
}
