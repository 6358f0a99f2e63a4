// Package jsonl loads review comments from JSONL files.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Comment is a single review comment attached to a change.
//
// Change is the change key the comment belongs to (for example "I12" for
// the insert at new line 12). From and To restrict the comment to a pair
// of diff versions; empty values match any version.
type Comment struct {
	Path   string `json:"path"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
	Change string `json:"change"`
	Text   string `json:"text"`
}

// CommentLoader loads Comment records from JSONL files.
type CommentLoader struct{}

// NewCommentLoader creates a new CommentLoader.
func NewCommentLoader() *CommentLoader {
	return &CommentLoader{}
}

// maxLineSize is the maximum size for a single JSONL line (1MB).
const maxLineSize = 1024 * 1024

// Load reads a JSONL file and returns its comments in file order.
// A missing file yields no comments.
func (l *CommentLoader) Load(path string) (*Comments, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewComments(nil), nil
		}
		return nil, err
	}
	defer f.Close()

	var records []Comment
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var c Comment
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if c.Path == "" || c.Change == "" {
			return nil, fmt.Errorf("line %d: comment requires path and change", lineNum)
		}
		records = append(records, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return NewComments(records), nil
}
