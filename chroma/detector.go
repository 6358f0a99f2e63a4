package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.LanguageDetector = (*Detector)(nil)

// Detector detects programming languages from file paths using chroma lexers.
type Detector struct{}

// NewDetector creates a new chroma-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the lexer name matching the file name of path,
// or an empty string if no lexer matches. Diff "a/" and "b/" prefixes are
// ignored.
func (d *Detector) DetectFromPath(path string) string {
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	if path == "" || path == "/dev/null" {
		return ""
	}

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
