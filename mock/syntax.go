package mock

import "github.com/fwojciec/diffreview"

// Compile-time interface verification.
var (
	_ diffreview.Tokenizer        = (*Tokenizer)(nil)
	_ diffreview.LanguageDetector = (*LanguageDetector)(nil)
	_ diffreview.WordDiffer       = (*WordDiffer)(nil)
)

// Tokenizer is a mock implementation of diffreview.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(language, source string) []diffreview.Token
}

func (t *Tokenizer) Tokenize(language, source string) []diffreview.Token {
	return t.TokenizeFn(language, source)
}

// LanguageDetector is a mock implementation of diffreview.LanguageDetector.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (d *LanguageDetector) DetectFromPath(path string) string {
	return d.DetectFromPathFn(path)
}

// WordDiffer is a mock implementation of diffreview.WordDiffer.
type WordDiffer struct {
	DiffFn func(old, new string) ([]diffreview.Segment, []diffreview.Segment)
}

func (w *WordDiffer) Diff(old, new string) ([]diffreview.Segment, []diffreview.Segment) {
	return w.DiffFn(old, new)
}
