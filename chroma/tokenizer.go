// Package chroma provides language detection and syntax highlighting using
// the chroma library.
package chroma

import (
	"errors"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to diffreview styles.
type StyleFunc func(chromalib.TokenType) diffreview.Style

// Tokenizer splits source into syntax highlighted leaf tokens using chroma.
type Tokenizer struct {
	styleFunc StyleFunc
}

// NewTokenizer creates a new chroma-based tokenizer with the given style function.
// Use StyleFromPalette to create a style function from a diffreview.Palette.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc}, nil
}

// Tokenize splits source into leaf tokens for the given language.
// The token texts concatenate to exactly source. Returns nil if the language
// is not supported or lexing fails, and an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []diffreview.Token {
	if source == "" {
		return []diffreview.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []diffreview.Token
	for token := iterator(); token != chromalib.EOF; token = iterator() {
		if token.Value == "" {
			continue
		}
		tokens = append(tokens, diffreview.Token{
			Kind:  diffreview.TokenText,
			Text:  token.Value,
			Style: t.styleFunc(token.Type),
		})
	}
	return trimToLength(tokens, len(source))
}

// trimToLength drops text past n bytes. Lexers configured to end input with
// a newline add one that is not part of the source.
func trimToLength(tokens []diffreview.Token, n int) []diffreview.Token {
	total := 0
	for i, tok := range tokens {
		if total+len(tok.Text) <= n {
			total += len(tok.Text)
			continue
		}
		keep := n - total
		if keep > 0 {
			tok.Text = tok.Text[:keep]
			tokens[i] = tok
			return tokens[:i+1]
		}
		return tokens[:i]
	}
	return tokens
}
