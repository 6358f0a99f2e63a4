// Package worddiff computes token-level differences between two lines.
//
// Lines are split into words, operator runs, whitespace runs and single
// punctuation characters. Each distinct token is mapped to one rune so the
// token sequences can be diffed with diff-match-patch and mapped back.
package worddiff

import (
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/diffreview"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var _ diffreview.WordDiffer = (*Differ)(nil)

// similarityThreshold is the minimum share of common tokens for a
// token-level diff. Below it lines are treated as complete replacements.
const similarityThreshold = 0.4

// maxVocabulary keeps encoded tokens below the UTF-16 surrogate range,
// which does not survive a round trip through a Go string.
const maxVocabulary = 0xD800

// Differ computes token-level diffs. It is safe for concurrent use.
type Differ struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{dmp: diffmatchpatch.New()}
}

// Tokenize splits s into tokens. Concatenating the tokens yields s.
func (d *Differ) Tokenize(s string) []string {
	if s == "" {
		return nil
	}
	tokens := make([]string, 0, len(s)/3+1)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		end := i + size
		switch class := classOf(r); class {
		case classWord, classSpace, classOperator:
			for end < len(s) {
				next, n := utf8.DecodeRuneInString(s[end:])
				if classOf(next) != class {
					break
				}
				end += n
			}
		}
		tokens = append(tokens, s[i:end])
		i = end
	}
	return tokens
}

type tokenClass int

const (
	classOther tokenClass = iota
	classWord
	classSpace
	classOperator
)

func classOf(r rune) tokenClass {
	switch {
	case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		return classWord
	case unicode.IsSpace(r):
		return classSpace
	}
	switch r {
	case '+', '-', '*', '/', '=', '<', '>', '!', '&', '|', '^', '%', ':':
		return classOperator
	}
	return classOther
}

// Diff returns segments for both the old and new strings, marking which
// portions changed between them.
func (d *Differ) Diff(old, new string) (oldSegs, newSegs []diffreview.Segment) {
	switch {
	case old == "" && new == "":
		return nil, nil
	case old == "":
		return nil, []diffreview.Segment{{Text: new, Changed: true}}
	case new == "":
		return []diffreview.Segment{{Text: old, Changed: true}}, nil
	case old == new:
		seg := diffreview.Segment{Text: old}
		return []diffreview.Segment{seg}, []diffreview.Segment{seg}
	}

	oldTokens := d.Tokenize(old)
	newTokens := d.Tokenize(new)
	if !similarEnough(oldTokens, newTokens) {
		return replaced(old, new)
	}

	var vocab vocabulary
	oldRunes := vocab.encode(oldTokens)
	newRunes := vocab.encode(newTokens)
	if len(vocab.tokens) >= maxVocabulary {
		return replaced(old, new)
	}

	for _, diff := range d.dmp.DiffMainRunes(oldRunes, newRunes, false) {
		text := vocab.decode(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = appendSegment(oldSegs, text, false)
			newSegs = appendSegment(newSegs, text, false)
		case diffmatchpatch.DiffDelete:
			oldSegs = appendSegment(oldSegs, text, true)
		case diffmatchpatch.DiffInsert:
			newSegs = appendSegment(newSegs, text, true)
		}
	}
	return oldSegs, newSegs
}

func replaced(old, new string) (oldSegs, newSegs []diffreview.Segment) {
	return []diffreview.Segment{{Text: old, Changed: true}},
		[]diffreview.Segment{{Text: new, Changed: true}}
}

// appendSegment appends text to segs, extending the last segment when it
// has the same change status.
func appendSegment(segs []diffreview.Segment, text string, changed bool) []diffreview.Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Changed == changed {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, diffreview.Segment{Text: text, Changed: changed})
}

// similarEnough reports whether the token multisets overlap enough to make
// a token-level diff readable. The ratio is 2*common/(len(old)+len(new)).
func similarEnough(oldTokens, newTokens []string) bool {
	if len(oldTokens) == 0 || len(newTokens) == 0 {
		return false
	}
	counts := make(map[string]int, len(oldTokens))
	for _, t := range oldTokens {
		counts[t]++
	}
	common := 0
	for _, t := range newTokens {
		if counts[t] > 0 {
			counts[t]--
			common++
		}
	}
	total := len(oldTokens) + len(newTokens)
	return float64(2*common)/float64(total) >= similarityThreshold
}

// vocabulary assigns one rune to each distinct token.
type vocabulary struct {
	index  map[string]rune
	tokens []string
}

func (v *vocabulary) encode(tokens []string) []rune {
	if v.index == nil {
		v.index = make(map[string]rune)
	}
	out := make([]rune, len(tokens))
	for i, t := range tokens {
		r, ok := v.index[t]
		if !ok {
			r = rune(len(v.tokens))
			v.index[t] = r
			v.tokens = append(v.tokens, t)
		}
		out[i] = r
	}
	return out
}

func (v *vocabulary) decode(encoded string) string {
	var text []byte
	for _, r := range encoded {
		if int(r) < len(v.tokens) {
			text = append(text, v.tokens[r]...)
		}
	}
	return string(text)
}
