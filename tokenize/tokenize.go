// Package tokenize splits the lines of diff hunks into annotated token trees.
//
// Each line starts as plain (or syntax highlighted) leaf tokens. Enhancers
// then contribute ranges; every range splits leaves at its boundaries and
// wraps the leaves it covers in a single node of the range's kind. Enhancers
// are applied in order and a later enhancer's nodes wrap the nodes produced
// by earlier ones, so the last enhancer ends up outermost.
package tokenize

import (
	"github.com/fwojciec/diffreview"
)

// Options controls how hunks are tokenized.
type Options struct {
	// Highlight enables syntax highlighted leaves. Requires Syntax and Language.
	Highlight bool
	Language  string
	Syntax    diffreview.Tokenizer

	// Enhancers are applied in order.
	Enhancers []diffreview.Enhancer
}

// Tokens holds the token trees of every line on both sides of a diff,
// keyed by line number.
type Tokens struct {
	Old map[int][]diffreview.Token
	New map[int][]diffreview.Token
}

// Line returns the tokens of a line on the given side, or nil if the line
// is not part of the tokenized hunks.
func (t Tokens) Line(side diffreview.Side, lineNumber int) []diffreview.Token {
	if side == diffreview.SideOld {
		return t.Old[lineNumber]
	}
	return t.New[lineNumber]
}

// Tokenize builds token trees for every line of hunks.
// It is a pure function: identical inputs produce identical output.
func Tokenize(hunks []diffreview.Hunk, opts Options) Tokens {
	oldLines := make(map[int]*lineState)
	newLines := make(map[int]*lineState)

	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			initial := initialLeaves(line.Content, opts)
			if !line.IsInsert() {
				oldLines[line.OldLineNum] = newLineState(line.Content, initial)
			}
			if !line.IsDelete() {
				newLines[line.NewLineNum] = newLineState(line.Content, initial)
			}
		}
	}

	for _, enhancer := range opts.Enhancers {
		if enhancer == nil {
			continue
		}
		oldRanges, newRanges := enhancer.Ranges()
		applyRanges(oldLines, oldRanges)
		applyRanges(newLines, newRanges)
	}

	return Tokens{
		Old: buildAll(oldLines),
		New: buildAll(newLines),
	}
}

// rangeKey identifies a range for deduplication within one enhancer.
type rangeKey struct {
	kind       diffreview.TokenKind
	lineNumber int
	start      int
	length     int
}

func applyRanges(lines map[int]*lineState, ranges []diffreview.Range) {
	seen := make(map[rangeKey]bool, len(ranges))
	for _, r := range ranges {
		key := rangeKey{kind: r.Kind, lineNumber: r.LineNumber, start: r.Start, length: r.Length}
		if seen[key] {
			continue
		}
		seen[key] = true

		state, ok := lines[r.LineNumber]
		if !ok {
			continue
		}
		state.wrap(r.Kind, r.Start, r.End())
	}
}

func buildAll(lines map[int]*lineState) map[int][]diffreview.Token {
	out := make(map[int][]diffreview.Token, len(lines))
	for num, state := range lines {
		out[num] = state.tokens()
	}
	return out
}

// initialLeaves returns syntax tokens for content when highlighting is
// enabled and the tokens reconstruct content exactly. Otherwise nil.
func initialLeaves(content string, opts Options) []diffreview.Token {
	if !opts.Highlight || opts.Syntax == nil || opts.Language == "" || content == "" {
		return nil
	}
	tokens := opts.Syntax.Tokenize(opts.Language, content)
	total := 0
	for _, tok := range tokens {
		total += len(tok.Text)
	}
	if total != len(content) {
		return nil
	}
	return tokens
}
