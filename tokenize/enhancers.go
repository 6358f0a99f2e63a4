package tokenize

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/diffreview"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compile-time interface verification.
var (
	_ diffreview.Enhancer   = RangeSet{}
	_ diffreview.WordDiffer = charDiffer{}
)

// RangeSet is an enhancer with precomputed ranges.
type RangeSet struct {
	Old []diffreview.Range
	New []diffreview.Range
}

// Ranges returns the old and new side ranges.
func (s RangeSet) Ranges() (oldRanges, newRanges []diffreview.Range) {
	return s.Old, s.New
}

// PickRanges returns an enhancer that applies the given ranges to the
// matching lines of each side.
func PickRanges(oldRanges, newRanges []diffreview.Range) RangeSet {
	return RangeSet{Old: oldRanges, New: newRanges}
}

// minUnchangedRatio is the share of a line that must be unchanged for its
// edits to be marked. Lines below it are complete replacements, unless every
// edit is whitespace.
const minUnchangedRatio = 0.30

// EditOption configures MarkEdits.
type EditOption func(*editConfig)

type editConfig struct {
	differ diffreview.WordDiffer
}

// WithWordDiffer marks edits using the given differ instead of the default
// character-level diff.
func WithWordDiffer(d diffreview.WordDiffer) EditOption {
	return func(cfg *editConfig) {
		if d != nil {
			cfg.differ = d
		}
	}
}

// MarkEdits returns an enhancer that marks the edited sub-ranges of changed
// lines. Runs of deletions immediately followed by runs of insertions are
// paired 1:1 in order, and each pair is diffed.
func MarkEdits(hunks []diffreview.Hunk, opts ...EditOption) RangeSet {
	cfg := &editConfig{differ: charDiffer{}}
	for _, opt := range opts {
		opt(cfg)
	}

	var set RangeSet
	for _, hunk := range hunks {
		for _, p := range pairChanges(hunk.Lines) {
			del, add := hunk.Lines[p.del], hunk.Lines[p.add]
			oldSegs, newSegs := cfg.differ.Diff(del.Content, add.Content)
			replaced := !hasSignificantUnchangedContent(oldSegs) || !hasSignificantUnchangedContent(newSegs)
			if replaced && !onlyWhitespaceChanged(oldSegs, newSegs) {
				continue
			}
			set.Old = append(set.Old, segmentRanges(oldSegs, del.OldLineNum)...)
			set.New = append(set.New, segmentRanges(newSegs, add.NewLineNum)...)
		}
	}
	return set
}

type linePair struct {
	del, add int
}

// pairChanges finds runs of consecutive deleted lines followed by runs of
// added lines and pairs them up 1:1 in order.
func pairChanges(lines []diffreview.Line) []linePair {
	var pairs []linePair
	for i := 0; i < len(lines); i++ {
		if lines[i].Type != diffreview.LineDeleted {
			continue
		}

		deleteStart := i
		deleteEnd := i
		for deleteEnd < len(lines) && lines[deleteEnd].Type == diffreview.LineDeleted {
			deleteEnd++
		}

		if deleteEnd >= len(lines) || lines[deleteEnd].Type != diffreview.LineAdded {
			i = deleteEnd - 1
			continue
		}

		addStart := deleteEnd
		addEnd := addStart
		for addEnd < len(lines) && lines[addEnd].Type == diffreview.LineAdded {
			addEnd++
		}

		pairCount := min(deleteEnd-deleteStart, addEnd-addStart)
		for j := 0; j < pairCount; j++ {
			pairs = append(pairs, linePair{del: deleteStart + j, add: addStart + j})
		}

		i = addEnd - 1
	}
	return pairs
}

// segmentRanges converts changed segments into edit ranges, merging
// adjacent changed segments.
func segmentRanges(segs []diffreview.Segment, lineNumber int) []diffreview.Range {
	var ranges []diffreview.Range
	offset := 0
	for _, seg := range segs {
		if seg.Changed && seg.Text != "" {
			if n := len(ranges); n > 0 && ranges[n-1].End() == offset {
				ranges[n-1].Length += len(seg.Text)
				ranges[n-1].Value += seg.Text
			} else {
				ranges = append(ranges, diffreview.Range{
					Kind:       diffreview.TokenEdit,
					LineNumber: lineNumber,
					Start:      offset,
					Length:     len(seg.Text),
					Value:      seg.Text,
				})
			}
		}
		offset += len(seg.Text)
	}
	return ranges
}

// hasSignificantUnchangedContent checks if segments have enough unchanged
// content to make edit marking useful.
func hasSignificantUnchangedContent(segments []diffreview.Segment) bool {
	var unchangedLen, totalLen int
	for _, seg := range segments {
		totalLen += len(seg.Text)
		if !seg.Changed {
			unchangedLen += len(seg.Text)
		}
	}
	if totalLen == 0 {
		return false
	}
	return float64(unchangedLen)/float64(totalLen) >= minUnchangedRatio
}

// onlyWhitespaceChanged reports whether every changed segment of both sides
// is whitespace.
func onlyWhitespaceChanged(oldSegs, newSegs []diffreview.Segment) bool {
	changed := false
	for _, segs := range [][]diffreview.Segment{oldSegs, newSegs} {
		for _, seg := range segs {
			if !seg.Changed || seg.Text == "" {
				continue
			}
			if strings.TrimFunc(seg.Text, diffreview.IsSpace) != "" {
				return false
			}
			changed = true
		}
	}
	return changed
}

// charDiffer computes character-level segments with diff-match-patch.
type charDiffer struct{}

func (charDiffer) Diff(old, new string) (oldSegs, newSegs []diffreview.Segment) {
	dmp := diffmatchpatch.New()
	var diffs []diffmatchpatch.Diff
	decode := func(text string) string { return text }
	if utf8.ValidString(old) && utf8.ValidString(new) {
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(old, new, false))
	} else {
		// Invalid bytes would decode to U+FFFD and shift offsets, so each
		// byte is diffed as its own rune. Semantic cleanup slices its
		// strings by rune counts and is skipped here.
		diffs = dmp.DiffMainRunes(byteRunes(old), byteRunes(new), false)
		decode = runeBytes
	}
	for _, d := range diffs {
		text := decode(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			oldSegs = append(oldSegs, diffreview.Segment{Text: text})
			newSegs = append(newSegs, diffreview.Segment{Text: text})
		case diffmatchpatch.DiffDelete:
			oldSegs = append(oldSegs, diffreview.Segment{Text: text, Changed: true})
		case diffmatchpatch.DiffInsert:
			newSegs = append(newSegs, diffreview.Segment{Text: text, Changed: true})
		}
	}
	return oldSegs, newSegs
}

func byteRunes(s string) []rune {
	runes := make([]rune, len(s))
	for i := 0; i < len(s); i++ {
		runes[i] = rune(s[i])
	}
	return runes
}

func runeBytes(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		b = append(b, byte(r))
	}
	return string(b)
}
