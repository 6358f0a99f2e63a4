// Package whitespace finds leading and trailing whitespace on diff lines
// and turns it into token ranges.
package whitespace

import (
	"strings"

	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/tokenize"
)

// Leading returns the run of whitespace at the start of line.
// It reports false when the line does not start with whitespace.
func Leading(line diffreview.Line) (diffreview.Range, bool) {
	rest := strings.TrimLeftFunc(line.Content, diffreview.IsSpace)
	n := len(line.Content) - len(rest)
	if n == 0 {
		return diffreview.Range{}, false
	}
	return diffreview.Range{
		Kind:       diffreview.TokenWhitespace,
		LineNumber: line.LineNumber(),
		Start:      0,
		Length:     n,
		Value:      line.Content[:n],
	}, true
}

// Trailing returns the run of whitespace at the end of line.
// It reports false when the line does not end with whitespace.
func Trailing(line diffreview.Line) (diffreview.Range, bool) {
	rest := strings.TrimRightFunc(line.Content, diffreview.IsSpace)
	if len(rest) == len(line.Content) {
		return diffreview.Range{}, false
	}
	start := len(rest)
	return diffreview.Range{
		Kind:       diffreview.TokenWhitespace,
		LineNumber: line.LineNumber(),
		Start:      start,
		Length:     len(line.Content) - start,
		Value:      line.Content[start:],
	}, true
}

// Aggregate collects the leading and trailing whitespace ranges of every
// line in hunks. Lines present on the old side contribute to oldRanges
// keyed by their old line number; lines present on the new side contribute
// to newRanges keyed by their new line number. Context lines appear in both.
func Aggregate(hunks []diffreview.Hunk) (oldRanges, newRanges []diffreview.Range) {
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			for _, r := range lineRanges(line) {
				if !line.IsInsert() {
					r.LineNumber = line.OldLineNum
					oldRanges = append(oldRanges, r)
				}
				if !line.IsDelete() {
					r.LineNumber = line.NewLineNum
					newRanges = append(newRanges, r)
				}
			}
		}
	}
	return oldRanges, newRanges
}

// Enhancer returns an enhancer that marks the whitespace of hunks.
func Enhancer(hunks []diffreview.Hunk) tokenize.RangeSet {
	return tokenize.PickRanges(Aggregate(hunks))
}

func lineRanges(line diffreview.Line) []diffreview.Range {
	var ranges []diffreview.Range
	if r, ok := Leading(line); ok {
		ranges = append(ranges, r)
	}
	if r, ok := Trailing(line); ok {
		ranges = append(ranges, r)
	}
	return ranges
}
