package tokenize_test

import (
	"testing"

	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/mock"
	"github.com/fwojciec/diffreview/tokenize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) diffreview.Token {
	return diffreview.Token{Kind: diffreview.TokenText, Text: s}
}

func wrapped(kind diffreview.TokenKind, children ...diffreview.Token) diffreview.Token {
	return diffreview.Token{Kind: kind, Children: children}
}

func singleLine(content string) []diffreview.Hunk {
	return []diffreview.Hunk{{
		Lines: []diffreview.Line{
			{Type: diffreview.LineAdded, Content: content, NewLineNum: 1},
		},
	}}
}

func newRange(kind diffreview.TokenKind, start, length int) diffreview.Range {
	return diffreview.Range{Kind: kind, LineNumber: 1, Start: start, Length: length}
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	t.Run("splits plain lines into a single text leaf", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("foo bar"), tokenize.Options{})

		assert.Equal(t, []diffreview.Token{text("foo bar")}, tokens.Line(diffreview.SideNew, 1))
		assert.Nil(t, tokens.Line(diffreview.SideOld, 1))
	})

	t.Run("produces no tokens for empty lines", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine(""), tokenize.Options{})

		assert.Empty(t, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("keys lines by their own side's line number", func(t *testing.T) {
		t.Parallel()

		hunks := []diffreview.Hunk{{
			Lines: []diffreview.Line{
				{Type: diffreview.LineContext, Content: "ctx", OldLineNum: 3, NewLineNum: 5},
				{Type: diffreview.LineDeleted, Content: "old", OldLineNum: 4},
				{Type: diffreview.LineAdded, Content: "new", NewLineNum: 6},
			},
		}}

		tokens := tokenize.Tokenize(hunks, tokenize.Options{})

		assert.Equal(t, []diffreview.Token{text("ctx")}, tokens.Line(diffreview.SideOld, 3))
		assert.Equal(t, []diffreview.Token{text("ctx")}, tokens.Line(diffreview.SideNew, 5))
		assert.Equal(t, []diffreview.Token{text("old")}, tokens.Line(diffreview.SideOld, 4))
		assert.Equal(t, []diffreview.Token{text("new")}, tokens.Line(diffreview.SideNew, 6))
		assert.Len(t, tokens.Old, 2)
		assert.Len(t, tokens.New, 2)
	})

	t.Run("wraps a range in a node of its kind", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("foo  "), tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenEdit, 3, 2)}),
			},
		})

		assert.Equal(t, []diffreview.Token{
			text("foo"),
			wrapped(diffreview.TokenEdit, text("  ")),
		}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("later enhancers wrap nodes of earlier enhancers", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("foo  "), tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenEdit, 3, 2)}),
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenWhitespace, 3, 2)}),
			},
		})

		assert.Equal(t, []diffreview.Token{
			text("foo"),
			wrapped(diffreview.TokenWhitespace, wrapped(diffreview.TokenEdit, text("  "))),
		}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("splits partially overlapping ranges deterministically", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("abcdefgh"), tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenEdit, 2, 4)}),
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenWhitespace, 4, 4)}),
			},
		})

		assert.Equal(t, []diffreview.Token{
			text("ab"),
			wrapped(diffreview.TokenEdit, text("cd")),
			wrapped(diffreview.TokenWhitespace,
				wrapped(diffreview.TokenEdit, text("ef")),
				text("gh"),
			),
		}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("applies duplicate ranges of one enhancer once", func(t *testing.T) {
		t.Parallel()

		ws := newRange(diffreview.TokenWhitespace, 0, 3)
		tokens := tokenize.Tokenize(singleLine("   "), tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{ws, ws}),
			},
		})

		assert.Equal(t, []diffreview.Token{
			wrapped(diffreview.TokenWhitespace, text("   ")),
		}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("clamps ranges to the line and ignores unknown lines", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("abc"), tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{
					newRange(diffreview.TokenEdit, 1, 10),
					{Kind: diffreview.TokenEdit, LineNumber: 99, Start: 0, Length: 1},
					newRange(diffreview.TokenEdit, 5, 0),
				}),
			},
		})

		assert.Equal(t, []diffreview.Token{
			text("a"),
			wrapped(diffreview.TokenEdit, text("bc")),
		}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("skips nil enhancers", func(t *testing.T) {
		t.Parallel()

		tokens := tokenize.Tokenize(singleLine("abc"), tokenize.Options{
			Enhancers: []diffreview.Enhancer{nil},
		})

		assert.Equal(t, []diffreview.Token{text("abc")}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("is deterministic across invocations", func(t *testing.T) {
		t.Parallel()

		hunks := []diffreview.Hunk{{
			Lines: []diffreview.Line{
				{Type: diffreview.LineDeleted, Content: "\tfoo := 1", OldLineNum: 1},
				{Type: diffreview.LineAdded, Content: "\tfoo := 2  ", NewLineNum: 1},
			},
		}}
		opts := tokenize.Options{
			Enhancers: []diffreview.Enhancer{
				tokenize.MarkEdits(hunks),
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenWhitespace, 0, 1)}),
			},
		}

		first := tokenize.Tokenize(hunks, opts)
		second := tokenize.Tokenize(hunks, opts)

		assert.Equal(t, first, second)
	})

	t.Run("uses syntax leaves when highlighting", func(t *testing.T) {
		t.Parallel()

		syntax := &mock.Tokenizer{
			TokenizeFn: func(language, source string) []diffreview.Token {
				assert.Equal(t, "Go", language)
				return []diffreview.Token{
					{Text: "var", Style: diffreview.Style{Foreground: "#ff00ff", Bold: true}},
					{Text: " x"},
				}
			},
		}

		tokens := tokenize.Tokenize(singleLine("var x"), tokenize.Options{
			Highlight: true,
			Language:  "Go",
			Syntax:    syntax,
			Enhancers: []diffreview.Enhancer{
				tokenize.PickRanges(nil, []diffreview.Range{newRange(diffreview.TokenEdit, 1, 3)}),
			},
		})

		line := tokens.Line(diffreview.SideNew, 1)
		require.Len(t, line, 3)
		assert.Equal(t, "v", line[0].Text)
		assert.Equal(t, "#ff00ff", line[0].Style.Foreground)
		assert.Equal(t, diffreview.TokenEdit, line[1].Kind)
		assert.Equal(t, "ar ", line[1].Content())
		assert.Equal(t, text("x"), line[2])
	})

	t.Run("falls back to plain leaves when syntax tokens do not match", func(t *testing.T) {
		t.Parallel()

		syntax := &mock.Tokenizer{
			TokenizeFn: func(language, source string) []diffreview.Token {
				return []diffreview.Token{{Text: "something else"}}
			},
		}

		tokens := tokenize.Tokenize(singleLine("var x"), tokenize.Options{
			Highlight: true,
			Language:  "Go",
			Syntax:    syntax,
		})

		assert.Equal(t, []diffreview.Token{text("var x")}, tokens.Line(diffreview.SideNew, 1))
	})

	t.Run("ignores the syntax tokenizer when highlighting is off", func(t *testing.T) {
		t.Parallel()

		syntax := &mock.Tokenizer{
			TokenizeFn: func(language, source string) []diffreview.Token {
				t.Error("syntax tokenizer should not be called")
				return nil
			},
		}

		tokens := tokenize.Tokenize(singleLine("var x"), tokenize.Options{
			Language: "Go",
			Syntax:   syntax,
		})

		assert.Equal(t, []diffreview.Token{text("var x")}, tokens.Line(diffreview.SideNew, 1))
	})
}
