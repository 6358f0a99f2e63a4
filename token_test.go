package diffreview_test

import (
	"testing"

	"github.com/fwojciec/diffreview"
	"github.com/stretchr/testify/assert"
)

func TestToken_Content(t *testing.T) {
	t.Parallel()

	t.Run("returns leaf text", func(t *testing.T) {
		t.Parallel()

		tok := diffreview.Token{Kind: diffreview.TokenText, Text: "foo"}

		assert.Equal(t, "foo", tok.Content())
	})

	t.Run("concatenates nested children in order", func(t *testing.T) {
		t.Parallel()

		tok := diffreview.Token{
			Kind: diffreview.TokenWhitespace,
			Children: []diffreview.Token{
				{Kind: diffreview.TokenText, Text: " "},
				{Kind: diffreview.TokenEdit, Children: []diffreview.Token{
					{Kind: diffreview.TokenText, Text: "\t"},
				}},
			},
		}

		assert.Equal(t, " \t", tok.Content())
	})
}

func TestTokenKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "text", diffreview.TokenText.String())
	assert.Equal(t, "edit", diffreview.TokenEdit.String())
	assert.Equal(t, "whitespace", diffreview.TokenWhitespace.String())
	assert.Equal(t, "unknown", diffreview.TokenKind(42).String())
}

func TestRange_End(t *testing.T) {
	t.Parallel()

	r := diffreview.Range{Start: 3, Length: 2}

	assert.Equal(t, 5, r.End())
}

func TestParseViewStyle(t *testing.T) {
	t.Parallel()

	t.Run("parses known styles", func(t *testing.T) {
		t.Parallel()

		v, ok := diffreview.ParseViewStyle("split")
		assert.True(t, ok)
		assert.Equal(t, diffreview.ViewSplit, v)

		v, ok = diffreview.ParseViewStyle("unified")
		assert.True(t, ok)
		assert.Equal(t, diffreview.ViewUnified, v)
	})

	t.Run("rejects unknown styles", func(t *testing.T) {
		t.Parallel()

		_, ok := diffreview.ParseViewStyle("sideways")

		assert.False(t, ok)
	})

	t.Run("round trips through String", func(t *testing.T) {
		t.Parallel()

		for _, v := range []diffreview.ViewStyle{diffreview.ViewUnified, diffreview.ViewSplit} {
			parsed, ok := diffreview.ParseViewStyle(v.String())
			assert.True(t, ok)
			assert.Equal(t, v, parsed)
		}
	})
}

func TestIsSpace(t *testing.T) {
	t.Parallel()

	for _, r := range []rune{' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u1680', '\u2003', '\u2028', '\u202f', '\u3000', '\ufeff'} {
		assert.True(t, diffreview.IsSpace(r), "%U", r)
	}
	for _, r := range []rune{'x', '0', '\u0085', '\u200b', '_'} {
		assert.False(t, diffreview.IsSpace(r), "%U", r)
	}
}
