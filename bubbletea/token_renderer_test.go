package bubbletea_test

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func textToken(s string) diffreview.Token {
	return diffreview.Token{Kind: diffreview.TokenText, Text: s}
}

func node(kind diffreview.TokenKind, children ...diffreview.Token) diffreview.Token {
	return diffreview.Token{Kind: kind, Children: children}
}

// markRenderer renders spans with visible markers instead of colors.
func markRenderer() bubbletea.TokenRenderer {
	r := lipgloss.NewRenderer(io.Discard)
	return bubbletea.TokenRenderer{
		Base:       r.NewStyle(),
		Edit:       r.NewStyle().Transform(func(s string) string { return "[" + s + "]" }),
		Whitespace: r.NewStyle().Transform(func(s string) string { return "<" + s + ">" }),
	}
}

func TestTokenRenderer_RenderToken(t *testing.T) {
	t.Parallel()

	t.Run("renders text leaves with the base style", func(t *testing.T) {
		t.Parallel()

		out := markRenderer().RenderToken(textToken("foo"), nil)

		assert.Equal(t, "foo", out)
	})

	t.Run("renders edit children with the edit style", func(t *testing.T) {
		t.Parallel()

		out := markRenderer().RenderToken(node(diffreview.TokenEdit, textToken("ab"), textToken("c")), nil)

		assert.Equal(t, "[ab][c]", out)
	})

	t.Run("suppresses edit emphasis inside whitespace", func(t *testing.T) {
		t.Parallel()

		tok := node(diffreview.TokenWhitespace, node(diffreview.TokenEdit, textToken("  ")))

		out := markRenderer().RenderToken(tok, nil)

		assert.Equal(t, "<  >", out)
	})

	t.Run("keeps edit emphasis around whitespace", func(t *testing.T) {
		t.Parallel()

		tok := node(diffreview.TokenEdit, node(diffreview.TokenWhitespace, textToken(" ")), textToken("x"))

		out := markRenderer().RenderToken(tok, nil)

		assert.Equal(t, "< >[x]", out)
	})

	t.Run("passes unknown kinds to the fallback", func(t *testing.T) {
		t.Parallel()

		tok := diffreview.Token{Kind: diffreview.TokenKind(99), Children: []diffreview.Token{textToken("?")}}

		out := markRenderer().RenderToken(tok, func(tok diffreview.Token) string {
			return "fallback:" + tok.Content()
		})

		assert.Equal(t, "fallback:?", out)
	})

	t.Run("paints known kinds without the fallback", func(t *testing.T) {
		t.Parallel()

		tok := node(diffreview.TokenText,
			textToken("a"),
			node(diffreview.TokenEdit, textToken("b")),
			node(diffreview.TokenWhitespace, textToken(" ")),
		)

		out := markRenderer().RenderToken(tok, func(diffreview.Token) string {
			t.Error("fallback called for a known kind")
			return ""
		})

		assert.Equal(t, "a[b]< >", out)
	})

	t.Run("renders unknown kinds as plain text without a fallback", func(t *testing.T) {
		t.Parallel()

		tok := diffreview.Token{Kind: diffreview.TokenKind(99), Children: []diffreview.Token{textToken("?")}}

		assert.Equal(t, "?", markRenderer().RenderToken(tok, nil))
	})
}

func TestTokenRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("concatenates tokens in order", func(t *testing.T) {
		t.Parallel()

		out := markRenderer().Render([]diffreview.Token{
			textToken("foo"),
			node(diffreview.TokenWhitespace, node(diffreview.TokenEdit, textToken("  "))),
		})

		assert.Equal(t, "foo<  >", out)
	})

	t.Run("expands tabs across token boundaries", func(t *testing.T) {
		t.Parallel()

		out := markRenderer().Render([]diffreview.Token{
			textToken("ab"),
			textToken("\tc"),
		})

		assert.Equal(t, "ab      c", out)
	})

	t.Run("renders nothing for an empty line", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, markRenderer().Render(nil))
	})
}
