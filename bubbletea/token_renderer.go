package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffreview"
)

// RenderFunc renders a token whose kind is outside the TokenKind enum.
// Text, edit and whitespace tokens are always painted by the TokenRenderer
// styles, so a RenderFunc is the default arm of the kind switch only.
type RenderFunc func(tok diffreview.Token) string

// TokenRenderer renders token trees of one line.
//
// Text leaves use Base. Leaves inside an edit node use Edit. Leaves inside a
// whitespace node use Whitespace, and edit nodes nested in a whitespace node
// are rendered without edit emphasis.
type TokenRenderer struct {
	Base       lipgloss.Style
	Edit       lipgloss.Style
	Whitespace lipgloss.Style
}

// RenderToken renders tok and its children. Tokens of unknown kind are
// passed to fallback; when fallback is nil their content is rendered plain.
func (r TokenRenderer) RenderToken(tok diffreview.Token, fallback RenderFunc) string {
	col := 0
	var sb strings.Builder
	r.render(&sb, tok, r.Base, false, fallback, &col)
	return sb.String()
}

// Render renders the tokens of a line with tabs expanded.
func (r TokenRenderer) Render(tokens []diffreview.Token) string {
	col := 0
	var sb strings.Builder
	for _, tok := range tokens {
		r.render(&sb, tok, r.Base, false, nil, &col)
	}
	return sb.String()
}

func (r TokenRenderer) render(sb *strings.Builder, tok diffreview.Token, style lipgloss.Style, inWhitespace bool, fallback RenderFunc, col *int) {
	switch tok.Kind {
	case diffreview.TokenText:
		if len(tok.Children) == 0 {
			sb.WriteString(r.leaf(style, tok, col))
			return
		}
	case diffreview.TokenEdit:
		if !inWhitespace {
			style = r.Edit
		}
	case diffreview.TokenWhitespace:
		style = r.Whitespace
		inWhitespace = true
	default:
		if fallback != nil {
			out := fallback(tok)
			*col += lipgloss.Width(out)
			sb.WriteString(out)
			return
		}
		sb.WriteString(r.leaf(style, diffreview.Token{Text: tok.Content()}, col))
		return
	}
	for _, child := range tok.Children {
		r.render(sb, child, style, inWhitespace, fallback, col)
	}
}

func (r TokenRenderer) leaf(style lipgloss.Style, tok diffreview.Token, col *int) string {
	if tok.Text == "" {
		return ""
	}
	if tok.Style.Foreground != "" {
		style = style.Foreground(lipgloss.Color(tok.Style.Foreground))
	}
	if tok.Style.Bold {
		style = style.Bold(true)
	}
	text := ExpandTabs(tok.Text, *col)
	*col += lipgloss.Width(text)
	return style.Render(text)
}
