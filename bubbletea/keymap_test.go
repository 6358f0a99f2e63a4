package bubbletea_test

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/diffreview/bubbletea"
	"github.com/stretchr/testify/assert"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDefaultKeyMap_HasExpectedBindings(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{name: "k moves up", msg: runes("k"), binding: km.Up},
		{name: "arrow up moves up", msg: tea.KeyMsg{Type: tea.KeyUp}, binding: km.Up},
		{name: "j moves down", msg: runes("j"), binding: km.Down},
		{name: "arrow down moves down", msg: tea.KeyMsg{Type: tea.KeyDown}, binding: km.Down},
		{name: "ctrl+u is half page up", msg: tea.KeyMsg{Type: tea.KeyCtrlU}, binding: km.HalfPageUp},
		{name: "ctrl+d is half page down", msg: tea.KeyMsg{Type: tea.KeyCtrlD}, binding: km.HalfPageDown},
		{name: "g starts go to top", msg: runes("g"), binding: km.GotoTop},
		{name: "G goes to bottom", msg: runes("G"), binding: km.GotoBottom},
		{name: "n is next hunk", msg: runes("n"), binding: km.NextHunk},
		{name: "N is previous hunk", msg: runes("N"), binding: km.PrevHunk},
		{name: "] is next file", msg: runes("]"), binding: km.NextFile},
		{name: "[ is previous file", msg: runes("["), binding: km.PrevFile},
		{name: "space selects", msg: tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, binding: km.Select},
		{name: "o toggles collapse", msg: runes("o"), binding: km.ToggleCollapse},
		{name: "alt+o toggles collapse of all files", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}, Alt: true}, binding: km.ToggleCollapseAll},
		{name: "c completes a file", msg: runes("c"), binding: km.Complete},
		{name: "w toggles whitespace highlighting", msg: runes("w"), binding: km.ToggleWhitespace},
		{name: "v toggles the view style", msg: runes("v"), binding: km.ToggleView},
		{name: "y copies", msg: runes("y"), binding: km.Copy},
		{name: "q quits", msg: runes("q"), binding: km.Quit},
		{name: "ctrl+c quits", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, binding: km.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}

	t.Run("alt+o does not toggle a single file", func(t *testing.T) {
		t.Parallel()

		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}, Alt: true}
		assert.False(t, key.Matches(msg, km.ToggleCollapse))
	})
}

func TestKeyMap_HelpText(t *testing.T) {
	t.Parallel()

	km := bubbletea.DefaultKeyMap()

	t.Run("short help bindings have help text", func(t *testing.T) {
		t.Parallel()

		for _, b := range km.ShortHelp() {
			assert.NotEmpty(t, b.Help().Key)
			assert.NotEmpty(t, b.Help().Desc)
		}
	})

	t.Run("full help includes every binding group", func(t *testing.T) {
		t.Parallel()

		groups := km.FullHelp()

		assert.Len(t, groups, 4)
		total := 0
		for _, g := range groups {
			total += len(g)
		}
		assert.Equal(t, 18, total)
	})
}
