package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the review viewer.
type KeyMap struct {
	Up                key.Binding
	Down              key.Binding
	HalfPageUp        key.Binding
	HalfPageDown      key.Binding
	GotoTop           key.Binding
	GotoBottom        key.Binding
	NextHunk          key.Binding
	PrevHunk          key.Binding
	NextFile          key.Binding
	PrevFile          key.Binding
	Select            key.Binding
	ToggleCollapse    key.Binding
	ToggleCollapseAll key.Binding
	Complete          key.Binding
	ToggleWhitespace  key.Binding
	ToggleView        key.Binding
	Copy              key.Binding
	Quit              key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/k", "move"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextHunk: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n/N", "hunk"),
		),
		PrevHunk: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous hunk"),
		),
		NextFile: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]/[", "file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous file"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		ToggleCollapse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "fold"),
		),
		ToggleCollapseAll: key.NewBinding(
			key.WithKeys("alt+o"),
			key.WithHelp("alt+o", "fold all"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "done"),
		),
		ToggleWhitespace: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "whitespace"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "split"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextHunk, k.NextFile, k.Select, k.ToggleCollapse, k.Complete, k.Quit}
}

// FullHelp returns all bindings grouped by purpose.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.NextHunk, k.PrevHunk, k.NextFile, k.PrevFile},
		{k.Select, k.Copy, k.ToggleCollapse, k.ToggleCollapseAll, k.Complete},
		{k.ToggleWhitespace, k.ToggleView, k.Quit},
	}
}
