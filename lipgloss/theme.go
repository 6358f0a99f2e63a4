// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"strings"

	"github.com/fwojciec/diffreview"
)

// Compile-time interface verification.
var _ diffreview.Theme = (*Theme)(nil)

// Theme implements diffreview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles  diffreview.Styles
	palette diffreview.Palette
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() diffreview.Styles {
	return t.styles
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() diffreview.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme called name ("dark" or "light").
func ThemeByName(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "", "dark":
		return DarkTheme(), true
	case "light":
		return LightTheme(), true
	default:
		return nil, false
	}
}

// surfaces holds the background colors a theme derives its styles from.
type surfaces struct {
	added       string // background of added lines
	deleted     string // background of deleted lines
	addedEdit   string // background of edits within added lines
	deletedEdit string // background of edits within deleted lines
	editText    string // foreground of edits
	cursor      string // background of the cursor row
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
// Line backgrounds are very dark so edit highlights stand out.
func DarkTheme() *Theme {
	// Catppuccin Mocha
	palette := diffreview.Palette{
		Background:   "#1e1e2e",
		Foreground:   "#cdd6f4",
		Added:        "#a6e3a1",
		Deleted:      "#f38ba8",
		Modified:     "#f9e2af",
		Context:      "#6c7086",
		Keyword:      "#cba6f7",
		String:       "#a6e3a1",
		Number:       "#fab387",
		Comment:      "#6c7086",
		Operator:     "#89dceb",
		Function:     "#89b4fa",
		Type:         "#f9e2af",
		Constant:     "#fab387",
		Punctuation:  "#9399b2",
		UIBackground: "#313244",
		UIForeground: "#a6adc8",
		UIAccent:     "#89b4fa",
	}
	return newTheme(palette, surfaces{
		added:       "#004000",
		deleted:     "#3f0001",
		addedEdit:   "#a6e3a1",
		deletedEdit: "#f38ba8",
		editText:    "#1e1e2e",
		cursor:      "#45475a",
	})
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	// Catppuccin Latte
	palette := diffreview.Palette{
		Background:   "#eff1f5",
		Foreground:   "#4c4f69",
		Added:        "#40a02b",
		Deleted:      "#d20f39",
		Modified:     "#df8e1d",
		Context:      "#9ca0b0",
		Keyword:      "#8839ef",
		String:       "#40a02b",
		Number:       "#fe640b",
		Comment:      "#9ca0b0",
		Operator:     "#04a5e5",
		Function:     "#1e66f5",
		Type:         "#df8e1d",
		Constant:     "#fe640b",
		Punctuation:  "#6c6f85",
		UIBackground: "#e6e9ef",
		UIForeground: "#6c6f85",
		UIAccent:     "#1e66f5",
	}
	return newTheme(palette, surfaces{
		added:       "#d4f4d4",
		deleted:     "#f4d4d4",
		addedEdit:   "#40a02b",
		deletedEdit: "#d20f39",
		editText:    "#ffffff",
		cursor:      "#ccd0da",
	})
}

func newTheme(p diffreview.Palette, s surfaces) *Theme {
	return &Theme{
		palette: p,
		styles: diffreview.Styles{
			Added:         diffreview.ColorPair{Foreground: p.Added, Background: s.added},
			Deleted:       diffreview.ColorPair{Foreground: p.Deleted, Background: s.deleted},
			Context:       diffreview.ColorPair{Foreground: p.Context},
			HunkHeader:    diffreview.ColorPair{Foreground: p.UIAccent},
			FileHeader:    diffreview.ColorPair{Foreground: p.Modified, Background: p.UIBackground},
			FileSeparator: diffreview.ColorPair{Foreground: p.UIForeground},
			LineNumber:    diffreview.ColorPair{Foreground: p.Context},
			AddedGutter:   diffreview.ColorPair{Foreground: p.Added, Background: s.added},
			DeletedGutter: diffreview.ColorPair{Foreground: p.Deleted, Background: s.deleted},
			EditAdded:     diffreview.ColorPair{Foreground: s.editText, Background: s.addedEdit},
			EditDeleted:   diffreview.ColorPair{Foreground: s.editText, Background: s.deletedEdit},
			// Whitespace keeps the line background so suppressed edits look unchanged.
			Whitespace:    diffreview.ColorPair{},
			Selected:      diffreview.ColorPair{Foreground: p.Background, Background: p.UIAccent},
			Cursor:        diffreview.ColorPair{Background: s.cursor},
			Completed:     diffreview.ColorPair{Foreground: p.Added},
			Widget:        diffreview.ColorPair{Foreground: p.Foreground, Background: p.UIBackground},
			StatusAdded:   diffreview.ColorPair{Foreground: p.Background, Background: p.Function},
			StatusChanged: diffreview.ColorPair{Foreground: p.Background, Background: p.Added},
			StatusDeleted: diffreview.ColorPair{Foreground: p.Background, Background: p.Deleted},
			StatusRenamed: diffreview.ColorPair{Foreground: p.Background, Background: p.Number},
			Binary:        diffreview.ColorPair{Foreground: p.Background, Background: p.Operator},
		},
	}
}
