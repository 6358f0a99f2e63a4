package diffreview

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements in a diff.
type Styles struct {
	Added         ColorPair // Style for added lines (+)
	Deleted       ColorPair // Style for deleted lines (-)
	Context       ColorPair // Style for context lines (unchanged)
	HunkHeader    ColorPair // Style for hunk headers (@@ ... @@)
	FileHeader    ColorPair // Style for file headers
	FileSeparator ColorPair // Style for the rule between files
	LineNumber    ColorPair // Style for line numbers in the gutter
	AddedGutter   ColorPair // Gutter of added lines
	DeletedGutter ColorPair // Gutter of deleted lines
	EditAdded     ColorPair // Edited text within added lines
	EditDeleted   ColorPair // Edited text within deleted lines
	Whitespace    ColorPair // Suppressed whitespace changes (usually no background)
	Selected      ColorPair // Gutter marker of selected changes
	Cursor        ColorPair // Row under the cursor
	Completed     ColorPair // Completed check mark in file headers
	Widget        ColorPair // Comments rendered below changes
	StatusAdded   ColorPair // ADDED badge
	StatusChanged ColorPair // MODIFIED badge
	StatusDeleted ColorPair // DELETED badge
	StatusRenamed ColorPair // RENAMED badge
	Binary        ColorPair // BINARY badge
}

// Palette defines the semantic colors of a theme.
type Palette struct {
	// Base colors
	Background string
	Foreground string

	// Diff colors
	Added    string
	Deleted  string
	Modified string
	Context  string

	// Syntax highlighting colors
	Keyword     string
	String      string
	Number      string
	Comment     string
	Operator    string
	Function    string
	Type        string
	Constant    string
	Punctuation string

	// UI colors
	UIBackground string
	UIForeground string
	UIAccent     string
}

// Theme provides styles for rendering diffs.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
}
