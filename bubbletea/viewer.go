// Package bubbletea provides a terminal UI for reviewing diffs using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/collapse"
	dvlipgloss "github.com/fwojciec/diffreview/lipgloss"
	"github.com/fwojciec/diffreview/review"
	"github.com/fwojciec/diffreview/tokenize"
)

// Option configures a Model or a Viewer.
type Option func(*config)

type config struct {
	theme            diffreview.Theme
	renderer         *lipgloss.Renderer
	viewStyle        diffreview.ViewStyle
	highlight        bool
	widgets          diffreview.WidgetProvider
	clipboard        diffreview.Clipboard
	fromVersion      string
	toVersion        string
	wordDiffer       diffreview.WordDiffer
	languageDetector diffreview.LanguageDetector
	programOptions   []tea.ProgramOption
}

func newConfig(opts []Option) *config {
	cfg := &config{highlight: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithTheme sets the theme.
func WithTheme(t diffreview.Theme) Option {
	return func(cfg *config) {
		cfg.theme = t
	}
}

// WithRenderer sets a custom lipgloss renderer.
func WithRenderer(r *lipgloss.Renderer) Option {
	return func(cfg *config) {
		cfg.renderer = r
	}
}

// WithViewStyle sets the initial layout of changes.
func WithViewStyle(v diffreview.ViewStyle) Option {
	return func(cfg *config) {
		cfg.viewStyle = v
	}
}

// WithHighlightWhitespaceChanges sets whether edits within leading and
// trailing whitespace are emphasized. Enabled by default.
func WithHighlightWhitespaceChanges(highlight bool) Option {
	return func(cfg *config) {
		cfg.highlight = highlight
	}
}

// WithWidgets sets the provider of comments rendered below changes.
func WithWidgets(w diffreview.WidgetProvider) Option {
	return func(cfg *config) {
		cfg.widgets = w
	}
}

// WithClipboard sets the clipboard used to copy selected changes.
func WithClipboard(c diffreview.Clipboard) Option {
	return func(cfg *config) {
		cfg.clipboard = c
	}
}

// WithVersions sets the versions the diff was produced from. They are
// passed to the widget provider.
func WithVersions(from, to string) Option {
	return func(cfg *config) {
		cfg.fromVersion = from
		cfg.toVersion = to
	}
}

// WithWordDiffer marks edits at word granularity with d.
func WithWordDiffer(d diffreview.WordDiffer) Option {
	return func(cfg *config) {
		cfg.wordDiffer = d
	}
}

// WithLanguageDetector sets the detector used to label file headers.
func WithLanguageDetector(d diffreview.LanguageDetector) Option {
	return func(cfg *config) {
		cfg.languageDetector = d
	}
}

// WithProgramOptions adds Bubble Tea program options used by Viewer.View.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(cfg *config) {
		cfg.programOptions = append(cfg.programOptions, opts...)
	}
}

// copiedMsg reports the result of copying selected changes.
type copiedMsg struct {
	lines int
	err   error
}

// Model is the Bubble Tea model for reviewing diffs.
type Model struct {
	diff       *diffreview.Diff
	session    *collapse.Session
	selection  *review.Selection
	completion *review.Completion
	cache      *review.TokenCache
	clipboard  diffreview.Clipboard

	// Per file, computed once.
	widgets   []map[string]string
	languages []string

	// Render memo and the selection change counter of each file.
	memo       map[int]fileRender
	selVersion map[int]int

	highlight   bool
	viewStyle   diffreview.ViewStyle
	gutterWidth int

	rows       []row
	cursor     int
	viewport   viewport.Model
	help       help.Model
	keymap     KeyMap
	styles     styleSet
	width      int
	ready      bool
	pendingKey string
	message    string
}

// NewModel creates a new Model for diff.
func NewModel(diff *diffreview.Diff, opts ...Option) Model {
	cfg := newConfig(opts)
	if diff == nil {
		diff = &diffreview.Diff{}
	}

	theme := cfg.theme
	if theme == nil {
		theme = dvlipgloss.DefaultTheme()
	}

	var editOpts []tokenize.EditOption
	if cfg.wordDiffer != nil {
		editOpts = append(editOpts, tokenize.WithWordDiffer(cfg.wordDiffer))
	}

	widgets := make([]map[string]string, len(diff.Files))
	languages := make([]string, len(diff.Files))
	for i, file := range diff.Files {
		if cfg.widgets != nil {
			widgets[i] = cfg.widgets.Widgets(file.NewPath, cfg.fromVersion, cfg.toVersion)
		}
		if cfg.languageDetector != nil {
			path := file.NewPath
			if file.Operation == diffreview.FileDeleted {
				path = file.OldPath
			}
			languages[i] = cfg.languageDetector.DetectFromPath(path)
		}
	}

	styles := newStyleSet(theme.Styles(), theme.Palette(), cfg.renderer)
	h := help.New()
	h.ShortSeparator = "  "
	h.Styles.ShortKey = styles.bar
	h.Styles.ShortDesc = styles.barDim
	h.Styles.ShortSeparator = styles.barDim
	h.Styles.Ellipsis = styles.barDim

	return Model{
		diff:        diff,
		session:     collapse.ForDiff(diff),
		selection:   review.NewSelection(),
		completion:  review.NewCompletion(),
		cache:       review.NewTokenCache(editOpts...),
		clipboard:   cfg.clipboard,
		widgets:     widgets,
		languages:   languages,
		memo:        make(map[int]fileRender),
		selVersion:  make(map[int]int),
		highlight:   cfg.highlight,
		viewStyle:   cfg.viewStyle,
		gutterWidth: calculateGutterWidth(diff),
		help:        h,
		keymap:      DefaultKeyMap(),
		styles:      styles,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if m.ready && msg.X <= 1 {
				m.cursor = m.viewport.YOffset + msg.Y
				m.toggleSelection()
			}
			return m, nil
		}
	case copiedMsg:
		if msg.err != nil {
			log.Printf("copy selection: %v", msg.err)
			m.message = "copy failed"
		} else {
			m.message = fmt.Sprintf("copied %d lines", msg.lines)
		}
		return m, nil
	case tea.WindowSizeMsg:
		statusBarHeight := 1
		m.width = msg.Width
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusBarHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusBarHeight
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg goes to the top.
	if m.pendingKey == "g" && key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = ""
		m.cursor = 0
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	}
	if key.Matches(msg, m.keymap.GotoTop) {
		m.pendingKey = "g"
		return m, nil
	}
	m.pendingKey = ""
	m.message = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.GotoBottom):
		m.cursor = len(m.rows) - 1
		m.refresh()
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keymap.HalfPageUp):
		m.viewport.HalfPageUp()
		m.moveCursor(-m.viewport.Height / 2)
	case key.Matches(msg, m.keymap.HalfPageDown):
		m.viewport.HalfPageDown()
		m.moveCursor(m.viewport.Height / 2)
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.NextHunk):
		m.jump(rowHunkHeader, 1)
	case key.Matches(msg, m.keymap.PrevHunk):
		m.jump(rowHunkHeader, -1)
	case key.Matches(msg, m.keymap.NextFile):
		m.jump(rowFileHeader, 1)
	case key.Matches(msg, m.keymap.PrevFile):
		m.jump(rowFileHeader, -1)
	case key.Matches(msg, m.keymap.Select):
		m.toggleSelection()
	case key.Matches(msg, m.keymap.ToggleCollapse):
		m.toggleCollapse(false)
	case key.Matches(msg, m.keymap.ToggleCollapseAll):
		m.toggleCollapse(true)
	case key.Matches(msg, m.keymap.Complete):
		m.toggleComplete()
	case key.Matches(msg, m.keymap.ToggleWhitespace):
		m.restructure(func() { m.highlight = !m.highlight })
	case key.Matches(msg, m.keymap.ToggleView):
		m.restructure(func() {
			if m.viewStyle == diffreview.ViewSplit {
				m.viewStyle = diffreview.ViewUnified
			} else {
				m.viewStyle = diffreview.ViewSplit
			}
		})
	case key.Matches(msg, m.keymap.Copy):
		return m, m.copySelection()
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), m.statusBarView())
}

// contentWidth is the width of a row without the cursor column.
func (m *Model) contentWidth() int {
	return max(m.width-1, 0)
}

func (m *Model) props(i int) fileProps {
	return fileProps{
		collapsed: m.session.Collapsed(i),
		completed: m.completion.Has(i),
		highlight: m.highlight,
		view:      m.viewStyle,
		width:     m.contentWidth(),
		selection: m.selVersion[i],
	}
}

// fileRows returns the rows of file i, rendering it only when its props
// changed since the last render.
func (m *Model) fileRows(i int) []row {
	props := m.props(i)
	if r, ok := m.memo[i]; ok && r.props == props {
		return r.rows
	}
	file := m.diff.Files[i]
	v := fileView{
		index:    i,
		file:     file,
		props:    props,
		widgets:  m.widgets[i],
		language: m.languages[i],
		selected: func(key string) bool {
			return m.selection.Has(review.ChangeID{File: i, Key: key})
		},
		gutterWidth: m.gutterWidth,
		styles:      m.styles,
	}
	if !props.collapsed {
		v.tokens = m.cache.Tokens(i, file, props.highlight)
	}
	rows := v.rows()
	m.memo[i] = fileRender{props: props, rows: rows}
	return rows
}

// refresh rebuilds the row list and the viewport content.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.rows = nil
	for i := range m.diff.Files {
		m.rows = append(m.rows, m.fileRows(i)...)
	}
	m.cursor = min(max(m.cursor, 0), max(len(m.rows)-1, 0))

	var sb strings.Builder
	for i, r := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if i == m.cursor {
			sb.WriteString(m.styles.cursor.Render("▌"))
		} else {
			sb.WriteByte(' ')
		}
		sb.WriteString(r.text)
	}
	m.viewport.SetContent(sb.String())
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	switch {
	case m.cursor < m.viewport.YOffset:
		m.viewport.SetYOffset(m.cursor)
	case m.viewport.Height > 0 && m.cursor >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.refresh()
}

// jump moves the cursor to the next (dir > 0) or previous row of kind.
func (m *Model) jump(kind rowKind, dir int) {
	for i := m.cursor + dir; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind == kind {
			m.cursor = i
			m.refresh()
			return
		}
	}
}

func (m *Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) toggleSelection() {
	r, ok := m.currentRow()
	if !ok || r.kind != rowChange {
		return
	}
	// A split row selects both of its changes unless all are selected.
	selectAll := false
	for _, k := range r.keys {
		if !m.selection.Has(review.ChangeID{File: r.file, Key: k}) {
			selectAll = true
			break
		}
	}
	for _, k := range r.keys {
		id := review.ChangeID{File: r.file, Key: k}
		if m.selection.Has(id) != selectAll {
			m.selection.Toggle(id)
		}
	}
	m.selVersion[r.file]++
	m.refresh()
}

func (m *Model) toggleCollapse(allFiles bool) {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	m.session.Toggle(r.file, allFiles)
	m.focusFile(r.file)
}

func (m *Model) toggleComplete() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	done := m.completion.Toggle(r.file)
	m.session.Complete(r.file, done)
	m.focusFile(r.file)
}

// focusFile refreshes and moves the cursor to the header of file i.
func (m *Model) focusFile(i int) {
	m.refresh()
	for idx, r := range m.rows {
		if r.kind == rowFileHeader && r.file == i {
			m.cursor = idx
			break
		}
	}
	m.refresh()
}

// restructure applies change and keeps the cursor on the same change.
func (m *Model) restructure(change func()) {
	anchor, ok := m.currentRow()
	change()
	m.refresh()
	if !ok {
		return
	}
	for idx, r := range m.rows {
		if r.file != anchor.file || r.kind != anchor.kind || r.hunk != anchor.hunk {
			continue
		}
		if anchor.kind != rowChange || sharesKey(r.keys, anchor.keys) {
			m.cursor = idx
			break
		}
	}
	m.refresh()
}

func sharesKey(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (m *Model) copySelection() tea.Cmd {
	text := review.CopySelection(m.diff, m.selection)
	switch {
	case text == "":
		m.message = "nothing selected"
		return nil
	case m.clipboard == nil:
		m.message = "clipboard unavailable"
		return nil
	}
	clip := m.clipboard
	return func() tea.Msg {
		return copiedMsg{lines: strings.Count(text, "\n"), err: clip.Copy(text)}
	}
}

// statusBarView renders the status bar with position info.
func (m Model) statusBarView() string {
	st := m.styles
	sep := st.barSep.Render(" │ ")

	fileIdx, fileTotal := 0, len(m.diff.Files)
	if r, ok := m.currentRow(); ok {
		fileIdx = r.file + 1
	}
	hunkIdx, hunkTotal := m.hunkPosition()

	fileWidth := digitWidth(fileTotal)
	hunkWidth := digitWidth(hunkTotal)
	content := st.bar.Render(fmt.Sprintf("file %*d/%-*d", fileWidth, fileIdx, fileWidth, fileTotal)) + sep +
		st.bar.Render(fmt.Sprintf("hunk %*d/%-*d", hunkWidth, hunkIdx, hunkWidth, hunkTotal)) + sep +
		st.bar.Render(m.scrollPosition()) + sep
	if n := m.selection.Len(); n > 0 {
		content += st.bar.Render(fmt.Sprintf("%d selected", n)) + sep
	}
	if n := m.completion.Len(); n > 0 {
		content += st.bar.Render(fmt.Sprintf("done %d/%d", n, fileTotal)) + sep
	}
	if m.message != "" {
		content += st.barMessage.Render(m.message) + sep
	}
	content += m.help.ShortHelpView(m.keymap.ShortHelp()) + st.bar.Render("  ")

	// Right-align by padding left side with background.
	contentWidth := lipgloss.Width(content)
	if m.width > contentWidth {
		content = st.bar.Render(strings.Repeat(" ", m.width-contentWidth)) + content
	} else if m.width > 0 {
		content = ansi.Truncate(content, m.width, "…")
	}
	return content
}

// hunkPosition returns the 1-based index of the hunk at or above the cursor
// and the number of visible hunks.
func (m Model) hunkPosition() (current, total int) {
	for i, r := range m.rows {
		if r.kind != rowHunkHeader {
			continue
		}
		total++
		if i <= m.cursor {
			current = total
		}
	}
	if total > 0 && current == 0 {
		current = 1
	}
	return current, total
}

// scrollPosition returns a string indicating the scroll position.
func (m Model) scrollPosition() string {
	if m.viewport.AtTop() {
		return "Top"
	}
	if m.viewport.AtBottom() {
		return "Bot"
	}
	percent := int(m.viewport.ScrollPercent() * 100)
	return fmt.Sprintf("%2d%%", percent)
}

// Viewer implements diffreview.Viewer using a Bubble Tea TUI.
type Viewer struct {
	opts []Option
}

// Compile-time interface verification.
var _ diffreview.Viewer = (*Viewer)(nil)

// NewViewer creates a new Viewer. The options apply to every model it shows.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{opts: opts}
}

// View tokenizes the diff, displays it, and blocks until the user exits or
// ctx is done.
func (v *Viewer) View(ctx context.Context, diff *diffreview.Diff) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := newConfig(v.opts)
	m := NewModel(diff, v.opts...)
	if err := m.cache.Warm(ctx, m.diff.Files, m.highlight); err != nil {
		log.Printf("tokenize diff: %v", err)
		return err
	}

	opts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}, cfg.programOptions...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}
