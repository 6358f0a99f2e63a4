package bubbletea

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/fwojciec/diffreview"
	"github.com/fwojciec/diffreview/review"
	"github.com/fwojciec/diffreview/tokenize"
)

// minGutterWidth is the minimum width of each line number column in the gutter.
const minGutterWidth = 4

type rowKind int

const (
	rowFileHeader rowKind = iota
	rowHunkHeader
	rowChange
	rowWidget
)

// row is one rendered line of the review. Change rows carry the keys of the
// changes they show: one in unified view, up to two in split view.
type row struct {
	kind rowKind
	file int
	hunk int
	keys []string
	text string
}

// fileProps are the inputs that decide how a file renders. A file whose
// props are unchanged reuses its previous rows.
type fileProps struct {
	collapsed bool
	completed bool
	highlight bool
	view      diffreview.ViewStyle
	width     int
	selection int
}

type fileRender struct {
	props fileProps
	rows  []row
}

// styleSet holds the lipgloss styles of a theme.
type styleSet struct {
	added, deleted, context         lipgloss.Style
	hunkHeader, fileHeader          lipgloss.Style
	lineNumber                      lipgloss.Style
	addedGutter, deletedGutter      lipgloss.Style
	editAdded, editDeleted          lipgloss.Style
	whitespace                      lipgloss.Style
	selected, cursor, completed     lipgloss.Style
	widget, binary                  lipgloss.Style
	statusAdded, statusChanged      lipgloss.Style
	statusDeleted, statusRenamed    lipgloss.Style
	bar, barDim, barSep, barMessage lipgloss.Style
}

func newStyleSet(s diffreview.Styles, p diffreview.Palette, r *lipgloss.Renderer) styleSet {
	style := func(cp diffreview.ColorPair) lipgloss.Style {
		return styleFromColorPair(cp, r)
	}
	bar := func(fg string) lipgloss.Style {
		return style(diffreview.ColorPair{Foreground: fg, Background: p.UIBackground})
	}
	return styleSet{
		added:         style(s.Added),
		deleted:       style(s.Deleted),
		context:       style(s.Context),
		hunkHeader:    style(s.HunkHeader),
		fileHeader:    style(s.FileHeader),
		lineNumber:    style(s.LineNumber),
		addedGutter:   style(s.AddedGutter),
		deletedGutter: style(s.DeletedGutter),
		editAdded:     style(s.EditAdded),
		editDeleted:   style(s.EditDeleted),
		whitespace:    style(s.Whitespace),
		selected:      style(s.Selected),
		cursor:        style(s.Cursor),
		completed:     style(s.Completed),
		widget:        style(s.Widget),
		binary:        style(s.Binary),
		statusAdded:   style(s.StatusAdded),
		statusChanged: style(s.StatusChanged),
		statusDeleted: style(s.StatusDeleted),
		statusRenamed: style(s.StatusRenamed),
		bar:           bar(p.Foreground),
		barDim:        bar(p.Context),
		barSep:        bar(p.UIForeground),
		barMessage:    bar(p.UIAccent).Bold(true),
	}
}

// lineStyles are the styles used for one change line.
type lineStyles struct {
	base   lipgloss.Style
	gutter lipgloss.Style
	tokens TokenRenderer
}

func (st styleSet) forLine(t diffreview.LineType) lineStyles {
	var base, gutter, edit lipgloss.Style
	switch t {
	case diffreview.LineAdded:
		base, gutter, edit = st.added, st.addedGutter, st.editAdded
	case diffreview.LineDeleted:
		base, gutter, edit = st.deleted, st.deletedGutter, st.editDeleted
	default:
		base, gutter, edit = st.context, st.lineNumber, st.context
	}
	return lineStyles{
		base:   base,
		gutter: gutter,
		tokens: TokenRenderer{
			Base:       base,
			Edit:       edit,
			Whitespace: st.whitespace.Inherit(base),
		},
	}
}

func (st styleSet) forStatus(op diffreview.FileOp) lipgloss.Style {
	switch op {
	case diffreview.FileAdded:
		return st.statusAdded
	case diffreview.FileDeleted:
		return st.statusDeleted
	case diffreview.FileRenamed:
		return st.statusRenamed
	default:
		return st.statusChanged
	}
}

// fileView renders a single file of the diff.
type fileView struct {
	index       int
	file        diffreview.FileDiff
	props       fileProps
	tokens      tokenize.Tokens
	widgets     map[string]string
	language    string
	selected    func(key string) bool
	gutterWidth int
	styles      styleSet
}

func (v fileView) rows() []row {
	rows := []row{v.header()}
	if v.props.collapsed || !review.HasDiff(v.file) {
		return rows
	}
	for h, hunk := range v.file.Hunks {
		rows = append(rows, row{
			kind: rowHunkHeader,
			file: v.index,
			hunk: h,
			text: fit(v.styles.hunkHeader.Render(formatHunkHeader(hunk)), v.props.width, v.styles.hunkHeader),
		})
		if v.props.view == diffreview.ViewSplit {
			rows = v.appendSplit(rows, h, hunk)
		} else {
			rows = v.appendUnified(rows, h, hunk)
		}
	}
	return rows
}

// header renders the file header:
// ── ▾ name  MODIFIED  ✓ ────────────── +N -M · Go ──
func (v fileView) header() row {
	st := v.styles
	indicator := "▾"
	if v.props.collapsed {
		indicator = "▸"
	}
	left := st.fileHeader.Render("── " + indicator + " " + review.FileName(v.file) + " ")
	badges := st.fileHeader.Render(" ") + st.forStatus(v.file.Operation).Render(" "+review.StatusLabel(v.file.Operation)+" ")
	if !review.HasDiff(v.file) {
		badges += st.fileHeader.Render(" ") + st.binary.Render(" BINARY ")
	}
	if v.props.completed {
		badges += st.fileHeader.Render(" ") + st.completed.Render("✓")
	}

	added, deleted := v.file.Stats()
	right := fmt.Sprintf(" +%d -%d", added, deleted)
	if v.language != "" {
		right += " · " + v.language
	}
	right += " ──"

	fill := v.props.width - lipgloss.Width(left) - lipgloss.Width(badges) - lipgloss.Width(right) - 1
	if fill < 3 {
		fill = 3
	}
	text := left + badges + st.fileHeader.Render(" "+strings.Repeat("─", fill)+right)
	return row{
		kind: rowFileHeader,
		file: v.index,
		hunk: -1,
		text: fit(text, v.props.width, st.fileHeader),
	}
}

func (v fileView) appendUnified(rows []row, h int, hunk diffreview.Hunk) []row {
	for _, line := range hunk.Lines {
		ls := v.styles.forLine(line.Type)
		key := line.Key()
		text := v.selectionMark(key, ls.base) +
			formatGutter(line.OldLineNum, line.NewLineNum, v.gutterWidth, ls.gutter) +
			ls.base.Render(" "+linePrefixFor(line.Type)) +
			ls.tokens.Render(v.lineTokens(line))
		rows = append(rows, row{
			kind: rowChange,
			file: v.index,
			hunk: h,
			keys: []string{key},
			text: fit(text, v.props.width, ls.base),
		})
		rows = v.appendWidgets(rows, h, key)
	}
	return rows
}

// splitPair is one row of the split view. Either side may be missing.
type splitPair struct {
	left, right *diffreview.Line
}

// pairLines lays hunk lines out side by side. Context lines appear on both
// sides; runs of deletions are paired in order with the insertions that
// follow them.
func pairLines(lines []diffreview.Line) []splitPair {
	var pairs []splitPair
	for i := 0; i < len(lines); {
		line := &lines[i]
		switch line.Type {
		case diffreview.LineContext:
			pairs = append(pairs, splitPair{left: line, right: line})
			i++
		case diffreview.LineAdded:
			pairs = append(pairs, splitPair{right: line})
			i++
		default:
			delEnd := i
			for delEnd < len(lines) && lines[delEnd].Type == diffreview.LineDeleted {
				delEnd++
			}
			addEnd := delEnd
			for addEnd < len(lines) && lines[addEnd].Type == diffreview.LineAdded {
				addEnd++
			}
			n := max(delEnd-i, addEnd-delEnd)
			for j := 0; j < n; j++ {
				var p splitPair
				if i+j < delEnd {
					p.left = &lines[i+j]
				}
				if delEnd+j < addEnd {
					p.right = &lines[delEnd+j]
				}
				pairs = append(pairs, p)
			}
			i = addEnd
		}
	}
	return pairs
}

func (v fileView) appendSplit(rows []row, h int, hunk diffreview.Hunk) []row {
	half := (v.props.width - 1) / 2
	for _, p := range pairLines(hunk.Lines) {
		var keys []string
		if p.left != nil {
			keys = append(keys, p.left.Key())
		}
		if p.right != nil && p.right != p.left {
			keys = append(keys, p.right.Key())
		}
		mark := v.selectionMark(keys[0], v.styles.context)
		if len(keys) > 1 && !v.selected(keys[0]) {
			mark = v.selectionMark(keys[1], v.styles.context)
		}
		text := mark +
			v.splitHalf(p.left, diffreview.SideOld, half) +
			v.splitHalf(p.right, diffreview.SideNew, half)
		rows = append(rows, row{
			kind: rowChange,
			file: v.index,
			hunk: h,
			keys: keys,
			text: fit(text, v.props.width, v.styles.context),
		})
		for _, key := range keys {
			rows = v.appendWidgets(rows, h, key)
		}
	}
	return rows
}

func (v fileView) splitHalf(line *diffreview.Line, side diffreview.Side, width int) string {
	if line == nil {
		return v.styles.context.Render(strings.Repeat(" ", max(width, 0)))
	}
	ls := v.styles.forLine(line.Type)
	num := line.NewLineNum
	tokens := v.tokens.Line(diffreview.SideNew, line.NewLineNum)
	if side == diffreview.SideOld {
		num = line.OldLineNum
		tokens = v.tokens.Line(diffreview.SideOld, line.OldLineNum)
	}
	text := ls.gutter.Render(formatLineNum(num, v.gutterWidth)+" ") +
		ls.base.Render(linePrefixFor(line.Type)) +
		ls.tokens.Render(tokens)
	return fit(text, width, ls.base)
}

func (v fileView) appendWidgets(rows []row, h int, key string) []row {
	text, ok := v.widgets[key]
	if !ok {
		return rows
	}
	indent := strings.Repeat(" ", 2*v.gutterWidth+3)
	for _, line := range strings.Split(text, "\n") {
		rows = append(rows, row{
			kind: rowWidget,
			file: v.index,
			hunk: h,
			keys: []string{key},
			text: fit(v.styles.widget.Render(indent+"│ "+line), v.props.width, v.styles.widget),
		})
	}
	return rows
}

func (v fileView) selectionMark(key string, style lipgloss.Style) string {
	if v.selected(key) {
		return v.styles.selected.Render("●")
	}
	return style.Render(" ")
}

func (v fileView) lineTokens(line diffreview.Line) []diffreview.Token {
	if line.IsDelete() {
		return v.tokens.Line(diffreview.SideOld, line.OldLineNum)
	}
	return v.tokens.Line(diffreview.SideNew, line.NewLineNum)
}

// fit truncates s to width columns and pads it with pad's background.
func fit(s string, width int, pad lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := lipgloss.Width(s); w < width {
		s += pad.Render(strings.Repeat(" ", width-w))
	}
	return s
}

// calculateGutterWidth determines the appropriate gutter width for a diff
// based on the maximum line number present in any hunk.
func calculateGutterWidth(diff *diffreview.Diff) int {
	maxLineNum := 0
	if diff != nil {
		for _, file := range diff.Files {
			for _, hunk := range file.Hunks {
				for _, line := range hunk.Lines {
					maxLineNum = max(maxLineNum, line.OldLineNum, line.NewLineNum)
				}
			}
		}
	}
	return max(digitWidth(maxLineNum), minGutterWidth)
}

// formatGutter formats the gutter column with old and new line numbers.
// Missing line numbers are left blank.
func formatGutter(oldLineNum, newLineNum, width int, style lipgloss.Style) string {
	return style.Render(formatLineNum(oldLineNum, width) + " " + formatLineNum(newLineNum, width))
}

// formatLineNum right-aligns num, or returns blanks for a missing number.
func formatLineNum(num, width int) string {
	if num == 0 {
		return strings.Repeat(" ", width)
	}
	return fmt.Sprintf("%*d", width, num)
}

// styleFromColorPair creates a lipgloss style from a ColorPair.
// If renderer is nil, the default lipgloss renderer is used.
func styleFromColorPair(cp diffreview.ColorPair, renderer *lipgloss.Renderer) lipgloss.Style {
	var style lipgloss.Style
	if renderer != nil {
		style = renderer.NewStyle()
	} else {
		style = lipgloss.NewStyle()
	}
	if cp.Foreground != "" {
		style = style.Foreground(lipgloss.Color(cp.Foreground))
	}
	if cp.Background != "" {
		style = style.Background(lipgloss.Color(cp.Background))
	}
	return style
}

// formatHunkHeader formats a hunk header in standard diff format.
func formatHunkHeader(hunk diffreview.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
	if hunk.Section != "" {
		header += " " + hunk.Section
	}
	return header
}

// linePrefixFor returns the prefix of a line type.
func linePrefixFor(lineType diffreview.LineType) string {
	switch lineType {
	case diffreview.LineAdded:
		return "+"
	case diffreview.LineDeleted:
		return "-"
	default:
		return " "
	}
}

// digitWidth returns the number of digits needed to display n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	width := 0
	for n > 0 {
		width++
		n /= 10
	}
	return width
}
