package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxTagRows    = 8
	handleGlyph   = '◢'
)

var (
	colorInk      = lipgloss.Color("#282828")
	colorMenuBg   = lipgloss.Color("#3c3836")
	colorSelected = lipgloss.Color("#458588")
	colorLockedFg = lipgloss.Color("#7c6f64")
)

// cellPoint is the screen point of a cell's top-left corner.
func cellPoint(col, row int) board.Point {
	return board.Point{X: float64(col) * cellWidth, Y: float64(row) * cellHeight}
}

// Mouse

func (m *boardModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev := board.PointerEvent{Screen: cellPoint(msg.X, msg.Y), Ctrl: msg.Ctrl, Shift: msg.Shift}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.board.ZoomIn()
			return nil
		case tea.MouseButtonWheelDown:
			m.board.ZoomOut()
			return nil
		case tea.MouseButtonLeft:
			if item, ok := m.menuItemAt(msg.X, msg.Y); ok {
				return m.invokeMenu(item)
			}
			ev.Button = board.ButtonLeft
		case tea.MouseButtonRight:
			ev.Button = board.ButtonRight
		default:
			return nil
		}
		if msg.Y >= m.canvasRows() || m.mode() == modeTags {
			return nil
		}
		if id := m.board.EditingID(); id != "" {
			if hit, _ := m.board.HitTest(ev.Screen); hit == id {
				return nil
			}
			// Clicking away from the note being edited keeps the text.
			m.commitEdit()
		}
		m.board.PointerDown(ev)
		if m.board.Menu() != nil {
			m.menuCursor = 0
		}

	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			ev.Button = board.ButtonLeft
		}
		m.board.PointerMove(ev)

	case tea.MouseActionRelease:
		m.board.PointerUp(ev)
	}
	return nil
}

// menuBox is the cell rectangle of the open context menu, border included.
func (m *boardModel) menuBox(menu *board.Menu) (col, row, w, h int) {
	inner := 0
	for _, it := range menu.Items {
		inner = max(inner, runewidth.StringWidth(it.Label))
	}
	w, h = inner+4, len(menu.Items)+2
	width, _ := m.size()
	col = int(menu.At.X / cellWidth)
	row = int(menu.At.Y / cellHeight)
	col = max(0, min(col, width-w))
	row = max(0, min(row, m.canvasRows()-h))
	return col, row, w, h
}

func (m *boardModel) menuItemAt(x, y int) (board.MenuItem, bool) {
	menu := m.board.Menu()
	if menu == nil {
		return board.MenuItem{}, false
	}
	col, row, w, _ := m.menuBox(menu)
	i := y - row - 1
	if x <= col || x >= col+w-1 || i < 0 || i >= len(menu.Items) {
		return board.MenuItem{}, false
	}
	return menu.Items[i], true
}

// Layout

func (m *boardModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *boardModel) panelHeight() int {
	switch m.mode() {
	case modeEditing:
		return editorHeight
	case modeTags:
		return 2 + min(len(m.board.TagEntries()), maxTagRows)
	default:
		return 0
	}
}

// canvasRows is the number of terminal rows given to the canvas: the
// screen minus any open panel, the status line and the help line.
func (m *boardModel) canvasRows() int {
	_, h := m.size()
	return max(1, h-2-m.panelHeight())
}

// View

func (m *boardModel) View() string {
	if m.quitting {
		return ""
	}
	w, _ := m.size()

	sections := []string{m.renderCanvas(w, m.canvasRows())}
	switch m.mode() {
	case modeEditing:
		sections = append(sections, m.renderEditor(w))
	case modeTags:
		sections = append(sections, m.renderTags(w))
	}
	sections = append(sections, m.renderStatus(w), m.renderHelp(w))
	return strings.Join(sections, "\n")
}

// noteText is the pre-wrapped text of one note, addressed by the note's
// own cell rows and columns.
type noteText struct {
	col, row int
	lines    [][]rune
	lastCol  int
}

func (t noteText) at(relRow, relCol int) rune {
	if relRow < 0 || relRow >= len(t.lines) {
		return ' '
	}
	line := t.lines[relRow]
	if relCol < 0 || relCol >= len(line) {
		return ' '
	}
	return line[relCol]
}

func (m *boardModel) layoutNote(n *domain.Note) noteText {
	r := m.board.ScreenRect(n)
	col := int(math.Ceil(r.Min.X / cellWidth))
	row := int(math.Ceil(r.Min.Y / cellHeight))
	lastCol := int(math.Ceil(r.Max.X/cellWidth)) - 1
	rows := int(math.Ceil(r.Max.Y/cellHeight)) - row
	inner := lastCol - col - 1

	header := " " + n.Importance.Badge()
	if n.IsLocked {
		header += " [locked]"
	}
	if m.board.IsSelected(n.ID) {
		header += " *"
	}
	if m.board.EditingID() == n.ID {
		header += " editing"
	}

	lines := make([][]rune, 0, max(rows, 1))
	lines = append(lines, []rune(header))
	body := formatter.Wrap(cellSafe(n.Content), inner)
	for i := 1; i < rows-1; i++ {
		text := ""
		if i-1 < len(body) {
			text = " " + body[i-1]
		}
		lines = append(lines, []rune(text))
	}
	if rows > 1 {
		var names []string
		for _, t := range m.board.NoteTags(n) {
			names = append(names, "#"+t.Name)
		}
		lines = append(lines, []rune(" "+cellSafe(strings.Join(names, " "))))
	}
	return noteText{col: col, row: row, lines: lines, lastCol: lastCol}
}

// cellSafe replaces runes that do not occupy exactly one cell so the
// canvas stays aligned with the hit-test grid.
func cellSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r < ' ':
			return ' '
		case runewidth.RuneWidth(r) != 1:
			return '·'
		}
		return r
	}, s)
}

// canvas is a grid of runes with an interned style per cell.
type canvas struct {
	rows   [][]canvasCell
	styles []lipgloss.Style
	keys   map[string]int
}

type canvasCell struct {
	r     rune
	style int
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		rows:   make([][]canvasCell, h),
		styles: []lipgloss.Style{lipgloss.NewStyle()},
		keys:   map[string]int{"": 0},
	}
	for i := range c.rows {
		c.rows[i] = make([]canvasCell, w)
		for j := range c.rows[i] {
			c.rows[i][j] = canvasCell{r: ' '}
		}
	}
	return c
}

func (c *canvas) style(key string, build func() lipgloss.Style) int {
	if i, ok := c.keys[key]; ok {
		return i
	}
	c.styles = append(c.styles, build())
	c.keys[key] = len(c.styles) - 1
	return len(c.styles) - 1
}

func (c *canvas) set(col, row int, r rune, style int) {
	if row < 0 || row >= len(c.rows) || col < 0 || col >= len(c.rows[row]) {
		return
	}
	c.rows[row][col] = canvasCell{r: r, style: style}
}

func (c *canvas) String() string {
	var out strings.Builder
	for i, row := range c.rows {
		if i > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].style == row[start].style {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, cell := range row[start:j] {
				run = append(run, cell.r)
			}
			if row[start].style == 0 {
				out.WriteString(string(run))
			} else {
				out.WriteString(c.styles[row[start].style].Render(string(run)))
			}
			start = j
		}
	}
	return out.String()
}

// renderCanvas paints every cell from a hit test at the cell's top-left
// point, so a note is drawn exactly where it can be grabbed.
func (m *boardModel) renderCanvas(w, h int) string {
	c := newCanvas(w, h)
	texts := make(map[string]noteText)
	notes := make(map[string]*domain.Note)
	for _, n := range m.board.Notes() {
		texts[n.ID] = m.layoutNote(n)
		notes[n.ID] = n
	}

	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			id, region := m.board.HitTest(cellPoint(col, row))
			if id == "" {
				continue
			}
			n, t := notes[id], texts[id]
			r := t.at(row-t.row, col-t.col)
			if region == board.RegionHandle {
				r = ' '
				if col == t.lastCol {
					r = handleGlyph
				}
			}
			c.set(col, row, r, m.noteStyle(c, n, region))
		}
	}

	if menu := m.board.Menu(); menu != nil {
		m.paintMenu(c, menu)
	}
	return c.String()
}

func (m *boardModel) noteStyle(c *canvas, n *domain.Note, region board.Region) int {
	focused := m.board.Focused() == n.ID
	selected := m.board.IsSelected(n.ID)
	key := fmt.Sprintf("%s/%s/%t/%t/%t", n.Color, region, focused, selected, n.IsLocked)
	return c.style(key, func() lipgloss.Style {
		s := lipgloss.NewStyle().Background(formatter.NotePaper(n.Color)).Foreground(colorInk)
		switch region {
		case board.RegionHeader:
			s = s.Bold(true)
			if selected {
				s = s.Background(colorSelected).Foreground(formatter.ColorFg)
			}
			if focused {
				s = s.Underline(true)
			}
		case board.RegionFooter, board.RegionHandle:
			s = s.Italic(true)
		}
		if n.IsLocked && region != board.RegionHeader {
			s = s.Foreground(colorLockedFg)
		}
		return s
	})
}

func (m *boardModel) paintMenu(c *canvas, menu *board.Menu) {
	col, row, w, h := m.menuBox(menu)
	frame := c.style("menu/frame", func() lipgloss.Style {
		return lipgloss.NewStyle().Background(colorMenuBg).Foreground(formatter.ColorDim)
	})
	item := c.style("menu/item", func() lipgloss.Style {
		return lipgloss.NewStyle().Background(colorMenuBg).Foreground(formatter.ColorFg)
	})
	cursor := c.style("menu/cursor", func() lipgloss.Style {
		return lipgloss.NewStyle().Background(formatter.ColorHeader).Foreground(colorInk).Bold(true)
	})

	for x := 0; x < w; x++ {
		top, bottom := '─', '─'
		switch x {
		case 0:
			top, bottom = '┌', '└'
		case w - 1:
			top, bottom = '┐', '┘'
		}
		c.set(col+x, row, top, frame)
		c.set(col+x, row+h-1, bottom, frame)
	}
	for i, it := range menu.Items {
		y := row + 1 + i
		style := item
		switch {
		case i == m.menuCursor:
			style = cursor
		case !it.Enabled:
			style = frame
		}
		c.set(col, y, '│', frame)
		c.set(col+w-1, y, '│', frame)
		label := []rune(" " + it.Label)
		for x := 1; x < w-1; x++ {
			r := ' '
			if x-1 < len(label) {
				r = label[x-1]
			}
			c.set(col+x, y, r, style)
		}
	}
}

// Panels

func (m *boardModel) renderEditor(w int) string {
	title := "Editing note " + formatter.ShortID(m.board.EditingID())
	return formatter.Dim(strings.Repeat("─", w)) + "\n" +
		formatter.StyleHeader.Render(title) + "\n" +
		m.editor.View()
}

func (m *boardModel) renderTags(w int) string {
	editor := m.board.TagEditor()
	title := "Tags for note " + formatter.ShortID(editor.NoteID())
	if n, ok := m.board.Note(editor.NoteID()); ok && n.Content != "" {
		title += ": " + n.Preview(30)
	}

	entries := m.board.TagEntries()
	start := 0
	if m.tagCursor >= maxTagRows {
		start = m.tagCursor - maxTagRows + 1
	}
	end := min(len(entries), start+maxTagRows)

	lines := []string{
		formatter.Dim(strings.Repeat("─", w)),
		formatter.StyleHeader.Render(formatter.Truncate(title, w)),
	}
	for i := start; i < end; i++ {
		e := entries[i]
		box := "[ ]"
		if e.Checked {
			box = "[x]"
		}
		pointer := "  "
		if i == m.tagCursor {
			pointer = formatter.StyleYellow.Render("> ")
		}
		line := pointer + box + " " + e.Tag.Name
		if e.Tag.Color != "" {
			line = pointer + box + " " + lipgloss.NewStyle().Foreground(lipgloss.Color(e.Tag.Color)).Render(e.Tag.Name)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *boardModel) renderStatus(w int) string {
	if m.status != "" {
		text := formatter.Truncate(m.status, w)
		if m.statusErr {
			return formatter.StyleRed.Render(text)
		}
		return formatter.StyleGreen.Render(text)
	}
	parts := []string{fmt.Sprintf("%d notes", m.board.Len())}
	if sel := len(m.board.SelectedIDs()); sel > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", sel))
	}
	parts = append(parts, fmt.Sprintf("zoom %.0f%%", m.board.Zoom()*100))
	if m.committer != nil {
		if p := m.committer.Pending(); p > 0 {
			parts = append(parts, fmt.Sprintf("%d unsaved", p))
		}
	}
	return formatter.Dim(formatter.Truncate(strings.Join(parts, " · "), w))
}

func (m *boardModel) renderHelp(w int) string {
	var hints []string
	for _, b := range m.keys.shortHelp(m.mode()) {
		hints = append(hints, b.Help().Key+": "+b.Help().Desc)
	}
	return formatter.Dim(formatter.Truncate(strings.Join(hints, "  "), w))
}
