package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/pinboard/internal/board"
	"github.com/alexanderramin/pinboard/internal/cli/formatter"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gateway"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// Terminal cells map to screen pixels at a fixed ratio; the engine only
// sees pixels.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

const (
	statusTTL    = 4 * time.Second
	loadTimeout  = 10 * time.Second
	editorHeight = 6
)

type boardLoadedMsg struct {
	notes []*domain.Note
	tags  []domain.Tag
}

type boardLoadFailedMsg struct{ err error }

type commitFailedMsg struct{ failure gateway.Failure }

type statusExpiredMsg struct{ seq int }

// boardModel is the interactive board. It owns the engine and forwards
// every change it reports to the committer.
type boardModel struct {
	store     gateway.Gateway
	committer *gateway.Committer
	logger    *slog.Logger
	author    string

	board  *board.Board
	keys   boardKeyMap
	editor textarea.Model

	width, height int
	tagCursor     int
	menuCursor    int
	loaded        bool
	quitting      bool

	status    string
	statusErr bool
	statusSeq int
}

func newBoardModel(store gateway.Gateway, committer *gateway.Committer, logger *slog.Logger, author string, zoom float64) *boardModel {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ed := textarea.New()
	ed.Placeholder = "Write something…"
	ed.ShowLineNumbers = false
	ed.CharLimit = 20000
	ed.SetHeight(editorHeight - 2)

	m := &boardModel{
		store:     store,
		committer: committer,
		logger:    logger,
		author:    author,
		keys:      newBoardKeyMap(),
		editor:    ed,
	}
	m.board = board.New(board.Callbacks{
		OnToggleSelect: func(id string) {
			m.logger.Debug("note_selection_toggled", "note_id", id)
		},
		OnUpdate: func(id string, patch domain.NotePatch) {
			m.enqueue(gateway.UpdateOp(id, patch))
		},
		OnDelete: func(id string) {
			m.enqueue(gateway.DeleteOp(id))
		},
		OnPositionUpdate: func(id string, x, y float64) {
			m.enqueue(gateway.PositionOp(id, x, y))
		},
	}, board.WithZoom(zoom))
	return m
}

func (m *boardModel) enqueue(op gateway.Op) {
	if m.committer == nil {
		return
	}
	if err := m.committer.Enqueue(op); err != nil {
		m.logger.Warn("enqueue_failed", "op", op.Kind.String(), "note_id", op.NoteID, "error", err)
		m.setError(fmt.Sprintf("Change to %s not saved: %v", formatter.ShortID(op.NoteID), err))
	}
}

func (m *boardModel) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForFailure())
}

func (m *boardModel) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		notes, err := store.ListNotes(ctx)
		if err != nil {
			return boardLoadFailedMsg{err: err}
		}
		tags, err := store.ListTags(ctx)
		if err != nil {
			return boardLoadFailedMsg{err: err}
		}
		return boardLoadedMsg{notes: notes, tags: tags}
	}
}

// waitForFailure blocks on the committer's failure channel. It is
// re-issued after every failure it delivers.
func (m *boardModel) waitForFailure() tea.Cmd {
	if m.committer == nil {
		return nil
	}
	failures := m.committer.Failures()
	return func() tea.Msg {
		f, ok := <-failures
		if !ok {
			return nil
		}
		return commitFailedMsg{failure: f}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.statusSeq
	cmd := m.update(msg)
	if m.statusSeq != seq && m.status != "" {
		cmd = tea.Batch(cmd, expireStatus(m.statusSeq))
	}
	return m, cmd
}

func (m *boardModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(max(msg.Width-4, 10))
		return nil

	case boardLoadedMsg:
		m.board.Load(msg.notes)
		m.board.SetCatalog(msg.tags)
		if m.loaded {
			m.setStatus(fmt.Sprintf("Reloaded %d notes", m.board.Len()))
		}
		m.loaded = true
		return nil

	case boardLoadFailedMsg:
		m.logger.Error("board_load_failed", "error", msg.err)
		m.setError("Could not load notes: " + msg.err.Error())
		return nil

	case commitFailedMsg:
		m.setError(describeFailure(msg.failure))
		return m.waitForFailure()

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status, m.statusErr = "", false
		}
		return nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode() == modeEditing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return cmd
	}
	return nil
}

func (m *boardModel) mode() boardMode {
	switch {
	case m.board.EditingID() != "":
		return modeEditing
	case m.board.TagEditor().IsOpen():
		return modeTags
	case m.board.Menu() != nil:
		return modeMenu
	default:
		return modeCanvas
	}
}

// Keyboard

func (m *boardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.mode() {
	case modeEditing:
		return m.handleEditorKey(msg)
	case modeTags:
		m.handleTagKey(msg)
		return nil
	case modeMenu:
		return m.handleMenuKey(msg)
	}

	focused := m.board.Focused()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.New):
		return m.newNote()
	case key.Matches(msg, m.keys.Edit):
		return m.beginEdit(focused)
	case key.Matches(msg, m.keys.Tags):
		m.openTags(focused)
	case key.Matches(msg, m.keys.Lock):
		if m.board.ToggleLock(focused) {
			if n, ok := m.board.Note(focused); ok && n.IsLocked {
				m.setStatus("Locked")
			} else {
				m.setStatus("Unlocked")
			}
		}
	case key.Matches(msg, m.keys.Color):
		if !m.board.CycleColor(focused) {
			m.refuseLocked(focused)
		}
	case key.Matches(msg, m.keys.Importance):
		if !m.board.CycleImportance(focused) {
			m.refuseLocked(focused)
		}
	case key.Matches(msg, m.keys.Select):
		m.board.ToggleSelect(focused)
	case key.Matches(msg, m.keys.Delete):
		m.deleteNote(focused)
	case key.Matches(msg, m.keys.DeleteSel):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Front):
		m.board.BringToFront(focused)
	case key.Matches(msg, m.keys.NextNote):
		m.board.FocusNext(1)
	case key.Matches(msg, m.keys.PrevNote):
		m.board.FocusNext(-1)
	case key.Matches(msg, m.keys.ZoomIn):
		m.board.ZoomIn()
		m.setStatus(fmt.Sprintf("Zoom %.0f%%", m.board.Zoom()*100))
	case key.Matches(msg, m.keys.ZoomOut):
		m.board.ZoomOut()
		m.setStatus(fmt.Sprintf("Zoom %.0f%%", m.board.Zoom()*100))
	case key.Matches(msg, m.keys.ZoomReset):
		_ = m.board.SetZoom(1)
		m.setStatus("Zoom 100%")
	case key.Matches(msg, m.keys.Reload):
		return m.load()
	case key.Matches(msg, m.keys.Menu):
		if n, ok := m.board.Note(focused); ok {
			r := m.board.ScreenRect(n)
			m.openMenu(focused, r.Min)
		}
	case key.Matches(msg, m.keys.Cancel):
		m.board.ClearSelection()
	}
	return nil
}

func (m *boardModel) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.commitEdit()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelEdit()
		m.editor.Blur()
		m.setStatus("Edit discarded")
		return nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *boardModel) handleTagKey(msg tea.KeyMsg) {
	entries := m.board.TagEntries()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.tagCursor > 0 {
			m.tagCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.tagCursor < len(entries)-1 {
			m.tagCursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.tagCursor < len(entries) {
			m.board.ToggleTag(entries[m.tagCursor].Tag.ID)
		}
	case key.Matches(msg, m.keys.Confirm):
		if m.board.SaveTags() {
			m.setStatus("Tags saved")
		}
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelTags()
	}
}

func (m *boardModel) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	menu := m.board.Menu()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.menuCursor < len(menu.Items)-1 {
			m.menuCursor++
		}
	case key.Matches(msg, m.keys.Confirm):
		return m.invokeMenu(menu.Items[m.menuCursor])
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Menu):
		m.board.CloseMenu()
	}
	return nil
}

// Actions

func (m *boardModel) quit() tea.Cmd {
	if id := m.board.EditingID(); id != "" {
		m.commitEdit()
	}
	m.board.Unmount()
	m.quitting = true
	return tea.Quit
}

// newNote pins a fresh note near the top-left of the view, cascading so
// consecutive notes do not stack exactly, and opens it for editing.
func (m *boardModel) newNote() tea.Cmd {
	step := float64(m.board.Len()%8) * 2 * cellHeight
	at := m.board.Transform().ToCanvas(board.Point{X: 2*cellWidth + step, Y: cellHeight + step})
	now := time.Now().UTC()
	n := &domain.Note{
		ID:         uuid.New().String(),
		X:          at.X,
		Y:          at.Y,
		Width:      domain.DefaultNoteWidth,
		Height:     domain.DefaultNoteHeight,
		Color:      domain.ColorYellow,
		Importance: domain.ImportanceMedium,
		Author:     m.author,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if !m.board.Add(n) {
		return nil
	}
	if added, ok := m.board.Note(n.ID); ok {
		m.enqueue(gateway.CreateOp(added))
	}
	return m.beginEdit(n.ID)
}

func (m *boardModel) beginEdit(id string) tea.Cmd {
	if !m.board.BeginEdit(id) {
		m.refuseLocked(id)
		return nil
	}
	n, _ := m.board.Note(id)
	m.editor.SetValue(n.Content)
	return m.editor.Focus()
}

func (m *boardModel) commitEdit() {
	text := m.editor.Value()
	m.editor.Blur()
	if m.board.CommitEdit(text) {
		m.setStatus("Saved")
	}
}

func (m *boardModel) openTags(id string) {
	if len(m.board.Catalog()) == 0 {
		m.setStatus("No tags yet. Add one with: pinboard tag add NAME")
		return
	}
	if !m.board.OpenTagEditor(id) {
		m.refuseLocked(id)
		return
	}
	m.tagCursor = 0
}

func (m *boardModel) openMenu(id string, at board.Point) {
	if m.board.OpenMenu(id, at) {
		m.menuCursor = 0
	}
}

func (m *boardModel) invokeMenu(item board.MenuItem) tea.Cmd {
	if !item.Enabled {
		return nil
	}
	switch item.Action {
	case board.MenuEdit:
		id := m.board.Menu().NoteID
		m.board.CloseMenu()
		return m.beginEdit(id)
	case board.MenuTags:
		id := m.board.Menu().NoteID
		m.board.CloseMenu()
		m.openTags(id)
		return nil
	case board.MenuDelete:
		id := m.board.Menu().NoteID
		m.board.CloseMenu()
		m.deleteNote(id)
		return nil
	}
	m.board.InvokeMenu(item.Action)
	return nil
}

func (m *boardModel) deleteNote(id string) {
	if id == "" {
		return
	}
	switch err := m.board.Delete(id); {
	case err == nil:
		m.setStatus("Deleted note " + formatter.ShortID(id))
	case errors.Is(err, domain.ErrNoteLocked):
		m.setError("Note is locked")
	}
}

func (m *boardModel) deleteSelected() {
	deleted, skipped := m.board.DeleteSelected()
	switch {
	case len(deleted) == 0 && len(skipped) == 0:
		m.setStatus("Nothing selected")
	case len(skipped) > 0:
		m.setStatus(fmt.Sprintf("Deleted %d, skipped %d locked", len(deleted), len(skipped)))
	default:
		m.setStatus(fmt.Sprintf("Deleted %d notes", len(deleted)))
	}
}

func (m *boardModel) refuseLocked(id string) {
	if n, ok := m.board.Note(id); ok && n.IsLocked {
		m.setError("Note is locked")
	}
}

// Status line

func (m *boardModel) setStatus(s string) {
	m.status, m.statusErr = s, false
	m.statusSeq++
}

func (m *boardModel) setError(s string) {
	m.status, m.statusErr = s, true
	m.statusSeq++
}

func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusExpiredMsg{seq: seq} })
}

func describeFailure(f gateway.Failure) string {
	var what string
	switch f.Op.Kind {
	case gateway.OpCreate:
		what = "create"
	case gateway.OpDelete:
		what = "delete"
	case gateway.OpPosition:
		what = "move"
	default:
		what = "update"
	}
	reason := f.Err.Error()
	switch {
	case errors.Is(f.Err, gateway.ErrUnavailable):
		reason = "server unreachable"
	case errors.Is(f.Err, domain.ErrNoteLocked):
		reason = "note is locked"
	}
	return fmt.Sprintf("Could not %s note %s: %s", what, formatter.ShortID(f.Op.NoteID), reason)
}
