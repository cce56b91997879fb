package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gateway"
	"github.com/alexanderramin/pinboard/internal/teatest"
	"github.com/alexanderramin/pinboard/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardHarness drives a board model over the local store with a running
// committer. The seeded note sits at (100,100) with size 200x200, which at
// zoom 1 covers columns 10-29 and rows 5-14: header on row 5, footer on
// row 14, resize handle in columns 28-29 of row 14.
type boardHarness struct {
	t         *testing.T
	app       *App
	model     *boardModel
	committer *gateway.Committer
	driver    *teatest.Driver
}

func newBoardHarness(t *testing.T, seed ...*domain.Note) *boardHarness {
	t.Helper()
	app := testApp(t)
	ctx := context.Background()
	for _, n := range seed {
		_, err := app.Store.CreateNote(ctx, n)
		require.NoError(t, err)
	}

	c := gateway.NewCommitter(app.Store, nil, 0)
	runCtx, cancel := context.WithCancel(ctx)
	go c.Run(runCtx)
	t.Cleanup(func() {
		c.Close()
		select {
		case <-c.Done():
		case <-time.After(2 * time.Second):
		}
		cancel()
	})

	m := newBoardModel(app.Store, c, nil, "tester", 1)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()
	return &boardHarness{t: t, app: app, model: m, committer: c, driver: d}
}

// flush waits until every queued change has reached the store.
func (h *boardHarness) flush() {
	h.t.Helper()
	h.committer.Close()
	select {
	case <-h.committer.Done():
	case <-time.After(2 * time.Second):
		h.t.Fatal("committer did not drain")
	}
}

func (h *boardHarness) stored(id string) *domain.Note {
	h.t.Helper()
	notes, err := h.app.Store.ListNotes(context.Background())
	require.NoError(h.t, err)
	for _, n := range notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func seededNote(content string, opts ...testutil.NoteOption) *domain.Note {
	return testutil.NewTestNote(content, append([]testutil.NoteOption{testutil.WithPosition(100, 100)}, opts...)...)
}

func TestBoardTUI_LoadsAndRendersNotes(t *testing.T) {
	n := seededNote("Buy milk", testutil.WithImportance(domain.ImportanceHigh))
	h := newBoardHarness(t, n)

	assert.True(t, h.model.loaded)
	assert.Equal(t, 1, h.model.board.Len())
	assert.True(t, h.driver.ViewContains("Buy milk"))
	assert.True(t, h.driver.ViewContains("HIGH"))
	assert.True(t, h.driver.ViewContains("◢"))
	assert.True(t, h.driver.ViewContains("1 notes"))
}

func TestBoardTUI_DragMovesNoteAndPersists(t *testing.T) {
	n := seededNote("drag me")
	h := newBoardHarness(t, n)

	// Grab the body at (150,140) and move 5 columns right, 2 rows down.
	h.driver.Drag(15, 7, [2]int{18, 8}, [2]int{20, 9})

	got, ok := h.model.board.Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, 150.0, got.X)
	assert.Equal(t, 140.0, got.Y)
	assert.Zero(t, h.model.board.ListenerCount(), "release detaches the gesture listeners")

	h.flush()
	stored := h.stored(n.ID)
	assert.Equal(t, 150.0, stored.X)
	assert.Equal(t, 140.0, stored.Y)
}

func TestBoardTUI_HandleResizesWithFloor(t *testing.T) {
	n := seededNote("resize me")
	h := newBoardHarness(t, n)

	h.driver.Drag(29, 14, [2]int{34, 17})
	got, _ := h.model.board.Note(n.ID)
	assert.Equal(t, 250.0, got.Width)
	assert.Equal(t, 260.0, got.Height)
	assert.Equal(t, 100.0, got.X, "resizing does not move the note")

	// Drag the handle far up-left: the size stops at the floor.
	h.driver.Drag(34, 17, [2]int{0, 0})
	got, _ = h.model.board.Note(n.ID)
	assert.Equal(t, domain.MinNoteWidth, got.Width)
	assert.Equal(t, domain.MinNoteHeight, got.Height)

	h.flush()
	assert.Equal(t, domain.MinNoteWidth, h.stored(n.ID).Width)
}

func TestBoardTUI_LockedNoteDoesNotMove(t *testing.T) {
	n := seededNote("pinned", testutil.Locked())
	h := newBoardHarness(t, n)

	h.driver.Drag(15, 7, [2]int{25, 10})
	got, _ := h.model.board.Note(n.ID)
	assert.Equal(t, 100.0, got.X)
	assert.Equal(t, 100.0, got.Y)
	assert.True(t, h.driver.ViewContains("[locked]"))

	h.driver.PressKey('x')
	assert.True(t, h.driver.ViewContains("Note is locked"))
	assert.Equal(t, 1, h.model.board.Len())
}

func TestBoardTUI_CtrlClickTogglesSelection(t *testing.T) {
	a := seededNote("a")
	b := seededNote("b", testutil.WithPosition(400, 100))
	h := newBoardHarness(t, a, b)

	h.driver.CtrlClick(15, 7)
	h.driver.CtrlClick(45, 7)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, h.model.board.SelectedIDs())
	assert.True(t, h.driver.ViewContains("2 selected"))

	h.driver.CtrlClick(45, 7)
	assert.Equal(t, []string{a.ID}, h.model.board.SelectedIDs())
}

func TestBoardTUI_DeleteSelectedSkipsLocked(t *testing.T) {
	a := seededNote("a")
	b := seededNote("b", testutil.WithPosition(400, 100), testutil.Locked())
	h := newBoardHarness(t, a, b)

	h.driver.CtrlClick(15, 7)
	h.driver.CtrlClick(45, 7)
	h.driver.PressKey('X')

	assert.True(t, h.driver.ViewContains("Deleted 1, skipped 1 locked"))
	assert.Equal(t, []string{b.ID}, h.model.board.SelectedIDs())

	h.flush()
	assert.Nil(t, h.stored(a.ID))
	assert.NotNil(t, h.stored(b.ID))
}

func TestBoardTUI_KeyboardColorAndLock(t *testing.T) {
	n := seededNote("colors")
	h := newBoardHarness(t, n)

	h.driver.Press(tea.KeyTab)
	assert.Equal(t, n.ID, h.model.board.Focused())

	h.driver.PressKey('c')
	h.driver.PressKey('i')
	h.driver.PressKey('l')
	assert.True(t, h.driver.ViewContains("Locked"))

	h.driver.PressKey('c')
	assert.True(t, h.driver.ViewContains("Note is locked"))

	h.flush()
	stored := h.stored(n.ID)
	assert.Equal(t, domain.ColorYellow.Next(), stored.Color)
	assert.Equal(t, domain.ImportanceHigh, stored.Importance)
	assert.True(t, stored.IsLocked)
}

func TestBoardTUI_NewNoteAndEdit(t *testing.T) {
	h := newBoardHarness(t)

	h.driver.PressKey('n')
	require.Equal(t, modeEditing, h.model.mode())
	assert.True(t, h.driver.ViewContains("Editing note"))

	h.driver.Type("hello board")
	h.driver.Press(tea.KeyCtrlS)
	assert.Equal(t, modeCanvas, h.model.mode())
	assert.True(t, h.driver.ViewContains("hello board"))

	h.flush()
	notes, err := h.app.Store.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "hello board", notes[0].Content)
	assert.Equal(t, "tester", notes[0].Author)
}

func TestBoardTUI_EscRevertsEdit(t *testing.T) {
	n := seededNote("original")
	h := newBoardHarness(t, n)

	h.driver.Press(tea.KeyTab)
	h.driver.PressKey('e')
	h.driver.Type(" changed")
	h.driver.PressEsc()

	got, _ := h.model.board.Note(n.ID)
	assert.Equal(t, "original", got.Content)
	assert.True(t, h.driver.ViewContains("Edit discarded"))
}

func TestBoardTUI_ClickOutsideCommitsEdit(t *testing.T) {
	n := seededNote("start")
	h := newBoardHarness(t, n)

	h.driver.Press(tea.KeyTab)
	h.driver.PressEnter()
	h.driver.Type(" end")
	h.driver.Click(2, 1)

	assert.Equal(t, modeCanvas, h.model.mode())
	got, _ := h.model.board.Note(n.ID)
	assert.Equal(t, "start end", got.Content)
}

func TestBoardTUI_ContextMenu(t *testing.T) {
	n := seededNote("menu")
	h := newBoardHarness(t, n)

	h.driver.RightClick(15, 7)
	require.NotNil(t, h.model.board.Menu())
	assert.True(t, h.driver.ViewContains("Bring to front"))

	// The menu opens at the pointer: border on row 7, "Lock" is the
	// second item.
	h.driver.Click(17, 9)
	assert.Nil(t, h.model.board.Menu())

	got, _ := h.model.board.Note(n.ID)
	assert.True(t, got.IsLocked)

	h.driver.PressKey('m')
	require.NotNil(t, h.model.board.Menu())
	h.driver.PressEsc()
	assert.Nil(t, h.model.board.Menu())
}

func TestBoardTUI_TagEditor(t *testing.T) {
	n := seededNote("tag me")
	h := newBoardHarness(t, n)

	tag, err := h.app.Store.CreateTag(context.Background(), &domain.Tag{Name: "work"})
	require.NoError(t, err)
	h.driver.PressKey('r')

	h.driver.Press(tea.KeyTab)
	h.driver.PressKey('t')
	require.Equal(t, modeTags, h.model.mode())
	assert.True(t, h.driver.ViewContains("[ ] work"))

	h.driver.PressKey(' ')
	assert.True(t, h.driver.ViewContains("[x] work"))
	h.driver.PressEnter()

	assert.Equal(t, modeCanvas, h.model.mode())
	assert.True(t, h.driver.ViewContains("#work"))

	h.flush()
	assert.Equal(t, []string{tag.ID}, h.stored(n.ID).TagIDs)
}

func TestBoardTUI_TagsWithoutCatalog(t *testing.T) {
	h := newBoardHarness(t, seededNote("x"))

	h.driver.Press(tea.KeyTab)
	h.driver.PressKey('t')
	assert.Equal(t, modeCanvas, h.model.mode())
	assert.True(t, h.driver.ViewContains("No tags yet"))
}

func TestBoardTUI_Zoom(t *testing.T) {
	h := newBoardHarness(t, seededNote("zoom"))

	h.driver.PressKey('+')
	assert.InDelta(t, 1.25, h.model.board.Zoom(), 1e-9)
	assert.True(t, h.driver.ViewContains("Zoom 125%"))

	h.driver.Send(tea.MouseMsg{X: 5, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.InDelta(t, 1.0, h.model.board.Zoom(), 1e-9)

	h.driver.PressKey('-')
	h.driver.PressKey('0')
	assert.Equal(t, 1.0, h.model.board.Zoom())
}

func TestBoardTUI_CommitFailureShowsStatus(t *testing.T) {
	h := newBoardHarness(t)

	h.driver.Send(commitFailedMsg{failure: gateway.Failure{
		Op:  gateway.PositionOp("abcdef123456", 1, 2),
		Err: gateway.ErrUnavailable,
	}})
	assert.True(t, h.driver.ViewContains("Could not move note abcdef12: server unreachable"))

	h.driver.Send(statusExpiredMsg{seq: h.model.statusSeq})
	assert.False(t, h.driver.ViewContains("Could not move"))
}

type failingPositions struct {
	gateway.Gateway
}

func (failingPositions) UpdatePosition(context.Context, string, float64, float64) (*domain.Note, error) {
	return nil, errors.New("boom")
}

func TestBoardModel_WaitForFailureDeliversCommitterFailures(t *testing.T) {
	app := testApp(t)
	c := gateway.NewCommitter(failingPositions{Gateway: app.Store}, nil, 0)
	m := newBoardModel(app.Store, c, nil, "tester", 1)

	require.NoError(t, c.Enqueue(gateway.PositionOp("n1", 1, 2)))
	c.Close()
	go c.Run(context.Background())

	msg := m.waitForFailure()()
	failed, ok := msg.(commitFailedMsg)
	require.True(t, ok)
	assert.Equal(t, "n1", failed.failure.Op.NoteID)

	<-c.Done()
	assert.Nil(t, m.waitForFailure()(), "closed channel ends the wait")
}

// unreachableMoves fails every position write and reports each attempt.
type unreachableMoves struct {
	gateway.Gateway
	attempts chan string
}

func (g unreachableMoves) UpdatePosition(_ context.Context, id string, x, y float64) (*domain.Note, error) {
	g.attempts <- fmt.Sprintf("%s %.0f,%.0f", id, x, y)
	return nil, gateway.ErrUnavailable
}

func awaitAttempt(t *testing.T, attempts <-chan string, want string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-attempts:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("no position write %q", want)
		}
	}
}

func TestBoardTUI_FailedSaveKeepsStateAndGesturesWork(t *testing.T) {
	app := testApp(t)
	n := seededNote("offline")
	_, err := app.Store.CreateNote(context.Background(), n)
	require.NoError(t, err)

	gw := unreachableMoves{Gateway: app.Store, attempts: make(chan string, 16)}
	c := gateway.NewCommitter(gw, nil, 0)
	go c.Run(context.Background())
	t.Cleanup(c.Close)

	m := newBoardModel(gw, c, nil, "tester", 1)
	d := teatest.New(t, m, teatest.WithSize(100, 30))
	d.DrainInit()

	d.Drag(15, 7, [2]int{20, 9})
	awaitAttempt(t, gw.attempts, n.ID+" 150,140")
	d.Send(commitFailedMsg{failure: gateway.Failure{Op: gateway.PositionOp(n.ID, 150, 140), Err: gateway.ErrUnavailable}})
	assert.True(t, d.ViewContains("Could not move note"))

	got, ok := m.board.Note(n.ID)
	require.True(t, ok)
	assert.Equal(t, 150.0, got.X, "no rollback after a failed save")
	assert.Equal(t, 140.0, got.Y)

	// The note now covers columns 15-34 and rows 7-16.
	d.Drag(20, 10, [2]int{22, 10})
	got, _ = m.board.Note(n.ID)
	assert.Equal(t, 170.0, got.X)
	assert.Equal(t, 140.0, got.Y)
	assert.Zero(t, m.board.ListenerCount())
	awaitAttempt(t, gw.attempts, n.ID+" 170,140")

	stored := func() *domain.Note {
		notes, err := app.Store.ListNotes(context.Background())
		require.NoError(t, err)
		require.Len(t, notes, 1)
		return notes[0]
	}()
	assert.Equal(t, 100.0, stored.X, "the store never saw the moves")
}

// stuckMoves blocks a position write until its context is cancelled.
type stuckMoves struct {
	gateway.Gateway
	started  chan struct{}
	returned atomic.Bool
}

func (g *stuckMoves) UpdatePosition(ctx context.Context, _ string, _, _ float64) (*domain.Note, error) {
	close(g.started)
	<-ctx.Done()
	g.returned.Store(true)
	return nil, ctx.Err()
}

func TestFlushCommitter_WaitsForInFlightOpAfterTimeout(t *testing.T) {
	gw := &stuckMoves{started: make(chan struct{})}
	c := gateway.NewCommitter(gw, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx)

	require.NoError(t, c.Enqueue(gateway.PositionOp("n1", 1, 2)))
	<-gw.started

	flushCommitter(c, cancel, 20*time.Millisecond, slog.New(slog.DiscardHandler))

	assert.True(t, gw.returned.Load(), "the in-flight write finished before flush returned")
	select {
	case <-c.Done():
	default:
		t.Fatal("committer still running after flush")
	}
}

func TestBoardTUI_QuitUnmounts(t *testing.T) {
	n := seededNote("q")
	h := newBoardHarness(t, n)

	h.driver.MouseDown(15, 7)
	_, kind := h.model.board.ActiveGesture()
	require.NotZero(t, kind)

	h.driver.PressKey('q')
	assert.True(t, h.driver.Quitting)
	assert.Zero(t, h.model.board.ListenerCount())
	assert.Empty(t, h.driver.View())
}
