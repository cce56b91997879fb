package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alexanderramin/pinboard/internal/config"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/gateway"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/alexanderramin/pinboard/internal/service"
	"github.com/alexanderramin/pinboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App over the local gateway and an in-memory DB.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	notes := service.NewNoteService(repository.NewSQLiteNoteRepo(database), testutil.NewTestUoW(database), "tester")
	tags := service.NewTagService(repository.NewSQLiteTagRepo(database))

	cfg := config.DefaultConfig()
	cfg.Author = "tester"
	return &App{
		Config: cfg,
		Store:  gateway.NewLocal(notes, tags, "tester"),
	}
}

// runCmd executes the command tree with args and returns what it printed.
func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func onlyNote(t *testing.T, app *App) *domain.Note {
	t.Helper()
	notes, err := app.Store.ListNotes(context.Background())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	return notes[0]
}

func TestNoteAdd_FromFlags(t *testing.T) {
	app := testApp(t)

	out, err := runCmd(t, app, "note", "add", "--content", "Buy milk", "--x", "40", "--y", "60",
		"--color", "Blue", "--importance", "high")
	require.NoError(t, err)
	assert.Contains(t, out, "Pinned note")
	assert.Contains(t, out, "40,60")

	n := onlyNote(t, app)
	assert.Equal(t, "Buy milk", n.Content)
	assert.Equal(t, domain.ColorBlue, n.Color)
	assert.Equal(t, domain.ImportanceHigh, n.Importance)
	assert.Equal(t, domain.DefaultNoteWidth, n.Width)
	assert.Equal(t, "tester", n.Author)
}

func TestNoteAdd_RejectsBadFlags(t *testing.T) {
	app := testApp(t)

	_, err := runCmd(t, app, "note", "add", "--content", "x", "--color", "teal")
	assert.ErrorIs(t, err, domain.ErrInvalidColor)

	_, err = runCmd(t, app, "note", "add", "--content", "x", "--width", "100")
	assert.ErrorIs(t, err, domain.ErrInvalidSize)

	_, err = runCmd(t, app, "note", "add", "--content", "x", "--tag", "nope")
	assert.ErrorContains(t, err, "tag not found")
}

func TestNoteAdd_WithTagsByName(t *testing.T) {
	app := testApp(t)

	_, err := runCmd(t, app, "tag", "add", "work")
	require.NoError(t, err)
	_, err = runCmd(t, app, "tag", "add", "home")
	require.NoError(t, err)

	_, err = runCmd(t, app, "note", "add", "--content", "tagged", "--tag", "WORK", "--tag", "home")
	require.NoError(t, err)

	n := onlyNote(t, app)
	assert.Len(t, n.TagIDs, 2)

	out, err := runCmd(t, app, "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "tagged")
	assert.Contains(t, out, "home")
	assert.Contains(t, out, "work")
}

func TestNoteList_Empty(t *testing.T) {
	out, err := runCmd(t, testApp(t), "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No notes on the board.")
}

func TestNoteShow_ByPrefix(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "note", "add", "--content", "details here")
	require.NoError(t, err)
	n := onlyNote(t, app)

	out, err := runCmd(t, app, "note", "show", n.ID[:6])
	require.NoError(t, err)
	assert.Contains(t, out, n.ID)
	assert.Contains(t, out, "details here")

	_, err = runCmd(t, app, "note", "show", "zzz")
	assert.ErrorContains(t, err, "note not found")
}

func TestNoteEdit(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "note", "add", "--content", "draft")
	require.NoError(t, err)
	id := onlyNote(t, app).ID

	_, err = runCmd(t, app, "note", "edit", id)
	assert.ErrorContains(t, err, "nothing to change")

	out, err := runCmd(t, app, "note", "edit", id, "--content", "final", "--color", "pink", "--importance", "med")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated note")

	n := onlyNote(t, app)
	assert.Equal(t, "final", n.Content)
	assert.Equal(t, domain.ColorPink, n.Color)
	assert.Equal(t, domain.ImportanceMedium, n.Importance)
}

func TestNoteMoveAndResize(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "note", "add", "--content", "m")
	require.NoError(t, err)
	id := onlyNote(t, app).ID

	_, err = runCmd(t, app, "note", "move", id, "300", "-20")
	require.NoError(t, err)
	_, err = runCmd(t, app, "note", "resize", id, "50", "500")
	require.NoError(t, err)

	n := onlyNote(t, app)
	assert.Equal(t, 300.0, n.X)
	assert.Equal(t, -20.0, n.Y)
	assert.Equal(t, domain.MinNoteWidth, n.Width, "resize clamps to the floor")
	assert.Equal(t, 500.0, n.Height)

	_, err = runCmd(t, app, "note", "move", id, "abc", "1")
	assert.ErrorContains(t, err, "invalid number")
}

func TestNoteLockBlocksChanges(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "note", "add", "--content", "keep")
	require.NoError(t, err)
	id := onlyNote(t, app).ID

	_, err = runCmd(t, app, "note", "lock", id)
	require.NoError(t, err)

	_, err = runCmd(t, app, "note", "edit", id, "--content", "changed")
	assert.ErrorIs(t, err, domain.ErrNoteLocked)
	_, err = runCmd(t, app, "note", "move", id, "1", "1")
	assert.ErrorIs(t, err, domain.ErrNoteLocked)
	_, err = runCmd(t, app, "note", "rm", id, "--yes")
	assert.ErrorIs(t, err, domain.ErrNoteLocked)

	_, err = runCmd(t, app, "note", "unlock", id)
	require.NoError(t, err)
	_, err = runCmd(t, app, "note", "edit", id, "--content", "changed")
	require.NoError(t, err)
	assert.Equal(t, "changed", onlyNote(t, app).Content)
}

func TestNoteTag_ReplaceAndClear(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "tag", "add", "a")
	require.NoError(t, err)
	_, err = runCmd(t, app, "note", "add", "--content", "n")
	require.NoError(t, err)
	id := onlyNote(t, app).ID

	_, err = runCmd(t, app, "note", "tag", id)
	assert.ErrorContains(t, err, "--clear")

	_, err = runCmd(t, app, "note", "tag", id, "a")
	require.NoError(t, err)
	assert.Len(t, onlyNote(t, app).TagIDs, 1)

	_, err = runCmd(t, app, "note", "tag", id, "--clear")
	require.NoError(t, err)
	assert.Empty(t, onlyNote(t, app).TagIDs)
}

func TestNoteRemove(t *testing.T) {
	app := testApp(t)
	_, err := runCmd(t, app, "note", "add", "--content", "bye")
	require.NoError(t, err)
	id := onlyNote(t, app).ID

	out, err := runCmd(t, app, "note", "rm", id)
	require.NoError(t, err, "no prompt when not interactive")
	assert.Contains(t, out, "Deleted note")

	notes, err := app.Store.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteID_AmbiguousPrefix(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	for _, id := range []string{"abc-1", "abc-2"} {
		_, err := app.Store.CreateNote(ctx, testutil.NewTestNote(id, func(n *domain.Note) { n.ID = id }))
		require.NoError(t, err)
	}

	_, err := runCmd(t, app, "note", "show", "abc")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = runCmd(t, app, "note", "show", "abc-2")
	require.NoError(t, err)
}

func TestTagCommands(t *testing.T) {
	app := testApp(t)

	out, err := runCmd(t, app, "tag", "add", "urgent", "--color", "#fb4934")
	require.NoError(t, err)
	assert.Contains(t, out, "Added tag urgent")

	_, err = runCmd(t, app, "tag", "add", "urgent")
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = runCmd(t, app, "tag", "add")
	assert.ErrorContains(t, err, "tag name is required")

	_, err = runCmd(t, app, "note", "add", "--content", "n", "--tag", "urgent")
	require.NoError(t, err)

	out, err = runCmd(t, app, "tag", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "urgent")
	assert.Contains(t, out, "#fb4934")

	_, err = runCmd(t, app, "tag", "rm", "Urgent")
	require.NoError(t, err)
	assert.Empty(t, onlyNote(t, app).TagIDs, "deleting a tag untags its notes")

	out, err = runCmd(t, app, "tag", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No tags yet.")
}

func TestServe_RequiresLocalStore(t *testing.T) {
	_, err := runCmd(t, testApp(t), "serve")
	assert.ErrorContains(t, err, "local database")
}

func TestServe_UsesAddrFlag(t *testing.T) {
	app := testApp(t)
	var gotAddr string
	app.Serve = func(ctx context.Context, addr string) error {
		gotAddr = addr
		return nil
	}

	out, err := runCmd(t, app, "serve", "--addr", "127.0.0.1:9999")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", gotAddr)
	assert.Contains(t, out, "Listening on 127.0.0.1:9999")
}

func TestRoot_PrintsHelpWhenNotInteractive(t *testing.T) {
	out, err := runCmd(t, testApp(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Sticky notes on an infinite board")
	assert.Contains(t, out, "note")
}

func TestRoot_FlagsOverrideConfigBeforeConnect(t *testing.T) {
	app := testApp(t)
	store := app.Store
	var seen config.Config
	closed := false
	app.Connect = func(a *App) (func() error, error) {
		seen = a.Config
		a.Store = store
		return func() error { closed = true; return nil }, nil
	}

	_, err := runCmd(t, app, "--db", "/tmp/other.db", "--remote", "http://example.test", "note", "list")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", seen.DBPath)
	assert.Equal(t, "http://example.test", seen.Remote)
	assert.True(t, closed, "connection closed after the command")
}

func TestBoard_RejectsBadZoom(t *testing.T) {
	_, err := runCmd(t, testApp(t), "board", "--zoom", "0")
	assert.ErrorContains(t, err, "--zoom")
}

func TestResolveTag(t *testing.T) {
	tags := []domain.Tag{
		{ID: "t-100", Name: "Work"},
		{ID: "t-200", Name: "work-later"},
		{ID: "t-201", Name: "home"},
	}

	got, err := resolveTag(tags, "t-200")
	require.NoError(t, err)
	assert.Equal(t, "work-later", got.Name)

	got, err = resolveTag(tags, "WORK")
	require.NoError(t, err)
	assert.Equal(t, "t-100", got.ID)

	got, err = resolveTag(tags, "t-1")
	require.NoError(t, err)
	assert.Equal(t, "Work", got.Name)

	_, err = resolveTag(tags, "t-2")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = resolveTag(tags, "garden")
	assert.ErrorContains(t, err, "not found")
}

func TestParseColorAndImportance(t *testing.T) {
	c, err := parseColor(" Purple ")
	require.NoError(t, err)
	assert.Equal(t, domain.ColorPurple, c)

	_, err = parseImportance("urgent")
	assert.ErrorIs(t, err, domain.ErrInvalidImportance)

	for in, want := range map[string]domain.Importance{"low": domain.ImportanceLow, "MED": domain.ImportanceMedium, "high": domain.ImportanceHigh} {
		got, err := parseImportance(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestNoteFormValues_Note(t *testing.T) {
	v := noteFormValues{Content: "  hello \n", Color: "green", Importance: "low", TagIDs: []string{"b", "a", "b"}}
	n := v.note()
	assert.Equal(t, "hello", n.Content)
	assert.Equal(t, domain.ColorGreen, n.Color)
	assert.Equal(t, domain.ImportanceLow, n.Importance)
	assert.Equal(t, []string{"a", "b"}, n.TagIDs)
}
