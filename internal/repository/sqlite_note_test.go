package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	notes := NewSQLiteNoteRepo(db)
	tags := NewSQLiteTagRepo(db)
	ctx := context.Background()

	work := testutil.NewTestTag("work")
	require.NoError(t, tags.Create(ctx, work))

	n := testutil.NewTestNote("buy milk",
		testutil.WithPosition(12.5, -40),
		testutil.WithSize(240, 180),
		testutil.WithZIndex(7),
		testutil.WithColor(domain.ColorPink),
		testutil.WithImportance(domain.ImportanceHigh),
		testutil.Locked(),
		testutil.WithTags(work.ID),
	)
	require.NoError(t, notes.Create(ctx, n))

	got, err := notes.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, n.ID, got.ID)
	assert.Equal(t, 12.5, got.X)
	assert.Equal(t, -40.0, got.Y)
	assert.Equal(t, 240.0, got.Width)
	assert.Equal(t, 180.0, got.Height)
	assert.Equal(t, 7, got.ZIndex)
	assert.Equal(t, domain.ColorPink, got.Color)
	assert.Equal(t, domain.ImportanceHigh, got.Importance)
	assert.True(t, got.IsLocked)
	assert.Equal(t, "buy milk", got.Content)
	assert.Equal(t, "tester", got.Author)
	assert.Equal(t, []string{work.ID}, got.TagIDs)
	assert.WithinDuration(t, n.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func TestNoteRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteRepo_ListKeepsInsertionOrder(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)
	ctx := context.Background()

	// z-order is deliberately the reverse of insertion order.
	a := testutil.NewTestNote("a", testutil.WithZIndex(3))
	b := testutil.NewTestNote("b", testutil.WithZIndex(2))
	c := testutil.NewTestNote("c", testutil.WithZIndex(1))
	for _, n := range []*domain.Note{a, b, c} {
		require.NoError(t, repo.Create(ctx, n))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].Content)
	assert.Equal(t, "b", list[1].Content)
	assert.Equal(t, "c", list[2].Content)
}

func TestNoteRepo_UpdateWritesFieldsButNotPosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)
	ctx := context.Background()

	n := testutil.NewTestNote("draft", testutil.WithPosition(5, 6))
	require.NoError(t, repo.Create(ctx, n))

	n.Content = "final"
	n.Color = domain.ColorGreen
	n.Width = 300
	n.X = 999
	n.UpdatedAt = n.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, n))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)
	assert.Equal(t, domain.ColorGreen, got.Color)
	assert.Equal(t, 300.0, got.Width)
	assert.Equal(t, 5.0, got.X, "position only changes through UpdatePosition")
}

func TestNoteRepo_UpdatePosition(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)
	ctx := context.Background()

	n := testutil.NewTestNote("move me")
	require.NoError(t, repo.Create(ctx, n))

	at := time.Now().UTC().Add(time.Hour)
	require.NoError(t, repo.UpdatePosition(ctx, n.ID, 120, 80, at))

	got, err := repo.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.X)
	assert.Equal(t, 80.0, got.Y)
	assert.WithinDuration(t, at, got.UpdatedAt, time.Millisecond)

	assert.ErrorIs(t, repo.UpdatePosition(ctx, "missing", 1, 1, at), ErrNotFound)
}

func TestNoteRepo_UpdateAndDeleteMissing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)
	ctx := context.Background()

	assert.ErrorIs(t, repo.Update(ctx, testutil.NewTestNote("ghost")), ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrNotFound)
}

func TestNoteRepo_DeleteDropsTagAssociations(t *testing.T) {
	db := testutil.NewTestDB(t)
	notes := NewSQLiteNoteRepo(db)
	tags := NewSQLiteTagRepo(db)
	ctx := context.Background()

	tag := testutil.NewTestTag("")
	require.NoError(t, tags.Create(ctx, tag))
	n := testutil.NewTestNote("x", testutil.WithTags(tag.ID))
	require.NoError(t, notes.Create(ctx, n))

	require.NoError(t, notes.Delete(ctx, n.ID))
	_, err := notes.GetByID(ctx, n.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM note_tags`).Scan(&count))
	assert.Zero(t, count)
}

func TestNoteRepo_MaxZIndex(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteNoteRepo(db)
	ctx := context.Background()

	z, err := repo.MaxZIndex(ctx)
	require.NoError(t, err)
	assert.Zero(t, z, "empty board")

	require.NoError(t, repo.Create(ctx, testutil.NewTestNote("a", testutil.WithZIndex(4))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestNote("b", testutil.WithZIndex(11))))
	z, err = repo.MaxZIndex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, z)
}

func TestNoteRepo_SetTagsReplacesAndIgnoresUnknown(t *testing.T) {
	db := testutil.NewTestDB(t)
	notes := NewSQLiteNoteRepo(db)
	tags := NewSQLiteTagRepo(db)
	ctx := context.Background()

	t1 := testutil.NewTestTag("t1")
	t2 := testutil.NewTestTag("t2")
	t3 := testutil.NewTestTag("t3")
	for _, tag := range []*domain.Tag{t1, t2, t3} {
		require.NoError(t, tags.Create(ctx, tag))
	}

	n := testutil.NewTestNote("tagged", testutil.WithTags(t1.ID, t2.ID))
	require.NoError(t, notes.Create(ctx, n))

	require.NoError(t, notes.SetTags(ctx, n.ID, []string{t3.ID, t1.ID, "deleted-elsewhere", t1.ID}))

	got, err := notes.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{t1.ID, t3.ID}, got.TagIDs)

	require.NoError(t, notes.SetTags(ctx, n.ID, nil))
	got, err = notes.GetByID(ctx, n.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TagIDs)
}

func TestNoteRepo_ListAttachesTags(t *testing.T) {
	db := testutil.NewTestDB(t)
	notes := NewSQLiteNoteRepo(db)
	tags := NewSQLiteTagRepo(db)
	ctx := context.Background()

	tag := testutil.NewTestTag("shared")
	require.NoError(t, tags.Create(ctx, tag))
	a := testutil.NewTestNote("a", testutil.WithTags(tag.ID))
	b := testutil.NewTestNote("b")
	require.NoError(t, notes.Create(ctx, a))
	require.NoError(t, notes.Create(ctx, b))

	list, err := notes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{tag.ID}, list[0].TagIDs)
	assert.Empty(t, list[1].TagIDs)
}
