package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatNoteList(t *testing.T) {
	tags := []domain.Tag{{ID: "t1", Name: "work"}}
	notes := []*domain.Note{
		{ID: "0123456789", X: 10, Y: 20, Width: 200, Height: 150, ZIndex: 2,
			Color: domain.ColorBlue, Importance: domain.ImportanceHigh,
			Content: "first line\nsecond", TagIDs: []string{"t1", "stale"}},
	}

	out := FormatNoteList(notes, tags)

	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789")
	assert.Contains(t, out, "blue")
	assert.Contains(t, out, "HIGH")
	assert.Contains(t, out, "10,20")
	assert.Contains(t, out, "200x150")
	assert.Contains(t, out, "work")
	assert.NotContains(t, out, "stale")
	assert.Contains(t, out, "first line")
	assert.NotContains(t, out, "second")
}

func TestFormatNoteList_Empty(t *testing.T) {
	assert.Contains(t, FormatNoteList(nil, nil), "No notes")
}

func TestFormatNoteDetail(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	n := &domain.Note{ID: "n1", Width: 200, Height: 200, Color: domain.ColorPink,
		Importance: domain.ImportanceLow, IsLocked: true, Content: "hello",
		Author: "ada", UpdatedAt: now.Add(-2 * time.Hour)}

	out := FormatNoteDetail(n, nil, now)

	for _, want := range []string{"n1", "pink", "LOW", "yes", "ada", "2h ago", "hello"} {
		assert.Contains(t, out, want)
	}
}

func TestFormatTagList_CountsNotes(t *testing.T) {
	tags := []domain.Tag{{ID: "t1", Name: "work"}, {ID: "t2", Name: "home"}}
	notes := []*domain.Note{{TagIDs: []string{"t1"}}, {TagIDs: []string{"t1", "t2"}}}

	out := FormatTagList(tags, notes)
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Len(t, lines, 4)
	assert.Contains(t, lines[2], "work")
	assert.Contains(t, lines[2], "2")
	assert.Contains(t, lines[3], "home")
}

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"the quick", "brown fox"}, Wrap("the quick brown fox", 10))
	assert.Equal(t, []string{"abcd", "ef"}, Wrap("abcdef", 4))
	assert.Equal(t, []string{"a", "", "b"}, Wrap("a\n\nb", 5))
	assert.Nil(t, Wrap("x", 0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"yesterday", now.Add(-24 * time.Hour), "yesterday"},
		{"days", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"weeks", now.Add(-21 * 24 * time.Hour), "3w ago"},
		{"old", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2, 2025"},
		{"future", now.Add(time.Hour), "Feb 7, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.input, now))
		})
	}
}
