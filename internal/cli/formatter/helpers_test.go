package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestShortID(t *testing.T) {
	assert.Equal(t, "a1b2c3d4", ShortID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.Equal(t, "short", ShortID("short"))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("note", "content here")
	assert.Contains(t, result, "NOTE")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")

	result = RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.NotContains(t, result, "NOTE")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"ID", "NAME"}, [][]string{
		{"1", "work"},
		{"22", "home"},
		{"333"},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 5)
	assert.Equal(t, strings.Index(lines[0], "NAME"), strings.Index(lines[2], "work"))
	assert.Equal(t, strings.Index(lines[0], "NAME"), strings.Index(lines[3], "home"))
	assert.Equal(t, "333", strings.TrimSpace(lines[4]))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestNotePaper_FallsBackToYellow(t *testing.T) {
	assert.Equal(t, NotePaper(domain.ColorYellow), NotePaper(domain.Color("mauve")))
	assert.NotEqual(t, NotePaper(domain.ColorYellow), NotePaper(domain.ColorBlue))
}

func TestLockIndicator(t *testing.T) {
	assert.Empty(t, LockIndicator(false))
	assert.NotEmpty(t, LockIndicator(true))
}
