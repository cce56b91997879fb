package board

import (
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// TagEditor stages tag changes for one note. Toggling only touches the
// working set; the note is changed by Save alone, in a single update.
type TagEditor struct {
	noteID  string
	open    bool
	working map[string]struct{}
}

// TagEntry is one row of the editor: a catalog tag and its staged state.
type TagEntry struct {
	Tag     domain.Tag
	Checked bool
}

func (e *TagEditor) IsOpen() bool   { return e.open }
func (e *TagEditor) NoteID() string { return e.noteID }

// Open seeds the working set from the note's current tags. A locked note
// cannot be tagged, so Open refuses it.
func (e *TagEditor) Open(n *domain.Note) bool {
	if n == nil || n.IsLocked {
		return false
	}
	e.noteID = n.ID
	e.open = true
	e.working = make(map[string]struct{}, len(n.TagIDs))
	for _, id := range n.TagIDs {
		e.working[id] = struct{}{}
	}
	return true
}

// Toggle flips tagID in the working set and returns its new state.
func (e *TagEditor) Toggle(tagID string) bool {
	if !e.open {
		return false
	}
	if _, ok := e.working[tagID]; ok {
		delete(e.working, tagID)
		return false
	}
	e.working[tagID] = struct{}{}
	return true
}

func (e *TagEditor) Has(tagID string) bool {
	_, ok := e.working[tagID]
	return ok
}

// Working returns the staged tag IDs, sorted.
func (e *TagEditor) Working() []string {
	return slices.Sorted(maps.Keys(e.working))
}

// Save closes the editor and returns the staged set for the note.
// ok is false if the editor was not open.
func (e *TagEditor) Save() (noteID string, ids []string, ok bool) {
	if !e.open {
		return "", nil, false
	}
	noteID, ids = e.noteID, e.Working()
	e.reset()
	return noteID, ids, true
}

// Cancel discards the working set.
func (e *TagEditor) Cancel() {
	e.reset()
}

// Entries lists catalog tags by name with their staged state. Staged IDs
// that the catalog no longer knows are not shown.
func (e *TagEditor) Entries(catalog []domain.Tag) []TagEntry {
	out := make([]TagEntry, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, TagEntry{Tag: t, Checked: e.Has(t.ID)})
	}
	slices.SortStableFunc(out, func(a, b TagEntry) int {
		return strings.Compare(strings.ToLower(a.Tag.Name), strings.ToLower(b.Tag.Name))
	})
	return out
}

func (e *TagEditor) reset() {
	e.noteID = ""
	e.open = false
	e.working = nil
}
