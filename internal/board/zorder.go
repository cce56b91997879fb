package board

import (
	"cmp"
	"slices"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// Front returns the z-index that puts a note above every note in notes:
// the current maximum plus one, or 1 on an empty board.
func Front(notes []*domain.Note) int {
	if len(notes) == 0 {
		return 1
	}
	top := notes[0].ZIndex
	for _, n := range notes[1:] {
		if n.ZIndex > top {
			top = n.ZIndex
		}
	}
	return top + 1
}

// Stack returns notes in paint order, bottom first. Equal z-indexes keep
// the order of the input slice, which callers pass in insertion order.
func Stack(notes []*domain.Note) []*domain.Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b *domain.Note) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	return out
}
