package board

import (
	"maps"
	"slices"
)

// Selection is the set of note IDs chosen for batch operations.
// It is independent of lock state.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds id if absent and removes it if present. It returns whether
// id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Clear() {
	clear(s.ids)
}

func (s *Selection) Len() int { return len(s.ids) }

// IDs returns the selected IDs in sorted order.
func (s *Selection) IDs() []string {
	return slices.Sorted(maps.Keys(s.ids))
}

// Retain drops every ID for which keep returns false.
func (s *Selection) Retain(keep func(id string) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}
