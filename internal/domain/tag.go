package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidTagName = errors.New("tag name is required")

// Tag is owned by the tag catalog. Notes reference tags by ID only.
type Tag struct {
	ID        string
	Name      string
	Color     string
	CreatedAt time.Time
}

func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidTagName
	}
	return nil
}

// TagIndex builds an ID lookup table over a catalog snapshot.
func TagIndex(tags []Tag) map[string]Tag {
	idx := make(map[string]Tag, len(tags))
	for _, t := range tags {
		idx[t.ID] = t
	}
	return idx
}
