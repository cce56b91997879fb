package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/google/uuid"
)

var testTagCounter atomic.Int64

// Note options
type NoteOption func(*domain.Note)

func WithPosition(x, y float64) NoteOption {
	return func(n *domain.Note) {
		n.X, n.Y = x, y
	}
}

func WithSize(w, h float64) NoteOption {
	return func(n *domain.Note) {
		n.Width, n.Height = w, h
	}
}

func WithZIndex(z int) NoteOption {
	return func(n *domain.Note) {
		n.ZIndex = z
	}
}

func WithColor(c domain.Color) NoteOption {
	return func(n *domain.Note) {
		n.Color = c
	}
}

func WithImportance(i domain.Importance) NoteOption {
	return func(n *domain.Note) {
		n.Importance = i
	}
}

func Locked() NoteOption {
	return func(n *domain.Note) {
		n.IsLocked = true
	}
}

func WithTags(ids ...string) NoteOption {
	return func(n *domain.Note) {
		n.TagIDs = domain.NormalizeTagIDs(ids)
	}
}

func WithAuthor(a string) NoteOption {
	return func(n *domain.Note) {
		n.Author = a
	}
}

func NewTestNote(content string, opts ...NoteOption) *domain.Note {
	now := time.Now().UTC()
	n := &domain.Note{
		ID:         uuid.New().String(),
		X:          100,
		Y:          100,
		Width:      domain.DefaultNoteWidth,
		Height:     domain.DefaultNoteHeight,
		ZIndex:     1,
		Color:      domain.ColorYellow,
		Importance: domain.ImportanceMedium,
		Content:    content,
		Author:     "tester",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Tag options
type TagOption func(*domain.Tag)

func WithTagColor(c string) TagOption {
	return func(t *domain.Tag) {
		t.Color = c
	}
}

// NewTestTag builds a tag. An empty name gets a unique generated one.
func NewTestTag(name string, opts ...TagOption) *domain.Tag {
	if name == "" {
		name = fmt.Sprintf("tag-%03d", testTagCounter.Add(1))
	}
	t := &domain.Tag{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
