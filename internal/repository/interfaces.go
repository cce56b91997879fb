package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

var (
	// ErrNotFound is returned (wrapped) when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned (wrapped) when an insert collides with an
	// existing ID or tag name.
	ErrConflict = errors.New("already exists")
)

type NoteRepo interface {
	Create(ctx context.Context, n *domain.Note) error
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	// List returns every note in insertion order.
	List(ctx context.Context) ([]*domain.Note, error)
	// Update writes every mutable column except tags and position.
	Update(ctx context.Context, n *domain.Note) error
	UpdatePosition(ctx context.Context, id string, x, y float64, at time.Time) error
	Delete(ctx context.Context, id string) error
	MaxZIndex(ctx context.Context) (int, error)
	// SetTags replaces the note's tag associations. Tag IDs that do not
	// exist are ignored.
	SetTags(ctx context.Context, noteID string, tagIDs []string) error
}

type TagRepo interface {
	Create(ctx context.Context, t *domain.Tag) error
	GetByID(ctx context.Context, id string) (*domain.Tag, error)
	List(ctx context.Context) ([]domain.Tag, error)
	Delete(ctx context.Context, id string) error
}
