package service

import (
	"context"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// NoteService is the note store's use-case boundary. It enforces the lock
// and the size floor regardless of what the caller has checked.
type NoteService interface {
	List(ctx context.Context) ([]*domain.Note, error)
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	Create(ctx context.Context, n *domain.Note) error
	Update(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error)
	UpdatePosition(ctx context.Context, id string, x, y float64) (*domain.Note, error)
	Delete(ctx context.Context, id string) error
}

type TagService interface {
	List(ctx context.Context) ([]domain.Tag, error)
	Create(ctx context.Context, t *domain.Tag) error
	Delete(ctx context.Context, id string) error
}
