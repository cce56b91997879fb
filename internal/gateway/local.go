package gateway

import (
	"context"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/service"
)

// Local writes through the service layer to SQLite in this process.
type Local struct {
	notes  service.NoteService
	tags   service.TagService
	author string
}

func NewLocal(notes service.NoteService, tags service.TagService, author string) *Local {
	return &Local{notes: notes, tags: tags, author: author}
}

func (l *Local) ctx(ctx context.Context) context.Context {
	return service.WithAuthor(ctx, l.author)
}

func (l *Local) ListNotes(ctx context.Context) ([]*domain.Note, error) {
	return l.notes.List(ctx)
}

func (l *Local) CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	c := n.Clone()
	if err := l.notes.Create(l.ctx(ctx), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (l *Local) UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error) {
	return l.notes.Update(l.ctx(ctx), id, patch)
}

func (l *Local) UpdatePosition(ctx context.Context, id string, x, y float64) (*domain.Note, error) {
	return l.notes.UpdatePosition(l.ctx(ctx), id, x, y)
}

func (l *Local) DeleteNote(ctx context.Context, id string) error {
	return l.notes.Delete(l.ctx(ctx), id)
}

func (l *Local) ListTags(ctx context.Context) ([]domain.Tag, error) {
	return l.tags.List(ctx)
}

func (l *Local) CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error) {
	c := *t
	if err := l.tags.Create(l.ctx(ctx), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (l *Local) DeleteTag(ctx context.Context, id string) error {
	return l.tags.Delete(l.ctx(ctx), id)
}
