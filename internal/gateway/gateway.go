// Package gateway persists board changes either straight to the local
// SQLite store or to a remote pinboard server.
package gateway

import (
	"context"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// Gateway is the persistence boundary behind the board. Calls may block
// on I/O, so the board reaches it through a Committer.
type Gateway interface {
	ListNotes(ctx context.Context) ([]*domain.Note, error)
	CreateNote(ctx context.Context, n *domain.Note) (*domain.Note, error)
	UpdateNote(ctx context.Context, id string, patch domain.NotePatch) (*domain.Note, error)
	UpdatePosition(ctx context.Context, id string, x, y float64) (*domain.Note, error)
	DeleteNote(ctx context.Context, id string) error
	ListTags(ctx context.Context) ([]domain.Tag, error)
	CreateTag(ctx context.Context, t *domain.Tag) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error
}
