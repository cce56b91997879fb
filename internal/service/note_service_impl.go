package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/google/uuid"
)

type noteService struct {
	notes    repository.NoteRepo
	uow      db.UnitOfWork
	author   string
	observer UseCaseObserver
}

// NewNoteService builds the note use cases. defaultAuthor is stamped on new
// notes when the context carries no author.
func NewNoteService(notes repository.NoteRepo, uow db.UnitOfWork, defaultAuthor string, observers ...UseCaseObserver) NoteService {
	return &noteService{
		notes:    notes,
		uow:      uow,
		author:   defaultAuthor,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *noteService) List(ctx context.Context) ([]*domain.Note, error) {
	return s.notes.List(ctx)
}

func (s *noteService) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	return s.notes.GetByID(ctx, id)
}

// Create fills in defaults (ID, palette color, medium importance, default
// size, top of the stack) and stores the note with its tags.
func (s *noteService) Create(ctx context.Context, n *domain.Note) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	defer observe(ctx, s.observer, "create-note", map[string]any{"note_id": n.ID})(&err)

	if n.Color == "" {
		n.Color = domain.ColorYellow
	}
	if n.Importance == "" {
		n.Importance = domain.ImportanceMedium
	}
	if n.Width == 0 {
		n.Width = domain.DefaultNoteWidth
	}
	if n.Height == 0 {
		n.Height = domain.DefaultNoteHeight
	}
	n.TagIDs = domain.NormalizeTagIDs(n.TagIDs)
	n.Author = AuthorFrom(ctx, domain.CoalesceStr(n.Author, s.author))
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	if err = n.Validate(); err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		if n.ZIndex == 0 {
			top, err := txNotes.MaxZIndex(ctx)
			if err != nil {
				return err
			}
			n.ZIndex = top + 1
		}
		return txNotes.Create(ctx, n)
	})
}

// Update applies a partial update. A locked note only accepts changes to
// its lock flag and stacking order, unless the same patch unlocks it.
func (s *noteService) Update(ctx context.Context, id string, patch domain.NotePatch) (note *domain.Note, err error) {
	defer observe(ctx, s.observer, "update-note", map[string]any{"note_id": id})(&err)

	if err = patch.Validate(); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		n, err := txNotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			note = n
			return nil
		}

		stillLocked := n.IsLocked && (patch.IsLocked == nil || *patch.IsLocked)
		if stillLocked && patch.MutatesLockedFields() {
			return fmt.Errorf("updating note %s: %w", id, domain.ErrNoteLocked)
		}

		patch.Apply(n)
		n.UpdatedAt = time.Now().UTC()
		n.Author = AuthorFrom(ctx, n.Author)
		if err := txNotes.Update(ctx, n); err != nil {
			return err
		}
		if patch.TagIDs != nil {
			if err := txNotes.SetTags(ctx, id, n.TagIDs); err != nil {
				return err
			}
			// Unknown tag IDs were dropped; report what was stored.
			if n, err = txNotes.GetByID(ctx, id); err != nil {
				return err
			}
		}
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) UpdatePosition(ctx context.Context, id string, x, y float64) (note *domain.Note, err error) {
	defer observe(ctx, s.observer, "move-note", map[string]any{"note_id": id})(&err)

	if err = domain.ValidatePosition(x, y); err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		n, err := txNotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if n.IsLocked {
			return fmt.Errorf("moving note %s: %w", id, domain.ErrNoteLocked)
		}
		now := time.Now().UTC()
		if err := txNotes.UpdatePosition(ctx, id, x, y, now); err != nil {
			return err
		}
		n.X, n.Y, n.UpdatedAt = x, y, now
		note = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-note", map[string]any{"note_id": id})(&err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txNotes := repository.NewSQLiteNoteRepo(tx)
		n, err := txNotes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if n.IsLocked {
			return fmt.Errorf("deleting note %s: %w", id, domain.ErrNoteLocked)
		}
		return txNotes.Delete(ctx, id)
	})
}
