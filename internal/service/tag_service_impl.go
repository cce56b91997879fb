package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
	"github.com/google/uuid"
)

type tagService struct {
	tags     repository.TagRepo
	observer UseCaseObserver
}

func NewTagService(tags repository.TagRepo, observers ...UseCaseObserver) TagService {
	return &tagService{tags: tags, observer: useCaseObserverOrNoop(observers)}
}

func (s *tagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.tags.List(ctx)
}

func (s *tagService) Create(ctx context.Context, t *domain.Tag) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	defer observe(ctx, s.observer, "create-tag", map[string]any{"tag_id": t.ID})(&err)

	t.Name = strings.TrimSpace(t.Name)
	t.Color = strings.TrimSpace(t.Color)
	t.CreatedAt = time.Now().UTC()
	if err = t.Validate(); err != nil {
		return err
	}
	return s.tags.Create(ctx, t)
}

// Delete removes the tag from the catalog and from every note carrying it.
func (s *tagService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-tag", map[string]any{"tag_id": id})(&err)
	return s.tags.Delete(ctx, id)
}
