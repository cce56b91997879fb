package dto

import (
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTagRequest struct {
	ID    string `json:"id" validate:"omitempty,max=64"`
	Name  string `json:"name" validate:"required,max=64"`
	Color string `json:"color" validate:"max=32"`
}

func ToTagResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, CreatedAt: t.CreatedAt}
}

func ToTagResponses(tags []domain.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagResponse(t))
	}
	return out
}

func (r TagResponse) ToDomain() domain.Tag {
	return domain.Tag{ID: r.ID, Name: r.Name, Color: r.Color, CreatedAt: r.CreatedAt}
}

func (r CreateTagRequest) ToDomain() *domain.Tag {
	return &domain.Tag{ID: r.ID, Name: r.Name, Color: r.Color}
}
