// Package dto holds the JSON shapes exchanged between pinboard serve and
// its remote clients.
package dto

import (
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
)

type NoteResponse struct {
	ID         string    `json:"id"`
	X          float64   `json:"x"`
	Y          float64   `json:"y"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	ZIndex     int       `json:"z_index"`
	Color      string    `json:"color"`
	Importance string    `json:"importance"`
	IsLocked   bool      `json:"is_locked"`
	Content    string    `json:"content"`
	TagIDs     []string  `json:"tag_ids"`
	Author     string    `json:"author"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateNoteRequest struct {
	ID         string   `json:"id" validate:"omitempty,max=64"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Width      float64  `json:"width" validate:"omitempty,gte=180"`
	Height     float64  `json:"height" validate:"omitempty,gte=150"`
	ZIndex     int      `json:"z_index" validate:"gte=0"`
	Color      string   `json:"color" validate:"omitempty,oneof=yellow green blue pink purple orange"`
	Importance string   `json:"importance" validate:"omitempty,oneof=low medium high"`
	IsLocked   bool     `json:"is_locked"`
	Content    string   `json:"content" validate:"max=20000"`
	TagIDs     []string `json:"tag_ids" validate:"dive,required"`
}

// UpdateNoteRequest is a partial update; absent fields stay unchanged.
type UpdateNoteRequest struct {
	Content    *string   `json:"content,omitempty" validate:"omitempty,max=20000"`
	Color      *string   `json:"color,omitempty" validate:"omitempty,oneof=yellow green blue pink purple orange"`
	Importance *string   `json:"importance,omitempty" validate:"omitempty,oneof=low medium high"`
	IsLocked   *bool     `json:"is_locked,omitempty"`
	Width      *float64  `json:"width,omitempty" validate:"omitempty,gte=180"`
	Height     *float64  `json:"height,omitempty" validate:"omitempty,gte=150"`
	ZIndex     *int      `json:"z_index,omitempty"`
	TagIDs     *[]string `json:"tag_ids,omitempty" validate:"omitempty,dive,required"`
}

type MoveNoteRequest struct {
	X *float64 `json:"x" validate:"required"`
	Y *float64 `json:"y" validate:"required"`
}

func ToNoteResponse(n *domain.Note) NoteResponse {
	tags := n.TagIDs
	if tags == nil {
		tags = []string{}
	}
	return NoteResponse{
		ID:         n.ID,
		X:          n.X,
		Y:          n.Y,
		Width:      n.Width,
		Height:     n.Height,
		ZIndex:     n.ZIndex,
		Color:      string(n.Color),
		Importance: string(n.Importance),
		IsLocked:   n.IsLocked,
		Content:    n.Content,
		TagIDs:     tags,
		Author:     n.Author,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func ToNoteResponses(notes []*domain.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, ToNoteResponse(n))
	}
	return out
}

func (r NoteResponse) ToDomain() *domain.Note {
	return &domain.Note{
		ID:         r.ID,
		X:          r.X,
		Y:          r.Y,
		Width:      r.Width,
		Height:     r.Height,
		ZIndex:     r.ZIndex,
		Color:      domain.Color(r.Color),
		Importance: domain.Importance(r.Importance),
		IsLocked:   r.IsLocked,
		Content:    r.Content,
		TagIDs:     domain.NormalizeTagIDs(r.TagIDs),
		Author:     r.Author,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func NewCreateNoteRequest(n *domain.Note) CreateNoteRequest {
	return CreateNoteRequest{
		ID:         n.ID,
		X:          n.X,
		Y:          n.Y,
		Width:      n.Width,
		Height:     n.Height,
		ZIndex:     n.ZIndex,
		Color:      string(n.Color),
		Importance: string(n.Importance),
		IsLocked:   n.IsLocked,
		Content:    n.Content,
		TagIDs:     n.TagIDs,
	}
}

func (r CreateNoteRequest) ToDomain() *domain.Note {
	return &domain.Note{
		ID:         r.ID,
		X:          r.X,
		Y:          r.Y,
		Width:      r.Width,
		Height:     r.Height,
		ZIndex:     r.ZIndex,
		Color:      domain.Color(r.Color),
		Importance: domain.Importance(r.Importance),
		IsLocked:   r.IsLocked,
		Content:    r.Content,
		TagIDs:     r.TagIDs,
	}
}

func NewUpdateNoteRequest(p domain.NotePatch) UpdateNoteRequest {
	r := UpdateNoteRequest{
		Content:  p.Content,
		IsLocked: p.IsLocked,
		Width:    p.Width,
		Height:   p.Height,
		ZIndex:   p.ZIndex,
		TagIDs:   p.TagIDs,
	}
	if p.Color != nil {
		c := string(*p.Color)
		r.Color = &c
	}
	if p.Importance != nil {
		i := string(*p.Importance)
		r.Importance = &i
	}
	return r
}

func (r UpdateNoteRequest) ToPatch() domain.NotePatch {
	p := domain.NotePatch{
		Content:  r.Content,
		IsLocked: r.IsLocked,
		Width:    r.Width,
		Height:   r.Height,
		ZIndex:   r.ZIndex,
	}
	if r.Color != nil {
		c := domain.Color(*r.Color)
		p.Color = &c
	}
	if r.Importance != nil {
		i := domain.Importance(*r.Importance)
		p.Importance = &i
	}
	if r.TagIDs != nil {
		ids := domain.NormalizeTagIDs(*r.TagIDs)
		p.TagIDs = &ids
	}
	return p
}
