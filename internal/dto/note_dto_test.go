package dto

import (
	"testing"
	"time"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNoteResponse_ToDomainKeepsEveryField(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	n := &domain.Note{
		ID: "n1", X: 10, Y: 20, Width: 240, Height: 180, ZIndex: 3,
		Color: domain.ColorPink, Importance: domain.ImportanceHigh, IsLocked: true,
		Content: "hi", TagIDs: []string{"a", "b"}, Author: "ada",
		CreatedAt: now, UpdatedAt: now,
	}
	assert.Equal(t, n, ToNoteResponse(n).ToDomain())
}

func TestToNoteResponse_EmptyTagsEncodeAsArray(t *testing.T) {
	assert.Equal(t, []string{}, ToNoteResponse(&domain.Note{}).TagIDs)
}

func TestUpdateNoteRequest_PatchRoundTrip(t *testing.T) {
	patch := domain.ContentPatch("x").
		Merge(domain.ColorPatch(domain.ColorBlue)).
		Merge(domain.ImportancePatch(domain.ImportanceLow)).
		Merge(domain.TagsPatch([]string{"t2", "t1"}))

	got := NewUpdateNoteRequest(patch).ToPatch()

	assert.Equal(t, "x", *got.Content)
	assert.Equal(t, domain.ColorBlue, *got.Color)
	assert.Equal(t, domain.ImportanceLow, *got.Importance)
	assert.Equal(t, []string{"t1", "t2"}, *got.TagIDs)
	assert.Nil(t, got.Width)
	assert.Nil(t, got.IsLocked)
}
