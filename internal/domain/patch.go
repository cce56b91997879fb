package domain

import (
	"fmt"
	"slices"
)

// NotePatch is a partial update. Nil fields are left unchanged.
type NotePatch struct {
	Content    *string
	Color      *Color
	Importance *Importance
	IsLocked   *bool
	Width      *float64
	Height     *float64
	ZIndex     *int
	TagIDs     *[]string
}

func (p NotePatch) IsEmpty() bool {
	return p.Content == nil && p.Color == nil && p.Importance == nil && p.IsLocked == nil &&
		p.Width == nil && p.Height == nil && p.ZIndex == nil && p.TagIDs == nil
}

// MutatesLockedFields reports whether the patch touches anything a lock
// protects. Only the lock flag itself and the stacking order are exempt.
func (p NotePatch) MutatesLockedFields() bool {
	return p.Content != nil || p.Color != nil || p.Importance != nil ||
		p.Width != nil || p.Height != nil || p.TagIDs != nil
}

func (p NotePatch) Validate() error {
	if p.Color != nil && !p.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, *p.Color)
	}
	if p.Importance != nil && !p.Importance.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidImportance, *p.Importance)
	}
	if p.Width != nil && (!finite(*p.Width) || *p.Width < MinNoteWidth) {
		return fmt.Errorf("%w: width %.0f is below %.0f", ErrInvalidSize, *p.Width, MinNoteWidth)
	}
	if p.Height != nil && (!finite(*p.Height) || *p.Height < MinNoteHeight) {
		return fmt.Errorf("%w: height %.0f is below %.0f", ErrInvalidSize, *p.Height, MinNoteHeight)
	}
	return nil
}

// Apply writes every non-nil field of the patch onto n.
func (p NotePatch) Apply(n *Note) {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Color != nil {
		n.Color = *p.Color
	}
	if p.Importance != nil {
		n.Importance = *p.Importance
	}
	if p.IsLocked != nil {
		n.IsLocked = *p.IsLocked
	}
	if p.Width != nil {
		n.Width = *p.Width
	}
	if p.Height != nil {
		n.Height = *p.Height
	}
	if p.ZIndex != nil {
		n.ZIndex = *p.ZIndex
	}
	if p.TagIDs != nil {
		n.TagIDs = NormalizeTagIDs(*p.TagIDs)
	}
}

// Merge overlays q onto p; fields set in q win.
func (p NotePatch) Merge(q NotePatch) NotePatch {
	if q.Content != nil {
		p.Content = q.Content
	}
	if q.Color != nil {
		p.Color = q.Color
	}
	if q.Importance != nil {
		p.Importance = q.Importance
	}
	if q.IsLocked != nil {
		p.IsLocked = q.IsLocked
	}
	if q.Width != nil {
		p.Width = q.Width
	}
	if q.Height != nil {
		p.Height = q.Height
	}
	if q.ZIndex != nil {
		p.ZIndex = q.ZIndex
	}
	if q.TagIDs != nil {
		ids := slices.Clone(*q.TagIDs)
		p.TagIDs = &ids
	}
	return p
}

// Patch constructors keep call sites terse.

func ContentPatch(s string) NotePatch        { return NotePatch{Content: &s} }
func ColorPatch(c Color) NotePatch           { return NotePatch{Color: &c} }
func ImportancePatch(i Importance) NotePatch { return NotePatch{Importance: &i} }
func LockPatch(locked bool) NotePatch        { return NotePatch{IsLocked: &locked} }
func ZIndexPatch(z int) NotePatch            { return NotePatch{ZIndex: &z} }
func SizePatch(w, h float64) NotePatch       { return NotePatch{Width: &w, Height: &h} }
func TagsPatch(ids []string) NotePatch {
	ids = NormalizeTagIDs(ids)
	return NotePatch{TagIDs: &ids}
}
