package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Size floor for every note, in canvas units.
const (
	MinNoteWidth  = 180.0
	MinNoteHeight = 150.0

	DefaultNoteWidth  = 200.0
	DefaultNoteHeight = 200.0
)

var (
	// ErrNoteLocked is returned when a mutation targets a locked note.
	ErrNoteLocked = errors.New("note is locked")

	ErrInvalidColor      = errors.New("invalid note color")
	ErrInvalidImportance = errors.New("invalid note importance")
	ErrInvalidSize       = errors.New("invalid note size")
	ErrInvalidPosition   = errors.New("invalid note position")
)

type Note struct {
	ID         string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	ZIndex     int
	Color      Color
	Importance Importance
	IsLocked   bool
	Content    string
	TagIDs     []string
	Author     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	c.TagIDs = slices.Clone(n.TagIDs)
	return &c
}

// Validate checks palette membership, importance and the size floor.
func (n *Note) Validate() error {
	if !n.Color.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidColor, n.Color)
	}
	if !n.Importance.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidImportance, n.Importance)
	}
	if !finite(n.Width) || !finite(n.Height) || n.Width < MinNoteWidth || n.Height < MinNoteHeight {
		return fmt.Errorf("%w: %.0fx%.0f is below %.0fx%.0f", ErrInvalidSize, n.Width, n.Height, MinNoteWidth, MinNoteHeight)
	}
	return ValidatePosition(n.X, n.Y)
}

// ValidatePosition rejects NaN and infinite coordinates.
func ValidatePosition(x, y float64) error {
	if !finite(x) || !finite(y) {
		return fmt.Errorf("%w: (%v, %v)", ErrInvalidPosition, x, y)
	}
	return nil
}

// HasTag reports whether the note references tagID.
func (n *Note) HasTag(tagID string) bool {
	return slices.Contains(n.TagIDs, tagID)
}

// Preview returns the first line of content, truncated to max runes.
func (n *Note) Preview(max int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(n.Content), "\n")
	r := []rune(line)
	if max > 0 && len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return line
}

// ClampSize applies the size floor.
func ClampSize(w, h float64) (float64, float64) {
	return math.Max(MinNoteWidth, w), math.Max(MinNoteHeight, h)
}

// NormalizeTagIDs returns a sorted, de-duplicated copy without blanks.
func NormalizeTagIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
