package board

import (
	"math"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// ResizeController owns the press-move-release gesture on a note's
// bottom-right handle.
type ResizeController struct {
	active bool
	startW float64
	startH float64
	start  Point // screen space
}

func (r *ResizeController) Active() bool { return r.active }

// Begin records the note's size and the screen-space pointer position.
// It refuses for a locked note or when a resize is already active.
func (r *ResizeController) Begin(n *domain.Note, pointer Point) bool {
	if r.active || n == nil || n.IsLocked {
		return false
	}
	r.startW, r.startH = n.Width, n.Height
	r.start = pointer
	r.active = true
	return true
}

// Move returns the size for the current pointer position. The floor is
// applied on every call, however far the pointer travels past it.
func (r *ResizeController) Move(pointer Point, t Transform) (w, h float64, ok bool) {
	if !r.active {
		return 0, 0, false
	}
	d := t.Delta(r.start, pointer)
	w = math.Max(domain.MinNoteWidth, r.startW+d.X)
	h = math.Max(domain.MinNoteHeight, r.startH+d.Y)
	return w, h, true
}

func (r *ResizeController) End() bool {
	was := r.active
	*r = ResizeController{}
	return was
}
