package board

import "github.com/alexanderramin/pinboard/internal/domain"

// DragController owns the press-move-release gesture that moves a note.
//
// On Begin it records the pointer's canvas-space offset from the note's
// top-left corner; every Move places the note so that the same offset is
// kept, pinning the pointer to the point of the note it grabbed.
type DragController struct {
	active bool
	offset Point
}

func (d *DragController) Active() bool { return d.active }

// Begin enters the dragging state. It refuses (returns false) for a locked
// note or when a drag is already active.
func (d *DragController) Begin(n *domain.Note, pointer Point, t Transform) bool {
	if d.active || n == nil || n.IsLocked {
		return false
	}
	d.offset = t.ToCanvas(pointer).Sub(Point{n.X, n.Y})
	d.active = true
	return true
}

// Move returns the note's new canvas position for the pointer's screen
// position. ok is false when no drag is active.
func (d *DragController) Move(pointer Point, t Transform) (pos Point, ok bool) {
	if !d.active {
		return Point{}, false
	}
	return t.ToCanvas(pointer).Sub(d.offset), true
}

// End returns to idle. It reports whether a drag was active.
func (d *DragController) End() bool {
	was := d.active
	d.active = false
	d.offset = Point{}
	return was
}
