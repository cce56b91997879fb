package board

import (
	"fmt"

	"github.com/alexanderramin/pinboard/internal/domain"
)

// Region is the part of a note under a pointer.
type Region int

const (
	RegionNone Region = iota
	RegionHeader
	RegionBody
	RegionFooter
	RegionHandle
)

func (r Region) String() string {
	switch r {
	case RegionHeader:
		return "header"
	case RegionBody:
		return "body"
	case RegionFooter:
		return "footer"
	case RegionHandle:
		return "handle"
	default:
		return "none"
	}
}

// GestureKind names the pointer gesture a card is running.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDrag
	GestureResize
)

// MenuAction is an entry of a note's context menu.
type MenuAction int

const (
	MenuEdit MenuAction = iota + 1
	MenuLock
	MenuColor
	MenuImportance
	MenuTags
	MenuFront
	MenuSelect
	MenuDelete
)

type MenuItem struct {
	Action  MenuAction
	Label   string
	Enabled bool
}

// Menu is the open context menu of one note, anchored at a screen point.
type Menu struct {
	NoteID string
	At     Point
	Items  []MenuItem
}

// Card is the controller of one note on the board. It owns the note's
// drag and resize state and its content edit session, and it is the
// PointerHandler registered for the duration of its gestures.
type Card struct {
	id      string
	board   *Board
	drag    DragController
	resize  ResizeController
	release func()

	editing bool
	preEdit string
}

func newCard(b *Board, id string) *Card {
	return &Card{id: id, board: b}
}

func (c *Card) ID() string { return c.id }

func (c *Card) Gesture() GestureKind {
	switch {
	case c.drag.Active():
		return GestureDrag
	case c.resize.Active():
		return GestureResize
	default:
		return GestureNone
	}
}

func (c *Card) Editing() bool { return c.editing }

func (c *Card) note() *domain.Note { return c.board.index[c.id] }

func (c *Card) pointerDown(ev PointerEvent, region Region) bool {
	n := c.note()
	if n == nil || n.IsLocked {
		return false
	}
	if region == RegionHandle {
		return c.beginResize(n, ev)
	}
	return c.beginDrag(n, ev)
}

func (c *Card) beginDrag(n *domain.Note, ev PointerEvent) bool {
	if c.editing || c.resize.Active() {
		return false
	}
	if !c.board.owner.acquire(c.id) {
		return false
	}
	if !c.drag.Begin(n, ev.Screen, c.board.transform) {
		c.board.owner.release(c.id)
		return false
	}
	c.release = c.board.listeners.Acquire(c)
	c.board.BringToFront(c.id)
	return true
}

func (c *Card) beginResize(n *domain.Note, ev PointerEvent) bool {
	if c.drag.Active() {
		return false
	}
	if !c.board.owner.acquire(c.id) {
		return false
	}
	if !c.resize.Begin(n, ev.Screen) {
		c.board.owner.release(c.id)
		return false
	}
	c.release = c.board.listeners.Acquire(c)
	c.board.BringToFront(c.id)
	return true
}

// PointerMove applies the active gesture to the note and emits the change.
// Moves that leave the geometry unchanged emit nothing.
func (c *Card) PointerMove(ev PointerEvent) {
	n := c.note()
	if n == nil {
		c.endGesture()
		return
	}
	t := c.board.transform
	if pos, ok := c.drag.Move(ev.Screen, t); ok {
		if pos.X == n.X && pos.Y == n.Y {
			return
		}
		n.X, n.Y = pos.X, pos.Y
		c.board.emitPosition(c.id, pos.X, pos.Y)
		return
	}
	if w, h, ok := c.resize.Move(ev.Screen, t); ok {
		if w == n.Width && h == n.Height {
			return
		}
		n.Width, n.Height = w, h
		c.board.emitUpdate(c.id, domain.SizePatch(w, h))
	}
}

// PointerUp ends the gesture. The last computed geometry stands.
func (c *Card) PointerUp(PointerEvent) {
	c.endGesture()
}

// endGesture runs on every exit path of a gesture: release, lock,
// removal from the board and unmount.
func (c *Card) endGesture() {
	c.drag.End()
	c.resize.End()
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.board.owner.release(c.id)
}

func (c *Card) beginEdit() bool {
	n := c.note()
	if n == nil || n.IsLocked {
		return false
	}
	if !c.editing {
		c.editing = true
		c.preEdit = n.Content
	}
	return true
}

// commitEdit applies text as the note content if it changed.
func (c *Card) commitEdit(text string) bool {
	if !c.editing {
		return false
	}
	c.editing = false
	n := c.note()
	if n == nil || n.IsLocked || text == n.Content {
		return false
	}
	n.Content = text
	c.board.emitUpdate(c.id, domain.ContentPatch(text))
	return true
}

// cancelEdit ends the session and returns the pre-edit text.
func (c *Card) cancelEdit() string {
	c.editing = false
	return c.preEdit
}

func (c *Card) menuItems(n *domain.Note) []MenuItem {
	lock := "Lock"
	if n.IsLocked {
		lock = "Unlock"
	}
	sel := "Select"
	if c.board.selection.IsSelected(n.ID) {
		sel = "Deselect"
	}
	open := !n.IsLocked
	return []MenuItem{
		{Action: MenuEdit, Label: "Edit", Enabled: open},
		{Action: MenuLock, Label: lock, Enabled: true},
		{Action: MenuColor, Label: fmt.Sprintf("Color: %s", n.Color), Enabled: open},
		{Action: MenuImportance, Label: fmt.Sprintf("Importance: %s", n.Importance.Badge()), Enabled: open},
		{Action: MenuTags, Label: "Tags", Enabled: open},
		{Action: MenuFront, Label: "Bring to front", Enabled: true},
		{Action: MenuSelect, Label: sel, Enabled: true},
		{Action: MenuDelete, Label: "Delete", Enabled: open},
	}
}
