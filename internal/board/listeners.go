package board

// Button identifies the pointer button of an event.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// PointerEvent is a pointer press, motion or release in screen space.
type PointerEvent struct {
	Screen Point
	Button Button
	Ctrl   bool
	Shift  bool
}

// PointerHandler receives the pointer events of an active gesture.
type PointerHandler interface {
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
}

// listeners is the board-wide registry of gesture-scoped pointer handlers.
// A handler is only registered between gesture start and gesture end.
type listeners struct {
	next    int
	entries map[int]PointerHandler
	order   []int
}

func newListeners() *listeners {
	return &listeners{entries: make(map[int]PointerHandler)}
}

// Acquire registers h and returns the function that unregisters it.
// The release function is idempotent.
func (l *listeners) Acquire(h PointerHandler) (release func()) {
	l.next++
	key := l.next
	l.entries[key] = h
	l.order = append(l.order, key)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.remove(key)
	}
}

func (l *listeners) remove(key int) {
	delete(l.entries, key)
	for i, k := range l.order {
		if k == key {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *listeners) Count() int { return len(l.entries) }

// dispatchMove and dispatchUp iterate over a snapshot: handlers release
// themselves while being called.
func (l *listeners) dispatchMove(ev PointerEvent) {
	for _, h := range l.snapshot() {
		h.PointerMove(ev)
	}
}

func (l *listeners) dispatchUp(ev PointerEvent) {
	for _, h := range l.snapshot() {
		h.PointerUp(ev)
	}
}

func (l *listeners) snapshot() []PointerHandler {
	hs := make([]PointerHandler, 0, len(l.order))
	for _, k := range l.order {
		hs = append(hs, l.entries[k])
	}
	return hs
}

// clear drops every registration. Release functions handed out earlier
// become no-ops.
func (l *listeners) clear() {
	clear(l.entries)
	l.order = l.order[:0]
}

// gestureOwner is the single board-level token naming the note whose
// controller currently owns a drag or resize.
type gestureOwner struct {
	id string
}

func (g *gestureOwner) acquire(id string) bool {
	if g.id != "" && g.id != id {
		return false
	}
	g.id = id
	return true
}

func (g *gestureOwner) release(id string) {
	if g.id == id {
		g.id = ""
	}
}
