package board

import (
	"errors"
	"slices"
	"strings"

	"github.com/alexanderramin/pinboard/internal/domain"
)

var ErrUnknownNote = errors.New("note is not on the board")

// Callbacks report every mutation after it has been applied locally.
// Nil callbacks are skipped.
type Callbacks struct {
	OnToggleSelect   func(id string)
	OnUpdate         func(id string, patch domain.NotePatch)
	OnDelete         func(id string)
	OnPositionUpdate func(id string, x, y float64)
}

// Chrome sizes the hit regions of a note in screen pixels.
type Chrome struct {
	HeaderHeight float64
	FooterHeight float64
	HandleSize   float64
}

var DefaultChrome = Chrome{HeaderHeight: 20, FooterHeight: 20, HandleSize: 20}

// Rect is an axis-aligned rectangle, Min inclusive and Max exclusive.
type Rect struct {
	Min, Max Point
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

type Option func(*Board)

// WithZoom sets the initial zoom. Invalid factors are ignored.
func WithZoom(z float64) Option {
	return func(b *Board) {
		if t, err := NewTransform(z); err == nil {
			b.transform = t
		}
	}
}

func WithChrome(c Chrome) Option {
	return func(b *Board) { b.chrome = c }
}

// Board is the set of notes on one canvas and the interaction state around
// them.
type Board struct {
	cb        Callbacks
	chrome    Chrome
	transform Transform

	notes []*domain.Note // insertion order
	index map[string]*domain.Note
	cards map[string]*Card

	selection *Selection
	catalog   map[string]domain.Tag
	tags      TagEditor
	menu      *Menu

	owner     gestureOwner
	listeners *listeners

	focused string
	editing string
}

func New(cb Callbacks, opts ...Option) *Board {
	b := &Board{
		cb:        cb,
		chrome:    DefaultChrome,
		index:     make(map[string]*domain.Note),
		cards:     make(map[string]*Card),
		selection: NewSelection(),
		catalog:   make(map[string]domain.Tag),
		listeners: newListeners(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reconciles the board with the authoritative note list. Known notes
// are updated in place and keep their card; the note that owns the active
// gesture keeps its local geometry. A note that arrives locked loses its
// gesture, edit session and tag editor. Notes missing from the list leave
// the board.
func (b *Board) Load(notes []*domain.Note) {
	seen := make(map[string]bool, len(notes))
	for _, in := range notes {
		if in == nil || seen[in.ID] {
			continue
		}
		seen[in.ID] = true
		next := in.Clone()
		if cur, ok := b.index[in.ID]; ok {
			if !cur.IsLocked && next.IsLocked {
				b.endInteraction(in.ID)
			}
			if b.owner.id == in.ID {
				next.X, next.Y, next.Width, next.Height = cur.X, cur.Y, cur.Width, cur.Height
			}
			*cur = *next
			continue
		}
		b.insert(next)
	}

	kept := b.notes[:0]
	for _, n := range b.notes {
		if seen[n.ID] {
			kept = append(kept, n)
			continue
		}
		b.forget(n.ID)
	}
	clear(b.notes[len(kept):])
	b.notes = kept
}

// Add places a newly created note on the board, above every other note
// unless it carries its own z-index. It reports false for a duplicate ID.
func (b *Board) Add(n *domain.Note) bool {
	if n == nil || b.index[n.ID] != nil {
		return false
	}
	next := n.Clone()
	if next.ZIndex == 0 {
		next.ZIndex = Front(b.notes)
	}
	b.insert(next)
	b.focused = next.ID
	return true
}

func (b *Board) insert(n *domain.Note) {
	b.notes = append(b.notes, n)
	b.index[n.ID] = n
	b.cards[n.ID] = newCard(b, n.ID)
}

// forget tears down everything the board holds for id except its slot in
// b.notes.
func (b *Board) forget(id string) {
	if c := b.cards[id]; c != nil {
		c.endGesture()
		c.cancelEdit()
	}
	if b.editing == id {
		b.editing = ""
	}
	if b.tags.NoteID() == id {
		b.tags.Cancel()
	}
	if b.menu != nil && b.menu.NoteID == id {
		b.menu = nil
	}
	if b.focused == id {
		b.focused = ""
	}
	b.selection.Retain(func(sel string) bool { return sel != id })
	delete(b.cards, id)
	delete(b.index, id)
}

func (b *Board) remove(id string) {
	b.forget(id)
	b.notes = slices.DeleteFunc(b.notes, func(n *domain.Note) bool { return n.ID == id })
}

func (b *Board) Len() int { return len(b.notes) }

// Note returns a copy of the note with the given ID.
func (b *Board) Note(id string) (*domain.Note, bool) {
	n, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Notes returns copies of all notes in paint order, bottom first.
func (b *Board) Notes() []*domain.Note {
	stack := Stack(b.notes)
	out := make([]*domain.Note, len(stack))
	for i, n := range stack {
		out[i] = n.Clone()
	}
	return out
}

func (b *Board) Card(id string) (*Card, bool) {
	c, ok := b.cards[id]
	return c, ok
}

// Zoom

func (b *Board) Zoom() float64        { return b.transform.Zoom() }
func (b *Board) Transform() Transform { return b.transform }

func (b *Board) SetZoom(z float64) error {
	t, err := NewTransform(z)
	if err != nil {
		return err
	}
	b.transform = t
	return nil
}

func (b *Board) ZoomIn()  { b.transform = Transform{zoom: StepZoom(b.Zoom(), 1)} }
func (b *Board) ZoomOut() { b.transform = Transform{zoom: StepZoom(b.Zoom(), -1)} }

// ScreenRect is the note's footprint in screen space at the current zoom.
func (b *Board) ScreenRect(n *domain.Note) Rect {
	return Rect{
		Min: b.transform.ToScreen(Point{n.X, n.Y}),
		Max: b.transform.ToScreen(Point{n.X + n.Width, n.Y + n.Height}),
	}
}

// HitTest returns the topmost note under a screen point and the region of
// that note the point falls in.
func (b *Board) HitTest(p Point) (string, Region) {
	stack := Stack(b.notes)
	for i := len(stack) - 1; i >= 0; i-- {
		n := stack[i]
		r := b.ScreenRect(n)
		if !r.Contains(p) {
			continue
		}
		switch {
		case p.X >= r.Max.X-b.chrome.HandleSize && p.Y >= r.Max.Y-b.chrome.HandleSize:
			return n.ID, RegionHandle
		case p.Y < r.Min.Y+b.chrome.HeaderHeight:
			return n.ID, RegionHeader
		case p.Y >= r.Max.Y-b.chrome.FooterHeight:
			return n.ID, RegionFooter
		default:
			return n.ID, RegionBody
		}
	}
	return "", RegionNone
}

// Pointer routing

// PointerDown closes any open menu, then routes the press to the topmost
// note under the pointer: the right button opens its context menu, a
// ctrl/shift press toggles its selection, and a left press starts a drag
// or, on the handle, a resize.
func (b *Board) PointerDown(ev PointerEvent) {
	b.menu = nil
	if b.owner.id != "" {
		// The release of the previous gesture never arrived.
		b.listeners.dispatchUp(ev)
	}
	id, region := b.HitTest(ev.Screen)
	if id == "" {
		b.focused = ""
		return
	}
	b.focused = id
	switch {
	case ev.Button == ButtonRight:
		b.OpenMenu(id, ev.Screen)
	case ev.Ctrl || ev.Shift:
		b.ToggleSelect(id)
	case ev.Button == ButtonLeft:
		b.cards[id].pointerDown(ev, region)
	}
}

func (b *Board) PointerMove(ev PointerEvent) { b.listeners.dispatchMove(ev) }
func (b *Board) PointerUp(ev PointerEvent)   { b.listeners.dispatchUp(ev) }

// ActiveGesture names the note owning the running gesture, if any.
func (b *Board) ActiveGesture() (string, GestureKind) {
	if b.owner.id == "" {
		return "", GestureNone
	}
	return b.owner.id, b.cards[b.owner.id].Gesture()
}

// ListenerCount is the number of gesture-scoped pointer listeners attached.
func (b *Board) ListenerCount() int { return b.listeners.Count() }

// Unmount ends every gesture, detaches every listener and closes all
// transient UI state. The board's notes are kept.
func (b *Board) Unmount() {
	for _, c := range b.cards {
		c.endGesture()
		c.cancelEdit()
	}
	b.listeners.clear()
	b.owner = gestureOwner{}
	b.editing = ""
	b.menu = nil
	b.tags.Cancel()
}

// Focus

func (b *Board) Focused() string { return b.focused }

func (b *Board) Focus(id string) bool {
	if b.index[id] == nil {
		return false
	}
	b.focused = id
	return true
}

// FocusNext moves focus through the paint order, wrapping at either end.
func (b *Board) FocusNext(dir int) string {
	stack := Stack(b.notes)
	if len(stack) == 0 {
		return ""
	}
	i := slices.IndexFunc(stack, func(n *domain.Note) bool { return n.ID == b.focused })
	switch {
	case i < 0 && dir < 0:
		i = len(stack) - 1
	case i < 0:
		i = 0
	default:
		i = (i + dir%len(stack) + len(stack)) % len(stack)
	}
	b.focused = stack[i].ID
	return b.focused
}

// Stacking and selection

// BringToFront raises the note above every other note. A note that is
// already strictly on top is left alone.
func (b *Board) BringToFront(id string) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	others := slices.DeleteFunc(slices.Clone(b.notes), func(o *domain.Note) bool { return o.ID == id })
	if len(others) == 0 {
		return true
	}
	z := Front(others)
	if n.ZIndex >= z {
		return true
	}
	n.ZIndex = z
	b.emitUpdate(id, domain.ZIndexPatch(z))
	return true
}

func (b *Board) ToggleSelect(id string) bool {
	if b.index[id] == nil {
		return false
	}
	selected := b.selection.Toggle(id)
	if b.cb.OnToggleSelect != nil {
		b.cb.OnToggleSelect(id)
	}
	return selected
}

func (b *Board) IsSelected(id string) bool { return b.selection.IsSelected(id) }
func (b *Board) SelectedIDs() []string     { return b.selection.IDs() }
func (b *Board) ClearSelection()           { b.selection.Clear() }

// Deletion

// Delete removes an unlocked note. A locked note is refused with
// domain.ErrNoteLocked and OnDelete is not called.
func (b *Board) Delete(id string) error {
	n := b.index[id]
	if n == nil {
		return ErrUnknownNote
	}
	if n.IsLocked {
		return domain.ErrNoteLocked
	}
	b.remove(id)
	if b.cb.OnDelete != nil {
		b.cb.OnDelete(id)
	}
	return nil
}

// DeleteSelected deletes every selected note it can. Locked notes are
// skipped and stay selected.
func (b *Board) DeleteSelected() (deleted, skipped []string) {
	for _, id := range b.selection.IDs() {
		if err := b.Delete(id); err != nil {
			skipped = append(skipped, id)
			continue
		}
		deleted = append(deleted, id)
	}
	return deleted, skipped
}

// Content editing

// BeginEdit opens an edit session on the note and brings it to front.
// It refuses a locked note and a second session while one is open on
// another note.
func (b *Board) BeginEdit(id string) bool {
	c := b.cards[id]
	if c == nil || (b.editing != "" && b.editing != id) {
		return false
	}
	if b.owner.id != "" {
		return false
	}
	if !c.beginEdit() {
		return false
	}
	b.editing = id
	b.focused = id
	b.BringToFront(id)
	return true
}

func (b *Board) EditingID() string { return b.editing }

// CommitEdit closes the session, writing text if it differs from the
// note's content.
func (b *Board) CommitEdit(text string) bool {
	c := b.cards[b.editing]
	b.editing = ""
	if c == nil {
		return false
	}
	return c.commitEdit(text)
}

// CancelEdit closes the session and returns the pre-edit text.
func (b *Board) CancelEdit() string {
	c := b.cards[b.editing]
	b.editing = ""
	if c == nil {
		return ""
	}
	return c.cancelEdit()
}

// Lock, color and importance

// ToggleLock flips the lock flag. It is permitted on any note. Locking
// ends the note's running gesture, edit session and tag editor.
func (b *Board) ToggleLock(id string) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	locking := !n.IsLocked
	if locking {
		b.endInteraction(id)
	}
	n.IsLocked = locking
	b.emitUpdate(id, domain.LockPatch(locking))
	return true
}

// endInteraction stops everything in progress on a note that is becoming
// locked: its gesture, its edit session and its tag editor.
func (b *Board) endInteraction(id string) {
	c := b.cards[id]
	if c == nil {
		return
	}
	c.endGesture()
	if b.editing == id {
		c.cancelEdit()
		b.editing = ""
	}
	if b.tags.NoteID() == id && b.tags.IsOpen() {
		b.tags.Cancel()
	}
}

func (b *Board) SetColor(id string, c domain.Color) bool {
	n := b.index[id]
	if n == nil || n.IsLocked || !c.Valid() || n.Color == c {
		return false
	}
	n.Color = c
	b.emitUpdate(id, domain.ColorPatch(c))
	return true
}

func (b *Board) CycleColor(id string) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	return b.SetColor(id, n.Color.Next())
}

func (b *Board) SetImportance(id string, i domain.Importance) bool {
	n := b.index[id]
	if n == nil || n.IsLocked || !i.Valid() || n.Importance == i {
		return false
	}
	n.Importance = i
	b.emitUpdate(id, domain.ImportancePatch(i))
	return true
}

func (b *Board) CycleImportance(id string) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	return b.SetImportance(id, n.Importance.Next())
}

// Tags

// SetCatalog replaces the ID → Tag side table.
func (b *Board) SetCatalog(tags []domain.Tag) {
	b.catalog = domain.TagIndex(tags)
}

// Catalog returns the known tags ordered by name.
func (b *Board) Catalog() []domain.Tag {
	out := make([]domain.Tag, 0, len(b.catalog))
	for _, t := range b.catalog {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, c domain.Tag) int {
		if d := strings.Compare(strings.ToLower(a.Name), strings.ToLower(c.Name)); d != 0 {
			return d
		}
		return strings.Compare(a.ID, c.ID)
	})
	return out
}

// NoteTags resolves the note's tag IDs through the catalog. IDs the
// catalog does not know are omitted.
func (b *Board) NoteTags(n *domain.Note) []domain.Tag {
	var out []domain.Tag
	for _, id := range n.TagIDs {
		if t, ok := b.catalog[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

func (b *Board) OpenTagEditor(id string) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	b.menu = nil
	return b.tags.Open(n)
}

func (b *Board) TagEditor() *TagEditor { return &b.tags }

// TagEntries lists the catalog with the editor's staged state.
func (b *Board) TagEntries() []TagEntry { return b.tags.Entries(b.Catalog()) }

func (b *Board) ToggleTag(tagID string) bool { return b.tags.Toggle(tagID) }

// SaveTags replaces the note's tag set with the staged set in a single
// update. It reports whether the note changed.
func (b *Board) SaveTags() bool {
	id, ids, ok := b.tags.Save()
	if !ok {
		return false
	}
	n := b.index[id]
	if n == nil || n.IsLocked || slices.Equal(domain.NormalizeTagIDs(n.TagIDs), ids) {
		return false
	}
	patch := domain.TagsPatch(ids)
	patch.Apply(n)
	b.emitUpdate(id, patch)
	return true
}

func (b *Board) CancelTags() { b.tags.Cancel() }

// Context menu

// OpenMenu opens the note's context menu at a screen point and brings the
// note to front.
func (b *Board) OpenMenu(id string, at Point) bool {
	n := b.index[id]
	if n == nil {
		return false
	}
	b.focused = id
	b.BringToFront(id)
	b.menu = &Menu{NoteID: id, At: at, Items: b.cards[id].menuItems(n)}
	return true
}

// Menu returns the open menu, or nil.
func (b *Board) Menu() *Menu { return b.menu }

func (b *Board) CloseMenu() { b.menu = nil }

// InvokeMenu runs an enabled item of the open menu and closes it. It
// reports whether the action took effect.
func (b *Board) InvokeMenu(action MenuAction) bool {
	m := b.menu
	if m == nil {
		return false
	}
	i := slices.IndexFunc(m.Items, func(it MenuItem) bool { return it.Action == action })
	if i < 0 || !m.Items[i].Enabled {
		return false
	}
	b.menu = nil
	id := m.NoteID
	switch action {
	case MenuEdit:
		return b.BeginEdit(id)
	case MenuLock:
		return b.ToggleLock(id)
	case MenuColor:
		return b.CycleColor(id)
	case MenuImportance:
		return b.CycleImportance(id)
	case MenuTags:
		return b.OpenTagEditor(id)
	case MenuFront:
		return b.BringToFront(id)
	case MenuSelect:
		b.ToggleSelect(id)
		return true
	case MenuDelete:
		return b.Delete(id) == nil
	}
	return false
}

func (b *Board) emitUpdate(id string, patch domain.NotePatch) {
	if b.cb.OnUpdate != nil {
		b.cb.OnUpdate(id, patch)
	}
}

func (b *Board) emitPosition(id string, x, y float64) {
	if b.cb.OnPositionUpdate != nil {
		b.cb.OnPositionUpdate(id, x, y)
	}
}
