package cli

import "github.com/charmbracelet/bubbles/key"

type boardKeyMap struct {
	New        key.Binding
	Edit       key.Binding
	Save       key.Binding
	Cancel     key.Binding
	Tags       key.Binding
	Lock       key.Binding
	Color      key.Binding
	Importance key.Binding
	Select     key.Binding
	Delete     key.Binding
	DeleteSel  key.Binding
	Front      key.Binding
	NextNote   key.Binding
	PrevNote   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ZoomReset  key.Binding
	Reload     key.Binding
	Menu       key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Confirm    key.Binding
	Quit       key.Binding
}

func newBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Tags:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tags")),
		Lock:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lock")),
		Color:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color")),
		Importance: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "importance")),
		Select:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Delete:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		DeleteSel:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete selected")),
		Front:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "front")),
		NextNote:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevNote:   key.NewBinding(key.WithKeys("shift+tab")),
		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut:    key.NewBinding(key.WithKeys("-")),
		ZoomReset:  key.NewBinding(key.WithKeys("0")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Menu:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Toggle:     key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardMode is the input mode of the board view; each mode owns the keys.
type boardMode int

const (
	modeCanvas boardMode = iota
	modeEditing
	modeTags
	modeMenu
)

func (k boardKeyMap) shortHelp(mode boardMode) []key.Binding {
	switch mode {
	case modeEditing:
		return []key.Binding{k.Save, k.Cancel}
	case modeTags:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
			k.Toggle, k.Confirm, k.Cancel,
		}
	case modeMenu:
		return []key.Binding{
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
			k.Cancel,
		}
	default:
		return []key.Binding{
			k.New, k.Edit, k.Tags, k.Lock, k.Color, k.Importance, k.Select,
			k.Delete, k.DeleteSel, k.Front, k.NextNote, k.ZoomIn, k.Menu, k.Reload, k.Quit,
		}
	}
}
