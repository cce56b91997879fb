package teatest

import tea "github.com/charmbracelet/bubbletea"

// Mouse events are addressed in terminal cells, as bubbletea reports them.

// MouseDown sends a left-button press at (x, y).
func (d *Driver) MouseDown(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
}

// CtrlClick sends a left press and release with ctrl held.
func (d *Driver) CtrlClick(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Ctrl: true, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	d.Release(x, y)
}

// MoveTo sends a motion event with the left button held.
func (d *Driver) MoveTo(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion})
}

func (d *Driver) Release(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease})
}

// Click presses and releases the left button at (x, y).
func (d *Driver) Click(x, y int) {
	d.T.Helper()
	d.MouseDown(x, y)
	d.Release(x, y)
}

func (d *Driver) RightClick(x, y int) {
	d.T.Helper()
	d.Send(tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonRight, Action: tea.MouseActionPress})
	d.Release(x, y)
}

// Drag presses at from, moves through each step and releases at the last.
func (d *Driver) Drag(fromX, fromY int, steps ...[2]int) {
	d.T.Helper()
	d.MouseDown(fromX, fromY)
	x, y := fromX, fromY
	for _, s := range steps {
		x, y = s[0], s[1]
		d.MoveTo(x, y)
	}
	d.Release(x, y)
}
