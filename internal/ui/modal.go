package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type addModal struct {
	open  bool
	name  textinput.Model
	owner textinput.Model
	// 0 name, 1 owner
	focus int
}

func newAddModal() addModal {
	return addModal{
		name:  newField("What needs to happen?", "", 40),
		owner: newField("Who owns it?", "", 40),
	}
}

func (d addModal) values() (string, string) {
	return strings.TrimSpace(d.name.Value()), strings.TrimSpace(d.owner.Value())
}

func (d *addModal) focusField(i int) tea.Cmd {
	d.focus = i
	if i == 0 {
		d.owner.Blur()
		return d.name.Focus()
	}
	d.name.Blur()
	return d.owner.Focus()
}

func (d addModal) update(msg tea.Msg) (addModal, tea.Cmd) {
	var cmd tea.Cmd
	if d.focus == 0 {
		d.name, cmd = d.name.Update(msg)
	} else {
		d.owner, cmd = d.owner.Update(msg)
	}
	return d, cmd
}

// openModal shows the add dialog with the cursor in the task field.
func (m Model) openModal() (Model, tea.Cmd) {
	m.modal.open = true
	m.applyFocus()
	return m, m.modal.focusField(0)
}

// closeModal hides the add dialog and blanks its fields. The caller restores
// editor focus.
func (m *Model) closeModal() {
	m.modal.open = false
	m.modal.name.SetValue("")
	m.modal.owner.SetValue("")
	m.modal.name.Blur()
	m.modal.owner.Blur()
	m.modal.focus = 0
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeModal()
		return m, m.applyFocus()
	case key.Matches(msg, m.keys.Confirm):
		return m.addTask()
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Prev):
		return m, m.modal.focusField(1 - m.modal.focus)
	}
	switch msg.String() {
	case "up", "down":
		return m, m.modal.focusField(1 - m.modal.focus)
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.update(msg)
	return m, cmd
}

// handleModalMouse closes the dialog on a left click that lands on the
// backdrop rather than on the dialog box itself.
func (m Model) handleModalMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.width == 0 || m.height == 0 {
		return m, nil
	}
	x0, y0, w, h := m.modalBounds()
	if msg.X >= x0 && msg.X < x0+w && msg.Y >= y0 && msg.Y < y0+h {
		return m, nil
	}
	m.closeModal()
	return m, m.applyFocus()
}

// modalBounds mirrors the centering done by lipgloss.Place in View.
func (m Model) modalBounds() (x, y, w, h int) {
	box := m.renderModal()
	w = lipgloss.Width(box)
	h = lipgloss.Height(box)
	x = max(m.width-w, 0) / 2
	y = max(m.height-h, 0) / 2
	return x, y, w, h
}
