package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"actionboard/internal/notify"
	"actionboard/internal/tasks"
)

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m.openModal()
	case key.Matches(msg, m.keys.Delete):
		r, _, ok := m.focusedRow()
		if !ok {
			return m, m.notes.Push("Move to a task row to delete it", notify.Info)
		}
		return m.deleteTask(m.rows[r].id)
	case key.Matches(msg, m.keys.Submit):
		return m.saveAllTasks()
	case key.Matches(msg, m.keys.Copy):
		return m.copyPayload()
	case key.Matches(msg, m.keys.MeetingType):
		m.cycleMeetingType(1)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.moveField(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.moveField(-1)
	}

	switch msg.String() {
	case "down":
		return m, m.moveRow(1)
	case "up":
		return m, m.moveRow(-1)
	}

	if m.focus == 0 {
		switch msg.String() {
		case "right", "l", " ":
			m.cycleMeetingType(1)
		case "left", "h":
			m.cycleMeetingType(-1)
		}
		return m, nil
	}
	return m.editFocused(msg)
}

// editFocused feeds a key to the focused editor and writes the result back
// to the store when the text changed. The store stays authoritative; an
// untouched editor never overwrites the value it was seeded with.
func (m Model) editFocused(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r, field, ok := m.focusedRow()
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	row := &m.rows[r]
	ed := &row.task
	if field == 1 {
		ed = &row.owner
	}
	before := ed.Value()
	*ed, cmd = ed.Update(msg)
	if ed.Value() == before {
		return m, cmd
	}

	// Only the edited field is written; the other keeps its stored text,
	// which the editor may display sanitized.
	t, ok := m.session.Tasks.Get(row.id)
	if !ok {
		return m, tea.Batch(cmd, m.notes.Push(fmt.Sprintf("edit failed: %v", tasks.ErrNotFound), notify.Error))
	}
	if field == 0 {
		t.Task = ed.Value()
	} else {
		t.Owner = ed.Value()
	}
	if err := m.session.Tasks.Update(row.id, t.Task, t.Owner); err != nil {
		return m, tea.Batch(cmd, m.notes.Push(fmt.Sprintf("edit failed: %v", err), notify.Error))
	}
	return m, cmd
}

// addTask appends the task typed into the add dialog. Both fields are
// required; on failure the dialog stays open.
func (m Model) addTask() (Model, tea.Cmd) {
	name, owner := m.modal.values()
	if name == "" || owner == "" {
		return m, m.notes.Push("Please enter both a task and an owner", notify.Error)
	}

	t := m.session.Tasks.Add(name, owner)
	m.closeModal()
	m.syncRows()
	m.focus = m.slotFor(len(m.rows)-1, 0)
	focusCmd := m.applyFocus()
	return m, tea.Batch(focusCmd, m.notes.Push(fmt.Sprintf("Added %q for %s", t.Task, t.Owner), notify.Success))
}

// deleteTask removes the task with the given id, leaving the others in order.
func (m Model) deleteTask(id int64) (Model, tea.Cmd) {
	t, err := m.session.Tasks.Delete(id)
	if err != nil {
		return m, m.notes.Push(fmt.Sprintf("delete failed: %v", err), notify.Error)
	}
	m.syncRows()
	m.focus = clampFocus(m.focus, m.focusSlots())
	focusCmd := m.applyFocus()
	return m, tea.Batch(focusCmd, m.notes.Push(fmt.Sprintf("Deleted %q", t.Task), notify.Success))
}

// handleEditorMouse deletes the row whose ✕ control was clicked.
func (m Model) handleEditorMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	i := msg.Y - m.rowsTop()
	if msg.X != deleteColumn || i < 0 || i >= len(m.rows) {
		return m, nil
	}
	return m.deleteTask(m.rows[i].id)
}

func (m *Model) cycleMeetingType(delta int) {
	n := len(m.meetingTypes)
	m.meetingType = ((m.meetingType+delta)%n + n) % n
}

// syncRows rebuilds the row list from the store, reusing editors of tasks
// that are still present.
func (m *Model) syncRows() {
	existing := make(map[int64]row, len(m.rows))
	for _, r := range m.rows {
		existing[r.id] = r
	}
	all := m.session.Tasks.All()
	rows := make([]row, 0, len(all))
	for _, t := range all {
		r, ok := existing[t.ID]
		if !ok {
			r = newRow(t)
		}
		rows = append(rows, r)
	}
	m.rows = rows
}

func newRow(t tasks.Task) row {
	return row{
		id:    t.ID,
		task:  newField("Task", t.Task, 36),
		owner: newField("Owner", t.Owner, 20),
	}
}

func newField(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 0
	ti.Width = width
	ti.SetValue(value)
	return ti
}

func (m Model) focusSlots() int {
	return 1 + 2*len(m.rows)
}

func (m Model) slotFor(rowIdx, field int) int {
	return 1 + 2*rowIdx + field
}

// focusedRow returns the row index and field (0 task, 1 owner) under focus.
func (m Model) focusedRow() (int, int, bool) {
	if m.focus <= 0 || len(m.rows) == 0 {
		return 0, 0, false
	}
	idx := m.focus - 1
	r := idx / 2
	if r >= len(m.rows) {
		return 0, 0, false
	}
	return r, idx % 2, true
}

// moveField steps through the selector and every editor, wrapping around.
func (m *Model) moveField(delta int) tea.Cmd {
	n := m.focusSlots()
	m.focus = ((m.focus+delta)%n + n) % n
	return m.applyFocus()
}

// moveRow keeps the current column and moves one row up or down. Moving up
// from the first row lands on the selector.
func (m *Model) moveRow(delta int) tea.Cmd {
	switch {
	case m.focus == 0:
		if delta > 0 && len(m.rows) > 0 {
			m.focus = 1
		}
	default:
		next := m.focus + 2*delta
		if next < 1 {
			next = 0
		}
		if next < m.focusSlots() {
			m.focus = next
		}
	}
	return m.applyFocus()
}

// applyFocus focuses exactly one row editor, or none when the selector has
// focus.
func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	r, field, ok := m.focusedRow()
	for i := range m.rows {
		m.rows[i].task.Blur()
		m.rows[i].owner.Blur()
	}
	if ok && !m.modal.open {
		if field == 0 {
			cmd = m.rows[r].task.Focus()
		} else {
			cmd = m.rows[r].owner.Focus()
		}
	}
	return cmd
}

func clampFocus(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
