package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted  = ac("240", "243")
	colorAccent = ac("27", "62")
	colorDanger = ac("#b31d28", "#f97583")

	titleStyle    = lipgloss.NewStyle().Bold(true)
	meetingStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	accentStyle   = lipgloss.NewStyle().Foreground(colorAccent)
	deleteStyle   = lipgloss.NewStyle().Foreground(colorDanger)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)
)

func (m Model) View() string {
	switch {
	case m.submitting:
		return m.place(m.renderLoading())
	case m.modal.open:
		return m.place(m.renderModal())
	default:
		return m.renderEditor()
	}
}

// place centers an overlay on the screen once the size is known.
func (m Model) place(box string) string {
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderEditor() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Meeting Action Items"))
	b.WriteString("\n")
	if m.session.MeetingTitle != "" {
		b.WriteString(labelStyle.Render("Meeting: "))
		b.WriteString(meetingStyle.Render(m.session.MeetingTitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.renderMeetingType())
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No action items yet. Press %s to add one.", m.keys.Add.Help().Key)))
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTasks())
	}

	if notes := m.notes.View(); notes != "" {
		b.WriteString("\n")
		b.WriteString(notes)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderMeetingType() string {
	cursor := " "
	value := m.MeetingType()
	if m.focus == 0 {
		cursor = ">"
		value = selectedStyle.Render("‹ " + value + " ›")
	} else {
		value = "‹ " + value + " ›"
	}
	return fmt.Sprintf("%s %s %s", cursor, labelStyle.Render("Meeting type:"), value)
}

// deleteColumn is the screen column of a row's ✕ control, after the cursor
// and one space.
const deleteColumn = 2

// rowsTop is the screen line of the first task row in the editor view.
func (m Model) rowsTop() int {
	top := 4 // title, blank, selector, blank
	if m.session.MeetingTitle != "" {
		top++
	}
	return top
}

// renderTasks draws one line per task in store order. The label carries the
// 1-based position; the editors belong to the task id.
func (m Model) renderTasks() string {
	var b strings.Builder
	current, _, hasRow := m.focusedRow()
	for i, r := range m.rows {
		cursor := " "
		if hasRow && current == i {
			cursor = ">"
		}
		label := labelStyle.Render(fmt.Sprintf("Task %d", i+1))
		owner := labelStyle.Render("Owner")
		b.WriteString(fmt.Sprintf("%s %s %s  %s  %s %s\n",
			cursor, deleteStyle.Render("✕"), label, r.task.View(), owner, r.owner.View()))
	}
	return b.String()
}

func (m Model) renderModal() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Add action item"))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Task name"))
	b.WriteString("\n")
	b.WriteString(m.modal.name.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Owner"))
	b.WriteString("\n")
	b.WriteString(m.modal.owner.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.modalHelp()))
	if notes := m.notes.View(); notes != "" {
		b.WriteString("\n\n")
		b.WriteString(notes)
	}
	return modalStyle.Render(b.String())
}

func (m Model) renderLoading() string {
	body := m.spinner.View() + " Saving action items..."
	return modalStyle.Render(body)
}
