package ui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"actionboard/internal/config"
	"actionboard/internal/notify"
	"actionboard/internal/storage"
	"actionboard/internal/tasks"
	"actionboard/internal/webhook"
)

// Submitter delivers the finished list. *webhook.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, p webhook.Payload) (webhook.Receipt, error)
}

// Journal records delivery attempts. *storage.Store implements it.
type Journal interface {
	Record(sub storage.Submission) error
}

type Options struct {
	Session   *tasks.Session
	Config    config.Config
	Submitter Submitter
	// Journal may be nil.
	Journal Journal
	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// row holds the two editors for one task. Rows are keyed by task id so an
// editor survives redraws caused by other rows being added or removed.
type row struct {
	id    int64
	task  textinput.Model
	owner textinput.Model
}

type Model struct {
	ctx       context.Context
	session   *tasks.Session
	cfg       config.Config
	keys      keyMap
	help      help.Model
	submitter Submitter
	journal   Journal
	copyText  func(string) error
	timeout   time.Duration

	rows []row
	// focus 0 is the meeting type selector; 1+2i and 2+2i are the task and
	// owner editors of row i.
	focus        int
	meetingTypes []string
	meetingType  int

	modal      addModal
	notes      notify.Center
	spinner    spinner.Model
	submitting bool

	width  int
	height int
}

func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	sess := opts.Session
	if sess == nil {
		sess = tasks.NewSession()
	}
	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}
	types := opts.Config.MeetingTypes
	if len(types) == 0 {
		types = []string{"General"}
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accentStyle

	m := Model{
		ctx:          ctx,
		session:      sess,
		cfg:          opts.Config,
		keys:         newKeyMap(opts.Config.Keys),
		help:         help.New(),
		submitter:    opts.Submitter,
		journal:      opts.Journal,
		copyText:     copyText,
		timeout:      opts.Config.RequestTimeout(),
		meetingTypes: types,
		modal:        newAddModal(),
		notes:        notify.New(opts.Config.NotifyDismiss(), opts.Config.NotifyExit()),
		spinner:      s,
	}
	m.syncRows()
	if len(m.rows) > 0 {
		m.focus = 1
	}
	m.applyFocus()
	return m
}

func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case notify.ExpireMsg, notify.RemoveMsg:
		return m, m.notes.Update(msg)
	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case submitResultMsg:
		return m.finishSubmit(msg)
	case tea.MouseMsg:
		switch {
		case m.modal.open:
			return m.handleModalMouse(msg)
		case m.submitting:
			return m, nil
		}
		return m.handleEditorMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.submitting {
			if key.Matches(msg, m.keys.Submit) {
				return m.saveAllTasks()
			}
			return m, nil
		}
		if m.modal.open {
			return m.updateModal(msg)
		}
		return m.updateEditor(msg)
	}
	return m.forwardToFocused(msg)
}

// forwardToFocused passes non-key messages such as cursor blinks to the
// focused editor.
func (m Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.modal.open {
		m.modal, cmd = m.modal.update(msg)
		return m, cmd
	}
	if r, field, ok := m.focusedRow(); ok {
		if field == 0 {
			m.rows[r].task, cmd = m.rows[r].task.Update(msg)
		} else {
			m.rows[r].owner, cmd = m.rows[r].owner.Update(msg)
		}
	}
	return m, cmd
}

// Session returns the state edited by this model.
func (m Model) Session() *tasks.Session {
	return m.session
}

// Submitting reports whether a delivery is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// MeetingType is the current selector value.
func (m Model) MeetingType() string {
	return m.meetingTypes[m.meetingType]
}

// Notifications returns the visible notifications, oldest first.
func (m Model) Notifications() []notify.Notification {
	return m.notes.Items()
}
