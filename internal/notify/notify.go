// Package notify renders short-lived status messages for the editor.
//
// Each notification lives for the dismiss delay, then spends the exit delay
// in a leaving state (drawn faint) before it is removed. Timers are
// independent: notifications stack and are never merged or dropped early.
package notify

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Kind int

const (
	Info Kind = iota
	Success
	Error
)

const (
	DefaultDismiss = 3000 * time.Millisecond
	DefaultExit    = 300 * time.Millisecond
)

func (k Kind) Icon() string {
	switch k {
	case Success:
		return "✔"
	case Error:
		return "✖"
	default:
		return "ℹ"
	}
}

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Notification struct {
	Seq     int
	Message string
	Kind    Kind
	Leaving bool
}

// ExpireMsg starts the exit phase of a notification.
type ExpireMsg struct{ Seq int }

// RemoveMsg detaches a notification after its exit phase.
type RemoveMsg struct{ Seq int }

type Center struct {
	items   []Notification
	seq     int
	dismiss time.Duration
	exit    time.Duration
}

func New(dismiss, exit time.Duration) Center {
	if dismiss <= 0 {
		dismiss = DefaultDismiss
	}
	if exit <= 0 {
		exit = DefaultExit
	}
	return Center{dismiss: dismiss, exit: exit}
}

// Push appends a notification and returns the command that expires it.
func (c *Center) Push(message string, kind Kind) tea.Cmd {
	c.seq++
	seq := c.seq
	c.items = append(c.items, Notification{Seq: seq, Message: message, Kind: kind})
	return tea.Tick(c.dismiss, func(time.Time) tea.Msg { return ExpireMsg{Seq: seq} })
}

// Update advances notification timers. Messages for other components are
// ignored.
func (c *Center) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ExpireMsg:
		for i := range c.items {
			if c.items[i].Seq == msg.Seq {
				c.items[i].Leaving = true
				seq := msg.Seq
				return tea.Tick(c.exit, func(time.Time) tea.Msg { return RemoveMsg{Seq: seq} })
			}
		}
	case RemoveMsg:
		for i := range c.items {
			if c.items[i].Seq == msg.Seq {
				c.items = append(c.items[:i], c.items[i+1:]...)
				break
			}
		}
	}
	return nil
}

// Items returns the live notifications, oldest first.
func (c Center) Items() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Last returns the newest notification.
func (c Center) Last() (Notification, bool) {
	if len(c.items) == 0 {
		return Notification{}, false
	}
	return c.items[len(c.items)-1], true
}

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#22863a", Dark: "#97e023"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b31d28", Dark: "#f97583"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "27", Dark: "62"})
)

func (c Center) View() string {
	if len(c.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(c.items))
	for _, n := range c.items {
		st := infoStyle
		switch n.Kind {
		case Success:
			st = successStyle
		case Error:
			st = errorStyle
		}
		if n.Leaving {
			st = st.Faint(true)
		}
		lines = append(lines, st.Render(n.Kind.Icon()+" "+n.Message))
	}
	return strings.Join(lines, "\n")
}
