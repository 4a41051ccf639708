package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"actionboard/internal/notify"
	"actionboard/internal/storage"
	"actionboard/internal/tasks"
	"actionboard/internal/webhook"
)

type submitResultMsg struct {
	payload webhook.Payload
	receipt webhook.Receipt
	err     error
}

// saveAllTasks reconciles the editors into the store and posts the whole
// list. Only one submission runs at a time; further triggers are ignored
// until it finishes.
func (m Model) saveAllTasks() (Model, tea.Cmd) {
	if m.submitting {
		return m, m.notes.Push("A submission is already in progress", notify.Info)
	}
	if m.submitter == nil {
		return m, m.notes.Push("No webhook configured", notify.Error)
	}
	meetingType := m.MeetingType()
	m.reconcile()
	p := m.payload(meetingType, m.session.Tasks.All())

	m.submitting = true
	return m, tea.Batch(m.spinner.Tick, submitCmd(m.ctx, m.submitter, p, m.timeout))
}

// reconcile trims every stored task and mirrors the result into the row
// editors, matching rows to tasks by id.
func (m *Model) reconcile() {
	for i := range m.rows {
		r := &m.rows[i]
		t, ok := m.session.Tasks.Get(r.id)
		if !ok {
			log.Printf("reconcile task %d: %v", r.id, tasks.ErrNotFound)
			continue
		}
		task := strings.TrimSpace(t.Task)
		owner := strings.TrimSpace(t.Owner)
		if err := m.session.Tasks.Update(r.id, task, owner); err != nil {
			log.Printf("reconcile task %d: %v", r.id, err)
		}
		r.task.SetValue(task)
		r.owner.SetValue(owner)
	}
}

func (m Model) payload(meetingType string, list []tasks.Task) webhook.Payload {
	if list == nil {
		list = []tasks.Task{}
	}
	return webhook.Payload{
		MeetingTitle: m.session.MeetingTitle,
		MeetingType:  meetingType,
		Tasks:        list,
	}
}

func submitCmd(ctx context.Context, s Submitter, p webhook.Payload, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		reqCtx := ctx
		if timeout > 0 {
			var cancel context.CancelFunc
			reqCtx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		rcpt, err := s.Submit(reqCtx, p)
		return submitResultMsg{payload: p, receipt: rcpt, err: err}
	}
}

// finishSubmit always clears the loading state, then reports the outcome.
func (m Model) finishSubmit(msg submitResultMsg) (Model, tea.Cmd) {
	m.submitting = false
	m.record(msg)

	var rejected *webhook.RejectedError
	var network *webhook.NetworkError
	switch {
	case msg.err == nil:
		log.Printf("submission %s delivered: status %d, %d tasks", msg.receipt.SubmissionID, msg.receipt.Status, len(msg.payload.Tasks))
		return m, m.notes.Push(fmt.Sprintf("Saved %d action items", len(msg.payload.Tasks)), notify.Success)
	case errors.As(msg.err, &rejected):
		log.Printf("submission %s rejected: status %d: %s", msg.receipt.SubmissionID, rejected.Status, rejected.Body)
		text := fmt.Sprintf("Server rejected the submission (HTTP %d)", rejected.Status)
		if rejected.Body != "" {
			text += ": " + rejected.Body
		}
		return m, m.notes.Push(text, notify.Error)
	case errors.As(msg.err, &network):
		log.Printf("submission %s failed: %v", msg.receipt.SubmissionID, network.Err)
		return m, m.notes.Push("Could not reach the server. Check your connection and try again.", notify.Error)
	default:
		log.Printf("submission %s failed: %v", msg.receipt.SubmissionID, msg.err)
		return m, m.notes.Push(fmt.Sprintf("save failed: %v", msg.err), notify.Error)
	}
}

func (m Model) record(msg submitResultMsg) {
	if m.journal == nil || msg.receipt.SubmissionID == "" {
		return
	}
	if err := m.journal.Record(JournalEntry(msg.payload, msg.receipt, msg.err)); err != nil {
		log.Printf("journal submission %s: %v", msg.receipt.SubmissionID, err)
	}
}

// JournalEntry converts a delivery attempt into a journal entry.
func JournalEntry(p webhook.Payload, rcpt webhook.Receipt, err error) storage.Submission {
	sub := storage.Submission{
		ID:           rcpt.SubmissionID,
		MeetingTitle: p.MeetingTitle,
		MeetingType:  p.MeetingType,
		TaskCount:    len(p.Tasks),
		Payload:      string(rcpt.Body),
		Outcome:      storage.OutcomeDelivered,
		Status:       rcpt.Status,
	}
	var rejected *webhook.RejectedError
	switch {
	case err == nil:
	case errors.As(err, &rejected):
		sub.Outcome = storage.OutcomeRejected
		sub.Detail = rejected.Body
	default:
		sub.Outcome = storage.OutcomeNetwork
		sub.Detail = err.Error()
	}
	return sub
}

// copyPayload puts the JSON that a submission would send on the clipboard.
// Values are trimmed in the copy only; the store is left alone.
func (m Model) copyPayload() (Model, tea.Cmd) {
	list := m.session.Tasks.All()
	for i := range list {
		list[i].Task = strings.TrimSpace(list[i].Task)
		list[i].Owner = strings.TrimSpace(list[i].Owner)
	}
	data, err := json.MarshalIndent(m.payload(m.MeetingType(), list), "", "  ")
	if err != nil {
		return m, m.notes.Push(fmt.Sprintf("copy failed: %v", err), notify.Error)
	}
	if err := m.copyText(string(data)); err != nil {
		return m, m.notes.Push(fmt.Sprintf("copy failed: %v", err), notify.Error)
	}
	return m, m.notes.Push("Payload copied to clipboard", notify.Success)
}
