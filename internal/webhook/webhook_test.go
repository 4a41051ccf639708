package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"actionboard/internal/tasks"
)

func TestSubmitSuccess(t *testing.T) {
	var got map[string]any
	var contentType, submissionID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		contentType = r.Header.Get("Content-Type")
		submissionID = r.Header.Get("X-Submission-ID")
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)
	rcpt, err := c.Submit(context.Background(), Payload{
		MeetingTitle: "Q3 Sync",
		MeetingType:  "Planning",
		Tasks:        []tasks.Task{{ID: 1, Task: "Draft doc", Owner: "Ana"}},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rcpt.Status != http.StatusAccepted || rcpt.SubmissionID == "" || rcpt.SubmissionID != submissionID {
		t.Fatalf("unexpected receipt %+v (header id %q)", rcpt, submissionID)
	}
	if contentType != "application/json" {
		t.Fatalf("content type = %q", contentType)
	}
	if got["meeting_title"] != "Q3 Sync" || got["meetingType"] != "Planning" {
		t.Fatalf("unexpected body %v", got)
	}
	list, ok := got["tasks"].([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("tasks = %v", got["tasks"])
	}
	first := list[0].(map[string]any)
	if first["id"] != float64(1) || first["task"] != "Draft doc" || first["owner"] != "Ana" {
		t.Fatalf("task = %v", first)
	}
}

func TestSubmitEmptyListEncodesArray(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, 0).Submit(context.Background(), Payload{}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	var body struct {
		Tasks json.RawMessage `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body.Tasks) != "[]" {
		t.Fatalf("tasks = %s, want []", body.Tasks)
	}
}

func TestSubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow disabled", http.StatusBadGateway)
	}))
	defer srv.Close()

	rcpt, err := NewClient(srv.URL, 0).Submit(context.Background(), Payload{})
	var rej *RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectedError, got %T %v", err, err)
	}
	if rej.Status != http.StatusBadGateway || rej.Body != "workflow disabled" {
		t.Fatalf("unexpected rejection %+v", rej)
	}
	if rcpt.Status != http.StatusBadGateway {
		t.Fatalf("receipt status = %d", rcpt.Status)
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		t.Fatalf("rejection must not look like a network failure")
	}
}

func TestSubmitNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, 0).Submit(context.Background(), Payload{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T %v", err, err)
	}
}

func TestSubmitCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, 0).Submit(ctx, Payload{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled in chain, got %v", err)
	}
}
