package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"actionboard/internal/tasks"
)

const DefaultTimeout = 15 * time.Second

// Payload is the body posted to the webhook.
type Payload struct {
	MeetingTitle string       `json:"meeting_title"`
	MeetingType  string       `json:"meetingType"`
	Tasks        []tasks.Task `json:"tasks"`
}

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("webhook unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RejectedError means the webhook answered with a non-2xx status.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("webhook rejected submission: status %d", e.Status)
	}
	return fmt.Sprintf("webhook rejected submission: status %d: %s", e.Status, e.Body)
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) URL() string { return c.url }

// Receipt describes one delivery attempt.
type Receipt struct {
	SubmissionID string
	Status       int
	Body         []byte
}

// Submit posts the payload once. Failures are *NetworkError or *RejectedError;
// the receipt is filled in as far as the attempt got.
func (c *Client) Submit(ctx context.Context, p Payload) (Receipt, error) {
	rcpt := Receipt{SubmissionID: uuid.NewString()}
	if p.Tasks == nil {
		p.Tasks = []tasks.Task{}
	}

	body, err := json.Marshal(p)
	if err != nil {
		return rcpt, fmt.Errorf("encode payload: %w", err)
	}
	rcpt.Body = body

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return rcpt, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Submission-ID", rcpt.SubmissionID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rcpt, &NetworkError{Err: err}
	}
	defer resp.Body.Close()
	rcpt.Status = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err != nil {
			return rcpt, &RejectedError{Status: resp.StatusCode, Body: fmt.Sprintf("read body: %v", err)}
		}
		return rcpt, &RejectedError{Status: resp.StatusCode, Body: string(bytes.TrimSpace(detail))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return rcpt, nil
}
