// Package storage keeps a journal of webhook deliveries in SQLite. The journal
// is an audit trail only; the editor never restores tasks from it.
package storage

import (
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeRejected  Outcome = "rejected"
	OutcomeNetwork   Outcome = "network"
)

// Fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Submission struct {
	ID           string
	MeetingTitle string
	MeetingType  string
	TaskCount    int
	Payload      string
	Outcome      Outcome
	Status       int
	Detail       string
	CreatedAt    time.Time
}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	meeting_title TEXT NOT NULL DEFAULT '',
	meeting_type TEXT NOT NULL DEFAULT '',
	task_count INTEGER NOT NULL DEFAULT 0,
	payload TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	status INTEGER NOT NULL DEFAULT 0,
	detail TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Record stores one delivery attempt. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Record(sub Submission) error {
	if sub.ID == "" {
		return errors.New("submission id is empty")
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO submissions (id, meeting_title, meeting_type, task_count, payload, outcome, status, detail, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		sub.ID, sub.MeetingTitle, sub.MeetingType, sub.TaskCount, sub.Payload, string(sub.Outcome), sub.Status, sub.Detail,
		sub.CreatedAt.UTC().Format(timeLayout))
	return err
}

// Recent returns up to limit submissions, newest first. limit <= 0 means all.
func (s *Store) Recent(limit int) ([]Submission, error) {
	q := `SELECT id, meeting_title, meeting_type, task_count, payload, outcome, status, detail, created_at
FROM submissions ORDER BY created_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(q+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []Submission
	for rows.Next() {
		var sub Submission
		var outcome, createdStr string
		if err := rows.Scan(&sub.ID, &sub.MeetingTitle, &sub.MeetingType, &sub.TaskCount, &sub.Payload, &outcome, &sub.Status, &sub.Detail, &createdStr); err != nil {
			return nil, err
		}
		sub.Outcome = Outcome(outcome)
		if created, err := time.Parse(timeLayout, createdStr); err == nil {
			sub.CreatedAt = created
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subs, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
