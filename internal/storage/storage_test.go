package storage

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal", "submissions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	subs := []Submission{
		{ID: "a", MeetingTitle: "Q3 Sync", MeetingType: "Planning", TaskCount: 2, Outcome: OutcomeDelivered, Status: 200, CreatedAt: base},
		{ID: "b", MeetingType: "Standup", Outcome: OutcomeRejected, Status: 500, Detail: "boom", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Outcome: OutcomeNetwork, Detail: "connection refused", CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, sub := range subs {
		if err := s.Record(sub); err != nil {
			t.Fatalf("Record(%s): %v", sub.ID, err)
		}
	}

	got, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Outcome != OutcomeRejected || got[1].Status != 500 || got[1].Detail != "boom" {
		t.Fatalf("fields not round-tripped: %+v", got[1])
	}
	if !got[1].CreatedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("created_at = %v", got[1].CreatedAt)
	}

	all, err := s.Recent(0)
	if err != nil || len(all) != 3 {
		t.Fatalf("Recent(0) = %d, %v", len(all), err)
	}
}

func TestRecordRequiresID(t *testing.T) {
	s := openTemp(t)
	if err := s.Record(Submission{Outcome: OutcomeDelivered}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestRecordDuplicateID(t *testing.T) {
	s := openTemp(t)
	sub := Submission{ID: "dup", Outcome: OutcomeDelivered}
	if err := s.Record(sub); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(sub); err == nil {
		t.Fatalf("expected primary key violation")
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestSqliteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/x.db")
	if !strings.HasPrefix(dsn, "file:///tmp/x.db?") || !strings.Contains(dsn, "mode=rwc") {
		t.Fatalf("dsn = %q", dsn)
	}
	if got := sqliteDSN("file:mem?mode=memory"); got != "file:mem?mode=memory" {
		t.Fatalf("file: DSN rewritten to %q", got)
	}
}
