package tasks

import (
	"errors"
	"testing"
)

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s := NewStore()
	a := s.Add("Draft doc", "Ana")
	b := s.Add("Review", "Ben")
	if a.ID >= b.ID {
		t.Fatalf("expected increasing ids, got %d then %d", a.ID, b.ID)
	}
	if _, err := s.Delete(b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	c := s.Add("Ship", "Cy")
	if c.ID == b.ID {
		t.Fatalf("id %d was reused after delete", c.ID)
	}
	if got := s.Len(); got != 2 {
		t.Fatalf("expected 2 tasks, got %d", got)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	s := NewStore()
	first := s.Add("one", "a")
	mid := s.Add("two", "b")
	last := s.Add("three", "c")

	removed, err := s.Delete(mid.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if removed.Task != "two" {
		t.Fatalf("removed wrong task: %+v", removed)
	}
	got := s.All()
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != last.ID {
		t.Fatalf("unexpected remainder: %+v", got)
	}
}

func TestDeleteMissing(t *testing.T) {
	s := NewStore()
	s.Add("one", "a")
	if _, err := s.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("store changed on failed delete")
	}
}

func TestUpdateAllowsEmptyValues(t *testing.T) {
	s := NewStore()
	tk := s.Add("one", "a")
	if err := s.Update(tk.ID, "", ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, ok := s.Get(tk.ID)
	if !ok || got.Task != "" || got.Owner != "" {
		t.Fatalf("unexpected task after update: %+v", got)
	}
	if err := s.Update(99, "x", "y"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add("one", "a")
	all := s.All()
	all[0].Task = "changed"
	if got, _ := s.Get(all[0].ID); got.Task != "one" {
		t.Fatalf("All leaked internal slice")
	}
}
