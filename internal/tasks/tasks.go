// Package tasks holds the in-memory action item list for one editing session.
package tasks

import (
	"errors"
	"slices"
)

var ErrNotFound = errors.New("task not found")

type Task struct {
	ID    int64  `json:"id"`
	Task  string `json:"task"`
	Owner string `json:"owner"`
}

// Store is an ordered list of tasks. IDs come from a counter that only moves
// forward, so an id is never handed out twice in the same session.
type Store struct {
	tasks  []Task
	nextID int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends a task and returns it with its assigned id.
func (s *Store) Add(task, owner string) Task {
	t := Task{ID: s.nextID, Task: task, Owner: owner}
	s.nextID++
	s.tasks = append(s.tasks, t)
	return t
}

func (s *Store) Update(id int64, task, owner string) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Task = task
	s.tasks[i].Owner = owner
	return nil
}

// Delete removes the task with the given id and keeps the order of the rest.
func (s *Store) Delete(id int64) (Task, error) {
	i := s.index(id)
	if i < 0 {
		return Task{}, ErrNotFound
	}
	t := s.tasks[i]
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return t, nil
}

func (s *Store) Get(id int64) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// All returns a copy of the tasks in insertion order.
func (s *Store) All() []Task {
	return slices.Clone(s.tasks)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) index(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

// Session is the state owned by one editor run.
type Session struct {
	MeetingTitle string
	Tasks        *Store
}

func NewSession() *Session {
	return &Session{Tasks: NewStore()}
}
