package tasks

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrEmptyText is returned by Add for blank task text. No request is made.
var ErrEmptyText = errors.New("task text is empty")

// Task is a remote status record seen as a to-do item. Completed is local
// state only and is never sent to the server.
type Task struct {
	ID        string
	Text      string
	Completed bool
	CreatedAt time.Time
}

// Remote is the record store the mirror reads and writes. *Client
// implements it.
type Remote interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, clientName string) (Record, error)
	Delete(ctx context.Context, id string) error
}

type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notifier receives user-facing notices about remote calls.
type Notifier interface {
	Notify(level Level, msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(level Level, msg string)

func (f NotifierFunc) Notify(level Level, msg string) { f(level, msg) }

// Mirror is the local copy of the remote task list. The server is
// authoritative for which tasks exist; the local list only changes after
// the server confirms.
type Mirror struct {
	remote Remote
	notify Notifier

	mu    sync.Mutex
	tasks []Task
}

func NewMirror(r Remote, n Notifier) *Mirror {
	if n == nil {
		n = NotifierFunc(func(Level, string) {})
	}
	return &Mirror{remote: r, notify: n}
}

// Load replaces the list with the server's records. On failure the list is
// left empty.
func (m *Mirror) Load(ctx context.Context) error {
	recs, err := m.remote.List(ctx)
	if err != nil {
		m.mu.Lock()
		m.tasks = nil
		m.mu.Unlock()
		m.notify.Notify(LevelError, "Failed to load tasks from server")
		return err
	}

	tasks := make([]Task, 0, len(recs))
	for _, r := range recs {
		tasks = append(tasks, fromRecord(r))
	}
	m.mu.Lock()
	m.tasks = tasks
	m.mu.Unlock()
	return nil
}

// Add creates a task on the server and appends the returned record.
func (m *Mirror) Add(ctx context.Context, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	rec, err := m.remote.Create(ctx, text)
	if err != nil {
		m.notify.Notify(LevelError, "Failed to sync with server")
		return Task{}, err
	}

	t := fromRecord(rec)
	m.mu.Lock()
	m.tasks = append(m.tasks, t)
	m.mu.Unlock()
	m.notify.Notify(LevelSuccess, "Task added")
	return t, nil
}

// Delete removes a task on the server, then locally.
func (m *Mirror) Delete(ctx context.Context, id string) error {
	if err := m.remote.Delete(ctx, id); err != nil {
		m.notify.Notify(LevelError, "Failed to delete task from server")
		return err
	}

	m.mu.Lock()
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
	m.notify.Notify(LevelSuccess, "Task deleted")
	return nil
}

// Toggle flips the local completed flag. It reports false for an unknown id.
func (m *Mirror) Toggle(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Completed = !m.tasks[i].Completed
			return true
		}
	}
	return false
}

// Tasks returns a copy of the current list.
func (m *Mirror) Tasks() []Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Counts returns the number of active and completed tasks.
func (m *Mirror) Counts() (active, completed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

func fromRecord(r Record) Task {
	return Task{
		ID:        r.ID,
		Text:      r.ClientName,
		Completed: r.Completed,
		CreatedAt: r.Timestamp,
	}
}
