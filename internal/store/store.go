package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/model"
)

var ErrNotFound = errors.New("store: task not found")

// TaskStore owns the canonical task list for the process. All mutations
// are serialized under one mutex; every mutation persists the list to a
// JSON file and then publishes a fresh snapshot to all subscribers. File
// I/O failures are logged and absorbed: the in-memory list stays
// authoritative and callers never see a persistence error.
type TaskStore struct {
	mu     sync.Mutex
	path   string
	tasks  []model.Task
	subs   []chan []model.Task
	logger *slog.Logger
}

// Open loads the task file at path and returns a ready store. A missing
// file yields an empty list. A malformed file also yields an empty list;
// the parse error is logged, never returned.
func Open(path string, logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &TaskStore{path: path, logger: logger}
	s.load()
	return s
}

func (s *TaskStore) load() {
	s.tasks = make([]model.Task, 0)

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("task file missing, starting empty", "path", s.path)
			return
		}
		s.logger.Error("read task file", "path", s.path, "err", err)
		return
	}
	if len(raw) == 0 {
		return
	}

	var loaded []model.Task
	if err := json.Unmarshal(raw, &loaded); err != nil {
		s.logger.Error("parse task file, starting empty", "path", s.path, "err", err)
		return
	}
	for i := range loaded {
		loaded[i].AssignID()
		if loaded[i].Subtasks == nil {
			loaded[i].Subtasks = []model.Subtask{}
		}
		s.tasks = append(s.tasks, loaded[i])
	}
	s.logger.Info("loaded tasks", "path", s.path, "count", len(s.tasks))
}

// All returns a snapshot copy; mutating the result never affects the
// store.
func (s *TaskStore) All() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *TaskStore) Get(id uuid.UUID) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i].Clone(), nil
		}
	}
	return model.Task{}, ErrNotFound
}

// GetByString parses id and looks the task up. A malformed or empty id
// is a lookup miss, not an error the caller has to branch on separately.
func (s *TaskStore) GetByString(id string) (model.Task, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		s.logger.Warn("bad task id", "id", id, "err", err)
		return model.Task{}, ErrNotFound
	}
	return s.Get(parsed)
}

// Add appends the task, assigning an identifier if it has none, then
// persists and notifies.
func (s *TaskStore) Add(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task.AssignID()
	if task.Subtasks == nil {
		task.Subtasks = []model.Subtask{}
	}
	s.tasks = append(s.tasks, task.Clone())
	s.commitLocked()
}

// Update replaces the stored task with the same id wholesale. If no task
// carries the id the list is untouched, but persistence and notification
// still fire; callers treat update as fire-and-forget.
func (s *TaskStore) Update(task model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == task.ID {
			s.tasks[i] = task.Clone()
			s.commitLocked()
			return
		}
	}
	s.logger.Warn("update for unknown task", "id", task.ID, "title", task.Title)
	s.commitLocked()
}

// Delete removes the task by id. Deleting an absent id is a silent
// no-op apart from the usual persist + notify.
func (s *TaskStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			break
		}
	}
	s.commitLocked()
}

// Subscribe returns a channel that receives a fresh snapshot after every
// mutation. The send is non-blocking; a subscriber that falls behind
// misses intermediate snapshots, never partial ones.
func (s *TaskStore) Subscribe() <-chan []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan []model.Task, 1)
	s.subs = append(s.subs, ch)
	return ch
}

// Close drops all subscriber channels.
func (s *TaskStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = nil
}

// commitLocked persists then publishes. Ordering matters: subscribers
// observe a snapshot only after the write attempt for it has finished.
func (s *TaskStore) commitLocked() {
	s.saveLocked()
	snap := s.snapshotLocked()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// Drain the stale snapshot so the latest one lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func (s *TaskStore) saveLocked() {
	payload, err := json.MarshalIndent(s.tasks, "", "  ")
	if err != nil {
		s.logger.Error("encode tasks", "err", err)
		return
	}
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error("create task dir", "dir", dir, "err", err)
			return
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		s.logger.Error("write task file", "path", tmp, "err", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("replace task file", "path", s.path, "err", err)
	}
}

func (s *TaskStore) snapshotLocked() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for i := range s.tasks {
		out = append(out, s.tasks[i].Clone())
	}
	return out
}
