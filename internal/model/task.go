package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("model: task title is required")

// Subtask is owned by exactly one Task. Identity, not content, defines
// equality between subtasks.
type Subtask struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Done  bool      `json:"done"`
}

func NewSubtask(title string) Subtask {
	return Subtask{ID: uuid.New(), Title: title}
}

func (s Subtask) Equal(other Subtask) bool {
	return s.ID == other.ID
}

// Task is the unit the store persists. DueAt is nil when no due date has
// been set. SessionCount and TimeSpentMillis are lifetime focus-session
// totals, bumped by the timer and never reset.
type Task struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Category        string     `json:"category"`
	DueAt           *time.Time `json:"dueAt,omitempty"`
	Note            string     `json:"note"`
	Done            bool       `json:"done"`
	Flagged         bool       `json:"flagged"`
	Subtasks        []Subtask  `json:"subtasks"`
	SessionCount    int        `json:"sessionCount"`
	TimeSpentMillis int64      `json:"totalTimeSpentMillis"`
}

func NewTask(title, category, note string, dueAt *time.Time) Task {
	return Task{
		ID:       uuid.New(),
		Title:    title,
		Category: category,
		Note:     note,
		DueAt:    dueAt,
		Subtasks: []Subtask{},
	}
}

// AssignID gives the task a fresh identifier if it does not have one.
// Loading old files can surface tasks saved without an id.
func (t *Task) AssignID() {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

func (t Task) TimeSpent() time.Duration {
	return time.Duration(t.TimeSpentMillis) * time.Millisecond
}

// RecordSession adds one completed focus session of the given length to
// the task's lifetime totals.
func (t *Task) RecordSession(d time.Duration) {
	t.SessionCount++
	t.TimeSpentMillis += d.Milliseconds()
}

// Clone returns a deep copy. Snapshots handed to store subscribers must
// not alias the store's internal slice headers.
func (t Task) Clone() Task {
	out := t
	if t.DueAt != nil {
		due := *t.DueAt
		out.DueAt = &due
	}
	out.Subtasks = make([]Subtask, len(t.Subtasks))
	copy(out.Subtasks, t.Subtasks)
	return out
}

// Equal is structural: every field participates, subtasks compared in
// order by identity.
func (t Task) Equal(other Task) bool {
	if t.ID != other.ID || t.Title != other.Title || t.Category != other.Category ||
		t.Note != other.Note || t.Done != other.Done || t.Flagged != other.Flagged ||
		t.SessionCount != other.SessionCount || t.TimeSpentMillis != other.TimeSpentMillis {
		return false
	}
	if (t.DueAt == nil) != (other.DueAt == nil) {
		return false
	}
	if t.DueAt != nil && !t.DueAt.Equal(*other.DueAt) {
		return false
	}
	if len(t.Subtasks) != len(other.Subtasks) {
		return false
	}
	for i := range t.Subtasks {
		if !t.Subtasks[i].Equal(other.Subtasks[i]) {
			return false
		}
	}
	return true
}

var titleKeyPattern = regexp.MustCompile(`[^a-z0-9_.-]+`)

// TitleKey normalizes a task title into the form used to key per-task
// daily session counters: lower-cased, runs of characters outside
// [a-z0-9_.-] collapsed to a single underscore. Empty titles map to
// "untitled".
func TitleKey(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "untitled"
	}
	return titleKeyPattern.ReplaceAllString(strings.ToLower(trimmed), "_")
}
