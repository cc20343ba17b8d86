package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/model"
)

func tempStore(t *testing.T) *TaskStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return Open(path, nil)
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s := tempStore(t)
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(got))
	}
}

func TestOpenMalformedFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	s := Open(path, nil)
	if got := s.All(); len(got) != 0 {
		t.Fatalf("expected empty list from malformed file, got %d", len(got))
	}
}

func TestAddThenGetReturnsStructurallyEqualTask(t *testing.T) {
	s := tempStore(t)
	due := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	task := model.NewTask("Write report", "Work", "draft first", &due)
	task.Subtasks = append(task.Subtasks, model.NewSubtask("outline"))

	s.Add(task)
	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(task) {
		t.Fatalf("task round trip mismatch: %#v vs %#v", got, task)
	}
}

func TestAddAssignsMissingID(t *testing.T) {
	s := tempStore(t)
	s.Add(model.Task{Title: "no id yet"})
	all := s.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 task, got %d", len(all))
	}
	if all[0].ID == uuid.Nil {
		t.Fatal("expected id assigned on add")
	}
}

func TestUpdateReplacesWholesale(t *testing.T) {
	s := tempStore(t)
	task := model.NewTask("Write report", "Work", "first", nil)
	s.Add(task)

	edited := task.Clone()
	edited.Title = "Write final report"
	edited.Note = ""
	edited.Done = true
	s.Update(edited)

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Equal(edited) {
		t.Fatalf("expected wholesale replacement, got %#v", got)
	}
}

func TestUpdateUnknownIDStillNotifies(t *testing.T) {
	s := tempStore(t)
	s.Add(model.NewTask("existing", "Work", "", nil))
	events := s.Subscribe()
	drain(t, events)

	ghost := model.NewTask("ghost", "Work", "", nil)
	s.Update(ghost)

	snap := waitSnapshot(t, events)
	if len(snap) != 1 || snap[0].Title != "existing" {
		t.Fatalf("expected list untouched, got %#v", snap)
	}
}

func TestDeleteThenGetNotFound(t *testing.T) {
	s := tempStore(t)
	task := model.NewTask("temp", "Work", "", nil)
	s.Add(task)
	s.Delete(task.ID)
	if _, err := s.Get(task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	// Deleting again is a silent no-op.
	s.Delete(task.ID)
}

func TestGetByStringRejectsMalformedID(t *testing.T) {
	s := tempStore(t)
	if _, err := s.GetByString("not-a-uuid"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for malformed id, got: %v", err)
	}
	if _, err := s.GetByString(""); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for empty id, got: %v", err)
	}
}

func TestRoundTripAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	first := Open(path, nil)
	due := time.Date(2026, 9, 10, 12, 30, 0, 0, time.UTC)
	a := model.NewTask("alpha", "Work", "notes on alpha", &due)
	a.Subtasks = append(a.Subtasks, model.NewSubtask("part one"))
	b := model.NewTask("beta", "Personal", "", nil)
	b.RecordSession(25 * time.Minute)
	first.Add(a)
	first.Add(b)

	second := Open(path, nil)
	all := second.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 tasks after reload, got %d", len(all))
	}
	if !all[0].Equal(a) || !all[1].Equal(b) {
		t.Fatalf("reload mismatch: %#v", all)
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := tempStore(t)
	task := model.NewTask("immutable", "Work", "", nil)
	task.Subtasks = append(task.Subtasks, model.NewSubtask("child"))
	s.Add(task)

	snap := s.All()
	snap[0].Title = "mutated"
	snap[0].Subtasks[0].Done = true

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "immutable" || got.Subtasks[0].Done {
		t.Fatalf("snapshot mutation leaked into store: %#v", got)
	}
}

func TestAddIsolatesCallerTask(t *testing.T) {
	s := tempStore(t)
	task := model.NewTask("pack bags", "Personal", "", nil)
	task.Subtasks = append(task.Subtasks, model.NewSubtask("socks"))
	s.Add(task)

	task.Title = "mutated"
	task.Subtasks[0].Title = "mutated child"

	got, err := s.Get(task.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "pack bags" || got.Subtasks[0].Title != "socks" {
		t.Fatalf("caller mutation leaked into store: %#v", got)
	}
}

func TestEveryMutationNotifies(t *testing.T) {
	s := tempStore(t)
	events := s.Subscribe()

	task := model.NewTask("notify me", "Work", "", nil)
	s.Add(task)
	snap := waitSnapshot(t, events)
	if len(snap) != 1 {
		t.Fatalf("expected 1 task in add snapshot, got %d", len(snap))
	}

	task.Done = true
	s.Update(task)
	snap = waitSnapshot(t, events)
	if !snap[0].Done {
		t.Fatalf("expected updated snapshot, got %#v", snap[0])
	}

	s.Delete(task.ID)
	snap = waitSnapshot(t, events)
	if len(snap) != 0 {
		t.Fatalf("expected empty snapshot after delete, got %d", len(snap))
	}
}

func waitSnapshot(t *testing.T, ch <-chan []model.Task) []model.Task {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatal("subscription closed")
		}
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}

func drain(t *testing.T, ch <-chan []model.Task) {
	t.Helper()
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}
