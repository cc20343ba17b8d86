package scheduler

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/model"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	later := uuid.New()
	sooner := uuid.New()
	if err := engine.Schedule(DueEvent{TaskID: later, Title: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: sooner, Title: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != sooner || second.TaskID != later {
		t.Fatalf("unexpected order: first=%s second=%s", first.Title, second.Title)
	}
}

func TestRescheduleReplacesDueTime(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	id := uuid.New()
	if err := engine.Schedule(DueEvent{TaskID: id, Title: "v1", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: id, Title: "v2", DueAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.Title != "v2" {
		t.Fatalf("expected rescheduled event, got %q", ev.Title)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("superseded event must not fire: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCancelSuppressesEvent(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	id := uuid.New()
	if err := engine.Schedule(DueEvent{TaskID: id, Title: "gone", DueAt: time.Now().UTC().Add(30 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	engine.Cancel(id)

	select {
	case ev := <-engine.C():
		t.Fatalf("cancelled event must not fire: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSyncArmsOnlyUndoneFutureTasks(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	soon := now.Add(30 * time.Millisecond)
	past := now.Add(-time.Hour)

	due := model.NewTask("due soon", "", "", &soon)
	done := model.NewTask("already done", "", "", &soon)
	done.Done = true
	overdue := model.NewTask("already past", "", "", &past)
	dateless := model.NewTask("no date", "", "", nil)

	engine.Sync([]model.Task{due, done, overdue, dateless}, now)

	ev := waitEvent(t, engine.C(), time.Second)
	if ev.TaskID != due.ID {
		t.Fatalf("expected %q to fire, got %q", due.Title, ev.Title)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("unexpected extra event: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSyncDisarmsRemovedTasks(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	soon := now.Add(40 * time.Millisecond)
	task := model.NewTask("due soon", "", "", &soon)

	engine.Sync([]model.Task{task}, now)
	engine.Sync([]model.Task{}, now)

	select {
	case ev := <-engine.C():
		t.Fatalf("disarmed event must not fire: %+v", ev)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestRepeatedSyncDoesNotGrowQueue(t *testing.T) {
	engine := NewEngine(8)

	now := time.Now().UTC()
	later := now.Add(time.Hour)
	task := model.NewTask("stable due", "", "", &later)

	for i := 0; i < 5; i++ {
		engine.Sync([]model.Task{task}, now)
	}

	engine.mu.Lock()
	entries := len(engine.queue)
	engine.mu.Unlock()
	if entries != 1 {
		t.Fatalf("expected 1 queue entry after repeated syncs, got %d", entries)
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TaskID: uuid.New()}); err != ErrInvalidDueTime {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
	if err := engine.Schedule(DueEvent{DueAt: time.Now()}); err != ErrNoTask {
		t.Fatalf("expected ErrNoTask, got %v", err)
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
