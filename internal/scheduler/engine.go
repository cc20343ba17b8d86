package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/model"
)

var (
	ErrInvalidDueTime = errors.New("scheduler: invalid due time")
	ErrNoTask         = errors.New("scheduler: event has no task")
)

// DueEvent fires when a task's due time arrives.
type DueEvent struct {
	TaskID uuid.UUID
	Title  string
	DueAt  time.Time
}

type queueItem struct {
	event DueEvent
}

type dueQueue []queueItem

func (q dueQueue) Len() int { return len(q) }

func (q dueQueue) Less(i, j int) bool {
	return q[i].event.DueAt.Before(q[j].event.DueAt)
}

func (q dueQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *dueQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *dueQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine tracks upcoming task due times in a min-heap and emits a
// DueEvent on its channel when one arrives. A task has at most one
// live due time: rescheduling replaces it, cancelling removes it.
// Superseded heap entries are left in place and skipped when they
// surface. Emission never blocks; events a slow consumer cannot take
// are counted as dropped.
type Engine struct {
	mu      sync.Mutex
	queue   dueQueue
	pending map[uuid.UUID]time.Time
	out     chan DueEvent
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:   make(dueQueue, 0),
		pending: make(map[uuid.UUID]time.Time),
		out:     make(chan DueEvent, bufferSize),
		wakeup:  make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

func (e *Engine) C() <-chan DueEvent {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule arms or replaces the due time for the event's task.
func (e *Engine) Schedule(ev DueEvent) error {
	if ev.DueAt.IsZero() {
		return ErrInvalidDueTime
	}
	if ev.TaskID == uuid.Nil {
		return ErrNoTask
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	// Already armed at this exact time: the heap entry exists, nothing
	// to replace.
	if armed, ok := e.pending[ev.TaskID]; ok && armed.Equal(ev.DueAt) {
		return nil
	}

	e.pending[ev.TaskID] = ev.DueAt
	heap.Push(&e.queue, queueItem{event: ev})
	e.signalWakeup()
	return nil
}

// Cancel disarms the task's due time. Cancelling an untracked task is
// a no-op.
func (e *Engine) Cancel(taskID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, taskID)
}

// Sync rebuilds the tracked set from a task list snapshot: undone
// tasks with a future due time are armed, everything else is
// disarmed. Called on every store change notification.
func (e *Engine) Sync(tasks []model.Task, now time.Time) {
	keep := make(map[uuid.UUID]bool, len(tasks))
	for _, task := range tasks {
		if task.Done || task.DueAt == nil || !task.DueAt.After(now) {
			continue
		}
		keep[task.ID] = true
		_ = e.Schedule(DueEvent{TaskID: task.ID, Title: task.Title, DueAt: *task.DueAt})
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for id := range e.pending {
		if !keep[id] {
			delete(e.pending, id)
		}
	}
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.DueAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, ev := range due {
				select {
				case e.out <- ev:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (DueEvent, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return DueEvent{}, false
	}
	return e.queue[0].event, true
}

func (e *Engine) popDue(now time.Time) []DueEvent {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]DueEvent, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].event
		if next.DueAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		armed, ok := e.pending[item.event.TaskID]
		if !ok || !armed.Equal(item.event.DueAt) {
			continue
		}
		delete(e.pending, item.event.TaskID)
		out = append(out, item.event)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
