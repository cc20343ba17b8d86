package timer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/sessionlog"
	"github.com/prodo-app/prodo/internal/store"
)

// SessionSink applies a completed work session to durable state: the
// session event log's daily counters and the associated task's own
// lifetime counters. A task that vanished between selection and
// completion degrades to a day-only record.
type SessionSink struct {
	Store  *store.TaskStore
	Log    *sessionlog.Log
	Clock  func() time.Time
	Logger *slog.Logger
}

func NewSessionSink(taskStore *store.TaskStore, log *sessionlog.Log, logger *slog.Logger) *SessionSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SessionSink{Store: taskStore, Log: log, Clock: time.Now, Logger: logger}
}

func (s *SessionSink) RecordWorkSession(taskID uuid.UUID, duration time.Duration) {
	ctx := context.Background()
	now := s.Clock()

	if taskID == uuid.Nil {
		s.Log.RecordCompletion(ctx, now, "")
		return
	}
	task, err := s.Store.Get(taskID)
	if err != nil {
		s.Logger.Warn("session task missing, recording day total only", "id", taskID)
		s.Log.RecordCompletion(ctx, now, "")
		return
	}

	s.Log.RecordCompletion(ctx, now, task.Title)
	task.RecordSession(duration)
	s.Store.Update(task)
}
