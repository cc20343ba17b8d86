package sessionlog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prodo-app/prodo/internal/model"
	"github.com/prodo-app/prodo/internal/storage"
)

const dayKeyLayout = "2006-01-02"

// Log records completed focus sessions as durable counters keyed by
// calendar day, and by (day, normalized task title). Reads and writes
// absorb storage errors: a failed increment is logged and the in-memory
// flow continues, a failed read counts as zero.
type Log struct {
	prefs  storage.Prefs
	logger *slog.Logger
}

func New(prefs storage.Prefs, logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Log{prefs: prefs, logger: logger}
}

// RecordCompletion bumps the day's overall counter and, when taskTitle
// is non-blank, the day's per-task counter. Returns the new overall
// count for the day (best effort; zero if the write failed).
func (l *Log) RecordCompletion(ctx context.Context, day time.Time, taskTitle string) int {
	total, err := l.prefs.AddCounter(ctx, DayKey(day), 1)
	if err != nil {
		l.logger.Error("record daily session", "day", day.Format(dayKeyLayout), "err", err)
		return 0
	}
	if strings.TrimSpace(taskTitle) != "" {
		key := TaskDayKey(day, taskTitle)
		if _, err := l.prefs.AddCounter(ctx, key, 1); err != nil {
			l.logger.Error("record task session", "key", key, "err", err)
		}
	}
	return total
}

// DayTotal returns how many sessions completed on the given day, any
// task. Missing keys and read failures both read as zero.
func (l *Log) DayTotal(ctx context.Context, day time.Time) int {
	count, err := l.prefs.Counter(ctx, DayKey(day))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Error("read daily total", "day", day.Format(dayKeyLayout), "err", err)
		}
		return 0
	}
	return count
}

// TaskDayTotal returns how many sessions completed on the given day for
// the task with the given title.
func (l *Log) TaskDayTotal(ctx context.Context, day time.Time, taskTitle string) int {
	count, err := l.prefs.Counter(ctx, TaskDayKey(day, taskTitle))
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			l.logger.Error("read task daily total", "key", TaskDayKey(day, taskTitle), "err", err)
		}
		return 0
	}
	return count
}

// DayKey is the counter key for a day's overall session total, e.g.
// "pomos_2026-09-01".
func DayKey(day time.Time) string {
	return "pomos_" + day.Format(dayKeyLayout)
}

// TaskDayKey is the counter key for one task's session total on a day,
// e.g. "pomos_2026-09-01_write_report". Per-task counters key on the
// normalized title, so a rename detaches a task from its history.
func TaskDayKey(day time.Time, taskTitle string) string {
	return fmt.Sprintf("pomos_%s_%s", day.Format(dayKeyLayout), model.TitleKey(taskTitle))
}

