package stats

import (
	"context"
	"strings"
	"time"

	"github.com/prodo-app/prodo/internal/model"
)

type Period string

const (
	PeriodWeek  Period = "Week"
	PeriodMonth Period = "Month"
	PeriodYear  Period = "Year"
)

// Bar is one chart column: a day's completed sessions expressed in
// hours of focus time.
type Bar struct {
	Label string
	Hours float64
}

// BreakdownRow is one (task, day) entry with a nonzero session count.
// Rows are never merged across days.
type BreakdownRow struct {
	TaskTitle       string
	DisplayDate     string
	Sessions        int
	TimeSpentMillis int64
}

// Result is derived on every refresh and never persisted. The task
// totals are lifetime values, independent of the selected period; the
// chart and breakdown cover only the resolved date range.
type Result struct {
	CompletedTasks      int
	PendingTasks        int
	TotalSessions       int
	TotalTimeSpentHours float64
	Period              Period
	PeriodLabel         string
	Bars                []Bar
	Breakdown           []BreakdownRow
}

// TaskSource yields the current task list snapshot.
type TaskSource interface {
	All() []model.Task
}

// SessionSource reads the daily session counters.
type SessionSource interface {
	DayTotal(ctx context.Context, day time.Time) int
	TaskDayTotal(ctx context.Context, day time.Time, taskTitle string) int
}

// Aggregator computes statistics reports. It holds no mutable state of
// its own; Refresh is a pure read over its sources.
type Aggregator struct {
	tasks    TaskSource
	sessions SessionSource
	work     time.Duration
}

func NewAggregator(tasks TaskSource, sessions SessionSource, workDuration time.Duration) *Aggregator {
	if workDuration <= 0 {
		workDuration = 25 * time.Minute
	}
	return &Aggregator{tasks: tasks, sessions: sessions, work: workDuration}
}

// Refresh computes the full report for the period containing anchor.
func (a *Aggregator) Refresh(ctx context.Context, period Period, anchor time.Time) Result {
	res := Result{Period: period}

	for _, task := range a.tasks.All() {
		if task.Done {
			res.CompletedTasks++
		} else {
			res.PendingTasks++
		}
		res.TotalSessions += task.SessionCount
		res.TotalTimeSpentHours += float64(task.TimeSpentMillis) / 3600000.0
	}

	start, end := PeriodRange(period, anchor)
	res.PeriodLabel = periodLabel(period, start, end)
	if !start.Before(end) {
		return res
	}

	workMinutes := a.work.Minutes()
	workMillis := a.work.Milliseconds()
	tasks := a.tasks.All()

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		count := a.sessions.DayTotal(ctx, day)
		res.Bars = append(res.Bars, Bar{
			Label: day.Format("Mon"),
			Hours: float64(count) * workMinutes / 60,
		})

		for _, task := range tasks {
			if strings.TrimSpace(task.Title) == "" {
				continue
			}
			sessions := a.sessions.TaskDayTotal(ctx, day, task.Title)
			if sessions == 0 {
				continue
			}
			res.Breakdown = append(res.Breakdown, BreakdownRow{
				TaskTitle:       task.Title,
				DisplayDate:     day.Format("02 Jan 2006"),
				Sessions:        sessions,
				TimeSpentMillis: int64(sessions) * workMillis,
			})
		}
	}
	return res
}

// PeriodRange resolves the half-open [start, end) date range of the
// period containing anchor. Weeks start on Monday.
func PeriodRange(period Period, anchor time.Time) (time.Time, time.Time) {
	midnight := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	switch period {
	case PeriodMonth:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(0, 1, 0)
	case PeriodYear:
		start := time.Date(anchor.Year(), time.January, 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(1, 0, 0)
	default:
		offset := (int(midnight.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
}

func periodLabel(period Period, start, end time.Time) string {
	switch period {
	case PeriodMonth:
		return start.Format("Jan 2006")
	case PeriodYear:
		return start.Format("2006")
	default:
		last := end.AddDate(0, 0, -1)
		return start.Format("02-Jan-2006") + " ~ " + last.Format("02-Jan-2006")
	}
}
