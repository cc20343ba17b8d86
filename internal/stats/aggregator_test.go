package stats

import (
	"context"
	"testing"
	"time"

	"github.com/prodo-app/prodo/internal/model"
)

type fakeTasks []model.Task

func (f fakeTasks) All() []model.Task { return f }

type fakeSessions struct {
	day  map[string]int
	task map[string]int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{day: map[string]int{}, task: map[string]int{}}
}

func (f *fakeSessions) record(day time.Time, title string, count int) {
	key := day.Format("2006-01-02")
	f.day[key] += count
	f.task[key+"|"+model.TitleKey(title)] += count
}

func (f *fakeSessions) DayTotal(_ context.Context, day time.Time) int {
	return f.day[day.Format("2006-01-02")]
}

func (f *fakeSessions) TaskDayTotal(_ context.Context, day time.Time, title string) int {
	return f.task[day.Format("2006-01-02")+"|"+model.TitleKey(title)]
}

func anchorWednesday() time.Time {
	return time.Date(2026, 9, 2, 14, 30, 0, 0, time.UTC)
}

func TestWeekRangeStartsMonday(t *testing.T) {
	start, end := PeriodRange(PeriodWeek, anchorWednesday())
	wantStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Fatalf("expected week start %s, got %s", wantStart, start)
	}
	if !end.Equal(wantStart.AddDate(0, 0, 7)) {
		t.Fatalf("expected week end %s, got %s", wantStart.AddDate(0, 0, 7), end)
	}

	// A Monday anchor is its own week start.
	start, _ = PeriodRange(PeriodWeek, wantStart.Add(5*time.Hour))
	if !start.Equal(wantStart) {
		t.Fatalf("monday anchor should keep its own monday, got %s", start)
	}
}

func TestWeekChartHasSevenBarsInCalendarOrder(t *testing.T) {
	agg := NewAggregator(fakeTasks{}, newFakeSessions(), 25*time.Minute)
	res := agg.Refresh(context.Background(), PeriodWeek, anchorWednesday())

	if len(res.Bars) != 7 {
		t.Fatalf("expected 7 bars, got %d", len(res.Bars))
	}
	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, bar := range res.Bars {
		if bar.Label != want[i] {
			t.Fatalf("bar %d: expected label %q, got %q", i, want[i], bar.Label)
		}
	}
	if res.PeriodLabel != "31-Aug-2026 ~ 06-Sep-2026" {
		t.Fatalf("unexpected week label %q", res.PeriodLabel)
	}
}

func TestMonthAndYearRanges(t *testing.T) {
	anchor := time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC)

	agg := NewAggregator(fakeTasks{}, newFakeSessions(), 25*time.Minute)
	res := agg.Refresh(context.Background(), PeriodMonth, anchor)
	if len(res.Bars) != 28 {
		t.Fatalf("expected 28 bars for Feb 2026, got %d", len(res.Bars))
	}
	if res.PeriodLabel != "Feb 2026" {
		t.Fatalf("unexpected month label %q", res.PeriodLabel)
	}

	res = agg.Refresh(context.Background(), PeriodYear, anchor)
	if len(res.Bars) != 365 {
		t.Fatalf("expected 365 bars for 2026, got %d", len(res.Bars))
	}
	if res.PeriodLabel != "2026" {
		t.Fatalf("unexpected year label %q", res.PeriodLabel)
	}
}

func TestBarHoursScaleWithSessionCount(t *testing.T) {
	sessions := newFakeSessions()
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	sessions.record(monday, "alpha", 3)

	agg := NewAggregator(fakeTasks{}, sessions, 25*time.Minute)
	res := agg.Refresh(context.Background(), PeriodWeek, anchorWednesday())

	want := 3 * 25.0 / 60.0
	if diff := res.Bars[0].Hours - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected %v hours on monday, got %v", want, res.Bars[0].Hours)
	}
	if res.Bars[1].Hours != 0 {
		t.Fatalf("expected empty tuesday, got %v", res.Bars[1].Hours)
	}
}

func TestLifetimeTotalsArePeriodIndependent(t *testing.T) {
	tasks := fakeTasks{
		{Title: "done one", Done: true, SessionCount: 4, TimeSpentMillis: 4 * 1500000},
		{Title: "pending one", SessionCount: 2, TimeSpentMillis: 2 * 1500000},
	}
	agg := NewAggregator(tasks, newFakeSessions(), 25*time.Minute)

	for _, p := range []Period{PeriodWeek, PeriodMonth, PeriodYear} {
		res := agg.Refresh(context.Background(), p, anchorWednesday())
		if res.CompletedTasks != 1 || res.PendingTasks != 1 {
			t.Fatalf("%s: unexpected counts %d/%d", p, res.CompletedTasks, res.PendingTasks)
		}
		if res.TotalSessions != 6 {
			t.Fatalf("%s: expected 6 lifetime sessions, got %d", p, res.TotalSessions)
		}
		want := 6 * 1500000 / 3600000.0
		if diff := res.TotalTimeSpentHours - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("%s: expected %v lifetime hours, got %v", p, want, res.TotalTimeSpentHours)
		}
	}
}

func TestBreakdownRowsPerTaskPerDay(t *testing.T) {
	sessions := newFakeSessions()
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	sessions.record(monday, "Write report", 2)
	sessions.record(tuesday, "Write report", 1)

	tasks := fakeTasks{
		{Title: "Write report"},
		{Title: "   "},
		{Title: "Idle task"},
	}
	agg := NewAggregator(tasks, sessions, 25*time.Minute)
	res := agg.Refresh(context.Background(), PeriodWeek, anchorWednesday())

	if len(res.Breakdown) != 2 {
		t.Fatalf("expected one row per active day, got %d: %#v", len(res.Breakdown), res.Breakdown)
	}
	first := res.Breakdown[0]
	if first.TaskTitle != "Write report" || first.DisplayDate != "31 Aug 2026" {
		t.Fatalf("unexpected first row %+v", first)
	}
	if first.Sessions != 2 || first.TimeSpentMillis != 2*1500000 {
		t.Fatalf("unexpected first row counters %+v", first)
	}
	second := res.Breakdown[1]
	if second.DisplayDate != "01 Sep 2026" || second.Sessions != 1 {
		t.Fatalf("unexpected second row %+v", second)
	}
}

func TestScenarioSingleWorkSession(t *testing.T) {
	today := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	sessions := newFakeSessions()
	sessions.record(today, "Write report", 1)

	tasks := fakeTasks{{Title: "Write report", Category: "Work", SessionCount: 1, TimeSpentMillis: 1500000}}
	agg := NewAggregator(tasks, sessions, 25*time.Minute)
	res := agg.Refresh(context.Background(), PeriodWeek, today)

	if res.PendingTasks != 1 || res.CompletedTasks != 0 {
		t.Fatalf("expected 1 pending task, got %d/%d", res.PendingTasks, res.CompletedTasks)
	}
	if len(res.Breakdown) != 1 {
		t.Fatalf("expected exactly one breakdown row, got %d", len(res.Breakdown))
	}
	row := res.Breakdown[0]
	if row.TaskTitle != "Write report" || row.DisplayDate != "02 Sep 2026" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.Sessions != 1 || row.TimeSpentMillis != 1500000 {
		t.Fatalf("unexpected row counters %+v", row)
	}
}
