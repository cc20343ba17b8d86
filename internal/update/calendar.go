package update

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodo-app/prodo/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "d":
		m.Calendar.Mode = CalendarModeDay
		m.Status = StatusBar{Text: "calendar mode: day", IsError: false}
	case "w":
		m.Calendar.Mode = CalendarModeWeek
		m.Status = StatusBar{Text: "calendar mode: week", IsError: false}
	case "m":
		m.Calendar.Mode = CalendarModeMonth
		m.Status = StatusBar{Text: "calendar mode: month", IsError: false}
	case "t":
		m.Calendar.FocusDate = m.clock()
		m.Status = StatusBar{Text: "calendar focus: today", IsError: false}
	case "h", "left":
		m.shiftCalendarFocus(-1)
	case "l", "right":
		m.shiftCalendarFocus(1)
	case "up", "k":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
		}
	case "down", "j":
		if m.Calendar.Cursor < len(m.dueTasksInFocusRange())-1 {
			m.Calendar.Cursor++
		}
	}
	return m
}

func (m *Model) shiftCalendarFocus(delta int) {
	switch m.Calendar.Mode {
	case CalendarModeDay:
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, delta)
	case CalendarModeMonth:
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, delta, 0)
	default:
		m.Calendar.FocusDate = m.Calendar.FocusDate.AddDate(0, 0, 7*delta)
	}
	m.Calendar.Cursor = 0
	m.Status = StatusBar{
		Text:    fmt.Sprintf("calendar focus: %s", m.Calendar.FocusDate.Format("2006-01-02")),
		IsError: false,
	}
}

// calendarRange is the half-open day range the agenda covers. Week
// mode starts on the Monday of the focus date's week.
func (m Model) calendarRange() (time.Time, time.Time) {
	focus := m.Calendar.FocusDate
	midnight := time.Date(focus.Year(), focus.Month(), focus.Day(), 0, 0, 0, 0, focus.Location())
	switch m.Calendar.Mode {
	case CalendarModeDay:
		return midnight, midnight.AddDate(0, 0, 1)
	case CalendarModeMonth:
		start := time.Date(focus.Year(), focus.Month(), 1, 0, 0, 0, 0, focus.Location())
		return start, start.AddDate(0, 1, 0)
	default:
		offset := (int(midnight.Weekday()) + 6) % 7
		start := midnight.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7)
	}
}

func (m Model) dueTasksInFocusRange() []model.Task {
	start, end := m.calendarRange()
	out := make([]model.Task, 0)
	for _, task := range m.Tasks.Items {
		if task.DueAt == nil {
			continue
		}
		due := *task.DueAt
		if due.Before(start) || !due.Before(end) {
			continue
		}
		out = append(out, task)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueAt.Before(*out[j].DueAt) })
	return out
}

func (m Model) currentAgendaTask() (model.Task, bool) {
	due := m.dueTasksInFocusRange()
	if len(due) == 0 || m.Calendar.Cursor < 0 || m.Calendar.Cursor >= len(due) {
		return model.Task{}, false
	}
	return due[m.Calendar.Cursor], true
}

func (m *Model) ensureCalendarState() {
	if m.Calendar.Mode == "" {
		m.Calendar.Mode = CalendarModeWeek
	}
	if m.Calendar.FocusDate.IsZero() {
		m.Calendar.FocusDate = m.clock()
	}
	if m.Calendar.Cursor < 0 {
		m.Calendar.Cursor = 0
	}
	if due := m.dueTasksInFocusRange(); m.Calendar.Cursor >= len(due) && len(due) > 0 {
		m.Calendar.Cursor = len(due) - 1
	}
}
