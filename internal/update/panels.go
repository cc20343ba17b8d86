package update

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/timer"
	"github.com/prodo-app/prodo/internal/views"
)

func (m Model) renderTasksView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks.Items))
	for _, task := range m.Tasks.Items {
		due := ""
		if task.DueAt != nil {
			due = task.DueAt.Format("2006-01-02")
		}
		items = append(items, views.TaskItemData{
			ID:       task.ID.String(),
			Title:    task.Title,
			Category: task.Category,
			Due:      due,
			Done:     task.Done,
			Flagged:  task.Flagged,
			Sessions: task.SessionCount,
		})
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		QuickAddView: m.quickAddInput.View(),
		ListView:     m.taskList.View(),
		Items:        items,
		SelectedID:   m.SelectedTaskID,
		CaptureMode:  m.Tasks.CaptureMode,
	})
}

func (m Model) renderTaskMetadataPane() string {
	task, ok := m.selectedTask()
	if !ok {
		return "metadata:\n(no selection)"
	}
	subtasks := make([]views.SubtaskData, 0, len(task.Subtasks))
	for i, sub := range task.Subtasks {
		subtasks = append(subtasks, views.SubtaskData{
			Title:    sub.Title,
			Done:     sub.Done,
			Selected: i == m.Tasks.SubtaskCursor,
		})
	}
	due := ""
	if task.DueAt != nil {
		due = task.DueAt.Format("02 Jan 2006 15:04")
	}
	return views.RenderTaskMetadataPane(views.TaskMetadataData{
		SelectedID:       task.ID.String(),
		Category:         task.Category,
		Due:              due,
		Flagged:          task.Flagged,
		Sessions:         task.SessionCount,
		TimeSpent:        formatMillis(task.TimeSpentMillis),
		Subtasks:         subtasks,
		NotesEditorView:  m.notesArea.View(),
		MarkdownMetaView: m.metaViewport.View(),
		NoteMode:         m.Tasks.NoteMode,
	})
}

func (m Model) renderPomodoroView() string {
	if m.Timer == nil {
		return "pomodoro:\n(no timer)"
	}
	total := m.Timer.ModeDuration()
	progress := 0.0
	if total > 0 {
		progress = float64(total-m.Timer.Remaining()) / float64(total)
	}
	taskTitle := ""
	if id := m.Timer.TaskID(); id != uuid.Nil {
		if task, ok := m.taskByID(id); ok {
			taskTitle = task.Title
		}
	}
	spinnerView := ""
	if m.Timer.State() == timer.StateRunning {
		spinnerView = m.runSpinner.View()
	}
	return views.RenderPomodoroPanel(views.PomodoroPanelData{
		TaskTitle:    taskTitle,
		Mode:         string(m.Timer.Mode()),
		State:        string(m.Timer.State()),
		Timer:        formatDuration(m.Timer.Remaining()),
		ProgressView: m.pomoProgress.ViewAs(progress),
		ProgressPct:  int(progress * 100),
		TodayCount:   m.Pomodoro.TodayCount,
		SpinnerView:  spinnerView,
	})
}

func (m Model) renderStatsView() string {
	bars := make([]views.BarData, 0, len(m.StatsResult.Bars))
	for _, bar := range m.StatsResult.Bars {
		bars = append(bars, views.BarData{Label: bar.Label, Hours: bar.Hours})
	}
	return views.RenderStatsPanel(views.StatsPanelData{
		PeriodLabel:   m.StatsResult.PeriodLabel,
		Period:        string(m.StatsResult.Period),
		Completed:     m.StatsResult.CompletedTasks,
		Pending:       m.StatsResult.PendingTasks,
		TotalSessions: m.StatsResult.TotalSessions,
		TotalHours:    m.StatsResult.TotalTimeSpentHours,
		Bars:          bars,
		TableView:     m.breakdownTable.View(),
	})
}

func (m Model) renderCalendarView() string {
	due := m.dueTasksInFocusRange()
	items := make([]views.AgendaItemData, 0, len(due))
	for _, task := range due {
		items = append(items, views.AgendaItemData{
			ID:       task.ID.String(),
			Title:    task.Title,
			Date:     task.DueAt.Format("2006-01-02"),
			Time:     task.DueAt.Format("15:04"),
			Category: task.Category,
		})
	}
	var selected *views.AgendaItemData
	if task, ok := m.currentAgendaTask(); ok {
		selected = &views.AgendaItemData{
			ID:       task.ID.String(),
			Title:    task.Title,
			Date:     task.DueAt.Format("2006-01-02"),
			Time:     task.DueAt.Format("15:04"),
			Category: task.Category,
		}
	}
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Mode:      string(m.Calendar.Mode),
		FocusDate: m.Calendar.FocusDate.Format("2006-01-02"),
		TableView: m.calendarTable.View(),
		Items:     items,
		Selected:  selected,
	})
}

func (m Model) renderCategoriesView() string {
	return views.RenderCategoriesPanel(views.CategoriesPanelData{
		Names:       m.Categories.Names,
		Cursor:      m.Categories.Cursor,
		InputActive: m.Categories.InputMode != CategoryInputNone,
		InputView:   m.quickAddInput.View(),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}
