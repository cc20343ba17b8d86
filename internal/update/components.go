package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/prodo-app/prodo/internal/model"
	"github.com/prodo-app/prodo/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	breakdownCols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Task", Width: 24},
		{Title: "Sessions", Width: 8},
		{Title: "Time", Width: 8},
	}
	m.breakdownTable = table.New(table.WithColumns(breakdownCols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	calendarCols := []table.Column{
		{Title: "Due", Width: 12},
		{Title: "Time", Width: 7},
		{Title: "Category", Width: 10},
		{Title: "Title", Width: 24},
	}
	m.calendarTable = table.New(table.WithColumns(calendarCols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.notesArea = textarea.New()
	m.notesArea.SetWidth(54)
	m.notesArea.SetHeight(8)
	m.notesArea.ShowLineNumbers = false
	m.notesArea.Placeholder = "Task notes (markdown)"

	m.pomoProgress = progress.New(progress.WithDefaultGradient())

	m.runSpinner = spinner.New()
	m.runSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.metaViewport = viewport.New(54, 12)
}

func (m *Model) syncBubbleData() {
	listWidth, listHeight, tableHeight, notesHeight, viewportHeight := densityDimensions(m.uiDensity)
	m.taskList.SetSize(listWidth, listHeight)
	m.breakdownTable.SetHeight(tableHeight)
	m.calendarTable.SetHeight(tableHeight)
	m.notesArea.SetHeight(notesHeight)
	m.metaViewport.Height = viewportHeight

	taskItems := make([]list.Item, 0, len(m.Tasks.Items))
	for _, task := range m.Tasks.Items {
		taskItems = append(taskItems, listItem{title: task.Title, description: taskListDescription(task)})
	}
	m.taskList.SetItems(taskItems)
	if len(taskItems) > 0 && m.Tasks.Cursor < len(taskItems) {
		m.taskList.Select(m.Tasks.Cursor)
	}

	rows := make([]table.Row, 0, len(m.StatsResult.Breakdown))
	for _, row := range m.StatsResult.Breakdown {
		rows = append(rows, table.Row{
			row.DisplayDate,
			row.TaskTitle,
			fmt.Sprintf("%d", row.Sessions),
			formatMillis(row.TimeSpentMillis),
		})
	}
	m.breakdownTable.SetRows(rows)

	dueRows := make([]table.Row, 0)
	for _, task := range m.dueTasksInFocusRange() {
		dueRows = append(dueRows, table.Row{
			task.DueAt.Format("2006-01-02"),
			task.DueAt.Format("15:04"),
			task.Category,
			task.Title,
		})
	}
	m.calendarTable.SetRows(dueRows)
	if len(dueRows) > 0 && m.Calendar.Cursor < len(dueRows) {
		m.calendarTable.SetCursor(m.Calendar.Cursor)
	}

	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Tasks.CaptureMode {
		m.quickAddInput.Focus()
	}

	if task, ok := m.selectedTask(); ok && !m.Tasks.NoteMode {
		md := task.Note
		if strings.TrimSpace(md) == "" {
			md = "_No notes_"
		}
		m.metaViewport.SetContent(views.RenderMarkdown(md))
	}

	if m.Timer != nil {
		total := m.Timer.ModeDuration()
		pct := 0.0
		if total > 0 {
			pct = float64(total-m.Timer.Remaining()) / float64(total)
		}
		if pct < 0 {
			pct = 0
		}
		if pct > 1 {
			pct = 1
		}
		_ = m.pomoProgress.SetPercent(pct)
	}
}

func densityDimensions(level int) (listWidth int, listHeight int, tableHeight int, notesHeight int, viewportHeight int) {
	switch level {
	case 2:
		return 60, 14, 12, 10, 14
	case 3:
		return 64, 16, 14, 12, 16
	default:
		return 56, 12, 10, 8, 12
	}
}

func taskListDescription(task model.Task) string {
	parts := make([]string, 0, 3)
	if task.Category != "" {
		parts = append(parts, task.Category)
	}
	if task.DueAt != nil {
		parts = append(parts, "due "+task.DueAt.Format("2006-01-02"))
	}
	if task.Done {
		parts = append(parts, "done")
	} else if task.SessionCount > 0 {
		parts = append(parts, fmt.Sprintf("%d sessions", task.SessionCount))
	}
	return strings.Join(parts, " | ")
}

func (m *Model) cycleDensity() {
	m.uiDensity++
	if m.uiDensity > 3 {
		m.uiDensity = 1
	}
	m.Status = StatusBar{
		Text:    fmt.Sprintf("density level: %d", m.uiDensity),
		IsError: false,
	}
}
