package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodo-app/prodo/internal/model"
	"github.com/prodo-app/prodo/internal/scheduler"
	"github.com/prodo-app/prodo/internal/timer"
	"github.com/prodo-app/prodo/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2)
	if m.Scheduler != nil {
		cmds = append(cmds, waitForDueCmd(m.Scheduler.C()))
	}
	if m.taskUpdates != nil {
		cmds = append(cmds, waitForTasksCmd(m.taskUpdates))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.ensureTasksState()
		m.ensureCalendarState()
		m.ensureCategoriesState()

		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		keyStr := typed.String()
		if m.CurrentView == ViewTasks && (m.Tasks.CaptureMode || m.Tasks.NoteMode) && keyStr != "ctrl+c" {
			return m.handleTasksKey(typed), nil
		}
		if m.CurrentView == ViewCategories && m.Categories.InputMode != CategoryInputNone && keyStr != "ctrl+c" {
			return m.handleCategoriesKey(typed), nil
		}

		switch keyStr {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Pomodoro:
			m.CurrentView = ViewPomodoro
			m.refreshTodayCount()
			return m, nil
		case m.Keys.Stats:
			m.CurrentView = ViewStats
			m.refreshStats()
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Categories:
			m.CurrentView = ViewCategories
			m.reloadCategories()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case "D":
			m.cycleDensity()
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			if err := m.persistUIState(); err != nil {
				m.logger.Warn("persist ui state", "err", err)
			}
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewPomodoro:
			return m.handlePomodoroKey(typed)
		case ViewStats:
			return m.handleStatsKey(typed), nil
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewCategories:
			return m.handleCategoriesKey(typed), nil
		}
	case spinner.TickMsg:
		if m.Timer != nil && m.Timer.State() == timer.StateRunning {
			var cmd tea.Cmd
			m.runSpinner, cmd = m.runSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewPomodoro {
				m.refreshTodayCount()
			}
			if typed.View == ViewStats {
				m.refreshStats()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case TimerTickMsg:
		return m.onTimerTick(typed)
	case TasksChangedMsg:
		m.Tasks.Items = typed.Tasks
		m.ensureTasksState()
		m.refreshStats()
		if m.Scheduler != nil {
			m.Scheduler.Sync(typed.Tasks, m.clock())
		}
		if m.taskUpdates != nil {
			return m, waitForTasksCmd(m.taskUpdates)
		}
		return m, nil
	case DueMsg:
		text := fmt.Sprintf("due now: %s", typed.Event.Title)
		m.Status = StatusBar{Text: text, IsError: false}
		m.notify("Due", text, "info")
		if m.Scheduler != nil {
			return m, waitForDueCmd(m.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	m.syncBubbleData()

	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskMetadataPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewPomodoro:
		leftPane = m.renderPomodoroView()
		rightPane = m.renderHelpIfVisible()
	case ViewStats:
		leftPane = m.renderStatsView()
		rightPane = m.renderHelpIfVisible()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderHelpIfVisible()
	case ViewCategories:
		leftPane = m.renderCategoriesView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	notificationView := strings.TrimSpace(m.renderNotificationsView())

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("prodo | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notificationView,
		Footer: fmt.Sprintf("keys: %s tasks | %s pomo | %s stats | %s cal | %s cats | / cmd | %s help | %s quit",
			m.Keys.Tasks, m.Keys.Pomodoro, m.Keys.Stats, m.Keys.Calendar, m.Keys.Categories, m.Keys.Help, m.Keys.Quit),
	})
}

func waitForDueCmd(ch <-chan scheduler.DueEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DueMsg{Event: ev}
	}
}

func waitForTasksCmd(ch <-chan []model.Task) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		tasks, ok := <-ch
		if !ok {
			return nil
		}
		return TasksChangedMsg{Tasks: tasks}
	}
}
