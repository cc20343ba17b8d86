package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/timer"
)

func (m Model) handlePomodoroKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Timer == nil {
		return m, nil
	}
	switch msg.String() {
	case " ":
		if m.Timer.State() == timer.StateRunning {
			m.Timer.Pause()
			m.Status = StatusBar{Text: "timer paused", IsError: false}
			return m, nil
		}
		m.Timer.Start()
		m.Status = StatusBar{Text: "timer running", IsError: false}
		return m, tea.Batch(m.armTimerTick(), m.runSpinner.Tick)
	case "r":
		m.Timer.Reset()
		m.Status = StatusBar{Text: "timer reset", IsError: false}
		return m, nil
	case "w":
		return m.setTimerMode(timer.ModeWork), nil
	case "s":
		return m.setTimerMode(timer.ModeShortBreak), nil
	case "l":
		return m.setTimerMode(timer.ModeLongBreak), nil
	case "c":
		m.Timer.SelectTask(uuid.Nil)
		m.Status = StatusBar{Text: "timer task cleared", IsError: false}
		return m, nil
	}
	return m, nil
}

// Mode switches are a caller-level guard: the machine would allow
// them mid-countdown, the UI does not.
func (m Model) setTimerMode(mode timer.Mode) Model {
	if m.Timer.State() == timer.StateRunning {
		m.Status = StatusBar{Text: "pause or reset before switching mode", IsError: true}
		return m
	}
	m.Timer.SetMode(mode)
	m.Status = StatusBar{Text: "timer mode: " + string(mode), IsError: false}
	return m
}

func (m Model) onTimerTick(msg TimerTickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.tickGen {
		return m, nil
	}
	if m.Timer == nil || m.Timer.State() != timer.StateRunning {
		return m, nil
	}

	switch m.Timer.Tick() {
	case timer.EventWorkComplete:
		m.refreshTodayCount()
		m.reloadTasks()
		m.Status = StatusBar{Text: "work session complete, short break started", IsError: false}
		m.notify("Pomodoro", "Work session complete", "info")
	case timer.EventBreakComplete:
		m.Status = StatusBar{Text: "break complete, press space to start focusing", IsError: false}
		m.notify("Pomodoro", "Break complete", "info")
	}

	if m.Timer.State() == timer.StateRunning {
		return m, timerTickCmd(m.tickGen)
	}
	return m, nil
}

func (m *Model) refreshTodayCount() {
	if m.SessionLog == nil {
		return
	}
	m.Pomodoro.TodayCount = m.SessionLog.DayTotal(m.ctx(), m.clock())
}

// armTimerTick opens a fresh tick chain. Bumping the generation
// invalidates any tick still in flight from an earlier chain, so at
// most one countdown advances the machine.
func (m *Model) armTimerTick() tea.Cmd {
	m.tickGen++
	return timerTickCmd(m.tickGen)
}

func timerTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return TimerTickMsg{Gen: gen} })
}
