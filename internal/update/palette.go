package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prodo-app/prodo/internal/commands"
	"github.com/prodo-app/prodo/internal/stats"
	"github.com/prodo-app/prodo/internal/timer"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	var teaCmd tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.CurrentView = ViewTasks
			m.addTask(a)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Done: func(a commands.DoneArgs) (commands.Result, error) {
			task, ok := m.taskByTitle(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", a.Target)}
			}
			task.Done = true
			m.Store.Update(task)
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("marked done: %s", task.Title)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			task, ok := m.taskByTitle(a.Target)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task matches %q", a.Target)}
			}
			m.Store.Delete(task.ID)
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Title)}, nil
		},
		Category: func(a commands.CategoryArgs) (commands.Result, error) {
			if m.Registry == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no category registry"}
			}
			var ok bool
			var msg string
			switch a.Action {
			case commands.CategoryAdd:
				ok = m.Registry.Add(m.ctx(), a.Name)
				msg = fmt.Sprintf("category added: %s", a.Name)
			case commands.CategoryRename:
				ok = m.Registry.Rename(m.ctx(), a.Name, a.NewName)
				msg = fmt.Sprintf("category renamed: %s -> %s", a.Name, a.NewName)
			case commands.CategoryDelete:
				ok = m.Registry.Delete(m.ctx(), a.Name)
				msg = fmt.Sprintf("category deleted: %s", a.Name)
			}
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "category operation rejected"}
			}
			m.reloadCategories()
			return commands.Result{Message: msg}, nil
		},
		Period: func(a commands.PeriodArgs) (commands.Result, error) {
			if m.Stats == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no stats controller"}
			}
			m.CurrentView = ViewStats
			switch a.Period {
			case "month":
				m.applyPeriod(stats.PeriodMonth)
			case "year":
				m.applyPeriod(stats.PeriodYear)
			default:
				m.applyPeriod(stats.PeriodWeek)
			}
			return commands.Result{Message: "period: " + m.StatsResult.PeriodLabel}, nil
		},
		Prev: func() (commands.Result, error) {
			if m.Stats == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no stats controller"}
			}
			m.StatsResult = m.Stats.Previous(m.ctx())
			return commands.Result{Message: "period: " + m.StatsResult.PeriodLabel}, nil
		},
		Next: func() (commands.Result, error) {
			if m.Stats == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no stats controller"}
			}
			m.StatsResult = m.Stats.Next(m.ctx())
			return commands.Result{Message: "period: " + m.StatsResult.PeriodLabel}, nil
		},
		Timer: func(a commands.TimerArgs) (commands.Result, error) {
			if m.Timer == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "no timer"}
			}
			switch a.Action {
			case commands.TimerStart:
				if m.Timer.State() != timer.StateRunning {
					m.Timer.Start()
					teaCmd = m.armTimerTick()
				}
				return commands.Result{Message: "timer running"}, nil
			case commands.TimerPause:
				m.Timer.Pause()
				return commands.Result{Message: "timer paused"}, nil
			case commands.TimerReset:
				m.Timer.Reset()
				return commands.Result{Message: "timer reset"}, nil
			case commands.TimerWork:
				m = m.setTimerMode(timer.ModeWork)
			case commands.TimerShort:
				m = m.setTimerMode(timer.ModeShortBreak)
			case commands.TimerLong:
				m = m.setTimerMode(timer.ModeLongBreak)
			}
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m, teaCmd
}
