package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/prodo-app/prodo/internal/commands"
	"github.com/prodo-app/prodo/internal/model"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	if m.Tasks.CaptureMode {
		switch msg.String() {
		case "esc":
			m.Tasks.CaptureMode = false
			m.quickAddInput.Blur()
			m.quickAddInput.SetValue("")
			m.Status = StatusBar{Text: "task list mode", IsError: false}
			return m
		case "enter":
			m.submitQuickAdd(m.quickAddInput.Value())
			m.quickAddInput.SetValue("")
			return m
		}
		if msg.Type == tea.KeyRunes {
			m.quickAddInput.SetValue(m.quickAddInput.Value() + string(msg.Runes))
			return m
		}
		var cmd tea.Cmd
		m.quickAddInput, cmd = m.quickAddInput.Update(msg)
		_ = cmd
		return m
	}

	if m.Tasks.NoteMode {
		switch msg.String() {
		case "esc":
			m.saveSelectedNote(m.notesArea.Value())
			m.Tasks.NoteMode = false
			m.notesArea.Blur()
			return m
		}
		var cmd tea.Cmd
		m.notesArea, cmd = m.notesArea.Update(msg)
		_ = cmd
		return m
	}

	switch msg.String() {
	case "a", "i":
		m.Tasks.CaptureMode = true
		m.quickAddInput.Focus()
		m.Status = StatusBar{Text: "capture mode: title [@category] [due:2006-01-02], +prefix for subtask", IsError: false}
	case "e":
		if task, ok := m.selectedTask(); ok {
			m.Tasks.NoteMode = true
			m.notesArea.SetValue(task.Note)
			m.notesArea.Focus()
			m.Status = StatusBar{Text: "editing note, esc to save", IsError: false}
		}
	case "up", "k":
		if m.Tasks.Cursor > 0 {
			m.Tasks.Cursor--
		}
		m.Tasks.SubtaskCursor = 0
		m.syncSelectedTaskToCursor()
	case "down", "j":
		if m.Tasks.Cursor < len(m.Tasks.Items)-1 {
			m.Tasks.Cursor++
		}
		m.Tasks.SubtaskCursor = 0
		m.syncSelectedTaskToCursor()
	case "K":
		if m.Tasks.SubtaskCursor > 0 {
			m.Tasks.SubtaskCursor--
		}
	case "J":
		if task, ok := m.selectedTask(); ok && m.Tasks.SubtaskCursor < len(task.Subtasks)-1 {
			m.Tasks.SubtaskCursor++
		}
	case "X":
		m.toggleSelectedSubtask()
	case "enter", "x":
		m.toggleSelectedDone()
	case "f":
		m.toggleSelectedFlag()
	case "d":
		m.deleteSelected()
	case "t":
		if task, ok := m.selectedTask(); ok && m.Timer != nil {
			m.Timer.SelectTask(task.ID)
			m.CurrentView = ViewPomodoro
			m.Status = StatusBar{Text: fmt.Sprintf("timer task: %s", task.Title), IsError: false}
		}
	}
	return m
}

func (m *Model) submitQuickAdd(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}
	if strings.HasPrefix(trimmed, "+") {
		m.addSubtaskToSelected(strings.TrimPrefix(trimmed, "+"))
		return
	}

	cmd, err := commands.Parse("add " + trimmed)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.addTask(*cmd.Add)
}

func (m *Model) addTask(args commands.AddArgs) {
	task := model.NewTask(args.Title, args.Category, "", args.DueAt)
	if err := task.Validate(); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if m.Store == nil {
		return
	}
	m.Store.Add(task)
	m.reloadTasks()
	m.Tasks.Cursor = len(m.Tasks.Items) - 1
	m.syncSelectedTaskToCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Title), IsError: false}
}

func (m *Model) addSubtaskToSelected(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected for subtask", IsError: true}
		return
	}
	task.Subtasks = append(task.Subtasks, model.NewSubtask(title))
	m.Store.Update(task)
	m.reloadTasks()
	m.Status = StatusBar{Text: fmt.Sprintf("subtask added to %s", task.Title), IsError: false}
}

func (m *Model) toggleSelectedSubtask() {
	task, ok := m.selectedTask()
	if !ok || len(task.Subtasks) == 0 {
		return
	}
	idx := m.Tasks.SubtaskCursor
	if idx < 0 || idx >= len(task.Subtasks) {
		return
	}
	task.Subtasks[idx].Done = !task.Subtasks[idx].Done
	m.Store.Update(task)
	m.reloadTasks()
}

func (m *Model) toggleSelectedDone() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	task.Done = !task.Done
	m.Store.Update(task)
	m.reloadTasks()
	state := "pending"
	if task.Done {
		state = "done"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s marked %s", task.Title, state), IsError: false}
}

func (m *Model) toggleSelectedFlag() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	task.Flagged = !task.Flagged
	m.Store.Update(task)
	m.reloadTasks()
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	m.Store.Delete(task.ID)
	m.reloadTasks()
	if m.Tasks.Cursor >= len(m.Tasks.Items) && m.Tasks.Cursor > 0 {
		m.Tasks.Cursor--
	}
	m.syncSelectedTaskToCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title), IsError: false}
}

func (m *Model) saveSelectedNote(note string) {
	task, ok := m.selectedTask()
	if !ok {
		return
	}
	task.Note = note
	m.Store.Update(task)
	m.reloadTasks()
	m.Status = StatusBar{Text: "note saved", IsError: false}
}

func (m *Model) reloadTasks() {
	if m.Store == nil {
		return
	}
	m.Tasks.Items = m.Store.All()
	m.refreshStats()
}

func (m *Model) ensureTasksState() {
	if m.Tasks.Cursor < 0 {
		m.Tasks.Cursor = 0
	}
	if m.Tasks.Cursor >= len(m.Tasks.Items) && len(m.Tasks.Items) > 0 {
		m.Tasks.Cursor = len(m.Tasks.Items) - 1
	}
	if len(m.Tasks.Items) > 0 && m.SelectedTaskID == "" {
		m.syncSelectedTaskToCursor()
	}
}

func (m *Model) syncSelectedTaskToCursor() {
	if task, ok := m.selectedTask(); ok {
		m.SelectedTaskID = task.ID.String()
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if len(m.Tasks.Items) == 0 {
		return model.Task{}, false
	}
	if m.Tasks.Cursor < 0 || m.Tasks.Cursor >= len(m.Tasks.Items) {
		return model.Task{}, false
	}
	return m.Tasks.Items[m.Tasks.Cursor].Clone(), true
}

func (m Model) taskByID(id uuid.UUID) (model.Task, bool) {
	for _, task := range m.Tasks.Items {
		if task.ID == id {
			return task.Clone(), true
		}
	}
	return model.Task{}, false
}

func (m Model) taskByTitle(target string) (model.Task, bool) {
	for _, task := range m.Tasks.Items {
		if strings.EqualFold(strings.TrimSpace(task.Title), strings.TrimSpace(target)) {
			return task.Clone(), true
		}
	}
	if id, err := uuid.Parse(strings.TrimSpace(target)); err == nil {
		for _, task := range m.Tasks.Items {
			if task.ID == id {
				return task.Clone(), true
			}
		}
	}
	return model.Task{}, false
}
