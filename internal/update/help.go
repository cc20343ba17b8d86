package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/prodo-app/prodo/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.Pomodoro, Action: "switch to Pomodoro"},
		{Key: m.Keys.Stats, Action: "switch to Stats"},
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: m.Keys.Categories, Action: "switch to Categories"},
		{Key: "/", Action: "open command palette"},
		{Key: "D", Action: "cycle density"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "a/i", Action: "capture task (+prefix adds subtask)"},
			{Key: "j/k", Action: "move selection"},
			{Key: "J/K", Action: "move subtask selection"},
			{Key: "enter/x", Action: "toggle done"},
			{Key: "X", Action: "toggle subtask done"},
			{Key: "f", Action: "toggle flag"},
			{Key: "e", Action: "edit note"},
			{Key: "d", Action: "delete task"},
			{Key: "t", Action: "send task to timer"},
		}
	case ViewPomodoro:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "w/s/l", Action: "work / short break / long break"},
			{Key: "c", Action: "clear timer task"},
		}
	case ViewStats:
		return []KeyBinding{
			{Key: "w/m/y", Action: "week/month/year period"},
			{Key: "h/l", Action: "previous/next period"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "d/w/m", Action: "day/week/month range"},
			{Key: "t", Action: "jump to today"},
			{Key: "h/l", Action: "previous/next range"},
			{Key: "j/k", Action: "move agenda cursor"},
		}
	case ViewCategories:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "a", Action: "add category"},
			{Key: "r", Action: "rename category"},
			{Key: "x/d", Action: "delete category"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
