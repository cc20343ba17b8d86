package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID       string
	Title    string
	Category string
	Due      string
	Done     bool
	Flagged  bool
	Sessions int
}

type TasksPanelData struct {
	QuickAddView string
	ListView     string
	Items        []TaskItemData
	SelectedID   string
	CaptureMode  bool
}

type SubtaskData struct {
	Title    string
	Done     bool
	Selected bool
}

type TaskMetadataData struct {
	SelectedID       string
	Category         string
	Due              string
	Flagged          bool
	Sessions         int
	TimeSpent        string
	Subtasks         []SubtaskData
	NotesEditorView  string
	MarkdownMetaView string
	NoteMode         bool
}

type PomodoroPanelData struct {
	TaskTitle    string
	Mode         string
	State        string
	Timer        string
	ProgressView string
	ProgressPct  int
	TodayCount   int
	SpinnerView  string
}

type BarData struct {
	Label string
	Hours float64
}

type StatsPanelData struct {
	PeriodLabel   string
	Period        string
	Completed     int
	Pending       int
	TotalSessions int
	TotalHours    float64
	Bars          []BarData
	TableView     string
}

type AgendaItemData struct {
	ID       string
	Title    string
	Date     string
	Time     string
	Category string
}

type CalendarPanelData struct {
	Mode      string
	FocusDate string
	TableView string
	Items     []AgendaItemData
	Selected  *AgendaItemData
}

type CategoriesPanelData struct {
	Names       []string
	Cursor      int
	InputActive bool
	InputView   string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.CaptureMode {
		b.WriteString(data.QuickAddView + "\n")
	}
	b.WriteString("actions: [a]add [enter/x]done [f]flag [e]note [d]delete [t]timer\n")
	b.WriteString(data.ListView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Done {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s%s", cursor, check, flagBadge(item.Flagged), item.Title))
		if item.Category != "" {
			b.WriteString(fmt.Sprintf(" @%s", item.Category))
		}
		if item.Due != "" {
			b.WriteString(fmt.Sprintf(" due:%s", item.Due))
		}
		if item.Sessions > 0 {
			b.WriteString(fmt.Sprintf(" (%d pomos)", item.Sessions))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskMetadataPane(data TaskMetadataData) string {
	if strings.TrimSpace(data.SelectedID) == "" {
		return "metadata:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("metadata:\n")
	b.WriteString(fmt.Sprintf("id: %s\n", data.SelectedID))
	b.WriteString(fmt.Sprintf("category: %s\n", data.Category))
	if data.Due != "" {
		b.WriteString(fmt.Sprintf("due: %s\n", data.Due))
	}
	if data.Flagged {
		b.WriteString("flagged: yes\n")
	}
	b.WriteString(fmt.Sprintf("sessions: %d | time: %s\n", data.Sessions, data.TimeSpent))
	if len(data.Subtasks) > 0 {
		b.WriteString("subtasks:\n")
		for _, sub := range data.Subtasks {
			cursor := " "
			if sub.Selected {
				cursor = ">"
			}
			check := "[ ]"
			if sub.Done {
				check = "[x]"
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, check, sub.Title))
		}
	}
	if data.NoteMode {
		b.WriteString("\nnotes-editor:\n")
		b.WriteString(data.NotesEditorView + "\n")
	}
	b.WriteString("\nmarkdown-preview:\n")
	b.WriteString(data.MarkdownMetaView)
	return strings.TrimSpace(b.String())
}

func RenderPomodoroPanel(data PomodoroPanelData) string {
	var b strings.Builder
	b.WriteString("pomodoro:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("mode: %s | state: %s %s\n", strings.ToUpper(data.Mode), strings.ToUpper(data.State), data.SpinnerView))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("pomodoros today: %d\n", data.TodayCount))
	b.WriteString("actions: [space]start/pause [r]reset [w/s/l]mode [c]clear-task")
	return strings.TrimSpace(b.String())
}

func RenderStatsPanel(data StatsPanelData) string {
	var b strings.Builder
	b.WriteString("stats:\n")
	b.WriteString(fmt.Sprintf("period: %s | %s\n", strings.ToUpper(data.Period), data.PeriodLabel))
	b.WriteString("actions: [w/m/y]period [h/l]navigate\n")
	b.WriteString(fmt.Sprintf("completed: %d | pending: %d\n", data.Completed, data.Pending))
	b.WriteString(fmt.Sprintf("lifetime: %d sessions, %.1f hours\n", data.TotalSessions, data.TotalHours))
	b.WriteString(renderBarChart(data.Bars))
	b.WriteString("\nbreakdown:\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("mode: %s | focus: %s\n", data.Mode, data.FocusDate))
	b.WriteString("actions: [d]day [w]week [m]month [t]today [h/l]range [j/k]agenda\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(agenda empty)")
		return strings.TrimSpace(b.String())
	}
	lastDate := ""
	for _, item := range data.Items {
		if item.Date != lastDate {
			b.WriteString(fmt.Sprintf("\n%s:\n", item.Date))
			lastDate = item.Date
		}
		cursor := " "
		if data.Selected != nil && data.Selected.ID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s %s @%s\n", cursor, item.Time, item.Title, item.Category))
	}
	if data.Selected != nil {
		b.WriteString("\nagenda-metadata:\n")
		b.WriteString(fmt.Sprintf("id: %s\n", data.Selected.ID))
		b.WriteString(fmt.Sprintf("category: %s\n", data.Selected.Category))
		b.WriteString(fmt.Sprintf("when: %s %s\n", data.Selected.Date, data.Selected.Time))
	}
	return strings.TrimSpace(b.String())
}

func RenderCategoriesPanel(data CategoriesPanelData) string {
	var b strings.Builder
	b.WriteString("categories:\n")
	b.WriteString("actions: [a]add [r]rename [x/d]delete [j/k]move\n")
	if data.InputActive {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Names) == 0 {
		b.WriteString("(no categories)")
		return strings.TrimSpace(b.String())
	}
	for i, name := range data.Names {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, name))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

// renderBarChart prints one row per bar for week and month periods; a
// yearly chart would not fit a panel, so it collapses to a summary line.
func renderBarChart(bars []BarData) string {
	if len(bars) == 0 {
		return "(no chart data)"
	}
	if len(bars) > 31 {
		return fmt.Sprintf("chart: %d days, %.1f hours total", len(bars), sumHours(bars))
	}
	max := 0.0
	for _, bar := range bars {
		if bar.Hours > max {
			max = bar.Hours
		}
	}
	var b strings.Builder
	for _, bar := range bars {
		width := 0
		if max > 0 {
			width = int(bar.Hours / max * 24)
		}
		b.WriteString(fmt.Sprintf("%-3s %s %.1fh\n", bar.Label, barStyle.Render(strings.Repeat("█", width)), bar.Hours))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func sumHours(bars []BarData) float64 {
	total := 0.0
	for _, bar := range bars {
		total += bar.Hours
	}
	return total
}

func flagBadge(flagged bool) string {
	if flagged {
		return "[!] "
	}
	return ""
}
