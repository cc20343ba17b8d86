package update

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/prodo-app/prodo/internal/category"
	"github.com/prodo-app/prodo/internal/model"
	"github.com/prodo-app/prodo/internal/scheduler"
	"github.com/prodo-app/prodo/internal/sessionlog"
	"github.com/prodo-app/prodo/internal/stats"
	"github.com/prodo-app/prodo/internal/store"
	"github.com/prodo-app/prodo/internal/timer"
)

type View string

const (
	ViewTasks      View = "Tasks"
	ViewPomodoro   View = "Pomodoro"
	ViewStats      View = "Stats"
	ViewCalendar   View = "Calendar"
	ViewCategories View = "Categories"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks      string
	Pomodoro   string
	Stats      string
	Calendar   string
	Categories string
	Help       string
	Quit       string
}

type TasksState struct {
	Items         []model.Task
	Cursor        int
	SubtaskCursor int
	CaptureMode   bool
	NoteMode      bool
}

type CategoryInputMode string

const (
	CategoryInputNone   CategoryInputMode = ""
	CategoryInputAdd    CategoryInputMode = "add"
	CategoryInputRename CategoryInputMode = "rename"
)

type CategoriesState struct {
	Names     []string
	Cursor    int
	InputMode CategoryInputMode
}

type CalendarMode string

const (
	CalendarModeDay   CalendarMode = "day"
	CalendarModeWeek  CalendarMode = "week"
	CalendarModeMonth CalendarMode = "month"
)

type CalendarState struct {
	Mode      CalendarMode
	FocusDate time.Time
	Cursor    int
}

type PomodoroState struct {
	TodayCount int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TimerTickMsg carries the generation of the tick chain that produced
// it. Ticks from a superseded chain are dropped so only one countdown
// is ever live.
type TimerTickMsg struct {
	Gen int
}

type TasksChangedMsg struct {
	Tasks []model.Task
}

type DueMsg struct {
	Event scheduler.DueEvent
}

// Deps are the collaborators the application model drives. The model
// owns none of them; main constructs and closes them.
type Deps struct {
	Store      *store.TaskStore
	Categories *category.Registry
	SessionLog *sessionlog.Log
	Timer      *timer.Machine
	Stats      *stats.Controller
	Scheduler  *scheduler.Engine
	Notifier   DesktopNotifier
	Logger     *slog.Logger
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Tasks          TasksState
	Categories     CategoriesState
	Calendar       CalendarState
	Pomodoro       PomodoroState
	Palette        CommandPaletteState
	StatsResult    stats.Result
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	Store      *store.TaskStore
	Registry   *category.Registry
	SessionLog *sessionlog.Log
	Timer      *timer.Machine
	Stats      *stats.Controller
	Scheduler  *scheduler.Engine
	logger     *slog.Logger

	taskUpdates <-chan []model.Task
	clock       func() time.Time
	tickGen     int

	// Bubble components used for rich TUI controls
	taskList       list.Model
	breakdownTable table.Model
	calendarTable  table.Model
	quickAddInput  textinput.Model
	commandInput   textinput.Model
	notesArea      textarea.Model
	pomoProgress   progress.Model
	runSpinner     spinner.Model
	helpModel      help.Model
	metaViewport   viewport.Model
	stateFilePath  string
	uiDensity      int
}

func NewModel(deps Deps, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView:    ViewTasks,
		Tasks:          TasksState{},
		Calendar:       CalendarState{Mode: CalendarModeWeek},
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       NoopDesktopNotifier{},
		Keys: GlobalKeyMap{
			Tasks:      "1",
			Pomodoro:   "2",
			Stats:      "3",
			Calendar:   "4",
			Categories: "5",
			Help:       "?",
			Quit:       "q",
		},
		Store:         deps.Store,
		Registry:      deps.Categories,
		SessionLog:    deps.SessionLog,
		Timer:         deps.Timer,
		Stats:         deps.Stats,
		Scheduler:     deps.Scheduler,
		logger:        deps.Logger,
		clock:         time.Now,
		stateFilePath: strings.TrimSpace(cfg.UIStatePath),
		uiDensity:     1,
	}
	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}
	if deps.Notifier != nil {
		m.notifier = deps.Notifier
	}

	if m.Store != nil {
		m.Tasks.Items = m.Store.All()
		m.taskUpdates = m.Store.Subscribe()
	}
	if m.Registry != nil {
		m.Categories.Names = m.Registry.List()
	}
	m.Calendar.FocusDate = m.clock()

	if m.stateFilePath != "" {
		if state, err := loadUIState(m.stateFilePath); err == nil {
			m.restoreUIState(state)
		}
	}

	m.initBubbleComponents()
	m.refreshStats()
	m.refreshTodayCount()
	m.syncBubbleData()
	return m
}

func (m *Model) restoreUIState(state uiState) {
	if isKnownView(View(state.CurrentView)) {
		m.CurrentView = View(state.CurrentView)
	}
	if state.SelectedTaskID != "" && m.Store != nil {
		if task, err := m.Store.GetByString(state.SelectedTaskID); err == nil {
			m.SelectedTaskID = task.ID.String()
			for i := range m.Tasks.Items {
				if m.Tasks.Items[i].ID == task.ID {
					m.Tasks.Cursor = i
					break
				}
			}
		}
	}
	if m.Stats != nil {
		switch stats.Period(state.StatsPeriod) {
		case stats.PeriodMonth, stats.PeriodYear:
			m.Stats.SetPeriod(m.ctx(), stats.Period(state.StatsPeriod))
		}
	}
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewPomodoro, ViewStats, ViewCalendar, ViewCategories:
		return true
	default:
		return false
	}
}
