package timer

import (
	"time"

	"github.com/google/uuid"
)

type State string

const (
	StateStopped State = "Stopped"
	StateRunning State = "Running"
	StatePaused  State = "Paused"
)

type Mode string

const (
	ModeWork       Mode = "Work"
	ModeShortBreak Mode = "ShortBreak"
	ModeLongBreak  Mode = "LongBreak"
)

type Config struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration
}

func DefaultConfig() Config {
	return Config{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  15 * time.Minute,
	}
}

// Event reports what a tick completed, so the driver can refresh
// displays and keep ticking only while the machine runs.
type Event int

const (
	EventNone Event = iota
	EventWorkComplete
	EventBreakComplete
)

// Recorder receives the side effects of a completed work session. A
// zero task id means no task was associated with the session.
type Recorder interface {
	RecordWorkSession(taskID uuid.UUID, duration time.Duration)
}

// Machine drives one focus/break cycle at a time. It owns no clock:
// the driver calls Tick once per elapsed second, which keeps the
// machine deterministic under test. Completing a work session notifies
// the recorder, then auto-starts a short break; completing any break
// arms a stopped work session.
type Machine struct {
	cfg       Config
	state     State
	mode      Mode
	remaining time.Duration
	taskID    uuid.UUID
	recorder  Recorder
}

func NewMachine(cfg Config, recorder Recorder) *Machine {
	if cfg.Work <= 0 {
		cfg.Work = DefaultConfig().Work
	}
	if cfg.ShortBreak <= 0 {
		cfg.ShortBreak = DefaultConfig().ShortBreak
	}
	if cfg.LongBreak <= 0 {
		cfg.LongBreak = DefaultConfig().LongBreak
	}
	return &Machine{
		cfg:       cfg,
		state:     StateStopped,
		mode:      ModeWork,
		remaining: cfg.Work,
		recorder:  recorder,
	}
}

func (m *Machine) State() State            { return m.state }
func (m *Machine) Mode() Mode              { return m.mode }
func (m *Machine) Remaining() time.Duration { return m.remaining }
func (m *Machine) TaskID() uuid.UUID       { return m.taskID }
func (m *Machine) WorkDuration() time.Duration { return m.cfg.Work }

// ModeDuration is the full duration of the current mode.
func (m *Machine) ModeDuration() time.Duration {
	switch m.mode {
	case ModeShortBreak:
		return m.cfg.ShortBreak
	case ModeLongBreak:
		return m.cfg.LongBreak
	default:
		return m.cfg.Work
	}
}

// SelectTask associates a task with upcoming work sessions. Passing
// uuid.Nil clears the association.
func (m *Machine) SelectTask(id uuid.UUID) {
	m.taskID = id
}

// SetMode cancels any countdown, loads the mode's full duration and
// stops the machine. Callers guard against switching mode while
// running.
func (m *Machine) SetMode(mode Mode) {
	switch mode {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		m.mode = mode
	default:
		m.mode = ModeWork
	}
	m.state = StateStopped
	m.remaining = m.ModeDuration()
}

// Start begins or resumes the countdown. From Stopped the remaining
// time resets to the full mode duration; from Paused it resumes where
// it left off. Starting a running machine is a no-op.
func (m *Machine) Start() {
	if m.state == StateRunning {
		return
	}
	if m.state == StateStopped || m.remaining <= 0 {
		m.remaining = m.ModeDuration()
	}
	m.state = StateRunning
}

// Pause freezes the countdown. Only a running machine can pause.
func (m *Machine) Pause() {
	if m.state != StateRunning {
		return
	}
	m.state = StatePaused
}

// Reset stops the countdown and restores the current mode's full
// duration.
func (m *Machine) Reset() {
	m.state = StateStopped
	m.remaining = m.ModeDuration()
}

// Tick consumes one second of a running countdown. On reaching zero in
// work mode it records the session and auto-starts a short break; on
// finishing a break it arms a stopped work session.
func (m *Machine) Tick() Event {
	if m.state != StateRunning {
		return EventNone
	}
	m.remaining -= time.Second
	if m.remaining > 0 {
		return EventNone
	}
	m.remaining = 0

	if m.mode == ModeWork {
		if m.recorder != nil {
			m.recorder.RecordWorkSession(m.taskID, m.cfg.Work)
		}
		m.mode = ModeShortBreak
		m.remaining = m.cfg.ShortBreak
		m.state = StateRunning
		return EventWorkComplete
	}

	m.mode = ModeWork
	m.remaining = m.cfg.Work
	m.state = StateStopped
	return EventBreakComplete
}
