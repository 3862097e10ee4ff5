// Package interaction implements the open/close state machine behind a
// single popup kind of a single trigger.
//
// A Machine is driven only through Open, Close and CancelTimers. Hover
// machines may delay either direction; click machines always switch
// immediately. Delays go through a Scheduler so that every pending timer
// belongs to exactly one machine and can be canceled before it fires.
package interaction

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/tooltui/internal/timer"
)

// Kind distinguishes the two popup flavours a trigger can carry.
type Kind int

const (
	Hover Kind = iota
	Click
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Hover:
		return "hover"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// State is the machine's observable state.
type State int

const (
	Closed State = iota
	PendingOpen
	Open
	PendingClose
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case PendingOpen:
		return "pending-open"
	case Open:
		return "open"
	case PendingClose:
		return "pending-close"
	default:
		return "unknown"
	}
}

// Scheduler runs callbacks after a delay. timer.Queue satisfies it.
type Scheduler interface {
	Schedule(d time.Duration, fire func()) timer.ID
	Cancel(id timer.ID) bool
}

// Options configures a Machine. Every field is optional.
type Options struct {
	// OpenDelay and CloseDelay only apply to Hover machines.
	OpenDelay  time.Duration
	CloseDelay time.Duration

	// OnOpen and OnClose run on every Open and Close call, including calls
	// that leave the state unchanged.
	OnOpen  func()
	OnClose func()

	// OnChange runs only when the open flag actually flips.
	OnChange func(open bool)

	Logger *slog.Logger
}

// Machine tracks whether one popup is open and owns its pending timers.
type Machine struct {
	kind   Kind
	sched  Scheduler
	opts   Options
	logger *slog.Logger

	open       bool
	openTimer  timer.ID
	closeTimer timer.ID
	disposed   bool
}

// New creates a closed machine.
func New(kind Kind, sched Scheduler, opts Options) *Machine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		kind:   kind,
		sched:  sched,
		opts:   opts,
		logger: logger.With("kind", kind.String()),
	}
}

// Kind returns the popup kind this machine drives.
func (m *Machine) Kind() Kind { return m.kind }

// IsOpen reports whether the popup is currently shown.
func (m *Machine) IsOpen() bool { return m.open }

// State returns the current state.
func (m *Machine) State() State {
	switch {
	case m.open && m.closeTimer != 0:
		return PendingClose
	case m.open:
		return Open
	case m.openTimer != 0:
		return PendingOpen
	default:
		return Closed
	}
}

// Disposed reports whether Dispose has been called.
func (m *Machine) Disposed() bool { return m.disposed }

// Open shows the popup, after the open delay for hover machines.
//
// Calling Open while already open or pending open does not change the state,
// but the OnOpen callback still runs. Calling it while a close is pending
// cancels the close and returns straight to Open: the popup stays shown
// instead of passing through PendingOpen and waiting out a new open delay.
func (m *Machine) Open() {
	if m.disposed {
		return
	}
	defer m.call(m.opts.OnOpen)

	switch m.State() {
	case PendingOpen, Open:
		return
	case PendingClose:
		m.cancel(&m.closeTimer)
		m.logger.Debug("pending close canceled by open")
		return
	}

	if delay := m.delay(m.opts.OpenDelay); delay > 0 {
		m.openTimer = m.sched.Schedule(delay, m.fireOpen)
		m.logger.Debug("open scheduled", "delay", delay)
		return
	}
	m.set(true)
}

// Close hides the popup, after the close delay for hover machines.
//
// Calling Close while closed or pending close does not change the state, but
// the OnClose callback still runs. Calling it while an open is pending
// cancels the open, so the popup never appears.
func (m *Machine) Close() {
	if m.disposed {
		return
	}
	defer m.call(m.opts.OnClose)

	switch m.State() {
	case Closed, PendingClose:
		return
	case PendingOpen:
		m.cancel(&m.openTimer)
		m.logger.Debug("pending open canceled by close")
		return
	}

	if delay := m.delay(m.opts.CloseDelay); delay > 0 {
		m.closeTimer = m.sched.Schedule(delay, m.fireClose)
		m.logger.Debug("close scheduled", "delay", delay)
		return
	}
	m.set(false)
}

// Toggle closes an open popup and opens a closed one.
func (m *Machine) Toggle() {
	if m.open {
		m.Close()
		return
	}
	m.Open()
}

// CancelTimers drops any pending open or close without touching the open
// flag.
func (m *Machine) CancelTimers() {
	m.cancel(&m.openTimer)
	m.cancel(&m.closeTimer)
}

// Dispose cancels pending timers and turns every later call into a no-op.
func (m *Machine) Dispose() {
	if m.disposed {
		return
	}
	m.CancelTimers()
	m.disposed = true
}

func (m *Machine) fireOpen() {
	m.openTimer = 0
	if m.disposed {
		return
	}
	m.set(true)
}

func (m *Machine) fireClose() {
	m.closeTimer = 0
	if m.disposed {
		return
	}
	m.set(false)
}

func (m *Machine) set(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	if open {
		m.logger.Debug("popup opened")
	} else {
		m.logger.Debug("popup closed")
	}
	if m.opts.OnChange != nil {
		m.opts.OnChange(open)
	}
}

func (m *Machine) cancel(id *timer.ID) {
	if *id == 0 {
		return
	}
	m.sched.Cancel(*id)
	*id = 0
}

func (m *Machine) delay(d time.Duration) time.Duration {
	if m.kind != Hover || m.sched == nil {
		return 0
	}
	return d
}

func (m *Machine) call(fn func()) {
	if fn != nil {
		fn()
	}
}
