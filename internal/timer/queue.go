// Package timer provides cancelable delayed callbacks that run on the
// Bubble Tea update loop.
//
// A Queue never starts goroutines of its own. Scheduling records the
// callback and produces a tea.Tick command; when the tick comes back as a
// FiredMsg the host hands it to Handle, which runs the callback only if the
// timer is still pending. Canceling a timer therefore just forgets it, and a
// late tick for a forgotten timer is dropped.
package timer

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ID identifies a scheduled callback within its Queue. The zero ID is never
// issued and means "no timer".
type ID uint64

// FiredMsg is delivered to the update loop when a scheduled delay elapses.
type FiredMsg struct {
	Owner string
	ID    ID
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

type entry struct {
	id       ID
	deadline time.Time
	fire     func()
}

// Queue tracks the pending timers of a single owner.
type Queue struct {
	owner   string
	clock   Clock
	next    ID
	pending map[ID]entry
	cmds    []tea.Cmd
	stopped bool
}

// NewQueue creates a queue whose FiredMsg values carry owner.
func NewQueue(owner string, clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock()
	}
	return &Queue{
		owner:   owner,
		clock:   clock,
		pending: make(map[ID]entry),
	}
}

// Owner returns the owner tag carried by this queue's messages.
func (q *Queue) Owner() string { return q.owner }

// Schedule registers fire to run after d. It returns 0 once the queue has
// been stopped.
func (q *Queue) Schedule(d time.Duration, fire func()) ID {
	if q.stopped {
		return 0
	}
	q.next++
	id := q.next
	q.pending[id] = entry{id: id, deadline: q.clock.Now().Add(d), fire: fire}

	owner := q.owner
	q.cmds = append(q.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return FiredMsg{Owner: owner, ID: id}
	}))
	return id
}

// Cancel forgets a pending timer. It reports whether the timer was pending.
func (q *Queue) Cancel(id ID) bool {
	if _, ok := q.pending[id]; !ok {
		return false
	}
	delete(q.pending, id)
	return true
}

// Handle runs the callback for msg if it belongs to this queue and is still
// pending. It reports whether a callback ran.
func (q *Queue) Handle(msg FiredMsg) bool {
	if msg.Owner != q.owner {
		return false
	}
	return q.fire(msg.ID)
}

func (q *Queue) fire(id ID) bool {
	e, ok := q.pending[id]
	if !ok {
		return false
	}
	delete(q.pending, id)
	e.fire()
	return true
}

// Expire runs, in deadline order, every pending callback whose deadline is at
// or before now. It returns the number of callbacks run. Hosts that do not
// run a Bubble Tea program can drive the queue this way.
func (q *Queue) Expire(now time.Time) int {
	var due []entry
	for _, e := range q.pending {
		if !e.deadline.After(now) {
			due = append(due, e)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].id < due[j].id
		}
		return due[i].deadline.Before(due[j].deadline)
	})

	fired := 0
	for _, e := range due {
		// An earlier callback may have canceled this one.
		if q.fire(e.id) {
			fired++
		}
	}
	return fired
}

// Pending returns the number of timers that have not fired or been canceled.
func (q *Queue) Pending() int { return len(q.pending) }

// Cmd drains the tick commands produced since the last call.
func (q *Queue) Cmd() tea.Cmd {
	if len(q.cmds) == 0 {
		return nil
	}
	cmds := q.cmds
	q.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Stop cancels every pending timer and rejects further scheduling.
func (q *Queue) Stop() {
	q.stopped = true
	q.cmds = nil
	clear(q.pending)
}
