// Package document is a registry for screen-wide listeners.
//
// A terminal program has no DOM, so there is nowhere for a component to
// attach "anywhere on the page" handlers. The host owns one Document, passes
// every message it receives to Dispatch, and components register listeners
// for as long as they need them. Listeners are grouped in a Scope so a
// component can drop all of its registrations in one call on every exit
// path.
package document

import (
	"log/slog"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// Listener receives every message dispatched while it is registered.
type Listener func(msg tea.Msg)

// Document holds the registered listeners. It is not safe for concurrent
// use; like the rest of a Bubble Tea model it lives on the update loop.
type Document struct {
	next      int
	order     []int
	listeners map[int]Listener
	logger    *slog.Logger
}

// New creates an empty document.
func New(logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	return &Document{
		listeners: make(map[int]Listener),
		logger:    logger,
	}
}

// Listen registers fn and returns the function that removes it. The
// returned function may be called any number of times.
func (d *Document) Listen(fn Listener) (release func()) {
	d.next++
	id := d.next
	d.listeners[id] = fn
	d.order = append(d.order, id)

	return func() {
		if _, ok := d.listeners[id]; !ok {
			return
		}
		delete(d.listeners, id)
		d.order = slices.DeleteFunc(d.order, func(v int) bool { return v == id })
	}
}

// Dispatch delivers msg to every listener registered at the time of the
// call, in registration order. A listener removed by an earlier listener
// during the same dispatch is skipped.
func (d *Document) Dispatch(msg tea.Msg) {
	if len(d.order) == 0 {
		return
	}
	for _, id := range slices.Clone(d.order) {
		if fn, ok := d.listeners[id]; ok {
			fn(msg)
		}
	}
}

// Len returns the number of registered listeners.
func (d *Document) Len() int { return len(d.listeners) }

// Scope groups listeners that are acquired and released together.
type Scope struct {
	doc      *Document
	name     string
	releases []func()
}

// NewScope creates an inactive scope on d. name is only used in logs.
func (d *Document) NewScope(name string) *Scope {
	return &Scope{doc: d, name: name}
}

// Acquire registers the given listeners. If the scope already holds
// listeners it is left as is and Acquire reports false.
func (s *Scope) Acquire(fns ...Listener) bool {
	if s.Active() {
		return false
	}
	for _, fn := range fns {
		s.releases = append(s.releases, s.doc.Listen(fn))
	}
	s.doc.logger.Debug("document listeners attached", "scope", s.name, "count", len(fns))
	return true
}

// Release removes every listener held by the scope. Releasing an inactive
// scope does nothing.
func (s *Scope) Release() {
	if !s.Active() {
		return
	}
	for _, release := range s.releases {
		release()
	}
	s.doc.logger.Debug("document listeners detached", "scope", s.name, "count", len(s.releases))
	s.releases = nil
}

// Active reports whether the scope currently holds listeners.
func (s *Scope) Active() bool { return len(s.releases) > 0 }
