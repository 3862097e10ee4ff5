package document

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type pingMsg struct{}

func TestDocument_ListenAndRelease(t *testing.T) {
	d := New(nil)

	var got []string
	releaseA := d.Listen(func(tea.Msg) { got = append(got, "a") })
	d.Listen(func(tea.Msg) { got = append(got, "b") })
	assert.Equal(t, 2, d.Len())

	d.Dispatch(pingMsg{})
	assert.Equal(t, []string{"a", "b"}, got)

	releaseA()
	releaseA()
	assert.Equal(t, 1, d.Len())

	got = nil
	d.Dispatch(pingMsg{})
	assert.Equal(t, []string{"b"}, got)
}

func TestDocument_ReleaseDuringDispatch(t *testing.T) {
	d := New(nil)

	var releaseB func()
	bCalled := false
	d.Listen(func(tea.Msg) { releaseB() })
	releaseB = d.Listen(func(tea.Msg) { bCalled = true })

	d.Dispatch(pingMsg{})
	assert.False(t, bCalled, "released listener is skipped")
	assert.Equal(t, 1, d.Len())
}

func TestScope_AcquireRelease(t *testing.T) {
	d := New(nil)
	s := d.NewScope("test")
	assert.False(t, s.Active())

	calls := 0
	listener := func(tea.Msg) { calls++ }
	assert.True(t, s.Acquire(listener, listener))
	assert.False(t, s.Acquire(listener), "already active")
	assert.Equal(t, 2, d.Len())

	d.Dispatch(pingMsg{})
	assert.Equal(t, 2, calls)

	s.Release()
	s.Release()
	assert.False(t, s.Active())
	assert.Equal(t, 0, d.Len())

	d.Dispatch(pingMsg{})
	assert.Equal(t, 2, calls)
}

func TestScope_ReleaseFromListener(t *testing.T) {
	d := New(nil)
	s := d.NewScope("self")

	s.Acquire(func(tea.Msg) { s.Release() }, func(tea.Msg) { t.Fatal("must not run after release") })
	d.Dispatch(pingMsg{})

	assert.Equal(t, 0, d.Len())
}
