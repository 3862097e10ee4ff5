package timer

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func TestQueue_ExpireRunsDueCallbacks(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue("a", clock)

	var order []string
	q.Schedule(200*time.Millisecond, func() { order = append(order, "slow") })
	q.Schedule(100*time.Millisecond, func() { order = append(order, "fast") })
	require.Equal(t, 2, q.Pending())

	assert.Equal(t, 0, q.Expire(clock.Advance(99*time.Millisecond)))
	assert.Equal(t, 1, q.Expire(clock.Advance(time.Millisecond)))
	assert.Equal(t, []string{"fast"}, order)

	assert.Equal(t, 1, q.Expire(clock.Advance(time.Second)))
	assert.Equal(t, []string{"fast", "slow"}, order)
	assert.Equal(t, 0, q.Pending())
}

func TestQueue_CancelPreventsFire(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue("a", clock)

	ran := false
	id := q.Schedule(50*time.Millisecond, func() { ran = true })
	assert.True(t, q.Cancel(id))
	assert.False(t, q.Cancel(id), "second cancel is a no-op")

	q.Expire(clock.Advance(time.Second))
	assert.False(t, q.Handle(FiredMsg{Owner: "a", ID: id}))
	assert.False(t, ran)
}

func TestQueue_HandleIgnoresOtherOwners(t *testing.T) {
	clock := NewManualClock(epoch)
	a := NewQueue("a", clock)
	b := NewQueue("b", clock)

	var aRan, bRan bool
	idA := a.Schedule(time.Millisecond, func() { aRan = true })
	idB := b.Schedule(time.Millisecond, func() { bRan = true })
	require.Equal(t, idA, idB, "ids are per queue")

	assert.False(t, b.Handle(FiredMsg{Owner: "a", ID: idA}))
	assert.False(t, bRan)

	assert.True(t, a.Handle(FiredMsg{Owner: "a", ID: idA}))
	assert.True(t, aRan)
	assert.Equal(t, 1, b.Pending())
}

func TestQueue_CallbackMayCancelLaterTimer(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue("a", clock)

	var second ID
	secondRan := false
	q.Schedule(10*time.Millisecond, func() { q.Cancel(second) })
	second = q.Schedule(20*time.Millisecond, func() { secondRan = true })

	assert.Equal(t, 1, q.Expire(clock.Advance(time.Second)))
	assert.False(t, secondRan)
}

func TestQueue_CmdDrains(t *testing.T) {
	q := NewQueue("a", NewManualClock(epoch))
	assert.Nil(t, q.Cmd())

	q.Schedule(time.Millisecond, func() {})
	cmd := q.Cmd()
	require.NotNil(t, cmd)
	assert.Nil(t, q.Cmd(), "commands are drained once")

	msg := cmd()
	fired, ok := msg.(FiredMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, FiredMsg{Owner: "a", ID: 1}, fired)
}

func TestQueue_Stop(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue("a", clock)

	ran := false
	id := q.Schedule(time.Millisecond, func() { ran = true })
	q.Stop()

	assert.True(t, q.stopped)
	assert.Equal(t, 0, q.Pending())
	assert.Nil(t, q.Cmd())
	assert.False(t, q.Handle(FiredMsg{Owner: "a", ID: id}))
	assert.Equal(t, ID(0), q.Schedule(time.Millisecond, func() { ran = true }))
	q.Expire(clock.Advance(time.Hour))
	assert.False(t, ran)
}

func TestQueue_Deadline(t *testing.T) {
	clock := NewManualClock(epoch)
	q := NewQueue("a", clock)

	id := q.Schedule(250*time.Millisecond, func() {})
	e, ok := q.pending[id]
	require.True(t, ok)
	assert.Equal(t, epoch.Add(250*time.Millisecond), e.deadline)

	_, ok = q.pending[id+1]
	assert.False(t, ok)
}

var _ tea.Msg = FiredMsg{}
