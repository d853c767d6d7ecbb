package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygrid/planner/internal/model"
)

func TestDispatcher_RegisterAndDispatch(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)

	var got Event
	d.Register(EventClick, func(e Event) error {
		got = e
		return nil
	})

	require.True(t, d.HasHandler(EventClick))
	assert.False(t, d.HasHandler(EventDoubleClick))

	e := Event{
		Name:      EventClick,
		Position:  model.Position{Lng: 4.47, Lat: 51.92},
		Timestamp: time.Now(),
	}
	require.NoError(t, d.Dispatch(e))
	assert.Equal(t, e.Position, got.Position)
}

func TestDispatcher_UnhandledEventIsNoOp(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)

	// clicking with nothing registered is normal, not an error
	assert.NoError(t, d.Dispatch(Event{Name: EventClick}))
}

func TestDispatcher_HandlerErrorPropagates(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	d.Register(EventDoubleClick, func(Event) error { return boom })

	assert.ErrorIs(t, d.Dispatch(Event{Name: EventDoubleClick}), boom)
}

func TestDispatcher_BufferedDropsWhenFull(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	d.Register(EventClick, func(Event) error {
		entered <- struct{}{}
		<-release
		return nil
	}, Buffered(1))

	// first event is consumed by the worker, which then blocks
	require.NoError(t, d.Dispatch(Event{Name: EventClick}))
	<-entered

	// second event fills the queue; third must be dropped
	require.NoError(t, d.Dispatch(Event{Name: EventClick}))
	err = d.Dispatch(Event{Name: EventClick})
	assert.Error(t, err)

	close(release)
	<-entered
}

func TestDispatcher_BlockingNeverDrops(t *testing.T) {
	d, err := New(nil)
	require.NoError(t, err)

	done := make(chan struct{}, 4)
	d.Register(EventStyleReload, func(Event) error {
		done <- struct{}{}
		return nil
	}, Buffered(2), Blocking())

	for i := 0; i < 4; i++ {
		require.NoError(t, d.Dispatch(Event{Name: EventStyleReload}))
	}
	for i := 0; i < 4; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for buffered handler")
		}
	}
}
