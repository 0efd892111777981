package runloop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurn_RunsPostedWorkInOrder(t *testing.T) {
	l := New(0)

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		l.Post(func() { order = append(order, i) })
	}

	assert.Equal(t, 3, l.Turn())
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, uint64(1), l.Turns())
}

func TestTurn_WorkPostedDuringTurnWaits(t *testing.T) {
	l := New(0)

	ran := false
	l.Post(func() {
		l.Post(func() { ran = true })
	})

	l.Turn()
	assert.False(t, ran)
	assert.Equal(t, 1, l.Pending())

	l.Turn()
	assert.True(t, ran)
}

func TestRunUntilIdle(t *testing.T) {
	l := New(0)

	remaining := 5
	var tick func()
	tick = func() {
		remaining--
		if remaining > 0 {
			l.Post(tick)
		}
	}
	l.Post(tick)

	turns, idle := l.RunUntilIdle(100)
	assert.True(t, idle)
	assert.Equal(t, 5, turns)

	var forever func()
	forever = func() { l.Post(forever) }
	l.Post(forever)

	turns, idle = l.RunUntilIdle(10)
	assert.False(t, idle)
	assert.Equal(t, 10, turns)
}

func TestTurn_RecoversPanics(t *testing.T) {
	l := New(0)

	after := false
	l.Post(func() { panic("boom") })
	l.Post(func() { after = true })

	assert.NotPanics(t, func() { l.Turn() })
	assert.True(t, after)
}

func TestRun_DrivesTurnsAndFrames(t *testing.T) {
	l := New(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	frames := make(chan struct{}, 1)
	l.OnFrame(func() {
		select {
		case frames <- struct{}{}:
		default:
		}
	})
	l.Post(func() { close(done) })

	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("posted work never ran")
	}
	select {
	case <-frames:
	case <-time.After(2 * time.Second):
		t.Fatal("frame hook never ran")
	}

	require.ErrorIs(t, l.Run(ctx), ErrAlreadyRunning)

	cancel()
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
