// Package runloop provides the single cooperative UI timeline that serialnav
// queues, detectors and hosts run on.
//
// Work is posted with Post and runs on the next turn. A turn runs everything that
// was posted before it started; work posted during a turn waits for the next one.
// Run drives one turn per frame, tests drive turns by hand with Turn and RunUntilIdle.
package runloop

import (
	"context"
	"sync"
	"time"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/internal"
	"go.uber.org/atomic"
)

// Loop is a frame-paced run loop.
type Loop struct {
	interval time.Duration

	mu     sync.Mutex
	queue  []func()
	frames []func()

	turns   atomic.Uint64
	running atomic.Bool
}

// New creates a loop that runs one turn per interval. A non-positive interval
// uses the default frame interval.
func New(interval time.Duration) *Loop {
	if interval <= 0 {
		interval = constants.DefaultFrameInterval
	}
	return &Loop{interval: interval}
}

// Post schedules fn for the next turn. Safe for concurrent use.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
}

// OnFrame registers fn to run at the end of every turn driven by Run, e.g. to
// render the host.
func (l *Loop) OnFrame(fn func()) {
	l.mu.Lock()
	l.frames = append(l.frames, fn)
	l.mu.Unlock()
}

// Pending returns how many functions are waiting for the next turn.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Turns returns how many turns have run.
func (l *Loop) Turns() uint64 {
	return l.turns.Load()
}

// Turn runs one turn and returns how many functions it ran.
func (l *Loop) Turn() int {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	l.mu.Unlock()

	for _, fn := range batch {
		l.call(fn)
	}
	l.turns.Inc()
	return len(batch)
}

// RunUntilIdle runs turns until nothing is posted or max turns have run.
// It returns the number of turns run and whether the loop went idle.
func (l *Loop) RunUntilIdle(max int) (int, bool) {
	for i := 0; i < max; i++ {
		if l.Pending() == 0 {
			return i, true
		}
		l.Turn()
	}
	return max, l.Pending() == 0
}

// Run drives the loop at the frame interval until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer l.running.Store(false)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Turn()

			l.mu.Lock()
			frames := l.frames
			l.mu.Unlock()
			for _, fn := range frames {
				l.call(fn)
			}
		}
	}
}

func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			internal.GetInternalLogger().Error("Recovered panic on run loop", "panic", r, "turn", l.turns.Load())
		}
	}()
	fn()
}
