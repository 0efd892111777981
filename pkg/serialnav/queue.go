package serialnav

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"go.uber.org/atomic"
)

// Scheduler posts work onto the single UI timeline. Functions posted while a turn
// is running run on the next turn, in posting order.
type Scheduler interface {
	Post(fn func())
}

// Ticket is the caller's handle on an enqueued transition. It is the side channel
// for the completion status; the descriptor's OnComplete takes no arguments.
type Ticket struct {
	seq    uint64
	done   chan struct{}
	result Result
}

func newTicket(seq uint64) *Ticket {
	return &Ticket{seq: seq, done: make(chan struct{})}
}

func (t *Ticket) resolve(r Result) {
	t.result = r
	close(t.done)
}

// Done is closed once the transition has completed and OnComplete has returned.
func (t *Ticket) Done() <-chan struct{} {
	return t.done
}

// Result returns the completion result, or false while the transition is pending.
func (t *Ticket) Result() (Result, bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return Result{}, false
	}
}

// Wait blocks until the transition completes. Never call it from the loop
// goroutine: the loop is what completes transitions.
func (t *Ticket) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

type entry struct {
	desc      Descriptor
	ticket    *Ticket
	synthetic bool
	closed    bool
}

// Queue serializes transitions against one host. At most one descriptor is
// active; the rest wait in FIFO order and complete in the order they were enqueued.
//
// Enqueue may be called from any goroutine. Everything else happens on the
// Scheduler's timeline, including OnComplete callbacks and observers.
type Queue struct {
	adapter *Adapter
	guard   *Guard
	loop    Scheduler
	opts    Options
	log     *slog.Logger
	seq     atomic.Uint64

	mu        sync.Mutex
	pending   []*entry
	active    *entry
	observers []func(Result)
	closed    bool
}

// NewQueue creates a queue driving host on loop.
func NewQueue(host Host, loop Scheduler, opts Options) *Queue {
	opts = opts.withDefaults()
	return &Queue{
		adapter: NewAdapter(host),
		guard:   NewGuard(opts.Logger),
		loop:    loop,
		opts:    opts,
		log:     opts.Logger,
	}
}

// Enqueue schedules d. It never fails: requests that make no sense for the stack
// at the time they run resolve with an error status instead.
//
// When serializing is disabled process-wide the descriptor skips the queue and
// goes straight to the adapter on the next turn. A closed queue never bypasses:
// the request waits its turn and resolves as forced.
func (q *Queue) Enqueue(d Descriptor) *Ticket {
	// Sequence numbers are taken under the lock so they match queue order.
	q.mu.Lock()
	if !q.closed && !IsSerializingEnabled() {
		e := q.newEntry(d, false)
		q.mu.Unlock()
		q.log.Debug("Serializing disabled, dispatching directly", "op", d.Kind.String(), "target", d.Target.String())
		q.loop.Post(func() { q.run(e, func() {}) })
		return e.ticket
	}

	e := q.newEntry(d, false)
	e.closed = q.closed
	start := q.active == nil
	if start {
		q.active = e
	} else {
		q.pending = append(q.pending, e)
	}
	waiting := len(q.pending)
	q.mu.Unlock()

	q.log.Debug("Transition enqueued",
		"op", d.Kind.String(),
		"target", d.Target.String(),
		"seq", e.ticket.seq,
		"waiting", waiting,
	)

	if start {
		q.loop.Post(func() { q.begin(e) })
	}
	return e.ticket
}

// EnqueuePresent presents target over the visible controller.
func (q *Queue) EnqueuePresent(target *Controller, animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindPresent, Target: target, Animated: animated, OnComplete: onComplete})
}

// EnqueueDismiss dismisses the topmost presented controller.
func (q *Queue) EnqueueDismiss(animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindDismiss, Animated: animated, OnComplete: onComplete})
}

// EnqueuePush pushes target onto the visible navigation stack.
func (q *Queue) EnqueuePush(target *Controller, animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindPush, Target: target, Animated: animated, OnComplete: onComplete})
}

// EnqueuePop pops the top of the visible navigation stack.
func (q *Queue) EnqueuePop(animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindPop, Animated: animated, OnComplete: onComplete})
}

// EnqueuePopToRoot pops the visible navigation stack down to its root.
func (q *Queue) EnqueuePopToRoot(animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindPopToRoot, Animated: animated, OnComplete: onComplete})
}

// EnqueuePopToView pops the visible navigation stack down to target.
func (q *Queue) EnqueuePopToView(target *Controller, animated bool, onComplete func()) *Ticket {
	return q.Enqueue(Descriptor{Kind: KindPopToView, Target: target, Animated: animated, OnComplete: onComplete})
}

// Observe registers fn to receive every completion, guard dismissals included,
// after the descriptor's own OnComplete.
func (q *Queue) Observe(fn func(Result)) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.observers = append(q.observers, fn)
}

// Pending returns how many descriptors are waiting behind the active one.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Active returns the descriptor currently in flight.
func (q *Queue) Active() (Descriptor, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.active == nil {
		return Descriptor{}, false
	}
	return q.active.desc, true
}

// Idle reports whether nothing is active or waiting.
func (q *Queue) Idle() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active == nil && len(q.pending) == 0
}

// CurrentTop returns the host's visible controller.
func (q *Queue) CurrentTop() *Controller {
	return q.adapter.CurrentTop()
}

// Close stops the queue. The active transition runs to completion; waiting and
// later requests then resolve as forced, in enqueue order, without touching the host.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	if len(q.pending) > 0 {
		q.log.Warn("Queue closed with transitions waiting", "dropped", len(q.pending))
	}
}

func (q *Queue) newEntry(d Descriptor, synthetic bool) *entry {
	return &entry{desc: d, synthetic: synthetic, ticket: newTicket(q.seq.Inc())}
}

// begin starts e once it has become active, or drops it if it arrived after Close.
func (q *Queue) begin(e *entry) {
	if e.closed {
		q.drop(e)
		q.advance()
		return
	}
	q.dispatch(e)
}

func (q *Queue) drop(e *entry) {
	q.complete(e, StatusForced, newTransitionError(e.desc.Kind, e.desc.Target, ErrQueueClosed))
}

// dispatch runs e, preceded by any dismissal the Modal Guard injects. The guard
// re-enters dispatch after its dismissal so a newly exposed armed controller is
// dismissed too.
func (q *Queue) dispatch(e *entry) {
	if q.guard.CheckAndInjectDismissal(q, q.adapter.CurrentTop(), e.desc.Animated, func() { q.dispatch(e) }) {
		return
	}
	q.run(e, q.advance)
}

func (q *Queue) runSynthetic(d Descriptor, after func()) {
	q.run(q.newEntry(d, true), after)
}

func (q *Queue) run(e *entry, after func()) {
	q.log.Debug("Dispatching transition",
		"op", e.desc.Kind.String(),
		"target", e.desc.Target.String(),
		"animated", e.desc.Animated,
		"synthetic", e.synthetic,
		"seq", e.ticket.seq,
	)

	det := newDetector(q.loop, q.adapter.Snapshot, e.desc, q.opts, func(status Status, err error) {
		q.complete(e, status, err)
		after()
	})

	defer func() {
		if r := recover(); r != nil {
			q.log.Error("Host panicked during transition", "op", e.desc.Kind.String(), "panic", r)
			err := fmt.Errorf("%w: host panic: %v", ErrForcedCompletion, r)
			det.resolveSoon(StatusForced, newTransitionError(e.desc.Kind, e.desc.Target, err))
		}
	}()

	q.adapter.execute(e.desc, det)
}

func (q *Queue) complete(e *entry, status Status, err error) {
	res := Result{
		Descriptor: e.desc,
		Status:     status,
		Err:        err,
		Synthetic:  e.synthetic,
		Seq:        e.ticket.seq,
	}

	if err != nil {
		q.log.Warn("Transition completed with error",
			"op", e.desc.Kind.String(),
			"status", status.String(),
			"seq", e.ticket.seq,
			"error", err,
		)
	} else {
		q.log.Debug("Transition completed", "op", e.desc.Kind.String(), "seq", e.ticket.seq)
	}

	if e.desc.OnComplete != nil {
		q.invoke("on_complete", e.desc.OnComplete)
	}
	e.ticket.resolve(res)

	q.mu.Lock()
	observers := slices.Clone(q.observers)
	q.mu.Unlock()
	for _, fn := range observers {
		q.invoke("observer", func() { fn(res) })
	}
}

// advance clears the active slot and dispatches the next waiting descriptor.
// Once the queue is closed, waiting descriptors are dropped in order instead.
func (q *Queue) advance() {
	for {
		q.mu.Lock()
		q.active = nil
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return
		}
		next := q.pending[0]
		q.pending[0] = nil
		q.pending = q.pending[1:]
		q.active = next
		closed := q.closed
		q.mu.Unlock()

		if !closed {
			q.dispatch(next)
			return
		}
		q.drop(next)
	}
}

func (q *Queue) invoke(what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("Recovered panic in transition callback", "callback", what, "panic", r)
		}
	}()
	fn()
}
