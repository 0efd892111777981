package serialnav

import (
	"log/slog"

	"go.uber.org/atomic"
)

type detectorMode int

const (
	modeNative        detectorMode = iota // Wait for the host's hook, bounded
	modeStabilization                     // Poll snapshots until they stop changing, bounded
)

// detector resolves exactly one descriptor. It is a one-shot latch: whichever of
// the native hook, the stabilization poll, the turn bound or an immediate
// resolution gets there first wins, and everything after it is ignored.
//
// All methods except nativeHook run on the loop.
type detector struct {
	loop     Scheduler
	snapshot func() Snapshot
	desc     Descriptor
	log      *slog.Logger

	stableTurns int
	maxTurns    int

	fired  atomic.Bool
	onFire func(Status, error)

	mode   detectorMode
	turns  int
	stable int
	last   Snapshot
}

func newDetector(loop Scheduler, snapshot func() Snapshot, desc Descriptor, opts Options, onFire func(Status, error)) *detector {
	return &detector{
		loop:        loop,
		snapshot:    snapshot,
		desc:        desc,
		log:         opts.Logger,
		stableTurns: opts.StableTurns,
		maxTurns:    opts.MaxTurns,
		onFire:      onFire,
	}
}

func (d *detector) fire(status Status, err error) bool {
	if !d.fired.CompareAndSwap(false, true) {
		return false
	}
	d.onFire(status, err)
	return true
}

// nativeHook returns the callback handed to the host. It may be called from any
// goroutine, any number of times.
func (d *detector) nativeHook() func() {
	return func() {
		d.loop.Post(func() {
			if !d.fire(StatusOK, nil) {
				d.log.Debug("Ignoring late native completion", "op", d.desc.Kind.String(), "target", d.desc.Target.String())
			}
		})
	}
}

// resolveSoon fires on the next turn. Firing is never synchronous with execute
// so completion callbacks never run inside the dispatch that started them.
func (d *detector) resolveSoon(status Status, err error) {
	d.loop.Post(func() { d.fire(status, err) })
}

func (d *detector) watchNative() {
	d.mode = modeNative
	d.loop.Post(d.tick)
}

func (d *detector) watchStabilization() {
	d.mode = modeStabilization
	d.last = d.snapshot()
	d.loop.Post(d.tick)
}

func (d *detector) tick() {
	if d.fired.Load() {
		return
	}
	d.turns++

	if d.mode == modeStabilization {
		current := d.snapshot()
		if !current.InTransition && current.settledEqual(d.last) {
			d.stable++
		} else {
			d.stable = 0
		}
		d.last = current

		if d.stable >= d.stableTurns {
			d.fire(StatusOK, nil)
			return
		}
	}

	if d.turns >= d.maxTurns {
		d.log.Warn("Forcing transition completion",
			"op", d.desc.Kind.String(),
			"target", d.desc.Target.String(),
			"turns", d.turns,
		)
		d.fire(StatusForced, newTransitionError(d.desc.Kind, d.desc.Target, ErrForcedCompletion))
		return
	}

	d.loop.Post(d.tick)
}
