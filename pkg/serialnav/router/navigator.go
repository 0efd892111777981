package router

import (
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/internal"
)

// Options configures a Navigator.
type Options struct {
	Frames          int          // Turns an animated transition takes
	Coordinated     bool         // Report stack transitions through NotifyWhenTransitionEnds
	DropCompletions bool         // Never call completion hooks, like a toolkit that forgets to
	Stall           bool         // Animations never finish
	Logger          *slog.Logger // Defaults to the internal logger
}

// Transition describes the animation a Navigator is running.
type Transition struct {
	Kind   serialnav.Kind
	From   *serialnav.Controller // Controller that was visible when the transition began
	To     *serialnav.Controller // Controller visible once it ends
	Frame  int
	Frames int
}

// Progress returns how far along the animation is, from 0 to 1.
func (t Transition) Progress() float64 {
	if t.Frames <= 0 {
		return 1
	}
	return float64(t.Frame) / float64(t.Frames)
}

type animation struct {
	Transition
	gen  uint64
	done []func()
}

// Navigator is an in-memory host toolkit: a root navigation stack plus one stack
// per presented controller, with frame-counted animations driven by the run loop.
// The topology changes as soon as an operation is called; the animation that
// follows only delays the completion hooks.
//
// Navigator implements serialnav.Host and, when Options.Coordinated is set,
// serialnav.Coordinator.
type Navigator struct {
	loop serialnav.Scheduler
	opts Options
	log  *slog.Logger

	mu         sync.Mutex
	layers     []*Stack
	anim       *animation
	gen        uint64
	overlaps   int
	operations int
}

// NewNavigator creates a navigator whose root stack holds root.
func NewNavigator(loop serialnav.Scheduler, root *serialnav.Controller, opts Options) *Navigator {
	if opts.Frames <= 0 {
		opts.Frames = constants.DefaultAnimationFrames
	}
	if opts.Logger == nil {
		opts.Logger = internal.GetInternalLogger()
	}
	return &Navigator{
		loop:   loop,
		opts:   opts,
		log:    opts.Logger,
		layers: []*Stack{NewStack(root)},
	}
}

// Snapshot implements serialnav.Host.
func (n *Navigator) Snapshot() serialnav.Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()

	layers := make([][]*serialnav.Controller, len(n.layers))
	for i, s := range n.layers {
		layers[i] = s.Controllers()
	}
	return serialnav.Snapshot{Layers: layers, InTransition: n.anim != nil}
}

// Transition returns the running animation, if any.
func (n *Navigator) Transition() (Transition, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.anim == nil {
		return Transition{}, false
	}
	return n.anim.Transition, true
}

// Overlaps returns how many operations started while another was still animating.
// With a serializing queue in front of the navigator this stays zero.
func (n *Navigator) Overlaps() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.overlaps
}

// Operations returns how many operations reached the navigator.
func (n *Navigator) Operations() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.operations
}

// SetResume stores resume state for c so the screen can restore itself when it
// is visible again. Returns false if c is not on any stack.
func (n *Navigator) SetResume(c *serialnav.Controller, resume any) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.layers {
		if e := s.Entry(c); e != nil {
			e.Resume = resume
			return true
		}
	}
	return false
}

// Resume returns the resume state stored for c.
func (n *Navigator) Resume(c *serialnav.Controller) any {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.layers {
		if e := s.Entry(c); e != nil {
			return e.Resume
		}
	}
	return nil
}

// Present opens a new stack with target as its root, over the visible controller.
func (n *Navigator) Present(target *serialnav.Controller, animated bool, done func()) {
	n.mu.Lock()
	from := n.topLocked()
	n.layers = append(n.layers, NewStack(target))
	n.begin(serialnav.KindPresent, from, target, animated, done)
}

// Dismiss closes the topmost presented stack.
func (n *Navigator) Dismiss(animated bool, done func()) {
	n.mu.Lock()
	if len(n.layers) <= 1 {
		n.mu.Unlock()
		n.log.Warn("Dismiss with nothing presented")
		return
	}
	from := n.topLocked()
	n.layers = n.layers[:len(n.layers)-1]
	n.begin(serialnav.KindDismiss, from, n.topLocked(), animated, done)
}

// Push pushes target onto the visible stack.
func (n *Navigator) Push(target *serialnav.Controller, animated bool) {
	n.mu.Lock()
	from := n.topLocked()
	n.visibleLocked().Push(target, nil)
	n.begin(serialnav.KindPush, from, target, animated, nil)
}

// Pop pops the visible stack. The root of a stack is never popped.
func (n *Navigator) Pop(animated bool) {
	n.popTo(serialnav.KindPop, n.visibleDepth()-1, animated)
}

// PopToRoot pops the visible stack down to its root.
func (n *Navigator) PopToRoot(animated bool) {
	n.popTo(serialnav.KindPopToRoot, 1, animated)
}

// PopTo pops the visible stack down to target.
func (n *Navigator) PopTo(target *serialnav.Controller, animated bool) {
	n.mu.Lock()
	i := n.visibleLocked().IndexOf(target)
	n.mu.Unlock()
	if i < 0 {
		n.log.Warn("Pop to a controller that is not on the visible stack", "target", target.String())
		return
	}
	n.popTo(serialnav.KindPopToView, i+1, animated)
}

// NotifyWhenTransitionEnds implements serialnav.Coordinator.
func (n *Navigator) NotifyWhenTransitionEnds(fn func()) bool {
	if !n.opts.Coordinated {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.anim == nil {
		return false
	}
	n.anim.done = append(n.anim.done, fn)
	return true
}

func (n *Navigator) visibleDepth() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visibleLocked().Len()
}

func (n *Navigator) popTo(kind serialnav.Kind, keep int, animated bool) {
	n.mu.Lock()
	if keep < 1 {
		keep = 1
	}
	from := n.topLocked()
	if removed := n.visibleLocked().Truncate(keep); len(removed) == 0 {
		n.mu.Unlock()
		n.log.Warn("Pop with nothing to pop", "op", kind.String())
		return
	}
	n.begin(kind, from, n.topLocked(), animated, nil)
}

// begin starts the animation for an operation whose mutation is already applied.
// Called with n.mu held; releases it.
func (n *Navigator) begin(kind serialnav.Kind, from, to *serialnav.Controller, animated bool, done func()) {
	n.operations++

	// A new operation while animating snaps the old animation to its end.
	var snapped []func()
	if n.anim != nil {
		n.overlaps++
		snapped = n.anim.done
		n.anim = nil
		n.log.Warn("Transition started while another was animating", "op", kind.String())
	}

	var hooks []func()
	if done != nil {
		hooks = append(hooks, done)
	}

	if !animated {
		n.mu.Unlock()
		n.finish(snapped)
		n.finish(hooks)
		return
	}

	n.gen++
	gen := n.gen
	n.anim = &animation{
		Transition: Transition{Kind: kind, From: from, To: to, Frames: n.opts.Frames},
		gen:        gen,
		done:       hooks,
	}
	n.mu.Unlock()

	n.finish(snapped)
	n.loop.Post(func() { n.step(gen) })
}

func (n *Navigator) step(gen uint64) {
	n.mu.Lock()
	a := n.anim
	if a == nil || a.gen != gen || n.opts.Stall {
		n.mu.Unlock()
		return
	}

	a.Frame++
	if a.Frame < a.Frames {
		n.mu.Unlock()
		n.loop.Post(func() { n.step(gen) })
		return
	}

	n.anim = nil
	done := a.done
	n.mu.Unlock()

	n.finish(done)
}

func (n *Navigator) finish(hooks []func()) {
	if n.opts.DropCompletions {
		return
	}
	for _, fn := range hooks {
		fn()
	}
}

func (n *Navigator) visibleLocked() *Stack {
	return n.layers[len(n.layers)-1]
}

func (n *Navigator) topLocked() *serialnav.Controller {
	if e := n.visibleLocked().Peek(); e != nil {
		return e.Controller
	}
	return nil
}
