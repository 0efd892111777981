package serialnav

// Snapshot is a point-in-time copy of the host's navigation topology.
//
// Layers[0] is the root navigation stack. Every presented controller opens a new
// layer whose first entry is the presented controller; push and pop act on the
// last layer.
type Snapshot struct {
	Layers       [][]*Controller
	InTransition bool // The host is animating
}

// Top returns the visible, frontmost controller, or nil for an empty host.
func (s Snapshot) Top() *Controller {
	layer := s.visible()
	if len(layer) == 0 {
		return nil
	}
	return layer[len(layer)-1]
}

// Depth returns the number of controllers in the visible navigation stack.
func (s Snapshot) Depth() int {
	return len(s.visible())
}

// Presented returns how many controllers are presented over the root stack.
func (s Snapshot) Presented() int {
	if len(s.Layers) == 0 {
		return 0
	}
	return len(s.Layers) - 1
}

// Contains reports whether c is anywhere in the topology.
func (s Snapshot) Contains(c *Controller) bool {
	for _, layer := range s.Layers {
		for _, entry := range layer {
			if entry == c {
				return true
			}
		}
	}
	return false
}

// InVisibleStack reports whether c is part of the visible navigation stack.
func (s Snapshot) InVisibleStack(c *Controller) bool {
	for _, entry := range s.visible() {
		if entry == c {
			return true
		}
	}
	return false
}

// IsPresentedRoot reports whether c opened the topmost presented layer.
func (s Snapshot) IsPresentedRoot(c *Controller) bool {
	if s.Presented() == 0 {
		return false
	}
	layer := s.visible()
	return len(layer) > 0 && layer[0] == c
}

func (s Snapshot) visible() []*Controller {
	if len(s.Layers) == 0 {
		return nil
	}
	return s.Layers[len(s.Layers)-1]
}

// settledEqual compares the parts of a snapshot the detector polls for stability.
func (s Snapshot) settledEqual(o Snapshot) bool {
	return s.Top() == o.Top() &&
		s.Depth() == o.Depth() &&
		len(s.Layers) == len(o.Layers) &&
		s.InTransition == o.InTransition
}

// Host is the toolkit side of the Stack Adapter. Implementations mutate their live
// topology immediately and animate afterwards.
//
// Present and Dismiss carry a native completion hook. The navigation-stack
// operations do not; hosts that can report their end implement Coordinator.
type Host interface {
	Snapshot() Snapshot
	Present(target *Controller, animated bool, done func())
	Dismiss(animated bool, done func())
	Push(target *Controller, animated bool)
	Pop(animated bool)
	PopToRoot(animated bool)
	PopTo(target *Controller, animated bool)
}

// Coordinator is implemented by hosts that can report when the transition they
// are currently running ends. NotifyWhenTransitionEnds returns false when no
// transition is running, in which case fn is never called.
type Coordinator interface {
	NotifyWhenTransitionEnds(fn func()) bool
}

// Adapter is the only component that mutates the host topology. The queue hands
// it one descriptor at a time together with the detector that will resolve it.
type Adapter struct {
	host Host
}

// NewAdapter wraps a host toolkit.
func NewAdapter(host Host) *Adapter {
	return &Adapter{host: host}
}

// CurrentTop returns the visible, frontmost controller.
func (a *Adapter) CurrentTop() *Controller {
	return a.host.Snapshot().Top()
}

// Snapshot returns the host's current topology.
func (a *Adapter) Snapshot() Snapshot {
	return a.host.Snapshot()
}

// validate checks a descriptor against the current topology without touching it.
// A nil error with noop=true means the request is already satisfied.
func (a *Adapter) validate(d Descriptor, snap Snapshot) (noop bool, err error) {
	if d.Kind.needsTarget() && d.Target == nil {
		return false, newTransitionError(d.Kind, nil, ErrInvalidOperation)
	}

	switch d.Kind {
	case KindPresent, KindPush:
		if snap.Contains(d.Target) {
			return false, newTransitionError(d.Kind, d.Target, ErrInvalidOperation)
		}
	case KindPop:
		if snap.Depth() <= 1 {
			return false, newTransitionError(d.Kind, nil, ErrInvalidOperation)
		}
	case KindPopToRoot:
		return snap.Depth() <= 1, nil
	case KindPopToView:
		if !snap.InVisibleStack(d.Target) {
			return false, newTransitionError(d.Kind, d.Target, ErrTargetNotFound)
		}
		return snap.Top() == d.Target, nil
	case KindDismiss:
		if snap.Presented() == 0 {
			return false, newTransitionError(d.Kind, nil, ErrInvalidOperation)
		}
	default:
		return false, newTransitionError(d.Kind, d.Target, ErrInvalidOperation)
	}
	return false, nil
}

// execute validates d and hands it to the host, wiring the native hook, if any,
// into det. Rejected and no-op requests resolve through det without touching the host.
func (a *Adapter) execute(d Descriptor, det *detector) {
	noop, err := a.validate(d, a.host.Snapshot())
	if err != nil {
		det.resolveSoon(statusOf(err), err)
		return
	}
	if noop {
		det.resolveSoon(StatusOK, nil)
		return
	}

	switch d.Kind {
	case KindPresent:
		a.host.Present(d.Target, d.Animated, det.nativeHook())
		det.watchNative()
	case KindDismiss:
		a.host.Dismiss(d.Animated, det.nativeHook())
		det.watchNative()
	case KindPush:
		a.host.Push(d.Target, d.Animated)
		a.observeStackTransition(d, det)
	case KindPop:
		a.host.Pop(d.Animated)
		a.observeStackTransition(d, det)
	case KindPopToRoot:
		a.host.PopToRoot(d.Animated)
		a.observeStackTransition(d, det)
	case KindPopToView:
		a.host.PopTo(d.Target, d.Animated)
		a.observeStackTransition(d, det)
	}
}

// observeStackTransition picks a completion strategy for operations that have no
// native hook of their own.
func (a *Adapter) observeStackTransition(d Descriptor, det *detector) {
	if coord, ok := a.host.(Coordinator); ok && coord.NotifyWhenTransitionEnds(det.nativeHook()) {
		det.watchNative()
		return
	}
	if !d.Animated {
		det.resolveSoon(StatusOK, nil)
		return
	}
	det.watchStabilization()
}
