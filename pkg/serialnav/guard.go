package serialnav

import "log/slog"

// Guard implements the modal-in-transition-serializing behaviour: a controller
// that is armed and still on top when the next transition is about to run gets
// dismissed first.
//
// Per controller: Clear -> SetModal(true) -> Armed -> injected dismissal completes -> Clear.
type Guard struct {
	log *slog.Logger
}

// NewGuard creates a guard that logs to log.
func NewGuard(log *slog.Logger) *Guard {
	return &Guard{log: log}
}

// SetModal arms or clears c. Setting the same value twice is a no-op.
func (g *Guard) SetModal(c *Controller, flag bool) {
	if c == nil {
		return
	}
	if c.modal.Swap(flag) != flag {
		g.log.Debug("Modal guard changed", "controller", c.String(), "armed", flag)
	}
}

// IsModal reports whether c is armed.
func (g *Guard) IsModal(c *Controller) bool {
	return c != nil && c.modal.Load()
}

// CheckAndInjectDismissal runs a dismissal of top through q when top is armed and
// reports whether it did. resume runs after the dismissal completes, on the loop.
//
// Presented controllers are dismissed, pushed ones are popped. An armed root
// cannot be removed; it is cleared and nothing is injected.
func (g *Guard) CheckAndInjectDismissal(q *Queue, top *Controller, animated bool, resume func()) bool {
	if !g.IsModal(top) {
		return false
	}

	snap := q.adapter.Snapshot()
	var kind Kind
	switch {
	case snap.IsPresentedRoot(top):
		kind = KindDismiss
	case snap.Top() == top && snap.Depth() > 1:
		kind = KindPop
	default:
		g.log.Warn("Armed controller cannot be dismissed, clearing", "controller", top.String())
		g.SetModal(top, false)
		return false
	}

	g.log.Debug("Injecting dismissal for armed controller", "controller", top.String(), "op", kind.String())
	q.runSynthetic(Descriptor{
		Kind:       kind,
		Target:     top,
		Animated:   animated,
		OnComplete: func() { g.SetModal(top, false) },
	}, resume)
	return true
}

// SetModalInTransitionSerializing arms or clears the controller's guard flag.
func SetModalInTransitionSerializing(c *Controller, flag bool) {
	if c == nil {
		return
	}
	c.modal.Store(flag)
}

// IsModalInTransitionSerializing reports whether c is armed.
func IsModalInTransitionSerializing(c *Controller) bool {
	return c != nil && c.modal.Load()
}
