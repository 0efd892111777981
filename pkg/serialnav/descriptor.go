package serialnav

// Kind is the navigation operation a Descriptor requests.
type Kind int

const (
	KindPresent   Kind = iota // Present a controller over the visible one
	KindPush                  // Push onto the visible navigation stack
	KindPop                   // Pop the top of the visible navigation stack
	KindPopToRoot             // Pop back to the root of the visible navigation stack
	KindPopToView             // Pop back to a specific controller
	KindDismiss               // Dismiss the topmost presented controller
)

func (k Kind) String() string {
	switch k {
	case KindPresent:
		return "present"
	case KindPush:
		return "push"
	case KindPop:
		return "pop"
	case KindPopToRoot:
		return "pop_to_root"
	case KindPopToView:
		return "pop_to_view"
	case KindDismiss:
		return "dismiss"
	default:
		return "unknown"
	}
}

func (k Kind) needsTarget() bool {
	return k == KindPresent || k == KindPush || k == KindPopToView
}

// Descriptor describes one requested transition.
// The queue keeps its own copy, so changing a Descriptor after Enqueue has no effect.
type Descriptor struct {
	Kind       Kind
	Target     *Controller // Required for present, push and pop-to-view
	Animated   bool
	OnComplete func() // Optional, fires exactly once
}

// Status tags how a transition finished.
type Status int

const (
	StatusOK               Status = iota // The host reported or settled the transition normally
	StatusInvalidOperation               // Nothing was done, the request made no sense for the current stack
	StatusTargetNotFound                 // Pop-to-view target was not in the visible stack
	StatusForced                         // No completion arrived within the turn bound
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInvalidOperation:
		return "invalid_operation"
	case StatusTargetNotFound:
		return "target_not_found"
	case StatusForced:
		return "forced"
	default:
		return "unknown"
	}
}

// Degraded reports whether the completion was anything other than clean.
func (s Status) Degraded() bool {
	return s != StatusOK
}

// Result is delivered to tickets and observers once a transition completes.
type Result struct {
	Descriptor Descriptor
	Status     Status
	Err        error  // Nil when Status is StatusOK
	Synthetic  bool   // True for dismissals injected by the Modal Guard
	Seq        uint64 // Enqueue order; synthetic dismissals get their own sequence numbers
}
