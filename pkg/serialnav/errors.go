package serialnav

import (
	"errors"
	"fmt"
)

// Sentinel errors carried in Result.Err. None of them are ever returned from
// Enqueue; the queue always resolves the request and keeps draining.
var (
	// ErrInvalidOperation indicates the request made no sense for the current
	// stack, e.g. popping the root or dismissing when nothing is presented.
	ErrInvalidOperation = errors.New("invalid transition")

	// ErrTargetNotFound indicates a pop-to-view target absent from the visible stack.
	ErrTargetNotFound = errors.New("transition target not found")

	// ErrForcedCompletion indicates the host never signalled completion in time.
	ErrForcedCompletion = errors.New("transition completion forced")

	// ErrQueueClosed indicates the queue was closed before the request could run.
	ErrQueueClosed = errors.New("transition queue closed")
)

// TransitionError records which operation failed and why.
type TransitionError struct {
	Op     Kind        // Operation that failed
	Target *Controller // Target of the operation, if any
	Err    error       // Underlying sentinel
}

func (e *TransitionError) Error() string {
	if e.Target != nil {
		return fmt.Sprintf("serialnav: %s(%s): %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("serialnav: %s: %v", e.Op, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

func newTransitionError(op Kind, target *Controller, err error) *TransitionError {
	return &TransitionError{Op: op, Target: target, Err: err}
}

// IsInvalidOperation checks if an error reports an invalid transition request.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsTargetNotFound checks if an error reports a missing pop-to-view target.
func IsTargetNotFound(err error) bool {
	return errors.Is(err, ErrTargetNotFound)
}

// IsForced checks if an error reports a forced completion.
func IsForced(err error) bool {
	return errors.Is(err, ErrForcedCompletion) || errors.Is(err, ErrQueueClosed)
}

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case IsTargetNotFound(err):
		return StatusTargetNotFound
	case IsInvalidOperation(err):
		return StatusInvalidOperation
	default:
		return StatusForced
	}
}
