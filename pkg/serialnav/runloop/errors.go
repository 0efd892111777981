package runloop

import "errors"

// ErrAlreadyRunning is returned by Run when another goroutine is already running the loop.
var ErrAlreadyRunning = errors.New("runloop: already running")
