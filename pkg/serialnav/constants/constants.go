// Package constants defines shared constants and environment switches used
// throughout serialnav.
package constants

import (
	"os"
	"strings"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// DisabledEnvVar turns transition serializing off process-wide when set to a truthy value.
const DisabledEnvVar = "SERIALNAV_DISABLED"

// DebugEnvVar raises the internal logger to debug.
const DebugEnvVar = "SERIALNAV_DEBUG"

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv("ENVIRONMENT") == Development
}

// SerializingDisabledByEnv reports whether DisabledEnvVar asks for the queue to be bypassed.
func SerializingDisabledByEnv() bool {
	switch strings.ToLower(os.Getenv(DisabledEnvVar)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Default timing constants. A turn is one pass of the UI run loop.
const (
	DefaultFrameInterval   = 16 * time.Millisecond // ~60fps, one run loop turn per frame
	DefaultStableTurns     = 2                     // unchanged turns before a polled transition counts as done
	DefaultMaxTurns        = 120                   // turns before a completion is forced (~2s at 60fps)
	DefaultAnimationFrames = 18                    // length of an animated transition in the in-memory host
	DefaultBackCoolDown    = 250 * time.Millisecond
)
