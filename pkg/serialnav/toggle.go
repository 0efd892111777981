package serialnav

import (
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/constants"
	"go.uber.org/atomic"
)

var serializing = atomic.NewBool(!constants.SerializingDisabledByEnv())

// IsSerializingEnabled returns whether transition serializing is enabled.
// It starts enabled unless SERIALNAV_DISABLED is set.
func IsSerializingEnabled() bool {
	return serializing.Load()
}

// SetSerializingEnabled switches serializing on or off for every queue in the
// process. While off, Enqueue dispatches straight to the host and makes no
// ordering guarantees. Descriptors already waiting still drain in order.
func SetSerializingEnabled(enabled bool) {
	serializing.Store(enabled)
}
