package serialnav

import "go.uber.org/atomic"

// Controller is the identity of one screen that can be pushed onto or presented
// over the navigation stack. The host toolkit owns what the screen looks like;
// serialnav only compares controllers by pointer.
//
// The modal-in-transition-serializing attribute lives on the controller itself and
// is owned by whoever created it. The Modal Guard only reads and clears it.
type Controller struct {
	Name string

	modal atomic.Bool
}

// NewController creates a controller identity with the given display name.
func NewController(name string) *Controller {
	return &Controller{Name: name}
}

func (c *Controller) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}
