// Package serialnav serializes navigation transitions on a controller stack.
//
// Present, push, pop, pop-to-root, pop-to-view and dismiss requests may come from
// anywhere; a Queue runs them one at a time against a Host, in the order they were
// enqueued, and resolves every one of them, even when the host never reports that
// its animation finished.
//
// # Basic Usage
//
//	loop := runloop.New(constants.DefaultFrameInterval)
//	nav := router.NewNavigator(loop, home, router.Options{Coordinated: true})
//	q := serialnav.NewQueue(nav, loop, serialnav.Options{})
//
//	settings := serialnav.NewController("settings")
//	detail := serialnav.NewController("detail")
//	q.EnqueuePresent(settings, true, nil)
//	q.EnqueuePush(detail, true, func() {
//	    // runs after settings finished presenting and detail finished pushing
//	})
//
//	go loop.Run(ctx)
//
// # Completion
//
// Present and dismiss use the host's own completion hook. Stack operations use the
// host's Coordinator if it has one, fire on the next turn when not animated, and
// otherwise wait until the host's snapshot stops changing. Whatever the strategy,
// a transition that has not completed after Options.MaxTurns turns is completed
// with StatusForced so the queue never stalls.
//
// # Modal Guard
//
// A controller armed with SetModalInTransitionSerializing is dismissed (or popped)
// automatically when it is still on top as the next transition is about to run.
package serialnav
