// Package router provides an in-memory navigation host for serialnav.
//
// A Navigator keeps a root Stack plus one Stack per presented controller and
// animates every operation over a fixed number of run loop turns. It is what the
// demo renders and what the serialnav tests run against, and its Options can
// reproduce the toolkit gaps the completion detector has to cope with.
//
// # Basic Usage
//
//	loop := runloop.New(0)
//	home := serialnav.NewController("home")
//
//	nav := router.NewNavigator(loop, home, router.Options{
//	    Frames:      12,   // each animated transition lasts 12 turns
//	    Coordinated: true, // push/pop report their end natively
//	})
//
//	q := serialnav.NewQueue(nav, loop, serialnav.Options{})
//	q.EnqueuePush(list, true, nil)
//
// # Toolkit Gaps
//
// Without Coordinated, animated push and pop have no completion hook and the
// detector falls back to polling Snapshot. DropCompletions swallows every hook,
// and Stall leaves the animation running forever, both of which end in forced
// completions.
//
// # Resume State
//
// Screens can store resume state (like scroll position) on their stack entry with
// SetResume and read it back with Resume once they are visible again.
package router
