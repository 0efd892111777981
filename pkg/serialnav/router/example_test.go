package router_test

import (
	"fmt"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/runloop"
)

// Resume types - position state for back navigation
type GameListResume struct {
	SelectedIndex  int
	ScrollPosition int
}

// Example demonstrates a list -> detail -> back flow through a serializing queue.
func Example() {
	loop := runloop.New(0)

	list := serialnav.NewController("game_list")
	detail := serialnav.NewController("game_detail")

	nav := router.NewNavigator(loop, list, router.Options{Frames: 3, Coordinated: true})
	q := serialnav.NewQueue(nav, loop, serialnav.Options{})

	nav.SetResume(list, &GameListResume{SelectedIndex: 2, ScrollPosition: 100})

	q.EnqueuePush(detail, true, func() {
		fmt.Printf("Viewing: %s\n", nav.Snapshot().Top())
	})
	q.EnqueuePop(true, func() {
		resume := nav.Resume(list).(*GameListResume)
		fmt.Printf("Returned to %s: index=%d, scroll=%d\n",
			nav.Snapshot().Top(), resume.SelectedIndex, resume.ScrollPosition)
	})

	loop.RunUntilIdle(100)

	// Output:
	// Viewing: game_detail
	// Returned to game_list: index=2, scroll=100
}

// Example_presentation shows that push and pop act on the stack opened by a
// presented controller.
func Example_presentation() {
	loop := runloop.New(0)

	home := serialnav.NewController("home")
	settings := serialnav.NewController("settings")
	audio := serialnav.NewController("audio")

	nav := router.NewNavigator(loop, home, router.Options{Frames: 2})
	q := serialnav.NewQueue(nav, loop, serialnav.Options{})

	q.EnqueuePresent(settings, true, nil)
	q.EnqueuePush(audio, true, nil)
	q.EnqueuePop(true, nil)
	t := q.EnqueuePop(true, nil)

	loop.RunUntilIdle(100)

	res, _ := t.Result()
	fmt.Println(nav.Snapshot().Top(), res.Status)

	// Output:
	// settings invalid_operation
}
