package main

import (
	"testing"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/runloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	nav := router.NewNavigator(loop, home, router.Options{Frames: 2, Coordinated: true})
	q := serialnav.NewQueue(nav, loop, serialnav.Options{})

	var results []serialnav.Result
	q.Observe(func(r serialnav.Result) { results = append(results, r) })

	last := script(q, nav)
	_, idle := loop.RunUntilIdle(10_000)
	require.True(t, idle)

	r, ok := last.Result()
	require.True(t, ok)
	assert.Equal(t, serialnav.StatusInvalidOperation, r.Status, "the final pop runs on the root")
	assert.Equal(t, home, q.CurrentTop())
	assert.Zero(t, nav.Overlaps())

	var ops []string
	for _, r := range results {
		op := r.Descriptor.Kind.String() + ":" + r.Status.String()
		if r.Synthetic {
			op += "*"
		}
		ops = append(ops, op)
	}
	assert.Equal(t, []string{
		"push:ok", "push:ok", "present:ok",
		"dismiss:ok*", "push:ok",
		"pop_to_view:ok", "pop_to_view:target_not_found",
		"pop_to_root:ok", "pop:invalid_operation",
	}, ops)
}
