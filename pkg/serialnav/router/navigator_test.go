package router

import (
	"testing"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/runloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(cs []*serialnav.Controller) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func TestNavigator_TopologyChangesImmediately(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	a := serialnav.NewController("a")
	b := serialnav.NewController("b")
	m := serialnav.NewController("modal")

	nav := NewNavigator(loop, home, Options{Frames: 3})

	nav.Push(a, false)
	nav.Push(b, false)
	snap := nav.Snapshot()
	assert.Equal(t, []string{"home", "a", "b"}, names(snap.Layers[0]))
	assert.False(t, snap.InTransition)

	nav.Present(m, true, nil)
	snap = nav.Snapshot()
	assert.Equal(t, m, snap.Top())
	assert.Equal(t, 1, snap.Presented())
	assert.True(t, snap.InTransition)

	loop.RunUntilIdle(10)
	assert.False(t, nav.Snapshot().InTransition)

	nav.Dismiss(false, nil)
	nav.PopTo(a, false)
	assert.Equal(t, []string{"home", "a"}, names(nav.Snapshot().Layers[0]))

	nav.PopToRoot(false)
	assert.Equal(t, home, nav.Snapshot().Top())
	assert.Equal(t, 6, nav.Operations())
}

func TestNavigator_AnimationRunsForFrames(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	m := serialnav.NewController("modal")
	nav := NewNavigator(loop, home, Options{Frames: 4})

	done := 0
	nav.Present(m, true, func() { done++ })

	tr, ok := nav.Transition()
	require.True(t, ok)
	assert.Equal(t, home, tr.From)
	assert.Equal(t, m, tr.To)
	assert.Equal(t, 0.0, tr.Progress())

	loop.Turn()
	loop.Turn()
	tr, _ = nav.Transition()
	assert.Equal(t, 0.5, tr.Progress())
	assert.Equal(t, 0, done)

	loop.Turn()
	loop.Turn()
	_, ok = nav.Transition()
	assert.False(t, ok)
	assert.Equal(t, 1, done)
}

func TestNavigator_Coordinator(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	a := serialnav.NewController("a")

	plain := NewNavigator(loop, home, Options{Frames: 2})
	plain.Push(a, true)
	assert.False(t, plain.NotifyWhenTransitionEnds(func() {}))

	coordinated := NewNavigator(loop, serialnav.NewController("root"), Options{Frames: 2, Coordinated: true})
	assert.False(t, coordinated.NotifyWhenTransitionEnds(func() {}), "no transition running")

	coordinated.Push(serialnav.NewController("b"), true)
	ended := false
	require.True(t, coordinated.NotifyWhenTransitionEnds(func() { ended = true }))

	loop.RunUntilIdle(10)
	assert.True(t, ended)
}

func TestNavigator_OverlapSnapsPreviousAnimation(t *testing.T) {
	loop := runloop.New(0)
	nav := NewNavigator(loop, serialnav.NewController("home"), Options{Frames: 5})

	first := false
	nav.Present(serialnav.NewController("m1"), true, func() { first = true })
	nav.Present(serialnav.NewController("m2"), true, nil)

	assert.True(t, first)
	assert.Equal(t, 1, nav.Overlaps())
	assert.Equal(t, 2, nav.Snapshot().Presented())
}

func TestNavigator_GapSimulation(t *testing.T) {
	loop := runloop.New(0)

	dropped := NewNavigator(loop, serialnav.NewController("home"), Options{Frames: 1, DropCompletions: true})
	called := false
	dropped.Present(serialnav.NewController("m"), false, func() { called = true })
	loop.RunUntilIdle(10)
	assert.False(t, called)

	stalled := NewNavigator(loop, serialnav.NewController("home"), Options{Frames: 1, Stall: true})
	stalled.Push(serialnav.NewController("a"), true)
	loop.RunUntilIdle(10)
	assert.True(t, stalled.Snapshot().InTransition)
}

func TestNavigator_RootIsNeverPopped(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	nav := NewNavigator(loop, home, Options{})

	nav.Pop(false)
	nav.PopToRoot(false)
	nav.Dismiss(false, nil)
	nav.PopTo(serialnav.NewController("stranger"), false)

	assert.Equal(t, home, nav.Snapshot().Top())
	assert.Equal(t, 0, nav.Operations())
}

func TestNavigator_Resume(t *testing.T) {
	loop := runloop.New(0)
	home := serialnav.NewController("home")
	nav := NewNavigator(loop, home, Options{})

	assert.True(t, nav.SetResume(home, 7))
	assert.Equal(t, 7, nav.Resume(home))
	assert.False(t, nav.SetResume(serialnav.NewController("other"), 1))
	assert.Nil(t, nav.Resume(serialnav.NewController("other")))
}

func TestStack_Truncate(t *testing.T) {
	a := serialnav.NewController("a")
	b := serialnav.NewController("b")
	c := serialnav.NewController("c")

	s := NewStack(a)
	s.Push(b, nil)
	s.Push(c, "resume")

	removed := s.Truncate(1)
	require.Len(t, removed, 2)
	assert.Equal(t, c, removed[0].Controller)
	assert.Equal(t, "resume", removed[0].Resume)
	assert.Equal(t, b, removed[1].Controller)
	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.Truncate(5))

	assert.Len(t, s.Truncate(-1), 1)
	assert.True(t, s.IsEmpty())
	assert.Nil(t, s.Pop())
	assert.Nil(t, s.Peek())
	assert.Equal(t, -1, s.IndexOf(a))
}
