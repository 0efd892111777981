package serialnav_test

import (
	"testing"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetModal_Idempotent(t *testing.T) {
	g := serialnav.NewGuard(quietLogger())
	c := serialnav.NewController("c")

	assert.False(t, g.IsModal(c))

	g.SetModal(c, true)
	once := g.IsModal(c)
	g.SetModal(c, true)
	assert.Equal(t, once, g.IsModal(c))
	assert.True(t, serialnav.IsModalInTransitionSerializing(c))

	serialnav.SetModalInTransitionSerializing(c, false)
	assert.False(t, g.IsModal(c))

	assert.NotPanics(t, func() {
		g.SetModal(nil, true)
		serialnav.SetModalInTransitionSerializing(nil, true)
	})
	assert.False(t, serialnav.IsModalInTransitionSerializing(nil))
}

func TestGuard_DismissesArmedPresentedTop(t *testing.T) {
	h := newHarness(t, router.Options{}, serialnav.Options{})

	c := serialnav.NewController("c")
	d := serialnav.NewController("d")

	serialnav.SetModalInTransitionSerializing(c, true)
	h.q.EnqueuePresent(c, true, nil)
	h.drain(t)
	require.Equal(t, c, h.q.CurrentTop())

	pushed := 0
	push := h.q.EnqueuePush(d, true, func() { pushed++ })
	h.drain(t)

	assert.Equal(t, []string{"present(c)", "dismiss(c)*", "push(d)"}, h.observed())
	assert.Equal(t, 1, pushed)
	assert.Equal(t, serialnav.StatusOK, result(t, push).Status)
	assert.Equal(t, d, h.q.CurrentTop())
	assert.Equal(t, 0, h.nav.Snapshot().Presented())
	assert.False(t, serialnav.IsModalInTransitionSerializing(c), "guard clears once its dismissal completes")
}

func TestGuard_PopsArmedPushedTop(t *testing.T) {
	h := newHarness(t, router.Options{Coordinated: true}, serialnav.Options{})

	c := serialnav.NewController("c")
	d := serialnav.NewController("d")

	h.q.EnqueuePush(c, true, nil)
	h.drain(t)
	serialnav.SetModalInTransitionSerializing(c, true)

	h.q.EnqueuePush(d, true, nil)
	h.drain(t)

	assert.Equal(t, []string{"push(c)", "pop(c)*", "push(d)"}, h.observed())
	assert.Equal(t, []*serialnav.Controller{h.home, d}, h.nav.Snapshot().Layers[0])
	assert.False(t, serialnav.IsModalInTransitionSerializing(c))
}

func TestGuard_DismissesEveryArmedLayer(t *testing.T) {
	h := newHarness(t, router.Options{}, serialnav.Options{})

	outer := serialnav.NewController("outer")
	inner := serialnav.NewController("inner")
	next := serialnav.NewController("next")

	serialnav.SetModalInTransitionSerializing(outer, true)
	h.q.EnqueuePresent(outer, true, nil)
	h.drain(t)

	// Presenting inner dismisses outer first; arm inner only afterwards.
	h.q.EnqueuePresent(inner, true, func() {
		serialnav.SetModalInTransitionSerializing(inner, true)
	})
	h.drain(t)
	require.Equal(t, []string{"present(outer)", "dismiss(outer)*", "present(inner)"}, h.observed())

	h.q.EnqueuePush(next, false, nil)
	h.drain(t)

	assert.Equal(t, []string{
		"present(outer)", "dismiss(outer)*", "present(inner)",
		"dismiss(inner)*", "push(next)",
	}, h.observed())
	assert.Equal(t, next, h.q.CurrentTop())
}

func TestGuard_RecursesThroughNestedArmedControllers(t *testing.T) {
	h := newHarness(t, router.Options{Coordinated: true}, serialnav.Options{})

	a := serialnav.NewController("a")
	b := serialnav.NewController("b")
	m := serialnav.NewController("m")

	h.q.EnqueuePush(a, true, nil)
	h.q.EnqueuePresent(m, true, nil)
	h.q.EnqueuePush(b, true, nil)
	h.drain(t)
	require.Equal(t, b, h.q.CurrentTop())

	// b is pushed over m, which is presented over a.
	serialnav.SetModalInTransitionSerializing(b, true)
	serialnav.SetModalInTransitionSerializing(m, true)
	serialnav.SetModalInTransitionSerializing(a, true)

	h.q.EnqueuePopToRoot(true, nil)
	h.drain(t)

	assert.Equal(t, []string{
		"push(a)", "present(m)", "push(b)",
		"pop(b)*", "dismiss(m)*", "pop(a)*", "pop_to_root(<nil>)",
	}, h.observed())
	assert.Equal(t, h.home, h.q.CurrentTop())
}

func TestGuard_ArmedRootIsCleared(t *testing.T) {
	h := newHarness(t, router.Options{}, serialnav.Options{})

	serialnav.SetModalInTransitionSerializing(h.home, true)
	next := serialnav.NewController("next")
	h.q.EnqueuePush(next, true, nil)
	h.drain(t)

	assert.Equal(t, []string{"push(next)"}, h.observed())
	assert.False(t, serialnav.IsModalInTransitionSerializing(h.home))
	assert.Equal(t, next, h.q.CurrentTop())
}

func TestGuard_ArmedControllerBelowTopIsLeftAlone(t *testing.T) {
	h := newHarness(t, router.Options{}, serialnav.Options{})

	c := serialnav.NewController("c")
	d := serialnav.NewController("d")
	e := serialnav.NewController("e")

	serialnav.SetModalInTransitionSerializing(c, true)
	h.q.EnqueuePush(c, false, nil)
	h.drain(t)
	serialnav.SetModalInTransitionSerializing(c, false)
	h.q.EnqueuePush(d, false, nil)
	h.drain(t)
	serialnav.SetModalInTransitionSerializing(c, true)

	h.q.EnqueuePush(e, false, nil)
	h.drain(t)

	assert.Equal(t, []string{"push(c)", "push(d)", "push(e)"}, h.observed())
	assert.True(t, serialnav.IsModalInTransitionSerializing(c))
}
