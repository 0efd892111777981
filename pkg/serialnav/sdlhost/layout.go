package sdlhost

import (
	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/veandco/go-sdl2/sdl"
)

// parallax is how far the card underneath moves, relative to the incoming card.
const parallax = 3

// Card is one controller to draw, back to front.
type Card struct {
	Controller *serialnav.Controller
	Rect       sdl.Rect
	Scrim      bool // Dim this card, something is presented over it
}

// Scene is what the renderer needs from a host.
type Scene interface {
	Snapshot() serialnav.Snapshot
	Transition() (router.Transition, bool)
}

// Layout positions the visible cards for a w x h window. At rest only the top card
// is drawn; mid-transition the outgoing and incoming cards slide.
func Layout(scene Scene, w, h int32) []Card {
	snap := scene.Snapshot()
	full := sdl.Rect{X: 0, Y: 0, W: w, H: h}

	tr, animating := scene.Transition()
	if !animating {
		if top := snap.Top(); top != nil {
			return []Card{{Controller: top, Rect: full}}
		}
		return nil
	}

	p := tr.Progress()
	offset := func(span int32, fraction float64) int32 {
		return int32(float64(span) * fraction)
	}

	from, to := full, full
	switch tr.Kind {
	case serialnav.KindPush:
		from.X = -offset(w, p) / parallax
		to.X = w - offset(w, p)
		return []Card{{Controller: tr.From, Rect: from}, {Controller: tr.To, Rect: to}}
	case serialnav.KindPop, serialnav.KindPopToRoot, serialnav.KindPopToView:
		to.X = -offset(w, 1-p) / parallax
		from.X = offset(w, p)
		return []Card{{Controller: tr.To, Rect: to}, {Controller: tr.From, Rect: from}}
	case serialnav.KindPresent:
		to.Y = h - offset(h, p)
		return []Card{{Controller: tr.From, Rect: from, Scrim: true}, {Controller: tr.To, Rect: to}}
	case serialnav.KindDismiss:
		from.Y = offset(h, p)
		return []Card{{Controller: tr.To, Rect: to, Scrim: true}, {Controller: tr.From, Rect: from}}
	}
	return []Card{{Controller: tr.To, Rect: full}}
}
