// Package sdlhost draws a navigator's stack and transitions with SDL.
//
// Window must be created and used on the main OS thread, which in practice means
// from the run loop's frame hook with the loop running on the main goroutine.
package sdlhost

import (
	"fmt"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Window wraps SDL window and renderer with the frame pacing state.
type Window struct {
	Window          *sdl.Window
	Renderer        *sdl.Renderer
	Title           string
	Theme           Theme
	hasVSync        bool
	lastPresentTime uint64
}

// Open initializes SDL video and creates a window of the given size.
func Open(title string, width, height int32, winOpts WindowOptions, theme Theme) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdlhost: init: %w", err)
	}

	internal.GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, winOpts.ToSDLFlags())
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlhost: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		internal.GetInternalLogger().Warn("Accelerated renderer unavailable, using software", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlhost: create renderer: %w", err)
	}

	renderer.SetLogicalSize(width, height)
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		Theme:    theme,
		hasVSync: vsync,
	}, nil
}

func (w *Window) GetWidth() int32 {
	width, _ := w.Window.GetSize()
	return width
}

func (w *Window) GetHeight() int32 {
	_, height := w.Window.GetSize()
	return height
}

// PollEvents drains pending SDL events. quit is set when the window was closed,
// back when Escape or Backspace was pressed.
func (w *Window) PollEvents() (quit, back bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_BACKSPACE:
				back = true
			}
		}
	}
	return quit, back
}

// Render draws the scene into the back buffer.
func (w *Window) Render(scene Scene) {
	r := w.Renderer
	bg := w.Theme.BackgroundColor
	r.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	r.Clear()

	full := sdl.Rect{X: 0, Y: 0, W: w.GetWidth(), H: w.GetHeight()}
	for _, card := range Layout(scene, full.W, full.H) {
		rect := card.Rect

		c := w.Theme.CardColor(card.Controller.String())
		r.SetDrawColor(c.R, c.G, c.B, c.A)
		r.FillRect(&rect)

		border := w.Theme.BorderColor
		r.SetDrawColor(border.R, border.G, border.B, border.A)
		r.DrawRect(&rect)

		if card.Scrim {
			s := w.Theme.ScrimColor
			r.SetDrawColor(s.R, s.G, s.B, s.A)
			r.FillRect(&full)
		}
	}
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available. Use this instead of renderer.Present().
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Close destroys the renderer and window and shuts SDL down.
func (w *Window) Close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
	sdl.Quit()
}
