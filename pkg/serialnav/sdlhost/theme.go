package sdlhost

import (
	"hash/fnv"

	"github.com/veandco/go-sdl2/sdl"
)

// Theme defines the colors used to draw the navigation stack.
type Theme struct {
	BackgroundColor sdl.Color // Behind every card
	BorderColor     sdl.Color // Card outline
	ScrimColor      sdl.Color // Drawn over the stack beneath a presented card
	Palette         []sdl.Color
}

// DefaultTheme returns a dark theme with a muted palette.
func DefaultTheme() Theme {
	return Theme{
		BackgroundColor: sdl.Color{R: 18, G: 18, B: 22, A: 255},
		BorderColor:     sdl.Color{R: 240, G: 240, B: 240, A: 255},
		ScrimColor:      sdl.Color{R: 0, G: 0, B: 0, A: 140},
		Palette: []sdl.Color{
			{R: 66, G: 99, B: 145, A: 255},
			{R: 143, G: 80, B: 99, A: 255},
			{R: 72, G: 133, B: 104, A: 255},
			{R: 160, G: 122, B: 64, A: 255},
			{R: 104, G: 84, B: 150, A: 255},
		},
	}
}

// CardColor picks a stable palette color for a controller name.
func (t Theme) CardColor(name string) sdl.Color {
	if len(t.Palette) == 0 {
		return t.BorderColor
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return t.Palette[h.Sum32()%uint32(len(t.Palette))]
}
