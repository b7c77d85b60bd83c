package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes holds the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours of the viewer window.
type Theme struct {
	Name string

	Background color.RGBA // Behind the image
	Spotlight  color.RGBA // Blended outside the spotlight circle
}

// Default returns the built-in dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:       "Default",
		Background: color.RGBA{0, 0, 0, 255},
		Spotlight:  color.RGBA{0, 0, 0, 255},
	}
}
