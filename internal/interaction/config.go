package interaction

import "math"

// Config selects the optional capabilities of a viewer build and tunes the
// input sensitivities.
type Config struct {
	RotationSupported bool
	OverlaySupported  bool
	CenteringOnResize bool

	// LineZoomStep is the relative zoom change per wheel notch.
	LineZoomStep float32
	// PixelZoomRate scales smooth zoom: a scroll of one window height
	// multiplies the zoom by e^PixelZoomRate.
	PixelZoomRate float32
	// LineRotateStep is the rotation per wheel notch in radians.
	LineRotateStep float32
	// LineRadiusStep is the spotlight radius multiplier change per notch.
	LineRadiusStep float32
	// PixelRadiusRate is the radius multiplier change for a scroll of one
	// window height.
	PixelRadiusRate float32

	SpotlightDarkness float32
	// SpotlightRadius is the base spotlight radius as a fraction of the
	// window height, before the multiplier.
	SpotlightRadius float32
}

// DefaultConfig returns the sensitivities the viewer ships with and no
// optional capabilities.
func DefaultConfig() Config {
	return Config{
		LineZoomStep:      0.1,
		PixelZoomRate:     2,
		LineRotateStep:    math.Pi / 24,
		LineRadiusStep:    0.1,
		PixelRadiusRate:   10,
		SpotlightDarkness: 0.9,
		SpotlightRadius:   0.15,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.LineZoomStep <= 0 || c.LineZoomStep >= 1 {
		c.LineZoomStep = d.LineZoomStep
	}
	if c.PixelZoomRate <= 0 {
		c.PixelZoomRate = d.PixelZoomRate
	}
	if c.LineRotateStep <= 0 {
		c.LineRotateStep = d.LineRotateStep
	}
	if c.LineRadiusStep <= 0 {
		c.LineRadiusStep = d.LineRadiusStep
	}
	if c.PixelRadiusRate <= 0 {
		c.PixelRadiusRate = d.PixelRadiusRate
	}
	if c.SpotlightDarkness <= 0 || c.SpotlightDarkness > 1 {
		c.SpotlightDarkness = d.SpotlightDarkness
	}
	if c.SpotlightRadius <= 0 {
		c.SpotlightRadius = d.SpotlightRadius
	}
	return c
}
