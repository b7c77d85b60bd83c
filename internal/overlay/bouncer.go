// Package overlay animates the bouncing logo drawn over the image.
package overlay

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SizeFraction is the logo size relative to the image size.
	SizeFraction = 0.2
	// DefaultSpeed is the logo velocity in image pixels per frame, per axis,
	// for a 1000 pixel wide image. Smaller images move proportionally slower.
	DefaultSpeed = 4.0

	minSpeed   = 0.25
	maxSpeed   = 8.0
	speedRatio = 1.25
)

// Bouncer holds the logo position in image pixels. Every Step moves it by
// its velocity and reflects it off the image edges.
type Bouncer struct {
	Position mgl32.Vec2
	Velocity mgl32.Vec2
	Size     mgl32.Vec2
	T        uint64
	Visible  bool
	Speed    float32

	bounds mgl32.Vec2
}

// New places a visible logo at the top-left corner of an image of the given
// size, moving diagonally down and right.
func New(imageSize mgl32.Vec2) *Bouncer {
	size := imageSize.Mul(SizeFraction)
	v := DefaultSpeed * imageSize.X() / 1000
	if v < 1 {
		v = 1
	}
	return &Bouncer{
		Velocity: mgl32.Vec2{v, v},
		Size:     size,
		Visible:  true,
		Speed:    1,
		bounds:   imageSize.Sub(size),
	}
}

// Step advances the animation by one frame.
func (b *Bouncer) Step() {
	b.T++
	for axis := 0; axis < 2; axis++ {
		b.Position[axis] += b.Velocity[axis] * b.Speed
		switch {
		case b.Position[axis] < 0:
			b.Position[axis] = 0
			b.Velocity[axis] = -b.Velocity[axis]
		case b.Position[axis] > b.bounds[axis]:
			b.Position[axis] = max(0, b.bounds[axis])
			b.Velocity[axis] = -b.Velocity[axis]
		}
	}
}

// Toggle flips visibility.
func (b *Bouncer) Toggle() { b.Visible = !b.Visible }

// Faster increases the speed multiplier.
func (b *Bouncer) Faster() { b.Speed = min(maxSpeed, b.Speed*speedRatio) }

// Slower decreases the speed multiplier.
func (b *Bouncer) Slower() { b.Speed = max(minSpeed, b.Speed/speedRatio) }

// ResetSpeed restores the default speed.
func (b *Bouncer) ResetSpeed() { b.Speed = 1 }

// Color returns the tint for the current frame.
func (b *Bouncer) Color() [4]float32 { return Color(b.T) }

// Color maps a frame counter onto a 256-step colour wheel running
// red, blue, green and back to red. Alpha is always 0.5.
func Color(t uint64) [4]float32 {
	p := float32(t % 256)
	var r, g, bl float32
	switch {
	case p < 85:
		f := p / 85
		r, bl = 1-f, f
	case p < 170:
		f := (p - 85) / 85
		bl, g = 1-f, f
	default:
		f := (p - 170) / 86
		g, r = 1-f, f
	}
	return [4]float32{r, g, bl, 0.5}
}

// RGBA converts a float colour to a non-premultiplied 8-bit colour.
func RGBA(c [4]float32) color.NRGBA {
	to8 := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}
