// Package viewmath holds the pure geometry of the viewer: fitting an image
// into a window and building the image-to-clip-space transform.
package viewmath

import "github.com/go-gl/mathgl/mgl32"

// MaxFitScale caps the fitted scale so small images are shown at their
// natural size instead of being magnified.
const MaxFitScale = 1.0

// Fit returns the scale that shows the whole image inside the window without
// magnifying it, and the offset that centers the scaled image. Padded axes
// never get a negative offset.
func Fit(imageSize, windowSize mgl32.Vec2) (offset mgl32.Vec2, scale float32) {
	scale = MaxFitScale
	if imageSize.X() > 0 && imageSize.Y() > 0 {
		scale = min(scale, windowSize.X()/imageSize.X(), windowSize.Y()/imageSize.Y())
	}
	if scale <= 0 {
		scale = MaxFitScale
	}
	offset = mgl32.Vec2{
		max(0, (windowSize.X()-imageSize.X()*scale)/2),
		max(0, (windowSize.Y()-imageSize.Y()*scale)/2),
	}
	return offset, scale
}
