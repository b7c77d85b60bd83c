package viewmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform builds the matrix mapping image UV coordinates ([0,1] on both
// axes, origin top-left) to normalized device coordinates (Y up).
//
// The image is scaled, rotated about its own center and placed so that its
// unrotated top-left corner sits at offset (window pixels). With rotation 0
// the matrix is a pure scale and translation.
func Transform(offset mgl32.Vec2, scale, rotation float32, imageSize, windowSize mgl32.Vec2) mgl32.Mat3 {
	sin, cos := math.Sincos(float64(rotation))
	c, s := float32(cos), float32(sin)

	cw := imageSize.X() * scale
	ch := imageSize.Y() * scale
	cx := offset.X() + cw/2
	cy := offset.Y() + ch/2

	// window pixel = A*uv + t
	a00, a01 := c*cw, -s*ch
	a10, a11 := s*cw, c*ch
	tx := cx - 0.5*a00 - 0.5*a01
	ty := cy - 0.5*a10 - 0.5*a11

	w, h := windowSize.X(), windowSize.Y()
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}

	// column-major
	return mgl32.Mat3{
		2 * a00 / w, -2 * a10 / h, 0,
		2 * a01 / w, -2 * a11 / h, 0,
		2*tx/w - 1, 1 - 2*ty/h, 1,
	}
}

// Apply maps a 2D point through m.
func Apply(m mgl32.Mat3, p mgl32.Vec2) mgl32.Vec2 {
	return m.Mul3x1(p.Vec3(1)).Vec2()
}

// NDCToPixel converts a clip-space point back to window pixels.
func NDCToPixel(p, windowSize mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X() + 1) / 2 * windowSize.X(),
		(1 - p.Y()) / 2 * windowSize.Y(),
	}
}

// PixelToNDC converts a window pixel to clip space.
func PixelToNDC(p, windowSize mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		2*p.X()/windowSize.X() - 1,
		1 - 2*p.Y()/windowSize.Y(),
	}
}

// WrapAngle folds r into (-2π, 2π).
func WrapAngle(r float32) float32 {
	return float32(math.Mod(float64(r), 2*math.Pi))
}
