package viewmath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

func TestFitShrinksLargeImage(t *testing.T) {
	offset, scale := Fit(mgl32.Vec2{200, 100}, mgl32.Vec2{100, 100})
	if scale != 0.5 {
		t.Fatalf("scale = %v, want 0.5", scale)
	}
	if !offset.ApproxEqualThreshold(mgl32.Vec2{0, 25}, eps) {
		t.Fatalf("offset = %v, want (0,25)", offset)
	}
}

func TestFitKeepsSmallImageAtNaturalSize(t *testing.T) {
	offset, scale := Fit(mgl32.Vec2{50, 50}, mgl32.Vec2{200, 100})
	if scale != 1 {
		t.Fatalf("scale = %v, want 1", scale)
	}
	if !offset.ApproxEqualThreshold(mgl32.Vec2{75, 25}, eps) {
		t.Fatalf("offset = %v, want (75,25)", offset)
	}
}

func TestFitIsDeterministic(t *testing.T) {
	o1, s1 := Fit(mgl32.Vec2{1920, 1080}, mgl32.Vec2{1280, 720})
	o2, s2 := Fit(mgl32.Vec2{1920, 1080}, mgl32.Vec2{1280, 720})
	if o1 != o2 || s1 != s2 {
		t.Fatalf("fit differs between calls: %v/%v vs %v/%v", o1, s1, o2, s2)
	}
}

func TestTransformWithoutRotationMapsCorners(t *testing.T) {
	window := mgl32.Vec2{200, 100}
	image := mgl32.Vec2{100, 50}
	offset := mgl32.Vec2{10, 20}
	m := Transform(offset, 1, 0, image, window)

	tl := NDCToPixel(Apply(m, mgl32.Vec2{0, 0}), window)
	br := NDCToPixel(Apply(m, mgl32.Vec2{1, 1}), window)
	if !tl.ApproxEqualThreshold(mgl32.Vec2{10, 20}, eps) {
		t.Fatalf("top-left = %v", tl)
	}
	if !br.ApproxEqualThreshold(mgl32.Vec2{110, 70}, eps) {
		t.Fatalf("bottom-right = %v", br)
	}
	if m[1] != 0 || m[3] != 0 {
		t.Fatalf("unrotated transform has shear terms: %v", m)
	}
}

func TestTransformFlipsY(t *testing.T) {
	window := mgl32.Vec2{100, 100}
	m := Transform(mgl32.Vec2{}, 1, 0, window, window)
	top := Apply(m, mgl32.Vec2{0.5, 0})
	if math.Abs(float64(top.Y()-1)) > eps {
		t.Fatalf("uv top maps to ndc y %v, want 1", top.Y())
	}
}

func TestTransformRotatesAboutImageCenter(t *testing.T) {
	window := mgl32.Vec2{400, 300}
	image := mgl32.Vec2{100, 60}
	offset := mgl32.Vec2{50, 40}
	scale := float32(2)
	center := mgl32.Vec2{50 + 100, 40 + 60}

	for _, rot := range []float32{0, 0.3, math.Pi / 2, math.Pi, -1.2} {
		m := Transform(offset, scale, rot, image, window)
		got := NDCToPixel(Apply(m, mgl32.Vec2{0.5, 0.5}), window)
		if !got.ApproxEqualThreshold(center, 1e-3) {
			t.Fatalf("rotation %v moved the center to %v", rot, got)
		}
	}

	m := Transform(offset, scale, math.Pi/2, image, window)
	right := NDCToPixel(Apply(m, mgl32.Vec2{1, 0.5}), window)
	if !right.ApproxEqualThreshold(mgl32.Vec2{150, 200}, 1e-3) {
		t.Fatalf("right edge after quarter turn = %v, want (150,200)", right)
	}
}

func TestTransformMatchesComposition(t *testing.T) {
	window := mgl32.Vec2{640, 480}
	image := mgl32.Vec2{320, 200}
	offset := mgl32.Vec2{-30, 12}
	scale := float32(1.7)
	rot := float32(0.8)

	cw, ch := image.X()*scale, image.Y()*scale
	composed := mgl32.Translate2D(-1, 1).
		Mul3(mgl32.Scale2D(2/window.X(), -2/window.Y())).
		Mul3(mgl32.Translate2D(offset.X()+cw/2, offset.Y()+ch/2)).
		Mul3(mgl32.HomogRotate2D(rot)).
		Mul3(mgl32.Translate2D(-cw/2, -ch/2)).
		Mul3(mgl32.Scale2D(cw, ch))

	got := Transform(offset, scale, rot, image, window)
	if !got.ApproxEqualThreshold(composed, 1e-4) {
		t.Fatalf("direct construction %v differs from composition %v", got, composed)
	}
}

func TestPixelNDCRoundTrip(t *testing.T) {
	window := mgl32.Vec2{800, 600}
	p := mgl32.Vec2{123, 456}
	if got := NDCToPixel(PixelToNDC(p, window), window); !got.ApproxEqualThreshold(p, 1e-3) {
		t.Fatalf("round trip = %v, want %v", got, p)
	}
}

func TestWrapAngle(t *testing.T) {
	if got := WrapAngle(5 * math.Pi); math.Abs(float64(got)-math.Pi) > eps {
		t.Fatalf("WrapAngle(5π) = %v", got)
	}
	if got := WrapAngle(-3 * math.Pi); math.Abs(float64(got)+math.Pi) > eps {
		t.Fatalf("WrapAngle(-3π) = %v", got)
	}
}
