package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/uniforms"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestSoftwareBackendDrawsImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	var presented *image.RGBA
	sb := NewSoftwareBackend(solid(20, 10, red), WithPresenter(func(img *image.RGBA) error {
		presented = img
		return nil
	}))
	r, err := NewRenderer(sb, 40, 40)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	s := interaction.New(interaction.DefaultConfig(), mgl32.Vec2{20, 10}, mgl32.Vec2{40, 40})
	if got := r.Redraw(s); got != FramePresented {
		t.Fatalf("redraw = %v", got)
	}
	if presented == nil {
		t.Fatal("presenter not called")
	}
	// image is 20x10 centered at (10,15)
	if got := presented.RGBAAt(20, 20); got != red {
		t.Fatalf("center pixel = %+v, want red", got)
	}
	if got := presented.RGBAAt(2, 2); got != (color.RGBA{A: 255}) {
		t.Fatalf("background pixel = %+v, want black", got)
	}
}

func TestSoftwareBackendSpotlightDims(t *testing.T) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	sb := NewSoftwareBackend(solid(40, 40, white))
	r, _ := NewRenderer(sb, 40, 40)
	s := interaction.New(interaction.DefaultConfig(), mgl32.Vec2{40, 40}, mgl32.Vec2{40, 40})
	s.Handle(interaction.CursorMoved{X: 20, Y: 20})
	s.Handle(interaction.ModifiersChanged{Mods: interaction.ModControl})
	r.Redraw(s)

	img := sb.Target()
	if got := img.RGBAAt(20, 20); got.R != 255 {
		t.Fatalf("pixel inside spotlight = %+v", got)
	}
	if got := img.RGBAAt(1, 1); got.R > 30 {
		t.Fatalf("pixel outside spotlight = %+v, want dimmed", got)
	}
}

func TestSoftwareBackendRejectsShortWrites(t *testing.T) {
	sb := NewSoftwareBackend(solid(1, 1, color.RGBA{}))
	h, err := sb.CreateUniformBuffer("image", uniforms.BlockImage.LayoutEntry())
	if err != nil {
		t.Fatalf("CreateUniformBuffer: %v", err)
	}
	if err := sb.WriteUniformBuffer(h, make([]byte, 8)); err == nil {
		t.Fatal("expected error for a short write")
	}
	if err := sb.WriteUniformBuffer(h+5, make([]byte, 48)); err == nil {
		t.Fatal("expected error for an unknown buffer")
	}
}

func TestSoftwareBackendNeedsSurface(t *testing.T) {
	sb := NewSoftwareBackend(solid(1, 1, color.RGBA{}))
	if _, err := sb.AcquireFrame(); err != ErrSurfaceOutdated {
		t.Fatalf("AcquireFrame = %v, want ErrSurfaceOutdated", err)
	}
	if err := sb.ConfigureSurface(0, 5); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestSoftwareBackendRejectsStaleFrame(t *testing.T) {
	sb := NewSoftwareBackend(solid(1, 1, color.RGBA{}))
	sb.ConfigureSurface(4, 4)
	f, _ := sb.AcquireFrame()
	if err := sb.Present(f); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if err := sb.Present(f); err == nil {
		t.Fatal("expected error presenting a frame twice")
	}
}

func TestSoftwareBackendOffscreenSkipsPresenter(t *testing.T) {
	calls := 0
	sb := NewSoftwareBackend(solid(4, 4, color.RGBA{G: 255, A: 255}), WithPresenter(func(*image.RGBA) error {
		calls++
		return nil
	}))
	r, err := NewRenderer(sb, 4, 4)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	s := interaction.New(interaction.DefaultConfig(), mgl32.Vec2{4, 4}, mgl32.Vec2{4, 4})
	sb.Offscreen(func() {
		if got := r.Redraw(s); got != FramePresented {
			t.Fatalf("offscreen redraw = %v", got)
		}
	})
	if calls != 0 {
		t.Fatalf("presenter called %d times offscreen", calls)
	}
	if got := sb.Target().RGBAAt(2, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("offscreen target pixel = %+v", got)
	}
	r.Redraw(s)
	if calls != 1 {
		t.Fatalf("presenter not restored: %d calls", calls)
	}
}
