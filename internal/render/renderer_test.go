package render

import (
	"errors"
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/example/wroomer/internal/interaction"
)

type fakeBackend struct {
	configured []image.Point
	writes     int
	acquireErr []error
	draws      []Pipeline
	presented  int
}

func (f *fakeBackend) ConfigureSurface(w, h int) error {
	f.configured = append(f.configured, image.Pt(w, h))
	return nil
}

func (f *fakeBackend) CreateUniformBuffer(label string, entry gputypes.BindGroupLayoutEntry) (BufferHandle, error) {
	return BufferHandle(entry.Binding), nil
}

func (f *fakeBackend) AcquireFrame() (Frame, error) {
	if len(f.acquireErr) > 0 {
		err := f.acquireErr[0]
		f.acquireErr = f.acquireErr[1:]
		if err != nil {
			return Frame{}, err
		}
	}
	return Frame{Seq: 1}, nil
}

func (f *fakeBackend) WriteUniformBuffer(h BufferHandle, data []byte) error {
	f.writes++
	return nil
}

func (f *fakeBackend) SubmitDraw(fr Frame, d DrawCall) error {
	f.draws = append(f.draws, d.Pipeline)
	return nil
}

func (f *fakeBackend) Present(fr Frame) error {
	f.presented++
	return nil
}

func newTestState(overlay bool) *interaction.State {
	cfg := interaction.DefaultConfig()
	cfg.OverlaySupported = overlay
	return interaction.New(cfg, mgl32.Vec2{40, 20}, mgl32.Vec2{40, 40})
}

func TestNewRendererSkipsZeroSize(t *testing.T) {
	fb := &fakeBackend{}
	r, err := NewRenderer(fb, 0, 0)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	if len(fb.configured) != 0 {
		t.Fatalf("zero-size surface configured")
	}
	if got := r.Redraw(newTestState(false)); got != FrameSkipped {
		t.Fatalf("redraw without a surface = %v", got)
	}
	if err := r.Resize(0, 10); err != nil || len(fb.configured) != 0 {
		t.Fatalf("zero-area resize reached the backend")
	}
}

func TestRedrawDrawsActiveQuads(t *testing.T) {
	fb := &fakeBackend{}
	r, _ := NewRenderer(fb, 40, 40)
	s := newTestState(true)

	if got := r.Redraw(s); got != FramePresented {
		t.Fatalf("redraw = %v", got)
	}
	if len(fb.draws) != 2 || fb.draws[0] != PipelineImage || fb.draws[1] != PipelineOverlay {
		t.Fatalf("draws = %v", fb.draws)
	}

	fb.draws = nil
	s.Handle(interaction.ModifiersChanged{Mods: interaction.ModControl})
	r.Redraw(s)
	want := []Pipeline{PipelineImage, PipelineSpotlight, PipelineOverlay}
	if len(fb.draws) != 3 {
		t.Fatalf("draws = %v, want %v", fb.draws, want)
	}
	for i := range want {
		if fb.draws[i] != want[i] {
			t.Fatalf("draws = %v, want %v", fb.draws, want)
		}
	}
}

func TestRedrawRecoversFromLostSurface(t *testing.T) {
	for _, lost := range []error{ErrSurfaceLost, ErrSurfaceOutdated} {
		fb := &fakeBackend{acquireErr: []error{lost}}
		r, _ := NewRenderer(fb, 40, 30)
		s := newTestState(false)

		if got := r.Redraw(s); got != FrameSkipped {
			t.Fatalf("%v: redraw = %v, want skipped", lost, got)
		}
		if len(fb.configured) != 2 || fb.configured[1] != image.Pt(40, 30) {
			t.Fatalf("%v: reconfigured with %v", lost, fb.configured)
		}
		if fb.presented != 0 {
			t.Fatalf("%v: skipped frame was presented", lost)
		}
		writes := fb.writes
		if got := r.Redraw(s); got != FramePresented {
			t.Fatalf("%v: next redraw = %v", lost, got)
		}
		if fb.writes == writes {
			t.Fatalf("%v: uniforms not rewritten after reconfigure", lost)
		}
	}
}

func TestRedrawSkipsOnOtherErrors(t *testing.T) {
	fb := &fakeBackend{acquireErr: []error{errors.New("timeout")}}
	r, _ := NewRenderer(fb, 40, 30)
	if got := r.Redraw(newTestState(false)); got != FrameSkipped {
		t.Fatalf("redraw = %v", got)
	}
	if len(fb.configured) != 1 {
		t.Fatalf("generic error reconfigured the surface")
	}
	if got := r.Redraw(newTestState(false)); got != FramePresented {
		t.Fatalf("renderer did not continue after a generic error")
	}
}
