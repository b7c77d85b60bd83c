package appstate

import (
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/example/wroomer/internal/clipboard"
	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/notify"
	"github.com/example/wroomer/internal/render"
	"github.com/example/wroomer/internal/uniforms"
)

// Largest initial window; bigger images open scaled down to fit.
const (
	maxWindowWidth  = 1600
	maxWindowHeight = 1000
)

var copyImage = clipboard.WriteImage

// initialWindowSize keeps the image aspect ratio within the maximum window.
func initialWindowSize(img image.Rectangle) image.Point {
	w, h := img.Dx(), img.Dy()
	if w <= 0 || h <= 0 {
		return image.Pt(maxWindowWidth/2, maxWindowHeight/2)
	}
	scale := min(1, float64(maxWindowWidth)/float64(w), float64(maxWindowHeight)/float64(h))
	return image.Pt(max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale)))
}

// viewer owns everything the window loop mutates. It is driven from a single
// goroutine.
type viewer struct {
	state    *interaction.State
	renderer *render.Renderer
	backend  *render.SoftwareBackend
	tr       translator
	notifier *notify.Notifier
}

func newViewer(img *image.RGBA, cfg interaction.Config, win image.Point, opts ...render.SoftwareOption) (*viewer, error) {
	b := img.Bounds()
	backend := render.NewSoftwareBackend(img, opts...)
	r, err := render.NewRenderer(backend, win.X, win.Y)
	if err != nil {
		return nil, err
	}
	v := &viewer{
		state: interaction.New(cfg,
			mgl32.Vec2{float32(b.Dx()), float32(b.Dy())},
			mgl32.Vec2{float32(win.X), float32(win.Y)}),
		renderer: r,
		backend:  backend,
	}
	// The window system has already applied the new size when the density
	// changes, so the request always succeeds.
	v.tr.requester = interaction.SizeRequesterFunc(func(float32, float32) error { return nil })
	return v, nil
}

// handle feeds one window event through the state machine and merges the
// outcomes.
func (v *viewer) handle(e any) interaction.Outcome {
	var out interaction.Outcome
	for _, ev := range v.tr.translate(e) {
		o := v.state.Handle(ev)
		if r, ok := ev.(interaction.Resized); ok {
			if err := v.renderer.Resize(int(r.Width), int(r.Height)); err != nil {
				logging.Logger().Warn("resize surface", "err", err)
			}
			o.Redraw = true
		}
		out.Redraw = out.Redraw || o.Redraw
		out.Exit = out.Exit || o.Exit
		out.Copy = out.Copy || o.Copy
	}
	if out.Copy {
		v.copyView()
	}
	return out
}

// paint advances the overlay and draws one frame.
func (v *viewer) paint() render.FrameResult {
	v.state.Tick()
	return v.renderer.Redraw(v.state)
}

// animating reports whether frames must keep coming without input.
func (v *viewer) animating() bool {
	logo := v.state.Overlay()
	return logo != nil && logo.Visible
}

// unlitView hides the spotlight from the renderer. Control is still held
// when the copy chord arrives, so the live view is dimmed at that point.
type unlitView struct{ uniforms.Source }

func (u unlitView) Spotlight() interaction.Spotlight {
	sp := u.Source.Spotlight()
	sp.Enabled = false
	return sp
}

// copyView renders the current view without the spotlight and puts it on
// the clipboard. The window keeps showing the lit frame.
func (v *viewer) copyView() {
	var (
		snapshot *image.RGBA
		result   render.FrameResult
	)
	v.backend.Offscreen(func() {
		result = v.renderer.Redraw(unlitView{v.state})
		if frame := v.backend.Target(); result == render.FramePresented && frame != nil {
			snapshot = image.NewRGBA(frame.Bounds())
			draw.Draw(snapshot, snapshot.Bounds(), frame, frame.Bounds().Min, draw.Src)
		}
	})
	// The unlit pass may have consumed a revision without writing the
	// spotlight block.
	v.renderer.Invalidate()
	v.renderer.Redraw(v.state)
	if snapshot == nil {
		logging.Logger().Warn("copy: frame not rendered", "result", result)
		return
	}
	if err := copyImage(snapshot); err != nil {
		logging.Logger().Warn("copy to clipboard", "err", err)
		return
	}
	logging.Logger().Info("view copied to clipboard", "width", snapshot.Bounds().Dx(), "height", snapshot.Bounds().Dy())
	v.notifier.Copy("view", snapshot)
}
