package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/wroomer/internal/overlay"
	"github.com/example/wroomer/internal/uniforms"
)

// spotlightEdge is the width of the soft spotlight rim in window-height
// units.
const spotlightEdge = 0.004

type softBuffer struct {
	label string
	entry gputypes.BindGroupLayoutEntry
	data  []byte
}

// SoftwareBackend implements Backend on the CPU. Draw calls decode the
// uniform bytes and rasterize into an RGBA frame that is handed to a
// presenter.
type SoftwareBackend struct {
	texture    *image.RGBA
	logo       *image.Gray
	background color.Color
	tint       color.RGBA
	present    func(*image.RGBA) error

	size    image.Point
	target  *image.RGBA
	buffers []softBuffer
	seq     uint64
	open    bool
}

// SoftwareOption configures a SoftwareBackend.
type SoftwareOption func(*SoftwareBackend)

// WithBackground sets the clear colour.
func WithBackground(c color.Color) SoftwareOption {
	return func(b *SoftwareBackend) { b.background = c }
}

// WithSpotlightTint sets the colour blended outside the spotlight. Its alpha
// is ignored; the darkness uniform controls the blend.
func WithSpotlightTint(c color.RGBA) SoftwareOption {
	return func(b *SoftwareBackend) { b.tint = c }
}

// WithPresenter sets the function receiving every finished frame.
func WithPresenter(fn func(*image.RGBA) error) SoftwareOption {
	return func(b *SoftwareBackend) { b.present = fn }
}

// NewSoftwareBackend uploads img as the texture sampled by the image
// pipeline.
func NewSoftwareBackend(img image.Image, opts ...SoftwareOption) *SoftwareBackend {
	b := &SoftwareBackend{
		texture:    toRGBA(img),
		logo:       LogoMask(LogoText, DefaultGlowOptions()),
		background: color.Black,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

// Target returns the frame buffer of the last configured surface.
func (b *SoftwareBackend) Target() *image.RGBA { return b.target }

// Offscreen runs fn with presentation disabled, so frames drawn inside it
// stay in Target without reaching the window.
func (b *SoftwareBackend) Offscreen(fn func()) {
	present := b.present
	b.present = nil
	defer func() { b.present = present }()
	fn()
}

// ConfigureSurface allocates a frame buffer of the given size.
func (b *SoftwareBackend) ConfigureSurface(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("configure surface: invalid size %dx%d", width, height)
	}
	b.size = image.Pt(width, height)
	if b.target == nil || b.target.Bounds().Size() != b.size {
		b.target = image.NewRGBA(image.Rectangle{Max: b.size})
	}
	return nil
}

// CreateUniformBuffer allocates a buffer sized by the entry's minimum
// binding size.
func (b *SoftwareBackend) CreateUniformBuffer(label string, entry gputypes.BindGroupLayoutEntry) (BufferHandle, error) {
	if entry.Buffer == nil || entry.Buffer.Type != gputypes.BufferBindingTypeUniform {
		return 0, fmt.Errorf("create buffer %q: not a uniform binding", label)
	}
	b.buffers = append(b.buffers, softBuffer{
		label: label,
		entry: entry,
		data:  make([]byte, entry.Buffer.MinBindingSize),
	})
	return BufferHandle(len(b.buffers) - 1), nil
}

func (b *SoftwareBackend) buffer(h BufferHandle) (*softBuffer, error) {
	if h < 0 || int(h) >= len(b.buffers) {
		return nil, fmt.Errorf("unknown buffer %d", h)
	}
	return &b.buffers[h], nil
}

// WriteUniformBuffer replaces the buffer contents.
func (b *SoftwareBackend) WriteUniformBuffer(h BufferHandle, data []byte) error {
	buf, err := b.buffer(h)
	if err != nil {
		return fmt.Errorf("write uniform: %w", err)
	}
	if uint64(len(data)) < buf.entry.Buffer.MinBindingSize {
		return fmt.Errorf("write uniform %q: %d bytes, want %d", buf.label, len(data), buf.entry.Buffer.MinBindingSize)
	}
	buf.data = append(buf.data[:0], data...)
	return nil
}

// AcquireFrame clears the frame buffer. It reports ErrSurfaceOutdated until
// a surface has been configured.
func (b *SoftwareBackend) AcquireFrame() (Frame, error) {
	if b.target == nil {
		return Frame{}, ErrSurfaceOutdated
	}
	b.seq++
	b.open = true
	draw.Draw(b.target, b.target.Bounds(), image.NewUniform(b.background), image.Point{}, draw.Src)
	return Frame{Seq: b.seq, Size: b.size}, nil
}

func (b *SoftwareBackend) checkFrame(f Frame) error {
	if !b.open || f.Seq != b.seq {
		return fmt.Errorf("frame %d is not the current frame", f.Seq)
	}
	if f.Size != b.size {
		return ErrSurfaceOutdated
	}
	return nil
}

// SubmitDraw rasterizes one quad.
func (b *SoftwareBackend) SubmitDraw(f Frame, d DrawCall) error {
	if err := b.checkFrame(f); err != nil {
		return err
	}
	groups := make([][]byte, len(d.BindGroups))
	for i, h := range d.BindGroups {
		buf, err := b.buffer(h)
		if err != nil {
			return fmt.Errorf("draw %v: %w", d.Pipeline, err)
		}
		groups[i] = buf.data
	}
	switch d.Pipeline {
	case PipelineImage:
		return b.drawImage(groups)
	case PipelineSpotlight:
		return b.drawSpotlight(groups)
	case PipelineOverlay:
		return b.drawOverlay(groups)
	}
	return fmt.Errorf("draw: unknown pipeline %v", d.Pipeline)
}

// Present hands the finished frame to the presenter.
func (b *SoftwareBackend) Present(f Frame) error {
	if err := b.checkFrame(f); err != nil {
		return err
	}
	b.open = false
	if b.present == nil {
		return nil
	}
	return b.present(b.target)
}

// ndcToTarget maps clip space to frame pixels.
func (b *SoftwareBackend) ndcToTarget() mgl32.Mat3 {
	w, h := float32(b.size.X), float32(b.size.Y)
	return mgl32.Mat3{
		w / 2, 0, 0,
		0, -h / 2, 0,
		w / 2, h / 2, 1,
	}
}

func toAff3(m mgl32.Mat3) f64.Aff3 {
	return f64.Aff3{
		float64(m[0]), float64(m[3]), float64(m[6]),
		float64(m[1]), float64(m[4]), float64(m[7]),
	}
}

// magnifies reports whether m scales source pixels up.
func magnifies(m mgl32.Mat3) bool {
	return math.Abs(float64(m[0]*m[4]-m[3]*m[1])) >= 1
}

func (b *SoftwareBackend) drawImage(groups [][]byte) error {
	if len(groups) < 1 {
		return fmt.Errorf("draw image: missing transform binding")
	}
	m, err := uniforms.DecodeImage(groups[0])
	if err != nil {
		return fmt.Errorf("draw image: %w", err)
	}
	src := b.texture.Bounds()
	s2d := b.ndcToTarget().Mul3(m).Mul3(mgl32.Scale2D(1/float32(src.Dx()), 1/float32(src.Dy())))
	var interp xdraw.Transformer = xdraw.ApproxBiLinear
	if magnifies(s2d) {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(b.target, toAff3(s2d), b.texture, src, xdraw.Over, nil)
	return nil
}

func (b *SoftwareBackend) drawSpotlight(groups [][]byte) error {
	if len(groups) < 1 {
		return fmt.Errorf("draw spotlight: missing binding")
	}
	p, err := uniforms.DecodeSpotlight(groups[0])
	if err != nil {
		return fmt.Errorf("draw spotlight: %w", err)
	}
	if p.Darkness <= 0 {
		return nil
	}
	w, h := b.size.X, b.size.Y
	inner := float64(p.Radius) - spotlightEdge
	outer := float64(p.Radius) + spotlightEdge
	tr, tg, tb := float64(b.tint.R), float64(b.tint.G), float64(b.tint.B)
	for y := 0; y < h; y++ {
		v := (float64(y)+0.5)/float64(h) - float64(p.Center.Y())
		row := b.target.Pix[y*b.target.Stride:]
		for x := 0; x < w; x++ {
			u := ((float64(x)+0.5)/float64(w) - float64(p.Center.X())) * float64(p.AspectRatio)
			a := float64(p.Darkness) * smoothstep(inner, outer, math.Hypot(u, v))
			if a == 0 {
				continue
			}
			px := row[x*4 : x*4+3]
			px[0] = uint8(float64(px[0])*(1-a) + tr*a)
			px[1] = uint8(float64(px[1])*(1-a) + tg*a)
			px[2] = uint8(float64(px[2])*(1-a) + tb*a)
		}
	}
	return nil
}

func smoothstep(e0, e1, x float64) float64 {
	t := min(max((x-e0)/(e1-e0), 0), 1)
	return t * t * (3 - 2*t)
}

func (b *SoftwareBackend) drawOverlay(groups [][]byte) error {
	if len(groups) < 2 {
		return fmt.Errorf("draw overlay: want transform and overlay bindings")
	}
	m, err := uniforms.DecodeImage(groups[0])
	if err != nil {
		return fmt.Errorf("draw overlay: %w", err)
	}
	p, err := uniforms.DecodeOverlay(groups[1])
	if err != nil {
		return fmt.Errorf("draw overlay: %w", err)
	}
	logo := TintMask(b.logo, overlay.RGBA(p.Color))
	lb := logo.Bounds()
	toUV := mgl32.Translate2D(p.Origin.X(), p.Origin.Y()).
		Mul3(mgl32.Scale2D(p.Size.X()/float32(lb.Dx()), p.Size.Y()/float32(lb.Dy())))
	s2d := b.ndcToTarget().Mul3(m).Mul3(toUV)
	xdraw.ApproxBiLinear.Transform(b.target, toAff3(s2d), logo, lb, xdraw.Over, nil)
	return nil
}
