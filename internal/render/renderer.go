package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/uniforms"
)

// FrameResult reports what Redraw did.
type FrameResult int

const (
	FramePresented FrameResult = iota
	// FrameSkipped means the frame was dropped and the next redraw may
	// succeed.
	FrameSkipped
)

// Renderer owns the uniform buffers and issues the per-frame draw sequence.
type Renderer struct {
	backend Backend
	buffers map[uniforms.Block]BufferHandle
	sync    uniforms.Synchronizer
	size    image.Point
}

// NewRenderer creates the uniform buffers and configures the surface when
// the initial size is non-zero.
func NewRenderer(b Backend, width, height int) (*Renderer, error) {
	r := &Renderer{backend: b, buffers: make(map[uniforms.Block]BufferHandle)}
	for _, blk := range uniforms.Blocks {
		h, err := b.CreateUniformBuffer(blk.String()+" uniforms", blk.LayoutEntry())
		if err != nil {
			return nil, fmt.Errorf("create %v uniform buffer: %w", blk, err)
		}
		r.buffers[blk] = h
	}
	if err := r.Resize(width, height); err != nil {
		return nil, err
	}
	return r, nil
}

// Size returns the last configured surface size.
func (r *Renderer) Size() image.Point { return r.size }

// Resize reconfigures the surface. Zero-area sizes are ignored.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	r.size = image.Pt(width, height)
	r.sync.Invalidate()
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}
	return nil
}

// Invalidate makes the next Redraw rewrite every active uniform block.
func (r *Renderer) Invalidate() { r.sync.Invalidate() }

type blockWriter struct{ r *Renderer }

func (w blockWriter) WriteBlock(b uniforms.Block, data []byte) error {
	return w.r.backend.WriteUniformBuffer(w.r.buffers[b], data)
}

// Redraw syncs the uniforms and draws one frame: the image quad, then the
// spotlight and overlay quads when they are active. A lost or outdated
// surface is reconfigured with the last known size and the frame skipped;
// other failures are logged and the frame skipped.
func (r *Renderer) Redraw(src uniforms.Source) FrameResult {
	log := logging.Logger()
	if r.size.X <= 0 || r.size.Y <= 0 {
		return FrameSkipped
	}
	if _, err := r.sync.Sync(src, blockWriter{r}); err != nil {
		log.Error("redraw: sync uniforms", "err", err)
		return FrameSkipped
	}

	frame, err := r.backend.AcquireFrame()
	switch {
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		log.Debug("redraw: reconfiguring surface", "err", err, "size", r.size)
		if err := r.Resize(r.size.X, r.size.Y); err != nil {
			log.Error("redraw: reconfigure", "err", err)
		}
		return FrameSkipped
	case err != nil:
		log.Error("redraw: acquire frame", "err", err)
		return FrameSkipped
	}

	for _, d := range r.drawCalls(src) {
		if err := r.backend.SubmitDraw(frame, d); err != nil {
			log.Error("redraw: draw", "pipeline", d.Pipeline, "err", err)
			return FrameSkipped
		}
	}
	if err := r.backend.Present(frame); err != nil {
		if errors.Is(err, ErrSurfaceLost) || errors.Is(err, ErrSurfaceOutdated) {
			r.sync.Invalidate()
		}
		log.Error("redraw: present", "err", err)
		return FrameSkipped
	}
	return FramePresented
}

func (r *Renderer) drawCalls(src uniforms.Source) []DrawCall {
	img := r.buffers[uniforms.BlockImage]
	calls := []DrawCall{{
		Pipeline:    PipelineImage,
		BindGroups:  []BufferHandle{img},
		VertexCount: QuadVertices,
	}}
	if src.Spotlight().Enabled {
		calls = append(calls, DrawCall{
			Pipeline:    PipelineSpotlight,
			BindGroups:  []BufferHandle{r.buffers[uniforms.BlockSpotlight]},
			VertexCount: QuadVertices,
		})
	}
	if logo := src.Overlay(); logo != nil && logo.Visible {
		calls = append(calls, DrawCall{
			Pipeline:    PipelineOverlay,
			BindGroups:  []BufferHandle{img, r.buffers[uniforms.BlockOverlay]},
			VertexCount: QuadVertices,
		})
	}
	return calls
}
