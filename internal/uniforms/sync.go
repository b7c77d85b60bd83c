package uniforms

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/overlay"
)

// Source is the state the synchronizer reads. *interaction.State
// implements it.
type Source interface {
	Revision() uint64
	Viewport() interaction.Viewport
	Transform() mgl32.Mat3
	Spotlight() interaction.Spotlight
	Overlay() *overlay.Bouncer
}

// Writer receives complete blocks.
type Writer interface {
	WriteBlock(b Block, data []byte) error
}

// Stats reports which blocks a Sync call wrote.
type Stats struct {
	Image     bool
	Spotlight bool
	Overlay   bool
}

// Synchronizer writes the uniform blocks once per frame, skipping the
// view blocks when nothing they depend on changed.
type Synchronizer struct {
	valid    bool
	revision uint64
	canvas   mgl32.Vec2
}

// Invalidate forces the next Sync to write every active block, for
// example after the surface was reconfigured.
func (s *Synchronizer) Invalidate() { s.valid = false }

// Sync writes the blocks that are dirty or active.
func (s *Synchronizer) Sync(src Source, w Writer) (Stats, error) {
	var st Stats
	vp := src.Viewport()
	rev := src.Revision()

	if !s.valid || rev != s.revision || vp.WindowSize != s.canvas {
		if err := w.WriteBlock(BlockImage, EncodeImage(src.Transform())); err != nil {
			return st, fmt.Errorf("write %v uniform: %w", BlockImage, err)
		}
		st.Image = true
		if sp := src.Spotlight(); sp.Enabled {
			if err := w.WriteBlock(BlockSpotlight, EncodeSpotlight(sp)); err != nil {
				return st, fmt.Errorf("write %v uniform: %w", BlockSpotlight, err)
			}
			st.Spotlight = true
		}
		s.valid = true
		s.revision = rev
		s.canvas = vp.WindowSize
	}

	if logo := src.Overlay(); logo != nil && logo.Visible {
		if err := w.WriteBlock(BlockOverlay, EncodeOverlay(OverlayRect(logo, vp.ImageSize))); err != nil {
			return st, fmt.Errorf("write %v uniform: %w", BlockOverlay, err)
		}
		st.Overlay = true
	}
	return st, nil
}

// OverlayRect converts the logo position to image UV coordinates.
func OverlayRect(b *overlay.Bouncer, imageSize mgl32.Vec2) OverlayParams {
	w, h := imageSize.X(), imageSize.Y()
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	return OverlayParams{
		Origin: mgl32.Vec2{b.Position.X() / w, b.Position.Y() / h},
		Size:   mgl32.Vec2{b.Size.X() / w, b.Size.Y() / h},
		Color:  b.Color(),
	}
}
