// Package uniforms serializes the viewer state into the fixed byte layouts
// read by the image, spotlight and overlay shader stages.
package uniforms

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/example/wroomer/internal/interaction"
)

// Block identifies one uniform block.
type Block int

const (
	BlockImage Block = iota
	BlockSpotlight
	BlockOverlay
)

func (b Block) String() string {
	switch b {
	case BlockImage:
		return "image"
	case BlockSpotlight:
		return "spotlight"
	case BlockOverlay:
		return "overlay"
	}
	return fmt.Sprintf("Block(%d)", int(b))
}

const (
	// ImageBlockSize holds a 3x3 matrix as three vec4 columns.
	ImageBlockSize = 48
	// SpotlightBlockSize holds center(vec2) radius darkness aspect + pad.
	SpotlightBlockSize = 32
	// OverlayBlockSize holds rect origin(vec2) rect size(vec2) colour(vec4).
	OverlayBlockSize = 32
)

// Size returns the byte size of the block.
func (b Block) Size() uint64 {
	switch b {
	case BlockImage:
		return ImageBlockSize
	case BlockSpotlight:
		return SpotlightBlockSize
	case BlockOverlay:
		return OverlayBlockSize
	}
	return 0
}

// BufferUsage is the usage every uniform buffer is created with.
var BufferUsage = gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst

// LayoutEntry describes the block as a bind group layout entry at group 0.
func (b Block) LayoutEntry() gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    uint32(b),
		Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: b.Size(),
		},
	}
}

// Blocks lists every block in binding order.
var Blocks = []Block{BlockImage, BlockSpotlight, BlockOverlay}

func putFloats(buf []byte, off int, vs ...float32) int {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return off
}

func getFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

// EncodeImage writes the transform columns, each padded to a vec4.
func EncodeImage(m mgl32.Mat3) []byte {
	buf := make([]byte, ImageBlockSize)
	off := 0
	for col := 0; col < 3; col++ {
		c := m.Col(col)
		off = putFloats(buf, off, c[0], c[1], c[2], 0)
	}
	return buf
}

// DecodeImage reads a block written by EncodeImage.
func DecodeImage(buf []byte) (mgl32.Mat3, error) {
	if len(buf) < ImageBlockSize {
		return mgl32.Mat3{}, fmt.Errorf("image uniform: %d bytes, want %d", len(buf), ImageBlockSize)
	}
	var m mgl32.Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*3+row] = getFloat(buf, col*16+row*4)
		}
	}
	return m, nil
}

// EncodeSpotlight writes the spotlight parameters. A disabled spotlight is
// written with zero darkness.
func EncodeSpotlight(sp interaction.Spotlight) []byte {
	buf := make([]byte, SpotlightBlockSize)
	darkness := sp.Darkness
	if !sp.Enabled {
		darkness = 0
	}
	putFloats(buf, 0, sp.Center.X(), sp.Center.Y(), sp.Radius, darkness, sp.AspectRatio)
	return buf
}

// SpotlightParams is the decoded spotlight block.
type SpotlightParams struct {
	Center      mgl32.Vec2
	Radius      float32
	Darkness    float32
	AspectRatio float32
}

// DecodeSpotlight reads a block written by EncodeSpotlight.
func DecodeSpotlight(buf []byte) (SpotlightParams, error) {
	if len(buf) < SpotlightBlockSize {
		return SpotlightParams{}, fmt.Errorf("spotlight uniform: %d bytes, want %d", len(buf), SpotlightBlockSize)
	}
	return SpotlightParams{
		Center:      mgl32.Vec2{getFloat(buf, 0), getFloat(buf, 4)},
		Radius:      getFloat(buf, 8),
		Darkness:    getFloat(buf, 12),
		AspectRatio: getFloat(buf, 16),
	}, nil
}

// OverlayParams is the decoded overlay block. Origin and Size are in image
// UV coordinates.
type OverlayParams struct {
	Origin mgl32.Vec2
	Size   mgl32.Vec2
	Color  [4]float32
}

// EncodeOverlay writes the logo rectangle and tint.
func EncodeOverlay(p OverlayParams) []byte {
	buf := make([]byte, OverlayBlockSize)
	putFloats(buf, 0,
		p.Origin.X(), p.Origin.Y(),
		p.Size.X(), p.Size.Y(),
		p.Color[0], p.Color[1], p.Color[2], p.Color[3],
	)
	return buf
}

// DecodeOverlay reads a block written by EncodeOverlay.
func DecodeOverlay(buf []byte) (OverlayParams, error) {
	if len(buf) < OverlayBlockSize {
		return OverlayParams{}, fmt.Errorf("overlay uniform: %d bytes, want %d", len(buf), OverlayBlockSize)
	}
	var p OverlayParams
	p.Origin = mgl32.Vec2{getFloat(buf, 0), getFloat(buf, 4)}
	p.Size = mgl32.Vec2{getFloat(buf, 8), getFloat(buf, 12)}
	for i := range p.Color {
		p.Color[i] = getFloat(buf, 16+4*i)
	}
	return p, nil
}
