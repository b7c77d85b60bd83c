// Package render draws the viewer state through a small GPU-style backend
// contract: uniform buffers, per-frame acquire, draw and present.
package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
)

var (
	// ErrSurfaceLost means the surface must be reconfigured before the next
	// frame.
	ErrSurfaceLost = errors.New("surface lost")
	// ErrSurfaceOutdated means the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("surface outdated")
)

// BufferHandle names a uniform buffer created by a Backend.
type BufferHandle int

// Pipeline selects the shader program of a draw call.
type Pipeline int

const (
	PipelineImage Pipeline = iota
	PipelineSpotlight
	PipelineOverlay
)

func (p Pipeline) String() string {
	switch p {
	case PipelineImage:
		return "image"
	case PipelineSpotlight:
		return "spotlight"
	case PipelineOverlay:
		return "overlay"
	}
	return fmt.Sprintf("Pipeline(%d)", int(p))
}

// QuadVertices is the vertex count of one screen quad (two triangles).
const QuadVertices = 6

// DrawCall is one draw of a quad with its bound uniform buffers.
type DrawCall struct {
	Pipeline    Pipeline
	BindGroups  []BufferHandle
	FirstVertex uint32
	VertexCount uint32
}

// Frame is an acquired surface texture.
type Frame struct {
	Seq  uint64
	Size image.Point
}

// Backend is the GPU abstraction the renderer drives.
type Backend interface {
	ConfigureSurface(width, height int) error
	CreateUniformBuffer(label string, entry gputypes.BindGroupLayoutEntry) (BufferHandle, error)
	AcquireFrame() (Frame, error)
	WriteUniformBuffer(h BufferHandle, data []byte) error
	SubmitDraw(f Frame, d DrawCall) error
	Present(f Frame) error
}
