// Package interaction turns raw window input into the view transform and
// spotlight parameters of the image viewer.
package interaction

import (
	"errors"
	"fmt"
	"math"
	"unicode"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/overlay"
	"github.com/example/wroomer/internal/viewmath"
)

const (
	MinScale = 0.1
	MaxScale = 10.0

	MinRadiusMultiplier = 0.2
	MaxRadiusMultiplier = 5.0
)

// ErrSizeRejected is returned by SizeRequester implementations that refuse
// a resize.
var ErrSizeRejected = errors.New("window size request rejected")

// ScrollMode says what a scroll gesture adjusts.
type ScrollMode int

const (
	ScrollZoom ScrollMode = iota
	ScrollRotate
	ScrollSpotlightRadius
)

func (m ScrollMode) String() string {
	switch m {
	case ScrollZoom:
		return "zoom"
	case ScrollRotate:
		return "rotate"
	case ScrollSpotlightRadius:
		return "spotlight-radius"
	}
	return fmt.Sprintf("ScrollMode(%d)", int(m))
}

// Viewport holds the window and image sizes in physical pixels.
type Viewport struct {
	WindowSize mgl32.Vec2
	ImageSize  mgl32.Vec2
}

// Spotlight is the derived spotlight state for one frame.
type Spotlight struct {
	Enabled          bool
	RadiusMultiplier float32
	Darkness         float32
	// Radius is a fraction of the window height.
	Radius float32
	// Center is the cursor position normalized to [0,1] window coordinates.
	Center mgl32.Vec2
	// AspectRatio is window width over height.
	AspectRatio float32
}

// Outcome tells the caller what to do after an event.
type Outcome struct {
	Redraw bool
	Exit   bool
	Copy   bool
}

// State is the interactive view state. It is not safe for concurrent use;
// the event loop owns it.
type State struct {
	cfg      Config
	viewport Viewport

	offset          mgl32.Vec2
	committedOffset mgl32.Vec2
	scale           float32
	rotation        float32

	cursor     mgl32.Vec2
	dragAnchor *mgl32.Vec2
	mods       Modifiers
	scrollMode ScrollMode

	spotlightOn bool
	radiusMult  float32

	scaleFactor         float64
	initialSize         mgl32.Vec2
	pendingInitialRefit bool
	// pendingDPIRefit makes the Resized that follows a density change refit
	// into the size the window actually settled on.
	pendingDPIRefit bool

	logo     *overlay.Bouncer
	revision uint64
}

// New creates the state for an image shown in a window, fitted and
// centered.
func New(cfg Config, imageSize, windowSize mgl32.Vec2) *State {
	s := &State{
		cfg:                 cfg.withDefaults(),
		viewport:            Viewport{WindowSize: windowSize, ImageSize: imageSize},
		radiusMult:          1,
		scaleFactor:         1,
		initialSize:         windowSize,
		pendingInitialRefit: true,
		revision:            1,
	}
	if s.cfg.OverlaySupported {
		s.logo = overlay.New(imageSize)
	}
	s.refit()
	return s
}

// Handle applies one event.
func (s *State) Handle(ev Event) Outcome {
	switch e := ev.(type) {
	case Resized:
		return s.resize(e.Width, e.Height)
	case ScaleFactorChanged:
		return s.scaleFactorChanged(e)
	case CursorMoved:
		return s.cursorMoved(mgl32.Vec2{e.X, e.Y})
	case MouseInput:
		return s.mouseInput(e)
	case MouseWheel:
		return s.scroll(e.Delta)
	case ModifiersChanged:
		return s.modifiersChanged(e.Mods)
	case KeyInput:
		return s.keyInput(e)
	}
	return Outcome{}
}

// Tick advances the logo by one frame. It reports whether anything moved.
func (s *State) Tick() bool {
	if s.logo == nil || !s.logo.Visible {
		return false
	}
	s.logo.Step()
	s.bump()
	return true
}

// Reset restores the fitted view.
func (s *State) Reset() {
	s.refit()
	s.rotation = 0
	s.radiusMult = 1
	s.dragAnchor = nil
	s.bump()
}

func (s *State) Config() Config { return s.cfg }
func (s *State) Viewport() Viewport { return s.viewport }
func (s *State) Offset() mgl32.Vec2 { return s.offset }
func (s *State) Scale() float32 { return s.scale }
func (s *State) Rotation() float32 { return s.rotation }
func (s *State) Cursor() mgl32.Vec2 { return s.cursor }
func (s *State) Dragging() bool { return s.dragAnchor != nil }
func (s *State) ScrollMode() ScrollMode { return s.scrollMode }
func (s *State) Modifiers() Modifiers { return s.mods }
func (s *State) Overlay() *overlay.Bouncer { return s.logo }

// Revision increases on every mutation that affects rendering.
func (s *State) Revision() uint64 { return s.revision }

// PendingInitialRefit reports whether the first resize has yet to arrive.
func (s *State) PendingInitialRefit() bool { return s.pendingInitialRefit }

// Transform returns the current image-to-clip-space matrix.
func (s *State) Transform() mgl32.Mat3 {
	return viewmath.Transform(s.offset, s.scale, s.rotation, s.viewport.ImageSize, s.viewport.WindowSize)
}

// Spotlight returns the spotlight parameters derived from the cursor.
func (s *State) Spotlight() Spotlight {
	w, h := s.viewport.WindowSize.X(), s.viewport.WindowSize.Y()
	sp := Spotlight{
		Enabled:          s.spotlightOn,
		RadiusMultiplier: s.radiusMult,
		Darkness:         s.cfg.SpotlightDarkness,
		Radius:           s.cfg.SpotlightRadius * s.radiusMult,
		AspectRatio:      1,
	}
	if w > 0 && h > 0 {
		sp.Center = mgl32.Vec2{s.cursor.X() / w, s.cursor.Y() / h}
		sp.AspectRatio = w / h
	}
	return sp
}

func (s *State) bump() { s.revision++ }

func (s *State) refit() {
	s.offset, s.scale = viewmath.Fit(s.viewport.ImageSize, s.viewport.WindowSize)
	s.committedOffset = s.offset
	if s.dragAnchor != nil {
		anchor := s.cursor
		s.dragAnchor = &anchor
	}
}

func (s *State) resize(w, h float32) Outcome {
	if w <= 0 || h <= 0 {
		return Outcome{}
	}
	size := mgl32.Vec2{w, h}
	s.viewport.WindowSize = size
	refit := s.cfg.CenteringOnResize
	if s.pendingDPIRefit {
		s.pendingDPIRefit = false
		refit = true
	}
	if s.pendingInitialRefit {
		s.pendingInitialRefit = false
		if size != s.initialSize {
			refit = true
		}
	}
	if refit {
		s.refit()
	}
	s.bump()
	return Outcome{Redraw: true}
}

func (s *State) scaleFactorChanged(e ScaleFactorChanged) Outcome {
	if e.ScaleFactor <= 0 || e.ScaleFactor == s.scaleFactor {
		return Outcome{}
	}
	ratio := float32(e.ScaleFactor / s.scaleFactor)
	requested := s.viewport.WindowSize.Mul(1 / ratio)
	if e.Requester != nil {
		if err := e.Requester.RequestSize(requested.X(), requested.Y()); err != nil {
			logging.Logger().Warn("scale factor change: resize refused", "scale", e.ScaleFactor, "err", err)
			return Outcome{}
		}
	}
	s.scaleFactor = e.ScaleFactor
	s.viewport.WindowSize = requested
	s.cursor = s.cursor.Mul(1 / ratio)
	s.refit()
	s.pendingDPIRefit = true
	s.bump()
	return Outcome{Redraw: true}
}

func (s *State) cursorMoved(p mgl32.Vec2) Outcome {
	s.cursor = p
	if s.dragAnchor != nil {
		s.offset = s.committedOffset.Add(p.Sub(*s.dragAnchor))
	}
	s.bump()
	return Outcome{Redraw: s.dragAnchor != nil || s.spotlightOn}
}

func (s *State) mouseInput(e MouseInput) Outcome {
	switch e.Button {
	case ButtonLeft:
		if e.Pressed {
			anchor := s.cursor
			s.dragAnchor = &anchor
			return Outcome{}
		}
		if s.dragAnchor != nil {
			s.committedOffset = s.offset
			s.dragAnchor = nil
			s.bump()
			return Outcome{Redraw: true}
		}
	case ButtonRight:
		if e.Pressed {
			return Outcome{Exit: true}
		}
	case ButtonBack:
		if e.Pressed {
			s.Reset()
			return Outcome{Redraw: true}
		}
	}
	return Outcome{}
}

func (s *State) scroll(d ScrollDelta) Outcome {
	if d.Y == 0 {
		return Outcome{}
	}
	switch s.scrollMode {
	case ScrollRotate:
		s.rotateBy(d)
	case ScrollSpotlightRadius:
		s.resizeSpotlight(d)
	default:
		s.zoomBy(d)
	}
	s.bump()
	return Outcome{Redraw: true}
}

// windowHeight is the divisor for smooth deltas; it never returns zero.
func (s *State) windowHeight() float32 {
	if h := s.viewport.WindowSize.Y(); h > 0 {
		return h
	}
	return 1
}

func (s *State) zoomBy(d ScrollDelta) {
	var mult float64
	switch d.Kind {
	case PixelDelta:
		mult = math.Exp(float64(s.cfg.PixelZoomRate * d.Y / s.windowHeight()))
	default:
		if d.Y > 0 {
			mult = math.Pow(1+float64(s.cfg.LineZoomStep), float64(d.Y))
		} else {
			mult = math.Pow(1-float64(s.cfg.LineZoomStep), float64(-d.Y))
		}
	}
	newScale := mgl32.Clamp(s.scale*float32(mult), MinScale, MaxScale)
	if newScale == s.scale {
		return
	}
	imageCoord := s.cursor.Sub(s.offset).Mul(1 / s.scale)
	s.offset = s.cursor.Sub(imageCoord.Mul(newScale))
	s.scale = newScale
	s.committedOffset = s.offset
	if s.dragAnchor != nil {
		anchor := s.cursor
		s.dragAnchor = &anchor
	}
}

func (s *State) rotateBy(d ScrollDelta) {
	var delta float32
	switch d.Kind {
	case PixelDelta:
		delta = d.Y / s.windowHeight() * 2 * math.Pi
	default:
		delta = d.Y * s.cfg.LineRotateStep
	}
	s.rotation = viewmath.WrapAngle(s.rotation + delta)
}

func (s *State) resizeSpotlight(d ScrollDelta) {
	var delta float32
	switch d.Kind {
	case PixelDelta:
		delta = d.Y / s.windowHeight() * s.cfg.PixelRadiusRate
	default:
		delta = d.Y * s.cfg.LineRadiusStep
	}
	s.radiusMult = mgl32.Clamp(s.radiusMult+delta, MinRadiusMultiplier, MaxRadiusMultiplier)
}

func (s *State) modifiersChanged(m Modifiers) Outcome {
	s.mods = m
	wasOn := s.spotlightOn
	s.spotlightOn = m.Has(ModControl)

	mode := ScrollZoom
	switch {
	case m.Has(ModAlt) && s.cfg.RotationSupported:
		mode = ScrollRotate
	case m.Has(ModControl | ModShift):
		mode = ScrollSpotlightRadius
	}
	if mode != s.scrollMode {
		logging.Logger().Debug("scroll mode changed", "mode", mode)
		s.scrollMode = mode
	}
	if wasOn != s.spotlightOn {
		s.bump()
		return Outcome{Redraw: true}
	}
	return Outcome{}
}

func (s *State) keyInput(e KeyInput) Outcome {
	if !e.Pressed {
		return Outcome{}
	}
	switch e.Key {
	case KeyEscape:
		return Outcome{Exit: true}
	case KeyUp:
		return s.logoAction((*overlay.Bouncer).Faster)
	case KeyDown:
		return s.logoAction((*overlay.Bouncer).Slower)
	case KeyCharacter:
	default:
		return Outcome{}
	}

	switch unicode.ToLower(e.Rune) {
	case 'q':
		return Outcome{Exit: true}
	case 'r':
		s.Reset()
		return Outcome{Redraw: true}
	case 'c':
		if s.mods.Has(ModControl) {
			return Outcome{Copy: true}
		}
	case 'l':
		return s.logoAction((*overlay.Bouncer).Toggle)
	case '>':
		return s.logoAction((*overlay.Bouncer).Faster)
	case '<':
		return s.logoAction((*overlay.Bouncer).Slower)
	case '=':
		return s.logoAction((*overlay.Bouncer).ResetSpeed)
	}
	return Outcome{}
}

func (s *State) logoAction(fn func(*overlay.Bouncer)) Outcome {
	if s.logo == nil {
		return Outcome{}
	}
	fn(s.logo)
	s.bump()
	return Outcome{Redraw: true}
}
