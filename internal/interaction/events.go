package interaction

// Event is one input notification for the state machine. The set of event
// types is closed; State.Handle switches on the concrete type.
type Event interface {
	isEvent()
}

// Resized reports a new window size in physical pixels.
type Resized struct {
	Width, Height float32
}

// ScaleFactorChanged reports a new display scale factor. Requester is asked
// to resize the window to compensate and may refuse.
type ScaleFactorChanged struct {
	ScaleFactor float64
	Requester   SizeRequester
}

// CursorMoved reports the pointer position in window pixels.
type CursorMoved struct {
	X, Y float32
}

// MouseInput reports a button press or release.
type MouseInput struct {
	Button  Button
	Pressed bool
}

// MouseWheel reports a scroll.
type MouseWheel struct {
	Delta ScrollDelta
}

// ModifiersChanged reports the complete modifier state.
type ModifiersChanged struct {
	Mods Modifiers
}

// KeyInput reports a key press or release. Rune is set for character keys.
type KeyInput struct {
	Key     Key
	Rune    rune
	Pressed bool
}

func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (CursorMoved) isEvent()        {}
func (MouseInput) isEvent()         {}
func (MouseWheel) isEvent()         {}
func (ModifiersChanged) isEvent()   {}
func (KeyInput) isEvent()           {}

// SizeRequester asks the windowing layer for a new inner size. A non-nil
// error means the request was refused.
type SizeRequester interface {
	RequestSize(width, height float32) error
}

// SizeRequesterFunc adapts a function to SizeRequester.
type SizeRequesterFunc func(width, height float32) error

// RequestSize calls f.
func (f SizeRequesterFunc) RequestSize(width, height float32) error { return f(width, height) }

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle
	ButtonBack
	ButtonForward
)

// DeltaKind tells how a scroll delta is measured.
type DeltaKind int

const (
	// LineDelta counts wheel notches.
	LineDelta DeltaKind = iota
	// PixelDelta is a smooth touchpad delta in pixels.
	PixelDelta
)

// ScrollDelta is a wheel or touchpad scroll amount. Positive Y scrolls up.
type ScrollDelta struct {
	Kind DeltaKind
	X, Y float32
}

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModControl Modifiers = 1 << iota
	ModShift
	ModAlt
	ModSuper
)

// Has reports whether every modifier in m2 is held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Key names the non-character keys the viewer reacts to. Character keys use
// KeyCharacter with KeyInput.Rune set.
type Key int

const (
	KeyUnknown Key = iota
	KeyCharacter
	KeyEscape
	KeyUp
	KeyDown
)
