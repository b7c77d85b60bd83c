package appstate

import (
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"

	"github.com/example/wroomer/internal/interaction"
)

// X11 reports the side buttons as 8 and 9.
const (
	mouseButtonBack    mouse.Button = 8
	mouseButtonForward mouse.Button = 9
)

// translator turns shiny window events into interaction events. It tracks
// the state shiny only reports implicitly: held modifiers, the last pointer
// position and the display density.
type translator struct {
	mods      interaction.Modifiers
	cursor    [2]float32
	hasCursor bool

	// basePPP is the density of the first size event; later densities are
	// reported relative to it.
	basePPP float32
	lastPPP float32

	requester interaction.SizeRequester
}

func (t *translator) translate(e any) []interaction.Event {
	switch e := e.(type) {
	case size.Event:
		return t.size(e)
	case mouse.Event:
		return t.mouse(e)
	case key.Event:
		return t.key(e)
	}
	return nil
}

func (t *translator) size(e size.Event) []interaction.Event {
	var out []interaction.Event
	if ppp := e.PixelsPerPt; ppp > 0 {
		switch {
		case t.basePPP == 0:
			t.basePPP, t.lastPPP = ppp, ppp
		case ppp != t.lastPPP:
			t.lastPPP = ppp
			out = append(out, interaction.ScaleFactorChanged{
				ScaleFactor: float64(ppp / t.basePPP),
				Requester:   t.requester,
			})
		}
	}
	return append(out, interaction.Resized{Width: float32(e.WidthPx), Height: float32(e.HeightPx)})
}

func (t *translator) syncMods(m key.Modifiers, out []interaction.Event) []interaction.Event {
	mods := fromKeyModifiers(m)
	if mods == t.mods {
		return out
	}
	t.mods = mods
	return append(out, interaction.ModifiersChanged{Mods: mods})
}

func (t *translator) mouse(e mouse.Event) []interaction.Event {
	out := t.syncMods(e.Modifiers, nil)
	if pos := [2]float32{e.X, e.Y}; !t.hasCursor || pos != t.cursor {
		t.cursor, t.hasCursor = pos, true
		out = append(out, interaction.CursorMoved{X: e.X, Y: e.Y})
	}
	if e.Button.IsWheel() {
		if e.Direction == mouse.DirRelease {
			return out
		}
		d := interaction.ScrollDelta{Kind: interaction.LineDelta}
		switch e.Button {
		case mouse.ButtonWheelUp:
			d.Y = 1
		case mouse.ButtonWheelDown:
			d.Y = -1
		case mouse.ButtonWheelLeft:
			d.X = -1
		case mouse.ButtonWheelRight:
			d.X = 1
		}
		return append(out, interaction.MouseWheel{Delta: d})
	}
	if e.Direction != mouse.DirPress && e.Direction != mouse.DirRelease {
		return out
	}
	b, ok := fromMouseButton(e.Button)
	if !ok {
		return out
	}
	return append(out, interaction.MouseInput{Button: b, Pressed: e.Direction == mouse.DirPress})
}

func (t *translator) key(e key.Event) []interaction.Event {
	// The modifier field of a modifier key's own event describes the state
	// before the key changed.
	if bit, ok := modifierCode(e.Code); ok {
		mods := fromKeyModifiers(e.Modifiers)
		switch e.Direction {
		case key.DirPress:
			mods |= bit
		case key.DirRelease:
			mods &^= bit
		}
		if mods == t.mods {
			return nil
		}
		t.mods = mods
		return []interaction.Event{interaction.ModifiersChanged{Mods: mods}}
	}

	out := t.syncMods(e.Modifiers, nil)
	ki := interaction.KeyInput{Pressed: e.Direction != key.DirRelease}
	switch e.Code {
	case key.CodeEscape:
		ki.Key = interaction.KeyEscape
	case key.CodeUpArrow:
		ki.Key = interaction.KeyUp
	case key.CodeDownArrow:
		ki.Key = interaction.KeyDown
	default:
		r := e.Rune
		if r > 0 && r < 0x20 && t.mods.Has(interaction.ModControl) {
			r += 'a' - 1
		}
		if r <= 0 {
			return out
		}
		ki.Key, ki.Rune = interaction.KeyCharacter, r
	}
	return append(out, ki)
}

func fromKeyModifiers(m key.Modifiers) interaction.Modifiers {
	var mods interaction.Modifiers
	if m&key.ModControl != 0 {
		mods |= interaction.ModControl
	}
	if m&key.ModShift != 0 {
		mods |= interaction.ModShift
	}
	if m&key.ModAlt != 0 {
		mods |= interaction.ModAlt
	}
	if m&key.ModMeta != 0 {
		mods |= interaction.ModSuper
	}
	return mods
}

func modifierCode(c key.Code) (interaction.Modifiers, bool) {
	switch c {
	case key.CodeLeftControl, key.CodeRightControl:
		return interaction.ModControl, true
	case key.CodeLeftShift, key.CodeRightShift:
		return interaction.ModShift, true
	case key.CodeLeftAlt, key.CodeRightAlt:
		return interaction.ModAlt, true
	case key.CodeLeftGUI, key.CodeRightGUI:
		return interaction.ModSuper, true
	}
	return 0, false
}

func fromMouseButton(b mouse.Button) (interaction.Button, bool) {
	switch b {
	case mouse.ButtonLeft:
		return interaction.ButtonLeft, true
	case mouse.ButtonRight:
		return interaction.ButtonRight, true
	case mouse.ButtonMiddle:
		return interaction.ButtonMiddle, true
	case mouseButtonBack:
		return interaction.ButtonBack, true
	case mouseButtonForward:
		return interaction.ButtonForward, true
	}
	return 0, false
}
