package uniforms

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/example/wroomer/internal/interaction"
)

func floatAt(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestEncodeImageColumnLayout(t *testing.T) {
	m := mgl32.Mat3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	buf := EncodeImage(m)
	if len(buf) != ImageBlockSize {
		t.Fatalf("len = %d", len(buf))
	}
	want := []float32{1, 2, 3, 0, 4, 5, 6, 0, 7, 8, 9, 0}
	for i, w := range want {
		if got := floatAt(buf, i*4); got != w {
			t.Fatalf("float %d = %v, want %v", i, got, w)
		}
	}
	back, err := DecodeImage(buf)
	if err != nil || back != m {
		t.Fatalf("DecodeImage = %v, %v", back, err)
	}
}

func TestEncodeSpotlightOffsets(t *testing.T) {
	buf := EncodeSpotlight(interaction.Spotlight{
		Enabled:     true,
		Center:      mgl32.Vec2{0.25, 0.75},
		Radius:      0.3,
		Darkness:    0.9,
		AspectRatio: 1.5,
	})
	if len(buf) != SpotlightBlockSize {
		t.Fatalf("len = %d", len(buf))
	}
	for off, want := range map[int]float32{0: 0.25, 4: 0.75, 8: 0.3, 12: 0.9, 16: 1.5, 20: 0, 28: 0} {
		if got := floatAt(buf, off); got != want {
			t.Errorf("offset %d = %v, want %v", off, got, want)
		}
	}

	off := EncodeSpotlight(interaction.Spotlight{Darkness: 0.9})
	if p, _ := DecodeSpotlight(off); p.Darkness != 0 {
		t.Fatalf("disabled spotlight darkness = %v", p.Darkness)
	}
}

func TestEncodeOverlay(t *testing.T) {
	p := OverlayParams{
		Origin: mgl32.Vec2{0.1, 0.2},
		Size:   mgl32.Vec2{0.2, 0.2},
		Color:  [4]float32{1, 0, 0, 0.5},
	}
	buf := EncodeOverlay(p)
	if floatAt(buf, 16) != 1 || floatAt(buf, 28) != 0.5 {
		t.Fatalf("colour not at offset 16")
	}
	back, err := DecodeOverlay(buf)
	if err != nil || back != p {
		t.Fatalf("DecodeOverlay = %+v, %v", back, err)
	}
}

func TestDecodeShortBuffer(t *testing.T) {
	if _, err := DecodeImage(make([]byte, 10)); err == nil {
		t.Fatalf("expected error for short image block")
	}
	if _, err := DecodeSpotlight(nil); err == nil {
		t.Fatalf("expected error for short spotlight block")
	}
	if _, err := DecodeOverlay(make([]byte, 31)); err == nil {
		t.Fatalf("expected error for short overlay block")
	}
}

func TestLayoutEntries(t *testing.T) {
	for _, b := range Blocks {
		e := b.LayoutEntry()
		if e.Binding != uint32(b) {
			t.Errorf("%v binding = %d", b, e.Binding)
		}
		if e.Buffer == nil || e.Buffer.Type != gputypes.BufferBindingTypeUniform {
			t.Errorf("%v is not a uniform binding", b)
			continue
		}
		if e.Buffer.MinBindingSize != b.Size() || b.Size()%16 != 0 {
			t.Errorf("%v min size = %d", b, e.Buffer.MinBindingSize)
		}
	}
}

type recorder struct {
	writes map[Block]int
	last   map[Block][]byte
	err    error
}

func newRecorder() *recorder {
	return &recorder{writes: map[Block]int{}, last: map[Block][]byte{}}
}

func (r *recorder) WriteBlock(b Block, data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.writes[b]++
	r.last[b] = data
	return nil
}

func newState(overlay bool) *interaction.State {
	cfg := interaction.DefaultConfig()
	cfg.OverlaySupported = overlay
	return interaction.New(cfg, mgl32.Vec2{200, 100}, mgl32.Vec2{100, 100})
}

func TestSyncIsIdempotent(t *testing.T) {
	s := newState(false)
	var sync Synchronizer
	w := newRecorder()

	st, err := sync.Sync(s, w)
	if err != nil || !st.Image || st.Spotlight || st.Overlay {
		t.Fatalf("first sync = %+v, %v", st, err)
	}
	st, _ = sync.Sync(s, w)
	if st.Image {
		t.Fatalf("unchanged state rewrote the image block")
	}
	if w.writes[BlockImage] != 1 {
		t.Fatalf("image writes = %d", w.writes[BlockImage])
	}

	sync.Invalidate()
	if st, _ = sync.Sync(s, w); !st.Image {
		t.Fatalf("invalidate did not force a write")
	}
}

func TestSyncWritesAfterMutation(t *testing.T) {
	s := newState(false)
	var sync Synchronizer
	w := newRecorder()
	sync.Sync(s, w)

	s.Handle(interaction.MouseWheel{Delta: interaction.ScrollDelta{Y: 1}})
	sync.Sync(s, w)
	m, _ := DecodeImage(w.last[BlockImage])
	if m != s.Transform() {
		t.Fatalf("written transform is stale")
	}

	s.Handle(interaction.ModifiersChanged{Mods: interaction.ModControl})
	st, _ := sync.Sync(s, w)
	if !st.Spotlight {
		t.Fatalf("enabling the spotlight did not write its block")
	}
	s.Handle(interaction.CursorMoved{X: 10, Y: 20})
	sync.Sync(s, w)
	p, _ := DecodeSpotlight(w.last[BlockSpotlight])
	if p.Center != (mgl32.Vec2{0.1, 0.2}) {
		t.Fatalf("spotlight center = %v", p.Center)
	}
}

func TestSyncOverlayEveryVisibleFrame(t *testing.T) {
	s := newState(true)
	var sync Synchronizer
	w := newRecorder()
	for i := 0; i < 3; i++ {
		sync.Sync(s, w)
	}
	if w.writes[BlockOverlay] != 3 {
		t.Fatalf("overlay writes = %d, want 3", w.writes[BlockOverlay])
	}
	p, _ := DecodeOverlay(w.last[BlockOverlay])
	if p.Size != (mgl32.Vec2{0.2, 0.2}) {
		t.Fatalf("overlay size = %v", p.Size)
	}
	s.Overlay().Toggle()
	if st, _ := sync.Sync(s, w); st.Overlay {
		t.Fatalf("hidden overlay written")
	}
}

func TestSyncRetriesAfterError(t *testing.T) {
	s := newState(false)
	var sync Synchronizer
	w := newRecorder()
	w.err = errors.New("device lost")
	if _, err := sync.Sync(s, w); err == nil {
		t.Fatalf("expected error")
	}
	w.err = nil
	if st, _ := sync.Sync(s, w); !st.Image {
		t.Fatalf("failed write was not retried")
	}
}
