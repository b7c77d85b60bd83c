package capture

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

type fakeBackend struct {
	monitors    []MonitorInfo
	monitorsErr error
	captureErr  error
	captured    []image.Rectangle
}

func (f *fakeBackend) ListMonitors() ([]MonitorInfo, error) {
	if f.monitorsErr != nil {
		return nil, f.monitorsErr
	}
	return f.monitors, nil
}

func (f *fakeBackend) CaptureRect(rect image.Rectangle) (*image.RGBA, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	f.captured = append(f.captured, rect)
	img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	fill := color.RGBA{R: uint8(rect.Min.X), A: 255}
	for y := 0; y < rect.Dy(); y++ {
		for x := 0; x < rect.Dx(); x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	return img, nil
}

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	prev := backend
	backend = b
	t.Cleanup(func() { backend = prev })
}

func usePortal(t *testing.T, fn func(CaptureOptions) (*image.RGBA, error)) {
	t.Helper()
	prev := portalScreenshotFn
	portalScreenshotFn = fn
	t.Cleanup(func() { portalScreenshotFn = prev })
}

func notWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
}

func TestAllScreensComposesLeftToRight(t *testing.T) {
	notWayland(t)
	fb := &fakeBackend{monitors: []MonitorInfo{
		{Index: 0, Name: "right", Rect: image.Rect(100, 0, 150, 40)},
		{Index: 1, Name: "left", Rect: image.Rect(0, 0, 100, 60)},
	}}
	useBackend(t, fb)
	usePortal(t, func(CaptureOptions) (*image.RGBA, error) {
		t.Fatal("portal should not be used")
		return nil, nil
	})

	img, err := AllScreens(CaptureOptions{})
	if err != nil {
		t.Fatalf("AllScreens: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 150, 60) {
		t.Fatalf("bounds = %v, want 150x60", img.Bounds())
	}
	if got := img.RGBAAt(10, 10).R; got != 0 {
		t.Fatalf("left monitor pixel R = %d, want 0", got)
	}
	if got := img.RGBAAt(110, 10).R; got != 100 {
		t.Fatalf("right monitor pixel R = %d, want 100", got)
	}
	if got := img.RGBAAt(110, 50); got.A != 0 {
		t.Fatalf("area below the shorter monitor = %+v, want transparent", got)
	}
}

func TestAllScreensFallsBackToPortal(t *testing.T) {
	notWayland(t)
	listErr := errors.New("no X server")
	useBackend(t, &fakeBackend{monitorsErr: listErr})
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	usePortal(t, func(CaptureOptions) (*image.RGBA, error) { return want, nil })

	got, err := AllScreens(CaptureOptions{})
	if err != nil || got != want {
		t.Fatalf("AllScreens = %v, %v; want portal image", got, err)
	}

	portalErr := errors.New("portal denied")
	usePortal(t, func(CaptureOptions) (*image.RGBA, error) { return nil, portalErr })
	_, err = AllScreens(CaptureOptions{})
	if !errors.Is(err, portalErr) || !strings.Contains(err.Error(), "no X server") {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestAllScreensCaptureError(t *testing.T) {
	notWayland(t)
	captureErr := errors.New("BadMatch")
	useBackend(t, &fakeBackend{
		monitors:   []MonitorInfo{{Index: 0, Name: "eDP-1", Rect: image.Rect(0, 0, 10, 10)}},
		captureErr: captureErr,
	})
	_, err := AllScreens(CaptureOptions{})
	if !errors.Is(err, captureErr) || !strings.Contains(err.Error(), "eDP-1") {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
}

func TestMonitorScreenshotCropsPortalImage(t *testing.T) {
	notWayland(t)
	useBackend(t, &fakeBackend{
		monitors:   []MonitorInfo{{Index: 0, Name: "HDMI-1", Rect: image.Rect(5, 0, 15, 4)}},
		captureErr: errors.New("GetImage failed"),
	})
	usePortal(t, func(CaptureOptions) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 20, 10)), nil
	})
	img, err := MonitorScreenshot("hdmi", CaptureOptions{})
	if err != nil {
		t.Fatalf("MonitorScreenshot: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 10, 4) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestFindMonitor(t *testing.T) {
	monitors := []MonitorInfo{
		{Index: 0, Name: "DP-1"},
		{Index: 1, Name: "HDMI-1", Primary: true},
	}
	cases := map[string]int{"": 0, "primary": 1, "#1": 1, "0": 0, "hdmi": 1}
	for sel, want := range cases {
		got, err := FindMonitor(monitors, sel)
		if err != nil || got.Index != want {
			t.Errorf("FindMonitor(%q) = %v, %v; want index %d", sel, got.Index, err, want)
		}
	}
	if _, err := FindMonitor(monitors, "7"); err == nil {
		t.Fatal("expected out of range error")
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}

func TestCompose(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 2, 3))
	b := image.NewRGBA(image.Rect(4, 4, 7, 5))
	out := Compose([]*image.RGBA{a, b})
	if out.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if Compose(nil).Bounds().Dx() != 0 {
		t.Fatal("empty compose should be empty")
	}
}
