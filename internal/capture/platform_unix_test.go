//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"testing"
)

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}

func TestAllScreensUsesPortalOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	fb := &fakeBackend{monitors: []MonitorInfo{{Rect: image.Rect(0, 0, 10, 10)}}}
	useBackend(t, fb)
	called := false
	usePortal(t, func(CaptureOptions) (*image.RGBA, error) {
		called = true
		return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
	})
	if _, err := AllScreens(CaptureOptions{}); err != nil {
		t.Fatalf("AllScreens: %v", err)
	}
	if !called || len(fb.captured) != 0 {
		t.Fatalf("wayland capture used X11")
	}
}
