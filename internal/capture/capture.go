package capture

import (
	"fmt"
	"image"
	"image/draw"
	"sort"

	"github.com/example/wroomer/internal/logging"
)

// CaptureOptions tunes desktop captures.
type CaptureOptions struct {
	IncludeCursor bool
}

var portalScreenshotFn = portalDesktopScreenshot

// AllScreens captures every monitor and places the shots side by side,
// ordered by their horizontal position in the desktop layout. The result is
// as wide as all monitors together and as tall as the tallest one.
//
// On Wayland, or when the X server cannot provide the monitor layout, the
// desktop portal is asked for a screenshot of the whole desktop instead.
func AllScreens(opts CaptureOptions) (*image.RGBA, error) {
	if runningOnWayland() {
		return portalScreenshotFn(opts)
	}
	monitors, err := backend.ListMonitors()
	if err != nil {
		logging.Logger().Info("capture: monitor list unavailable, using portal", "err", err)
		img, perr := portalScreenshotFn(opts)
		if perr != nil {
			return nil, fmt.Errorf("list monitors: %v; portal fallback failed: %w", err, perr)
		}
		return img, nil
	}
	if len(monitors) == 0 {
		return nil, errNoMonitors
	}
	sorted := append([]MonitorInfo(nil), monitors...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rect.Min.X < sorted[j].Rect.Min.X })

	shots := make([]*image.RGBA, 0, len(sorted))
	for _, mon := range sorted {
		img, err := backend.CaptureRect(mon.Rect)
		if err != nil {
			return nil, fmt.Errorf("capture monitor %d (%s): %w", mon.Index, mon.Name, err)
		}
		shots = append(shots, img)
	}
	return Compose(shots), nil
}

// MonitorScreenshot captures the monitor matching selector.
func MonitorScreenshot(selector string, opts CaptureOptions) (*image.RGBA, error) {
	monitors, err := backend.ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", selector, err)
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return nil, err
	}
	if !runningOnWayland() {
		if img, err := backend.CaptureRect(mon.Rect); err == nil {
			return img, nil
		}
	}
	shot, err := portalScreenshotFn(opts)
	if err != nil {
		return nil, fmt.Errorf("capture monitor %q: %w", selector, err)
	}
	return cropToRect(shot, mon.Rect)
}

// Compose places images left to right, top-aligned, on a transparent
// canvas.
func Compose(images []*image.RGBA) *image.RGBA {
	width, height := 0, 0
	for _, img := range images {
		b := img.Bounds()
		width += b.Dx()
		height = max(height, b.Dy())
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(out, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx()
	}
	return out
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
