// Package notify sends desktop notifications after captures, saves and
// clipboard copies.
package notify

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture fires when a desktop capture completes.
	EventCapture Event = "capture"
	// EventSave fires when a capture is written to disk.
	EventSave Event = "save"
	// EventCopy fires when the view is copied to the clipboard.
	EventCopy Event = "copy"
)

// AppName is the default notification title.
const AppName = "Wroomer"

// PreviewSize bounds the longest edge of notification thumbnails.
const PreviewSize = 256

var sendFn = platform.Notify

// Preferences describes notification text loaded from the environment.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: AppName,
		Templates: map[Event]string{
			EventCapture: "Captured %s",
			EventSave:    "Saved %s",
			EventCopy:    "Copied %s to the clipboard",
		},
	}
}

// LoadPreferences applies WROOMER_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("WROOMER_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventCapture: "WROOMER_NOTIFY_CAPTURE_TEXT",
		EventSave:    "WROOMER_NOTIFY_SAVE_TEXT",
		EventCopy:    "WROOMER_NOTIFY_COPY_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Notifier sends notifications for the events it has been enabled for.
// A nil Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		prefs:   Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))},
		enabled: make(map[Event]bool),
	}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event notifications are on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Capture announces a finished capture with a thumbnail of img.
func (n *Notifier) Capture(detail string, img image.Image) {
	n.withPreview(EventCapture, detail, img)
}

// Copy announces a clipboard copy with a thumbnail of img.
func (n *Notifier) Copy(detail string, img image.Image) {
	if strings.TrimSpace(detail) == "" {
		detail = "view"
	}
	n.withPreview(EventCopy, detail, img)
}

// Save announces a written file, using the file itself as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

func (n *Notifier) withPreview(event Event, detail string, img image.Image) {
	if !n.Enabled(event) {
		return
	}
	var opts platform.Options
	if img != nil && !img.Bounds().Empty() {
		path, cleanup, err := createPreview(Thumbnail(img, PreviewSize))
		if err != nil {
			logging.Logger().Warn("notification preview", "err", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	opts.AppName = n.prefs.Title
	err := sendFn(n.prefs.Title, body, opts)
	switch {
	case errors.Is(err, platform.ErrUnsupported):
		logging.Logger().Debug("notification skipped", "event", string(event), "err", err)
	case err != nil:
		logging.Logger().Warn("notification failed", "event", string(event), "err", err)
	}
}

// Thumbnail scales img so its longest edge is at most size pixels. Smaller
// images are returned unchanged.
func Thumbnail(img image.Image, size int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if longest <= size || size <= 0 {
		return img
	}
	w := max(1, b.Dx()*size/longest)
	h := max(1, b.Dy()*size/longest)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "wroomer-preview-*.png")
	if err != nil {
		return "", nil, fmt.Errorf("create preview: %w", err)
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, fmt.Errorf("encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logging.Logger().Warn("remove notification preview", "path", path, "err", err)
		}
	}
	return path, cleanup, nil
}
