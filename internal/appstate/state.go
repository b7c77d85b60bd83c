// Package appstate runs the viewer window: it translates shiny events for
// the interaction state machine and presents frames from the software
// renderer.
package appstate

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"

	"github.com/example/wroomer/internal/interaction"
	"github.com/example/wroomer/internal/logging"
	"github.com/example/wroomer/internal/notify"
	"github.com/example/wroomer/internal/render"
	"github.com/example/wroomer/internal/theme"
)

// frameInterval paces the overlay animation.
const frameInterval = time.Second / 60

// ErrNoImage is returned by Run when no image was supplied.
var ErrNoImage = errors.New("appstate: no image to view")

// AppState holds the viewer configuration.
type AppState struct {
	Image    *image.RGBA
	Config   interaction.Config
	Theme    *theme.Theme
	Notifier *notify.Notifier
	Title    string

	onClose   func()
	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the image displayed by the application.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithConfig sets the interaction configuration.
func WithConfig(cfg interaction.Config) Option { return func(a *AppState) { a.Config = cfg } }

// WithTheme sets the background and spotlight colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the notifier used after clipboard copies.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOnClose registers fn to run once when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with defaults for anything opts leave unset.
func New(opts ...Option) *AppState {
	a := &AppState{
		Config: interaction.DefaultConfig(),
		Theme:  theme.Default(),
		Title:  notify.AppName,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run opens the window and blocks until it is closed.
func (a *AppState) Run() error {
	if a.Image == nil || a.Image.Bounds().Empty() {
		return ErrNoImage
	}
	driver.Main(func(s screen.Screen) { a.err = a.Main(s) })
	return a.err
}

// Main runs the event loop on s.
func (a *AppState) Main(s screen.Screen) error {
	size := initialWindowSize(a.Image.Bounds())
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: size.X, Height: size.Y, Title: a.Title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()
	defer a.notifyClose()

	th := a.Theme
	if th == nil {
		th = theme.Default()
	}
	v, err := newViewer(a.Image, a.Config, size,
		render.WithBackground(th.Background),
		render.WithSpotlightTint(th.Spotlight),
		render.WithPresenter(func(frame *image.RGBA) error { return present(s, w, frame) }),
	)
	if err != nil {
		return err
	}
	v.notifier = a.Notifier

	var animating atomic.Bool
	done := make(chan struct{})
	defer close(done)
	go func() {
		t := time.NewTicker(frameInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if animating.Load() {
					w.Send(paint.Event{})
				}
			case <-done:
				return
			}
		}
	}()

	pending := false
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case paint.Event:
			pending = false
			v.paint()
		case error:
			logging.Logger().Error("window event", "err", e)
		default:
			out := v.handle(e)
			if out.Exit {
				return nil
			}
			if out.Redraw && !pending {
				pending = true
				w.Send(paint.Event{})
			}
		}
		animating.Store(v.animating())
	}
}

// present copies frame into a shiny buffer and publishes it.
func present(s screen.Screen, w screen.Window, frame *image.RGBA) error {
	b, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		return fmt.Errorf("new buffer: %w", err)
	}
	defer b.Release()
	draw.Draw(b.RGBA(), b.Bounds(), frame, frame.Bounds().Min, draw.Src)
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
	return nil
}
