// Package platform delivers desktop notifications through the host's
// notification center.
package platform

import (
	"errors"
	"time"
)

// DefaultTimeout is how long a notification stays visible when Options does
// not say otherwise.
const DefaultTimeout = 5 * time.Second

// ErrUnsupported is returned by Notify on systems without a supported
// notification center.
var ErrUnsupported = errors.New("desktop notifications are not supported")

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender. Empty means "Wroomer".
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is the display duration hint. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Wroomer"
	}
	return o.AppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
