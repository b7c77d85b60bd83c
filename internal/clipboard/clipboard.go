// Package clipboard copies the current view to the system clipboard.
package clipboard

import "errors"

// ErrEmptyImage is returned when there is nothing to copy.
var ErrEmptyImage = errors.New("clipboard: empty image")
