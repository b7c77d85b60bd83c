//go:build !linux && !darwin && !windows

package platform

import (
	"fmt"
	"runtime"
)

// Notify always fails with ErrUnsupported.
func Notify(title, body string, opts Options) error {
	return fmt.Errorf("%w on %s", ErrUnsupported, runtime.GOOS)
}
