// Package native opens the OS backend for the running platform: user32 on
// Windows and X11 on Linux.
package native

import (
	"errors"
	"io"

	"github.com/Alia5/nativeinput/platform"
)

// ErrUnsupported is returned by Open on platforms without a native backend.
var ErrUnsupported = errors.New("no native input backend for this platform")

// Backend bundles the collaborators of a native platform. Window covers the
// whole primary screen.
type Backend struct {
	Name   string
	Cursor platform.Cursor
	Window platform.Window
	closer io.Closer
}

// Close releases the backend's OS resources.
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
