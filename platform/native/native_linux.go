//go:build linux

package native

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/nativeinput/platform/x11"
)

// Open connects to the X display.
func Open(logger *slog.Logger) (*Backend, error) {
	d, err := x11.Open(logger)
	if err != nil {
		return nil, fmt.Errorf("x11 backend: %w", err)
	}
	return &Backend{Name: "x11", Cursor: d, Window: d.Root(), closer: d}, nil
}
