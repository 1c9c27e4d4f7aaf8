//go:build windows

package native

import (
	"fmt"
	"log/slog"

	"github.com/Alia5/nativeinput/platform/win32"
)

// Open binds to the user32 cursor and the desktop window.
func Open(logger *slog.Logger) (*Backend, error) {
	if err := win32.Load(); err != nil {
		return nil, fmt.Errorf("win32 backend: %w", err)
	}
	return &Backend{Name: "win32", Cursor: win32.NewCursor(logger), Window: win32.DesktopWindow(logger)}, nil
}
