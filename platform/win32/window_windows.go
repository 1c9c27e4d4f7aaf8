//go:build windows

package win32

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

// Window implements platform.Window for an HWND. The owner's window
// procedure must pass every message to HandleMessage.
type Window struct {
	*Messages
	hwnd   windows.HWND
	logger *slog.Logger
}

// NewWindow wraps hwnd. dispatch receives the translated input events.
func NewWindow(hwnd windows.HWND, dispatch func(platform.Event), logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	return &Window{Messages: NewMessages(dispatch), hwnd: hwnd, logger: logger}
}

// DesktopWindow wraps the desktop window, whose client area is the primary
// screen. It never receives messages.
func DesktopWindow(logger *slog.Logger) *Window {
	h, _, _ := procGetDesktopWindow.Call()
	return NewWindow(windows.HWND(h), nil, logger)
}

// HWND returns the wrapped handle.
func (w *Window) HWND() windows.HWND { return w.hwnd }

// HandleMessage is Messages.Handle for use from a window procedure.
func (w *Window) HandleMessage(msg uint32, wParam, lParam uintptr) bool {
	return w.Handle(msg, wParam, lParam)
}

func (w *Window) ClientSize() geom.Size {
	var r windows.Rect
	if ok, _, err := procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r))); ok == 0 {
		w.logger.Debug("GetClientRect failed", "error", err)
		return geom.Size{}
	}
	return geom.Size{Width: int(r.Right - r.Left), Height: int(r.Bottom - r.Top)}
}

func (w *Window) ClientToScreen(p geom.Point) geom.Point {
	pt := point{X: int32(p.X), Y: int32(p.Y)}
	if ok, _, err := procClientToScreen.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&pt))); ok == 0 {
		w.logger.Debug("ClientToScreen failed", "error", err)
		return p
	}
	return geom.Pt(int(pt.X), int(pt.Y))
}

// Disposed reports whether the handle no longer identifies a window.
func (w *Window) Disposed() bool {
	if w == nil || w.hwnd == 0 {
		return true
	}
	ok, _, _ := procIsWindow.Call(uintptr(w.hwnd))
	return ok == 0
}
