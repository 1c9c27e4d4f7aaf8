//go:build windows

package win32

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Alia5/nativeinput/geom"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos     = user32.NewProc("GetCursorPos")
	procSetCursorPos     = user32.NewProc("SetCursorPos")
	procShowCursor       = user32.NewProc("ShowCursor")
	procClipCursor       = user32.NewProc("ClipCursor")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procClientToScreen   = user32.NewProc("ClientToScreen")
	procIsWindow         = user32.NewProc("IsWindow")
	procGetDesktopWindow = user32.NewProc("GetDesktopWindow")
)

type point struct {
	X, Y int32
}

// Cursor implements platform.Cursor with user32. Failures are logged at
// debug level and otherwise ignored.
type Cursor struct {
	logger *slog.Logger
}

// NewCursor returns the system cursor. A nil logger uses slog.Default().
func NewCursor(logger *slog.Logger) *Cursor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cursor{logger: logger}
}

// Load resolves every user32 procedure the backend needs.
func Load() error {
	for _, p := range []*windows.LazyProc{
		procGetCursorPos, procSetCursorPos, procShowCursor, procClipCursor,
		procGetClientRect, procClientToScreen, procIsWindow, procGetDesktopWindow,
	} {
		if err := p.Find(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cursor) Position() geom.Point {
	var pt point
	if r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt))); r == 0 {
		c.logger.Debug("GetCursorPos failed", "error", err)
	}
	return geom.Pt(int(pt.X), int(pt.Y))
}

func (c *Cursor) SetPosition(p geom.Point) {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(p.X)), uintptr(int32(p.Y))); r == 0 {
		c.logger.Debug("SetCursorPos failed", "error", err, "position", p)
	}
}

// Show adjusts the user32 display counter by one.
func (c *Cursor) Show(visible bool) {
	var b uintptr
	if visible {
		b = 1
	}
	_, _, _ = procShowCursor.Call(b)
}

func (c *Cursor) Clip(r geom.Rect) {
	rect := windows.Rect{Left: int32(r.Left()), Top: int32(r.Top()), Right: int32(r.Right()), Bottom: int32(r.Bottom())}
	if ok, _, err := procClipCursor.Call(uintptr(unsafe.Pointer(&rect))); ok == 0 {
		c.logger.Debug("ClipCursor failed", "error", err, "rect", r)
	}
}

func (c *Cursor) Unclip() {
	if ok, _, err := procClipCursor.Call(0); ok == 0 {
		c.logger.Debug("ClipCursor(NULL) failed", "error", err)
	}
}
