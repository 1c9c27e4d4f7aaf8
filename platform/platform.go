// Package platform declares the collaborators the input devices are driven
// by: OS cursor primitives, native windows, application focus, and the
// discrete input events a backend's message translation produces.
package platform

import "github.com/Alia5/nativeinput/geom"

// Cursor is the process-wide OS cursor. All coordinates are in screen space.
type Cursor interface {
	// Position returns the absolute cursor position.
	Position() geom.Point
	// SetPosition moves the cursor.
	SetPosition(p geom.Point)
	// Show shows or hides the cursor.
	Show(visible bool)
	// Clip confines cursor movement to r.
	Clip(r geom.Rect)
	// Unclip releases any confinement installed with Clip.
	Unclip()
}

// Window is a native window supplying input. The caller owns its lifetime.
type Window interface {
	// ClientSize returns the size of the drawable area.
	ClientSize() geom.Size
	// ClientToScreen converts a client-space point to screen space.
	ClientToScreen(p geom.Point) geom.Point
	// Disposed reports whether the native window has been destroyed.
	Disposed() bool
	// Observe registers o for geometry and lifecycle notifications. The
	// returned func unregisters it and is safe to call more than once.
	Observe(o WindowObserver) (cancel func())
}

// WindowObserver receives geometry and lifecycle notifications from a Window.
type WindowObserver interface {
	WindowClosed()
	// WindowResized carries the new client size.
	WindowResized(size geom.Size)
	// WindowMoved carries the new client origin in screen space.
	WindowMoved(origin geom.Point)
	EnterSizeMove()
	ExitSizeMove()
}

// Focus answers whether the application currently has input focus.
type Focus interface {
	Active() bool
}

// FocusNotifier is implemented by backends that report application focus
// changes as they happen.
type FocusNotifier interface {
	OnFocus(f func(active bool))
}

// ClientRect returns w's client rectangle in screen space.
func ClientRect(w Window) geom.Rect {
	return geom.RectAt(w.ClientToScreen(geom.Point{}), w.ClientSize())
}

// Usable reports whether w is non-nil and not disposed.
func Usable(w Window) bool {
	return w != nil && !w.Disposed()
}
