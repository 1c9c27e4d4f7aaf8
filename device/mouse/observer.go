package mouse

import (
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

// windowObserver receives notifications for exactly one attached window.
// Notifications arriving after that window was replaced are ignored.
type windowObserver struct {
	m *Mouse
	w platform.Window
}

func (o *windowObserver) current() bool {
	return o.m.window == o.w
}

func (o *windowObserver) WindowClosed() {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.current() {
		return
	}
	m.deactivate()
	m.setWindow(nil)
}

// WindowResized updates the cached size. Position is left as is and gets
// clamped by the next recentring PreFrame.
func (o *windowObserver) WindowResized(size geom.Size) {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.current() {
		return
	}
	m.clientRect.Width = size.Width
	m.clientRect.Height = size.Height
}

// WindowMoved keeps client-space coordinates continuous: the OS cursor did
// not move, so the pointer moves by the opposite of the window displacement.
func (o *windowObserver) WindowMoved(origin geom.Point) {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.current() {
		return
	}
	d := origin.Sub(m.clientRect.Origin())
	m.clientRect.X = origin.X
	m.clientRect.Y = origin.Y
	m.pos = m.pos.Sub(d)
	m.prevPos = m.prevPos.Sub(d)
}

func (o *windowObserver) EnterSizeMove() {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.current() {
		return
	}
	m.sizing = true
}

func (o *windowObserver) ExitSizeMove() {
	m := o.m
	m.mu.Lock()
	defer m.mu.Unlock()
	if !o.current() {
		return
	}
	m.sizing = false
	m.reacquire()
}
