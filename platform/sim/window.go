package sim

import (
	"sync"

	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

// Window implements platform.Window for a client rectangle on a Desktop.
type Window struct {
	mu        sync.Mutex
	rect      geom.Rect
	disposed  bool
	nextID    int
	observers map[int]platform.WindowObserver
}

// NewWindow returns a window whose client area covers rect (screen space).
func NewWindow(rect geom.Rect) *Window {
	return &Window{rect: rect, observers: make(map[int]platform.WindowObserver)}
}

func (w *Window) ClientSize() geom.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rect.Size()
}

func (w *Window) ClientToScreen(p geom.Point) geom.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return p.Add(w.rect.Origin())
}

// Disposed is safe on a nil *Window.
func (w *Window) Disposed() bool {
	if w == nil {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}

func (w *Window) Observe(o platform.WindowObserver) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.observers[id] = o
	return func() {
		w.mu.Lock()
		delete(w.observers, id)
		w.mu.Unlock()
	}
}

// Observers returns the number of registered observers.
func (w *Window) Observers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.observers)
}

// Rect returns the client rectangle in screen space.
func (w *Window) Rect() geom.Rect {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rect
}

// snapshot returns the observers in registration order. Notifications are
// delivered without holding the lock so observers may unregister.
func (w *Window) snapshot() []platform.WindowObserver {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]platform.WindowObserver, 0, len(w.observers))
	for id := 0; id < w.nextID; id++ {
		if o, ok := w.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Move places the client origin at origin (screen space).
func (w *Window) Move(origin geom.Point) {
	w.mu.Lock()
	w.rect.X, w.rect.Y = origin.X, origin.Y
	w.mu.Unlock()
	for _, o := range w.snapshot() {
		o.WindowMoved(origin)
	}
}

func (w *Window) Resize(size geom.Size) {
	w.mu.Lock()
	w.rect.Width, w.rect.Height = size.Width, size.Height
	w.mu.Unlock()
	for _, o := range w.snapshot() {
		o.WindowResized(size)
	}
}

func (w *Window) BeginSizeMove() {
	for _, o := range w.snapshot() {
		o.EnterSizeMove()
	}
}

func (w *Window) EndSizeMove() {
	for _, o := range w.snapshot() {
		o.ExitSizeMove()
	}
}

// Close notifies observers and then marks the window disposed.
func (w *Window) Close() {
	for _, o := range w.snapshot() {
		o.WindowClosed()
	}
	w.mu.Lock()
	w.disposed = true
	w.mu.Unlock()
}
