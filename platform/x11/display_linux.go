//go:build linux

package x11

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

var (
	loadOnce  sync.Once
	loadErr   error
	x11lib    uintptr
	xfixeslib uintptr

	xOpenDisplay   func(*byte) uintptr
	xCloseDisplay  func(uintptr) int32
	xDefaultScreen func(uintptr) int32
	xRootWindow    func(uintptr, int32) uintptr
	xDisplayWidth  func(uintptr, int32) int32
	xDisplayHeight func(uintptr, int32) int32
	xQueryPointer  func(uintptr, uintptr, *uintptr, *uintptr, *int32, *int32, *int32, *int32, *uint32) int32
	xWarpPointer   func(uintptr, uintptr, uintptr, int32, int32, uint32, uint32, int32, int32) int32
	xFlush         func(uintptr) int32

	xFixesHideCursor            func(uintptr, uintptr)
	xFixesShowCursor            func(uintptr, uintptr)
	xFixesCreatePointerBarrier  func(uintptr, uintptr, int32, int32, int32, int32, int32, int32, *int32) uintptr
	xFixesDestroyPointerBarrier func(uintptr, uintptr)
)

// ErrNoDisplay is returned by Open when no X server is reachable.
var ErrNoDisplay = errors.New("cannot open X display")

func load() error {
	loadOnce.Do(func() {
		x11lib, loadErr = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if loadErr != nil {
			return
		}
		purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
		purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
		purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
		purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
		purego.RegisterLibFunc(&xDisplayWidth, x11lib, "XDisplayWidth")
		purego.RegisterLibFunc(&xDisplayHeight, x11lib, "XDisplayHeight")
		purego.RegisterLibFunc(&xQueryPointer, x11lib, "XQueryPointer")
		purego.RegisterLibFunc(&xWarpPointer, x11lib, "XWarpPointer")
		purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")

		// XFixes is optional; without it the cursor can neither be hidden
		// nor confined.
		var err error
		if xfixeslib, err = purego.Dlopen("libXfixes.so.3", purego.RTLD_LAZY|purego.RTLD_GLOBAL); err != nil {
			xfixeslib = 0
			return
		}
		purego.RegisterLibFunc(&xFixesHideCursor, xfixeslib, "XFixesHideCursor")
		purego.RegisterLibFunc(&xFixesShowCursor, xfixeslib, "XFixesShowCursor")
		purego.RegisterLibFunc(&xFixesCreatePointerBarrier, xfixeslib, "XFixesCreatePointerBarrier")
		purego.RegisterLibFunc(&xFixesDestroyPointerBarrier, xfixeslib, "XFixesDestroyPointerBarrier")
	})
	return loadErr
}

// Display implements platform.Cursor for the default screen of an X
// display.
type Display struct {
	mu       sync.Mutex
	dpy      uintptr
	screen   int32
	root     uintptr
	barriers []uintptr
	logger   *slog.Logger
	rootWin  *RootWindow
}

// Open connects to the display named by $DISPLAY.
func Open(logger *slog.Logger) (*Display, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := load(); err != nil {
		return nil, fmt.Errorf("load libX11: %w", err)
	}
	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		return nil, ErrNoDisplay
	}
	screen := xDefaultScreen(dpy)
	d := &Display{dpy: dpy, screen: screen, root: xRootWindow(dpy, screen), logger: logger}
	d.rootWin = &RootWindow{d: d, observers: make(map[int]platform.WindowObserver)}
	if xfixeslib == 0 {
		logger.Warn("libXfixes not available, cursor hiding and clipping disabled")
	}
	return d, nil
}

// Close releases any barriers, notifies root window observers and closes
// the display connection.
func (d *Display) Close() error {
	d.rootWin.close()
	d.Unclip()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 {
		return nil
	}
	xCloseDisplay(d.dpy)
	d.dpy = 0
	return nil
}

// Root returns the root window, whose client area is the whole screen.
func (d *Display) Root() *RootWindow { return d.rootWin }

func (d *Display) Position() geom.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 {
		return geom.Point{}
	}
	var root, child uintptr
	var rootX, rootY, winX, winY int32
	var mask uint32
	if xQueryPointer(d.dpy, d.root, &root, &child, &rootX, &rootY, &winX, &winY, &mask) == 0 {
		d.logger.Debug("XQueryPointer: pointer on another screen")
	}
	return geom.Pt(int(rootX), int(rootY))
}

func (d *Display) SetPosition(p geom.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 {
		return
	}
	xWarpPointer(d.dpy, 0, d.root, 0, 0, 0, 0, int32(p.X), int32(p.Y))
	xFlush(d.dpy)
}

func (d *Display) Show(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 || xfixeslib == 0 {
		return
	}
	if visible {
		xFixesShowCursor(d.dpy, d.root)
	} else {
		xFixesHideCursor(d.dpy, d.root)
	}
	xFlush(d.dpy)
}

func (d *Display) Clip(r geom.Rect) {
	d.Unclip()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 || xfixeslib == 0 {
		return
	}
	for _, b := range barriersFor(r) {
		id := xFixesCreatePointerBarrier(d.dpy, d.root, b.x1, b.y1, b.x2, b.y2, b.directions, 0, nil)
		if id == 0 {
			d.logger.Debug("XFixesCreatePointerBarrier failed", "rect", r)
			continue
		}
		d.barriers = append(d.barriers, id)
	}
	xFlush(d.dpy)
}

func (d *Display) Unclip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 || len(d.barriers) == 0 {
		return
	}
	for _, id := range d.barriers {
		xFixesDestroyPointerBarrier(d.dpy, id)
	}
	d.barriers = nil
	xFlush(d.dpy)
}

// RootWindow implements platform.Window for the root window of a Display.
type RootWindow struct {
	d *Display

	mu        sync.Mutex
	disposed  bool
	nextID    int
	observers map[int]platform.WindowObserver
}

func (w *RootWindow) ClientSize() geom.Size {
	d := w.d
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dpy == 0 {
		return geom.Size{}
	}
	return geom.Size{Width: int(xDisplayWidth(d.dpy, d.screen)), Height: int(xDisplayHeight(d.dpy, d.screen))}
}

// ClientToScreen is the identity: the root window is the screen.
func (w *RootWindow) ClientToScreen(p geom.Point) geom.Point { return p }

func (w *RootWindow) Disposed() bool {
	if w == nil {
		return true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.disposed
}

func (w *RootWindow) Observe(o platform.WindowObserver) func() {
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

func (w *RootWindow) close() {
	w.mu.Lock()
	if w.disposed {
		w.mu.Unlock()
		return
	}
	obs := make([]platform.WindowObserver, 0, len(w.observers))
	for id := 0; id < w.nextID; id++ {
		if o, ok := w.observers[id]; ok {
			obs = append(obs, o)
		}
	}
	w.mu.Unlock()

	for _, o := range obs {
		o.WindowClosed()
	}
	w.mu.Lock()
	w.disposed = true
	w.mu.Unlock()
}
