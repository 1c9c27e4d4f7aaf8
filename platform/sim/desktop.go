// Package sim provides an in-memory desktop implementing the platform
// collaborators. The cursor is clamped to the screen (and to the clip
// rectangle when one is installed) exactly like a physical OS cursor, which
// makes it suitable for exercising recentring and infinite mode.
package sim

import (
	"sync"

	"github.com/Alia5/nativeinput/geom"
)

// Desktop implements platform.Cursor.
type Desktop struct {
	mu        sync.Mutex
	screen    geom.Rect
	pos       geom.Point
	display   int
	clip      *geom.Rect
	warps     []geom.Point
	showCalls int
}

// NewDesktop returns a desktop whose screen spans size with the cursor in
// its centre.
func NewDesktop(size geom.Size) *Desktop {
	screen := geom.RectAt(geom.Point{}, size)
	return &Desktop{screen: screen, pos: screen.Center()}
}

// Screen returns the screen rectangle.
func (d *Desktop) Screen() geom.Rect {
	return d.screen
}

func (d *Desktop) bounds() geom.Rect {
	if d.clip != nil {
		return *d.clip
	}
	return d.screen
}

func (d *Desktop) Position() geom.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos
}

// SetPosition warps the cursor. Every call is recorded, see Warps.
func (d *Desktop) SetPosition(p geom.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos = d.bounds().Clamp(p)
	d.warps = append(d.warps, p)
}

// Show follows the Win32 display counter: the cursor is visible while the
// counter is not negative.
func (d *Desktop) Show(visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if visible {
		d.display++
	} else {
		d.display--
	}
	d.showCalls++
}

func (d *Desktop) Clip(r geom.Rect) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clip = &r
	d.pos = r.Clamp(d.pos)
}

func (d *Desktop) Unclip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clip = nil
}

// MoveBy moves the cursor like a physical device would, stopping at the
// screen or clip edges.
func (d *Desktop) MoveBy(delta geom.Point) geom.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos = d.bounds().Clamp(d.pos.Add(delta))
	return d.pos
}

// MoveTo places the cursor without recording a warp.
func (d *Desktop) MoveTo(p geom.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos = d.bounds().Clamp(p)
}

// CursorVisible reports whether the display counter shows the cursor.
func (d *Desktop) CursorVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.display >= 0
}

// ShowCalls counts Show invocations.
func (d *Desktop) ShowCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.showCalls
}

// ClipRect returns the installed clip rectangle, if any.
func (d *Desktop) ClipRect() (geom.Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.clip == nil {
		return geom.Rect{}, false
	}
	return *d.clip, true
}

// Warps returns the positions requested through SetPosition, oldest first.
func (d *Desktop) Warps() []geom.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]geom.Point(nil), d.warps...)
}

// Focus is a settable platform.Focus.
type Focus struct {
	mu     sync.Mutex
	active bool
}

// NewFocus returns a Focus in the given state.
func NewFocus(active bool) *Focus {
	return &Focus{active: active}
}

func (f *Focus) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *Focus) Set(active bool) {
	f.mu.Lock()
	f.active = active
	f.mu.Unlock()
}
