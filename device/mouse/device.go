// Package mouse provides the frame-synchronised pointer device.
//
// Discrete OS events (button, wheel) only touch staging fields. Once per
// frame, PreFrame reads the OS cursor, computes deltas, rolls the current
// values into their previous counterparts and commits the staged ones. When
// the pointer is hidden with infinite mode on, PreFrame recentres the OS
// cursor in the attached window after reading it so that Delta keeps
// reporting motion past the screen edges while Position stays inside the
// client area.
package mouse

import (
	"log/slog"
	"sync"

	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

// Options configures a Mouse. A nil *Options uses the defaults.
type Options struct {
	// InfiniteMode sets the initial infinite mode. Defaults to true.
	InfiniteMode *bool
	Logger       *slog.Logger
}

// Mouse implements the pointer state machine on top of the OS cursor.
type Mouse struct {
	mu     sync.Mutex
	cursor platform.Cursor
	focus  platform.Focus
	logger *slog.Logger

	window    platform.Window
	unobserve func()

	visible          bool
	effectiveVisible bool
	clipped          bool
	infinite         bool
	sizing           bool
	clientRect       geom.Rect

	pos, prevPos, delta geom.Point
	raw, prevRaw        geom.Point

	buttons, prevButtons, changed, curButtons Button
	wheel, prevWheel, deltaWheel, curWheel    int
}

// New returns a Mouse driven by cursor. focus may be nil, in which case the
// application is treated as always focused.
func New(cursor platform.Cursor, focus platform.Focus, o *Options) *Mouse {
	m := &Mouse{
		cursor:           cursor,
		focus:            focus,
		logger:           slog.Default(),
		visible:          true,
		effectiveVisible: true,
		infinite:         true,
	}
	if o != nil {
		if o.InfiniteMode != nil {
			m.infinite = *o.InfiniteMode
		}
		if o.Logger != nil {
			m.logger = o.Logger
		}
	}
	m.logger = m.logger.With("device", DeviceName)
	return m
}

func (m *Mouse) DeviceName() string { return DeviceName }
func (m *Mouse) DeviceID() string   { return DeviceID }

// Window returns the attached window, or nil.
func (m *Mouse) Window() platform.Window {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.window
}

// SetWindow attaches w, replacing any previously attached window. A nil or
// disposed window detaches the mouse, which then stays inert. A requested
// clip is moved to the new client rectangle.
func (m *Mouse) SetWindow(w platform.Window) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setWindow(w)
}

func (m *Mouse) setWindow(w platform.Window) {
	if m.window == w {
		return
	}
	if m.unobserve != nil {
		m.unobserve()
		m.unobserve = nil
	}
	m.window = nil

	if !platform.Usable(w) {
		m.logger.Debug("window detached")
		return
	}

	m.window = w
	m.clientRect = platform.ClientRect(w)
	if m.clipped && m.active() {
		m.cursor.Clip(m.clientRect)
	}
	m.prevRaw = m.cursor.Position()
	m.raw = m.prevRaw
	m.pos = m.prevRaw.Sub(m.clientRect.Origin())
	m.prevPos = m.pos
	m.unobserve = w.Observe(&windowObserver{m: m, w: w})

	m.logger.Debug("window attached", "clientRect", m.clientRect, "position", m.pos)
}

// Close detaches the window and hands cursor visibility and confinement back
// to the OS.
func (m *Mouse) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clipped && m.window != nil {
		m.cursor.Unclip()
	}
	m.setEffectiveVisible(true)
	m.setWindow(nil)
}

// OnButtonDown stages b as held. Repeated calls within a frame are idempotent.
func (m *Mouse) OnButtonDown(b Button) {
	m.mu.Lock()
	m.curButtons |= b
	m.mu.Unlock()
}

// OnButtonUp stages b as released.
func (m *Mouse) OnButtonUp(b Button) {
	m.mu.Lock()
	m.curButtons &^= b
	m.mu.Unlock()
}

// OnWheel adds ticks to the wheel accumulator.
func (m *Mouse) OnWheel(ticks int) {
	m.mu.Lock()
	m.curWheel += ticks
	m.mu.Unlock()
}

// PreFrame commits the staged input into the frame-consistent view. It must
// run exactly once per frame before user code reads the mouse.
func (m *Mouse) PreFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.raw = m.cursor.Position()

	m.delta = m.raw.Sub(m.prevRaw)
	m.deltaWheel = m.curWheel - m.wheel
	m.changed = m.curButtons ^ m.buttons

	m.prevPos = m.pos
	m.prevWheel = m.wheel
	m.prevButtons = m.buttons

	m.pos = m.pos.Add(m.delta)
	m.wheel = m.curWheel
	m.buttons = m.curButtons

	if !m.captured() {
		m.prevRaw = m.raw
		return
	}

	// The anchor moves to the centre even when the cursor was left alone;
	// the next delta is measured from there.
	center := m.clientRect.Center()
	if !m.delta.IsZero() {
		m.cursor.SetPosition(center)
	}
	m.prevRaw = center
	m.pos = m.localBounds().Clamp(m.pos)
}

// captured reports whether the pointer currently behaves as an unbounded
// relative device.
func (m *Mouse) captured() bool {
	return !m.visible && m.infinite && !m.sizing && m.active() && platform.Usable(m.window)
}

func (m *Mouse) active() bool {
	return m.focus == nil || m.focus.Active()
}

func (m *Mouse) localBounds() geom.Rect {
	return geom.Rect{Width: m.clientRect.Width, Height: m.clientRect.Height}
}

func (m *Mouse) recenter() {
	center := m.clientRect.Center()
	m.cursor.SetPosition(center)
	m.prevRaw = center
}

func (m *Mouse) setEffectiveVisible(v bool) {
	if m.effectiveVisible == v {
		return
	}
	m.effectiveVisible = v
	m.cursor.Show(v)
}

// Activate reacts to the application gaining focus. Control is only taken
// back when the pointer is inside the client area.
func (m *Mouse) Activate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !platform.Usable(m.window) || !m.localBounds().Contains(m.pos) {
		return
	}
	m.logger.Debug("application activated", "position", m.pos)
	m.reacquire()
}

// Deactivate reacts to the application losing focus: the OS cursor is shown
// again at the logical position and any clip region is released.
func (m *Mouse) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deactivate()
}

func (m *Mouse) deactivate() {
	if m.window == nil {
		return
	}
	m.logger.Debug("application deactivated", "position", m.pos)
	if !m.visible {
		p := m.clientRect.Origin().Add(m.pos)
		m.cursor.SetPosition(p)
		m.setEffectiveVisible(true)
		m.prevRaw = p
	}
	if m.clipped {
		m.cursor.Unclip()
	}
}

// reacquire re-applies hiding, recentring and clipping after they were
// suspended by a focus loss or an interactive move/resize.
func (m *Mouse) reacquire() {
	if !m.visible {
		m.setEffectiveVisible(false)
		if m.infinite {
			m.recenter()
		}
	}
	if m.clipped {
		m.cursor.Clip(m.clientRect)
	}
}

// Visible reports the requested visibility.
func (m *Mouse) Visible() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// SetVisible requests cursor visibility. The OS is only called when the
// applied visibility actually changes.
func (m *Mouse) SetVisible(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visible = v
	m.setEffectiveVisible(v)
}

func (m *Mouse) Clipped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clipped
}

// SetClipped confines the OS cursor to the client rectangle, or releases it.
func (m *Mouse) SetClipped(c bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clipped == c {
		return
	}
	m.clipped = c
	if m.window == nil {
		return
	}
	if c {
		m.cursor.Clip(m.clientRect)
	} else {
		m.cursor.Unclip()
	}
}

func (m *Mouse) InfiniteMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.infinite
}

// SetInfiniteMode toggles recentring while the pointer is hidden.
func (m *Mouse) SetInfiniteMode(on bool) {
	m.mu.Lock()
	m.infinite = on
	m.mu.Unlock()
}

func (m *Mouse) Sizing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizing
}

// ClientRect returns the cached client rectangle in screen space.
func (m *Mouse) ClientRect() geom.Rect {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clientRect
}

// Position is the pointer position in client space.
func (m *Mouse) Position() geom.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pos
}

func (m *Mouse) PrevPosition() geom.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prevPos
}

// Delta is the raw cursor motion measured by the last PreFrame.
func (m *Mouse) Delta() geom.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delta
}

func (m *Mouse) Buttons() Button {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons
}

func (m *Mouse) PrevButtons() Button {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prevButtons
}

// ChangedButtons has a bit set for every button that flipped at the last
// PreFrame.
func (m *Mouse) ChangedButtons() Button {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.changed
}

func (m *Mouse) Wheel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wheel
}

func (m *Mouse) PrevWheel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prevWheel
}

func (m *Mouse) DeltaWheel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deltaWheel
}

// NativePosition is the OS cursor position read by the last PreFrame.
func (m *Mouse) NativePosition() geom.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.raw
}

// PrevNativePosition is the screen point the next delta is measured from.
func (m *Mouse) PrevNativePosition() geom.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prevRaw
}

func (m *Mouse) IsDown(b Button) bool  { return m.Buttons()&b == b }
func (m *Mouse) IsUp(b Button) bool    { return m.Buttons()&b != b }
func (m *Mouse) WasDown(b Button) bool { return m.PrevButtons()&b == b }
func (m *Mouse) WasUp(b Button) bool   { return m.PrevButtons()&b != b }

// Pressed reports whether b went down at the last PreFrame.
func (m *Mouse) Pressed(b Button) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons&b == b && m.prevButtons&b != b
}

// Released reports whether b went up at the last PreFrame.
func (m *Mouse) Released(b Button) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons&b != b && m.prevButtons&b == b
}

// Snapshot copies the current state under a single lock.
func (m *Mouse) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{
		Position:       m.pos,
		PrevPosition:   m.prevPos,
		Delta:          m.delta,
		Buttons:        m.buttons,
		PrevButtons:    m.prevButtons,
		ChangedButtons: m.changed,
		Wheel:          m.wheel,
		PrevWheel:      m.prevWheel,
		DeltaWheel:     m.deltaWheel,
		Native:         m.raw,
		PrevNative:     m.prevRaw,
		ClientRect:     m.clientRect,
		Visible:        m.visible,
		Clipped:        m.clipped,
		Infinite:       m.infinite,
		Sizing:         m.sizing,
		Attached:       m.window != nil,
	}
}
