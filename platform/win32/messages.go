// Package win32 implements the platform collaborators on top of user32: the
// OS cursor, HWND client geometry and the translation of window messages
// into platform events and window notifications.
package win32

import (
	"sync"
	"sync/atomic"
	"unicode/utf16"

	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

const (
	wmMove          = 0x0003
	wmSize          = 0x0005
	wmClose         = 0x0010
	wmActivateApp   = 0x001C
	wmKeyDown       = 0x0100
	wmKeyUp         = 0x0101
	wmChar          = 0x0102
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMouseWheel    = 0x020A
	wmEnterSizeMove = 0x0231
	wmExitSizeMove  = 0x0232

	wheelDelta = 120
)

func loword(v uintptr) uint16 { return uint16(v & 0xFFFF) }
func hiword(v uintptr) uint16 { return uint16((v >> 16) & 0xFFFF) }

// Messages turns window procedure arguments into platform events and window
// observer notifications. It also tracks application focus from
// WM_ACTIVATEAPP and so implements platform.Focus.
type Messages struct {
	dispatch func(platform.Event)
	active   atomic.Bool

	mu        sync.Mutex
	lastKey   uint8
	highHalf  uint16
	onFocus   func(active bool)
	nextID    int
	observers map[int]platform.WindowObserver
}

// NewMessages returns a handler that passes input events to dispatch, which
// is usually driver.Driver.Dispatch.
func NewMessages(dispatch func(platform.Event)) *Messages {
	m := &Messages{dispatch: dispatch, observers: make(map[int]platform.WindowObserver)}
	m.active.Store(true)
	return m
}

func (m *Messages) Active() bool { return m.active.Load() }

// OnFocus sets the callback invoked when WM_ACTIVATEAPP changes the
// application focus, usually frame.Loop.SetActive.
func (m *Messages) OnFocus(f func(active bool)) {
	m.mu.Lock()
	m.onFocus = f
	m.mu.Unlock()
}

func (m *Messages) setActive(active bool) {
	if m.active.Swap(active) == active {
		return
	}
	m.mu.Lock()
	f := m.onFocus
	m.mu.Unlock()
	if f != nil {
		f(active)
	}
}

func (m *Messages) Observe(o platform.WindowObserver) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.observers[id] = o
	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

func (m *Messages) snapshot() []platform.WindowObserver {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]platform.WindowObserver, 0, len(m.observers))
	for id := 0; id < m.nextID; id++ {
		if o, ok := m.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Translate maps an input message to an event. WM_CHAR carries no virtual
// key, so the key of the most recent WM_KEYDOWN is reported with it.
// Characters outside the BMP arrive as two WM_CHAR messages; the first one
// yields no event.
func (m *Messages) Translate(msg uint32, wParam, lParam uintptr) (platform.Event, bool) {
	button := func(kind platform.EventKind, b mouse.Button) (platform.Event, bool) {
		return platform.Event{Kind: kind, Button: uint8(b)}, true
	}
	switch msg {
	case wmLButtonDown:
		return button(platform.EventButtonDown, mouse.ButtonLeft)
	case wmLButtonUp:
		return button(platform.EventButtonUp, mouse.ButtonLeft)
	case wmRButtonDown:
		return button(platform.EventButtonDown, mouse.ButtonRight)
	case wmRButtonUp:
		return button(platform.EventButtonUp, mouse.ButtonRight)
	case wmMButtonDown:
		return button(platform.EventButtonDown, mouse.ButtonMiddle)
	case wmMButtonUp:
		return button(platform.EventButtonUp, mouse.ButtonMiddle)
	case wmMouseWheel:
		return platform.Event{Kind: platform.EventWheel, Wheel: int(int16(hiword(wParam))) / wheelDelta}, true
	case wmKeyDown:
		key := uint8(wParam)
		m.mu.Lock()
		m.lastKey = key
		m.mu.Unlock()
		return platform.Event{Kind: platform.EventKeyDown, Key: key}, true
	case wmKeyUp:
		return platform.Event{Kind: platform.EventKeyUp, Key: uint8(wParam)}, true
	case wmChar:
		unit := uint16(wParam)
		m.mu.Lock()
		defer m.mu.Unlock()
		ch := rune(unit)
		switch {
		case unit >= 0xD800 && unit < 0xDC00:
			m.highHalf = unit
			return platform.Event{}, false
		case utf16.IsSurrogate(ch):
			ch = utf16.DecodeRune(rune(m.highHalf), ch)
		}
		m.highHalf = 0
		return platform.Event{Kind: platform.EventChar, Key: m.lastKey, Char: ch}, true
	}
	return platform.Event{}, false
}

// Handle processes one window message and reports whether it was consumed.
// Geometry messages are forwarded to the observers; WM_CLOSE is reported but
// not consumed so the default window procedure still destroys the window.
func (m *Messages) Handle(msg uint32, wParam, lParam uintptr) bool {
	if ev, ok := m.Translate(msg, wParam, lParam); ok {
		if m.dispatch != nil {
			m.dispatch(ev)
		}
		return true
	}

	switch msg {
	case wmMove:
		origin := geom.Pt(int(int16(loword(lParam))), int(int16(hiword(lParam))))
		for _, o := range m.snapshot() {
			o.WindowMoved(origin)
		}
	case wmSize:
		size := geom.Size{Width: int(loword(lParam)), Height: int(hiword(lParam))}
		for _, o := range m.snapshot() {
			o.WindowResized(size)
		}
	case wmEnterSizeMove:
		for _, o := range m.snapshot() {
			o.EnterSizeMove()
		}
	case wmExitSizeMove:
		for _, o := range m.snapshot() {
			o.ExitSizeMove()
		}
	case wmActivateApp:
		m.setActive(wParam != 0)
	case wmChar:
		// High surrogate, held until its pair arrives.
	case wmClose:
		for _, o := range m.snapshot() {
			o.WindowClosed()
		}
		return false
	default:
		return false
	}
	return true
}
