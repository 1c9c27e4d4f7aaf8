// Package terminal turns a terminal into an input platform: the screen is
// the window, the mouse cell under the pointer is the cursor, and key and
// mouse reports become platform events.
//
// Terminals cannot warp the pointer, so SetPosition shifts a virtual cursor
// by an offset instead; relative motion is preserved and infinite mode
// works as on a desktop. Terminals do not report key releases either: every
// key pressed since the last ReleaseKeys is released by it.
package terminal

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
)

// ErrQuit is returned by Pump when the user pressed Ctrl-C.
var ErrQuit = errors.New("quit requested")

// Terminal implements platform.Cursor, platform.Window and platform.Focus.
type Terminal struct {
	screen tcell.Screen
	logger *slog.Logger

	mu       sync.Mutex
	phys     geom.Point
	offset   geom.Point
	display  int
	clip     *geom.Rect
	buttons  tcell.ButtonMask
	held     []keyboard.Key
	active   bool
	disposed bool
	onFocus  func(bool)

	nextID    int
	observers map[int]platform.WindowObserver
}

// Open initializes the controlling terminal with mouse motion and focus
// reporting enabled.
func Open(logger *slog.Logger) (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.EnableMouse(tcell.MouseMotionEvents)
	s.EnableFocus()
	s.HideCursor()
	return New(s, logger), nil
}

// New wraps an initialized screen.
func New(s tcell.Screen, logger *slog.Logger) *Terminal {
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{
		screen:    s,
		logger:    logger,
		active:    true,
		observers: make(map[int]platform.WindowObserver),
	}
}

// OnFocus installs f to be told about focus changes, typically
// frame.Loop.SetActive. f runs on the Pump goroutine.
func (t *Terminal) OnFocus(f func(active bool)) {
	t.mu.Lock()
	t.onFocus = f
	t.mu.Unlock()
}

// Close restores the terminal and notifies window observers.
func (t *Terminal) Close() error {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return nil
	}
	obs := t.snapshot()
	t.mu.Unlock()

	for _, o := range obs {
		o.WindowClosed()
	}
	t.mu.Lock()
	t.disposed = true
	t.mu.Unlock()
	t.screen.Fini()
	return nil
}

// Cursor

func (t *Terminal) Position() geom.Point {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position()
}

func (t *Terminal) position() geom.Point {
	p := t.phys.Add(t.offset)
	if t.clip != nil {
		p = t.clip.Clamp(p)
	}
	return p
}

// SetPosition moves the virtual cursor to p.
func (t *Terminal) SetPosition(p geom.Point) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = p.Sub(t.phys)
}

// Show follows the user32 display counter; the pointer marker is drawn
// while it is not negative.
func (t *Terminal) Show(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if visible {
		t.display++
	} else {
		t.display--
	}
}

// PointerVisible reports whether the pointer marker is drawn.
func (t *Terminal) PointerVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.display >= 0
}

func (t *Terminal) Clip(r geom.Rect) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clip = &r
}

func (t *Terminal) Unclip() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clip = nil
}

// Window

func (t *Terminal) ClientSize() geom.Size {
	w, h := t.screen.Size()
	return geom.Size{Width: w, Height: h}
}

// ClientToScreen is the identity: the terminal is the whole screen.
func (t *Terminal) ClientToScreen(p geom.Point) geom.Point { return p }

func (t *Terminal) Disposed() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disposed
}

func (t *Terminal) Observe(o platform.WindowObserver) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.observers[id] = o
	return func() {
		t.mu.Lock()
		delete(t.observers, id)
		t.mu.Unlock()
	}
}

// snapshot must be called with t.mu held.
func (t *Terminal) snapshot() []platform.WindowObserver {
	out := make([]platform.WindowObserver, 0, len(t.observers))
	for id := 0; id < t.nextID; id++ {
		if o, ok := t.observers[id]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Focus

func (t *Terminal) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Events

// Handle translates one tcell event. Resize and focus events are delivered
// to observers and the focus callback; input events are returned.
func (t *Terminal) Handle(ev tcell.Event) []platform.Event {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return t.handleMouse(ev)
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		t.mu.Lock()
		obs := t.snapshot()
		t.mu.Unlock()
		for _, o := range obs {
			o.WindowResized(geom.Size{Width: w, Height: h})
		}
	case *tcell.EventFocus:
		t.mu.Lock()
		changed := t.active != ev.Focused
		t.active = ev.Focused
		f := t.onFocus
		t.mu.Unlock()
		if changed && f != nil {
			f(ev.Focused)
		}
	}
	return nil
}

func (t *Terminal) handleMouse(ev *tcell.EventMouse) []platform.Event {
	x, y := ev.Position()
	mask := ev.Buttons()

	t.mu.Lock()
	t.phys = geom.Pt(x, y)
	prev := buttonsOf(t.buttons)
	t.buttons = mask
	t.mu.Unlock()

	var out []platform.Event
	cur := buttonsOf(mask)
	for _, e := range buttonMap {
		switch {
		case cur&e.b != 0 && prev&e.b == 0:
			out = append(out, platform.Event{Kind: platform.EventButtonDown, Button: uint8(e.b)})
		case cur&e.b == 0 && prev&e.b != 0:
			out = append(out, platform.Event{Kind: platform.EventButtonUp, Button: uint8(e.b)})
		}
	}
	if w := wheelOf(mask); w != 0 {
		out = append(out, platform.Event{Kind: platform.EventWheel, Wheel: w})
	}
	return out
}

func (t *Terminal) handleKey(ev *tcell.EventKey) []platform.Event {
	key, ch, ok := translateKey(ev)
	if !ok {
		t.logger.Debug("unmapped terminal key", "key", ev.Name())
		return nil
	}
	t.mu.Lock()
	t.held = append(t.held, key)
	t.mu.Unlock()

	out := []platform.Event{{Kind: platform.EventKeyDown, Key: uint8(key)}}
	if ch != 0 {
		out = append(out, platform.Event{Kind: platform.EventChar, Key: uint8(key), Char: ch})
	}
	return out
}

// ReleaseKeys returns a key-up event for every key reported since the last
// call. Register it as a post-frame hook after the keyboard's own.
func (t *Terminal) ReleaseKeys() []platform.Event {
	t.mu.Lock()
	held := t.held
	t.held = nil
	t.mu.Unlock()

	seen := make(map[keyboard.Key]bool, len(held))
	var out []platform.Event
	for _, k := range held {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, platform.Event{Kind: platform.EventKeyUp, Key: uint8(k)})
	}
	return out
}

// Pump polls terminal events and passes input to dispatch until ctx is
// done, the screen is finalized or Ctrl-C is pressed.
func (t *Terminal) Pump(ctx context.Context, dispatch func(platform.Event)) error {
	stop := context.AfterFunc(ctx, func() {
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		ev := t.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if k, ok := ev.(*tcell.EventKey); ok && k.Key() == tcell.KeyCtrlC {
			return ErrQuit
		}
		for _, e := range t.Handle(ev) {
			dispatch(e)
		}
	}
}

// Draw renders lines from the top left corner and, when the pointer is
// visible, a marker at p.
func (t *Terminal) Draw(lines []string, p geom.Point) {
	t.screen.Clear()
	for y, line := range lines {
		x := 0
		for _, r := range line {
			t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
			x++
		}
	}
	if t.PointerVisible() {
		t.screen.SetContent(p.X, p.Y, '+', nil, tcell.StyleDefault.Reverse(true))
	}
	t.screen.Show()
}
