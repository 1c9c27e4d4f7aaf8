// Package keyboard provides the frame-synchronised keyboard device: a
// double-buffered key table for edge detection and a bounded queue of
// composed characters.
package keyboard

import (
	"log/slog"
	"sync"
)

// EventKind identifies what a listener is being told about.
type EventKind uint8

const (
	KeyDownEvent EventKind = iota + 1
	KeyUpEvent
	CharEvent
)

// Event is delivered to the listener installed with SetListener.
type Event struct {
	Kind EventKind
	Key  Key
	// Char is only set for CharEvent.
	Char rune
}

// Options configures a Keyboard. A nil *Options uses the defaults.
type Options struct {
	Logger *slog.Logger
}

// Keyboard implements the keyboard state machine.
type Keyboard struct {
	mu       sync.Mutex
	keys     [KeyCount]bool
	prevKeys [KeyCount]bool
	queue    charQueue
	listener func(Event)
	logger   *slog.Logger
}

// New returns a Keyboard with every key up and an empty character queue.
func New(o *Options) *Keyboard {
	k := &Keyboard{logger: slog.Default()}
	if o != nil && o.Logger != nil {
		k.logger = o.Logger
	}
	k.logger = k.logger.With("device", DeviceName)
	return k
}

func (k *Keyboard) DeviceName() string { return DeviceName }
func (k *Keyboard) DeviceID() string   { return DeviceID }

// SetListener installs f to be called for every key and character event, or
// removes the listener when f is nil. f runs after the state was updated and
// must not block.
func (k *Keyboard) SetListener(f func(Event)) {
	k.mu.Lock()
	k.listener = f
	k.mu.Unlock()
}

func (k *Keyboard) notify(ev Event) {
	k.mu.Lock()
	f := k.listener
	k.mu.Unlock()
	if f != nil {
		f(ev)
	}
}

func (k *Keyboard) OnKeyDown(key Key) {
	k.mu.Lock()
	k.keys[key] = true
	k.mu.Unlock()
	k.notify(Event{Kind: KeyDownEvent, Key: key})
}

func (k *Keyboard) OnKeyUp(key Key) {
	k.mu.Lock()
	k.keys[key] = false
	k.mu.Unlock()
	k.notify(Event{Kind: KeyUpEvent, Key: key})
}

// OnCharacter buffers a composed character. It is dropped when the queue
// already holds QueueCapacity entries.
func (k *Keyboard) OnCharacter(key Key, ch rune) {
	k.mu.Lock()
	ok := k.queue.push(KeyAndChar{Key: key, Char: ch})
	k.mu.Unlock()
	if !ok {
		k.logger.Debug("character queue full, dropping", "key", key, "char", string(ch))
	}
	k.notify(Event{Kind: CharEvent, Key: key, Char: ch})
}

// PostFrame copies the current key table into the previous one. It must run
// exactly once per frame after user code has read the keyboard.
func (k *Keyboard) PostFrame() {
	k.mu.Lock()
	k.prevKeys = k.keys
	k.mu.Unlock()
}

func (k *Keyboard) IsDown(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key]
}

func (k *Keyboard) IsUp(key Key) bool {
	return !k.IsDown(key)
}

func (k *Keyboard) WasDown(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.prevKeys[key]
}

func (k *Keyboard) WasUp(key Key) bool {
	return !k.WasDown(key)
}

// Pressed reports whether key went down during the current frame.
func (k *Keyboard) Pressed(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key] && !k.prevKeys[key]
}

// Released reports whether key went up during the current frame.
func (k *Keyboard) Released(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return !k.keys[key] && k.prevKeys[key]
}

// DownKeys lists every key currently held, in code order.
func (k *Keyboard) DownKeys() []Key {
	k.mu.Lock()
	defer k.mu.Unlock()
	var out []Key
	for i, down := range k.keys {
		if down {
			out = append(out, Key(i))
		}
	}
	return out
}

// ReadKey dequeues the oldest buffered character, or returns None.
func (k *Keyboard) ReadKey() KeyAndChar {
	k.mu.Lock()
	defer k.mu.Unlock()
	kc, _ := k.queue.pop()
	return kc
}

// Buffered returns the number of characters waiting in the queue.
func (k *Keyboard) Buffered() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.queue.count
}

// Reset releases every key and drops buffered characters.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = [KeyCount]bool{}
	k.prevKeys = [KeyCount]bool{}
	k.queue.reset()
}
