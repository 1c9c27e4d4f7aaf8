package platform

import "fmt"

// EventKind identifies a discrete input message.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventButtonDown
	EventButtonUp
	EventWheel
	EventKeyDown
	EventKeyUp
	EventChar
)

var eventKindNames = map[EventKind]string{
	EventNone:       "none",
	EventButtonDown: "button-down",
	EventButtonUp:   "button-up",
	EventWheel:      "wheel",
	EventKeyDown:    "key-down",
	EventKeyUp:      "key-up",
	EventChar:       "char",
}

func (k EventKind) String() string {
	if s, ok := eventKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is one discrete input message as produced by a backend's message
// translation layer.
type Event struct {
	Kind EventKind
	// Button is the mouse button bit for EventButtonDown/EventButtonUp.
	Button uint8
	// Wheel is the number of wheel ticks for EventWheel.
	Wheel int
	// Key is the key code for key and char events.
	Key uint8
	// Char is the composed character for EventChar.
	Char rune
}

func (e Event) String() string {
	switch e.Kind {
	case EventButtonDown, EventButtonUp:
		return fmt.Sprintf("%s button=%#x", e.Kind, e.Button)
	case EventWheel:
		return fmt.Sprintf("%s ticks=%d", e.Kind, e.Wheel)
	case EventKeyDown, EventKeyUp:
		return fmt.Sprintf("%s key=%#02x", e.Kind, e.Key)
	case EventChar:
		return fmt.Sprintf("%s key=%#02x char=%q", e.Kind, e.Key, e.Char)
	default:
		return e.Kind.String()
	}
}
