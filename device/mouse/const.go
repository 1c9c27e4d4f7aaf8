package mouse

import (
	"fmt"
	"strings"
)

// Button is a bit in the mouse button mask.
type Button uint8

const (
	ButtonNone   Button = 0
	ButtonLeft   Button = 1 << 0
	ButtonRight  Button = 1 << 1
	ButtonMiddle Button = 1 << 2
)

// Device identity reported through device.Device.
const (
	DeviceName = "Mouse"
	DeviceID   = "native-mouse-combined"
)

var buttonNames = []struct {
	b    Button
	name string
}{
	{ButtonLeft, "left"},
	{ButtonRight, "right"},
	{ButtonMiddle, "middle"},
}

// String joins the names of the set bits with '|', or returns "none".
func (b Button) String() string {
	if b == ButtonNone {
		return "none"
	}
	var parts []string
	for _, n := range buttonNames {
		if b&n.b != 0 {
			parts = append(parts, n.name)
		}
	}
	if rest := b &^ (ButtonLeft | ButtonRight | ButtonMiddle); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseButton maps a button name ("left", "right", "middle") to its bit.
func ParseButton(s string) (Button, bool) {
	for _, n := range buttonNames {
		if strings.EqualFold(s, n.name) {
			return n.b, true
		}
	}
	return ButtonNone, false
}

func (b Button) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText accepts the format produced by String.
func (b *Button) UnmarshalText(text []byte) error {
	var out Button
	s := strings.TrimSpace(string(text))
	if s != "" && !strings.EqualFold(s, "none") {
		for _, part := range strings.Split(s, "|") {
			bit, ok := ParseButton(strings.TrimSpace(part))
			if !ok {
				return fmt.Errorf("unknown mouse button %q", part)
			}
			out |= bit
		}
	}
	*b = out
	return nil
}
