// Package device provides the common interface and class taxonomy of the
// native input devices.
package device

import "fmt"

// Device is implemented by every input device a driver hands out.
type Device interface {
	// DeviceName is a human readable name, e.g. "Mouse".
	DeviceName() string
	// DeviceID is a stable identifier, unique within a driver.
	DeviceID() string
}

// Class groups devices by the kind of input they produce.
type Class uint8

const (
	ClassKeyboard Class = iota
	ClassMouse
	ClassController
	ClassPen
	ClassTouch
)

// Classes lists every class in enumeration order.
var Classes = []Class{ClassKeyboard, ClassMouse, ClassController, ClassPen, ClassTouch}

func (c Class) String() string {
	switch c {
	case ClassKeyboard:
		return "keyboard"
	case ClassMouse:
		return "mouse"
	case ClassController:
		return "controller"
	case ClassPen:
		return "pen"
	case ClassTouch:
		return "touch"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}
