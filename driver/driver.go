// Package driver provides the native input driver: it owns the process's one
// keyboard and one mouse, enumerates them per device class and routes
// discrete platform events to them.
package driver

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Alia5/nativeinput/device"
	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/frame"
	"github.com/Alia5/nativeinput/platform"
)

const (
	Name    = "Native mouse and keyboard input"
	Version = "1.0.0"
)

// ErrUnknownDevice is returned by Lookup for a name or ID no device matches.
var ErrUnknownDevice = errors.New("unknown device")

// Options configures a Driver. A nil *Options uses the defaults.
type Options struct {
	Logger *slog.Logger
	// InfiniteMode sets the mouse's initial infinite mode. Defaults to true.
	InfiniteMode *bool
	// OnEvent, if set, sees every event passed to Dispatch before the devices do.
	OnEvent func(platform.Event)
}

// Driver is explicitly constructed; there is no process-wide instance.
type Driver struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	onEvent  func(platform.Event)
	keyboard *keyboard.Keyboard
	mouse    *mouse.Mouse

	// devices is nil until Initialize or RescanDevices ran.
	devices map[device.Class][]device.Device
	byName  map[string]device.Device
	unbind  []func()
}

// New creates the driver's devices on top of cursor. focus may be nil, see
// mouse.New; a *frame.Loop is the usual choice.
func New(cursor platform.Cursor, focus platform.Focus, o *Options) *Driver {
	d := &Driver{logger: slog.Default()}
	var infinite *bool
	if o != nil {
		if o.Logger != nil {
			d.logger = o.Logger
		}
		d.onEvent = o.OnEvent
		infinite = o.InfiniteMode
	}
	d.keyboard = keyboard.New(&keyboard.Options{Logger: d.logger})
	d.mouse = mouse.New(cursor, focus, &mouse.Options{Logger: d.logger, InfiniteMode: infinite})
	return d
}

func (d *Driver) Name() string    { return Name }
func (d *Driver) Version() string { return Version }

// Supported reports whether the driver can run on this system.
func (d *Driver) Supported() bool { return true }

// Initialize enumerates the devices.
func (d *Driver) Initialize() error {
	d.RescanDevices()
	d.logger.Info("input driver initialized", "name", Name, "version", Version)
	return nil
}

// Test reports whether the driver is operational.
func (d *Driver) Test() bool { return true }

// RescanDevices rebuilds the per-class device lists. Controller, pen and
// touch lists are always empty.
func (d *Driver) RescanDevices() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.devices = map[device.Class][]device.Device{
		device.ClassKeyboard:   {d.keyboard},
		device.ClassMouse:      {d.mouse},
		device.ClassController: {},
		device.ClassPen:        {},
		device.ClassTouch:      {},
	}
	d.byName = make(map[string]device.Device)
	for _, c := range device.Classes {
		for _, dev := range d.devices[c] {
			d.byName[strings.ToLower(dev.DeviceName())] = dev
			d.byName[strings.ToLower(dev.DeviceID())] = dev
		}
	}
	d.logger.Debug("devices rescanned", "keyboards", 1, "mice", 1)
}

// Keyboard returns the driver's keyboard.
func (d *Driver) Keyboard() *keyboard.Keyboard { return d.keyboard }

// Mouse returns the driver's mouse.
func (d *Driver) Mouse() *mouse.Mouse { return d.mouse }

// Devices lists every enumerated device in class order.
func (d *Driver) Devices() []device.Device {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.devices == nil {
		return nil
	}
	var out []device.Device
	for _, c := range device.Classes {
		out = append(out, d.devices[c]...)
	}
	return out
}

// DevicesOf lists the enumerated devices of class c.
func (d *Driver) DevicesOf(c device.Class) []device.Device {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.devices == nil {
		return nil
	}
	return append([]device.Device{}, d.devices[c]...)
}

func (d *Driver) Keyboards() []device.Device   { return d.DevicesOf(device.ClassKeyboard) }
func (d *Driver) Mice() []device.Device        { return d.DevicesOf(device.ClassMouse) }
func (d *Driver) Controllers() []device.Device { return d.DevicesOf(device.ClassController) }
func (d *Driver) Pens() []device.Device        { return d.DevicesOf(device.ClassPen) }
func (d *Driver) Touch() []device.Device       { return d.DevicesOf(device.ClassTouch) }

// Lookup finds an enumerated device by name or ID. Matching is
// case-insensitive.
func (d *Driver) Lookup(nameOrID string) (device.Device, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if dev, ok := d.byName[strings.ToLower(nameOrID)]; ok {
		return dev, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, nameOrID)
}

// Bind subscribes the devices to loop: the mouse syncs before every frame,
// the keyboard after it, and focus changes activate or deactivate the mouse.
// Binding again replaces the previous subscription.
func (d *Driver) Bind(loop *frame.Loop) {
	d.Unbind()
	cancels := []func(){
		loop.OnPreFrame(d.mouse.PreFrame),
		loop.OnPostFrame(d.keyboard.PostFrame),
		loop.OnActivate(d.mouse.Activate),
		loop.OnDeactivate(d.mouse.Deactivate),
	}
	d.mu.Lock()
	d.unbind = cancels
	d.mu.Unlock()
}

// Unbind removes the subscription installed by Bind.
func (d *Driver) Unbind() {
	d.mu.Lock()
	cancels := d.unbind
	d.unbind = nil
	d.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Dispatch routes one discrete event to the device it belongs to.
func (d *Driver) Dispatch(ev platform.Event) {
	if d.onEvent != nil {
		d.onEvent(ev)
	}
	switch ev.Kind {
	case platform.EventButtonDown:
		d.mouse.OnButtonDown(mouse.Button(ev.Button))
	case platform.EventButtonUp:
		d.mouse.OnButtonUp(mouse.Button(ev.Button))
	case platform.EventWheel:
		d.mouse.OnWheel(ev.Wheel)
	case platform.EventKeyDown:
		d.keyboard.OnKeyDown(keyboard.Key(ev.Key))
	case platform.EventKeyUp:
		d.keyboard.OnKeyUp(keyboard.Key(ev.Key))
	case platform.EventChar:
		d.keyboard.OnCharacter(keyboard.Key(ev.Key), ev.Char)
	default:
		d.logger.Debug("ignoring event", "event", ev)
	}
}

// Close unbinds from the frame loop, restores the OS cursor and releases
// the attached window.
func (d *Driver) Close() error {
	d.Unbind()
	d.mouse.Close()
	d.keyboard.Reset()
	d.logger.Debug("input driver closed")
	return nil
}
