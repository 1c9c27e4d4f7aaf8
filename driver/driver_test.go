package driver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nativeinput/device"
	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/driver"
	"github.com/Alia5/nativeinput/frame"
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
	"github.com/Alia5/nativeinput/platform/sim"
)

func newDriver(t *testing.T) (*driver.Driver, *frame.Loop, *sim.Desktop, *sim.Window) {
	t.Helper()
	desktop := sim.NewDesktop(geom.Size{Width: 1920, Height: 1080})
	win := sim.NewWindow(geom.Rect{X: 100, Y: 100, Width: 800, Height: 600})
	loop := frame.New(nil)
	d := driver.New(desktop, loop, nil)
	require.NoError(t, d.Initialize())
	d.Bind(loop)
	d.Mouse().SetWindow(win)
	t.Cleanup(func() { _ = d.Close() })
	return d, loop, desktop, win
}

func TestMetadata(t *testing.T) {
	d := driver.New(sim.NewDesktop(geom.Size{Width: 10, Height: 10}), nil, nil)
	assert.Equal(t, driver.Name, d.Name())
	assert.NotEmpty(t, d.Version())
	assert.True(t, d.Supported())
	assert.True(t, d.Test())
}

func TestEnumeration(t *testing.T) {
	d := driver.New(sim.NewDesktop(geom.Size{Width: 10, Height: 10}), nil, nil)
	assert.Nil(t, d.Devices(), "nothing is enumerated before Initialize")

	require.NoError(t, d.Initialize())
	assert.Equal(t, []device.Device{d.Keyboard()}, d.Keyboards())
	assert.Equal(t, []device.Device{d.Mouse()}, d.Mice())
	assert.Empty(t, d.Controllers())
	assert.Empty(t, d.Pens())
	assert.Empty(t, d.Touch())
	assert.Equal(t, []device.Device{d.Keyboard(), d.Mouse()}, d.Devices())

	d.RescanDevices()
	assert.Len(t, d.Devices(), 2, "rescan does not duplicate devices")
}

func TestLookup(t *testing.T) {
	d := driver.New(sim.NewDesktop(geom.Size{Width: 10, Height: 10}), nil, nil)
	require.NoError(t, d.Initialize())

	cases := []struct {
		in   string
		want device.Device
	}{
		{"keyboard", d.Keyboard()},
		{"MOUSE", d.Mouse()},
		{keyboard.DeviceID, d.Keyboard()},
		{mouse.DeviceID, d.Mouse()},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := d.Lookup(tc.in)
			require.NoError(t, err)
			assert.Same(t, tc.want, got)
		})
	}

	_, err := d.Lookup("gamepad")
	assert.ErrorIs(t, err, driver.ErrUnknownDevice)
}

func TestDispatchAndFrameSync(t *testing.T) {
	d, loop, desktop, _ := newDriver(t)
	var seen []platform.Event
	d2 := driver.New(desktop, loop, &driver.Options{OnEvent: func(ev platform.Event) { seen = append(seen, ev) }})
	d2.Dispatch(platform.Event{Kind: platform.EventWheel, Wheel: 1})
	assert.Len(t, seen, 1)

	d.Dispatch(platform.Event{Kind: platform.EventButtonDown, Button: uint8(mouse.ButtonLeft)})
	d.Dispatch(platform.Event{Kind: platform.EventWheel, Wheel: 2})
	d.Dispatch(platform.Event{Kind: platform.EventKeyDown, Key: uint8(keyboard.KeyA)})
	d.Dispatch(platform.Event{Kind: platform.EventChar, Key: uint8(keyboard.KeyA), Char: 'a'})
	assert.False(t, d.Mouse().IsDown(mouse.ButtonLeft), "buttons are staged until the next frame")

	require.NoError(t, loop.Tick(func(uint64) error {
		assert.True(t, d.Mouse().Pressed(mouse.ButtonLeft))
		assert.Equal(t, 2, d.Mouse().DeltaWheel())
		assert.True(t, d.Keyboard().Pressed(keyboard.KeyA))
		assert.Equal(t, keyboard.KeyAndChar{Key: keyboard.KeyA, Char: 'a'}, d.Keyboard().ReadKey())
		return nil
	}))
	assert.False(t, d.Keyboard().Pressed(keyboard.KeyA), "post-frame sync ran")

	desktop.MoveBy(geom.Pt(5, 7))
	require.NoError(t, loop.Tick(func(uint64) error {
		assert.Equal(t, geom.Pt(5, 7), d.Mouse().Delta())
		return nil
	}))
}

func TestFocusRoutesToMouse(t *testing.T) {
	d, loop, desktop, win := newDriver(t)
	d.Mouse().SetVisible(false)
	require.NoError(t, loop.Tick(nil))
	require.False(t, desktop.CursorVisible())

	loop.SetActive(false)
	assert.True(t, desktop.CursorVisible(), "losing focus shows the cursor")

	loop.SetActive(true)
	assert.False(t, desktop.CursorVisible())
	assert.Equal(t, win.Rect().Center(), desktop.Position())
}

func TestCloseUnbinds(t *testing.T) {
	d, loop, desktop, _ := newDriver(t)
	require.NoError(t, d.Close())
	assert.Nil(t, d.Mouse().Window())

	desktop.MoveBy(geom.Pt(3, 3))
	require.NoError(t, loop.Tick(nil))
	assert.Equal(t, geom.Point{}, d.Mouse().Delta(), "closed driver no longer syncs")
}
