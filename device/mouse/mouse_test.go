package mouse_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform/sim"
)

type fixture struct {
	desktop *sim.Desktop
	window  *sim.Window
	focus   *sim.Focus
	mouse   *mouse.Mouse
}

func newFixture(t *testing.T, screen geom.Size, client geom.Rect, cursor geom.Point) *fixture {
	t.Helper()
	f := &fixture{
		desktop: sim.NewDesktop(screen),
		window:  sim.NewWindow(client),
		focus:   sim.NewFocus(true),
	}
	f.desktop.MoveTo(cursor)
	f.mouse = mouse.New(f.desktop, f.focus, nil)
	f.mouse.SetWindow(f.window)
	require.Equal(t, 1, f.window.Observers())
	return f
}

func defaultFixture(t *testing.T) *fixture {
	return newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{Width: 800, Height: 600}, geom.Pt(400, 300))
}

func TestAttachSeedsPosition(t *testing.T) {
	f := newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{X: 100, Y: 50, Width: 800, Height: 600}, geom.Pt(500, 400))

	assert.Equal(t, geom.Pt(400, 350), f.mouse.Position())
	assert.Equal(t, geom.Pt(400, 350), f.mouse.PrevPosition())
	assert.Equal(t, geom.Rect{X: 100, Y: 50, Width: 800, Height: 600}, f.mouse.ClientRect())
	assert.Equal(t, geom.Pt(500, 400), f.mouse.PrevNativePosition())
}

func TestRelativeMotion(t *testing.T) {
	f := defaultFixture(t)
	assert.Equal(t, geom.Pt(400, 300), f.mouse.Position())

	f.desktop.MoveBy(geom.Pt(10, -5))
	f.mouse.PreFrame()

	assert.Equal(t, geom.Pt(10, -5), f.mouse.Delta())
	assert.Equal(t, geom.Pt(410, 295), f.mouse.Position())
	assert.Equal(t, geom.Pt(400, 300), f.mouse.PrevPosition())
	assert.Equal(t, geom.Pt(410, 295), f.mouse.NativePosition())
	assert.Equal(t, geom.Pt(410, 295), f.mouse.PrevNativePosition())
	assert.Empty(t, f.desktop.Warps())
}

func TestInfiniteModeRecenters(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetInfiniteMode(true)
	assert.False(t, f.desktop.CursorVisible())

	f.desktop.MoveBy(geom.Pt(50, 0))
	f.mouse.PreFrame()

	assert.Equal(t, geom.Pt(50, 0), f.mouse.Delta())
	assert.Equal(t, geom.Pt(450, 300), f.mouse.Position())
	assert.Equal(t, []geom.Point{geom.Pt(400, 300)}, f.desktop.Warps())
	assert.Equal(t, geom.Pt(400, 300), f.desktop.Position())
	assert.Equal(t, geom.Pt(400, 300), f.mouse.PrevNativePosition())
}

func TestInfiniteModeClampsPosition(t *testing.T) {
	f := newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{Width: 800, Height: 600}, geom.Pt(790, 300))
	f.mouse.SetVisible(false)

	f.desktop.MoveBy(geom.Pt(50, 0))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(50, 0), f.mouse.Delta())
	assert.Equal(t, geom.Pt(799, 300), f.mouse.Position())

	f.desktop.MoveBy(geom.Pt(30, -400))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(30, -300), f.mouse.Delta(), "cursor stops at the screen top")
	assert.Equal(t, geom.Pt(799, 0), f.mouse.Position())
}

func TestInfiniteModeDefeatsScreenEdge(t *testing.T) {
	// The window covers the whole screen, so the OS cursor cannot move past
	// x=799. Recentring makes every frame report the full motion anyway.
	f := newFixture(t, geom.Size{Width: 800, Height: 600}, geom.Rect{Width: 800, Height: 600}, geom.Pt(400, 300))
	f.mouse.SetVisible(false)

	total := 0
	for i := 0; i < 5; i++ {
		f.desktop.MoveBy(geom.Pt(500, 0))
		f.mouse.PreFrame()
		d := f.mouse.Delta()
		assert.Equal(t, 399, d.X)
		total += d.X

		pos := f.mouse.Position()
		assert.True(t, geom.Rect{Width: 800, Height: 600}.Contains(pos), "position %v out of bounds", pos)
		assert.Equal(t, geom.Pt(400, 300), f.desktop.Position())
	}
	assert.Equal(t, 5*399, total)
}

func TestRecenterInvariantUnderRandomMotion(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	bounds := geom.Rect{Width: 800, Height: 600}

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		f.desktop.MoveBy(geom.Pt(rnd.Intn(4001)-2000, rnd.Intn(4001)-2000))
		f.mouse.PreFrame()
		pos := f.mouse.Position()
		require.True(t, bounds.Contains(pos), "frame %d: position %v out of bounds", i, pos)
	}
}

func TestAnchorMovesToCentreWithoutMotion(t *testing.T) {
	f := newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{Width: 800, Height: 600}, geom.Pt(100, 100))
	f.mouse.SetVisible(false)

	f.mouse.PreFrame()
	assert.Equal(t, geom.Point{}, f.mouse.Delta())
	assert.Empty(t, f.desktop.Warps(), "cursor is only moved when motion occurred")
	assert.Equal(t, geom.Pt(400, 300), f.mouse.PrevNativePosition())

	// The cursor never left (100,100), so the next frame measures from the
	// centre anchor.
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(-300, -200), f.mouse.Delta())
	assert.Equal(t, geom.Pt(0, 0), f.mouse.Position())
	assert.Equal(t, []geom.Point{geom.Pt(400, 300)}, f.desktop.Warps())
}

func TestHiddenWithoutInfiniteModeDoesNotRecenter(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetInfiniteMode(false)

	f.desktop.MoveBy(geom.Pt(600, 0))
	f.mouse.PreFrame()

	assert.Equal(t, geom.Pt(1000, 300), f.mouse.Position())
	assert.Empty(t, f.desktop.Warps())
	assert.Equal(t, geom.Pt(1000, 300), f.mouse.PrevNativePosition())
}

func TestDeltaLaw(t *testing.T) {
	f := defaultFixture(t)
	rnd := rand.New(rand.NewSource(3))
	var d geom.Point
	for i := 0; i < 200; i++ {
		if i == 100 {
			f.mouse.SetVisible(false)
		}
		// Moves come in back-and-forth pairs so the pointer never reaches
		// the client edges, where clamping applies.
		if i%2 == 0 {
			d = geom.Pt(rnd.Intn(41)-20, rnd.Intn(41)-20)
		} else {
			d = geom.Point{}.Sub(d)
		}
		f.desktop.MoveBy(d)
		f.mouse.PreFrame()
		s := f.mouse.Snapshot()
		require.Equal(t, s.PrevPosition.Add(s.Delta), s.Position, "frame %d", i)
	}
}

func TestButtons(t *testing.T) {
	f := defaultFixture(t)

	f.mouse.OnButtonDown(mouse.ButtonLeft)
	f.mouse.OnButtonDown(mouse.ButtonLeft)
	f.mouse.OnButtonDown(mouse.ButtonRight)
	f.mouse.OnButtonUp(mouse.ButtonRight)
	assert.Equal(t, mouse.ButtonNone, f.mouse.Buttons(), "staged buttons are not visible before the sync")

	f.mouse.PreFrame()
	assert.Equal(t, mouse.ButtonLeft, f.mouse.Buttons())
	assert.Equal(t, mouse.ButtonNone, f.mouse.PrevButtons())
	assert.Equal(t, mouse.ButtonLeft, f.mouse.ChangedButtons())
	assert.True(t, f.mouse.Pressed(mouse.ButtonLeft))
	assert.True(t, f.mouse.IsDown(mouse.ButtonLeft))
	assert.True(t, f.mouse.WasUp(mouse.ButtonLeft))
	assert.True(t, f.mouse.IsUp(mouse.ButtonRight))

	f.mouse.OnButtonUp(mouse.ButtonLeft)
	f.mouse.OnButtonDown(mouse.ButtonMiddle)
	f.mouse.PreFrame()
	assert.Equal(t, mouse.ButtonMiddle, f.mouse.Buttons())
	assert.Equal(t, mouse.ButtonLeft, f.mouse.PrevButtons())
	assert.Equal(t, mouse.ButtonLeft|mouse.ButtonMiddle, f.mouse.ChangedButtons())
	assert.True(t, f.mouse.Released(mouse.ButtonLeft))
	assert.True(t, f.mouse.Pressed(mouse.ButtonMiddle))
	assert.True(t, f.mouse.WasDown(mouse.ButtonLeft))

	f.mouse.PreFrame()
	assert.Equal(t, mouse.ButtonNone, f.mouse.ChangedButtons())
	assert.False(t, f.mouse.Pressed(mouse.ButtonMiddle))
}

func TestChangedButtonsIsXorOfCommittedMasks(t *testing.T) {
	f := defaultFixture(t)
	all := []mouse.Button{mouse.ButtonLeft, mouse.ButtonRight, mouse.ButtonMiddle}
	rnd := rand.New(rand.NewSource(11))

	net := mouse.ButtonNone
	for frame := 0; frame < 300; frame++ {
		before := f.mouse.Buttons()
		for i := rnd.Intn(6); i > 0; i-- {
			b := all[rnd.Intn(len(all))]
			if rnd.Intn(2) == 0 {
				f.mouse.OnButtonDown(b)
				net |= b
			} else {
				f.mouse.OnButtonUp(b)
				net &^= b
			}
		}
		f.mouse.PreFrame()
		require.Equal(t, net, f.mouse.Buttons(), "frame %d", frame)
		require.Equal(t, before^net, f.mouse.ChangedButtons(), "frame %d", frame)
		require.Equal(t, before, f.mouse.PrevButtons(), "frame %d", frame)
	}
}

func TestWheel(t *testing.T) {
	f := defaultFixture(t)

	f.mouse.OnWheel(1)
	f.mouse.OnWheel(2)
	f.mouse.PreFrame()
	assert.Equal(t, 3, f.mouse.Wheel())
	assert.Equal(t, 3, f.mouse.DeltaWheel())
	assert.Equal(t, 0, f.mouse.PrevWheel())

	f.mouse.OnWheel(-1)
	f.mouse.PreFrame()
	assert.Equal(t, 2, f.mouse.Wheel())
	assert.Equal(t, -1, f.mouse.DeltaWheel())
	assert.Equal(t, 3, f.mouse.PrevWheel())

	f.mouse.PreFrame()
	assert.Equal(t, 0, f.mouse.DeltaWheel())
}

func TestWindowMoveKeepsClientCoordinatesContinuous(t *testing.T) {
	f := newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{X: 100, Y: 100, Width: 800, Height: 600}, geom.Pt(500, 400))
	require.Equal(t, geom.Pt(400, 300), f.mouse.Position())

	f.window.Move(geom.Pt(150, 120))
	assert.Equal(t, geom.Pt(350, 280), f.mouse.Position())
	assert.Equal(t, geom.Pt(350, 280), f.mouse.PrevPosition())
	assert.Equal(t, geom.Rect{X: 150, Y: 120, Width: 800, Height: 600}, f.mouse.ClientRect())

	f.mouse.PreFrame()
	assert.Equal(t, geom.Point{}, f.mouse.Delta())
	assert.Equal(t, f.desktop.Position().Sub(geom.Pt(150, 120)), f.mouse.Position())
}

func TestWindowResizeUpdatesClientRect(t *testing.T) {
	f := defaultFixture(t)
	f.window.Resize(geom.Size{Width: 200, Height: 100})
	assert.Equal(t, geom.Rect{Width: 200, Height: 100}, f.mouse.ClientRect())
	assert.Equal(t, geom.Pt(400, 300), f.mouse.Position(), "position is not renormalised on resize")

	f.mouse.SetVisible(false)
	f.desktop.MoveBy(geom.Pt(1, 0))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(199, 99), f.mouse.Position())
	assert.Equal(t, geom.Pt(100, 50), f.desktop.Position())
}

func TestSizeMoveSuspendsRecentering(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetClipped(true)
	f.desktop.Unclip()

	f.window.BeginSizeMove()
	assert.True(t, f.mouse.Sizing())

	f.desktop.MoveBy(geom.Pt(20, 0))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(20, 0), f.mouse.Delta())
	assert.Empty(t, f.desktop.Warps())
	assert.Equal(t, geom.Pt(420, 300), f.mouse.PrevNativePosition())

	f.window.EndSizeMove()
	assert.False(t, f.mouse.Sizing())
	assert.Equal(t, []geom.Point{geom.Pt(400, 300)}, f.desktop.Warps())
	assert.Equal(t, geom.Pt(400, 300), f.mouse.PrevNativePosition())
	clip, ok := f.desktop.ClipRect()
	assert.True(t, ok)
	assert.Equal(t, geom.Rect{Width: 800, Height: 600}, clip)
}

func TestFocusTransitions(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetClipped(true)

	f.desktop.MoveBy(geom.Pt(30, 0))
	f.mouse.PreFrame()
	require.Equal(t, geom.Pt(430, 300), f.mouse.Position())

	f.focus.Set(false)
	f.mouse.Deactivate()
	assert.True(t, f.desktop.CursorVisible())
	assert.Equal(t, geom.Pt(430, 300), f.desktop.Position(), "cursor reappears at the logical position")
	_, clipped := f.desktop.ClipRect()
	assert.False(t, clipped)
	assert.True(t, f.mouse.Clipped(), "requested clipping survives focus loss")

	warps := len(f.desktop.Warps())
	f.desktop.MoveBy(geom.Pt(5, 0))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(5, 0), f.mouse.Delta())
	assert.Equal(t, geom.Pt(435, 300), f.mouse.Position())
	assert.Len(t, f.desktop.Warps(), warps, "no recentring while unfocused")

	f.focus.Set(true)
	f.mouse.Activate()
	assert.False(t, f.desktop.CursorVisible())
	assert.Equal(t, geom.Pt(400, 300), f.desktop.Position())
	clip, clipped := f.desktop.ClipRect()
	assert.True(t, clipped)
	assert.Equal(t, geom.Rect{Width: 800, Height: 600}, clip)
}

func TestActivateOutsideClientAreaLeavesCursorAlone(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.focus.Set(false)
	f.mouse.Deactivate()

	f.desktop.MoveBy(geom.Pt(1000, 0))
	f.mouse.PreFrame()
	require.Equal(t, geom.Pt(1400, 300), f.mouse.Position())

	warps := len(f.desktop.Warps())
	f.focus.Set(true)
	f.mouse.Activate()
	assert.True(t, f.desktop.CursorVisible())
	assert.Len(t, f.desktop.Warps(), warps)
}

func TestVisibilityOnlyCallsOSOnChange(t *testing.T) {
	f := defaultFixture(t)

	f.mouse.SetVisible(true)
	assert.Equal(t, 0, f.desktop.ShowCalls())

	f.mouse.SetVisible(false)
	f.mouse.SetVisible(false)
	assert.Equal(t, 1, f.desktop.ShowCalls())
	assert.False(t, f.mouse.Visible())

	f.mouse.SetVisible(true)
	assert.Equal(t, 2, f.desktop.ShowCalls())
	assert.True(t, f.desktop.CursorVisible())
}

func TestClipping(t *testing.T) {
	f := newFixture(t, geom.Size{Width: 1920, Height: 1080}, geom.Rect{X: 10, Y: 20, Width: 300, Height: 200}, geom.Pt(100, 100))

	f.mouse.SetClipped(true)
	clip, ok := f.desktop.ClipRect()
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 10, Y: 20, Width: 300, Height: 200}, clip)

	f.desktop.MoveBy(geom.Pt(1000, 1000))
	assert.Equal(t, geom.Pt(309, 219), f.desktop.Position())

	f.mouse.SetClipped(false)
	_, ok = f.desktop.ClipRect()
	assert.False(t, ok)
}

func TestClipFollowsAttachedWindow(t *testing.T) {
	desktop := sim.NewDesktop(geom.Size{Width: 1920, Height: 1080})
	m := mouse.New(desktop, nil, nil)

	m.SetClipped(true)
	_, ok := desktop.ClipRect()
	assert.False(t, ok, "no window to clip to yet")

	first := sim.NewWindow(geom.Rect{X: 10, Y: 20, Width: 300, Height: 200})
	m.SetWindow(first)
	clip, ok := desktop.ClipRect()
	require.True(t, ok)
	assert.Equal(t, first.Rect(), clip)

	second := sim.NewWindow(geom.Rect{X: 500, Y: 400, Width: 640, Height: 480})
	m.SetWindow(second)
	clip, ok = desktop.ClipRect()
	require.True(t, ok)
	assert.Equal(t, second.Rect(), clip)
	assert.True(t, m.Clipped())
}

func TestClipWaitsForFocusOnAttach(t *testing.T) {
	desktop := sim.NewDesktop(geom.Size{Width: 1920, Height: 1080})
	focus := sim.NewFocus(false)
	m := mouse.New(desktop, focus, nil)

	m.SetClipped(true)
	m.SetWindow(sim.NewWindow(geom.Rect{Width: 800, Height: 600}))
	_, ok := desktop.ClipRect()
	assert.False(t, ok)
}

func TestWindowCloseDeactivatesAndDetaches(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetClipped(true)

	f.window.Close()
	assert.Nil(t, f.mouse.Window())
	assert.Equal(t, 0, f.window.Observers())
	assert.True(t, f.desktop.CursorVisible())
	_, clipped := f.desktop.ClipRect()
	assert.False(t, clipped)

	warps := len(f.desktop.Warps())
	f.desktop.MoveBy(geom.Pt(100, 0))
	f.mouse.PreFrame()
	assert.Equal(t, geom.Pt(100, 0), f.mouse.Delta())
	assert.Len(t, f.desktop.Warps(), warps, "a detached mouse never moves the cursor")
	assert.False(t, f.mouse.Snapshot().Attached)
}

func TestSetWindowReplacesSubscription(t *testing.T) {
	f := defaultFixture(t)
	other := sim.NewWindow(geom.Rect{X: 1000, Y: 0, Width: 400, Height: 400})

	f.mouse.SetWindow(other)
	assert.Equal(t, 0, f.window.Observers())
	assert.Equal(t, 1, other.Observers())
	assert.Equal(t, geom.Pt(-600, 300), f.mouse.Position())

	f.window.Move(geom.Pt(50, 50))
	assert.Equal(t, geom.Rect{X: 1000, Y: 0, Width: 400, Height: 400}, f.mouse.ClientRect())

	f.mouse.SetWindow(nil)
	assert.Equal(t, 0, other.Observers())
	assert.Nil(t, f.mouse.Window())
}

func TestDisposedWindowIsNoWindow(t *testing.T) {
	desktop := sim.NewDesktop(geom.Size{Width: 800, Height: 600})
	w := sim.NewWindow(geom.Rect{Width: 800, Height: 600})
	w.Close()

	m := mouse.New(desktop, nil, nil)
	m.SetWindow(w)
	assert.Nil(t, m.Window())
	assert.Equal(t, 0, w.Observers())

	m.SetVisible(false)
	m.PreFrame()
	desktop.MoveBy(geom.Pt(10, 10))
	m.PreFrame()
	assert.Equal(t, geom.Pt(10, 10), m.Delta())
	assert.Empty(t, desktop.Warps())
}

func TestCloseRestoresCursor(t *testing.T) {
	f := defaultFixture(t)
	f.mouse.SetVisible(false)
	f.mouse.SetClipped(true)

	f.mouse.Close()
	assert.True(t, f.desktop.CursorVisible())
	_, clipped := f.desktop.ClipRect()
	assert.False(t, clipped)
	assert.Equal(t, 0, f.window.Observers())
}

func TestOptions(t *testing.T) {
	off := false
	m := mouse.New(sim.NewDesktop(geom.Size{Width: 10, Height: 10}), nil, &mouse.Options{InfiniteMode: &off})
	assert.False(t, m.InfiniteMode())
	assert.True(t, m.Visible())
	assert.Equal(t, "Mouse", m.DeviceName())
	assert.Equal(t, "native-mouse-combined", m.DeviceID())

	assert.True(t, mouse.New(sim.NewDesktop(geom.Size{Width: 10, Height: 10}), nil, nil).InfiniteMode())
}
