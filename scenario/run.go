package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/driver"
	"github.com/Alia5/nativeinput/frame"
	"github.com/Alia5/nativeinput/geom"
	"github.com/Alia5/nativeinput/platform"
	"github.com/Alia5/nativeinput/platform/sim"
)

// ErrExpectation is wrapped by the error Run returns when a frame does not
// report what its Expect block asks for.
var ErrExpectation = errors.New("expectation failed")

var defaultScreen = geom.Size{Width: 1920, Height: 1080}

// Report is what the devices reported during one frame.
type Report struct {
	Frame    uint64      `json:"frame" yaml:"frame"`
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Mouse    mouse.State `json:"mouse" yaml:"mouse"`
	Keys     []string    `json:"keys,omitempty" yaml:"keys,omitempty"`
	Pressed  []string    `json:"pressed,omitempty" yaml:"pressed,omitempty"`
	Released []string    `json:"released,omitempty" yaml:"released,omitempty"`
	Chars    string      `json:"chars,omitempty" yaml:"chars,omitempty"`
	// CursorVisible is the state of the simulated OS cursor.
	CursorVisible bool `json:"cursorVisible" yaml:"cursorVisible"`
}

// Options configures Run. A nil *Options uses the defaults.
type Options struct {
	Logger *slog.Logger
	// OnEvent sees every event fed to the driver.
	OnEvent func(platform.Event)
}

type runner struct {
	s       *Scenario
	logger  *slog.Logger
	desktop *sim.Desktop
	window  *sim.Window
	loop    *frame.Loop
	drv     *driver.Driver
}

// Run plays s and returns one report per executed frame. It stops at the
// first failed expectation, returning the reports up to and including the
// failing frame together with an error wrapping ErrExpectation.
func Run(ctx context.Context, s *Scenario, o *Options) ([]Report, error) {
	r := &runner{s: s, logger: slog.Default()}
	var onEvent func(platform.Event)
	if o != nil {
		if o.Logger != nil {
			r.logger = o.Logger
		}
		onEvent = o.OnEvent
	}

	screen := s.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = defaultScreen
	}
	client := s.Window
	if client.Width <= 0 || client.Height <= 0 {
		client = geom.RectAt(geom.Point{}, screen)
	}

	r.desktop = sim.NewDesktop(screen)
	r.window = sim.NewWindow(client)
	if s.Cursor != nil {
		r.desktop.MoveTo(*s.Cursor)
	} else {
		r.desktop.MoveTo(client.Center())
	}

	r.loop = frame.New(r.logger)
	r.drv = driver.New(r.desktop, r.loop, &driver.Options{
		Logger:       r.logger,
		InfiniteMode: s.Mouse.Infinite,
		OnEvent:      onEvent,
	})
	if err := r.drv.Initialize(); err != nil {
		return nil, err
	}
	r.drv.Bind(r.loop)
	defer func() { _ = r.drv.Close() }()
	r.drv.Mouse().SetWindow(r.window)
	r.applyPolicy(s.Mouse)

	r.logger.Debug("scenario started", "name", s.Name, "screen", screen, "window", client, "frames", len(s.Frames))

	var reports []Report
	for i, f := range s.Frames {
		n := max(f.Repeat, 1)
		for range n {
			if err := ctx.Err(); err != nil {
				return reports, err
			}
			if err := r.apply(f); err != nil {
				return reports, fmt.Errorf("frame %d: %w", i, err)
			}
			var rep Report
			err := r.loop.Tick(func(tick uint64) error {
				rep = r.report(tick, f.Name)
				return check(f.Expect, rep)
			})
			reports = append(reports, rep)
			if err != nil {
				name := f.Name
				if name == "" {
					name = fmt.Sprintf("#%d", i)
				}
				return reports, fmt.Errorf("frame %s (tick %d): %w", name, rep.Frame, err)
			}
		}
	}
	return reports, nil
}

func (r *runner) applyPolicy(p Policy) {
	m := r.drv.Mouse()
	if p.Infinite != nil {
		m.SetInfiniteMode(*p.Infinite)
	}
	if p.Visible != nil {
		m.SetVisible(*p.Visible)
	}
	if p.Clipped != nil {
		m.SetClipped(*p.Clipped)
	}
}

func (r *runner) apply(f Frame) error {
	r.applyPolicy(f.Policy)

	if w := f.Window; w != nil {
		if w.BeginSizeMove {
			r.window.BeginSizeMove()
		}
		if w.Move != nil {
			r.window.Move(*w.Move)
		}
		if w.Resize != nil {
			r.window.Resize(*w.Resize)
		}
		if w.EndSizeMove {
			r.window.EndSizeMove()
		}
		if w.Close {
			r.window.Close()
		}
	}
	if f.Focus != nil {
		r.loop.SetActive(*f.Focus)
	}
	if f.Move != nil {
		r.desktop.MoveBy(*f.Move)
	}

	for _, name := range f.Down {
		b, ok := mouse.ParseButton(name)
		if !ok {
			return fmt.Errorf("unknown mouse button %q", name)
		}
		r.drv.Dispatch(platform.Event{Kind: platform.EventButtonDown, Button: uint8(b)})
	}
	for _, name := range f.Up {
		b, ok := mouse.ParseButton(name)
		if !ok {
			return fmt.Errorf("unknown mouse button %q", name)
		}
		r.drv.Dispatch(platform.Event{Kind: platform.EventButtonUp, Button: uint8(b)})
	}
	if f.Wheel != 0 {
		r.drv.Dispatch(platform.Event{Kind: platform.EventWheel, Wheel: f.Wheel})
	}
	for _, name := range f.KeyDown {
		k, err := keyboard.ParseKey(name)
		if err != nil {
			return err
		}
		r.drv.Dispatch(platform.Event{Kind: platform.EventKeyDown, Key: uint8(k)})
	}
	for _, name := range f.KeyUp {
		k, err := keyboard.ParseKey(name)
		if err != nil {
			return err
		}
		r.drv.Dispatch(platform.Event{Kind: platform.EventKeyUp, Key: uint8(k)})
	}
	for _, c := range f.Type {
		r.drv.Dispatch(platform.Event{Kind: platform.EventChar, Key: uint8(keyboard.KeyForChar(c)), Char: c})
	}
	return nil
}

func (r *runner) report(n uint64, name string) Report {
	kb := r.drv.Keyboard()
	rep := Report{
		Frame:         n,
		Name:          name,
		Mouse:         r.drv.Mouse().Snapshot(),
		CursorVisible: r.desktop.CursorVisible(),
	}
	for i := 0; i < keyboard.KeyCount; i++ {
		k := keyboard.Key(i)
		if kb.IsDown(k) {
			rep.Keys = append(rep.Keys, k.String())
		}
		if kb.Pressed(k) {
			rep.Pressed = append(rep.Pressed, k.String())
		}
		if kb.Released(k) {
			rep.Released = append(rep.Released, k.String())
		}
	}
	var chars strings.Builder
	for kc := kb.ReadKey(); kc != keyboard.None; kc = kb.ReadKey() {
		chars.WriteRune(kc.Char)
	}
	rep.Chars = chars.String()
	return rep
}

func check(e *Expect, rep Report) error {
	if e == nil {
		return nil
	}
	var bad []string
	point := func(what string, want *geom.Point, got geom.Point) {
		if want != nil && *want != got {
			bad = append(bad, fmt.Sprintf("%s: want %s, got %s", what, *want, got))
		}
	}
	integer := func(what string, want *int, got int) {
		if want != nil && *want != got {
			bad = append(bad, fmt.Sprintf("%s: want %d, got %d", what, *want, got))
		}
	}
	keys := func(what string, want, got []string) {
		if want == nil {
			return
		}
		norm := make([]string, 0, len(want))
		for _, name := range want {
			k, err := keyboard.ParseKey(name)
			if err != nil {
				bad = append(bad, fmt.Sprintf("%s: %v", what, err))
				return
			}
			norm = append(norm, k.String())
		}
		slices.Sort(norm)
		got = slices.Sorted(slices.Values(got))
		if !slices.Equal(norm, got) {
			bad = append(bad, fmt.Sprintf("%s: want %v, got %v", what, norm, got))
		}
	}

	point("position", e.Position, rep.Mouse.Position)
	point("delta", e.Delta, rep.Mouse.Delta)
	point("native", e.Native, rep.Mouse.Native)
	if e.Buttons != nil {
		var want mouse.Button
		if err := want.UnmarshalText([]byte(*e.Buttons)); err != nil {
			bad = append(bad, fmt.Sprintf("buttons: %v", err))
		} else if want != rep.Mouse.Buttons {
			bad = append(bad, fmt.Sprintf("buttons: want %s, got %s", want, rep.Mouse.Buttons))
		}
	}
	integer("wheel", e.Wheel, rep.Mouse.Wheel)
	integer("deltaWheel", e.DeltaWheel, rep.Mouse.DeltaWheel)
	keys("pressed", e.Pressed, rep.Pressed)
	keys("released", e.Released, rep.Released)
	if e.Chars != nil && *e.Chars != rep.Chars {
		bad = append(bad, fmt.Sprintf("chars: want %q, got %q", *e.Chars, rep.Chars))
	}
	if e.CursorVisible != nil && *e.CursorVisible != rep.CursorVisible {
		bad = append(bad, fmt.Sprintf("cursorVisible: want %t, got %t", *e.CursorVisible, rep.CursorVisible))
	}

	if len(bad) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrExpectation, strings.Join(bad, "; "))
}
