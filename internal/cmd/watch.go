package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/Alia5/nativeinput/device/keyboard"
	"github.com/Alia5/nativeinput/device/mouse"
	"github.com/Alia5/nativeinput/driver"
	"github.com/Alia5/nativeinput/frame"
	"github.com/Alia5/nativeinput/internal/log"
	"github.com/Alia5/nativeinput/platform"
	"github.com/Alia5/nativeinput/platform/native"
	"github.com/Alia5/nativeinput/platform/terminal"
)

type Watch struct {
	Backend  string `help:"Input backend" enum:"native,terminal" default:"terminal" env:"NATIVEINPUT_WATCH_BACKEND"`
	FPS      int    `help:"Frames per second" default:"60" env:"NATIVEINPUT_WATCH_FPS"`
	Frames   uint64 `help:"Stop after this many frames; 0 runs until interrupted" default:"0" env:"NATIVEINPUT_WATCH_FRAMES"`
	Hidden   bool   `help:"Hide the pointer" env:"NATIVEINPUT_WATCH_HIDDEN"`
	Clipped  bool   `help:"Confine the pointer to the window" env:"NATIVEINPUT_WATCH_CLIPPED"`
	Infinite bool   `help:"Recentre the hidden pointer every frame" default:"true" negatable:"" env:"NATIVEINPUT_WATCH_INFINITE"`
}

var errFrameLimit = errors.New("frame limit reached")

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, events log.EventLogger) error {
	if w.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", w.FPS)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch w.Backend {
	case "native":
		return w.watchNative(ctx, logger, events)
	default:
		return w.watchTerminal(ctx, logger, events)
	}
}

func (w *Watch) interval() time.Duration {
	return time.Second / time.Duration(w.FPS)
}

func (w *Watch) setup(cursor platform.Cursor, win platform.Window, logger *slog.Logger, events log.EventLogger) (*frame.Loop, *driver.Driver, error) {
	loop := frame.New(logger)
	drv := driver.New(cursor, loop, &driver.Options{Logger: logger, InfiniteMode: &w.Infinite, OnEvent: events.Log})
	if err := drv.Initialize(); err != nil {
		return nil, nil, err
	}
	drv.Bind(loop)
	if fn, ok := win.(platform.FocusNotifier); ok {
		fn.OnFocus(loop.SetActive)
	}
	m := drv.Mouse()
	m.SetWindow(win)
	m.SetVisible(!w.Hidden)
	m.SetClipped(w.Clipped)
	return loop, drv, nil
}

func (w *Watch) update(drv *driver.Driver, each func(uint64, mouse.State, []keyboard.Key) error) frame.UpdateFunc {
	return func(n uint64) error {
		if w.Frames > 0 && n >= w.Frames {
			return errFrameLimit
		}
		return each(n, drv.Mouse().Snapshot(), drv.Keyboard().DownKeys())
	}
}

func finish(err error) error {
	if errors.Is(err, errFrameLimit) || errors.Is(err, terminal.ErrQuit) {
		return nil
	}
	return err
}

// watchNative drives the OS cursor and reads typed characters from stdin in
// raw mode.
func (w *Watch) watchNative(ctx context.Context, logger *slog.Logger, events log.EventLogger) error {
	b, err := native.Open(logger)
	if err != nil {
		return err
	}
	defer b.Close()

	loop, drv, err := w.setup(b.Cursor, b.Window, logger, events)
	if err != nil {
		return err
	}
	defer drv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := &stdinKeys{}
	if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw stdin: %w", err)
		}
		defer func() { _ = term.Restore(fd, old) }()
		go func() {
			_ = keys.read(os.Stdin, drv.Dispatch)
			cancel()
		}()
	}
	loop.OnPostFrame(func() { keys.release(drv.Dispatch) })

	logger.Info("Watching native input", "backend", b.Name, "fps", w.FPS, "screen", b.Window.ClientSize())
	var last mouse.State
	err = loop.Run(ctx, w.interval(), w.update(drv, func(n uint64, s mouse.State, down []keyboard.Key) error {
		if s.Delta.IsZero() && s.ChangedButtons == 0 && s.DeltaWheel == 0 && len(down) == 0 && s.Visible == last.Visible {
			return nil
		}
		last = s
		logger.Info("input", "frame", n, "position", s.Position, "delta", s.Delta, "buttons", s.Buttons, "wheel", s.Wheel, "keys", down)
		return nil
	}))
	return finish(err)
}

// watchTerminal uses the terminal as window, cursor and event source.
func (w *Watch) watchTerminal(ctx context.Context, logger *slog.Logger, events log.EventLogger) error {
	t, err := terminal.Open(logger)
	if err != nil {
		return err
	}
	defer t.Close()

	loop, drv, err := w.setup(t, t, logger, events)
	if err != nil {
		return err
	}
	defer drv.Close()
	loop.OnPostFrame(func() {
		for _, ev := range t.ReleaseKeys() {
			drv.Dispatch(ev)
		}
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	pumpErr := make(chan error, 1)
	go func() {
		pumpErr <- t.Pump(ctx, drv.Dispatch)
		cancel()
	}()

	var typed []rune
	err = loop.Run(ctx, w.interval(), w.update(drv, func(n uint64, s mouse.State, down []keyboard.Key) error {
		for kc := drv.Keyboard().ReadKey(); kc != keyboard.None; kc = drv.Keyboard().ReadKey() {
			typed = append(typed, kc.Char)
			if len(typed) > 40 {
				typed = typed[len(typed)-40:]
			}
		}
		t.Draw([]string{
			fmt.Sprintf("frame %d  (ctrl-c to quit)", n),
			fmt.Sprintf("position %s  delta %s  native %s", s.Position, s.Delta, s.Native),
			fmt.Sprintf("buttons %s  wheel %d", s.Buttons, s.Wheel),
			fmt.Sprintf("visible %t  clipped %t  infinite %t  focused %t", s.Visible, s.Clipped, s.Infinite, loop.Active()),
			fmt.Sprintf("keys %v", down),
			fmt.Sprintf("typed %q", string(typed)),
		}, s.Position)
		return nil
	}))
	cancel()
	if perr := <-pumpErr; err == nil {
		err = perr
	}
	return finish(err)
}

// stdinKeys turns raw stdin bytes into key and character events. Raw
// terminals report no releases, so every key is released after one frame.
type stdinKeys struct {
	mu   sync.Mutex
	held []keyboard.Key
}

// read dispatches events until r fails or Ctrl-C is read.
func (k *stdinKeys) read(r io.Reader, dispatch func(platform.Event)) error {
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			return err
		}
		if c == 0x03 {
			return terminal.ErrQuit
		}
		key := keyboard.KeyForChar(c)
		k.mu.Lock()
		k.held = append(k.held, key)
		k.mu.Unlock()
		dispatch(platform.Event{Kind: platform.EventKeyDown, Key: uint8(key)})
		dispatch(platform.Event{Kind: platform.EventChar, Key: uint8(key), Char: c})
	}
}

func (k *stdinKeys) release(dispatch func(platform.Event)) {
	k.mu.Lock()
	held := k.held
	k.held = nil
	k.mu.Unlock()
	for _, key := range held {
		dispatch(platform.Event{Kind: platform.EventKeyUp, Key: uint8(key)})
	}
}
