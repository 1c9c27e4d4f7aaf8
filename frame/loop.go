// Package frame drives per-frame device synchronisation: pre-frame hooks run
// before the update callback, post-frame hooks after it. The loop also owns
// application focus and tells subscribers when it changes.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrInvalidInterval is returned by Run for a non-positive frame interval.
var ErrInvalidInterval = errors.New("frame interval must be positive")

// UpdateFunc is the per-frame application callback. A non-nil error stops Run.
type UpdateFunc func(frame uint64) error

type hooks struct {
	next int
	fns  map[int]func()
}

func (h *hooks) add(f func()) int {
	if h.fns == nil {
		h.fns = make(map[int]func())
	}
	id := h.next
	h.next++
	h.fns[id] = f
	return id
}

// ordered returns the registered funcs in registration order.
func (h *hooks) ordered() []func() {
	out := make([]func(), 0, len(h.fns))
	for id := 0; id < h.next; id++ {
		if f, ok := h.fns[id]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Loop implements platform.Focus.
type Loop struct {
	mu         sync.Mutex
	active     bool
	frame      uint64
	pre        hooks
	post       hooks
	activate   hooks
	deactivate hooks
	logger     *slog.Logger
}

// New returns an active loop. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{active: true, logger: logger}
}

func (l *Loop) register(h *hooks, f func()) func() {
	l.mu.Lock()
	id := h.add(f)
	l.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(h.fns, id)
			l.mu.Unlock()
		})
	}
}

// OnPreFrame registers f to run at the start of every frame.
func (l *Loop) OnPreFrame(f func()) (cancel func()) { return l.register(&l.pre, f) }

// OnPostFrame registers f to run at the end of every frame.
func (l *Loop) OnPostFrame(f func()) (cancel func()) { return l.register(&l.post, f) }

// OnActivate registers f to run when the application gains focus.
func (l *Loop) OnActivate(f func()) (cancel func()) { return l.register(&l.activate, f) }

// OnDeactivate registers f to run when the application loses focus.
func (l *Loop) OnDeactivate(f func()) (cancel func()) { return l.register(&l.deactivate, f) }

func (l *Loop) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// SetActive records the focus state. Hooks fire only when it changes, after
// the new state is visible through Active.
func (l *Loop) SetActive(active bool) {
	l.mu.Lock()
	if l.active == active {
		l.mu.Unlock()
		return
	}
	l.active = active
	var fns []func()
	if active {
		fns = l.activate.ordered()
	} else {
		fns = l.deactivate.ordered()
	}
	l.mu.Unlock()

	l.logger.Debug("focus changed", "active", active)
	for _, f := range fns {
		f()
	}
}

// Frame returns the number of completed ticks.
func (l *Loop) Frame() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frame
}

// Tick runs one frame: pre-frame hooks, update, post-frame hooks. Post-frame
// hooks run even when update fails.
func (l *Loop) Tick(update UpdateFunc) error {
	l.mu.Lock()
	n := l.frame
	pre := l.pre.ordered()
	l.mu.Unlock()

	for _, f := range pre {
		f()
	}
	var err error
	if update != nil {
		err = update(n)
	}

	l.mu.Lock()
	post := l.post.ordered()
	l.mu.Unlock()
	for _, f := range post {
		f()
	}

	l.mu.Lock()
	l.frame++
	l.mu.Unlock()
	return err
}

// Run ticks every interval until ctx is done or update returns an error.
// Context cancellation is not reported as an error.
func (l *Loop) Run(ctx context.Context, interval time.Duration, update UpdateFunc) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Debug("frame loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("frame loop stopped", "frames", l.Frame())
			return nil
		case <-ticker.C:
			if err := l.Tick(update); err != nil {
				return fmt.Errorf("frame %d: %w", l.Frame()-1, err)
			}
		}
	}
}
