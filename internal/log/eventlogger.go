package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/nativeinput/platform"
)

// EventLogger records discrete input events as they are dispatched.
type EventLogger interface {
	Log(ev platform.Event)
}

// eventLogger implements EventLogger with thread-safe line output.
type eventLogger struct {
	w   io.Writer
	now func() time.Time
	mu  sync.Mutex
}

// NewEvent creates a new EventLogger. If w is nil, returns a no-op logger.
func NewEvent(w io.Writer) EventLogger {
	return &eventLogger{w: w, now: time.Now}
}

// Log emits a single line with timestamp and the event, e.g.
// "2006/01/02 15:04:05 IN key-down key=0x41".
func (l *eventLogger) Log(ev platform.Event) {
	if l.w == nil || ev.Kind == platform.EventNone {
		return
	}
	line := fmt.Sprintf("%s IN %s\n", l.now().Format("2006/01/02 15:04:05"), ev)

	l.mu.Lock()
	_, _ = l.w.Write([]byte(line))
	l.mu.Unlock()
}
