package trace

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Writer appends events to a trace. It is safe for concurrent use.
type Writer struct {
	session string
	now     func() time.Time

	lock    sync.Mutex
	out     io.WriteCloser
	encoder *cbor.Encoder
	closed  bool
}

// Create opens (or creates) the trace file at path for appending, and starts
// a new session.
func Create(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return NewWriter(f), nil
}

// NewWriter starts a new session writing to w. Closing the Writer closes w.
func NewWriter(w io.WriteCloser) *Writer {
	return &Writer{
		session: uuid.New().String(),
		now:     time.Now,
		out:     w,
		encoder: NewEncoder(w),
	}
}

// Session returns the session ID stamped on every event.
func (w *Writer) Session() string {
	return w.session
}

// Log writes an event, filling in the timestamp (if unset) and session.
// Encoding errors are dropped: tracing must not disturb the simulation.
func (w *Writer) Log(event Event) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = w.now()
	}
	event.Session = w.session
	_ = w.encoder.Encode(event)
}

// Latch records a byte shifted into the display.
func (w *Writer) Latch(value uint8) {
	w.Log(Event{Kind: KindLatch, Value: value})
}

// Switch records a switch change.
func (w *Writer) Switch(index int, level bool) {
	w.Log(Event{Kind: KindSwitch, Switch: uint8(index), Level: level})
}

// Beep records a beep.
func (w *Writer) Beep(d time.Duration) {
	w.Log(Event{Kind: KindBeep, Duration: d})
}

// Mode records the selected mode.
func (w *Writer) Mode(mode uint8) {
	w.Log(Event{Kind: KindMode, Value: mode})
}

// Close closes the underlying file. It is safe to call Close more than once;
// events logged after Close are dropped.
func (w *Writer) Close() error {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.out.Close()
}
