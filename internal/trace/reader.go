package trace

import (
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects events. Zero fields match everything.
type Filter struct {
	Kind    *Kind
	Session string
}

func (f *Filter) matches(event Event) bool {
	if f.Kind != nil && event.Kind != *f.Kind {
		return false
	}
	if f.Session != "" && event.Session != f.Session {
		return false
	}
	return true
}

// Reader reads events from a trace.
type Reader struct {
	in      io.Reader
	decoder *cbor.Decoder
	filter  Filter
}

// Open opens the trace file at path.
func Open(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f, filter), nil
}

// NewReader reads events from r that match the filter.
func NewReader(r io.Reader, filter Filter) *Reader {
	return &Reader{
		in:      r,
		decoder: NewDecoder(r),
		filter:  filter,
	}
}

// Next returns the next matching event, or io.EOF at the end of the trace.
func (r *Reader) Next() (Event, error) {
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file, if it can be closed.
func (r *Reader) Close() error {
	if c, ok := r.in.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
