package trace

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeBuffer struct {
	bytes.Buffer
	closed int
}

func (b *closeBuffer) Close() error {
	b.closed++
	return nil
}

func TestEventEncoding(t *testing.T) {
	ts := time.Date(2026, 10, 18, 9, 30, 0, 123456789, time.UTC)
	original := Event{
		Timestamp: ts,
		Session:   "b5a1f2e0-1c2d-4e3f-8a9b-0c1d2e3f4a5b",
		Kind:      KindBeep,
		Duration:  30 * time.Millisecond,
	}
	data, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, decoded.Timestamp.Equal(ts))
	assert.Equal(t, original.Session, decoded.Session)
	assert.Equal(t, KindBeep, decoded.Kind)
	assert.Equal(t, 30*time.Millisecond, decoded.Duration)
}

func TestWriterReader(t *testing.T) {
	buf := &closeBuffer{}
	w := NewWriter(buf)
	w.Mode(1)
	w.Latch(0x60)
	w.Switch(1, true)
	w.Latch(0xF2)
	w.Beep(30 * time.Millisecond)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Equal(t, 1, buf.closed)
	w.Latch(0x00) // dropped

	r := NewReader(bytes.NewReader(buf.Bytes()), Filter{})
	var kinds []Kind
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, w.Session(), event.Session)
		assert.False(t, event.Timestamp.IsZero())
		kinds = append(kinds, event.Kind)
	}
	assert.Equal(t, []Kind{KindMode, KindLatch, KindSwitch, KindLatch, KindBeep}, kinds)

	latch := KindLatch
	r = NewReader(bytes.NewReader(buf.Bytes()), Filter{Kind: &latch})
	var values []uint8
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		values = append(values, event.Value)
	}
	assert.Equal(t, []uint8{0x60, 0xF2}, values)

	r = NewReader(bytes.NewReader(buf.Bytes()), Filter{Session: "other"})
	_, err := r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestFileAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.trace")
	for i := 0; i < 2; i++ {
		w, err := Create(path)
		require.NoError(t, err)
		w.Switch(i, true)
		require.NoError(t, w.Close())
	}

	r, err := Open(path, Filter{})
	require.NoError(t, err)
	defer r.Close()
	sessions := map[string]bool{}
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		sessions[event.Session] = true
	}
	assert.Len(t, sessions, 2, "every writer starts its own session")
}

func TestParseKind(t *testing.T) {
	for k := KindLatch; k <= KindMode; k++ {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("latch")
	assert.False(t, ok)
}
