package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/trace"
)

var start = time.Date(2023, 4, 8, 19, 40, 35, 0, time.UTC)

func TestFormatEvent(t *testing.T) {
	const session = "0f3a8c21-5b6e-4d7f-9a10-2c4e6b8d0f12"
	tests := []struct {
		event trace.Event
		want  string
	}{
		{trace.Event{Kind: trace.KindLatch, Value: hexbin.Pattern(5)}, "LATCH   0xB6 (5)"},
		{trace.Event{Kind: trace.KindLatch, Value: hexbin.SegTop}, "LATCH   0x80"},
		{trace.Event{Kind: trace.KindSwitch, Switch: 2, Level: true}, "SWITCH  SW2 high"},
		{trace.Event{Kind: trace.KindSwitch}, "SWITCH  SW0 low"},
		{trace.Event{Kind: trace.KindBeep, Duration: 30 * time.Millisecond}, "BEEP    30ms"},
		{trace.Event{Kind: trace.KindMode, Value: 1}, "MODE    feedback (1)"},
		{trace.Event{Kind: trace.KindMode, Value: 0xC}, "MODE    display (C)"},
	}
	for _, tc := range tests {
		tc.event.Timestamp = start.Add(1500 * time.Millisecond)
		tc.event.Session = session
		assert.Equal(t, "19:40:36.500 0f3a8c21 "+tc.want, formatEvent(tc.event))
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	enc := trace.NewEncoder(&buf)
	events := []trace.Event{
		{Session: "a", Kind: trace.KindLatch, Value: hexbin.Pattern(0)},
		{Session: "a", Kind: trace.KindMode, Value: 2},
		{Session: "a", Kind: trace.KindBeep, Duration: 400 * time.Millisecond},
		{Session: "b", Kind: trace.KindLatch, Value: hexbin.Pattern(1)},
		{Session: "b", Kind: trace.KindSwitch, Switch: 1, Level: true},
		{Session: "b", Kind: trace.KindLatch, Value: hexbin.Pattern(3)},
		{Session: "b", Kind: trace.KindBeep, Duration: 30 * time.Millisecond},
	}
	for i, event := range events {
		event.Timestamp = start.Add(time.Duration(i) * time.Millisecond)
		require.NoError(t, enc.Encode(event))
	}

	var out bytes.Buffer
	sum, err := dump(&out, trace.NewReader(bytes.NewReader(buf.Bytes()), trace.Filter{}))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), len(events))
	assert.Equal(t, []string{"a", "b"}, sum.sessions)

	out.Reset()
	sum.print(&out)
	assert.Equal(t, `2 session(s)
  LATCH   3
  SWITCH  1
  BEEP    2
  MODE    1
beeping for 430ms
session a ended showing 0xFC (0)
session b ended showing 0xF2 (3)
`, out.String())

	// Filtered, without printing events.
	kind := trace.KindBeep
	sum, err = dump(nil, trace.NewReader(bytes.NewReader(buf.Bytes()), trace.Filter{Kind: &kind, Session: "b"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, sum.sessions)
	assert.Equal(t, 1, sum.counts[trace.KindBeep])
	assert.Equal(t, 30*time.Millisecond, sum.beeping)
}

func TestDumpTruncated(t *testing.T) {
	var buf bytes.Buffer
	enc := trace.NewEncoder(&buf)
	require.NoError(t, enc.Encode(trace.Event{Timestamp: start, Session: "a", Kind: trace.KindMode, Value: 1}))
	require.NoError(t, enc.Encode(trace.Event{Timestamp: start, Session: "a", Kind: trace.KindMode, Value: 1}))
	data := buf.Bytes()[:buf.Len()-3]

	sum, err := dump(nil, trace.NewReader(bytes.NewReader(data), trace.Filter{}))
	assert.Error(t, err)
	assert.Equal(t, 1, sum.counts[trace.KindMode])
}
