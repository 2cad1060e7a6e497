package main

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/trace"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func TestRender(t *testing.T) {
	assert.Equal(t, " _ \n| |\n|_| \n", render(hexbin.Pattern(0)))
	assert.Equal(t, " _ \n|_|\n|_| \n", render(hexbin.Pattern(8)))
	assert.Equal(t, " _ \n|_|\n| |.\n", render(hexbin.Pattern(0xA)))
	assert.Equal(t, "   \n   \n    \n", render(0))
}

func TestParseLevels(t *testing.T) {
	v, err := parseLevels("0101")
	require.NoError(t, err)
	assert.Equal(t, uint8(5), v)

	for _, s := range []string{"", "101", "10101", "0121", "abcd"} {
		_, err := parseLevels(s)
		assert.Error(t, err, s)
	}
}

func TestConsoleDisplayMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0b0000)
	assert.Equal(t, "booted in display mode (0)\n"+render(hexbin.Pattern(0))+"= 0\n", out.String())

	out.Reset()
	assert.True(t, c.Execute("toggle 0"))
	assert.Equal(t, render(hexbin.Pattern(1))+"= 1\n", out.String())

	out.Reset()
	assert.True(t, c.Execute("set 1100"))
	assert.Equal(t, uint8(0b1100), c.game.Value())
	assert.Contains(t, out.String(), "= C\n")
	assert.Empty(t, c.board.Speaker.Beeps())
}

func TestConsoleFeedbackMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0b0001)
	assert.Equal(t, hexbin.ModeFeedback, c.game.Mode())
	assert.Empty(t, c.board.Speaker.Beeps())

	out.Reset()
	c.Execute("t 1")
	assert.Equal(t, render(hexbin.Pattern(3))+"= 3\nbeep 30ms\n", out.String())
}

func TestConsoleGameMode(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0b0010)
	assert.Equal(t, hexbin.ModeGame, c.game.Mode())
	assert.Equal(t, []time.Duration{400 * time.Millisecond}, c.board.Speaker.Beeps())

	// Changes are handled but the display keeps showing the mode.
	out.Reset()
	c.Execute("toggle 3")
	assert.Equal(t, render(hexbin.Pattern(2))+"= 2\n", out.String())
}

func TestConsoleBoot(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0)
	c.Execute("set 0001")

	// Without an argument the current switches are kept.
	out.Reset()
	c.Execute("boot")
	assert.True(t, strings.HasPrefix(out.String(), "booted in feedback mode (1)\n"))

	out.Reset()
	c.Execute("b 0010")
	assert.True(t, strings.HasPrefix(out.String(), "booted in game mode (2)\n"))
}

func TestConsoleStatus(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0b0101)
	out.Reset()
	c.Execute("status")
	assert.Contains(t, out.String(), "mode:     display (5)\n")
	assert.Contains(t, out.String(), "switches: 0101\n")
	assert.Contains(t, out.String(), "edges:    SW3:rising SW2:falling SW1:rising SW0:falling\n")
}

func TestConsoleErrors(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out, hexbin.DefaultConfig(), nil)
	c.Boot(0)

	for line, want := range map[string]string{
		"toggle":     "Usage: toggle <n>\n",
		"toggle 4":   "Invalid switch: 4 (must be 0-3)\n",
		"toggle x":   "Invalid switch: x (must be 0-3)\n",
		"set":        "Usage: set <bbbb>\n",
		"set 2":      "Invalid switches: 2 (must be 4 binary digits)\n",
		"set 0000":   "(no interrupt)\n",
		"frobnicate": "Unknown command: frobnicate (type 'help' for commands)\n",
		"":           "",
	} {
		out.Reset()
		assert.True(t, c.Execute(line), line)
		assert.Equal(t, want, out.String(), line)
	}

	assert.False(t, c.Execute("quit"))
	assert.False(t, c.Execute("EXIT"))
}

func TestConsoleTrace(t *testing.T) {
	buf := &bytes.Buffer{}
	tracer := trace.NewWriter(nopCloser{buf})
	c := NewConsole(io.Discard, hexbin.DefaultConfig(), tracer)
	c.Boot(0b0001)
	c.Execute("toggle 2")
	require.NoError(t, tracer.Close())

	r := trace.NewReader(buf, trace.Filter{})
	var kinds []trace.Kind
	var latched []uint8
	var last trace.Event
	for {
		event, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, tracer.Session(), event.Session)
		kinds = append(kinds, event.Kind)
		switch event.Kind {
		case trace.KindLatch:
			latched = append(latched, event.Value)
		case trace.KindMode:
			assert.Equal(t, uint8(hexbin.ModeFeedback), event.Value)
		case trace.KindSwitch:
			assert.Equal(t, uint8(2), event.Switch)
			assert.True(t, event.Level)
		}
		last = event
	}

	// Clear, the chase, clear, the mode, then the new value.
	assert.Equal(t, 2+2*len(hexbin.Chase)+2, len(latched))
	assert.Equal(t, hexbin.Pattern(1), latched[len(latched)-2])
	assert.Equal(t, hexbin.Pattern(5), latched[len(latched)-1])
	assert.Contains(t, kinds, trace.KindMode)
	assert.Contains(t, kinds, trace.KindSwitch)
	assert.Equal(t, trace.KindBeep, last.Kind)
	assert.Equal(t, 30*time.Millisecond, last.Duration)
}
