package sim

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChipLatch(t *testing.T) {
	c := NewChip()
	c.Record = true
	var latched []uint8
	c.OnLatch = func(v uint8) { latched = append(latched, v) }

	// Clock in 0b1011 LSB first, followed by zeros.
	for _, bit := range []bool{true, true, false, true, false, false, false, false} {
		c.Data.Set(bit)
		c.Clock.Set(true)
		c.Clock.Set(false)
	}
	assert.Equal(t, []uint8{0x0b}, latched)
	assert.Equal(t, uint8(0x0b), c.Byte())
	assert.Equal(t, 8, c.Pulses())

	// Data changes without a clock edge are not sampled.
	c.Data.Set(true)
	c.Data.Set(false)
	assert.Equal(t, 8, c.Pulses())

	// Holding the clock high is a single pulse.
	c.Clock.Set(true)
	c.Clock.Set(true)
	assert.Equal(t, 9, c.Pulses())
	assert.Equal(t, uint8(0x05), c.Byte())

	c.Reset()
	assert.Zero(t, c.Pulses())
	assert.Empty(t, c.Samples())
}

func TestChipNoRecord(t *testing.T) {
	c := NewChip()
	for i := 0; i < 1000; i++ {
		c.Data.Set(i%3 == 0)
		c.Clock.Set(true)
		c.Clock.Set(false)
	}
	assert.Equal(t, 1000, c.Pulses())
	assert.Nil(t, c.Samples(), "nothing kept unless recording")
	assert.Zero(t, cap(c.samples))
}

func TestBankEdges(t *testing.T) {
	b := &Bank{}
	var fired []int
	b.OnInterrupt = func(pin int) { fired = append(fired, pin) }

	b.Set(0, true)  // rising, armed for rising
	b.Set(0, true)  // no change
	b.Set(0, false) // falling, armed for rising: missed
	assert.Equal(t, []int{0}, fired)
	assert.Equal(t, uint8(0b0001), b.Pending())

	b.SetEdges(0b1000)
	b.ClearPending()
	b.Set(3, true) // rising, armed for falling: missed
	b.Set(3, false)
	assert.Equal(t, []int{0, 3}, fired)
	assert.Equal(t, uint8(0b1000), b.Pending())

	b.SetEdges(0xff)
	assert.Equal(t, uint8(0x0f), b.Sense(), "only four pins")
}

func TestBankToggleConcurrent(t *testing.T) {
	b := &Bank{}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				b.Toggle(i)
				_ = b.Pin(i).Get()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, uint8(0), b.Levels(), "an even number of toggles")
}

func TestSpeakerAndClock(t *testing.T) {
	s := &Speaker{}
	var hooked time.Duration
	s.OnBeep = func(d time.Duration) { hooked += d }
	s.Beep(time.Millisecond)
	s.Beep(2 * time.Millisecond)
	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, s.Beeps())
	assert.Equal(t, 3*time.Millisecond, hooked)

	c := &Clock{}
	c.Sleep(time.Second)
	c.Sleep(time.Second)
	assert.Equal(t, 2*time.Second, c.Elapsed())
	assert.Equal(t, 2, c.Sleeps())
}

func TestBoardHardware(t *testing.T) {
	b := NewBoard()
	hw := b.Hardware()
	b.Switches.SetAll(0b0101)
	require.Equal(t, uint8(5), hw.Switches.Read())
	hw.Display.Show(5)
	assert.Equal(t, uint8(0xB6), b.Chip.Byte())
}
