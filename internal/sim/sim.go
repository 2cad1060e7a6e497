// Package sim models the hexbin hardware in memory: output pins, the shift
// register chip, the switch bank with its interrupt logic, the buzzer and a
// virtual clock. It is used by the host simulator and by tests.
package sim

import (
	"sync"
	"time"

	"github.com/aykevl/hexbin"
)

// Output is a simulated output pin.
type Output struct {
	level    bool
	OnChange func(level bool)
}

// Set drives the pin. OnChange is only called for actual level changes.
func (o *Output) Set(high bool) {
	if o.level == high {
		return
	}
	o.level = high
	if o.OnChange != nil {
		o.OnChange(high)
	}
}

// Get returns the current level of the pin.
func (o *Output) Get() bool {
	return o.level
}

// Chip is a serial-in, parallel-out shift register connected to a data and a
// clock output.
type Chip struct {
	Data  Output
	Clock Output

	// Called every time 8 bits have been clocked in, with the byte as it was
	// sent (least significant bit first).
	OnLatch func(value uint8)

	// Keep the data level of every clock pulse, for Samples. Off by default:
	// the history grows with every pulse until Reset.
	Record bool

	shift   uint8
	pulses  int
	samples []bool
}

// NewChip returns a shift register that samples Data on every rising edge of
// Clock.
func NewChip() *Chip {
	c := &Chip{}
	c.Clock.OnChange = func(level bool) {
		if level {
			c.clock()
		}
	}
	return c
}

func (c *Chip) clock() {
	// The first bit sent travels furthest, so after 8 pulses of an LSB-first
	// stream the register holds the byte in its original order.
	c.shift >>= 1
	if c.Data.Get() {
		c.shift |= 0x80
	}
	c.pulses++
	if c.Record {
		c.samples = append(c.samples, c.Data.Get())
	}
	if c.pulses%8 == 0 && c.OnLatch != nil {
		c.OnLatch(c.shift)
	}
}

// Byte returns the last 8 bits clocked in.
func (c *Chip) Byte() uint8 {
	return c.shift
}

// Pulses returns the number of rising clock edges seen so far.
func (c *Chip) Pulses() int {
	return c.pulses
}

// Samples returns the data level at each clock pulse since the last Reset,
// oldest first. It is only filled in when Record is set.
func (c *Chip) Samples() []bool {
	return c.samples
}

// Reset forgets the pulse history (but not the register contents).
func (c *Chip) Reset() {
	c.pulses = 0
	c.samples = c.samples[:0]
}

// Bank is the set of four switches with per-pin edge-triggered interrupts.
// It is safe for concurrent use: switches may be toggled from a UI goroutine
// while the game reads them.
type Bank struct {
	lock    sync.Mutex
	levels  uint8
	sense   uint8
	pending uint8

	// Called (without the lock held) when a switch transition matches the
	// configured edge of its pin.
	OnInterrupt func(pin int)
}

// Set changes the level of switch i, raising an interrupt when the
// transition matches the edge configured for it.
func (b *Bank) Set(i int, level bool) {
	b.lock.Lock()
	mask := uint8(1) << i
	old := b.levels&mask != 0
	if old == level {
		b.lock.Unlock()
		return
	}
	if level {
		b.levels |= mask
	} else {
		b.levels &^= mask
	}
	fire := false
	switch hexbin.EdgeOf(b.sense, i) {
	case hexbin.Rising:
		fire = level
	case hexbin.Falling:
		fire = !level
	}
	if fire {
		b.pending |= mask
	}
	b.lock.Unlock()

	if fire && b.OnInterrupt != nil {
		b.OnInterrupt(i)
	}
}

// Toggle flips switch i.
func (b *Bank) Toggle(i int) {
	b.Set(i, !b.Level(i))
}

// SetAll sets all four switches at once, one after another starting at
// switch 0.
func (b *Bank) SetAll(levels uint8) {
	for i := 0; i < 4; i++ {
		b.Set(i, levels&(1<<i) != 0)
	}
}

// Level returns the level of switch i.
func (b *Bank) Level(i int) bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.levels&(1<<i) != 0
}

// Levels returns all switch levels as a bitmask.
func (b *Bank) Levels() uint8 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.levels
}

// Sense returns the edge-sense mask last configured through SetEdges.
func (b *Bank) Sense() uint8 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.sense
}

// Pending returns the pending interrupt flags.
func (b *Bank) Pending() uint8 {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.pending
}

// SetEdges implements hexbin.Trigger.
func (b *Bank) SetEdges(sense uint8) {
	b.lock.Lock()
	b.sense = sense & 0x0f
	b.lock.Unlock()
}

// ClearPending implements hexbin.Trigger.
func (b *Bank) ClearPending() {
	b.lock.Lock()
	b.pending = 0
	b.lock.Unlock()
}

// Pin returns switch i as an input pin.
func (b *Bank) Pin(i int) hexbin.InputPin {
	return bankPin{b, i}
}

type bankPin struct {
	bank  *Bank
	index int
}

func (p bankPin) Get() bool {
	return p.bank.Level(p.index)
}

// Speaker records beeps.
type Speaker struct {
	lock  sync.Mutex
	beeps []time.Duration

	// Optional, called for every beep.
	OnBeep func(d time.Duration)
}

// Beep implements hexbin.Beeper. It doesn't block.
func (s *Speaker) Beep(d time.Duration) {
	s.lock.Lock()
	s.beeps = append(s.beeps, d)
	s.lock.Unlock()
	if s.OnBeep != nil {
		s.OnBeep(d)
	}
}

// Beeps returns all beeps so far.
func (s *Speaker) Beeps() []time.Duration {
	s.lock.Lock()
	defer s.lock.Unlock()
	return append([]time.Duration(nil), s.beeps...)
}

// Clock is a virtual clock: Sleep advances it without blocking.
type Clock struct {
	lock    sync.Mutex
	elapsed time.Duration
	sleeps  int
}

// Sleep implements hexbin.Sleeper.
func (c *Clock) Sleep(d time.Duration) {
	c.lock.Lock()
	c.elapsed += d
	c.sleeps++
	c.lock.Unlock()
}

// Elapsed returns the total time slept.
func (c *Clock) Elapsed() time.Duration {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.elapsed
}

// Sleeps returns the number of Sleep calls.
func (c *Clock) Sleeps() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.sleeps
}

// Board is a complete simulated board.
type Board struct {
	Chip     *Chip
	Switches *Bank
	Speaker  *Speaker
	Clock    *Clock
}

// NewBoard returns a board with all switches off.
func NewBoard() *Board {
	return &Board{
		Chip:     NewChip(),
		Switches: &Bank{},
		Speaker:  &Speaker{},
		Clock:    &Clock{},
	}
}

// Hardware returns the board as seen by the game. The clock may be replaced
// by a real one (hexbin.SleepFunc(time.Sleep)) for interactive use.
func (b *Board) Hardware() hexbin.Hardware {
	return hexbin.Hardware{
		Display: &hexbin.ShiftRegister{
			Data:  &b.Chip.Data,
			Clock: &b.Chip.Clock,
		},
		Switches: hexbin.Switches{
			b.Switches.Pin(0),
			b.Switches.Pin(1),
			b.Switches.Pin(2),
			b.Switches.Pin(3),
		},
		Trigger: b.Switches,
		Speaker: b.Speaker,
		Clock:   b.Clock,
	}
}
