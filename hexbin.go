// Package hexbin implements a small binary-to-hexadecimal trainer: four
// toggle switches form a 4-bit value, which is shown as a hex digit on a
// seven-segment display behind a serial shift register. A piezo buzzer gives
// audio feedback in some modes.
//
// The package has no dependency on a particular board. Pins, delays and the
// buzzer are passed in through small interfaces, which the board package
// implements for real hardware and for the simulator.
package hexbin

import (
	"log/slog"
	"time"
)

// OutputPin is a single digital output. machine.Pin implements it.
type OutputPin interface {
	Set(high bool)
}

// InputPin is a single digital input. machine.Pin implements it.
type InputPin interface {
	Get() bool
}

// Sleeper is the timing source used for all delays.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function such as time.Sleep to the Sleeper interface.
type SleepFunc func(d time.Duration)

func (f SleepFunc) Sleep(d time.Duration) {
	f(d)
}

// Beeper drives the piezo buzzer. Beep blocks for the given duration.
type Beeper interface {
	Beep(d time.Duration)
}

// Trigger is the interrupt configuration of the four switch pins.
type Trigger interface {
	// SetEdges selects the interrupt edge of every switch pin. Bit i set means
	// switch i is currently high, so it should trigger on the falling edge.
	// Bit i cleared means it should trigger on the rising edge.
	SetEdges(sense uint8)

	// ClearPending clears the pending interrupt flags of the switch pins.
	ClearPending()
}

// Hardware bundles everything the game needs from the board.
type Hardware struct {
	Display  *ShiftRegister
	Switches Switches
	Trigger  Trigger
	Speaker  Beeper
	Clock    Sleeper
}

// Config holds the timing parameters of the game. Use DefaultConfig and
// modify the fields that need changing.
type Config struct {
	// Number of times the six-step chase animation runs at startup.
	ChaseRounds int

	// Delay after every step of the startup animation.
	StepDelay time.Duration

	// Delay between a switch interrupt and the next sample of the switches.
	Debounce time.Duration

	// Number of additional identical samples required before a switch state
	// is accepted. Zero accepts the first sample after the debounce delay.
	DebounceSamples int

	// Upper bound on the number of samples taken for a single change.
	DebounceLimit int

	// Beep length on every switch change in ModeFeedback.
	ShortBeep time.Duration

	// Beep length at startup in ModeGame.
	LongBeep time.Duration

	// Sleep between polls in Run.
	Idle time.Duration

	// Optional logger. Nothing is logged when it is nil.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used by the firmware.
func DefaultConfig() Config {
	return Config{
		ChaseRounds:     2,
		StepDelay:       50 * time.Millisecond,
		Debounce:        5 * time.Millisecond,
		DebounceSamples: 2,
		DebounceLimit:   16,
		ShortBeep:       30 * time.Millisecond,
		LongBeep:        400 * time.Millisecond,
		Idle:            time.Millisecond,
	}
}
