// Package trace records what happens on a simulated board (bytes latched into
// the display, switch changes, beeps) as a stream of CBOR events, so that a
// run can be inspected afterwards.
package trace

import (
	"time"
)

// Event is a single trace entry. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// Session identifies the simulator run (UUID).
	Session string `cbor:"2,keyasint"`

	// Kind of event. It determines which of the fields below are set.
	Kind Kind `cbor:"3,keyasint"`

	// Value is the latched byte (KindLatch) or the selected mode (KindMode).
	Value uint8 `cbor:"4,keyasint,omitempty"`

	// Switch index and new level (KindSwitch).
	Switch uint8 `cbor:"5,keyasint,omitempty"`
	Level  bool  `cbor:"6,keyasint,omitempty"`

	// Duration of a beep (KindBeep).
	Duration time.Duration `cbor:"7,keyasint,omitempty"`
}

// Kind classifies trace events.
type Kind uint8

const (
	// KindLatch is a full byte shifted into the display register.
	KindLatch Kind = 0
	// KindSwitch is a switch being toggled.
	KindSwitch Kind = 1
	// KindBeep is a beep on the piezo buzzer.
	KindBeep Kind = 2
	// KindMode is the mode selected at startup.
	KindMode Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLatch:
		return "LATCH"
	case KindSwitch:
		return "SWITCH"
	case KindBeep:
		return "BEEP"
	case KindMode:
		return "MODE"
	default:
		return "UNKNOWN"
	}
}

// ParseKind is the inverse of Kind.String. It is case sensitive.
func ParseKind(s string) (Kind, bool) {
	for k := KindLatch; k <= KindMode; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
