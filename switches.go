package hexbin

// Switches are the four toggle switches. Index 0 is the least significant
// bit, index 3 the most significant.
type Switches [4]InputPin

// Read samples all four switches and packs them into a 4-bit value.
func (s Switches) Read() uint8 {
	value := uint8(0)
	for i, pin := range s {
		if pin.Get() {
			value |= 1 << i
		}
	}
	return value
}

// Edge is the transition a switch pin interrupt is configured for.
type Edge uint8

const (
	Rising  Edge = iota // low to high
	Falling             // high to low
)

func (e Edge) String() string {
	switch e {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return "unknown"
	}
}

// EdgeOf returns the edge configured for switch i in the given edge-sense
// mask. A pin that is currently high waits for the falling edge, and the
// other way around.
func EdgeOf(sense uint8, i int) Edge {
	if sense&(1<<i) != 0 {
		return Falling
	}
	return Rising
}
