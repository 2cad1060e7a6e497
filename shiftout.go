package hexbin

// ShiftRegister drives a serial-in, parallel-out shift register (such as a
// 74HC164) with two lines: data and clock. There is no latch line, so the
// outputs ripple while a byte is being shifted in.
type ShiftRegister struct {
	Data  OutputPin
	Clock OutputPin
}

// ShiftOut sends the given byte, least significant bit first. The data line
// is set before each clock pulse and the register samples it on the rising
// edge.
func (r *ShiftRegister) ShiftOut(value uint8) {
	for i := 0; i < 8; i++ {
		r.Data.Set(value&(1<<i) != 0)
		r.pulse()
	}
}

// Clear turns all segments off.
func (r *ShiftRegister) Clear() {
	r.ShiftOut(0x00)
}

// Show displays the hex digit for the given 4-bit value.
func (r *ShiftRegister) Show(value uint8) {
	r.ShiftOut(Pattern(value))
}

func (r *ShiftRegister) pulse() {
	r.Clock.Set(true)
	r.Clock.Set(false)
}
