package hexbin

// Segment bits as wired between the shift register and the display:
//
//	       0x80
//	      ------
//	0x04 | 0x02 | 0x40
//	      ------
//	0x08 |      | 0x20
//	      ------  o 0x01
//	       0x10
const (
	SegDot    = 0x01
	SegMid    = 0x02
	SegUL     = 0x04
	SegLL     = 0x08
	SegBottom = 0x10
	SegLR     = 0x20
	SegUR     = 0x40
	SegTop    = 0x80
)

// Digits maps a 4-bit value to the segment pattern of its hex digit.
// The letters A, b, C, d and E carry some extra segments (the dot on A, b, d),
// which makes them distinguishable from similar looking digits.
var Digits = [16]uint8{
	0xFC, 0x60, 0xDA, 0xF2, 0x66, 0xB6, 0xBE, 0xE0, // 0-7
	0xFE, 0xE6, 0xEF, 0x3F, 0x9D, 0x7B, 0x9F, 0x8F, // 8-F
}

// Chase is the startup animation: a single lit segment running around the
// outer ring of the display.
var Chase = [6]uint8{SegBottom, SegLL, SegUL, SegTop, SegUR, SegLR}

// Pattern returns the segment pattern for the given value. Only the lower 4
// bits are used.
func Pattern(value uint8) uint8 {
	return Digits[value&0x0f]
}

// Decode is the inverse of Pattern. It returns false if the pattern is not
// one of the 16 digits.
func Decode(pattern uint8) (value uint8, ok bool) {
	for i, p := range Digits {
		if p == pattern {
			return uint8(i), true
		}
	}
	return 0, false
}
