// Package board contains the hardware bindings of the hexbin firmware. Every
// supported board is a separate file selected by build tags, and all of them
// export the same API:
//
//	Name     the board name, as passed to TinyGo in the "-target" flag
//	Display  Configure() *hexbin.ShiftRegister
//	Switches Configure(handler func()) hexbin.Switches, SetEdges, ClearPending
//	Speaker  Configure(), Beep(time.Duration)
//
// Outside of TinyGo the board is a simulator window.
package board

import (
	"image"
	"time"

	"github.com/aykevl/tinygl/pixel"

	"github.com/aykevl/hexbin"
)

// Settings for the simulator. These can be modified at any time, but it is
// recommended to modify them before configuring any of the board peripherals.
var Simulator = struct {
	WindowTitle string

	// Width and height of the digit in virtual pixels. The window will take
	// up more physical pixels on high-DPI screens.
	WindowWidth  int
	WindowHeight int

	// Color of a lit segment.
	SegmentColor pixel.RGB888

	// Switch levels at power on, bit 0 is switch 0.
	Switches uint8

	// Optional, notified of everything happening on the simulated board.
	Observer Observer
}{
	WindowTitle:  "hexbin",
	WindowWidth:  160,
	WindowHeight: 240,
	SegmentColor: pixel.RGB888{R: 0xff, G: 0x20, B: 0x10},
}

// Observer receives simulator events, for example to write a trace.
type Observer interface {
	Latch(value uint8)
	Switch(index int, level bool)
	Beep(d time.Duration)
	Mode(mode uint8) // mode selected at startup
}

// Hardware configures all peripherals and returns them in the form the game
// expects. The handler is called (possibly from interrupt context) when a
// switch changes; it is not called before the first Switches.SetEdges.
func Hardware(handler func()) hexbin.Hardware {
	Speaker.Configure()
	return hexbin.Hardware{
		Display:  Display.Configure(),
		Switches: Switches.Configure(handler),
		Trigger:  Switches,
		Speaker:  Speaker,
		Clock:    hexbin.SleepFunc(time.Sleep),
	}
}

// segmentRects returns the area of every segment, indexed by its bit in the
// segment pattern (see hexbin.SegDot and friends).
func segmentRects(w, h int) [8]image.Rectangle {
	t := w / 12
	if t < 1 {
		t = 1
	}
	left, right := w/8, w-w/4
	top, bottom := h/12, h-h/12
	mid := (top+bottom)/2 - t/2

	var rects [8]image.Rectangle
	rects[0] = image.Rect(right+t, bottom-t, right+2*t, bottom) // dot
	rects[1] = image.Rect(left+t, mid, right-t, mid+t)          // middle
	rects[2] = image.Rect(left, top+t, left+t, mid)             // upper left
	rects[3] = image.Rect(left, mid+t, left+t, bottom-t)        // lower left
	rects[4] = image.Rect(left+t, bottom-t, right-t, bottom)    // bottom
	rects[5] = image.Rect(right-t, mid+t, right, bottom-t)      // lower right
	rects[6] = image.Rect(right-t, top+t, right, mid)           // upper right
	rects[7] = image.Rect(left+t, top, right-t, top+t)          // top
	return rects
}
