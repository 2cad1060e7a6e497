package main

import (
	"time"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/board"
)

func main() {
	// Verify board name constant.
	var _ string = board.Name

	// Assert that board.Display uses the usual interface.
	var _ interface {
		Configure() *hexbin.ShiftRegister
	} = board.Display

	// Assert that board.Switches uses the usual interface, and can be used as
	// the interrupt configuration.
	var _ interface {
		Configure(handler func()) hexbin.Switches
	} = board.Switches
	var _ hexbin.Trigger = board.Switches

	// Assert that board.Speaker uses the usual interface.
	var _ interface {
		Configure()
		Beep(time.Duration)
	} = board.Speaker
	var _ hexbin.Beeper = board.Speaker

	// All of the above together.
	var _ func(func()) hexbin.Hardware = board.Hardware
}
