//go:build pico

package board

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/tone"

	"github.com/aykevl/hexbin"
)

const (
	Name = "pico"
)

var (
	Display  = mainDisplay{}
	Switches = &gpioSwitches{}
	Speaker  = &piezo{}
)

const (
	dataPin  = machine.GP2
	clockPin = machine.GP3
	piezoPin = machine.GP16 // PWM0 channel A
)

// Switch 0 (least significant) first.
var switchPins = [4]machine.Pin{machine.GP6, machine.GP7, machine.GP8, machine.GP9}

type mainDisplay struct{}

func (d mainDisplay) Configure() *hexbin.ShiftRegister {
	dataPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	clockPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	dataPin.Low()
	clockPin.Low()
	return &hexbin.ShiftRegister{
		Data:  dataPin,
		Clock: clockPin,
	}
}

type gpioSwitches struct {
	handler   func()
	interrupt func(machine.Pin)
}

func (s *gpioSwitches) Configure(handler func()) hexbin.Switches {
	s.handler = handler
	s.interrupt = func(machine.Pin) {
		s.handler()
	}
	var sw hexbin.Switches
	for i, pin := range switchPins {
		// The switches connect to 3.3V, so pull the inputs down.
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
		sw[i] = pin
	}
	return sw
}

func (s *gpioSwitches) SetEdges(sense uint8) {
	for i, pin := range switchPins {
		change := machine.PinRising
		if hexbin.EdgeOf(sense, i) == hexbin.Falling {
			change = machine.PinFalling
		}
		// Disable both edges first: SetInterrupt only ever adds to the
		// enabled edges of a pin.
		pin.SetInterrupt(machine.PinToggle, nil)
		err := pin.SetInterrupt(change, s.interrupt)
		if err != nil {
			println("could not configure switch interrupt:", err.Error())
		}
	}
}

func (s *gpioSwitches) ClearPending() {
	// Nothing to do here: the machine package acknowledges edge events
	// before calling the callback.
}

type piezo struct {
	speaker    tone.Speaker
	configured bool
}

func (p *piezo) Configure() {
	speaker, err := tone.New(machine.PWM0, piezoPin)
	if err != nil {
		println("could not configure speaker:", err.Error())
		return
	}
	speaker.Stop()
	p.speaker = speaker
	p.configured = true
}

func (p *piezo) Beep(d time.Duration) {
	if !p.configured {
		noSpeaker{}.Beep(d)
		return
	}
	p.speaker.SetNote(tone.A5)
	time.Sleep(d)
	p.speaker.Stop()
}
