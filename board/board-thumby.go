//go:build thumby

package board

// Like the Gopher Badge, the Thumby draws the digit on its (tiny, monochrome)
// screen. Only lit segments are visible.

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/drivers/tone"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/sim"
)

const (
	Name = "thumby"
)

var (
	Display  = mainDisplay{}
	Switches = &gpioSwitches{}
	Speaker  = &piezo{}
)

// Switch 0 (least significant) first, all active low.
var switchPins = [4]machine.Pin{
	machine.THUMBY_BTN_A_PIN,
	machine.THUMBY_BTN_B_PIN,
	machine.THUMBY_BTN_RDPAD_PIN,
	machine.THUMBY_BTN_LDPAD_PIN,
}

type mainDisplay struct{}

func (d mainDisplay) Configure() *hexbin.ShiftRegister {
	machine.SPI0.Configure(machine.SPIConfig{})
	display := ssd1306.NewSPI(machine.SPI0, machine.THUMBY_DC_PIN, machine.THUMBY_RESET_PIN, machine.THUMBY_CS_PIN)
	display.Configure(ssd1306.Config{
		Width:     72,
		Height:    40,
		ResetCol:  ssd1306.ResetValue{28, 99},
		ResetPage: ssd1306.ResetValue{0, 5},
	})
	display.ClearDisplay()

	const digitWidth, digitHeight = 26, 40
	const offset = (72 - digitWidth) / 2
	rects := segmentRects(digitWidth, digitHeight)
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	chip := sim.NewChip()
	chip.OnLatch = func(pattern uint8) {
		display.ClearBuffer()
		for bit, r := range rects {
			if pattern&(1<<bit) == 0 {
				continue
			}
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					display.SetPixel(int16(offset+x), int16(y), on)
				}
			}
		}
		display.Display()
	}
	return &hexbin.ShiftRegister{
		Data:  &chip.Data,
		Clock: &chip.Clock,
	}
}

type gpioSwitches struct {
	handler   func()
	interrupt func(machine.Pin)
}

// Configure returns the buttons as switches. A switch is on while its button
// is held down.
func (s *gpioSwitches) Configure(handler func()) hexbin.Switches {
	s.handler = handler
	s.interrupt = func(machine.Pin) {
		s.handler()
	}
	var sw hexbin.Switches
	for i, pin := range switchPins {
		pin.Configure(machine.PinConfig{Mode: machine.PinInput})
		sw[i] = activeLow(pin)
	}
	return sw
}

func (s *gpioSwitches) SetEdges(sense uint8) {
	for i, pin := range switchPins {
		change := machine.PinFalling // button pressed
		if hexbin.EdgeOf(sense, i) == hexbin.Falling {
			change = machine.PinRising
		}
		pin.SetInterrupt(machine.PinToggle, nil) // disable both edges
		err := pin.SetInterrupt(change, s.interrupt)
		if err != nil {
			println("could not configure button interrupt:", err.Error())
		}
	}
}

func (s *gpioSwitches) ClearPending() {
}

type activeLow machine.Pin

func (p activeLow) Get() bool {
	return !machine.Pin(p).Get()
}

type piezo struct {
	speaker    tone.Speaker
	configured bool
}

func (p *piezo) Configure() {
	speaker, err := tone.New(machine.PWM6, machine.THUMBY_AUDIO_PIN) // GP28 is PWM6 channel A
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
