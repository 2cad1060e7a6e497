//go:build gopher_badge

package board

// The Gopher Badge has no seven-segment display, so the digit is drawn on its
// screen instead. The firmware still shifts the segment pattern out bit by bit,
// into an in-memory shift register that redraws the screen once a full byte
// has been clocked in.

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/st7789"
	"tinygo.org/x/drivers/tone"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/sim"
)

const (
	Name = "gopher-badge"
)

var (
	Display  = mainDisplay{}
	Switches = &gpioSwitches{}
	Speaker  = &piezo{}
)

var (
	backgroundColor = color.RGBA{A: 255}
	unlitColor      = color.RGBA{R: 0x30, G: 0x08, B: 0x04, A: 255}
	litColor        = color.RGBA{R: 0xff, G: 0x20, B: 0x10, A: 255}
)

// The buttons are active low. Switch 0 (least significant) first, so that
// reading the buttons from left to right gives the most significant bit first.
var switchPins = [4]machine.Pin{machine.BUTTON_A, machine.BUTTON_B, machine.BUTTON_RIGHT, machine.BUTTON_LEFT}

type mainDisplay struct{}

func (d mainDisplay) Configure() *hexbin.ShiftRegister {
	machine.SPI0.Configure(machine.SPIConfig{
		Mode:      3,
		SCK:       machine.SPI0_SCK_PIN,
		SDO:       machine.SPI0_SDO_PIN,
		SDI:       machine.SPI0_SDI_PIN,
		Frequency: 62_500_000, // datasheet for st7789 says 16ns (62.5MHz) is the max clock speed
	})
	display := st7789.New(machine.SPI0,
		machine.TFT_RST,       // TFT_RESET
		machine.TFT_WRX,       // TFT_DC
		machine.TFT_CS,        // TFT_CS
		machine.TFT_BACKLIGHT) // TFT_LITE
	display.Configure(st7789.Config{
		Rotation: drivers.Rotation90,
		Height:   320,
	})
	display.FillScreen(backgroundColor)

	// Center a digit with the usual 2:3 aspect ratio on the screen.
	width, height := display.Size()
	digitWidth := int(height) * 2 / 3
	offset := (int(width) - digitWidth) / 2
	rects := segmentRects(digitWidth, int(height))

	chip := sim.NewChip()
	chip.OnLatch = func(pattern uint8) {
		for bit, r := range rects {
			c := unlitColor
			if pattern&(1<<bit) != 0 {
				c = litColor
			}
			display.FillRectangle(int16(offset+r.Min.X), int16(r.Min.Y), int16(r.Dx()), int16(r.Dy()), c)
		}
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
		// Inverted: pressing a button is a falling edge on the pin but a
		// rising edge of the switch.
		change := machine.PinFalling
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
	machine.SPEAKER_ENABLE.Configure(machine.PinConfig{Mode: machine.PinOutput})
	machine.SPEAKER_ENABLE.High()
	speaker, err := tone.New(machine.PWM6, machine.SPEAKER) // GP12 is PWM6 channel A
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
