//go:build !baremetal

package board

// The simulator window: a single seven-segment digit, four toggle switches and
// an indicator for the piezo buzzer.
//
// The board API doesn't use a mainloop of any kind, which would not be
// necessary anyway on embedded systems. But it is necessary on OSes, so to work
// around this the simulator is actually run in a separate process by starting
// the current process again and communicating over pipes (stdin/stdout in the
// simulator process).

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const runWindowCommand = "run-simulator-window"

func init() {
	if len(os.Args) >= 2 && os.Args[1] == runWindowCommand {
		// This is the simulator process.
		// Run the entire window in an init function, because that's the only
		// way to do this with the API that is exposed by the board package.
		windowMain()
		os.Exit(0)
	}
}

var (
	segmentsLock sync.Mutex
	segments     uint8
	segmentColor = color.RGBA{R: 0xff, G: 0x20, B: 0x10, A: 255}

	switchesLock    sync.Mutex
	switchesSyncing bool

	backgroundColor = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	unlitColor      = color.RGBA{R: 48, G: 40, B: 40, A: 255}
	beepColor       = color.RGBA{R: 255, G: 200, B: 0, A: 255}
)

// The main function for the window process.
func windowMain() {
	display := canvas.NewRaster(func(w, h int) image.Image {
		segmentsLock.Lock()
		defer segmentsLock.Unlock()
		return drawDigit(w, h, segments, segmentColor)
	})
	display.SetMinSize(fyne.NewSize(float32(Simulator.WindowWidth), float32(Simulator.WindowHeight)))

	beep := canvas.NewRectangle(backgroundColor)
	beep.SetMinSize(fyne.NewSize(16, 16))

	// Switch 3 (most significant) on the left, like the bits of a number.
	var checks [4]*widget.Check
	row := container.NewHBox(beep)
	for i := 3; i >= 0; i-- {
		index := i
		checks[i] = widget.NewCheck(fmt.Sprintf("SW%d", i), func(on bool) {
			switchesLock.Lock()
			syncing := switchesSyncing
			switchesLock.Unlock()
			if syncing {
				return
			}
			level := 0
			if on {
				level = 1
			}
			fmt.Printf("switch %d %d\n", index, level)
		})
		row.Add(checks[i])
	}

	// Create a window.
	a := app.New()
	w := a.NewWindow("Simulator")
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.SetContent(container.NewVBox(display, row))

	// Keys 1 to 4 toggle switch 0 to 3.
	w.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		index := -1
		switch event.Name {
		case fyne.Key1:
			index = 0
		case fyne.Key2:
			index = 1
		case fyne.Key3:
			index = 2
		case fyne.Key4:
			index = 3
		}
		if index >= 0 {
			checks[index].SetChecked(!checks[index].Checked)
		}
	})

	// Listen for events from the parent process.
	go windowReceiveEvents(w, display, beep, checks)

	// Show the window.
	w.ShowAndRun()
}

// Goroutine that listens for commands from the parent process.
func windowReceiveEvents(w fyne.Window, display *canvas.Raster, beep *canvas.Rectangle, checks [4]*widget.Check) {
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// The parent exited.
			os.Exit(0)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "title":
			w.SetTitle(strings.TrimSpace(line[len("title"):]))
		case "size":
			var width, height int
			fmt.Sscanf(line, "%s %d %d\n", &cmd, &width, &height)
			display.SetMinSize(fyne.NewSize(float32(width), float32(height)))
			w.Content().Refresh()
		case "color":
			var red, green, blue uint8
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &red, &green, &blue)
			segmentsLock.Lock()
			segmentColor = color.RGBA{R: red, G: green, B: blue, A: 255}
			segmentsLock.Unlock()
			display.Refresh()
		case "segments":
			var value uint8
			fmt.Sscanf(line, "%s %d\n", &cmd, &value)
			segmentsLock.Lock()
			segments = value
			segmentsLock.Unlock()
			display.Refresh()
		case "beep":
			var ms int
			fmt.Sscanf(line, "%s %d\n", &cmd, &ms)
			beep.FillColor = beepColor
			beep.Refresh()
			time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
				beep.FillColor = backgroundColor
				beep.Refresh()
			})
		case "switches":
			var levels uint8
			fmt.Sscanf(line, "%s %d\n", &cmd, &levels)
			switchesLock.Lock()
			switchesSyncing = true
			switchesLock.Unlock()
			for i, check := range checks {
				check.SetChecked(levels&(1<<i) != 0)
			}
			switchesLock.Lock()
			switchesSyncing = false
			switchesLock.Unlock()
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

// drawDigit renders the segment pattern into a new image of the given size.
func drawDigit(w, h int, pattern uint8, lit color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)
	for bit, rect := range segmentRects(w, h) {
		c := unlitColor
		if pattern&(1<<bit) != 0 {
			c = lit
		}
		draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img
}
