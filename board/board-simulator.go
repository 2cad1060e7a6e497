//go:build !baremetal

package board

// The simulator board exists for testing locally without running on real
// hardware. This avoids potentially long edit-flash-test cycles.

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/sim"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	// This is the special name "simulator" for the simulator.
	Name = "simulator"
)

// List of all devices.
var (
	Display  = mainDisplay{}
	Switches = &simulatedSwitches{}
	Speaker  = simulatedSpeaker{}
)

// The simulated hardware, shared by all devices.
var (
	chip = sim.NewChip()
	bank = &sim.Bank{}
)

type mainDisplay struct{}

// Configure returns the shift register driving the simulated display. The
// window shows the segments every time a full byte has been shifted in.
func (d mainDisplay) Configure() *hexbin.ShiftRegister {
	startWindow()
	chip.OnLatch = func(value uint8) {
		windowSendCommand(fmt.Sprintf("segments %d", value))
		if Simulator.Observer != nil {
			Simulator.Observer.Latch(value)
		}
	}
	return &hexbin.ShiftRegister{
		Data:  &chip.Data,
		Clock: &chip.Clock,
	}
}

type simulatedSwitches struct {
	armed   atomic.Bool
	handler func()
}

// Configure sets the switches to their power-on levels and returns them.
// Toggling a check box (or pressing 1-4) in the window changes a switch.
func (s *simulatedSwitches) Configure(handler func()) hexbin.Switches {
	s.handler = handler
	bank.SetAll(Simulator.Switches)
	bank.OnInterrupt = func(int) {
		if s.armed.Load() {
			s.handler()
		}
	}
	startWindow()
	windowSendCommand(fmt.Sprintf("switches %d", bank.Levels()))
	return hexbin.Switches{bank.Pin(0), bank.Pin(1), bank.Pin(2), bank.Pin(3)}
}

func (s *simulatedSwitches) SetEdges(sense uint8) {
	bank.SetEdges(sense)
	s.armed.Store(true)
}

func (s *simulatedSwitches) ClearPending() {
	bank.ClearPending()
}

type simulatedSpeaker struct{}

func (s simulatedSpeaker) Configure() {
	startWindow()
}

// Beep flashes the beep indicator in the window for the given duration.
func (s simulatedSpeaker) Beep(d time.Duration) {
	if Simulator.Observer != nil {
		Simulator.Observer.Beep(d)
	}
	windowSendCommand(fmt.Sprintf("beep %d", d.Milliseconds()))
	time.Sleep(d)
}

var (
	windowStart  sync.Once
	windowLock   sync.Mutex
	windowStdin  io.WriteCloser
	windowStdout io.ReadCloser
)

// Ensure the window is running in a separate process, starting it if necessary.
func startWindow() {
	windowRunning := make(chan struct{})
	windowStart.Do(func() {
		// Start the separate process that manages the window.
		go func() {
			cmd := exec.Command(os.Args[0], runWindowCommand)
			cmd.Stderr = os.Stderr
			windowStdin, _ = cmd.StdinPipe()
			windowStdout, _ = cmd.StdoutPipe()
			err := cmd.Start()
			if err != nil {
				fmt.Fprintln(os.Stdout, "could not start window process:", err)
				os.Exit(1)
			}
			close(windowRunning)
			err = cmd.Wait()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				os.Exit(1)
			}
			// The window was closed, so exit.
			os.Exit(0)
		}()
		<-windowRunning

		// Listen for switch events.
		go windowListenEvents()

		// Do some initialization.
		c := Simulator.SegmentColor
		windowSendCommand("title "+Simulator.WindowTitle)
		windowSendCommand(fmt.Sprintf("size %d %d", Simulator.WindowWidth, Simulator.WindowHeight))
		windowSendCommand(fmt.Sprintf("color %d %d %d", c.R, c.G, c.B))
	})
}

// Send a command to the separate process that manages the window.
// The command is a single line (without newline).
func windowSendCommand(command string) {
	windowLock.Lock()
	defer windowLock.Unlock()

	windowStdin.Write([]byte(command + "\n"))
}

// Goroutine that listens for switch events from the window. It plays the role
// of the GPIO hardware: the bank raises the interrupt if the edge matches.
func windowListenEvents() {
	r := bufio.NewReader(windowStdout)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			fmt.Fprintln(os.Stderr, "failed to read events from child process:", err)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "switch":
			var cmd string
			var index, level int
			fmt.Sscanf(line, "%s %d %d", &cmd, &index, &level)
			if index < 0 || index > 3 {
				fmt.Fprintln(os.Stderr, "switch out of range:", index)
				continue
			}
			if bank.Level(index) == (level != 0) {
				continue
			}
			if Simulator.Observer != nil {
				Simulator.Observer.Switch(index, level != 0)
			}
			bank.Set(index, level != 0)
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", fields[0])
		}
	}
}
