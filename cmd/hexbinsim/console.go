package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/sim"
	"github.com/aykevl/hexbin/internal/trace"
)

// Console runs the game on a simulated board and executes console commands
// against it. Time is virtual, so the startup animation and debounce delays
// complete instantly.
type Console struct {
	out    io.Writer
	config hexbin.Config
	tracer *trace.Writer // may be nil

	board *sim.Board
	game  *hexbin.Game
}

// NewConsole returns a console writing its output to out. Call Boot before
// anything else.
func NewConsole(out io.Writer, config hexbin.Config, tracer *trace.Writer) *Console {
	return &Console{
		out:    out,
		config: config,
		tracer: tracer,
	}
}

// Boot powers on a fresh board with the given switch levels.
func (c *Console) Boot(levels uint8) {
	c.board = sim.NewBoard()
	c.board.Switches.SetAll(levels)
	c.game = hexbin.New(c.board.Hardware(), c.config)
	c.board.Switches.OnInterrupt = func(int) {
		c.game.Interrupt()
	}
	if c.tracer != nil {
		c.board.Chip.OnLatch = c.tracer.Latch
		c.board.Speaker.OnBeep = c.tracer.Beep
	}
	c.game.Start()
	if c.tracer != nil {
		c.tracer.Mode(uint8(c.game.Mode()))
	}
	fmt.Fprintf(c.out, "booted in %s mode (%X)\n", c.game.Mode(), uint8(c.game.Mode()))
	c.show()
}

// Execute runs a single command line. It returns false when the console
// should exit.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "toggle", "t":
		c.cmdToggle(args)
	case "set", "s":
		c.cmdSet(args)
	case "boot", "b":
		c.cmdBoot(args)
	case "show":
		c.show()
	case "status", "st":
		c.cmdStatus()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
hexbin simulator commands:
  toggle <n>      - Toggle switch n (0 is the least significant bit)
  set <bbbb>      - Set all switches, most significant first (e.g. 0101)
  boot [bbbb]     - Power cycle with the given switches (default: current)
  show            - Show the display
  status          - Show mode, value and beeps
  quit            - Exit`)
}

func (c *Console) cmdToggle(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: toggle <n>")
		return
	}
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 0 || index > 3 {
		fmt.Fprintf(c.out, "Invalid switch: %s (must be 0-3)\n", args[0])
		return
	}
	c.setSwitch(index, !c.board.Switches.Level(index))
	c.settle()
}

func (c *Console) cmdSet(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: set <bbbb>")
		return
	}
	levels, err := parseLevels(args[0])
	if err != nil {
		fmt.Fprintln(c.out, err)
		return
	}
	for i := 0; i < 4; i++ {
		c.setSwitch(i, levels&(1<<i) != 0)
	}
	c.settle()
}

func (c *Console) cmdBoot(args []string) {
	levels := c.board.Switches.Levels()
	if len(args) == 1 {
		var err error
		levels, err = parseLevels(args[0])
		if err != nil {
			fmt.Fprintln(c.out, err)
			return
		}
	}
	c.Boot(levels)
}

func (c *Console) cmdStatus() {
	fmt.Fprintf(c.out, "mode:     %s (%X)\n", c.game.Mode(), uint8(c.game.Mode()))
	fmt.Fprintf(c.out, "switches: %04b\n", c.board.Switches.Levels())
	fmt.Fprintf(c.out, "value:    %04b (%X)\n", c.game.Value(), c.game.Value())
	fmt.Fprintf(c.out, "edges:    %s\n", describeEdges(c.game.Edges()))
	fmt.Fprintf(c.out, "beeps:    %d\n", len(c.board.Speaker.Beeps()))
	fmt.Fprintf(c.out, "uptime:   %v\n", c.board.Clock.Elapsed())
}

func (c *Console) setSwitch(index int, level bool) {
	if c.board.Switches.Level(index) == level {
		return
	}
	if c.tracer != nil {
		c.tracer.Switch(index, level)
	}
	c.board.Switches.Set(index, level)
}

// settle lets the main loop handle the pending change and shows the result.
func (c *Console) settle() {
	before := len(c.board.Speaker.Beeps())
	if !c.game.Poll() {
		fmt.Fprintln(c.out, "(no interrupt)")
		return
	}
	c.show()
	for _, d := range c.board.Speaker.Beeps()[before:] {
		fmt.Fprintf(c.out, "beep %v\n", d)
	}
}

func (c *Console) show() {
	pattern := c.board.Chip.Byte()
	fmt.Fprint(c.out, render(pattern))
	if value, ok := hexbin.Decode(pattern); ok {
		fmt.Fprintf(c.out, "= %X\n", value)
	}
}

// parseLevels parses a binary string like "0101", most significant switch
// first.
func parseLevels(s string) (uint8, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("Invalid switches: %s (must be 4 binary digits)", s)
	}
	v, err := strconv.ParseUint(s, 2, 8)
	if err != nil {
		return 0, fmt.Errorf("Invalid switches: %s (must be 4 binary digits)", s)
	}
	return uint8(v), nil
}

func describeEdges(sense uint8) string {
	parts := make([]string, 4)
	for i := 0; i < 4; i++ {
		parts[3-i] = fmt.Sprintf("SW%d:%s", i, hexbin.EdgeOf(sense, i))
	}
	return strings.Join(parts, " ")
}

// render draws a segment pattern as three lines of text.
func render(pattern uint8) string {
	seg := func(bit uint8, on string) string {
		if pattern&bit != 0 {
			return on
		}
		return " "
	}
	var b strings.Builder
	b.WriteString(" " + seg(hexbin.SegTop, "_") + " \n")
	b.WriteString(seg(hexbin.SegUL, "|") + seg(hexbin.SegMid, "_") + seg(hexbin.SegUR, "|") + "\n")
	b.WriteString(seg(hexbin.SegLL, "|") + seg(hexbin.SegBottom, "_") + seg(hexbin.SegLR, "|") + seg(hexbin.SegDot, ".") + "\n")
	return b.String()
}
