package hexbin

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Mode selects what happens on a switch change. It is read from the switches
// once at startup and doesn't change afterwards.
type Mode uint8

const (
	// ModeFeedback shows the value and beeps on every change.
	ModeFeedback Mode = 1

	// ModeGame is reserved for a guessing game. Switch changes are recorded
	// but nothing is shown.
	ModeGame Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeFeedback:
		return "feedback"
	case ModeGame:
		return "game"
	default:
		return "display"
	}
}

// Game is the complete device state. All fields are owned by the main loop;
// the only thing touched from interrupt context is the pending flag, through
// Interrupt.
type Game struct {
	config  Config
	display *ShiftRegister
	sw      Switches
	trigger Trigger
	speaker Beeper
	clock   Sleeper

	mode    Mode
	value   uint8
	edges   uint8
	pending atomic.Bool
}

// New returns a game for the given hardware. Call Start (or Run) before
// anything else.
func New(hw Hardware, config Config) *Game {
	return &Game{
		config:  config,
		display: hw.Display,
		sw:      hw.Switches,
		trigger: hw.Trigger,
		speaker: hw.Speaker,
		clock:   hw.Clock,
	}
}

// Mode returns the mode selected at startup.
func (g *Game) Mode() Mode {
	return g.mode
}

// Value returns the switch value at the last sample.
func (g *Game) Value() uint8 {
	return g.value
}

// Edges returns the edge-sense mask as last configured on the switch pins.
func (g *Game) Edges() uint8 {
	return g.edges
}

// Start runs the startup animation and then reads the switches to select the
// mode. In ModeGame it beeps once to acknowledge.
func (g *Game) Start() {
	g.arm(g.sw.Read())

	g.display.Clear()
	g.clock.Sleep(g.config.StepDelay)
	for round := 0; round < g.config.ChaseRounds; round++ {
		for _, step := range Chase {
			g.display.ShiftOut(step)
			g.clock.Sleep(g.config.StepDelay)
		}
	}
	g.display.Clear()
	g.clock.Sleep(g.config.StepDelay)

	g.value = g.sw.Read()
	g.mode = Mode(g.value)
	g.display.Show(g.value)
	g.arm(g.value)
	g.info("start", slog.String("mode", g.mode.String()), slog.Uint64("value", uint64(g.value)))

	if g.mode == ModeGame {
		g.speaker.Beep(g.config.LongBeep)
	}
}

// Interrupt marks a switch change as pending. It is safe to call from an
// interrupt handler or from another goroutine.
func (g *Game) Interrupt() {
	g.pending.Store(true)
}

// Poll handles a pending switch change, if any. It returns whether a change
// was handled.
func (g *Game) Poll() bool {
	if !g.pending.Swap(false) {
		return false
	}
	g.HandleChange()
	return true
}

// HandleChange samples the switches after the debounce delay, acts on the new
// value according to the mode, and reconfigures the switch interrupts so that
// the next transition of any switch in either direction is caught.
func (g *Game) HandleChange() {
	value := g.debounce()
	previous := g.value
	g.value = value
	g.debug("change", slog.Uint64("from", uint64(previous)), slog.Uint64("to", uint64(value)))

	switch g.mode {
	case ModeFeedback:
		g.display.Show(value)
		g.speaker.Beep(g.config.ShortBeep)
	case ModeGame:
		// Not implemented: this is where the guess would be checked.
	default:
		g.display.Show(value)
	}

	g.arm(value)

	// A switch that changed after the last sample but before the interrupts
	// were re-armed has no edge left to trigger on.
	if g.sw.Read() != value {
		g.pending.Store(true)
	}
}

// Run starts the game and handles switch changes until the context is
// cancelled.
func (g *Game) Run(ctx context.Context) error {
	g.Start()
	return g.Loop(ctx)
}

// Loop handles switch changes until the context is cancelled. Start must have
// been called before.
func (g *Game) Loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !g.Poll() {
			g.clock.Sleep(g.config.Idle)
		}
	}
}

// debounce waits for the switches to settle and returns their value. The
// first sample is taken after a fixed delay, after which the value must be
// read DebounceSamples more times in a row before it's accepted.
func (g *Game) debounce() uint8 {
	g.clock.Sleep(g.config.Debounce)
	value := g.sw.Read()
	stable := 0
	for samples := 1; stable < g.config.DebounceSamples && samples < g.config.DebounceLimit; samples++ {
		g.clock.Sleep(g.config.Debounce)
		next := g.sw.Read()
		if next == value {
			stable++
		} else {
			value = next
			stable = 0
		}
	}
	return value
}

// arm configures every switch interrupt for the transition away from its
// current level and clears any flag raised in the meantime, both in hardware
// and the copy set by Interrupt.
func (g *Game) arm(levels uint8) {
	g.edges = levels
	g.trigger.SetEdges(levels)
	g.trigger.ClearPending()
	g.pending.Store(false)
}

func (g *Game) info(msg string, attrs ...slog.Attr) {
	g.logattrs(slog.LevelInfo, msg, attrs...)
}

func (g *Game) debug(msg string, attrs ...slog.Attr) {
	g.logattrs(slog.LevelDebug, msg, attrs...)
}

func (g *Game) logattrs(level slog.Level, msg string, attrs ...slog.Attr) {
	if g.config.Logger == nil {
		return
	}
	g.config.Logger.LogAttrs(context.Background(), level, msg, attrs...)
}

var _ Sleeper = SleepFunc(time.Sleep)
