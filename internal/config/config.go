// Package config loads the YAML configuration file shared by the host tools
// (the simulator window and the headless console).
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aykevl/tinygl/pixel"
	"gopkg.in/yaml.v3"

	"github.com/aykevl/hexbin"
)

// ErrInvalid is returned (wrapped) for values that are out of range.
var ErrInvalid = errors.New("invalid configuration")

// File is the contents of a configuration file.
type File struct {
	Game     Game    `yaml:"game"`
	Window   Window  `yaml:"window"`
	Switches [4]bool `yaml:"switches"` // switch levels at power on
	Trace    string  `yaml:"trace"`    // trace file, empty to disable
	LogLevel string  `yaml:"log_level"`
}

// Game mirrors hexbin.Config.
type Game struct {
	ChaseRounds     int           `yaml:"chase_rounds"`
	StepDelay       time.Duration `yaml:"step_delay"`
	Debounce        time.Duration `yaml:"debounce"`
	DebounceSamples int           `yaml:"debounce_samples"`
	DebounceLimit   int           `yaml:"debounce_limit"`
	ShortBeep       time.Duration `yaml:"short_beep"`
	LongBeep        time.Duration `yaml:"long_beep"`
	Idle            time.Duration `yaml:"idle"`
}

// Window configures the simulator window.
type Window struct {
	Title        string `yaml:"title"`
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	SegmentColor string `yaml:"segment_color"` // "#rrggbb"
}

// Default returns the configuration used when there is no file.
func Default() File {
	c := hexbin.DefaultConfig()
	return File{
		Game: Game{
			ChaseRounds:     c.ChaseRounds,
			StepDelay:       c.StepDelay,
			Debounce:        c.Debounce,
			DebounceSamples: c.DebounceSamples,
			DebounceLimit:   c.DebounceLimit,
			ShortBeep:       c.ShortBeep,
			LongBeep:        c.LongBeep,
			Idle:            c.Idle,
		},
		Window: Window{
			Title:        "hexbin",
			Width:        160,
			Height:       240,
			SegmentColor: "#ff2010",
		},
		LogLevel: "info",
	}
}

// Load reads the file at path. An empty path returns the defaults. Keys that
// are not present keep their default value; unknown keys are an error.
func Load(path string) (File, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()
	file, err := Parse(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes a configuration from r on top of the defaults.
func Parse(r io.Reader) (File, error) {
	file := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return File{}, err
	}
	if err := file.Validate(); err != nil {
		return File{}, err
	}
	return file, nil
}

// Validate checks that all values are in range.
func (f *File) Validate() error {
	g := f.Game
	switch {
	case g.ChaseRounds < 0:
		return fmt.Errorf("%w: chase_rounds must not be negative", ErrInvalid)
	case g.DebounceSamples < 0:
		return fmt.Errorf("%w: debounce_samples must not be negative", ErrInvalid)
	case g.DebounceLimit < 1:
		return fmt.Errorf("%w: debounce_limit must be at least 1", ErrInvalid)
	case g.StepDelay < 0 || g.Debounce < 0 || g.ShortBeep < 0 || g.LongBeep < 0 || g.Idle < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	case f.Window.Width <= 0 || f.Window.Height <= 0:
		return fmt.Errorf("%w: window size must be positive", ErrInvalid)
	}
	if _, err := f.Color(); err != nil {
		return err
	}
	if _, err := f.Level(); err != nil {
		return err
	}
	return nil
}

// GameConfig returns the hexbin configuration, logging to logger.
func (f *File) GameConfig(logger *slog.Logger) hexbin.Config {
	return hexbin.Config{
		ChaseRounds:     f.Game.ChaseRounds,
		StepDelay:       f.Game.StepDelay,
		Debounce:        f.Game.Debounce,
		DebounceSamples: f.Game.DebounceSamples,
		DebounceLimit:   f.Game.DebounceLimit,
		ShortBeep:       f.Game.ShortBeep,
		LongBeep:        f.Game.LongBeep,
		Idle:            f.Game.Idle,
		Logger:          logger,
	}
}

// Boot returns the switch levels at power on as a bitmask.
func (f *File) Boot() uint8 {
	levels := uint8(0)
	for i, on := range f.Switches {
		if on {
			levels |= 1 << i
		}
	}
	return levels
}

// Level returns the configured log level.
func (f *File) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(f.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	return level, nil
}

// Color returns the color of a lit segment.
func (f *File) Color() (pixel.RGB888, error) {
	return ParseColor(f.Window.SegmentColor)
}

// ParseColor parses a color in the form "#rrggbb".
func ParseColor(s string) (pixel.RGB888, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return pixel.RGB888{}, fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pixel.RGB888{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	return pixel.RGB888{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
