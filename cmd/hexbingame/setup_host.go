//go:build !baremetal

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/board"
	"github.com/aykevl/hexbin/internal/config"
	"github.com/aykevl/hexbin/internal/trace"
)

// setup loads the simulator configuration and applies it to the board. The
// returned function is to be called with the mode selected at startup.
func setup() (hexbin.Config, func(hexbin.Mode)) {
	configPath := flag.String("config", "", "YAML configuration file")
	tracePath := flag.String("trace", "", "write a trace of the run to this file (overrides the configuration)")
	flag.Parse()

	file, err := config.Load(*configPath)
	if err != nil {
		slog.Error("could not load configuration", "err", err)
		os.Exit(1)
	}
	level, _ := file.Level() // validated by Load
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	color, _ := file.Color()
	board.Simulator.WindowTitle = file.Window.Title
	board.Simulator.WindowWidth = file.Window.Width
	board.Simulator.WindowHeight = file.Window.Height
	board.Simulator.SegmentColor = color
	board.Simulator.Switches = file.Boot()

	if *tracePath != "" {
		file.Trace = *tracePath
	}
	if file.Trace != "" {
		w, err := trace.Create(file.Trace)
		if err != nil {
			logger.Error("could not create trace", "err", err)
			os.Exit(1)
		}
		// The process exits when the window is closed, so the trace is never
		// closed explicitly. Every event is written out immediately.
		board.Simulator.Observer = w
		logger.Info("tracing", "file", file.Trace, "session", w.Session())
	}

	return file.GameConfig(logger), reportMode
}

// reportMode reports the selected mode to the observer, if any.
func reportMode(mode hexbin.Mode) {
	if board.Simulator.Observer != nil {
		board.Simulator.Observer.Mode(uint8(mode))
	}
}
