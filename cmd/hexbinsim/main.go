// Command hexbinsim runs the hexbin firmware on a simulated board in the
// terminal. Switches are flipped with commands and the display is drawn as
// text, which makes it usable over ssh and in scripts.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/aykevl/hexbin/internal/config"
	"github.com/aykevl/hexbin/internal/trace"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	tracePath := flag.String("trace", "", "write a trace of the session to this file (overrides the configuration)")
	flag.Parse()

	file, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load configuration:", err)
		os.Exit(1)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hexbin> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	level, _ := file.Level() // validated by Load
	logger := slog.New(slog.NewTextHandler(rl.Stderr(), &slog.HandlerOptions{Level: level}))

	if *tracePath != "" {
		file.Trace = *tracePath
	}
	var tracer *trace.Writer
	if file.Trace != "" {
		tracer, err = trace.Create(file.Trace)
		if err != nil {
			logger.Error("could not create trace", "err", err)
			os.Exit(1)
		}
		defer tracer.Close()
		logger.Info("tracing", "file", file.Trace, "session", tracer.Session())
	}

	console := NewConsole(rl.Stdout(), file.GameConfig(logger), tracer)
	console.Boot(file.Boot())
	fmt.Fprintln(rl.Stdout(), "Type 'help' for commands.")

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(rl.Stdout(), "Exiting...")
			return
		}
		if !console.Execute(strings.TrimSpace(line)) {
			return
		}
	}
}
