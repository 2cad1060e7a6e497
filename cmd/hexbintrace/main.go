// Command hexbintrace prints a trace file written by the hexbin simulators.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/exp/slices"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/internal/trace"
)

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.SetDefault(slog.New(handler))
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "hexbintrace - Print hexbin simulator trace files.\n\tUsage: hexbintrace [flags] <file>\n")
		flag.PrintDefaults()
	}
	flagKind := flag.String("kind", "", "Only print events of this kind: LATCH, SWITCH, BEEP or MODE.")
	flagSession := flag.String("session", "", "Only print events of this session.")
	flagQuiet := flag.Bool("q", false, "Only print the summary.")
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var filter trace.Filter
	if *flagKind != "" {
		kind, ok := trace.ParseKind(*flagKind)
		if !ok {
			slog.Error("unknown event kind", "kind", *flagKind)
			os.Exit(2)
		}
		filter.Kind = &kind
	}
	filter.Session = *flagSession

	r, err := trace.Open(flag.Arg(0), filter)
	if err != nil {
		slog.Error("could not open trace", "err", err)
		os.Exit(1)
	}
	defer r.Close()

	events := os.Stdout
	if *flagQuiet {
		events = nil
	}
	sum, err := dump(events, r)
	if err != nil {
		slog.Error("could not read trace", "err", err)
	}
	sum.print(os.Stdout)
	if err != nil {
		os.Exit(1)
	}
}

// summary collects statistics over a trace.
type summary struct {
	sessions []string // in order of appearance
	counts   map[trace.Kind]int
	beeping  time.Duration
	last     map[string]uint8 // last latched byte per session
}

// dump writes every event from r to w (if not nil) and returns a summary.
// A trace that was cut off while writing an event still produces a summary.
func dump(w io.Writer, r *trace.Reader) (summary, error) {
	sum := summary{
		counts: make(map[trace.Kind]int),
		last:   make(map[string]uint8),
	}
	for {
		event, err := r.Next()
		if err == io.EOF {
			return sum, nil
		}
		if err != nil {
			return sum, err
		}
		sum.add(event)
		if w != nil {
			fmt.Fprintln(w, formatEvent(event))
		}
	}
}

func (s *summary) add(event trace.Event) {
	if !slices.Contains(s.sessions, event.Session) {
		s.sessions = append(s.sessions, event.Session)
	}
	s.counts[event.Kind]++
	switch event.Kind {
	case trace.KindBeep:
		s.beeping += event.Duration
	case trace.KindLatch:
		s.last[event.Session] = event.Value
	}
}

func (s *summary) print(w io.Writer) {
	fmt.Fprintf(w, "%d session(s)\n", len(s.sessions))
	kinds := make([]trace.Kind, 0, len(s.counts))
	for kind := range s.counts {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "  %-7s %d\n", kind, s.counts[kind])
	}
	if s.counts[trace.KindBeep] != 0 {
		fmt.Fprintf(w, "beeping for %v\n", s.beeping)
	}
	for _, session := range s.sessions {
		pattern, ok := s.last[session]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "session %s ended showing %s\n", session, formatPattern(pattern))
	}
}

func formatEvent(event trace.Event) string {
	prefix := fmt.Sprintf("%s %.8s %-7s", event.Timestamp.UTC().Format("15:04:05.000"), event.Session, event.Kind)
	switch event.Kind {
	case trace.KindLatch:
		return prefix + " " + formatPattern(event.Value)
	case trace.KindSwitch:
		level := "low"
		if event.Level {
			level = "high"
		}
		return fmt.Sprintf("%s SW%d %s", prefix, event.Switch, level)
	case trace.KindBeep:
		return fmt.Sprintf("%s %v", prefix, event.Duration)
	case trace.KindMode:
		return fmt.Sprintf("%s %s (%X)", prefix, hexbin.Mode(event.Value), event.Value)
	default:
		return prefix
	}
}

// formatPattern shows a segment pattern and the digit it represents, if any.
func formatPattern(pattern uint8) string {
	if value, ok := hexbin.Decode(pattern); ok {
		return fmt.Sprintf("0x%02X (%X)", pattern, value)
	}
	return fmt.Sprintf("0x%02X", pattern)
}
