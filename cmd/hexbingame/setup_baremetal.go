//go:build baremetal

package main

import (
	"time"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/board"
)

func setup() (hexbin.Config, func(hexbin.Mode)) {
	// Give a serial console some time to connect, so the startup isn't missed.
	time.Sleep(time.Second)
	println("hexbin on", board.Name)
	return hexbin.DefaultConfig(), func(mode hexbin.Mode) {
		println("mode:", mode.String())
	}
}
