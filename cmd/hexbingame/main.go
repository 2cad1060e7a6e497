// Command hexbingame is the hexbin firmware. Build it with TinyGo for a real
// board (tinygo flash -target=pico ./cmd/hexbingame) or with the regular Go
// toolchain to run it in the simulator window.
package main

import (
	"context"

	"github.com/aykevl/hexbin"
	"github.com/aykevl/hexbin/board"
)

func main() {
	config, started := setup()

	var game *hexbin.Game
	hw := board.Hardware(func() {
		game.Interrupt()
	})
	game = hexbin.New(hw, config)
	game.Start()
	started(game.Mode())
	game.Loop(context.Background())
}
