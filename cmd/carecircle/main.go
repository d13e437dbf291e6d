package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

var CLI struct {
	Version kong.VersionFlag

	Serve  ServeCmd  `cmd:"" help:"Run the CareCircle server." default:"1"`
	Puzzle PuzzleCmd `cmd:"" help:"Print the word puzzle for a day."`
	Vapid  VapidCmd  `cmd:"" help:"Generate a VAPID key pair for web push."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("carecircle"),
		kong.Description("Shared care board for seniors and their families"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
