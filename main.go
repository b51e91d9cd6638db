package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/agentx-labs/create-discord-bot/internal/cli"
	"github.com/agentx-labs/create-discord-bot/internal/scaffold"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		// A declined update has already printed its quitting message.
		if !errors.Is(err, scaffold.ErrAborted) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
