// Package main implements the main entry point for the Chopper CHIP-8 interpreter
package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"context"
	"errors"
	"os"

	"github.com/mnafees/chopper/v2/internal/cli"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	cmd := cli.NewRootCommand(buildinfo.Version(version, commit, date), cli.Emulate)
	if err := cmd.ExecuteContext(ctx); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			return
		}
		if !cli.AlreadyLogged(err) {
			logger := config.CreateLogger(false, false)
			logger.Error("Emulation failed", log.Err(err))
		}
		os.Exit(1)
	}
}
