// Package config handles runtime options and logger setup
package config

import (
	"errors"
	"fmt"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/log"
)

// Frontends that can host the VM
const (
	FrontendSDL    = "sdl"
	FrontendEbiten = "ebiten"
	FrontendTerm   = "term"
)

// Options of a single emulator run
type Options struct {
	Program  string // path of the program image
	Mode     string // chip8, schip or xochip
	Frontend string
	IPF      int    // instructions per frame
	Pacing   string // frame or cycle
	Scale    int    // window pixels per CHIP-8 pixel

	Mute  bool
	Debug bool
	Quiet bool
	Trace bool
}

// Default returns the options used when no flags are given
func Default() Options {
	return Options{
		Mode:     internal.ModeChip8.String(),
		Frontend: FrontendSDL,
		IPF:      internal.InstructionsPerFrame,
		Pacing:   internal.PacingFrame.String(),
		Scale:    20,
	}
}

// Runtime is the validated form of Options with the mode and pacing parsed
type Runtime struct {
	Program  string
	Mode     internal.Mode
	Frontend string
	IPF      int
	Pacing   internal.Pacing
	Scale    int

	Mute  bool
	Debug bool
	Quiet bool
	Trace bool
}

// Validate checks the options and converts the mode and pacing selectors
func (o Options) Validate() (Runtime, error) {
	mode, err := internal.ParseMode(o.Mode)
	if err != nil {
		return Runtime{}, err
	}
	pacing, err := internal.ParsePacing(o.Pacing)
	if err != nil {
		return Runtime{}, err
	}

	switch o.Frontend {
	case FrontendSDL, FrontendEbiten, FrontendTerm:
	default:
		return Runtime{}, fmt.Errorf("unsupported frontend %q (valid: sdl, ebiten, term)", o.Frontend)
	}
	if o.Frontend == FrontendEbiten && pacing == internal.PacingCycle {
		return Runtime{}, errors.New("the ebiten frontend paces whole frames, cycle pacing is not supported")
	}
	if o.IPF <= 0 {
		return Runtime{}, errors.New("instructions per frame must be positive")
	}
	if o.Scale <= 0 {
		return Runtime{}, errors.New("scale must be positive")
	}
	if o.Program == "" {
		return Runtime{}, errors.New("no program given")
	}

	return Runtime{
		Program:  o.Program,
		Mode:     mode,
		Frontend: o.Frontend,
		IPF:      o.IPF,
		Pacing:   pacing,
		Scale:    o.Scale,
		Mute:     o.Mute,
		Debug:    o.Debug,
		Quiet:    o.Quiet,
		Trace:    o.Trace,
	}, nil
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
