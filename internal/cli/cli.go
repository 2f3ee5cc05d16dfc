// Package cli handles command line interface logic
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/cobra"
)

// Runner starts the emulator with validated options
type Runner func(ctx context.Context, logger *log.Logger, rt config.Runtime) error

// NewRootCommand returns the chopper command. run is invoked once the flags
// and the program argument passed validation.
func NewRootCommand(version string, run Runner) *cobra.Command {
	opts := config.Default()

	cmd := &cobra.Command{
		Use:     "chopper [flags] <program>",
		Short:   "Chopper is a CHIP-8, SUPER-CHIP and XO-CHIP interpreter",
		Version: version,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Program = args[0]
			rt, err := opts.Validate()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			logger := config.CreateLogger(rt.Debug || rt.Trace, rt.Quiet)
			return run(cmd.Context(), logger, rt)
		},
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Mode, "mode", "m", opts.Mode, "interpreter variant (chip8/schip/xochip)")
	flags.StringVarP(&opts.Frontend, "frontend", "f", opts.Frontend,
		fmt.Sprintf("host frontend (%s/%s/%s)", config.FrontendSDL, config.FrontendEbiten, config.FrontendTerm))
	flags.IntVar(&opts.IPF, "ipf", opts.IPF, "instructions executed per 60 Hz frame")
	flags.StringVar(&opts.Pacing, "pacing", opts.Pacing, "sleep after every frame or after every instruction (frame/cycle)")
	flags.IntVarP(&opts.Scale, "scale", "s", opts.Scale, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the buzzer")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVarP(&opts.Quiet, "quiet", "q", false, "only log errors")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies --debug")

	return cmd
}

// AlreadyLogged reports whether err is an execution fault, those are logged
// with their PC and opcode by the controller that hit them.
func AlreadyLogged(err error) bool {
	var execErr *internal.ExecError
	return errors.As(err, &execErr)
}
