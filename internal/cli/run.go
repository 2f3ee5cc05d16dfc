package cli

import (
	"context"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/pkg/beep"
	"github.com/mnafees/chopper/v2/pkg/ebiten"
	"github.com/mnafees/chopper/v2/pkg/sdl"
	"github.com/mnafees/chopper/v2/pkg/term"
	"github.com/retroenv/retrogolib/log"
)

const windowTitle = "Chopper | CHIP-8 Emulator"

// Emulate loads the program and runs it on the selected frontend until the
// window is closed, ctx is cancelled or the VM faults.
func Emulate(ctx context.Context, logger *log.Logger, rt config.Runtime) error {
	var devices internal.Devices
	if !rt.Mute {
		beeper, err := beep.New()
		if err != nil {
			logger.Warn("Audio unavailable, continuing without buzzer", log.Err(err))
		} else {
			defer func() { _ = beeper.Close() }()
			devices.Audio = beeper
		}
	}

	switch rt.Frontend {
	case config.FrontendEbiten:
		frontend := ebiten.New(windowTitle, rt.Scale)
		devices.Display, devices.Input = frontend, frontend
		ctrl, err := newController(logger, rt, devices)
		if err != nil {
			return err
		}
		return frontend.Run(ctx, ctrl)

	case config.FrontendTerm:
		frontend := term.New(os.Stdin, os.Stdout)
		devices.Display, devices.Input = frontend, frontend
		ctrl, err := newController(logger, rt, devices)
		if err != nil {
			return err
		}
		if err := frontend.Start(); err != nil {
			return err
		}
		defer func() { _ = frontend.Close() }()
		return ctrl.Run(ctx)

	default:
		io := sdl.NewIO(rt.Scale)
		devices.Display, devices.Input = io, io
		ctrl, err := newController(logger, rt, devices)
		if err != nil {
			return err
		}
		if err := io.SetupWindow(windowTitle); err != nil {
			return err
		}
		defer io.Destroy()
		return ctrl.Run(ctx)
	}
}

func newController(logger *log.Logger, rt config.Runtime, devices internal.Devices) (*internal.Controller, error) {
	vm := internal.NewC8VM(rt.Mode, devices)
	if err := vm.LoadProgramFile(rt.Program); err != nil {
		return nil, err
	}
	logger.Debug("Program loaded",
		log.String("file", rt.Program),
		log.String("mode", rt.Mode.String()))

	return internal.NewController(vm, logger,
		internal.WithInstructionsPerFrame(rt.IPF),
		internal.WithPacing(rt.Pacing),
		internal.WithTrace(rt.Trace)), nil
}
