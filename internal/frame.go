package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Timing defaults
const (
	FrameDuration        = time.Second / 60
	InstructionsPerFrame = 12
)

// Pacing selects where the controller sleeps to hold the wall-clock cadence
type Pacing int

// Pacing strategies
const (
	// PacingFrame sleeps the rest of the frame budget after every frame
	PacingFrame Pacing = iota
	// PacingCycle sleeps the rest of the per instruction budget after every instruction
	PacingCycle
)

func (p Pacing) String() string {
	if p == PacingCycle {
		return "cycle"
	}
	return "frame"
}

// ParsePacing converts a pacing name
func ParsePacing(s string) (Pacing, error) {
	switch s {
	case "frame":
		return PacingFrame, nil
	case "cycle":
		return PacingCycle, nil
	default:
		return 0, fmt.Errorf("unsupported pacing %q (valid: frame, cycle)", s)
	}
}

// Clock abstracts wall-clock access for the pacing sleeps
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Controller drives the VM: a fixed number of instructions per frame followed by one timer tick.
type Controller struct {
	vm     *C8VM
	logger *log.Logger
	clock  Clock

	ipf    int
	pacing Pacing
	trace  bool
	frames uint64
}

// ControllerOption configures a Controller
type ControllerOption func(*Controller)

// WithInstructionsPerFrame sets how many instructions run between timer ticks
func WithInstructionsPerFrame(ipf int) ControllerOption {
	return func(c *Controller) {
		if ipf > 0 {
			c.ipf = ipf
		}
	}
}

// WithPacing selects the pacing strategy used by Run
func WithPacing(p Pacing) ControllerOption {
	return func(c *Controller) {
		c.pacing = p
	}
}

// WithClock replaces the wall clock
func WithClock(clock Clock) ControllerOption {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithTrace logs every executed instruction at debug level
func WithTrace(trace bool) ControllerOption {
	return func(c *Controller) {
		c.trace = trace
	}
}

// NewController returns a controller that owns vm
func NewController(vm *C8VM, logger *log.Logger, opts ...ControllerOption) *Controller {
	c := &Controller{
		vm:     vm,
		logger: logger,
		clock:  systemClock{},
		ipf:    InstructionsPerFrame,
		pacing: PacingFrame,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VM returns the controlled VM
func (c *Controller) VM() *C8VM {
	return c.vm
}

// Frames returns the number of completed frames
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Frame runs one frame without sleeping, for hosts that pace the loop themselves.
// Execution faults are logged before they are returned.
func (c *Controller) Frame() error {
	err := c.frame(nil)
	if err != nil {
		c.logFault(err)
	}
	return err
}

// Run executes frames at 60 Hz until ctx is cancelled or the VM faults.
// A Presenter returning ErrStopped ends the loop with a nil error.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("Starting emulation",
		log.String("mode", c.vm.Mode().String()),
		log.Int("instructions_per_frame", c.ipf),
		log.String("pacing", c.pacing.String()))

	var paceCycle func(start time.Time)
	if c.pacing == PacingCycle {
		budget := FrameDuration / time.Duration(c.ipf)
		paceCycle = func(start time.Time) {
			c.sleepRemainder(start, budget)
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := c.clock.Now()
		if err := c.frame(paceCycle); err != nil {
			if errors.Is(err, ErrStopped) {
				c.logger.Info("Emulation stopped", log.Int("frames", int(c.frames)))
				return nil
			}
			c.logFault(err)
			return err
		}

		if c.pacing == PacingFrame {
			c.sleepRemainder(start, FrameDuration)
		}
	}
}

func (c *Controller) frame(paceCycle func(start time.Time)) error {
	for i := 0; i < c.ipf; i++ {
		var start time.Time
		if paceCycle != nil {
			start = c.clock.Now()
		}
		if c.trace {
			c.traceInstruction()
		}
		if err := c.vm.Step(); err != nil {
			return err
		}
		if paceCycle != nil {
			paceCycle(start)
		}
	}

	c.vm.UpdateTimers()
	c.frames++

	if p, ok := c.vm.io.Display.(Presenter); ok {
		return p.Present()
	}
	return nil
}

// logFault logs execution faults, other errors are left to the caller
func (c *Controller) logFault(err error) {
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		return
	}
	if !execErr.Fetched {
		c.logger.Error("Instruction fetch failed",
			log.Hex("pc", execErr.PC),
			log.Err(execErr.Err))
		return
	}
	c.logger.Error("Execution failed",
		log.Hex("pc", execErr.PC),
		log.Hex("opcode", execErr.Opcode),
		log.String("mnemonic", Mnemonic(execErr.Opcode)),
		log.Err(execErr.Err))
}

func (c *Controller) traceInstruction() {
	pc := c.vm.PC()
	word, err := c.vm.fetchWord(pc)
	if err != nil {
		return
	}
	c.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Hex("opcode", word),
		log.String("mnemonic", Mnemonic(word)))
}

func (c *Controller) sleepRemainder(start time.Time, budget time.Duration) {
	elapsed := c.clock.Now().Sub(start)
	if elapsed < budget {
		c.clock.Sleep(budget - elapsed)
	}
}
