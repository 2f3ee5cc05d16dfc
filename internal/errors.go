package internal

import (
	"errors"
	"fmt"
)

// Errors returned by the VM. Everything except ErrStopped is fatal for the running program.
var (
	ErrLoad              = errors.New("loading program")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrUnsupportedOpcode = errors.New("unsupported opcode")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrInvalidMode       = errors.New("invalid compatibility mode")

	// ErrStopped is returned by a Presenter when the host wants the loop to end
	ErrStopped = errors.New("emulation stopped")
)

// ExecError wraps a fault raised while executing an instruction
type ExecError struct {
	PC      uint16 // address the instruction was fetched from
	Opcode  uint16
	Fetched bool // false when the fault happened reading the instruction, Opcode is unset then
	Err     error
}

func (e *ExecError) Error() string {
	if !e.Fetched {
		return fmt.Sprintf("%v fetching instruction at %03X", e.Err, e.PC)
	}
	return fmt.Sprintf("%v at %03X executing %04X (%s)", e.Err, e.PC, e.Opcode, Mnemonic(e.Opcode))
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
