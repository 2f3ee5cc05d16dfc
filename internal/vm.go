package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
// with the SUPER-CHIP and XO-CHIP differences selected by Mode.

import (
	"math/rand"
)

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	store

	delayTimer uint8    // Delay timer
	soundTimer uint8    // Sound timer
	latch      keyLatch // key FX0A is waiting to see released

	mode   Mode
	quirks Quirks
	io     Devices
	random func() uint8
}

// Option configures a C8VM
type Option func(*C8VM)

// WithRandom replaces the byte source used by CXNN
func WithRandom(fn func() uint8) Option {
	return func(vm *C8VM) {
		vm.random = fn
	}
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM with the font loaded and no program
func NewC8VM(mode Mode, devices Devices, opts ...Option) *C8VM {
	vm := &C8VM{
		mode:   mode,
		quirks: mode.Quirks(),
		io:     devices.withDefaults(),
		random: func() uint8 { return uint8(rand.Intn(256)) },
	}
	vm.reset()
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Step fetches, decodes and executes a single instruction
func (vm *C8VM) Step() error {
	pc := vm.pc
	word, err := vm.fetchWord(pc)
	if err != nil {
		return &ExecError{PC: pc, Err: err}
	}
	vm.pc += 2

	in := Decode(word)
	if err := opcodeHandlers[in.Family](vm, in); err != nil {
		return &ExecError{PC: pc, Opcode: word, Fetched: true, Err: err}
	}
	return nil
}

// UpdateTimers runs the 60 Hz timer tick, the buzzer sounds while the sound timer is non-zero.
func (vm *C8VM) UpdateTimers() {
	if vm.soundTimer > 0 {
		vm.io.Audio.StartBeep()
		vm.soundTimer--
	} else {
		vm.io.Audio.StopBeep()
	}
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
}

// Mode returns the compatibility mode
func (vm *C8VM) Mode() Mode {
	return vm.mode
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// I returns the index register
func (vm *C8VM) I() uint16 {
	return vm.regI
}

// V returns register Vx
func (vm *C8VM) V(x uint8) uint8 {
	return vm.regV[x&0x0F]
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// Peek returns the byte stored at addr
func (vm *C8VM) Peek(addr uint16) uint8 {
	return vm.memory[addr&(totalMemory-1)]
}
