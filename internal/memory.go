package internal

import (
	"fmt"
	"os"
)

// Memory layout
const (
	totalMemory    = 0x1000
	pcStartAddr    = 0x200
	fontStartAddr  = 0x050
	glyphSize      = 5
	stackDepth     = 16
	maxProgramSize = totalMemory - pcStartAddr
	lastFetchAddr  = totalMemory - 2
)

var fontset = [16 * glyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// store is the addressable state of the machine
type store struct {
	memory [totalMemory]uint8 // 4 KB global memory
	regV   [16]uint8          // 16 general purpose 8-bit registers, VF doubles as flag
	regI   uint16             // index register, not range checked on write
	pc     uint16             // address of the next instruction
	sp     uint8              // number of entries on the stack
	stack  [stackDepth]uint16 // return addresses
}

// reset zeroes the store and installs the font
func (s *store) reset() {
	*s = store{pc: pcStartAddr}
	copy(s.memory[fontStartAddr:], fontset[:])
}

// loadProgram resets the store and copies the program image to 0x200
func (s *store) loadProgram(data []byte) error {
	if len(data) > maxProgramSize {
		return fmt.Errorf("%w: program size %d exceeds the maximum of %d bytes", ErrLoad, len(data), maxProgramSize)
	}
	s.reset()
	copy(s.memory[pcStartAddr:], data)
	return nil
}

// fetchWord reads the big-endian word at addr without moving the program counter
func (s *store) fetchWord(addr uint16) (uint16, error) {
	if addr > lastFetchAddr {
		return 0, fmt.Errorf("%w: fetch from %04X", ErrAddressOutOfRange, addr)
	}
	return uint16(s.memory[addr])<<8 | uint16(s.memory[addr+1]), nil
}

func (s *store) pushReturn(addr uint16) error {
	if int(s.sp) >= stackDepth {
		return ErrStackOverflow
	}
	s.stack[s.sp] = addr
	s.sp++
	return nil
}

func (s *store) popReturn() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.stack[s.sp], nil
}

// fontGlyphAddress returns where the glyph of the low nibble of digit starts
func fontGlyphAddress(digit uint8) uint16 {
	return fontStartAddr + uint16(digit&0x0F)*glyphSize
}

// span returns the n bytes of memory starting at addr
func (s *store) span(addr uint16, n int) ([]uint8, error) {
	if int(addr)+n > totalMemory {
		return nil, fmt.Errorf("%w: %d bytes at %04X", ErrAddressOutOfRange, n, addr)
	}
	return s.memory[int(addr) : int(addr)+n], nil
}

// LoadProgramFile reads a CHIP-8 program from disk into the VM's memory
func (vm *C8VM) LoadProgramFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return vm.LoadProgram(data)
}

// LoadProgram resets the VM and loads a program image at 0x200
func (vm *C8VM) LoadProgram(data []byte) error {
	if err := vm.loadProgram(data); err != nil {
		return err
	}
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.latch.release()
	return nil
}
